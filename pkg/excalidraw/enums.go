package excalidraw

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind is the element type tag.
type Kind string

const (
	KindRectangle Kind = "rectangle"
	KindDiamond   Kind = "diamond"
	KindEllipse   Kind = "ellipse"
	KindArrow     Kind = "arrow"
	KindLine      Kind = "line"
	KindText      Kind = "text"
	KindSelection Kind = "selection"
)

func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("element type: %w", err)
	}
	switch Kind(s) {
	case KindRectangle, KindDiamond, KindEllipse, KindArrow, KindLine, KindText, KindSelection:
		*k = Kind(s)
		return nil
	}
	return fmt.Errorf("unknown element type %q", s)
}

// FillStyle is how a closed shape's interior is painted.
type FillStyle string

const (
	FillSolid      FillStyle = "solid"
	FillHachure    FillStyle = "hachure"
	FillZigZag     FillStyle = "zig-zag"
	FillCrossHatch FillStyle = "cross-hatch"
	FillDots       FillStyle = "dots"
	FillDashed     FillStyle = "dashed"
	FillZigZagLine FillStyle = "zig-zag-line"
)

func (f *FillStyle) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("fillStyle: %w", err)
	}
	// Excalidraw itself writes the unhyphenated forms.
	switch strings.ReplaceAll(s, "zigzag", "zig-zag") {
	case "solid":
		*f = FillSolid
	case "hachure":
		*f = FillHachure
	case "zig-zag":
		*f = FillZigZag
	case "cross-hatch":
		*f = FillCrossHatch
	case "dots":
		*f = FillDots
	case "dashed":
		*f = FillDashed
	case "zig-zag-line":
		*f = FillZigZagLine
	default:
		return fmt.Errorf("unknown fillStyle %q", s)
	}
	return nil
}

// StrokeStyle is the outline dash style.
type StrokeStyle string

const (
	StrokeSolid  StrokeStyle = "solid"
	StrokeDashed StrokeStyle = "dashed"
	StrokeDotted StrokeStyle = "dotted"
)

func (s *StrokeStyle) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("strokeStyle: %w", err)
	}
	switch StrokeStyle(v) {
	case StrokeSolid, StrokeDashed, StrokeDotted:
		*s = StrokeStyle(v)
		return nil
	}
	return fmt.Errorf("unknown strokeStyle %q", v)
}

// RoundnessType is the corner radius policy, encoded as 1, 2 or 3.
type RoundnessType int

const (
	RoundnessLegacy             RoundnessType = 1
	RoundnessProportionalRadius RoundnessType = 2
	RoundnessAdaptiveRadius     RoundnessType = 3
)

func (t RoundnessType) String() string {
	switch t {
	case RoundnessLegacy:
		return "legacy"
	case RoundnessProportionalRadius:
		return "proportional"
	case RoundnessAdaptiveRadius:
		return "adaptive"
	}
	return fmt.Sprintf("RoundnessType(%d)", int(t))
}

func (t *RoundnessType) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("roundness type: %w", err)
	}
	switch RoundnessType(n) {
	case RoundnessLegacy, RoundnessProportionalRadius, RoundnessAdaptiveRadius:
		*t = RoundnessType(n)
		return nil
	}
	return fmt.Errorf("invalid roundness type %d", n)
}

// Roundness selects rounded corners. Value is only consulted by the
// adaptive policy.
type Roundness struct {
	Type  RoundnessType `json:"type"`
	Value *float64      `json:"value,omitempty"`
}

// Arrowhead is the marker drawn at one end of a line or arrow.
type Arrowhead int

const (
	ArrowheadNone Arrowhead = iota
	ArrowheadArrow
	ArrowheadBar
	ArrowheadDot
	ArrowheadTriangle
)

var arrowheadNames = map[Arrowhead]string{
	ArrowheadArrow:    "arrow",
	ArrowheadBar:      "bar",
	ArrowheadDot:      "dot",
	ArrowheadTriangle: "triangle",
}

func (a Arrowhead) String() string {
	if s, ok := arrowheadNames[a]; ok {
		return s
	}
	return "none"
}

func (a Arrowhead) MarshalJSON() ([]byte, error) {
	if a == ArrowheadNone {
		return []byte("null"), nil
	}
	return json.Marshal(a.String())
}

func (a *Arrowhead) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = ArrowheadNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("arrowhead: %w", err)
	}
	for k, v := range arrowheadNames {
		if v == s {
			*a = k
			return nil
		}
	}
	// Newer editors call the dot a circle.
	if s == "circle" {
		*a = ArrowheadDot
		return nil
	}
	return fmt.Errorf("unknown arrowhead %q", s)
}
