package rough

import "image/color"

// FillStyle selects the fill algorithm.
type FillStyle uint8

const (
	FillHachure FillStyle = iota
	FillSolid
	FillZigZag
	FillCrossHatch
	FillDots
	FillDashed
	FillZigZagLine
)

var fillStyleNames = [...]string{
	FillHachure:    "hachure",
	FillSolid:      "solid",
	FillZigZag:     "zigzag",
	FillCrossHatch: "cross-hatch",
	FillDots:       "dots",
	FillDashed:     "dashed",
	FillZigZagLine: "zigzag-line",
}

func (f FillStyle) String() string {
	if int(f) < len(fillStyleNames) {
		return fillStyleNames[f]
	}
	return "unknown"
}

// Options configure a generator call. Negative gap, weight and offset
// values mean "derive from StrokeWidth".
type Options struct {
	MaxRandomnessOffset float64
	Roughness           float64
	Bowing              float64
	Stroke              color.NRGBA
	StrokeWidth         float64
	CurveFitting        float64
	CurveTightness      float64
	CurveStepCount      float64
	// Fill with zero alpha disables filling.
	Fill           color.NRGBA
	FillStyle      FillStyle
	FillWeight     float64
	HachureAngle   float64
	HachureGap     float64
	DashOffset     float64
	DashGap        float64
	ZigZagOffset   float64
	Seed           uint64
	StrokeLineDash []float64
	FillLineDash   []float64

	DisableMultiStroke     bool
	DisableMultiStrokeFill bool
	PreserveVertices       bool
	FillShapeRoughnessGain float64

	rng *Random
}

// DefaultOptions returns the stock rough.js configuration.
func DefaultOptions() Options {
	return Options{
		MaxRandomnessOffset:    2,
		Roughness:              1,
		Bowing:                 1,
		Stroke:                 color.NRGBA{A: 255},
		StrokeWidth:            1,
		CurveFitting:           0.95,
		CurveTightness:         0,
		CurveStepCount:         9,
		FillStyle:              FillHachure,
		FillWeight:             -1,
		HachureAngle:           -41,
		HachureGap:             -1,
		DashOffset:             -1,
		DashGap:                -1,
		ZigZagOffset:           -1,
		FillShapeRoughnessGain: 0.8,
	}
}

// HasFill reports whether the options paint a fill.
func (o *Options) HasFill() bool { return o.Fill.A != 0 }

// HasStroke reports whether the options paint an outline.
func (o *Options) HasStroke() bool { return o.Stroke.A != 0 }

// EffectiveFillWeight resolves a negative FillWeight to StrokeWidth/2.
func (o *Options) EffectiveFillWeight() float64 {
	if o.FillWeight < 0 {
		return o.StrokeWidth / 2
	}
	return o.FillWeight
}

func (o *Options) random() float64 {
	if o.rng == nil {
		o.rng = NewRandom(o.Seed)
	}
	return o.rng.Next()
}

// fresh returns a copy with its own random sequence, restarted from Seed.
func (o Options) fresh() Options {
	o.rng = NewRandom(o.Seed)
	return o
}

// altered returns a copy seeded with Seed+1, used for the second stroke
// of multi-stroke curves.
func (o *Options) altered() Options {
	c := *o
	if c.Seed != 0 {
		c.Seed++
	}
	c.rng = NewRandom(c.Seed)
	return c
}
