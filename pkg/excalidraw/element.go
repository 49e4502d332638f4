package excalidraw

import (
	"fmt"

	"github.com/matzehuels/sketchview/pkg/geom"
)

// Element is one shape of a document in its wire layout.
type Element struct {
	ID              string      `json:"id"`
	Type            Kind        `json:"type"`
	X               float64     `json:"x"`
	Y               float64     `json:"y"`
	Width           float64     `json:"width"`
	Height          float64     `json:"height"`
	Angle           float64     `json:"angle"`
	StrokeColor     string      `json:"strokeColor"`
	BackgroundColor string      `json:"backgroundColor"`
	FillStyle       FillStyle   `json:"fillStyle"`
	StrokeWidth     float64     `json:"strokeWidth"`
	StrokeStyle     StrokeStyle `json:"strokeStyle"`
	Roughness       float64     `json:"roughness"`
	Opacity         int         `json:"opacity"`
	Seed            uint64      `json:"seed"`
	Version         int64       `json:"version"`
	VersionNonce    int64       `json:"versionNonce"`
	IsDeleted       bool        `json:"isDeleted"`
	Updated         int64       `json:"updated"`
	Locked          bool        `json:"locked"`
	Roundness       *Roundness  `json:"roundness"`

	Points         []geom.Point `json:"points,omitempty"`
	StartArrowhead Arrowhead    `json:"startArrowhead,omitempty"`
	EndArrowhead   Arrowhead    `json:"endArrowhead,omitempty"`
}

// Validate checks the numeric invariants of e.
func (e *Element) Validate() error {
	if e.Width < 0 || e.Height < 0 {
		return fmt.Errorf("element %s: negative size %vx%v", e.ID, e.Width, e.Height)
	}
	if e.Opacity < 0 || e.Opacity > 100 {
		return fmt.Errorf("element %s: opacity %d outside [0,100]", e.ID, e.Opacity)
	}
	return nil
}

// Bounds returns the element's declared box.
func (e *Element) Bounds() geom.Rect {
	return geom.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

// Center returns the midpoint of the declared box, the pivot for Angle.
func (e *Element) Center() geom.Point {
	return e.Bounds().Center()
}
