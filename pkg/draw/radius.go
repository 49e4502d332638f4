package draw

import "github.com/matzehuels/sketchview/pkg/excalidraw"

const (
	proportionalRadius  = 0.25
	defaultAdaptiveSize = 32
)

// CornerRadius returns the corner radius for a shape whose smaller side is
// x. The adaptive policy uses its fixed size once x is large enough that
// the proportional radius would exceed it.
func CornerRadius(x float64, r *excalidraw.Roundness) float64 {
	if r == nil {
		return 0
	}
	if r.Type != excalidraw.RoundnessAdaptiveRadius {
		return x * proportionalRadius
	}
	fixed := float64(defaultAdaptiveSize)
	if r.Value != nil {
		fixed = *r.Value
	}
	if x <= fixed/proportionalRadius {
		return x * proportionalRadius
	}
	return fixed
}
