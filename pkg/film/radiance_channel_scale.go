package film

import (
	"math"

	"github.com/lumenpath/lumenpath/pkg/spectral"
)

// RadianceChannelScale holds the per-light-group output scaling the image
// pipeline's white-balance stage applies before tonemapping. Scale is
// re-derived whenever any input changes rather than stored directly, the
// supplemented behavior the original white-balance plugin implements.
type RadianceChannelScale struct {
	globalScale float64
	rgbScale    spectral.RGB
	temperature float64
	useTemp     bool
	enabled     bool

	colorSystem *spectral.ColorSystem
	scale       spectral.RGB
}

// NewRadianceChannelScale returns a scale with no-op defaults: global scale
// 1, RGB scale white, temperature disabled.
func NewRadianceChannelScale(cs *spectral.ColorSystem) *RadianceChannelScale {
	r := &RadianceChannelScale{
		globalScale: 1,
		rgbScale:    spectral.RGB{R: 1, G: 1, B: 1},
		enabled:     true,
		colorSystem: cs,
	}
	r.rederive()
	return r
}

func (r *RadianceChannelScale) SetGlobalScale(v float64) {
	r.globalScale = v
	r.rederive()
}

func (r *RadianceChannelScale) SetRGBScale(rgb spectral.RGB) {
	r.rgbScale = rgb
	r.rederive()
}

// SetTemperature sets a color-temperature white point, in Kelvin, that
// multiplies into the effective scale. Pass 0 to disable.
func (r *RadianceChannelScale) SetTemperature(kelvin float64) {
	r.temperature = kelvin
	r.useTemp = kelvin > 0
	r.rederive()
}

func (r *RadianceChannelScale) SetEnabled(enabled bool) {
	r.enabled = enabled
	r.rederive()
}

func (r *RadianceChannelScale) rederive() {
	if !r.enabled {
		r.scale = spectral.RGB{R: 1, G: 1, B: 1}
		return
	}
	s := r.rgbScale.Scale(r.globalScale)
	if r.useTemp {
		white := spectral.BlackbodyWhitePoint(r.temperature, r.colorSystem, true)
		s = s.Mul(white)
	}
	r.scale = s.Clamp(0, math.Inf(1))
}

// Scale returns the effective per-channel multiplier, always clamped to
// non-negative components.
func (r *RadianceChannelScale) Scale() spectral.RGB {
	return r.scale
}

// Apply scales a radiance sample by this channel's effective multiplier.
func (r *RadianceChannelScale) Apply(c spectral.RGB) spectral.RGB {
	return c.Mul(r.Scale())
}
