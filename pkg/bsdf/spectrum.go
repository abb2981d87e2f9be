package bsdf

import "github.com/lumenpath/lumenpath/pkg/spectral"

// Spectrum is the per-wavelength value a BSDF evaluates to, the same
// four-sample representation the spectral core and integrators carry
// along a path.
type Spectrum = spectral.SWC
