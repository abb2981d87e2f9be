package sampler

// Sampler produces the per-dimension random numbers an integrator consumes
// for one path: film position, camera lens position, and per-bounce
// pass-through/BSDF/direct-lighting/Russian-roulette draws.
type Sampler interface {
	// GetSample returns the next f32-precision value for logical dimension
	// dim. Every dimension is in [0,1) except DimFilmX/DimFilmY, which are
	// absolute film-plane coordinates (pixel index plus sub-pixel jitter).
	GetSample(dim int) float32

	// NextSample advances to the next path, recording per-path results
	// (radiance splats etc.) for samplers that need them for acceptance
	// decisions (Metropolis) or sequence bookkeeping (Sobol).
	NextSample(results []float32)
}

// dimension indices shared by all sampler variants: 2 film-plane
// coordinates, then a handful of camera/volume dimensions, then a
// per-depth block reused every bounce.
const (
	DimFilmX = iota
	DimFilmY
	DimLensU
	DimLensV
	DimTime
	dimFixedCount
)

// PerDepthDims is the number of dimensions consumed per path depth:
// pass-through, BSDF u/v, direct-light pick and u/v, Russian roulette.
const PerDepthDims = 7

// DimForDepth returns the starting dimension index for bounce depth's
// per-depth block.
func DimForDepth(depth int) int {
	return dimFixedCount + depth*PerDepthDims
}
