package sampler

// TilePathSampler stratifies aaSamples x aaSamples sub-pixel samples per
// pixel within a tile, with jitter that is a deterministic function of the
// tile's position and pass so re-rendering the same tile/pass reproduces
// identical samples.
type TilePathSampler struct {
	aaSamples int

	tileX, tileY         int
	passIndex            int
	multipassIndex       int
	rngPass, rng0, rng1  uint32

	pixelX, pixelY int
	sampleIx, sampleIy int
}

// NewTilePathSampler builds a sampler for one tile render pass, seeded
// from the tile's own (rngPass, rng0, rng1) triple so two tiles never
// collide even when rendered by different workers.
func NewTilePathSampler(aaSamples, tileX, tileY, passIndex, multipassIndex int, rngPass, rng0, rng1 uint32) *TilePathSampler {
	return &TilePathSampler{
		aaSamples:      aaSamples,
		tileX:          tileX,
		tileY:          tileY,
		passIndex:      passIndex,
		multipassIndex: multipassIndex,
		rngPass:        rngPass,
		rng0:           rng0,
		rng1:           rng1,
	}
}

// SetPixel selects which pixel within the tile subsequent samples target,
// in tile-local coordinates.
func (s *TilePathSampler) SetPixel(ix, iy int) {
	s.pixelX, s.pixelY = ix, iy
}

func (s *TilePathSampler) hash() uint32 {
	h := uint32(s.tileX)*73856093 ^ uint32(s.tileY)*19349663 ^
		uint32(s.passIndex)*83492791 ^ uint32(s.multipassIndex)*2654435761 ^
		uint32(s.pixelX)*15485863 ^ uint32(s.pixelY)*86028121 ^
		uint32(s.sampleIx)*49979687 ^ uint32(s.sampleIy)*86028157 ^
		s.rngPass ^ (s.rng0 << 1) ^ (s.rng1 << 2)
	h ^= h >> 13
	h *= 0x85ebca6b
	h ^= h >> 16
	return h
}

func (s *TilePathSampler) jitter(salt uint32) float32 {
	h := s.hash() ^ (salt * 0x27d4eb2f)
	h ^= h >> 15
	return float32(h) / float32(1<<32-1)
}

func (s *TilePathSampler) GetSample(dim int) float32 {
	switch dim {
	case DimFilmX:
		return float32(s.pixelX) + (float32(s.sampleIx)+s.jitter(1))/float32(s.aaSamples)
	case DimFilmY:
		return float32(s.pixelY) + (float32(s.sampleIy)+s.jitter(2))/float32(s.aaSamples)
	default:
		return s.jitter(uint32(dim) + 100)
	}
}

// NextSample advances the (sampleIx, sampleIy) stratified sub-pixel
// counter, wrapping back to (0,0) after aaSamples^2 draws.
func (s *TilePathSampler) NextSample(results []float32) {
	s.sampleIx++
	if s.sampleIx >= s.aaSamples {
		s.sampleIx = 0
		s.sampleIy++
		if s.sampleIy >= s.aaSamples {
			s.sampleIy = 0
		}
	}
}
