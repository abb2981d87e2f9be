package sampler

import (
	"sync/atomic"

	"golang.org/x/exp/rand"
)

// PixelBucket hands out film pixel indices to worker goroutines one at a
// time via a shared atomic counter, so concurrent samplers never double up
// on a pixel within a warmup pass before the cycle wraps.
type PixelBucket struct {
	next       int64
	totalPixels int64
}

func NewPixelBucket(totalPixels int) *PixelBucket {
	return &PixelBucket{totalPixels: int64(totalPixels)}
}

// Next returns the next pixel index, cycling back to 0 after warmup.
func (b *PixelBucket) Next() int {
	if b.totalPixels <= 0 {
		return 0
	}
	n := atomic.AddInt64(&b.next, 1) - 1
	return int(n % b.totalPixels)
}

// RandomSampler draws every dimension independently from a per-thread PRNG,
// with pixel assignment coordinated through a shared PixelBucket.
type RandomSampler struct {
	rng    *rand.Rand
	bucket *PixelBucket
	pixelX, pixelY int
	width          int
}

// NewRandomSampler seeds an independent generator per sampler instance;
// callers typically create one RandomSampler per worker goroutine.
func NewRandomSampler(seed uint64, bucket *PixelBucket, filmWidth int) *RandomSampler {
	return &RandomSampler{
		rng:    rand.New(rand.NewSource(seed)),
		bucket: bucket,
		width:  filmWidth,
	}
}

func (s *RandomSampler) GetSample(dim int) float32 {
	switch dim {
	case DimFilmX:
		return float32(s.pixelX) + s.rng.Float32()
	case DimFilmY:
		return float32(s.pixelY) + s.rng.Float32()
	default:
		return s.rng.Float32()
	}
}

func (s *RandomSampler) NextSample(results []float32) {
	idx := s.bucket.Next()
	if s.width > 0 {
		s.pixelX = idx % s.width
		s.pixelY = idx / s.width
	}
}
