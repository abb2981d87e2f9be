// Package specache bounds the cost of resampling a texture or blackbody SPD
// into an SWC at many different hero-wavelength draws: a Monte Carlo render
// resamples the same handful of material SPDs from millions of path
// samples, each at its own randomly stratified wavelength set, so a plain
// per-call spectral.NewSWCFromSPD walks the SPD's Sample function (a linear
// scan, cubic-spline eval, or Planck's-law call) every single time. This
// package quantizes the wavelength set to a cache key and bounds the result
// set's memory with github.com/hashicorp/golang-lru, the same bounded-cache
// library this corpus's other examples pull in for exactly this
// keep-hot-working-set shape.
package specache

import (
	"math"

	lru "github.com/hashicorp/golang-lru"

	"github.com/lumenpath/lumenpath/pkg/spectral"
)

// DefaultCapacity is the entry count a cache holds before evicting the
// least recently used resampled spectrum. One entry is WavelengthSamples
// float64s plus a cache key; a few thousand entries cover a typical
// scene's distinct SPDs crossed with its hero-wavelength quantization
// buckets without meaningfully affecting render memory.
const DefaultCapacity = 4096

// quantumNM is the wavelength-key rounding step: hero wavelengths that
// round to the same whole nanometer reuse the same cache entry,
// trading a small amount of resampling precision for a cache hit rate high
// enough to matter. SPDs in this renderer (blackbody, irregular/spline) are
// smooth enough that this is imperceptible in the final image.
const quantumNM = 1.0

// key identifies one resampled SWC: the SPD's identity plus its
// wavelength set, quantized to quantumNM.
type key struct {
	spd    spectral.SPD
	single bool
	w      [spectral.WavelengthSamples]int32
}

func quantize(nm float64) int32 {
	return int32(math.Round(nm / quantumNM))
}

func makeKey(spd spectral.SPD, sw *spectral.SpectrumWavelengths) key {
	k := key{spd: spd, single: sw.IsSingle()}
	if k.single {
		k.w[0] = quantize(sw.Wavelengths[sw.SingleIndex()])
		return k
	}
	for i := 0; i < spectral.WavelengthSamples; i++ {
		k.w[i] = quantize(sw.Wavelengths[i])
	}
	return k
}

// Cache is a bounded cache from (SPD, quantized wavelength set) to the SWC
// spectral.NewSWCFromSPD would have produced. It is safe for concurrent use
// by multiple render workers, matching lru.Cache's own locking contract.
type Cache struct {
	lru *lru.Cache
}

// New builds a Cache holding up to capacity entries. capacity <= 0 uses
// DefaultCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c, err := lru.New(capacity)
	if err != nil {
		// lru.New only errors on capacity <= 0, already excluded above.
		panic(err)
	}
	return &Cache{lru: c}
}

// Resample returns spd sampled at sw's active wavelengths, the same value
// spectral.NewSWCFromSPD(sw, spd) would, reusing a cached result when sw's
// wavelengths (quantized) were already sampled against spd before.
func (c *Cache) Resample(sw *spectral.SpectrumWavelengths, spd spectral.SPD) spectral.SWC {
	k := makeKey(spd, sw)
	if v, ok := c.lru.Get(k); ok {
		return v.(spectral.SWC)
	}
	swc := spectral.NewSWCFromSPD(sw, spd)
	c.lru.Add(k, swc)
	return swc
}

// Len reports the cache's current entry count.
func (c *Cache) Len() int { return c.lru.Len() }

// Purge evicts every cached entry, for scene-edit boundaries where
// materials' underlying SPDs may have been replaced.
func (c *Cache) Purge() { c.lru.Purge() }
