package film

import (
	"math"
	"sync"

	"github.com/lumenpath/lumenpath/pkg/spectral"
)

// Config controls how a Film is constructed: resolution, reconstruction
// filter, number of independent light-group buffers, and the convergence
// test's noise threshold.
type Config struct {
	Width, Height      int
	FilterType         FilterType
	FilterWidth        float64
	FilterSubRes       int
	NumGroups          int
	ConvergenceThresh  float64
}

// DefaultConfig mirrors the raytracer's default sampling configuration,
// scaled up with a film-specific filter and convergence threshold.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:             width,
		Height:            height,
		FilterType:        FilterGaussian,
		FilterWidth:       2.0,
		FilterSubRes:      4,
		NumGroups:         1,
		ConvergenceThresh: 0.05,
	}
}

// Film is the pixel accumulator: it owns one "all samples" buffer per
// light group plus a parallel "even samples" buffer used only for the
// convergence test, a precomputed filter LUT for SplatFiltered, and a set
// of per-group RadianceChannelScale outputs.
type Film struct {
	cfg    Config
	mu     []sync.Mutex // one mutex per pixel row, striping lock contention
	groups []groupBuffers
	lut    *FilterLUT
	conv   *convergenceTest

	sampleCounts []int64
	elapsedMs    int64
}

type groupBuffers struct {
	all  []Pixel
	even []Pixel
	evenToggle bool
	scale *RadianceChannelScale
}

// NewFilm allocates a film of the given configuration.
func NewFilm(cfg Config, cs *spectral.ColorSystem) *Film {
	if cfg.NumGroups < 1 {
		cfg.NumGroups = 1
	}
	n := cfg.Width * cfg.Height
	f := &Film{
		cfg:          cfg,
		mu:           make([]sync.Mutex, cfg.Height),
		groups:       make([]groupBuffers, cfg.NumGroups),
		lut:          NewFilterLUT(NewFilter(cfg.FilterType, cfg.FilterWidth), cfg.FilterSubRes),
		conv:         newConvergenceTest(cfg.ConvergenceThresh),
		sampleCounts: make([]int64, cfg.NumGroups),
	}
	for g := range f.groups {
		f.groups[g] = groupBuffers{
			all:   make([]Pixel, n),
			even:  make([]Pixel, n),
			scale: NewRadianceChannelScale(cs),
		}
	}
	return f
}

func (f *Film) index(x, y int) int { return y*f.cfg.Width + x }

func (f *Film) inBounds(x, y int) bool {
	return x >= 0 && x < f.cfg.Width && y >= 0 && y < f.cfg.Height
}

// AddSample splats a single unfiltered sample directly into pixel (x,y) of
// light group groupId's accumulators, the box-filter fast path used when
// the engine doesn't need sub-pixel reconstruction.
func (f *Film) AddSample(groupId, x, y int, radiance spectral.RGB, weight float64) {
	if !f.inBounds(x, y) || groupId < 0 || groupId >= len(f.groups) {
		return
	}
	idx := f.index(x, y)
	f.mu[y].Lock()
	gb := &f.groups[groupId]
	gb.all[idx].AddSample(radiance, weight)
	if gb.evenToggle {
		gb.even[idx].AddSample(radiance, weight)
	}
	gb.evenToggle = !gb.evenToggle
	f.mu[y].Unlock()
}

// SplatFiltered distributes a sample's radiance across the pixels its
// reconstruction filter overlaps. fx,fy are the sample's continuous film
// coordinates; alpha is splatted alongside radiance with the same weight.
func (f *Film) SplatFiltered(groupId int, fx, fy float64, radiance spectral.RGB, alpha, weight float64) {
	if groupId < 0 || groupId >= len(f.groups) {
		return
	}
	lutW := f.lut.Width()
	subRes := f.lut.SubRes()

	px0 := int(math.Floor(fx))
	py0 := int(math.Floor(fy))
	fracX := fx - float64(px0)
	fracY := fy - float64(py0)
	sx := int(fracX * float64(subRes))
	sy := int(fracY * float64(subRes))
	if sx >= subRes {
		sx = subRes - 1
	}
	if sy >= subRes {
		sy = subRes - 1
	}

	half := lutW / 2
	xStart, xEnd := px0-half, px0-half+lutW
	yStart, yEnd := py0-half, py0-half+lutW
	if xStart < 0 {
		xStart = 0
	}
	if yStart < 0 {
		yStart = 0
	}
	if xEnd > f.cfg.Width {
		xEnd = f.cfg.Width
	}
	if yEnd > f.cfg.Height {
		yEnd = f.cfg.Height
	}

	gb := &f.groups[groupId]
	for y := yStart; y < yEnd; y++ {
		ly := y - (py0 - half)
		f.mu[y].Lock()
		for x := xStart; x < xEnd; x++ {
			lx := x - (px0 - half)
			w := f.lut.Lookup(sx, sy, lx, ly)
			if w == 0 {
				continue
			}
			idx := f.index(x, y)
			contrib := radiance.Scale(w * weight)
			gb.all[idx].AddSample(contrib, w*weight)
			gb.all[idx].AddAlpha(alpha, w*weight)
			if gb.evenToggle {
				gb.even[idx].AddSample(contrib, w*weight)
			}
		}
		f.mu[y].Unlock()
	}
	gb.evenToggle = !gb.evenToggle
}

// AddSampleCount records that count samples were taken for groupId,
// elapsed elapsedMs milliseconds, used for throughput reporting.
func (f *Film) AddSampleCount(groupId int, count int64, elapsedMs int64) {
	if groupId < 0 || groupId >= len(f.groups) {
		return
	}
	f.sampleCounts[groupId] += count
	f.elapsedMs += elapsedMs
}

// SampleCount returns the total samples recorded for groupId.
func (f *Film) SampleCount(groupId int) int64 {
	if groupId < 0 || groupId >= len(f.sampleCounts) {
		return 0
	}
	return f.sampleCounts[groupId]
}

// GetConvergence recomputes and returns the fraction of pixels considered
// converged, averaged across light groups.
func (f *Film) GetConvergence() float64 {
	if len(f.groups) == 0 {
		return 1
	}
	sum := 0.0
	for g := range f.groups {
		sum += f.conv.Test(f.groups[g].all, f.groups[g].even, f.cfg.Width, f.cfg.Height)
	}
	return sum / float64(len(f.groups))
}

// MergeFrom adds src's accumulated pixel state into f at the given pixel
// offset, groupId to groupId, the operation a tile renderer uses to fold a
// finished tile-local film back into the main film. Both films must share
// the same NumGroups; src is typically a tile-sized film, f the full-frame
// film.
func (f *Film) MergeFrom(groupId int, offsetX, offsetY int, src *Film) {
	if groupId < 0 || groupId >= len(f.groups) || groupId >= len(src.groups) {
		return
	}
	srcGB := &src.groups[groupId]
	dstGB := &f.groups[groupId]
	for sy := 0; sy < src.cfg.Height; sy++ {
		dy := offsetY + sy
		if dy < 0 || dy >= f.cfg.Height {
			continue
		}
		f.mu[dy].Lock()
		for sx := 0; sx < src.cfg.Width; sx++ {
			dx := offsetX + sx
			if dx < 0 || dx >= f.cfg.Width {
				continue
			}
			srcIdx := src.index(sx, sy)
			dstIdx := f.index(dx, dy)
			mergePixel(&dstGB.all[dstIdx], &srcGB.all[srcIdx])
			mergePixel(&dstGB.even[dstIdx], &srcGB.even[srcIdx])
		}
		f.mu[dy].Unlock()
	}
}

// Clear resets every pixel of every group, the operation a tile worker
// uses on its private tile-local film once it has been merged into the
// main film, so the next tile assignment starts from an empty accumulator.
func (f *Film) Clear() {
	f.ClearRegion(0, 0, f.cfg.Width, f.cfg.Height)
}

// ClearRegion resets the accumulators of every group's pixels within
// [minX,maxX) x [minY,maxY), the operation enableFirstPassClear uses so a
// new multipass cycle replaces a tile's prior convergence rather than
// blending with it.
func (f *Film) ClearRegion(minX, minY, maxX, maxY int) {
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > f.cfg.Width {
		maxX = f.cfg.Width
	}
	if maxY > f.cfg.Height {
		maxY = f.cfg.Height
	}
	for y := minY; y < maxY; y++ {
		f.mu[y].Lock()
		for x := minX; x < maxX; x++ {
			idx := f.index(x, y)
			for g := range f.groups {
				f.groups[g].all[idx] = Pixel{}
				f.groups[g].even[idx] = Pixel{}
			}
		}
		f.mu[y].Unlock()
	}
}

func mergePixel(dst, src *Pixel) {
	dst.ColorAccum = dst.ColorAccum.Add(src.ColorAccum)
	dst.WeightSum += src.WeightSum
	dst.LuminanceAccum += src.LuminanceAccum
	dst.LuminanceSqAccum += src.LuminanceSqAccum
	dst.AlphaAccum += src.AlphaAccum
	dst.SampleCount += src.SampleCount
}

// MaxConvergenceError returns the worst-case per-pixel relative luminance
// error across all light groups, the statistic a per-tile convergence test
// compares against its threshold.
func (f *Film) MaxConvergenceError() float64 {
	worst := 0.0
	for g := range f.groups {
		e := f.conv.MaxError(f.groups[g].all, f.groups[g].even, f.cfg.Width, f.cfg.Height)
		if e > worst {
			worst = e
		}
	}
	return worst
}

// ChannelScale returns the RadianceChannelScale for the given light group.
func (f *Film) ChannelScale(groupId int) *RadianceChannelScale {
	if groupId < 0 || groupId >= len(f.groups) {
		return nil
	}
	return f.groups[groupId].scale
}

// Pixel returns the accumulated, scaled color at (x,y) for groupId.
func (f *Film) Pixel(groupId, x, y int) spectral.RGB {
	if !f.inBounds(x, y) || groupId < 0 || groupId >= len(f.groups) {
		return spectral.RGB{}
	}
	gb := &f.groups[groupId]
	color := gb.all[f.index(x, y)].Color()
	return gb.scale.Apply(color)
}

// Width and Height return the film's pixel dimensions.
func (f *Film) Width() int  { return f.cfg.Width }
func (f *Film) Height() int { return f.cfg.Height }
