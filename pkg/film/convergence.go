package film

// convergenceTest compares two accumulations of the same film (an "all
// samples" buffer and an "even samples" buffer holding every second sample)
// and reports how many pixels differ by less than a threshold between them,
// a convergence estimate that needs no ground truth: the even buffer
// averages half of the samples the all buffer averages, so their
// disagreement approximates the remaining noise.
type convergenceTest struct {
	threshold   float64
	lastValue   float64
	testedOnce  bool
}

func newConvergenceTest(threshold float64) *convergenceTest {
	return &convergenceTest{threshold: threshold, lastValue: 0}
}

// Test compares the "all" and "even" pixel buffers and returns the
// fraction of pixels considered converged (within threshold of each
// other). width/height must match both buffers.
func (c *convergenceTest) Test(all, even []Pixel, width, height int) float64 {
	total := width * height
	if total == 0 {
		c.lastValue = 1
		return 1
	}
	converged := 0
	for i := 0; i < total; i++ {
		ca := all[i].Color()
		ce := even[i].Color()
		diff := absf(ca.Luminance() - ce.Luminance())
		denom := maxf(ca.Luminance(), 1e-6)
		if diff/denom < c.threshold {
			converged++
		}
	}
	c.lastValue = float64(converged) / float64(total)
	c.testedOnce = true
	return c.lastValue
}

// LastValue returns the last computed convergence fraction, or 1 (treated
// as fully converged) before any test has run.
func (c *convergenceTest) LastValue() float64 {
	if !c.testedOnce {
		return 1
	}
	return c.lastValue
}

// MaxError returns the worst-case per-pixel relative luminance error
// between the "all" and "even" buffers, the statistic a per-tile
// convergence test compares against its threshold (as opposed to Test's
// fraction-of-pixels-converged, used for the whole-film summary).
func (c *convergenceTest) MaxError(all, even []Pixel, width, height int) float64 {
	total := width * height
	worst := 0.0
	for i := 0; i < total; i++ {
		ca := all[i].Color()
		ce := even[i].Color()
		diff := absf(ca.Luminance() - ce.Luminance())
		denom := maxf(ca.Luminance(), 1e-6)
		err := diff / denom
		if err > worst {
			worst = err
		}
	}
	return worst
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
