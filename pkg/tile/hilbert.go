package tile

// hilbertIndex maps grid coordinates (x, y), each in [0, 2^order), to their
// position along a Hilbert space-filling curve of that order. Tiles sorted
// by this index render in an order that keeps spatially close tiles close
// in time, useful for progressive previews and for spreading adaptive
// re-rendering work evenly across the image.
func hilbertIndex(order uint, x, y int) int64 {
	var rx, ry int
	var d int64
	for s := int64(1) << (order - 1); s > 0; s >>= 1 {
		if x&int(s) > 0 {
			rx = 1
		} else {
			rx = 0
		}
		if y&int(s) > 0 {
			ry = 1
		} else {
			ry = 0
		}
		d += s * s * int64((3*rx)^ry)
		x, y = hilbertRotate(int(s), x, y, rx, ry)
	}
	return d
}

func hilbertRotate(n, x, y, rx, ry int) (int, int) {
	if ry == 0 {
		if rx == 1 {
			x = n - 1 - x
			y = n - 1 - y
		}
		x, y = y, x
	}
	return x, y
}

// hilbertOrderFor returns the smallest power-of-two order covering a grid of
// cols x rows tiles.
func hilbertOrderFor(cols, rows int) uint {
	n := cols
	if rows > n {
		n = rows
	}
	order := uint(1)
	for (1 << order) < n {
		order++
	}
	return order
}
