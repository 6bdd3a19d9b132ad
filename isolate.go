package img2ink

import "sort"

// IsolateWhitePixels thins clumps of set pixels down to their
// strongest isolated points. Candidates are visited in descending
// guide order (ties keep original index order) and accepted unless an
// already-accepted pixel lies within the L1 diamond of the given
// radius. The operation is idempotent: a bitmap that already satisfies
// the spacing constraint passes through unchanged. Radius 0 is the
// identity.
func IsolateWhitePixels(b *Bitmap, guide *Field, radius int) *Bitmap {
	if radius <= 0 {
		return b.Clone()
	}
	w, h := b.W, b.H

	var candidates []int32
	for i, v := range b.Pix {
		if v != 0 {
			candidates = append(candidates, int32(i))
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return guide.Pix[candidates[i]] > guide.Pix[candidates[j]]
	})

	out := NewBitmap(w, h)
	for _, idx := range candidates {
		x := int(idx) % w
		y := int(idx) / w
		blocked := false
		for dy := -radius; dy <= radius && !blocked; dy++ {
			ny := y + dy
			if ny < 0 || ny >= h {
				continue
			}
			span := radius - absInt(dy)
			for dx := -span; dx <= span; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx := x + dx
				if nx < 0 || nx >= w {
					continue
				}
				if out.Pix[ny*w+nx] != 0 {
					blocked = true
					break
				}
			}
		}
		if !blocked {
			out.Pix[idx] = 1
		}
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
