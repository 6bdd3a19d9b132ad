package img2ink

import "sort"

// Dilate marks a pixel set when any pixel inside the square
// structuring element of the given radius is set. Radius 0 is the
// identity.
func Dilate(b *Bitmap, radius int) *Bitmap {
	if radius <= 0 {
		return b.Clone()
	}
	w, h := b.W, b.H
	out := NewBitmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			set := false
			for dy := -radius; dy <= radius && !set; dy++ {
				ny := y + dy
				if ny < 0 || ny >= h {
					continue
				}
				for dx := -radius; dx <= radius; dx++ {
					nx := x + dx
					if nx < 0 || nx >= w {
						continue
					}
					if b.Pix[ny*w+nx] != 0 {
						set = true
						break
					}
				}
			}
			if set {
				out.Pix[y*w+x] = 1
			}
		}
	}
	return out
}

// Erode marks a pixel set only when every pixel inside the square
// structuring element is set; neighbors outside the image count as
// unset. Radius 0 is the identity.
func Erode(b *Bitmap, radius int) *Bitmap {
	if radius <= 0 {
		return b.Clone()
	}
	w, h := b.W, b.H
	out := NewBitmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			keep := true
			for dy := -radius; dy <= radius && keep; dy++ {
				ny := y + dy
				for dx := -radius; dx <= radius; dx++ {
					nx := x + dx
					if ny < 0 || ny >= h || nx < 0 || nx >= w ||
						b.Pix[ny*w+nx] == 0 {
						keep = false
						break
					}
				}
			}
			if keep {
				out.Pix[y*w+x] = 1
			}
		}
	}
	return out
}

// component is one 4-connected region of set pixels.
type component struct {
	label int
	area  int
}

// labelComponents assigns a 4-connected label to every set pixel via
// an explicit-stack depth-first search and returns the per-pixel
// labels (0 for background, 1-based otherwise) with the component
// areas in label order.
func labelComponents(b *Bitmap) ([]int32, []component) {
	w, h := b.W, b.H
	labels := make([]int32, w*h)
	var comps []component
	var stack []int32

	next := int32(0)
	for start := range b.Pix {
		if b.Pix[start] == 0 || labels[start] != 0 {
			continue
		}
		next++
		area := 0
		stack = append(stack[:0], int32(start))
		labels[start] = next
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			area++

			x := int(i) % w
			y := int(i) / w
			if x > 0 && b.Pix[i-1] != 0 && labels[i-1] == 0 {
				labels[i-1] = next
				stack = append(stack, i-1)
			}
			if x+1 < w && b.Pix[i+1] != 0 && labels[i+1] == 0 {
				labels[i+1] = next
				stack = append(stack, i+1)
			}
			if y > 0 && b.Pix[int(i)-w] != 0 && labels[int(i)-w] == 0 {
				labels[int(i)-w] = next
				stack = append(stack, i-int32(w))
			}
			if y+1 < h && b.Pix[int(i)+w] != 0 && labels[int(i)+w] == 0 {
				labels[int(i)+w] = next
				stack = append(stack, i+int32(w))
			}
		}
		comps = append(comps, component{label: int(next), area: area})
	}
	return labels, comps
}

// PruneComponents keeps the components whose area reaches minArea and
// whose area-descending rank is below maxCount, dropping everything
// else. Ties in area break on label order so the result is
// deterministic.
func PruneComponents(b *Bitmap, minArea, maxCount int) *Bitmap {
	labels, comps := labelComponents(b)
	sort.Slice(comps, func(i, j int) bool {
		if comps[i].area != comps[j].area {
			return comps[i].area > comps[j].area
		}
		return comps[i].label < comps[j].label
	})

	keep := make([]bool, len(comps)+1)
	for rank, c := range comps {
		if c.area >= minArea && rank < maxCount {
			keep[c.label] = true
		}
	}

	out := NewBitmap(b.W, b.H)
	for i, l := range labels {
		if l != 0 && keep[l] {
			out.Pix[i] = 1
		}
	}
	return out
}

// componentStats summarises the 4-connected components of a bitmap.
type componentStats struct {
	count    int
	meanArea float64
	maxArea  int
}

func measureComponents(b *Bitmap) componentStats {
	_, comps := labelComponents(b)
	st := componentStats{count: len(comps)}
	if len(comps) == 0 {
		return st
	}
	total := 0
	for _, c := range comps {
		total += c.area
		if c.area > st.maxArea {
			st.maxArea = c.area
		}
	}
	st.meanArea = float64(total) / float64(len(comps))
	return st
}

// postProcess runs the morphology, pruning, and optional isolation
// sequence over a freshly dithered bitmap. Stroke thickening dilates
// first; tight spaceiness opens the result back up so strokes stay
// size-stable.
func postProcess(raw *Bitmap, p Preset, ink *Field, withIsolation bool) *Bitmap {
	b := raw
	if p.StrokeThickness > 1 {
		b = Dilate(b, p.StrokeThickness-1)
		if p.Spaceiness < 0.7 {
			b = Erode(b, 1)
		}
	} else if p.Spaceiness < 0.7 {
		b = Erode(b, 1)
		b = Dilate(b, 1)
	}

	minArea := maxInt(1, int(float64(p.ComponentMinArea)*(1-0.7*float64(p.Spaceiness))+0.5))
	maxCount := maxInt(1000, int(float64(p.ComponentMaxCount)*(1+0.25*float64(p.Spaceiness))+0.5))
	b = PruneComponents(b, minArea, maxCount)

	if withIsolation && p.IsolateWhites {
		b = IsolateWhitePixels(b, ink, p.IsolationRadius)
	}
	return b
}
