package img2ink

// Bitmap is a binary raster with one byte per pixel, each 0 or 1,
// stored row-major like Field.
type Bitmap struct {
	W, H int
	Pix  []uint8
}

// NewBitmap allocates a zero-filled bitmap.
func NewBitmap(w, h int) *Bitmap {
	return &Bitmap{W: w, H: h, Pix: make([]uint8, w*h)}
}

// Clone creates a deep copy of the bitmap.
func (b *Bitmap) Clone() *Bitmap {
	c := NewBitmap(b.W, b.H)
	copy(c.Pix, b.Pix)
	return c
}

// Ones counts the set pixels.
func (b *Bitmap) Ones() int {
	n := 0
	for _, v := range b.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// bayer8x8 is the standard 8×8 Bayer matrix with values 0..63.
var bayer8x8 = [8][8]uint8{
	{0, 32, 8, 40, 2, 34, 10, 42},
	{48, 16, 56, 24, 50, 18, 58, 26},
	{12, 44, 4, 36, 14, 46, 6, 38},
	{60, 28, 52, 20, 62, 30, 54, 22},
	{3, 35, 11, 43, 1, 33, 9, 41},
	{51, 19, 59, 27, 49, 17, 57, 25},
	{15, 47, 7, 39, 13, 45, 5, 37},
	{63, 31, 55, 23, 61, 29, 53, 21},
}

// DitherFloydSteinberg binarizes the map against a scalar threshold
// with serial Floyd–Steinberg error diffusion. The scan is
// top-to-bottom, left-to-right, with the classic 7/16, 3/16, 5/16,
// 1/16 distribution clipped at the image bounds.
func DitherFloydSteinberg(m *Field, threshold float32) *Bitmap {
	w, h := m.W, m.H
	work := make([]float32, len(m.Pix))
	copy(work, m.Pix)
	out := NewBitmap(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			var v float32
			if work[i] >= threshold {
				out.Pix[i] = 1
				v = 1
			}
			err := work[i] - v
			if x+1 < w {
				work[i+1] += err * (7.0 / 16.0)
			}
			if y+1 < h {
				if x-1 >= 0 {
					work[i+w-1] += err * (3.0 / 16.0)
				}
				work[i+w] += err * (5.0 / 16.0)
				if x+1 < w {
					work[i+w+1] += err * (1.0 / 16.0)
				}
			}
		}
	}
	return out
}

// DitherBayer binarizes the map against the threshold plus an ordered
// per-pixel bias taken from the 8×8 Bayer matrix, spanning ±0.09.
func DitherBayer(m *Field, threshold float32) *Bitmap {
	w, h := m.W, m.H
	out := NewBitmap(w, h)
	for y := 0; y < h; y++ {
		brow := &bayer8x8[y&7]
		for x := 0; x < w; x++ {
			bias := (float32(brow[x&7])/64 - 0.5) * 0.18
			i := y*w + x
			if m.Pix[i] > threshold+bias {
				out.Pix[i] = 1
			}
		}
	}
	return out
}
