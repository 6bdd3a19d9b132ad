package img2ink

import "math"

// Gradient holds the signed Sobel responses and the max-normalized
// magnitude. Border pixels stay zero; the kernels only cover interior
// pixels.
type Gradient struct {
	GX, GY *Field
	Mag    *Field
}

// Sobel applies the standard 3×3 kernels to the interior of src and
// normalizes the magnitude plane by its maximum.
func Sobel(src *Field) *Gradient {
	w, h := src.W, src.H
	g := &Gradient{
		GX:  NewField(w, h),
		GY:  NewField(w, h),
		Mag: NewField(w, h),
	}

	var maxMag float32
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			tl := src.Pix[(y-1)*w+x-1]
			tc := src.Pix[(y-1)*w+x]
			tr := src.Pix[(y-1)*w+x+1]
			ml := src.Pix[y*w+x-1]
			mr := src.Pix[y*w+x+1]
			bl := src.Pix[(y+1)*w+x-1]
			bc := src.Pix[(y+1)*w+x]
			br := src.Pix[(y+1)*w+x+1]

			gx := -tl + tr - 2*ml + 2*mr - bl + br
			gy := -tl - 2*tc - tr + bl + 2*bc + br
			mag := float32(math.Sqrt(float64(gx*gx + gy*gy)))

			i := y*w + x
			g.GX.Pix[i] = gx
			g.GY.Pix[i] = gy
			g.Mag.Pix[i] = mag
			if mag > maxMag {
				maxMag = mag
			}
		}
	}

	if maxMag < 1e-6 {
		maxMag = 1e-6
	}
	inv := 1 / maxMag
	for i := range g.Mag.Pix {
		g.Mag.Pix[i] *= inv
	}

	return g
}
