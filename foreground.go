package img2ink

import "math"

// EstimateForeground builds a binary subject mask from multi-scale
// saliency, edge magnitude, and a center prior. The score plane is
// thresholded at its 64th-percentile quantile, and the raw mask is
// smoothed and rebinarized. When the raw mask covers less than 3% or
// more than 86% of the frame the segmentation is considered
// degenerate and a full-frame mask is substituted; the returned
// fallback flag records that for the metrics.
func EstimateForeground(norm *Field, grad *Gradient, centerBias float32) (mask *Field, fallback bool) {
	w, h := norm.W, norm.H
	fine := BoxBlur(norm, 3)
	coarse := BoxBlur(norm, 14)

	cx := 0.5 * float64(w)
	cy := 0.5 * float64(h)
	halfDiag := math.Hypot(cx, cy)

	score := NewField(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			sal := clamp01(1.8 * absf(fine.Pix[i]-coarse.Pix[i]))
			dist := math.Hypot(float64(x)-cx, float64(y)-cy)
			center := float32(1 - dist/halfDiag)
			score.Pix[i] = clamp01(0.48*grad.Mag.Pix[i] + 0.42*sal + centerBias*center)
		}
	}

	// The threshold comes from the 256-bin histogram, so the
	// comparison also happens in bin space; sub-bin float jitter on
	// near-uniform inputs must not split the mask.
	hist := histogram256(score.Pix)
	thrBin := percentileBin(hist, len(score.Pix), 0.64)
	mask = NewField(w, h)
	ones := 0
	for i, s := range score.Pix {
		if scoreBin(s) > thrBin {
			mask.Pix[i] = 1
			ones++
		}
	}

	ratio := float64(ones) / float64(len(mask.Pix))
	if ratio < 0.03 || ratio > 0.86 {
		for i := range mask.Pix {
			mask.Pix[i] = 1
		}
		return mask, true
	}

	smoothed := BoxBlur(mask, 2)
	for i, v := range smoothed.Pix {
		if v > 0.42 {
			mask.Pix[i] = 1
		} else {
			mask.Pix[i] = 0
		}
	}
	return mask, false
}

func scoreBin(v float32) int {
	b := int(v*255 + 0.5)
	if b < 0 {
		return 0
	}
	if b > 255 {
		return 255
	}
	return b
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
