package img2ink

import "math"

// NormalizeIllumination flattens large-scale lighting out of the
// grayscale plane. It divides by a wide local blur, compresses the
// ratio into the log domain, and then restores local contrast with a
// high-pass rebalance, percentile-stretching between each step so the
// result always fills [0, 1].
func NormalizeIllumination(gray *Field) *Field {
	w, h := gray.W, gray.H
	radius := maxInt(6, int(0.03*float64(minInt(w, h))))
	light := BoxBlur(gray, radius)

	out := NewField(w, h)
	for i, g := range gray.Pix {
		ratio := g / (light.Pix[i] + 1e-6)
		out.Pix[i] = float32(math.Log(float64(1 + 1.5*ratio)))
	}

	NormalizePercentiles(out, 0.01, 0.99)
	NormalizePercentiles(out, 0.02, 0.98)

	mid := BoxBlur(out, 2)
	for i, n := range out.Pix {
		out.Pix[i] = clamp01(0.72*n + 0.28*(n-mid.Pix[i]+0.5))
	}

	NormalizePercentiles(out, 0.01, 0.99)
	return out
}
