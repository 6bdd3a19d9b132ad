package img2ink

// LightTransfer anchors the normalized tone against a reference point
// inside the subject and carries a per-row gain that equalizes
// foreground energy vertically. Both stay fixed for every frame
// rendered from the same analysis.
type LightTransfer struct {
	LockedTone *Field
	RowGain    []float32
	AnchorX    int
	AnchorY    int
}

// BuildLightTransfer finds the strongest foreground pixel inside the
// inner crop, locks the tone plane against it, and derives the row
// gain from smoothed per-row foreground energy.
func BuildLightTransfer(norm *Field, grad *Gradient, mask *Field) *LightTransfer {
	w, h := norm.W, norm.H
	radius := maxInt(10, int(0.06*float64(minInt(w, h))+0.5))
	localLight := BoxBlur(norm, radius)

	detail := NewField(w, h)
	for i := range detail.Pix {
		detail.Pix[i] = absf(norm.Pix[i] - localLight.Pix[i])
	}

	// Anchor search over the inner crop. Degenerate crops (tiny
	// inputs) fall back to the image center.
	x0, x1 := int(0.15*float64(w)), int(0.85*float64(w))
	y0, y1 := int(0.2*float64(h)), int(0.9*float64(h))
	anchorX, anchorY := w/2, h/2
	best := float32(-1)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			i := y*w + x
			s := mask.Pix[i] * (0.52*grad.Mag.Pix[i] + 0.48*detail.Pix[i])
			if s > best {
				best = s
				anchorX, anchorY = x, y
			}
		}
	}

	anchor := anchorY*w + anchorX
	refTone := norm.Pix[anchor]
	refDetail := detail.Pix[anchor]

	locked := NewField(w, h)
	gainSlope := 1.1 + 1.6*refDetail
	for i := range locked.Pix {
		locked.Pix[i] = clamp01(refTone + (norm.Pix[i]-localLight.Pix[i])*gainSlope)
	}

	rowEnergy := make([]float32, h)
	for y := 0; y < h; y++ {
		var sum float32
		for x := 0; x < w; x++ {
			i := y*w + x
			sum += mask.Pix[i] * (0.55*grad.Mag.Pix[i] + 0.45*absf(locked.Pix[i]-refTone))
		}
		rowEnergy[y] = sum / float32(w)
	}

	smooth := smoothRows(rowEnergy, 6)
	median := sortedPercentile(smooth, 0.5)

	gain := make([]float32, h)
	for y := range gain {
		e := smooth[y]
		if e < 1e-6 {
			e = 1e-6
		}
		gain[y] = 0.72 + 0.56*clamp01(median/e)
	}

	return &LightTransfer{
		LockedTone: locked,
		RowGain:    gain,
		AnchorX:    anchorX,
		AnchorY:    anchorY,
	}
}
