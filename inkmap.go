package img2ink

import "math"

// hashNoise mixes the pixel coordinates into a uniform scalar in
// [0, 1). It is a pure function of (x, y), so grain is reproducible
// across runs and independent of iteration order.
func hashNoise(x, y int) float32 {
	h := uint32(x)*0x85ebca6b ^ uint32(y)*0xc2b2ae35
	h ^= h >> 13
	h *= 0x27d4eb2f
	h ^= h >> 15
	return float32(h&0xffffff) / float32(1<<24)
}

// buildInkMap blends edge, fill, detail, oriented stripe texture,
// deterministic grain, and flowing band modulation into an ink
// probability field, gated by background suppression, the luminance
// prior, the center field, the top fade, and the row gain. The map is
// then smoothed, row-rebalanced, and percentile-normalized.
func buildInkMap(a *Analysis, mod FrameModulation) *Field {
	w, h := a.W, a.H
	p := a.Preset
	norm := a.Norm
	locked := a.Light.LockedTone
	mask := a.Mask
	mag := a.Grad.Mag

	blur2 := BoxBlur(norm, 2)
	detail := NewField(w, h)
	for i := range detail.Pix {
		detail.Pix[i] = absf(norm.Pix[i] - blur2.Pix[i])
	}

	edgeNear := BoxBlur(mag, 1)
	edgeMid := BoxBlur(mag, maxInt(2, int(0.5*float64(p.GrainScale)+0.5)))
	edgeFar := BoxBlur(mag, maxInt(4, int(1.5*float64(p.GrainScale)+0.5)))

	grain := float64(p.GrainScale)
	if grain < 1 {
		grain = 1
	}
	stippleCut := 0.72 * p.Spaceiness
	bgExp := float64(0.8 + p.BackgroundSuppression)
	lumaExp := float64(0.8 + p.LumaSuppression)
	phase := float64(mod.Phase)

	ink := NewField(w, h)
	for y := 0; y < h; y++ {
		yNorm := 0.0
		if h > 1 {
			yNorm = float64(y) / float64(h-1)
		}
		dy := (float64(y) - 0.58*float64(h)) / (0.34 * float64(h))
		topFade := 1 - float64(p.TopSuppression)*float64(clamp01(float32((0.28-yNorm)/0.28)))
		rowGain := float64(a.Light.RowGain[y])

		for x := 0; x < w; x++ {
			i := y*w + x

			edge := math.Pow(float64(mag.Pix[i]), float64(p.EdgeGamma))
			fill := math.Pow(float64(locked.Pix[i]), float64(p.FillGamma)) * float64(mask.Pix[i])

			angle := math.Atan2(float64(a.Grad.GY.Pix[i])+1e-6, float64(a.Grad.GX.Pix[i])+1e-6)
			oriented := (float64(x)*math.Cos(angle) + float64(y)*math.Sin(angle)) / grain
			stripe := 0.5*math.Sin(2.2*oriented+2.6*angle+0.7*phase) + 0.5
			noise := float64(hashNoise(x, y))
			texture := float64(clamp01(float32(0.75*stripe + noise*(0.32+0.12*float64(mod.Jitter)))))

			flow := float64(clamp01(0.35*edgeNear.Pix[i] + 0.35*edgeMid.Pix[i] + 0.30*edgeFar.Pix[i]))
			wave := float64(locked.Pix[i])*1.6 + flow*2.4 + oriented*0.08 + phase
			ghostBand := math.Pow(math.Abs(math.Sin(math.Pi*float64(p.BandFrequency)*wave)), 2.2) *
				math.Pow(flow, 0.9)

			stippleKeep := 0.45
			if noise > float64(stippleCut) {
				stippleKeep = 1
			}

			bgKill := math.Pow(float64(mask.Pix[i]), bgExp)
			darkPrior := math.Pow(float64(1-locked.Pix[i]), lumaExp)
			lumaGate := 0.2 + 0.8*darkPrior

			dx := (float64(x) - 0.5*float64(w)) / (0.34 * float64(w))
			centerField := math.Exp(-(dx*dx + dy*dy))
			centerGate := float64(1-p.CenterFocus) +
				float64(p.CenterFocus)*float64(clamp01(float32(0.35+0.65*centerField)))

			flowBoost := 1 + float64(mod.FlowStrength)*(flow-0.45)*0.3

			v := float64(p.EdgeWeight)*edge +
				float64(p.FillWeight)*fill +
				0.28*float64(detail.Pix[i])*float64(mask.Pix[i]) +
				float64(p.TextureWeight)*texture*float64(mask.Pix[i]) +
				float64(p.GhostWeight)*ghostBand*float64(mask.Pix[i])
			v *= (0.3 + 0.7*bgKill) * lumaGate * centerGate * topFade *
				rowGain * stippleKeep * flowBoost

			ink.Pix[i] = clamp01(float32(v))
		}
	}

	smoothed := BoxBlur(ink, maxInt(0, int(p.Smoothing+0.5)))
	rebalanceRows(smoothed, mask)
	NormalizePercentiles(smoothed, 0.01, 0.99)
	return smoothed
}

// rebalanceRows pulls every active row's mean ink toward the 60th
// percentile of the active-row means, with the raw gain squashed and
// smoothed so adjacent rows stay coherent. Frames with too few active
// rows are left untouched.
func rebalanceRows(ink *Field, mask *Field) {
	w, h := ink.W, ink.H
	rowMean := make([]float32, h)
	activeCount := make([]int, h)
	for y := 0; y < h; y++ {
		var sum float32
		count := 0
		for x := 0; x < w; x++ {
			i := y*w + x
			if mask.Pix[i] >= 0.15 {
				sum += ink.Pix[i]
				count++
			}
		}
		if count > 0 {
			rowMean[y] = sum / float32(count)
		}
		activeCount[y] = count
	}

	minActive := 0.08 * float64(w)
	var activeRows []float32
	active := make([]bool, h)
	for y := 0; y < h; y++ {
		if float64(activeCount[y]) > minActive {
			active[y] = true
			activeRows = append(activeRows, rowMean[y])
		}
	}

	if float64(len(activeRows)) < math.Max(8, 0.1*float64(h)) {
		return
	}

	insertionSortF32(activeRows)
	target := activeRows[int(0.6*float64(len(activeRows)-1))]

	gain := make([]float32, h)
	for y := 0; y < h; y++ {
		if !active[y] {
			gain[y] = 1
			continue
		}
		base := rowMean[y]
		if base < 1e-6 {
			base = 1e-6
		}
		raw := target / base
		gain[y] = 0.4 + 2.6*clamp01((raw-0.4)/2.6)
	}

	smooth := smoothRows(gain, 10)
	for y := 0; y < h; y++ {
		g := smooth[y]
		for x := 0; x < w; x++ {
			i := y*w + x
			ink.Pix[i] = clamp01(ink.Pix[i] * g)
		}
	}
}
