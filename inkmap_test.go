package img2ink

import (
	"math"
	"testing"
)

func TestHashNoiseDeterministic(t *testing.T) {
	for _, xy := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {17, 42}, {1023, 767}} {
		a := hashNoise(xy[0], xy[1])
		b := hashNoise(xy[0], xy[1])
		if a != b {
			t.Fatalf("hashNoise(%d,%d) not deterministic: %f vs %f", xy[0], xy[1], a, b)
		}
		if a < 0 || a >= 1 {
			t.Fatalf("hashNoise(%d,%d) = %f outside [0,1)", xy[0], xy[1], a)
		}
	}
}

func TestHashNoiseDecorrelated(t *testing.T) {
	// Neighboring coordinates should not produce clustered values; a
	// coarse mean check catches a broken mixer.
	var sum float64
	n := 0
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			sum += float64(hashNoise(x, y))
			n++
		}
	}
	mean := sum / float64(n)
	if mean < 0.4 || mean > 0.6 {
		t.Errorf("Expected mean near 0.5 over 4096 samples, got %f", mean)
	}
	if hashNoise(3, 5) == hashNoise(5, 3) && hashNoise(2, 7) == hashNoise(7, 2) {
		t.Error("Hash appears symmetric in x and y")
	}
}

func testAnalysis(t *testing.T, w, h int, presetName string) *Analysis {
	t.Helper()
	rgb := make([]uint8, 3*w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if ((x/8)+(y/8))%2 == 0 {
				v = 255
			}
			i := y*w + x
			rgb[i] = v
			rgb[w*h+i] = v
			rgb[2*w*h+i] = v
		}
	}
	a, err := Analyze(rgb, w, h, PresetByName(presetName))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	return a
}

func TestBuildInkMapRange(t *testing.T) {
	a := testAnalysis(t, 64, 64, "neon-contour")
	ink := buildInkMap(a, FrameModulation{})
	for i, v := range ink.Pix {
		if v < 0 || v > 1 || math.IsNaN(float64(v)) {
			t.Fatalf("Ink pixel %d out of range: %f", i, v)
		}
	}
}

func TestBuildInkMapModulation(t *testing.T) {
	a := testAnalysis(t, 64, 64, "crowd-ghost")
	still := buildInkMap(a, FrameModulation{})
	phased := buildInkMap(a, FrameModulation{Phase: math.Pi / 2})
	same := true
	for i := range still.Pix {
		if still.Pix[i] != phased.Pix[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Phase modulation should change the ink map")
	}
}

func TestBuildInkMapDeterministic(t *testing.T) {
	a := testAnalysis(t, 48, 48, "topo-stroke")
	first := buildInkMap(a, FrameModulation{})
	second := buildInkMap(a, FrameModulation{})
	for i := range first.Pix {
		if first.Pix[i] != second.Pix[i] {
			t.Fatalf("Ink map not reproducible at pixel %d", i)
		}
	}
}

func TestRebalanceRowsFewActiveUnchanged(t *testing.T) {
	// Six rows cannot reach the eight-active-row minimum.
	ink := gradientField(20, 6)
	mask := NewField(20, 6)
	for i := range mask.Pix {
		mask.Pix[i] = 1
	}
	before := ink.Clone()
	rebalanceRows(ink, mask)
	for i := range ink.Pix {
		if ink.Pix[i] != before.Pix[i] {
			t.Fatal("Rebalance should leave short frames unchanged")
		}
	}
}

func TestRebalanceRowsEqualizes(t *testing.T) {
	// Top half dim, bottom half bright: rebalancing must pull the
	// halves closer together.
	w, h := 40, 40
	ink := NewField(w, h)
	mask := NewField(w, h)
	for y := 0; y < h; y++ {
		v := float32(0.2)
		if y >= h/2 {
			v = 0.6
		}
		for x := 0; x < w; x++ {
			ink.Set(x, y, v)
			mask.Set(x, y, 1)
		}
	}
	gapBefore := rowMeanGap(ink)
	rebalanceRows(ink, mask)
	gapAfter := rowMeanGap(ink)
	if gapAfter >= gapBefore {
		t.Errorf("Expected row gap to shrink, before %f after %f", gapBefore, gapAfter)
	}
}

func rowMeanGap(f *Field) float64 {
	w, h := f.W, f.H
	var top, bottom float64
	for y := 0; y < h; y++ {
		var sum float64
		for x := 0; x < w; x++ {
			sum += float64(f.At(x, y))
		}
		if y < h/2 {
			top += sum
		} else {
			bottom += sum
		}
	}
	return math.Abs(bottom-top) / float64(w*h/2)
}
