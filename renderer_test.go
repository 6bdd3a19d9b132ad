package img2ink

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	"github.com/wbrown/img2ink/imageutil"
)

func planarChecker(w, h, square int) []uint8 {
	rgb := make([]uint8, 3*w*h)
	n := w * h
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if ((x/square)+(y/square))%2 == 0 {
				v = 255
			}
			i := y*w + x
			rgb[i] = v
			rgb[n+i] = v
			rgb[2*n+i] = v
		}
	}
	return rgb
}

func planarSolid(w, h int, v uint8) []uint8 {
	rgb := make([]uint8, 3*w*h)
	for i := range rgb {
		rgb[i] = v
	}
	return rgb
}

func checkResultContract(t *testing.T, r *Result, w, h int) {
	t.Helper()
	if r.W != w || r.H != h {
		t.Fatalf("Expected %dx%d output, got %dx%d", w, h, r.W, r.H)
	}
	if len(r.Pix) != w*h {
		t.Fatalf("Expected %d bytes, got %d", w*h, len(r.Pix))
	}
	whites := 0
	for i, v := range r.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("Pixel %d is %d, want 0 or 255", i, v)
		}
		if v == 255 {
			whites++
		}
	}
	wantRatio := float64(whites) / float64(w*h)
	if math.Abs(r.Metrics.WhiteRatio-wantRatio) > 1e-9 {
		t.Errorf("WhiteRatio %f does not match raster ratio %f", r.Metrics.WhiteRatio, wantRatio)
	}
	if r.Metrics.TunedIterations < 1 || r.Metrics.TunedIterations > 8 {
		t.Errorf("TunedIterations %d outside 1..8", r.Metrics.TunedIterations)
	}
	if r.Metrics.EdgeAlignmentScore < 0 || r.Metrics.EdgeAlignmentScore > 1 {
		t.Errorf("EdgeAlignmentScore %f outside [0,1]", r.Metrics.EdgeAlignmentScore)
	}
}

func TestTransformChecker(t *testing.T) {
	w, h := 64, 64
	r, err := Transform(planarChecker(w, h, 8), w, h, PresetByName("neon-contour"))
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	checkResultContract(t, r, w, h)
	if len(r.Trace) < 8 {
		t.Errorf("Expected at least 8 trace points, got %d", len(r.Trace))
	}
}

func TestTransformDeterminism(t *testing.T) {
	w, h := 96, 96
	rgb := planarChecker(w, h, 8)
	preset := PresetByName("neon-contour")
	first, err := Transform(rgb, w, h, preset)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	second, err := Transform(rgb, w, h, preset)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("Back-to-back transforms should be bytewise identical")
	}
	if first.Metrics != second.Metrics {
		t.Errorf("Metrics differ: %+v vs %+v", first.Metrics, second.Metrics)
	}
}

func TestTransformUniformGray(t *testing.T) {
	w, h := 100, 100
	r, err := Transform(planarSolid(w, h, 128), w, h, PresetByName("industrial-noise"))
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	checkResultContract(t, r, w, h)
	if !r.Metrics.FallbackSegmentation {
		t.Error("Uniform input should report fallback segmentation")
	}
}

func TestTransformAllBlack(t *testing.T) {
	w, h := 64, 64
	r, err := Transform(planarSolid(w, h, 0), w, h, PresetByName("neon-contour"))
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	checkResultContract(t, r, w, h)
	// With no gradients anywhere, no white pixel can align to an edge.
	if r.Metrics.EdgeAlignmentScore != 0 {
		t.Errorf("Expected zero edge alignment on flat input, got %f",
			r.Metrics.EdgeAlignmentScore)
	}
}

func TestTransformTinyInputs(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {1, 7}, {7, 1}} {
		w, h := dims[0], dims[1]
		r, err := Transform(planarSolid(w, h, 200), w, h, PresetByName("neon-contour"))
		if err != nil {
			t.Fatalf("%dx%d transform failed: %v", w, h, err)
		}
		checkResultContract(t, r, w, h)
		// One-wide strips cannot survive the open step.
		for i, v := range r.Pix {
			if v != 0 {
				t.Fatalf("%dx%d: expected all-zero output, pixel %d = %d", w, h, i, v)
			}
		}
		if r.Metrics.ComponentCount != 0 {
			t.Errorf("%dx%d: expected zero components, got %d", w, h, r.Metrics.ComponentCount)
		}
	}
}

func TestTransformEmptyAndBadInput(t *testing.T) {
	if _, err := Transform(nil, 0, 10, PresetByName("neon-contour")); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("Expected ErrEmptyImage for zero width, got %v", err)
	}
	if _, err := Transform(make([]uint8, 10), 4, 4, PresetByName("neon-contour")); err == nil {
		t.Error("Expected error for short buffer")
	}
}

func TestAnalysisReuse(t *testing.T) {
	w, h := 64, 64
	a, err := Analyze(planarChecker(w, h, 8), w, h, PresetByName("crowd-ghost"))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	first := a.RenderFrame(FrameModulation{Phase: 1})
	second := a.RenderFrame(FrameModulation{Phase: 1})
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("Same analysis and modulation should render identically")
	}
}

func TestModulationVariesOutput(t *testing.T) {
	w, h := 96, 96
	a, err := Analyze(planarChecker(w, h, 8), w, h, PresetByName("crowd-ghost"))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	still := a.RenderFrame(FrameModulation{})
	phased := a.RenderFrame(FrameModulation{Phase: math.Pi / 2})
	if bytes.Equal(still.Pix, phased.Pix) {
		t.Error("Phase modulation should change the rendered frame")
	}
}

func TestTransformContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w, h := 32, 32
	if _, err := TransformContext(ctx, planarChecker(w, h, 8), w, h, PresetByName("neon-contour")); err == nil {
		t.Error("Expected error from cancelled context")
	}
}

func TestRendererTransformImage(t *testing.T) {
	img := imageutil.CreateCheckerboardImage(100, 50, 10)
	r := NewRenderer(WithPreset("silhouette-etch"), WithMaxEdge(64))
	result, err := r.TransformImage(img)
	if err != nil {
		t.Fatalf("TransformImage failed: %v", err)
	}
	if result.W != 64 || result.H != 32 {
		t.Errorf("Expected 64x32 bounded output, got %dx%d", result.W, result.H)
	}
	checkResultContract(t, result, 64, 32)
}

func TestRendererUnknownPreset(t *testing.T) {
	r := NewRenderer(WithPreset("no-such-style"))
	if r.Preset.Name != "neon-contour" {
		t.Errorf("Unknown preset should resolve to neon-contour, got %s", r.Preset.Name)
	}
}

func TestGrayscaleRec601(t *testing.T) {
	// Pure red, green, blue single pixels.
	cases := []struct {
		r, g, b uint8
		want    float32
	}{
		{255, 0, 0, 0.299},
		{0, 255, 0, 0.587},
		{0, 0, 255, 0.114},
		{255, 255, 255, 1},
		{0, 0, 0, 0},
	}
	for _, c := range cases {
		f := grayscale([]uint8{c.r, c.g, c.b}, 1, 1)
		if math.Abs(float64(f.Pix[0]-c.want)) > 1e-4 {
			t.Errorf("grayscale(%d,%d,%d) = %f, want %f", c.r, c.g, c.b, f.Pix[0], c.want)
		}
	}
}
