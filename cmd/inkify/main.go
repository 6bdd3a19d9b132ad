package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/wbrown/img2ink"
	"github.com/wbrown/img2ink/imageutil"
)

func main() {
	inputFile := flag.String("input", "",
		"Path to the input image file (required)")
	outputFile := flag.String("output", "",
		"Path to save the output PNG (if not specified, prints a summary only)")
	presetName := flag.String("preset", "neon-contour",
		"Rendering preset: "+strings.Join(img2ink.PresetNames(), ", "))
	maxEdge := flag.Int("maxedge", 1024,
		"Bound for the longer input edge (no enlargement)")
	phase := flag.Float64("phase", 0,
		"Frame modulation phase")
	flowStrength := flag.Float64("flow", 0,
		"Frame modulation flow strength [0,1]")
	jitter := flag.Float64("jitter", 0,
		"Frame modulation jitter [0,1]")
	tracePath := flag.String("trace", "",
		"Path to save the auto-tune trace chart PNG")
	printMetrics := flag.Bool("metrics", false,
		"Print the metrics record as JSON")
	flag.Parse()

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -input is required")
		flag.Usage()
		os.Exit(2)
	}

	img, err := imageutil.LoadImage(*inputFile)
	if err != nil {
		fail(err)
	}

	renderer := img2ink.NewRenderer(
		img2ink.WithPreset(*presetName),
		img2ink.WithMaxEdge(*maxEdge),
	)

	analysis, err := renderer.AnalyzeImage(img.RGBA)
	if err != nil {
		fail(err)
	}

	result, err := analysis.RenderFrameContext(context.Background(), img2ink.FrameModulation{
		Phase:        float32(*phase),
		FlowStrength: float32(*flowStrength),
		Jitter:       float32(*jitter),
	})
	if err != nil {
		fail(err)
	}

	if *outputFile != "" {
		if err := imageutil.SaveBinaryPNG(*outputFile, result.Pix, result.W, result.H); err != nil {
			fail(err)
		}
	}

	if *tracePath != "" {
		f, err := os.Create(*tracePath)
		if err != nil {
			fail(err)
		}
		err = img2ink.TraceGraph(result.Trace, renderer.Preset.WhiteCoverageTarget, f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			fail(err)
		}
	}

	if *printMetrics {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result.Metrics); err != nil {
			fail(err)
		}
	} else {
		m := result.Metrics
		fmt.Printf("%s: %dx%d white=%.3f components=%d align=%.2f fallback=%v\n",
			renderer.Preset.Name, result.W, result.H,
			m.WhiteRatio, m.ComponentCount, m.EdgeAlignmentScore,
			m.FallbackSegmentation)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
