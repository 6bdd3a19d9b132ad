// Package img2ink turns natural RGB photographs into strict two-tone
// ink rasters. The engine normalizes illumination, extracts structure
// and a foreground estimate, blends an ink-probability map, and
// binarizes it with an auto-tuned threshold so the result hits a
// preset-specific coverage budget while following the subject's
// silhouette. The pipeline is pure: the same input, preset, and frame
// modulation always produce bit-identical output.
package img2ink

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/wbrown/img2ink/imageutil"
)

// ErrEmptyImage reports an input with a zero dimension.
var ErrEmptyImage = errors.New("img2ink: empty image dimensions")

// FrameModulation perturbs the ink-map pass for animation. The zero
// value renders a still frame; no other stage consults it.
type FrameModulation struct {
	Phase        float32
	FlowStrength float32
	Jitter       float32
}

// Analysis owns every buffer that depends only on the input image and
// preset: the normalized luminance, the Sobel planes, the foreground
// mask, and the light transfer. It is immutable once built, so any
// number of frames can be rendered from it.
type Analysis struct {
	W, H     int
	Preset   Preset
	Norm     *Field
	Grad     *Gradient
	Mask     *Field
	Light    *LightTransfer
	Fallback bool
}

// Result is one rendered frame: a raster of 0/255 bytes, the tuning
// metrics, and the auto-tune trace for QA.
type Result struct {
	W, H    int
	Pix     []uint8
	Metrics Metrics
	Trace   []TunePoint
}

// Analyze runs the image-dependent stages over a planar RGB buffer
// (three w*h planes: R, then G, then B). The frame-modulation hook
// plays no part here, so the returned Analysis can be reused for every
// frame of an animation.
func Analyze(rgb []uint8, w, h int, preset Preset) (*Analysis, error) {
	return AnalyzeContext(context.Background(), rgb, w, h, preset)
}

// AnalyzeContext is Analyze with cancellation checked between stages.
func AnalyzeContext(ctx context.Context, rgb []uint8, w, h int, preset Preset) (*Analysis, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyImage
	}
	if len(rgb) != 3*w*h {
		return nil, fmt.Errorf("img2ink: rgb buffer is %d bytes, want %d", len(rgb), 3*w*h)
	}

	gray := grayscale(rgb, w, h)
	norm := NormalizeIllumination(gray)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	grad := Sobel(norm)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mask, fallback := EstimateForeground(norm, grad, preset.CenterBias)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	light := BuildLightTransfer(norm, grad, mask)

	return &Analysis{
		W:        w,
		H:        h,
		Preset:   preset,
		Norm:     norm,
		Grad:     grad,
		Mask:     mask,
		Light:    light,
		Fallback: fallback,
	}, nil
}

// RenderFrame builds the ink map under the given modulation and runs
// the binarizer with auto-tuning.
func (a *Analysis) RenderFrame(mod FrameModulation) *Result {
	r, _ := a.RenderFrameContext(context.Background(), mod)
	return r
}

// RenderFrameContext is RenderFrame with cancellation checked after
// the ink map and between auto-tune iterations.
func (a *Analysis) RenderFrameContext(ctx context.Context, mod FrameModulation) (*Result, error) {
	ink := buildInkMap(a, mod)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	binary, metrics, trace, err := autoTune(ctx, ink, a.Preset, a.Grad.Mag, a.Fallback)
	if err != nil {
		return nil, err
	}

	pix := make([]uint8, len(binary.Pix))
	for i, v := range binary.Pix {
		if v != 0 {
			pix[i] = 255
		}
	}

	return &Result{
		W:       a.W,
		H:       a.H,
		Pix:     pix,
		Metrics: metrics,
		Trace:   trace,
	}, nil
}

// Transform runs the full still pipeline: Analyze followed by a
// zero-modulation RenderFrame.
func Transform(rgb []uint8, w, h int, preset Preset) (*Result, error) {
	return TransformContext(context.Background(), rgb, w, h, preset)
}

// TransformContext is Transform with cancellation.
func TransformContext(ctx context.Context, rgb []uint8, w, h int, preset Preset) (*Result, error) {
	a, err := AnalyzeContext(ctx, rgb, w, h, preset)
	if err != nil {
		return nil, err
	}
	return a.RenderFrameContext(ctx, FrameModulation{})
}

// grayscale converts a planar RGB buffer to [0,1] luminance with
// Rec. 601 weights.
func grayscale(rgb []uint8, w, h int) *Field {
	n := w * h
	out := NewField(w, h)
	for i := 0; i < n; i++ {
		r := float32(rgb[i])
		g := float32(rgb[n+i])
		b := float32(rgb[2*n+i])
		out.Pix[i] = (0.299*r + 0.587*g + 0.114*b) / 255
	}
	return out
}

// Renderer encapsulates a preset and the input-preparation bounds so
// callers can convert image.Image values without touching the buffer
// plumbing. Renderers are stateless between calls and safe for
// concurrent use.
type Renderer struct {
	Preset  Preset
	MaxEdge int
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// NewRenderer creates a Renderer with the given options. Defaults:
// preset neon-contour, longer edge bounded to 1024.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		Preset:  PresetByName("neon-contour"),
		MaxEdge: 1024,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithPreset selects a preset by id; unknown ids resolve to
// neon-contour.
func WithPreset(name string) RendererOption {
	return func(r *Renderer) {
		r.Preset = PresetByName(name)
	}
}

// WithMaxEdge bounds the longer input edge before analysis.
func WithMaxEdge(n int) RendererOption {
	return func(r *Renderer) {
		r.MaxEdge = n
	}
}

// TransformImage prepares a decoded image (alpha flattened, longer
// edge bounded without enlargement) and runs the still pipeline.
func (r *Renderer) TransformImage(img image.Image) (*Result, error) {
	return r.TransformImageContext(context.Background(), img)
}

// TransformImageContext is TransformImage with cancellation.
func (r *Renderer) TransformImageContext(ctx context.Context, img image.Image) (*Result, error) {
	rgb, w, h := imageutil.Prepare(img, r.MaxEdge)
	return TransformContext(ctx, rgb, w, h, r.Preset)
}

// AnalyzeImage prepares a decoded image and runs the analysis phase
// only, for callers rendering multiple modulated frames.
func (r *Renderer) AnalyzeImage(img image.Image) (*Analysis, error) {
	rgb, w, h := imageutil.Prepare(img, r.MaxEdge)
	return Analyze(rgb, w, h, r.Preset)
}
