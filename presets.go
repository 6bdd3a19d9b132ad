package img2ink

// DitherMode selects the binarization strategy.
type DitherMode int

const (
	// DitherFloyd is serial Floyd–Steinberg error diffusion.
	DitherFloyd DitherMode = iota
	// DitherOrdered is ordered 8×8 Bayer thresholding.
	DitherOrdered
)

// Preset bundles every tuning constant for one rendering style. The
// values are centralized here so a style is a single record rather
// than knobs scattered through the stages.
type Preset struct {
	Name string

	// Ink-map blend weights.
	EdgeWeight    float32
	FillWeight    float32
	TextureWeight float32
	GhostWeight   float32

	// Structure.
	StrokeThickness int
	GrainScale      float32
	Smoothing       float32

	// Coverage control.
	WhiteCoverageTarget   float64
	CoverageTolerance     float64
	MinWhiteCoverageFloor float64

	// Component pruning.
	ComponentMinArea  int
	ComponentMaxCount int

	// Gates and gammas.
	CenterBias            float32
	EdgeGamma             float32
	FillGamma             float32
	BandFrequency         float32
	Spaceiness            float32
	BackgroundSuppression float32
	LumaSuppression       float32
	CenterFocus           float32
	TopSuppression        float32

	// Isolation.
	IsolationRadius int
	IsolateWhites   bool

	Dither DitherMode
}

var presets = []Preset{
	{
		Name:                  "neon-contour",
		EdgeWeight:            1.15,
		FillWeight:            0.25,
		TextureWeight:         0.18,
		GhostWeight:           0.12,
		StrokeThickness:       1,
		GrainScale:            3,
		Smoothing:             1,
		WhiteCoverageTarget:   0.13,
		CoverageTolerance:     0.03,
		MinWhiteCoverageFloor: 0.05,
		ComponentMinArea:      6,
		ComponentMaxCount:     2400,
		CenterBias:            0.35,
		EdgeGamma:             0.85,
		FillGamma:             1.6,
		BandFrequency:         1.4,
		Spaceiness:            0.35,
		BackgroundSuppression: 0.55,
		LumaSuppression:       0.35,
		CenterFocus:           0.3,
		TopSuppression:        0.4,
		IsolationRadius:       0,
		IsolateWhites:         false,
		Dither:                DitherFloyd,
	},
	{
		Name:                  "silhouette-etch",
		EdgeWeight:            0.45,
		FillWeight:            0.95,
		TextureWeight:         0.3,
		GhostWeight:           0.1,
		StrokeThickness:       2,
		GrainScale:            4,
		Smoothing:             2,
		WhiteCoverageTarget:   0.15,
		CoverageTolerance:     0.035,
		MinWhiteCoverageFloor: 0.06,
		ComponentMinArea:      10,
		ComponentMaxCount:     1600,
		CenterBias:            0.45,
		EdgeGamma:             1.1,
		FillGamma:             1.2,
		BandFrequency:         1.1,
		Spaceiness:            0.25,
		BackgroundSuppression: 0.7,
		LumaSuppression:       0.55,
		CenterFocus:           0.45,
		TopSuppression:        0.55,
		IsolationRadius:       0,
		IsolateWhites:         false,
		Dither:                DitherFloyd,
	},
	{
		Name:                  "industrial-noise",
		EdgeWeight:            0.55,
		FillWeight:            0.4,
		TextureWeight:         0.85,
		GhostWeight:           0.3,
		StrokeThickness:       1,
		GrainScale:            2,
		Smoothing:             0,
		WhiteCoverageTarget:   0.16,
		CoverageTolerance:     0.04,
		MinWhiteCoverageFloor: 0.04,
		ComponentMinArea:      3,
		ComponentMaxCount:     5200,
		CenterBias:            0,
		EdgeGamma:             1.0,
		FillGamma:             1.4,
		BandFrequency:         2.2,
		Spaceiness:            0.6,
		BackgroundSuppression: 0.35,
		LumaSuppression:       0.25,
		CenterFocus:           0.15,
		TopSuppression:        0.25,
		IsolationRadius:       1,
		IsolateWhites:         true,
		Dither:                DitherOrdered,
	},
	{
		Name:                  "crowd-ghost",
		EdgeWeight:            0.5,
		FillWeight:            0.55,
		TextureWeight:         0.35,
		GhostWeight:           0.8,
		StrokeThickness:       1,
		GrainScale:            5,
		Smoothing:             1,
		WhiteCoverageTarget:   0.14,
		CoverageTolerance:     0.035,
		MinWhiteCoverageFloor: 0.05,
		ComponentMinArea:      8,
		ComponentMaxCount:     2000,
		CenterBias:            0.4,
		EdgeGamma:             1.05,
		FillGamma:             1.35,
		BandFrequency:         3.1,
		Spaceiness:            0.45,
		BackgroundSuppression: 0.5,
		LumaSuppression:       0.45,
		CenterFocus:           0.5,
		TopSuppression:        0.6,
		IsolationRadius:       0,
		IsolateWhites:         false,
		Dither:                DitherFloyd,
	},
	{
		Name:                  "topo-stroke",
		EdgeWeight:            0.9,
		FillWeight:            0.5,
		TextureWeight:         0.4,
		GhostWeight:           0.45,
		StrokeThickness:       2,
		GrainScale:            6,
		Smoothing:             2,
		WhiteCoverageTarget:   0.15,
		CoverageTolerance:     0.035,
		MinWhiteCoverageFloor: 0.06,
		ComponentMinArea:      14,
		ComponentMaxCount:     1200,
		CenterBias:            0.3,
		EdgeGamma:             0.9,
		FillGamma:             1.3,
		BandFrequency:         2.6,
		Spaceiness:            0.3,
		BackgroundSuppression: 0.6,
		LumaSuppression:       0.4,
		CenterFocus:           0.35,
		TopSuppression:        0.35,
		IsolationRadius:       0,
		IsolateWhites:         false,
		Dither:                DitherFloyd,
	},
}

// PresetByName resolves a preset id. Unknown ids fall back to
// neon-contour.
func PresetByName(name string) Preset {
	for _, p := range presets {
		if p.Name == name {
			return p
		}
	}
	return presets[0]
}

// PresetNames lists the available preset ids in declaration order.
func PresetNames() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}
