package img2ink

import (
	"context"
	"math"
)

// Metrics describes the tuned result. TunedIterations reports the
// last completed loop index (always 8 after a full tune), not the
// index of the winning iteration.
type Metrics struct {
	WhiteRatio           float64
	ComponentCount       int
	MeanComponentArea    float64
	MaxComponentArea     int
	EdgeAlignmentScore   float64
	FallbackSegmentation bool
	TunedIterations      int
}

// TunePoint is one auto-tune iteration as recorded in the trace.
type TunePoint struct {
	Iteration int
	Threshold float64
	Coverage  float64
	Cost      float64
}

type tuneResult struct {
	binary   *Bitmap
	coverage float64
	stats    componentStats
	align    float64
	cost     float64
}

func ditherMap(m *Field, p Preset, threshold float32) *Bitmap {
	if p.Dither == DitherOrdered {
		return DitherBayer(m, threshold)
	}
	return DitherFloydSteinberg(m, threshold)
}

// edgeAlignment is the fraction of set pixels whose source gradient
// magnitude reaches 0.2. Zero when nothing is set.
func edgeAlignment(b *Bitmap, mag *Field) float64 {
	whites, aligned := 0, 0
	for i, v := range b.Pix {
		if v == 0 {
			continue
		}
		whites++
		if mag.Pix[i] >= 0.2 {
			aligned++
		}
	}
	if whites == 0 {
		return 0
	}
	return float64(aligned) / float64(whites)
}

// bandDensities splits the set pixels at y = 0.28h and returns the
// fill density of the top band and of the rest.
func bandDensities(b *Bitmap) (top, low float64) {
	w, h := b.W, b.H
	split := int(0.28 * float64(h))
	topWhites, lowWhites := 0, 0
	for y := 0; y < h; y++ {
		row := b.Pix[y*w : y*w+w]
		count := 0
		for _, v := range row {
			if v != 0 {
				count++
			}
		}
		if y < split {
			topWhites += count
		} else {
			lowWhites += count
		}
	}
	if split > 0 {
		top = float64(topWhites) / float64(split*w)
	}
	if h-split > 0 {
		low = float64(lowWhites) / float64((h-split)*w)
	}
	return top, low
}

// tuneLoop runs the eight-iteration threshold search against one ink
// map and returns the lowest-cost result with the iteration trace.
func tuneLoop(ctx context.Context, ink *Field, p Preset, mag *Field, startIteration int) (tuneResult, []TunePoint, error) {
	threshold := 0.34 + 0.04*p.Spaceiness
	step := float32(0.16)
	best := tuneResult{cost: math.Inf(1)}
	var trace []TunePoint

	for i := 1; i <= 8; i++ {
		if err := ctx.Err(); err != nil {
			return best, trace, err
		}

		raw := ditherMap(ink, p, threshold)
		post := postProcess(raw, p, ink, true)
		coverage := float64(post.Ones()) / float64(len(post.Pix))
		if coverage < p.MinWhiteCoverageFloor && p.IsolateWhites {
			post = postProcess(raw, p, ink, false)
			coverage = float64(post.Ones()) / float64(len(post.Pix))
		}

		stats := measureComponents(post)
		align := edgeAlignment(post, mag)
		topDensity, lowDensity := bandDensities(post)

		cost := math.Abs(coverage-p.WhiteCoverageTarget) / math.Max(p.CoverageTolerance, 0.01)
		cost += math.Max(0, float64(stats.count-p.ComponentMaxCount)) / math.Max(1, float64(p.ComponentMaxCount))
		if stats.count == 0 {
			cost += 2
		}
		cost += 1.4 * math.Max(0, 0.28-align)
		cost += 18 * math.Max(0, topDensity-1.15*lowDensity)

		trace = append(trace, TunePoint{
			Iteration: startIteration + i,
			Threshold: float64(threshold),
			Coverage:  coverage,
			Cost:      cost,
		})

		if cost < best.cost {
			best = tuneResult{
				binary:   post,
				coverage: coverage,
				stats:    stats,
				align:    align,
				cost:     cost,
			}
		}

		if coverage > p.WhiteCoverageTarget {
			threshold += step
		} else {
			threshold -= step
		}
		if threshold < 0 {
			threshold = 0
		}
		if threshold > 1 {
			threshold = 1
		}
		step *= 0.62
	}

	return best, trace, nil
}

// autoTune searches for the scalar threshold that best satisfies the
// preset's coverage, edge-alignment, and topology goals. When even the
// best iteration cannot reach 90% of the coverage floor, the map is
// contrast-boosted and the full loop restarts against it (the rescue
// pass); the rescue result is the one emitted.
func autoTune(ctx context.Context, ink *Field, p Preset, mag *Field, fallback bool) (*Bitmap, Metrics, []TunePoint, error) {
	best, trace, err := tuneLoop(ctx, ink, p, mag, 0)
	if err != nil {
		return nil, Metrics{}, trace, err
	}

	if best.coverage < 0.9*p.MinWhiteCoverageFloor {
		boosted := ink.Clone()
		NormalizePercentiles(boosted, 0.005, 0.985)
		for i, v := range boosted.Pix {
			boosted.Pix[i] = clamp01(powf(v, 0.74) * 1.35)
		}
		rescued, rescueTrace, err := tuneLoop(ctx, boosted, p, mag, len(trace))
		if err != nil {
			return nil, Metrics{}, trace, err
		}
		best = rescued
		trace = append(trace, rescueTrace...)
	}

	m := Metrics{
		WhiteRatio:           best.coverage,
		ComponentCount:       best.stats.count,
		MeanComponentArea:    best.stats.meanArea,
		MaxComponentArea:     best.stats.maxArea,
		EdgeAlignmentScore:   best.align,
		FallbackSegmentation: fallback,
		TunedIterations:      8,
	}
	return best.binary, m, trace, nil
}
