package experiments

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"twenty48/experiments/metrics"
)

const histogramBins = 10

// Summary aggregates the games of one agent.
type Summary struct {
	Agent      string
	Games      int
	MeanScore  float64
	StdDev     float64
	Median     float64
	MaxScore   int
	MeanMoves  float64
	MeanSpeed  float64 // moves per second
	MaxTiles   map[int]int
	Scores     []float64
	confidence float64 // half width of the 95% interval of MeanScore
}

// Summarize groups game records by agent, keeping the order agents first
// appear in.
func Summarize(records []metrics.GameRecord) []Summary {
	groups := lo.GroupBy(records, func(r metrics.GameRecord) string { return r.Agent })
	agents := lo.Uniq(lo.Map(records, func(r metrics.GameRecord, _ int) string { return r.Agent }))

	return lo.Map(agents, func(name string, _ int) Summary {
		return summarize(name, groups[name])
	})
}

func summarize(name string, records []metrics.GameRecord) Summary {
	scores := lo.Map(records, func(r metrics.GameRecord, _ int) float64 { return float64(r.Score) })
	slices.Sort(scores)
	moves := lo.Map(records, func(r metrics.GameRecord, _ int) float64 { return float64(r.Moves) })
	speeds := lo.Map(records, func(r metrics.GameRecord, _ int) float64 { return r.MovesPerSecond })

	s := Summary{
		Agent:     name,
		Games:     len(records),
		Median:    stat.Quantile(0.5, stat.Empirical, scores, nil),
		MaxScore:  lo.Max(lo.Map(records, func(r metrics.GameRecord, _ int) int { return r.Score })),
		MeanMoves: stat.Mean(moves, nil),
		MeanSpeed: stat.Mean(speeds, nil),
		MaxTiles:  lo.CountValues(lo.Map(records, func(r metrics.GameRecord, _ int) int { return r.MaxTile })),
		Scores:    scores,
	}
	s.MeanScore, s.StdDev = stat.MeanStdDev(scores, nil)
	if len(scores) < 2 {
		s.StdDev = 0
	} else {
		s.confidence = zValue(95) * s.StdDev / math.Sqrt(float64(len(scores)))
	}
	return s
}

// zValue returns the two-tailed z value for a confidence interval given in
// percent.
func zValue(confidence float64) float64 {
	dist := distuv.Normal{Mu: 0, Sigma: 1}
	return dist.Quantile((1 + confidence/100) / 2)
}

// Confidence is the half width of the 95% confidence interval of MeanScore.
func (s Summary) Confidence() float64 {
	return s.confidence
}

// Fprint writes a table row per agent, the max tile distribution and a score
// histogram.
func Fprint(w io.Writer, summaries []Summary) error {
	if _, err := fmt.Fprintf(w, "%-12s%-7s%-20s%-10s%-10s%-10s%-12s\n",
		"Agent", "Games", "Mean score", "Median", "Max", "Moves", "Moves/s"); err != nil {
		return err
	}
	for _, s := range summaries {
		mean := fmt.Sprintf("%.0f ± %.0f", s.MeanScore, s.Confidence())
		if _, err := fmt.Fprintf(w, "%-12s%-7d%-20s%-10.0f%-10d%-10.0f%-12.1f\n",
			s.Agent, s.Games, mean, s.Median, s.MaxScore, s.MeanMoves, s.MeanSpeed); err != nil {
			return err
		}
	}

	for _, s := range summaries {
		if _, err := fmt.Fprintf(w, "\n%s max tiles:", s.Agent); err != nil {
			return err
		}
		tiles := lo.Keys(s.MaxTiles)
		slices.Sort(tiles)
		for _, tile := range tiles {
			if _, err := fmt.Fprintf(w, " %d×%d", tile, s.MaxTiles[tile]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "\n%s scores:\n", s.Agent); err != nil {
			return err
		}
		if len(lo.Uniq(s.Scores)) < 2 {
			if _, err := fmt.Fprintf(w, "%v\n", s.Scores); err != nil {
				return err
			}
			continue
		}
		hist := histogram.Hist(histogramBins, s.Scores)
		if err := histogram.Fprint(w, hist, histogram.Linear(40)); err != nil {
			return err
		}
	}
	return nil
}
