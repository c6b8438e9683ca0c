package matchservice

import (
	"bytes"
	"context"
	"fmt"

	matchdomain "github.com/Black-And-White-Club/match-tracker/app/modules/match/domain"
	"github.com/Black-And-White-Club/match-tracker/pkg/results"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var teamColors = []drawing.Color{
	drawing.ColorFromHex("1b5e20"),
	drawing.ColorFromHex("c62828"),
	drawing.ColorFromHex("1565c0"),
}

// RenderScoreChart draws cumulative strokes per team by hole as a PNG.
func (s *MatchService) RenderScoreChart(ctx context.Context, id matchdomain.MatchID) (FileResult, error) {
	return withTelemetry(s, ctx, "RenderScoreChart", id, func(ctx context.Context) (FileResult, error) {
		m, failure, err := s.loadMatch(ctx, nil, id, false)
		if err != nil {
			return FileResult{}, err
		}
		if failure != nil {
			return results.FailureResult[[]byte](failure), nil
		}

		png, err := renderScoreChart(m)
		if err != nil {
			return FileResult{}, fmt.Errorf("failed to render score chart: %w", err)
		}
		return results.SuccessResult[[]byte, error](png), nil
	})
}

// cumulativeStrokes returns, per team, the hole numbers with an entered score and the running
// stroke total through each of them.
func cumulativeStrokes(m matchdomain.Match) (holes, totals [][]float64) {
	holes = make([][]float64, len(m.Teams))
	totals = make([][]float64, len(m.Teams))
	for i, t := range m.Teams {
		running := 0
		for _, h := range m.Holes {
			strokes, _ := h.Strokes(t.ID)
			if strokes == nil {
				continue
			}
			running += *strokes
			holes[i] = append(holes[i], float64(h.Number))
			totals[i] = append(totals[i], float64(running))
		}
	}
	return holes, totals
}

func renderScoreChart(m matchdomain.Match) ([]byte, error) {
	holes, totals := cumulativeStrokes(m)

	var series []chart.Series
	maxTotal := 0.0
	for i, t := range m.Teams {
		if len(holes[i]) == 0 {
			continue
		}
		color := teamColors[i%len(teamColors)]
		series = append(series, chart.ContinuousSeries{
			Name:    t.Name,
			XValues: holes[i],
			YValues: totals[i],
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotColor:    color,
				DotWidth:    4,
			},
		})
		if last := totals[i][len(totals[i])-1]; last > maxTotal {
			maxTotal = last
		}
	}
	if len(series) == 0 {
		return renderPlaceholder("No scores entered yet")
	}

	ticks := make([]chart.Tick, 0, matchdomain.HoleCount)
	for n := 1; n <= matchdomain.HoleCount; n++ {
		ticks = append(ticks, chart.Tick{Value: float64(n), Label: fmt.Sprintf("%d", n)})
	}

	graph := chart.Chart{
		Title:  m.Title,
		Width:  900,
		Height: 450,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "Hole",
			Range: &chart.ContinuousRange{Min: 1, Max: matchdomain.HoleCount},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  "Strokes",
			Range: &chart.ContinuousRange{Min: 0, Max: maxTotal + 5},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderPlaceholder(msg string) ([]byte, error) {
	graph := chart.Chart{
		Width:          400,
		Height:         200,
		XAxis:          chart.XAxis{Style: chart.Hidden()},
		YAxis:          chart.YAxis{Style: chart.Hidden()},
		YAxisSecondary: chart.YAxis{Style: chart.Hidden()},
		// go-chart refuses to render without a visible series and two distinct x values.
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style:   chart.Style{StrokeColor: drawing.ColorTransparent},
				XValues: []float64{0, 1},
				YValues: []float64{0, 1},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, _ chart.Style) {
				r.SetFontColor(drawing.ColorBlack)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				r.Text(msg, (cb.Width()-tb.Width())/2, (cb.Height()+tb.Height())/2)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
