package matchservice

import (
	"context"
	"fmt"
	"strconv"

	matchdomain "github.com/Black-And-White-Club/match-tracker/app/modules/match/domain"
	"github.com/Black-And-White-Club/match-tracker/pkg/results"
	"github.com/xuri/excelize/v2"
)

const (
	scorecardSheet = "Scorecard"
	pressesSheet   = "Presses"
	summarySheet   = "Summary"
)

// ExportScorecard renders the match as an .xlsx workbook: the hole-by-hole card, the presses
// with their settlement, and a summary of formats and balances.
func (s *MatchService) ExportScorecard(ctx context.Context, id matchdomain.MatchID) (FileResult, error) {
	return withTelemetry(s, ctx, "ExportScorecard", id, func(ctx context.Context) (FileResult, error) {
		m, failure, err := s.loadMatch(ctx, nil, id, false)
		if err != nil {
			return FileResult{}, err
		}
		if failure != nil {
			return results.FailureResult[[]byte](failure), nil
		}

		data, err := buildScorecard(m)
		if err != nil {
			return FileResult{}, fmt.Errorf("failed to build scorecard: %w", err)
		}
		return results.SuccessResult[[]byte, error](data), nil
	})
}

// scorecardRows lays out one row per team: name, holes 1-18, Out, In, Total. Unentered holes
// are left blank.
func scorecardRows(m matchdomain.Match) [][]any {
	header := []any{"Team"}
	for n := 1; n <= matchdomain.HoleCount; n++ {
		header = append(header, strconv.Itoa(n))
	}
	header = append(header, "Out", "In", "Total")

	rows := [][]any{header}
	for _, t := range m.Teams {
		row := []any{t.Name}
		out, in := 0, 0
		for n := 1; n <= matchdomain.HoleCount; n++ {
			h, ok := m.Hole(n)
			if !ok {
				row = append(row, nil)
				continue
			}
			strokes, _ := h.Strokes(t.ID)
			if strokes == nil {
				row = append(row, nil)
				continue
			}
			row = append(row, *strokes)
			if n <= 9 {
				out += *strokes
			} else {
				in += *strokes
			}
		}
		row = append(row, out, in, out+in)
		rows = append(rows, row)
	}
	return rows
}

func buildScorecard(m matchdomain.Match) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", scorecardSheet); err != nil {
		return nil, err
	}
	if err := writeRows(f, scorecardSheet, scorecardRows(m)); err != nil {
		return nil, err
	}

	report := matchdomain.Evaluate(m)
	teamName := func(id matchdomain.TeamID) string {
		if t, ok := m.Team(id); ok {
			return t.Name
		}
		return ""
	}

	presses := [][]any{{"From", "To", "Type", "Amount", "Hole Started", "Status", "Winner"}}
	for _, p := range report.Presses {
		presses = append(presses, []any{
			teamName(p.From), teamName(p.To), p.Type.Label(), p.Amount, p.HoleStarted, p.Status, teamName(p.Winner),
		})
	}
	if _, err := f.NewSheet(pressesSheet); err != nil {
		return nil, err
	}
	if err := writeRows(f, pressesSheet, presses); err != nil {
		return nil, err
	}

	summary := [][]any{{"Title", m.Title}, {"Status", report.Status}, {}}
	summary = append(summary, []any{"Format", "Bet", "Status"})
	for _, fr := range report.Formats {
		summary = append(summary, []any{fr.Type.Label(), fr.BetAmount, fr.Status})
	}
	summary = append(summary, []any{}, []any{"Team", "Net"})
	for _, b := range report.Balances {
		summary = append(summary, []any{b.TeamName, b.Net})
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
