package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"team-planner/coverage"
	"team-planner/game"
	"team-planner/types"
)

const (
	SheetRoster    = "Roster"
	SheetOffensive = "Offensive"
	SheetDefensive = "Defensive"
)

func colName(n int) string {
	// 1-indexed: 1 -> A, 26 -> Z, 27 -> AA
	if n <= 0 {
		return ""
	}
	out := ""
	for n > 0 {
		n--
		out = string(rune('A'+(n%26))) + out
		n /= 26
	}
	return out
}

func cell(col, row int) string {
	return fmt.Sprintf("%s%d", colName(col), row)
}

func writeHeader(f *excelize.File, sheet string, styleID int, headers ...string) error {
	for i, h := range headers {
		if err := f.SetCellValue(sheet, cell(i+1, 1), h); err != nil {
			return err
		}
	}
	return f.SetCellStyle(sheet, "A1", cell(len(headers), 1), styleID)
}

// WriteXLSX exports the roster and its coverage as a three-sheet workbook.
func WriteXLSX(path string, r *game.Roster, res coverage.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetRoster); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	for _, s := range []string{SheetOffensive, SheetDefensive} {
		if _, err := f.NewSheet(s); err != nil {
			return fmt.Errorf("report: new sheet %s: %w", s, err)
		}
	}

	headerStyleID, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}

	if err := writeRoster(f, r, headerStyleID); err != nil {
		return fmt.Errorf("report: roster sheet: %w", err)
	}
	if err := writeOffensive(f, res, headerStyleID); err != nil {
		return fmt.Errorf("report: offensive sheet: %w", err)
	}
	if err := writeDefensive(f, res, headerStyleID); err != nil {
		return fmt.Errorf("report: defensive sheet: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}

func writeRoster(f *excelize.File, r *game.Roster, styleID int) error {
	headers := []string{"Slot", "Name", "Species", "Types", "Nature", "Item"}
	for i := 1; i <= game.MaxMoves; i++ {
		headers = append(headers, fmt.Sprintf("Move %d", i))
	}
	if err := writeHeader(f, SheetRoster, styleID, headers...); err != nil {
		return err
	}

	row := 2
	for i := 0; i < r.Len(); i++ {
		m := r.Slot(i)
		if m == nil {
			continue
		}
		ts := make([]string, len(m.Pokemon.Types))
		for j, t := range m.Pokemon.Types {
			ts[j] = t.String()
		}
		item := ""
		if m.HeldItem != nil {
			item = m.HeldItem.Name
		}
		values := []any{i + 1, m.DisplayName(), m.Pokemon.Name, strings.Join(ts, "/"), string(m.Nature), item}
		for _, mv := range m.Moves {
			values = append(values, mv.Name)
		}
		if err := f.SetSheetRow(SheetRoster, cell(1, row), &values); err != nil {
			return err
		}
		row++
	}
	return nil
}

func writeOffensive(f *excelize.File, res coverage.Result, styleID int) error {
	if err := writeHeader(f, SheetOffensive, styleID, "Defender", "Super effective moves"); err != nil {
		return err
	}
	for i, t := range types.All {
		row := i + 2
		if err := f.SetCellValue(SheetOffensive, cell(1, row), t.String()); err != nil {
			return err
		}
		if err := f.SetCellValue(SheetOffensive, cell(2, row), res.Offensive[t]); err != nil {
			return err
		}
	}
	return nil
}

func writeDefensive(f *excelize.File, res coverage.Result, styleID int) error {
	if err := writeHeader(f, SheetDefensive, styleID, "Attack", "Weak", "Resist", "Immune", "Weak count"); err != nil {
		return err
	}
	for i, t := range types.All {
		d := res.Defensive[t]
		values := []any{
			t.String(),
			strings.Join(d.Weaknesses, ", "),
			strings.Join(d.Resistances, ", "),
			strings.Join(d.Immunities, ", "),
			len(d.Weaknesses),
		}
		if err := f.SetSheetRow(SheetDefensive, cell(1, i+2), &values); err != nil {
			return err
		}
	}
	return nil
}
