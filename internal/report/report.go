package report

import (
	"fmt"

	"WagerWatch/internal/metrics"
	"WagerWatch/internal/model"

	"github.com/xuri/excelize/v2"
)

// Sheet is one workbook tab. Percent sheets get 0.00% number formatting;
// raw-total sheets stay plain numbers.
type Sheet struct {
	View    *metrics.MetricView
	Percent bool
}

// BuildSheets derives the five analysis views from the current dataset:
// raw Handle and GGR pivots, the Hold ratio, and a YoY view per metric.
func BuildSheets(ds *model.Dataset) []Sheet {
	handle := metrics.Pivot(ds, metrics.FieldHandle, "Handle")
	ggr := metrics.Pivot(ds, metrics.FieldRevenue, "GGR")
	return []Sheet{
		{View: handle},
		{View: ggr},
		{View: metrics.Ratio(ggr, handle, "Hold"), Percent: true},
		{View: metrics.YearOverYear(handle, "Handle (YoY)"), Percent: true},
		{View: metrics.YearOverYear(ggr, "GGR (YoY)"), Percent: true},
	}
}

// WriteWorkbook renders the sheets into a single xlsx file. Undefined cells
// are written as true blanks, distinguishable from a computed 0.
func WriteWorkbook(path string, sheets []Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	percentFmt := "0.00%"
	percentStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &percentFmt})
	if err != nil {
		return fmt.Errorf("create percent style: %w", err)
	}

	for i, sheet := range sheets {
		name := sheet.View.Name
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return err
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return err
			}
		}
		if err := writeSheet(f, name, sheet, percentStyle); err != nil {
			return fmt.Errorf("write sheet %s: %w", name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, sheet Sheet, percentStyle int) error {
	view := sheet.View

	if err := f.SetCellValue(name, "A1", "Date"); err != nil {
		return err
	}
	for j, col := range view.Columns {
		cell, _ := excelize.CoordinatesToCellName(j+2, 1)
		if err := f.SetCellValue(name, cell, col); err != nil {
			return err
		}
	}

	for i, date := range view.Dates {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetCellValue(name, cell, date.Format(model.DateLayout)); err != nil {
			return err
		}
		for j := range view.Columns {
			v := view.Cells[i][j]
			if !v.Valid {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(j+2, i+2)
			if err := f.SetCellValue(name, cell, v.Value); err != nil {
				return err
			}
		}
	}

	if sheet.Percent && len(view.Dates) > 0 && len(view.Columns) > 0 {
		top, _ := excelize.CoordinatesToCellName(2, 2)
		bottom, _ := excelize.CoordinatesToCellName(len(view.Columns)+1, len(view.Dates)+1)
		if err := f.SetCellStyle(name, top, bottom, percentStyle); err != nil {
			return err
		}
	}
	return nil
}
