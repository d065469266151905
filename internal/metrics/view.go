package metrics

import (
	"sort"
	"time"

	"WagerWatch/internal/model"
)

// StatewideColumn is the trailing aggregate column: the row-wise sum over all
// brand columns for a date.
const StatewideColumn = "Statewide"

// Cell is an optional grid value. Invalid cells represent undefined results
// (zero denominator, missing year-ago period) and render as blanks, never as 0.
type Cell struct {
	Value float64
	Valid bool
}

// Number wraps a defined value.
func Number(v float64) Cell { return Cell{Value: v, Valid: true} }

// Blank is the undefined cell.
var Blank = Cell{}

// Field selects which monetary metric of an observation feeds a view.
type Field int

const (
	FieldHandle Field = iota
	FieldRevenue
)

// MetricView is a date-by-brand numeric grid. Dates are sorted descending
// (most recent first, a presentation contract for the report sheets) and the
// last column is always the Statewide aggregate.
type MetricView struct {
	Name    string
	Dates   []time.Time
	Columns []string
	Cells   [][]Cell // Cells[i][j] holds Dates[i] × Columns[j]
}

// Cell returns the value at a (date, column) position, Blank if either axis
// is absent from the view.
func (v *MetricView) Cell(date time.Time, column string) Cell {
	i, j := -1, -1
	for idx, d := range v.Dates {
		if d.Equal(date) {
			i = idx
			break
		}
	}
	for idx, c := range v.Columns {
		if c == column {
			j = idx
			break
		}
	}
	if i < 0 || j < 0 {
		return Blank
	}
	return v.Cells[i][j]
}

// Pivot builds a date × brand grid summing the selected field per cell;
// combinations with no observations default to 0. The Statewide column is the
// row-wise sum across all brands.
func Pivot(ds *model.Dataset, field Field, name string) *MetricView {
	sums := make(map[time.Time]map[string]float64)
	for _, o := range ds.Observations() {
		row, ok := sums[o.Date]
		if !ok {
			row = make(map[string]float64)
			sums[o.Date] = row
		}
		switch field {
		case FieldHandle:
			row[o.Brand] += o.Handle
		case FieldRevenue:
			row[o.Brand] += o.Revenue
		}
	}

	dates := make([]time.Time, 0, len(sums))
	for d := range sums {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	brands := ds.BrandNames()
	columns := append(append([]string{}, brands...), StatewideColumn)

	cells := make([][]Cell, len(dates))
	for i, d := range dates {
		row := make([]Cell, len(columns))
		total := 0.0
		for j, b := range brands {
			v := sums[d][b]
			row[j] = Number(v)
			total += v
		}
		row[len(columns)-1] = Number(total)
		cells[i] = row
	}

	return &MetricView{Name: name, Dates: dates, Columns: columns, Cells: cells}
}

// Ratio divides two views cell-wise on the numerator's axes. A cell is blank
// whenever the denominator is zero or either operand is undefined; division
// by zero is an expected weekly occurrence, not an error.
func Ratio(numerator, denominator *MetricView, name string) *MetricView {
	cells := make([][]Cell, len(numerator.Dates))
	for i, date := range numerator.Dates {
		row := make([]Cell, len(numerator.Columns))
		for j, col := range numerator.Columns {
			num := numerator.Cells[i][j]
			den := denominator.Cell(date, col)
			if !num.Valid || !den.Valid || den.Value == 0 {
				row[j] = Blank
				continue
			}
			row[j] = Number(num.Value / den.Value)
		}
		cells[i] = row
	}
	return &MetricView{Name: name, Dates: numerator.Dates, Columns: numerator.Columns, Cells: cells}
}
