package metrics

// YearOverYear computes, per column independently, the percentage change of
// each cell against the fuzzily aligned value from 52 weeks earlier:
// current/prior − 1. Cells with no aligned prior date, an undefined prior, or
// a zero prior are blank.
func YearOverYear(view *MetricView, name string) *MetricView {
	cells := make([][]Cell, len(view.Dates))
	for i, date := range view.Dates {
		row := make([]Cell, len(view.Columns))
		cells[i] = row

		priorDate, ok := AlignYearPrior(date, view.Dates)
		if !ok {
			continue // row stays blank
		}
		priorIdx := -1
		for idx, d := range view.Dates {
			if d.Equal(priorDate) {
				priorIdx = idx
				break
			}
		}

		for j := range view.Columns {
			cur := view.Cells[i][j]
			prior := view.Cells[priorIdx][j]
			if !cur.Valid || !prior.Valid || prior.Value == 0 {
				continue
			}
			row[j] = Number(cur.Value/prior.Value - 1)
		}
	}
	return &MetricView{Name: name, Dates: view.Dates, Columns: view.Columns, Cells: cells}
}
