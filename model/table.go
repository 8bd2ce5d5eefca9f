package model

import "strings"

// Grid arranges the table's cells into a dense rows×cols matrix of cell
// text. Cells outside the declared grid are ignored; spanned positions
// beyond the anchor cell are left empty.
func (t Table) Grid() [][]string {
	if t.Rows <= 0 || t.Cols <= 0 {
		return nil
	}

	grid := make([][]string, t.Rows)
	for i := range grid {
		grid[i] = make([]string, t.Cols)
	}

	for _, c := range t.Cells {
		if c.RowIndex < 0 || c.RowIndex >= t.Rows || c.ColIndex < 0 || c.ColIndex >= t.Cols {
			continue
		}
		grid[c.RowIndex][c.ColIndex] = c.Text
	}

	return grid
}

// GetText returns the table content as tab-separated rows.
func (t Table) GetText() string {
	var sb strings.Builder
	for _, row := range t.Grid() {
		sb.WriteString(strings.Join(row, "\t"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToMarkdown converts the table to markdown format. The first row is
// treated as the header.
func (t Table) ToMarkdown() string {
	grid := t.Grid()
	if len(grid) == 0 {
		return ""
	}

	var sb strings.Builder

	writeRow := func(row []string) {
		for _, text := range row {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(text, "\n", " "))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	writeRow(grid[0])

	for range grid[0] {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")

	for _, row := range grid[1:] {
		writeRow(row)
	}

	return sb.String()
}
