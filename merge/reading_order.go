package merge

import (
	"math"
	"sort"

	"github.com/tsawler/mosaic/model"
)

// ComputeReadingOrder derives a top-to-bottom, left-to-right reading order
// for a merged page. Blocks are banded into rows: a block joins the current
// row when its vertical extent overlaps the row's by at least half the
// smaller height. Rows are read top to bottom, blocks within a row left to
// right. The result is a permutation of block indices suitable for
// Page.ReadingOrder.
func ComputeReadingOrder(page *model.Page) []int {
	if page == nil || len(page.Blocks) == 0 {
		return nil
	}

	idx := make([]int, len(page.Blocks))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return page.Blocks[idx[a]].BBox.Top() < page.Blocks[idx[b]].BBox.Top()
	})

	var rows [][]int
	var rowTop, rowBottom float64

	for _, i := range idx {
		b := page.Blocks[i].BBox
		if len(rows) > 0 && verticalOverlap(rowTop, rowBottom, b.Top(), b.Bottom()) {
			last := len(rows) - 1
			rows[last] = append(rows[last], i)
			if b.Bottom() > rowBottom {
				rowBottom = b.Bottom()
			}
			continue
		}
		rows = append(rows, []int{i})
		rowTop, rowBottom = b.Top(), b.Bottom()
	}

	order := make([]int, 0, len(idx))
	for _, row := range rows {
		sort.SliceStable(row, func(a, b int) bool {
			return page.Blocks[row[a]].BBox.Left() < page.Blocks[row[b]].BBox.Left()
		})
		order = append(order, row...)
	}

	return order
}

// verticalOverlap reports whether two vertical intervals overlap by at
// least half the smaller interval's height.
func verticalOverlap(top1, bottom1, top2, bottom2 float64) bool {
	overlap := math.Min(bottom1, bottom2) - math.Max(top1, top2)
	if overlap <= 0 {
		return false
	}

	smaller := math.Min(bottom1-top1, bottom2-top2)
	if smaller <= 0 {
		return false
	}

	return overlap >= smaller/2
}
