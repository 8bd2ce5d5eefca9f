package model

// Token is a single recognized character or word.
type Token struct {
	Text       string   `json:"text"`
	BBox       NormBBox `json:"bbox"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Line is a recognized line of text.
type Line struct {
	Text   string   `json:"text"`
	BBox   NormBBox `json:"bbox"`
	Tokens []Token  `json:"tokens"`
}

// Block is a recognized page region: a paragraph, heading, list, or a
// single OCR word when recognition ran without layout analysis.
type Block struct {
	Text      string   `json:"text"`
	BBox      NormBBox `json:"bbox"`
	BlockType string   `json:"blockType"`
	Lines     []Line   `json:"lines"`
}

// MeanConfidence returns the mean token confidence across all lines of the
// block. Tokens without a confidence count as zero; a block with no tokens
// scores zero. Used to rank redundant recognitions of the same region.
func (b Block) MeanConfidence() float64 {
	var sum float64
	var n int
	for _, line := range b.Lines {
		for _, t := range line.Tokens {
			if t.Confidence != nil {
				sum += *t.Confidence
			}
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// TableCell is a single cell of a recognized table.
type TableCell struct {
	RowIndex int      `json:"rowIndex"`
	ColIndex int      `json:"colIndex"`
	RowSpan  int      `json:"rowSpan"`
	ColSpan  int      `json:"colSpan"`
	Text     string   `json:"text"`
	BBox     NormBBox `json:"bbox"`
}

// Table is a recognized table region with its cell grid.
type Table struct {
	BBox  NormBBox    `json:"bbox"`
	Rows  int         `json:"rows"`
	Cols  int         `json:"cols"`
	Cells []TableCell `json:"cells"`
}

// Figure is a recognized figure or image region.
type Figure struct {
	BBox       NormBBox `json:"bbox"`
	FigureType string   `json:"figureType"`
}

// Page is the recognized content of a single page. It is created by
// normalizing raw OCR output; merge operations produce a new Page rather
// than mutating one in place. Every bbox on a Page is normalized and
// DPI-independent.
type Page struct {
	PageIndex    int      `json:"pageIndex"`
	DPI          int      `json:"dpi"`
	WidthPx      int      `json:"widthPx"`
	HeightPx     int      `json:"heightPx"`
	Blocks       []Block  `json:"blocks"`
	Tables       []Table  `json:"tables,omitempty"`
	Figures      []Figure `json:"figures,omitempty"`
	ReadingOrder []int    `json:"readingOrder,omitempty"`
}

// Result is the envelope a recognition collaborator returns: one Page per
// processed page or tile, the wall-clock processing time in seconds, and
// the name of the model that produced it.
type Result struct {
	Pages          []Page  `json:"pages"`
	ProcessingTime float64 `json:"processingTime"`
	Model          string  `json:"model"`
}
