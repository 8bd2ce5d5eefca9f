package hocr

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/tsawler/mosaic/model"
)

// ============================================================================
// Test helpers
// ============================================================================

func conf(v float64) *float64 { return &v }

func samplePage() model.Page {
	return model.Page{
		PageIndex: 2,
		WidthPx:   1000,
		HeightPx:  500,
		Blocks: []model.Block{
			{
				Text:      "Invoice #123",
				BBox:      model.NormBBox{X: 0.1, Y: 0.1, W: 0.3, H: 0.08},
				BlockType: "text",
				Lines: []model.Line{
					{
						Text: "Invoice #123",
						BBox: model.NormBBox{X: 0.1, Y: 0.1, W: 0.3, H: 0.08},
						Tokens: []model.Token{
							{Text: "Invoice", BBox: model.NormBBox{X: 0.1, Y: 0.1, W: 0.15, H: 0.08}, Confidence: conf(0.95)},
							{Text: "#123", BBox: model.NormBBox{X: 0.27, Y: 0.1, W: 0.13, H: 0.08}, Confidence: conf(0.80)},
						},
					},
				},
			},
		},
	}
}

// ============================================================================
// Export
// ============================================================================

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, samplePage()); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()

	wantFragments := []string{
		`class="ocr_page"`,
		`title="bbox 0 0 1000 500; ppageno 2"`,
		`class="ocr_carea"`,
		`class="ocr_line"`,
		`class="ocrx_word"`,
		// 0.1*1000=100, 0.1*500=50, right 0.25*1000=250, bottom 0.18*500=90
		`bbox 100 50 250 90; x_wconf 95`,
		`>Invoice</span>`,
		`x_wconf 80`,
	}
	for _, frag := range wantFragments {
		if !strings.Contains(out, frag) {
			t.Errorf("output missing %q", frag)
		}
	}
}

func TestExportBadDimensions(t *testing.T) {
	var buf bytes.Buffer
	err := Export(&buf, model.Page{WidthPx: 0, HeightPx: 500})
	if !errors.Is(err, model.ErrBadDimensions) {
		t.Errorf("Export() error = %v, want ErrBadDimensions", err)
	}
}

func TestExportEscapesText(t *testing.T) {
	page := model.Page{
		WidthPx:  100,
		HeightPx: 100,
		Blocks: []model.Block{
			{
				Lines: []model.Line{
					{
						Tokens: []model.Token{
							{Text: "a<b>&c", BBox: model.NormBBox{X: 0.1, Y: 0.1, W: 0.2, H: 0.2}},
						},
					},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := Export(&buf, page); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if strings.Contains(buf.String(), ">a<b>&c<") {
		t.Error("token text was not escaped")
	}
	if !strings.Contains(buf.String(), "a&lt;b&gt;&amp;c") {
		t.Error("expected escaped token text in output")
	}
}

// ============================================================================
// Parse
// ============================================================================

func TestParse(t *testing.T) {
	input := `<!DOCTYPE html>
<html><body>
<div class="ocr_page" id="page_1" title="image page.png; bbox 0 0 1000 500; ppageno 2">
  <div class="ocr_carea" id="block_1_1" title="bbox 100 50 400 90">
    <p class="ocr_par">
      <span class="ocr_line" id="line_1" title="bbox 100 50 400 90">
        <span class="ocrx_word" title="bbox 100 50 250 90; x_wconf 95">Invoice</span>
        <span class="ocrx_word" title="bbox 270 50 400 90; x_wconf 80">#123</span>
      </span>
    </p>
  </div>
</div>
</body></html>`

	page, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if page.PageIndex != 2 {
		t.Errorf("PageIndex = %d, want 2", page.PageIndex)
	}
	if page.WidthPx != 1000 || page.HeightPx != 500 {
		t.Errorf("dimensions = %dx%d, want 1000x500", page.WidthPx, page.HeightPx)
	}
	if len(page.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(page.Blocks))
	}

	block := page.Blocks[0]
	if block.Text != "Invoice #123" {
		t.Errorf("block text = %q, want %q", block.Text, "Invoice #123")
	}
	if len(block.Lines) != 1 || len(block.Lines[0].Tokens) != 2 {
		t.Fatalf("expected 1 line with 2 tokens, got %+v", block.Lines)
	}

	word := block.Lines[0].Tokens[0]
	if word.Text != "Invoice" {
		t.Errorf("token text = %q, want %q", word.Text, "Invoice")
	}
	wantBox := model.NormBBox{X: 0.1, Y: 0.1, W: 0.15, H: 0.08}
	if math.Abs(word.BBox.X-wantBox.X) > 1e-9 ||
		math.Abs(word.BBox.Y-wantBox.Y) > 1e-9 ||
		math.Abs(word.BBox.W-wantBox.W) > 1e-9 ||
		math.Abs(word.BBox.H-wantBox.H) > 1e-9 {
		t.Errorf("token bbox = %+v, want %+v", word.BBox, wantBox)
	}
	if word.Confidence == nil || math.Abs(*word.Confidence-0.95) > 1e-9 {
		t.Errorf("token confidence = %v, want 0.95", word.Confidence)
	}

	// Line box is the union of its words.
	line := block.Lines[0]
	if math.Abs(line.BBox.Left()-0.1) > 1e-9 || math.Abs(line.BBox.Right()-0.4) > 1e-9 {
		t.Errorf("line bbox = %+v, want span from 0.1 to 0.4", line.BBox)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no ocr_page", `<html><body><div class="ocr_carea"></div></body></html>`},
		{"page without bbox", `<html><body><div class="ocr_page" title="ppageno 0"></div></body></html>`},
		{"page with malformed bbox", `<html><body><div class="ocr_page" title="bbox 0 0 x y"></div></body></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.input)); err == nil {
				t.Error("Parse() expected error, got nil")
			}
		})
	}
}

func TestParseSkipsUnusableWords(t *testing.T) {
	input := `<html><body>
<div class="ocr_page" title="bbox 0 0 100 100">
  <div class="ocr_carea" title="bbox 0 0 100 100">
    <span class="ocr_line" title="bbox 0 0 100 100">
      <span class="ocrx_word" title="x_wconf 10">no box</span>
      <span class="ocrx_word" title="bbox 10 10 30 30">   </span>
      <span class="ocrx_word" title="bbox 10 10 30 30">kept</span>
    </span>
  </div>
</div>
</body></html>`

	page, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(page.Blocks) != 1 || len(page.Blocks[0].Lines) != 1 {
		t.Fatalf("expected one block with one line, got %+v", page.Blocks)
	}
	tokens := page.Blocks[0].Lines[0].Tokens
	if len(tokens) != 1 || tokens[0].Text != "kept" {
		t.Errorf("tokens = %+v, want just %q", tokens, "kept")
	}
	if tokens[0].Confidence != nil {
		t.Error("expected nil confidence for word without x_wconf")
	}
}

// ============================================================================
// Round trip
// ============================================================================

func TestExportParseRoundTrip(t *testing.T) {
	orig := samplePage()

	var buf bytes.Buffer
	if err := Export(&buf, orig); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	got, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got.PageIndex != orig.PageIndex {
		t.Errorf("PageIndex = %d, want %d", got.PageIndex, orig.PageIndex)
	}
	if got.WidthPx != orig.WidthPx || got.HeightPx != orig.HeightPx {
		t.Errorf("dimensions = %dx%d, want %dx%d",
			got.WidthPx, got.HeightPx, orig.WidthPx, orig.HeightPx)
	}
	if len(got.Blocks) != len(orig.Blocks) {
		t.Fatalf("blocks = %d, want %d", len(got.Blocks), len(orig.Blocks))
	}

	origTokens := orig.Blocks[0].Lines[0].Tokens
	gotTokens := got.Blocks[0].Lines[0].Tokens
	if len(gotTokens) != len(origTokens) {
		t.Fatalf("tokens = %d, want %d", len(gotTokens), len(origTokens))
	}
	for i := range origTokens {
		if gotTokens[i].Text != origTokens[i].Text {
			t.Errorf("token %d text = %q, want %q", i, gotTokens[i].Text, origTokens[i].Text)
		}
		// Pixel rounding bounds the coordinate error by one pixel.
		if math.Abs(gotTokens[i].BBox.X-origTokens[i].BBox.X) > 1.0/float64(orig.WidthPx) {
			t.Errorf("token %d x = %v, want ~%v", i, gotTokens[i].BBox.X, origTokens[i].BBox.X)
		}
		if gotTokens[i].Confidence == nil || origTokens[i].Confidence == nil {
			t.Fatalf("token %d missing confidence", i)
		}
		if math.Abs(*gotTokens[i].Confidence-*origTokens[i].Confidence) > 0.01 {
			t.Errorf("token %d confidence = %v, want ~%v",
				i, *gotTokens[i].Confidence, *origTokens[i].Confidence)
		}
	}
}
