// Package hocr reads and writes the hOCR microformat, the HTML-based
// interchange format for OCR results. Pages map to elements with class
// ocr_page, blocks to ocr_carea, lines to ocr_line, and tokens to
// ocrx_word. Pixel coordinates in the bbox properties are converted to
// and from the normalized representation used everywhere else in this
// module.
package hocr

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/mosaic/model"
)

// Export writes a page as an hOCR document. Normalized boxes are
// rendered in pixel coordinates against the page's stored dimensions.
func Export(w io.Writer, page model.Page) error {
	if page.WidthPx <= 0 || page.HeightPx <= 0 {
		return fmt.Errorf("exporting hOCR: %w", model.ErrBadDimensions)
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	sb.WriteString("<meta charset=\"utf-8\"/>\n")
	sb.WriteString("<meta name=\"ocr-system\" content=\"mosaic\"/>\n")
	sb.WriteString("<meta name=\"ocr-capabilities\" content=\"ocr_page ocr_carea ocr_line ocrx_word\"/>\n")
	sb.WriteString("</head>\n<body>\n")

	fmt.Fprintf(&sb, "<div class=\"ocr_page\" id=\"page_%d\" title=\"bbox 0 0 %d %d; ppageno %d\">\n",
		page.PageIndex+1, page.WidthPx, page.HeightPx, page.PageIndex)

	for bi, block := range page.Blocks {
		fmt.Fprintf(&sb, "<div class=\"ocr_carea\" id=\"block_%d_%d\" title=\"%s\">\n",
			page.PageIndex+1, bi+1, bboxTitle(block.BBox, page))

		for li, line := range block.Lines {
			fmt.Fprintf(&sb, "<span class=\"ocr_line\" id=\"line_%d_%d_%d\" title=\"%s\">",
				page.PageIndex+1, bi+1, li+1, bboxTitle(line.BBox, page))

			for wi, token := range line.Tokens {
				if wi > 0 {
					sb.WriteString(" ")
				}
				title := bboxTitle(token.BBox, page)
				if token.Confidence != nil {
					title += fmt.Sprintf("; x_wconf %d", int(math.Round(*token.Confidence*100)))
				}
				fmt.Fprintf(&sb, "<span class=\"ocrx_word\" id=\"word_%d_%d_%d_%d\" title=\"%s\">%s</span>",
					page.PageIndex+1, bi+1, li+1, wi+1, title, html.EscapeString(token.Text))
			}

			sb.WriteString("</span>\n")
		}

		sb.WriteString("</div>\n")
	}

	sb.WriteString("</div>\n</body>\n</html>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// Parse reads the first ocr_page from an hOCR document. Pixel boxes are
// normalized against the page dimensions declared in the page's bbox
// property. Words carrying x_wconf get a confidence in [0, 1].
func Parse(r io.Reader) (*model.Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing hOCR: %w", err)
	}

	pageNode := findByClass(doc, "ocr_page")
	if pageNode == nil {
		return nil, fmt.Errorf("parsing hOCR: no ocr_page element")
	}

	props := parseTitle(attr(pageNode, "title"))
	box, ok := props.bbox()
	if !ok || box.W <= 0 || box.H <= 0 {
		return nil, fmt.Errorf("parsing hOCR: ocr_page has no usable bbox")
	}

	page := &model.Page{
		WidthPx:  int(box.W),
		HeightPx: int(box.H),
	}
	if n, ok := props.int("ppageno"); ok {
		page.PageIndex = n
	}

	for _, careaNode := range findAllByClass(pageNode, "ocr_carea") {
		block := parseBlock(careaNode, page)
		if len(block.Lines) > 0 {
			page.Blocks = append(page.Blocks, block)
		}
	}

	return page, nil
}

func parseBlock(n *html.Node, page *model.Page) model.Block {
	block := model.Block{BlockType: "text"}

	for _, lineNode := range findAllByClass(n, "ocr_line") {
		line := parseLine(lineNode, page)
		if len(line.Tokens) > 0 {
			block.Lines = append(block.Lines, line)
		}
	}

	var texts []string
	var boxes []model.NormBBox
	for _, line := range block.Lines {
		texts = append(texts, line.Text)
		boxes = append(boxes, line.BBox)
	}
	block.Text = strings.Join(texts, "\n")
	if merged, ok := model.MergeBBoxes(boxes); ok {
		block.BBox = merged
	}

	return block
}

func parseLine(n *html.Node, page *model.Page) model.Line {
	var line model.Line

	for _, wordNode := range findAllByClass(n, "ocrx_word") {
		props := parseTitle(attr(wordNode, "title"))
		box, ok := props.bbox()
		if !ok {
			continue
		}
		norm, err := model.ToNormalized(box, float64(page.WidthPx), float64(page.HeightPx))
		if err != nil || !norm.IsValid() {
			continue
		}

		token := model.Token{
			Text: strings.TrimSpace(textContent(wordNode)),
			BBox: norm,
		}
		if wconf, ok := props.int("x_wconf"); ok {
			conf := float64(wconf) / 100
			token.Confidence = &conf
		}
		if token.Text != "" {
			line.Tokens = append(line.Tokens, token)
		}
	}

	var texts []string
	var boxes []model.NormBBox
	for _, token := range line.Tokens {
		texts = append(texts, token.Text)
		boxes = append(boxes, token.BBox)
	}
	line.Text = strings.Join(texts, " ")
	if merged, ok := model.MergeBBoxes(boxes); ok {
		line.BBox = merged
	}

	return line
}

// titleProps holds the semicolon-separated properties of an hOCR title
// attribute, keyed by property name.
type titleProps map[string][]string

func parseTitle(title string) titleProps {
	props := make(titleProps)
	for _, part := range strings.Split(title, ";") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		props[fields[0]] = fields[1:]
	}
	return props
}

func (p titleProps) bbox() (model.PixelBBox, bool) {
	args := p["bbox"]
	if len(args) != 4 {
		return model.PixelBBox{}, false
	}
	vals := make([]float64, 4)
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return model.PixelBBox{}, false
		}
		vals[i] = v
	}
	return model.PixelBBox{
		X: vals[0],
		Y: vals[1],
		W: vals[2] - vals[0],
		H: vals[3] - vals[1],
	}, true
}

func (p titleProps) int(name string) (int, bool) {
	args := p[name]
	if len(args) != 1 {
		return 0, false
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, false
	}
	return v, true
}

func bboxTitle(b model.NormBBox, page model.Page) string {
	// Export validates the page dimensions up front.
	px, _ := model.FromNormalized(b, float64(page.WidthPx), float64(page.HeightPx))
	return fmt.Sprintf("bbox %d %d %d %d",
		int(math.Round(px.X)), int(math.Round(px.Y)),
		int(math.Round(px.X+px.W)), int(math.Round(px.Y+px.H)))
}

// ============================================================================
// HTML tree helpers
// ============================================================================

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func findByClass(n *html.Node, class string) *html.Node {
	if hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

func findAllByClass(n *html.Node, class string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if hasClass(c, class) {
			out = append(out, c)
			continue
		}
		out = append(out, findAllByClass(c, class)...)
	}
	return out
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}
