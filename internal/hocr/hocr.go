// Package hocr derives an ordered plain-line sequence from hOCR layout
// markup. OCR engines that emit hOCR (Tesseract among them) annotate each
// recognized line with position and confidence; the extraction core only
// needs the text in print order, so this package flattens the markup and
// optionally filters low-confidence lines before segmentation sees them.
package hocr

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Line is one recognized print line with its position in page order and the
// engine's word confidence (0-100, or -1 when the markup carried none).
type Line struct {
	Text       string
	Order      int
	Confidence float64
}

// Options controls line derivation.
type Options struct {
	// MinConfidence drops lines whose confidence is known and below this
	// value. Zero keeps everything.
	MinConfidence float64
}

// Lines parses hOCR markup and returns the recognized lines in document
// order. Elements with class "ocr_line" (and the caption/header variants
// Tesseract emits) are treated as lines; their text content is collapsed to
// single-spaced form.
func Lines(markup string, opts Options) ([]Line, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse hocr markup: %w", err)
	}

	var lines []Line
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && isLineClass(attr(n, "class")) {
			text := collapseText(n)
			if text != "" {
				conf := lineConfidence(n)
				if opts.MinConfidence <= 0 || conf < 0 || conf >= opts.MinConfidence {
					lines = append(lines, Line{
						Text:       text,
						Order:      len(lines),
						Confidence: conf,
					})
				}
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return lines, nil
}

// Texts is Lines reduced to the bare ordered strings the segmenter consumes.
func Texts(markup string, opts Options) ([]string, error) {
	lines, err := Lines(markup, opts)
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return texts, nil
}

func isLineClass(class string) bool {
	for _, c := range strings.Fields(class) {
		switch c {
		case "ocr_line", "ocr_caption", "ocr_header", "ocr_textfloat":
			return true
		}
	}
	return false
}

// lineConfidence averages the x_wconf values of the line's word spans.
// Returns -1 when no word carries a confidence.
func lineConfidence(n *html.Node) float64 {
	var sum float64
	var count int
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if conf, ok := parseWconf(attr(n, "title")); ok {
				sum += conf
				count++
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	if count == 0 {
		return -1
	}
	return sum / float64(count)
}

// parseWconf extracts the x_wconf value from an hOCR title attribute, e.g.
// "bbox 36 92 618 133; x_wconf 91".
func parseWconf(title string) (float64, bool) {
	for _, part := range strings.Split(title, ";") {
		fields := strings.Fields(part)
		if len(fields) == 2 && fields[0] == "x_wconf" {
			conf, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return 0, false
			}
			return conf, true
		}
	}
	return 0, false
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// collapseText concatenates a node's text content with runs of whitespace
// collapsed to single spaces.
func collapseText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return strings.Join(strings.Fields(sb.String()), " ")
}
