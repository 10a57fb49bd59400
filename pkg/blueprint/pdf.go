package blueprint

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/philipparndt/takeoff/pkg/geometry"
)

// TextRun is text shown from one position on the page, in PDF text space
// with the origin at the bottom left.
type TextRun struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Page is the text found on one page, numbered from 1
type Page struct {
	Number int       `json:"page"`
	Text   string    `json:"text"`
	Runs   []TextRun `json:"runs,omitempty"`
}

func newPage(number int, runs []TextRun) Page {
	parts := make([]string, len(runs))
	for i, r := range runs {
		parts[i] = r.Text
	}
	return Page{Number: number, Text: cleanText(strings.Join(parts, " ")), Runs: runs}
}

// Dimensions finds the dimension labels on the page and places each one at
// the run it was printed in.
func (p Page) Dimensions() []Dimension {
	dims := FindDimensions(p.Text)
	next := 0
	for i := range dims {
		dims[i].Page = p.Number
		for j := next; j < len(p.Runs); j++ {
			if strings.Contains(p.Runs[j].Text, dims[i].Text) {
				at := geometry.NewPoint(p.Runs[j].X, p.Runs[j].Y)
				dims[i].At = &at
				next = j
				break
			}
		}
	}
	return dims
}

// Extraction is the text layer of a blueprint PDF
type Extraction struct {
	PageCount       int    `json:"page_count"`
	Pages           []Page `json:"pages"`
	HasImageStreams bool   `json:"has_image_streams"`
}

// Text joins all page texts with newlines
func (e *Extraction) Text() string {
	parts := make([]string, 0, len(e.Pages))
	for _, p := range e.Pages {
		if p.Text != "" {
			parts = append(parts, p.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// ExtractFile opens a PDF and extracts its text layer
func ExtractFile(path string) (*Extraction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open blueprint: %w", err)
	}
	defer f.Close()

	return Extract(f)
}

// Extract reads a PDF and returns per-page text. Pages without a text layer
// are kept with empty text so page numbers line up with the drawing set.
func Extract(rs io.ReadSeeker) (*Extraction, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	ex := &Extraction{
		PageCount:       ctx.PageCount,
		HasImageStreams: detectImageStreams(ctx),
	}
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		ex.Pages = append(ex.Pages, newPage(pageNr, extractPageRuns(ctx, pageNr)))
	}
	return ex, nil
}

func extractPageRuns(ctx *model.Context, pageNr int) []TextRun {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil || r == nil {
		return nil
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return nil
	}
	return extractTextRuns(data)
}

// detectImageStreams reports whether any page draws an image XObject; scanned
// sheets have no usable text layer.
func detectImageStreams(ctx *model.Context) bool {
	if ctx.Optimize != nil {
		for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
			if len(pdfcpu.ImageObjNrs(ctx, pageNr)) > 0 {
				return true
			}
		}
	}
	for _, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if subtype, found := sd.Find("Subtype"); found {
			if name, isName := subtype.(types.Name); isName && name == "Image" {
				return true
			}
		}
	}
	return false
}

// operand is a content stream operand; only numbers and strings matter for
// text extraction.
type operand struct {
	num   float64
	str   string
	isStr bool
}

// extractTextRuns walks a decoded content stream and returns the strings
// shown by Tj, TJ, ' and " together with the line origin they were shown at.
// Positions follow Tm, Td, TD and T*; the cm matrix is ignored.
func extractTextRuns(data []byte) []TextRun {
	var (
		runs     []TextRun
		ops      []operand
		arrays   []int
		x, y     float64
		leading  float64
		fresh    = true
		nextLine = func() {
			y -= leading
			fresh = true
		}
		show = func(text string) {
			if fresh || len(runs) == 0 {
				runs = append(runs, TextRun{X: x, Y: y})
				fresh = false
			}
			runs[len(runs)-1].Text += text
		}
	)
	num := func(i int) float64 {
		if i < 0 || i >= len(ops) {
			return 0
		}
		return ops[i].num
	}
	lastStr := func() string {
		if len(ops) == 0 || !ops[len(ops)-1].isStr {
			return ""
		}
		return ops[len(ops)-1].str
	}

	sc := contentScanner{data: data}
	for {
		kind, tok := sc.next()
		switch kind {
		case tokEOF:
			return finishRuns(runs)
		case tokNumber:
			v, _ := strconv.ParseFloat(string(tok), 64)
			ops = append(ops, operand{num: v})
			continue
		case tokString:
			ops = append(ops, operand{str: string(tok), isStr: true})
			continue
		case tokArrayStart:
			arrays = append(arrays, len(ops))
			continue
		case tokArrayEnd:
			if len(arrays) == 0 {
				continue
			}
			from := arrays[len(arrays)-1]
			arrays = arrays[:len(arrays)-1]
			var sb strings.Builder
			for _, o := range ops[from:] {
				if o.isStr {
					sb.WriteString(o.str)
				}
			}
			ops = append(ops[:from], operand{str: sb.String(), isStr: true})
			continue
		case tokOther:
			continue
		}

		n := len(ops)
		switch string(tok) {
		case "BT":
			x, y = 0, 0
			fresh = true
		case "Tm":
			x, y = num(n-2), num(n-1)
			fresh = true
		case "Td":
			x += num(n - 2)
			y += num(n - 1)
			fresh = true
		case "TD":
			x += num(n - 2)
			y += num(n - 1)
			leading = -num(n - 1)
			fresh = true
		case "TL":
			leading = num(n - 1)
		case "T*":
			nextLine()
		case "Tj", "TJ":
			show(lastStr())
		case "'", "\"":
			nextLine()
			show(lastStr())
		}
		ops = ops[:0]
		arrays = arrays[:0]
	}
}

func finishRuns(runs []TextRun) []TextRun {
	out := runs[:0]
	for _, r := range runs {
		r.Text = cleanText(r.Text)
		if r.Text != "" {
			out = append(out, r)
		}
	}
	return out
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokString
	tokArrayStart
	tokArrayEnd
	tokOperator
	tokOther
)

// contentScanner splits a content stream into tokens. Literal and hex
// strings are returned decoded.
type contentScanner struct {
	data []byte
	pos  int
}

func (s *contentScanner) next() (tokenKind, []byte) {
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		switch {
		case isPDFSpace(c):
			s.pos++
		case c == '%':
			for s.pos < len(s.data) && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}
		default:
			return s.token()
		}
	}
	return tokEOF, nil
}

func (s *contentScanner) token() (tokenKind, []byte) {
	c := s.data[s.pos]
	switch c {
	case '(':
		return tokString, []byte(decodePDFString(s.literal()))
	case '<':
		if s.pos+1 < len(s.data) && s.data[s.pos+1] == '<' {
			s.pos += 2
			return tokOther, nil
		}
		return tokString, s.hex()
	case '>':
		s.pos++
		if s.pos < len(s.data) && s.data[s.pos] == '>' {
			s.pos++
		}
		return tokOther, nil
	case '[':
		s.pos++
		return tokArrayStart, nil
	case ']':
		s.pos++
		return tokArrayEnd, nil
	case '{', '}', ')':
		s.pos++
		return tokOther, nil
	case '/':
		s.pos++
		s.word()
		return tokOther, nil
	}

	w := s.word()
	if len(w) == 0 {
		s.pos++
		return tokOther, nil
	}
	if _, err := strconv.ParseFloat(string(w), 64); err == nil {
		return tokNumber, w
	}
	return tokOperator, w
}

// literal returns the raw bytes between balanced parentheses
func (s *contentScanner) literal() []byte {
	s.pos++
	start, depth := s.pos, 1
	for s.pos < len(s.data) {
		switch s.data[s.pos] {
		case '\\':
			s.pos++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				raw := s.data[start:s.pos]
				s.pos++
				return raw
			}
		}
		s.pos++
	}
	return s.data[start:]
}

func (s *contentScanner) hex() []byte {
	s.pos++
	var digits []byte
	for s.pos < len(s.data) && s.data[s.pos] != '>' {
		if c := s.data[s.pos]; !isPDFSpace(c) {
			digits = append(digits, c)
		}
		s.pos++
	}
	s.pos++
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, hex.DecodedLen(len(digits)))
	n, _ := hex.Decode(out, digits)
	return out[:n]
}

func (s *contentScanner) word() []byte {
	start := s.pos
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if isPDFSpace(c) || strings.IndexByte("()<>[]{}/%", c) >= 0 {
			break
		}
		s.pos++
	}
	return s.data[start:s.pos]
}

func isPDFSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', 0:
		return true
	}
	return false
}

// decodePDFString handles the escape sequences of PDF literal strings
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] < '0' || raw[i] > '7' {
				sb.WriteByte(raw[i])
				continue
			}
			val := int(raw[i] - '0')
			for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(val))
		}
	}
	return sb.String()
}

// cleanText collapses whitespace runs and drops unprintable runes
func cleanText(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		} else if unicode.IsPrint(r) {
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
