package report

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// epsilon гасит ошибки округления при сравнении высот
const epsilon = 0.01

// block элемент потока. measure вызывается до draw и до split.
type block interface {
	measure(m *gofpdf.Fpdf, width float64) float64
	draw(pdf *gofpdf.Fpdf, x, y, width float64)
}

// splitter блок, который можно разрезать по строкам.
// head занимает не больше avail, tail продолжается на следующей странице.
type splitter interface {
	split(avail float64) (head, tail block, ok bool)
}

// frame область содержимого страницы
type frame struct {
	left, top, width, bottom float64
}

func (f frame) height() float64 {
	return f.bottom - f.top
}

// page записанные операции рисования одной страницы
type page struct {
	ops []func(pdf *gofpdf.Fpdf)
}

// paginate раскладывает блоки по страницам. Блок, не помещающийся в остаток
// страницы, переносится целиком, если его нельзя разрезать. Отступы в начале
// страницы отбрасываются.
func paginate(m *gofpdf.Fpdf, blocks []block, fr frame) ([]page, error) {
	pages := []page{{}}
	y := fr.top
	queue := append([]block(nil), blocks...)

	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]

		cur := &pages[len(pages)-1]
		atTop := len(cur.ops) == 0
		if _, ok := b.(spacer); ok && atTop {
			continue
		}

		h := b.measure(m, fr.width)
		avail := fr.bottom - y
		if h <= avail+epsilon {
			cur.ops = append(cur.ops, placed(b, fr.left, y, fr.width))
			y += h
			continue
		}

		if s, ok := b.(splitter); ok {
			if head, tail, ok := s.split(avail); ok {
				cur.ops = append(cur.ops, placed(head, fr.left, y, fr.width))
				queue = append([]block{tail}, queue...)
				pages = append(pages, page{})
				y = fr.top
				continue
			}
		}

		if atTop {
			return nil, fmt.Errorf("block of height %.1fpt does not fit on a page of %.1fpt", h, fr.height())
		}
		pages = append(pages, page{})
		y = fr.top
		queue = append([]block{b}, queue...)
	}

	// последняя страница может остаться пустой, если поток закончился отступом
	if n := len(pages); n > 1 && len(pages[n-1].ops) == 0 {
		pages = pages[:n-1]
	}
	return pages, nil
}

func placed(b block, x, y, width float64) func(pdf *gofpdf.Fpdf) {
	return func(pdf *gofpdf.Fpdf) {
		b.draw(pdf, x, y, width)
	}
}

type spacer float64

func (s spacer) measure(*gofpdf.Fpdf, float64) float64 { return float64(s) }

func (s spacer) draw(*gofpdf.Fpdf, float64, float64, float64) {}

// textStyle шрифт и цвет текста
type textStyle struct {
	family     string
	style      string
	size       float64
	lineHeight float64
	color      [3]int
	align      string
}

func (s textStyle) apply(pdf *gofpdf.Fpdf) {
	pdf.SetFont(s.family, s.style, s.size)
	pdf.SetTextColor(s.color[0], s.color[1], s.color[2])
}

// textBlock абзац с переносом по словам. Режется по строкам.
type textBlock struct {
	text   string
	style  textStyle
	tr     func(string) string
	indent float64
	lines  []string
}

func (t *textBlock) measure(m *gofpdf.Fpdf, width float64) float64 {
	if t.lines == nil {
		t.style.apply(m)
		t.lines = wrapText(m, t.tr, t.text, width-t.indent)
	}
	return float64(len(t.lines)) * t.style.lineHeight
}

func (t *textBlock) draw(pdf *gofpdf.Fpdf, x, y, width float64) {
	t.style.apply(pdf)
	for i, line := range t.lines {
		pdf.SetXY(x+t.indent, y+float64(i)*t.style.lineHeight)
		pdf.CellFormat(width-t.indent, t.style.lineHeight, t.tr(line), "", 0, t.style.align, false, 0, "")
	}
}

func (t *textBlock) split(avail float64) (block, block, bool) {
	n := int((avail + epsilon) / t.style.lineHeight)
	if n < 1 || n >= len(t.lines) {
		return nil, nil, false
	}
	head := *t
	head.lines = t.lines[:n]
	tail := *t
	tail.lines = t.lines[n:]
	return &head, &tail, true
}

// wrapText переносит текст по словам так, чтобы строка помещалась в width.
// Слова длиннее строки режутся по символам.
func wrapText(m *gofpdf.Fpdf, tr func(string) string, text string, width float64) []string {
	fits := func(s string) bool { return m.GetStringWidth(tr(s)) <= width }

	lines := []string{}
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, w := range words {
			candidate := w
			if line != "" {
				candidate = line + " " + w
			}
			if fits(candidate) {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
			}
			line = ""
			for !fits(w) {
				cut := longestPrefix(w, fits)
				lines = append(lines, w[:cut])
				w = w[cut:]
			}
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}

// longestPrefix длина самого длинного префикса s по границе руны, который помещается.
// Возвращает хотя бы одну руну, чтобы перенос всегда продвигался.
func longestPrefix(s string, fits func(string) bool) int {
	cut := 0
	for i := range s {
		if i == 0 {
			continue
		}
		if !fits(s[:i]) {
			break
		}
		cut = i
	}
	if cut == 0 {
		for i := range s {
			if i > 0 {
				return i
			}
		}
		return len(s)
	}
	return cut
}
