package report

import (
	"bytes"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

var (
	colorAccent = [3]int{37, 99, 235}
	colorInk    = [3]int{17, 24, 39}
	colorMuted  = [3]int{107, 114, 128}
	colorCard   = [3]int{243, 244, 246}
	colorRule   = [3]int{209, 213, 219}
	colorWhite  = [3]int{255, 255, 255}
)

const (
	badgeColumn = 57.6 // 0.8in
	badgeSize   = 30.0
	qrSize      = 72.0
)

func fill(pdf *gofpdf.Fpdf, c [3]int) {
	pdf.SetFillColor(c[0], c[1], c[2])
}

func stroke(pdf *gofpdf.Fpdf, c [3]int) {
	pdf.SetDrawColor(c[0], c[1], c[2])
}

// topBar цветная полоса с названием бренда
type topBar struct {
	brand string
	style textStyle
	tr    func(string) string
}

func (b topBar) measure(*gofpdf.Fpdf, float64) float64 { return 30 }

func (b topBar) draw(pdf *gofpdf.Fpdf, x, y, width float64) {
	fill(pdf, colorAccent)
	pdf.Rect(x, y, width, 30, "F")
	b.style.apply(pdf)
	pdf.SetXY(x+12, y)
	pdf.CellFormat(width-24, 30, b.tr(b.brand), "", 0, "L", false, 0, "")
}

// divider горизонтальная линия
type divider struct {
	pad float64
}

func (d divider) measure(*gofpdf.Fpdf, float64) float64 { return 2 * d.pad }

func (d divider) draw(pdf *gofpdf.Fpdf, x, y, width float64) {
	stroke(pdf, colorRule)
	pdf.SetLineWidth(0.75)
	pdf.Line(x, y+d.pad, x+width, y+d.pad)
}

// infoRow строка карточки студента. Пустая метка у продолжения значения
// с предыдущей страницы.
type infoRow struct {
	label, value string
}

// infoCard карточка с данными студента. Режется между строками значений.
type infoCard struct {
	rows   []infoRow
	label  textStyle
	value  textStyle
	tr     func(string) string
	pad    float64
	labelW float64

	wrapped [][]string
}

func (c *infoCard) measure(m *gofpdf.Fpdf, width float64) float64 {
	if c.wrapped == nil {
		c.value.apply(m)
		c.wrapped = make([][]string, len(c.rows))
		for i, row := range c.rows {
			c.wrapped[i] = wrapText(m, c.tr, row.value, width-2*c.pad-c.labelW)
		}
	}
	return c.height()
}

func (c *infoCard) height() float64 {
	h := 2 * c.pad
	for _, lines := range c.wrapped {
		h += float64(len(lines)) * c.value.lineHeight
	}
	return h
}

func (c *infoCard) draw(pdf *gofpdf.Fpdf, x, y, width float64) {
	fill(pdf, colorCard)
	pdf.Rect(x, y, width, c.height(), "F")

	cy := y + c.pad
	for i, row := range c.rows {
		c.label.apply(pdf)
		pdf.SetXY(x+c.pad, cy)
		pdf.CellFormat(c.labelW, c.value.lineHeight, c.tr(row.label), "", 0, "L", false, 0, "")
		c.value.apply(pdf)
		for _, line := range c.wrapped[i] {
			pdf.SetXY(x+c.pad+c.labelW, cy)
			pdf.CellFormat(width-2*c.pad-c.labelW, c.value.lineHeight, c.tr(line), "", 0, "L", false, 0, "")
			cy += c.value.lineHeight
		}
	}
}

func (c *infoCard) split(avail float64) (block, block, bool) {
	n := int((avail - 2*c.pad + epsilon) / c.value.lineHeight)
	total := 0
	for _, lines := range c.wrapped {
		total += len(lines)
	}
	if n < 1 || n >= total {
		return nil, nil, false
	}

	head := &infoCard{label: c.label, value: c.value, tr: c.tr, pad: c.pad, labelW: c.labelW}
	tail := &infoCard{label: c.label, value: c.value, tr: c.tr, pad: c.pad, labelW: c.labelW}
	for i, row := range c.rows {
		lines := c.wrapped[i]
		switch {
		case n >= len(lines):
			head.rows = append(head.rows, row)
			head.wrapped = append(head.wrapped, lines)
			n -= len(lines)
		case n > 0:
			head.rows = append(head.rows, row)
			head.wrapped = append(head.wrapped, lines[:n])
			tail.rows = append(tail.rows, infoRow{value: row.value})
			tail.wrapped = append(tail.wrapped, lines[n:])
			n = 0
		default:
			tail.rows = append(tail.rows, row)
			tail.wrapped = append(tail.wrapped, lines)
		}
	}
	return head, tail, true
}

// careerHero выделенный блок с названием профессии. Не режется.
type careerHero struct {
	caption *textBlock
	name    *textBlock
	pad     float64
}

func (c *careerHero) measure(m *gofpdf.Fpdf, width float64) float64 {
	inner := width - 2*c.pad
	return 2*c.pad + c.caption.measure(m, inner) + c.name.measure(m, inner)
}

func (c *careerHero) draw(pdf *gofpdf.Fpdf, x, y, width float64) {
	inner := width - 2*c.pad
	captionH := float64(len(c.caption.lines)) * c.caption.style.lineHeight
	nameH := float64(len(c.name.lines)) * c.name.style.lineHeight

	fill(pdf, colorCard)
	pdf.Rect(x, y, width, 2*c.pad+captionH+nameH, "F")
	fill(pdf, colorAccent)
	pdf.Rect(x, y, 4, 2*c.pad+captionH+nameH, "F")

	c.caption.draw(pdf, x+c.pad, y+c.pad, inner)
	c.name.draw(pdf, x+c.pad, y+c.pad+captionH, inner)
}

// stepRow строка дорожной карты: номер шага в левой колонке, текст в правой.
// connector рисует линию к следующему шагу. Строка без номера и заголовка
// продолжает описание шага с предыдущей страницы.
type stepRow struct {
	number    string
	title     *textBlock
	desc      *textBlock
	connector bool
	badge     textStyle
	tr        func(string) string
	gap       float64
}

func (s *stepRow) measure(m *gofpdf.Fpdf, width float64) float64 {
	content := width - badgeColumn
	var h float64
	if s.title != nil {
		h += s.title.measure(m, content)
	}
	if s.desc != nil {
		h += s.desc.measure(m, content)
	}
	if s.number != "" && h < badgeSize {
		h = badgeSize
	}
	return h + s.gap
}

func (s *stepRow) titleHeight() float64 {
	if s.title == nil {
		return 0
	}
	return float64(len(s.title.lines)) * s.title.style.lineHeight
}

func (s *stepRow) draw(pdf *gofpdf.Fpdf, x, y, width float64) {
	content := width - badgeColumn
	h := s.measure(pdf, width) - s.gap

	bx := x + (badgeColumn-badgeSize)/2
	cx := bx + badgeSize/2
	if s.connector {
		top := y
		if s.number != "" {
			top = y + badgeSize
		}
		stroke(pdf, colorRule)
		pdf.SetLineWidth(1.5)
		pdf.Line(cx, top, cx, y+h+s.gap)
	}
	if s.number != "" {
		fill(pdf, colorAccent)
		pdf.Rect(bx, y, badgeSize, badgeSize, "F")
		s.badge.apply(pdf)
		pdf.SetXY(bx, y)
		pdf.CellFormat(badgeSize, badgeSize, s.tr(s.number), "", 0, "C", false, 0, "")
	}

	if s.title != nil {
		s.title.draw(pdf, x+badgeColumn, y, content)
	}
	if s.desc != nil {
		s.desc.draw(pdf, x+badgeColumn, y+s.titleHeight(), content)
	}
}

// split режет описание по строкам. Заголовок и номер остаются в первой части.
func (s *stepRow) split(avail float64) (block, block, bool) {
	if s.desc == nil {
		return nil, nil, false
	}
	if s.number != "" && avail-s.gap < badgeSize-epsilon {
		return nil, nil, false
	}
	dh, dt, ok := s.desc.split(avail - s.gap - s.titleHeight())
	if !ok {
		return nil, nil, false
	}
	head := *s
	head.desc = dh.(*textBlock)
	tail := *s
	tail.number = ""
	tail.title = nil
	tail.desc = dt.(*textBlock)
	return &head, &tail, true
}

// stepBadge номер шага, выводится как есть
func stepBadge(order int) string {
	return strconv.Itoa(order)
}

// keepTogether выводит блоки на одной странице, например заголовок с первой строкой.
// Если вместе они не помещаются, режется только последний блок.
type keepTogether struct {
	blocks  []block
	heights []float64
}

func (k *keepTogether) measure(m *gofpdf.Fpdf, width float64) float64 {
	k.heights = make([]float64, len(k.blocks))
	var h float64
	for i, b := range k.blocks {
		k.heights[i] = b.measure(m, width)
		h += k.heights[i]
	}
	return h
}

func (k *keepTogether) draw(pdf *gofpdf.Fpdf, x, y, width float64) {
	for _, b := range k.blocks {
		b.draw(pdf, x, y, width)
		y += b.measure(pdf, width)
	}
}

func (k *keepTogether) split(avail float64) (block, block, bool) {
	n := len(k.blocks)
	if n == 0 || len(k.heights) != n {
		return nil, nil, false
	}
	s, ok := k.blocks[n-1].(splitter)
	if !ok {
		return nil, nil, false
	}
	var lead float64
	for _, h := range k.heights[:n-1] {
		lead += h
	}
	head, tail, ok := s.split(avail - lead)
	if !ok {
		return nil, nil, false
	}
	blocks := append(append([]block(nil), k.blocks[:n-1]...), head)
	return &keepTogether{blocks: blocks}, tail, true
}

// referenceBlock QR-код со ссылкой на документ и подпись к нему
type referenceBlock struct {
	imageName string
	png       []byte
	text      *textBlock
}

func (r *referenceBlock) measure(m *gofpdf.Fpdf, width float64) float64 {
	h := r.text.measure(m, width-qrSize-12)
	if h < qrSize {
		h = qrSize
	}
	return h
}

func (r *referenceBlock) draw(pdf *gofpdf.Fpdf, x, y, width float64) {
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(r.imageName, opts, bytes.NewReader(r.png))
	pdf.ImageOptions(r.imageName, x, y, qrSize, qrSize, false, opts, 0, "")
	r.text.draw(pdf, x+qrSize+12, y, width-qrSize-12)
}
