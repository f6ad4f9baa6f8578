// Package report формирует PDF-отчет по карьерной рекомендации.
//
// Отчет строится в два прохода: сначала блоки раскладываются по страницам
// Letter с учетом метрик шрифта, затем страницы воспроизводятся в документе,
// и на каждую наносятся колонтитулы с итоговым числом страниц.
package report

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/IT-Nick/careerpath/internal/domain/errs"
	"github.com/IT-Nick/careerpath/internal/domain/model"
	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
)

const (
	pageWidth  = 612.0 // Letter, pt
	pageHeight = 792.0
	marginX    = 54.0 // 0.75in
	marginY    = 43.2 // 0.6in

	dateLayout = "January 2, 2006"
)

// Options настройки Renderer
type Options struct {
	// Brand выводится в верхней полосе и колонтитуле
	Brand string
	// Compress сжимает потоки страниц
	Compress bool
	// FontDir каталог с DejaVuSans.ttf и DejaVuSans-Bold.ttf.
	// Пустой каталог означает встроенный Helvetica: текст вне cp1252 отклоняется.
	FontDir string
	// Now источник времени, по умолчанию time.Now
	Now func() time.Time
}

// Renderer формирует PDF-отчеты. Безопасен для параллельного использования.
type Renderer struct {
	opts Options
}

// NewRenderer создает новый экземпляр Renderer
func NewRenderer(opts Options) *Renderer {
	if opts.Brand == "" {
		opts.Brand = "CareerPath"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Renderer{opts: opts}
}

// Reference детерминированный идентификатор документа для рекомендации
func Reference(recommendationID int64) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("careerpath:recommendation:%d", recommendationID)))
}

// FooterText текст нижнего колонтитула страницы
func FooterText(pageNo, total int) string {
	return fmt.Sprintf("Page %d of %d", pageNo, total)
}

// Render формирует отчет целиком в памяти. При ошибке документ не возвращается.
func (r *Renderer) Render(rec model.CareerRecommendation, student model.User) (*bytes.Buffer, error) {
	const op = "report.Render"

	now := r.opts.Now()
	pages, err := r.layout(rec, student, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	buf, err := r.finalize(pages, rec, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf, nil
}

// fontSet шрифты документа и перекодировщик строк под них
type fontSet struct {
	family string
	tr     func(string) string
	// utf8 шрифт выводит любой символ, иначе только cp1252
	utf8 bool
}

// check возвращает ValidationError, если встроенный шрифт не может вывести символ s.
// Перекодировщик gofpdf заменяет такие символы точкой.
func (f fontSet) check(field, s string) error {
	if f.utf8 {
		return nil
	}
	for _, r := range s {
		if r >= 0x80 && f.tr(string(r)) == "." {
			return errs.Validation(errs.KindInvalidInput,
				"%s contains %q which the built-in font cannot render, set report.font_dir", field, r)
		}
	}
	return nil
}

type textField struct {
	name, value string
}

// checkText проверяет все строки отчета до раскладки
func checkText(fonts fontSet, brand string, rec model.CareerRecommendation, student model.User) error {
	fields := []textField{
		{"brand", brand},
		{"student name", DisplayName(student)},
		{"student email", student.Email},
		{"qualification", student.Qualification},
		{"interests", student.Interests},
		{"career name", rec.CareerName},
		{"summary", rec.Summary},
	}
	for _, step := range rec.Steps {
		fields = append(fields,
			textField{fmt.Sprintf("step %d title", step.Order), step.Title},
			textField{fmt.Sprintf("step %d description", step.Order), step.Description},
		)
	}
	for _, f := range fields {
		if err := fonts.check(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) newDocument() (*gofpdf.Fpdf, fontSet) {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(r.opts.Compress)

	if r.opts.FontDir != "" {
		pdf.AddUTF8Font("DejaVu", "", filepath.Join(r.opts.FontDir, "DejaVuSans.ttf"))
		pdf.AddUTF8Font("DejaVu", "B", filepath.Join(r.opts.FontDir, "DejaVuSans-Bold.ttf"))
		return pdf, fontSet{family: "DejaVu", tr: func(s string) string { return s }, utf8: true}
	}
	return pdf, fontSet{family: "Helvetica", tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func contentFrame() frame {
	return frame{
		left:   marginX,
		top:    marginY,
		width:  pageWidth - 2*marginX,
		bottom: pageHeight - marginY,
	}
}

// layout первый проход: раскладывает блоки отчета по страницам
func (r *Renderer) layout(rec model.CareerRecommendation, student model.User, now time.Time) ([]page, error) {
	if rec.CareerName == "" {
		return nil, errs.Validation(errs.KindMissingField, "recommendation %d has empty career name", rec.ID)
	}
	if rec.Summary == "" {
		return nil, errs.Validation(errs.KindMissingField, "recommendation %d has empty summary", rec.ID)
	}

	m, fonts := r.newDocument()
	if err := checkText(fonts, r.opts.Brand, rec, student); err != nil {
		return nil, err
	}
	blocks, err := r.blocks(rec, student, now, fonts)
	if err != nil {
		return nil, err
	}
	pages, err := paginate(m, blocks, contentFrame())
	if err != nil {
		return nil, err
	}
	if m.Err() {
		return nil, fmt.Errorf("failed to measure report: %w", m.Error())
	}
	return pages, nil
}

func (r *Renderer) blocks(rec model.CareerRecommendation, student model.User, now time.Time, fonts fontSet) ([]block, error) {
	style := func(styleStr string, size, lineHeight float64, color [3]int) textStyle {
		return textStyle{family: fonts.family, style: styleStr, size: size, lineHeight: lineHeight, color: color, align: "L"}
	}
	text := func(s string, st textStyle) *textBlock {
		return &textBlock{text: s, style: st, tr: fonts.tr}
	}

	var (
		title    = style("B", 22, 28, colorInk)
		subtitle = style("", 11, 16, colorMuted)
		heading  = style("B", 14, 20, colorInk)
		body     = style("", 11, 15, colorInk)
		label    = style("B", 10, 15, colorMuted)
		caption  = style("", 9, 13, colorMuted)
	)
	name := DisplayName(student)
	date := now.Format(dateLayout)

	rows := []infoRow{
		{label: "Student", value: name},
		{label: "Email", value: student.Email},
	}
	if student.Qualification != "" {
		rows = append(rows, infoRow{label: "Qualification", value: student.Qualification})
	}
	if student.Interests != "" {
		rows = append(rows, infoRow{label: "Interests", value: student.Interests})
	}
	rows = append(rows, infoRow{label: "Generated", value: date})

	blocks := []block{
		topBar{brand: r.opts.Brand, style: style("B", 13, 30, colorWhite), tr: fonts.tr},
		spacer(24),
		text("Career Recommendation Report", title),
		text(fmt.Sprintf("Prepared for %s on %s", name, date), subtitle),
		spacer(16),
		&infoCard{rows: rows, label: label, value: body, tr: fonts.tr, pad: 12, labelW: 96},
		spacer(8),
		divider{pad: 8},
		spacer(8),
		&careerHero{
			caption: text("RECOMMENDED CAREER", caption),
			name:    text(strings.ToUpper(rec.CareerName), style("B", 18, 24, colorAccent)),
			pad:     14,
		},
		spacer(18),
		text("Summary", heading),
		spacer(4),
		text(rec.Summary, body),
		spacer(18),
	}

	steps := rec.SortedSteps()
	roadmapTitle := text("Your Roadmap", heading)
	if len(steps) == 0 {
		blocks = append(blocks, roadmapTitle, spacer(4), text("No roadmap steps yet.", subtitle))
	}
	for i, step := range steps {
		row := &stepRow{
			number:    stepBadge(step.Order),
			title:     text(step.Title, style("B", 12, 16, colorInk)),
			connector: i < len(steps)-1,
			badge:     style("B", 12, 16, colorWhite),
			tr:        fonts.tr,
			gap:       12,
		}
		if step.Description != "" {
			row.desc = text(step.Description, body)
		}
		if i == 0 {
			blocks = append(blocks, &keepTogether{blocks: []block{roadmapTitle, spacer(8), row}})
			continue
		}
		blocks = append(blocks, row)
	}

	ref := Reference(rec.ID)
	png, err := qrcode.Encode(ref.URN(), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reference QR code: %w", err)
	}
	blocks = append(blocks,
		spacer(18),
		&referenceBlock{
			imageName: "reference-" + ref.String(),
			png:       png,
			text: text(fmt.Sprintf("Document reference\n%s\nScan the code to verify this report.", ref.String()),
				style("", 9, 13, colorMuted)),
		},
		spacer(12),
		divider{pad: 6},
		text(fmt.Sprintf("Generated by %s on %s. This recommendation is advisory.", r.opts.Brand, date), caption),
	)
	return blocks, nil
}

// finalize второй проход: создает документ, воспроизводит страницы
// и наносит колонтитулы "Page X of N"
func (r *Renderer) finalize(pages []page, rec model.CareerRecommendation, now time.Time) (*bytes.Buffer, error) {
	pdf, fonts := r.newDocument()
	pdf.SetCreationDate(now)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(fmt.Sprintf("Career recommendation %d", rec.ID), true)
	pdf.SetCreator(r.opts.Brand, true)

	header := textStyle{family: fonts.family, size: 8, lineHeight: 10, color: colorMuted}
	total := len(pages)
	date := now.Format(dateLayout)

	for i, p := range pages {
		pdf.AddPage()
		for _, op := range p.ops {
			op(pdf)
		}

		header.apply(pdf)
		pdf.SetXY(marginX, marginY/2-5)
		pdf.CellFormat(pageWidth-2*marginX, 10, fonts.tr(r.opts.Brand+" | Career Recommendation"), "", 0, "L", false, 0, "")
		pdf.SetXY(marginX, marginY/2-5)
		pdf.CellFormat(pageWidth-2*marginX, 10, fonts.tr(date), "", 0, "R", false, 0, "")

		pdf.SetXY(marginX, pageHeight-marginY/2-5)
		pdf.CellFormat(pageWidth-2*marginX, 10, FooterText(i+1, total), "", 0, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return &buf, nil
}
