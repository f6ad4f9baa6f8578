package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/IT-Nick/careerpath/internal/domain/errs"
	"github.com/IT-Nick/careerpath/internal/domain/model"
)

var reportNow = time.Date(2026, 4, 12, 15, 4, 5, 0, time.UTC)

func testRenderer() *Renderer {
	return NewRenderer(Options{Brand: "CareerPath", Now: func() time.Time { return reportNow }})
}

func longRecommendation(steps int) model.CareerRecommendation {
	rec := model.CareerRecommendation{
		ID:         42,
		CareerName: "Data Scientist",
		Summary:    strings.Repeat("Strong analytical thinking and curiosity about data. ", 20),
	}
	for i := 1; i <= steps; i++ {
		rec.Steps = append(rec.Steps, model.RoadmapStep{
			Order:       i,
			Title:       fmt.Sprintf("Step title %d", i),
			Description: strings.Repeat("Practice every week and keep notes of what you learn. ", 4),
		})
	}
	return rec
}

func testStudent() model.User {
	return model.User{Email: "jane.doe@example.com", Qualification: "BSc Mathematics", Interests: "Statistics, programming"}
}

func TestRenderStampsPageXofN(t *testing.T) {
	r := testRenderer()
	rec := longRecommendation(15)

	pages, err := r.layout(rec, testStudent(), reportNow)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if len(pages) < 2 {
		t.Fatalf("expected at least 2 pages, got %d", len(pages))
	}

	buf, err := r.Render(rec, testStudent())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
	n := len(pages)
	for i := 1; i <= n; i++ {
		if !bytes.Contains(out, []byte(FooterText(i, n))) {
			t.Errorf("missing footer %q", FooterText(i, n))
		}
	}
	if bytes.Contains(out, []byte(FooterText(n+1, n))) {
		t.Errorf("unexpected footer beyond the last page")
	}
	if !bytes.Contains(out, []byte("Jane.Doe")) {
		t.Errorf("display name must be derived from the e-mail")
	}
	if !bytes.Contains(out, []byte(reportNow.Format(dateLayout))) {
		t.Errorf("render timestamp must be printed")
	}
}

func TestRenderShortReportFitsOnePage(t *testing.T) {
	r := testRenderer()
	rec := model.CareerRecommendation{ID: 1, CareerName: "Designer", Summary: "Visual thinking."}

	buf, err := r.Render(rec, testStudent())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(FooterText(1, 1))) {
		t.Errorf("expected %q", FooterText(1, 1))
	}
}

func TestStepBadgesUseOrderVerbatim(t *testing.T) {
	r := testRenderer()
	rec := model.CareerRecommendation{
		ID:         7,
		CareerName: "Nurse",
		Summary:    "Care.",
		Steps: []model.RoadmapStep{
			{Order: 5, Title: "Five"},
			{Order: 1, Title: "One"},
			{Order: 3, Title: "Three"},
		},
	}
	_, fonts := r.newDocument()
	blocks, err := r.blocks(rec, testStudent(), reportNow, fonts)
	if err != nil {
		t.Fatalf("blocks: %v", err)
	}

	var numbers []string
	var collect func(b block)
	collect = func(b block) {
		switch v := b.(type) {
		case *stepRow:
			numbers = append(numbers, v.number)
		case *keepTogether:
			for _, inner := range v.blocks {
				collect(inner)
			}
		}
	}
	for _, b := range blocks {
		collect(b)
	}

	if got := strings.Join(numbers, ","); got != "1,3,5" {
		t.Errorf("expected badges 1,3,5, got %s", got)
	}
}

func TestRenderRejectsEmptyFields(t *testing.T) {
	r := testRenderer()
	for _, rec := range []model.CareerRecommendation{
		{ID: 1, Summary: "x"},
		{ID: 2, CareerName: "x"},
	} {
		buf, err := r.Render(rec, testStudent())
		if !errs.IsValidation(err) {
			t.Errorf("recommendation %d: expected ValidationError, got %v", rec.ID, err)
		}
		if buf != nil {
			t.Errorf("recommendation %d: no document must be returned", rec.ID)
		}
	}
}

func TestReferenceIsDeterministic(t *testing.T) {
	if Reference(7) != Reference(7) {
		t.Error("reference must be stable for the same recommendation")
	}
	if Reference(7) == Reference(8) {
		t.Error("references of different recommendations must differ")
	}
}

func TestRenderBatch(t *testing.T) {
	r := testRenderer()
	jobs := []Job{
		{Recommendation: longRecommendation(2), Student: testStudent()},
		{Recommendation: model.CareerRecommendation{ID: 2, CareerName: "Pilot", Summary: "Flying."}, Student: testStudent()},
		{Recommendation: longRecommendation(6), Student: testStudent()},
	}

	out, err := r.RenderBatch(context.Background(), jobs, 2)
	if err != nil {
		t.Fatalf("RenderBatch: %v", err)
	}
	if len(out) != len(jobs) {
		t.Fatalf("expected %d documents, got %d", len(jobs), len(out))
	}
	for i, buf := range out {
		if buf == nil || buf.Len() == 0 {
			t.Errorf("document %d is empty", i)
		}
	}

	jobs = append(jobs, Job{Recommendation: model.CareerRecommendation{ID: 9}})
	if _, err := r.RenderBatch(context.Background(), jobs, 2); !errs.IsValidation(err) {
		t.Errorf("expected ValidationError from the invalid job, got %v", err)
	}
}

func TestRenderLongStepDescription(t *testing.T) {
	r := testRenderer()
	rec := model.CareerRecommendation{
		ID:         3,
		CareerName: "Architect",
		Summary:    "Design buildings.",
		Steps: []model.RoadmapStep{
			{Order: 1, Title: "Study", Description: strings.Repeat("Read about structures. ", 270)},
			{Order: 2, Title: "Intern"},
		},
	}

	pages, err := r.layout(rec, testStudent(), reportNow)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if len(pages) < 2 {
		t.Fatalf("expected at least 2 pages, got %d", len(pages))
	}
	if _, err := r.Render(rec, testStudent()); err != nil {
		t.Fatalf("Render: %v", err)
	}
}

func TestRenderLongStudentProfile(t *testing.T) {
	r := testRenderer()
	student := testStudent()
	student.Qualification = strings.Repeat("Applied mathematics ", 99)
	student.Interests = strings.Repeat("robotics ", 222)

	if _, err := r.Render(longRecommendation(3), student); err != nil {
		t.Fatalf("Render: %v", err)
	}
}

func TestRenderRejectsTextOutsideBuiltinFont(t *testing.T) {
	r := testRenderer()
	rec := model.CareerRecommendation{ID: 4, CareerName: "Analyst", Summary: "Numbers."}

	student := testStudent()
	student.FirstName, student.LastName = "Анна", "Смирнова"
	buf, err := r.Render(rec, student)
	if !errs.IsValidation(err) || errs.KindOf(err) != errs.KindInvalidInput {
		t.Fatalf("expected invalid_input, got %v", err)
	}
	if buf != nil {
		t.Fatal("no document must be returned")
	}

	student.FirstName, student.LastName = "José", "Müller"
	if _, err := r.Render(rec, student); err != nil {
		t.Fatalf("cp1252 text must render: %v", err)
	}
}

func TestRenderUppercasesCareerName(t *testing.T) {
	r := testRenderer()
	rec := model.CareerRecommendation{ID: 5, CareerName: "Data Scientist", Summary: "Models."}

	buf, err := r.Render(rec, testStudent())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("DATA SCIENTIST")) {
		t.Error("career name must be printed in upper case")
	}
}
