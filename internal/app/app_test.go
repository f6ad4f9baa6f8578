package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/IT-Nick/careerpath/internal/app/middleware"
	"github.com/IT-Nick/careerpath/internal/domain/repository"
	"github.com/IT-Nick/careerpath/internal/infra/config"
)

type client struct {
	t   *testing.T
	srv *httptest.Server
}

func (c client) do(method, path string, userID int64, body any) *http.Response {
	c.t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			c.t.Fatal(err)
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.srv.URL+path, rd)
	if err != nil {
		c.t.Fatal(err)
	}
	if userID > 0 {
		req.Header.Set(middleware.CallerHeader, fmt.Sprint(userID))
	}
	resp, err := c.srv.Client().Do(req)
	if err != nil {
		c.t.Fatal(err)
	}
	return resp
}

func (c client) expect(resp *http.Response, status int, out any) {
	c.t.Helper()
	defer resp.Body.Close()
	if resp.StatusCode != status {
		body, _ := io.ReadAll(resp.Body)
		c.t.Fatalf("%s %s: status = %d, want %d: %s", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, status, body)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.t.Fatal(err)
		}
	}
}

func newTestServer(t *testing.T) client {
	t.Helper()
	cfg := &config.Config{}
	cfg.Report.Brand = "CareerPath"
	cfg.Report.ExportWorkers = 2

	app := newApp(cfg, repository.NewMemoryStore())
	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)
	return client{t: t, srv: srv}
}

type idBody struct {
	ID        int64  `json:"id"`
	Status    string `json:"status"`
	Questions []struct {
		ID      int64 `json:"id"`
		Options []struct {
			ID int64 `json:"id"`
		} `json:"options"`
	} `json:"questions"`
}

func TestHTTPWorkflow(t *testing.T) {
	c := newTestServer(t)

	var student, admin idBody
	c.expect(c.do(http.MethodPost, "/users", 0, map[string]string{
		"email": "jane.doe@example.com", "role": "student", "interests": "robots",
	}), http.StatusCreated, &student)
	c.expect(c.do(http.MethodPost, "/users", 0, map[string]string{
		"email": "admin@example.com", "role": "admin", "first_name": "Ann",
	}), http.StatusCreated, &admin)

	var req idBody
	c.expect(c.do(http.MethodPost, "/student/test-requests", student.ID, map[string]string{}), http.StatusCreated, &req)
	if req.Status != "pending" {
		t.Fatalf("request status = %q", req.Status)
	}

	c.expect(c.do(http.MethodPost, fmt.Sprintf("/admin/test-requests/%d/in-progress", req.ID), admin.ID, nil), http.StatusOK, nil)

	var test idBody
	c.expect(c.do(http.MethodPost, fmt.Sprintf("/admin/test-requests/%d/assign", req.ID), admin.ID, map[string]any{
		"questions": []map[string]any{
			{"prompt": "Favourite subject?", "order": 1, "options": []map[string]any{{"label": "Math"}, {"label": "Art"}}},
		},
	}), http.StatusCreated, &test)
	if test.Status != "assigned" || len(test.Questions) != 1 || len(test.Questions[0].Options) != 2 {
		t.Fatalf("unexpected test %+v", test)
	}

	var own idBody
	c.expect(c.do(http.MethodGet, fmt.Sprintf("/test-requests/%d", req.ID), student.ID, nil), http.StatusOK, &own)
	if own.Status != "assigned" {
		t.Fatalf("request status = %q", own.Status)
	}
	var fetched idBody
	c.expect(c.do(http.MethodGet, fmt.Sprintf("/tests/%d", test.ID), student.ID, nil), http.StatusOK, &fetched)
	if len(fetched.Questions) != 1 || len(fetched.Questions[0].Options) != 2 {
		t.Fatalf("student must see the questions, got %+v", fetched)
	}

	q := fetched.Questions[0]
	c.expect(c.do(http.MethodPost, "/student/answers", student.ID, map[string]int64{
		"question_id": q.ID, "option_id": q.Options[0].ID,
	}), http.StatusOK, nil)
	c.expect(c.do(http.MethodPost, "/student/answers", student.ID, map[string]int64{
		"question_id": q.ID, "option_id": q.Options[1].ID,
	}), http.StatusOK, nil)

	var answers []struct {
		OptionID int64 `json:"option_id"`
	}
	c.expect(c.do(http.MethodGet, fmt.Sprintf("/student/tests/%d/answers", test.ID), student.ID, nil), http.StatusOK, &answers)
	if len(answers) != 1 || answers[0].OptionID != q.Options[1].ID {
		t.Fatalf("expected one answer with the latest option, got %+v", answers)
	}

	var rec idBody
	c.expect(c.do(http.MethodPost, fmt.Sprintf("/admin/tests/%d/recommendation", test.ID), admin.ID, map[string]any{
		"career_name": "Robotics Engineer",
		"summary":     "Build machines.",
		"steps":       []map[string]any{{"order": 1, "title": "Learn C"}, {"order": 2, "title": "Join a club"}},
	}), http.StatusCreated, &rec)

	var full struct {
		CareerName string `json:"career_name"`
		Steps      []struct {
			Order int `json:"order"`
		} `json:"steps"`
	}
	c.expect(c.do(http.MethodGet, fmt.Sprintf("/recommendations/%d", rec.ID), student.ID, nil), http.StatusOK, &full)
	if full.CareerName != "Robotics Engineer" || len(full.Steps) != 2 || full.Steps[0].Order != 1 {
		t.Fatalf("unexpected recommendation %+v", full)
	}

	var done idBody
	c.expect(c.do(http.MethodPost, fmt.Sprintf("/admin/tests/%d/complete", test.ID), admin.ID, nil), http.StatusOK, &done)
	if done.Status != "completed" {
		t.Fatalf("test status = %q", done.Status)
	}
	c.expect(c.do(http.MethodPost, fmt.Sprintf("/admin/tests/%d/complete", test.ID), admin.ID, nil), http.StatusConflict, nil)

	resp := c.do(http.MethodGet, fmt.Sprintf("/recommendations/%d/pdf", rec.ID), student.ID, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("pdf status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, fmt.Sprintf("recommendation_%d.pdf", rec.ID)) {
		t.Fatalf("content disposition = %q", cd)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(body, []byte("%PDF-")) {
		t.Fatalf("body is not a pdf: %q", body[:min(len(body), 16)])
	}
}

func TestHTTPErrors(t *testing.T) {
	c := newTestServer(t)

	var student, admin idBody
	c.expect(c.do(http.MethodPost, "/users", 0, map[string]string{"email": "s@example.com", "role": "student"}), http.StatusCreated, &student)
	c.expect(c.do(http.MethodPost, "/users", 0, map[string]string{"email": "a@example.com", "role": "admin"}), http.StatusCreated, &admin)

	c.expect(c.do(http.MethodPost, "/student/test-requests", 0, map[string]string{}), http.StatusUnauthorized, nil)
	c.expect(c.do(http.MethodPost, "/student/test-requests", admin.ID, map[string]string{}), http.StatusForbidden, nil)
	c.expect(c.do(http.MethodPost, "/admin/test-requests/42/in-progress", admin.ID, nil), http.StatusNotFound, nil)
	c.expect(c.do(http.MethodPost, "/admin/test-requests/abc/in-progress", admin.ID, nil), http.StatusBadRequest, nil)
	c.expect(c.do(http.MethodPost, "/users", 0, map[string]string{"email": "S@example.com", "role": "student"}), http.StatusBadRequest, nil)
	c.expect(c.do(http.MethodPost, "/student/test-requests", student.ID, map[string]string{"unknown": "x"}), http.StatusBadRequest, nil)

	var req idBody
	c.expect(c.do(http.MethodPost, "/student/test-requests", student.ID, map[string]string{}), http.StatusCreated, &req)
	c.expect(c.do(http.MethodPost, fmt.Sprintf("/admin/test-requests/%d/assign", req.ID), admin.ID, map[string]any{}), http.StatusBadRequest, nil)
	c.expect(c.do(http.MethodDelete, fmt.Sprintf("/admin/test-requests/%d", req.ID), admin.ID, nil), http.StatusNoContent, nil)
	c.expect(c.do(http.MethodPost, fmt.Sprintf("/admin/test-requests/%d/in-progress", req.ID), admin.ID, nil), http.StatusNotFound, nil)
}

func TestHTTPProfileAndForeignReads(t *testing.T) {
	c := newTestServer(t)

	var student, stranger, admin idBody
	c.expect(c.do(http.MethodPost, "/users", 0, map[string]string{"email": "s@example.com", "role": "student"}), http.StatusCreated, &student)
	c.expect(c.do(http.MethodPost, "/users", 0, map[string]string{"email": "x@example.com", "role": "student"}), http.StatusCreated, &stranger)
	c.expect(c.do(http.MethodPost, "/users", 0, map[string]string{"email": "a@example.com", "role": "admin"}), http.StatusCreated, &admin)

	var profile struct {
		Interests string `json:"interests"`
	}
	c.expect(c.do(http.MethodPatch, "/users/me", student.ID, map[string]string{"interests": "music"}), http.StatusOK, &profile)
	if profile.Interests != "music" {
		t.Fatalf("interests = %q", profile.Interests)
	}

	var req idBody
	c.expect(c.do(http.MethodPost, "/student/test-requests", student.ID, map[string]string{}), http.StatusCreated, &req)
	var test idBody
	c.expect(c.do(http.MethodPost, fmt.Sprintf("/admin/test-requests/%d/assign", req.ID), admin.ID, map[string]any{
		"questions": []map[string]any{{"prompt": "Q?", "options": []map[string]any{{"label": "A"}}}},
	}), http.StatusCreated, &test)

	c.expect(c.do(http.MethodGet, fmt.Sprintf("/test-requests/%d", req.ID), stranger.ID, nil), http.StatusNotFound, nil)
	c.expect(c.do(http.MethodGet, fmt.Sprintf("/tests/%d", test.ID), stranger.ID, nil), http.StatusNotFound, nil)
	c.expect(c.do(http.MethodGet, fmt.Sprintf("/student/tests/%d/answers", test.ID), stranger.ID, nil), http.StatusNotFound, nil)
	c.expect(c.do(http.MethodGet, fmt.Sprintf("/tests/%d", test.ID), admin.ID, nil), http.StatusOK, nil)

	c.expect(c.do(http.MethodDelete, fmt.Sprintf("/users/%d", student.ID), stranger.ID, nil), http.StatusForbidden, nil)
	c.expect(c.do(http.MethodDelete, fmt.Sprintf("/users/%d", student.ID), admin.ID, nil), http.StatusNoContent, nil)
	c.expect(c.do(http.MethodGet, fmt.Sprintf("/test-requests/%d", req.ID), admin.ID, nil), http.StatusNotFound, nil)
}
