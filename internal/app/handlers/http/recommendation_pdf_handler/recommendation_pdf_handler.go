package recommendation_pdf_handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/IT-Nick/careerpath/internal/app/middleware"
	workflowService "github.com/IT-Nick/careerpath/internal/domain/workflow/service"
	"github.com/IT-Nick/careerpath/internal/report"
	httpError "github.com/IT-Nick/careerpath/pkg/http"
)

// RecommendationPDFHandler отдает PDF-отчет по рекомендации
type RecommendationPDFHandler struct {
	workflowService *workflowService.WorkflowService
	renderer        *report.Renderer
}

// NewRecommendationPDFHandler создает новый экземпляр обработчика
func NewRecommendationPDFHandler(workflowService *workflowService.WorkflowService, renderer *report.Renderer) *RecommendationPDFHandler {
	return &RecommendationPDFHandler{workflowService: workflowService, renderer: renderer}
}

// ServeHTTP метод для обработки запроса
func (h *RecommendationPDFHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		httpError.ErrorResponse(w, http.StatusUnauthorized, "Unknown caller")
		return
	}
	recID, err := httpError.PathID(r, "id")
	if err != nil {
		httpError.WriteError(w, err)
		return
	}

	data, err := h.workflowService.ReportInput(r.Context(), caller, recID)
	if err != nil {
		httpError.WriteError(w, err)
		return
	}

	buf, err := h.renderer.Render(data.Recommendation, data.Student)
	if err != nil {
		log.Printf("failed to render recommendation %d: %v", recID, err)
		httpError.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Content-Disposition", httpError.Attachment(fmt.Sprintf("recommendation_%d.pdf", recID)))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("failed to write pdf for recommendation %d: %v", recID, err)
	}
}
