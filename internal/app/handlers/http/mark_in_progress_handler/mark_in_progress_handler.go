package mark_in_progress_handler

import (
	"net/http"

	"github.com/IT-Nick/careerpath/internal/app/middleware"
	workflowService "github.com/IT-Nick/careerpath/internal/domain/workflow/service"
	httpError "github.com/IT-Nick/careerpath/pkg/http"
)

// MarkInProgressHandler структура для обработчика
type MarkInProgressHandler struct {
	workflowService *workflowService.WorkflowService
}

// NewMarkInProgressHandler создает новый экземпляр обработчика
func NewMarkInProgressHandler(workflowService *workflowService.WorkflowService) *MarkInProgressHandler {
	return &MarkInProgressHandler{workflowService: workflowService}
}

// ServeHTTP метод для обработки запроса
func (h *MarkInProgressHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		httpError.ErrorResponse(w, http.StatusUnauthorized, "Unknown caller")
		return
	}
	requestID, err := httpError.PathID(r, "id")
	if err != nil {
		httpError.WriteError(w, err)
		return
	}

	req, err := h.workflowService.MarkInProgress(r.Context(), caller, requestID)
	if err != nil {
		httpError.WriteError(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, req)
}
