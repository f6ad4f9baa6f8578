package delete_test_request_handler

import (
	"net/http"

	"github.com/IT-Nick/careerpath/internal/app/middleware"
	workflowService "github.com/IT-Nick/careerpath/internal/domain/workflow/service"
	httpError "github.com/IT-Nick/careerpath/pkg/http"
)

// DeleteTestRequestHandler структура для обработчика
type DeleteTestRequestHandler struct {
	workflowService *workflowService.WorkflowService
}

// NewDeleteTestRequestHandler создает новый экземпляр обработчика
func NewDeleteTestRequestHandler(workflowService *workflowService.WorkflowService) *DeleteTestRequestHandler {
	return &DeleteTestRequestHandler{workflowService: workflowService}
}

// ServeHTTP метод для обработки запроса
func (h *DeleteTestRequestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	if err := h.workflowService.DeleteRequest(r.Context(), caller, requestID); err != nil {
		httpError.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
