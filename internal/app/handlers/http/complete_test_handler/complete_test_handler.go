package complete_test_handler

import (
	"net/http"

	"github.com/IT-Nick/careerpath/internal/app/middleware"
	workflowService "github.com/IT-Nick/careerpath/internal/domain/workflow/service"
	httpError "github.com/IT-Nick/careerpath/pkg/http"
)

// CompleteTestHandler структура для обработчика
type CompleteTestHandler struct {
	workflowService *workflowService.WorkflowService
}

// NewCompleteTestHandler создает новый экземпляр обработчика
func NewCompleteTestHandler(workflowService *workflowService.WorkflowService) *CompleteTestHandler {
	return &CompleteTestHandler{workflowService: workflowService}
}

// ServeHTTP метод для обработки запроса
func (h *CompleteTestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		httpError.ErrorResponse(w, http.StatusUnauthorized, "Unknown caller")
		return
	}
	testID, err := httpError.PathID(r, "id")
	if err != nil {
		httpError.WriteError(w, err)
		return
	}

	test, err := h.workflowService.CompleteTest(r.Context(), caller, testID)
	if err != nil {
		httpError.WriteError(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, test)
}
