package get_test_handler

import (
	"net/http"

	"github.com/IT-Nick/careerpath/internal/app/middleware"
	workflowService "github.com/IT-Nick/careerpath/internal/domain/workflow/service"
	httpError "github.com/IT-Nick/careerpath/pkg/http"
)

// GetTestHandler отдает тест с вопросами и вариантами ответов
type GetTestHandler struct {
	workflowService *workflowService.WorkflowService
}

// NewGetTestHandler создает новый экземпляр обработчика
func NewGetTestHandler(workflowService *workflowService.WorkflowService) *GetTestHandler {
	return &GetTestHandler{workflowService: workflowService}
}

// ServeHTTP метод для обработки запроса
func (h *GetTestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.workflowService.GetTest(r.Context(), caller, testID)
	if err != nil {
		httpError.WriteError(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, result)
}
