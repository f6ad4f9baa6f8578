package assign_test_handler

import (
	"net/http"

	"github.com/IT-Nick/careerpath/internal/app/middleware"
	"github.com/IT-Nick/careerpath/internal/domain/dto"
	workflowService "github.com/IT-Nick/careerpath/internal/domain/workflow/service"
	httpError "github.com/IT-Nick/careerpath/pkg/http"
)

// AssignTestHandler структура для обработчика
type AssignTestHandler struct {
	workflowService *workflowService.WorkflowService
}

// NewAssignTestHandler создает новый экземпляр обработчика
func NewAssignTestHandler(workflowService *workflowService.WorkflowService) *AssignTestHandler {
	return &AssignTestHandler{workflowService: workflowService}
}

// ServeHTTP метод для обработки запроса
func (h *AssignTestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	var request dto.AssignTestInput
	if err := httpError.DecodeJSON(w, r, &request); err != nil {
		httpError.WriteError(w, err)
		return
	}

	test, err := h.workflowService.AssignTest(r.Context(), caller, requestID, request)
	if err != nil {
		httpError.WriteError(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusCreated, test)
}
