package create_test_request_handler

import (
	"net/http"

	"github.com/IT-Nick/careerpath/internal/app/middleware"
	"github.com/IT-Nick/careerpath/internal/domain/dto"
	workflowService "github.com/IT-Nick/careerpath/internal/domain/workflow/service"
	httpError "github.com/IT-Nick/careerpath/pkg/http"
)

// CreateTestRequestHandler структура для обработчика
type CreateTestRequestHandler struct {
	workflowService *workflowService.WorkflowService
}

// NewCreateTestRequestHandler создает новый экземпляр обработчика
func NewCreateTestRequestHandler(workflowService *workflowService.WorkflowService) *CreateTestRequestHandler {
	return &CreateTestRequestHandler{workflowService: workflowService}
}

// ServeHTTP метод для обработки запроса
func (h *CreateTestRequestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		httpError.ErrorResponse(w, http.StatusUnauthorized, "Unknown caller")
		return
	}

	var request dto.CreateTestRequestInput
	if err := httpError.DecodeJSON(w, r, &request); err != nil {
		httpError.WriteError(w, err)
		return
	}

	req, err := h.workflowService.CreateRequest(r.Context(), caller, request)
	if err != nil {
		httpError.WriteError(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusCreated, req)
}
