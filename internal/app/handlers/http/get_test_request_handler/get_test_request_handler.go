package get_test_request_handler

import (
	"net/http"

	"github.com/IT-Nick/careerpath/internal/app/middleware"
	workflowService "github.com/IT-Nick/careerpath/internal/domain/workflow/service"
	httpError "github.com/IT-Nick/careerpath/pkg/http"
)

// GetTestRequestHandler отдает заявку на тест с ее статусом
type GetTestRequestHandler struct {
	workflowService *workflowService.WorkflowService
}

// NewGetTestRequestHandler создает новый экземпляр обработчика
func NewGetTestRequestHandler(workflowService *workflowService.WorkflowService) *GetTestRequestHandler {
	return &GetTestRequestHandler{workflowService: workflowService}
}

// ServeHTTP метод для обработки запроса
func (h *GetTestRequestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.workflowService.GetRequest(r.Context(), caller, requestID)
	if err != nil {
		httpError.WriteError(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, result)
}
