package get_recommendation_handler

import (
	"net/http"

	"github.com/IT-Nick/careerpath/internal/app/middleware"
	workflowService "github.com/IT-Nick/careerpath/internal/domain/workflow/service"
	httpError "github.com/IT-Nick/careerpath/pkg/http"
)

// GetRecommendationHandler отдает рекомендацию с дорожной картой
type GetRecommendationHandler struct {
	workflowService *workflowService.WorkflowService
}

// NewGetRecommendationHandler создает новый экземпляр обработчика
func NewGetRecommendationHandler(workflowService *workflowService.WorkflowService) *GetRecommendationHandler {
	return &GetRecommendationHandler{workflowService: workflowService}
}

// ServeHTTP метод для обработки запроса
func (h *GetRecommendationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.workflowService.GetRecommendation(r.Context(), caller, recID)
	if err != nil {
		httpError.WriteError(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, result)
}
