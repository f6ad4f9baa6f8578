package author_recommendation_handler

import (
	"net/http"

	"github.com/IT-Nick/careerpath/internal/app/middleware"
	"github.com/IT-Nick/careerpath/internal/domain/dto"
	workflowService "github.com/IT-Nick/careerpath/internal/domain/workflow/service"
	httpError "github.com/IT-Nick/careerpath/pkg/http"
)

// AuthorRecommendationHandler структура для обработчика
type AuthorRecommendationHandler struct {
	workflowService *workflowService.WorkflowService
}

// NewAuthorRecommendationHandler создает новый экземпляр обработчика
func NewAuthorRecommendationHandler(workflowService *workflowService.WorkflowService) *AuthorRecommendationHandler {
	return &AuthorRecommendationHandler{workflowService: workflowService}
}

// ServeHTTP метод для обработки запроса
func (h *AuthorRecommendationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	var request dto.RecommendationInput
	if err := httpError.DecodeJSON(w, r, &request); err != nil {
		httpError.WriteError(w, err)
		return
	}

	rec, err := h.workflowService.AuthorRecommendation(r.Context(), caller, testID, request)
	if err != nil {
		httpError.WriteError(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusCreated, rec)
}
