package submit_answer_handler

import (
	"net/http"

	"github.com/IT-Nick/careerpath/internal/app/middleware"
	answersService "github.com/IT-Nick/careerpath/internal/domain/answers/service"
	"github.com/IT-Nick/careerpath/internal/domain/dto"
	httpError "github.com/IT-Nick/careerpath/pkg/http"
)

// SubmitAnswerHandler структура для обработчика
type SubmitAnswerHandler struct {
	answerService *answersService.AnswerService
}

// NewSubmitAnswerHandler создает новый экземпляр обработчика
func NewSubmitAnswerHandler(answerService *answersService.AnswerService) *SubmitAnswerHandler {
	return &SubmitAnswerHandler{answerService: answerService}
}

// ServeHTTP метод для обработки запроса
func (h *SubmitAnswerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		httpError.ErrorResponse(w, http.StatusUnauthorized, "Unknown caller")
		return
	}

	var request dto.SubmitAnswerInput
	if err := httpError.DecodeJSON(w, r, &request); err != nil {
		httpError.WriteError(w, err)
		return
	}

	answer, err := h.answerService.SubmitAnswer(r.Context(), caller, request)
	if err != nil {
		httpError.WriteError(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, answer)
}
