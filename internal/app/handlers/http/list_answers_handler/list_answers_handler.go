package list_answers_handler

import (
	"net/http"

	"github.com/IT-Nick/careerpath/internal/app/middleware"
	answersService "github.com/IT-Nick/careerpath/internal/domain/answers/service"
	httpError "github.com/IT-Nick/careerpath/pkg/http"
)

// ListAnswersHandler отдает ответы студента по тесту
type ListAnswersHandler struct {
	answerService *answersService.AnswerService
}

// NewListAnswersHandler создает новый экземпляр обработчика
func NewListAnswersHandler(answerService *answersService.AnswerService) *ListAnswersHandler {
	return &ListAnswersHandler{answerService: answerService}
}

// ServeHTTP метод для обработки запроса
func (h *ListAnswersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.answerService.ListAnswers(r.Context(), caller, testID)
	if err != nil {
		httpError.WriteError(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, result)
}
