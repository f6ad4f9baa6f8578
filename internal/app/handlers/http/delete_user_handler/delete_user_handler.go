package delete_user_handler

import (
	"net/http"

	"github.com/IT-Nick/careerpath/internal/app/middleware"
	usersService "github.com/IT-Nick/careerpath/internal/domain/users/service"
	httpError "github.com/IT-Nick/careerpath/pkg/http"
)

// DeleteUserHandler удаляет пользователя вместе с его заявками и ответами
type DeleteUserHandler struct {
	userService *usersService.UserService
}

// NewDeleteUserHandler создает новый экземпляр обработчика
func NewDeleteUserHandler(userService *usersService.UserService) *DeleteUserHandler {
	return &DeleteUserHandler{userService: userService}
}

// ServeHTTP метод для обработки запроса
func (h *DeleteUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		httpError.ErrorResponse(w, http.StatusUnauthorized, "Unknown caller")
		return
	}
	userID, err := httpError.PathID(r, "id")
	if err != nil {
		httpError.WriteError(w, err)
		return
	}

	if err := h.userService.DeleteUser(r.Context(), caller, userID); err != nil {
		httpError.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
