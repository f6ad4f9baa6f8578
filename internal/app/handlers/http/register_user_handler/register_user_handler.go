package register_user_handler

import (
	"net/http"

	"github.com/IT-Nick/careerpath/internal/domain/dto"
	usersService "github.com/IT-Nick/careerpath/internal/domain/users/service"
	httpError "github.com/IT-Nick/careerpath/pkg/http"
)

// RegisterUserHandler структура для обработчика.
// Вызывается шлюзом аутентификации при первом входе пользователя.
type RegisterUserHandler struct {
	userService *usersService.UserService
}

// NewRegisterUserHandler создает новый экземпляр обработчика
func NewRegisterUserHandler(userService *usersService.UserService) *RegisterUserHandler {
	return &RegisterUserHandler{userService: userService}
}

// ServeHTTP метод для обработки запроса
func (h *RegisterUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var request dto.RegisterUserInput
	if err := httpError.DecodeJSON(w, r, &request); err != nil {
		httpError.WriteError(w, err)
		return
	}

	user, err := h.userService.Register(r.Context(), request)
	if err != nil {
		httpError.WriteError(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusCreated, user)
}
