package update_profile_handler

import (
	"net/http"

	"github.com/IT-Nick/careerpath/internal/app/middleware"
	"github.com/IT-Nick/careerpath/internal/domain/dto"
	usersService "github.com/IT-Nick/careerpath/internal/domain/users/service"
	httpError "github.com/IT-Nick/careerpath/pkg/http"
)

// UpdateProfileHandler структура для обработчика
type UpdateProfileHandler struct {
	userService *usersService.UserService
}

// NewUpdateProfileHandler создает новый экземпляр обработчика
func NewUpdateProfileHandler(userService *usersService.UserService) *UpdateProfileHandler {
	return &UpdateProfileHandler{userService: userService}
}

// ServeHTTP метод для обработки запроса
func (h *UpdateProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		httpError.ErrorResponse(w, http.StatusUnauthorized, "Unknown caller")
		return
	}

	var request dto.UpdateProfileInput
	if err := httpError.DecodeJSON(w, r, &request); err != nil {
		httpError.WriteError(w, err)
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), caller, request)
	if err != nil {
		httpError.WriteError(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, user)
}
