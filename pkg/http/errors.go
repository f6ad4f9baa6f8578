package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/IT-Nick/careerpath/internal/domain/errs"
)

// Error тело ответа с ошибкой
type Error struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// ErrorResponse отправляет ошибку в формате JSON
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	writeError(w, status, Error{Error: message})
}

// WriteError отправляет ошибку рабочего процесса с подходящим HTTP-статусом
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	body := Error{Error: err.Error(), Kind: string(errs.KindOf(err))}
	if status == http.StatusInternalServerError {
		body = Error{Error: "internal error"}
	}
	writeError(w, status, body)
}

// StatusFor HTTP-статус для ошибки: валидация 400 (нет прав 403),
// не найдено 404, недопустимый статус 409, остальное 500
func StatusFor(err error) int {
	var validation *errs.ValidationError
	switch {
	case errors.As(err, &validation):
		if validation.Kind == errs.KindForbiddenRole {
			return http.StatusForbidden
		}
		return http.StatusBadRequest
	case errs.IsNotFound(err):
		return http.StatusNotFound
	case errs.IsState(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// JSONResponse отправляет v в формате JSON
func JSONResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, body Error) {
	JSONResponse(w, status, body)
}
