package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/IT-Nick/careerpath/internal/domain/errs"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// DecodeJSON читает тело запроса в v. Неизвестные поля считаются ошибкой.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errs.Validation(errs.KindInvalidInput, "invalid request body: %v", err)
	}
	return nil
}

// PathID разбирает числовой параметр пути
func PathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.Validation(errs.KindInvalidInput, "invalid %s %q", name, raw)
	}
	return id, nil
}

// Attachment имя файла для заголовка Content-Disposition
func Attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
