package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/IT-Nick/careerpath/internal/domain/model"
	httpError "github.com/IT-Nick/careerpath/pkg/http"
)

// CallerHeader заголовок с ID пользователя, выставляется внешним шлюзом аутентификации
const CallerHeader = "X-User-ID"

type callerKey struct{}

// CallerResolver находит пользователя по ID
type CallerResolver interface {
	Caller(ctx context.Context, userID int64) (model.Caller, error)
}

// Caller возвращает middleware, которое определяет вызывающего по заголовку X-User-ID
// и кладет его в контекст запроса
func Caller(resolver CallerResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(CallerHeader)
			if raw == "" {
				httpError.ErrorResponse(w, http.StatusUnauthorized, "Missing "+CallerHeader+" header")
				return
			}
			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				httpError.ErrorResponse(w, http.StatusUnauthorized, "Invalid "+CallerHeader+" header")
				return
			}
			caller, err := resolver.Caller(r.Context(), userID)
			if err != nil {
				if httpError.StatusFor(err) == http.StatusNotFound {
					httpError.ErrorResponse(w, http.StatusUnauthorized, "Unknown user")
					return
				}
				httpError.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), callerKey{}, caller)))
		})
	}
}

// CallerFrom достает вызывающего из контекста запроса
func CallerFrom(ctx context.Context) (model.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(model.Caller)
	return caller, ok
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logger возвращает middleware, которое логирует метод, путь, статус и время обработки запроса.
// Если логгер не передан, используется log.Default().
func Logger(logger ...*log.Logger) func(http.Handler) http.Handler {
	var l *log.Logger
	if len(logger) > 0 {
		l = logger[0]
	} else {
		l = log.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			l.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
		})
	}
}

// Recover возвращает middleware, которое перехватывает панику в обработчике
// и отвечает 500. onError вызывается с ошибкой паники, по умолчанию она логируется.
func Recover(onError ...func(error, *http.Request)) func(http.Handler) http.Handler {
	var handleError func(error, *http.Request)
	if len(onError) > 0 {
		handleError = onError[0]
	} else {
		handleError = func(err error, r *http.Request) {
			log.Printf("Recovered from panic in %s %s: %v", r.Method, r.URL.Path, err)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rv := recover(); rv != nil {
					var e error
					switch x := rv.(type) {
					case error:
						e = x
					case string:
						e = errors.New(x)
					default:
						e = errors.New("unknown panic")
					}
					handleError(e, r)
					httpError.ErrorResponse(w, http.StatusInternalServerError, "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Chain применяет middleware так, что первое в списке выполняется первым
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
