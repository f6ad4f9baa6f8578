package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/IT-Nick/careerpath/internal/app/handlers/http/assign_test_handler"
	"github.com/IT-Nick/careerpath/internal/app/handlers/http/author_recommendation_handler"
	"github.com/IT-Nick/careerpath/internal/app/handlers/http/complete_test_handler"
	"github.com/IT-Nick/careerpath/internal/app/handlers/http/create_test_request_handler"
	"github.com/IT-Nick/careerpath/internal/app/handlers/http/delete_test_request_handler"
	"github.com/IT-Nick/careerpath/internal/app/handlers/http/delete_user_handler"
	"github.com/IT-Nick/careerpath/internal/app/handlers/http/get_recommendation_handler"
	"github.com/IT-Nick/careerpath/internal/app/handlers/http/get_test_handler"
	"github.com/IT-Nick/careerpath/internal/app/handlers/http/get_test_request_handler"
	"github.com/IT-Nick/careerpath/internal/app/handlers/http/list_answers_handler"
	"github.com/IT-Nick/careerpath/internal/app/handlers/http/mark_in_progress_handler"
	"github.com/IT-Nick/careerpath/internal/app/handlers/http/recommendation_pdf_handler"
	"github.com/IT-Nick/careerpath/internal/app/handlers/http/register_user_handler"
	"github.com/IT-Nick/careerpath/internal/app/handlers/http/submit_answer_handler"
	"github.com/IT-Nick/careerpath/internal/app/handlers/http/update_profile_handler"
	"github.com/IT-Nick/careerpath/internal/app/middleware"
	answersService "github.com/IT-Nick/careerpath/internal/domain/answers/service"
	"github.com/IT-Nick/careerpath/internal/domain/repository"
	"github.com/IT-Nick/careerpath/internal/domain/repository/postgres"
	usersService "github.com/IT-Nick/careerpath/internal/domain/users/service"
	workflowService "github.com/IT-Nick/careerpath/internal/domain/workflow/service"
	"github.com/IT-Nick/careerpath/internal/infra/config"
	"github.com/IT-Nick/careerpath/internal/report"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Services struct {
	userService     *usersService.UserService
	workflowService *workflowService.WorkflowService
	answerService   *answersService.AnswerService
	renderer        *report.Renderer
}

type App struct {
	config *config.Config
	db     *pgxpool.Pool
	server *http.Server

	Services
}

// NewApp загружает конфигурацию, подключается к базе и собирает сервисы
func NewApp(ctx context.Context, configPath string) (*App, error) {
	configImpl, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("config.LoadConfig: %w", err)
	}

	db, err := InitDatabase(ctx, configImpl)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app := newApp(configImpl, postgres.NewStore(db))
	app.db = db
	return app, nil
}

// newApp собирает приложение поверх готового хранилища
func newApp(cfg *config.Config, store repository.Store) *App {
	app := &App{config: cfg}
	app.initServices(store)
	return app
}

// Функция для инициализации сервисов
func (app *App) initServices(store repository.Store) {
	app.userService = usersService.NewUserService(store)
	app.workflowService = workflowService.NewWorkflowService(store, workflowService.Config{
		AutoComplete: app.config.Workflow.AutoComplete,
	})
	app.answerService = answersService.NewAnswerService(store, nil)
	app.renderer = report.NewRenderer(report.Options{
		Brand:    app.config.Report.Brand,
		Compress: app.config.Report.Compress,
		FontDir:  app.config.Report.FontDir,
	})
}

// Handler возвращает маршруты HTTP API
func (app *App) Handler() http.Handler {
	mx := http.NewServeMux()
	withCaller := middleware.Caller(app.userService)
	handle := func(pattern string, h http.Handler) {
		mx.Handle(pattern, withCaller(h))
	}

	mx.Handle("POST /users", register_user_handler.NewRegisterUserHandler(app.userService))
	handle("PATCH /users/me", update_profile_handler.NewUpdateProfileHandler(app.userService))
	handle("DELETE /users/{id}", delete_user_handler.NewDeleteUserHandler(app.userService))

	handle("POST /student/test-requests", create_test_request_handler.NewCreateTestRequestHandler(app.workflowService))
	handle("POST /student/answers", submit_answer_handler.NewSubmitAnswerHandler(app.answerService))
	handle("GET /student/tests/{id}/answers", list_answers_handler.NewListAnswersHandler(app.answerService))

	handle("GET /test-requests/{id}", get_test_request_handler.NewGetTestRequestHandler(app.workflowService))
	handle("GET /tests/{id}", get_test_handler.NewGetTestHandler(app.workflowService))
	handle("GET /recommendations/{id}", get_recommendation_handler.NewGetRecommendationHandler(app.workflowService))

	handle("POST /admin/test-requests/{id}/in-progress", mark_in_progress_handler.NewMarkInProgressHandler(app.workflowService))
	handle("POST /admin/test-requests/{id}/assign", assign_test_handler.NewAssignTestHandler(app.workflowService))
	handle("DELETE /admin/test-requests/{id}", delete_test_request_handler.NewDeleteTestRequestHandler(app.workflowService))
	handle("POST /admin/tests/{id}/recommendation", author_recommendation_handler.NewAuthorRecommendationHandler(app.workflowService))
	handle("POST /admin/tests/{id}/complete", complete_test_handler.NewCompleteTestHandler(app.workflowService))

	handle("GET /recommendations/{id}/pdf", recommendation_pdf_handler.NewRecommendationPDFHandler(app.workflowService, app.renderer))

	return middleware.Chain(mx, middleware.Logger(), middleware.Recover())
}

// ListenAndServeHTTP запускает HTTP сервер
func (app *App) ListenAndServeHTTP() error {
	app.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", app.config.Server.Host, app.config.Server.Port),
		Handler: app.Handler(),
	}

	log.Printf("HTTP server listening on %s", app.server.Addr)
	if err := app.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown останавливает HTTP сервер и закрывает пул соединений
func (app *App) Shutdown(ctx context.Context) error {
	var err error
	if app.server != nil {
		err = app.server.Shutdown(ctx)
	}
	if app.db != nil {
		app.db.Close()
	}
	return err
}
