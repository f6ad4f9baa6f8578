// Package postgres реализует repository.Store поверх PostgreSQL (pgx).
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/IT-Nick/careerpath/internal/domain/errs"
	"github.com/IT-Nick/careerpath/internal/domain/model"
	"github.com/IT-Nick/careerpath/internal/domain/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Store хранилище сущностей в PostgreSQL
type Store struct {
	db *pgxpool.Pool
}

// NewStore создает новый экземпляр Store
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// EnsureSchema создает таблицы, если их еще нет
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// InTx выполняет fn в транзакции, при ошибке транзакция откатывается
func (s *Store) InTx(ctx context.Context, fn func(q repository.Queries) error) error {
	return pgx.BeginTxFunc(ctx, s.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return fn(&queries{db: tx})
	})
}

var _ repository.Store = (*Store)(nil)

type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type queries struct {
	db dbtx
}

// mapError переводит ошибки pgx в ошибки рабочего процесса.
// entity и id описывают сущность, к которой относится запрос.
func mapError(err error, entity string, id int64) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.NotFound(entity, id)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return errs.Validation(errs.KindDuplicate, "%s violates %s", entity, pgErr.ConstraintName)
		case codeForeignKeyViolation:
			return errs.NotFound(entity, id)
		}
	}
	return err
}

func expectOne(tag pgconn.CommandTag, entity string, id int64) error {
	if tag.RowsAffected() == 0 {
		return errs.NotFound(entity, id)
	}
	return nil
}

func (q *queries) CreateUser(ctx context.Context, user *model.User) error {
	err := q.db.QueryRow(ctx, `
		INSERT INTO users (email, first_name, last_name, role, qualification, interests, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		user.Email, user.FirstName, user.LastName, string(user.Role), user.Qualification, user.Interests, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", mapError(err, repository.EntityUser, 0))
	}
	return nil
}

func (q *queries) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	var role string
	err := q.db.QueryRow(ctx, `
		SELECT id, email, first_name, last_name, role, qualification, interests, created_at
		FROM users WHERE id = $1`, id,
	).Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName, &role, &user.Qualification, &user.Interests, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", mapError(err, repository.EntityUser, id))
	}
	user.Role = model.Role(role)
	return &user, nil
}

func (q *queries) UpdateUserProfile(ctx context.Context, id int64, qualification, interests string) error {
	tag, err := q.db.Exec(ctx, "UPDATE users SET qualification = $2, interests = $3 WHERE id = $1", id, qualification, interests)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	return expectOne(tag, repository.EntityUser, id)
}

// DeleteUser удаляет пользователя; заявки и ответы удаляются каскадно,
// ссылки admin_id обнуляются внешними ключами
func (q *queries) DeleteUser(ctx context.Context, id int64) error {
	tag, err := q.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return expectOne(tag, repository.EntityUser, id)
}

func (q *queries) CreateTestRequest(ctx context.Context, req *model.TestRequest) error {
	err := q.db.QueryRow(ctx, `
		INSERT INTO test_requests (student_id, interests_snapshot, qualification_snapshot, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		req.StudentID, req.InterestsSnapshot, req.QualificationSnapshot, string(req.Status), req.CreatedAt, req.UpdatedAt,
	).Scan(&req.ID)
	if err != nil {
		return fmt.Errorf("failed to create test request: %w", mapError(err, repository.EntityUser, req.StudentID))
	}
	return nil
}

// GetTestRequest читает заявку с блокировкой строки до конца транзакции
func (q *queries) GetTestRequest(ctx context.Context, id int64) (*model.TestRequest, error) {
	var req model.TestRequest
	var status string
	err := q.db.QueryRow(ctx, `
		SELECT id, student_id, interests_snapshot, qualification_snapshot, status, created_at, updated_at
		FROM test_requests WHERE id = $1
		FOR UPDATE`, id,
	).Scan(&req.ID, &req.StudentID, &req.InterestsSnapshot, &req.QualificationSnapshot, &status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get test request: %w", mapError(err, repository.EntityTestRequest, id))
	}
	req.Status = model.RequestStatus(status)
	return &req, nil
}

func (q *queries) UpdateTestRequestStatus(ctx context.Context, id int64, status model.RequestStatus, at time.Time) error {
	tag, err := q.db.Exec(ctx, "UPDATE test_requests SET status = $2, updated_at = $3 WHERE id = $1", id, string(status), at)
	if err != nil {
		return fmt.Errorf("failed to update test request status: %w", err)
	}
	return expectOne(tag, repository.EntityTestRequest, id)
}

func (q *queries) DeleteTestRequest(ctx context.Context, id int64) error {
	tag, err := q.db.Exec(ctx, "DELETE FROM test_requests WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete test request: %w", err)
	}
	return expectOne(tag, repository.EntityTestRequest, id)
}

func (q *queries) CreatePersonalizedTest(ctx context.Context, test *model.PersonalizedTest) error {
	err := q.db.QueryRow(ctx, `
		INSERT INTO personalized_tests (request_id, admin_id, status, assigned_at, completed_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		test.RequestID, test.AdminID, string(test.Status), test.AssignedAt, test.CompletedAt,
	).Scan(&test.ID)
	if err != nil {
		return fmt.Errorf("failed to create personalized test: %w", mapError(err, repository.EntityTestRequest, test.RequestID))
	}
	return nil
}

const selectTest = `
	SELECT id, request_id, admin_id, status, assigned_at, completed_at
	FROM personalized_tests`

func scanTest(row pgx.Row) (*model.PersonalizedTest, error) {
	var test model.PersonalizedTest
	var status string
	if err := row.Scan(&test.ID, &test.RequestID, &test.AdminID, &status, &test.AssignedAt, &test.CompletedAt); err != nil {
		return nil, err
	}
	test.Status = model.TestStatus(status)
	return &test, nil
}

// GetPersonalizedTest читает тест с блокировкой строки до конца транзакции
func (q *queries) GetPersonalizedTest(ctx context.Context, id int64) (*model.PersonalizedTest, error) {
	test, err := scanTest(q.db.QueryRow(ctx, selectTest+" WHERE id = $1 FOR UPDATE", id))
	if err != nil {
		return nil, fmt.Errorf("failed to get personalized test: %w", mapError(err, repository.EntityTest, id))
	}
	return test, nil
}

func (q *queries) GetPersonalizedTestByRequest(ctx context.Context, requestID int64) (*model.PersonalizedTest, error) {
	test, err := scanTest(q.db.QueryRow(ctx, selectTest+" WHERE request_id = $1", requestID))
	if err != nil {
		return nil, fmt.Errorf("failed to get personalized test by request: %w", mapError(err, repository.EntityTest, requestID))
	}
	return test, nil
}

func (q *queries) UpdatePersonalizedTest(ctx context.Context, test *model.PersonalizedTest) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE personalized_tests
		SET admin_id = $2, status = $3, assigned_at = $4, completed_at = $5
		WHERE id = $1`,
		test.ID, test.AdminID, string(test.Status), test.AssignedAt, test.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update personalized test: %w", mapError(err, repository.EntityUser, derefID(test.AdminID)))
	}
	return expectOne(tag, repository.EntityTest, test.ID)
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

func (q *queries) CreateQuestion(ctx context.Context, question *model.Question) error {
	err := q.db.QueryRow(ctx, `
		INSERT INTO questions (personalized_test_id, prompt, sort_order)
		VALUES ($1, $2, $3)
		RETURNING id`,
		question.PersonalizedTestID, question.Prompt, question.Order,
	).Scan(&question.ID)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", mapError(err, repository.EntityTest, question.PersonalizedTestID))
	}
	return nil
}

func (q *queries) CreateOption(ctx context.Context, option *model.Option) error {
	err := q.db.QueryRow(ctx, `
		INSERT INTO options (question_id, label, description, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		option.QuestionID, option.Label, option.Description, option.Order,
	).Scan(&option.ID)
	if err != nil {
		return fmt.Errorf("failed to create option: %w", mapError(err, repository.EntityQuestion, option.QuestionID))
	}
	return nil
}

func (q *queries) GetQuestion(ctx context.Context, id int64) (*model.Question, error) {
	var question model.Question
	err := q.db.QueryRow(ctx, "SELECT id, personalized_test_id, prompt, sort_order FROM questions WHERE id = $1", id).
		Scan(&question.ID, &question.PersonalizedTestID, &question.Prompt, &question.Order)
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", mapError(err, repository.EntityQuestion, id))
	}
	return &question, nil
}

func (q *queries) GetOption(ctx context.Context, id int64) (*model.Option, error) {
	var option model.Option
	err := q.db.QueryRow(ctx, "SELECT id, question_id, label, description, sort_order FROM options WHERE id = $1", id).
		Scan(&option.ID, &option.QuestionID, &option.Label, &option.Description, &option.Order)
	if err != nil {
		return nil, fmt.Errorf("failed to get option: %w", mapError(err, repository.EntityOption, id))
	}
	return &option, nil
}

// ListQuestions возвращает вопросы теста вместе с вариантами ответов
func (q *queries) ListQuestions(ctx context.Context, testID int64) ([]model.Question, error) {
	rows, err := q.db.Query(ctx, `
		SELECT q.id, q.prompt, q.sort_order, o.id, o.label, o.description, o.sort_order
		FROM questions q
		LEFT JOIN options o ON o.question_id = q.id
		WHERE q.personalized_test_id = $1
		ORDER BY q.sort_order, q.id, o.sort_order, o.id`, testID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var (
			questionID  int64
			prompt      string
			order       int
			optionID    *int64
			label       *string
			description *string
			optionOrder *int
		)
		if err := rows.Scan(&questionID, &prompt, &order, &optionID, &label, &description, &optionOrder); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		if n := len(questions); n == 0 || questions[n-1].ID != questionID {
			questions = append(questions, model.Question{ID: questionID, PersonalizedTestID: testID, Prompt: prompt, Order: order})
		}
		if optionID == nil {
			continue
		}
		last := &questions[len(questions)-1]
		last.Options = append(last.Options, model.Option{
			ID:          *optionID,
			QuestionID:  questionID,
			Label:       *label,
			Description: *description,
			Order:       *optionOrder,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over questions: %w", err)
	}
	return questions, nil
}

// UpsertAnswer вставляет ответ или заменяет вариант и время ответа по ключу (вопрос, студент)
func (q *queries) UpsertAnswer(ctx context.Context, answer *model.StudentAnswer) error {
	err := q.db.QueryRow(ctx, `
		INSERT INTO student_answers (question_id, option_id, student_id, submitted_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (question_id, student_id)
		DO UPDATE SET option_id = EXCLUDED.option_id, submitted_at = EXCLUDED.submitted_at
		RETURNING id`,
		answer.QuestionID, answer.OptionID, answer.StudentID, answer.SubmittedAt,
	).Scan(&answer.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert answer: %w", mapAnswerError(err, answer))
	}
	return nil
}

func mapAnswerError(err error, answer *model.StudentAnswer) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
		switch pgErr.ConstraintName {
		case "student_answers_option_id_fkey":
			return errs.NotFound(repository.EntityOption, answer.OptionID)
		case "student_answers_student_id_fkey":
			return errs.NotFound(repository.EntityUser, answer.StudentID)
		}
	}
	return mapError(err, repository.EntityQuestion, answer.QuestionID)
}

func (q *queries) ListAnswers(ctx context.Context, testID, studentID int64) ([]model.StudentAnswer, error) {
	rows, err := q.db.Query(ctx, `
		SELECT a.id, a.question_id, a.option_id, a.student_id, a.submitted_at
		FROM student_answers a
		JOIN questions q ON q.id = a.question_id
		WHERE q.personalized_test_id = $1 AND a.student_id = $2
		ORDER BY a.id`, testID, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	defer rows.Close()

	var answers []model.StudentAnswer
	for rows.Next() {
		var a model.StudentAnswer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.OptionID, &a.StudentID, &a.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over answers: %w", err)
	}
	return answers, nil
}

func (q *queries) CreateRecommendation(ctx context.Context, rec *model.CareerRecommendation) error {
	err := q.db.QueryRow(ctx, `
		INSERT INTO career_recommendations (personalized_test_id, admin_id, career_name, summary, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		rec.PersonalizedTestID, rec.AdminID, rec.CareerName, rec.Summary, rec.CreatedAt,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("failed to create recommendation: %w", mapError(err, repository.EntityRecommendation, rec.PersonalizedTestID))
	}
	return nil
}

const selectRecommendation = `
	SELECT id, personalized_test_id, admin_id, career_name, summary, created_at
	FROM career_recommendations`

func scanRecommendation(row pgx.Row) (*model.CareerRecommendation, error) {
	var rec model.CareerRecommendation
	if err := row.Scan(&rec.ID, &rec.PersonalizedTestID, &rec.AdminID, &rec.CareerName, &rec.Summary, &rec.CreatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (q *queries) GetRecommendation(ctx context.Context, id int64) (*model.CareerRecommendation, error) {
	rec, err := scanRecommendation(q.db.QueryRow(ctx, selectRecommendation+" WHERE id = $1", id))
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendation: %w", mapError(err, repository.EntityRecommendation, id))
	}
	return rec, nil
}

func (q *queries) GetRecommendationByTest(ctx context.Context, testID int64) (*model.CareerRecommendation, error) {
	rec, err := scanRecommendation(q.db.QueryRow(ctx, selectRecommendation+" WHERE personalized_test_id = $1", testID))
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendation by test: %w", mapError(err, repository.EntityRecommendation, testID))
	}
	return rec, nil
}

func (q *queries) CreateRoadmapStep(ctx context.Context, step *model.RoadmapStep) error {
	err := q.db.QueryRow(ctx, `
		INSERT INTO roadmap_steps (recommendation_id, step_order, title, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		step.RecommendationID, step.Order, step.Title, step.Description,
	).Scan(&step.ID)
	if err != nil {
		return fmt.Errorf("failed to create roadmap step: %w", mapError(err, repository.EntityRecommendation, step.RecommendationID))
	}
	return nil
}

func (q *queries) ListRoadmapSteps(ctx context.Context, recommendationID int64) ([]model.RoadmapStep, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, recommendation_id, step_order, title, description
		FROM roadmap_steps
		WHERE recommendation_id = $1
		ORDER BY step_order, id`, recommendationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roadmap steps: %w", err)
	}
	defer rows.Close()

	var steps []model.RoadmapStep
	for rows.Next() {
		var s model.RoadmapStep
		if err := rows.Scan(&s.ID, &s.RecommendationID, &s.Order, &s.Title, &s.Description); err != nil {
			return nil, fmt.Errorf("failed to scan roadmap step: %w", err)
		}
		steps = append(steps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over roadmap steps: %w", err)
	}
	return steps, nil
}
