// Package repository описывает хранилище сущностей рабочего процесса.
package repository

import (
	"context"
	"time"

	"github.com/IT-Nick/careerpath/internal/domain/model"
)

// Имена сущностей в ошибках NotFound
const (
	EntityUser           = "user"
	EntityTestRequest    = "test request"
	EntityTest           = "personalized test"
	EntityQuestion       = "question"
	EntityOption         = "option"
	EntityAnswer         = "answer"
	EntityRecommendation = "recommendation"
)

// Store выполняет функцию внутри одной транзакции.
// Если fn возвращает ошибку, ни одно изменение не сохраняется.
type Store interface {
	InTx(ctx context.Context, fn func(q Queries) error) error
}

// Queries операции над сущностями, доступные внутри транзакции.
// Get-методы возвращают *errs.NotFoundError, если строки нет.
type Queries interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id int64) (*model.User, error)
	UpdateUserProfile(ctx context.Context, id int64, qualification, interests string) error
	DeleteUser(ctx context.Context, id int64) error

	CreateTestRequest(ctx context.Context, req *model.TestRequest) error
	GetTestRequest(ctx context.Context, id int64) (*model.TestRequest, error)
	UpdateTestRequestStatus(ctx context.Context, id int64, status model.RequestStatus, at time.Time) error
	DeleteTestRequest(ctx context.Context, id int64) error

	CreatePersonalizedTest(ctx context.Context, test *model.PersonalizedTest) error
	GetPersonalizedTest(ctx context.Context, id int64) (*model.PersonalizedTest, error)
	GetPersonalizedTestByRequest(ctx context.Context, requestID int64) (*model.PersonalizedTest, error)
	UpdatePersonalizedTest(ctx context.Context, test *model.PersonalizedTest) error

	CreateQuestion(ctx context.Context, question *model.Question) error
	CreateOption(ctx context.Context, option *model.Option) error
	GetQuestion(ctx context.Context, id int64) (*model.Question, error)
	GetOption(ctx context.Context, id int64) (*model.Option, error)
	ListQuestions(ctx context.Context, testID int64) ([]model.Question, error)

	UpsertAnswer(ctx context.Context, answer *model.StudentAnswer) error
	ListAnswers(ctx context.Context, testID, studentID int64) ([]model.StudentAnswer, error)

	CreateRecommendation(ctx context.Context, rec *model.CareerRecommendation) error
	GetRecommendation(ctx context.Context, id int64) (*model.CareerRecommendation, error)
	GetRecommendationByTest(ctx context.Context, testID int64) (*model.CareerRecommendation, error)
	CreateRoadmapStep(ctx context.Context, step *model.RoadmapStep) error
	ListRoadmapSteps(ctx context.Context, recommendationID int64) ([]model.RoadmapStep, error)
}
