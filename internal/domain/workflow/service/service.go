package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IT-Nick/careerpath/internal/domain/dto"
	"github.com/IT-Nick/careerpath/internal/domain/errs"
	"github.com/IT-Nick/careerpath/internal/domain/model"
	"github.com/IT-Nick/careerpath/internal/domain/repository"
)

// Config настройки WorkflowService
type Config struct {
	// AutoComplete завершает тест сразу после создания рекомендации
	AutoComplete bool
	// Now источник времени, по умолчанию time.Now
	Now func() time.Time
}

// WorkflowService ведет заявку студента от создания до выдачи рекомендации
type WorkflowService struct {
	store        repository.Store
	autoComplete bool
	now          func() time.Time
}

// NewWorkflowService создает новый экземпляр WorkflowService
func NewWorkflowService(store repository.Store, cfg Config) *WorkflowService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &WorkflowService{store: store, autoComplete: cfg.AutoComplete, now: now}
}

// ReportData рекомендация вместе со студентом, которому она выдана
type ReportData struct {
	Recommendation model.CareerRecommendation
	Student        model.User
}

func authorize(caller model.Caller, perm model.Permission) error {
	if !model.Can(caller.Role, perm) {
		return errs.Validation(errs.KindForbiddenRole, "role %q is not allowed to %s", caller.Role, perm)
	}
	return nil
}

// loadCaller проверяет, что вызывающий существует и его роль совпадает с сохраненной
func loadCaller(ctx context.Context, q repository.Queries, caller model.Caller) (*model.User, error) {
	user, err := q.GetUser(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if user.Role != caller.Role {
		return nil, errs.Validation(errs.KindForbiddenRole, "user %d does not have role %q", caller.UserID, caller.Role)
	}
	return user, nil
}

// CreateRequest создает заявку студента в статусе pending.
// Пустые интересы и квалификация берутся из профиля студента.
func (s *WorkflowService) CreateRequest(ctx context.Context, caller model.Caller, in dto.CreateTestRequestInput) (*model.TestRequest, error) {
	const op = "workflow.CreateRequest"

	if err := authorize(caller, model.PermCreateRequest); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	var req model.TestRequest
	err := s.store.InTx(ctx, func(q repository.Queries) error {
		student, err := loadCaller(ctx, q, caller)
		if err != nil {
			return err
		}
		req = model.TestRequest{
			StudentID:             student.ID,
			InterestsSnapshot:     firstNonEmpty(in.Interests, student.Interests),
			QualificationSnapshot: firstNonEmpty(in.Qualification, student.Qualification),
			Status:                model.RequestPending,
			CreatedAt:             now,
			UpdatedAt:             now,
		}
		return q.CreateTestRequest(ctx, &req)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Printf("test request %d created by student %d", req.ID, req.StudentID)
	return &req, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// MarkInProgress переводит заявку из pending в in_progress
func (s *WorkflowService) MarkInProgress(ctx context.Context, caller model.Caller, requestID int64) (*model.TestRequest, error) {
	const op = "workflow.MarkInProgress"

	if err := authorize(caller, model.PermMarkInProgress); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	var req *model.TestRequest
	err := s.store.InTx(ctx, func(q repository.Queries) error {
		if _, err := loadCaller(ctx, q, caller); err != nil {
			return err
		}
		var err error
		req, err = q.GetTestRequest(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status != model.RequestPending {
			return errs.State(repository.EntityTestRequest, req.ID, string(req.Status), string(model.RequestPending))
		}
		if err := q.UpdateTestRequestStatus(ctx, req.ID, model.RequestInProgress, now); err != nil {
			return err
		}
		req.Status = model.RequestInProgress
		req.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Printf("test request %d taken in progress by admin %d", req.ID, caller.UserID)
	return req, nil
}

// AssignTest создает персональный тест по заявке и назначает его студенту.
// Тест создается черновиком и в той же транзакции переводится в assigned.
func (s *WorkflowService) AssignTest(ctx context.Context, caller model.Caller, requestID int64, in dto.AssignTestInput) (*model.PersonalizedTest, error) {
	const op = "workflow.AssignTest"

	if err := authorize(caller, model.PermAssignTest); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	var test model.PersonalizedTest
	err := s.store.InTx(ctx, func(q repository.Queries) error {
		if _, err := loadCaller(ctx, q, caller); err != nil {
			return err
		}
		req, err := q.GetTestRequest(ctx, requestID)
		if err != nil {
			return err
		}

		existing, err := q.GetPersonalizedTestByRequest(ctx, req.ID)
		switch {
		case err == nil:
			return errs.Validation(errs.KindDuplicate, "test request %d already has personalized test %d", req.ID, existing.ID)
		case !errs.IsNotFound(err):
			return err
		}

		if req.Status != model.RequestPending && req.Status != model.RequestInProgress {
			return errs.State(repository.EntityTestRequest, req.ID, string(req.Status),
				string(model.RequestPending), string(model.RequestInProgress))
		}

		adminID := caller.UserID
		test = model.PersonalizedTest{RequestID: req.ID, AdminID: &adminID, Status: model.TestDraft}
		if err := q.CreatePersonalizedTest(ctx, &test); err != nil {
			return err
		}
		for _, qin := range in.Questions {
			question := model.Question{PersonalizedTestID: test.ID, Prompt: qin.Prompt, Order: qin.Order}
			if err := q.CreateQuestion(ctx, &question); err != nil {
				return err
			}
			for _, oin := range qin.Options {
				option := model.Option{QuestionID: question.ID, Label: oin.Label, Description: oin.Description, Order: oin.Order}
				if err := q.CreateOption(ctx, &option); err != nil {
					return err
				}
			}
		}

		assignedAt := now
		test.Status = model.TestAssigned
		test.AssignedAt = &assignedAt
		if err := q.UpdatePersonalizedTest(ctx, &test); err != nil {
			return err
		}
		if err := q.UpdateTestRequestStatus(ctx, req.ID, model.RequestAssigned, now); err != nil {
			return err
		}

		test.Questions, err = q.ListQuestions(ctx, test.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Printf("personalized test %d assigned for request %d by admin %d", test.ID, requestID, caller.UserID)
	return &test, nil
}

// AuthorRecommendation создает рекомендацию с дорожной картой по назначенному тесту
func (s *WorkflowService) AuthorRecommendation(ctx context.Context, caller model.Caller, testID int64, in dto.RecommendationInput) (*model.CareerRecommendation, error) {
	const op = "workflow.AuthorRecommendation"

	if err := authorize(caller, model.PermAuthorRecommendation); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	var rec model.CareerRecommendation
	err := s.store.InTx(ctx, func(q repository.Queries) error {
		if _, err := loadCaller(ctx, q, caller); err != nil {
			return err
		}
		test, err := q.GetPersonalizedTest(ctx, testID)
		if err != nil {
			return err
		}

		existing, err := q.GetRecommendationByTest(ctx, test.ID)
		switch {
		case err == nil:
			return errs.Validation(errs.KindDuplicate, "personalized test %d already has recommendation %d", test.ID, existing.ID)
		case !errs.IsNotFound(err):
			return err
		}

		if test.Status != model.TestAssigned {
			return errs.State(repository.EntityTest, test.ID, string(test.Status), string(model.TestAssigned))
		}

		adminID := caller.UserID
		rec = model.CareerRecommendation{
			PersonalizedTestID: test.ID,
			AdminID:            &adminID,
			CareerName:         in.CareerName,
			Summary:            in.Summary,
			CreatedAt:          now,
		}
		if err := q.CreateRecommendation(ctx, &rec); err != nil {
			return err
		}
		for _, sin := range in.Steps {
			step := model.RoadmapStep{RecommendationID: rec.ID, Order: sin.Order, Title: sin.Title, Description: sin.Description}
			if err := q.CreateRoadmapStep(ctx, &step); err != nil {
				return err
			}
			rec.Steps = append(rec.Steps, step)
		}
		rec.Steps = rec.SortedSteps()

		if s.autoComplete {
			return complete(ctx, q, test, now)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Printf("recommendation %d authored for test %d by admin %d", rec.ID, testID, caller.UserID)
	return &rec, nil
}

// CompleteTest завершает тест, по которому уже выдана рекомендация
func (s *WorkflowService) CompleteTest(ctx context.Context, caller model.Caller, testID int64) (*model.PersonalizedTest, error) {
	const op = "workflow.CompleteTest"

	if err := authorize(caller, model.PermCompleteTest); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	var test *model.PersonalizedTest
	err := s.store.InTx(ctx, func(q repository.Queries) error {
		if _, err := loadCaller(ctx, q, caller); err != nil {
			return err
		}
		var err error
		test, err = q.GetPersonalizedTest(ctx, testID)
		if err != nil {
			return err
		}
		if test.Status != model.TestAssigned {
			return errs.State(repository.EntityTest, test.ID, string(test.Status), string(model.TestAssigned))
		}
		if _, err := q.GetRecommendationByTest(ctx, test.ID); err != nil {
			if errs.IsNotFound(err) {
				return errs.Validation(errs.KindMissingField, "personalized test %d has no recommendation", test.ID)
			}
			return err
		}
		return complete(ctx, q, test, now)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Printf("personalized test %d completed", test.ID)
	return test, nil
}

// complete переводит тест и его заявку в completed, completed_at пишется один раз
func complete(ctx context.Context, q repository.Queries, test *model.PersonalizedTest, now time.Time) error {
	if test.CompletedAt != nil {
		return errs.State(repository.EntityTest, test.ID, string(test.Status), string(model.TestAssigned))
	}
	req, err := q.GetTestRequest(ctx, test.RequestID)
	if err != nil {
		return err
	}
	if !req.Status.CanAdvanceTo(model.RequestCompleted) {
		return errs.State(repository.EntityTestRequest, req.ID, string(req.Status), string(model.RequestAssigned))
	}

	completedAt := now
	test.Status = model.TestCompleted
	test.CompletedAt = &completedAt
	if err := q.UpdatePersonalizedTest(ctx, test); err != nil {
		return err
	}
	return q.UpdateTestRequestStatus(ctx, req.ID, model.RequestCompleted, now)
}

// DeleteRequest удаляет заявку вместе с тестом, ответами и рекомендацией
func (s *WorkflowService) DeleteRequest(ctx context.Context, caller model.Caller, requestID int64) error {
	const op = "workflow.DeleteRequest"

	if err := authorize(caller, model.PermDeleteRequest); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	err := s.store.InTx(ctx, func(q repository.Queries) error {
		if _, err := loadCaller(ctx, q, caller); err != nil {
			return err
		}
		return q.DeleteTestRequest(ctx, requestID)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Printf("test request %d deleted by admin %d", requestID, caller.UserID)
	return nil
}
