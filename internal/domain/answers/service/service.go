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

// AnswerService принимает ответы студентов на вопросы персональных тестов
type AnswerService struct {
	store repository.Store
	now   func() time.Time
}

// NewAnswerService создает новый экземпляр AnswerService.
// now может быть nil, тогда используется time.Now.
func NewAnswerService(store repository.Store, now func() time.Time) *AnswerService {
	if now == nil {
		now = time.Now
	}
	return &AnswerService{store: store, now: now}
}

// SubmitAnswer сохраняет выбор студента. Повторный ответ на тот же вопрос
// заменяет вариант и время ответа, новая запись не создается.
func (s *AnswerService) SubmitAnswer(ctx context.Context, caller model.Caller, in dto.SubmitAnswerInput) (*model.StudentAnswer, error) {
	const op = "answers.SubmitAnswer"

	if !model.Can(caller.Role, model.PermSubmitAnswer) {
		return nil, fmt.Errorf("%s: %w", op,
			errs.Validation(errs.KindForbiddenRole, "role %q is not allowed to %s", caller.Role, model.PermSubmitAnswer))
	}
	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	answer := model.StudentAnswer{
		QuestionID:  in.QuestionID,
		OptionID:    in.OptionID,
		StudentID:   caller.UserID,
		SubmittedAt: s.now().UTC(),
	}
	err := s.store.InTx(ctx, func(q repository.Queries) error {
		student, err := q.GetUser(ctx, caller.UserID)
		if err != nil {
			return err
		}
		if student.Role != model.RoleStudent {
			return errs.Validation(errs.KindForbiddenRole, "user %d is not a student", student.ID)
		}

		question, err := q.GetQuestion(ctx, in.QuestionID)
		if err != nil {
			return err
		}
		test, err := q.GetPersonalizedTest(ctx, question.PersonalizedTestID)
		if err != nil {
			return err
		}
		req, err := q.GetTestRequest(ctx, test.RequestID)
		if err != nil {
			return err
		}
		// чужой вопрос неотличим от несуществующего
		if req.StudentID != student.ID {
			return errs.NotFound(repository.EntityQuestion, question.ID)
		}

		option, err := q.GetOption(ctx, in.OptionID)
		if err != nil {
			return err
		}
		if option.QuestionID != question.ID {
			return errs.Validation(errs.KindCrossReference, "option %d does not belong to question %d", option.ID, question.ID)
		}
		if test.Status != model.TestAssigned {
			return errs.State(repository.EntityTest, test.ID, string(test.Status), string(model.TestAssigned))
		}

		return q.UpsertAnswer(ctx, &answer)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Printf("answer %d stored: student %d, question %d, option %d", answer.ID, answer.StudentID, answer.QuestionID, answer.OptionID)
	return &answer, nil
}

// ListAnswers возвращает ответы вызывающего студента по тесту
func (s *AnswerService) ListAnswers(ctx context.Context, caller model.Caller, testID int64) ([]model.StudentAnswer, error) {
	const op = "answers.ListAnswers"

	if !model.Can(caller.Role, model.PermSubmitAnswer) {
		return nil, fmt.Errorf("%s: %w", op,
			errs.Validation(errs.KindForbiddenRole, "role %q has no answers", caller.Role))
	}

	var answers []model.StudentAnswer
	err := s.store.InTx(ctx, func(q repository.Queries) error {
		test, err := q.GetPersonalizedTest(ctx, testID)
		if err != nil {
			return err
		}
		req, err := q.GetTestRequest(ctx, test.RequestID)
		if err != nil {
			return err
		}
		if req.StudentID != caller.UserID {
			return errs.NotFound(repository.EntityTest, testID)
		}
		answers, err = q.ListAnswers(ctx, testID, caller.UserID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return answers, nil
}
