package service

import (
	"context"
	"testing"
	"time"

	"github.com/IT-Nick/careerpath/internal/domain/dto"
	"github.com/IT-Nick/careerpath/internal/domain/errs"
	"github.com/IT-Nick/careerpath/internal/domain/model"
	"github.com/IT-Nick/careerpath/internal/domain/repository"
)

type seeded struct {
	student  model.Caller
	stranger model.Caller
	testID   int64
	q1, q2   model.Question
}

// seed создает студента с назначенным тестом из двух вопросов по два варианта
func seed(t *testing.T, store *repository.MemoryStore, status model.TestStatus) seeded {
	t.Helper()
	ctx := context.Background()
	var s seeded

	err := store.InTx(ctx, func(q repository.Queries) error {
		student := model.User{Email: "student@example.com", Role: model.RoleStudent}
		if err := q.CreateUser(ctx, &student); err != nil {
			return err
		}
		stranger := model.User{Email: "stranger@example.com", Role: model.RoleStudent}
		if err := q.CreateUser(ctx, &stranger); err != nil {
			return err
		}
		s.student = student.AsCaller()
		s.stranger = stranger.AsCaller()

		req := model.TestRequest{StudentID: student.ID, Status: model.RequestAssigned}
		if err := q.CreateTestRequest(ctx, &req); err != nil {
			return err
		}
		test := model.PersonalizedTest{RequestID: req.ID, Status: status}
		if err := q.CreatePersonalizedTest(ctx, &test); err != nil {
			return err
		}
		s.testID = test.ID

		for i, prompt := range []string{"Первый", "Второй"} {
			question := model.Question{PersonalizedTestID: test.ID, Prompt: prompt, Order: i + 1}
			if err := q.CreateQuestion(ctx, &question); err != nil {
				return err
			}
			for j, label := range []string{"А", "Б"} {
				option := model.Option{QuestionID: question.ID, Label: label, Order: j + 1}
				if err := q.CreateOption(ctx, &option); err != nil {
					return err
				}
				question.Options = append(question.Options, option)
			}
			if i == 0 {
				s.q1 = question
			} else {
				s.q2 = question
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s
}

func TestSubmitAnswerUpsertsByQuestionAndStudent(t *testing.T) {
	store := repository.NewMemoryStore()
	s := seed(t, store, model.TestAssigned)
	ctx := context.Background()

	clock := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	svc := NewAnswerService(store, func() time.Time { return clock })

	first, err := svc.SubmitAnswer(ctx, s.student, dto.SubmitAnswerInput{QuestionID: s.q1.ID, OptionID: s.q1.Options[0].ID})
	if err != nil {
		t.Fatalf("first SubmitAnswer: %v", err)
	}

	clock = clock.Add(5 * time.Minute)
	second, err := svc.SubmitAnswer(ctx, s.student, dto.SubmitAnswerInput{QuestionID: s.q1.ID, OptionID: s.q1.Options[1].ID})
	if err != nil {
		t.Fatalf("second SubmitAnswer: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert must keep the row id: %d != %d", second.ID, first.ID)
	}

	answers, err := svc.ListAnswers(ctx, s.student, s.testID)
	if err != nil {
		t.Fatalf("ListAnswers: %v", err)
	}
	if len(answers) != 1 {
		t.Fatalf("expected exactly one answer, got %d", len(answers))
	}
	if answers[0].OptionID != s.q1.Options[1].ID {
		t.Errorf("expected option %d, got %d", s.q1.Options[1].ID, answers[0].OptionID)
	}
	if !answers[0].SubmittedAt.Equal(clock) {
		t.Errorf("submitted_at must be refreshed, got %v", answers[0].SubmittedAt)
	}
}

func TestSubmitAnswerCrossReferenceMismatch(t *testing.T) {
	store := repository.NewMemoryStore()
	s := seed(t, store, model.TestAssigned)
	ctx := context.Background()
	svc := NewAnswerService(store, nil)

	_, err := svc.SubmitAnswer(ctx, s.student, dto.SubmitAnswerInput{QuestionID: s.q1.ID, OptionID: s.q2.Options[0].ID})
	if got := errs.KindOf(err); got != errs.KindCrossReference {
		t.Fatalf("expected cross_reference_mismatch, got %v", err)
	}

	answers, err := svc.ListAnswers(ctx, s.student, s.testID)
	if err != nil {
		t.Fatalf("ListAnswers: %v", err)
	}
	if len(answers) != 0 {
		t.Errorf("nothing must be persisted, got %d answers", len(answers))
	}
}

func TestSubmitAnswerErrors(t *testing.T) {
	store := repository.NewMemoryStore()
	s := seed(t, store, model.TestAssigned)
	ctx := context.Background()
	svc := NewAnswerService(store, nil)

	admin := model.Caller{UserID: s.student.UserID, Role: model.RoleAdmin}
	if _, err := svc.SubmitAnswer(ctx, admin, dto.SubmitAnswerInput{QuestionID: s.q1.ID, OptionID: s.q1.Options[0].ID}); errs.KindOf(err) != errs.KindForbiddenRole {
		t.Errorf("admin role: expected forbidden_role, got %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, s.student, dto.SubmitAnswerInput{QuestionID: 9999, OptionID: s.q1.Options[0].ID}); !errs.IsNotFound(err) {
		t.Errorf("unknown question: expected NotFoundError, got %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, s.student, dto.SubmitAnswerInput{QuestionID: s.q1.ID, OptionID: 9999}); !errs.IsNotFound(err) {
		t.Errorf("unknown option: expected NotFoundError, got %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, s.stranger, dto.SubmitAnswerInput{QuestionID: s.q1.ID, OptionID: s.q1.Options[0].ID}); !errs.IsNotFound(err) {
		t.Errorf("foreign test: expected NotFoundError, got %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, s.student, dto.SubmitAnswerInput{}); errs.KindOf(err) != errs.KindMissingField {
		t.Errorf("empty input: expected missing_field, got %v", err)
	}
}

func TestSubmitAnswerRequiresAssignedTest(t *testing.T) {
	store := repository.NewMemoryStore()
	s := seed(t, store, model.TestCompleted)
	svc := NewAnswerService(store, nil)

	_, err := svc.SubmitAnswer(context.Background(), s.student, dto.SubmitAnswerInput{QuestionID: s.q1.ID, OptionID: s.q1.Options[0].ID})
	if !errs.IsState(err) {
		t.Fatalf("expected StateError, got %v", err)
	}
}

func TestForeignQuestionLooksMissing(t *testing.T) {
	store := repository.NewMemoryStore()
	s := seed(t, store, model.TestAssigned)
	ctx := context.Background()
	svc := NewAnswerService(store, nil)

	// вариант от другого вопроса: чужому студенту не сообщается о несовпадении
	_, err := svc.SubmitAnswer(ctx, s.stranger, dto.SubmitAnswerInput{QuestionID: s.q1.ID, OptionID: s.q2.Options[0].ID})
	if !errs.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if _, err := svc.ListAnswers(ctx, s.stranger, s.testID); !errs.IsNotFound(err) {
		t.Fatalf("ListAnswers on a foreign test: expected NotFoundError, got %v", err)
	}
}
