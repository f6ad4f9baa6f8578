package service

import (
	"context"
	"fmt"

	"github.com/IT-Nick/careerpath/internal/domain/errs"
	"github.com/IT-Nick/careerpath/internal/domain/model"
	"github.com/IT-Nick/careerpath/internal/domain/repository"
)

// checkOwner пропускает администратора и студента-владельца заявки.
// Чужие сущности для студента выглядят несуществующими.
func checkOwner(caller model.Caller, req *model.TestRequest, entity string, id int64) error {
	if caller.Role == model.RoleAdmin || caller.UserID == req.StudentID {
		return nil
	}
	return errs.NotFound(entity, id)
}

// GetRequest возвращает заявку
func (s *WorkflowService) GetRequest(ctx context.Context, caller model.Caller, requestID int64) (*model.TestRequest, error) {
	const op = "workflow.GetRequest"

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
		return checkOwner(caller, req, repository.EntityTestRequest, requestID)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return req, nil
}

// GetTest возвращает тест с упорядоченными вопросами и вариантами
func (s *WorkflowService) GetTest(ctx context.Context, caller model.Caller, testID int64) (*model.PersonalizedTest, error) {
	const op = "workflow.GetTest"

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
		req, err := q.GetTestRequest(ctx, test.RequestID)
		if err != nil {
			return err
		}
		if err := checkOwner(caller, req, repository.EntityTest, testID); err != nil {
			return err
		}
		test.Questions, err = q.ListQuestions(ctx, test.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return test, nil
}

// GetRecommendation возвращает рекомендацию с шагами по возрастанию номера
func (s *WorkflowService) GetRecommendation(ctx context.Context, caller model.Caller, recommendationID int64) (*model.CareerRecommendation, error) {
	const op = "workflow.GetRecommendation"

	data, err := s.loadReport(ctx, caller, recommendationID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &data.Recommendation, nil
}

// ReportInput собирает данные для PDF-отчета по рекомендации
func (s *WorkflowService) ReportInput(ctx context.Context, caller model.Caller, recommendationID int64) (*ReportData, error) {
	const op = "workflow.ReportInput"

	data, err := s.loadReport(ctx, caller, recommendationID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

func (s *WorkflowService) loadReport(ctx context.Context, caller model.Caller, recommendationID int64) (*ReportData, error) {
	if err := authorize(caller, model.PermViewRecommendation); err != nil {
		return nil, err
	}

	var data ReportData
	err := s.store.InTx(ctx, func(q repository.Queries) error {
		if _, err := loadCaller(ctx, q, caller); err != nil {
			return err
		}
		rec, err := q.GetRecommendation(ctx, recommendationID)
		if err != nil {
			return err
		}
		test, err := q.GetPersonalizedTest(ctx, rec.PersonalizedTestID)
		if err != nil {
			return err
		}
		req, err := q.GetTestRequest(ctx, test.RequestID)
		if err != nil {
			return err
		}
		if err := checkOwner(caller, req, repository.EntityRecommendation, recommendationID); err != nil {
			return err
		}
		student, err := q.GetUser(ctx, req.StudentID)
		if err != nil {
			return err
		}
		steps, err := q.ListRoadmapSteps(ctx, rec.ID)
		if err != nil {
			return err
		}
		rec.Steps = steps
		rec.Steps = rec.SortedSteps()

		data = ReportData{Recommendation: *rec, Student: *student}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &data, nil
}
