package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/IT-Nick/careerpath/internal/domain/dto"
	"github.com/IT-Nick/careerpath/internal/domain/errs"
	"github.com/IT-Nick/careerpath/internal/domain/model"
	"github.com/IT-Nick/careerpath/internal/domain/repository"
)

// UserService содержит логику бизнес-операций для пользователей
type UserService struct {
	store repository.Store
	now   func() time.Time
}

// NewUserService создает новый экземпляр UserService
func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store, now: time.Now}
}

// Register создает пользователя. Роль после создания не меняется.
func (s *UserService) Register(ctx context.Context, in dto.RegisterUserInput) (*model.User, error) {
	const op = "users.Register"

	in.Email = strings.TrimSpace(in.Email)
	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := model.User{
		Email:         in.Email,
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		Role:          model.Role(in.Role),
		Qualification: in.Qualification,
		Interests:     in.Interests,
		CreatedAt:     s.now().UTC(),
	}
	err := s.store.InTx(ctx, func(q repository.Queries) error {
		return q.CreateUser(ctx, &user)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Printf("user %d registered with role %s", user.ID, user.Role)
	return &user, nil
}

// GetUserByID получает пользователя по ID
func (s *UserService) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	var user *model.User
	err := s.store.InTx(ctx, func(q repository.Queries) error {
		var err error
		user, err = q.GetUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// Caller возвращает идентичность пользователя для вызова операций
func (s *UserService) Caller(ctx context.Context, userID int64) (model.Caller, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return model.Caller{}, err
	}
	return user.AsCaller(), nil
}

// UpdateProfile меняет квалификацию и интересы вызывающего.
// Снимки в уже созданных заявках не меняются.
func (s *UserService) UpdateProfile(ctx context.Context, caller model.Caller, in dto.UpdateProfileInput) (*model.User, error) {
	const op = "users.UpdateProfile"

	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var user *model.User
	err := s.store.InTx(ctx, func(q repository.Queries) error {
		if err := q.UpdateUserProfile(ctx, caller.UserID, in.Qualification, in.Interests); err != nil {
			return err
		}
		var err error
		user, err = q.GetUser(ctx, caller.UserID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// DeleteUser удаляет пользователя. Администратор может удалить любого,
// остальные только себя.
func (s *UserService) DeleteUser(ctx context.Context, caller model.Caller, userID int64) error {
	const op = "users.DeleteUser"

	err := s.store.InTx(ctx, func(q repository.Queries) error {
		current, err := q.GetUser(ctx, caller.UserID)
		if err != nil {
			return err
		}
		if current.Role != caller.Role {
			return errs.Validation(errs.KindForbiddenRole, "user %d does not have role %q", caller.UserID, caller.Role)
		}
		if current.Role != model.RoleAdmin && current.ID != userID {
			return errs.Validation(errs.KindForbiddenRole, "user %d may not delete user %d", caller.UserID, userID)
		}
		return q.DeleteUser(ctx, userID)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Printf("user %d deleted by %d", userID, caller.UserID)
	return nil
}
