package service

import (
	"context"

	"github.com/guttosm/translation-service/internal/domain/model"
	"github.com/guttosm/translation-service/internal/repository"
)

// UserService lists user accounts.
type UserService interface {
	List(ctx context.Context, page, perPage int) (*Page[model.User], error)
}

// UserServiceImpl implements UserService.
type UserServiceImpl struct {
	users repository.UserRepositoryInterface
}

// NewUserService creates a user service.
func NewUserService(users repository.UserRepositoryInterface) *UserServiceImpl {
	return &UserServiceImpl{users: users}
}

// List implements UserService.
func (s *UserServiceImpl) List(ctx context.Context, page, perPage int) (*Page[model.User], error) {
	if page < 1 {
		page = 1
	}
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, storageErr("count users", err)
	}
	limit, offset := pageOffset(page, perPage)
	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, storageErr("list users", err)
	}
	return newPage(users, total, page, perPage), nil
}
