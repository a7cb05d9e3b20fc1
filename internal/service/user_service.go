package service

import (
	"context"

	"vlogify/internal/models"
	"vlogify/internal/store"
)

// UserService covers the admin dashboard operations on accounts.
type UserService interface {
	List(ctx context.Context) []models.User
	GetByID(ctx context.Context, userID string) (*models.User, error)
	Delete(ctx context.Context, userID string) error
	ToggleRole(ctx context.Context, userID string) (*models.User, error)
}

type userService struct {
	store *store.ContentStore
}

func NewUserService(st *store.ContentStore) UserService {
	return &userService{store: st}
}

func (s *userService) List(ctx context.Context) []models.User {
	users := s.store.Users()
	for i := range users {
		users[i] = users[i].Sanitized()
	}
	return users
}

func (s *userService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	for _, u := range s.store.Users() {
		if u.ID == userID {
			user := u.Sanitized()
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// Delete removes the account. Irreversible; posts keep their embedded
// author snapshots.
func (s *userService) Delete(ctx context.Context, userID string) error {
	return s.store.UpdateUsers(ctx, func(users []models.User) ([]models.User, error) {
		for i, u := range users {
			if u.ID == userID {
				return append(users[:i], users[i+1:]...), nil
			}
		}

		return nil, ErrUserNotFound
	})
}

// ToggleRole flips between user and admin.
func (s *userService) ToggleRole(ctx context.Context, userID string) (*models.User, error) {
	var toggled models.User
	err := s.store.UpdateUsers(ctx, func(users []models.User) ([]models.User, error) {
		for i, u := range users {
			if u.ID != userID {
				continue
			}

			if u.Role == models.RoleAdmin {
				users[i].Role = models.RoleUser
			} else {
				users[i].Role = models.RoleAdmin
			}

			toggled = users[i].Sanitized()
			return users, nil
		}

		return nil, ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}

	return &toggled, nil
}
