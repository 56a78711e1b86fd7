package service

import (
	"context"
	"strings"

	"irysworld/internal/models"
	"irysworld/internal/notifications"
	"irysworld/internal/repository"
	"irysworld/internal/validation"
)

type UserService struct {
	users  repository.UserRepository
	events EventPublisher
}

// UpdateProfileInput replaces a profile. A nil AvatarURL keeps the current avatar.
type UpdateProfileInput struct {
	UserID    string
	Name      string
	AvatarURL *string
}

func NewUserService(users repository.UserRepository, events EventPublisher) *UserService {
	return &UserService{users: users, events: events}
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

// UpdateProfile stores a new name and, optionally, a new avatar. Saving an
// unchanged profile is a no-op.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	current, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if err := validation.ValidateText("Name", name, validation.MaxNameLength); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	updated := models.User{ID: current.ID, Name: name, AvatarURL: current.AvatarURL}
	if in.AvatarURL != nil {
		avatar := strings.TrimSpace(*in.AvatarURL)
		if err := validation.ValidateImageRef(avatar); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		updated.AvatarURL = avatar
	}

	if updated == *current {
		return current, nil
	}
	if err := s.users.Update(ctx, &updated); err != nil {
		return nil, err
	}

	publish(ctx, s.events, notifications.EventProfileUpdated, updated)
	return &updated, nil
}
