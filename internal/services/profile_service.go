package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/vytor/ncertflash/internal/errors"
	"github.com/vytor/ncertflash/internal/logger"
	"github.com/vytor/ncertflash/internal/models"
	"github.com/vytor/ncertflash/internal/repository"
)

// CreateProfileInput is the data needed to create a profile.
type CreateProfileInput struct {
	Username   string `json:"username" validate:"required,max=64"`
	FullName   string `json:"full_name" validate:"max=128"`
	Role       string `json:"role" validate:"omitempty,oneof=student teacher"`
	ClassLevel int    `json:"class_level" validate:"omitempty,min=1,max=12"`
}

// ProfileService handles profile-related business logic
type ProfileService interface {
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	CreateProfile(ctx context.Context, input CreateProfileInput) (*models.Profile, error)
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)
	DeleteProfile(ctx context.Context, id int64) error
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing profiles")

	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		log.Error("failed to list profiles: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return profiles, nil
}

func (s *profileService) CreateProfile(ctx context.Context, input CreateProfileInput) (*models.Profile, error) {
	log := logger.FromContext(ctx)

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, errors.NewValidationError("username", "cannot be empty")
	}
	role := input.Role
	if role == "" {
		role = models.RoleStudent
	}
	if role != models.RoleStudent && role != models.RoleTeacher {
		return nil, errors.NewValidationError("role", "must be student or teacher")
	}
	level := input.ClassLevel
	if level == 0 {
		level = 6
	}
	if level < 1 || level > 12 {
		return nil, errors.NewValidationError("class_level", "must be between 1 and 12")
	}
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		fullName = username
	}

	log.Debug("creating profile: username=%s role=%s class_level=%d", username, role, level)

	profile, err := s.profileRepo.Create(ctx, models.Profile{
		Username:   username,
		FullName:   fullName,
		Role:       role,
		ClassLevel: level,
	})
	if stderrors.Is(err, repository.ErrDuplicate) {
		return nil, errors.NewConflictError("username already taken: " + username)
	}
	if err != nil {
		log.Error("failed to create profile: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return profile, nil
}

func (s *profileService) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting profile: id=%d", id)

	profile, err := s.profileRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if profile == nil {
		return nil, errors.NewNotFoundError("profile", id)
	}

	return profile, nil
}

func (s *profileService) DeleteProfile(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting profile: id=%d", id)

	err := s.profileRepo.Delete(ctx, id)
	if stderrors.Is(err, repository.ErrNotFound) {
		return errors.NewNotFoundError("profile", id)
	}
	if err != nil {
		log.Error("failed to delete profile: %v", err)
		return errors.NewInternalError(err)
	}

	return nil
}
