package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studenthub/internal/cache"
	apperrors "studenthub/internal/errors"
	"studenthub/internal/model"
	"studenthub/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserPatch is a partial update of the profile fields a caller may change.
// Identity and credential fields are deliberately absent: id, username and
// password cannot be rewritten through the update path.
type UserPatch struct {
	FullName      *string
	DateOfBirth   *string
	Gender        *string
	ContactNumber *string
	Email         *string

	FatherName          *string
	MotherName          *string
	ParentContactNumber *string
	ParentEmail         *string

	Street     *string
	City       *string
	State      *string
	PostalCode *string

	RollNumber             *string
	Department             *string
	Program                *string
	EnrollmentYear         *int
	ExpectedGraduationYear *int
}

// UserService exposes profile access operations.
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, patch UserPatch) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id)
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// UpdateUser applies the non-nil fields of patch to the stored record and
// persists the result.
func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, patch UserPatch) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	applyPatch(user, patch)

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return user, nil
}

// DeleteUser removes the record permanently.
func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

func applyPatch(user *model.User, patch UserPatch) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	setString(&user.FullName, patch.FullName)
	setString(&user.DateOfBirth, patch.DateOfBirth)
	setString(&user.Gender, patch.Gender)
	setString(&user.ContactNumber, patch.ContactNumber)
	setString(&user.Email, patch.Email)

	setString(&user.ParentDetails.FatherName, patch.FatherName)
	setString(&user.ParentDetails.MotherName, patch.MotherName)
	setString(&user.ParentDetails.ContactNumber, patch.ParentContactNumber)
	setString(&user.ParentDetails.Email, patch.ParentEmail)

	setString(&user.Address.Street, patch.Street)
	setString(&user.Address.City, patch.City)
	setString(&user.Address.State, patch.State)
	setString(&user.Address.PostalCode, patch.PostalCode)

	setString(&user.StudentInfo.RollNumber, patch.RollNumber)
	setString(&user.StudentInfo.Department, patch.Department)
	setString(&user.StudentInfo.Program, patch.Program)
	if patch.EnrollmentYear != nil {
		user.StudentInfo.EnrollmentYear = *patch.EnrollmentYear
	}
	if patch.ExpectedGraduationYear != nil {
		user.StudentInfo.ExpectedGraduationYear = *patch.ExpectedGraduationYear
	}
}
