package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"studenthub/internal/auth"
	apperrors "studenthub/internal/errors"
	"studenthub/internal/model"
	"studenthub/internal/repository"
)

const bcryptCost = 10

// RegisterInput carries the validated registration payload into the service.
type RegisterInput struct {
	Username      string
	Password      string
	FullName      string
	DateOfBirth   string
	Gender        string
	ContactNumber string
	Email         string
	ParentDetails model.ParentDetails
	Address       model.Address
	StudentInfo   model.StudentInfo
}

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Login(ctx context.Context, username, password string) (accessToken string, user *model.User, err error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new user with a hashed password. Username and email are
// each checked for collisions independently; the database unique indexes back
// this check up under concurrent registration.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if _, err := s.userRepo.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:      input.Username,
		PasswordHash:  string(hashedPassword),
		FullName:      input.FullName,
		DateOfBirth:   input.DateOfBirth,
		Gender:        input.Gender,
		ContactNumber: input.ContactNumber,
		Email:         input.Email,
		ParentDetails: input.ParentDetails,
		Address:       input.Address,
		StudentInfo:   input.StudentInfo,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns a signed access token. An unknown
// username and a wrong password produce the same error so callers cannot
// probe which accounts exist.
func (s *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID.String(), user.Username, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, user, nil
}
