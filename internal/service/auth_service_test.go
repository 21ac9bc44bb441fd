package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"studenthub/internal/auth"
	apperrors "studenthub/internal/errors"
	"studenthub/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func registerInput() RegisterInput {
	return RegisterInput{
		Username:      "alice",
		Password:      "p@ssword",
		FullName:      "Alice Johnson",
		DateOfBirth:   "2004-03-12",
		Gender:        "female",
		ContactNumber: "+1-555-0101",
		Email:         "alice@example.edu",
		ParentDetails: model.ParentDetails{
			FatherName:    "Mark Johnson",
			MotherName:    "Sarah Johnson",
			ContactNumber: "+1-555-0102",
			Email:         "johnsons@example.com",
		},
		Address: model.Address{
			Street:     "14 Maple Street",
			City:       "Springfield",
			State:      "IL",
			PostalCode: "62704",
		},
		StudentInfo: model.StudentInfo{
			RollNumber:             "CS-2022-014",
			Department:             "Computer Science",
			Program:                "BSc",
			EnrollmentYear:         2022,
			ExpectedGraduationYear: 2026,
		},
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates user with hashed password", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
		repo.On("FindByEmail", mock.Anything, "alice@example.edu").Return(nil, gorm.ErrRecordNotFound)

		var created *model.User
		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*model.User)
			}).
			Return(nil)

		svc := NewAuthService(repo, auth.NewJWTService("test-secret"))
		user, err := svc.Register(context.Background(), registerInput())

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.NotEqual(t, "p@ssword", created.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("p@ssword")))
		assert.Equal(t, "Computer Science", created.StudentInfo.Department)
		repo.AssertExpectations(t)
	})

	t.Run("rejects taken username", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{Username: "alice"}, nil)

		svc := NewAuthService(repo, auth.NewJWTService("test-secret"))
		user, err := svc.Register(context.Background(), registerInput())

		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects taken email even with a new username", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
		repo.On("FindByEmail", mock.Anything, "alice@example.edu").Return(&model.User{Email: "alice@example.edu"}, nil)

		svc := NewAuthService(repo, auth.NewJWTService("test-secret"))
		user, err := svc.Register(context.Background(), registerInput())

		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("surfaces store failure", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByUsername", mock.Anything, "alice").Return(nil, errors.New("connection reset"))

		svc := NewAuthService(repo, auth.NewJWTService("test-secret"))
		user, err := svc.Register(context.Background(), registerInput())

		assert.Nil(t, user)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrUsernameTaken)
	})
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("p@ssword"), bcryptCost)
	assert.NoError(t, err)

	stored := &model.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.edu",
		PasswordHash: string(hashed),
	}

	t.Run("issues seven day token on valid credentials", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)

		jwtService := auth.NewJWTService("test-secret")
		svc := NewAuthService(repo, jwtService)

		token, user, err := svc.Login(context.Background(), "alice", "p@ssword")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, stored, user)

		claims, err := jwtService.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, stored.ID.String(), claims.UserID)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, "alice@example.edu", claims.Email)
		assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
	})

	t.Run("wrong password and unknown username fail identically", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)
		repo.On("FindByUsername", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)

		svc := NewAuthService(repo, auth.NewJWTService("test-secret"))

		_, _, wrongPass := svc.Login(context.Background(), "alice", "wrong")
		_, _, unknownUser := svc.Login(context.Background(), "nobody", "p@ssword")

		assert.ErrorIs(t, wrongPass, apperrors.ErrInvalidCredentials)
		assert.ErrorIs(t, unknownUser, apperrors.ErrInvalidCredentials)
		assert.Equal(t, wrongPass, unknownUser)
	})

	t.Run("surfaces store failure as non-credential error", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByUsername", mock.Anything, "alice").Return(nil, errors.New("connection reset"))

		svc := NewAuthService(repo, auth.NewJWTService("test-secret"))
		_, _, err := svc.Login(context.Background(), "alice", "p@ssword")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}
