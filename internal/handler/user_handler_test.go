package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "studenthub/internal/errors"
	"studenthub/internal/model"
	"studenthub/internal/service"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, id uuid.UUID, patch service.UserPatch) (*model.User, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestUserHandler_GetUser(t *testing.T) {
	id := uuid.New()

	t.Run("returns full record", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("GetUser", mock.Anything, id).Return(&model.User{
			ID:       id,
			Username: "alice",
			Email:    "alice@example.edu",
			StudentInfo: model.StudentInfo{
				Department: "Computer Science",
			},
		}, nil)

		c, rec := newTestContext(t, http.MethodGet, "")
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		assert.NoError(t, NewUserHandler(svc).GetUser(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Computer Science")
	})

	t.Run("maps unknown id to 404", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("GetUser", mock.Anything, id).Return(nil, apperrors.ErrUserNotFound)

		c, rec := newTestContext(t, http.MethodGet, "")
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		assert.NoError(t, NewUserHandler(svc).GetUser(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		svc := new(MockUserService)
		c, rec := newTestContext(t, http.MethodGet, "")
		c.SetParamNames("id")
		c.SetParamValues("not-a-uuid")

		assert.NoError(t, NewUserHandler(svc).GetUser(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
	})
}

func TestUserHandler_UpdateUser(t *testing.T) {
	id := uuid.New()

	t.Run("forwards only allow-listed fields", func(t *testing.T) {
		svc := new(MockUserService)
		var patch service.UserPatch
		svc.On("UpdateUser", mock.Anything, id, mock.AnythingOfType("service.UserPatch")).
			Run(func(args mock.Arguments) {
				patch = args.Get(2).(service.UserPatch)
			}).
			Return(&model.User{ID: id, Username: "alice"}, nil)

		// username and password keys are simply not part of the patch schema
		body := `{"city": "Chicago", "username": "hax", "password": "hax"}`
		c, rec := newTestContext(t, http.MethodPatch, body)
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		assert.NoError(t, NewUserHandler(svc).UpdateUser(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		assert.NotNil(t, patch.City)
		assert.Equal(t, "Chicago", *patch.City)

		var resp UpdateUserResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Message)
		assert.Equal(t, "alice", resp.User.Username)
	})

	t.Run("revalidates patched fields", func(t *testing.T) {
		svc := new(MockUserService)
		c, rec := newTestContext(t, http.MethodPatch, `{"email": "not-an-email"}`)
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		assert.NoError(t, NewUserHandler(svc).UpdateUser(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "email")
		svc.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("maps unknown id to 404", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("UpdateUser", mock.Anything, id, mock.Anything).Return(nil, apperrors.ErrUserNotFound)

		c, rec := newTestContext(t, http.MethodPatch, `{"city": "Chicago"}`)
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		assert.NoError(t, NewUserHandler(svc).UpdateUser(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUserHandler_DeleteUser(t *testing.T) {
	id := uuid.New()

	t.Run("confirms deletion", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("DeleteUser", mock.Anything, id).Return(nil)

		c, rec := newTestContext(t, http.MethodDelete, "")
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		assert.NoError(t, NewUserHandler(svc).DeleteUser(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "deleted")
	})

	t.Run("maps unknown id to 404", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("DeleteUser", mock.Anything, id).Return(apperrors.ErrUserNotFound)

		c, rec := newTestContext(t, http.MethodDelete, "")
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		assert.NoError(t, NewUserHandler(svc).DeleteUser(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
