package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "studenthub/internal/errors"
	"studenthub/internal/model"
	"studenthub/internal/service"
)

// UserHandler bundles profile access handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UpdateUserRequest is the partial patch a caller may apply to a profile.
// Identity and credential fields (id, username, password) have no
// counterpart here and cannot be changed through this endpoint.
type UpdateUserRequest struct {
	FullName      *string `json:"full_name" validate:"omitempty,min=1"`
	DateOfBirth   *string `json:"date_of_birth" validate:"omitempty,min=1"`
	Gender        *string `json:"gender" validate:"omitempty,min=1"`
	ContactNumber *string `json:"contact_number" validate:"omitempty,min=1"`
	Email         *string `json:"email" validate:"omitempty,email"`

	FatherName          *string `json:"father_name" validate:"omitempty,min=1"`
	MotherName          *string `json:"mother_name" validate:"omitempty,min=1"`
	ParentContactNumber *string `json:"parent_contact_number" validate:"omitempty,min=1"`
	ParentEmail         *string `json:"parent_email" validate:"omitempty,email"`

	Street     *string `json:"street" validate:"omitempty,min=1"`
	City       *string `json:"city" validate:"omitempty,min=1"`
	State      *string `json:"state" validate:"omitempty,min=1"`
	PostalCode *string `json:"postal_code" validate:"omitempty,min=1"`

	RollNumber             *string `json:"roll_number" validate:"omitempty,min=1"`
	Department             *string `json:"department" validate:"omitempty,min=1"`
	Program                *string `json:"program" validate:"omitempty,min=1"`
	EnrollmentYear         *int    `json:"enrollment_year" validate:"omitempty,gte=1900"`
	ExpectedGraduationYear *int    `json:"expected_graduation_year" validate:"omitempty,gte=1900"`
}

func (r *UpdateUserRequest) toPatch() service.UserPatch {
	return service.UserPatch{
		FullName:      r.FullName,
		DateOfBirth:   r.DateOfBirth,
		Gender:        r.Gender,
		ContactNumber: r.ContactNumber,
		Email:         r.Email,

		FatherName:          r.FatherName,
		MotherName:          r.MotherName,
		ParentContactNumber: r.ParentContactNumber,
		ParentEmail:         r.ParentEmail,

		Street:     r.Street,
		City:       r.City,
		State:      r.State,
		PostalCode: r.PostalCode,

		RollNumber:             r.RollNumber,
		Department:             r.Department,
		Program:                r.Program,
		EnrollmentYear:         r.EnrollmentYear,
		ExpectedGraduationYear: r.ExpectedGraduationYear,
	}
}

// UpdateUserResponse wraps the updated record with a confirmation message.
type UpdateUserResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// MessageResponse is a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, apperrors.NewHTTPError(http.StatusBadRequest, "invalid user id", "BAD_REQUEST"))
	}

	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return respondError(c, apperrors.MapErrorToHTTP(err))
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update profile fields by id
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} UpdateUserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id} [patch]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, apperrors.NewHTTPError(http.StatusBadRequest, "invalid user id", "BAD_REQUEST"))
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.NewHTTPError(http.StatusBadRequest, "invalid request body", "BAD_REQUEST"))
	}

	if err := c.Validate(&req); err != nil {
		return respondError(c, validationHTTPError(err))
	}

	user, err := h.svc.UpdateUser(c.Request().Context(), id, req.toPatch())
	if err != nil {
		return respondError(c, apperrors.MapErrorToHTTP(err))
	}

	return c.JSON(http.StatusOK, UpdateUserResponse{
		Message: "successfully updated the user",
		User:    user,
	})
}

// DeleteUser godoc
// @Summary Delete user by id
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, apperrors.NewHTTPError(http.StatusBadRequest, "invalid user id", "BAD_REQUEST"))
	}

	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		return respondError(c, apperrors.MapErrorToHTTP(err))
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "user deleted"})
}
