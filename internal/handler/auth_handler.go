package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "studenthub/internal/errors"
	"studenthub/internal/model"
	"studenthub/internal/service"
)

// AuthHandler handles registration and login endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request. The payload is
// flat; the service nests parent, address and student fields on persistence.
type RegisterRequest struct {
	Username      string `json:"username" validate:"required"`
	Password      string `json:"password" validate:"required"`
	FullName      string `json:"full_name" validate:"required"`
	DateOfBirth   string `json:"date_of_birth" validate:"required"`
	Gender        string `json:"gender" validate:"required"`
	ContactNumber string `json:"contact_number" validate:"required"`
	Email         string `json:"email" validate:"required,email"`

	FatherName          string `json:"father_name" validate:"required"`
	MotherName          string `json:"mother_name" validate:"required"`
	ParentContactNumber string `json:"parent_contact_number" validate:"required"`
	ParentEmail         string `json:"parent_email" validate:"required,email"`

	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`

	RollNumber             string `json:"roll_number" validate:"required"`
	Department             string `json:"department" validate:"required"`
	Program                string `json:"program" validate:"required"`
	EnrollmentYear         int    `json:"enrollment_year" validate:"required,gte=1900"`
	ExpectedGraduationYear int    `json:"expected_graduation_year" validate:"required,gte=1900"`
}

func (r *RegisterRequest) toInput() service.RegisterInput {
	return service.RegisterInput{
		Username:      r.Username,
		Password:      r.Password,
		FullName:      r.FullName,
		DateOfBirth:   r.DateOfBirth,
		Gender:        r.Gender,
		ContactNumber: r.ContactNumber,
		Email:         r.Email,
		ParentDetails: model.ParentDetails{
			FatherName:    r.FatherName,
			MotherName:    r.MotherName,
			ContactNumber: r.ParentContactNumber,
			Email:         r.ParentEmail,
		},
		Address: model.Address{
			Street:     r.Street,
			City:       r.City,
			State:      r.State,
			PostalCode: r.PostalCode,
		},
		StudentInfo: model.StudentInfo{
			RollNumber:             r.RollNumber,
			Department:             r.Department,
			Program:                r.Program,
			EnrollmentYear:         r.EnrollmentYear,
			ExpectedGraduationYear: r.ExpectedGraduationYear,
		},
	}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse represents a successful registration. Credential fields
// are never echoed back.
type RegisterResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
}

// Register godoc
// @Summary Register a new student account
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.NewHTTPError(http.StatusBadRequest, "invalid request body", "BAD_REQUEST"))
	}

	if err := c.Validate(&req); err != nil {
		return respondError(c, validationHTTPError(err))
	}

	user, err := h.authService.Register(c.Request().Context(), req.toInput())
	if err != nil {
		return respondError(c, apperrors.MapErrorToHTTP(err))
	}

	return c.JSON(http.StatusCreated, RegisterResponse{
		ID:       user.ID.String(),
		Email:    user.Email,
		Username: user.Username,
	})
}

// Login godoc
// @Summary Login with username and password
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.NewHTTPError(http.StatusBadRequest, "invalid request body", "BAD_REQUEST"))
	}

	if err := c.Validate(&req); err != nil {
		return respondError(c, validationHTTPError(err))
	}

	accessToken, _, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, apperrors.MapErrorToHTTP(err))
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Message:     "successfully logged in",
		AccessToken: accessToken,
	})
}

// validationHTTPError converts validator output into the domain validation
// error, listing every failed field by its json name. Anything that is not a
// field-level failure gets a plain bad-request response.
func validationHTTPError(err error) *apperrors.HTTPError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewHTTPError(http.StatusBadRequest, "invalid request", "BAD_REQUEST")
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return apperrors.MapErrorToHTTP(apperrors.NewValidationError(fields))
}

func respondError(c echo.Context, httpErr *apperrors.HTTPError) error {
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}
