package adminserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	identityports "github.com/laundromart/admin-api/internal/domains/identity/ports"
	"github.com/laundromart/admin-api/internal/shared/apierrors"
)

// AuthAPI wires HTTP transport with the identity bounded context service.
type AuthAPI struct {
	service identityports.Service
}

// NewAuthAPI creates an AuthAPI backed by the provided service.
func NewAuthAPI(service identityports.Service) AuthAPI {
	return AuthAPI{service: service}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type loginResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    loginUser `json:"user"`
}

// Post /api/login
// Exchange credentials for a bearer token
func (api *AuthAPI) Login(c *gin.Context) {
	var payload loginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithMessage("Email and password are required"))
		return
	}
	if strings.TrimSpace(payload.Email) == "" || payload.Password == "" {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithMessage("Email and password are required"))
		return
	}

	result, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Message: "Login successful",
		Token:   result.Token,
		User: loginUser{
			ID:    result.User.ID,
			Email: result.User.Email,
			Name:  result.User.Name,
			Role:  string(result.User.Role),
		},
	})
}
