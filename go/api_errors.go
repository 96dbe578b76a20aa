package adminserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	identityports "github.com/laundromart/admin-api/internal/domains/identity/ports"
	laundrydomain "github.com/laundromart/admin-api/internal/domains/laundries/domain"
	laundryports "github.com/laundromart/admin-api/internal/domains/laundries/ports"
	orderports "github.com/laundromart/admin-api/internal/domains/orders/ports"
	"github.com/laundromart/admin-api/internal/shared/apierrors"
)

// respondServiceError translates context errors to the uniform
// {"error": string} contract; anything unmapped becomes a logged 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, identityports.ErrInvalidCredentials):
		apierrors.Respond(c, apierrors.ErrUnauthorized.WithMessage("Invalid credentials"))
	case errors.Is(err, identityports.ErrAccountDeactivated):
		apierrors.Respond(c, apierrors.ErrUnauthorized.WithMessage("Account is deactivated"))
	case errors.Is(err, laundryports.ErrNotFound):
		apierrors.Respond(c, apierrors.NotFound("Laundry"))
	case errors.Is(err, orderports.ErrNotFound):
		apierrors.Respond(c, apierrors.NotFound("Order"))
	case errors.Is(err, laundrydomain.ErrAlreadySuspended):
		apierrors.Respond(c, apierrors.ErrBadRequest.WithMessage("Laundry is already suspended"))
	default:
		apierrors.RespondError(c, err)
	}
}
