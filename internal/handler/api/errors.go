package api

import (
	"errors"
	"net/http"

	"shiftlink/internal/handler/httperr"
	"shiftlink/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

var errMissingAuthContext = errors.New("authenticated user missing from context")

// respondAssignmentError maps coordinator errors onto the HTTP surface.
// Losing a race is a 409 with an explicit reason, never a silent failure.
func respondAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrShiftNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Shift not found", nil)
	case errors.Is(err, commands.ErrOfferNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Offer not found", nil)
	case errors.Is(err, commands.ErrProfessionalNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Professional not found", nil)
	case errors.Is(err, commands.ErrNotShiftOwner),
		errors.Is(err, commands.ErrNotOfferTarget):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not allowed to act on this resource", nil)
	case errors.Is(err, commands.ErrAlreadyAssigned):
		httperr.AbortWithError(c, http.StatusConflict, err, "This shift was just filled", nil)
	case errors.Is(err, commands.ErrOfferNoLongerPending):
		httperr.AbortWithError(c, http.StatusConflict, err, "Offer is no longer available", nil)
	case errors.Is(err, commands.ErrOfferAlreadyPending):
		httperr.AbortWithError(c, http.StatusConflict, err, "Professional already has a pending offer for this shift", nil)
	case errors.Is(err, commands.ErrShiftNotInvitable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Shift is not open for invitations", nil)
	case errors.Is(err, commands.ErrShiftCompleted):
		httperr.AbortWithError(c, http.StatusConflict, err, "Shift is already completed", nil)
	case errors.Is(err, commands.ErrShiftNotConfirmed):
		httperr.AbortWithError(c, http.StatusConflict, err, "Shift is not confirmed", nil)
	case errors.Is(err, commands.ErrShiftNotEnded):
		httperr.AbortWithError(c, http.StatusConflict, err, "Shift has not ended yet", nil)
	case errors.Is(err, commands.ErrDuplicateRequest):
		httperr.AbortWithError(c, http.StatusConflict, err, "Duplicate request with different parameters", nil)
	case errors.Is(err, commands.ErrPaymentDeclined):
		httperr.AbortWithError(c, http.StatusPaymentRequired, err, "Payment authorization was declined", nil)
	case errors.Is(err, commands.ErrPaymentUnavailable):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Payment service is temporarily unavailable", nil)
	case errors.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Domain validation failed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
