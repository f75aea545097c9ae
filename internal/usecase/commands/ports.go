package commands

import (
	"context"

	"shiftlink/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	// ErrCardDeclined is a terminal refusal from the payment collaborator.
	ErrCardDeclined = errs.New("payment authorization declined")
	// ErrGatewayUnavailable is transient: the collaborator was unreachable.
	ErrGatewayUnavailable = errs.New("payment gateway unavailable")
)

type AuthorizationRequest struct {
	ShiftID        uuid.UUID
	VenueID        uuid.UUID
	ProfessionalID uuid.UUID
	AmountCents    int64
}

// AuthorizationRef is the opaque handle returned by the payment collaborator
// at authorize time and redeemed at capture.
type AuthorizationRef string

// PaymentGateway is the narrow payment trigger interface. Authorize is called
// during the confirmed transition (outside the shift lock), Capture at
// completion. Neither is ever called with the shift lock held.
type PaymentGateway interface {
	Authorize(ctx context.Context, req AuthorizationRequest) (AuthorizationRef, error)
	Capture(ctx context.Context, ref AuthorizationRef, amountCents int64) error
}
