package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"shiftlink/internal/domain/offer"
	"shiftlink/internal/domain/shift"
	reqdto "shiftlink/internal/handler/dto/request"
	"shiftlink/internal/infra"
	"shiftlink/internal/pkg/clock"
	"shiftlink/internal/pkg/config"
	"shiftlink/internal/pkg/errs"
	"shiftlink/internal/usecase/queries"
	"shiftlink/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrShiftNotFound        = errs.New("shift not found")
	ErrOfferNotFound        = errs.New("offer not found")
	ErrProfessionalNotFound = errs.New("professional not found")
	ErrShiftNotInvitable    = errs.New("shift is not inviteable")
	ErrNotShiftOwner        = errs.New("actor is not the shift owner")
	ErrNotOfferTarget       = errs.New("actor is not the offer target")
	ErrOfferAlreadyPending  = errs.New("professional already holds a pending offer for this shift")
	ErrAlreadyAssigned      = errs.New("shift was just filled")
	ErrOfferNoLongerPending = errs.New("offer is no longer pending")
	ErrShiftCompleted       = errs.New("shift is already completed")
	ErrShiftNotConfirmed    = errs.New("shift is not confirmed")
	ErrShiftNotEnded        = errs.New("shift has not ended yet")
	ErrPaymentDeclined      = errs.New("payment authorization was declined")
	ErrPaymentUnavailable   = errs.New("payment collaborator unavailable")
	ErrDuplicateRequest     = errs.New("duplicate request with different parameters")
	ErrDomainValidation     = errs.New("domain validation failed")

	ErrIdempotencyCheckFailed = errs.New("idempotency check failed")
	ErrStorageFailure         = errs.New("storage operation failed")
)

const (
	eventKindNotification = "email"
	eventKindAlert        = "ops"
)

type ShiftResult struct {
	Shift      *queries.ShiftView
	IsReplayed bool
}

type OfferResult struct {
	Offer      *queries.OfferView
	IsReplayed bool
}

// AssignmentCommands is the coordinator: the single authority for every shift
// lifecycle transition. Transitions for one shift are serialized by the
// per-shift lock; guard check and commit happen inside one critical section
// and one transaction, so no two offers for a shift can both reach accepted.
type AssignmentCommands interface {
	CreateShift(ctx context.Context, req reqdto.CreateShiftRequest, venueID, idempotencyKey uuid.UUID) (*ShiftResult, error)
	InviteProfessional(ctx context.Context, shiftID uuid.UUID, req reqdto.InviteProfessionalRequest, venueID, idempotencyKey uuid.UUID) (*OfferResult, error)
	AcceptOffer(ctx context.Context, offerID, professionalID, idempotencyKey uuid.UUID) (*ShiftResult, error)
	DeclineOffer(ctx context.Context, offerID, professionalID, idempotencyKey uuid.UUID) (*OfferResult, error)
	CancelShift(ctx context.Context, shiftID, venueID, idempotencyKey uuid.UUID) (*ShiftResult, error)
	CompleteShift(ctx context.Context, shiftID, venueID, idempotencyKey uuid.UUID) (*ShiftResult, error)
	SweepExpiredOffers(ctx context.Context) (int, error)
}

type assignmentCommandsImpl struct {
	uow        shared.UnitOfWork
	locks      *shared.ShiftLocks
	payments   PaymentGateway
	shiftReads queries.ShiftReadStore
	offerReads queries.OfferReadStore
	userReads  queries.UserReadStore
	clock      clock.Clock
	cfg        config.AssignmentConfig
}

func NewAssignmentCommands(
	uow shared.UnitOfWork,
	locks *shared.ShiftLocks,
	payments PaymentGateway,
	shiftReads queries.ShiftReadStore,
	offerReads queries.OfferReadStore,
	userReads queries.UserReadStore,
	clock clock.Clock,
	cfg config.AssignmentConfig,
) AssignmentCommands {
	return &assignmentCommandsImpl{
		uow:        uow,
		locks:      locks,
		payments:   payments,
		shiftReads: shiftReads,
		offerReads: offerReads,
		userReads:  userReads,
		clock:      clock,
		cfg:        cfg,
	}
}

func (a *assignmentCommandsImpl) CreateShift(
	ctx context.Context,
	req reqdto.CreateShiftRequest,
	venueID, idempotencyKey uuid.UUID,
) (*ShiftResult, error) {
	replayID, err := a.claimIdempotency(ctx, idempotencyKey, venueID, "POST /shifts", req)
	if err != nil {
		return nil, err
	}
	if replayID != nil {
		return a.replayShiftResult(ctx, *replayID)
	}

	entity, err := req.ToDomain(venueID, a.clock.Now())
	if err != nil {
		a.releaseIdempotency(ctx, idempotencyKey, venueID)
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Shifts().Create(ctx, entity); err != nil {
			return err
		}
		if err := a.enqueueEvent(ctx, tx, eventKindNotification, "shift_created", map[string]any{
			"shift_id": entity.ID(),
			"venue_id": venueID,
		}); err != nil {
			return err
		}
		return tx.Idempotency().MarkCompleted(ctx, idempotencyKey, venueID, entity.ID())
	})
	if err != nil {
		return nil, errs.Mark(err, ErrStorageFailure)
	}

	return &ShiftResult{Shift: shiftViewOf(entity, 0)}, nil
}

func (a *assignmentCommandsImpl) InviteProfessional(
	ctx context.Context,
	shiftID uuid.UUID,
	req reqdto.InviteProfessionalRequest,
	venueID, idempotencyKey uuid.UUID,
) (*OfferResult, error) {
	replayID, err := a.claimIdempotency(ctx, idempotencyKey, venueID, "POST /shifts/"+shiftID.String()+"/invite", req)
	if err != nil {
		return nil, err
	}
	if replayID != nil {
		return a.replayOfferResult(ctx, *replayID)
	}

	professional, err := a.userReads.FindByID(ctx, req.ProfessionalID)
	if err != nil || professional.Role != "professional" {
		a.releaseIdempotency(ctx, idempotencyKey, venueID)
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrStorageFailure)
		}
		return nil, ErrProfessionalNotFound
	}

	var (
		created *offer.Offer
		parent  *shift.Shift
	)

	unlock := a.locks.Lock(shiftID)
	err = a.withCommitRetry(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := a.loadShift(ctx, tx, shiftID)
		if err != nil {
			return err
		}
		if !s.IsOwnedBy(venueID) {
			return ErrNotShiftOwner
		}
		if !s.State().Inviteable() {
			return ErrShiftNotInvitable
		}

		existing, err := tx.Offers().FindPendingByShiftAndProfessional(ctx, shiftID, req.ProfessionalID)
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return err
		}
		if existing != nil {
			return ErrOfferAlreadyPending
		}

		o := offer.NewOffer(shiftID, req.ProfessionalID, venueID, a.clock.Now(), a.cfg.OfferTTL)
		if err := tx.Offers().Create(ctx, o); err != nil {
			return err
		}

		if err := s.MarkPending(); err != nil {
			return ErrShiftNotInvitable
		}
		if err := tx.Shifts().Update(ctx, s); err != nil {
			return err
		}

		if err := a.enqueueEvent(ctx, tx, eventKindNotification, "offer_issued", map[string]any{
			"offer_id":        o.ID(),
			"shift_id":        shiftID,
			"professional_id": req.ProfessionalID,
		}); err != nil {
			return err
		}
		if err := tx.Idempotency().MarkCompleted(ctx, idempotencyKey, venueID, o.ID()); err != nil {
			return err
		}

		created = o
		parent = s
		return nil
	})
	unlock()

	if err != nil {
		a.failClaim(ctx, idempotencyKey, venueID, err)
		return nil, err
	}

	a.warnOnOverlap(ctx, req.ProfessionalID, parent)

	return &OfferResult{Offer: offerViewOf(created, parent)}, nil
}

// AcceptOffer resolves the accept race. Phase one reserves the shift inside
// the per-shift critical section: the offer is accepted, every sibling
// pending offer is superseded, and the shift moves to confirmed — all in one
// transaction. Phase two authorizes payment outside the lock; a declined or
// unreachable gateway triggers a compensating transaction that reverts the
// reservation. Losers always get an explicit conflict, never silence.
func (a *assignmentCommandsImpl) AcceptOffer(
	ctx context.Context,
	offerID, professionalID, idempotencyKey uuid.UUID,
) (*ShiftResult, error) {
	replayID, err := a.claimIdempotency(ctx, idempotencyKey, professionalID, "POST /offers/"+offerID.String()+"/accept", nil)
	if err != nil {
		return nil, err
	}
	if replayID != nil {
		return a.replayShiftResult(ctx, *replayID)
	}

	shiftID, err := a.resolveShiftID(ctx, offerID)
	if err != nil {
		a.releaseIdempotency(ctx, idempotencyKey, professionalID)
		return nil, err
	}

	type reservation struct {
		shift         *shift.Shift
		supersededIDs []uuid.UUID
		alreadyMine   bool
		expiredLazily bool
	}
	var res reservation

	unlock := a.locks.Lock(shiftID)
	err = a.withCommitRetry(ctx, func(ctx context.Context, tx shared.Tx) error {
		res = reservation{}

		o, err := a.loadOffer(ctx, tx, offerID)
		if err != nil {
			return err
		}
		if o.ProfessionalID() != professionalID {
			return ErrNotOfferTarget
		}

		s, err := a.loadShift(ctx, tx, o.ShiftID())
		if err != nil {
			return err
		}
		now := a.clock.Now()

		// Duplicate in-flight request with the same key: the reservation is
		// already ours, nothing left to commit.
		if o.Outcome() == offer.OutcomeAccepted &&
			s.AssignedProfessionalID() != nil && *s.AssignedProfessionalID() == professionalID {
			res = reservation{shift: s, alreadyMine: true}
			return nil
		}

		// Lazy expiry: resolve on access rather than waiting for the sweep.
		// The expiry must commit, so the transaction succeeds and the caller
		// error is raised after it.
		if o.IsExpiredAt(now) {
			if err := a.expireOffer(ctx, tx, o, s, now); err != nil {
				return err
			}
			if err := a.settleShiftAfterResolution(ctx, tx, s); err != nil {
				return err
			}
			res.expiredLazily = true
			return nil
		}

		if err := a.checkAcceptGuards(o, s); err != nil {
			return err
		}

		if err := o.Accept(now); err != nil {
			return ErrOfferNoLongerPending
		}
		if err := tx.Offers().Update(ctx, o); err != nil {
			return err
		}

		siblings, err := tx.Offers().ListPendingByShift(ctx, s.ID())
		if err != nil {
			return err
		}
		for _, sib := range siblings {
			if sib.ID() == o.ID() {
				continue
			}
			if err := sib.Supersede(now); err != nil {
				return err
			}
			if err := tx.Offers().Update(ctx, sib); err != nil {
				return err
			}
			res.supersededIDs = append(res.supersededIDs, sib.ID())
		}

		if err := s.Confirm(professionalID); err != nil {
			return ErrAlreadyAssigned
		}
		if err := tx.Shifts().Update(ctx, s); err != nil {
			return err
		}

		res.shift = s
		return nil
	})
	unlock()

	if err != nil {
		a.failClaim(ctx, idempotencyKey, professionalID, err)
		return nil, err
	}
	if res.expiredLazily {
		a.releaseIdempotency(ctx, idempotencyKey, professionalID)
		return nil, ErrOfferNoLongerPending
	}
	if res.alreadyMine {
		return &ShiftResult{Shift: shiftViewOf(res.shift, 0), IsReplayed: true}, nil
	}

	// Authorize outside the lock: the gateway's latency must not extend the
	// critical section.
	ref, err := a.payments.Authorize(ctx, AuthorizationRequest{
		ShiftID:        shiftID,
		VenueID:        res.shift.VenueID(),
		ProfessionalID: professionalID,
		AmountCents:    res.shift.EstimatedAmountCents(),
	})
	if err != nil {
		a.compensateAccept(ctx, shiftID, offerID, res.supersededIDs)
		a.releaseIdempotency(ctx, idempotencyKey, professionalID)
		if errors.Is(err, ErrCardDeclined) {
			return nil, errs.Mark(err, ErrPaymentDeclined)
		}
		return nil, errs.Mark(err, ErrPaymentUnavailable)
	}

	var confirmed *shift.Shift
	unlock = a.locks.Lock(shiftID)
	err = a.withCommitRetry(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := a.loadShift(ctx, tx, shiftID)
		if err != nil {
			return err
		}
		if err := s.SetPaymentAuthRef(string(ref)); err != nil {
			return err
		}
		if err := tx.Shifts().Update(ctx, s); err != nil {
			return err
		}

		if err := a.enqueueEvent(ctx, tx, eventKindNotification, "shift_confirmed", map[string]any{
			"shift_id":        shiftID,
			"professional_id": professionalID,
		}); err != nil {
			return err
		}
		for _, sibID := range res.supersededIDs {
			if err := a.enqueueEvent(ctx, tx, eventKindNotification, "offer_superseded", map[string]any{
				"offer_id": sibID,
				"shift_id": shiftID,
			}); err != nil {
				return err
			}
		}

		if err := tx.Idempotency().MarkCompleted(ctx, idempotencyKey, professionalID, shiftID); err != nil {
			return err
		}
		confirmed = s
		return nil
	})
	unlock()
	if err != nil {
		if errors.Is(err, shift.ErrNotConfirmed) {
			// The venue cancelled while authorization was in flight. The
			// reservation is gone and the authorization dangles until an
			// operator voids it.
			a.enqueueAlert(ctx, "authorization_orphaned", map[string]any{
				"shift_id": shiftID,
				"offer_id": offerID,
				"auth_ref": string(ref),
			})
			a.releaseIdempotency(ctx, idempotencyKey, professionalID)
			return nil, ErrOfferNoLongerPending
		}
		return nil, errs.Mark(err, ErrStorageFailure)
	}

	return &ShiftResult{Shift: shiftViewOf(confirmed, 0)}, nil
}

// checkAcceptGuards maps the guard failures of a lost race to their caller
// errors. A shift confirmed by a sibling yields ErrAlreadyAssigned ("this
// shift was just filled"); an offer resolved for its own reasons yields
// ErrOfferNoLongerPending.
func (a *assignmentCommandsImpl) checkAcceptGuards(o *offer.Offer, s *shift.Shift) error {
	switch s.State() {
	case shift.StateConfirmed, shift.StateCompleted:
		return ErrAlreadyAssigned
	case shift.StateCancelled:
		return ErrOfferNoLongerPending
	}
	if o.Outcome().IsResolved() {
		return ErrOfferNoLongerPending
	}
	return nil
}

// compensateAccept reverts an optimistic reservation whose payment
// authorization failed: the shift returns to pending and the accepted offer
// plus its superseded siblings become pending again.
func (a *assignmentCommandsImpl) compensateAccept(ctx context.Context, shiftID, offerID uuid.UUID, supersededIDs []uuid.UUID) {
	unlock := a.locks.Lock(shiftID)
	defer unlock()

	err := a.withCommitRetry(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := a.loadShift(ctx, tx, shiftID)
		if err != nil {
			return err
		}
		if err := s.RevertToPending(); err != nil {
			return err
		}
		if err := tx.Shifts().Update(ctx, s); err != nil {
			return err
		}

		for _, id := range append([]uuid.UUID{offerID}, supersededIDs...) {
			o, err := a.loadOffer(ctx, tx, id)
			if err != nil {
				return err
			}
			if err := o.RevertToPending(); err != nil {
				return err
			}
			if err := tx.Offers().Update(ctx, o); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// The shift is stuck confirmed without authorization; flag it for
		// operator attention rather than losing the signal.
		slog.Error("accept compensation failed", "shift_id", shiftID, "error", err.Error())
		a.enqueueAlert(ctx, "accept_compensation_failed", map[string]any{"shift_id": shiftID, "offer_id": offerID})
	}
}

func (a *assignmentCommandsImpl) DeclineOffer(
	ctx context.Context,
	offerID, professionalID, idempotencyKey uuid.UUID,
) (*OfferResult, error) {
	replayID, err := a.claimIdempotency(ctx, idempotencyKey, professionalID, "POST /offers/"+offerID.String()+"/decline", nil)
	if err != nil {
		return nil, err
	}
	if replayID != nil {
		return a.replayOfferResult(ctx, *replayID)
	}

	shiftID, err := a.resolveShiftID(ctx, offerID)
	if err != nil {
		a.releaseIdempotency(ctx, idempotencyKey, professionalID)
		return nil, err
	}

	var (
		declined      *offer.Offer
		parent        *shift.Shift
		expiredLazily bool
	)

	unlock := a.locks.Lock(shiftID)
	err = a.withCommitRetry(ctx, func(ctx context.Context, tx shared.Tx) error {
		expiredLazily = false

		o, err := a.loadOffer(ctx, tx, offerID)
		if err != nil {
			return err
		}
		if o.ProfessionalID() != professionalID {
			return ErrNotOfferTarget
		}

		s, err := a.loadShift(ctx, tx, o.ShiftID())
		if err != nil {
			return err
		}
		now := a.clock.Now()

		if o.IsExpiredAt(now) {
			if err := a.expireOffer(ctx, tx, o, s, now); err != nil {
				return err
			}
			if err := a.settleShiftAfterResolution(ctx, tx, s); err != nil {
				return err
			}
			expiredLazily = true
			return nil
		}

		if err := o.Decline(now); err != nil {
			return ErrOfferNoLongerPending
		}
		if err := tx.Offers().Update(ctx, o); err != nil {
			return err
		}

		if err := a.settleShiftAfterResolution(ctx, tx, s); err != nil {
			return err
		}

		if err := a.enqueueEvent(ctx, tx, eventKindNotification, "offer_declined", map[string]any{
			"offer_id": offerID,
			"shift_id": s.ID(),
			"venue_id": s.VenueID(),
		}); err != nil {
			return err
		}
		if err := tx.Idempotency().MarkCompleted(ctx, idempotencyKey, professionalID, offerID); err != nil {
			return err
		}

		declined = o
		parent = s
		return nil
	})
	unlock()

	if err != nil {
		a.failClaim(ctx, idempotencyKey, professionalID, err)
		return nil, err
	}
	if expiredLazily {
		a.releaseIdempotency(ctx, idempotencyKey, professionalID)
		return nil, ErrOfferNoLongerPending
	}

	return &OfferResult{Offer: offerViewOf(declined, parent)}, nil
}

func (a *assignmentCommandsImpl) CancelShift(
	ctx context.Context,
	shiftID, venueID, idempotencyKey uuid.UUID,
) (*ShiftResult, error) {
	replayID, err := a.claimIdempotency(ctx, idempotencyKey, venueID, "POST /shifts/"+shiftID.String()+"/cancel", nil)
	if err != nil {
		return nil, err
	}
	if replayID != nil {
		return a.replayShiftResult(ctx, *replayID)
	}

	var cancelled *shift.Shift

	unlock := a.locks.Lock(shiftID)
	err = a.withCommitRetry(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := a.loadShift(ctx, tx, shiftID)
		if err != nil {
			return err
		}
		if !s.IsOwnedBy(venueID) {
			return ErrNotShiftOwner
		}

		wasCancelled := s.State() == shift.StateCancelled

		if err := s.Cancel(); err != nil {
			return ErrShiftCompleted
		}

		if !wasCancelled {
			now := a.clock.Now()
			pending, err := tx.Offers().ListPendingByShift(ctx, s.ID())
			if err != nil {
				return err
			}
			for _, o := range pending {
				if err := o.Supersede(now); err != nil {
					return err
				}
				if err := tx.Offers().Update(ctx, o); err != nil {
					return err
				}
				if err := a.enqueueEvent(ctx, tx, eventKindNotification, "offer_superseded", map[string]any{
					"offer_id": o.ID(),
					"shift_id": s.ID(),
				}); err != nil {
					return err
				}
			}

			if err := tx.Shifts().Update(ctx, s); err != nil {
				return err
			}
			if err := a.enqueueEvent(ctx, tx, eventKindNotification, "shift_cancelled", map[string]any{
				"shift_id": s.ID(),
			}); err != nil {
				return err
			}
		}

		if err := tx.Idempotency().MarkCompleted(ctx, idempotencyKey, venueID, s.ID()); err != nil {
			return err
		}
		cancelled = s
		return nil
	})
	unlock()

	if err != nil {
		a.failClaim(ctx, idempotencyKey, venueID, err)
		return nil, err
	}

	return &ShiftResult{Shift: shiftViewOf(cancelled, 0)}, nil
}

// CompleteShift commits the completed state first; capture runs after the
// commit and its failure never reverts completion — the service has been
// rendered. Failed captures become reconciliation alerts.
func (a *assignmentCommandsImpl) CompleteShift(
	ctx context.Context,
	shiftID, venueID, idempotencyKey uuid.UUID,
) (*ShiftResult, error) {
	replayID, err := a.claimIdempotency(ctx, idempotencyKey, venueID, "POST /shifts/"+shiftID.String()+"/complete", nil)
	if err != nil {
		return nil, err
	}
	if replayID != nil {
		return a.replayShiftResult(ctx, *replayID)
	}

	var completed *shift.Shift

	unlock := a.locks.Lock(shiftID)
	err = a.withCommitRetry(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := a.loadShift(ctx, tx, shiftID)
		if err != nil {
			return err
		}
		if !s.IsOwnedBy(venueID) {
			return ErrNotShiftOwner
		}

		if err := s.Complete(a.clock.Now()); err != nil {
			switch {
			case errors.Is(err, shift.ErrNotConfirmed):
				return ErrShiftNotConfirmed
			case errors.Is(err, shift.ErrNotEnded):
				return ErrShiftNotEnded
			default:
				return err
			}
		}
		if err := tx.Shifts().Update(ctx, s); err != nil {
			return err
		}

		if err := a.enqueueEvent(ctx, tx, eventKindNotification, "shift_completed", map[string]any{
			"shift_id":        s.ID(),
			"professional_id": s.AssignedProfessionalID(),
		}); err != nil {
			return err
		}
		if err := tx.Idempotency().MarkCompleted(ctx, idempotencyKey, venueID, s.ID()); err != nil {
			return err
		}

		completed = s
		return nil
	})
	unlock()

	if err != nil {
		a.failClaim(ctx, idempotencyKey, venueID, err)
		return nil, err
	}

	a.captureForCompletedShift(ctx, completed)

	return &ShiftResult{Shift: shiftViewOf(completed, 0)}, nil
}

func (a *assignmentCommandsImpl) captureForCompletedShift(ctx context.Context, s *shift.Shift) {
	ref := s.PaymentAuthRef()
	if ref == nil {
		slog.Error("completed shift missing payment authorization", "shift_id", s.ID())
		a.enqueueAlert(ctx, "capture_reconciliation", map[string]any{
			"shift_id": s.ID(),
			"reason":   "missing authorization reference",
		})
		return
	}

	if err := a.payments.Capture(ctx, AuthorizationRef(*ref), s.EstimatedAmountCents()); err != nil {
		slog.Error("payment capture failed", "shift_id", s.ID(), "error", err.Error())
		a.enqueueAlert(ctx, "capture_reconciliation", map[string]any{
			"shift_id":     s.ID(),
			"auth_ref":     *ref,
			"amount_cents": s.EstimatedAmountCents(),
		})
	}
}

// SweepExpiredOffers resolves pending offers past their horizon, shift by
// shift under each shift's lock. Returns the number of offers expired.
func (a *assignmentCommandsImpl) SweepExpiredOffers(ctx context.Context) (int, error) {
	now := a.clock.Now()
	views, err := a.offerReads.ListExpiredPending(ctx, now, a.cfg.ExpirySweepBatch)
	if err != nil {
		return 0, errs.Mark(err, ErrStorageFailure)
	}

	byShift := make(map[uuid.UUID][]uuid.UUID)
	for _, v := range views {
		byShift[v.ShiftID] = append(byShift[v.ShiftID], v.ID)
	}

	expired := 0
	for shiftID, offerIDs := range byShift {
		// Counted per transaction so a version-conflict retry does not count
		// the same offers twice.
		batch := 0
		unlock := a.locks.Lock(shiftID)
		err := a.withCommitRetry(ctx, func(ctx context.Context, tx shared.Tx) error {
			batch = 0
			s, err := a.loadShift(ctx, tx, shiftID)
			if err != nil {
				return err
			}
			for _, id := range offerIDs {
				o, err := a.loadOffer(ctx, tx, id)
				if err != nil {
					return err
				}
				// Re-check under the lock; the offer may have resolved since
				// the read.
				if !o.IsExpiredAt(now) {
					continue
				}
				if err := a.expireOffer(ctx, tx, o, s, now); err != nil {
					return err
				}
				batch++
			}
			return a.settleShiftAfterResolution(ctx, tx, s)
		})
		unlock()
		if err != nil {
			slog.Warn("expiry sweep failed for shift", "shift_id", shiftID, "error", err.Error())
			continue
		}
		expired += batch
	}

	return expired, nil
}

func (a *assignmentCommandsImpl) expireOffer(ctx context.Context, tx shared.Tx, o *offer.Offer, s *shift.Shift, now time.Time) error {
	if err := o.Expire(now); err != nil {
		return err
	}
	if err := tx.Offers().Update(ctx, o); err != nil {
		return err
	}
	return a.enqueueEvent(ctx, tx, eventKindNotification, "offer_expired", map[string]any{
		"offer_id": o.ID(),
		"shift_id": s.ID(),
		"venue_id": s.VenueID(),
	})
}

// settleShiftAfterResolution returns a pending shift to open once its last
// pending offer has resolved without an acceptance.
func (a *assignmentCommandsImpl) settleShiftAfterResolution(ctx context.Context, tx shared.Tx, s *shift.Shift) error {
	if s.State() != shift.StatePending {
		return nil
	}
	remaining, err := tx.Offers().ListPendingByShift(ctx, s.ID())
	if err != nil {
		return err
	}
	if len(remaining) > 0 {
		return nil
	}
	if err := s.ReturnToOpen(); err != nil {
		return err
	}
	return tx.Shifts().Update(ctx, s)
}

// withCommitRetry re-runs fn in a fresh transaction when the optimistic
// version check loses. fn must be restartable: it reloads every entity it
// mutates.
func (a *assignmentCommandsImpl) withCommitRetry(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	attempts := a.cfg.MaxCommitRetries
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		err = a.uow.Within(ctx, fn)
		if err == nil || !infra.IsKind(err, infra.KindVersionConflict) {
			return err
		}
	}
	return err
}

func (a *assignmentCommandsImpl) loadShift(ctx context.Context, tx shared.Tx, id uuid.UUID) (*shift.Shift, error) {
	s, err := tx.Shifts().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, errs.Mark(err, ErrStorageFailure)
	}
	return s, nil
}

func (a *assignmentCommandsImpl) loadOffer(ctx context.Context, tx shared.Tx, id uuid.UUID) (*offer.Offer, error) {
	o, err := tx.Offers().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, errs.Mark(err, ErrStorageFailure)
	}
	return o, nil
}

// resolveShiftID maps an offer to its shift so the per-shift lock can be
// taken before the transaction opens.
func (a *assignmentCommandsImpl) resolveShiftID(ctx context.Context, offerID uuid.UUID) (uuid.UUID, error) {
	view, err := a.offerReads.FindByID(ctx, offerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, ErrOfferNotFound
		}
		return uuid.Nil, errs.Mark(err, ErrStorageFailure)
	}
	return view.ShiftID, nil
}

// failClaim releases the idempotency key on a terminal business failure so a
// later retry with the same key re-executes. Infrastructure failures leave
// the key in processing state; a retry with the same hash resumes it.
func (a *assignmentCommandsImpl) failClaim(ctx context.Context, key, userID uuid.UUID, err error) {
	for _, sentinel := range []error{
		ErrShiftNotFound, ErrOfferNotFound, ErrShiftNotInvitable,
		ErrNotShiftOwner, ErrNotOfferTarget, ErrOfferAlreadyPending,
		ErrAlreadyAssigned, ErrOfferNoLongerPending, ErrShiftCompleted,
		ErrShiftNotConfirmed, ErrShiftNotEnded, ErrDomainValidation,
	} {
		if errors.Is(err, sentinel) {
			a.releaseIdempotency(ctx, key, userID)
			return
		}
	}
}

func (a *assignmentCommandsImpl) enqueueEvent(ctx context.Context, tx shared.Tx, kind, topic string, payload map[string]any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "failed to encode event payload")
	}
	return tx.Notifications().Enqueue(ctx, kind, topic, data)
}

// enqueueAlert writes an operator alert in its own transaction; it is called
// from paths where the business transaction has already settled.
func (a *assignmentCommandsImpl) enqueueAlert(ctx context.Context, topic string, payload map[string]any) {
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return a.enqueueEvent(ctx, tx, eventKindAlert, topic, payload)
	})
	if err != nil {
		slog.Error("failed to enqueue alert", "topic", topic, "error", err.Error())
	}
}

// warnOnOverlap flags invitations that collide with the professional's
// confirmed schedule. Advisory only; double booking is the venue's call.
func (a *assignmentCommandsImpl) warnOnOverlap(ctx context.Context, professionalID uuid.UUID, s *shift.Shift) {
	overlapping, err := a.shiftReads.ListConfirmedOverlapping(ctx, professionalID, s.Window().Start(), s.Window().End())
	if err != nil {
		slog.Warn("overlap check failed", "professional_id", professionalID, "error", err.Error())
		return
	}
	if len(overlapping) > 0 {
		slog.Warn("invited professional has an overlapping confirmed shift",
			"professional_id", professionalID,
			"shift_id", s.ID(),
			"overlapping", len(overlapping),
		)
	}
}

func (a *assignmentCommandsImpl) replayShiftResult(ctx context.Context, id uuid.UUID) (*ShiftResult, error) {
	view, err := a.shiftReads.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, errs.Mark(err, ErrStorageFailure)
	}
	return &ShiftResult{Shift: view, IsReplayed: true}, nil
}

func (a *assignmentCommandsImpl) replayOfferResult(ctx context.Context, id uuid.UUID) (*OfferResult, error) {
	view, err := a.offerReads.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, errs.Mark(err, ErrStorageFailure)
	}
	return &OfferResult{Offer: view, IsReplayed: true}, nil
}
