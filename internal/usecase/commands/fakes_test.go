//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"shiftlink/internal/domain/offer"
	"shiftlink/internal/domain/shift"
	"shiftlink/internal/infra"
	"shiftlink/internal/usecase/commands"
	"shiftlink/internal/usecase/queries"
	"shiftlink/internal/usecase/shared"

	"github.com/google/uuid"
)

// memStore is a single in-memory database shared by the fake unit of work and
// the fake read stores. Transactions hold the store mutex for their duration
// and restore a snapshot on error, so commit-or-nothing semantics hold.
type memStore struct {
	mu     sync.Mutex
	shifts map[uuid.UUID]*shift.Shift
	offers map[uuid.UUID]*offer.Offer
	idem   map[idemKey]*shared.IdempotencyRecord
	users  map[uuid.UUID]*queries.AuthorizedUserView
	events []eventRecord

	// Programmed stale-version failures, consumed one per shift update. Not
	// part of the snapshot: a rolled-back transaction keeps the consumption.
	shiftWriteConflicts int
}

type idemKey struct {
	key    uuid.UUID
	userID uuid.UUID
}

type eventRecord struct {
	Kind    string
	Topic   string
	Payload []byte
}

func newMemStore() *memStore {
	return &memStore{
		shifts: make(map[uuid.UUID]*shift.Shift),
		offers: make(map[uuid.UUID]*offer.Offer),
		idem:   make(map[idemKey]*shared.IdempotencyRecord),
		users:  make(map[uuid.UUID]*queries.AuthorizedUserView),
	}
}

func (s *memStore) snapshot() func() {
	shifts := make(map[uuid.UUID]*shift.Shift, len(s.shifts))
	for k, v := range s.shifts {
		shifts[k] = v
	}
	offers := make(map[uuid.UUID]*offer.Offer, len(s.offers))
	for k, v := range s.offers {
		offers[k] = v
	}
	idem := make(map[idemKey]*shared.IdempotencyRecord, len(s.idem))
	for k, v := range s.idem {
		idem[k] = v
	}
	events := make([]eventRecord, len(s.events))
	copy(events, s.events)

	return func() {
		s.shifts = shifts
		s.offers = offers
		s.idem = idem
		s.events = events
	}
}

func cloneShift(s *shift.Shift) *shift.Shift {
	return shift.Reconstruct(
		s.ID(), s.VenueID(), s.Title(), s.Description(),
		s.Window(), s.HourlyRate(), s.Location(), s.State(),
		s.AssignedProfessionalID(), s.PaymentAuthRef(),
		s.Version(), s.CreatedAt(), s.UpdatedAt(),
	)
}

func cloneOffer(o *offer.Offer) *offer.Offer {
	return offer.Reconstruct(
		o.ID(), o.ShiftID(), o.ProfessionalID(), o.VenueID(),
		o.Outcome(), o.IssuedAt(), o.ExpiresAt(), o.ResolvedAt(), o.Version(),
	)
}

// memUoW serializes transactions on the store mutex.
type memUoW struct {
	store *memStore
}

func (u *memUoW) Within(_ context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	restore := u.store.snapshot()
	if err := fn(context.Background(), &memTx{store: u.store}); err != nil {
		restore()
		return err
	}
	return nil
}

type memTx struct {
	store *memStore
}

func (t *memTx) Shifts() shared.ShiftRepository               { return &memShiftRepo{t.store} }
func (t *memTx) Offers() shared.OfferRepository               { return &memOfferRepo{t.store} }
func (t *memTx) Idempotency() shared.IdempotencyRepository    { return &memIdemRepo{t.store} }
func (t *memTx) Notifications() shared.NotificationRepository { return &memNotifRepo{t.store} }
func (t *memTx) Users() shared.UserRepository                 { return &memUserRepo{} }

type memShiftRepo struct{ store *memStore }

func (r *memShiftRepo) Create(_ context.Context, s *shift.Shift) error {
	r.store.shifts[s.ID()] = shift.Reconstruct(
		s.ID(), s.VenueID(), s.Title(), s.Description(),
		s.Window(), s.HourlyRate(), s.Location(), s.State(),
		s.AssignedProfessionalID(), s.PaymentAuthRef(),
		1, s.CreatedAt(), s.UpdatedAt(),
	)
	return nil
}

func (r *memShiftRepo) FindByID(_ context.Context, id uuid.UUID) (*shift.Shift, error) {
	s, ok := r.store.shifts[id]
	if !ok {
		return nil, infra.NewRepoErr("shift not found", infra.KindNotFound)
	}
	return cloneShift(s), nil
}

func (r *memShiftRepo) Update(_ context.Context, s *shift.Shift) error {
	stored, ok := r.store.shifts[s.ID()]
	if !ok {
		return infra.NewRepoErr("shift not found", infra.KindNotFound)
	}
	if r.store.shiftWriteConflicts > 0 {
		r.store.shiftWriteConflicts--
		return infra.NewRepoErr("shift version conflict", infra.KindVersionConflict)
	}
	if stored.Version() != s.Version() {
		return infra.NewRepoErr("shift version conflict", infra.KindVersionConflict)
	}
	r.store.shifts[s.ID()] = shift.Reconstruct(
		s.ID(), s.VenueID(), s.Title(), s.Description(),
		s.Window(), s.HourlyRate(), s.Location(), s.State(),
		s.AssignedProfessionalID(), s.PaymentAuthRef(),
		s.Version()+1, s.CreatedAt(), s.UpdatedAt(),
	)
	return nil
}

type memOfferRepo struct{ store *memStore }

func (r *memOfferRepo) Create(_ context.Context, o *offer.Offer) error {
	r.store.offers[o.ID()] = offer.Reconstruct(
		o.ID(), o.ShiftID(), o.ProfessionalID(), o.VenueID(),
		o.Outcome(), o.IssuedAt(), o.ExpiresAt(), o.ResolvedAt(), 1,
	)
	return nil
}

func (r *memOfferRepo) FindByID(_ context.Context, id uuid.UUID) (*offer.Offer, error) {
	o, ok := r.store.offers[id]
	if !ok {
		return nil, infra.NewRepoErr("offer not found", infra.KindNotFound)
	}
	return cloneOffer(o), nil
}

func (r *memOfferRepo) ListPendingByShift(_ context.Context, shiftID uuid.UUID) ([]*offer.Offer, error) {
	var pending []*offer.Offer
	for _, o := range r.store.offers {
		if o.ShiftID() == shiftID && o.Outcome() == offer.OutcomePending {
			pending = append(pending, cloneOffer(o))
		}
	}
	return pending, nil
}

func (r *memOfferRepo) FindPendingByShiftAndProfessional(_ context.Context, shiftID, professionalID uuid.UUID) (*offer.Offer, error) {
	for _, o := range r.store.offers {
		if o.ShiftID() == shiftID && o.ProfessionalID() == professionalID && o.Outcome() == offer.OutcomePending {
			return cloneOffer(o), nil
		}
	}
	return nil, infra.NewRepoErr("pending offer not found", infra.KindNotFound)
}

func (r *memOfferRepo) Update(_ context.Context, o *offer.Offer) error {
	stored, ok := r.store.offers[o.ID()]
	if !ok {
		return infra.NewRepoErr("offer not found", infra.KindNotFound)
	}
	if stored.Version() != o.Version() {
		return infra.NewRepoErr("offer version conflict", infra.KindVersionConflict)
	}
	r.store.offers[o.ID()] = offer.Reconstruct(
		o.ID(), o.ShiftID(), o.ProfessionalID(), o.VenueID(),
		o.Outcome(), o.IssuedAt(), o.ExpiresAt(), o.ResolvedAt(), o.Version()+1,
	)
	return nil
}

type memIdemRepo struct{ store *memStore }

func (r *memIdemRepo) TryInsert(_ context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error {
	k := idemKey{key, userID}
	if _, exists := r.store.idem[k]; exists {
		return nil
	}
	r.store.idem[k] = &shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		Status:      shared.IdempotencyStatusProcessing,
		ExpiresAt:   expiresAt,
	}
	return nil
}

func (r *memIdemRepo) Get(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.store.idem[idemKey{key, userID}]
	if !ok {
		return nil, infra.NewRepoErr("idempotency key not found", infra.KindNotFound)
	}
	cp := *rec
	return &cp, nil
}

func (r *memIdemRepo) MarkCompleted(_ context.Context, key, userID, resultID uuid.UUID) error {
	rec, ok := r.store.idem[idemKey{key, userID}]
	if !ok || rec.Status != shared.IdempotencyStatusProcessing {
		return infra.NewRepoErr("idempotency key not in processing state", infra.KindConflict)
	}
	id := resultID
	updated := *rec
	updated.Status = shared.IdempotencyStatusCompleted
	updated.ResultID = &id
	r.store.idem[idemKey{key, userID}] = &updated
	return nil
}

func (r *memIdemRepo) Delete(_ context.Context, key, userID uuid.UUID) error {
	delete(r.store.idem, idemKey{key, userID})
	return nil
}

type memNotifRepo struct{ store *memStore }

func (r *memNotifRepo) Enqueue(_ context.Context, kind, topic string, payload []byte) error {
	r.store.events = append(r.store.events, eventRecord{Kind: kind, Topic: topic, Payload: payload})
	return nil
}

type memUserRepo struct{}

func (r *memUserRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID) error { return nil }

// Read-store fakes over the same store.

type memShiftReads struct{ store *memStore }

func (r *memShiftReads) FindByID(_ context.Context, id uuid.UUID) (*queries.ShiftView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.shifts[id]
	if !ok {
		return nil, infra.NewRepoErr("shift not found", infra.KindNotFound)
	}
	return shiftViewFrom(s), nil
}

func (r *memShiftReads) ListByVenue(_ context.Context, venueID uuid.UUID) ([]*queries.ShiftView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var views []*queries.ShiftView
	for _, s := range r.store.shifts {
		if s.VenueID() == venueID {
			views = append(views, shiftViewFrom(s))
		}
	}
	return views, nil
}

func (r *memShiftReads) ListConfirmedOverlapping(_ context.Context, professionalID uuid.UUID, start, end time.Time) ([]*queries.ShiftView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var views []*queries.ShiftView
	for _, s := range r.store.shifts {
		assigned := s.AssignedProfessionalID()
		if assigned == nil || *assigned != professionalID {
			continue
		}
		if s.State() != shift.StateConfirmed && s.State() != shift.StateCompleted {
			continue
		}
		if s.Window().Start().Before(end) && start.Before(s.Window().End()) {
			views = append(views, shiftViewFrom(s))
		}
	}
	return views, nil
}

func shiftViewFrom(s *shift.Shift) *queries.ShiftView {
	return &queries.ShiftView{
		ID:                     s.ID(),
		VenueID:                s.VenueID(),
		Title:                  s.Title(),
		Description:            s.Description(),
		StartTime:              s.Window().Start(),
		EndTime:                s.Window().End(),
		HourlyRateCents:        s.HourlyRate().Cents(),
		Location:               s.Location().String(),
		State:                  s.State().String(),
		AssignedProfessionalID: s.AssignedProfessionalID(),
	}
}

type memOfferReads struct{ store *memStore }

func (r *memOfferReads) FindByID(_ context.Context, id uuid.UUID) (*queries.OfferView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.offers[id]
	if !ok {
		return nil, infra.NewRepoErr("offer not found", infra.KindNotFound)
	}
	return offerViewFrom(o), nil
}

func (r *memOfferReads) ListByProfessional(_ context.Context, professionalID uuid.UUID, outcome *string) ([]*queries.OfferView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var views []*queries.OfferView
	for _, o := range r.store.offers {
		if o.ProfessionalID() != professionalID {
			continue
		}
		if outcome != nil && o.Outcome().String() != *outcome {
			continue
		}
		views = append(views, offerViewFrom(o))
	}
	return views, nil
}

func (r *memOfferReads) ListExpiredPending(_ context.Context, horizon time.Time, limit int) ([]*queries.OfferView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var views []*queries.OfferView
	for _, o := range r.store.offers {
		if o.Outcome() == offer.OutcomePending && o.ExpiresAt().Before(horizon) {
			views = append(views, offerViewFrom(o))
			if len(views) == limit {
				break
			}
		}
	}
	return views, nil
}

func offerViewFrom(o *offer.Offer) *queries.OfferView {
	return &queries.OfferView{
		ID:             o.ID(),
		ShiftID:        o.ShiftID(),
		ProfessionalID: o.ProfessionalID(),
		VenueID:        o.VenueID(),
		Outcome:        o.Outcome().String(),
		IssuedAt:       o.IssuedAt(),
		ExpiresAt:      o.ExpiresAt(),
		ResolvedAt:     o.ResolvedAt(),
	}
}

type memUserReads struct{ store *memStore }

func (r *memUserReads) FindByEmail(_ context.Context, _ string) (*queries.UserAuthView, error) {
	return nil, infra.NewRepoErr("user not found", infra.KindNotFound)
}

func (r *memUserReads) FindByID(_ context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, infra.NewRepoErr("user not found", infra.KindNotFound)
	}
	cp := *u
	return &cp, nil
}

// fakeGateway records authorize and capture calls; failures are programmed
// per test.
type fakeGateway struct {
	mu           sync.Mutex
	authorizeErr error
	captureErr   error
	onAuthorize  func()
	authorized   []commands.AuthorizationRequest
	captured     []commands.AuthorizationRef
}

func (g *fakeGateway) Authorize(_ context.Context, req commands.AuthorizationRequest) (commands.AuthorizationRef, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.onAuthorize != nil {
		g.onAuthorize()
	}
	if g.authorizeErr != nil {
		return "", g.authorizeErr
	}
	g.authorized = append(g.authorized, req)
	return commands.AuthorizationRef(uuid.New().String()), nil
}

func (g *fakeGateway) Capture(_ context.Context, ref commands.AuthorizationRef, _ int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.captureErr != nil {
		return g.captureErr
	}
	g.captured = append(g.captured, ref)
	return nil
}

func (g *fakeGateway) authorizeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.authorized)
}

func (g *fakeGateway) captureCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.captured)
}
