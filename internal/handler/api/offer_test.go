//go:build unit

package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shiftlink/internal/handler/api"
	resdto "shiftlink/internal/handler/dto/response"
	"shiftlink/internal/handler/httperr"
	"shiftlink/internal/usecase/commands"
	"shiftlink/internal/usecase/queries"
	commandsmock "shiftlink/tests/mock/commands"
	queriesmock "shiftlink/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OfferHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockCtrl        *gomock.Controller
	mockAssignments *commandsmock.MockAssignmentCommands
	mockQueries     *queriesmock.MockOfferQueries
	professionalID  uuid.UUID
}

func (s *OfferHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockAssignments = commandsmock.NewMockAssignmentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOfferQueries(s.mockCtrl)
	s.professionalID = uuid.New()

	handler := api.NewOfferHandler(s.mockAssignments, s.mockQueries)

	authed := func(c *gin.Context) { c.Set("user_id", s.professionalID) }
	s.router.GET("/offers", authed, handler.ListInbox)
	s.router.GET("/offers/:id", handler.GetOffer)
	s.router.POST("/offers/:id/accept", authed, handler.AcceptOffer)
	s.router.POST("/offers/:id/decline", authed, handler.DeclineOffer)
}

func (s *OfferHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOfferHandlerSuite(t *testing.T) {
	suite.Run(t, new(OfferHandlerTestSuite))
}

func (s *OfferHandlerTestSuite) perform(method, url, idempotencyKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, nil)
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *OfferHandlerTestSuite) sampleOffer() *queries.OfferView {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &queries.OfferView{
		ID:              uuid.New(),
		ShiftID:         uuid.New(),
		ShiftTitle:      "Evening bar service",
		StartTime:       issuedAt.Add(24 * time.Hour),
		EndTime:         issuedAt.Add(32 * time.Hour),
		HourlyRateCents: 4500,
		Location:        "Oslo",
		ProfessionalID:  s.professionalID,
		VenueID:         uuid.New(),
		Outcome:         "pending",
		IssuedAt:        issuedAt,
		ExpiresAt:       issuedAt.Add(48 * time.Hour),
	}
}

func (s *OfferHandlerTestSuite) TestAcceptOffer() {
	offerID := uuid.New()
	key := uuid.New()
	url := "/offers/" + offerID.String() + "/accept"

	s.Run("returns the confirmed shift", func() {
		view := &queries.ShiftView{
			ID:                     uuid.New(),
			State:                  "confirmed",
			AssignedProfessionalID: &s.professionalID,
		}
		s.mockAssignments.EXPECT().
			AcceptOffer(gomock.Any(), offerID, s.professionalID, key).
			Return(&commands.ShiftResult{Shift: view}, nil)

		rec := s.perform(http.MethodPost, url, key.String())
		s.Equal(http.StatusOK, rec.Code)

		var got resdto.ShiftResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Equal("confirmed", got.State)
		s.Equal(view.ID, got.ID)
	})

	s.Run("a lost race is an explicit 409", func() {
		s.mockAssignments.EXPECT().
			AcceptOffer(gomock.Any(), offerID, s.professionalID, key).
			Return(nil, commands.ErrAlreadyAssigned)

		rec := s.perform(http.MethodPost, url, key.String())
		s.Equal(http.StatusConflict, rec.Code)

		var resp httperr.Response
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal("This shift was just filled", resp.Error.Message)
	})

	s.Run("resolved offer is 409", func() {
		s.mockAssignments.EXPECT().
			AcceptOffer(gomock.Any(), offerID, s.professionalID, key).
			Return(nil, commands.ErrOfferNoLongerPending)

		rec := s.perform(http.MethodPost, url, key.String())
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("declined payment is 402", func() {
		s.mockAssignments.EXPECT().
			AcceptOffer(gomock.Any(), offerID, s.professionalID, key).
			Return(nil, commands.ErrPaymentDeclined)

		rec := s.perform(http.MethodPost, url, key.String())
		s.Equal(http.StatusPaymentRequired, rec.Code)
	})

	s.Run("unreachable payment service is 503", func() {
		s.mockAssignments.EXPECT().
			AcceptOffer(gomock.Any(), offerID, s.professionalID, key).
			Return(nil, commands.ErrPaymentUnavailable)

		rec := s.perform(http.MethodPost, url, key.String())
		s.Equal(http.StatusServiceUnavailable, rec.Code)
	})

	s.Run("requires an idempotency key", func() {
		rec := s.perform(http.MethodPost, url, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *OfferHandlerTestSuite) TestDeclineOffer() {
	offerID := uuid.New()
	key := uuid.New()
	url := "/offers/" + offerID.String() + "/decline"

	s.Run("returns the declined offer", func() {
		view := s.sampleOffer()
		view.Outcome = "declined"
		s.mockAssignments.EXPECT().
			DeclineOffer(gomock.Any(), offerID, s.professionalID, key).
			Return(&commands.OfferResult{Offer: view}, nil)

		rec := s.perform(http.MethodPost, url, key.String())
		s.Equal(http.StatusOK, rec.Code)

		var got resdto.OfferResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Empty(cmp.Diff(*resdto.FromOfferView(view), got))
	})

	s.Run("expired offer is 409", func() {
		s.mockAssignments.EXPECT().
			DeclineOffer(gomock.Any(), offerID, s.professionalID, key).
			Return(nil, commands.ErrOfferNoLongerPending)

		rec := s.perform(http.MethodPost, url, key.String())
		s.Equal(http.StatusConflict, rec.Code)
	})
}

func (s *OfferHandlerTestSuite) TestGetOffer() {
	s.Run("returns the offer", func() {
		view := s.sampleOffer()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)

		rec := s.perform(http.MethodGet, "/offers/"+view.ID.String(), "")
		s.Equal(http.StatusOK, rec.Code)

		var got resdto.OfferResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Empty(cmp.Diff(*resdto.FromOfferView(view), got))
	})

	s.Run("unknown offer is 404", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(nil, queries.ErrOfferNotFound)

		rec := s.perform(http.MethodGet, "/offers/"+id.String(), "")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *OfferHandlerTestSuite) TestListInbox() {
	s.Run("returns the professional's entries", func() {
		entries := []*queries.InboxEntry{
			{OfferView: *s.sampleOffer(), Actionable: true},
			{OfferView: *s.sampleOffer(), Actionable: false},
		}
		s.mockQueries.EXPECT().
			ListInbox(gomock.Any(), s.professionalID, nil).
			Return(entries, nil)

		rec := s.perform(http.MethodGet, "/offers", "")
		s.Equal(http.StatusOK, rec.Code)

		var got []resdto.InboxEntryResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Require().Len(got, 2)
		s.True(got[0].Actionable)
		s.False(got[1].Actionable)
	})

	s.Run("passes the outcome filter through", func() {
		outcome := "pending"
		s.mockQueries.EXPECT().
			ListInbox(gomock.Any(), s.professionalID, gomock.Cond(func(o *string) bool {
				return o != nil && *o == outcome
			})).
			Return([]*queries.InboxEntry{}, nil)

		rec := s.perform(http.MethodGet, "/offers?outcome=pending", "")
		s.Equal(http.StatusOK, rec.Code)
	})
}
