//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shiftlink/internal/handler/api"
	reqdto "shiftlink/internal/handler/dto/request"
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

type ShiftHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockCtrl        *gomock.Controller
	mockAssignments *commandsmock.MockAssignmentCommands
	mockQueries     *queriesmock.MockShiftQueries
	venueID         uuid.UUID
}

func (s *ShiftHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockAssignments = commandsmock.NewMockAssignmentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockShiftQueries(s.mockCtrl)
	s.venueID = uuid.New()

	handler := api.NewShiftHandler(s.mockAssignments, s.mockQueries)

	// Stand-in for the auth middleware.
	authed := func(c *gin.Context) { c.Set("user_id", s.venueID) }
	s.router.POST("/shifts", authed, handler.CreateShift)
	s.router.GET("/shifts/:id", handler.GetShift)
	s.router.POST("/shifts/:id/cancel", authed, handler.CancelShift)
	s.router.POST("/shifts/:id/complete", authed, handler.CompleteShift)
}

func (s *ShiftHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestShiftHandlerSuite(t *testing.T) {
	suite.Run(t, new(ShiftHandlerTestSuite))
}

func (s *ShiftHandlerTestSuite) perform(method, url string, body any, idempotencyKey string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *ShiftHandlerTestSuite) sampleView() *queries.ShiftView {
	start := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	return &queries.ShiftView{
		ID:              uuid.New(),
		VenueID:         s.venueID,
		Title:           "Evening bar service",
		StartTime:       start,
		EndTime:         start.Add(8 * time.Hour),
		HourlyRateCents: 4500,
		Location:        "Oslo",
		State:           "open",
		CreatedAt:       start.Add(-24 * time.Hour),
		UpdatedAt:       start.Add(-24 * time.Hour),
	}
}

func createShiftBody() reqdto.CreateShiftRequest {
	start := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	return reqdto.CreateShiftRequest{
		Title:           "Evening bar service",
		StartTime:       start,
		EndTime:         start.Add(8 * time.Hour),
		HourlyRateCents: 4500,
		Location:        "Oslo",
	}
}

func (s *ShiftHandlerTestSuite) TestCreateShift() {
	body := createShiftBody()
	key := uuid.New()

	s.Run("returns 201 with the created shift", func() {
		view := s.sampleView()
		s.mockAssignments.EXPECT().
			CreateShift(gomock.Any(), body, s.venueID, key).
			Return(&commands.ShiftResult{Shift: view}, nil)

		rec := s.perform(http.MethodPost, "/shifts", body, key.String())
		s.Equal(http.StatusCreated, rec.Code)

		var got resdto.ShiftResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Empty(cmp.Diff(*resdto.FromShiftView(view), got))
	})

	s.Run("returns 200 when the result is a replay", func() {
		view := s.sampleView()
		s.mockAssignments.EXPECT().
			CreateShift(gomock.Any(), body, s.venueID, key).
			Return(&commands.ShiftResult{Shift: view, IsReplayed: true}, nil)

		rec := s.perform(http.MethodPost, "/shifts", body, key.String())
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("requires an idempotency key", func() {
		rec := s.perform(http.MethodPost, "/shifts", body, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("rejects a malformed idempotency key", func() {
		rec := s.perform(http.MethodPost, "/shifts", body, "not-a-uuid")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("maps duplicate requests to 409", func() {
		s.mockAssignments.EXPECT().
			CreateShift(gomock.Any(), body, s.venueID, key).
			Return(nil, commands.ErrDuplicateRequest)

		rec := s.perform(http.MethodPost, "/shifts", body, key.String())
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("maps validation failures to 422 in the error envelope", func() {
		s.mockAssignments.EXPECT().
			CreateShift(gomock.Any(), body, s.venueID, key).
			Return(nil, commands.ErrDomainValidation)

		rec := s.perform(http.MethodPost, "/shifts", body, key.String())
		s.Equal(http.StatusUnprocessableEntity, rec.Code)

		var resp httperr.Response
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal("Domain validation failed", resp.Error.Message)
	})
}

func (s *ShiftHandlerTestSuite) TestGetShift() {
	s.Run("returns the shift", func() {
		view := s.sampleView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)

		rec := s.perform(http.MethodGet, "/shifts/"+view.ID.String(), nil, "")
		s.Equal(http.StatusOK, rec.Code)

		var got resdto.ShiftResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Empty(cmp.Diff(*resdto.FromShiftView(view), got))
	})

	s.Run("unknown shift is 404", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(nil, queries.ErrShiftNotFound)

		rec := s.perform(http.MethodGet, "/shifts/"+id.String(), nil, "")
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("malformed id is 400", func() {
		rec := s.perform(http.MethodGet, "/shifts/not-a-uuid", nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *ShiftHandlerTestSuite) TestCancelShift() {
	shiftID := uuid.New()
	key := uuid.New()
	url := "/shifts/" + shiftID.String() + "/cancel"

	s.Run("returns the cancelled shift", func() {
		view := s.sampleView()
		view.State = "cancelled"
		s.mockAssignments.EXPECT().
			CancelShift(gomock.Any(), shiftID, s.venueID, key).
			Return(&commands.ShiftResult{Shift: view}, nil)

		rec := s.perform(http.MethodPost, url, nil, key.String())
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("non-owner is 403", func() {
		s.mockAssignments.EXPECT().
			CancelShift(gomock.Any(), shiftID, s.venueID, key).
			Return(nil, commands.ErrNotShiftOwner)

		rec := s.perform(http.MethodPost, url, nil, key.String())
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("completed shift is 409", func() {
		s.mockAssignments.EXPECT().
			CancelShift(gomock.Any(), shiftID, s.venueID, key).
			Return(nil, commands.ErrShiftCompleted)

		rec := s.perform(http.MethodPost, url, nil, key.String())
		s.Equal(http.StatusConflict, rec.Code)
	})
}

func (s *ShiftHandlerTestSuite) TestCompleteShift() {
	shiftID := uuid.New()
	key := uuid.New()
	url := "/shifts/" + shiftID.String() + "/complete"

	s.Run("returns the completed shift", func() {
		view := s.sampleView()
		view.State = "completed"
		s.mockAssignments.EXPECT().
			CompleteShift(gomock.Any(), shiftID, s.venueID, key).
			Return(&commands.ShiftResult{Shift: view}, nil)

		rec := s.perform(http.MethodPost, url, nil, key.String())
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("window not ended is 409", func() {
		s.mockAssignments.EXPECT().
			CompleteShift(gomock.Any(), shiftID, s.venueID, key).
			Return(nil, commands.ErrShiftNotEnded)

		rec := s.perform(http.MethodPost, url, nil, key.String())
		s.Equal(http.StatusConflict, rec.Code)
	})
}
