package api

import (
	"context"
	"errors"
	"net/http"

	reqdto "shiftlink/internal/handler/dto/request"
	resdto "shiftlink/internal/handler/dto/response"
	"shiftlink/internal/handler/httperr"
	"shiftlink/internal/handler/middleware"
	"shiftlink/internal/usecase/commands"
	"shiftlink/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errIdempotencyKeyRequired = errors.New("idempotency key required")

type ShiftHandler struct {
	assignments commands.AssignmentCommands
	shiftQ      queries.ShiftQueries
}

func NewShiftHandler(assignments commands.AssignmentCommands, shiftQ queries.ShiftQueries) *ShiftHandler {
	return &ShiftHandler{
		assignments: assignments,
		shiftQ:      shiftQ,
	}
}

func (h *ShiftHandler) CreateShift(c *gin.Context) {
	venueID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingAuthContext, "Internal server error", nil)
		return
	}

	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid or missing Idempotency-Key header", nil)
		return
	}

	var req reqdto.CreateShiftRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	result, err := h.assignments.CreateShift(c.Request.Context(), req, venueID, idempotencyKey)
	if err != nil {
		respondAssignmentError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromShiftView(result.Shift))
}

func (h *ShiftHandler) GetShift(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid shift ID format", nil)
		return
	}

	view, err := h.shiftQ.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrShiftNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Shift not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromShiftView(view))
}

// ListShifts returns the venue's calendar blocks, newest window first.
func (h *ShiftHandler) ListShifts(c *gin.Context) {
	venueID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingAuthContext, "Internal server error", nil)
		return
	}

	blocks, err := h.shiftQ.ListVenueBlocks(c.Request.Context(), venueID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response := make([]*resdto.ShiftBlockResponse, len(blocks))
	for i, b := range blocks {
		response[i] = resdto.FromShiftBlock(b)
	}
	c.JSON(http.StatusOK, response)
}

func (h *ShiftHandler) InviteProfessional(c *gin.Context) {
	venueID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingAuthContext, "Internal server error", nil)
		return
	}

	shiftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid shift ID format", nil)
		return
	}

	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid or missing Idempotency-Key header", nil)
		return
	}

	var req reqdto.InviteProfessionalRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	result, err := h.assignments.InviteProfessional(c.Request.Context(), shiftID, req, venueID, idempotencyKey)
	if err != nil {
		respondAssignmentError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromOfferView(result.Offer))
}

func (h *ShiftHandler) CancelShift(c *gin.Context) {
	h.transition(c, h.assignments.CancelShift)
}

func (h *ShiftHandler) CompleteShift(c *gin.Context) {
	h.transition(c, h.assignments.CompleteShift)
}

// transition handles the shared shape of cancel and complete: owner-scoped,
// idempotency-keyed, no request body.
func (h *ShiftHandler) transition(
	c *gin.Context,
	op func(ctx context.Context, shiftID, venueID, idempotencyKey uuid.UUID) (*commands.ShiftResult, error),
) {
	venueID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingAuthContext, "Internal server error", nil)
		return
	}

	shiftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid shift ID format", nil)
		return
	}

	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid or missing Idempotency-Key header", nil)
		return
	}

	result, err := op(c.Request.Context(), shiftID, venueID, idempotencyKey)
	if err != nil {
		respondAssignmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromShiftView(result.Shift))
}

func getIdempotencyKey(c *gin.Context) (uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return uuid.Nil, errIdempotencyKeyRequired
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		return uuid.Nil, errors.New("invalid idempotency key format")
	}

	return key, nil
}
