package api

import (
	"errors"
	"net/http"

	resdto "shiftlink/internal/handler/dto/response"
	"shiftlink/internal/handler/httperr"
	"shiftlink/internal/handler/middleware"
	"shiftlink/internal/usecase/commands"
	"shiftlink/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OfferHandler struct {
	assignments commands.AssignmentCommands
	offerQ      queries.OfferQueries
}

func NewOfferHandler(assignments commands.AssignmentCommands, offerQ queries.OfferQueries) *OfferHandler {
	return &OfferHandler{
		assignments: assignments,
		offerQ:      offerQ,
	}
}

func (h *OfferHandler) AcceptOffer(c *gin.Context) {
	professionalID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingAuthContext, "Internal server error", nil)
		return
	}

	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid offer ID format", nil)
		return
	}

	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid or missing Idempotency-Key header", nil)
		return
	}

	result, err := h.assignments.AcceptOffer(c.Request.Context(), offerID, professionalID, idempotencyKey)
	if err != nil {
		respondAssignmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromShiftView(result.Shift))
}

func (h *OfferHandler) DeclineOffer(c *gin.Context) {
	professionalID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingAuthContext, "Internal server error", nil)
		return
	}

	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid offer ID format", nil)
		return
	}

	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid or missing Idempotency-Key header", nil)
		return
	}

	result, err := h.assignments.DeclineOffer(c.Request.Context(), offerID, professionalID, idempotencyKey)
	if err != nil {
		respondAssignmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromOfferView(result.Offer))
}

func (h *OfferHandler) GetOffer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid offer ID format", nil)
		return
	}

	view, err := h.offerQ.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrOfferNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Offer not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromOfferView(view))
}

// ListInbox returns the professional's offers, optionally filtered by
// outcome (?outcome=pending).
func (h *OfferHandler) ListInbox(c *gin.Context) {
	professionalID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingAuthContext, "Internal server error", nil)
		return
	}

	var outcome *string
	if o := c.Query("outcome"); o != "" {
		outcome = &o
	}

	entries, err := h.offerQ.ListInbox(c.Request.Context(), professionalID, outcome)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response := make([]*resdto.InboxEntryResponse, len(entries))
	for i, e := range entries {
		response[i] = resdto.FromInboxEntry(e)
	}
	c.JSON(http.StatusOK, response)
}
