package queries

import "time"

// Venue-facing block states. Derived from authoritative state on every read,
// never stored: the projector is not a source of truth.
const (
	BlockGhost     = "ghost"
	BlockPending   = "pending"
	BlockConfirmed = "confirmed"
)

// BlockStateOf maps a shift lifecycle state to its calendar block state.
// Terminal states pass through under their own names.
func BlockStateOf(state string) string {
	switch state {
	case "open":
		return BlockGhost
	case "pending":
		return BlockPending
	case "confirmed":
		return BlockConfirmed
	default:
		return state
	}
}

// ProjectBlock derives the venue calendar block for a shift.
func ProjectBlock(view *ShiftView) *ShiftBlock {
	return &ShiftBlock{
		ShiftView:  *view,
		BlockState: BlockStateOf(view.State),
	}
}

// ProjectInboxEntry derives the professional inbox entry for an offer.
func ProjectInboxEntry(view *OfferView, now time.Time) *InboxEntry {
	return &InboxEntry{
		OfferView:  *view,
		Actionable: view.Outcome == "pending" && !now.After(view.ExpiresAt),
	}
}
