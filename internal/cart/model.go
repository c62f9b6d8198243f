package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/drapehaus/drapehaus/internal/pricing"
)

// Draft is a persisted quotation draft: a self-contained snapshot of priced
// line items, reloadable without touching the live catalog.
type Draft struct {
	ID        uuid.UUID   `json:"id"`
	Items     []DraftItem `json:"items"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// DraftItem wraps one immutable priced line item. Repricing inserts a new
// item and removes the old one; a stored payload is never edited in place.
type DraftItem struct {
	ID        int64            `json:"id"`
	DraftID   uuid.UUID        `json:"draft_id"`
	Item      pricing.LineItem `json:"item"`
	CreatedAt time.Time        `json:"created_at"`
}

// Total sums the line totals of all items in the draft.
func (d *Draft) Total() float64 {
	var total float64
	for _, item := range d.Items {
		total += item.Item.Total
	}
	return total
}
