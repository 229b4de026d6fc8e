// AngelaMos | 2026
// entity.go

package sale

import (
	"time"
)

// Sale is an immutable purchase record. UserID and ItemID become null
// when the buyer or the item is deleted.
type Sale struct {
	ID          string    `db:"id"           json:"id"`
	UserID      *string   `db:"user_id"      json:"user_id"`
	ItemID      *string   `db:"item_id"      json:"item_id"`
	ItemTitle   *string   `db:"item_title"   json:"item_title"`
	Quantity    int       `db:"quantity"     json:"quantity"`
	TotalAmount int64     `db:"total_amount" json:"total_amount"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
}
