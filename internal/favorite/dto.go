// AngelaMos | 2026
// dto.go

package favorite

import (
	"time"
)

// Entry is a favorite joined with its item.
type Entry struct {
	ItemID    string    `db:"item_id"    json:"item_id"`
	Title     string    `db:"title"      json:"title"`
	Price     int64     `db:"price"      json:"price"`
	ImageURL  string    `db:"image_url"  json:"image_url"`
	CreatedAt time.Time `db:"created_at" json:"added_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
