// AngelaMos | 2026
// entity.go

package favorite

import (
	"time"
)

type Favorite struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	ItemID    string    `db:"item_id"`
	CreatedAt time.Time `db:"created_at"`
}
