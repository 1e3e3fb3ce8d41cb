package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type CollectionItem struct {
	PinType  string `json:"pinType"`
	Quantity int    `json:"quantity"`
	Points   int    `json:"points"`
}

type Collection struct {
	ID uint `gorm:"primaryKey"`

	UserID      uint             `gorm:"not null;index"`
	Items       []CollectionItem `gorm:"type:jsonb;serializer:json"`
	TotalPoints int              `gorm:"not null;default:0"`
	Location    string
	Method      string `gorm:"not null;default:scan"`

	CreatedAt time.Time `gorm:"index"`
}

// LeaderboardRow is one ranked user with the pins handed in over the range.
type LeaderboardRow struct {
	UserID    uint
	Name      string
	Email     string
	Points    int
	TotalPins int
}

type CollectionDAO struct {
	db *gorm.DB
}

func NewCollectionDAO(db *gorm.DB) *CollectionDAO {
	return &CollectionDAO{
		db: db,
	}
}

func (d *CollectionDAO) Insert(ctx context.Context, collection Collection) (Collection, error) {
	result := d.db.WithContext(ctx).Create(&collection)
	if result.Error != nil {
		return Collection{}, result.Error
	}

	return collection, nil
}

func (d *CollectionDAO) FindByUserID(ctx context.Context, userID uint, limit int) ([]Collection, error) {
	var collections []Collection

	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&collections)
	if result.Error != nil {
		return nil, result.Error
	}

	return collections, nil
}

var leaderboardOrders = map[string]string{
	"pins":   "total_pins DESC, u.points DESC, u.id",
	"points": "u.points DESC, total_pins DESC, u.id",
}

// Leaderboard ranks users of role with pins handed in at or after since, or any points,
// by pins or points. Unknown orders fall back to pins.
func (d *CollectionDAO) Leaderboard(ctx context.Context, role string, since time.Time, by string, limit int) ([]LeaderboardRow, error) {
	order, ok := leaderboardOrders[by]
	if !ok {
		order = leaderboardOrders["pins"]
	}

	var rows []LeaderboardRow

	result := d.db.WithContext(ctx).Raw(`
		SELECT u.id AS user_id, u.name, u.email, u.points, COALESCE(p.pins, 0) AS total_pins
		FROM users u
		LEFT JOIN (
			SELECT c.user_id, SUM((item->>'quantity')::int) AS pins
			FROM collections c
			CROSS JOIN LATERAL jsonb_array_elements(COALESCE(c.items, '[]'::jsonb)) AS item
			WHERE c.created_at >= ?
			GROUP BY c.user_id
		) p ON p.user_id = u.id
		WHERE u.role = ? AND (COALESCE(p.pins, 0) > 0 OR u.points > 0)
		ORDER BY `+order+`
		LIMIT ?`, since, role, limit).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}
