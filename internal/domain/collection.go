package domain

import "time"

type CollectionItem struct {
	PinType  string `json:"pinType"`
	Quantity int    `json:"quantity"`
	Points   int    `json:"points"`
}

type Collection struct {
	ID          uint             `json:"id"`
	UserID      uint             `json:"userId"`
	Items       []CollectionItem `json:"items"`
	TotalPoints int              `json:"totalPoints"`
	Location    string           `json:"location,omitempty"`
	Method      string           `json:"method"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// Pins is the number of batteries handed in.
func (c Collection) Pins() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}

	return total
}

type LeaderboardRange string

const (
	RangeWeek  LeaderboardRange = "week"
	RangeMonth LeaderboardRange = "month"
	RangeAll   LeaderboardRange = "all"
)

type LeaderboardOrder string

const (
	OrderByPins   LeaderboardOrder = "pins"
	OrderByPoints LeaderboardOrder = "points"
)

type LeaderboardEntry struct {
	UserID    uint   `json:"userId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Points    int    `json:"points"`
	TotalPins int    `json:"totalPins"`
}

type Leaderboard struct {
	ByPins   []LeaderboardEntry `json:"byPins"`
	ByPoints []LeaderboardEntry `json:"byPoints"`
}
