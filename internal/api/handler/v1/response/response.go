package response

import "github.com/pinswap/api/internal/domain"

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// ForgotPasswordResponse carries the reset link only when it could not be emailed
// outside production.
type ForgotPasswordResponse struct {
	Message    string `json:"message"`
	ResetToken string `json:"resetToken,omitempty"`
	ResetURL   string `json:"resetUrl,omitempty"`
}

// PageResponse wraps one page of a listing.
type PageResponse struct {
	Data  interface{} `json:"data"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func NewPage(data interface{}, total int64, page domain.Page) PageResponse {
	return PageResponse{
		Data:  data,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
	}
}

type ExchangeResponse struct {
	Success         bool           `json:"success"`
	Code            string         `json:"code"`
	Voucher         domain.Voucher `json:"voucher"`
	RemainingPoints *int           `json:"remainingPoints,omitempty"`
}

type CheckInResponse struct {
	Message      string          `json:"message"`
	PointsEarned int             `json:"pointsEarned"`
	TotalPoints  int             `json:"totalPoints"`
	Location     domain.Location `json:"location"`
}

type AlreadyCheckedInResponse struct {
	Status           int             `json:"status"`
	Message          string          `json:"message"`
	AlreadyCheckedIn bool            `json:"alreadyCheckedIn"`
	Location         domain.Location `json:"location"`
}

type CollectionResponse struct {
	Collection  domain.Collection `json:"collection"`
	TotalPoints int               `json:"totalPoints"`
}

type RegistrationCheckResponse struct {
	Registered bool `json:"registered"`
}

type SubscribeResponse struct {
	Message    string            `json:"message"`
	Subscriber domain.Subscriber `json:"subscriber"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// ChatFrame is one websocket reply; Type is "reply" or "error".
type ChatFrame struct {
	Type    string `json:"type"`
	Reply   string `json:"reply,omitempty"`
	Message string `json:"message,omitempty"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

type HealthcheckResponse struct {
	Status string `json:"status"`
}
