package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/pinswap/api/internal/domain"
)

func locationTypes() []interface{} {
	types := make([]interface{}, 0, len(domain.LocationTypes))
	for _, t := range domain.LocationTypes {
		types = append(types, string(t))
	}

	return types
}

type CreateLocationRequest struct {
	BusinessID uint    `json:"businessId"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	OpenHours  string  `json:"openHours"`
	Type       string  `json:"type"`
}

func (req *CreateLocationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&req.Longitude, validation.Min(-180.0), validation.Max(180.0)),
		validation.Field(&req.Type, validation.In(locationTypes()...)),
	)
}

func (req *CreateLocationRequest) ToDomain() domain.Location {
	return domain.Location{
		BusinessID: req.BusinessID,
		Name:       req.Name,
		Address:    req.Address,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		OpenHours:  req.OpenHours,
		Type:       domain.LocationType(req.Type),
	}
}

type UpdateLocationRequest struct {
	Name      *string  `json:"name"`
	Address   *string  `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	OpenHours *string  `json:"openHours"`
	Type      *string  `json:"type"`
	Status    *string  `json:"status"`
}

func (req *UpdateLocationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty),
		validation.Field(&req.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&req.Longitude, validation.Min(-180.0), validation.Max(180.0)),
		validation.Field(&req.Type, validation.NilOrNotEmpty, validation.In(locationTypes()...)),
		validation.Field(&req.Status, validation.NilOrNotEmpty,
			validation.In(string(domain.LocationStatusActive), string(domain.LocationStatusDeleted))),
	)
}

func (req *UpdateLocationRequest) ToDomain() domain.LocationUpdate {
	update := domain.LocationUpdate{
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		OpenHours: req.OpenHours,
	}
	if req.Type != nil {
		t := domain.LocationType(*req.Type)
		update.Type = &t
	}
	if req.Status != nil {
		s := domain.LocationStatus(*req.Status)
		update.Status = &s
	}

	return update
}

type CheckInRequest struct {
	QRCode string `json:"qrCode"`
}

func (req *CheckInRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.QRCode, validation.Required),
	)
}

type CollectionItemRequest struct {
	PinType  string `json:"pinType"`
	Quantity int    `json:"quantity"`
	Points   int    `json:"points"`
}

func (item CollectionItemRequest) Validate() error {
	return validation.ValidateStruct(
		&item,
		validation.Field(&item.PinType, validation.Required),
		validation.Field(&item.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&item.Points, validation.Min(0)),
	)
}

type CreateCollectionRequest struct {
	Items       []CollectionItemRequest `json:"items"`
	TotalPoints int                     `json:"totalPoints"`
	Location    string                  `json:"location"`
	Method      string                  `json:"method"`
}

func (req *CreateCollectionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Items, validation.Required),
		validation.Field(&req.TotalPoints, validation.Min(0)),
		validation.Field(&req.Method, validation.In("scan", "manual")),
	)
}

func (req *CreateCollectionRequest) ToDomain(userID uint) domain.Collection {
	items := make([]domain.CollectionItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.CollectionItem{
			PinType:  item.PinType,
			Quantity: item.Quantity,
			Points:   item.Points,
		})
	}

	return domain.Collection{
		UserID:      userID,
		Items:       items,
		TotalPoints: req.TotalPoints,
		Location:    req.Location,
		Method:      req.Method,
	}
}
