package repository

import (
	"context"
	"time"

	"lrlcargo/models"
)

type CargoRepository interface {
	CreateCargo(ctx context.Context, cargo *models.Cargo) error
	GetCargo(ctx context.Context, filters map[string]interface{}, single bool) ([]*models.Cargo, error)
	LastBookingNo(ctx context.Context) (string, error)
	UpdatePDFInfo(ctx context.Context, cargoID int64, path string, createdAt time.Time) error
	DeleteCargo(ctx context.Context, cargoID int64) error
}

// cargoFilterColumns are the only keys GetCargo accepts. Filter keys arrive
// from request query parameters, so both backends reject anything outside
// this set before it reaches a query.
var cargoFilterColumns = map[string]bool{
	"id":                true,
	"booking_no":        true,
	"track_code":        true,
	"branch_id":         true,
	"sender_party_id":   true,
	"receiver_party_id": true,
	"created_by":        true,
	"status":            true,
}

// IsCargoFilter reports whether key is a filterable cargo column.
func IsCargoFilter(key string) bool {
	return cargoFilterColumns[key]
}
