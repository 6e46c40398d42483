package models

import (
	"encoding/json"
	"time"
)

// Cargo is one booking as stored. The booking payload arrives from several
// client versions with inconsistent field names, so the row keeps the
// payload as received; the invoice package normalizes it on read.
type Cargo struct {
	ID              int64           `json:"id" bson:"_id,omitempty" db:"id"`
	BookingNo       string          `json:"booking_no" bson:"booking_no" db:"booking_no"`
	TrackCode       string          `json:"track_code" bson:"track_code" db:"track_code"`
	BranchID        *int64          `json:"branch_id,omitempty" bson:"branch_id,omitempty" db:"branch_id"`
	SenderPartyID   *int64          `json:"sender_party_id,omitempty" bson:"sender_party_id,omitempty" db:"sender_party_id"`
	ReceiverPartyID *int64          `json:"receiver_party_id,omitempty" bson:"receiver_party_id,omitempty" db:"receiver_party_id"`
	RawPayload      json.RawMessage `json:"raw_payload" bson:"raw_payload" db:"raw_payload"`
	CreatedBy       int64           `json:"created_by" bson:"created_by" db:"created_by"`
	CreatedAt       time.Time       `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty" bson:"updated_at,omitempty" db:"updated_at"`
	PdfCreatedAt    *time.Time      `json:"pdf_created_at,omitempty" bson:"pdf_created_at,omitempty" db:"pdf_created_at"`
	PdfPath         *string         `json:"pdf_path,omitempty" bson:"pdf_path,omitempty" db:"pdf_path"`
	Status          string          `json:"status" bson:"status" db:"status"` // draft | complete

	// Nested objects for responses (denormalized)
	Branch        *Branch `json:"branch,omitempty" bson:"-"`
	SenderParty   *Party  `json:"sender_party,omitempty" bson:"-"`
	ReceiverParty *Party  `json:"receiver_party,omitempty" bson:"-"`
}

// Payload decodes the retained raw payload into a generic map. A missing or
// unparseable payload yields an empty map, never an error.
func (c *Cargo) Payload() map[string]interface{} {
	if len(c.RawPayload) == 0 {
		return map[string]interface{}{}
	}
	var m map[string]interface{}
	if err := json.Unmarshal(c.RawPayload, &m); err != nil || m == nil {
		return map[string]interface{}{}
	}
	return m
}
