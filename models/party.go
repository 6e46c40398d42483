package models

import "time"

// Customer types used by party search filtering.
const (
	PartyTypeSender   = 1
	PartyTypeReceiver = 2
)

type Party struct {
	ID           int64     `json:"id" bson:"_id,omitempty" db:"id"`
	Name         string    `json:"name" bson:"name" db:"name"`
	CustomerType int       `json:"customer_type" bson:"customer_type" db:"customer_type"`
	Email        *string   `json:"email,omitempty" bson:"email,omitempty" db:"email"`
	DocumentType *string   `json:"document_type,omitempty" bson:"document_type,omitempty" db:"document_type"`
	DocumentID   *string   `json:"document_id,omitempty" bson:"document_id,omitempty" db:"document_id"`
	Tel          *string   `json:"tel,omitempty" bson:"tel,omitempty" db:"tel"`
	AddressLine  string    `json:"address_line" bson:"address_line" db:"address_line"`
	Post         string    `json:"post" bson:"post" db:"post"`
	Pin          string    `json:"pin" bson:"pin" db:"pin"`
	Dist         string    `json:"dist" bson:"dist" db:"dist"`
	State        string    `json:"state" bson:"state" db:"state"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}
