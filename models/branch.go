package models

import "time"

type Branch struct {
	ID                      int64     `json:"id" bson:"_id,omitempty" db:"id"`
	BranchName              string    `json:"branch_name" bson:"branch_name" db:"branch_name"`
	BranchNameAr            string    `json:"branch_name_ar" bson:"branch_name_ar" db:"branch_name_ar"`
	BranchAddress           string    `json:"branch_address" bson:"branch_address" db:"branch_address"`
	BranchContactNumber     string    `json:"branch_contact_number" bson:"branch_contact_number" db:"branch_contact_number"`
	BranchAlternativeNumber string    `json:"branch_alternative_number" bson:"branch_alternative_number" db:"branch_alternative_number"`
	LogoURL                 string    `json:"logo_url" bson:"logo_url" db:"logo_url"`
	CreatedAt               time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}
