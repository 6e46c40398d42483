package repository

import (
	"context"

	"lrlcargo/models"
)

type PartyRepository interface {
	UpsertParty(ctx context.Context, party *models.Party) error
	GetPartyByID(ctx context.Context, id int64) (*models.Party, error)
	SearchPartiesByName(ctx context.Context, name string) ([]*models.Party, error)
	DeleteParty(ctx context.Context, id int64) error
}
