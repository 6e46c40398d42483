package repository

import (
	"context"

	"lrlcargo/models"
)

type BranchRepository interface {
	SaveBranch(ctx context.Context, branch *models.Branch) error
	GetBranchByID(ctx context.Context, id int64) (*models.Branch, error)
	ListBranches(ctx context.Context) ([]*models.Branch, error)
}
