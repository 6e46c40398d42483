package repository

import (
	"context"
	"database/sql"
	"time"

	"lrlcargo/models"
)

type PostgresBranchRepo struct {
	DB *sql.DB
}

func NewPostgresBranchRepo(db *sql.DB) *PostgresBranchRepo {
	return &PostgresBranchRepo{DB: db}
}

func (r *PostgresBranchRepo) SaveBranch(ctx context.Context, b *models.Branch) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	if b.ID != 0 {
		_, err := r.DB.ExecContext(ctx, `
			UPDATE branch SET
				branch_name=$1, branch_name_ar=$2, branch_address=$3,
				branch_contact_number=$4, branch_alternative_number=$5, logo_url=$6
			WHERE id=$7
		`, b.BranchName, b.BranchNameAr, b.BranchAddress,
			b.BranchContactNumber, b.BranchAlternativeNumber, b.LogoURL, b.ID)
		return err
	}

	return r.DB.QueryRowContext(ctx, `
		INSERT INTO branch(branch_name,branch_name_ar,branch_address,branch_contact_number,branch_alternative_number,logo_url,created_at)
		VALUES($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`, b.BranchName, b.BranchNameAr, b.BranchAddress, b.BranchContactNumber,
		b.BranchAlternativeNumber, b.LogoURL, b.CreatedAt).Scan(&b.ID)
}

func (r *PostgresBranchRepo) GetBranchByID(ctx context.Context, id int64) (*models.Branch, error) {
	var b models.Branch
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, branch_name, branch_name_ar, branch_address, branch_contact_number, branch_alternative_number, logo_url, created_at
		FROM branch WHERE id=$1
	`, id).Scan(&b.ID, &b.BranchName, &b.BranchNameAr, &b.BranchAddress,
		&b.BranchContactNumber, &b.BranchAlternativeNumber, &b.LogoURL, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PostgresBranchRepo) ListBranches(ctx context.Context) ([]*models.Branch, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, branch_name, branch_name_ar, branch_address, branch_contact_number, branch_alternative_number, logo_url, created_at
		FROM branch ORDER BY branch_name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Branch
	for rows.Next() {
		var b models.Branch
		if err := rows.Scan(&b.ID, &b.BranchName, &b.BranchNameAr, &b.BranchAddress,
			&b.BranchContactNumber, &b.BranchAlternativeNumber, &b.LogoURL, &b.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &b)
	}
	return result, rows.Err()
}
