package repository

import (
	"context"
	"database/sql"
	"time"

	"lrlcargo/models"
)

type PostgresPartyRepo struct {
	DB *sql.DB
}

func NewPostgresPartyRepo(db *sql.DB) *PostgresPartyRepo {
	return &PostgresPartyRepo{DB: db}
}

func (r *PostgresPartyRepo) UpsertParty(ctx context.Context, p *models.Party) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	if p.ID != 0 {
		_, err := r.DB.ExecContext(ctx, `
			UPDATE party SET
				name=$1, customer_type=$2, email=$3, document_type=$4, document_id=$5,
				tel=$6, address_line=$7, post=$8, pin=$9, dist=$10, state=$11
			WHERE id=$12
		`, p.Name, p.CustomerType, p.Email, p.DocumentType, p.DocumentID,
			p.Tel, p.AddressLine, p.Post, p.Pin, p.Dist, p.State, p.ID)
		return err
	}

	return r.DB.QueryRowContext(ctx, `
		INSERT INTO party(name,customer_type,email,document_type,document_id,tel,address_line,post,pin,dist,state,created_at)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id
	`, p.Name, p.CustomerType, p.Email, p.DocumentType, p.DocumentID, p.Tel,
		p.AddressLine, p.Post, p.Pin, p.Dist, p.State, p.CreatedAt).Scan(&p.ID)
}

const partyColumns = `id, name, customer_type, email, document_type, document_id, tel, address_line, post, pin, dist, state, created_at`

func scanParty(row interface {
	Scan(dest ...interface{}) error
}) (*models.Party, error) {
	var p models.Party
	err := row.Scan(&p.ID, &p.Name, &p.CustomerType, &p.Email, &p.DocumentType,
		&p.DocumentID, &p.Tel, &p.AddressLine, &p.Post, &p.Pin, &p.Dist, &p.State, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresPartyRepo) GetPartyByID(ctx context.Context, id int64) (*models.Party, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+partyColumns+` FROM party WHERE id=$1`, id)
	p, err := scanParty(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresPartyRepo) SearchPartiesByName(ctx context.Context, name string) ([]*models.Party, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+partyColumns+`
		FROM party
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name ASC
		LIMIT 50
	`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Party
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *PostgresPartyRepo) DeleteParty(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM party WHERE id=$1`, id)
	return err
}
