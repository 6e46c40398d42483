package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"lrlcargo/invoice"
	"lrlcargo/models"
)

type PostgresCargoRepo struct {
	DB *sql.DB
}

func NewPostgresCargoRepo(db *sql.DB) *PostgresCargoRepo {
	return &PostgresCargoRepo{DB: db}
}

// ------------------------ Helper Functions ------------------------

// Upsert a party inside the booking transaction. Matched on document_id when
// present, else on (name, customer_type).
func (r *PostgresCargoRepo) upsertParty(ctx context.Context, tx *sql.Tx, p *models.Party) (int64, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	var existingID int64
	var err error
	if p.DocumentID != nil && *p.DocumentID != "" {
		err = tx.QueryRowContext(ctx,
			`SELECT id FROM party WHERE document_id = $1 AND customer_type = $2 LIMIT 1`,
			p.DocumentID, p.CustomerType).Scan(&existingID)
	} else {
		err = tx.QueryRowContext(ctx,
			`SELECT id FROM party WHERE lower(name) = lower($1) AND customer_type = $2 LIMIT 1`,
			p.Name, p.CustomerType).Scan(&existingID)
	}
	if err == nil {
		p.ID = existingID
		return existingID, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO party(name,customer_type,email,document_type,document_id,tel,address_line,post,pin,dist,state,created_at)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id
	`, p.Name, p.CustomerType, p.Email, p.DocumentType, p.DocumentID, p.Tel,
		p.AddressLine, p.Post, p.Pin, p.Dist, p.State, p.CreatedAt).Scan(&id)
	if err != nil {
		return 0, err
	}
	p.ID = id
	return id, nil
}

func (r *PostgresCargoRepo) insertCargoMain(ctx context.Context, tx *sql.Tx, cargo *models.Cargo) error {
	if cargo.CreatedAt.IsZero() {
		cargo.CreatedAt = time.Now().UTC()
	}
	if cargo.Status == "" {
		cargo.Status = "draft"
	}
	return tx.QueryRowContext(ctx, `
		INSERT INTO cargo(
			booking_no,track_code,branch_id,sender_party_id,receiver_party_id,
			raw_payload,created_by,created_at,status
		)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`,
		cargo.BookingNo, cargo.TrackCode, cargo.BranchID, cargo.SenderPartyID,
		cargo.ReceiverPartyID, []byte(cargo.RawPayload), cargo.CreatedBy,
		cargo.CreatedAt, cargo.Status,
	).Scan(&cargo.ID)
}

// ------------------------ Create / Update Cargo ------------------------

func (r *PostgresCargoRepo) CreateCargo(ctx context.Context, cargo *models.Cargo) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if cargo.CreatedBy == 0 {
		return errors.New("created_by cannot be empty")
	}

	// Upsert parties
	if cargo.SenderPartyID == nil && cargo.SenderParty != nil {
		cargo.SenderParty.CustomerType = models.PartyTypeSender
		id, err := r.upsertParty(ctx, tx, cargo.SenderParty)
		if err != nil {
			return err
		}
		cargo.SenderPartyID = &id
	}
	if cargo.ReceiverPartyID == nil && cargo.ReceiverParty != nil {
		cargo.ReceiverParty.CustomerType = models.PartyTypeReceiver
		id, err := r.upsertParty(ctx, tx, cargo.ReceiverParty)
		if err != nil {
			return err
		}
		cargo.ReceiverPartyID = &id
	}

	if cargo.ID == 0 {
		// New booking: assign a tracking code and the next booking number.
		if cargo.TrackCode == "" {
			cargo.TrackCode = "LRL-" + strings.ToUpper(uuid.NewString()[:8])
		}
		if cargo.BookingNo == "" {
			var last sql.NullString
			err := tx.QueryRowContext(ctx,
				`SELECT booking_no FROM cargo ORDER BY id DESC LIMIT 1`).Scan(&last)
			if err != nil && err != sql.ErrNoRows {
				return err
			}
			cargo.BookingNo = invoice.NextInvoiceNumber(last.String)
		}
		if err := r.insertCargoMain(ctx, tx, cargo); err != nil {
			return err
		}
	} else {
		now := time.Now().UTC()
		cargo.UpdatedAt = &now
		_, err = tx.ExecContext(ctx, `
			UPDATE cargo SET
				branch_id=$1,
				sender_party_id=$2,
				receiver_party_id=$3,
				raw_payload=$4,
				status=$5,
				updated_at=$6
			WHERE id=$7
		`, cargo.BranchID, cargo.SenderPartyID, cargo.ReceiverPartyID,
			[]byte(cargo.RawPayload), cargo.Status, cargo.UpdatedAt, cargo.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ------------------------ GetCargo ------------------------

func (r *PostgresCargoRepo) GetCargo(ctx context.Context, filters map[string]interface{}, single bool) ([]*models.Cargo, error) {
	query := `
		SELECT
			c.id, c.booking_no, c.track_code, c.branch_id, c.sender_party_id, c.receiver_party_id,
			c.raw_payload, c.created_by, c.created_at, c.updated_at, c.pdf_created_at, c.pdf_path, c.status,

			-- Sender party
			sp.id, sp.name, sp.customer_type, sp.email, sp.document_type, sp.document_id,
			sp.tel, sp.address_line, sp.post, sp.pin, sp.dist, sp.state,
			-- Receiver party
			rp.id, rp.name, rp.customer_type, rp.email, rp.document_type, rp.document_id,
			rp.tel, rp.address_line, rp.post, rp.pin, rp.dist, rp.state,

			-- Branch
			b.id, b.branch_name, b.branch_name_ar, b.branch_address,
			b.branch_contact_number, b.branch_alternative_number, b.logo_url
		FROM cargo c
		LEFT JOIN party sp ON c.sender_party_id = sp.id
		LEFT JOIN party rp ON c.receiver_party_id = rp.id
		LEFT JOIN branch b ON c.branch_id = b.id
	`

	args := []interface{}{}
	where := []string{}
	i := 1
	for k, v := range filters {
		if !cargoFilterColumns[k] {
			return nil, fmt.Errorf("unsupported cargo filter: %s", k)
		}
		where = append(where, fmt.Sprintf("c.%s = $%d", k, i))
		args = append(args, v)
		i++
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if !single {
		query += " ORDER BY c.created_at DESC"
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Cargo
	for rows.Next() {
		var c models.Cargo
		var payload []byte
		var sender, receiver partyRow
		var branch branchRow

		err := rows.Scan(
			&c.ID, &c.BookingNo, &c.TrackCode, &c.BranchID, &c.SenderPartyID, &c.ReceiverPartyID,
			&payload, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt, &c.PdfCreatedAt, &c.PdfPath, &c.Status,

			&sender.ID, &sender.Name, &sender.CustomerType, &sender.Email, &sender.DocumentType,
			&sender.DocumentID, &sender.Tel, &sender.AddressLine, &sender.Post, &sender.Pin,
			&sender.Dist, &sender.State,

			&receiver.ID, &receiver.Name, &receiver.CustomerType, &receiver.Email, &receiver.DocumentType,
			&receiver.DocumentID, &receiver.Tel, &receiver.AddressLine, &receiver.Post, &receiver.Pin,
			&receiver.Dist, &receiver.State,

			&branch.ID, &branch.BranchName, &branch.BranchNameAr, &branch.BranchAddress,
			&branch.BranchContactNumber, &branch.BranchAlternativeNumber, &branch.LogoURL,
		)
		if err != nil {
			return nil, err
		}

		c.RawPayload = payload
		c.SenderParty = sender.toModel()
		c.ReceiverParty = receiver.toModel()
		c.Branch = branch.toModel()

		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if single {
		if len(result) > 0 {
			return []*models.Cargo{result[0]}, nil
		}
		return nil, nil
	}
	return result, nil
}

// partyRow holds the nullable columns of a LEFT JOINed party.
type partyRow struct {
	ID           sql.NullInt64
	Name         sql.NullString
	CustomerType sql.NullInt64
	Email        sql.NullString
	DocumentType sql.NullString
	DocumentID   sql.NullString
	Tel          sql.NullString
	AddressLine  sql.NullString
	Post         sql.NullString
	Pin          sql.NullString
	Dist         sql.NullString
	State        sql.NullString
}

func (p partyRow) toModel() *models.Party {
	if !p.ID.Valid {
		return nil
	}
	m := &models.Party{
		ID:           p.ID.Int64,
		Name:         p.Name.String,
		CustomerType: int(p.CustomerType.Int64),
		AddressLine:  p.AddressLine.String,
		Post:         p.Post.String,
		Pin:          p.Pin.String,
		Dist:         p.Dist.String,
		State:        p.State.String,
	}
	if p.Email.Valid {
		m.Email = &p.Email.String
	}
	if p.DocumentType.Valid {
		m.DocumentType = &p.DocumentType.String
	}
	if p.DocumentID.Valid {
		m.DocumentID = &p.DocumentID.String
	}
	if p.Tel.Valid {
		m.Tel = &p.Tel.String
	}
	return m
}

type branchRow struct {
	ID                      sql.NullInt64
	BranchName              sql.NullString
	BranchNameAr            sql.NullString
	BranchAddress           sql.NullString
	BranchContactNumber     sql.NullString
	BranchAlternativeNumber sql.NullString
	LogoURL                 sql.NullString
}

func (b branchRow) toModel() *models.Branch {
	if !b.ID.Valid {
		return nil
	}
	return &models.Branch{
		ID:                      b.ID.Int64,
		BranchName:              b.BranchName.String,
		BranchNameAr:            b.BranchNameAr.String,
		BranchAddress:           b.BranchAddress.String,
		BranchContactNumber:     b.BranchContactNumber.String,
		BranchAlternativeNumber: b.BranchAlternativeNumber.String,
		LogoURL:                 b.LogoURL.String,
	}
}

// ------------------------ Booking number ------------------------

func (r *PostgresCargoRepo) LastBookingNo(ctx context.Context) (string, error) {
	var last sql.NullString
	err := r.DB.QueryRowContext(ctx,
		`SELECT booking_no FROM cargo ORDER BY id DESC LIMIT 1`).Scan(&last)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return last.String, nil
}

// ------------------------ PDF Helpers ------------------------

func (r *PostgresCargoRepo) UpdatePDFInfo(ctx context.Context, cargoID int64, path string, createdAt time.Time) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE cargo
		SET pdf_path = $1, pdf_created_at = $2
		WHERE id = $3
	`, path, createdAt, cargoID)
	return err
}

// ------------------------ Delete Cargo ------------------------

func (r *PostgresCargoRepo) DeleteCargo(ctx context.Context, cargoID int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM cargo WHERE id=$1`, cargoID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("cargo %d not found", cargoID)
	}
	return nil
}
