package repository

import (
	"context"
	"database/sql"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lrlcargo/models"
)

type PostgresUserRepo struct {
	DB *sql.DB
}

func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{DB: db}
}

func (r *PostgresUserRepo) CreateUser(ctx context.Context, user *models.AppUser) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	return r.DB.QueryRowContext(ctx, `
		INSERT INTO app_user(name,email,role,password_hash,created_at)
		VALUES($1,$2,$3,$4,$5)
		RETURNING id
	`, user.Name, user.Email, user.Role, string(hash), user.CreatedAt).Scan(&user.ID)
}

func (r *PostgresUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.AppUser, error) {
	var user models.AppUser
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, email, role, password_hash, created_at
		FROM app_user WHERE email=$1
	`, email).Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.Password, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
