package user

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrAlreadyExist = errors.New("user already exists")
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User, updatePassword bool) error
	Delete(ctx context.Context, id string) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, u *User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, role_id, phone, email, password_hash, created_at)
		VALUES ($1,$2,$3,$4,$5,NOW())
	`, u.ID, u.RoleID, u.Phone, u.Email, u.PasswordHash)
	if err != nil {
		// email carries UNIQUE
		return ErrAlreadyExist
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		SELECT u.id, u.role_id, r.role_name, u.phone, u.email, u.password_hash, u.created_at
		FROM users u JOIN roles r ON u.role_id = r.id
		WHERE u.id=$1
	`, id)
	var u User
	if err := row.Scan(&u.ID, &u.RoleID, &u.RoleName, &u.Phone, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		SELECT u.id, u.role_id, r.role_name, u.phone, u.email, u.password_hash, u.created_at
		FROM users u JOIN roles r ON u.role_id = r.id
		WHERE u.email=$1
	`, email)
	var u User
	if err := row.Scan(&u.ID, &u.RoleID, &u.RoleName, &u.Phone, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *PGRepo) List(ctx context.Context) ([]User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.role_id, r.role_name, u.phone, u.email, u.password_hash, u.created_at
		FROM users u JOIN roles r ON u.role_id = r.id
		ORDER BY u.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.RoleID, &u.RoleName, &u.Phone, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, u *User, updatePassword bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if updatePassword {
		tag, err := r.db.Exec(ctx, `
			UPDATE users
			SET role_id = COALESCE(NULLIF($2,''), role_id),
			    phone   = COALESCE(NULLIF($3,''), phone),
			    email   = COALESCE(NULLIF($4,''), email),
			    password_hash = $5
			WHERE id = $1
		`, u.ID, u.RoleID, u.Phone, u.Email, u.PasswordHash)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET role_id = COALESCE(NULLIF($2,''), role_id),
		    phone   = COALESCE(NULLIF($3,''), phone),
		    email   = COALESCE(NULLIF($4,''), email)
		WHERE id = $1
	`, u.ID, u.RoleID, u.Phone, u.Email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
