package role

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("role not found")
	ErrAlreadyExist = errors.New("role already exists")
)

type Repository interface {
	Create(ctx context.Context, r *Role) error
	GetByID(ctx context.Context, id string) (*Role, error)
	GetByName(ctx context.Context, name string) (*Role, error)
	List(ctx context.Context) ([]Role, error)
	Update(ctx context.Context, r *Role) error
	Delete(ctx context.Context, id string) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, ro *Role) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO roles (id, role_name) VALUES ($1, $2)
	`, ro.ID, ro.RoleName)
	if err != nil {
		// role_name carries UNIQUE
		return ErrAlreadyExist
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Role, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var ro Role
	err := r.db.QueryRow(ctx, `
		SELECT id, role_name FROM roles WHERE id=$1
	`, id).Scan(&ro.ID, &ro.RoleName)
	if err != nil {
		return nil, ErrNotFound
	}
	return &ro, nil
}

func (r *PGRepo) GetByName(ctx context.Context, name string) (*Role, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var ro Role
	err := r.db.QueryRow(ctx, `
		SELECT id, role_name FROM roles WHERE role_name=$1
	`, name).Scan(&ro.ID, &ro.RoleName)
	if err != nil {
		return nil, ErrNotFound
	}
	return &ro, nil
}

func (r *PGRepo) List(ctx context.Context) ([]Role, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, role_name FROM roles ORDER BY role_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Role
	for rows.Next() {
		var ro Role
		if err := rows.Scan(&ro.ID, &ro.RoleName); err != nil {
			return nil, err
		}
		out = append(out, ro)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, ro *Role) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE roles SET role_name = $2 WHERE id = $1
	`, ro.ID, ro.RoleName)
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

	cmd, err := r.db.Exec(ctx, `DELETE FROM roles WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
