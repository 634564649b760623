package discount

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("discount not found")

type Repository interface {
	Create(ctx context.Context, d *Discount) error
	GetByID(ctx context.Context, id string) (*Discount, error)
	List(ctx context.Context) ([]Discount, error)
	Update(ctx context.Context, d *Discount) error
	Delete(ctx context.Context, id string) (bool, error)
	// SumForUser is the user's personal discount: the arithmetic sum of
	// every discount row owned by that user. Zero when there are none.
	SumForUser(ctx context.Context, userID string) (decimal.Decimal, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, d *Discount) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO discounts (id, discount_name, discount_value, user_id)
		VALUES ($1,$2,$3,$4)
	`, d.ID, d.DiscountName, d.DiscountValue, d.UserID)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Discount, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var d Discount
	err := r.db.QueryRow(ctx, `
		SELECT id, discount_name, discount_value::text, user_id
		FROM discounts WHERE id=$1
	`, id).Scan(&d.ID, &d.DiscountName, &d.DiscountValue, &d.UserID)
	if err != nil {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (r *PGRepo) List(ctx context.Context) ([]Discount, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, discount_name, discount_value::text, user_id
		FROM discounts ORDER BY discount_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Discount
	for rows.Next() {
		var d Discount
		if err := rows.Scan(&d.ID, &d.DiscountName, &d.DiscountValue, &d.UserID); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, d *Discount) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE discounts
		SET discount_name = $2, discount_value = $3, user_id = $4
		WHERE id = $1
	`, d.ID, d.DiscountName, d.DiscountValue, d.UserID)
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

	cmd, err := r.db.Exec(ctx, `DELETE FROM discounts WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) SumForUser(ctx context.Context, userID string) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sum string
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(discount_value), 0)::text
		FROM discounts WHERE user_id = $1
	`, userID).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(sum)
}
