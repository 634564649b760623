// Package product provides the repository interface and PostgreSQL implementation for managing products.
package product

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("product not found")

type Query struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, q Query) ([]Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const selectCols = `
	p.id, p.product_name, p.description, p.price::text, p.weight::text,
	p.category_id, p.discount_id, p.picture_url,
	c.category_name, d.discount_value::text
`

func (r *PGRepo) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, product_name, description, price, weight, category_id, discount_id, picture_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, p.ID, p.ProductName, p.Description, p.Price, p.Weight, p.CategoryID, p.DiscountID, p.PictureURL)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p Product
	err := r.db.QueryRow(ctx, `
		SELECT `+selectCols+`
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		LEFT JOIN discounts d ON p.discount_id = d.id
		WHERE p.id=$1
	`, id).Scan(&p.ID, &p.ProductName, &p.Description, &p.Price, &p.Weight,
		&p.CategoryID, &p.DiscountID, &p.PictureURL, &p.CategoryName, &p.DiscountValue)
	if err != nil {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *PGRepo) List(ctx context.Context, q Query) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	search := strings.TrimSpace(q.Q)

	rows, err := r.db.Query(ctx, `
		SELECT `+selectCols+`
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		LEFT JOIN discounts d ON p.discount_id = d.id
		WHERE ($1 = '' OR p.product_name ILIKE '%'||$1||'%' OR p.description ILIKE '%'||$1||'%')
		ORDER BY p.product_name
		LIMIT $2 OFFSET $3
	`, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.ProductName, &p.Description, &p.Price, &p.Weight,
			&p.CategoryID, &p.DiscountID, &p.PictureURL, &p.CategoryName, &p.DiscountValue); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET product_name = COALESCE(NULLIF($2,''), product_name),
		    description  = COALESCE(NULLIF($3,''), description),
		    price        = COALESCE(NULLIF($4,'')::numeric, price),
		    weight       = COALESCE(NULLIF($5,'')::numeric, weight),
		    category_id  = $6,
		    discount_id  = $7,
		    picture_url  = COALESCE(NULLIF($8,''), picture_url)
		WHERE id = $1
	`, p.ID, p.ProductName, p.Description, p.Price, p.Weight, p.CategoryID, p.DiscountID, p.PictureURL)
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

	cmd, err := r.db.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
