package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("order not found")
	ErrLineNotFound   = errors.New("cart line not found")
	ErrOrderCompleted = errors.New("cannot modify completed order")
	ErrEmptyCart      = errors.New("cart is empty")
)

// Tx exposes the mutations available inside one transaction. Every
// cart mutation and its total recompute go through the same Tx so the
// persisted total is never stale, even under concurrent requests.
type Tx interface {
	// ActiveOrderForUpdate locks and returns the user's open order id,
	// or "" when the user has none.
	ActiveOrderForUpdate(ctx context.Context, userID string) (string, error)
	CreateOrder(ctx context.Context, userID string) (string, error)
	// OrderForUpdate locks the order row. Status already reflects a
	// payment row existing for legacy rows without the status column set.
	OrderForUpdate(ctx context.Context, orderID string) (*Order, error)
	LineOrderID(ctx context.Context, lineID string) (string, error)
	UpsertLine(ctx context.Context, orderID, productID string, quantity int) error
	SetLineQuantity(ctx context.Context, lineID string, quantity int) error
	DeleteLine(ctx context.Context, lineID string) error
	AggregateLines(ctx context.Context, orderID string) ([]Line, error)
	PersonalDiscountSum(ctx context.Context, userID string) (decimal.Decimal, error)
	SetTotal(ctx context.Context, orderID string, total decimal.Decimal) error
	CompleteOrder(ctx context.Context, orderID, address, paymentType string, total decimal.Decimal) error
	InsertPayment(ctx context.Context, orderID string, amount decimal.Decimal) error
}

type Store interface {
	WithTx(ctx context.Context, fn func(Tx) error) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetItems(ctx context.Context, orderID string) ([]CartItem, error)
	List(ctx context.Context) ([]Order, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Order, error)
	// ActiveCart returns the cart lines of the user's open order.
	ActiveCart(ctx context.Context, userID string) ([]CartItem, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type PGStore struct{ db *pgxpool.Pool }

func NewPGStore(db *pgxpool.Pool) *PGStore { return &PGStore{db: db} }

func (s *PGStore) WithTx(ctx context.Context, fn func(Tx) error) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&pgTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type pgTx struct{ tx pgx.Tx }

func (t *pgTx) ActiveOrderForUpdate(ctx context.Context, userID string) (string, error) {
	var id string
	err := t.tx.QueryRow(ctx, `
		SELECT id FROM orders
		WHERE user_id = $1 AND status = 'open'
		  AND id NOT IN (SELECT order_id FROM payments)
		ORDER BY created_at DESC LIMIT 1
		FOR UPDATE
	`, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return id, nil
}

func (t *pgTx) CreateOrder(ctx context.Context, userID string) (string, error) {
	id := uuid.NewString()
	_, err := t.tx.Exec(ctx, `
		INSERT INTO orders (id, user_id, status, total_amount, created_at)
		VALUES ($1,$2,'open',0,NOW())
	`, id, userID)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (t *pgTx) OrderForUpdate(ctx context.Context, orderID string) (*Order, error) {
	var o Order
	err := t.tx.QueryRow(ctx, `
		SELECT id, user_id, status, total_amount::text, address, payment_type, created_at
		FROM orders WHERE id=$1
		FOR UPDATE
	`, orderID).Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.Address, &o.PaymentType, &o.CreatedAt)
	if err != nil {
		return nil, ErrNotFound
	}
	var paid bool
	if err := t.tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM payments WHERE order_id=$1)
	`, orderID).Scan(&paid); err != nil {
		return nil, err
	}
	if paid {
		o.Status = StatusCompleted
	}
	return &o, nil
}

func (t *pgTx) LineOrderID(ctx context.Context, lineID string) (string, error) {
	var orderID string
	err := t.tx.QueryRow(ctx, `SELECT order_id FROM cart_items WHERE id=$1`, lineID).Scan(&orderID)
	if err != nil {
		return "", ErrLineNotFound
	}
	return orderID, nil
}

func (t *pgTx) UpsertLine(ctx context.Context, orderID, productID string, quantity int) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO cart_items (id, order_id, product_id, quantity)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (order_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`, uuid.NewString(), orderID, productID, quantity)
	return err
}

func (t *pgTx) SetLineQuantity(ctx context.Context, lineID string, quantity int) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE cart_items SET quantity = $2 WHERE id = $1
	`, lineID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (t *pgTx) DeleteLine(ctx context.Context, lineID string) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM cart_items WHERE id=$1`, lineID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (t *pgTx) AggregateLines(ctx context.Context, orderID string) ([]Line, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT p.id, p.product_name, c.quantity, p.price::text,
		       COALESCE(d.discount_value, 0)::text
		FROM cart_items c
		JOIN products p ON c.product_id = p.id
		LEFT JOIN discounts d ON p.discount_id = d.id
		WHERE c.order_id = $1
		ORDER BY c.created_at
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Line
	for rows.Next() {
		var (
			l          Line
			price, pct string
		)
		if err := rows.Scan(&l.ProductID, &l.ProductName, &l.Quantity, &price, &pct); err != nil {
			return nil, err
		}
		if l.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		if l.ProductPercent, err = decimal.NewFromString(pct); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (t *pgTx) PersonalDiscountSum(ctx context.Context, userID string) (decimal.Decimal, error) {
	var sum string
	err := t.tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(discount_value), 0)::text
		FROM discounts WHERE user_id = $1
	`, userID).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(sum)
}

func (t *pgTx) SetTotal(ctx context.Context, orderID string, total decimal.Decimal) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE orders SET total_amount = $2 WHERE id = $1
	`, orderID, total)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *pgTx) CompleteOrder(ctx context.Context, orderID, address, paymentType string, total decimal.Decimal) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE orders
		SET status = 'completed', address = $2, payment_type = $3, total_amount = $4
		WHERE id = $1
	`, orderID, address, paymentType, total)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *pgTx) InsertPayment(ctx context.Context, orderID string, amount decimal.Decimal) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO payments (id, order_id, amount, payment_date)
		VALUES ($1,$2,$3,NOW())
	`, uuid.NewString(), orderID, amount)
	return err
}

func (s *PGStore) GetByID(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o Order
	err := s.db.QueryRow(ctx, `
		SELECT id, user_id, status, total_amount::text, address, payment_type, created_at
		FROM orders WHERE id=$1
	`, id).Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.Address, &o.PaymentType, &o.CreatedAt)
	if err != nil {
		return nil, ErrNotFound
	}
	return &o, nil
}

const cartItemCols = `
	c.id, c.order_id, c.product_id, p.product_name, p.price::text,
	COALESCE(d.discount_value, 0)::text, c.quantity
`

func (s *PGStore) GetItems(ctx context.Context, orderID string) ([]CartItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT `+cartItemCols+`
		FROM cart_items c
		JOIN products p ON c.product_id = p.id
		LEFT JOIN discounts d ON p.discount_id = d.id
		WHERE c.order_id = $1
		ORDER BY c.created_at
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCartItems(rows)
}

func (s *PGStore) List(ctx context.Context) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, status, total_amount::text, address, payment_type, created_at
		FROM orders ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (s *PGStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, status, total_amount::text, address, payment_type, created_at
		FROM orders WHERE user_id=$1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (s *PGStore) ActiveCart(ctx context.Context, userID string) ([]CartItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT `+cartItemCols+`
		FROM orders o
		JOIN cart_items c ON c.order_id = o.id
		JOIN products p ON c.product_id = p.id
		LEFT JOIN discounts d ON p.discount_id = d.id
		WHERE o.user_id = $1 AND o.status = 'open'
		  AND o.id NOT IN (SELECT order_id FROM payments)
		ORDER BY c.created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCartItems(rows)
}

func (s *PGStore) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := s.db.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func scanOrders(rows pgx.Rows) ([]Order, error) {
	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.Address, &o.PaymentType, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanCartItems(rows pgx.Rows) ([]CartItem, error) {
	var out []CartItem
	for rows.Next() {
		var it CartItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Price, &it.DiscountValue, &it.Quantity); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
