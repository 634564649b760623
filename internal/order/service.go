package order

import (
	"context"
	"errors"
	"log"
)

var ErrInvalidQuantity = errors.New("quantity must be non-negative")

// Service is the cart mutation façade. Each operation mutates cart
// lines and recomputes the order total inside a single transaction.
type Service struct {
	store Store
}

func NewService(store Store) *Service { return &Service{store: store} }

// AddItem puts a product into the user's open order, creating the
// order if none exists. Adding a product already in the cart
// increments the existing line instead of duplicating it.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (string, error) {
	if quantity <= 0 {
		quantity = 1
	}
	var orderID string
	err := s.store.WithTx(ctx, func(tx Tx) error {
		id, err := tx.ActiveOrderForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if id == "" {
			if id, err = tx.CreateOrder(ctx, userID); err != nil {
				return err
			}
		}
		orderID = id
		if err := tx.UpsertLine(ctx, orderID, productID, quantity); err != nil {
			return err
		}
		return recomputeTotal(ctx, tx, orderID, userID)
	})
	if err != nil {
		return "", err
	}
	return orderID, nil
}

// UpdateQuantity sets a line's quantity; 0 deletes the line.
func (s *Service) UpdateQuantity(ctx context.Context, lineID string, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	return s.store.WithTx(ctx, func(tx Tx) error {
		orderID, err := tx.LineOrderID(ctx, lineID)
		if err != nil {
			return err
		}
		o, err := tx.OrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o.Status == StatusCompleted {
			return ErrOrderCompleted
		}
		if quantity == 0 {
			err = tx.DeleteLine(ctx, lineID)
		} else {
			err = tx.SetLineQuantity(ctx, lineID, quantity)
		}
		if err != nil {
			return err
		}
		return recomputeTotal(ctx, tx, orderID, o.UserID)
	})
}

// RemoveItem deletes a cart line.
func (s *Service) RemoveItem(ctx context.Context, lineID string) error {
	return s.store.WithTx(ctx, func(tx Tx) error {
		orderID, err := tx.LineOrderID(ctx, lineID)
		if err != nil {
			return err
		}
		o, err := tx.OrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o.Status == StatusCompleted {
			return ErrOrderCompleted
		}
		if err := tx.DeleteLine(ctx, lineID); err != nil {
			return err
		}
		return recomputeTotal(ctx, tx, orderID, o.UserID)
	})
}

// CreateOrder makes a fresh order for the user with the given initial
// items. Duplicate product ids merge into one line.
func (s *Service) CreateOrder(ctx context.Context, userID string, items []CreateOrderItem) (string, error) {
	var orderID string
	err := s.store.WithTx(ctx, func(tx Tx) error {
		id, err := tx.CreateOrder(ctx, userID)
		if err != nil {
			return err
		}
		orderID = id
		for _, it := range items {
			qty := it.Quantity
			if qty <= 0 {
				qty = 1
			}
			if err := tx.UpsertLine(ctx, orderID, it.ProductID, qty); err != nil {
				return err
			}
		}
		return recomputeTotal(ctx, tx, orderID, userID)
	})
	if err != nil {
		return "", err
	}
	return orderID, nil
}

// Checkout finalizes an open order: recomputes the total from the cart
// lines, stamps address and payment type, records the payment and
// flips the order to completed. Not reversible. Rejected on an empty
// cart or an already completed order.
func (s *Service) Checkout(ctx context.Context, orderID, address, paymentType string) error {
	return s.store.WithTx(ctx, func(tx Tx) error {
		o, err := tx.OrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o.Status == StatusCompleted {
			return ErrOrderCompleted
		}
		lines, err := tx.AggregateLines(ctx, orderID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}
		personal, err := tx.PersonalDiscountSum(ctx, o.UserID)
		if err != nil {
			return err
		}
		total := Total(lines, personal)
		if err := tx.CompleteOrder(ctx, orderID, address, paymentType, total); err != nil {
			return err
		}
		return tx.InsertPayment(ctx, orderID, total)
	})
}

// recomputeTotal re-derives total_amount from the cart lines. An order
// deleted by a concurrent request is a benign race: logged, not
// surfaced.
func recomputeTotal(ctx context.Context, tx Tx, orderID, userID string) error {
	lines, err := tx.AggregateLines(ctx, orderID)
	if err != nil {
		return err
	}
	personal, err := tx.PersonalDiscountSum(ctx, userID)
	if err != nil {
		return err
	}
	if err := tx.SetTotal(ctx, orderID, Total(lines, personal)); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Printf("[order] recompute skipped, order %s is gone", orderID)
			return nil
		}
		return err
	}
	return nil
}
