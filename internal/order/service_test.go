package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	log.SetOutput(io.Discard)
}

//
// ---------- IN-MEMORY STORE ----------
//

type memProduct struct {
	name    string
	price   decimal.Decimal
	percent decimal.Decimal
}

type memLine struct {
	id        string
	orderID   string
	productID string
	quantity  int
	seq       int
}

// memStore implements Store and Tx in memory. WithTx is not atomic;
// the service checks preconditions before mutating, which is all these
// tests rely on.
type memStore struct {
	orders   map[string]*Order
	lines    map[string]*memLine
	payments map[string][]decimal.Decimal
	products map[string]memProduct
	personal map[string]decimal.Decimal
	seq      int
}

func newMemStore() *memStore {
	return &memStore{
		orders:   map[string]*Order{},
		lines:    map[string]*memLine{},
		payments: map[string][]decimal.Decimal{},
		products: map[string]memProduct{},
		personal: map[string]decimal.Decimal{},
	}
}

func (s *memStore) addProduct(name string, price, percent string) string {
	id := uuid.NewString()
	s.products[id] = memProduct{
		name:    name,
		price:   decimal.RequireFromString(price),
		percent: decimal.RequireFromString(percent),
	}
	return id
}

func (s *memStore) lineFor(orderID, productID string) *memLine {
	for _, l := range s.lines {
		if l.orderID == orderID && l.productID == productID {
			return l
		}
	}
	return nil
}

func (s *memStore) WithTx(_ context.Context, fn func(Tx) error) error { return fn(s) }

func (s *memStore) ActiveOrderForUpdate(_ context.Context, userID string) (string, error) {
	var best *Order
	for _, o := range s.orders {
		if o.UserID != userID || o.Status != StatusOpen || len(s.payments[o.ID]) > 0 {
			continue
		}
		if best == nil || o.CreatedAt.After(best.CreatedAt) {
			best = o
		}
	}
	if best == nil {
		return "", nil
	}
	return best.ID, nil
}

func (s *memStore) CreateOrder(_ context.Context, userID string) (string, error) {
	id := uuid.NewString()
	s.seq++
	s.orders[id] = &Order{
		ID:          id,
		UserID:      userID,
		Status:      StatusOpen,
		TotalAmount: "0",
		CreatedAt:   time.Now().Add(time.Duration(s.seq) * time.Millisecond),
	}
	return id, nil
}

func (s *memStore) OrderForUpdate(_ context.Context, orderID string) (*Order, error) {
	o, ok := s.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	if len(s.payments[orderID]) > 0 {
		cp.Status = StatusCompleted
	}
	return &cp, nil
}

func (s *memStore) LineOrderID(_ context.Context, lineID string) (string, error) {
	l, ok := s.lines[lineID]
	if !ok {
		return "", ErrLineNotFound
	}
	return l.orderID, nil
}

func (s *memStore) UpsertLine(_ context.Context, orderID, productID string, quantity int) error {
	if l := s.lineFor(orderID, productID); l != nil {
		l.quantity += quantity
		return nil
	}
	s.seq++
	id := uuid.NewString()
	s.lines[id] = &memLine{id: id, orderID: orderID, productID: productID, quantity: quantity, seq: s.seq}
	return nil
}

func (s *memStore) SetLineQuantity(_ context.Context, lineID string, quantity int) error {
	l, ok := s.lines[lineID]
	if !ok {
		return ErrLineNotFound
	}
	l.quantity = quantity
	return nil
}

func (s *memStore) DeleteLine(_ context.Context, lineID string) error {
	if _, ok := s.lines[lineID]; !ok {
		return ErrLineNotFound
	}
	delete(s.lines, lineID)
	return nil
}

func (s *memStore) AggregateLines(_ context.Context, orderID string) ([]Line, error) {
	var out []Line
	for _, l := range s.lines {
		if l.orderID != orderID {
			continue
		}
		p, ok := s.products[l.productID]
		if !ok {
			return nil, fmt.Errorf("unknown product %s", l.productID)
		}
		out = append(out, Line{
			ProductID:      l.productID,
			ProductName:    p.name,
			Quantity:       l.quantity,
			UnitPrice:      p.price,
			ProductPercent: p.percent,
		})
	}
	return out, nil
}

func (s *memStore) PersonalDiscountSum(_ context.Context, userID string) (decimal.Decimal, error) {
	return s.personal[userID], nil
}

func (s *memStore) SetTotal(_ context.Context, orderID string, total decimal.Decimal) error {
	o, ok := s.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	o.TotalAmount = total.String()
	return nil
}

func (s *memStore) CompleteOrder(_ context.Context, orderID, address, paymentType string, total decimal.Decimal) error {
	o, ok := s.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	o.Status = StatusCompleted
	o.Address = &address
	o.PaymentType = &paymentType
	o.TotalAmount = total.String()
	return nil
}

func (s *memStore) InsertPayment(_ context.Context, orderID string, amount decimal.Decimal) error {
	s.payments[orderID] = append(s.payments[orderID], amount)
	return nil
}

func (s *memStore) GetByID(_ context.Context, id string) (*Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *memStore) GetItems(_ context.Context, orderID string) ([]CartItem, error) {
	var out []CartItem
	for _, l := range s.lines {
		if l.orderID != orderID {
			continue
		}
		p := s.products[l.productID]
		out = append(out, CartItem{
			ID:            l.id,
			OrderID:       l.orderID,
			ProductID:     l.productID,
			ProductName:   p.name,
			Price:         p.price.String(),
			DiscountValue: p.percent.String(),
			Quantity:      l.quantity,
		})
	}
	return out, nil
}

func (s *memStore) List(_ context.Context) ([]Order, error) {
	var out []Order
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (s *memStore) ListByUser(_ context.Context, userID string, _, _ int) ([]Order, error) {
	var out []Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *memStore) ActiveCart(ctx context.Context, userID string) ([]CartItem, error) {
	id, err := s.ActiveOrderForUpdate(ctx, userID)
	if err != nil || id == "" {
		return nil, err
	}
	return s.GetItems(ctx, id)
}

func (s *memStore) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := s.orders[id]; !ok {
		return false, nil
	}
	delete(s.orders, id)
	return true, nil
}

//
// ---------- TESTS ----------
//

func TestAddItem_CreatesOrderAndRecomputes(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	prod := store.addProduct("keyboard", "50", "0")
	svc := NewService(store)
	uid := uuid.NewString()

	orderID, err := svc.AddItem(context.Background(), uid, prod, 2)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	o := store.orders[orderID]
	if o == nil {
		t.Fatalf("order not created")
	}
	if o.TotalAmount != "100" {
		t.Fatalf("total=%s, want 100", o.TotalAmount)
	}
}

func TestAddItem_SameProductMergesLines(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	prod := store.addProduct("keyboard", "10", "0")
	svc := NewService(store)
	uid := uuid.NewString()

	first, err := svc.AddItem(context.Background(), uid, prod, 2)
	if err != nil {
		t.Fatalf("first AddItem: %v", err)
	}
	second, err := svc.AddItem(context.Background(), uid, prod, 3)
	if err != nil {
		t.Fatalf("second AddItem: %v", err)
	}
	if first != second {
		t.Fatalf("adds went to different orders: %s vs %s", first, second)
	}
	if len(store.lines) != 1 {
		t.Fatalf("lines=%d, want 1", len(store.lines))
	}
	if l := store.lineFor(first, prod); l.quantity != 5 {
		t.Fatalf("quantity=%d, want 5", l.quantity)
	}
	if store.orders[first].TotalAmount != "50" {
		t.Fatalf("total=%s, want 50", store.orders[first].TotalAmount)
	}
}

func TestAddItem_AppliesDiscounts(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	prod := store.addProduct("keyboard", "100", "10")
	svc := NewService(store)
	uid := uuid.NewString()
	// two personal 5% rows, summed upstream
	store.personal[uid] = decimal.RequireFromString("10")

	orderID, err := svc.AddItem(context.Background(), uid, prod, 3)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if got := store.orders[orderID].TotalAmount; got != "240" {
		t.Fatalf("total=%s, want 240", got)
	}
}

func TestUpdateQuantity_ZeroDeletesLine(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	prod := store.addProduct("keyboard", "50", "0")
	svc := NewService(store)
	uid := uuid.NewString()

	orderID, err := svc.AddItem(context.Background(), uid, prod, 2)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if store.orders[orderID].TotalAmount != "100" {
		t.Fatalf("total=%s, want 100", store.orders[orderID].TotalAmount)
	}
	lineID := store.lineFor(orderID, prod).id

	if err := svc.UpdateQuantity(context.Background(), lineID, 0); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if len(store.lines) != 0 {
		t.Fatalf("line not deleted")
	}
	if got := store.orders[orderID].TotalAmount; got != "0" {
		t.Fatalf("total=%s, want 0", got)
	}
}

func TestUpdateQuantity_NegativeRejected(t *testing.T) {
	t.Parallel()

	svc := NewService(newMemStore())
	if err := svc.UpdateQuantity(context.Background(), uuid.NewString(), -1); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("err=%v, want ErrInvalidQuantity", err)
	}
}

func TestRemoveItem_RecomputesTotal(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	keyboard := store.addProduct("keyboard", "50", "0")
	mouse := store.addProduct("mouse", "20", "0")
	svc := NewService(store)
	uid := uuid.NewString()

	orderID, err := svc.AddItem(context.Background(), uid, keyboard, 2)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := svc.AddItem(context.Background(), uid, mouse, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if got := store.orders[orderID].TotalAmount; got != "120" {
		t.Fatalf("total=%s, want 120", got)
	}

	if err := svc.RemoveItem(context.Background(), store.lineFor(orderID, mouse).id); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if got := store.orders[orderID].TotalAmount; got != "100" {
		t.Fatalf("total=%s, want 100", got)
	}
}

func TestMutations_RejectedOnCompletedOrder(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	prod := store.addProduct("keyboard", "50", "0")
	svc := NewService(store)
	uid := uuid.NewString()

	orderID, err := svc.AddItem(context.Background(), uid, prod, 2)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	lineID := store.lineFor(orderID, prod).id
	if err := svc.Checkout(context.Background(), orderID, "Lenina 1", "cash"); err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if err := svc.UpdateQuantity(context.Background(), lineID, 5); !errors.Is(err, ErrOrderCompleted) {
		t.Fatalf("update err=%v, want ErrOrderCompleted", err)
	}
	if err := svc.RemoveItem(context.Background(), lineID); !errors.Is(err, ErrOrderCompleted) {
		t.Fatalf("remove err=%v, want ErrOrderCompleted", err)
	}
	// cart and total untouched
	if l := store.lineFor(orderID, prod); l == nil || l.quantity != 2 {
		t.Fatalf("cart line changed after rejected mutations")
	}
	if got := store.orders[orderID].TotalAmount; got != "100" {
		t.Fatalf("total=%s, want 100", got)
	}
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	svc := NewService(store)
	orderID, err := svc.CreateOrder(context.Background(), uuid.NewString(), nil)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if err := svc.Checkout(context.Background(), orderID, "Lenina 1", "cash"); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("err=%v, want ErrEmptyCart", err)
	}
	if len(store.payments[orderID]) != 0 {
		t.Fatalf("payment created for empty cart")
	}
}

func TestCheckout_RecordsPaymentAndCompletes(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	prod := store.addProduct("keyboard", "50", "0")
	svc := NewService(store)
	uid := uuid.NewString()

	orderID, err := svc.AddItem(context.Background(), uid, prod, 2)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := svc.Checkout(context.Background(), orderID, "Lenina 1", "card"); err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	o := store.orders[orderID]
	if o.Status != StatusCompleted {
		t.Fatalf("status=%s, want completed", o.Status)
	}
	if o.Address == nil || *o.Address != "Lenina 1" || o.PaymentType == nil || *o.PaymentType != "card" {
		t.Fatalf("checkout info not stamped: %+v", o)
	}
	pays := store.payments[orderID]
	if len(pays) != 1 || !pays[0].Equal(decimal.RequireFromString("100")) {
		t.Fatalf("payments=%v, want one of 100", pays)
	}

	// second checkout is rejected, no double payment
	if err := svc.Checkout(context.Background(), orderID, "Lenina 1", "card"); !errors.Is(err, ErrOrderCompleted) {
		t.Fatalf("err=%v, want ErrOrderCompleted", err)
	}
	if len(store.payments[orderID]) != 1 {
		t.Fatalf("payment duplicated")
	}
}

func TestCheckout_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewService(newMemStore())
	if err := svc.Checkout(context.Background(), uuid.NewString(), "Lenina 1", "cash"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestCreateOrder_MergesDuplicateItems(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	prod := store.addProduct("keyboard", "10", "0")
	svc := NewService(store)

	orderID, err := svc.CreateOrder(context.Background(), uuid.NewString(), []CreateOrderItem{
		{ProductID: prod, Quantity: 2},
		{ProductID: prod, Quantity: 3},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if len(store.lines) != 1 {
		t.Fatalf("lines=%d, want 1", len(store.lines))
	}
	if got := store.orders[orderID].TotalAmount; got != "50" {
		t.Fatalf("total=%s, want 50", got)
	}
}

func TestAddItem_NewOrderAfterCheckout(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	prod := store.addProduct("keyboard", "50", "0")
	svc := NewService(store)
	uid := uuid.NewString()

	first, err := svc.AddItem(context.Background(), uid, prod, 1)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := svc.Checkout(context.Background(), first, "Lenina 1", "cash"); err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	second, err := svc.AddItem(context.Background(), uid, prod, 1)
	if err != nil {
		t.Fatalf("AddItem after checkout: %v", err)
	}
	if first == second {
		t.Fatalf("add after checkout reused the completed order")
	}
}
