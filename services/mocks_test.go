package services

import (
	"context"
	"time"

	"github.com/HamidAbid/modifyx-backend/models"
	"github.com/HamidAbid/modifyx-backend/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockOrderRepo struct {
	orders    map[primitive.ObjectID]*models.Order
	insertErr error
	updateErr error

	insertCalls int
	findCalls   int
	updateCalls int
	lastFields  bson.M
	lastEvents  []models.TrackingEvent
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[primitive.ObjectID]*models.Order)}
}

func (m *mockOrderRepo) Insert(_ context.Context, order *models.Order) error {
	m.insertCalls++
	if m.insertErr != nil {
		return m.insertErr
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	order.RecalculateTotal()
	stored := *order
	m.orders[order.ID] = &stored
	return nil
}

func (m *mockOrderRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	m.findCalls++
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *mockOrderRepo) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	var out []models.Order
	for _, order := range m.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) FindAll(_ context.Context) ([]models.Order, error) {
	var out []models.Order
	for _, order := range m.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (m *mockOrderRepo) Update(_ context.Context, id primitive.ObjectID, fields bson.M, events []models.TrackingEvent) (*models.Order, error) {
	m.updateCalls++
	m.lastFields = fields
	m.lastEvents = events
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	applyOrderFields(order, fields)
	order.TrackingEvents = append(order.TrackingEvents, events...)
	copied := *order
	return &copied, nil
}

func applyOrderFields(order *models.Order, fields bson.M) {
	for key, value := range fields {
		switch key {
		case "status":
			order.Status = value.(models.OrderStatus)
		case "isPaid":
			order.IsPaid = value.(bool)
		case "paidAt":
			t := value.(time.Time)
			order.PaidAt = &t
		case "paymentResult":
			order.PaymentResult = value.(*models.PaymentResult)
		case "isDelivered":
			order.IsDelivered = value.(bool)
		case "deliveredAt":
			t := value.(time.Time)
			order.DeliveredAt = &t
		case "processingDate":
			t := value.(time.Time)
			order.ProcessingDate = &t
		case "shippedDate":
			t := value.(time.Time)
			order.ShippedDate = &t
		case "trackingNumber":
			order.TrackingNumber = value.(string)
		case "estimatedDelivery":
			t := value.(time.Time)
			order.EstimatedDelivery = &t
		}
	}
}

type mockCartRepo struct {
	cart     *models.Cart
	clearErr error
	cleared  []primitive.ObjectID
}

func (m *mockCartRepo) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	if m.cart == nil || m.cart.UserID != userID {
		return nil, repository.ErrCartNotFound
	}
	copied := *m.cart
	return &copied, nil
}

func (m *mockCartRepo) Save(_ context.Context, cart *models.Cart) error {
	copied := *cart
	m.cart = &copied
	return nil
}

func (m *mockCartRepo) Clear(_ context.Context, userID primitive.ObjectID) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.cleared = append(m.cleared, userID)
	if m.cart != nil && m.cart.UserID == userID {
		m.cart.Products = []models.CartItem{}
	}
	return nil
}

type mockCatalog struct {
	products map[primitive.ObjectID]*models.Product
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{products: make(map[primitive.ObjectID]*models.Product)}
}

func (m *mockCatalog) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

func (m *mockCatalog) FindAll(_ context.Context, _ bson.M) ([]models.Product, error) {
	var out []models.Product
	for _, product := range m.products {
		out = append(out, *product)
	}
	return out, nil
}

func (m *mockCatalog) Insert(_ context.Context, product *models.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	copied := *product
	m.products[product.ID] = &copied
	return nil
}

func (m *mockCatalog) Update(_ context.Context, id primitive.ObjectID, _ bson.M) (*models.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

func (m *mockCatalog) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(m.products, id)
	return nil
}

type mockGateway struct {
	sessionID string
	err       error
	calls     int
	gotItems  []CheckoutLineItem
}

func (m *mockGateway) CreateCheckoutSession(_ context.Context, items []CheckoutLineItem) (string, error) {
	m.calls++
	m.gotItems = items
	if m.err != nil {
		return "", m.err
	}
	return m.sessionID, nil
}

type mockMailer struct {
	err  error
	sent []string
}

func (m *mockMailer) SendOrderConfirmation(to string) error {
	m.sent = append(m.sent, to)
	return m.err
}
