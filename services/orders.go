package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"regexp"
	"time"

	"github.com/HamidAbid/modifyx-backend/models"
	"github.com/HamidAbid/modifyx-backend/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidInput = errors.New("invalid order data")
	ErrNotFound     = errors.New("order not found")
	ErrForbidden    = errors.New("not authorized")
)

var trackingIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// CheckoutLineItem is one line of the external payment session request.
// Unit amounts are in integer minor-currency units.
type CheckoutLineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

// PaymentGateway creates a hosted checkout session and returns its
// redirect identifier.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, items []CheckoutLineItem) (string, error)
}

// Mailer delivers best-effort notifications. Errors are logged by the
// caller, never surfaced to the buyer.
type Mailer interface {
	SendOrderConfirmation(to string) error
}

// OrderService orchestrates the checkout workflow, the status
// transitions and the public tracking projection.
type OrderService struct {
	Orders  repository.OrderRepository
	Carts   repository.CartRepository
	Catalog repository.ProductRepository
	Gateway PaymentGateway
	Mail    Mailer

	// Now is swappable for tests.
	Now func() time.Time
}

func NewOrderService(orders repository.OrderRepository, carts repository.CartRepository, catalog repository.ProductRepository, gateway PaymentGateway, mail Mailer) *OrderService {
	return &OrderService{
		Orders:  orders,
		Carts:   carts,
		Catalog: catalog,
		Gateway: gateway,
		Mail:    mail,
		Now:     time.Now,
	}
}

type SubmitOrderItem struct {
	ItemType    string  `json:"itemType"`
	Product     string  `json:"product"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type SubmitOrderCustomer struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type SubmitOrderAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// SubmitOrderRequest mirrors the client's orderData payload.
type SubmitOrderRequest struct {
	Items           []SubmitOrderItem   `json:"items"`
	Customer        SubmitOrderCustomer `json:"customer"`
	ShippingAddress SubmitOrderAddress  `json:"shippingAddress"`
	PaymentMethod   string              `json:"paymentMethod"`
	ShippingCharges float64             `json:"shippingCharges"`
}

// SubmitOrder runs the checkout workflow: validate, persist the order,
// create the payment session, send the confirmation email and clear the
// cart. The email and cart-clear steps are best-effort; a gateway
// failure after the order is persisted leaves the order in place.
func (s *OrderService) SubmitOrder(ctx context.Context, userID primitive.ObjectID, data *SubmitOrderRequest) (string, *models.Order, error) {
	if data == nil || len(data.Items) == 0 {
		return "", nil, fmt.Errorf("%w: items are required", ErrInvalidInput)
	}

	items, err := buildOrderItems(data.Items)
	if err != nil {
		return "", nil, err
	}

	now := s.Now()
	method := normalizePaymentMethod(data.PaymentMethod)
	order := &models.Order{
		UserID:          userID,
		Items:           items,
		Email:           data.Customer.Email,
		PhoneNumber:     data.Customer.Phone,
		ShippingAddress: buildShippingAddress(data.ShippingAddress),
		PaymentMethod:   method,
		ShippingCharges: data.ShippingCharges,
		Status:          models.OrderStatusPending,
		IsPaid:          method == models.PaymentMethodCreditCard,
		TrackingEvents:  []models.TrackingEvent{},
		CreatedAt:       now,
	}
	if order.IsPaid {
		order.PaidAt = &now
	}
	order.RecalculateTotal()

	if err := s.Orders.Insert(ctx, order); err != nil {
		return "", nil, err
	}

	sessionID, err := s.Gateway.CreateCheckoutSession(ctx, checkoutLineItems(data.Items))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create payment session: %w", err)
	}

	if err := s.Mail.SendOrderConfirmation(data.Customer.Email); err != nil {
		log.Printf("Failed to send order confirmation to %s: %v", data.Customer.Email, err)
	}

	if err := s.Carts.Clear(ctx, userID); err != nil {
		log.Printf("Failed to clear cart after order creation: %v", err)
	}

	return sessionID, order, nil
}

// buildOrderItems maps client items into persisted line items, enforcing
// the standard/custom mutual exclusion. Quantity defaults to 1 and price
// to 0 when absent.
func buildOrderItems(items []SubmitOrderItem) ([]models.OrderItem, error) {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		price := item.Price
		if price < 0 {
			return nil, fmt.Errorf("%w: item price cannot be negative", ErrInvalidInput)
		}

		switch models.ItemType(item.ItemType) {
		case models.ItemTypeStandard:
			productID, err := primitive.ObjectIDFromHex(item.Product)
			if err != nil {
				return nil, fmt.Errorf("%w: standard item requires a valid product id", ErrInvalidInput)
			}
			out = append(out, models.OrderItem{
				ItemType: models.ItemTypeStandard,
				Product:  productID,
				Quantity: quantity,
				Price:    price,
			})
		case models.ItemTypeCustom:
			out = append(out, models.OrderItem{
				ItemType: models.ItemTypeCustom,
				CustomData: &models.CustomItemData{
					Name:        item.Name,
					Description: item.Description,
					Image:       item.Image,
				},
				Quantity: quantity,
				Price:    price,
			})
		default:
			return nil, fmt.Errorf("%w: unknown item type %q", ErrInvalidInput, item.ItemType)
		}
	}
	return out, nil
}

// checkoutLineItems converts client items into gateway lines, one per
// order line, with unit amounts in cents.
func checkoutLineItems(items []SubmitOrderItem) []CheckoutLineItem {
	out := make([]CheckoutLineItem, 0, len(items))
	for _, item := range items {
		name := item.Name
		if name == "" {
			name = "Unnamed Product"
		}
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		out = append(out, CheckoutLineItem{
			Name:       name,
			UnitAmount: int64(math.Round(item.Price * 100)),
			Quantity:   int64(quantity),
		})
	}
	return out
}

func buildShippingAddress(addr SubmitOrderAddress) models.ShippingAddress {
	state := addr.State
	if state == "" {
		state = "N/A"
	}
	country := addr.Country
	if country == "" {
		country = "Pakistan"
	}
	return models.ShippingAddress{
		Street:  addr.Street,
		City:    addr.City,
		State:   state,
		ZipCode: addr.ZipCode,
		Country: country,
	}
}

func normalizePaymentMethod(method string) models.PaymentMethod {
	switch method {
	case "credit_card", "creditCard":
		return models.PaymentMethodCreditCard
	case "paypal":
		return models.PaymentMethodPaypal
	default:
		return models.PaymentMethodCashOnDelivery
	}
}

// GetOrder returns an order to its owner or an administrator.
func (s *OrderService) GetOrder(ctx context.Context, id, requesterID primitive.ObjectID, isAdmin bool) (*models.Order, error) {
	order, err := s.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if order.UserID != requesterID && !isAdmin {
		return nil, ErrForbidden
	}
	return order, nil
}

// ListUserOrders returns the requester's orders, newest first.
func (s *OrderService) ListUserOrders(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.Orders.FindByUser(ctx, userID)
}

// ListAllOrders returns every order, newest first.
func (s *OrderService) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.Orders.FindAll(ctx)
}

// MarkPaid records the payment-result metadata. No tracking event is
// appended.
func (s *OrderService) MarkPaid(ctx context.Context, id primitive.ObjectID, result *models.PaymentResult) (*models.Order, error) {
	now := s.Now()
	fields := bson.M{
		"isPaid": true,
		"paidAt": now,
	}
	if result != nil {
		fields["paymentResult"] = result
	}
	order, err := s.Orders.Update(ctx, id, fields, nil)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return order, nil
}

func (s *OrderService) MarkProcessing(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	now := s.Now()
	fields := bson.M{
		"status":         models.OrderStatusProcessing,
		"processingDate": now,
	}
	event := models.TrackingEvent{
		Date:        now,
		Description: "Order is being processed",
		Location:    "Processing Center",
	}
	order, err := s.Orders.Update(ctx, id, fields, []models.TrackingEvent{event})
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return order, nil
}

// MarkShipped requires a tracking number and stamps the estimated
// delivery date (estimatedDays defaults to 3). The order is not touched
// when validation fails.
func (s *OrderService) MarkShipped(ctx context.Context, id primitive.ObjectID, trackingNumber string, estimatedDays int, location string) (*models.Order, error) {
	if trackingNumber == "" {
		return nil, fmt.Errorf("%w: tracking number is required", ErrInvalidInput)
	}
	if estimatedDays <= 0 {
		estimatedDays = 3
	}
	if location == "" {
		location = "Shipping Center"
	}

	now := s.Now()
	estimated := now.AddDate(0, 0, estimatedDays)
	fields := bson.M{
		"status":            models.OrderStatusShipped,
		"shippedDate":       now,
		"trackingNumber":    trackingNumber,
		"estimatedDelivery": estimated,
	}
	event := models.TrackingEvent{
		Date:        now,
		Description: "Order has been shipped",
		Location:    location,
	}
	order, err := s.Orders.Update(ctx, id, fields, []models.TrackingEvent{event})
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return order, nil
}

func (s *OrderService) MarkDelivered(ctx context.Context, id primitive.ObjectID, location string) (*models.Order, error) {
	if location == "" {
		location = "Destination"
	}

	now := s.Now()
	fields := bson.M{
		"status":      models.OrderStatusDelivered,
		"isDelivered": true,
		"deliveredAt": now,
	}
	event := models.TrackingEvent{
		Date:        now,
		Description: "Order has been delivered",
		Location:    location,
	}
	order, err := s.Orders.Update(ctx, id, fields, []models.TrackingEvent{event})
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return order, nil
}

// AddTrackingEvent appends an administrator-supplied event without
// changing the order status.
func (s *OrderService) AddTrackingEvent(ctx context.Context, id primitive.ObjectID, description, location string) (*models.Order, error) {
	if description == "" {
		return nil, fmt.Errorf("%w: description is required for tracking event", ErrInvalidInput)
	}
	event := models.TrackingEvent{
		Date:        s.Now(),
		Description: description,
		Location:    location,
	}
	order, err := s.Orders.Update(ctx, id, nil, []models.TrackingEvent{event})
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return order, nil
}

// ProductSnapshot is the catalog view exposed by the public tracking
// projection for standard items.
type ProductSnapshot struct {
	Name  string  `json:"name"`
	Image string  `json:"image"`
	Price float64 `json:"price"`
}

type TrackedItem struct {
	ItemType   models.ItemType        `json:"itemType"`
	Quantity   int                    `json:"quantity"`
	Price      float64                `json:"price"`
	Product    *ProductSnapshot       `json:"product"`
	CustomData *models.CustomItemData `json:"customData"`
}

// TrackingInfo is the read-only public projection of an order. It never
// exposes internal product references.
type TrackingInfo struct {
	OrderID           primitive.ObjectID     `json:"orderId"`
	Status            models.OrderStatus     `json:"status"`
	IsPaid            bool                   `json:"isPaid"`
	Email             string                 `json:"email"`
	PhoneNumber       string                 `json:"phoneNumber"`
	IsDelivered       bool                   `json:"isDelivered"`
	CreatedAt         time.Time              `json:"createdAt"`
	ProcessingDate    *time.Time             `json:"processingDate"`
	ShippedDate       *time.Time             `json:"shippedDate"`
	DeliveredAt       *time.Time             `json:"deliveredAt"`
	EstimatedDelivery *time.Time             `json:"estimatedDelivery"`
	ShippingAddress   models.ShippingAddress `json:"shippingAddress"`
	TotalPrice        float64                `json:"totalPrice"`
	TrackingEvents    []models.TrackingEvent `json:"trackingEvents"`
	Items             []TrackedItem          `json:"items"`
}

// TrackOrder validates the identifier shape before any store lookup and
// builds the public projection, resolving standard items against the
// catalog for their name/image/price snapshot.
func (s *OrderService) TrackOrder(ctx context.Context, trackingID string) (*TrackingInfo, error) {
	if !trackingIDPattern.MatchString(trackingID) {
		return nil, fmt.Errorf("%w: invalid tracking ID format", ErrInvalidInput)
	}

	id, err := primitive.ObjectIDFromHex(trackingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid tracking ID format", ErrInvalidInput)
	}

	order, err := s.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	info := &TrackingInfo{
		OrderID:           order.ID,
		Status:            order.Status,
		IsPaid:            order.IsPaid,
		Email:             order.Email,
		PhoneNumber:       order.PhoneNumber,
		IsDelivered:       order.IsDelivered,
		CreatedAt:         order.CreatedAt,
		ProcessingDate:    order.ProcessingDate,
		ShippedDate:       order.ShippedDate,
		DeliveredAt:       order.DeliveredAt,
		EstimatedDelivery: order.EstimatedDelivery,
		ShippingAddress:   order.ShippingAddress,
		TotalPrice:        order.TotalPrice,
		TrackingEvents:    order.TrackingEvents,
		Items:             make([]TrackedItem, 0, len(order.Items)),
	}

	for _, item := range order.Items {
		tracked := TrackedItem{
			ItemType: item.ItemType,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
		switch item.ItemType {
		case models.ItemTypeStandard:
			product, err := s.Catalog.FindByID(ctx, item.Product)
			if err != nil {
				log.Printf("Failed to resolve product %s for tracking view: %v", item.Product.Hex(), err)
			} else {
				tracked.Product = &ProductSnapshot{
					Name:  product.Name,
					Image: product.Image,
					Price: product.Price,
				}
			}
		case models.ItemTypeCustom:
			tracked.CustomData = item.CustomData
		}
		info.Items = append(info.Items, tracked)
	}

	return info, nil
}

func mapStoreErr(err error) error {
	if errors.Is(err, repository.ErrOrderNotFound) {
		return ErrNotFound
	}
	return err
}
