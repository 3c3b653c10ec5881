package services

import (
	"context"
	"testing"
	"time"

	"github.com/HamidAbid/modifyx-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestService() (*OrderService, *mockOrderRepo, *mockCartRepo, *mockCatalog, *mockGateway, *mockMailer) {
	orders := newMockOrderRepo()
	carts := &mockCartRepo{}
	catalog := newMockCatalog()
	gateway := &mockGateway{sessionID: "sess_123"}
	mailer := &mockMailer{}
	svc := NewOrderService(orders, carts, catalog, gateway, mailer)
	return svc, orders, carts, catalog, gateway, mailer
}

func validRequest() *SubmitOrderRequest {
	return &SubmitOrderRequest{
		Items: []SubmitOrderItem{
			{
				ItemType: "standard",
				Product:  primitive.NewObjectID().Hex(),
				Name:     "Carbon Spoiler",
				Quantity: 2,
				Price:    10,
			},
		},
		Customer: SubmitOrderCustomer{Email: "buyer@example.com", Phone: "0300-1234567"},
		ShippingAddress: SubmitOrderAddress{
			Street: "12 Canal Road", City: "Lahore", State: "Punjab", Country: "Pakistan",
		},
		PaymentMethod:   "cash_on_delivery",
		ShippingCharges: 5,
	}
}

func TestSubmitOrderComputesTotal(t *testing.T) {
	svc, orders, carts, _, gateway, mailer := newTestService()
	userID := primitive.NewObjectID()

	sessionID, order, err := svc.SubmitOrder(context.Background(), userID, validRequest())
	require.NoError(t, err)

	assert.Equal(t, "sess_123", sessionID)
	assert.Equal(t, 25.0, order.TotalPrice)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentMethodCashOnDelivery, order.PaymentMethod)
	assert.False(t, order.IsPaid)
	assert.Nil(t, order.PaidAt)
	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, 1, orders.insertCalls)
	assert.Equal(t, 1, gateway.calls)
	assert.Equal(t, []string{"buyer@example.com"}, mailer.sent)
	assert.Equal(t, []primitive.ObjectID{userID}, carts.cleared)
}

func TestSubmitOrderIgnoresClientTotal(t *testing.T) {
	svc, orders, _, _, _, _ := newTestService()

	_, order, err := svc.SubmitOrder(context.Background(), primitive.NewObjectID(), validRequest())
	require.NoError(t, err)

	stored := orders.orders[order.ID]
	assert.Equal(t, 25.0, stored.TotalPrice)
}

func TestSubmitOrderCreditCardIsPaidImmediately(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()

	req := validRequest()
	req.PaymentMethod = "creditCard"
	_, order, err := svc.SubmitOrder(context.Background(), primitive.NewObjectID(), req)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentMethodCreditCard, order.PaymentMethod)
	assert.True(t, order.IsPaid)
	require.NotNil(t, order.PaidAt)
}

func TestSubmitOrderEmptyItems(t *testing.T) {
	svc, orders, _, _, gateway, _ := newTestService()

	_, _, err := svc.SubmitOrder(context.Background(), primitive.NewObjectID(), &SubmitOrderRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, orders.insertCalls)
	assert.Equal(t, 0, gateway.calls)

	_, _, err = svc.SubmitOrder(context.Background(), primitive.NewObjectID(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSubmitOrderItemMapping(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()
	productID := primitive.NewObjectID()

	req := validRequest()
	req.Items = []SubmitOrderItem{
		{ItemType: "standard", Product: productID.Hex(), Quantity: 3, Price: 7.5},
		{ItemType: "custom", Name: "Hand-painted hood", Description: "Matte black", Image: "hood.png"},
	}
	_, order, err := svc.SubmitOrder(context.Background(), primitive.NewObjectID(), req)
	require.NoError(t, err)
	require.Len(t, order.Items, 2)

	standard := order.Items[0]
	assert.Equal(t, models.ItemTypeStandard, standard.ItemType)
	assert.Equal(t, productID, standard.Product)
	assert.Nil(t, standard.CustomData)

	custom := order.Items[1]
	assert.Equal(t, models.ItemTypeCustom, custom.ItemType)
	assert.True(t, custom.Product.IsZero())
	require.NotNil(t, custom.CustomData)
	assert.Equal(t, "Hand-painted hood", custom.CustomData.Name)
	// quantity defaults to 1, price to 0
	assert.Equal(t, 1, custom.Quantity)
	assert.Equal(t, 0.0, custom.Price)
}

func TestSubmitOrderRejectsBadItems(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()

	req := validRequest()
	req.Items[0].Product = "not-an-object-id"
	_, _, err := svc.SubmitOrder(context.Background(), primitive.NewObjectID(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.Items[0].ItemType = "mystery"
	_, _, err = svc.SubmitOrder(context.Background(), primitive.NewObjectID(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.Items[0].Price = -1
	_, _, err = svc.SubmitOrder(context.Background(), primitive.NewObjectID(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSubmitOrderGatewayFailure(t *testing.T) {
	svc, orders, carts, _, gateway, _ := newTestService()
	gateway.err = assert.AnError

	_, _, err := svc.SubmitOrder(context.Background(), primitive.NewObjectID(), validRequest())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidInput)
	// the order row already exists even though the call failed
	assert.Len(t, orders.orders, 1)
	assert.Empty(t, carts.cleared)
}

func TestSubmitOrderMailFailureIsSwallowed(t *testing.T) {
	svc, _, carts, _, _, mailer := newTestService()
	mailer.err = assert.AnError
	userID := primitive.NewObjectID()

	sessionID, _, err := svc.SubmitOrder(context.Background(), userID, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "sess_123", sessionID)
	assert.Equal(t, []primitive.ObjectID{userID}, carts.cleared)
}

func TestSubmitOrderCartClearFailureIsSwallowed(t *testing.T) {
	svc, _, carts, _, _, _ := newTestService()
	carts.clearErr = assert.AnError

	sessionID, _, err := svc.SubmitOrder(context.Background(), primitive.NewObjectID(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "sess_123", sessionID)
}

func TestCheckoutLineItems(t *testing.T) {
	items := checkoutLineItems([]SubmitOrderItem{
		{Name: "Carbon Spoiler", Price: 19.99, Quantity: 2},
		{Price: 5},
	})
	require.Len(t, items, 2)

	assert.Equal(t, "Carbon Spoiler", items[0].Name)
	assert.Equal(t, int64(1999), items[0].UnitAmount)
	assert.Equal(t, int64(2), items[0].Quantity)

	assert.Equal(t, "Unnamed Product", items[1].Name)
	assert.Equal(t, int64(500), items[1].UnitAmount)
	assert.Equal(t, int64(1), items[1].Quantity)
}

func seedOrder(orders *mockOrderRepo) primitive.ObjectID {
	id := primitive.NewObjectID()
	orders.orders[id] = &models.Order{
		ID:             id,
		UserID:         primitive.NewObjectID(),
		Status:         models.OrderStatusPending,
		TrackingEvents: []models.TrackingEvent{},
	}
	return id
}

func TestMarkPaid(t *testing.T) {
	svc, orders, _, _, _, _ := newTestService()
	id := seedOrder(orders)

	result := &models.PaymentResult{ID: "pi_1", Status: "succeeded"}
	order, err := svc.MarkPaid(context.Background(), id, result)
	require.NoError(t, err)

	assert.True(t, order.IsPaid)
	require.NotNil(t, order.PaidAt)
	assert.Equal(t, result, order.PaymentResult)
	// mark paid appends no tracking event
	assert.Empty(t, order.TrackingEvents)
	assert.Empty(t, orders.lastEvents)
}

func TestMarkProcessing(t *testing.T) {
	svc, orders, _, _, _, _ := newTestService()
	id := seedOrder(orders)

	order, err := svc.MarkProcessing(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	require.NotNil(t, order.ProcessingDate)
	require.Len(t, order.TrackingEvents, 1)
	assert.Equal(t, "Order is being processed", order.TrackingEvents[0].Description)
	assert.Equal(t, "Processing Center", order.TrackingEvents[0].Location)
}

func TestMarkShipped(t *testing.T) {
	svc, orders, _, _, _, _ := newTestService()
	id := seedOrder(orders)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	order, err := svc.MarkShipped(context.Background(), id, "TRK1", 2, "")
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusShipped, order.Status)
	assert.Equal(t, "TRK1", order.TrackingNumber)
	require.NotNil(t, order.EstimatedDelivery)
	assert.Equal(t, now.AddDate(0, 0, 2), *order.EstimatedDelivery)
	require.Len(t, order.TrackingEvents, 1)
	assert.Equal(t, "Order has been shipped", order.TrackingEvents[0].Description)
	assert.Equal(t, "Shipping Center", order.TrackingEvents[0].Location)
}

func TestMarkShippedDefaultsEstimatedDays(t *testing.T) {
	svc, orders, _, _, _, _ := newTestService()
	id := seedOrder(orders)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	order, err := svc.MarkShipped(context.Background(), id, "TRK1", 0, "Karachi Depot")
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, 3), *order.EstimatedDelivery)
	assert.Equal(t, "Karachi Depot", order.TrackingEvents[0].Location)
}

func TestMarkShippedRequiresTrackingNumber(t *testing.T) {
	svc, orders, _, _, _, _ := newTestService()
	id := seedOrder(orders)

	_, err := svc.MarkShipped(context.Background(), id, "", 2, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	// validation failure must not touch the order
	assert.Equal(t, 0, orders.updateCalls)
	assert.Empty(t, orders.orders[id].TrackingEvents)
}

func TestMarkDelivered(t *testing.T) {
	svc, orders, _, _, _, _ := newTestService()
	id := seedOrder(orders)

	order, err := svc.MarkDelivered(context.Background(), id, "")
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusDelivered, order.Status)
	assert.True(t, order.IsDelivered)
	require.NotNil(t, order.DeliveredAt)
	require.Len(t, order.TrackingEvents, 1)
	assert.Equal(t, "Order has been delivered", order.TrackingEvents[0].Description)
	assert.Equal(t, "Destination", order.TrackingEvents[0].Location)
}

func TestTransitionsOnMissingOrder(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()
	id := primitive.NewObjectID()

	_, err := svc.MarkPaid(context.Background(), id, nil)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.MarkProcessing(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.MarkShipped(context.Background(), id, "TRK1", 0, "")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.MarkDelivered(context.Background(), id, "")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.AddTrackingEvent(context.Background(), id, "note", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddTrackingEvent(t *testing.T) {
	svc, orders, _, _, _, _ := newTestService()
	id := seedOrder(orders)

	order, err := svc.AddTrackingEvent(context.Background(), id, "Package left warehouse", "Lahore")
	require.NoError(t, err)

	require.Len(t, order.TrackingEvents, 1)
	assert.Equal(t, "Package left warehouse", order.TrackingEvents[0].Description)
	assert.Equal(t, "Lahore", order.TrackingEvents[0].Location)
	// no status change implied
	assert.Equal(t, models.OrderStatusPending, order.Status)
}

func TestAddTrackingEventRequiresDescription(t *testing.T) {
	svc, orders, _, _, _, _ := newTestService()
	id := seedOrder(orders)

	_, err := svc.AddTrackingEvent(context.Background(), id, "", "Lahore")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, orders.updateCalls)
}

func TestTrackingEventTimestampsMonotonic(t *testing.T) {
	svc, orders, _, _, _, _ := newTestService()
	id := seedOrder(orders)

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time {
		current = current.Add(time.Minute)
		return current
	}

	_, err := svc.MarkProcessing(context.Background(), id)
	require.NoError(t, err)
	_, err = svc.MarkShipped(context.Background(), id, "TRK1", 0, "")
	require.NoError(t, err)
	order, err := svc.MarkDelivered(context.Background(), id, "")
	require.NoError(t, err)

	require.Len(t, order.TrackingEvents, 3)
	for i := 1; i < len(order.TrackingEvents); i++ {
		assert.False(t, order.TrackingEvents[i].Date.Before(order.TrackingEvents[i-1].Date))
	}
}

func TestGetOrderAuthorization(t *testing.T) {
	svc, orders, _, _, _, _ := newTestService()
	id := seedOrder(orders)
	owner := orders.orders[id].UserID
	stranger := primitive.NewObjectID()

	_, err := svc.GetOrder(context.Background(), id, owner, false)
	assert.NoError(t, err)

	_, err = svc.GetOrder(context.Background(), id, stranger, false)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetOrder(context.Background(), id, stranger, true)
	assert.NoError(t, err)

	_, err = svc.GetOrder(context.Background(), primitive.NewObjectID(), owner, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTrackOrderRejectsMalformedID(t *testing.T) {
	svc, orders, _, _, _, _ := newTestService()

	for _, id := range []string{"", "abc", "zzzzzzzzzzzzzzzzzzzzzzzz", "0123456789abcdef0123456789abcdef"} {
		_, err := svc.TrackOrder(context.Background(), id)
		assert.ErrorIs(t, err, ErrInvalidInput, "id %q", id)
	}
	// the shape check runs before any store lookup
	assert.Equal(t, 0, orders.findCalls)
}

func TestTrackOrderNotFound(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()

	_, err := svc.TrackOrder(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTrackOrderProjection(t *testing.T) {
	svc, orders, _, catalog, _, _ := newTestService()

	product := &models.Product{
		ID:    primitive.NewObjectID(),
		Name:  "Carbon Spoiler",
		Image: "spoiler.png",
		Price: 120,
	}
	catalog.products[product.ID] = product

	id := primitive.NewObjectID()
	orders.orders[id] = &models.Order{
		ID:     id,
		UserID: primitive.NewObjectID(),
		Status: models.OrderStatusShipped,
		Items: []models.OrderItem{
			{ItemType: models.ItemTypeStandard, Product: product.ID, Quantity: 1, Price: 120},
			{ItemType: models.ItemTypeCustom, CustomData: &models.CustomItemData{Name: "Decal set"}, Quantity: 2, Price: 15},
		},
		TotalPrice:     150,
		TrackingEvents: []models.TrackingEvent{{Date: time.Now(), Description: "Order has been shipped"}},
	}

	info, err := svc.TrackOrder(context.Background(), id.Hex())
	require.NoError(t, err)

	assert.Equal(t, id, info.OrderID)
	assert.Equal(t, models.OrderStatusShipped, info.Status)
	assert.Equal(t, 150.0, info.TotalPrice)
	require.Len(t, info.Items, 2)

	standard := info.Items[0]
	require.NotNil(t, standard.Product)
	assert.Equal(t, "Carbon Spoiler", standard.Product.Name)
	assert.Equal(t, "spoiler.png", standard.Product.Image)
	assert.Equal(t, 120.0, standard.Product.Price)
	assert.Nil(t, standard.CustomData)

	custom := info.Items[1]
	assert.Nil(t, custom.Product)
	require.NotNil(t, custom.CustomData)
	assert.Equal(t, "Decal set", custom.CustomData.Name)
}

func TestTrackOrderUnresolvedProduct(t *testing.T) {
	svc, orders, _, _, _, _ := newTestService()

	id := primitive.NewObjectID()
	orders.orders[id] = &models.Order{
		ID:     id,
		UserID: primitive.NewObjectID(),
		Status: models.OrderStatusPending,
		Items: []models.OrderItem{
			{ItemType: models.ItemTypeStandard, Product: primitive.NewObjectID(), Quantity: 1, Price: 10},
		},
	}

	info, err := svc.TrackOrder(context.Background(), id.Hex())
	require.NoError(t, err)
	require.Len(t, info.Items, 1)
	assert.Nil(t, info.Items[0].Product)
}
