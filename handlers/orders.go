package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/HamidAbid/modifyx-backend/models"
	"github.com/HamidAbid/modifyx-backend/services"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderSvc is wired in main after the database connection is up.
var OrderSvc *services.OrderService

func orderContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func orderError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Order not found"})
	case errors.Is(err, services.ErrForbidden):
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Not authorized"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error", "error": err.Error()})
	}
}

func principal(c echo.Context) (primitive.ObjectID, bool, bool) {
	userID, ok := c.Get("userID").(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, false, false
	}
	role, _ := c.Get("userRole").(string)
	return userID, role == models.RoleAdmin, true
}

// SubmitOrder handles POST /api/orders/payment: persists the order,
// creates the checkout session and returns its id.
func SubmitOrder(c echo.Context) error {
	userID, _, ok := principal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not authenticated"})
	}

	var req struct {
		OrderData *services.SubmitOrderRequest `json:"orderData"`
	}
	if err := c.Bind(&req); err != nil || req.OrderData == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order data"})
	}

	ctx, cancel := orderContext()
	defer cancel()

	sessionID, _, err := OrderSvc.SubmitOrder(ctx, userID, req.OrderData)
	if err != nil {
		return orderError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"id": sessionID})
}

// GetOrderByID returns a single order to its owner or an admin.
func GetOrderByID(c echo.Context) error {
	userID, isAdmin, ok := principal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not authenticated"})
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order ID"})
	}

	ctx, cancel := orderContext()
	defer cancel()

	order, err := OrderSvc.GetOrder(ctx, orderID, userID, isAdmin)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// GetMyOrders lists the requester's orders, newest first.
func GetMyOrders(c echo.Context) error {
	userID, _, ok := principal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not authenticated"})
	}

	ctx, cancel := orderContext()
	defer cancel()

	orders, err := OrderSvc.ListUserOrders(ctx, userID)
	if err != nil {
		return orderError(c, err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}

// GetOrders lists every order for the admin dashboard, newest first.
func GetOrders(c echo.Context) error {
	ctx, cancel := orderContext()
	defer cancel()

	orders, err := OrderSvc.ListAllOrders(ctx)
	if err != nil {
		return orderError(c, err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateOrderToPaid records payment-result metadata on the order.
func UpdateOrderToPaid(c echo.Context) error {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order ID"})
	}

	var result models.PaymentResult
	if err := c.Bind(&result); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	ctx, cancel := orderContext()
	defer cancel()

	order, err := OrderSvc.MarkPaid(ctx, orderID, &result)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func UpdateOrderToProcessing(c echo.Context) error {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order ID"})
	}

	ctx, cancel := orderContext()
	defer cancel()

	order, err := OrderSvc.MarkProcessing(ctx, orderID)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func UpdateOrderToShipped(c echo.Context) error {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order ID"})
	}

	var req struct {
		TrackingNumber string `json:"trackingNumber"`
		EstimatedDays  int    `json:"estimatedDays"`
		Location       string `json:"location"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	ctx, cancel := orderContext()
	defer cancel()

	order, err := OrderSvc.MarkShipped(ctx, orderID, req.TrackingNumber, req.EstimatedDays, req.Location)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func UpdateOrderToDelivered(c echo.Context) error {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order ID"})
	}

	var req struct {
		Location string `json:"location"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	ctx, cancel := orderContext()
	defer cancel()

	order, err := OrderSvc.MarkDelivered(ctx, orderID, req.Location)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// AddTrackingEvent appends an admin-supplied tracking note without a
// status change.
func AddTrackingEvent(c echo.Context) error {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order ID"})
	}

	var req struct {
		Description string `json:"description"`
		Location    string `json:"location"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	ctx, cancel := orderContext()
	defer cancel()

	order, err := OrderSvc.AddTrackingEvent(ctx, orderID, req.Description, req.Location)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// TrackOrder is the public tracking projection. The id shape is checked
// before any store lookup.
func TrackOrder(c echo.Context) error {
	ctx, cancel := orderContext()
	defer cancel()

	info, err := OrderSvc.TrackOrder(ctx, c.Param("trackingId"))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(http.StatusOK, info)
}
