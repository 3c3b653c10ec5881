package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/HamidAbid/modifyx-backend/models"
	"github.com/HamidAbid/modifyx-backend/repository"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Carts is wired in main.
var Carts repository.CartRepository

func cartContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// GetCart returns the user's pending items; an absent cart reads as
// empty.
func GetCart(c echo.Context) error {
	userID, ok := c.Get("userID").(primitive.ObjectID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not authenticated"})
	}

	ctx, cancel := cartContext()
	defer cancel()

	cart, err := Carts.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return c.JSON(http.StatusOK, []models.CartItem{})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch cart"})
	}
	return c.JSON(http.StatusOK, cart.Products)
}

// AddToCart appends a standard or custom item. Standard items merge
// quantities with an existing line for the same product.
func AddToCart(c echo.Context) error {
	userID, ok := c.Get("userID").(primitive.ObjectID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not authenticated"})
	}

	var req struct {
		ItemType   string                 `json:"itemType"`
		ProductID  string                 `json:"productId"`
		Quantity   int                    `json:"quantity"`
		CustomData *models.CustomItemData `json:"customData"`
		Price      float64                `json:"price"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	ctx, cancel := cartContext()
	defer cancel()

	cart, err := Carts.FindByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrCartNotFound) {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch cart"})
		}
		cart = &models.Cart{UserID: userID, Products: []models.CartItem{}}
	}

	switch models.ItemType(req.ItemType) {
	case models.ItemTypeStandard:
		productID, err := primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid productId"})
		}
		merged := false
		for i := range cart.Products {
			if cart.Products[i].ItemType == models.ItemTypeStandard && cart.Products[i].Product == productID {
				cart.Products[i].Quantity += req.Quantity
				merged = true
				break
			}
		}
		if !merged {
			cart.Products = append(cart.Products, models.CartItem{
				ItemType: models.ItemTypeStandard,
				Product:  productID,
				Quantity: req.Quantity,
			})
		}
	case models.ItemTypeCustom:
		if req.CustomData == nil || req.CustomData.Name == "" || req.Price <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Incomplete custom data"})
		}
		cart.Products = append(cart.Products, models.CartItem{
			ItemType:   models.ItemTypeCustom,
			CustomData: req.CustomData,
			Quantity:   req.Quantity,
			Price:      req.Price,
		})
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid itemType"})
	}

	if err := Carts.Save(ctx, cart); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save cart"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"cart": cart})
}

// RemoveFromCart deletes a line item. Custom items are addressed by
// positional id "custom-<index>", standard items by product id.
func RemoveFromCart(c echo.Context) error {
	userID, ok := c.Get("userID").(primitive.ObjectID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not authenticated"})
	}
	itemID := c.Param("productId")

	ctx, cancel := cartContext()
	defer cancel()

	cart, err := Carts.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Cart not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch cart"})
	}

	if strings.HasPrefix(itemID, "custom-") {
		index, err := strconv.Atoi(strings.TrimPrefix(itemID, "custom-"))
		if err != nil || index < 0 || index >= len(cart.Products) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid item reference"})
		}
		cart.Products = append(cart.Products[:index], cart.Products[index+1:]...)
	} else {
		productID, err := primitive.ObjectIDFromHex(itemID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
		}
		kept := cart.Products[:0]
		for _, item := range cart.Products {
			if item.ItemType == models.ItemTypeStandard && item.Product == productID {
				continue
			}
			kept = append(kept, item)
		}
		cart.Products = kept
	}

	if err := Carts.Save(ctx, cart); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save cart"})
	}
	return c.JSON(http.StatusOK, cart.Products)
}

// UpdateCartItemQuantity sets the quantity of a standard line item.
func UpdateCartItemQuantity(c echo.Context) error {
	userID, ok := c.Get("userID").(primitive.ObjectID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not authenticated"})
	}

	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if req.Quantity < 1 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Quantity must be at least 1"})
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}

	ctx, cancel := cartContext()
	defer cancel()

	cart, err := Carts.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Cart not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch cart"})
	}

	updated := false
	for i := range cart.Products {
		if cart.Products[i].ItemType == models.ItemTypeStandard && cart.Products[i].Product == productID {
			cart.Products[i].Quantity = req.Quantity
			updated = true
			break
		}
	}
	if !updated {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Item not found in cart"})
	}

	if err := Carts.Save(ctx, cart); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save cart"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Quantity updated successfully"})
}

// ClearCart empties the cart's products array.
func ClearCart(c echo.Context) error {
	userID, ok := c.Get("userID").(primitive.ObjectID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not authenticated"})
	}

	ctx, cancel := cartContext()
	defer cancel()

	if err := Carts.Clear(ctx, userID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to clear cart"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Cart cleared"})
}
