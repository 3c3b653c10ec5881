package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/HamidAbid/modifyx-backend/database"
	"github.com/HamidAbid/modifyx-backend/models"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const adminProductPageSize = 6

type dashboardStats struct {
	TotalCustomers int64   `json:"totalCustomers"`
	TotalProducts  int64   `json:"totalProducts"`
	TotalOrders    int64   `json:"totalOrders"`
	TotalSales     float64 `json:"totalSales"`
	TotalReviews   int64   `json:"totalReviews"`
}

type dashboardOrder struct {
	ID       primitive.ObjectID `json:"id"`
	Customer string             `json:"customer"`
	Amount   float64            `json:"amount"`
	Status   models.OrderStatus `json:"status"`
	Date     string             `json:"date"`
}

type dailySale struct {
	Date  string  `bson:"_id" json:"date"`
	Total float64 `bson:"total" json:"total"`
}

type topProduct struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Sold      int64              `bson:"sold" json:"sold"`
	Sales     float64            `bson:"sales" json:"sales"`
}

// GetDashboardData assembles the admin landing-page figures: document
// counts, all-time sales, the five most recent orders, the last seven
// days of revenue, and the best-selling standard products.
func GetDashboardData(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := database.DB.Collection("users")
	products := database.DB.Collection("products")
	orders := database.DB.Collection("orders")

	totalUsers, err := users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	totalProducts, err := products.CountDocuments(ctx, bson.M{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	totalOrders, err := orders.CountDocuments(ctx, bson.M{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	totalSales, err := sumOrderTotals(ctx, orders)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	reviewCount, err := countProductReviews(ctx, products)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	recent, err := recentOrders(ctx, orders, users)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	daily, err := dailySales(ctx, orders, time.Now().AddDate(0, 0, -6))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	top, err := topSellingProducts(ctx, orders)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	var best *topProduct
	if len(top) > 0 {
		best = &top[0]
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"stats": dashboardStats{
			TotalCustomers: totalUsers,
			TotalProducts:  totalProducts,
			TotalOrders:    totalOrders,
			TotalSales:     totalSales,
			TotalReviews:   reviewCount,
		},
		"recentOrders":       recent,
		"dailySales":         daily,
		"topSellingProducts": top,
		"bestSellingProduct": best,
	})
}

func sumOrderTotals(ctx context.Context, orders *mongo.Collection) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"totalSales": bson.M{"$sum": bson.M{"$ifNull": bson.A{"$totalPrice", 0}}},
		}}},
	}
	cursor, err := orders.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		TotalSales float64 `bson:"totalSales"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].TotalSales, nil
}

func countProductReviews(ctx context.Context, products *mongo.Collection) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$project", Value: bson.M{
			"reviewCount": bson.M{"$size": bson.M{"$ifNull": bson.A{"$reviews", bson.A{}}}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$reviewCount"},
		}}},
	}
	cursor, err := products.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// recentOrders returns the five newest orders with the customer name
// resolved from the users collection; an unknown user reads "Unknown".
func recentOrders(ctx context.Context, orders, users *mongo.Collection) ([]dashboardOrder, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(5)
	cursor, err := orders.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recent []models.Order
	if err := cursor.All(ctx, &recent); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(recent))
	for _, order := range recent {
		ids = append(ids, order.UserID)
	}
	names := map[primitive.ObjectID]string{}
	if len(ids) > 0 {
		userCursor, err := users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return nil, err
		}
		defer userCursor.Close(ctx)
		var owners []models.User
		if err := userCursor.All(ctx, &owners); err != nil {
			return nil, err
		}
		for _, owner := range owners {
			names[owner.ID] = owner.Name
		}
	}

	result := make([]dashboardOrder, 0, len(recent))
	for _, order := range recent {
		customer := names[order.UserID]
		if customer == "" {
			customer = "Unknown"
		}
		result = append(result, dashboardOrder{
			ID:       order.ID,
			Customer: customer,
			Amount:   order.TotalPrice,
			Status:   order.Status,
			Date:     order.CreatedAt.Format("2006-01-02"),
		})
	}
	return result, nil
}

func dailySales(ctx context.Context, orders *mongo.Collection, since time.Time) ([]dailySale, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$createdAt"}},
			"total": bson.M{"$sum": bson.M{"$ifNull": bson.A{"$totalPrice", 0}}},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cursor, err := orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sales := []dailySale{}
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// topSellingProducts ranks standard line items by units sold; custom
// items have no catalog identity to group on.
func topSellingProducts(ctx context.Context, orders *mongo.Collection) ([]topProduct, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$match", Value: bson.M{"items.itemType": models.ItemTypeStandard}}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$items.product",
			"totalSold":  bson.M{"$sum": "$items.quantity"},
			"totalSales": bson.M{"$sum": bson.M{"$multiply": bson.A{"$items.quantity", "$items.price"}}},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "products",
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "productInfo",
		}}},
		{{Key: "$unwind", Value: "$productInfo"}},
		{{Key: "$project", Value: bson.M{
			"_id":       0,
			"productId": "$_id",
			"name":      "$productInfo.name",
			"sold":      "$totalSold",
			"sales":     bson.M{"$round": bson.A{"$totalSales", 2}},
		}}},
		{{Key: "$sort", Value: bson.M{"sold": -1}}},
		{{Key: "$limit", Value: 5}},
	}
	cursor, err := orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	top := []topProduct{}
	if err := cursor.All(ctx, &top); err != nil {
		return nil, err
	}
	return top, nil
}

// GetPaginatedProducts pages the catalog for the admin product table.
func GetPaginatedProducts(c echo.Context) error {
	page := normalizePage(c.QueryParam("page"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	products := database.DB.Collection("products")
	total, err := products.CountDocuments(ctx, bson.M{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	opts := options.Find().
		SetSkip(int64(page-1) * adminProductPageSize).
		SetLimit(adminProductPageSize).
		SetSort(bson.M{"createdAt": -1})
	cursor, err := products.Find(ctx, bson.M{}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	defer cursor.Close(ctx)

	items := []models.Product{}
	if err := cursor.All(ctx, &items); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"currentPage":   page,
		"totalPages":    pageCount(total, adminProductPageSize),
		"totalProducts": total,
		"products":      items,
	})
}

func normalizePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func pageCount(total, size int64) int64 {
	if total == 0 {
		return 0
	}
	return (total + size - 1) / size
}

type adminUser struct {
	ID     primitive.ObjectID `json:"id"`
	Name   string             `json:"name"`
	Email  string             `json:"email"`
	Date   string             `json:"date"`
	Orders int64              `json:"orders"`
}

// GetUsers lists accounts with their order counts for the admin user
// table.
func GetUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.DB.Collection("users").Find(ctx, bson.M{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	defer cursor.Close(ctx)

	var accounts []models.User
	if err := cursor.All(ctx, &accounts); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	counts, err := orderCountsByUser(ctx, database.DB.Collection("orders"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	formatted := make([]adminUser, 0, len(accounts))
	for _, account := range accounts {
		formatted = append(formatted, adminUser{
			ID:     account.ID,
			Name:   account.Name,
			Email:  account.Email,
			Date:   account.CreatedAt.Format("2006-01-02"),
			Orders: counts[account.ID],
		})
	}
	return c.JSON(http.StatusOK, formatted)
}

func orderCountsByUser(ctx context.Context, orders *mongo.Collection) (map[primitive.ObjectID]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$user",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		UserID primitive.ObjectID `bson:"_id"`
		Count  int64              `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	counts := make(map[primitive.ObjectID]int64, len(rows))
	for _, row := range rows {
		counts[row.UserID] = row.Count
	}
	return counts, nil
}

func DeleteUser(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection("users").DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "User not found"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
