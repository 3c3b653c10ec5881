package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/HamidAbid/modifyx-backend/models"
	"github.com/HamidAbid/modifyx-backend/repository"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CarMods is wired in main.
var CarMods repository.CarModRepository

// CreateCarModRequest records a modification inquiry for a car package.
func CreateCarModRequest(c echo.Context) error {
	var req struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		Phone      string `json:"phone"`
		CarPackage string `json:"carPackage"`
		Message    string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.CarPackage == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Missing required fields"})
	}

	request := models.CarModRequest{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		CarPackage: req.CarPackage,
		Message:    req.Message,
		Status:     models.CarModPending,
		CreatedAt:  time.Now(),
	}
	if userID, ok := c.Get("userID").(primitive.ObjectID); ok {
		request.User = userID
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := CarMods.Insert(ctx, &request); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error. Please try again."})
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Request submitted successfully",
		"request": request,
	})
}

func GetCarModRequests(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	requests, err := CarMods.FindAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch car mod requests"})
	}
	if requests == nil {
		requests = []models.CarModRequest{}
	}
	return c.JSON(http.StatusOK, requests)
}

func UpdateCarModRequestStatus(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request ID"})
	}

	var body struct {
		Status models.CarModStatus `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if !models.ValidCarModStatus(body.Status) {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid status value. Must be one of: pending, reviewed, accepted, rejected"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	request, err := CarMods.UpdateStatus(ctx, objID, body.Status)
	if err != nil {
		if errors.Is(err, repository.ErrCarModNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "Car Modification Request not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update status"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Status updated successfully",
		"request": request,
	})
}

func DeleteCarModRequest(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := CarMods.Delete(ctx, objID); err != nil {
		if errors.Is(err, repository.ErrCarModNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "Car Modification Request not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete request"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Car Modification Request deleted successfully"})
}
