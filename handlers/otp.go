package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/HamidAbid/modifyx-backend/database"
	"github.com/HamidAbid/modifyx-backend/models"
	"github.com/HamidAbid/modifyx-backend/utils"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
)

// OTPs and Mail are wired in main.
var (
	OTPs *utils.OTPStore
	Mail *utils.Mailer
)

// SendOTP mails a password-reset code to a registered user.
func SendOTP(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email is required."})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.DB.Collection("users").FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found with this email."})
	}

	code, err := OTPs.Generate(req.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to send OTP."})
	}
	if err := Mail.SendOTP(req.Email, code); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to send OTP."})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "OTP sent to your email."})
}

// VerifyOTP checks and consumes a previously issued code.
func VerifyOTP(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := c.Bind(&req); err != nil || req.Email == "" || req.OTP == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email and OTP are required."})
	}

	if !OTPs.Verify(req.Email, req.OTP) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid or expired OTP."})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "OTP verified."})
}
