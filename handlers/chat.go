package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/HamidAbid/modifyx-backend/chat"
	"github.com/HamidAbid/modifyx-backend/database"
	"github.com/HamidAbid/modifyx-backend/models"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChatHub is wired in main.
var ChatHub *chat.Hub

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ChatSocket upgrades the connection, joins the chat room and relays
// incoming messages to every member after persisting them.
func ChatSocket(c echo.Context) error {
	chatID := c.Param("chatId")
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ChatHub.Join(chatID, conn)
	defer ChatHub.Leave(chatID, conn)

	for {
		var incoming struct {
			SenderID   string `json:"senderId"`
			ReceiverID string `json:"receiverId"`
			Message    string `json:"message"`
		}
		if err := conn.ReadJSON(&incoming); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Chat read error: %v", err)
			}
			return nil
		}
		if incoming.Message == "" {
			continue
		}

		message := models.Message{
			ID:         primitive.NewObjectID(),
			ChatID:     chatID,
			SenderID:   incoming.SenderID,
			ReceiverID: incoming.ReceiverID,
			Message:    incoming.Message,
			CreatedAt:  time.Now(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if _, err := database.DB.Collection("messages").InsertOne(ctx, message); err != nil {
			log.Printf("Failed to save chat message: %v", err)
		}
		cancel()

		ChatHub.Broadcast(chatID, message)
	}
}

// GetChatMessages returns a room's history, oldest first.
func GetChatMessages(c echo.Context) error {
	chatID := c.Param("chatId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := database.DB.Collection("messages").Find(ctx, bson.M{"chatId": chatID}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch messages"})
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to decode messages"})
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return c.JSON(http.StatusOK, messages)
}
