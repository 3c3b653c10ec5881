package database

import (
	"context"
	"log"
	"time"

	"github.com/HamidAbid/modifyx-backend/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var DB *mongo.Database

func ConnectDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(config.GetEnv("MONGODB_URI", "mongodb://localhost:27017")).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return err
	}

	// Ping the database
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	DB = client.Database(config.GetEnv("MONGODB_DATABASE", "modifyx"))
	log.Println("Connected to MongoDB")
	return nil
}
