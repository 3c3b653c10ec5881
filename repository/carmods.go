package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/HamidAbid/modifyx-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrCarModNotFound = errors.New("car modification request not found")

type CarModRepository interface {
	Insert(ctx context.Context, req *models.CarModRequest) error
	FindAll(ctx context.Context) ([]models.CarModRequest, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.CarModStatus) (*models.CarModRequest, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoCarModRepository struct {
	col *mongo.Collection
}

func NewCarModRepository(db *mongo.Database) CarModRepository {
	return &mongoCarModRepository{col: db.Collection("carmodrequests")}
}

func (r *mongoCarModRepository) Insert(ctx context.Context, req *models.CarModRequest) error {
	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to insert car mod request: %w", err)
	}
	return nil
}

// FindAll lists requests newest-first.
func (r *mongoCarModRepository) FindAll(ctx context.Context) ([]models.CarModRequest, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list car mod requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.CarModRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode car mod requests: %w", err)
	}
	return requests, nil
}

func (r *mongoCarModRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.CarModStatus) (*models.CarModRequest, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var req models.CarModRequest
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}}, opts).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCarModNotFound
		}
		return nil, fmt.Errorf("failed to update car mod request: %w", err)
	}
	return &req, nil
}

func (r *mongoCarModRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete car mod request: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrCarModNotFound
	}
	return nil
}
