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

var ErrBlogNotFound = errors.New("blog not found")

type BlogRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error)
	FindAll(ctx context.Context) ([]models.Blog, error)
	Insert(ctx context.Context, blog *models.Blog) error
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Blog, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoBlogRepository struct {
	col *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) BlogRepository {
	return &mongoBlogRepository{col: db.Collection("blogs")}
}

func (r *mongoBlogRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	var blog models.Blog
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&blog)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBlogNotFound
		}
		return nil, fmt.Errorf("failed to fetch blog: %w", err)
	}
	return &blog, nil
}

// FindAll lists posts newest-first.
func (r *mongoBlogRepository) FindAll(ctx context.Context) ([]models.Blog, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	defer cursor.Close(ctx)

	var blogs []models.Blog
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, fmt.Errorf("failed to decode blogs: %w", err)
	}
	return blogs, nil
}

func (r *mongoBlogRepository) Insert(ctx context.Context, blog *models.Blog) error {
	if blog.ID.IsZero() {
		blog.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, blog); err != nil {
		return fmt.Errorf("failed to insert blog: %w", err)
	}
	return nil
}

func (r *mongoBlogRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Blog, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var blog models.Blog
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&blog)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBlogNotFound
		}
		return nil, fmt.Errorf("failed to update blog: %w", err)
	}
	return &blog, nil
}

func (r *mongoBlogRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrBlogNotFound
	}
	return nil
}
