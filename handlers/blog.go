package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/HamidAbid/modifyx-backend/models"
	"github.com/HamidAbid/modifyx-backend/repository"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blogs is wired in main.
var Blogs repository.BlogRepository

func GetBlogs(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	blogs, err := Blogs.FindAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch blogs"})
	}
	if blogs == nil {
		blogs = []models.Blog{}
	}
	return c.JSON(http.StatusOK, blogs)
}

func GetBlog(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid blog ID"})
	}

	blog, err := Blogs.FindByID(c.Request().Context(), objID)
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Blog not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch blog"})
	}
	return c.JSON(http.StatusOK, blog)
}

func CreateBlog(c echo.Context) error {
	var blog models.Blog
	if err := c.Bind(&blog); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if blog.Title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Title is required"})
	}

	blog.CreatedAt = time.Now()
	blog.UpdatedAt = blog.CreatedAt

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := Blogs.Insert(ctx, &blog); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create blog"})
	}
	return c.JSON(http.StatusCreated, blog)
}

func UpdateBlog(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid blog ID"})
	}

	var fields bson.M
	if err := c.Bind(&fields); err != nil || len(fields) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	// _id is immutable
	delete(fields, "_id")
	delete(fields, "id")
	fields["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	blog, err := Blogs.Update(ctx, objID, fields)
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Blog not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update blog"})
	}
	return c.JSON(http.StatusOK, blog)
}

func DeleteBlog(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid blog ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := Blogs.Delete(ctx, objID); err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Blog not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete blog"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Blog deleted successfully"})
}
