package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HamidAbid/modifyx-backend/models"
	"github.com/HamidAbid/modifyx-backend/repository"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubBlogRepo struct {
	blogs []models.Blog
}

func (s *stubBlogRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	for i := range s.blogs {
		if s.blogs[i].ID == id {
			return &s.blogs[i], nil
		}
	}
	return nil, repository.ErrBlogNotFound
}

func (s *stubBlogRepo) FindAll(ctx context.Context) ([]models.Blog, error) {
	return s.blogs, nil
}

func (s *stubBlogRepo) Insert(ctx context.Context, blog *models.Blog) error {
	s.blogs = append(s.blogs, *blog)
	return nil
}

func (s *stubBlogRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Blog, error) {
	return nil, repository.ErrBlogNotFound
}

func (s *stubBlogRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return repository.ErrBlogNotFound
}

func newBlogContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGetBlogInvalidID(t *testing.T) {
	Blogs = &stubBlogRepo{}

	c, rec := newBlogContext(t)
	c.SetParamNames("id")
	c.SetParamValues("garbage")

	require.NoError(t, GetBlog(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetBlogNotFound(t *testing.T) {
	Blogs = &stubBlogRepo{}

	c, rec := newBlogContext(t)
	c.SetParamNames("id")
	c.SetParamValues(primitive.NewObjectID().Hex())

	require.NoError(t, GetBlog(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetBlogsEmptyListNotNull(t *testing.T) {
	Blogs = &stubBlogRepo{}

	c, rec := newBlogContext(t)

	require.NoError(t, GetBlogs(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGetBlogFound(t *testing.T) {
	post := models.Blog{ID: primitive.NewObjectID(), Title: "Winter tyre guide"}
	Blogs = &stubBlogRepo{blogs: []models.Blog{post}}

	c, rec := newBlogContext(t)
	c.SetParamNames("id")
	c.SetParamValues(post.ID.Hex())

	require.NoError(t, GetBlog(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Winter tyre guide")
}
