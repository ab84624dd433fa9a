package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/logging"
	"github.com/pageza/recipebox/backend/internal/mocks"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

const testMaxUpload = 1024

func setupRecipeTestRouter(t *testing.T) (*gin.Engine, *mocks.MockRecipeService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := new(mocks.MockRecipeService)
	t.Cleanup(func() { svc.AssertExpectations(t) })

	router := gin.New()
	NewRecipeHandler(svc, logging.Discard(), testMaxUpload, nil).RegisterRoutes(router)
	return router, svc
}

func multipartUpload(t *testing.T, id, filename string, data []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if id != "" {
		require.NoError(t, writer.WriteField("id", id))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPut, "/recipes/image", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response["error"]
}

func TestCreateRecipe(t *testing.T) {
	router, svc := setupRecipeTestRouter(t)

	input := model.RecipeInput{Name: "Pancakes", Category: "Breakfast", Recipe: "Mix and fry."}
	svc.On("CreateRecipe", mock.Anything, input).
		Return(model.Recipe{ID: "abc-123", Name: "Pancakes", Category: "Breakfast", Recipe: "Mix and fry."}, nil)

	body := `{"id":"client-chosen","name":"Pancakes","category":"Breakfast","recipe":"Mix and fry.","imageUrl":"http://evil/x.png"}`
	req := httptest.NewRequest(http.MethodPost, "/recipes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/recipes/abc-123", w.Header().Get("Location"))

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "abc-123", response["id"])
	assert.Equal(t, "Pancakes", response["name"])
	assert.NotContains(t, response, "imageUrl")
}

func TestCreateRecipeRejectsMalformedBody(t *testing.T) {
	router, _ := setupRecipeTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/recipes", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRecipeStorageFailure(t *testing.T) {
	router, svc := setupRecipeTestRouter(t)

	svc.On("CreateRecipe", mock.Anything, mock.Anything).
		Return(model.Recipe{}, fmt.Errorf("%w: insert recipe: %w", types.ErrStorage, errors.New("disk full")))

	req := httptest.NewRequest(http.MethodPost, "/recipes", strings.NewReader(`{"name":"Soup"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decodeError(t, w))
}

func TestGetRecipe(t *testing.T) {
	router, svc := setupRecipeTestRouter(t)

	svc.On("GetRecipe", mock.Anything, "abc-123").
		Return(model.Recipe{ID: "abc-123", Name: "Pancakes", ImageURL: "http://localhost:8080/recipes/image/abc-123.png"}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes/abc-123", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var recipe model.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipe))
	assert.Equal(t, "abc-123", recipe.ID)
	assert.Equal(t, "http://localhost:8080/recipes/image/abc-123.png", recipe.ImageURL)
}

func TestGetRecipeNotFound(t *testing.T) {
	router, svc := setupRecipeTestRouter(t)

	svc.On("GetRecipe", mock.Anything, "missing").
		Return(model.Recipe{}, fmt.Errorf("%w: recipe missing", types.ErrNotFound))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decodeError(t, w), "missing")
}

func TestListRecipes(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantPage int
		wantSize int
	}{
		{name: "defaults", query: "", wantPage: 0, wantSize: service.DefaultPageSize},
		{name: "explicit", query: "?page=2&size=5", wantPage: 2, wantSize: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := setupRecipeTestRouter(t)
			content := []model.Recipe{{ID: "1", Name: "Apple Pie"}}
			svc.On("ListRecipes", mock.Anything, tt.wantPage, tt.wantSize).
				Return(model.NewPage(content, tt.wantPage, tt.wantSize, 1), nil)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes"+tt.query, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			var page model.Page
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
			assert.Len(t, page.Content, 1)
			assert.Equal(t, int64(1), page.TotalElements)
			assert.Equal(t, tt.wantSize, page.Size)
		})
	}
}

func TestListRecipesBadParameters(t *testing.T) {
	router, svc := setupRecipeTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes?page=first", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.On("ListRecipes", mock.Anything, -1, 10).
		Return(model.Page{}, fmt.Errorf("%w: page must not be negative", types.ErrValidation))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes?page=-1", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteRecipe(t *testing.T) {
	router, svc := setupRecipeTestRouter(t)

	svc.On("DeleteRecipe", mock.Anything, "abc-123").
		Return(service.CleanupResult{Attempted: true, Filename: "abc-123.png", Err: errors.New("permission denied")}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/recipes/abc-123", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestDeleteRecipeNotFound(t *testing.T) {
	router, svc := setupRecipeTestRouter(t)

	svc.On("DeleteRecipe", mock.Anything, "missing").
		Return(service.CleanupResult{}, fmt.Errorf("%w: recipe missing", types.ErrNotFound))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/recipes/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadImage(t *testing.T) {
	router, svc := setupRecipeTestRouter(t)

	data := []byte("\x89PNG fake image")
	svc.On("UploadImage", mock.Anything, "abc-123", data, "photo.jpg").
		Return("http://localhost:8080/recipes/image/abc-123.jpg", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartUpload(t, "abc-123", "photo.jpg", data))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:8080/recipes/image/abc-123.jpg", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestUploadImageErrors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		filename   string
		data       []byte
		serviceErr error
		wantStatus int
	}{
		{name: "missing file", id: "abc-123", wantStatus: http.StatusBadRequest},
		{name: "missing id", filename: "photo.png", data: []byte("x"), wantStatus: http.StatusBadRequest},
		{name: "too large", id: "abc-123", filename: "photo.png", data: bytes.Repeat([]byte("x"), testMaxUpload+1), wantStatus: http.StatusRequestEntityTooLarge},
		{name: "unknown recipe", id: "missing", filename: "photo.png", data: []byte("x"), serviceErr: fmt.Errorf("%w: recipe missing", types.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "write failure", id: "abc-123", filename: "photo.png", data: []byte("x"), serviceErr: fmt.Errorf("%w: write image: %w", types.ErrStorage, errors.New("read-only")), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := setupRecipeTestRouter(t)
			if tt.serviceErr != nil {
				svc.On("UploadImage", mock.Anything, tt.id, tt.data, tt.filename).Return("", tt.serviceErr)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, multipartUpload(t, tt.id, tt.filename, tt.data))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.NotEmpty(t, decodeError(t, w))
		})
	}
}

func TestUploadImageRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := new(mocks.MockRecipeService)

	limiter := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
	}
	router := gin.New()
	NewRecipeHandler(svc, logging.Discard(), testMaxUpload, limiter).RegisterRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartUpload(t, "abc-123", "photo.png", []byte("x")))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	svc.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetImage(t *testing.T) {
	router, svc := setupRecipeTestRouter(t)

	svc.On("GetImage", mock.Anything, "abc-123.png").
		Return(service.Image{Filename: "abc-123.png", ContentType: "image/png", Data: []byte("png-bytes")}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes/image/abc-123.png", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", w.Body.String())
}

func TestGetImageErrors(t *testing.T) {
	router, svc := setupRecipeTestRouter(t)

	svc.On("GetImage", mock.Anything, "gone.png").
		Return(service.Image{}, fmt.Errorf("%w: image gone.png", types.ErrNotFound))
	svc.On("GetImage", mock.Anything, "a..b").
		Return(service.Image{}, fmt.Errorf("%w: invalid image filename", types.ErrValidation))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes/image/gone.png", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes/image/a..b", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
