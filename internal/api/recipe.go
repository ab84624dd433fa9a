package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

// multipartOverhead is the allowance for form boundaries and the id field on
// top of the image itself.
const multipartOverhead = 64 << 10

type RecipeHandler struct {
	recipeService  service.IRecipeService
	log            *logrus.Logger
	maxUploadBytes int64
	uploadLimiter  gin.HandlerFunc
}

// NewRecipeHandler creates a recipe handler. uploadLimiter may be nil, in
// which case image uploads are not rate limited.
func NewRecipeHandler(recipeService service.IRecipeService, log *logrus.Logger, maxUploadBytes int64, uploadLimiter gin.HandlerFunc) *RecipeHandler {
	return &RecipeHandler{
		recipeService:  recipeService,
		log:            log,
		maxUploadBytes: maxUploadBytes,
		uploadLimiter:  uploadLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router gin.IRouter) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.CreateRecipe)
		recipes.GET("/:id", h.GetRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.GET("/image/:filename", h.GetImage)

		upload := []gin.HandlerFunc{h.UploadImage}
		if h.uploadLimiter != nil {
			upload = append([]gin.HandlerFunc{h.uploadLimiter}, upload...)
		}
		recipes.PUT("/image", upload...)
	}
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var input model.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Location", "/recipes/"+recipe.ID)
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be an integer"})
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(service.DefaultPageSize)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size must be an integer"})
		return
	}

	result, err := h.recipeService.ListRecipes(c.Request.Context(), page, size)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id := c.Param("id")
	cleanup, err := h.recipeService.DeleteRecipe(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !cleanup.Succeeded() {
		h.log.WithField("recipe_id", id).WithField("filename", cleanup.Filename).Warn("recipe deleted but its image is still stored")
	}

	c.Status(http.StatusNoContent)
}

// UploadImage accepts a multipart form with the recipe "id" and the image
// "file", and answers with the image URL as plain text.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		if c.Request.ContentLength > h.maxUploadBytes+multipartOverhead {
			h.tooLarge(c)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.tooLarge(c)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}
	id := c.PostForm("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'id' is required"})
		return
	}
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		h.tooLarge(c)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.respondError(c, err)
		return
	}

	url, err := h.recipeService.UploadImage(c.Request.Context(), id, data, fileHeader.Filename)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.String(http.StatusOK, url)
}

func (h *RecipeHandler) GetImage(c *gin.Context) {
	image, err := h.recipeService.GetImage(c.Request.Context(), c.Param("filename"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Data(http.StatusOK, image.ContentType, image.Data)
}

func (h *RecipeHandler) tooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, gin.H{
		"error": "image exceeds the upload limit of " + strconv.FormatInt(h.maxUploadBytes, 10) + " bytes",
	})
}

// respondError maps service errors onto status codes. Storage failures are
// logged and reported without their cause.
func (h *RecipeHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, types.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
