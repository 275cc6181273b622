package handler

import (
	"errors"
	"net/http"

	"catalog/backend/internal/models"
	"catalog/backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const categoryNotFoundMessage = "Category not found with this id!"

type CategoryInput struct {
	Name string `json:"name" binding:"required" example:"Shirts"`
}

type CategoryResponse struct {
	ID       uint             `json:"id"`
	Name     string           `json:"name"`
	Products []ProductSummary `json:"products"`
}

func newCategoryResponse(category models.Category) CategoryResponse {
	products := make([]ProductSummary, 0, len(category.Products))
	for _, product := range category.Products {
		products = append(products, newProductSummary(product))
	}
	return CategoryResponse{
		ID:       category.ID,
		Name:     category.Name,
		Products: products,
	}
}

type CategoryHandler struct {
	categories repository.CategoryRepository
	log        *logrus.Logger
}

func NewCategoryHandler(categories repository.CategoryRepository, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		log:        logger,
	}
}

func (h *CategoryHandler) RegisterRoutes(router gin.IRouter) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.GetCategories)
		categories.GET("/:id", h.GetCategoryByID)
		categories.POST("", h.CreateCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

// GetCategories godoc
// @Summary      Get all categories
// @Description  Retrieves every category with its products.
// @Tags         categories
// @Produce      json
// @Success      200  {array}   CategoryResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	response := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, newCategoryResponse(category))
	}
	c.JSON(http.StatusOK, response)
}

// GetCategoryByID godoc
// @Summary      Get a single category by ID
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  CategoryResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  MessageResponse "Category not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /categories/{id} [get]
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	category, err := h.categories.GetWithRelations(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondNotFound(c, categoryNotFoundMessage)
			return
		}
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, newCategoryResponse(category))
}

// CreateCategory godoc
// @Summary      Create a new category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        input body CategoryInput true "Category Info"
// @Success      200  {object}  CategoryResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.Warnf("Failed to bind JSON for create category: %v", err)
		respondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.Category{Name: input.Name}
	if err := h.categories.Create(c.Request.Context(), &category); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, newCategoryResponse(category))
}

// UpdateCategory godoc
// @Summary      Update a category
// @Description  Renames an existing category.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Category ID"
// @Param        input body      CategoryInput  true  "New Category Info"
// @Success      200   {object}  MessageResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  MessageResponse "Category not found"
// @Router       /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	if err := h.categories.Update(c.Request.Context(), id, input.Name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondNotFound(c, categoryNotFoundMessage)
			return
		}
		respondError(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Category updated"})
}

// DeleteCategory godoc
// @Summary      Delete a category
// @Description  Deletes a category. Its products are kept without a category.
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  DeleteResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  MessageResponse "Category not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.categories.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	if deleted == 0 {
		respondNotFound(c, categoryNotFoundMessage)
		return
	}

	c.JSON(http.StatusOK, DeleteResponse{Deleted: deleted})
}
