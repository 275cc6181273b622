package handler

import (
	"errors"
	"net/http"

	"catalog/backend/internal/models"
	"catalog/backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	productNotFoundMessage    = "Product not found with this id!"
	productUpdatedWithTags    = "Successfully updated with updated product tags"
	productUpdatedWithoutTags = "Successfully updated (no product tags included)"
)

// region --- DTOs ---

// CreateProductInput is the body of POST /products.
type CreateProductInput struct {
	Name       string          `json:"name" binding:"required" example:"Basketball"`
	Price      decimal.Decimal `json:"price" swaggertype:"number" example:"200.00"`
	Stock      int             `json:"stock" binding:"gte=0" example:"3"`
	CategoryID *uint           `json:"category_id" example:"1"`
	TagIDs     []uint          `json:"tagIds"`
}

// UpdateProductInput is the body of PUT /products/{id}. Omitted fields are
// left unchanged and a null category_id detaches the product from its
// category. An omitted tagIds leaves the product's tags untouched while an
// empty list removes them all.
type UpdateProductInput struct {
	Name       *string          `json:"name" binding:"omitempty,min=1"`
	Price      *decimal.Decimal `json:"price" swaggertype:"number"`
	Stock      *int             `json:"stock" binding:"omitempty,gte=0"`
	CategoryID NullableID       `json:"category_id" swaggertype:"integer" extensions:"x-nullable"`
	TagIDs     *[]uint          `json:"tagIds"`
}

type CategorySummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ProductResponse struct {
	ID         uint             `json:"id"`
	Name       string           `json:"name"`
	Price      decimal.Decimal  `json:"price" swaggertype:"number"`
	Stock      int              `json:"stock"`
	CategoryID *uint            `json:"category_id"`
	Category   *CategorySummary `json:"category"`
	Tags       []TagSummary     `json:"tags"`
}

type ProductTagResponse struct {
	ID        uint `json:"id"`
	ProductID uint `json:"product_id"`
	TagID     uint `json:"tag_id"`
}

// CreateProductResponse is the created product plus the associations written
// for its tagIds.
type CreateProductResponse struct {
	ProductResponse
	ProductTags []ProductTagResponse `json:"product_tags,omitempty"`
}

func newProductResponse(product models.Product) ProductResponse {
	tags := make([]TagSummary, 0, len(product.ProductTags))
	for _, tag := range product.TagList() {
		tags = append(tags, TagSummary{ID: tag.ID, Name: tag.Name})
	}

	var category *CategorySummary
	if product.Category != nil {
		category = &CategorySummary{ID: product.Category.ID, Name: product.Category.Name}
	}

	return ProductResponse{
		ID:         product.ID,
		Name:       product.Name,
		Price:      product.Price,
		Stock:      product.Stock,
		CategoryID: product.CategoryID,
		Category:   category,
		Tags:       tags,
	}
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errors.New("price must not be negative")
	}
	return nil
}

// endregion

type ProductHandler struct {
	products repository.ProductRepository
	log      *logrus.Logger
}

func NewProductHandler(products repository.ProductRepository, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		log:      logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/products")
	{
		products.GET("", h.GetProducts)
		products.GET("/:id", h.GetProductByID)
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

// GetProducts godoc
// @Summary      Get all products
// @Description  Retrieves every product with its category and tags.
// @Tags         products
// @Produce      json
// @Success      200  {array}   ProductResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /products [get]
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	response := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		response = append(response, newProductResponse(product))
	}
	c.JSON(http.StatusOK, response)
}

// GetProductByID godoc
// @Summary      Get a single product by ID
// @Description  Retrieves one product with its category and tags.
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  ProductResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  MessageResponse "Product not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.products.GetWithRelations(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondNotFound(c, productNotFoundMessage)
			return
		}
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, newProductResponse(product))
}

// CreateProduct godoc
// @Summary      Create a new product
// @Description  Creates a product and one tag association per entry in tagIds.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        input body CreateProductInput true "Product Info"
// @Success      200  {object}  CreateProductResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.Warnf("Failed to bind JSON for create product: %v", err)
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := validatePrice(input.Price); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	product := models.Product{
		Name:       input.Name,
		Price:      input.Price,
		Stock:      input.Stock,
		CategoryID: input.CategoryID,
	}

	ctx := c.Request.Context()
	created, err := h.products.Create(ctx, &product, input.TagIDs)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	loaded, err := h.products.GetWithRelations(ctx, product.ID)
	if err != nil {
		h.log.Errorf("Failed to reload created product %d: %v", product.ID, err)
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	response := CreateProductResponse{ProductResponse: newProductResponse(loaded)}
	for _, pt := range created {
		response.ProductTags = append(response.ProductTags, ProductTagResponse{
			ID:        pt.ID,
			ProductID: pt.ProductID,
			TagID:     pt.TagID,
		})
	}
	c.JSON(http.StatusOK, response)
}

// UpdateProduct godoc
// @Summary      Update a product
// @Description  Updates the supplied product fields. When tagIds is present the product's tags are reconciled to exactly that set.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path      int                 true  "Product ID"
// @Param        input body      UpdateProductInput  true  "Fields to update"
// @Success      200   {object}  MessageResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  MessageResponse "Product not found"
// @Router       /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.Warnf("Failed to bind JSON for update product ID %d: %v", id, err)
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if input.Price != nil {
		if err := validatePrice(*input.Price); err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
	}

	changes := repository.ProductChanges{
		Name:          input.Name,
		Price:         input.Price,
		Stock:         input.Stock,
		CategoryID:    input.CategoryID.Value,
		ClearCategory: input.CategoryID.Set && input.CategoryID.Value == nil,
	}

	if _, err := h.products.Update(c.Request.Context(), id, changes, input.TagIDs); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondNotFound(c, productNotFoundMessage)
			return
		}
		respondError(c, http.StatusBadRequest, err)
		return
	}

	if input.TagIDs != nil {
		c.JSON(http.StatusOK, MessageResponse{Message: productUpdatedWithTags})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: productUpdatedWithoutTags})
}

// DeleteProduct godoc
// @Summary      Delete a product
// @Description  Deletes a product and its tag associations.
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  DeleteResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  MessageResponse "Product not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.products.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	if deleted == 0 {
		respondNotFound(c, productNotFoundMessage)
		return
	}

	c.JSON(http.StatusOK, DeleteResponse{Deleted: deleted})
}
