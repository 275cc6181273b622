package handler

import (
	"errors"
	"net/http"

	"catalog/backend/internal/models"
	"catalog/backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const tagNotFoundMessage = "Tag not found with this id!"

type TagInput struct {
	Name string `json:"name" binding:"required" example:"rock music"`
}

type TagSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ProductSummary struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Stock      int    `json:"stock"`
	CategoryID *uint  `json:"category_id"`
}

type TagResponse struct {
	ID       uint             `json:"id"`
	Name     string           `json:"name"`
	Products []ProductSummary `json:"products"`
}

func newProductSummary(product models.Product) ProductSummary {
	return ProductSummary{
		ID:         product.ID,
		Name:       product.Name,
		Stock:      product.Stock,
		CategoryID: product.CategoryID,
	}
}

func newTagResponse(tag models.Tag) TagResponse {
	products := make([]ProductSummary, 0, len(tag.ProductTags))
	for _, product := range tag.ProductList() {
		products = append(products, newProductSummary(product))
	}
	return TagResponse{
		ID:       tag.ID,
		Name:     tag.Name,
		Products: products,
	}
}

type TagHandler struct {
	tags repository.TagRepository
	log  *logrus.Logger
}

func NewTagHandler(tags repository.TagRepository, logger *logrus.Logger) *TagHandler {
	return &TagHandler{
		tags: tags,
		log:  logger,
	}
}

func (h *TagHandler) RegisterRoutes(router gin.IRouter) {
	tags := router.Group("/tags")
	{
		tags.GET("", h.GetTags)
		tags.GET("/:id", h.GetTagByID)
		tags.POST("", h.CreateTag)
		tags.PUT("/:id", h.UpdateTag)
		tags.DELETE("/:id", h.DeleteTag)
	}
}

// CreateTag godoc
// @Summary      Create a new tag
// @Description  Creates a new tag for products.
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        input body TagInput true "Tag Info"
// @Success      200  {object}  TagResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /tags [post]
func (h *TagHandler) CreateTag(c *gin.Context) {
	var input TagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.Warnf("Failed to bind JSON for create tag: %v", err)
		respondError(c, http.StatusBadRequest, err)
		return
	}

	tag := models.Tag{Name: input.Name}
	if err := h.tags.Create(c.Request.Context(), &tag); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, newTagResponse(tag))
}

// GetTags godoc
// @Summary      Get all tags
// @Description  Retrieves every tag with the products carrying it.
// @Tags         tags
// @Produce      json
// @Success      200  {array}   TagResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /tags [get]
func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.tags.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	response := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		response = append(response, newTagResponse(tag))
	}
	c.JSON(http.StatusOK, response)
}

// GetTagByID godoc
// @Summary      Get a single tag by ID
// @Tags         tags
// @Produce      json
// @Param        id   path      int  true  "Tag ID"
// @Success      200  {object}  TagResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  MessageResponse "Tag not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /tags/{id} [get]
func (h *TagHandler) GetTagByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	tag, err := h.tags.GetWithRelations(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondNotFound(c, tagNotFoundMessage)
			return
		}
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, newTagResponse(tag))
}

// UpdateTag godoc
// @Summary      Update a tag
// @Description  Updates the name of an existing tag.
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        id   path      int      true  "Tag ID"
// @Param        input body TagInput true "New Tag Info"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  MessageResponse "Tag not found"
// @Router       /tags/{id} [put]
func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input TagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	if err := h.tags.Update(c.Request.Context(), id, input.Name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondNotFound(c, tagNotFoundMessage)
			return
		}
		respondError(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Tag updated"})
}

// DeleteTag godoc
// @Summary      Delete a tag
// @Description  Deletes a tag and removes it from every product.
// @Tags         tags
// @Produce      json
// @Param        id   path      int  true  "Tag ID"
// @Success      200  {object}  DeleteResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  MessageResponse "Tag not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /tags/{id} [delete]
func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.tags.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	if deleted == 0 {
		respondNotFound(c, tagNotFoundMessage)
		return
	}

	c.JSON(http.StatusOK, DeleteResponse{Deleted: deleted})
}
