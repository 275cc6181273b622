package handler

import (
	"fmt"
	"net/http"
	"testing"

	"catalog/backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProduct(t *testing.T, router http.Handler, body map[string]any) CreateProductResponse {
	t.Helper()
	resp := doRequest(t, router, http.MethodPost, "/api/products", body)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	return decode[CreateProductResponse](t, resp)
}

func TestCreateProduct(t *testing.T) {
	router, db := createTestServer(t)
	tagIDs := seedTags(t, db, "rock music", "pop music")

	created := createProduct(t, router, map[string]any{
		"name":   "Basketball",
		"price":  200.00,
		"stock":  3,
		"tagIds": tagIDs,
	})

	assert.NotZero(t, created.ID)
	assert.Equal(t, "Basketball", created.Name)
	assert.True(t, decimal.NewFromInt(200).Equal(created.Price))
	assert.Equal(t, 3, created.Stock)
	require.Len(t, created.ProductTags, 2)
	for _, pt := range created.ProductTags {
		assert.Equal(t, created.ID, pt.ProductID)
	}
	assert.ElementsMatch(t, tagIDs, storedTagIDs(t, db, created.ID))
}

func TestCreateProduct_ReturnsCategoryAndTags(t *testing.T) {
	router, db := createTestServer(t)
	category := models.Category{Name: "Balls"}
	require.NoError(t, db.Create(&category).Error)
	tagIDs := seedTags(t, db, "outdoor", "team")

	created := createProduct(t, router, map[string]any{
		"name":        "Football",
		"price":       12.5,
		"stock":       4,
		"category_id": category.ID,
		"tagIds":      tagIDs,
	})

	require.NotNil(t, created.CategoryID)
	assert.Equal(t, category.ID, *created.CategoryID)
	require.NotNil(t, created.Category)
	assert.Equal(t, category.ID, created.Category.ID)
	assert.Equal(t, "Balls", created.Category.Name)

	names := make([]string, 0, len(created.Tags))
	for _, tag := range created.Tags {
		names = append(names, tag.Name)
	}
	assert.ElementsMatch(t, []string{"outdoor", "team"}, names)
	assert.Len(t, created.ProductTags, 2)
}

func TestCreateProduct_PriceIsJSONNumber(t *testing.T) {
	router, _ := createTestServer(t)

	resp := doRequest(t, router, http.MethodPost, "/api/products", map[string]any{"name": "Ball", "price": 12.5, "stock": 1})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	body := decode[map[string]any](t, resp)
	assert.Equal(t, 12.5, body["price"])

	list := decode[[]map[string]any](t, doRequest(t, router, http.MethodGet, "/api/products", nil))
	require.Len(t, list, 1)
	assert.Equal(t, 12.5, list[0]["price"])
}

func TestCreateProduct_WithoutTags(t *testing.T) {
	router, db := createTestServer(t)

	created := createProduct(t, router, map[string]any{"name": "Plain", "price": 1.5, "stock": 0})

	assert.Empty(t, created.ProductTags)
	assert.Empty(t, storedTagIDs(t, db, created.ID))
}

func TestCreateProduct_BadRequest(t *testing.T) {
	router, _ := createTestServer(t)

	tests := []struct {
		name string
		body any
	}{
		{"malformed json", `{"name":`},
		{"missing name", map[string]any{"price": 1, "stock": 1}},
		{"negative stock", map[string]any{"name": "x", "price": 1, "stock": -1}},
		{"negative price", map[string]any{"name": "x", "price": -1, "stock": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, router, http.MethodPost, "/api/products", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.NotEmpty(t, decode[ErrorResponse](t, resp).Error)
		})
	}
}

func TestGetProducts(t *testing.T) {
	router, db := createTestServer(t)
	category := models.Category{Name: "Balls"}
	require.NoError(t, db.Create(&category).Error)
	tagIDs := seedTags(t, db, "sport")

	createProduct(t, router, map[string]any{"name": "Ball", "price": 10, "stock": 1, "category_id": category.ID, "tagIds": tagIDs})
	createProduct(t, router, map[string]any{"name": "Net", "price": 5, "stock": 2})

	resp := doRequest(t, router, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	products := decode[[]ProductResponse](t, resp)
	require.Len(t, products, 2)

	require.NotNil(t, products[0].Category)
	assert.Equal(t, "Balls", products[0].Category.Name)
	require.Len(t, products[0].Tags, 1)
	assert.Equal(t, "sport", products[0].Tags[0].Name)

	assert.Nil(t, products[1].Category)
	assert.Empty(t, products[1].Tags)
}

func TestGetProducts_Empty(t *testing.T) {
	router, _ := createTestServer(t)

	resp := doRequest(t, router, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, "[]", resp.Body.String())
}

func TestGetProductByID(t *testing.T) {
	router, db := createTestServer(t)
	tagIDs := seedTags(t, db, "a", "b")
	created := createProduct(t, router, map[string]any{"name": "Ball", "price": 10, "stock": 1, "tagIds": tagIDs})

	resp := doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, resp.Code)

	product := decode[ProductResponse](t, resp)
	assert.Equal(t, created.ID, product.ID)
	assert.Len(t, product.Tags, 2)
}

func TestGetProductByID_NotFound(t *testing.T) {
	router, _ := createTestServer(t)

	resp := doRequest(t, router, http.MethodGet, "/api/products/999", nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Product not found with this id!", decode[MessageResponse](t, resp).Message)
}

func TestGetProductByID_InvalidID(t *testing.T) {
	router, _ := createTestServer(t)

	resp := doRequest(t, router, http.MethodGet, "/api/products/abc", nil)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Invalid ID", decode[ErrorResponse](t, resp).Error)
}

func TestUpdateProduct_ReconcilesTags(t *testing.T) {
	router, db := createTestServer(t)
	tagIDs := seedTags(t, db, "t1", "t2", "t3")
	created := createProduct(t, router, map[string]any{"name": "Ball", "price": 10, "stock": 1, "tagIds": tagIDs[:2]})
	path := fmt.Sprintf("/api/products/%d", created.ID)

	resp := doRequest(t, router, http.MethodPut, path, map[string]any{
		"stock":  7,
		"tagIds": []uint{tagIDs[1], tagIDs[2]},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "Successfully updated with updated product tags", decode[MessageResponse](t, resp).Message)

	assert.ElementsMatch(t, []uint{tagIDs[1], tagIDs[2]}, storedTagIDs(t, db, created.ID))

	product := decode[ProductResponse](t, doRequest(t, router, http.MethodGet, path, nil))
	assert.Equal(t, 7, product.Stock)
	assert.Equal(t, "Ball", product.Name)
}

func TestUpdateProduct_OmittedTagsAreUntouched(t *testing.T) {
	router, db := createTestServer(t)
	tagIDs := seedTags(t, db, "keep")
	created := createProduct(t, router, map[string]any{"name": "Ball", "price": 10, "stock": 1, "tagIds": tagIDs})

	resp := doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/products/%d", created.ID), map[string]any{"name": "Bigger Ball"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Successfully updated (no product tags included)", decode[MessageResponse](t, resp).Message)

	assert.Equal(t, tagIDs, storedTagIDs(t, db, created.ID))
}

func TestUpdateProduct_EmptyTagsClearsAll(t *testing.T) {
	router, db := createTestServer(t)
	tagIDs := seedTags(t, db, "x", "y")
	created := createProduct(t, router, map[string]any{"name": "Ball", "price": 10, "stock": 1, "tagIds": tagIDs})

	resp := doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/products/%d", created.ID), `{"tagIds": []}`)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Successfully updated with updated product tags", decode[MessageResponse](t, resp).Message)

	assert.Empty(t, storedTagIDs(t, db, created.ID))
}

func TestUpdateProduct_Category(t *testing.T) {
	router, db := createTestServer(t)
	balls := models.Category{Name: "Balls"}
	nets := models.Category{Name: "Nets"}
	require.NoError(t, db.Create(&balls).Error)
	require.NoError(t, db.Create(&nets).Error)
	tagIDs := seedTags(t, db, "t1", "t2", "t3")

	tests := []struct {
		name         string
		body         string
		wantCategory *uint
	}{
		{"omitted keeps category", `{"name": "Renamed"}`, &balls.ID},
		{"id moves category", fmt.Sprintf(`{"category_id": %d}`, nets.ID), &nets.ID},
		{"null clears category", fmt.Sprintf(`{"category_id": null, "tagIds": [%d, %d]}`, tagIDs[1], tagIDs[2]), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := createProduct(t, router, map[string]any{
				"name":        "Ball",
				"price":       10,
				"stock":       1,
				"category_id": balls.ID,
				"tagIds":      tagIDs[:1],
			})
			path := fmt.Sprintf("/api/products/%d", created.ID)

			resp := doRequest(t, router, http.MethodPut, path, tt.body)
			require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

			product := decode[ProductResponse](t, doRequest(t, router, http.MethodGet, path, nil))
			if tt.wantCategory == nil {
				assert.Nil(t, product.CategoryID)
				assert.Nil(t, product.Category)
				return
			}
			require.NotNil(t, product.CategoryID)
			assert.Equal(t, *tt.wantCategory, *product.CategoryID)
			require.NotNil(t, product.Category)
			assert.Equal(t, *tt.wantCategory, product.Category.ID)
		})
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	router, _ := createTestServer(t)

	resp := doRequest(t, router, http.MethodPut, "/api/products/999", map[string]any{"name": "x"})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Product not found with this id!", decode[MessageResponse](t, resp).Message)
}

func TestUpdateProduct_BadRequest(t *testing.T) {
	router, db := createTestServer(t)
	created := createProduct(t, router, map[string]any{"name": "Ball", "price": 10, "stock": 1})
	path := fmt.Sprintf("/api/products/%d", created.ID)

	for _, body := range []string{`{"stock": -3}`, `{"price": -1}`, `{"tagIds": "nope"}`, `{"category_id": "one"}`} {
		resp := doRequest(t, router, http.MethodPut, path, body)
		assert.Equal(t, http.StatusBadRequest, resp.Code, body)
	}

	var product models.Product
	require.NoError(t, db.First(&product, created.ID).Error)
	assert.Equal(t, 1, product.Stock)
}

func TestDeleteProduct(t *testing.T) {
	router, db := createTestServer(t)
	tagIDs := seedTags(t, db, "gone")
	created := createProduct(t, router, map[string]any{"name": "Ball", "price": 10, "stock": 1, "tagIds": tagIDs})
	path := fmt.Sprintf("/api/products/%d", created.ID)

	resp := doRequest(t, router, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, int64(1), decode[DeleteResponse](t, resp).Deleted)
	assert.Empty(t, storedTagIDs(t, db, created.ID))

	resp = doRequest(t, router, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	router, _ := createTestServer(t)

	resp := doRequest(t, router, http.MethodDelete, "/api/products/999", nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Product not found with this id!", decode[MessageResponse](t, resp).Message)
}
