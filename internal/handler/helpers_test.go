package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"catalog/backend/internal/database"
	"catalog/backend/internal/logging"
	"catalog/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// createTestServer returns a router backed by a fresh SQLite database.
func createTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	log := logging.New("error", "text")
	db, err := database.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), log)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewRouter(db, log), db
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &v), resp.Body.String())
	return v
}

func seedTags(t *testing.T, db *gorm.DB, names ...string) []uint {
	t.Helper()
	ids := make([]uint, 0, len(names))
	for _, name := range names {
		tag := models.Tag{Name: name}
		require.NoError(t, db.Create(&tag).Error)
		ids = append(ids, tag.ID)
	}
	return ids
}

func storedTagIDs(t *testing.T, db *gorm.DB, productID uint) []uint {
	t.Helper()
	var ids []uint
	require.NoError(t, db.Model(&models.ProductTag{}).Where("product_id = ?", productID).Pluck("tag_id", &ids).Error)
	return ids
}
