package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/condratcatalina/Afaceri-electronice/internal/models"
)

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)
	prod := env.createProduct("The Go Programming Language", 40, "programming")

	rec, c := env.doJSON(http.MethodGet, "/api/v1/products/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Catalog.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, prod.ID, resp.ID)
	require.Equal(t, prod.Name, resp.Name)
	require.Equal(t, prod.Price, resp.Price)
}

func TestGetProduct_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSON(http.MethodGet, "/api/v1/products/42", nil)
	c.SetParamNames("id")
	c.SetParamValues("42")

	err := env.Catalog.GetProduct(c)
	he, okHTTP := err.(*echo.HTTPError)
	require.True(t, okHTTP, "expected HTTPError")
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestGetProduct_BadID(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSON(http.MethodGet, "/api/v1/products/abc", nil)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := env.Catalog.GetProduct(c)
	he, okHTTP := err.(*echo.HTTPError)
	require.True(t, okHTTP, "expected HTTPError")
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestGetProducts_PaginationAndFilter(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct("Dune", 20, "sci-fi")
	env.createProduct("Hyperion", 25, "sci-fi")
	env.createProduct("Neuromancer", 15, "sci-fi")
	env.createProduct("Clean Architecture", 35, "programming")

	rec, c := env.doJSON(http.MethodGet, "/api/v1/products?category=sci-fi&sortPrice=asc&page=1&size=2", nil)
	require.NoError(t, env.Catalog.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Product `json:"data"`
		Meta struct {
			Page       int   `json:"page"`
			Size       int   `json:"size"`
			Total      int64 `json:"total"`
			TotalPages int64 `json:"total_pages"`
			HasPrev    bool  `json:"has_prev"`
			HasNext    bool  `json:"has_next"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	require.Equal(t, "Neuromancer", resp.Data[0].Name)
	require.Equal(t, "Dune", resp.Data[1].Name)
	require.EqualValues(t, 3, resp.Meta.Total)
	require.EqualValues(t, 2, resp.Meta.TotalPages)
	require.False(t, resp.Meta.HasPrev)
	require.True(t, resp.Meta.HasNext)
}

func TestGetProducts_EmptyCatalog(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSON(http.MethodGet, "/api/v1/products", nil)
	require.NoError(t, env.Catalog.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 0)
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser("admin", "password", "admin")

	rec, c := env.doJSON(http.MethodPost, "/api/v1/admin/products", map[string]any{
		"name":        "Dune",
		"description": "Herbert",
		"price":       20.5,
		"category":    "sci-fi",
	})
	asUser(c, admin.ID, "admin")
	require.NoError(t, env.Catalog.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotZero(t, resp.ID)
	require.Equal(t, "Dune", resp.Name)
	require.Equal(t, 20.5, resp.Price)
	require.Equal(t, "sci-fi", resp.Category)
}

func TestCreateProduct_Invalid(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser("admin", "password", "admin")

	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "empty name", body: map[string]any{"name": "", "price": 10}},
		{name: "negative price", body: map[string]any{"name": "Dune", "price": -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := env.doJSON(http.MethodPost, "/api/v1/admin/products", tt.body)
			asUser(c, admin.ID, "admin")

			err := env.Catalog.CreateProduct(c)
			he, okHTTP := err.(*echo.HTTPError)
			require.True(t, okHTTP, "expected HTTPError")
			require.Equal(t, http.StatusBadRequest, he.Code)
		})
	}
}

func TestPatchProduct(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser("admin", "password", "admin")
	env.createProduct("Dune", 20, "sci-fi")

	rec, c := env.doJSON(http.MethodPatch, "/api/v1/admin/products/1", map[string]any{
		"price": 25.0,
	})
	c.SetParamNames("id")
	c.SetParamValues("1")
	asUser(c, admin.ID, "admin")
	require.NoError(t, env.Catalog.PatchProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Dune", resp.Name)
	require.Equal(t, 25.0, resp.Price)
	require.Equal(t, "sci-fi", resp.Category)
}

func TestPatchProduct_NotFound(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser("admin", "password", "admin")

	_, c := env.doJSON(http.MethodPatch, "/api/v1/admin/products/42", map[string]any{
		"price": 25.0,
	})
	c.SetParamNames("id")
	c.SetParamValues("42")
	asUser(c, admin.ID, "admin")

	err := env.Catalog.PatchProduct(c)
	he, okHTTP := err.(*echo.HTTPError)
	require.True(t, okHTTP, "expected HTTPError")
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestDeleteProduct_CascadesIntoLedgers(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser("admin", "password", "admin")
	alice := env.createUser("alice", "password", "user")
	doomed := env.createProduct("Dune", 20, "sci-fi")
	kept := env.createProduct("Hyperion", 25, "sci-fi")

	require.NoError(t, env.DB.Create(&models.CartItem{UserID: alice.ID, ProductID: doomed.ID, Quantity: 2}).Error)
	require.NoError(t, env.DB.Create(&models.CartItem{UserID: alice.ID, ProductID: kept.ID, Quantity: 1}).Error)
	require.NoError(t, env.DB.Create(&models.FavoriteItem{UserID: alice.ID, ProductID: doomed.ID}).Error)
	require.NoError(t, env.DB.Create(&models.FavoriteItem{UserID: alice.ID, ProductID: kept.ID}).Error)

	rec, c := env.doJSON(http.MethodDelete, "/api/v1/admin/products/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	asUser(c, admin.ID, "admin")
	require.NoError(t, env.Catalog.DeleteProduct(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	var count int64
	require.NoError(t, env.DB.Model(&models.Product{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	require.NoError(t, env.DB.Model(&models.CartItem{}).Where("product_id = ?", doomed.ID).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, env.DB.Model(&models.FavoriteItem{}).Where("product_id = ?", doomed.ID).Count(&count).Error)
	require.Zero(t, count)

	require.NoError(t, env.DB.Model(&models.CartItem{}).Where("product_id = ?", kept.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
	require.NoError(t, env.DB.Model(&models.FavoriteItem{}).Where("product_id = ?", kept.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser("admin", "password", "admin")

	_, c := env.doJSON(http.MethodDelete, "/api/v1/admin/products/42", nil)
	c.SetParamNames("id")
	c.SetParamValues("42")
	asUser(c, admin.ID, "admin")

	err := env.Catalog.DeleteProduct(c)
	he, okHTTP := err.(*echo.HTTPError)
	require.True(t, okHTTP, "expected HTTPError")
	require.Equal(t, http.StatusNotFound, he.Code)
}
