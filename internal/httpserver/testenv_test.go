package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/condratcatalina/Afaceri-electronice/internal/events"
	"github.com/condratcatalina/Afaceri-electronice/internal/hash"
	"github.com/condratcatalina/Afaceri-electronice/internal/models"
	"github.com/condratcatalina/Afaceri-electronice/internal/repo"
	"github.com/condratcatalina/Afaceri-electronice/internal/service"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB

	Auth      *AuthHTTP
	Catalog   *CatalogHTTP
	Cart      *CartHTTP
	Favorites *FavoritesHTTP
}

// envelope mirrors transport.Response with the payload kept raw so each
// test can decode it into the type it expects.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.FavoriteItem{},
		&models.RefreshToken{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	db := initTestDB(t)

	store := &repo.GormRepo{DB: db}
	producer := events.NewProducer(nil)

	authSvc := &service.AuthService{
		Repo:          store,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}

	return &testEnv{
		T:  t,
		E:  echo.New(),
		DB: db,

		Auth:      &AuthHTTP{Svc: authSvc, Producer: producer},
		Catalog:   &CatalogHTTP{Svc: &service.CatalogService{Repo: store}, Producer: producer},
		Cart:      &CartHTTP{Svc: &service.CartService{Repo: store}, Producer: producer},
		Favorites: &FavoritesHTTP{Svc: &service.FavoritesService{Repo: store}, Producer: producer},
	}
}

func (env *testEnv) doJSON(method, path string, body any) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

// asUser plants the identity keys the auth middleware would have set.
func asUser(c echo.Context, userID uint, role string) {
	c.Set("user_id", userID)
	c.Set("role", role)
}

func (env *testEnv) createUser(username, password, role string) *models.User {
	pwHash, err := hash.HashPassword(password)
	require.NoError(env.T, err)

	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
		Role:         role,
	}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return &user
}

func (env *testEnv) createProduct(name string, price float64, category string) *models.Product {
	prod := models.Product{
		Name:        name,
		Description: name + " description",
		Price:       price,
		Category:    category,
	}
	require.NoError(env.T, env.DB.Create(&prod).Error)
	return &prod
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var resp envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}
