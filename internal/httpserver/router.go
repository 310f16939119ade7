package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/condratcatalina/Afaceri-electronice/internal/middleware/auth"
)

type Deps struct {
	AuthHandler      *AuthHTTP
	CatalogHandler   *CatalogHTTP
	CartHandler      *CartHTTP
	FavoritesHandler *FavoritesHTTP
	AuthMW           *authmw.AuthMiddleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.Logout)

	products := v1.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/search", d.CatalogHandler.SearchProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)

	admin := v1.Group("/admin", d.AuthMW.RequireAdmin)
	admin.POST("/products", d.CatalogHandler.CreateProduct)
	admin.PATCH("/products/:id", d.CatalogHandler.PatchProduct)
	admin.DELETE("/products/:id", d.CatalogHandler.DeleteProduct)
	admin.DELETE("/users/:id", d.AuthHandler.DeleteUser)

	cart := v1.Group("/cart", d.AuthMW.RequireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PUT("/:id", d.CartHandler.UpdateCartItem)
	cart.DELETE("", d.CartHandler.ClearCart)

	favorites := v1.Group("/favorites", d.AuthMW.RequireAuth)
	favorites.GET("", d.FavoritesHandler.GetFavorites)
	favorites.POST("", d.FavoritesHandler.AddFavorite)
	favorites.DELETE("/:id", d.FavoritesHandler.RemoveFavorite)
}
