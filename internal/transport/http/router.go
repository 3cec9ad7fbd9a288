package httpserver

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/Skotchmaster/freshcart/internal/db"
	"github.com/Skotchmaster/freshcart/internal/logging"
	"github.com/Skotchmaster/freshcart/internal/metrics"
	authmw "github.com/Skotchmaster/freshcart/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/freshcart/internal/middleware/logging"
	"github.com/Skotchmaster/freshcart/internal/middleware/ratelimit"
	"github.com/Skotchmaster/freshcart/internal/upload"
	"github.com/Skotchmaster/freshcart/internal/validation"
)

type Deps struct {
	DB        *gorm.DB
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	JWTSecret []byte
	Users     authmw.UserLoader
	UploadDir string

	CORSOrigins    []string
	RateLimitRPS   int
	RateLimitBurst int

	AuthHandler         *AuthHTTP
	UserHandler         *UserHTTP
	AddressHandler      *AddressHTTP
	CatalogHandler      *CatalogHTTP
	OrderHandler        *OrderHTTP
	TransactionHandler  *TransactionHTTP
	NotificationHandler *NotificationHTTP
}

// New builds the echo instance with the middleware chain and every route.
func New(d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = ErrorHandler

	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware())
	}
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: d.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(ratelimit.PerIP(d.RateLimitRPS, d.RateLimitBurst))

	Register(e, d)
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := db.Ping(c.Request().Context(), d.DB); err != nil {
			logging.FromContext(c.Request().Context()).Warn("ready_error", "status", 503, "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}
	if d.UploadDir != "" {
		e.Static(strings.TrimSuffix(upload.URLPrefix, "/"), d.UploadDir)
	}

	protected := authmw.Bearer(d.JWTSecret)
	loadUser := authmw.LoadUser(d.Users)
	admin := authmw.RequireAdmin

	v1 := e.Group("/api/v1")

	a := v1.Group("/auth")
	a.POST("/signup", d.AuthHandler.Signup)
	a.POST("/login", d.AuthHandler.Login)
	a.POST("/refresh", d.AuthHandler.Refresh)
	a.POST("/logout", d.AuthHandler.Logout)
	a.GET("/me", d.AuthHandler.Me, protected, loadUser)

	users := v1.Group("/users", protected, loadUser)
	users.GET("", d.UserHandler.List, admin)
	users.GET("/profile", d.UserHandler.Profile)
	users.PUT("/profile", d.UserHandler.UpdateProfile)
	users.PUT("/password", d.UserHandler.ChangePassword)
	users.POST("/avatar", d.UserHandler.UploadAvatar)
	users.DELETE("/account", d.UserHandler.Deactivate)
	users.GET("/stats", d.UserHandler.Stats)
	users.GET("/favorites", d.UserHandler.Favorites)
	users.POST("/favorites/:productId", d.UserHandler.AddFavorite)
	users.DELETE("/favorites/:productId", d.UserHandler.RemoveFavorite)

	addresses := v1.Group("/addresses", protected, loadUser)
	addresses.GET("", d.AddressHandler.List)
	addresses.GET("/default", d.AddressHandler.Default)
	addresses.POST("", d.AddressHandler.Create)
	addresses.GET("/:id", d.AddressHandler.Get)
	addresses.PUT("/:id", d.AddressHandler.Update)
	addresses.DELETE("/:id", d.AddressHandler.Delete)
	addresses.PATCH("/:id/default", d.AddressHandler.SetDefault)

	products := v1.Group("/products")
	products.GET("", d.CatalogHandler.ListProducts)
	products.GET("/search", d.CatalogHandler.SearchProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)

	adminProducts := products.Group("", protected, loadUser, admin)
	adminProducts.POST("", d.CatalogHandler.CreateProduct)
	adminProducts.PUT("/:id", d.CatalogHandler.UpdateProduct)
	adminProducts.DELETE("/:id", d.CatalogHandler.DeleteProduct)
	adminProducts.PATCH("/:id/stock", d.CatalogHandler.UpdateStock)
	adminProducts.POST("/:id/image", d.CatalogHandler.UploadProductImage)

	categories := v1.Group("/categories")
	categories.GET("", d.CatalogHandler.ListCategories)
	categories.GET("/:id", d.CatalogHandler.GetCategory)
	categories.GET("/:id/products", d.CatalogHandler.CategoryProducts)

	adminCategories := categories.Group("", protected, loadUser, admin)
	adminCategories.POST("", d.CatalogHandler.CreateCategory)
	adminCategories.PUT("/:id", d.CatalogHandler.UpdateCategory)
	adminCategories.DELETE("/:id", d.CatalogHandler.DeleteCategory)
	adminCategories.POST("/:id/image", d.CatalogHandler.UploadCategoryImage)

	orders := v1.Group("/orders", protected, loadUser)
	orders.POST("", d.OrderHandler.Place)
	orders.GET("", d.OrderHandler.List)
	orders.GET("/stats", d.OrderHandler.Stats)
	orders.GET("/admin/all", d.OrderHandler.ListAll, admin)
	orders.GET("/:id", d.OrderHandler.Get)
	orders.GET("/:id/track", d.OrderHandler.Track)
	orders.PATCH("/:id/cancel", d.OrderHandler.Cancel)
	orders.POST("/:id/reorder", d.OrderHandler.Reorder)
	orders.POST("/:id/rate", d.OrderHandler.Rate)
	orders.PATCH("/:id/status", d.OrderHandler.UpdateStatus, admin)

	txns := v1.Group("/transactions", protected, loadUser)
	txns.GET("", d.TransactionHandler.List)
	txns.GET("/stats", d.TransactionHandler.Stats)
	txns.GET("/:id", d.TransactionHandler.Get)

	notes := v1.Group("/notifications", protected, loadUser)
	notes.GET("", d.NotificationHandler.List)
	notes.GET("/unread-count", d.NotificationHandler.UnreadCount)
	notes.PATCH("/read-all", d.NotificationHandler.MarkAllRead)
	notes.PATCH("/:id/read", d.NotificationHandler.MarkRead)
	notes.DELETE("/:id", d.NotificationHandler.Delete)
	notes.DELETE("", d.NotificationHandler.DeleteMany)
}
