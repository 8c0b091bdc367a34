package httpapi

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yourusername/telegram-shop-bot/internal/infrastructure/imaging"
	"github.com/yourusername/telegram-shop-bot/internal/usecase"
)

// Server is the storefront/admin HTTP API.
type Server struct {
	catalog   usecase.CatalogUseCase
	orders    usecase.OrderUseCase
	images    *imaging.Processor
	publicDir string
	notifier  OrderNotifier
	log       zerolog.Logger
}

// NewServer builds the HTTP API server.
func NewServer(
	catalog usecase.CatalogUseCase,
	orders usecase.OrderUseCase,
	images *imaging.Processor,
	publicDir string,
	log zerolog.Logger,
) *Server {
	return &Server{
		catalog:   catalog,
		orders:    orders,
		images:    images,
		publicDir: publicDir,
		log:       log,
	}
}

// Router wires all routes onto a gin engine.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	api := router.Group("/api")
	{
		api.GET("/products", s.handleProducts)
		api.GET("/catalog", s.handleCatalog)
		api.PUT("/products/:sku", s.handleUpsertProduct)
		api.DELETE("/products/:sku", s.handleDeactivateProduct)
		api.POST("/upload", s.handleUpload)
		api.POST("/checkout", s.handleCheckout)
		api.GET("/orders", s.handleOrders)
	}

	router.GET("/health", s.handleHealth)

	// Static surfaces: uploaded images plus the WebApp pages.
	router.Static("/uploads", s.images.UploadDir())
	router.StaticFile("/index.html", filepath.Join(s.publicDir, "index.html"))
	router.StaticFile("/admin.html", filepath.Join(s.publicDir, "admin.html"))
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/index.html")
	})

	return router
}

// Run starts the server on addr and blocks.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("http request")
	}
}

// ok renders the success envelope, merging any extra fields.
func ok(c *gin.Context, extra gin.H) {
	body := gin.H{"ok": true}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// fail renders the error envelope.
func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"ok": false, "error": msg})
}
