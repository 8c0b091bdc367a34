package httpapi

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/telegram-shop-bot/internal/domain/entity"
	"github.com/yourusername/telegram-shop-bot/internal/domain/repository"
	"github.com/yourusername/telegram-shop-bot/internal/usecase"
)

// Uploaded product photos are capped before decoding.
const maxUploadBytes = 10 << 20

// handleProducts returns the full product list for the admin view.
func (s *Server) handleProducts(c *gin.Context) {
	products, err := s.catalog.ListAll(c.Request.Context(), c.Query("q"), c.Query("category"))
	if err != nil {
		s.log.Error().Err(err).Msg("list products failed")
		fail(c, http.StatusInternalServerError, "storage error")
		return
	}
	if products == nil {
		products = []entity.Product{}
	}
	ok(c, gin.H{"items": products})
}

// handleCatalog returns active products for the storefront.
func (s *Server) handleCatalog(c *gin.Context) {
	products, err := s.catalog.ListActive(c.Request.Context(), c.Query("q"), c.Query("category"))
	if err != nil {
		s.log.Error().Err(err).Msg("list catalog failed")
		fail(c, http.StatusInternalServerError, "storage error")
		return
	}
	if products == nil {
		products = []entity.Product{}
	}
	ok(c, gin.H{"items": products})
}

// handleUpsertProduct creates or partially updates a product by SKU.
func (s *Server) handleUpsertProduct(c *gin.Context) {
	var patch entity.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, "bad json")
		return
	}

	err := s.catalog.Upsert(c.Request.Context(), c.Param("sku"), patch)
	switch {
	case errors.Is(err, usecase.ErrEmptySKU),
		errors.Is(err, usecase.ErrBadAvailability),
		errors.Is(err, usecase.ErrNegativePrice):
		fail(c, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.log.Error().Err(err).Str("sku", c.Param("sku")).Msg("upsert failed")
		fail(c, http.StatusInternalServerError, "storage error")
		return
	}
	ok(c, nil)
}

// handleDeactivateProduct hides a product from the storefront.
func (s *Server) handleDeactivateProduct(c *gin.Context) {
	err := s.catalog.Deactivate(c.Request.Context(), c.Param("sku"))
	switch {
	case errors.Is(err, usecase.ErrEmptySKU):
		fail(c, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, repository.ErrNotFound):
		fail(c, http.StatusNotFound, "product not found")
		return
	case err != nil:
		s.log.Error().Err(err).Str("sku", c.Param("sku")).Msg("deactivate failed")
		fail(c, http.StatusInternalServerError, "storage error")
		return
	}
	ok(c, nil)
}

// handleUpload accepts a multipart image, normalizes it and returns its URL.
func (s *Server) handleUpload(c *gin.Context) {
	file, err := formImage(c)
	if err != nil {
		fail(c, http.StatusBadRequest, "no file")
		return
	}

	src, err := file.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, "no file")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes))
	if err != nil || len(data) == 0 {
		fail(c, http.StatusBadRequest, "empty file")
		return
	}

	name, err := s.images.Process(data)
	if err != nil {
		fail(c, http.StatusBadRequest, "bad image")
		return
	}
	ok(c, gin.H{"url": "/uploads/" + name})
}

// handleOrders returns recent orders for the admin view.
func (s *Server) handleOrders(c *gin.Context) {
	orders, err := s.orders.ListRecent(c.Request.Context(), 100)
	if err != nil {
		s.log.Error().Err(err).Msg("list orders failed")
		fail(c, http.StatusInternalServerError, "storage error")
		return
	}
	if orders == nil {
		orders = []entity.Order{}
	}
	ok(c, gin.H{"items": orders})
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(c *gin.Context) {
	ok(c, gin.H{"status": "ok"})
}

// formImage accepts the field names the admin page may send.
func formImage(c *gin.Context) (*multipart.FileHeader, error) {
	for _, field := range []string{"file", "image", "photo"} {
		if f, err := c.FormFile(field); err == nil {
			return f, nil
		}
	}
	return nil, http.ErrMissingFile
}
