// Package httpapi exposes the catalog over JSON HTTP.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goliatone/go-catalog/auth"
	"github.com/goliatone/go-catalog/catalog"
	"github.com/goliatone/go-catalog/failure"
)

// Tokens is the token lifecycle the auth endpoints need.
type Tokens interface {
	auth.Verifier
	Refresh(ctx context.Context, token string) (string, auth.Claims, error)
	Revoke(ctx context.Context, token string) error
}

// NewRouter builds the gin engine serving svc under /api/v1.
func NewRouter(svc *catalog.Service, tokens Tokens, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	h := &handler{svc: svc, tokens: tokens}

	v1 := r.Group("/api/v1")
	v1.POST("/auth/refresh", h.refreshToken)
	v1.POST("/auth/revoke", h.revokeToken)

	api := v1.Group("", Authenticate(tokens, logger))
	{
		api.GET("/currencies", h.listCurrencies)
		api.GET("/currencies/:id", h.getCurrency)
		api.POST("/currencies", h.createCurrency)
		api.PATCH("/currencies/:id", h.updateCurrency)
		api.DELETE("/currencies/:id", h.deleteCurrency)

		api.GET("/qr-codes", h.listQRCodes)
		api.GET("/qr-codes/:id", h.getQRCode)
		api.POST("/qr-codes", h.createQRCode)
		api.PATCH("/qr-codes/:id", h.updateQRCode)
		api.DELETE("/qr-codes/:id", h.deleteQRCode)

		api.GET("/products", h.listProducts)
		api.GET("/products/:id", h.getProduct)
		api.POST("/products", h.createProduct)
		api.PATCH("/products/:id", h.updateProduct)
		api.DELETE("/products/:id", h.deleteProduct)

		api.GET("/nodes/:id", h.node)
	}

	return r
}

type handler struct {
	svc    *catalog.Service
	tokens Tokens
}

type tokenPayload struct {
	Token string `json:"token" binding:"required"`
}

func (h *handler) refreshToken(c *gin.Context) {
	var p tokenPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "token", err)
		return
	}

	token, claims, err := h.tokens.Refresh(c.Request.Context(), p.Token)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expires_at": claims.ExpiresAt})
}

func (h *handler) revokeToken(c *gin.Context) {
	var p tokenPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "token", err)
		return
	}

	if err := h.tokens.Revoke(c.Request.Context(), p.Token); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"revoked": true})
}

func (h *handler) node(c *gin.Context) {
	rec, err := h.svc.Node(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if rec == nil {
		writeError(c, failure.NotFound("Node"))
		return
	}
	c.JSON(http.StatusOK, rec)
}
