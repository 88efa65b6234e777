package handlers

import (
	"errors"
	"net/http"

	"github.com/dealcraft/dealcraft-server/internal/access"
	"github.com/dealcraft/dealcraft-server/internal/bids"
	"github.com/dealcraft/dealcraft-server/internal/models"
	"github.com/dealcraft/dealcraft-server/pkg/metrics"
	"github.com/gin-gonic/gin"
)

type BidHandler struct {
	svc *bids.Service
}

func NewBidHandler(svc *bids.Service) *BidHandler {
	return &BidHandler{svc: svc}
}

// List returns bids, scoped to ?email= when given. On a protected route the email
// must belong to the caller.
func (h *BidHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), c.Query("email"))
	if errors.Is(err, access.ErrForbidden) {
		metrics.BidsForbidden.Inc()
	}
	if err != nil {
		respondError(c, "bids.list", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ForProduct lists the bids placed on a product, highest first.
func (h *BidHandler) ForProduct(c *gin.Context) {
	list, err := h.svc.ForProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "bids.for_product", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BidHandler) Get(c *gin.Context) {
	doc, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "bids.get", err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *BidHandler) Create(c *gin.Context) {
	var b models.Document
	if err := c.ShouldBindJSON(&b); err != nil {
		handleBindError(c, "bids.create", err)
		return
	}
	res, err := h.svc.Create(c.Request.Context(), b)
	if err != nil {
		respondError(c, "bids.create", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *BidHandler) Delete(c *gin.Context) {
	res, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "bids.delete", err)
		return
	}
	c.JSON(http.StatusOK, res)
}
