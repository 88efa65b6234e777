package handlers

import (
	"net/http"

	"github.com/dealcraft/dealcraft-server/internal/models"
	"github.com/dealcraft/dealcraft-server/internal/products"
	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	svc *products.Service
}

func NewProductHandler(svc *products.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// List returns every product, or only the ones posted by ?email=.
func (h *ProductHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), c.Query("email"))
	if err != nil {
		respondError(c, "products.list", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ProductHandler) Recent(c *gin.Context) {
	list, err := h.svc.Recent(c.Request.Context())
	if err != nil {
		respondError(c, "products.recent", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get answers null for an unknown id.
func (h *ProductHandler) Get(c *gin.Context) {
	doc, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "products.get", err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var p models.Document
	if err := c.ShouldBindJSON(&p); err != nil {
		handleBindError(c, "products.create", err)
		return
	}
	res, err := h.svc.Create(c.Request.Context(), p)
	if err != nil {
		respondError(c, "products.create", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var p models.Document
	if err := c.ShouldBindJSON(&p); err != nil {
		handleBindError(c, "products.update", err)
		return
	}
	res, err := h.svc.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respondError(c, "products.update", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	res, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "products.delete", err)
		return
	}
	c.JSON(http.StatusOK, res)
}
