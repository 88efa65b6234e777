package handlers

import (
	"net/http"

	"github.com/dealcraft/dealcraft-server/internal/models"
	"github.com/dealcraft/dealcraft-server/internal/users"
	"github.com/gin-gonic/gin"
)

// UserExistsMessage is returned instead of an insert result when the email is already stored.
const UserExistsMessage = "User already exist, don't need to insert again."

type UserHandler struct {
	svc *users.Service
}

func NewUserHandler(svc *users.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) Create(c *gin.Context) {
	var u models.Document
	if err := c.ShouldBindJSON(&u); err != nil {
		handleBindError(c, "users.create", err)
		return
	}
	res, existed, err := h.svc.Create(c.Request.Context(), u)
	if err != nil {
		respondError(c, "users.create", err)
		return
	}
	if existed {
		c.JSON(http.StatusOK, gin.H{"message": UserExistsMessage})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *UserHandler) Delete(c *gin.Context) {
	res, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "users.delete", err)
		return
	}
	c.JSON(http.StatusOK, res)
}
