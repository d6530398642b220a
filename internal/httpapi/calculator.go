package httpapi

import (
	"errors"
	"net/http"

	"atelier/internal/session"

	"github.com/gin-gonic/gin"
)

type CalculatorHandler struct {
	sessions *session.Service
}

func NewCalculatorHandler(sessions *session.Service) *CalculatorHandler {
	return &CalculatorHandler{sessions: sessions}
}

//
// GET /api/catalog
//

func (h *CalculatorHandler) GetCatalog() gin.HandlerFunc {
	return func(c *gin.Context) {
		cat := h.sessions.Catalog()
		c.JSON(http.StatusOK, gin.H{
			"garments": cat.Garments(),
			"fabrics":  cat.Fabrics(),
			"services": cat.Services(),
		})
	}
}

//
// POST /api/sessions
//

func (h *CalculatorHandler) CreateSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := h.sessions.Create(c.Request.Context())
		if err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
			return
		}
		c.JSON(http.StatusCreated, sess)
	}
}

//
// GET /api/sessions/:id
//

func (h *CalculatorHandler) GetSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeSessionError(c, nil, err)
			return
		}
		c.JSON(http.StatusOK, sess)
	}
}

//
// DELETE /api/sessions/:id
//

func (h *CalculatorHandler) EndSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.sessions.End(c.Request.Context(), c.Param("id")); err != nil {
			writeSessionError(c, nil, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func (h *CalculatorHandler) ShowView() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			View session.View `json:"view" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		h.dispatch(c, session.ShowView{View: req.View})
	}
}

func (h *CalculatorHandler) SelectGarment() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			GarmentID string `json:"garment_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		h.dispatch(c, session.SelectGarment{GarmentID: req.GarmentID})
	}
}

func (h *CalculatorHandler) SelectFabric() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			FabricID string `json:"fabric_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		h.dispatch(c, session.SelectFabric{FabricID: req.FabricID})
	}
}

func (h *CalculatorHandler) ToggleService() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.dispatch(c, session.ToggleService{ServiceID: c.Param("serviceID")})
	}
}

// Calculate answers 422 with the unchanged session when the garment or
// fabric is missing.
func (h *CalculatorHandler) Calculate() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.dispatch(c, session.Calculate{})
	}
}

func (h *CalculatorHandler) Reset() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.dispatch(c, session.Reset{})
	}
}

func (h *CalculatorHandler) dispatch(c *gin.Context, cmd session.Command) {
	sess, err := h.sessions.Dispatch(c.Request.Context(), c.Param("id"), cmd)
	if err != nil {
		writeSessionError(c, sess, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func writeSessionError(c *gin.Context, sess *session.Session, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, session.ErrIncompleteSelection):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "session": sess})
	case session.IsRejection(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
