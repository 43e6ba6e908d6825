package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/triviaquiz/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		h.abortWithError(c, fmt.Errorf("panic: %v", recovered))
	})
}

func (h *Handler) notFound(c *gin.Context) {
	status, body := httpError(http.StatusNotFound)
	c.JSON(status, body)
}

func (h *Handler) methodNotAllowed(c *gin.Context) {
	status, body := httpError(http.StatusMethodNotAllowed)
	c.JSON(status, body)
}

// POST /auth/token
func (h *Handler) IssueToken(c *gin.Context) {
	var p credentialsPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		h.abortWithError(c, bindingError(err))
		return
	}

	identity, err := h.auth.Authenticate(c.Request.Context(), p.Email, p.Password)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	token, err := h.auth.IssueToken(identity)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, token)
}

// GET /auth/me
func (h *Handler) Me(c *gin.Context, identity *models.Identity) {
	u, err := h.auth.Me(c.Request.Context(), identity)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(u))
}

// POST /users
func (h *Handler) RegisterUser(c *gin.Context) {
	var p userPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		h.abortWithError(c, bindingError(err))
		return
	}

	u, err := h.users.Register(c.Request.Context(), p.input())
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newUserResponse(u))
}

// PUT /users/:userId
func (h *Handler) UpdateUser(c *gin.Context, identity *models.Identity) {
	id, err := parseID("userId", c.Param("userId"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	var p userPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		h.abortWithError(c, bindingError(err))
		return
	}

	u, err := h.users.Update(c.Request.Context(), identity, id, p.input())
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(u))
}

// DELETE /users/:userId
func (h *Handler) DeleteUser(c *gin.Context, identity *models.Identity) {
	id, err := parseID("userId", c.Param("userId"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	if err := h.users.Delete(c.Request.Context(), identity, id); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /quizzes
func (h *Handler) CreateQuiz(c *gin.Context, identity *models.Identity) {
	var p quizPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		h.abortWithError(c, bindingError(err))
		return
	}

	q, err := h.quizzes.Create(c.Request.Context(), identity, p.input())
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

// GET /quizzes
func (h *Handler) FindQuizzes(c *gin.Context, identity *models.Identity) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.abortWithError(c, queryBindingError(err))
		return
	}

	page, err := h.quizzes.Find(c.Request.Context(), identity, q.request())
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /quizzes/:quizId
func (h *Handler) GetQuiz(c *gin.Context, identity *models.Identity) {
	id, err := parseID("quizId", c.Param("quizId"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	q, err := h.quizzes.Get(c.Request.Context(), identity, id)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// PUT /quizzes/:quizId
func (h *Handler) UpdateQuiz(c *gin.Context, identity *models.Identity) {
	id, err := parseID("quizId", c.Param("quizId"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	var p quizPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		h.abortWithError(c, bindingError(err))
		return
	}

	q, err := h.quizzes.Update(c.Request.Context(), identity, id, p.input())
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// DELETE /quizzes/:quizId
func (h *Handler) DeleteQuiz(c *gin.Context, identity *models.Identity) {
	id, err := parseID("quizId", c.Param("quizId"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	if err := h.quizzes.Delete(c.Request.Context(), identity, id); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// healthStatus mirrors the shape of a typical health check report.
type healthStatus struct {
	Status  string                       `json:"status"`
	Details map[string]map[string]string `json:"details"`
}

// GET /healthz
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn(ctx, "health check failed", "error", err.Error())
		c.JSON(http.StatusServiceUnavailable, healthStatus{
			Status:  "error",
			Details: map[string]map[string]string{"postgres": {"status": "down", "message": err.Error()}},
		})
		return
	}

	c.JSON(http.StatusOK, healthStatus{
		Status:  "ok",
		Details: map[string]map[string]string{"postgres": {"status": "up"}},
	})
}
