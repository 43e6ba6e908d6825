package rest

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/triviaquiz/internal/common"
	"github.com/dmitrijs2005/triviaquiz/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey = "request_id"
	identityKey  = "identity"
)

// requestID reuses a well-formed inbound X-Request-ID or mints one, and
// echoes it on the response.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

// accessLog logs one line per request. Bodies and headers are never logged.
func (h *Handler) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", c.GetString(requestIDKey),
		}
		if id, ok := identityFrom(c); ok {
			args = append(args, "user_id", id.ID)
		}

		ctx := c.Request.Context()
		switch {
		case c.Writer.Status() >= 500:
			h.logger.Error(ctx, "request", args...)
		case c.Writer.Status() >= 400:
			h.logger.Warn(ctx, "request", args...)
		default:
			h.logger.Info(ctx, "request", args...)
		}
	}
}

// authenticate resolves the bearer token into an identity for the rest of
// the chain. Any failure ends the request with 401.
func (h *Handler) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader(common.AuthorizationHeaderName))
		if !ok {
			h.abortWithError(c, common.ErrInvalidToken)
			return
		}

		identity, err := h.auth.ResolveToken(c.Request.Context(), token)
		if err != nil {
			h.abortWithError(c, err)
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func identityFrom(c *gin.Context) (*models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*models.Identity)
	return id, ok && id != nil
}

// withIdentity passes the resolved identity to h explicitly. Routes wrapped
// with it must sit behind authenticate.
func (h *Handler) withIdentity(fn func(c *gin.Context, identity *models.Identity)) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c)
		if !ok {
			h.abortWithError(c, common.ErrInvalidToken)
			return
		}
		fn(c, identity)
	}
}
