package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/astrochat/internal/common"
	"github.com/dmitrijs2005/astrochat/internal/server/auth"
	"github.com/dmitrijs2005/astrochat/internal/server/session"
)

const (
	requestIDKey    = "request_id"
	sessionKey      = "session"
	requestIDHeader = "X-Request-ID"
)

// requestID tags every request with an id, reusing a well-formed incoming one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *HTTPServer) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
			"request_id", c.GetString(requestIDKey))
	}
}

// accessToken resolves the bearer token to a live session.
func (s *HTTPServer) accessToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}

		claims, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}

		sess, err := s.gateway.Session(claims.SessionID)
		if err != nil || sess.UserID() != claims.UserID {
			respondError(c, http.StatusUnauthorized, "session not found", nil)
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}
