package service

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gitlab.com/dirk.krummacker/contact-directory/internal/repository"
	"gitlab.com/dirk.krummacker/contact-directory/pkg/api"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// requestID tags every request with the id sent by the client, or a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// logRequests writes one log line per request after it has been answered.
func (s *Service) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String(requestIDKey, c.GetString(requestIDKey)),
		)
	}
}

func (s *Service) recoverPanic(c *gin.Context, recovered any) {
	s.log.Error("panic while serving request",
		zap.Any("panic", recovered),
		zap.String(requestIDKey, c.GetString(requestIDKey)))
	c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Message: api.MessageInternalError})
}

// storeError answers a request whose repository call failed.
func (s *Service) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, api.ErrorResponse{Message: api.MessageNotFound})
	case errors.Is(err, repository.ErrConflict):
		c.AbortWithStatusJSON(http.StatusConflict, api.ErrorResponse{
			Message: api.MessageConflict,
			Errors:  []api.FieldError{{Field: "email", Rule: "unique"}},
		})
	default:
		s.internalError(c, err)
	}
}

func (s *Service) internalError(c *gin.Context, err error) {
	s.log.Error("database request failed",
		zap.Error(err),
		zap.String(requestIDKey, c.GetString(requestIDKey)))
	c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Message: api.MessageInternalError})
}
