// Copyright (c) 2026 The lazycats Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package server

import (
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// RequestIDHeader carries the request id on requests and responses.
	RequestIDHeader     = "X-Request-ID"
	requestIDContextKey = "request_id"
)

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// RequestID assigns every request an id. A well-formed upstream
// X-Request-ID is reused; otherwise a new UUID is generated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if !requestIDPattern.MatchString(id) {
			id = uuid.NewString()
		}

		c.Set(requestIDContextKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the id RequestID assigned to the request, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDContextKey)
}

// AccessLog logs every request once it was handled. 5xx responses are
// logged at error level, 4xx at warn level.
func AccessLog(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", GetRequestID(c)),
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("request", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

// ErrorBody is the JSON body of error responses.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error,omitempty"`
}

var internalError = ErrorBody{
	StatusCode: http.StatusInternalServerError,
	Message:    "Internal server error",
}

// Errors turns errors attached to the context with c.Error into a generic
// 500 response. Error details are logged, never sent to the client.
func Errors(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		for _, err := range c.Errors {
			log.Error("request failed",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err.Err),
			)
		}
		if !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusInternalServerError, internalError)
		}
	}
}

// RecoveryHandler renders panics as a generic 500 response.
func RecoveryHandler(log *zap.Logger) gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		log.Error("panic while handling request",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", GetRequestID(c)),
			zap.Any("panic", recovered),
			zap.Stack("stack"),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, internalError)
	}
}

// NotFound answers requests no route matched.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorBody{
		StatusCode: http.StatusNotFound,
		Message:    fmt.Sprintf("Cannot %s %s", c.Request.Method, c.Request.URL.Path),
		Error:      "Not Found",
	})
}
