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
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lazycats/lazycats/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type routeFunc func(gin.IRoutes)

func (f routeFunc) Register(r gin.IRoutes) { f(r) }

func newTestEngine(t *testing.T, routes ...Route) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	engine := NewEngine(EngineParams{
		Config: config.ServerConfig{Mode: gin.TestMode},
		Log:    zap.New(core),
		Routes: routes,
	})
	return engine, logs
}

func serve(engine http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestRequestID(t *testing.T) {
	var seen string
	engine, _ := newTestEngine(t, routeFunc(func(r gin.IRoutes) {
		r.GET("/id", func(c *gin.Context) {
			seen = GetRequestID(c)
			c.Status(http.StatusNoContent)
		})
	}))

	t.Run("Generated", func(t *testing.T) {
		rec := serve(engine, http.MethodGet, "/id", nil)

		id := rec.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err, "expected a UUID, got %q", id)
		assert.Equal(t, id, seen)
	})

	t.Run("Upstream", func(t *testing.T) {
		rec := serve(engine, http.MethodGet, "/id", http.Header{RequestIDHeader: {"abc-123"}})

		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", seen)
	})

	t.Run("MalformedUpstream", func(t *testing.T) {
		rec := serve(engine, http.MethodGet, "/id", http.Header{RequestIDHeader: {"no spaces allowed"}})

		id := rec.Header().Get(RequestIDHeader)
		assert.NotEqual(t, "no spaces allowed", id)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})
}

func TestAccessLog(t *testing.T) {
	engine, logs := newTestEngine(t, routeFunc(func(r gin.IRoutes) {
		r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	}))

	tests := []struct {
		path   string
		status int
		level  zapcore.Level
	}{
		{"/ok", http.StatusOK, zapcore.InfoLevel},
		{"/missing", http.StatusNotFound, zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			logs.TakeAll()
			rec := serve(engine, http.MethodGet, tt.path, nil)
			require.Equal(t, tt.status, rec.Code)

			entries := logs.FilterMessage("request").AllUntimed()
			require.Len(t, entries, 1)
			entry := entries[0]
			assert.Equal(t, tt.level, entry.Level)

			fields := entry.ContextMap()
			assert.Equal(t, http.MethodGet, fields["method"])
			assert.Equal(t, tt.path, fields["path"])
			assert.EqualValues(t, tt.status, fields["status"])
			assert.Equal(t, rec.Header().Get(RequestIDHeader), fields["request_id"])
			assert.Contains(t, fields, "latency")
		})
	}
}

func TestErrors(t *testing.T) {
	engine, logs := newTestEngine(t, routeFunc(func(r gin.IRoutes) {
		r.GET("/fail", func(c *gin.Context) {
			_ = c.Error(errors.New("secret detail"))
		})
		r.GET("/written", func(c *gin.Context) {
			c.String(http.StatusTeapot, "short and stout")
			_ = c.Error(errors.New("after write"))
		})
		r.GET("/panic", func(c *gin.Context) {
			panic("great sadness")
		})
	}))

	t.Run("AttachedError", func(t *testing.T) {
		rec := serve(engine, http.MethodGet, "/fail", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"statusCode":500,"message":"Internal server error"}`, rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "secret detail")

		entries := logs.FilterMessage("request failed").AllUntimed()
		require.Len(t, entries, 1)
		assert.Equal(t, "secret detail", entries[0].ContextMap()["error"])
	})

	t.Run("AlreadyWritten", func(t *testing.T) {
		rec := serve(engine, http.MethodGet, "/written", nil)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "short and stout", rec.Body.String())
	})

	t.Run("Panic", func(t *testing.T) {
		rec := serve(engine, http.MethodGet, "/panic", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"statusCode":500,"message":"Internal server error"}`, rec.Body.String())
		assert.Equal(t, 1, logs.FilterMessage("panic while handling request").Len())
	})
}

func TestNotFound(t *testing.T) {
	engine, _ := newTestEngine(t)

	rec := serve(engine, http.MethodGet, "/nope", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t,
		`{"statusCode":404,"message":"Cannot GET /nope","error":"Not Found"}`,
		rec.Body.String())
}
