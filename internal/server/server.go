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

// Package server runs the gin engine behind an http.Server tied to the fx
// lifecycle.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lazycats/lazycats/internal/config"
)

// Module provides the engine and the HTTP server. Handlers join the engine
// by providing a Route with AsRoute.
var Module = fx.Module("server",
	fx.Provide(
		NewEngine,
		NewHTTPServer,
	),
	fx.Invoke(func(*Server) {}),
)

// A Route registers handlers on the engine.
type Route interface {
	Register(gin.IRoutes)
}

// AsRoute annotates the given constructor to state that it provides a
// Route to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// EngineParams are the dependencies of NewEngine.
type EngineParams struct {
	fx.In

	Config config.ServerConfig
	Log    *zap.Logger
	Routes []Route `group:"routes"`
}

// NewEngine builds a gin engine serving the given routes. Errors attached
// to the gin context by handlers, and panics, become generic 500 responses.
func NewEngine(p EngineParams) *gin.Engine {
	gin.SetMode(p.Config.Mode)

	log := p.Log.Named("http")
	engine := gin.New()
	engine.Use(
		RequestID(),
		AccessLog(log),
		gin.CustomRecovery(RecoveryHandler(log)),
		Errors(log),
	)
	engine.NoRoute(NotFound)

	for _, r := range p.Routes {
		r.Register(engine)
	}
	return engine
}

// Server is the service's HTTP server.
type Server struct {
	srv     *http.Server
	timeout time.Duration
	log     *zap.Logger

	mu   sync.Mutex
	addr net.Addr
}

// NewHTTPServer builds an HTTP server that will begin serving requests
// when the fx application starts. If serving fails, the application shuts
// down.
func NewHTTPServer(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg config.ServerConfig,
	engine *gin.Engine,
	log *zap.Logger,
) *Server {
	s := &Server{
		srv: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
		},
		timeout: cfg.ShutdownTimeout,
		log:     log,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", s.srv.Addr)
			if err != nil {
				return err
			}
			s.mu.Lock()
			s.addr = ln.Addr()
			s.mu.Unlock()

			log.Info("Starting HTTP server", zap.Stringer("addr", ln.Addr()))
			go func() {
				if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server failed", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: s.Shutdown,
	})
	return s
}

// Addr returns the address the server listens on, or nil if it has not
// started.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Shutdown gracefully stops the server, waiting at most the configured
// shutdown timeout for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.log.Info("Stopping HTTP server")
	return s.srv.Shutdown(ctx)
}
