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

// Package app assembles the lazycats service.
package app

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/lazycats/lazycats/internal/cats"
	"github.com/lazycats/lazycats/internal/config"
	"github.com/lazycats/lazycats/internal/greeting"
	"github.com/lazycats/lazycats/internal/logging"
	"github.com/lazycats/lazycats/internal/server"
	"github.com/lazycats/lazycats/lazy"
	"github.com/lazycats/lazycats/lazy/lazyevent"
)

// Module is the application graph. It expects a *config.Config.
//
// Lazily loadable modules are only registered here. They are built by the
// *lazy.Loader on first use, outside of this graph.
var Module = fx.Options(
	fx.Provide(
		ServerConfig,
		NewLogger,
		NewRegistry,
		NewLoader,
		greeting.NewService,
		server.AsRoute(NewController),
	),
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log.Named("fx")}
	}),
	server.Module,
)

// New builds the application for cfg.
func New(cfg *config.Config, opts ...fx.Option) *fx.App {
	return fx.New(
		fx.Supply(cfg),
		Module,
		fx.Options(opts...),
	)
}

// ServerConfig extracts the server settings.
func ServerConfig(cfg *config.Config) config.ServerConfig {
	return cfg.Server
}

// NewLogger builds the root logger.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log)
}

// NewRegistry builds the registry of lazily loadable modules.
func NewRegistry() (*lazy.Registry, error) {
	r := lazy.NewRegistry()
	if err := cats.Register(r); err != nil {
		return nil, err
	}
	return r, nil
}

// NewLoader builds the loader for lazy modules. Modules it loaded are
// stopped with the application.
func NewLoader(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) *lazy.Loader {
	l := lazy.NewLoader(
		lazy.WithLogger(&lazyevent.ZapLogger{Logger: log.Named("lazy")}),
		lazy.WithSupply(
			cats.Config{Names: cfg.Cats.Names},
			log,
		),
	)
	lc.Append(fx.Hook{OnStop: l.Stop})
	return l
}
