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

// Package cats is the feature module loaded on demand by the /cats/lazy
// route. It is never part of the application's startup graph; it registers
// a descriptor with a lazy.Registry instead.
package cats

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lazycats/lazycats/lazy"
)

// ModuleName is the name the module is registered under.
const ModuleName = "cats"

// Config seeds the module's repository. The host supplies it to the
// loader.
type Config struct {
	Names []string
}

// ServiceToken identifies the Service within a loaded cats module.
var ServiceToken = lazy.TypeOf[*Service]()

// Module describes the cats module.
func Module() *lazy.Descriptor {
	return lazy.Module(ModuleName,
		lazy.Provide(
			NewMemoryRepository,
			NewService,
		),
	)
}

// Register adds the cats module to r.
func Register(r *lazy.Registry) error {
	return r.Register(ModuleName, func() (*lazy.Descriptor, error) {
		return Module(), nil
	})
}

// Repository lists cats.
type Repository interface {
	List(ctx context.Context) ([]string, error)
}

type memoryRepository struct {
	names []string
}

// NewMemoryRepository builds a Repository holding the configured names.
func NewMemoryRepository(cfg Config) Repository {
	names := make([]string, len(cfg.Names))
	copy(names, cfg.Names)
	return &memoryRepository{names: names}
}

func (r *memoryRepository) List(context.Context) ([]string, error) {
	return r.names, nil
}

// Service is the cats module's public service.
type Service struct {
	repo Repository
	log  *zap.Logger
}

var _ zapcore.ObjectMarshaler = (*Service)(nil)

// NewService builds a Service over repo.
func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.Named(ModuleName),
	}
}

// FindAll returns every cat, in order. The returned slice belongs to the
// caller.
func (s *Service) FindAll(ctx context.Context) ([]string, error) {
	names, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cats: %w", err)
	}

	out := make([]string, len(names))
	copy(out, names)
	s.log.Debug("listed cats", zap.Int("count", len(out)))
	return out, nil
}

// MarshalLogObject describes the service for structured logs.
func (s *Service) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("service", "cats.Service")
	enc.AddString("repository", fmt.Sprintf("%T", s.repo))
	return nil
}
