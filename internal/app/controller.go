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

package app

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lazycats/lazycats/internal/cats"
	"github.com/lazycats/lazycats/internal/greeting"
	"github.com/lazycats/lazycats/lazy"
)

// ControllerParams are the dependencies of NewController.
type ControllerParams struct {
	fx.In

	Greeter  *greeting.Service
	Registry *lazy.Registry
	Loader   *lazy.Loader
	Log      *zap.Logger
}

// Controller serves the greeting and the lazily loaded cats.
type Controller struct {
	greeter  *greeting.Service
	registry *lazy.Registry
	loader   *lazy.Loader
	log      *zap.Logger
}

// NewController builds a Controller.
func NewController(p ControllerParams) *Controller {
	return &Controller{
		greeter:  p.Greeter,
		registry: p.Registry,
		loader:   p.Loader,
		log:      p.Log.Named("app"),
	}
}

// Register adds the controller's routes.
func (ctl *Controller) Register(r gin.IRoutes) {
	r.GET("/", ctl.Hello)
	r.GET("/cats/lazy", ctl.LazyCats)
}

// Hello answers with the greeting.
func (ctl *Controller) Hello(c *gin.Context) {
	c.String(http.StatusOK, ctl.greeter.Hello())
}

// LazyCats loads the cats module on demand and lists its cats.
func (ctl *Controller) LazyCats(c *gin.Context) {
	ctx := c.Request.Context()

	fn, err := ctl.registry.Resolve(cats.ModuleName)
	if err != nil {
		_ = c.Error(err)
		return
	}

	ref, err := ctl.loader.Load(ctx, fn)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ctl.log.Info("cat module lazily loaded", zap.Object("module", ref))

	v, err := ref.Get(cats.ServiceToken)
	if err != nil {
		_ = c.Error(err)
		return
	}
	svc, ok := v.(*cats.Service)
	if !ok {
		_ = c.Error(fmt.Errorf("%v resolved to %T", cats.ServiceToken, v))
		return
	}
	ctl.log.Info("cat service lazily loaded", zap.Object("service", svc))

	names, err := svc.FindAll(ctx)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, names)
}
