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

package lazy

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"go.uber.org/dig"
	"go.uber.org/multierr"
	"golang.org/x/sync/singleflight"

	"github.com/lazycats/lazycats/internal/lazyreflect"
	"github.com/lazycats/lazycats/internal/lifecycle"
	"github.com/lazycats/lazycats/lazy/lazyevent"
)

// A LoaderOption configures a Loader.
type LoaderOption interface {
	applyLoaderOption(*Loader)
}

type loaderOptionFunc func(*Loader)

func (f loaderOptionFunc) applyLoaderOption(l *Loader) { f(l) }

// WithLogger sets the logger that receives the Loader's events.
// Defaults to lazyevent.NopLogger.
func WithLogger(log lazyevent.Logger) LoaderOption {
	return loaderOptionFunc(func(l *Loader) {
		l.log = log
	})
}

// WithSupply makes the given values available to every module the Loader
// builds, as if each module had been given lazy.Supply(values...).
//
// WithSupply panics if a value (or annotation target) is an untyped nil or
// an error.
func WithSupply(values ...interface{}) LoaderOption {
	ps := supplies(supplyConstructors(values), lazyreflect.Caller())
	return loaderOptionFunc(func(l *Loader) {
		l.supplies = append(l.supplies, ps...)
	})
}

// Loader builds lazily loaded modules and keeps them for the rest of its
// life. The zero value is not usable; construct one with NewLoader.
//
// A Loader is safe for concurrent use.
type Loader struct {
	log      lazyevent.Logger
	supplies []provide
	group    singleflight.Group

	mu      sync.Mutex
	refs    map[string]*Ref
	order   []*Ref // load order
	stopped bool
}

// NewLoader builds a new Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		log:  lazyevent.NopLogger,
		refs: make(map[string]*Ref),
	}
	for _, opt := range opts {
		opt.applyLoaderOption(l)
	}
	return l
}

// Load returns the loaded module described by fn, building its dependency
// graph if this is the first time the module is loaded.
//
// fn is called on every Load. Concurrent loads of a module that is not yet
// built share a single construction. If ctx is cancelled while waiting on
// the construction, Load returns ctx.Err() but the construction carries on
// for the other callers.
//
// Errors other than context errors are *LoadError.
func (l *Loader) Load(ctx context.Context, fn DescriptorFunc) (*Ref, error) {
	if fn == nil {
		return nil, &LoadError{Err: errors.New("nil descriptor function")}
	}
	mod, err := fn()
	if err == nil && mod == nil {
		err = errors.New("descriptor function returned no module")
	}
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	if mod.name == "" {
		return nil, &LoadError{Err: errors.New("module name must not be empty")}
	}

	ref, ok, err := l.loaded(mod.name)
	if err != nil {
		return nil, err
	}
	if ok {
		l.log.LogEvent(&lazyevent.Loaded{ModuleName: mod.name, Cached: true})
		return ref, nil
	}

	// The construction outlives the caller that started it.
	buildCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan(mod.name, func() (interface{}, error) {
		return l.build(buildCtx, mod)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Ref), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Loaded returns the names of the loaded modules, in load order.
func (l *Loader) Loaded() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	names := make([]string, len(l.order))
	for i, ref := range l.order {
		names[i] = ref.name
	}
	return names
}

// Stop runs the OnStop hooks of every loaded module, most recently loaded
// module first. Errors are collected; one module failing to stop does not
// prevent the others from stopping. Loads after Stop fail with
// ErrLoaderStopped.
//
// Calling Stop more than once is a no-op.
func (l *Loader) Stop(ctx context.Context) error {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return nil
	}
	l.stopped = true
	refs := l.order
	l.mu.Unlock()

	var err error
	for i := len(refs) - 1; i >= 0; i-- {
		err = multierr.Append(err, l.stopRef(ctx, refs[i]))
	}
	return err
}

func (l *Loader) stopRef(ctx context.Context, ref *Ref) error {
	err := ref.lc.Stop(ctx)
	l.log.LogEvent(&lazyevent.Stopped{ModuleName: ref.name, Err: err})
	if err != nil {
		return fmt.Errorf("stop module %q: %w", ref.name, err)
	}
	return nil
}

func (l *Loader) loaded(name string) (*Ref, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopped {
		return nil, false, &LoadError{Module: name, Err: ErrLoaderStopped}
	}
	ref, ok := l.refs[name]
	return ref, ok, nil
}

func (l *Loader) build(ctx context.Context, mod *Descriptor) (_ *Ref, err error) {
	// Another load may have finished between the caller's check and
	// joining the flight.
	if ref, ok, lerr := l.loaded(mod.name); lerr != nil || ok {
		return ref, lerr
	}

	l.log.LogEvent(&lazyevent.Loading{ModuleName: mod.name})
	begin := time.Now()
	defer func() {
		if err != nil {
			err = &LoadError{Module: mod.name, Err: err}
		}
		l.log.LogEvent(&lazyevent.Loaded{
			ModuleName: mod.name,
			Runtime:    time.Since(begin),
			Err:        err,
		})
	}()

	b := &builder{
		name:      mod.name,
		log:       l.log,
		container: dig.New(),
		instances: make(map[Token]reflect.Value),
	}
	b.lc = lifecycle.New(func(r lifecycle.HookRecord) {
		l.log.LogEvent(&lazyevent.HookExecuted{
			ModuleName:   mod.name,
			Method:       r.Method,
			FunctionName: r.FunctionName,
			CallerName:   r.CallerName,
			Runtime:      r.Runtime,
			Err:          r.Err,
		})
	})

	ref, err := b.build(ctx, l.supplies, mod)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	stopped := l.stopped
	if !stopped {
		l.refs[mod.name] = ref
		l.order = append(l.order, ref)
	}
	l.mu.Unlock()

	if stopped {
		// The loader stopped while the module was being built; nobody will
		// stop it later.
		return nil, multierr.Append(ErrLoaderStopped, l.stopRef(ctx, ref))
	}
	return ref, nil
}

// builder constructs the graph of a single module.
type builder struct {
	name      string
	log       lazyevent.Logger
	container *dig.Container
	lc        *lifecycle.Lifecycle
	tokens    []Token
	instances map[Token]reflect.Value
}

func (b *builder) build(ctx context.Context, hostSupplies []provide, mod *Descriptor) (*Ref, error) {
	if err := b.container.Provide(func() Lifecycle {
		return &lifecycleWrapper{b.lc}
	}); err != nil {
		return nil, err
	}

	for _, p := range hostSupplies {
		// Host values are available to the module but are not part of it,
		// so they are not looked up through the Ref.
		if _, err := b.provide(p); err != nil {
			return nil, err
		}
	}

	var provided []Token
	for _, p := range mod.provides {
		tokens, err := b.provide(p)
		if err != nil {
			return nil, err
		}
		provided = append(provided, tokens...)
	}

	for _, t := range provided {
		if err := b.instantiate(t); err != nil {
			return nil, err
		}
	}

	for _, i := range mod.invokes {
		if err := b.invoke(i); err != nil {
			return nil, err
		}
	}

	if err := b.lc.Start(ctx); err != nil {
		return nil, multierr.Append(
			fmt.Errorf("start hooks: %w", err),
			b.lc.Stop(ctx),
		)
	}

	return &Ref{
		name:      b.name,
		tokens:    b.tokens,
		instances: b.instances,
		lc:        b.lc,
		log:       b.log,
	}, nil
}

func (b *builder) provide(p provide) (_ []Token, err error) {
	tokens, err := outputTokens(p)
	if err == nil {
		var opts []dig.ProvideOption
		if p.Name != "" {
			opts = append(opts, dig.Name(p.Name))
		}
		err = b.container.Provide(p.Target, opts...)
	}
	if err != nil {
		err = fmt.Errorf("lazy.Provide(%v) from %v failed: %w",
			lazyreflect.FuncName(p.Target), p.Caller, err)
	}

	if p.IsSupply {
		b.log.LogEvent(&lazyevent.Supplied{
			ModuleName: b.name,
			TypeName:   typeNames(tokens),
			Err:        err,
		})
	} else {
		outputNames := make([]string, len(tokens))
		for i, t := range tokens {
			outputNames[i] = t.String()
		}
		b.log.LogEvent(&lazyevent.Provided{
			ConstructorName: lazyreflect.FuncName(p.Target),
			ModuleName:      b.name,
			OutputTypeNames: outputNames,
			Err:             err,
		})
	}
	return tokens, err
}

func typeNames(tokens []Token) string {
	if len(tokens) == 0 {
		return "n/a"
	}
	return tokens[0].String()
}

var _inField = reflect.StructField{
	Name:      "In",
	Type:      reflect.TypeOf(dig.In{}),
	Anonymous: true,
}

// instantiate asks the container for the value identified by t and keeps
// it. For named tokens, the value is requested through a dig.In struct
// carrying the name tag.
func (b *builder) instantiate(t Token) error {
	var param reflect.Type
	if t.name == "" {
		param = t.typ
	} else {
		param = reflect.StructOf([]reflect.StructField{
			_inField,
			{
				Name: "Value",
				Type: t.typ,
				Tag:  reflect.StructTag(fmt.Sprintf(`name:"%s"`, t.name)),
			},
		})
	}

	var got reflect.Value
	fn := reflect.MakeFunc(
		reflect.FuncOf([]reflect.Type{param}, nil, false),
		func(args []reflect.Value) []reflect.Value {
			got = args[0]
			if t.name != "" {
				got = got.Field(1)
			}
			return nil
		},
	)
	if err := b.container.Invoke(fn.Interface()); err != nil {
		return fmt.Errorf("construct %v: %w", t, err)
	}

	b.tokens = append(b.tokens, t)
	b.instances[t] = got
	return nil
}

func (b *builder) invoke(i invoke) error {
	fnName := lazyreflect.FuncName(i.Target)
	err := b.container.Invoke(i.Target)
	if err != nil {
		err = fmt.Errorf("lazy.Invoke(%v) from %v failed: %w", fnName, i.Caller, err)
	}
	b.log.LogEvent(&lazyevent.Invoked{
		ModuleName:   b.name,
		FunctionName: fnName,
		Err:          err,
	})
	return err
}
