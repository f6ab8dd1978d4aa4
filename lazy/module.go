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
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/dig"

	"github.com/lazycats/lazycats/internal/lazyreflect"
)

// An Option configures a Descriptor.
type Option interface {
	fmt.Stringer

	apply(*Descriptor)
}

// Descriptor describes a lazily loaded module: a name plus the
// constructors, supplied values and invoke functions that make up its
// dependency graph.
//
// Descriptors are inert. Nothing is validated or constructed until a
// Loader loads the module.
type Descriptor struct {
	name     string
	options  []Option
	provides []provide
	invokes  []invoke
}

// Module builds a descriptor for a module with the given name.
func Module(name string, opts ...Option) *Descriptor {
	m := &Descriptor{name: name, options: opts}
	for _, opt := range opts {
		opt.apply(m)
	}
	return m
}

// Name returns the name of the module.
func (m *Descriptor) Name() string { return m.name }

func (m *Descriptor) String() string {
	items := []string{fmt.Sprintf("%q", m.name)}
	for _, opt := range m.options {
		items = append(items, opt.String())
	}
	return fmt.Sprintf("lazy.Module(%s)", strings.Join(items, ", "))
}

// DescriptorFunc returns the descriptor of a module. It's called on every
// load, so it should be cheap; building the module's graph is the Loader's
// job.
type DescriptorFunc func() (*Descriptor, error)

// Static adapts a descriptor built once into a DescriptorFunc.
func Static(m *Descriptor) DescriptorFunc {
	return func() (*Descriptor, error) { return m, nil }
}

// Options composes a collection of Options into a single Option.
func Options(opts ...Option) Option {
	return optionGroup(opts)
}

type optionGroup []Option

func (og optionGroup) apply(m *Descriptor) {
	for _, opt := range og {
		opt.apply(m)
	}
}

func (og optionGroup) String() string {
	items := make([]string, len(og))
	for i, opt := range og {
		items[i] = opt.String()
	}
	return fmt.Sprintf("lazy.Options(%s)", strings.Join(items, ", "))
}

// Annotated annotates a constructor provided to a module with a name.
// The value is then looked up with Named:
//
//	lazy.Provide(lazy.Annotated{Name: "ro", Target: NewReadOnlyRepository})
//	...
//	repo, err := lazy.GetNamed[Repository](ref, "ro")
type Annotated struct {
	Name   string
	Target interface{}
}

func (a Annotated) String() string {
	var fields []string
	if len(a.Name) > 0 {
		fields = append(fields, fmt.Sprintf("Name: %q", a.Name))
	}
	if a.Target != nil {
		fields = append(fields, fmt.Sprintf("Target: %v", lazyreflect.FuncName(a.Target)))
	}
	return fmt.Sprintf("lazy.Annotated{%v}", strings.Join(fields, ", "))
}

type provide struct {
	Target   interface{}
	Name     string
	Caller   string
	IsSupply bool
}

// Provide registers constructors with the module. Every value they
// produce is constructed when the module loads.
//
// Constructors may depend on other values provided by the module, on
// values supplied to the Loader, and on Lifecycle.
func Provide(constructors ...interface{}) Option {
	return provideOption{
		Targets: constructors,
		Caller:  lazyreflect.Caller(),
	}
}

type provideOption struct {
	Targets []interface{}
	Caller  string
}

func (o provideOption) apply(m *Descriptor) {
	for _, target := range o.Targets {
		p := provide{Target: target, Caller: o.Caller}
		if ann, ok := target.(Annotated); ok {
			p.Target = ann.Target
			p.Name = ann.Name
		}
		m.provides = append(m.provides, p)
	}
}

func (o provideOption) String() string {
	items := make([]string, len(o.Targets))
	for i, c := range o.Targets {
		if ann, ok := c.(Annotated); ok {
			items[i] = ann.String()
			continue
		}
		items[i] = lazyreflect.FuncName(c)
	}
	return fmt.Sprintf("lazy.Provide(%s)", strings.Join(items, ", "))
}

// Supply provides instantiated values to the module as if they had been
// provided using a constructor that simply returns them. The most specific
// type of each value (as determined by reflection) is used.
//
// Supply panics if a value (or annotation target) is an untyped nil or an
// error.
func Supply(values ...interface{}) Option {
	return supplyOption{
		Targets: supplyConstructors(values),
		Caller:  lazyreflect.Caller(),
	}
}

type supplyOption struct {
	Targets []interface{}
	Caller  string
}

func (o supplyOption) apply(m *Descriptor) {
	m.provides = append(m.provides, supplies(o.Targets, o.Caller)...)
}

func (o supplyOption) String() string {
	items := make([]string, 0, len(o.Targets))
	for _, target := range o.Targets {
		if ann, ok := target.(Annotated); ok {
			target = ann.Target
		}
		items = append(items, lazyreflect.ReturnTypes(target)...)
	}
	return fmt.Sprintf("lazy.Supply(%s)", strings.Join(items, ", "))
}

func supplyConstructors(values []interface{}) []interface{} {
	constructors := make([]interface{}, len(values)) // one function per value
	for i, value := range values {
		switch value := value.(type) {
		case Annotated:
			value.Target = newSupplyConstructor(value.Target)
			constructors[i] = value
		default:
			constructors[i] = newSupplyConstructor(value)
		}
	}
	return constructors
}

func supplies(constructors []interface{}, caller string) []provide {
	ps := make([]provide, len(constructors))
	for i, target := range constructors {
		p := provide{Target: target, Caller: caller, IsSupply: true}
		if ann, ok := target.(Annotated); ok {
			p.Target = ann.Target
			p.Name = ann.Name
		}
		ps[i] = p
	}
	return ps
}

// Returns a function that takes no parameters, and returns the given value.
func newSupplyConstructor(value interface{}) interface{} {
	switch value.(type) {
	case nil:
		panic("untyped nil passed to lazy.Supply")
	case error:
		panic("error value passed to lazy.Supply")
	}

	returnTypes := []reflect.Type{reflect.TypeOf(value)}
	returnValues := []reflect.Value{reflect.ValueOf(value)}

	ft := reflect.FuncOf([]reflect.Type{}, returnTypes, false)
	fv := reflect.MakeFunc(ft, func([]reflect.Value) []reflect.Value {
		return returnValues
	})

	return fv.Interface()
}

type invoke struct {
	Target interface{}
	Caller string
}

// Invoke registers functions that run once every provider of the module
// was constructed, in the order they were given. Their arguments are
// resolved from the module's graph. If a function returns an error as its
// last result, the load fails with it.
func Invoke(funcs ...interface{}) Option {
	return invokeOption{
		Targets: funcs,
		Caller:  lazyreflect.Caller(),
	}
}

type invokeOption struct {
	Targets []interface{}
	Caller  string
}

func (o invokeOption) apply(m *Descriptor) {
	for _, target := range o.Targets {
		m.invokes = append(m.invokes, invoke{Target: target, Caller: o.Caller})
	}
}

func (o invokeOption) String() string {
	items := make([]string, len(o.Targets))
	for i, f := range o.Targets {
		items[i] = lazyreflect.FuncName(f)
	}
	return fmt.Sprintf("lazy.Invoke(%s)", strings.Join(items, ", "))
}

var _typeOfOut = reflect.TypeOf(dig.Out{})

// outputTokens returns the tokens the constructor provides, or an error if
// the constructor can't be provided to a module.
func outputTokens(p provide) ([]Token, error) {
	ft := reflect.TypeOf(p.Target)
	if ft == nil || ft.Kind() != reflect.Func {
		return nil, fmt.Errorf("must provide constructor function, got %v (type %T)", p.Target, p.Target)
	}

	var tokens []Token
	for i := 0; i < ft.NumOut(); i++ {
		t := ft.Out(i)
		if lazyreflect.IsErr(t) {
			continue
		}
		if embedsOut(t) {
			return nil, fmt.Errorf("%v returns result object %v, which modules do not support",
				lazyreflect.FuncName(p.Target), t)
		}
		tokens = append(tokens, Token{typ: t, name: p.Name})
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%v must return at least one non-error value",
			lazyreflect.FuncName(p.Target))
	}
	return tokens, nil
}

func embedsOut(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); f.Anonymous && f.Type == _typeOfOut {
			return true
		}
	}
	return false
}
