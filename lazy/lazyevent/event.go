// Copyright (c) 2017 Uber Technologies, Inc.
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

package lazyevent

import "time"

// Event defines an event emitted by the loader.
type Event interface {
	event() // Only this package can implement this interface.
}

// Passing events by type to make Event hashable in the future.
func (*Loading) event()      {}
func (*Loaded) event()       {}
func (*Supplied) event()     {}
func (*Provided) event()     {}
func (*Invoked) event()      {}
func (*HookExecuted) event() {}
func (*Resolved) event()     {}
func (*Stopped) event()      {}

// Loading is emitted before a module's dependency graph is built. It is not
// emitted when the module was already loaded.
type Loading struct {
	// ModuleName is the name of the module being loaded.
	ModuleName string
}

// Loaded is emitted after a Load call returns.
type Loaded struct {
	ModuleName string

	// Cached is true if the module had been loaded before and the existing
	// instance was returned.
	Cached bool

	// Runtime is how long the load took.
	Runtime time.Duration

	// Err is non-nil if the module failed to load.
	Err error
}

// Supplied is emitted after a value is added to a module's container with
// lazy.Supply or lazy.WithSupply.
type Supplied struct {
	ModuleName string

	// TypeName is the name of the type of value that was added.
	TypeName string

	Err error
}

// Provided is emitted when a constructor is added to a module's container.
type Provided struct {
	ModuleName string

	// ConstructorName is the name of the constructor that was provided.
	ConstructorName string

	// OutputTypeNames is a list of names of types that are produced by
	// this constructor.
	OutputTypeNames []string

	Err error
}

// Invoked is emitted after a function passed to lazy.Invoke ran.
type Invoked struct {
	ModuleName   string
	FunctionName string
	Err          error
}

// HookExecuted is emitted after a hook appended to a module's lifecycle
// has run.
type HookExecuted struct {
	ModuleName string

	// Method is the lifecycle hook method that was called: OnStart or
	// OnStop.
	Method string

	// FunctionName is the name of the hook function.
	FunctionName string

	// CallerName is the name of the function that appended the hook.
	CallerName string

	Runtime time.Duration
	Err     error
}

// Resolved is emitted after a lookup on a loaded module.
type Resolved struct {
	ModuleName string

	// TokenName is the token the lookup was keyed on.
	TokenName string

	Err error
}

// Stopped is emitted after the OnStop hooks of a module ran while the loader
// was stopping.
type Stopped struct {
	ModuleName string
	Err        error
}
