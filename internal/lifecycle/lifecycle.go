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

// Package lifecycle runs the start and stop hooks appended by the providers
// of a lazily loaded module.
package lifecycle

import (
	"context"
	"time"

	"go.uber.org/multierr"

	"github.com/lazycats/lazycats/internal/lazyreflect"
)

// A Hook is a pair of start and stop callbacks, either of which can be nil,
// plus a string identifying the supplier of the hook.
type Hook struct {
	OnStart func(context.Context) error
	OnStop  func(context.Context) error

	caller string
}

// HookRecord describes a single hook execution.
type HookRecord struct {
	Method       string // "OnStart" or "OnStop"
	FunctionName string
	CallerName   string
	Runtime      time.Duration
	Err          error
}

// Lifecycle coordinates the hooks of one module. It is not safe for
// concurrent use; the loader serializes access to it.
type Lifecycle struct {
	record     func(HookRecord)
	hooks      []Hook
	numStarted int
}

// New constructs a new Lifecycle. record, if non-nil, is called after every
// hook runs.
func New(record func(HookRecord)) *Lifecycle {
	if record == nil {
		record = func(HookRecord) {}
	}
	return &Lifecycle{record: record}
}

// Append adds a Hook to the lifecycle.
func (l *Lifecycle) Append(hook Hook) {
	hook.caller = lazyreflect.Caller()
	l.hooks = append(l.hooks, hook)
}

// Len reports the number of appended hooks.
func (l *Lifecycle) Len() int { return len(l.hooks) }

// Start runs pending OnStart hooks in the order they were appended,
// returning immediately if one fails. Hooks that already started are
// skipped, so Start may be called again after more hooks were appended.
func (l *Lifecycle) Start(ctx context.Context) error {
	for ; l.numStarted < len(l.hooks); l.numStarted++ {
		hook := l.hooks[l.numStarted]
		if hook.OnStart == nil {
			continue
		}
		if err := l.run(ctx, "OnStart", hook.caller, hook.OnStart); err != nil {
			return err
		}
	}
	return nil
}

// Stop runs any OnStop hooks whose OnStart counterpart succeeded. OnStop
// hooks run in reverse order.
func (l *Lifecycle) Stop(ctx context.Context) error {
	var errs []error
	for ; l.numStarted > 0; l.numStarted-- {
		hook := l.hooks[l.numStarted-1]
		if hook.OnStop == nil {
			continue
		}
		errs = append(errs, l.run(ctx, "OnStop", hook.caller, hook.OnStop))
	}
	return multierr.Combine(errs...)
}

func (l *Lifecycle) run(ctx context.Context, method, caller string, fn func(context.Context) error) error {
	begin := time.Now()
	err := fn(ctx)
	l.record(HookRecord{
		Method:       method,
		FunctionName: lazyreflect.FuncName(fn),
		CallerName:   caller,
		Runtime:      time.Since(begin),
		Err:          err,
	})
	return err
}
