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

// Package lazyreflect holds the reflection helpers shared by the lazy
// loader and its event loggers.
package lazyreflect

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

var _errType = reflect.TypeOf((*error)(nil)).Elem()

// ReturnTypes takes a func and returns a slice of string'd types,
// skipping the trailing error if there is one.
func ReturnTypes(t interface{}) []string {
	rtypes := []string{}
	fn := reflect.ValueOf(t).Type()
	if fn.Kind() != reflect.Func {
		return rtypes
	}

	for i := 0; i < fn.NumOut(); i++ {
		if !IsErr(fn.Out(i)) {
			rtypes = append(rtypes, fn.Out(i).String())
		}
	}

	return rtypes
}

// IsErr reports whether t is the error interface or implements it.
func IsErr(t reflect.Type) bool {
	return t.Implements(_errType)
}

// Caller returns the formatted calling func name
func Caller() string {
	// Ascend at most 8 frames looking for a caller outside the loader.
	pcs := make([]uintptr, 8)

	// Don't include this frame.
	n := runtime.Callers(1, pcs)
	if n == 0 {
		return "n/a"
	}

	frames := runtime.CallersFrames(pcs[:n])
	for f, more := frames.Next(); ; f, more = frames.Next() {
		if !shouldIgnoreFrame(f) {
			return f.Function
		}
		if !more {
			break
		}
	}
	return "n/a"
}

// FuncName returns a funcs formatted name
func FuncName(fn interface{}) string {
	fnV := reflect.ValueOf(fn)
	if fnV.Kind() != reflect.Func {
		return "n/a"
	}

	fnName := runtime.FuncForPC(fnV.Pointer()).Name()
	return fmt.Sprintf("%s()", fnName)
}

const _pkgPrefix = "github.com/lazycats/lazycats/"

var _ignoredPackages = []string{
	_pkgPrefix + "lazy.",
	_pkgPrefix + "internal/lazyreflect.",
	_pkgPrefix + "internal/lifecycle.",
}

// Ascend the call stack until we leave the loader's production code. This
// avoids hard-coding a frame skip, so wrapped callers still resolve.
func shouldIgnoreFrame(f runtime.Frame) bool {
	if strings.HasSuffix(f.File, "_test.go") {
		return false
	}
	for _, pkg := range _ignoredPackages {
		if strings.HasPrefix(f.Function, pkg) {
			return true
		}
	}
	return strings.HasPrefix(f.Function, "runtime.")
}
