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
	"errors"
	"fmt"
)

var (
	// ErrModuleNotFound is returned by Registry.Resolve when no module was
	// registered under the requested name.
	ErrModuleNotFound = errors.New("lazy: module not found")

	// ErrNotProvided matches lookups for tokens a module does not provide.
	ErrNotProvided = errors.New("lazy: not provided")

	// ErrLoaderStopped is returned when loading after the Loader stopped.
	ErrLoaderStopped = errors.New("lazy: loader stopped")
)

// LoadError is returned by Loader.Load when a module could not be built.
type LoadError struct {
	// Module is the name of the module, if its descriptor resolved.
	Module string

	Err error
}

func (e *LoadError) Error() string {
	if e.Module == "" {
		return fmt.Sprintf("lazy: could not resolve module: %v", e.Err)
	}
	return fmt.Sprintf("lazy: could not load module %q: %v", e.Module, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LookupError is returned by Ref.Get when the module does not provide the
// requested token. It matches ErrNotProvided.
type LookupError struct {
	Module string
	Token  Token
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lazy: %v is not provided by module %q", e.Token, e.Module)
}

// Is reports whether target is ErrNotProvided.
func (e *LookupError) Is(target error) bool {
	return target == ErrNotProvided
}
