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
	"sort"
	"sync"
)

// Registry maps module names to the functions that describe them. It's
// filled while the application starts and consulted whenever a module is
// needed.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]DescriptorFunc
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]DescriptorFunc)}
}

// Register adds a module under the given name. Names must be non-empty and
// unique within the Registry.
func (r *Registry) Register(name string, fn DescriptorFunc) error {
	if name == "" {
		return errors.New("lazy: module name must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("lazy: nil descriptor function for module %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.modules[name]; ok {
		return fmt.Errorf("lazy: module %q already registered", name)
	}
	r.modules[name] = fn
	return nil
}

// Resolve returns the descriptor function registered under name. The
// error matches ErrModuleNotFound if there's none.
func (r *Registry) Resolve(name string) (DescriptorFunc, error) {
	r.mu.RLock()
	fn, ok := r.modules[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrModuleNotFound, name)
	}
	return fn, nil
}

// Names returns the sorted names of all registered modules.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
