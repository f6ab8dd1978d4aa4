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

package lazytest

import (
	"context"

	"github.com/lazycats/lazycats/lazy"
)

// TB is a subset of the standard library's testing.TB interface. It's
// satisfied by both *testing.T and *testing.B.
type TB interface {
	Errorf(string, ...interface{})
	FailNow()
	Cleanup(func())
}

// NewLoader builds a lazy.Loader that is stopped when the test finishes.
// The test fails if stopping returns an error.
func NewLoader(t TB, opts ...lazy.LoaderOption) *lazy.Loader {
	l := lazy.NewLoader(opts...)
	t.Cleanup(func() {
		if err := l.Stop(context.Background()); err != nil {
			t.Errorf("loader didn't stop cleanly: %v", err)
		}
	})
	return l
}

// MustLoad loads the module described by fn, failing the test if an error
// is encountered.
func MustLoad(t TB, l *lazy.Loader, fn lazy.DescriptorFunc) *lazy.Ref {
	ref, err := l.Load(context.Background(), fn)
	if err != nil {
		t.Errorf("module didn't load cleanly: %v", err)
		t.FailNow()
	}
	return ref
}
