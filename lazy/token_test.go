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

package lazy_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lazycats/lazycats/lazy"
)

func TestToken(t *testing.T) {
	t.Parallel()

	t.Run("Comparable", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, lazy.TypeOf[*store](), lazy.TypeOf[*store]())
		assert.NotEqual(t, lazy.TypeOf[*store](), lazy.TypeOf[store]())
		assert.NotEqual(t, lazy.TypeOf[*store](), lazy.Named[*store]("ro"))

		m := map[lazy.Token]int{lazy.Named[*store]("ro"): 1}
		assert.Equal(t, 1, m[lazy.Named[*store]("ro")])
	})

	t.Run("Interfaces", func(t *testing.T) {
		t.Parallel()

		tok := lazy.TypeOf[greeter]()
		assert.Equal(t, reflect.Interface, tok.Type().Kind())
		assert.Equal(t, "lazy_test.greeter", tok.String())
	})

	t.Run("String", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "*lazy_test.store", lazy.TypeOf[*store]().String())
		assert.Equal(t, `*lazy_test.store[name="ro"]`, lazy.Named[*store]("ro").String())
		assert.Equal(t, "<nil>", lazy.Token{}.String())
	})

	t.Run("Accessors", func(t *testing.T) {
		t.Parallel()

		tok := lazy.Named[*store]("ro")
		assert.Equal(t, "ro", tok.Name())
		assert.Equal(t, reflect.TypeOf(&store{}), tok.Type())
		assert.False(t, tok.IsZero())
		assert.True(t, lazy.Token{}.IsZero())
	})
}
