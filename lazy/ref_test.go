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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lazycats/lazycats/lazy"
	"github.com/lazycats/lazycats/lazy/lazytest"
)

func TestRefGet(t *testing.T) {
	t.Parallel()

	l := lazytest.NewLoader(t)
	ref := lazytest.MustLoad(t, l, lazy.Static(listModule()))

	t.Run("Untyped", func(t *testing.T) {
		t.Parallel()

		v, err := ref.Get(lazy.TypeOf[*store]())
		require.NoError(t, err)
		assert.IsType(t, &store{}, v)
	})

	t.Run("SameInstance", func(t *testing.T) {
		t.Parallel()

		a, err := lazy.Get[*store](ref)
		require.NoError(t, err)
		b, err := lazy.Get[*store](ref)
		require.NoError(t, err)
		assert.Same(t, a, b)

		lst, err := lazy.Get[*lister](ref)
		require.NoError(t, err)
		assert.Same(t, a, lst.store, "the lister should be built with the module's store")
	})

	t.Run("NotProvided", func(t *testing.T) {
		t.Parallel()

		_, err := lazy.Get[*clock](ref)
		require.Error(t, err)

		var lookupErr *lazy.LookupError
		require.ErrorAs(t, err, &lookupErr)
		assert.Equal(t, "list", lookupErr.Module)
		assert.Equal(t, lazy.TypeOf[*clock](), lookupErr.Token)
		assert.ErrorIs(t, err, lazy.ErrNotProvided)
		assert.EqualError(t, err, `lazy: *lazy_test.clock is not provided by module "list"`)
	})

	t.Run("WrongName", func(t *testing.T) {
		t.Parallel()

		_, err := lazy.GetNamed[*store](ref, "ro")
		assert.ErrorIs(t, err, lazy.ErrNotProvided)
	})
}

func TestRefDiagnostics(t *testing.T) {
	t.Parallel()

	l := lazytest.NewLoader(t)
	ref := lazytest.MustLoad(t, l, lazy.Static(listModule()))

	assert.Equal(t, `lazy.Ref("list", [*lazy_test.store, *lazy_test.lister])`, ref.String())

	core, logs := observer.New(zap.InfoLevel)
	zap.New(core).Info("loaded", zap.Object("ref", ref))

	entries := logs.TakeAll()
	require.Len(t, entries, 1)
	assert.Equal(t, map[string]interface{}{
		"ref": map[string]interface{}{
			"module":   "list",
			"hooks":    0,
			"provides": []interface{}{"*lazy_test.store", "*lazy_test.lister"},
		},
	}, entries[0].ContextMap())
}
