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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazycats/lazycats/lazy"
)

type tb struct {
	errors   int
	failed   int
	cleanups []func()
}

func (t *tb) Errorf(string, ...interface{}) { t.errors++ }
func (t *tb) FailNow()                      { t.failed++ }
func (t *tb) Cleanup(f func())              { t.cleanups = append(t.cleanups, f) }

func (t *tb) runCleanups() {
	for i := len(t.cleanups) - 1; i >= 0; i-- {
		t.cleanups[i]()
	}
}

type counter struct{ n int }

func TestNewLoaderStopsOnCleanup(t *testing.T) {
	spy := &tb{}
	l := NewLoader(spy)

	var stopped bool
	MustLoad(spy, l, lazy.Static(lazy.Module("counter",
		lazy.Provide(func(lc lazy.Lifecycle) *counter {
			lc.Append(lazy.Hook{OnStop: func(context.Context) error {
				stopped = true
				return nil
			}})
			return &counter{}
		}),
	)))
	require.Len(t, spy.cleanups, 1)
	assert.False(t, stopped)

	spy.runCleanups()
	assert.True(t, stopped, "expected OnStop hook to run on cleanup")
	assert.Zero(t, spy.errors)
}

func TestNewLoaderStopFail(t *testing.T) {
	spy := &tb{}
	l := NewLoader(spy)

	MustLoad(spy, l, lazy.Static(lazy.Module("counter",
		lazy.Provide(func(lc lazy.Lifecycle) *counter {
			lc.Append(lazy.Hook{OnStop: func(context.Context) error {
				return errors.New("fail")
			}})
			return &counter{}
		}),
	)))

	spy.runCleanups()
	assert.Equal(t, 1, spy.errors, "expected loader stop to fail")
}

func TestMustLoadFail(t *testing.T) {
	spy := &tb{}
	l := NewLoader(spy)

	ref := MustLoad(spy, l, func() (*lazy.Descriptor, error) {
		return nil, errors.New("fail")
	})
	assert.Nil(t, ref)
	assert.Equal(t, 1, spy.errors)
	assert.Equal(t, 1, spy.failed, "expected module load to fail")
}

func TestSpy(t *testing.T) {
	var s Spy
	l := NewLoader(t, lazy.WithLogger(&s))

	MustLoad(t, l, lazy.Static(lazy.Module("counter",
		lazy.Supply(&counter{n: 1}),
	)))
	assert.Equal(t, []string{"Loading", "Supplied", "Loaded"}, s.EventTypes())
	assert.Len(t, s.Events(), 3)

	s.Reset()
	assert.Empty(t, s.Events())
}
