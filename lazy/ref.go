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

	"go.uber.org/zap/zapcore"

	"github.com/lazycats/lazycats/internal/lifecycle"
	"github.com/lazycats/lazycats/lazy/lazyevent"
)

// Ref is a handle to a loaded module. It holds every value the module's
// providers constructed, keyed by Token.
//
// A Ref is immutable and safe for concurrent use.
type Ref struct {
	name      string
	tokens    []Token
	instances map[Token]reflect.Value
	lc        *lifecycle.Lifecycle
	log       lazyevent.Logger
}

var _ zapcore.ObjectMarshaler = (*Ref)(nil)

// Name returns the name of the loaded module.
func (r *Ref) Name() string { return r.name }

// Tokens returns the tokens of all values held by the module, in the order
// they were provided.
func (r *Ref) Tokens() []Token {
	tokens := make([]Token, len(r.tokens))
	copy(tokens, r.tokens)
	return tokens
}

// Get returns the value the module provides under token. The value was
// constructed when the module loaded; Get never constructs anything.
//
// The error is a *LookupError if the module does not provide token.
func (r *Ref) Get(token Token) (interface{}, error) {
	v, ok := r.instances[token]

	var err error
	if !ok {
		err = &LookupError{Module: r.name, Token: token}
	}
	r.log.LogEvent(&lazyevent.Resolved{
		ModuleName: r.name,
		TokenName:  token.String(),
		Err:        err,
	})
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// Get returns the unnamed value of type T provided by the module.
func Get[T any](r *Ref) (T, error) {
	return get[T](r, TypeOf[T]())
}

// GetNamed returns the value of type T the module provides under name.
func GetNamed[T any](r *Ref, name string) (T, error) {
	return get[T](r, Named[T](name))
}

func get[T any](r *Ref, token Token) (T, error) {
	var zero T
	v, err := r.Get(token)
	if err != nil {
		return zero, err
	}
	// Interface-typed tokens may hold a nil value.
	if v == nil {
		return zero, nil
	}
	return v.(T), nil
}

func (r *Ref) String() string {
	names := make([]string, len(r.tokens))
	for i, t := range r.tokens {
		names[i] = t.String()
	}
	return fmt.Sprintf("lazy.Ref(%q, [%s])", r.name, strings.Join(names, ", "))
}

// MarshalLogObject describes the module for structured logs.
func (r *Ref) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("module", r.name)
	enc.AddInt("hooks", r.lc.Len())
	return enc.AddArray("provides", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		for _, t := range r.tokens {
			arr.AppendString(t.String())
		}
		return nil
	}))
}
