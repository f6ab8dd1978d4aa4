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
)

// Token identifies a value provided by a module: its type, plus the name
// it was annotated with, if any.
//
// Tokens are comparable and may be used as map keys.
type Token struct {
	typ  reflect.Type
	name string
}

// TypeOf returns the token for the unnamed value of type T.
func TypeOf[T any]() Token {
	return Token{typ: reflect.TypeOf((*T)(nil)).Elem()}
}

// Named returns the token for the value of type T provided with
// Annotated{Name: name}.
func Named[T any](name string) Token {
	return Token{typ: reflect.TypeOf((*T)(nil)).Elem(), name: name}
}

// Type returns the type identified by the token.
func (t Token) Type() reflect.Type { return t.typ }

// Name returns the annotation name of the token, or "".
func (t Token) Name() string { return t.name }

// IsZero reports whether t is the zero Token.
func (t Token) IsZero() bool { return t.typ == nil }

func (t Token) String() string {
	if t.typ == nil {
		return "<nil>"
	}
	if t.name == "" {
		return t.typ.String()
	}
	return fmt.Sprintf("%v[name=%q]", t.typ, t.name)
}
