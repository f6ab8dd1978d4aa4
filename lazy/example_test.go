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
	"context"
	"fmt"
	"log"

	"github.com/lazycats/lazycats/lazy"
)

type Inventory struct{ items []string }

func (i *Inventory) Items() []string { return i.items }

func Example() {
	registry := lazy.NewRegistry()
	if err := registry.Register("inventory", func() (*lazy.Descriptor, error) {
		return lazy.Module("inventory",
			lazy.Provide(func() *Inventory {
				fmt.Println("building inventory")
				return &Inventory{items: []string{"yarn", "mouse"}}
			}),
		), nil
	}); err != nil {
		log.Fatal(err)
	}

	loader := lazy.NewLoader()
	defer loader.Stop(context.Background())

	for i := 0; i < 2; i++ {
		fn, err := registry.Resolve("inventory")
		if err != nil {
			log.Fatal(err)
		}
		ref, err := loader.Load(context.Background(), fn)
		if err != nil {
			log.Fatal(err)
		}
		inv, err := lazy.Get[*Inventory](ref)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(inv.Items())
	}

	// Output:
	// building inventory
	// [yarn mouse]
	// [yarn mouse]
}
