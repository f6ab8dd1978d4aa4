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

// Package lazy loads dependency-injection modules on demand.
//
// A module is a named bundle of constructors, supplied values and invoke
// functions, described by the *Descriptor that Module builds:
//
//	var Cats = lazy.Module("cats",
//		lazy.Provide(NewRepository, NewService),
//	)
//
// Modules are not part of an application's startup graph. Instead, a
// Registry maps names to functions returning module descriptors, and a
// Loader builds a module's dependency graph the first time it is asked to:
//
//	fn, err := registry.Resolve("cats")
//	if err != nil {
//		return err
//	}
//	ref, err := loader.Load(ctx, fn)
//	if err != nil {
//		return err
//	}
//	svc, err := lazy.Get[*cats.Service](ref)
//
// Loading constructs every provider of the module, so lookups on the
// returned Ref never construct anything. The Loader memoizes the Ref per
// module name; concurrent first loads of the same module share a single
// construction. A load that fails is not memoized.
//
// Each module gets its own container. Values passed to WithSupply are
// visible to every module, which is how host services such as loggers reach
// lazily loaded code.
//
// Constructors may depend on Lifecycle to register hooks. OnStart hooks run
// at the end of Load, and OnStop hooks run when the Loader stops.
package lazy
