// Copyright (c) 2021 Uber Technologies, Inc.
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

// Package ioc is an inversion of control container.
//
// A Container resolves entries into instances. Entries are identified
// either by a name or by a Go type and are described by definitions:
//
// • Values, returned verbatim
//
// • Aliases, forwarding to another entry
//
// • Classes, built by a constructor or allocated, with their parameters and
// properties resolved through the container
//
// • Factories, functions receiving a Locator to resolve what they need
//
// Definitions come from a DefinitionSource. Without one, the container
// autowires struct pointers: fields tagged with `inject:""` are resolved by
// their type and fields tagged with `inject:"name"` by name.
//
//   type Mailer struct {
//       ioc.Injectable `scope:"prototype"`
//
//       Transport *Transport `inject:""`
//       From      string     `inject:"mailer.from"`
//   }
//
//   c, err := ioc.New()
//   err = c.Set("mailer.from", "noreply@example.com")
//   m, err := c.Make(ioc.TypeOf(&Mailer{}))
//
// Scopes
//
// Singleton entries are built once and the instance is reused by every later
// Get or Make. Prototype entries are built on every Make. Classes without a
// declared scope use the container's default scope, Singleton unless changed
// with the DefaultScope option. Get always shares the instance it returns.
//
// Definition caching
//
// The DefinitionManager consults, in order, the definitions added to the
// container, an optional DefinitionCache and the source. Definitions found in
// the source are saved to the cache; adding a definition evicts its cached
// copy. MapCache and LRUCache are provided.
//
// Errors
//
// Failures are reported with typed errors: NotFoundError, DependencyError
// (unmet or circular dependencies), DefinitionError and
// InvalidArgumentError. Use IsNotFound, IsDependency, IsCircular,
// IsDefinition and IsInvalidArgument to classify them.
package ioc
