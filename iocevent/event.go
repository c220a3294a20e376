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

package iocevent

import (
	"time"
)

// Event defines an event emitted by a container.
type Event interface {
	event() // Only iocevent can implement this interface.
}

// Passing events by type to make Event hashable in the future.
func (*DefinitionAdded) event() {}
func (*CacheHit) event()        {}
func (*CacheMiss) event()       {}
func (*CacheError) event()      {}
func (*ValueSet) event()        {}
func (*Resolving) event()       {}
func (*Resolved) event()        {}
func (*SingletonStored) event() {}

// DefinitionAdded is emitted when a definition is added to the override set
// of a definition manager.
type DefinitionAdded struct {
	// ID is the identifier of the entry.
	ID string
	// Kind is the definition variant: value, alias, class or factory.
	Kind string
	// Constructor is the name of the function building instances, if any.
	Constructor string
}

// CacheHit is emitted when a definition was served from the definition
// cache.
type CacheHit struct {
	ID string
}

// CacheMiss is emitted when a definition cache is configured but had no
// entry, after the definition source was consulted.
type CacheMiss struct {
	ID string
	// Found reports whether the source produced a definition.
	Found bool
}

// CacheError is emitted when a cache write or eviction failed. Lookups
// proceed without the cache in that case.
type CacheError struct {
	ID  string
	Op  string
	Err error
}

// ValueSet is emitted when a value is installed directly into a container.
type ValueSet struct {
	ID       string
	TypeName string
}

// Resolving is emitted before an entry is resolved.
type Resolving struct {
	ID string
	// Depth is the number of entries already being resolved on the same
	// call chain.
	Depth int
}

// Resolved is emitted after an entry was resolved, successfully or not.
type Resolved struct {
	ID      string
	Kind    string
	Scope   string
	Runtime time.Duration
	Err     error
}

// SingletonStored is emitted when an instance is retained as the singleton
// for an entry.
type SingletonStored struct {
	ID string
	// Discarded is set when another call chain stored an instance first and
	// the freshly built one was dropped.
	Discarded bool
}
