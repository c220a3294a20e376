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

package ioc

import (
	"errors"
	"sync"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// Parent ->
//     Child ->
//         Grandchild
//
// Class1Circular <-> Class2Circular

type Grandchild struct {
	Name string
}

func NewGrandchild() *Grandchild {
	return &Grandchild{Name: "Grandchild"}
}

type Child struct {
	GC *Grandchild
}

func NewChild(gc *Grandchild) *Child {
	return &Child{GC: gc}
}

type Parent struct {
	Injectable `scope:"prototype"`

	Child *Child      `inject:""`
	Label string      `inject:"parent.label"`
	GC    *Grandchild `inject:""`
}

type Plain struct {
	Name string
}

// Zero-sized types may share an address, so the scope fixtures carry a
// field to make instance identity observable.

type SingletonClass struct {
	Injectable `scope:"singleton"`

	N int
}

type PrototypeClass struct {
	Injectable `scope:"prototype"`

	N int
}

type InvalidScope struct {
	Injectable `scope:"foobar"`
}

type Class1Circular struct {
	Injectable `scope:"prototype"`

	Class2 *Class2Circular `inject:""`
}

type Class2Circular struct {
	Injectable `scope:"prototype"`

	Class1 *Class1Circular `inject:""`
}

type Unexported struct {
	gc *Grandchild `inject:""`
}

type config struct {
	Name    string
	Retries int64
}

var errSadness = errors.New("great sadness")

// countingSource is a DefinitionSource recording every lookup.
type countingSource struct {
	sync.Mutex

	defs  map[ID]Definition
	err   error
	calls []ID
}

func newCountingSource(defs ...Definition) *countingSource {
	s := &countingSource{defs: make(map[ID]Definition)}
	for _, d := range defs {
		s.defs[d.ID()] = d
	}
	return s
}

func (s *countingSource) GetDefinition(id ID) (Definition, error) {
	s.Lock()
	defer s.Unlock()

	s.calls = append(s.calls, id)
	if s.err != nil {
		return nil, s.err
	}
	return s.defs[id], nil
}

func (s *countingSource) Calls() int {
	s.Lock()
	defer s.Unlock()

	return len(s.calls)
}

// countingCache is a DefinitionCache recording every call.
type countingCache struct {
	inner DefinitionCache

	fetches, saves, deletes int
	saveErr, deleteErr      error
}

func newCountingCache() *countingCache {
	return &countingCache{inner: NewMapCache()}
}

func (c *countingCache) Fetch(key string) (Definition, bool) {
	c.fetches++
	return c.inner.Fetch(key)
}

func (c *countingCache) Save(key string, d Definition) error {
	c.saves++
	if c.saveErr != nil {
		return c.saveErr
	}
	return c.inner.Save(key, d)
}

func (c *countingCache) Delete(key string) error {
	c.deletes++
	if c.deleteErr != nil {
		return c.deleteErr
	}
	return c.inner.Delete(key)
}

func (c *countingCache) Clear() error {
	return c.inner.Clear()
}

// opaqueDefinition is a Definition the container does not know how to
// resolve and that cannot be cached.
type opaqueDefinition struct {
	id ID
}

func (d opaqueDefinition) ID() ID       { return d.id }
func (d opaqueDefinition) Kind() string { return "opaque" }
