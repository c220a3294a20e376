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
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

// DefinitionCache memoizes definitions by key so that expensive sources are
// consulted once per entry. A cache is shared: the definition manager holds a
// reference to it but does not own it.
type DefinitionCache interface {
	// Fetch returns the cached definition for key. A false second return
	// value is a miss.
	Fetch(key string) (Definition, bool)
	// Save stores d under key.
	Save(key string, d Definition) error
	// Delete evicts key. Deleting an absent key is not an error.
	Delete(key string) error
	// Clear evicts everything.
	Clear() error
}

// MapCache is an unbounded DefinitionCache backed by a map.
type MapCache struct {
	sync.RWMutex

	entries map[string]Definition
}

var _ DefinitionCache = (*MapCache)(nil)

// NewMapCache returns an empty MapCache.
func NewMapCache() *MapCache {
	return &MapCache{entries: make(map[string]Definition)}
}

// Fetch implements DefinitionCache.
func (c *MapCache) Fetch(key string) (Definition, bool) {
	c.RLock()
	defer c.RUnlock()

	d, ok := c.entries[key]
	return d, ok
}

// Save implements DefinitionCache.
func (c *MapCache) Save(key string, d Definition) error {
	c.Lock()
	defer c.Unlock()

	c.entries[key] = d
	return nil
}

// Delete implements DefinitionCache.
func (c *MapCache) Delete(key string) error {
	c.Lock()
	defer c.Unlock()

	delete(c.entries, key)
	return nil
}

// Clear implements DefinitionCache.
func (c *MapCache) Clear() error {
	c.Lock()
	defer c.Unlock()

	c.entries = make(map[string]Definition)
	return nil
}

// Len returns the number of cached definitions.
func (c *MapCache) Len() int {
	c.RLock()
	defer c.RUnlock()

	return len(c.entries)
}

// LRUCache is a DefinitionCache holding at most a fixed number of
// definitions, evicting the least recently used ones first.
type LRUCache struct {
	cache *lru.Cache
}

var _ DefinitionCache = (*LRUCache)(nil)

// NewLRUCache returns a cache holding at most size definitions.
func NewLRUCache(size int) (*LRUCache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create definition cache of size %d", size)
	}
	return &LRUCache{cache: c}, nil
}

// Fetch implements DefinitionCache.
func (c *LRUCache) Fetch(key string) (Definition, bool) {
	v, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	d, ok := v.(Definition)
	return d, ok
}

// Save implements DefinitionCache.
func (c *LRUCache) Save(key string, d Definition) error {
	c.cache.Add(key, d)
	return nil
}

// Delete implements DefinitionCache.
func (c *LRUCache) Delete(key string) error {
	c.cache.Remove(key)
	return nil
}

// Clear implements DefinitionCache.
func (c *LRUCache) Clear() error {
	c.cache.Purge()
	return nil
}

// Len returns the number of cached definitions.
func (c *LRUCache) Len() int {
	return c.cache.Len()
}
