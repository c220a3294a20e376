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

	"github.com/pkg/errors"
	"github.com/uber-go/tally/v4"
	"go.uber.org/ioc/internal/iocreflect"
	"go.uber.org/ioc/iocevent"
)

// DefinitionManager is the single point through which definitions are
// fetched. Explicitly added definitions take precedence over the cache, and
// the cache takes precedence over the source.
type DefinitionManager struct {
	mu        sync.RWMutex
	overrides map[ID]Definition
	source    DefinitionSource
	cache     DefinitionCache

	log   iocevent.Logger
	stats tally.Scope

	// added is called with the ID of every added definition, before the
	// cache is evicted.
	added func(ID)
}

// NewDefinitionManager returns a manager reading from source. source may be
// nil, in which case only added definitions are known.
func NewDefinitionManager(source DefinitionSource) *DefinitionManager {
	return &DefinitionManager{
		overrides: make(map[ID]Definition),
		source:    source,
		log:       iocevent.NopLogger,
		stats:     tally.NoopScope,
	}
}

// SetCache installs the definition cache. Replacing the cache does not
// affect added definitions.
func (m *DefinitionManager) SetCache(c DefinitionCache) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cache = c
}

// Cache returns the installed definition cache, or nil.
func (m *DefinitionManager) Cache() DefinitionCache {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.cache
}

// Source returns the definition source, or nil.
func (m *DefinitionManager) Source() DefinitionSource {
	return m.source
}

// GetDefinition returns the definition of id. A nil Definition with a nil
// error means no definition exists; callers decide whether that is fatal.
func (m *DefinitionManager) GetDefinition(id ID) (Definition, error) {
	m.mu.RLock()
	override, ok := m.overrides[id]
	cache := m.cache
	m.mu.RUnlock()
	if ok {
		return override, nil
	}

	key := id.Key()
	if cache != nil {
		if d, ok := cache.Fetch(key); ok {
			m.stats.Counter("definition.cache.hit").Inc(1)
			m.log.LogEvent(&iocevent.CacheHit{ID: id.String()})
			return d, nil
		}
		m.stats.Counter("definition.cache.miss").Inc(1)
	}

	var d Definition
	if m.source != nil {
		m.stats.Counter("definition.source.lookup").Inc(1)

		var err error
		if d, err = m.source.GetDefinition(id); err != nil {
			return nil, errors.Wrapf(err, "cannot read definition of %v", id)
		}
	}
	if cache == nil {
		return d, nil
	}

	m.log.LogEvent(&iocevent.CacheMiss{ID: id.String(), Found: d != nil})
	if d != nil && isCacheable(d) {
		if err := cache.Save(key, d); err != nil {
			m.log.LogEvent(&iocevent.CacheError{ID: id.String(), Op: "save", Err: err})
		}
	}
	return d, nil
}

// AddDefinition adds d to the overrides, replacing any earlier definition
// with the same ID. The cache entry for that ID is evicted before
// AddDefinition returns.
func (m *DefinitionManager) AddDefinition(d Definition) error {
	if d == nil || d.ID().IsZero() {
		return errors.New("cannot add a definition without an ID")
	}
	id := d.ID()

	m.mu.Lock()
	m.overrides[id] = d
	cache := m.cache
	added := m.added
	m.mu.Unlock()

	if added != nil {
		added(id)
	}

	m.log.LogEvent(&iocevent.DefinitionAdded{
		ID:          id.String(),
		Kind:        d.Kind(),
		Constructor: constructorName(d),
	})
	if cache == nil {
		return nil
	}
	if err := cache.Delete(id.Key()); err != nil {
		m.log.LogEvent(&iocevent.CacheError{ID: id.String(), Op: "delete", Err: err})
		return errors.Wrapf(err, "cannot evict cached definition of %v", id)
	}
	return nil
}

func isCacheable(d Definition) bool {
	cd, ok := d.(CacheableDefinition)
	return ok && cd.Cacheable()
}

func constructorName(d Definition) string {
	switch d := d.(type) {
	case *ClassDefinition:
		if d.ctor != nil {
			return iocreflect.FuncName(d.ctor)
		}
	case *FactoryDefinition:
		if d.fn != nil {
			return iocreflect.FuncName(d.fn)
		}
	}
	return ""
}
