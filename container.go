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
	"fmt"
	"reflect"
	"sync"

	"github.com/pkg/errors"
	"github.com/uber-go/tally/v4"
	"go.uber.org/ioc/internal/iocclock"
	"go.uber.org/ioc/iocevent"
)

// Locator resolves entries. Factories receive a Locator bound to the
// resolution chain that called them.
type Locator interface {
	// Get resolves id with singleton semantics.
	Get(id interface{}) (interface{}, error)
	// Make resolves id honoring its scope.
	Make(id interface{}) (interface{}, error)
	// Has reports whether id can be resolved.
	Has(id interface{}) bool
}

// Container resolves entries into instances.
//
// Entries are identified by a name or a type token (see ID). Instances of
// singleton-scoped entries are retained for the lifetime of the container;
// prototype-scoped entries are built on every Make.
//
// A Container is safe for concurrent use. Each call to Make or Get tracks
// the entries it is resolving on its own, so concurrent resolutions of the
// same entry are never mistaken for cycles. When two calls build the same
// singleton concurrently, the instance stored first wins and both callers
// receive it.
type Container struct {
	definitions  *DefinitionManager
	defaultScope Scope
	log          iocevent.Logger
	stats        tally.Scope
	clock        iocclock.Clock

	mu         sync.Mutex
	singletons map[ID]interface{}
}

var _ Locator = (*Container)(nil)

// New builds a container.
func New(opts ...Option) (*Container, error) {
	o := options{
		logger:       iocevent.NopLogger,
		stats:        tally.NoopScope,
		clock:        iocclock.System,
		defaultScope: Singleton,
	}
	for _, opt := range opts {
		opt.apply(&o)
	}
	if !o.defaultScope.Valid() {
		return nil, errors.Errorf("invalid default scope %q", o.defaultScope)
	}

	var source DefinitionSource
	switch len(o.sources) {
	case 0:
		source = NewAutowireSource()
	case 1:
		source = o.sources[0]
	default:
		source = SourceChain(o.sources)
	}

	dm := NewDefinitionManager(source)
	dm.log = o.logger
	dm.stats = o.stats
	if o.cache != nil {
		dm.SetCache(o.cache)
	}

	c := &Container{
		definitions:  dm,
		defaultScope: o.defaultScope,
		log:          o.logger,
		stats:        o.stats,
		clock:        o.clock,
		singletons:   make(map[ID]interface{}),
	}
	// Instances built from a replaced definition are stale, however the
	// definition was replaced.
	dm.added = c.forget
	for _, d := range o.definitions {
		if err := c.AddDefinition(d); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// DefinitionManager returns the manager the container reads definitions
// from.
func (c *Container) DefinitionManager() *DefinitionManager {
	return c.definitions
}

// Set installs value as the definition of id, replacing any earlier
// definition and discarding any singleton instance built for id. Functions
// are stored as values and are never called by the container.
func (c *Container) Set(id interface{}, value interface{}) error {
	nid, err := toID(id)
	if err != nil {
		return err
	}
	if err := c.AddDefinition(NewValueDefinition(nid, value)); err != nil {
		return err
	}
	c.log.LogEvent(&iocevent.ValueSet{ID: nid.String(), TypeName: fmt.Sprintf("%T", value)})
	return nil
}

// AddDefinition adds d, replacing any earlier definition with the same ID
// and discarding any singleton instance built for it.
func (c *Container) AddDefinition(d Definition) error {
	return c.definitions.AddDefinition(d)
}

// Get resolves id with singleton semantics: the instance is built at most
// once and retained, regardless of the scope declared by the entry. Use it
// for long-lived services.
func (c *Container) Get(id interface{}) (interface{}, error) {
	nid, err := toID(id)
	if err != nil {
		return nil, err
	}
	return c.newResolution().get(nid)
}

// Make resolves id honoring its scope: singleton entries are built once,
// prototype entries on every call.
//
// id must be a non-empty string, an ID or a reflect.Type. Any other argument
// fails with an InvalidArgumentError before any lookup. Entries without a
// definition fail with a NotFoundError. Cycles fail with a DependencyError
// naming the entry that cycled back to itself.
func (c *Container) Make(id interface{}) (interface{}, error) {
	nid, err := toID(id)
	if err != nil {
		return nil, err
	}
	return c.newResolution().make(nid, false)
}

// Has reports whether id has a retained instance or a definition.
func (c *Container) Has(id interface{}) bool {
	nid, err := toID(id)
	if err != nil {
		return false
	}
	if _, ok := c.singleton(nid); ok {
		return true
	}
	d, err := c.definitions.GetDefinition(nid)
	return err == nil && d != nil
}

// Populate resolves each target, which must be a non-nil pointer, by the
// type it points to and stores the instance through it.
//
//   var srv *Server
//   err := c.Populate(&srv)
func (c *Container) Populate(targets ...interface{}) error {
	for _, target := range targets {
		tv := reflect.ValueOf(target)
		if tv.Kind() != reflect.Ptr || tv.IsNil() {
			return &InvalidArgumentError{Arg: target}
		}

		et := tv.Type().Elem()
		inst, err := c.newResolution().make(TypeID(et), false)
		if err != nil {
			return errors.Wrapf(err, "unable to populate %v", tv.Type())
		}

		v, ok := assignable(inst, et)
		if !ok {
			return errors.Errorf("unable to populate %v: entry resolved to %T", tv.Type(), inst)
		}
		tv.Elem().Set(v)
	}
	return nil
}

func (c *Container) newResolution() *resolution {
	return &resolution{c: c, inFlight: make(map[ID]int)}
}

func (c *Container) singleton(id ID) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	inst, ok := c.singletons[id]
	return inst, ok
}

// storeSingleton retains inst for id unless an instance was stored first,
// in which case that instance is returned instead.
func (c *Container) storeSingleton(id ID, inst interface{}) interface{} {
	c.mu.Lock()
	existing, ok := c.singletons[id]
	if !ok {
		c.singletons[id] = inst
	}
	c.mu.Unlock()

	c.log.LogEvent(&iocevent.SingletonStored{ID: id.String(), Discarded: ok})
	if ok {
		return existing
	}
	return inst
}

func (c *Container) forget(id ID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.singletons, id)
}

// scopeOf returns the effective scope of d, validating declared scope
// names.
func (c *Container) scopeOf(d Definition) (Scope, error) {
	switch d := d.(type) {
	case *AliasDefinition:
		return Prototype, nil
	case *ClassDefinition:
		return c.parseScope(d.className(), d.ScopeName())
	case *FactoryDefinition:
		return c.parseScope(d.ID().String(), d.ScopeName())
	default:
		return Singleton, nil
	}
}

func (c *Container) parseScope(entity, name string) (Scope, error) {
	if name == "" {
		return c.defaultScope, nil
	}
	return ParseScope(entity, name)
}
