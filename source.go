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
	"go.uber.org/multierr"
)

// DefinitionSource produces definitions for entries. A source that knows
// nothing about an entry returns a nil Definition and a nil error.
type DefinitionSource interface {
	GetDefinition(id ID) (Definition, error)
}

// ArraySource is an in-memory DefinitionSource. It is safe for concurrent
// use.
type ArraySource struct {
	sync.RWMutex

	definitions map[ID]Definition
}

var _ DefinitionSource = (*ArraySource)(nil)

// NewArraySource returns a source holding the given definitions. Later
// definitions replace earlier ones with the same ID.
func NewArraySource(defs ...Definition) *ArraySource {
	s := &ArraySource{definitions: make(map[ID]Definition, len(defs))}
	for _, d := range defs {
		s.definitions[d.ID()] = d
	}
	return s
}

// AddDefinition adds d, replacing any definition with the same ID.
func (s *ArraySource) AddDefinition(d Definition) {
	s.Lock()
	defer s.Unlock()

	s.definitions[d.ID()] = d
}

// GetDefinition implements DefinitionSource.
func (s *ArraySource) GetDefinition(id ID) (Definition, error) {
	s.RLock()
	defer s.RUnlock()

	return s.definitions[id], nil
}

// Len returns the number of definitions held.
func (s *ArraySource) Len() int {
	s.RLock()
	defer s.RUnlock()

	return len(s.definitions)
}

// SourceChain consults several sources in order. The first source that
// produces a definition wins.
type SourceChain []DefinitionSource

var _ DefinitionSource = SourceChain(nil)

// GetDefinition implements DefinitionSource. Errors from individual sources
// are only reported when no source produced a definition.
func (c SourceChain) GetDefinition(id ID) (Definition, error) {
	var errs error
	for i, s := range c {
		if s == nil {
			continue
		}
		d, err := s.GetDefinition(id)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "source %d", i))
			continue
		}
		if d != nil {
			return d, nil
		}
	}
	return nil, errs
}
