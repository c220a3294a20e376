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

package config

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/ioc"
	"go.uber.org/multierr"
)

const typePrefix = "type:"

// entry is a definition as written in a document, before identifiers and
// class names are resolved against the Registry.
type entry struct {
	id string

	value    interface{}
	hasValue bool

	alias string

	class      string
	scope      string
	params     []dependency
	hasParams  bool
	properties []property
}

type dependency struct {
	ref      string
	value    interface{}
	hasValue bool
}

type property struct {
	field string
	dep   dependency
}

// build turns entries into definitions. Every entry is checked; the
// failures are combined into a single error.
func build(entries []entry, reg *Registry) (*ioc.ArraySource, error) {
	if reg == nil {
		reg = NewRegistry()
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].id < entries[j].id })

	src := ioc.NewArraySource()
	seen := make(map[ioc.ID]string, len(entries))

	var errs error
	for _, e := range entries {
		d, err := e.definition(reg)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "entry %q", e.id))
			continue
		}
		if prev, ok := seen[d.ID()]; ok {
			errs = multierr.Append(errs, errors.Errorf("entry %q: duplicate of %q", e.id, prev))
			continue
		}
		seen[d.ID()] = e.id
		src.AddDefinition(d)
	}
	if errs != nil {
		return nil, errs
	}
	return src, nil
}

func (e *entry) definition(reg *Registry) (ioc.Definition, error) {
	id, err := parseID(e.id, reg)
	if err != nil {
		return nil, err
	}

	kinds := 0
	for _, set := range []bool{e.hasValue, e.alias != "", e.class != ""} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return nil, errors.New("must declare exactly one of value, alias or class")
	}
	if e.class == "" && (e.scope != "" || e.hasParams || len(e.properties) > 0) {
		return nil, errors.New("scope, params and properties are only valid on class entries")
	}

	switch {
	case e.hasValue:
		return ioc.NewValueDefinition(id, e.value), nil
	case e.alias != "":
		target, err := parseID(e.alias, reg)
		if err != nil {
			return nil, errors.Wrap(err, "invalid alias target")
		}
		return ioc.NewAliasDefinition(id, target), nil
	default:
		return e.classDefinition(id, reg)
	}
}

func (e *entry) classDefinition(id ioc.ID, reg *Registry) (ioc.Definition, error) {
	typ, ctor, ok := reg.Lookup(e.class)
	if !ok {
		return nil, errors.Errorf("unknown class %q", e.class)
	}

	opts := ioc.ClassOptions{
		Type:        typ,
		Constructor: ctor,
		Scope:       e.scope,
	}

	if e.hasParams {
		if ctor == nil {
			return nil, errors.Errorf("class %q has no constructor to pass params to", e.class)
		}
		opts.Params = make([]ioc.Dependency, len(e.params))
		for i, p := range e.params {
			dep, err := p.resolve(reg)
			if err != nil {
				return nil, errors.Wrapf(err, "param %d", i)
			}
			opts.Params[i] = dep
		}
	}

	for _, p := range e.properties {
		dep, err := p.dep.resolve(reg)
		if err != nil {
			return nil, errors.Wrapf(err, "property %q", p.field)
		}
		opts.Properties = append(opts.Properties, ioc.Property{Field: p.field, Dependency: dep})
	}
	return ioc.NewClassDefinition(id, opts), nil
}

func (d dependency) resolve(reg *Registry) (ioc.Dependency, error) {
	switch {
	case d.hasValue && d.ref != "":
		return ioc.Dependency{}, errors.New("ref and value are mutually exclusive")
	case d.hasValue:
		return ioc.Literal(d.value), nil
	case d.ref != "":
		id, err := parseID(d.ref, reg)
		if err != nil {
			return ioc.Dependency{}, err
		}
		return ioc.Ref(id), nil
	default:
		return ioc.Dependency{}, errors.New("must declare ref or value")
	}
}

// parseID reads an entry identifier: a name, or "type:" followed by a
// registered type name.
func parseID(s string, reg *Registry) (ioc.ID, error) {
	if !strings.HasPrefix(s, typePrefix) {
		if s == "" {
			return ioc.ID{}, errors.New("identifier must not be empty")
		}
		return ioc.Name(s), nil
	}

	name := strings.TrimPrefix(s, typePrefix)
	typ, _, ok := reg.Lookup(name)
	if !ok {
		return ioc.ID{}, errors.Errorf("unknown type %q", name)
	}
	return ioc.TypeID(typ), nil
}
