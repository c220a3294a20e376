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
)

// Definition describes how to produce the instance of one entry.
//
// Definitions are immutable once constructed. The variants understood by the
// container are *ValueDefinition, *AliasDefinition, *ClassDefinition and
// *FactoryDefinition.
type Definition interface {
	// ID identifies the entry this definition describes.
	ID() ID
	// Kind names the variant: "value", "alias", "class" or "factory".
	Kind() string
}

// CacheableDefinition is a Definition that may be stored in a
// DefinitionCache. Definitions that do not implement it are never cached.
type CacheableDefinition interface {
	Definition

	Cacheable() bool
}

const (
	kindValue   = "value"
	kindAlias   = "alias"
	kindClass   = "class"
	kindFactory = "factory"
)

var (
	_ CacheableDefinition = (*ValueDefinition)(nil)
	_ CacheableDefinition = (*AliasDefinition)(nil)
	_ CacheableDefinition = (*ClassDefinition)(nil)
	_ CacheableDefinition = (*FactoryDefinition)(nil)
)

// ValueDefinition resolves to a literal value. The value is returned as-is:
// it is never copied, resolved recursively, or, if it is a function, called.
type ValueDefinition struct {
	id    ID
	value interface{}
}

// NewValueDefinition builds a definition resolving id to value.
func NewValueDefinition(id ID, value interface{}) *ValueDefinition {
	return &ValueDefinition{id: id, value: value}
}

// ID implements Definition.
func (d *ValueDefinition) ID() ID { return d.id }

// Kind implements Definition.
func (d *ValueDefinition) Kind() string { return kindValue }

// Cacheable implements CacheableDefinition.
func (d *ValueDefinition) Cacheable() bool { return true }

// Value returns the stored value.
func (d *ValueDefinition) Value() interface{} { return d.value }

func (d *ValueDefinition) String() string {
	return fmt.Sprintf("value(%v: %T)", d.id, d.value)
}

// AliasDefinition resolves to whatever its target entry resolves to.
type AliasDefinition struct {
	id     ID
	target ID
}

// NewAliasDefinition builds a definition forwarding id to target.
func NewAliasDefinition(id, target ID) *AliasDefinition {
	return &AliasDefinition{id: id, target: target}
}

// ID implements Definition.
func (d *AliasDefinition) ID() ID { return d.id }

// Kind implements Definition.
func (d *AliasDefinition) Kind() string { return kindAlias }

// Cacheable implements CacheableDefinition.
func (d *AliasDefinition) Cacheable() bool { return true }

// Target returns the entry the alias forwards to.
func (d *AliasDefinition) Target() ID { return d.target }

func (d *AliasDefinition) String() string {
	return fmt.Sprintf("alias(%v -> %v)", d.id, d.target)
}

// Dependency is one input of a class: either a reference to another entry
// or a literal value.
type Dependency struct {
	ref     ID
	value   interface{}
	literal bool
}

// Ref declares a dependency on the entry identified by id.
func Ref(id ID) Dependency {
	return Dependency{ref: id}
}

// Literal declares a dependency satisfied by v verbatim.
func Literal(v interface{}) Dependency {
	return Dependency{value: v, literal: true}
}

// IsLiteral reports whether d carries a literal value.
func (d Dependency) IsLiteral() bool { return d.literal }

// Ref returns the referenced entry. It is zero for literals.
func (d Dependency) Ref() ID { return d.ref }

// Value returns the literal value. It is nil for references.
func (d Dependency) Value() interface{} { return d.value }

func (d Dependency) String() string {
	if d.literal {
		return fmt.Sprintf("literal(%v)", d.value)
	}
	return fmt.Sprintf("ref(%v)", d.ref)
}

// Property is a dependency injected into an exported struct field after the
// instance was constructed.
type Property struct {
	Field      string
	Dependency Dependency
}

// ClassOptions configures a ClassDefinition.
type ClassOptions struct {
	// Type is the type of the instance. When Constructor is set it defaults
	// to the constructor's first return type.
	Type reflect.Type

	// Constructor, if set, is a function returning the instance, optionally
	// followed by an error. Without a constructor, instances of pointer
	// types are allocated with reflect.New.
	Constructor interface{}

	// Params are the constructor arguments. When nil and a constructor is
	// set, every parameter is resolved by its type.
	Params []Dependency

	// Properties are injected after construction.
	Properties []Property

	// Scope names the scope of the class. It is validated when the class is
	// first resolved. An empty scope uses the container's default scope.
	Scope string
}

// ClassDefinition builds instances of a Go type, resolving constructor
// parameters and properties through the container.
type ClassDefinition struct {
	id         ID
	typ        reflect.Type
	ctor       interface{}
	params     []Dependency
	properties []Property
	scope      string
}

// NewClassDefinition builds a class definition. A zero id is replaced by the
// type token of the class.
func NewClassDefinition(id ID, opts ClassOptions) *ClassDefinition {
	d := &ClassDefinition{
		id:         id,
		typ:        opts.Type,
		ctor:       opts.Constructor,
		params:     append([]Dependency(nil), opts.Params...),
		properties: append([]Property(nil), opts.Properties...),
		scope:      opts.Scope,
	}

	if ct := reflect.TypeOf(opts.Constructor); ct != nil && ct.Kind() == reflect.Func {
		if d.typ == nil && ct.NumOut() > 0 {
			d.typ = ct.Out(0)
		}
		if opts.Params == nil {
			d.params = make([]Dependency, ct.NumIn())
			for i := range d.params {
				d.params[i] = Ref(TypeID(ct.In(i)))
			}
		}
	}

	if d.id.IsZero() && d.typ != nil {
		d.id = TypeID(d.typ)
	}
	return d
}

// ID implements Definition.
func (d *ClassDefinition) ID() ID { return d.id }

// Kind implements Definition.
func (d *ClassDefinition) Kind() string { return kindClass }

// Cacheable implements CacheableDefinition.
func (d *ClassDefinition) Cacheable() bool { return true }

// Type returns the type of instances built by the class.
func (d *ClassDefinition) Type() reflect.Type { return d.typ }

// Constructor returns the constructor function, if any.
func (d *ClassDefinition) Constructor() interface{} { return d.ctor }

// Params returns the constructor dependencies.
func (d *ClassDefinition) Params() []Dependency {
	return append([]Dependency(nil), d.params...)
}

// Properties returns the property dependencies.
func (d *ClassDefinition) Properties() []Property {
	return append([]Property(nil), d.properties...)
}

// ScopeName returns the declared scope, unvalidated.
func (d *ClassDefinition) ScopeName() string { return d.scope }

// className names the class in error messages.
func (d *ClassDefinition) className() string {
	if d.typ != nil {
		return d.typ.String()
	}
	return d.id.String()
}

func (d *ClassDefinition) String() string {
	return fmt.Sprintf("class(%v: %v, params: %v, scope: %q)", d.id, d.typ, d.params, d.scope)
}

// FactoryFunc builds an instance. The Locator resolves further entries on
// the same resolution chain, so cycles through factories are detected.
type FactoryFunc func(Locator) (interface{}, error)

// FactoryDefinition resolves an entry by calling a function.
type FactoryDefinition struct {
	id    ID
	scope string
	fn    FactoryFunc
}

// NewFactoryDefinition builds a factory definition with the given scope
// name. An empty scope uses the container's default scope.
func NewFactoryDefinition(id ID, scope string, fn FactoryFunc) *FactoryDefinition {
	return &FactoryDefinition{id: id, scope: scope, fn: fn}
}

// ID implements Definition.
func (d *FactoryDefinition) ID() ID { return d.id }

// Kind implements Definition.
func (d *FactoryDefinition) Kind() string { return kindFactory }

// Cacheable implements CacheableDefinition.
func (d *FactoryDefinition) Cacheable() bool { return true }

// ScopeName returns the declared scope, unvalidated.
func (d *FactoryDefinition) ScopeName() string { return d.scope }

func (d *FactoryDefinition) String() string {
	return fmt.Sprintf("factory(%v, scope: %q)", d.id, d.scope)
}
