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

	"github.com/pkg/errors"
	"go.uber.org/ioc/iocevent"
)

// resolution is the state of one top-level Make or Get call. It tracks the
// entries currently being resolved on the call chain, in order, to detect
// cycles. A resolution is never shared between calls.
type resolution struct {
	c *Container

	stack    []ID
	inFlight map[ID]int // index into stack
}

var _ Locator = (*resolution)(nil)

// acquire marks id as being resolved. It fails if id is already on the
// chain. Every successful acquire must be paired with a release.
func (r *resolution) acquire(id ID) error {
	if i, ok := r.inFlight[id]; ok {
		path := make([]ID, 0, len(r.stack)-i+1)
		path = append(path, r.stack[i:]...)
		path = append(path, id)
		return &DependencyError{ID: id, Path: path}
	}
	r.inFlight[id] = len(r.stack)
	r.stack = append(r.stack, id)
	return nil
}

func (r *resolution) release(id ID) {
	delete(r.inFlight, id)
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *resolution) get(id ID) (interface{}, error) {
	if inst, ok := r.c.singleton(id); ok {
		r.c.stats.Counter("singleton.hit").Inc(1)
		return inst, nil
	}
	return r.make(id, true)
}

// make resolves id. When shared is set the instance is retained as a
// singleton whatever the declared scope.
func (r *resolution) make(id ID, shared bool) (inst interface{}, err error) {
	if err := r.acquire(id); err != nil {
		return nil, err
	}
	defer r.release(id)

	c := r.c
	c.log.LogEvent(&iocevent.Resolving{ID: id.String(), Depth: len(r.stack) - 1})
	c.stats.Counter("make").Inc(1)

	var (
		kind  string
		scope Scope
	)
	start := c.clock.Now()
	defer func() {
		elapsed := c.clock.Since(start)
		c.stats.Timer("make.latency").Record(elapsed)
		if err != nil {
			c.stats.Counter("make.error").Inc(1)
		}
		c.log.LogEvent(&iocevent.Resolved{
			ID:      id.String(),
			Kind:    kind,
			Scope:   string(scope),
			Runtime: elapsed,
			Err:     err,
		})
	}()

	def, err := c.definitions.GetDefinition(id)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, &NotFoundError{ID: id}
	}
	kind = def.Kind()

	if vd, ok := def.(*ValueDefinition); ok {
		// Values need no construction and are never retained, so they always
		// reflect the current definition.
		scope = Singleton
		return vd.Value(), nil
	}

	scope, err = c.scopeOf(def)
	if err != nil {
		return nil, err
	}
	if shared {
		scope = Singleton
	}

	if scope == Singleton {
		if inst, ok := c.singleton(id); ok {
			c.stats.Counter("singleton.hit").Inc(1)
			return inst, nil
		}
	}

	inst, err = r.resolve(def)
	if err != nil {
		return nil, err
	}

	if scope == Singleton {
		inst = c.storeSingleton(id, inst)
	}
	return inst, nil
}

// resolve produces an instance for def.
func (r *resolution) resolve(def Definition) (interface{}, error) {
	switch d := def.(type) {
	case *AliasDefinition:
		return r.make(d.Target(), false)
	case *ClassDefinition:
		return r.resolveClass(d)
	case *FactoryDefinition:
		return r.resolveFactory(d)
	default:
		return nil, &DefinitionError{
			Entity: def.ID().String(),
			Value:  fmt.Sprintf("%T", def),
			Reason: fmt.Sprintf("unsupported definition type %T", def),
		}
	}
}

func (r *resolution) resolveClass(d *ClassDefinition) (interface{}, error) {
	var (
		v   reflect.Value
		err error
	)
	if d.Constructor() != nil {
		v, err = r.construct(d)
	} else {
		v, err = allocate(d)
	}
	if err != nil {
		return nil, err
	}

	if v, err = r.injectProperties(d, v); err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func (r *resolution) construct(d *ClassDefinition) (reflect.Value, error) {
	ct := reflect.TypeOf(d.ctor)
	switch {
	case ct.Kind() != reflect.Func:
		return reflect.Value{}, classError(d, fmt.Sprintf("%T", d.ctor), errCtorType.Error())
	case ct.IsVariadic():
		return reflect.Value{}, classError(d, ct.String(), errCtorVariadic.Error())
	case !validReturns(ct):
		return reflect.Value{}, classError(d, ct.String(), errCtorReturnCount.Error())
	case ct.NumIn() != len(d.params):
		return reflect.Value{}, classError(d, ct.String(),
			fmt.Sprintf("constructor takes %d parameters but %d are declared", ct.NumIn(), len(d.params)))
	}

	args := make([]reflect.Value, len(d.params))
	for i, dep := range d.params {
		val, err := r.resolveDependency(d.ID(), dep)
		if err != nil {
			return reflect.Value{}, err
		}
		arg, ok := assignable(val, ct.In(i))
		if !ok {
			return reflect.Value{}, classError(d, dep.String(),
				fmt.Sprintf("parameter %d expects %v, got %T", i, ct.In(i), val))
		}
		args[i] = arg
	}

	out := reflect.ValueOf(d.ctor).Call(args)
	if len(out) == 2 && !out[1].IsNil() {
		return reflect.Value{}, wrapUserError(out[1].Interface().(error), "constructor of %v failed", d.className())
	}
	return out[0], nil
}

// allocate builds a zero instance of a class without a constructor.
func allocate(d *ClassDefinition) (reflect.Value, error) {
	t := d.Type()
	if t == nil {
		return reflect.Value{}, classError(d, "", "class has neither a type nor a constructor")
	}

	switch t.Kind() {
	case reflect.Ptr:
		return reflect.New(t.Elem()), nil
	case reflect.Struct:
		return reflect.New(t).Elem(), nil
	default:
		return reflect.Value{}, classError(d, t.String(), fmt.Sprintf("cannot instantiate %v without a constructor", t))
	}
}

func (r *resolution) injectProperties(d *ClassDefinition, v reflect.Value) (reflect.Value, error) {
	if len(d.properties) == 0 {
		return v, nil
	}

	sv := v
	switch {
	case sv.Kind() == reflect.Ptr && sv.IsNil():
		return v, classError(d, "", "cannot inject properties into a nil instance")
	case sv.Kind() == reflect.Ptr:
		sv = sv.Elem()
	case sv.Kind() == reflect.Struct && !sv.CanAddr():
		// Values returned by constructors are not addressable.
		cp := reflect.New(sv.Type()).Elem()
		cp.Set(sv)
		v, sv = cp, cp
	}
	if sv.Kind() != reflect.Struct {
		return v, classError(d, sv.Type().String(), "properties can only be injected into structs")
	}

	for _, p := range d.properties {
		f := sv.FieldByName(p.Field)
		if !f.IsValid() {
			return v, classError(d, p.Field, fmt.Sprintf("field %q does not exist", p.Field))
		}
		if !f.CanSet() {
			return v, classError(d, p.Field, fmt.Sprintf("field %q is not exported", p.Field))
		}

		val, err := r.resolveDependency(d.ID(), p.Dependency)
		if err != nil {
			return v, err
		}
		fv, ok := assignable(val, f.Type())
		if !ok {
			return v, classError(d, p.Field, fmt.Sprintf("field %q expects %v, got %T", p.Field, f.Type(), val))
		}
		f.Set(fv)
	}
	return v, nil
}

func (r *resolution) resolveFactory(d *FactoryDefinition) (interface{}, error) {
	if d.fn == nil {
		return nil, &DefinitionError{Entity: d.ID().String(), Reason: "factory function is nil"}
	}
	inst, err := d.fn(r)
	if err != nil {
		return nil, wrapUserError(err, "factory of %v failed", d.ID())
	}
	return inst, nil
}

// resolveDependency resolves dep on behalf of requester. A referenced entry
// without a definition is reported as an unmet dependency of requester.
func (r *resolution) resolveDependency(requester ID, dep Dependency) (interface{}, error) {
	if dep.IsLiteral() {
		return dep.Value(), nil
	}

	v, err := r.make(dep.Ref(), false)
	if nf, ok := err.(*NotFoundError); ok && nf.ID == dep.Ref() {
		return nil, &DependencyError{ID: dep.Ref(), Requester: requester}
	}
	return v, err
}

// Get implements Locator.
func (r *resolution) Get(id interface{}) (interface{}, error) {
	nid, err := toID(id)
	if err != nil {
		return nil, err
	}
	return r.get(nid)
}

// Make implements Locator.
func (r *resolution) Make(id interface{}) (interface{}, error) {
	nid, err := toID(id)
	if err != nil {
		return nil, err
	}
	return r.make(nid, false)
}

// Has implements Locator.
func (r *resolution) Has(id interface{}) bool {
	return r.c.Has(id)
}

func classError(d *ClassDefinition, value, reason string) *DefinitionError {
	return &DefinitionError{Entity: d.className(), Value: value, Reason: reason}
}

// wrapUserError annotates errors returned by user code. Container errors
// pass through unmodified.
func wrapUserError(err error, format string, args ...interface{}) error {
	switch err.(type) {
	case *NotFoundError, *DependencyError, *DefinitionError, *InvalidArgumentError:
		return err
	}
	return errors.Wrapf(err, format, args...)
}

// assignable converts a resolved value into a value of type t.
func assignable(v interface{}, t reflect.Type) (reflect.Value, bool) {
	if v == nil {
		switch t.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), true
		}
		return reflect.Value{}, false
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, true
	}
	if convertible(rv.Kind(), t.Kind()) && rv.Type().ConvertibleTo(t) {
		return rv.Convert(t), true
	}
	return reflect.Value{}, false
}

// convertible limits conversions to those that preserve meaning: between
// numeric kinds, and between string kinds. Declarative configuration
// yields int, float64 and string literals for typed parameters.
func convertible(from, to reflect.Kind) bool {
	return (isNumber(from) && isNumber(to)) || (from == reflect.String && to == reflect.String)
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
