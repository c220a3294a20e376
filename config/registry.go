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
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/ioc/internal/iocreflect"
)

// Registry maps the type names used in definition documents to Go types
// and, optionally, their constructors.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]registration
}

type registration struct {
	typ  reflect.Type
	ctor interface{}
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registration)}
}

// Register binds name to v. If v is a function, it is the constructor of
// the type it returns first; it may return an error as its second result.
// A reflect.Type is registered as is. Any other value registers its own
// type, which makes a typed nil pointer the usual way to register a struct
// that is allocated and populated through properties:
//
//   reg.Register("Database", (*Database)(nil))
//   reg.Register("Repository", NewRepository)
func (r *Registry) Register(name string, v interface{}) error {
	if name == "" {
		return errors.New("cannot register a type without a name")
	}

	var reg registration
	switch t := v.(type) {
	case nil:
		return errors.Errorf("cannot register %q: untyped nil", name)
	case reflect.Type:
		reg.typ = t
	default:
		vt := reflect.TypeOf(v)
		if vt.Kind() != reflect.Func {
			reg.typ = vt
			break
		}
		if err := checkConstructor(vt); err != nil {
			return errors.Wrapf(err, "cannot register %q", name)
		}
		reg.typ = vt.Out(0)
		reg.ctor = v
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[name]; ok {
		return errors.Errorf("cannot register %q: name already registered", name)
	}
	r.entries[name] = reg
	return nil
}

// Lookup returns the type registered under name and its constructor, if
// any.
func (r *Registry) Lookup(name string) (typ reflect.Type, ctor interface{}, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.entries[name]
	return reg.typ, reg.ctor, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) String() string {
	return fmt.Sprintf("config.Registry%v", r.Names())
}

func checkConstructor(ct reflect.Type) error {
	switch {
	case ct.IsVariadic():
		return errors.Errorf("variadic constructor %v is not supported", ct)
	case ct.NumOut() == 1 && !iocreflect.IsErr(ct.Out(0)):
		return nil
	case ct.NumOut() == 2 && !iocreflect.IsErr(ct.Out(0)) &&
		ct.Out(1).Kind() == reflect.Interface && iocreflect.IsErr(ct.Out(1)):
		return nil
	default:
		return errors.Errorf("constructor %v must return a value, optionally followed by an error", ct)
	}
}
