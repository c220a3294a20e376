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
	"reflect"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/ioc/internal/iocreflect"
)

var (
	errCtorType        = errors.New("constructor must be a function")
	errCtorReturnCount = errors.New("constructor function must return one value, optionally followed by an error")
	errCtorVariadic    = errors.New("variadic constructors are not supported")

	_injectableType = reflect.TypeOf(Injectable{})
)

// Injectable marks a struct as autowired. Embed it to declare the scope of
// the struct:
//
//   type Handler struct {
//     ioc.Injectable `scope:"prototype"`
//
//     Log    *zap.Logger `inject:""`
//     Config *Config     `inject:"handler.config"`
//   }
//
// The scope tag is only checked when the struct is first resolved.
type Injectable struct{}

// AutowireSource produces class definitions from Go types.
//
// For a type ID whose constructor was registered with Constructor, the
// constructor is used and its parameters are resolved by type. Otherwise,
// for a pointer to a struct, the struct is allocated and every field tagged
// `inject` is resolved: an empty tag resolves the field by its type, a
// non-empty tag names the entry.
type AutowireSource struct {
	sync.RWMutex

	ctors map[reflect.Type]interface{}
}

var _ DefinitionSource = (*AutowireSource)(nil)

// NewAutowireSource returns an autowiring source with no constructors.
func NewAutowireSource() *AutowireSource {
	return &AutowireSource{ctors: make(map[reflect.Type]interface{})}
}

// Constructor registers functions building the type they return.
func (s *AutowireSource) Constructor(fns ...interface{}) error {
	s.Lock()
	defer s.Unlock()

	for _, fn := range fns {
		ct := reflect.TypeOf(fn)
		if ct == nil || ct.Kind() != reflect.Func {
			return errors.Wrapf(errCtorType, "cannot register %T", fn)
		}
		if ct.IsVariadic() {
			return errors.Wrapf(errCtorVariadic, "cannot register %v", ct)
		}
		if !validReturns(ct) {
			return errors.Wrapf(errCtorReturnCount, "cannot register %v", ct)
		}
		s.ctors[ct.Out(0)] = fn
	}
	return nil
}

// GetDefinition implements DefinitionSource.
func (s *AutowireSource) GetDefinition(id ID) (Definition, error) {
	t := id.Type()
	if t == nil {
		return nil, nil
	}

	s.RLock()
	ctor, ok := s.ctors[t]
	s.RUnlock()
	if ok {
		return NewClassDefinition(id, ClassOptions{Constructor: ctor}), nil
	}

	if t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		return nil, nil
	}
	return NewClassDefinition(id, structOptions(t)), nil
}

func structOptions(t reflect.Type) ClassOptions {
	opts := ClassOptions{Type: t}
	st := t.Elem()
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if f.Anonymous && f.Type == _injectableType {
			opts.Scope = f.Tag.Get("scope")
			continue
		}

		name, ok := f.Tag.Lookup("inject")
		if !ok {
			continue
		}
		dep := Ref(TypeID(f.Type))
		if name != "" {
			dep = Ref(Name(name))
		}
		opts.Properties = append(opts.Properties, Property{Field: f.Name, Dependency: dep})
	}
	return opts
}

func validReturns(ct reflect.Type) bool {
	switch ct.NumOut() {
	case 1:
		return !iocreflect.IsErr(ct.Out(0))
	case 2:
		return !iocreflect.IsErr(ct.Out(0)) && isErrInterface(ct.Out(1))
	default:
		return false
	}
}

func isErrInterface(t reflect.Type) bool {
	return t.Kind() == reflect.Interface && iocreflect.IsErr(t)
}
