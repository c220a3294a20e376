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

	"go.uber.org/ioc/internal/iocreflect"
)

// ID identifies an entry in a container. An ID is either a name, chosen
// freely by the application, or a type token. Both kinds share one
// resolution table.
//
// IDs are comparable and may be used as map keys. The zero ID is invalid.
type ID struct {
	name string
	typ  reflect.Type
}

// Name returns the ID of a named entry.
func Name(name string) ID {
	return ID{name: name}
}

// TypeID returns the ID of the entry keyed by t.
func TypeID(t reflect.Type) ID {
	return ID{typ: t}
}

// TypeOf returns the ID keyed by the dynamic type of v. To key an interface
// type, pass a nil pointer to it and the interface type is used:
//
//   ioc.TypeOf((*io.Writer)(nil))  // io.Writer
//   ioc.TypeOf((*Server)(nil))     // *Server
//   ioc.TypeOf(&Server{})          // *Server
func TypeOf(v interface{}) ID {
	t := reflect.TypeOf(v)
	if t != nil && t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Interface {
		t = t.Elem()
	}
	return TypeID(t)
}

// IsZero reports whether id identifies nothing.
func (id ID) IsZero() bool {
	return id.name == "" && id.typ == nil
}

// IsType reports whether id is a type token.
func (id ID) IsType() bool {
	return id.typ != nil
}

// Type returns the type token of id, or nil for named entries.
func (id ID) Type() reflect.Type {
	return id.typ
}

// Key returns a string form of id that is unique across both kinds of IDs.
// Definition caches are keyed by it.
func (id ID) Key() string {
	if id.typ != nil {
		return "type:" + iocreflect.TypeKey(id.typ)
	}
	return "name:" + id.name
}

func (id ID) String() string {
	if id.typ != nil {
		return id.typ.String()
	}
	return id.name
}

// toID converts the argument of the public entry points into an ID.
func toID(v interface{}) (ID, error) {
	switch v := v.(type) {
	case string:
		if v == "" {
			return ID{}, &InvalidArgumentError{Arg: v}
		}
		return Name(v), nil
	case ID:
		if v.IsZero() {
			return ID{}, &InvalidArgumentError{Arg: v}
		}
		return v, nil
	case reflect.Type:
		if v == nil {
			return ID{}, &InvalidArgumentError{Arg: v}
		}
		return TypeID(v), nil
	default:
		return ID{}, &InvalidArgumentError{Arg: v}
	}
}
