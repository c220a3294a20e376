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

package iocreflect

import (
	"fmt"
	"reflect"
	"runtime"
	"strconv"
	"strings"
)

var _errType = reflect.TypeOf((*error)(nil)).Elem()

// FuncName returns a funcs formatted name
func FuncName(fn interface{}) string {
	fnV := reflect.ValueOf(fn)
	if fnV.Kind() != reflect.Func {
		return "n/a"
	}

	fnName := runtime.FuncForPC(fnV.Pointer()).Name()
	return fmt.Sprintf("%s()", fnName)
}

// IsErr reports whether t implements the error interface.
func IsErr(t reflect.Type) bool {
	return t.Implements(_errType)
}

// TypeKey returns a string that uniquely names t within a program.
//
// Type.String() is not unique across packages (two packages can both declare
// a Config), so every named type, including those nested in maps, slices,
// funcs and struct literals, is qualified with its full import path.
func TypeKey(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	var b strings.Builder
	writeTypeKey(&b, t)
	return b.String()
}

func writeTypeKey(b *strings.Builder, t reflect.Type) {
	if t.Name() != "" {
		if t.PkgPath() != "" {
			b.WriteString(t.PkgPath())
			b.WriteByte('.')
		}
		b.WriteString(t.Name())
		return
	}

	switch t.Kind() {
	case reflect.Ptr:
		b.WriteByte('*')
		writeTypeKey(b, t.Elem())
	case reflect.Slice:
		b.WriteString("[]")
		writeTypeKey(b, t.Elem())
	case reflect.Array:
		fmt.Fprintf(b, "[%d]", t.Len())
		writeTypeKey(b, t.Elem())
	case reflect.Map:
		b.WriteString("map[")
		writeTypeKey(b, t.Key())
		b.WriteByte(']')
		writeTypeKey(b, t.Elem())
	case reflect.Chan:
		writeChanKey(b, t)
	case reflect.Func:
		b.WriteString("func")
		writeSignatureKey(b, t)
	case reflect.Struct:
		writeStructKey(b, t)
	case reflect.Interface:
		writeInterfaceKey(b, t)
	default:
		b.WriteString(t.String())
	}
}

func writeChanKey(b *strings.Builder, t reflect.Type) {
	switch t.ChanDir() {
	case reflect.RecvDir:
		b.WriteString("<-chan ")
	case reflect.SendDir:
		b.WriteString("chan<- ")
	default:
		b.WriteString("chan ")
	}

	elem := t.Elem()
	if t.ChanDir() == reflect.BothDir && elem.Name() == "" &&
		elem.Kind() == reflect.Chan && elem.ChanDir() == reflect.RecvDir {
		// chan (<-chan T) is not chan<- (chan T).
		b.WriteByte('(')
		writeTypeKey(b, elem)
		b.WriteByte(')')
		return
	}
	writeTypeKey(b, elem)
}

// writeSignatureKey writes the parameters and results of the func type t.
func writeSignatureKey(b *strings.Builder, t reflect.Type) {
	b.WriteByte('(')
	for i := 0; i < t.NumIn(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		if t.IsVariadic() && i == t.NumIn()-1 {
			b.WriteString("...")
			writeTypeKey(b, t.In(i).Elem())
			continue
		}
		writeTypeKey(b, t.In(i))
	}
	b.WriteByte(')')

	switch t.NumOut() {
	case 0:
	case 1:
		b.WriteByte(' ')
		writeTypeKey(b, t.Out(0))
	default:
		b.WriteString(" (")
		for i := 0; i < t.NumOut(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			writeTypeKey(b, t.Out(i))
		}
		b.WriteByte(')')
	}
}

func writeStructKey(b *strings.Builder, t reflect.Type) {
	if t.NumField() == 0 {
		b.WriteString("struct {}")
		return
	}

	b.WriteString("struct { ")
	for i := 0; i < t.NumField(); i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		f := t.Field(i)
		if !f.Anonymous {
			// Unexported field names belong to the declaring package.
			if f.PkgPath != "" {
				b.WriteString(f.PkgPath)
				b.WriteByte('.')
			}
			b.WriteString(f.Name)
			b.WriteByte(' ')
		}
		writeTypeKey(b, f.Type)
		if f.Tag != "" {
			b.WriteByte(' ')
			b.WriteString(strconv.Quote(string(f.Tag)))
		}
	}
	b.WriteString(" }")
}

func writeInterfaceKey(b *strings.Builder, t reflect.Type) {
	if t.NumMethod() == 0 {
		b.WriteString("interface {}")
		return
	}

	b.WriteString("interface { ")
	for i := 0; i < t.NumMethod(); i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		m := t.Method(i)
		if m.PkgPath != "" {
			b.WriteString(m.PkgPath)
			b.WriteByte('.')
		}
		b.WriteString(m.Name)
		writeSignatureKey(b, m.Type)
	}
	b.WriteString(" }")
}
