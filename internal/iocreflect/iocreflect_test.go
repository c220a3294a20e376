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
	"errors"
	htmltemplate "html/template"
	"reflect"
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
)

type hollerer interface {
	Holler()
}

type impl struct{}

func (impl) Holler() {}

func someFunc() {}

func TestFuncName(t *testing.T) {
	assert.Equal(t, "go.uber.org/ioc/internal/iocreflect.someFunc()", FuncName(someFunc))
	assert.Equal(t, "n/a", FuncName(struct{}{}))
}

func TestTypeKey(t *testing.T) {
	tests := []struct {
		desc string
		give reflect.Type
		want string
	}{
		{"named", reflect.TypeOf(impl{}), "go.uber.org/ioc/internal/iocreflect.impl"},
		{"pointer", reflect.TypeOf(&impl{}), "*go.uber.org/ioc/internal/iocreflect.impl"},
		{"slice of pointers", reflect.TypeOf([]*impl{}), "[]*go.uber.org/ioc/internal/iocreflect.impl"},
		{"interface", reflect.TypeOf((*hollerer)(nil)).Elem(), "go.uber.org/ioc/internal/iocreflect.hollerer"},
		{"builtin", reflect.TypeOf(""), "string"},
		{"unnamed", reflect.TypeOf(map[string]int{}), "map[string]int"},
		{"nil", nil, "<nil>"},
		{
			"map of qualified values",
			reflect.TypeOf(map[string]*template.Template{}),
			"map[string]*text/template.Template",
		},
		{
			"map of same-named values",
			reflect.TypeOf(map[string]*htmltemplate.Template{}),
			"map[string]*html/template.Template",
		},
		{"array", reflect.TypeOf([2]impl{}), "[2]go.uber.org/ioc/internal/iocreflect.impl"},
		{"receive chan", reflect.TypeOf((<-chan impl)(nil)), "<-chan go.uber.org/ioc/internal/iocreflect.impl"},
		{"send chan", reflect.TypeOf((chan<- int)(nil)), "chan<- int"},
		{"chan of receive chan", reflect.TypeOf((chan (<-chan int))(nil)), "chan (<-chan int)"},
		{
			"func",
			reflect.TypeOf(func(impl, ...string) (*impl, error) { return nil, nil }),
			"func(go.uber.org/ioc/internal/iocreflect.impl, ...string) (*go.uber.org/ioc/internal/iocreflect.impl, error)",
		},
		{"func without results", reflect.TypeOf(func() {}), "func()"},
		{
			"struct literal",
			reflect.TypeOf(struct {
				impl
				Name string `json:"name"`
				n    int
			}{}),
			`struct { go.uber.org/ioc/internal/iocreflect.impl; Name string "json:\"name\""; go.uber.org/ioc/internal/iocreflect.n int }`,
		},
		{"empty struct", reflect.TypeOf(struct{}{}), "struct {}"},
		{
			"interface literal",
			reflect.TypeOf((*interface{ Holler() })(nil)).Elem(),
			"interface { Holler() }",
		},
		{"empty interface", reflect.TypeOf((*interface{})(nil)).Elem(), "interface {}"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeKey(tt.give))
		})
	}
}

func TestTypeKeyDistinguishesPackages(t *testing.T) {
	text := TypeKey(reflect.TypeOf(map[string]*template.Template{}))
	html := TypeKey(reflect.TypeOf(map[string]*htmltemplate.Template{}))
	assert.NotEqual(t, text, html)

	textFn := TypeKey(reflect.TypeOf(func(*template.Template) {}))
	htmlFn := TypeKey(reflect.TypeOf(func(*htmltemplate.Template) {}))
	assert.NotEqual(t, textFn, htmlFn)
}

func TestIsErr(t *testing.T) {
	assert.True(t, IsErr(reflect.TypeOf((*error)(nil)).Elem()))
	assert.True(t, IsErr(reflect.TypeOf(errors.New("great sadness"))))
	assert.False(t, IsErr(reflect.TypeOf(impl{})))
}
