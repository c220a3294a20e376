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
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/ioc"
)

type Database struct {
	DSN     string
	Retries int
	Ratio   float64
}

type Repository struct {
	DB *Database
}

func NewRepository(db *Database) *Repository {
	return &Repository{DB: db}
}

func newRegistry(t *testing.T) *Registry {
	reg := NewRegistry()
	require.NoError(t, reg.Register("Database", (*Database)(nil)))
	require.NoError(t, reg.Register("Repository", NewRepository))
	return reg
}

func newContainer(t *testing.T, src ioc.DefinitionSource) *ioc.Container {
	c, err := ioc.New(ioc.Sources(src))
	require.NoError(t, err)
	return c
}

func TestRegistry(t *testing.T) {
	t.Run("Lookup", func(t *testing.T) {
		reg := newRegistry(t)

		typ, ctor, ok := reg.Lookup("Database")
		require.True(t, ok)
		assert.Equal(t, reflect.TypeOf(&Database{}), typ)
		assert.Nil(t, ctor)

		typ, ctor, ok = reg.Lookup("Repository")
		require.True(t, ok)
		assert.Equal(t, reflect.TypeOf(&Repository{}), typ)
		assert.NotNil(t, ctor)

		_, _, ok = reg.Lookup("Nope")
		assert.False(t, ok)

		assert.Equal(t, []string{"Database", "Repository"}, reg.Names())
		assert.Equal(t, "config.Registry[Database Repository]", reg.String())
	})

	t.Run("ReflectType", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register("Database", reflect.TypeOf(Database{})))

		typ, _, ok := reg.Lookup("Database")
		require.True(t, ok)
		assert.Equal(t, reflect.TypeOf(Database{}), typ)
	})

	t.Run("Errors", func(t *testing.T) {
		reg := newRegistry(t)

		tests := []struct {
			desc    string
			name    string
			give    interface{}
			wantErr string
		}{
			{"empty name", "", (*Database)(nil), "cannot register a type without a name"},
			{"untyped nil", "Nil", nil, `cannot register "Nil": untyped nil`},
			{"duplicate", "Database", (*Database)(nil), `cannot register "Database": name already registered`},
			{"no results", "NoResults", func() {}, "must return a value"},
			{"error only", "ErrOnly", func() error { return nil }, "must return a value"},
			{"variadic", "Variadic", func(...int) *Database { return nil }, "variadic constructor"},
		}

		for _, tt := range tests {
			t.Run(tt.desc, func(t *testing.T) {
				err := reg.Register(tt.name, tt.give)
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			})
		}
	})
}

func TestParseID(t *testing.T) {
	reg := newRegistry(t)

	id, err := parseID("dsn", reg)
	require.NoError(t, err)
	assert.Equal(t, ioc.Name("dsn"), id)

	id, err = parseID("type:Database", reg)
	require.NoError(t, err)
	assert.Equal(t, ioc.TypeOf(&Database{}), id)

	_, err = parseID("type:Nope", reg)
	assert.EqualError(t, err, `unknown type "Nope"`)

	_, err = parseID("", reg)
	assert.EqualError(t, err, "identifier must not be empty")
}

func TestBuildNilRegistry(t *testing.T) {
	src, err := build([]entry{{id: "a", value: 1, hasValue: true}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, src.Len())

	_, err = build([]entry{{id: "b", class: "Database"}}, nil)
	assert.EqualError(t, err, `entry "b": unknown class "Database"`)
}
