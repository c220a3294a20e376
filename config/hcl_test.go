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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
	"go.uber.org/ioc"
	"go.uber.org/multierr"
)

const hclDefinitions = `
value "dsn" {
  value = "postgres://localhost/users"
}

value "limits" {
  value = {
    burst = 10
    rates = [0.5, 2]
    on    = true
  }
}

value "nothing" {
  value = null
}

class "type:Database" {
  class = "Database"
  scope = "prototype"

  property "DSN" {
    ref = "dsn"
  }

  property "Retries" {
    value = 3
  }
}

class "repo" {
  class = "Repository"

  param {
    ref = "type:Database"
  }
}

alias "db" {
  target = "type:Database"
}
`

func TestDecodeHCL(t *testing.T) {
	src, err := DecodeHCL([]byte(hclDefinitions), "ioc.hcl", newRegistry(t))
	require.NoError(t, err)
	assert.Equal(t, 6, src.Len())

	c := newContainer(t, src)

	v, err := c.Make("dsn")
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/users", v)

	v, err = c.Make("limits")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"burst": 10,
		"rates": []interface{}{0.5, 2},
		"on":    true,
	}, v)

	v, err = c.Make("nothing")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = c.Make("repo")
	require.NoError(t, err)
	assert.Equal(t, &Database{DSN: "postgres://localhost/users", Retries: 3}, v.(*Repository).DB)

	db1, err := c.Make("db")
	require.NoError(t, err)
	db2, err := c.Make("db")
	require.NoError(t, err)
	assert.NotSame(t, db1, db2)
}

func TestDecodeHCLErrors(t *testing.T) {
	t.Run("Syntax", func(t *testing.T) {
		_, err := DecodeHCL([]byte(`value "a" {`), "broken.hcl", newRegistry(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot parse HCL definitions broken.hcl")
	})

	t.Run("Schema", func(t *testing.T) {
		_, err := DecodeHCL([]byte(`alias "a" {}`), "schema.hcl", newRegistry(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot decode HCL definitions schema.hcl")
	})

	t.Run("Entries", func(t *testing.T) {
		_, err := DecodeHCL([]byte(`
value "a" {
  value = upper("x")
}

alias "b" {
  target = "type:Nope"
}

class "c" {
  class = "Repository"

  param {}
}

value "d" {
  value = 1
}

alias "d" {
  target = "a"
}
`), "entries.hcl", newRegistry(t))
		require.Error(t, err)

		errs := multierr.Errors(err)
		require.Len(t, errs, 4)
		assert.Contains(t, errs[0].Error(), `entry "a"`)
		assert.Equal(t, `entry "b": invalid alias target: unknown type "Nope"`, errs[1].Error())
		assert.Equal(t, `entry "c": param 0: must declare ref or value`, errs[2].Error())
		assert.Equal(t, `entry "d": duplicate of "d"`, errs[3].Error())
	})
}

func TestCtyToGo(t *testing.T) {
	tests := []struct {
		desc string
		give cty.Value
		want interface{}
	}{
		{"null", cty.NullVal(cty.String), nil},
		{"string", cty.StringVal("x"), "x"},
		{"bool", cty.True, true},
		{"int", cty.NumberIntVal(42), 42},
		{"float", cty.NumberFloatVal(1.5), 1.5},
		{"list", cty.ListVal([]cty.Value{cty.StringVal("a")}), []interface{}{"a"}},
		{"empty tuple", cty.EmptyTupleVal, []interface{}{}},
		{"map", cty.MapVal(map[string]cty.Value{"k": cty.NumberIntVal(1)}), map[string]interface{}{"k": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := ctyToGo(tt.give)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ctyToGo(cty.UnknownVal(cty.String))
	assert.EqualError(t, err, "value is not known")
}

func TestDecodeHCLScopeIsValidatedLazily(t *testing.T) {
	src, err := DecodeHCL([]byte(`
class "db" {
  class = "Database"
  scope = "foobar"
}
`), "scope.hcl", newRegistry(t))
	require.NoError(t, err)

	_, err = newContainer(t, src).Make("db")
	require.Error(t, err)
	assert.True(t, ioc.IsDefinition(err))
	assert.Contains(t, err.Error(), "value 'foobar' is not part of the enum ioc.Scope")
}
