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
	"io"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	t.Run("Name", func(t *testing.T) {
		id := Name("db")
		assert.False(t, id.IsZero())
		assert.False(t, id.IsType())
		assert.Nil(t, id.Type())
		assert.Equal(t, "db", id.String())
		assert.Equal(t, "name:db", id.Key())
	})

	t.Run("TypeOfPointer", func(t *testing.T) {
		id := TypeOf(&Plain{})
		assert.True(t, id.IsType())
		assert.Equal(t, reflect.TypeOf(&Plain{}), id.Type())
		assert.Equal(t, "*ioc.Plain", id.String())
		assert.Equal(t, "type:*go.uber.org/ioc.Plain", id.Key())
		assert.Equal(t, TypeOf((*Plain)(nil)), id)
	})

	t.Run("TypeOfInterface", func(t *testing.T) {
		id := TypeOf((*io.Writer)(nil))
		assert.Equal(t, reflect.TypeOf((*io.Writer)(nil)).Elem(), id.Type())
		assert.Equal(t, "io.Writer", id.String())
	})

	t.Run("NameAndTypeDoNotCollide", func(t *testing.T) {
		byName := Name("*ioc.Plain")
		byType := TypeOf(&Plain{})
		assert.NotEqual(t, byName, byType)
		assert.NotEqual(t, byName.Key(), byType.Key())
	})

	t.Run("Zero", func(t *testing.T) {
		assert.True(t, ID{}.IsZero())
	})
}

func TestToID(t *testing.T) {
	tests := []struct {
		desc    string
		give    interface{}
		want    ID
		wantErr string
	}{
		{desc: "string", give: "db", want: Name("db")},
		{desc: "ID", give: Name("db"), want: Name("db")},
		{desc: "reflect.Type", give: reflect.TypeOf(&Plain{}), want: TypeOf(&Plain{})},
		{desc: "empty string", give: "", wantErr: "the name parameter must be a non-empty string"},
		{desc: "zero ID", give: ID{}, wantErr: "the name parameter must be of type string, got ioc.ID"},
		{desc: "struct", give: &Plain{}, wantErr: "the name parameter must be of type string, got *ioc.Plain"},
		{desc: "int", give: 42, wantErr: "the name parameter must be of type string, got int"},
		{desc: "nil", give: nil, wantErr: "the name parameter must be of type string, got <nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := toID(tt.give)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, IsInvalidArgument(err))
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
