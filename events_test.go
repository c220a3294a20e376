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

package ioc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/ioc"
	"go.uber.org/ioc/iocevent"
	"go.uber.org/ioc/ioctest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type service struct {
	Name string
}

func TestEventsForValues(t *testing.T) {
	spy := new(ioctest.Spy)
	c := ioctest.New(t, ioc.Logger(spy))

	require.NoError(t, c.Set("foo", 1))
	assert.Equal(t, []string{"DefinitionAdded", "ValueSet"}, spy.EventTypes())

	spy.Reset()
	ioctest.MustMake(t, c, "foo")
	assert.Equal(t, []string{"Resolving", "Resolved"}, spy.EventTypes())

	resolved, ok := spy.Events()[1].(*iocevent.Resolved)
	require.True(t, ok)
	assert.Equal(t, "foo", resolved.ID)
	assert.Equal(t, "value", resolved.Kind)
	assert.Equal(t, "singleton", resolved.Scope)
	assert.NoError(t, resolved.Err)
}

func TestEventsForCachedClasses(t *testing.T) {
	spy := new(ioctest.Spy)
	c := ioctest.New(t, ioc.Logger(spy), ioc.Cache(ioc.NewMapCache()), ioc.DefaultScope(ioc.Prototype))

	ioctest.MustMake(t, c, ioc.TypeOf(&service{}))
	assert.Equal(t, []string{"Resolving", "CacheMiss", "Resolved"}, spy.EventTypes())

	spy.Reset()
	ioctest.MustMake(t, c, ioc.TypeOf(&service{}))
	assert.Equal(t, []string{"Resolving", "CacheHit", "Resolved"}, spy.EventTypes())
}

func TestEventsForFailures(t *testing.T) {
	spy := new(ioctest.Spy)
	c := ioctest.New(t, ioc.Logger(spy), ioc.Sources(ioc.NewArraySource()))

	_, err := c.Make("missing")
	require.Error(t, err)
	assert.Equal(t, []string{"Resolving", "Resolved"}, spy.EventTypes())

	resolved := spy.Events()[1].(*iocevent.Resolved)
	assert.True(t, ioc.IsNotFound(resolved.Err))
}

func TestCacheMissRequiresCache(t *testing.T) {
	tests := []struct {
		desc string
		opts []ioc.Option
		want []string
	}{
		{
			desc: "no cache",
			want: []string{"Resolving", "Resolved"},
		},
		{
			desc: "cache",
			opts: []ioc.Option{ioc.Cache(ioc.NewMapCache())},
			want: []string{"Resolving", "CacheMiss", "Resolved"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			spy := new(ioctest.Spy)
			opts := append([]ioc.Option{ioc.Logger(spy), ioc.DefaultScope(ioc.Prototype)}, tt.opts...)
			c := ioctest.New(t, opts...)

			ioctest.MustMake(t, c, ioc.TypeOf(&service{}))
			assert.Equal(t, tt.want, spy.EventTypes())
		})
	}
}

func newService() *service {
	return &service{Name: "svc"}
}

func TestDefinitionAddedNamesConstructors(t *testing.T) {
	spy := new(ioctest.Spy)
	c := ioctest.New(t, ioc.Logger(spy))

	require.NoError(t, c.AddDefinition(ioc.NewClassDefinition(ioc.Name("svc"), ioc.ClassOptions{
		Constructor: newService,
	})))
	require.NoError(t, c.AddDefinition(ioc.NewAliasDefinition(ioc.Name("alias"), ioc.Name("svc"))))

	events := spy.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "go.uber.org/ioc_test.newService()", events[0].(*iocevent.DefinitionAdded).Constructor)
	assert.Empty(t, events[1].(*iocevent.DefinitionAdded).Constructor)
}

func TestWithZap(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c, err := ioc.New(ioc.WithZap(zap.New(core)))
	require.NoError(t, err)

	require.NoError(t, c.Set("foo", "bar"))
	entries := logs.FilterMessage("value set").AllUntimed()
	require.Len(t, entries, 1)
	assert.Equal(t, map[string]interface{}{"id": "foo", "type": "string"}, entries[0].ContextMap())
}

func TestOptionStrings(t *testing.T) {
	tests := []struct {
		give ioc.Option
		want string
	}{
		{ioc.Sources(ioc.NewArraySource(), ioc.NewAutowireSource()), "ioc.Sources(*ioc.ArraySource, *ioc.AutowireSource)"},
		{ioc.Cache(ioc.NewMapCache()), "ioc.Cache(*ioc.MapCache)"},
		{ioc.Definitions(ioc.NewValueDefinition(ioc.Name("a"), 1)), "ioc.Definitions(a)"},
		{ioc.Logger(iocevent.NopLogger), "ioc.Logger(iocevent.nopLogger)"},
		{ioc.DefaultScope(ioc.Prototype), "ioc.DefaultScope(prototype)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.give.String())
	}
}
