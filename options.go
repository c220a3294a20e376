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
	"strings"

	"github.com/uber-go/tally/v4"
	"go.uber.org/ioc/internal/iocclock"
	"go.uber.org/ioc/iocevent"
	"go.uber.org/zap"
)

// An Option configures a Container.
type Option interface {
	fmt.Stringer

	apply(*options)
}

type options struct {
	sources      []DefinitionSource
	cache        DefinitionCache
	definitions  []Definition
	logger       iocevent.Logger
	stats        tally.Scope
	clock        iocclock.Clock
	defaultScope Scope
}

// Sources sets the definition sources of the container, consulted in order.
// Without this option a container autowires struct pointer types through an
// AutowireSource.
func Sources(sources ...DefinitionSource) Option {
	return sourcesOption(sources)
}

type sourcesOption []DefinitionSource

func (o sourcesOption) apply(opts *options) {
	opts.sources = append(opts.sources, o...)
}

func (o sourcesOption) String() string {
	items := make([]string, len(o))
	for i, s := range o {
		items[i] = fmt.Sprintf("%T", s)
	}
	return fmt.Sprintf("ioc.Sources(%s)", strings.Join(items, ", "))
}

// Cache installs a definition cache.
func Cache(c DefinitionCache) Option {
	return cacheOption{c}
}

type cacheOption struct{ cache DefinitionCache }

func (o cacheOption) apply(opts *options) { opts.cache = o.cache }

func (o cacheOption) String() string { return fmt.Sprintf("ioc.Cache(%T)", o.cache) }

// Definitions adds definitions to the container, as if passed to
// AddDefinition in order.
func Definitions(defs ...Definition) Option {
	return definitionsOption(defs)
}

type definitionsOption []Definition

func (o definitionsOption) apply(opts *options) {
	opts.definitions = append(opts.definitions, o...)
}

func (o definitionsOption) String() string {
	items := make([]string, len(o))
	for i, d := range o {
		items[i] = d.ID().String()
	}
	return fmt.Sprintf("ioc.Definitions(%s)", strings.Join(items, ", "))
}

// Logger sets the event logger of the container.
func Logger(l iocevent.Logger) Option {
	return loggerOption{l}
}

// WithZap logs container events to a Zap logger.
func WithZap(log *zap.Logger) Option {
	return loggerOption{&iocevent.ZapLogger{Logger: log}}
}

type loggerOption struct{ logger iocevent.Logger }

func (o loggerOption) apply(opts *options) { opts.logger = o.logger }

func (o loggerOption) String() string { return fmt.Sprintf("ioc.Logger(%T)", o.logger) }

// Metrics reports container metrics to the given scope.
func Metrics(scope tally.Scope) Option {
	return metricsOption{scope}
}

type metricsOption struct{ scope tally.Scope }

func (o metricsOption) apply(opts *options) { opts.stats = o.scope }

func (o metricsOption) String() string { return "ioc.Metrics()" }

// DefaultScope sets the scope of classes and factories that do not declare
// one. It defaults to Singleton.
func DefaultScope(s Scope) Option {
	return defaultScopeOption(s)
}

type defaultScopeOption Scope

func (o defaultScopeOption) apply(opts *options) { opts.defaultScope = Scope(o) }

func (o defaultScopeOption) String() string { return fmt.Sprintf("ioc.DefaultScope(%s)", string(o)) }

// withClock sets the clock used to time resolutions.
func withClock(clock iocclock.Clock) Option {
	return clockOption{clock}
}

type clockOption struct{ clock iocclock.Clock }

func (o clockOption) apply(opts *options) { opts.clock = o.clock }

func (o clockOption) String() string { return fmt.Sprintf("ioc.withClock(%T)", o.clock) }
