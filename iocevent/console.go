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

package iocevent

import (
	"fmt"
	"io"
)

// ConsoleLogger is an event logger that attempts to write human-readable
// messages to the console.
//
// Use this during development.
type ConsoleLogger struct {
	W io.Writer
}

var _ Logger = (*ConsoleLogger)(nil)

func (l *ConsoleLogger) logf(msg string, args ...interface{}) {
	fmt.Fprintf(l.W, "[IoC] "+msg+"\n", args...)
}

// LogEvent logs the given event to the provided writer.
func (l *ConsoleLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *DefinitionAdded:
		if e.Constructor != "" {
			l.logf("DEFINE\t%s (%s) <= %s", e.ID, e.Kind, e.Constructor)
		} else {
			l.logf("DEFINE\t%s (%s)", e.ID, e.Kind)
		}
	case *CacheHit:
		l.logf("CACHE HIT\t%s", e.ID)
	case *CacheMiss:
		if e.Found {
			l.logf("CACHE MISS\t%s", e.ID)
		} else {
			l.logf("CACHE MISS\t%s (not found)", e.ID)
		}
	case *CacheError:
		l.logf("ERROR\t\tCache %s for %s failed: %v", e.Op, e.ID, e.Err)
	case *ValueSet:
		l.logf("SET\t\t%s <= %s", e.ID, e.TypeName)
	case *Resolving:
		l.logf("RESOLVING\t%s (depth %d)", e.ID, e.Depth)
	case *Resolved:
		if e.Err != nil {
			l.logf("ERROR\t\tFailed to resolve %s: %v", e.ID, e.Err)
		} else {
			l.logf("RESOLVED\t%s %s/%s in %s", e.ID, e.Kind, e.Scope, e.Runtime)
		}
	case *SingletonStored:
		if e.Discarded {
			l.logf("SINGLETON\t%s (kept earlier instance)", e.ID)
		} else {
			l.logf("SINGLETON\t%s", e.ID)
		}
	}
}
