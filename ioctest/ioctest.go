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

package ioctest

import (
	"go.uber.org/ioc"
	"go.uber.org/ioc/iocevent"
)

// TB is a subset of the standard library's testing.TB interface. It's
// satisfied by both *testing.T and *testing.B.
type TB interface {
	Logf(string, ...interface{})
	Errorf(string, ...interface{})
	FailNow()
}

// New builds a container that logs its events to the test. Options are
// applied after the test logger, so they may replace it. New fails the test
// if the container cannot be built.
func New(tb TB, opts ...ioc.Option) *ioc.Container {
	opts = append([]ioc.Option{ioc.Logger(NewLogger(tb))}, opts...)
	c, err := ioc.New(opts...)
	if err != nil {
		tb.Errorf("container didn't build cleanly: %v", err)
		tb.FailNow()
	}
	return c
}

// MustMake calls c.Make, failing the test if an error is encountered.
func MustMake(tb TB, c *ioc.Container, id interface{}) interface{} {
	inst, err := c.Make(id)
	if err != nil {
		tb.Errorf("couldn't make %v: %v", id, err)
		tb.FailNow()
	}
	return inst
}

// MustGet calls c.Get, failing the test if an error is encountered.
func MustGet(tb TB, c *ioc.Container, id interface{}) interface{} {
	inst, err := c.Get(id)
	if err != nil {
		tb.Errorf("couldn't get %v: %v", id, err)
		tb.FailNow()
	}
	return inst
}

// NewLogger returns an event logger writing human-readable events to the
// test log.
func NewLogger(tb TB) iocevent.Logger {
	return &iocevent.ConsoleLogger{W: testWriter{tb}}
}

type testWriter struct{ tb TB }

func (w testWriter) Write(p []byte) (int, error) {
	// ConsoleLogger terminates every event with a newline that Logf adds
	// back.
	s := string(p)
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
	}
	w.tb.Logf("%s", s)
	return len(p), nil
}
