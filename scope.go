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

// Scope controls whether a container reuses instances of an entry.
type Scope string

const (
	// Singleton entries are built once and shared for the container's
	// lifetime.
	Singleton Scope = "singleton"
	// Prototype entries are built anew on every Make.
	Prototype Scope = "prototype"
)

// Valid reports whether s is one of the recognized scopes.
func (s Scope) Valid() bool {
	switch s {
	case Singleton, Prototype:
		return true
	default:
		return false
	}
}

func (s Scope) String() string {
	return string(s)
}

// ParseScope validates the scope name declared by entity. Unrecognized names
// fail with a DefinitionError naming both.
func ParseScope(entity, name string) (Scope, error) {
	s := Scope(name)
	if !s.Valid() {
		return "", invalidScopeError(entity, name)
	}
	return s, nil
}
