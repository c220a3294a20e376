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

	"github.com/pkg/errors"
)

// NotFoundError is returned when no definition exists for an entry in any
// configured source or override.
type NotFoundError struct {
	ID ID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no entry or class found for '%v'", e.ID)
}

// DependencyError is returned when a circular dependency is detected, or
// when a dependency of an entry cannot be found.
type DependencyError struct {
	// ID is the entry that cycled back to itself, or the unmet dependency.
	ID ID
	// Requester is the entry that needed ID. It is zero for cycles.
	Requester ID
	// Path lists the entries on the resolution chain when a cycle closed,
	// starting and ending with ID.
	Path []ID
}

// Circular reports whether the error describes a circular dependency.
func (e *DependencyError) Circular() bool {
	return len(e.Path) > 0
}

func (e *DependencyError) Error() string {
	if e.Circular() {
		return fmt.Sprintf("circular dependency detected while trying to resolve entry '%v'", e.ID)
	}
	return fmt.Sprintf("entry '%v' required by '%v' could not be resolved: not found", e.ID, e.Requester)
}

// PathString renders the cycle as "a -> b -> a".
func (e *DependencyError) PathString() string {
	parts := make([]string, len(e.Path))
	for i, id := range e.Path {
		parts[i] = id.String()
	}
	return strings.Join(parts, " -> ")
}

// DefinitionError is returned when definition metadata is malformed. These
// errors are raised when the definition is first resolved, not when it is
// loaded.
type DefinitionError struct {
	// Entity names the offending entry or class.
	Entity string
	// Value is the invalid piece of metadata, if any.
	Value string
	// Reason describes what is wrong with Value.
	Reason string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("error while reading definition of %s: %s", e.Entity, e.Reason)
}

func invalidScopeError(entity, value string) *DefinitionError {
	return &DefinitionError{
		Entity: entity,
		Value:  value,
		Reason: fmt.Sprintf("value '%s' is not part of the enum ioc.Scope", value),
	}
}

// InvalidArgumentError is returned when an entry point is called with an
// argument that cannot identify an entry.
type InvalidArgumentError struct {
	Arg interface{}
}

func (e *InvalidArgumentError) Error() string {
	if s, ok := e.Arg.(string); ok && s == "" {
		return "the name parameter must be a non-empty string"
	}
	return fmt.Sprintf("the name parameter must be of type string, got %T", e.Arg)
}

// IsNotFound reports whether err, or any error it wraps, is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsDependency reports whether err, or any error it wraps, is a
// DependencyError.
func IsDependency(err error) bool {
	var target *DependencyError
	return errors.As(err, &target)
}

// IsCircular reports whether err, or any error it wraps, is a DependencyError
// describing a cycle.
func IsCircular(err error) bool {
	var target *DependencyError
	return errors.As(err, &target) && target.Circular()
}

// IsDefinition reports whether err, or any error it wraps, is a
// DefinitionError.
func IsDefinition(err error) bool {
	var target *DefinitionError
	return errors.As(err, &target)
}

// IsInvalidArgument reports whether err, or any error it wraps, is an
// InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var target *InvalidArgumentError
	return errors.As(err, &target)
}
