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

// Package config decodes declarative container definitions.
//
// Definitions are read from in-memory YAML or HCL documents and returned
// as an *ioc.ArraySource ready to be handed to ioc.Sources. The package
// never touches the file system; callers read the bytes themselves.
//
// Entry identifiers
//
// A plain string identifies a named entry. A string of the form
// "type:<name>" identifies the entry keyed by the Go type registered under
// <name> in the Registry passed to the decoder. The same syntax is used for
// references and alias targets.
//
// YAML
//
//   definitions:
//     dsn:
//       value: postgres://localhost/users
//     type:Database:
//       class: Database
//       scope: prototype
//       params:
//         - ref: dsn
//       properties:
//         Retries:
//           value: 3
//     db:
//       alias: type:Database
//
// HCL
//
//   value "dsn" {
//     value = "postgres://localhost/users"
//   }
//
//   class "type:Database" {
//     class = "Database"
//     scope = "prototype"
//
//     param {
//       ref = "dsn"
//     }
//
//     property "Retries" {
//       value = 3
//     }
//   }
//
//   alias "db" {
//     target = "type:Database"
//   }
//
// Scope names are copied as written; an unknown scope is reported when the
// entry is first resolved.
package config
