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
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/ioc"
	"gopkg.in/yaml.v2"
)

type yamlDocument struct {
	Definitions map[string]yamlEntry `yaml:"definitions"`
}

type yamlEntry struct {
	Value      interface{}               `yaml:"value"`
	Alias      string                    `yaml:"alias"`
	Class      string                    `yaml:"class"`
	Scope      string                    `yaml:"scope"`
	Params     []yamlDependency          `yaml:"params"`
	Properties map[string]yamlDependency `yaml:"properties"`

	hasValue  bool
	hasParams bool
}

// UnmarshalYAML records which keys were present so that an explicit null
// value is told apart from a missing one.
func (e *yamlEntry) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var keys map[string]interface{}
	if err := unmarshal(&keys); err != nil {
		return err
	}

	type plain yamlEntry
	if err := unmarshal((*plain)(e)); err != nil {
		return err
	}
	_, e.hasValue = keys["value"]
	_, e.hasParams = keys["params"]
	e.Value = normalizeYAML(e.Value)
	return nil
}

type yamlDependency struct {
	Ref   string      `yaml:"ref"`
	Value interface{} `yaml:"value"`

	hasValue bool
}

func (d *yamlDependency) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var keys map[string]interface{}
	if err := unmarshal(&keys); err != nil {
		return err
	}

	type plain yamlDependency
	if err := unmarshal((*plain)(d)); err != nil {
		return err
	}
	_, d.hasValue = keys["value"]
	d.Value = normalizeYAML(d.Value)
	return nil
}

func (d yamlDependency) dependency() dependency {
	return dependency{ref: d.Ref, value: d.Value, hasValue: d.hasValue}
}

// DecodeYAML reads the definitions section of a YAML document.
func DecodeYAML(data []byte, reg *Registry) (*ioc.ArraySource, error) {
	var doc yamlDocument
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, errors.Wrap(err, "cannot decode YAML definitions")
	}

	entries := make([]entry, 0, len(doc.Definitions))
	for id, ye := range doc.Definitions {
		e := entry{
			id:        id,
			value:     ye.Value,
			hasValue:  ye.hasValue,
			alias:     ye.Alias,
			class:     ye.Class,
			scope:     ye.Scope,
			hasParams: ye.hasParams,
		}
		for _, p := range ye.Params {
			e.params = append(e.params, p.dependency())
		}

		fields := make([]string, 0, len(ye.Properties))
		for f := range ye.Properties {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			e.properties = append(e.properties, property{field: f, dep: ye.Properties[f].dependency()})
		}
		entries = append(entries, e)
	}
	return build(entries, reg)
}

// normalizeYAML converts the map[interface{}]interface{} values produced by
// yaml.v2 into map[string]interface{}.
func normalizeYAML(v interface{}) interface{} {
	switch v := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(v))
		for k, val := range v {
			m[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(v))
		for i, val := range v {
			s[i] = normalizeYAML(val)
		}
		return s
	default:
		return v
	}
}
