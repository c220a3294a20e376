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
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
	"go.uber.org/ioc"
	"go.uber.org/multierr"
)

type hclDocument struct {
	Values  []*hclValue `hcl:"value,block"`
	Aliases []*hclAlias `hcl:"alias,block"`
	Classes []*hclClass `hcl:"class,block"`
}

type hclValue struct {
	ID    string         `hcl:"id,label"`
	Value hcl.Expression `hcl:"value"`
}

type hclAlias struct {
	ID     string `hcl:"id,label"`
	Target string `hcl:"target"`
}

type hclClass struct {
	ID         string           `hcl:"id,label"`
	Class      string           `hcl:"class"`
	Scope      string           `hcl:"scope,optional"`
	Params     []*hclDependency `hcl:"param,block"`
	Properties []*hclProperty   `hcl:"property,block"`
}

type hclDependency struct {
	Ref   string         `hcl:"ref,optional"`
	Value *hcl.Attribute `hcl:"value,optional"`
}

type hclProperty struct {
	Field string         `hcl:"field,label"`
	Ref   string         `hcl:"ref,optional"`
	Value *hcl.Attribute `hcl:"value,optional"`
}

// DecodeHCL reads value, alias and class blocks from an HCL document.
// filename is only used in diagnostics. Expressions are evaluated without
// variables or functions, so only literals are accepted.
func DecodeHCL(data []byte, filename string, reg *Registry) (*ioc.ArraySource, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("cannot parse HCL definitions %s: %s", filename, diags.Error())
	}

	var doc hclDocument
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, errors.Errorf("cannot decode HCL definitions %s: %s", filename, diags.Error())
	}

	var (
		entries []entry
		errs    error
	)
	for _, b := range doc.Values {
		v, err := evalExpr(b.Value)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "entry %q", b.ID))
			continue
		}
		entries = append(entries, entry{id: b.ID, value: v, hasValue: true})
	}

	for _, b := range doc.Aliases {
		entries = append(entries, entry{id: b.ID, alias: b.Target})
	}

	for _, b := range doc.Classes {
		e, err := b.entry()
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "entry %q", b.ID))
			continue
		}
		entries = append(entries, e)
	}

	src, err := build(entries, reg)
	if errs = multierr.Append(errs, err); errs != nil {
		return nil, errs
	}
	return src, nil
}

func (b *hclClass) entry() (entry, error) {
	e := entry{
		id:        b.ID,
		class:     b.Class,
		scope:     b.Scope,
		hasParams: len(b.Params) > 0,
	}
	for i, p := range b.Params {
		dep, err := hclDep(p.Ref, p.Value)
		if err != nil {
			return entry{}, errors.Wrapf(err, "param %d", i)
		}
		e.params = append(e.params, dep)
	}
	for _, p := range b.Properties {
		dep, err := hclDep(p.Ref, p.Value)
		if err != nil {
			return entry{}, errors.Wrapf(err, "property %q", p.Field)
		}
		e.properties = append(e.properties, property{field: p.Field, dep: dep})
	}
	return e, nil
}

func hclDep(ref string, attr *hcl.Attribute) (dependency, error) {
	d := dependency{ref: ref}
	if attr == nil {
		return d, nil
	}
	v, err := evalExpr(attr.Expr)
	if err != nil {
		return dependency{}, err
	}
	d.value, d.hasValue = v, true
	return d, nil
}

func evalExpr(expr hcl.Expression) (interface{}, error) {
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, errors.New(diags.Error())
	}
	return ctyToGo(v)
}

// ctyToGo converts v to a plain Go value. Whole numbers become int, other
// numbers float64. Collections become []interface{} and
// map[string]interface{}.
func ctyToGo(v cty.Value) (interface{}, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, errors.New("value is not known")
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty == cty.Number:
		var i int
		if err := gocty.FromCtyValue(v, &i); err == nil {
			return i, nil
		}
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, errors.Wrap(err, "cannot convert number")
		}
		return f, nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		s := []interface{}{}
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			gv, err := ctyToGo(ev)
			if err != nil {
				return nil, err
			}
			s = append(s, gv)
		}
		return s, nil
	case ty.IsMapType() || ty.IsObjectType():
		m := make(map[string]interface{})
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			gv, err := ctyToGo(ev)
			if err != nil {
				return nil, errors.Wrapf(err, "key %q", k.AsString())
			}
			m[k.AsString()] = gv
		}
		return m, nil
	default:
		return nil, errors.Errorf("unsupported value of type %s", ty.FriendlyName())
	}
}
