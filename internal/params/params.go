// Package params collects the parameter map handed to template resolution,
// from repeated -p key=value flags and from HCL parameter files.
package params

import (
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/preconfig/internal/errs"
)

// ParsePairs turns repeated key=value strings into a parameter map. The
// value may contain further = signs; only the first one splits.
func ParsePairs(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, errs.Validationf("invalid parameter %q: expected key=value", pair)
		}
		out[key] = value
	}
	return out, nil
}

// LoadFile reads parameters from an HCL file of top-level attributes:
//
//	region  = "eu-west-1"
//	replica = 3
//
// Attribute values must be convertible to strings; expressions may not
// reference variables or functions.
func LoadFile(path string) (map[string]string, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errs.Validationf("invalid parameter file %s: %s", path, diags.Error())
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, errs.Validationf("invalid parameter file %s: %s", path, diags.Error())
	}

	out := make(map[string]string, len(attrs))
	for name, attr := range attrs {
		value, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, errs.Validationf("invalid value for parameter %q in %s: %s", name, path, diags.Error())
		}
		converted, err := convert.Convert(value, cty.String)
		if err != nil || converted.IsNull() {
			return nil, errs.Validationf("parameter %q in %s is not a string-like value", name, path)
		}
		out[name] = converted.AsString()
	}
	return out, nil
}

// Merge overlays later maps over earlier ones, so -p pairs can override
// file-sourced values.
func Merge(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
