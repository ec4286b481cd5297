package hclcfg

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/yonkmanjl/vizro/internal/config"
	"github.com/yonkmanjl/vizro/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// translateDataset resolves the CSV path relative to the declaring file.
func translateDataset(d *schema.Dataset, file string) *config.Dataset {
	path := d.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(file), path)
	}
	return &config.Dataset{Name: d.Name, Path: path}
}

// translatePage converts the HCL-specific page schema into the agnostic
// model, evaluating all argument and selector expressions eagerly. The
// definition language is static, so evaluation needs no context.
func translatePage(p *schema.Page, file string) (*config.Page, error) {
	page := &config.Page{ID: p.Name, Title: p.Title}

	for _, c := range p.Charts {
		args, err := extractBodyAttributes(c.Arguments)
		if err != nil {
			return nil, fmt.Errorf("%s: chart %q: %w", file, c.Name, err)
		}
		page.Charts = append(page.Charts, &config.Chart{
			ID:           c.Name,
			Type:         c.Type,
			Data:         c.Data,
			Title:        c.Title,
			Arguments:    args,
			Interactions: c.Interactions,
		})
	}

	for _, f := range p.Filters {
		selector, err := translateSelector(f.Selector, f.Title, f.Options, f.Value, f.Min, f.Max)
		if err != nil {
			return nil, fmt.Errorf("%s: filter %q: %w", file, f.Name, err)
		}
		page.Filters = append(page.Filters, &config.Filter{
			ID:       f.Name,
			Column:   f.Column,
			Selector: selector,
			Targets:  f.Targets,
		})
	}

	for _, param := range p.Parameters {
		selector, err := translateSelector(param.Selector, param.Title, param.Options, param.Value, param.Min, param.Max)
		if err != nil {
			return nil, fmt.Errorf("%s: parameter %q: %w", file, param.Name, err)
		}
		page.Parameters = append(page.Parameters, &config.Parameter{
			ID:       param.Name,
			Selector: selector,
			Targets:  param.Targets,
		})
	}

	return page, nil
}

func translateSelector(kind, title string, options, value hcl.Expression, min, max *float64) (*config.Selector, error) {
	if kind == "" {
		kind = config.SelectorDropdown
	}

	selector := &config.Selector{Kind: kind, Title: title, Min: min, Max: max}

	opts, err := evaluateOptional(options)
	if err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}
	if opts != cty.NilVal && !opts.IsNull() {
		if !opts.Type().IsTupleType() && !opts.Type().IsListType() {
			return nil, fmt.Errorf("options must be a list")
		}
		selector.Options = opts.AsValueSlice()
	}

	initial, err := evaluateOptional(value)
	if err != nil {
		return nil, fmt.Errorf("value: %w", err)
	}
	selector.Value = initial

	return selector, nil
}

// extractBodyAttributes evaluates every attribute of an arguments body to a
// cty value.
func extractBodyAttributes(args *schema.ChartArgs) (map[string]cty.Value, error) {
	out := make(map[string]cty.Value)
	if args == nil {
		return out, nil
	}

	attrs, diags := args.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("reading arguments: %w", diags)
	}
	for name, attr := range attrs {
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating argument %q: %w", name, diags)
		}
		out[name] = v
	}
	return out, nil
}

// evaluateOptional evaluates an optional expression attribute; absent
// attributes yield cty.NilVal.
func evaluateOptional(expr hcl.Expression) (cty.Value, error) {
	if expr == nil {
		return cty.NilVal, nil
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	if v.IsNull() {
		return cty.NilVal, nil
	}
	return v, nil
}
