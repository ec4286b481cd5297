// Package yamlcfg loads dashboard definitions written in YAML. It is the
// second config.Loader implementation; the two formats translate into the
// same model and are interchangeable downstream.
package yamlcfg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/yonkmanjl/vizro/internal/config"
	"github.com/yonkmanjl/vizro/internal/ctxlog"
	"github.com/yonkmanjl/vizro/internal/ctyutil"
	"github.com/yonkmanjl/vizro/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// file-level YAML shapes

type root struct {
	Dashboard *dashboard `yaml:"dashboard"`
	Data      []dataset  `yaml:"data"`
	Pages     []page     `yaml:"pages"`
}

type dashboard struct {
	Title string `yaml:"title"`
	Theme string `yaml:"theme"`
}

type dataset struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

type page struct {
	ID         string      `yaml:"id"`
	Title      string      `yaml:"title"`
	Charts     []chart     `yaml:"charts"`
	Filters    []filter    `yaml:"filters"`
	Parameters []parameter `yaml:"parameters"`
}

type chart struct {
	ID           string         `yaml:"id"`
	Type         string         `yaml:"type"`
	Data         string         `yaml:"data"`
	Title        string         `yaml:"title"`
	Arguments    map[string]any `yaml:"arguments"`
	Interactions []string       `yaml:"interactions"`
}

type filter struct {
	ID       string   `yaml:"id"`
	Column   string   `yaml:"column"`
	Selector selector `yaml:"selector"`
	Targets  []string `yaml:"targets"`
}

type parameter struct {
	ID       string   `yaml:"id"`
	Selector selector `yaml:"selector"`
	Targets  []string `yaml:"targets"`
}

type selector struct {
	Kind    string   `yaml:"kind"`
	Title   string   `yaml:"title"`
	Options []any    `yaml:"options"`
	Value   any      `yaml:"value"`
	Min     *float64 `yaml:"min"`
	Max     *float64 `yaml:"max"`
}

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load finds every .yaml and .yml file under the given paths and merges
// them into one model, in sorted path order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		for _, ext := range []string{".yaml", ".yml"} {
			found, err := fsutil.FindFilesByExtension(path, ext)
			if err != nil {
				return nil, fmt.Errorf("discovering definition files under %s: %w", path, err)
			}
			files = append(files, found...)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .yaml definition files found under %v", paths)
	}
	sort.Strings(files)
	logger.Debug("definition files discovered", "count", len(files))

	model := &config.Model{}
	for _, file := range files {
		if err := l.mergeFile(model, file); err != nil {
			return nil, err
		}
		logger.Debug("definition file loaded", "file", file)
	}

	if model.Dashboard == nil {
		model.Dashboard = &config.Dashboard{}
	}
	return model, nil
}

func (l *Loader) mergeFile(model *config.Model, file string) error {
	raw, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	var r root
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return fmt.Errorf("decoding %s: %w", file, err)
	}

	if r.Dashboard != nil {
		if model.Dashboard != nil {
			return fmt.Errorf("%s: duplicate dashboard section", file)
		}
		model.Dashboard = &config.Dashboard{Title: r.Dashboard.Title, Theme: r.Dashboard.Theme}
	}

	for _, d := range r.Data {
		path := d.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(file), path)
		}
		model.Datasets = append(model.Datasets, &config.Dataset{Name: d.Name, Path: path})
	}

	for _, p := range r.Pages {
		translated, err := translatePage(p)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		model.Pages = append(model.Pages, translated)
	}
	return nil
}

func translatePage(p page) (*config.Page, error) {
	page := &config.Page{ID: p.ID, Title: p.Title}

	for _, c := range p.Charts {
		args := make(map[string]cty.Value, len(c.Arguments))
		for name, v := range c.Arguments {
			converted, err := ctyutil.FromGo(v)
			if err != nil {
				return nil, fmt.Errorf("chart %q, argument %q: %w", c.ID, name, err)
			}
			args[name] = converted
		}
		page.Charts = append(page.Charts, &config.Chart{
			ID:           c.ID,
			Type:         c.Type,
			Data:         c.Data,
			Title:        c.Title,
			Arguments:    args,
			Interactions: c.Interactions,
		})
	}

	for _, f := range p.Filters {
		sel, err := translateSelector(f.Selector)
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", f.ID, err)
		}
		page.Filters = append(page.Filters, &config.Filter{
			ID: f.ID, Column: f.Column, Selector: sel, Targets: f.Targets,
		})
	}

	for _, param := range p.Parameters {
		sel, err := translateSelector(param.Selector)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", param.ID, err)
		}
		page.Parameters = append(page.Parameters, &config.Parameter{
			ID: param.ID, Selector: sel, Targets: param.Targets,
		})
	}

	return page, nil
}

func translateSelector(s selector) (*config.Selector, error) {
	kind := s.Kind
	if kind == "" {
		kind = config.SelectorDropdown
	}

	options, err := ctyutil.SliceFromGo(s.Options)
	if err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}

	value := cty.NilVal
	if s.Value != nil {
		value, err = ctyutil.FromGo(s.Value)
		if err != nil {
			return nil, fmt.Errorf("value: %w", err)
		}
	}

	return &config.Selector{
		Kind:    kind,
		Title:   s.Title,
		Options: options,
		Value:   value,
		Min:     s.Min,
		Max:     s.Max,
	}, nil
}

var _ config.Loader = (*Loader)(nil)
