// Package hclcfg loads dashboard definitions written in HCL and translates
// them into the format-agnostic config model.
package hclcfg

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/yonkmanjl/vizro/internal/config"
	"github.com/yonkmanjl/vizro/internal/ctxlog"
	"github.com/yonkmanjl/vizro/internal/fsutil"
	"github.com/yonkmanjl/vizro/internal/schema"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load finds every .hcl file under the given paths, parses and decodes each
// into the file schema, and merges the results into one model. Files load
// in sorted path order, so the merged page order is stable.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("discovering definition files under %s: %w", path, err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl definition files found under %v", paths)
	}
	logger.Debug("definition files discovered", "count", len(files))

	model := &config.Model{}
	for _, file := range files {
		root, err := l.parseFile(file)
		if err != nil {
			return nil, err
		}
		if err := l.merge(model, root, file); err != nil {
			return nil, err
		}
		logger.Debug("definition file loaded", "file", file)
	}

	if model.Dashboard == nil {
		model.Dashboard = &config.Dashboard{}
	}
	return model, nil
}

func (l *Loader) parseFile(path string) (*schema.Root, error) {
	file, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %w", path, diags)
	}

	var root schema.Root
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("decoding %s: %w", path, diags)
	}
	return &root, nil
}

func (l *Loader) merge(model *config.Model, root *schema.Root, file string) error {
	if root.Dashboard != nil {
		if model.Dashboard != nil {
			return fmt.Errorf("%s: duplicate dashboard block", file)
		}
		model.Dashboard = &config.Dashboard{Title: root.Dashboard.Title, Theme: root.Dashboard.Theme}
	}

	for _, d := range root.Datasets {
		model.Datasets = append(model.Datasets, translateDataset(d, file))
	}
	for _, p := range root.Pages {
		page, err := translatePage(p, file)
		if err != nil {
			return err
		}
		model.Pages = append(model.Pages, page)
	}
	return nil
}

var _ config.Loader = (*Loader)(nil)
