package hclcfg

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const validDefinition = `
dashboard {
  title = "Chart gallery"
  theme = "dark"
}

data "tips" {
  path = "data/tips.csv"
}

page "part-to-whole" {
  title = "Part to whole"

  chart "pie-chart" {
    type = "pie"
    data = "tips"
    arguments {
      values = "tip"
      names  = "day"
      hole   = 0.4
    }
  }

  chart "bar-chart" {
    type         = "bar"
    data         = "tips"
    interactions = ["pie-chart"]
    arguments {
      x = "day"
      y = "tip"
    }
  }

  filter "day-filter" {
    column   = "day"
    selector = "checklist"
    targets  = ["bar-chart"]
  }

  parameter "hole-param" {
    selector = "radio_items"
    options  = [0, 0.4]
    value    = 0
    targets  = ["pie-chart.hole"]
  }
}
`

func writeDefinition(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.hcl"), []byte(content), 0644))
	return dir
}

func TestLoader_Load(t *testing.T) {
	dir := writeDefinition(t, validDefinition)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	require.NotNil(t, model.Dashboard)
	assert.Equal(t, "Chart gallery", model.Dashboard.Title)
	assert.Equal(t, "dark", model.Dashboard.Theme)

	require.Len(t, model.Datasets, 1)
	assert.Equal(t, "tips", model.Datasets[0].Name)
	assert.Equal(t, filepath.Join(dir, "data", "tips.csv"), model.Datasets[0].Path, "dataset path is resolved against the declaring file")

	require.Len(t, model.Pages, 1)
	page := model.Pages[0]
	assert.Equal(t, "part-to-whole", page.ID)
	require.Len(t, page.Charts, 2)

	pie := page.Charts[0]
	assert.Equal(t, "pie-chart", pie.ID)
	assert.Equal(t, "pie", pie.Type)
	assert.True(t, cty.StringVal("tip").RawEquals(pie.Arguments["values"]))
	assert.True(t, cty.NumberFloatVal(0.4).RawEquals(pie.Arguments["hole"]))

	bar := page.Charts[1]
	assert.Equal(t, []string{"pie-chart"}, bar.Interactions)

	require.Len(t, page.Filters, 1)
	filter := page.Filters[0]
	assert.Equal(t, "day", filter.Column)
	assert.Equal(t, "checklist", filter.Selector.Kind)
	assert.Equal(t, []string{"bar-chart"}, filter.Targets)

	require.Len(t, page.Parameters, 1)
	param := page.Parameters[0]
	assert.Equal(t, "radio_items", param.Selector.Kind)
	require.Len(t, param.Selector.Options, 2)
	assert.True(t, cty.Zero.RawEquals(param.Selector.Value))
	assert.Equal(t, []string{"pie-chart.hole"}, param.Targets)
}

func TestLoader_DefaultSelectorKind(t *testing.T) {
	dir := writeDefinition(t, `
page "p" {
  chart "c" {
    type = "bar"
    data = "d"
  }
  filter "f" {
    column = "x"
  }
}
`)
	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "dropdown", model.Pages[0].Filters[0].Selector.Kind)
}

func TestLoader_Errors(t *testing.T) {
	t.Run("no files", func(t *testing.T) {
		_, err := NewLoader().Load(context.Background(), t.TempDir())
		require.Error(t, err)
	})

	t.Run("invalid syntax", func(t *testing.T) {
		dir := writeDefinition(t, `page "p" {`)
		_, err := NewLoader().Load(context.Background(), dir)
		require.Error(t, err)
	})

	t.Run("parameter without targets", func(t *testing.T) {
		dir := writeDefinition(t, `
page "p" {
  parameter "x" {
    selector = "dropdown"
  }
}
`)
		_, err := NewLoader().Load(context.Background(), dir)
		require.Error(t, err, "targets is a required attribute of parameter blocks")
	})

	t.Run("duplicate dashboard block", func(t *testing.T) {
		dir := writeDefinition(t, "dashboard {}\ndashboard {}\n")
		_, err := NewLoader().Load(context.Background(), dir)
		require.Error(t, err)
	})

	t.Run("non-list options", func(t *testing.T) {
		dir := writeDefinition(t, `
page "p" {
  parameter "x" {
    options = "not-a-list"
    targets = ["c.y"]
  }
}
`)
		_, err := NewLoader().Load(context.Background(), dir)
		require.Error(t, err)
	})
}
