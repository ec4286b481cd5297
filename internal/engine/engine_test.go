package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yonkmanjl/vizro/internal/config"
	"github.com/yonkmanjl/vizro/internal/dataset"
	"github.com/yonkmanjl/vizro/internal/figure"
	"github.com/yonkmanjl/vizro/internal/registry"
	"github.com/yonkmanjl/vizro/internal/target"
	"github.com/zclconf/go-cty/cty"
)

// countingRecipe builds a figure whose single trace carries the row count
// and the title argument, which makes override effects easy to assert.
func countingRecipe(chartType string) *registry.Recipe {
	return &registry.Recipe{
		Type: chartType,
		Inputs: map[string]*registry.InputSpec{
			"y":     {Type: cty.String, Required: true},
			"title": {Type: cty.String, Default: cty.StringVal("untitled")},
		},
		Build: func(_ context.Context, frame *dataset.Frame, args map[string]cty.Value) (*figure.Figure, error) {
			return &figure.Figure{
				Type:   chartType,
				Traces: []figure.Trace{{Y: []float64{float64(frame.Len())}}},
				Layout: figure.Layout{Title: args["title"].AsString()},
			}, nil
		},
	}
}

func newFixture(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	reg.RegisterRecipe(countingRecipe("bar"))

	frame, err := dataset.New("gapminder",
		[]string{"country", "continent", "pop"},
		[][]cty.Value{
			{cty.StringVal("Canada"), cty.StringVal("Americas"), cty.NumberFloatVal(33.4)},
			{cty.StringVal("Brazil"), cty.StringVal("Americas"), cty.NumberFloatVal(190.0)},
			{cty.StringVal("France"), cty.StringVal("Europe"), cty.NumberFloatVal(61.1)},
		})
	require.NoError(t, err)
	reg.AddFrame(frame)

	_, err = reg.AddPage("p1", "Page one")
	require.NoError(t, err)

	for _, id := range []string{"chart1", "chart2"} {
		require.NoError(t, reg.AddComponent(&registry.Component{
			ID:             id,
			PageID:         "p1",
			Kind:           registry.KindChart,
			OutputProperty: registry.PropertyFigure,
			InputProperty:  registry.PropertyClickData,
			Chart: &config.Chart{
				ID:        id,
				Type:      "bar",
				Data:      "gapminder",
				Arguments: map[string]cty.Value{"y": cty.StringVal("pop")},
			},
			Interactions: []target.Target{},
		}))
	}

	require.NoError(t, reg.AddComponent(&registry.Component{
		ID:             "continent-filter",
		PageID:         "p1",
		Kind:           registry.KindFilter,
		OutputProperty: registry.PropertyValue,
		InputProperty:  registry.PropertyValue,
		Selector:       &config.Selector{Kind: config.SelectorDropdown},
		Column:         "continent",
		Targets: []target.Target{
			{ComponentID: "chart1"},
			{ComponentID: "chart2"},
		},
	}))

	require.NoError(t, reg.AddComponent(&registry.Component{
		ID:             "country-param",
		PageID:         "p1",
		Kind:           registry.KindParameter,
		OutputProperty: registry.PropertyValue,
		InputProperty:  registry.PropertyValue,
		Selector:       &config.Selector{Kind: config.SelectorRadioItems},
		Targets: []target.Target{
			{ComponentID: "chart1", Path: []string{"data_frame", "country"}},
		},
	}))

	require.NoError(t, reg.AddComponent(&registry.Component{
		ID:             "title-param",
		PageID:         "p1",
		Kind:           registry.KindParameter,
		OutputProperty: registry.PropertyValue,
		InputProperty:  registry.PropertyValue,
		Selector:       &config.Selector{Kind: config.SelectorRadioItems},
		Targets: []target.Target{
			{ComponentID: "chart1", Path: []string{"title"}},
		},
	}))

	reg.Freeze()
	return reg
}

func rowCount(fig *figure.Figure) float64 {
	return fig.Traces[0].Y[0]
}

func TestUpdate_ParameterFiltersDataFrame(t *testing.T) {
	reg := newFixture(t)

	result, err := Update(context.Background(), reg, []string{"chart1"}, GroupedValues{
		Parameters: []ControlValue{{ComponentID: "country-param", Value: cty.StringVal("Canada")}},
	})
	require.NoError(t, err)

	require.Contains(t, result, "chart1")
	assert.Equal(t, float64(1), rowCount(result["chart1"]), "only the Canada row survives")
	assert.NotContains(t, result, "chart2", "non-targeted components are untouched")
}

func TestUpdate_FilterSubsetsTargetedCharts(t *testing.T) {
	reg := newFixture(t)

	result, err := Update(context.Background(), reg, []string{"chart1", "chart2"}, GroupedValues{
		Filters: []ControlValue{{ComponentID: "continent-filter", Value: cty.StringVal("Americas")}},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(2), rowCount(result["chart1"]))
	assert.Equal(t, float64(2), rowCount(result["chart2"]))
}

func TestUpdate_MultiSelectFilter(t *testing.T) {
	reg := newFixture(t)

	result, err := Update(context.Background(), reg, []string{"chart1"}, GroupedValues{
		Filters: []ControlValue{{
			ComponentID: "continent-filter",
			Value:       cty.TupleVal([]cty.Value{cty.StringVal("Americas"), cty.StringVal("Europe")}),
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(3), rowCount(result["chart1"]))
}

func TestUpdate_NullAndEmptyValuesAreInactive(t *testing.T) {
	reg := newFixture(t)

	result, err := Update(context.Background(), reg, []string{"chart1"}, GroupedValues{
		Filters: []ControlValue{{ComponentID: "continent-filter", Value: cty.NullVal(cty.String)}},
		Parameters: []ControlValue{
			{ComponentID: "country-param", Value: cty.NullVal(cty.String)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(3), rowCount(result["chart1"]), "inactive controls leave all rows")
}

func TestUpdate_ArgumentOverride(t *testing.T) {
	reg := newFixture(t)

	result, err := Update(context.Background(), reg, []string{"chart1"}, GroupedValues{
		Parameters: []ControlValue{{ComponentID: "title-param", Value: cty.StringVal("GDP by country")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "GDP by country", result["chart1"].Layout.Title)

	// Without the override the recipe default applies.
	result, err = Update(context.Background(), reg, []string{"chart1"}, GroupedValues{})
	require.NoError(t, err)
	assert.Equal(t, "untitled", result["chart1"].Layout.Title)
}

func TestUpdate_ParameterOverrideIsConverted(t *testing.T) {
	reg := newFixture(t)

	// A numeric wire value against a string-typed argument converts rather
	// than reaching the recipe unchecked.
	result, err := Update(context.Background(), reg, []string{"chart1"}, GroupedValues{
		Parameters: []ControlValue{{ComponentID: "title-param", Value: cty.NumberIntVal(5)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "5", result["chart1"].Layout.Title)
}

func TestUpdate_ParameterOverrideTypeMismatch(t *testing.T) {
	reg := newFixture(t)

	// A tuple has no conversion to string; the invocation must fail with a
	// propagated error instead of panicking inside the recipe.
	_, err := Update(context.Background(), reg, []string{"chart1"}, GroupedValues{
		Parameters: []ControlValue{{
			ComponentID: "title-param",
			Value:       cty.TupleVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}),
		}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot convert")
	assert.Contains(t, err.Error(), "title-param")
}

func TestUpdate_DataFrameParameterTupleMatchesAnyRow(t *testing.T) {
	reg := newFixture(t)

	result, err := Update(context.Background(), reg, []string{"chart1"}, GroupedValues{
		Parameters: []ControlValue{{
			ComponentID: "country-param",
			Value:       cty.TupleVal([]cty.Value{cty.StringVal("Canada"), cty.StringVal("France")}),
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(2), rowCount(result["chart1"]), "tuple values keep any matching row")
}

func TestUpdate_RangeFilterBounds(t *testing.T) {
	reg := registry.New()
	reg.RegisterRecipe(countingRecipe("bar"))
	frame, err := dataset.New("gapminder",
		[]string{"country", "pop"},
		[][]cty.Value{
			{cty.StringVal("Canada"), cty.NumberFloatVal(33.4)},
			{cty.StringVal("Brazil"), cty.NumberFloatVal(190.0)},
			{cty.StringVal("France"), cty.NumberFloatVal(61.1)},
		})
	require.NoError(t, err)
	reg.AddFrame(frame)
	_, err = reg.AddPage("p1", "")
	require.NoError(t, err)
	require.NoError(t, reg.AddComponent(&registry.Component{
		ID: "chart1", PageID: "p1", Kind: registry.KindChart,
		OutputProperty: registry.PropertyFigure,
		Chart: &config.Chart{
			ID: "chart1", Type: "bar", Data: "gapminder",
			Arguments: map[string]cty.Value{"y": cty.StringVal("pop")},
		},
	}))
	require.NoError(t, reg.AddComponent(&registry.Component{
		ID: "pop-filter", PageID: "p1", Kind: registry.KindFilter,
		Selector: &config.Selector{Kind: config.SelectorRangeSlider},
		Column:   "pop",
		Targets:  []target.Target{{ComponentID: "chart1"}},
	}))
	reg.Freeze()

	t.Run("numeric bounds subset rows", func(t *testing.T) {
		result, err := Update(context.Background(), reg, []string{"chart1"}, GroupedValues{
			Filters: []ControlValue{{
				ComponentID: "pop-filter",
				Value:       cty.TupleVal([]cty.Value{cty.NumberIntVal(30), cty.NumberIntVal(100)}),
			}},
		})
		require.NoError(t, err)
		assert.Equal(t, float64(2), rowCount(result["chart1"]))
	})

	t.Run("non-numeric bounds are an error", func(t *testing.T) {
		_, err := Update(context.Background(), reg, []string{"chart1"}, GroupedValues{
			Filters: []ControlValue{{
				ComponentID: "pop-filter",
				Value:       cty.TupleVal([]cty.Value{cty.StringVal("low"), cty.StringVal("high")}),
			}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "range bound")
		assert.Contains(t, err.Error(), "pop-filter")
	})
}

func TestUpdate_Idempotent(t *testing.T) {
	reg := newFixture(t)
	values := GroupedValues{
		Filters:    []ControlValue{{ComponentID: "continent-filter", Value: cty.StringVal("Americas")}},
		Parameters: []ControlValue{{ComponentID: "title-param", Value: cty.StringVal("same")}},
		Theme:      true,
	}

	first, err := Update(context.Background(), reg, []string{"chart1"}, values)
	require.NoError(t, err)
	second, err := Update(context.Background(), reg, []string{"chart1"}, values)
	require.NoError(t, err)

	firstJSON, err := first["chart1"].Encode()
	require.NoError(t, err)
	secondJSON, err := second["chart1"].Encode()
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON, "repeated invocation must be byte-for-byte identical")
}

func TestUpdate_DuplicateTargetsCollapse(t *testing.T) {
	reg := newFixture(t)

	result, err := Update(context.Background(), reg, []string{"chart1", "chart1"}, GroupedValues{})
	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestUpdate_ThemeTemplate(t *testing.T) {
	reg := newFixture(t)

	result, err := Update(context.Background(), reg, []string{"chart1"}, GroupedValues{Theme: true})
	require.NoError(t, err)
	assert.Equal(t, "vizro_dark", result["chart1"].Layout.Template)

	result, err = Update(context.Background(), reg, []string{"chart1"}, GroupedValues{})
	require.NoError(t, err)
	assert.Equal(t, "vizro_light", result["chart1"].Layout.Template)
}

func TestUpdate_FilterInteraction(t *testing.T) {
	// A dedicated fixture: chart1 cross-filters chart2 on click.
	reg2 := registry.New()
	reg2.RegisterRecipe(countingRecipe("bar"))
	frame, err := dataset.New("gapminder",
		[]string{"country", "continent", "pop"},
		[][]cty.Value{
			{cty.StringVal("Canada"), cty.StringVal("Americas"), cty.NumberFloatVal(33.4)},
			{cty.StringVal("France"), cty.StringVal("Europe"), cty.NumberFloatVal(61.1)},
		})
	require.NoError(t, err)
	reg2.AddFrame(frame)
	_, err = reg2.AddPage("p1", "")
	require.NoError(t, err)
	require.NoError(t, reg2.AddComponent(&registry.Component{
		ID: "chart1", PageID: "p1", Kind: registry.KindChart,
		OutputProperty: registry.PropertyFigure,
		InputProperty:  registry.PropertyClickData,
		Chart: &config.Chart{
			ID: "chart1", Type: "bar", Data: "gapminder",
			Arguments: map[string]cty.Value{"y": cty.StringVal("pop")},
		},
		Interactions: []target.Target{{ComponentID: "chart2"}},
	}))
	require.NoError(t, reg2.AddComponent(&registry.Component{
		ID: "chart2", PageID: "p1", Kind: registry.KindChart,
		OutputProperty: registry.PropertyFigure,
		Chart: &config.Chart{
			ID: "chart2", Type: "bar", Data: "gapminder",
			Arguments: map[string]cty.Value{"y": cty.StringVal("pop")},
		},
	}))
	reg2.Freeze()

	result, err := Update(context.Background(), reg2, []string{"chart2"}, GroupedValues{
		FilterInteraction: []InteractionValue{{
			SourceID: "chart1",
			Column:   "continent",
			Value:    cty.StringVal("Europe"),
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(1), rowCount(result["chart2"]))

	// chart1 itself is not an interaction target of anything; its own
	// figure ignores the click.
	result, err = Update(context.Background(), reg2, []string{"chart1"}, GroupedValues{
		FilterInteraction: []InteractionValue{{
			SourceID: "chart1",
			Column:   "continent",
			Value:    cty.StringVal("Europe"),
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(2), rowCount(result["chart1"]))
}

func TestUpdate_UnsupportedArgumentPath(t *testing.T) {
	reg := registry.New()
	reg.RegisterRecipe(countingRecipe("bar"))
	frame, err := dataset.New("d", []string{"a"}, nil)
	require.NoError(t, err)
	reg.AddFrame(frame)
	_, err = reg.AddPage("p1", "")
	require.NoError(t, err)

	require.NoError(t, reg.AddComponent(&registry.Component{
		ID: "chart1", PageID: "p1", Kind: registry.KindChart,
		OutputProperty: registry.PropertyFigure,
		Chart: &config.Chart{
			ID: "chart1", Type: "bar", Data: "d",
			Arguments: map[string]cty.Value{"y": cty.StringVal("a")},
		},
	}))
	require.NoError(t, reg.AddComponent(&registry.Component{
		ID: "bad-param", PageID: "p1", Kind: registry.KindParameter,
		Selector: &config.Selector{Kind: config.SelectorDropdown},
		Targets:  []target.Target{{ComponentID: "chart1", Path: []string{"nonexistent"}}},
	}))
	reg.Freeze()

	_, err = Update(context.Background(), reg, []string{"chart1"}, GroupedValues{
		Parameters: []ControlValue{{ComponentID: "bad-param", Value: cty.StringVal("x")}},
	})
	var unsupported *UnsupportedArgumentPathError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "chart1", unsupported.ComponentID)
	assert.Equal(t, "nonexistent", unsupported.Path)
}

func TestUpdate_UnknownComponent(t *testing.T) {
	reg := newFixture(t)

	_, err := Update(context.Background(), reg, []string{"ghost"}, GroupedValues{})
	var notFound *registry.ComponentNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestSetAtPath(t *testing.T) {
	base := cty.ObjectVal(map[string]cty.Value{
		"title": cty.StringVal("old"),
		"size":  cty.NumberIntVal(12),
	})

	out := setAtPath(base, []string{"title"}, cty.StringVal("new"))
	assert.Equal(t, "new", out.GetAttr("title").AsString())
	assert.True(t, cty.NumberIntVal(12).RawEquals(out.GetAttr("size")), "siblings are preserved")

	// A missing intermediate is created.
	out = setAtPath(cty.NilVal, []string{"layout", "title"}, cty.StringVal("deep"))
	assert.Equal(t, "deep", out.GetAttr("layout").GetAttr("title").AsString())

	// The original value is untouched.
	assert.Equal(t, "old", base.GetAttr("title").AsString())
}
