package dashboard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/yonkmanjl/vizro/internal/action"
	"github.com/yonkmanjl/vizro/internal/engine"
	"github.com/yonkmanjl/vizro/internal/testutil"
)

const tipsCSV = "day,total\nThur,10\nFri,12\nFri,7\nSat,20\n"

const definition = `
dashboard {
  title = "Tips"
}

data "tips" {
  path = "data/tips.csv"
}

page "overview" {
  title = "Overview"

  chart "totals" {
    type         = "bar"
    data         = "tips"
    interactions = ["breakdown"]

    arguments {
      x = "day"
      y = "total"
    }
  }

  chart "breakdown" {
    type = "pie"
    data = "tips"

    arguments {
      names  = "day"
      values = "total"
    }
  }

  filter "day-filter" {
    column = "day"
  }

  parameter "agg-param" {
    selector = "radio_items"
    options  = ["sum", "mean", "count"]
    targets  = ["totals.agg"]
  }

  parameter "day-param" {
    selector = "dropdown"
    targets  = ["breakdown.data_frame.day"]
  }
}
`

func buildFixture(t *testing.T) *testutil.HarnessResult {
	t.Helper()
	result := testutil.BuildDashboard(t, map[string]string{
		"dashboard.hcl": definition,
		"data/tips.csv": tipsCSV,
	})
	require.NoError(t, result.Err, "logs:\n%s", result.LogOutput)
	return result
}

func findAction(t *testing.T, result *testutil.HarnessResult, pageID, id string) action.Action {
	t.Helper()
	for _, a := range result.App.Snapshot().Actions.ActionsOn(pageID) {
		if a.ID() == id {
			return a
		}
	}
	t.Fatalf("action %q not found", id)
	return nil
}

func TestPageLoadRecomputesAllCharts(t *testing.T) {
	result := buildFixture(t)
	a := findAction(t, result, "overview", "overview.on_page_load")

	figures, err := a.Invoke(context.Background(), result.App.Snapshot().Registry, engine.GroupedValues{})
	require.NoError(t, err)

	require.Len(t, figures, 2)
	assert.Equal(t, []string{"Fri", "Sat", "Thur"}, figures["totals"].Traces[0].Labels)
	assert.Equal(t, []float64{19, 20, 10}, figures["totals"].Traces[0].Y)
	assert.Equal(t, "vizro_light", figures["totals"].Layout.Template)
}

func TestFilterSubsetsEveryTargetedChart(t *testing.T) {
	result := buildFixture(t)
	a := findAction(t, result, "overview", "day-filter.filter")

	values := engine.GroupedValues{
		Filters: []engine.ControlValue{{ComponentID: "day-filter", Value: cty.StringVal("Fri")}},
	}
	figures, err := a.Invoke(context.Background(), result.App.Snapshot().Registry, values)
	require.NoError(t, err)

	// The filter has no explicit targets, so both charts recompute.
	require.Len(t, figures, 2)
	assert.Equal(t, []string{"Fri"}, figures["totals"].Traces[0].Labels)
	assert.Equal(t, []float64{19}, figures["totals"].Traces[0].Y)
	assert.Equal(t, []string{"Fri"}, figures["breakdown"].Traces[0].Labels)
}

func TestParameterOverridesRecipeArgument(t *testing.T) {
	result := buildFixture(t)
	a := findAction(t, result, "overview", "agg-param.parameter")

	values := engine.GroupedValues{
		Parameters: []engine.ControlValue{{ComponentID: "agg-param", Value: cty.StringVal("count")}},
	}
	figures, err := a.Invoke(context.Background(), result.App.Snapshot().Registry, values)
	require.NoError(t, err)

	// Only the targeted chart recomputes, with the aggregation overridden.
	require.Len(t, figures, 1)
	assert.Equal(t, []float64{2, 1, 1}, figures["totals"].Traces[0].Y)
}

func TestDataFrameParameterFiltersRows(t *testing.T) {
	result := buildFixture(t)
	a := findAction(t, result, "overview", "day-param.parameter")

	values := engine.GroupedValues{
		Parameters: []engine.ControlValue{{ComponentID: "day-param", Value: cty.StringVal("Sat")}},
	}
	figures, err := a.Invoke(context.Background(), result.App.Snapshot().Registry, values)
	require.NoError(t, err)

	require.Len(t, figures, 1)
	assert.Equal(t, []string{"Sat"}, figures["breakdown"].Traces[0].Labels)
	assert.Equal(t, []float64{20}, figures["breakdown"].Traces[0].Values)
}

func TestInteractionCrossFilters(t *testing.T) {
	result := buildFixture(t)
	a := findAction(t, result, "overview", "totals.filter_interaction")

	values := engine.GroupedValues{
		FilterInteraction: []engine.InteractionValue{
			{SourceID: "totals", Column: "day", Value: cty.StringVal("Thur")},
		},
	}
	figures, err := a.Invoke(context.Background(), result.App.Snapshot().Registry, values)
	require.NoError(t, err)

	require.Len(t, figures, 1)
	assert.Equal(t, []string{"Thur"}, figures["breakdown"].Traces[0].Labels)
}

func TestThemeTogglesTemplate(t *testing.T) {
	result := buildFixture(t)
	a := findAction(t, result, "overview", "overview.on_page_load")

	figures, err := a.Invoke(context.Background(), result.App.Snapshot().Registry, engine.GroupedValues{Theme: true})
	require.NoError(t, err)
	assert.Equal(t, "vizro_dark", figures["totals"].Layout.Template)
}

func TestInactiveControlsLeaveDataUntouched(t *testing.T) {
	result := buildFixture(t)
	a := findAction(t, result, "overview", "day-filter.filter")

	// Null and empty values are not selections.
	values := engine.GroupedValues{
		Filters:    []engine.ControlValue{{ComponentID: "day-filter", Value: cty.NullVal(cty.String)}},
		Parameters: []engine.ControlValue{{ComponentID: "agg-param", Value: cty.EmptyTupleVal}},
	}
	figures, err := a.Invoke(context.Background(), result.App.Snapshot().Registry, values)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fri", "Sat", "Thur"}, figures["totals"].Traces[0].Labels)
}
