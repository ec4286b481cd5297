package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/yonkmanjl/vizro/internal/engine"
	"github.com/yonkmanjl/vizro/internal/target"
	"github.com/yonkmanjl/vizro/internal/testutil"
)

func TestBuildFailures(t *testing.T) {
	tests := []struct {
		name       string
		definition string
		wantErr    string
	}{
		{
			name: "parameter targeting another page",
			definition: `
data "tips" { path = "data/tips.csv" }

page "p1" {
  chart "c1" {
    type = "bar"
    data = "tips"
    arguments {
      x = "day"
      y = "total"
    }
  }
  parameter "p" {
    targets = ["c2.agg"]
  }
}

page "p2" {
  chart "c2" {
    type = "bar"
    data = "tips"
    arguments {
      x = "day"
      y = "total"
    }
  }
}
`,
			wantErr: `component "c2" does not exist on page "p1"`,
		},
		{
			name: "malformed parameter target",
			definition: `
data "tips" { path = "data/tips.csv" }

page "p1" {
  chart "c1" {
    type = "bar"
    data = "tips"
    arguments {
      x = "day"
      y = "total"
    }
  }
  parameter "p" {
    targets = ["c1"]
  }
}
`,
			wantErr: "targets must be supplied in the form <component_id>.<argument_path>",
		},
		{
			name: "undeclared chart argument",
			definition: `
data "tips" { path = "data/tips.csv" }

page "p1" {
  chart "c1" {
    type = "bar"
    data = "tips"
    arguments {
      x      = "day"
      y      = "total"
      zoomed = true
    }
  }
}
`,
			wantErr: "zoomed",
		},
		{
			name: "missing required argument",
			definition: `
data "tips" { path = "data/tips.csv" }

page "p1" {
  chart "c1" {
    type = "bar"
    data = "tips"
    arguments {
      x = "day"
    }
  }
}
`,
			wantErr: `"y"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := testutil.BuildDashboard(t, map[string]string{
				"dashboard.hcl": tt.definition,
				"data/tips.csv": tipsCSV,
			})
			require.Error(t, result.Err)
			assert.Contains(t, result.Err.Error(), tt.wantErr)
		})
	}
}

func TestForeignTargetErrorType(t *testing.T) {
	result := testutil.BuildDashboard(t, map[string]string{
		"dashboard.hcl": `
data "tips" { path = "data/tips.csv" }

page "p1" {
  chart "c1" {
    type = "bar"
    data = "tips"
    arguments {
      x = "day"
      y = "total"
    }
  }
  parameter "p" {
    targets = ["ghost.agg"]
  }
}
`,
		"data/tips.csv": tipsCSV,
	})
	require.Error(t, result.Err)

	var foreignErr *target.ForeignTargetError
	require.ErrorAs(t, result.Err, &foreignErr)
	assert.Equal(t, "ghost", foreignErr.ComponentID)
	assert.Equal(t, "p1", foreignErr.PageID)
}

func TestUnsupportedArgumentPathAtInvocation(t *testing.T) {
	// data_frame with a path deeper than one column is rejected when the
	// parameter is applied, not at build time.
	result := testutil.BuildDashboard(t, map[string]string{
		"dashboard.hcl": `
data "tips" { path = "data/tips.csv" }

page "p1" {
  chart "c1" {
    type = "bar"
    data = "tips"
    arguments {
      x = "day"
      y = "total"
    }
  }
  parameter "p" {
    targets = ["c1.data_frame.day.extra"]
  }
}
`,
		"data/tips.csv": tipsCSV,
	})
	require.NoError(t, result.Err)

	a := findAction(t, result, "p1", "p.parameter")

	values := engine.GroupedValues{
		Parameters: []engine.ControlValue{{ComponentID: "p", Value: cty.StringVal("Fri")}},
	}
	_, err := a.Invoke(context.Background(), result.App.Snapshot().Registry, values)
	require.Error(t, err)

	var pathErr *engine.UnsupportedArgumentPathError
	assert.True(t, errors.As(err, &pathErr))
}
