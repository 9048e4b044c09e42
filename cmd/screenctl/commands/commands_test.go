package commands

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/types"
	"github.com/go-go-golems/screenctl/pkg/api"
	"github.com/go-go-golems/screenctl/pkg/app"
	"github.com/go-go-golems/screenctl/pkg/screensets/monitoring"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, opts *RootOptions, args ...string) (string, string, error) {
	t.Helper()
	if opts == nil {
		opts = &RootOptions{Modules: DefaultModules}
	}
	cmd, err := NewRootCommand(opts)
	require.NoError(t, err)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err = executeRoot(context.Background(), cmd, opts)
	return out.String(), errOut.String(), err
}

// rowCollector keeps the rows a glazed command emits.
type rowCollector struct {
	rows []types.Row
}

func (r *rowCollector) AddRow(_ context.Context, row types.Row) error {
	r.rows = append(r.rows, row)
	return nil
}

func (r *rowCollector) Close(_ context.Context) error { return nil }

func (r *rowCollector) column(t *testing.T, name string) []any {
	t.Helper()
	out := make([]any, 0, len(r.rows))
	for _, row := range r.rows {
		v, ok := row.Get(name)
		require.True(t, ok, "row without %q", name)
		out = append(out, v)
	}
	return out
}

func testOptions(t *testing.T, lang string) *RootOptions {
	t.Helper()
	cfg := app.DefaultConfig()
	cfg.StateDir = t.TempDir()
	if lang != "" {
		cfg.Language = lang
	}
	return &RootOptions{Modules: DefaultModules, Config: cfg, Logger: zerolog.Nop()}
}

func TestScreensetsCommand_Rows(t *testing.T) {
	c, err := NewScreensetsCommand(testOptions(t, ""))
	require.NoError(t, err)

	rows := &rowCollector{}
	require.NoError(t, c.RunIntoGlazeProcessor(context.Background(), layers.NewParsedLayers(), rows))

	require.Equal(t, []any{
		"machine-monitoring", "machine-monitoring",
		"executive-summary", "executive-summary",
	}, rows.column(t, "screenset"), "registration order")
	require.Equal(t, []any{"dashboard", "machines-list", "dashboard", "alerts"}, rows.column(t, "screen"))
	require.Equal(t, []any{true, false, true, false}, rows.column(t, "default"))
	require.Equal(t, "mockups", rows.column(t, "category")[0])
	require.Equal(t, "Active Alerts", rows.column(t, "label")[3])
}

func TestScreensetsCommand_German(t *testing.T) {
	c, err := NewScreensetsCommand(testOptions(t, "de"))
	require.NoError(t, err)

	rows := &rowCollector{}
	require.NoError(t, c.RunIntoGlazeProcessor(context.Background(), layers.NewParsedLayers(), rows))
	require.Equal(t, "Aktive Warnungen", rows.column(t, "label")[3])
}

func TestEventsCommand_Rows(t *testing.T) {
	c, err := NewEventsCommand(testOptions(t, ""))
	require.NoError(t, err)

	rows := &rowCollector{}
	require.NoError(t, c.RunIntoGlazeProcessor(context.Background(), layers.NewParsedLayers(), rows))

	byName := map[string]types.Row{}
	for i, n := range rows.column(t, "name") {
		byName[n.(string)] = rows.rows[i]
	}
	fetched, ok := byName["executive-summary/dashboard/fetched"]
	require.True(t, ok)
	typ, _ := fetched.Get("payload_type")
	require.Equal(t, "execsummary.SummaryFetched", typ)
	subs, _ := fetched.Get("subscribers")
	require.GreaterOrEqual(t, subs.(int), 1)

	_, ok = byName["machine-monitoring/fleet/fetchFailed"]
	require.True(t, ok)
	_, ok = byName["executive-summary/alerts/severityFilterChanged"]
	require.True(t, ok)
}

func TestMockCommand_NoParamSubstitution(t *testing.T) {
	out, errOut, err := execute(t, nil, "mock", "get", "/machines/machine-42")
	require.NoError(t, err)
	require.Contains(t, errOut, "# GET /machines/:machineId (machine-monitoring:monitoring)")

	var m struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	require.Equal(t, monitoring.DefaultMachineID, m.ID)
}

func TestMockCommand_Domain(t *testing.T) {
	out, _, err := execute(t, nil, "mock", "GET", "/executive-summary/alerts?severity=critical", "--domain", "executive-summary-api")
	require.NoError(t, err)

	var alerts []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &alerts))
	require.Len(t, alerts, 6)

	_, _, err = execute(t, nil, "mock", "GET", "/machines", "--domain", "executive-summary-api")
	require.True(t, stderrors.Is(err, api.ErrNoMock))
}

func TestDuplicateModuleIsFatal(t *testing.T) {
	dup := func() []app.Module {
		return []app.Module{monitoring.Module(), monitoring.Module()}
	}
	opts := &RootOptions{Modules: dup}
	logPath := filepath.Join(t.TempDir(), "run.log")

	out, _, err := execute(t, opts, "run", "--log-file", logPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "install modules")
	require.Empty(t, out, "nothing rendered")
	require.Nil(t, opts.logFile, "log file closed on the failure path")
	_, err = os.Stat(logPath)
	require.NoError(t, err)

	listing := testOptions(t, "")
	listing.Modules = dup
	c, err := NewScreensetsCommand(listing)
	require.NoError(t, err)
	err = c.RunIntoGlazeProcessor(context.Background(), layers.NewParsedLayers(), &rowCollector{})
	require.Error(t, err)
}

func TestCloseLog(t *testing.T) {
	opts := testOptions(t, "")
	opts.Config.Log.File = filepath.Join(t.TempDir(), "logs", "screenctl.log")
	require.NoError(t, opts.setupLogging(&bytes.Buffer{}, false))
	require.NotNil(t, opts.logFile)

	require.NoError(t, opts.closeLog())
	require.Nil(t, opts.logFile)
	require.NoError(t, opts.closeLog())
}
