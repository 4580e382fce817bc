package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/jonathan/channel-dashboard/internal/ingestion/ingestiontest"
	"github.com/jonathan/channel-dashboard/internal/schemas"
	"github.com/jonathan/channel-dashboard/internal/session"
	"github.com/jonathan/channel-dashboard/internal/types"
)

func sampleWorkbook(t *testing.T) string {
	t.Helper()
	t.Setenv("DASHBOARD_CONFIG", "")
	return ingestiontest.WriteXLSX(t, t.TempDir(), "hires.xlsx", ingestiontest.SampleSheets()...)
}

func TestBuildReport(t *testing.T) {
	file := sampleWorkbook(t)

	res, err := buildReport(file, "", session.ReportRequest{Variant: "A"})
	require.NoError(t, err)

	assert.Equal(t, 10, res.Filtered)
	assert.Equal(t, 8, res.Report.AttributedHires)
	assert.Equal(t, types.ModeRelative, res.Report.Mode)
	assert.Len(t, res.Grid, len(types.Buckets))
}

func TestBuildReport_WritesSchemaValidJSON(t *testing.T) {
	file := sampleWorkbook(t)
	req := session.ReportRequest{Mode: "absolute"}
	require.NoError(t, decodeJSONArg(`{"job_categories":["技术"]}`, &req.Criteria))

	res, err := buildReport(file, "", req)
	require.NoError(t, err)
	assert.Equal(t, 7, res.Filtered)

	out := filepath.Join(t.TempDir(), "nested", "report.json")
	require.NoError(t, writeJSON(out, res))

	schemaPath := schemas.ResolveSchemaPath(schemas.ReportSchema)
	require.NotEmpty(t, schemaPath)
	assert.NoError(t, schemas.ValidateJSON(schemaPath, out))
}

func TestBuildReport_Errors(t *testing.T) {
	file := sampleWorkbook(t)

	_, err := buildReport(filepath.Join(t.TempDir(), "missing.xlsx"), "", session.ReportRequest{})
	assert.ErrorContains(t, err, "failed to load dataset")

	_, err = buildReport(file, "", session.ReportRequest{Mode: "sideways"})
	assert.ErrorContains(t, err, "failed to compute report")

	_, err = buildReport(file, filepath.Join(t.TempDir(), "missing.yaml"), session.ReportRequest{})
	assert.ErrorContains(t, err, "failed to load config")
}

func TestListOptions(t *testing.T) {
	file := sampleWorkbook(t)

	opts, err := listOptions(file, "", types.Selection{JobCategories: []string{"设计"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"WXG"}, opts.BGs)
	assert.Equal(t, []string{"9"}, opts.Grades)
	assert.Equal(t, []string{"产品", "技术", "设计"}, opts.JobCategories)
}

func TestClassifyFile(t *testing.T) {
	file := sampleWorkbook(t)

	records, err := classifyFile(file, "")
	require.NoError(t, err)
	require.Len(t, records, 10)

	assert.Equal(t, types.BucketMedia, records[0].BucketA)
	assert.Equal(t, types.BucketMedia, records[0].BucketB)
	assert.Equal(t, types.BucketNone, records[6].BucketA, "free channel is unattributed by the path rules")
	assert.Equal(t, types.BucketTalentPool, records[6].BucketB)
	assert.Equal(t, types.BucketSTDelivery, records[8].BucketA)
	assert.Equal(t, types.BucketVendorDelivery, records[9].BucketB)

	data, err := json.Marshal(records[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"bucket_a":"media"`)
}

func TestSupplyDemand(t *testing.T) {
	file := sampleWorkbook(t)

	first, err := supplyDemand(file, "", []string{"技术", "运营"}, 7)
	require.NoError(t, err)
	second, err := supplyDemand(file, "", []string{"技术", "运营"}, 7)
	require.NoError(t, err)

	require.Len(t, first.Series, 1)
	assert.Equal(t, []string{"运营"}, first.Missing)
	assert.Len(t, first.Series[0].Values, first.Points)
	assert.Equal(t, first.Series[0].Values, second.Series[0].Values, "fixed seed is reproducible")
	assert.Equal(t, "2024-05", first.Series[0].Months[first.Points-1], "series ends at the last hire month")
}

func TestValidateConfigFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	t.Run("valid yaml", func(t *testing.T) {
		cfg, err := validateConfigFile(write("ok.yaml", "report:\n  mode: absolute\n  variant: A\nexcluded_bgs: []\n"))
		require.NoError(t, err)
		assert.Equal(t, "absolute", cfg.Report.Mode)
		assert.Empty(t, cfg.ExcludedBGs)
	})

	t.Run("valid json", func(t *testing.T) {
		_, err := validateConfigFile(write("ok.json", `{"report":{"top_n":4}}`))
		assert.NoError(t, err)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := validateConfigFile(write("extra.yaml", "colour: red\n"))
		assert.Error(t, err)
	})

	t.Run("bad mode", func(t *testing.T) {
		_, err := validateConfigFile(write("mode.json", `{"report":{"mode":"sideways"}}`))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := validateConfigFile(filepath.Join(dir, "nope.yaml"))
		assert.ErrorContains(t, err, "not found")
	})
}

func TestDecodeJSONArg(t *testing.T) {
	var sel types.Selection
	require.NoError(t, decodeJSONArg("", &sel))
	assert.Empty(t, sel.BGs)

	require.NoError(t, decodeJSONArg(`{"bgs":["IEG"]}`, &sel))
	assert.Equal(t, []string{"IEG"}, sel.BGs)

	path := filepath.Join(t.TempDir(), "sel.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"grades":["9"]}`), 0644))
	var fromFile types.Selection
	require.NoError(t, decodeJSONArg(path, &fromFile))
	assert.Equal(t, []string{"9"}, fromFile.Grades)

	assert.Error(t, decodeJSONArg("{not json", &sel))
}

func TestNewLogger_IgnoresPort(t *testing.T) {
	t.Setenv("DASHBOARD_PORT", "not-a-port")
	t.Setenv("DASHBOARD_LOG_LEVEL", "warn")

	l, err := newLogger(false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l, err = newLogger(true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	t.Setenv("DASHBOARD_LOG_LEVEL", "loud")
	_, err = newLogger(false)
	assert.Error(t, err)
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("DASHBOARD_CONFIG", "from-env.yaml")
	assert.Equal(t, "from-env.yaml", resolveConfigPath(""))
	assert.Equal(t, "flag.yaml", resolveConfigPath("flag.yaml"))
}

func TestBuildReport_BadPortDoesNotMatter(t *testing.T) {
	file := sampleWorkbook(t)
	t.Setenv("DASHBOARD_PORT", "not-a-port")

	res, err := buildReport(file, "", session.ReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Filtered)
}
