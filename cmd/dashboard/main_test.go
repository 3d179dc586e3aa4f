package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-sheet-dashboard/internal/model"
)

const sheet = "POLO,EQUIPE,DATA DO SERVIÇO,COLABORADORA (BAIXA),ABRIR_AM\n" +
	"MARABA,EQ 01,05/03/2024,ANA,poda\n" +
	"Canaa,EQ02,06/03/2024,,Troca de lampada\n" +
	"TUCURUI,EQ03,31/02/2024,,poda\n"

func writeSheet(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sheet.csv")
	require.NoError(t, os.WriteFile(path, []byte(sheet), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, logLevel, sourceURL, sourceFile = "", "", "", ""

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestSnapshotCommand(t *testing.T) {
	out, err := run(t, "snapshot", "--file", writeSheet(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Rows read:     3")
	assert.Contains(t, out, "Records kept:  2")
	assert.Contains(t, out, "invalid_date")
	assert.Contains(t, out, "MARABÁ")
	assert.Contains(t, out, "CANAÃ")
}

func TestSnapshotCommandJSONWithFilter(t *testing.T) {
	out, err := run(t, "snapshot", "--file", writeSheet(t), "--site", "maraba", "--json")
	require.NoError(t, err)

	var dash model.Dashboard
	require.NoError(t, json.Unmarshal([]byte(out), &dash))
	assert.Equal(t, 0, dash.KPIs.Total, "filters match canonical names only")

	out, err = run(t, "snapshot", "--file", writeSheet(t), "--site", "marabá", "--json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &dash))
	assert.Equal(t, 1, dash.KPIs.Total)
}

func TestSnapshotCommandPeriodAndType(t *testing.T) {
	var dash model.Dashboard

	out, err := run(t, "snapshot", "--file", writeSheet(t), "--from", "2024-03-06", "--json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &dash))
	assert.Equal(t, 1, dash.KPIs.Total)
	assert.Equal(t, "2024-03-06", dash.Selection.From)

	out, err = run(t, "snapshot", "--file", writeSheet(t), "--type", "PODA", "--json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &dash))
	assert.Equal(t, 1, dash.KPIs.Total)
	assert.Equal(t, []model.NamedValue{{Name: "PODA", Value: 1}}, dash.ByServiceType)

	out, err = run(t, "snapshot", "--file", writeSheet(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Service types")
	assert.Contains(t, out, "TROCA DE LAMPADA")

	_, err = run(t, "snapshot", "--file", writeSheet(t), "--from", "2024-03-07", "--to", "2024-03-01")
	assert.ErrorIs(t, err, model.ErrEmptyPeriod)
}

func TestSnapshotCommandRejectsBadMonth(t *testing.T) {
	_, err := run(t, "snapshot", "--file", writeSheet(t), "--month", "13")
	assert.ErrorIs(t, err, model.ErrInvalidMonth)
}

func TestExportCommandToDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "export", "--file", writeSheet(t), "--format", "json", "--out", dir)
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "*", "records-*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &records))
	assert.Len(t, records, 2)
}

func TestReportCommand(t *testing.T) {
	out, err := run(t, "report", "--file", writeSheet(t))
	require.NoError(t, err)
	assert.Contains(t, out, "MAINTENANCE DAILY REPORT")
	assert.Contains(t, out, "Grand total:         2")
}

func TestReportCommandComparesChosenDays(t *testing.T) {
	out, err := run(t, "report", "--file", writeSheet(t), "--date", "2024-03-05", "--compare", "2024-03-06")
	require.NoError(t, err)
	assert.Contains(t, out, "MAINTENANCE DAILY REPORT 2024-03-05")
	assert.Contains(t, out, "Services 2024-03-05: 1")
	assert.Contains(t, out, "Services 2024-03-06: 1")
	assert.Contains(t, out, "Variation:           +0.0% vs 2024-03-06")

	out, err = run(t, "report", "--file", writeSheet(t), "--date", "2024-03-06", "--json")
	require.NoError(t, err)
	var report model.DailyReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "2024-03-05", report.CompareDate)
	assert.Equal(t, 1, report.Total)

	_, err = run(t, "report", "--file", writeSheet(t), "--date", "06/03/2024")
	assert.ErrorIs(t, err, model.ErrInvalidDay)
}

func TestMissingSource(t *testing.T) {
	t.Setenv("DASHBOARD_SOURCE_URL", "")
	t.Setenv("DASHBOARD_SOURCE_FILE", "")
	_, err := run(t, "snapshot")
	assert.Error(t, err)
}
