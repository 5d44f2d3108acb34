package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuel-explorer/config"
	"fuel-explorer/models"
)

const dump = `{"data":[
	{"id":1,"mpg":18,"cylinders":8,"displacement":307,"horsepower":130,"weight":3504,"acceleration":12,"modelYear":70,"origin":1,"carName":"chevrolet chevelle malibu"},
	{"id":2,"mpg":"32","cylinders":4,"displacement":85,"horsepower":"?","weight":1990,"acceleration":17,"modelYear":1980,"origin":3,"carName":"datsun 210"},
	{"id":3,"mpg":29,"cylinders":4,"displacement":97,"horsepower":78,"weight":1940,"acceleration":14.5,"modelYear":77,"origin":2,"carName":"volkswagen rabbit custom"},
	{"id":4,"mpg":0,"cylinders":4,"displacement":97,"horsepower":78,"weight":1940,"acceleration":14.5,"modelYear":77,"origin":2,"carName":"broken record"}
],"pagination":{"totalPages":1}}`

type harness struct {
	dataFile string
	dsn      string
	csvPath  string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	h := &harness{
		dataFile: filepath.Join(dir, "cars.json"),
		dsn:      filepath.Join(dir, "favorites.db"),
		csvPath:  filepath.Join(dir, "out", "vehicles.csv"),
	}
	require.NoError(t, os.WriteFile(h.dataFile, []byte(dump), 0644))
	return h
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(func() *config.Config {
		cfg := config.FromEnv()
		cfg.CSVOutputPath = h.csvPath
		return cfg
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--file", h.dataFile, "--store", "sqlite", "--dsn", h.dsn, "--log-level", "error"))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBrowseJSON(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "browse", "--json", "--sort", "mpg", "--order", "desc", "--limit", "2")
	require.NoError(t, err)

	var res models.BrowseResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 3, res.Total, "the zero-mpg record is excluded")
	assert.Equal(t, 3, res.Matched)
	assert.Equal(t, 2, res.Page.TotalPages)
	require.Len(t, res.Page.Items, 2)
	assert.Equal(t, "datsun 210", res.Page.Items[0].Name)
	assert.Nil(t, res.Page.Items[0].Horsepower)
	assert.Equal(t, 1977, res.Page.Items[1].ModelYear)
}

func TestBrowseFiltersAndTable(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "browse", "--origin", "europe", "--min-mpg", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "volkswagen rabbit custom")
	assert.NotContains(t, out, "datsun")
	assert.Contains(t, out, "1 matching of 3 vehicles")
}

func TestBrowseUsageErrors(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "browse", "--limit", "0")
	assert.Error(t, err)

	_, err = h.run(t, "browse", "--origin", "mars")
	assert.Error(t, err)

	_, err = h.run(t, "browse", "--sort", "weight")
	assert.Error(t, err)
}

func TestChartsJSON(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "charts", "--field", "mpg", "--group", "origin", "--bins", "4")
	require.NoError(t, err)

	var charts models.ChartSet
	require.NoError(t, json.Unmarshal([]byte(out), &charts))
	assert.Len(t, charts.Histogram, 4)
	assert.Len(t, charts.Groups, 3)
	assert.Len(t, charts.Years, 3)

	_, err = h.run(t, "charts", "--field", "colour")
	assert.Error(t, err)
}

func TestInsights(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "insights")
	require.NoError(t, err)
	assert.Contains(t, out, "FUEL ECONOMY INSIGHTS")
	assert.Contains(t, out, "datsun 210")
}

func TestFavoritesLifecycle(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "favorites", "toggle", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Added datsun 210")

	_, err = h.run(t, "favorites", "toggle", "3")
	require.NoError(t, err)

	out, err = h.run(t, "favorites", "list")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "datsun 210"), strings.Index(out, "volkswagen rabbit custom"))

	out, err = h.run(t, "fav", "toggle", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed datsun 210")

	_, err = h.run(t, "favorites", "clear")
	require.NoError(t, err)
	out, err = h.run(t, "favorites", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No favorites saved")

	_, err = h.run(t, "favorites", "toggle", "99")
	assert.Error(t, err)
}

func TestExportCSV(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "export", "--sort", "year")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 3 vehicles")

	body, err := os.ReadFile(h.csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "1,chevrolet chevelle malibu"))
}

func TestExportToStdout(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "export", "--out", "-", "--efficiency", "excellent")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,name,mpg"))
	assert.Contains(t, lines[1], "datsun 210")
}

func TestBrowsePageFarPastTheEnd(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "browse", "--json", "--page", "4611686018427387906", "--limit", "2")
	require.NoError(t, err)

	var res models.BrowseResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Empty(t, res.Page.Items)
	assert.Equal(t, 2, res.Page.TotalPages)
}

func TestShowVehicleDetails(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "show", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "datsun 210 (1980)")
	assert.Contains(t, out, "32.0 (excellent)")
	assert.Contains(t, out, "Japan")
	assert.Contains(t, out, "Horsepower   : n/a")
	assert.Contains(t, out, "Favorite     : no")

	_, err = h.run(t, "favorites", "toggle", "2")
	require.NoError(t, err)

	out, err = h.run(t, "show", "2", "--json")
	require.NoError(t, err)
	var d struct {
		ID         int    `json:"id"`
		Efficiency string `json:"efficiency"`
		OriginName string `json:"originName"`
		Favorite   bool   `json:"favorite"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, 2, d.ID)
	assert.Equal(t, "excellent", d.Efficiency)
	assert.Equal(t, "Japan", d.OriginName)
	assert.True(t, d.Favorite)

	_, err = h.run(t, "show", "abc")
	assert.Error(t, err)
	_, err = h.run(t, "show", "99")
	assert.Error(t, err)
}
