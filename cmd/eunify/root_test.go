package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eunify/internal/render"
)

// run executes the root command in a scratch directory so no config file
// or history database leaks in or out
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("EUNIFY_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestPresetsCommand(t *testing.T) {
	out, _, err := run(t, "--source", "static", "presets")
	require.NoError(t, err)

	assert.Contains(t, out, "fraud_detection")
	assert.Contains(t, out, "/graph/immigration-case-network")
	assert.Contains(t, out, "17 presets")
}

func TestLoadCommandJSON(t *testing.T) {
	out, stderr, err := run(t, "--source", "static", "load", "all", "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Nodes []map[string]any `json:"nodes"`
		Edges []map[string]any `json:"edges"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.NotEmpty(t, doc.Nodes)
	assert.NotEmpty(t, doc.Edges)

	for _, e := range doc.Edges {
		assert.NotEqual(t, "e-orphan-1", e["id"], "dangling edge must be filtered")
	}
	assert.Contains(t, stderr, "e-orphan-1")
}

func TestLoadCommandRender(t *testing.T) {
	out, _, err := run(t, "--source", "static", "load", "fraud_detection", "-f", "render")
	require.NoError(t, err)

	var spec render.Spec
	require.NoError(t, json.Unmarshal([]byte(out), &spec))
	assert.Equal(t, "breadthfirst", spec.Layout.Name)
	assert.NotEmpty(t, spec.Elements)
	assert.NotEmpty(t, spec.Legend)
}

func TestLoadCommandYAML(t *testing.T) {
	out, _, err := run(t, "--source", "static", "load", "case_networks", "--format", "yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "nodes:"), "got %q", out[:min(len(out), 40)])
}

func TestLoadCommandErrors(t *testing.T) {
	_, _, err := run(t, "--source", "static", "load", "nope")
	assert.Error(t, err)

	_, _, err = run(t, "--source", "static", "load", "all", "--format", "xml")
	assert.Error(t, err)

	_, _, err = run(t, "--source", "carrier-pigeon", "presets")
	assert.Error(t, err)
}

func TestQueryCommandNeedsLiveSource(t *testing.T) {
	_, stderr, err := run(t, "--source", "static", "query", "g.V().count()")
	require.Error(t, err)
	assert.Contains(t, stderr, "Query execution failed")
}
