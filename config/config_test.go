package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/splitmatch/report"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "splitmatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimal = `
lineages: [C, A, B]
queries:
  - Q1
  - Q2
options:
  treeset: trees.nwk
  output: matches.csv
`

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(writeConfig(t, minimal), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"C", "A", "B"}, c.Lineages)
	assert.Equal(t, []string{"Q1", "Q2"}, c.Queries)
	assert.Equal(t, "trees.nwk", c.Options.Treeset)
	assert.Equal(t, "matches.csv", c.Options.Output)
	assert.Equal(t, 1, c.Options.Workers)
	assert.Equal(t, report.CSV, c.ReportFormat())
	assert.Equal(t, "go-json", c.Options.Codec)

	mem, err := c.MemoryLimitBytes()
	require.NoError(t, err)
	assert.Zero(t, mem)
}

func TestLoad_AllOptions(t *testing.T) {
	c, err := Load(writeConfig(t, minimal+`
  format: json
  codec: json
  workers: 8
  memory_limit: 2GiB
  io_limit: 64MB
`), nil)
	require.NoError(t, err)

	assert.Equal(t, report.JSON, c.ReportFormat())
	assert.Equal(t, 8, c.Options.Workers)

	mem, err := c.MemoryLimitBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(2<<30), mem)

	io, err := c.IOLimitBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(64_000_000), io)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, minimal+"  workers: 2\n")

	t.Setenv("SPLITMATCH_OPTIONS_WORKERS", "3")
	t.Setenv("SPLITMATCH_OPTIONS_OUTPUT", "env.csv")

	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	fs.Int("workers", 1, "")
	fs.String("output", "", "")
	fs.String("format", "csv", "")
	require.NoError(t, fs.Parse([]string{"--workers", "4"}))

	c, err := Load(path, fs)
	require.NoError(t, err)

	// flag beats env beats file
	assert.Equal(t, 4, c.Options.Workers)
	// env beats file, unchanged flags do not count
	assert.Equal(t, "env.csv", c.Options.Output)
	assert.Equal(t, "csv", c.Options.Format)
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("SPLITMATCH_LINEAGES", "A,B")
	t.Setenv("SPLITMATCH_QUERIES", "Q1")
	t.Setenv("SPLITMATCH_OPTIONS_TREESET", "s3://bucket/trees.nwk")
	t.Setenv("SPLITMATCH_OPTIONS_OUTPUT", "out.csv")

	c, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, c.Lineages)
	assert.Equal(t, []string{"Q1"}, c.Queries)
	assert.Equal(t, "s3://bucket/trees.nwk", c.Options.Treeset)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "no lineages", content: "queries: [Q]\noptions: {treeset: t, output: o}\n", want: "no lineages"},
		{name: "no queries", content: "lineages: [A]\noptions: {treeset: t, output: o}\n", want: "no queries"},
		{name: "no treeset", content: "lineages: [A]\nqueries: [Q]\noptions: {output: o}\n", want: "treeset"},
		{name: "format", content: minimal + "  format: xml\n", want: "xml"},
		{name: "codec", content: minimal + "  codec: msgpack\n", want: "msgpack"},
		{name: "workers", content: minimal + "  workers: 0\n", want: "workers"},
		{name: "memory limit", content: minimal + "  memory_limit: lots\n", want: "memory_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}
