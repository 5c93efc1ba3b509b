package process_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/261019-go-pkg-envsubst/internal/command/process"
)

func TestCommand_ProcessesPositionalPatterns(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("APP_HOST", "db.local")
	t.Setenv("APP_PORT", "")

	path := filepath.Join("manifests", "svc.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("host: ${APP_HOST}\nport: $APP_PORT\n"), 0o644))

	var out bytes.Buffer
	process.Command.Writer = &out

	err := process.Command.Run(context.Background(), []string{
		"envsubst", "--log-format", "none", "manifests/*.yaml", "manifests/**/*.yaml",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "host: db.local\nport: \n", string(data))

	assert.Contains(t, out.String(), "  - manifests/*.yaml\n  - manifests/**/*.yaml\n")
	assert.Contains(t, out.String(), "  APP_HOST=db.local\n")
	assert.Contains(t, out.String(), "Total unique files to process: 1\n")
	assert.Contains(t, out.String(), "Total replacements across all files: 2\n")
}
