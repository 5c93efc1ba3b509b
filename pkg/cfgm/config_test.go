package cfgm_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261019-go-pkg-envsubst/pkg/cfgm"
	"github.com/lwmacct/261019-go-pkg-envsubst/pkg/subst"
)

type logConfig struct {
	Level string `json:"level"`
}

type testConfig struct {
	Patterns []string  `json:"patterns"`
	DryRun   bool      `json:"dry-run"`
	Retries  int       `json:"retries"`
	Log      logConfig `json:"log"`
}

func defaults() testConfig {
	return testConfig{
		Patterns: []string{"deploy/**/*.yaml"},
		Retries:  1,
		Log:      logConfig{Level: "info"},
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := cfgm.Load(defaults(),
		cfgm.WithConfigPaths(filepath.Join(t.TempDir(), "nonexistent.yaml")),
		cfgm.WithEnv(subst.Env{}),
	)
	require.NoError(t, err)
	assert.Equal(t, defaults(), *cfg)
}

func TestLoad_YAMLWithPlaceholders(t *testing.T) {
	path := writeConfig(t, "config.yaml", "patterns:\n  - ${DIR}/*.yaml\n  - k8s/**/*.yml\nlog:\n  level: $LVL\n")

	cfg, err := cfgm.Load(defaults(),
		cfgm.WithConfigPaths("missing.yaml", path),
		cfgm.WithEnv(subst.Env{"DIR": "manifests", "LVL": "debug"}),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"manifests/*.yaml", "k8s/**/*.yml"}, cfg.Patterns)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 1, cfg.Retries, "unset keys keep defaults")
}

func TestLoad_WithoutTemplateExpansion(t *testing.T) {
	path := writeConfig(t, "config.yaml", "log:\n  level: ${LVL}\n")

	cfg, err := cfgm.Load(defaults(),
		cfgm.WithConfigPaths(path),
		cfgm.WithEnv(subst.Env{"LVL": "debug"}),
		cfgm.WithoutTemplateExpansion(),
	)
	require.NoError(t, err)
	assert.Equal(t, "${LVL}", cfg.Log.Level)
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"dry-run": true, "retries": 3, "log": {"level": "warn"}}`)

	cfg, err := cfgm.Load(defaults(), cfgm.WithRequiredFile(path), cfgm.WithEnv(subst.Env{}))
	require.NoError(t, err)

	assert.True(t, cfg.DryRun)
	assert.Equal(t, 3, cfg.Retries)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_FileErrors(t *testing.T) {
	_, err := cfgm.Load(defaults(), cfgm.WithRequiredFile(filepath.Join(t.TempDir(), "absent.yaml")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")

	_, err = cfgm.Load(defaults(), cfgm.WithConfigPaths(writeConfig(t, "bad.yaml", "log: [unterminated\n")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")

	_, err = cfgm.Load(defaults(), cfgm.WithConfigPaths(writeConfig(t, "list.yaml", "- a\n- b\n")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config root must be object")
}

func TestLoad_EnvPrefix(t *testing.T) {
	path := writeConfig(t, "config.yaml", "log:\n  level: warn\n")

	cfg, err := cfgm.Load(defaults(),
		cfgm.WithConfigPaths(path),
		cfgm.WithEnvPrefix("ENVSUBST_"),
		cfgm.WithEnv(subst.Env{
			"ENVSUBST_PATTERNS":  "a/*.yaml,b/*.yaml",
			"ENVSUBST_DRY_RUN":   "true",
			"ENVSUBST_LOG_LEVEL": "error",
			"ENVSUBST_RETRIES":   "",
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"a/*.yaml", "b/*.yaml"}, cfg.Patterns)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, "error", cfg.Log.Level, "env overrides file")
	assert.Equal(t, 1, cfg.Retries, "empty env values are ignored")
}

func TestLoadCmd_FlagsOverrideEverything(t *testing.T) {
	var got *testConfig
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "patterns"},
			&cli.BoolFlag{Name: "dry-run"},
			&cli.IntFlag{Name: "retries", Value: 1},
			&cli.StringFlag{Name: "log-level", Value: "info"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := cfgm.LoadCmd(cmd, defaults(), "",
				cfgm.WithConfigPaths(filepath.Join(t.TempDir(), "none.yaml")),
				cfgm.WithEnvPrefix("ENVSUBST_"),
				cfgm.WithEnv(subst.Env{"ENVSUBST_LOG_LEVEL": "error", "ENVSUBST_RETRIES": "5"}),
			)
			got = cfg

			return err
		},
	}

	err := cmd.Run(context.Background(), []string{"test", "--log-level", "debug", "--patterns", "x/*.yaml", "--patterns", "y/*.yaml"})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "debug", got.Log.Level)
	assert.Equal(t, []string{"x/*.yaml", "y/*.yaml"}, got.Patterns)
	assert.Equal(t, 5, got.Retries, "unset flag does not override env")
	assert.False(t, got.DryRun)
}

func TestDefaultPaths(t *testing.T) {
	assert.Equal(t, []string{"config.yaml", filepath.Join("config", "config.yaml")}, cfgm.DefaultPaths())

	paths := cfgm.DefaultPaths("envsubst")
	require.NotEmpty(t, paths)
	assert.Equal(t, ".envsubst.yaml", paths[0])
	assert.Equal(t, "/etc/envsubst/config.yaml", paths[len(paths)-1])
	assert.NotContains(t, paths, "config.yaml")
}

func TestMarshalYAML(t *testing.T) {
	out, err := cfgm.MarshalYAML(testConfig{
		Patterns: []string{"a/*.yaml"},
		Retries:  2,
		Log:      logConfig{Level: "info"},
	})
	require.NoError(t, err)

	want := "dry-run: false\n" +
		"log:\n" +
		"    level: info\n" +
		"patterns:\n" +
		"    - a/*.yaml\n" +
		"retries: 2\n"
	assert.Equal(t, want, string(out))
}
