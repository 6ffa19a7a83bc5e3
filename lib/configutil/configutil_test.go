package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port   int    `json:"port"`
	Secret string `json:"secret"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garagestatus.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{port: 8080}`), 0644))

	config, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, testConfig{Port: 8080}, config)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "garagestatus.json5")
	local := filepath.Join(dir, "garagestatus.local.json5")
	require.NoError(t, os.WriteFile(base, []byte(`{port: 8080}`), 0644))
	require.NoError(t, os.WriteFile(local, []byte(`{secret: "s3cret"}`), 0644))

	config, err := ReadConfig[testConfig](base)
	require.NoError(t, err)
	require.Equal(t, testConfig{Port: 8080, Secret: "s3cret"}, config)
}

func TestReadConfigNotExist(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "garagestatus.json5"))
	require.True(t, os.IsNotExist(err))
}
