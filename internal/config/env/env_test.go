package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles(t *testing.T) {
	assert.Equal(t, []string{filepath.Join(Dir, ".env.production"), ".env"}, Files("production"))
	assert.Equal(t, []string{filepath.Join(Dir, ".env.development"), ".env"}, Files(""))
}

func TestLoadEnvDefaultsToDevelopment(t *testing.T) {
	dir := t.TempDir()
	oldDir := Dir
	Dir = dir
	t.Cleanup(func() { Dir = oldDir })

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.development"), []byte("CONTACTRELAY_TEST_DEV=yes\n"), 0o600))

	t.Setenv("ENV", "")
	t.Setenv("CONTACTRELAY_TEST_DEV", "")
	require.NoError(t, os.Unsetenv("CONTACTRELAY_TEST_DEV"))

	loaded, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".env.development"), loaded)
	assert.Equal(t, "yes", os.Getenv("CONTACTRELAY_TEST_DEV"))
}

func TestLoadEnvKeepsProcessValues(t *testing.T) {
	dir := t.TempDir()
	oldDir := Dir
	Dir = dir
	t.Cleanup(func() { Dir = oldDir })

	content := "CONTACTRELAY_TEST_A=from-file\nCONTACTRELAY_TEST_B=from-file\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.envtest"), []byte(content), 0o600))

	t.Setenv("ENV", "envtest")
	t.Setenv("CONTACTRELAY_TEST_A", "from-process")
	t.Setenv("CONTACTRELAY_TEST_B", "")
	require.NoError(t, os.Unsetenv("CONTACTRELAY_TEST_B"))

	loaded, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".env.envtest"), loaded)
	assert.Equal(t, "from-process", os.Getenv("CONTACTRELAY_TEST_A"))
	assert.Equal(t, "from-file", os.Getenv("CONTACTRELAY_TEST_B"))
}

func TestLoadEnvWithoutFiles(t *testing.T) {
	oldDir := Dir
	Dir = t.TempDir()
	t.Cleanup(func() { Dir = oldDir })

	t.Setenv("ENV", "missing")
	t.Chdir(t.TempDir())

	loaded, err := LoadEnv()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
