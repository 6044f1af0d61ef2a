package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/objview/engine/core"
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	app := NewApp()
	app.Writer = &buf
	err := app.Run(append([]string{"objview"}, args...))
	return buf.String(), err
}

func writeAssets(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	obj := filepath.Join(dir, "quad.obj")
	mtl := filepath.Join(dir, "quad.mtl")
	require.NoError(t, os.WriteFile(obj, []byte("v 0 0 0\nv 2 0 0\nv 2 1 0\nv 0 1 0\nusemtl Red\nf 1 2 3 4\nf 1 2\n"), 0o644))
	require.NoError(t, os.WriteFile(mtl, []byte("newmtl Red\nKd 1 0 0\nNs 32\nmap_Kd red.png\n"), 0o644))
	return obj, mtl
}

func TestInspect(t *testing.T) {
	obj, mtl := writeAssets(t)

	out, err := runApp(t, "inspect", "--mtl", mtl, obj)
	require.NoError(t, err)
	assert.Contains(t, out, "triangles")
	assert.Contains(t, out, "Red")
	assert.Contains(t, out, "[1 0 0]")
	assert.Contains(t, out, "unsupported face")
	assert.Contains(t, out, "unknown keyword")
}

func TestInspectDump(t *testing.T) {
	obj, _ := writeAssets(t)

	out, err := runApp(t, "inspect", "--dump", obj)
	require.NoError(t, err)
	assert.Equal(t, "v 0 0 0\nv 2 0 0\nv 2 1 0\nv 0 1 0\nusemtl Red\nf 1 2 3\nf 1 3 4\n", out)
}

func TestInspectErrors(t *testing.T) {
	_, err := runApp(t, "inspect")
	assert.EqualError(t, err, "missing obj file or URL")

	_, err = runApp(t, "inspect", filepath.Join(t.TempDir(), "missing.obj"))
	assert.ErrorIs(t, err, core.ErrTransport)

	_, err = runApp(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "inspect", "x.obj")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
