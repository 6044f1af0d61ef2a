package assets

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/objview/engine/assets/loaders"
	"github.com/spaghettifunk/objview/engine/core"
	"github.com/spaghettifunk/objview/engine/resources"
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

func populate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "props"), 0o755))
	files := map[string]string{
		"quad.obj":       "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nusemtl Red\nf 1 2 3 4\n",
		"quad.mtl":       "newmtl Red\nKd 1 0 0\n",
		"README.txt":     "not an asset",
		"props/tri.obj":  "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n",
		"props/tri.json": "{}",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestAssetManagerIndex(t *testing.T) {
	dir := populate(t)
	am, err := NewAssetManager(core.DefaultConfig(), nil)
	require.NoError(t, err)
	require.NoError(t, am.Initialize(dir))
	defer am.Shutdown()

	var paths []string
	for _, a := range am.Assets() {
		paths = append(paths, a.Path)
	}
	assert.Equal(t, []string{"props/tri.obj", "quad.mtl", "quad.obj"}, paths)
	assert.Equal(t, resources.ResourceTypeMaterial, am.Assets()[1].Type)
}

func TestAssetManagerLoad(t *testing.T) {
	dir := populate(t)
	am, err := NewAssetManager(core.DefaultConfig(), nil)
	require.NoError(t, err)
	require.NoError(t, am.Initialize(dir))
	defer am.Shutdown()

	var loaded []string
	am.Events().Register(core.EventModelLoaded, "test", func(code core.SystemEventCode, sender interface{}, data core.EventContext) bool {
		loaded = append(loaded, data.Path)
		return true
	})

	res, err := am.LoadAsset(context.Background(), "quad.obj", loaders.ModelParams{MaterialPath: "quad.mtl"})
	require.NoError(t, err)
	model := res.Data.(*loaders.Model)
	assert.Equal(t, 2, model.Mesh.TriangleCount())
	_, ok := model.Materials.Lookup("Red")
	assert.True(t, ok)
	assert.Equal(t, []string{"quad.obj"}, loaded)
	assert.NoError(t, am.UnloadAsset(res))

	res, err = am.LoadAsset(context.Background(), "quad.mtl", nil)
	require.NoError(t, err)
	assert.Equal(t, resources.ResourceTypeMaterial, res.Type)

	_, err = am.LoadAsset(context.Background(), "README.txt", nil)
	assert.ErrorIs(t, err, core.ErrUnknownResourceType)

	_, err = am.LoadAsset(context.Background(), "missing.obj", nil)
	assert.ErrorIs(t, err, core.ErrAssetNotFound)
}

func TestAssetManagerWatch(t *testing.T) {
	dir := populate(t)
	cfg := core.DefaultConfig()
	cfg.Watch = true
	am, err := NewAssetManager(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, am.Initialize(dir))
	defer am.Shutdown()

	changed := make(chan string, 16)
	removed := make(chan string, 16)
	am.Events().Register(core.EventAssetChanged, "test", func(code core.SystemEventCode, sender interface{}, data core.EventContext) bool {
		changed <- data.Path
		return true
	})
	am.Events().Register(core.EventAssetRemoved, "test", func(code core.SystemEventCode, sender interface{}, data core.EventContext) bool {
		removed <- data.Path
		return true
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.obj"), []byte("v 0 0 0\n"), 0o644))
	assert.Equal(t, "new.obj", waitFor(t, changed))

	require.NoError(t, os.Remove(filepath.Join(dir, "quad.mtl")))
	assert.Equal(t, "quad.mtl", waitFor(t, removed))

	_, err = am.LoadAsset(context.Background(), "quad.mtl", nil)
	assert.ErrorIs(t, err, core.ErrAssetNotFound)
}

func waitFor(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for asset event")
		return ""
	}
}

func TestDetermineAssetType(t *testing.T) {
	assert.Equal(t, resources.ResourceTypeMesh, determineAssetType("a/b.obj"))
	assert.Equal(t, resources.ResourceTypeMaterial, determineAssetType("b.mtl"))
	assert.Equal(t, resources.ResourceTypeNone, determineAssetType("b.png"))
}

func TestAssetManagerLoadAll(t *testing.T) {
	dir := populate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.obj"), []byte("v 0 0 0\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.mtl"), []byte("Kd 1 1 1\n"), 0o644))

	am, err := NewAssetManager(core.DefaultConfig(), nil)
	require.NoError(t, err)
	require.NoError(t, am.Initialize(dir))
	defer am.Shutdown()

	res, err := am.LoadAll(context.Background(), 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNoCurrentMaterial)
	assert.Contains(t, err.Error(), "broken.obj")

	require.Len(t, res, 2)
	assert.Equal(t, "props/tri.obj", res[0].Name)
	assert.Equal(t, "quad.obj", res[1].Name)
	quad := res[1].Data.(*loaders.Model)
	require.NotNil(t, quad.Materials)
	assert.Len(t, quad.Materials.Materials, 1)
	assert.Nil(t, res[0].Data.(*loaders.Model).Materials)

	_, err = am.LoadAll(context.Background(), 0)
	assert.Error(t, err)
}

func TestAssetManagerLoadModel(t *testing.T) {
	dir := populate(t)
	am, err := NewAssetManager(core.DefaultConfig(), nil)
	require.NoError(t, err)
	require.NoError(t, am.Initialize(dir))
	defer am.Shutdown()

	for path, want := range map[string]string{
		"quad.obj":      "quad.obj",
		"quad.mtl":      "quad.obj",
		"props/tri.obj": "props/tri.obj",
	} {
		model, ok := am.ModelFor(path)
		assert.True(t, ok, path)
		assert.Equal(t, want, model, path)
	}
	_, ok := am.ModelFor("props/tri.mtl")
	assert.False(t, ok)
	_, ok = am.ModelFor("README.txt")
	assert.False(t, ok)

	res, err := am.LoadModel(context.Background(), "quad.obj")
	require.NoError(t, err)
	quad := res.Data.(*loaders.Model)
	require.NotNil(t, quad.Materials)
	_, ok = quad.Materials.Lookup("Red")
	assert.True(t, ok)

	res, err = am.LoadModel(context.Background(), "props/tri.obj")
	require.NoError(t, err)
	assert.Nil(t, res.Data.(*loaders.Model).Materials)
}

func TestAssetManagerWatchMaterialChange(t *testing.T) {
	dir := populate(t)
	cfg := core.DefaultConfig()
	cfg.Watch = true
	am, err := NewAssetManager(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, am.Initialize(dir))
	defer am.Shutdown()

	reloaded := make(chan string, 16)
	am.Events().Register(core.EventAssetChanged, "test", func(code core.SystemEventCode, sender interface{}, data core.EventContext) bool {
		if model, ok := am.ModelFor(data.Path); ok && data.Path == "quad.mtl" {
			reloaded <- model
		}
		return true
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "quad.mtl"), []byte("newmtl Blue\nKd 0 0 1\n"), 0o644))
	assert.Equal(t, "quad.obj", waitFor(t, reloaded))

	res, err := am.LoadModel(context.Background(), "quad.obj")
	require.NoError(t, err)
	_, ok := res.Data.(*loaders.Model).Materials.Lookup("Blue")
	assert.True(t, ok)
}
