package loaders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/objview/engine/core"
	"github.com/spaghettifunk/objview/engine/resources"
)

const (
	cubeSideOBJ = "mtllib side.mtl\nv 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nusemtl Red\nf 1 2 3 4\n"
	sideMTL     = "newmtl Red\nKd 1 0 0\nillum 1\n"
)

func TestLoadOBJ(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "side.obj", cubeSideOBJ)
	ml := NewModelLoader(NewSource(testConfig(dir)), testConfig(dir))

	model, err := ml.LoadOBJ(context.Background(), "side.obj")
	require.NoError(t, err)
	assert.NotEmpty(t, model.ID)
	assert.Equal(t, 4, model.Mesh.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, model.Mesh.Indices)
	assert.Nil(t, model.Materials)
}

func TestLoadOBJTransportError(t *testing.T) {
	ml := NewModelLoader(NewSource(testConfig(t.TempDir())), core.DefaultConfig())

	model, err := ml.LoadOBJ(context.Background(), "nope.obj")
	assert.Nil(t, model)
	assert.ErrorIs(t, err, core.ErrTransport)
}

func TestLoadOBJWithMTL(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "side.obj", cubeSideOBJ)
	writeFile(t, dir, "side.mtl", sideMTL)
	ml := NewModelLoader(NewSource(testConfig(dir)), testConfig(dir))

	model, err := ml.LoadOBJWithMTL(context.Background(), "side.obj", "side.mtl")
	require.NoError(t, err)
	require.NotNil(t, model.Materials)

	require.Len(t, model.Mesh.MaterialRanges, 1)
	red, ok := model.Materials.Lookup(model.Mesh.MaterialRanges[0].Name)
	require.True(t, ok)
	assert.Equal(t, []float32{1, 0, 0}, red.Diffuse)
}

func TestLoadOBJWithMTLFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "side.obj", cubeSideOBJ)
	writeFile(t, dir, "side.mtl", sideMTL)
	writeFile(t, dir, "broken.mtl", "Kd 1 1 1\n")
	ml := NewModelLoader(NewSource(testConfig(dir)), testConfig(dir))

	model, err := ml.LoadOBJWithMTL(context.Background(), "side.obj", "missing.mtl")
	assert.Nil(t, model)
	assert.ErrorIs(t, err, core.ErrTransport)

	model, err = ml.LoadOBJWithMTL(context.Background(), "missing.obj", "side.mtl")
	assert.Nil(t, model)
	assert.ErrorIs(t, err, core.ErrTransport)

	model, err = ml.LoadOBJWithMTL(context.Background(), "side.obj", "broken.mtl")
	assert.Nil(t, model)
	assert.ErrorIs(t, err, core.ErrNoCurrentMaterial)
	assert.NotErrorIs(t, err, core.ErrTransport)
}

func TestModelLoaderResource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "side.obj", cubeSideOBJ)
	writeFile(t, dir, "side.mtl", sideMTL)
	ml := NewModelLoader(NewSource(testConfig(dir)), testConfig(dir))

	res, err := ml.Load(context.Background(), "side.obj", ModelParams{MaterialPath: "side.mtl"})
	require.NoError(t, err)
	assert.Equal(t, resources.ResourceTypeMesh, res.Type)
	model, ok := res.Data.(*Model)
	require.True(t, ok)
	assert.Equal(t, res.ID, model.ID)
	assert.Len(t, model.Materials.Materials, 1)
	assert.Equal(t, uint64(len(cubeSideOBJ)+len(sideMTL)), res.DataSize)
	assert.Equal(t, len(cubeSideOBJ)+len(sideMTL), model.SourceSize)

	require.NoError(t, ml.Unload(res))
	assert.Nil(t, res.Data)

	_, err = ml.Load(context.Background(), "side.obj", map[string]string{})
	assert.Error(t, err)
}

func TestMaterialLoader(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "side.mtl", sideMTL)
	ml := NewMaterialLoader(NewSource(testConfig(dir)), testConfig(dir))

	res, err := ml.Load(context.Background(), "side.mtl", nil)
	require.NoError(t, err)
	assert.Equal(t, resources.ResourceTypeMaterial, res.Type)
	assert.Equal(t, uint64(len(sideMTL)), res.DataSize)

	_, err = ml.LoadMTL(context.Background(), "other.mtl")
	assert.ErrorIs(t, err, core.ErrTransport)
}
