package loaders

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/spaghettifunk/objview/engine/assets/wavefront"
	"github.com/spaghettifunk/objview/engine/core"
	"github.com/spaghettifunk/objview/engine/resources"
)

// Model is the combined result handed to the renderer.
type Model struct {
	ID        string
	Name      string
	Mesh      *wavefront.Mesh
	Materials *wavefront.MaterialTable
	// SourceSize is the number of bytes of OBJ and MTL text fetched.
	SourceSize int
}

// ModelParams are the optional parameters of ModelLoader.Load.
type ModelParams struct {
	// MaterialPath names the MTL file loaded alongside the OBJ, if any.
	MaterialPath string
}

type ModelLoader struct {
	source Source
	opts   []wavefront.Option
}

func NewModelLoader(source Source, cfg core.Config) *ModelLoader {
	return &ModelLoader{
		source: source,
		opts:   []wavefront.Option{wavefront.WithStrictNumbers(cfg.StrictNumbers)},
	}
}

// LoadOBJ fetches and parses a single OBJ file. A fetch failure is returned
// as a *TransportError and nothing is parsed.
func (ml *ModelLoader) LoadOBJ(ctx context.Context, objPath string) (*Model, error) {
	id := core.NewLoadID()
	core.LogDebug("[%s] loading %s", core.ShortID(id), objPath)

	text, err := ml.source.Fetch(ctx, objPath)
	if err != nil {
		core.LogError("[%s] %s", core.ShortID(id), err)
		return nil, err
	}
	return &Model{
		ID:         id,
		Name:       objPath,
		Mesh:       ml.parseOBJ(id, objPath, text),
		SourceSize: len(text),
	}, nil
}

// LoadOBJWithMTL fetches both files concurrently, then parses the MTL text
// before the OBJ text. If either fetch fails, or the MTL cannot be parsed,
// no model is returned.
func (ml *ModelLoader) LoadOBJWithMTL(ctx context.Context, objPath, mtlPath string) (*Model, error) {
	id := core.NewLoadID()
	core.LogDebug("[%s] loading %s with %s", core.ShortID(id), objPath, mtlPath)

	var objText, mtlText []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mtlText, err = ml.source.Fetch(gctx, mtlPath)
		return err
	})
	g.Go(func() error {
		var err error
		objText, err = ml.source.Fetch(gctx, objPath)
		return err
	})
	if err := g.Wait(); err != nil {
		core.LogError("[%s] %s", core.ShortID(id), err)
		return nil, err
	}

	materials, err := parseMTL(id, mtlPath, mtlText, ml.opts)
	if err != nil {
		return nil, err
	}
	return &Model{
		ID:         id,
		Name:       objPath,
		Mesh:       ml.parseOBJ(id, objPath, objText),
		Materials:  materials,
		SourceSize: len(objText) + len(mtlText),
	}, nil
}

func (ml *ModelLoader) parseOBJ(id, name string, text []byte) *wavefront.Mesh {
	clock := core.NewClock()
	clock.Start()
	opts := append([]wavefront.Option{wavefront.WithSource(name)}, ml.opts...)
	mesh := wavefront.ParseOBJ(string(text), opts...)
	clock.Stop()

	core.LogInfo("[%s] parsed %s: %d vertices, %d triangles, %d diagnostics in %s",
		core.ShortID(id), name, mesh.VertexCount(), mesh.TriangleCount(), len(mesh.Diagnostics), clock.Elapsed())
	return mesh
}

func (ml *ModelLoader) Load(ctx context.Context, path string, params interface{}) (*resources.Resource, error) {
	var (
		model *Model
		err   error
	)
	switch p := params.(type) {
	case nil:
		model, err = ml.LoadOBJ(ctx, path)
	case ModelParams:
		if p.MaterialPath == "" {
			model, err = ml.LoadOBJ(ctx, path)
		} else {
			model, err = ml.LoadOBJWithMTL(ctx, path, p.MaterialPath)
		}
	default:
		return nil, fmt.Errorf("failed to cast params in model loader: %T", params)
	}
	if err != nil {
		return nil, err
	}
	return &resources.Resource{
		ID:       model.ID,
		Type:     resources.ResourceTypeMesh,
		Name:     path,
		FullPath: path,
		DataSize: uint64(model.SourceSize),
		Data:     model,
	}, nil
}

func (ml *ModelLoader) Unload(res *resources.Resource) error {
	if res == nil {
		return nil
	}
	res.Data = nil
	return nil
}
