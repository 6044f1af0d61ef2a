package loaders

import (
	"context"
	"fmt"

	"github.com/spaghettifunk/objview/engine/assets/wavefront"
	"github.com/spaghettifunk/objview/engine/core"
	"github.com/spaghettifunk/objview/engine/resources"
)

type MaterialLoader struct {
	source Source
	opts   []wavefront.Option
}

func NewMaterialLoader(source Source, cfg core.Config) *MaterialLoader {
	return &MaterialLoader{
		source: source,
		opts:   []wavefront.Option{wavefront.WithStrictNumbers(cfg.StrictNumbers)},
	}
}

// LoadMTL fetches and parses a material library.
func (ml *MaterialLoader) LoadMTL(ctx context.Context, path string) (*wavefront.MaterialTable, error) {
	table, _, err := ml.load(ctx, core.NewLoadID(), path)
	return table, err
}

// load returns the parsed table and the size of the fetched text.
func (ml *MaterialLoader) load(ctx context.Context, id, path string) (*wavefront.MaterialTable, int, error) {
	text, err := ml.source.Fetch(ctx, path)
	if err != nil {
		core.LogError("[%s] %s", core.ShortID(id), err)
		return nil, 0, err
	}
	table, err := parseMTL(id, path, text, ml.opts)
	return table, len(text), err
}

func (ml *MaterialLoader) Load(ctx context.Context, path string, params interface{}) (*resources.Resource, error) {
	id := core.NewLoadID()
	table, size, err := ml.load(ctx, id, path)
	if err != nil {
		return nil, err
	}
	return &resources.Resource{
		ID:       id,
		Type:     resources.ResourceTypeMaterial,
		Name:     path,
		FullPath: path,
		DataSize: uint64(size),
		Data:     table,
	}, nil
}

func (ml *MaterialLoader) Unload(res *resources.Resource) error {
	if res == nil {
		return nil
	}
	res.Data = nil
	return nil
}

func parseMTL(id, name string, text []byte, opts []wavefront.Option) (*wavefront.MaterialTable, error) {
	opts = append([]wavefront.Option{wavefront.WithSource(name)}, opts...)
	table, err := wavefront.ParseMTL(string(text), opts...)
	if err != nil {
		return nil, fmt.Errorf("material library %s: %w", name, err)
	}
	core.LogInfo("[%s] parsed %s: %d materials, %d diagnostics",
		core.ShortID(id), name, len(table.Materials), len(table.Diagnostics))
	return table, nil
}
