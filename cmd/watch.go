package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/urfave/cli"

	"github.com/spaghettifunk/objview/engine/assets"
	"github.com/spaghettifunk/objview/engine/assets/loaders"
	"github.com/spaghettifunk/objview/engine/core"
)

// Watch indexes an asset directory and reloads models whenever their OBJ file
// or sibling MTL file changes on disk, until interrupted.
func Watch(ctx *cli.Context) error {
	cfg, err := setupConfig(ctx)
	if err != nil {
		return err
	}
	if ctx.NArg() != 1 {
		return errors.New("missing asset directory")
	}
	cfg.Watch = true

	am, err := assets.NewAssetManager(cfg, nil)
	if err != nil {
		return err
	}
	if err := am.Initialize(ctx.Args().First()); err != nil {
		return err
	}
	defer am.Shutdown()

	reload := func(code core.SystemEventCode, sender interface{}, data core.EventContext) bool {
		model, ok := am.ModelFor(data.Path)
		if !ok {
			return false
		}
		res, err := am.LoadModel(context.Background(), model)
		if err != nil {
			core.LogError("reload %s: %s", model, err)
			return true
		}
		m := res.Data.(*loaders.Model)
		core.LogInfo("reloaded %s (%s changed): %d vertices, %d triangles, %d materials",
			model, data.Path, m.Mesh.VertexCount(), m.Mesh.TriangleCount(), materialCount(m))
		return am.UnloadAsset(res) == nil
	}
	am.Events().Register(core.EventAssetChanged, "watch", reload)
	am.Events().Register(core.EventAssetRemoved, "watch", func(code core.SystemEventCode, sender interface{}, data core.EventContext) bool {
		core.LogWarn("asset removed: %s", data.Path)
		return true
	})

	models, err := am.LoadAll(context.Background(), runtime.NumCPU())
	if err != nil {
		core.LogWarn("initial load: %s", err)
	}
	for _, res := range models {
		m := res.Data.(*loaders.Model)
		core.LogInfo("loaded %s: %d vertices, %d triangles", res.Name, m.Mesh.VertexCount(), m.Mesh.TriangleCount())
		_ = am.UnloadAsset(res)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	<-sigCh
	core.LogInfo("shutting down watcher")
	return nil
}

func materialCount(m *loaders.Model) int {
	if m.Materials == nil {
		return 0
	}
	return len(m.Materials.Materials)
}
