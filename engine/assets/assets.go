package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/objview/engine/assets/loaders"
	"github.com/spaghettifunk/objview/engine/core"
	"github.com/spaghettifunk/objview/engine/resources"
	"github.com/spaghettifunk/objview/engine/systems"
)

type AssetInfo struct {
	Path       string
	Type       resources.ResourceType
	LastLoaded time.Time
}

// AssetManager indexes the OBJ and MTL files under a directory, dispatches
// loads to the loader registered for each resource type and, when watching,
// keeps the index in sync with the disk.
type AssetManager struct {
	config  core.Config
	root    string
	events  *core.EventBus
	assets  map[string]AssetInfo
	loaders map[resources.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewAssetManager(cfg core.Config, events *core.EventBus) (*AssetManager, error) {
	if events == nil {
		events = core.NewEventBus()
	}
	return &AssetManager{
		config:  cfg,
		events:  events,
		assets:  make(map[string]AssetInfo),
		loaders: make(map[resources.ResourceType]Loader),
		done:    make(chan struct{}),
	}, nil
}

// Initialize indexes the asset directory and, if the configuration asks for
// it, starts watching it. Assets are keyed by their slash separated path
// relative to assetsDir.
func (am *AssetManager) Initialize(assetsDir string) error {
	am.root = assetsDir

	// Register loaders
	cfg := am.config
	cfg.AssetBasePath = assetsDir
	source := loaders.NewSource(cfg)
	am.RegisterLoader(resources.ResourceTypeMesh, loaders.NewModelLoader(source, cfg))
	am.RegisterLoader(resources.ResourceTypeMaterial, loaders.NewMaterialLoader(source, cfg))

	if am.config.Watch {
		fsWatch, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		am.fsnotify = fsWatch
		am.stopped = make(chan struct{})
		go am.start()
	}
	if err := am.watchRecursive(assetsDir); err != nil {
		return err
	}
	core.LogInfo("Asset manager initialized with base path '%s' (%d assets).", assetsDir, len(am.Assets()))
	return nil
}

// Events returns the bus on which asset changes are published.
func (am *AssetManager) Events() *core.EventBus {
	return am.events
}

// Register loaders for each asset type
func (am *AssetManager) RegisterLoader(assetType resources.ResourceType, loader Loader) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.loaders[assetType] = loader
}

// Assets returns the indexed assets sorted by path.
func (am *AssetManager) Assets() []AssetInfo {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	out := make([]AssetInfo, 0, len(am.assets))
	for _, a := range am.assets {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b AssetInfo) int {
		return strings.Compare(a.Path, b.Path)
	})
	return out
}

// Load an asset using the appropriate loader
func (am *AssetManager) LoadAsset(ctx context.Context, path string, params interface{}) (*resources.Resource, error) {
	if determineAssetType(path) == resources.ResourceTypeNone {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownResourceType, path)
	}
	am.mutex.Lock()
	asset, exists := am.assets[path]
	if !exists {
		am.mutex.Unlock()
		return nil, fmt.Errorf("%w: %s", core.ErrAssetNotFound, path)
	}
	asset.LastLoaded = time.Now()
	am.assets[path] = asset
	loader, loaderExists := am.loaders[asset.Type]
	am.mutex.Unlock()

	if !loaderExists {
		return nil, fmt.Errorf("%w: %s", core.ErrLoaderNotFound, asset.Type)
	}

	res, err := loader.Load(ctx, path, params)
	if err != nil {
		return nil, err
	}
	if res.Type == resources.ResourceTypeMesh {
		am.events.Fire(core.EventModelLoaded, am, core.EventContext{ID: res.ID, Path: path})
	}
	return res, nil
}

// ModelFor maps an indexed .obj, or a .mtl whose sibling .obj is indexed, to
// the path of that model.
func (am *AssetManager) ModelFor(path string) (string, bool) {
	switch determineAssetType(path) {
	case resources.ResourceTypeMesh:
		return path, am.has(path)
	case resources.ResourceTypeMaterial:
		obj := strings.TrimSuffix(path, ".mtl") + ".obj"
		return obj, am.has(obj)
	default:
		return "", false
	}
}

// LoadModel loads an indexed model together with its sibling .mtl file when
// one is indexed.
func (am *AssetManager) LoadModel(ctx context.Context, path string) (*resources.Resource, error) {
	var params interface{}
	if mtl := strings.TrimSuffix(path, ".obj") + ".mtl"; am.has(mtl) {
		params = loaders.ModelParams{MaterialPath: mtl}
	}
	return am.LoadAsset(ctx, path, params)
}

// LoadAll loads every indexed model on a pool of workers. A model whose
// sibling .mtl file is indexed is loaded together with it. Models that fail
// to load are skipped and their errors joined into the returned error.
func (am *AssetManager) LoadAll(ctx context.Context, workers int) ([]*resources.Resource, error) {
	js, err := systems.NewJobSystem(workers, workers)
	if err != nil {
		return nil, err
	}

	var (
		mu   sync.Mutex
		out  []*resources.Resource
		errs []error
	)
	for _, a := range am.Assets() {
		if a.Type != resources.ResourceTypeMesh {
			continue
		}
		path := a.Path
		js.Submit(systems.JobTask{
			Name: path,
			OnStart: func() error {
				res, err := am.LoadModel(ctx, path)
				if err != nil {
					return err
				}
				mu.Lock()
				out = append(out, res)
				mu.Unlock()
				return nil
			},
			OnFailure: func(err error) {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", path, err))
				mu.Unlock()
			},
		})
	}
	if err := js.Shutdown(); err != nil {
		return nil, err
	}

	slices.SortFunc(out, func(a, b *resources.Resource) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, errors.Join(errs...)
}

func (am *AssetManager) has(path string) bool {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	_, ok := am.assets[path]
	return ok
}

func (am *AssetManager) UnloadAsset(res *resources.Resource) error {
	if res == nil {
		return nil
	}
	am.mutex.RLock()
	loader, ok := am.loaders[res.Type]
	am.mutex.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrLoaderNotFound, res.Type)
	}
	return loader.Unload(res)
}

// Shutdown stops the watcher, if any. It is safe to call more than once.
func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	am.mutex.Unlock()

	close(am.done)
	if am.stopped != nil {
		<-am.stopped
	}
	return nil
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {

		case e := <-am.fsnotify.Events:
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name); err != nil {
						core.LogError("%s", err)
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if am.handleFileEvent(e.Name) {
					am.events.Fire(core.EventAssetChanged, am, core.EventContext{Path: am.relPath(e.Name)})
				}
			}
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				if am.removeAsset(e.Name) {
					am.events.Fire(core.EventAssetRemoved, am, core.EventContext{Path: am.relPath(e.Name)})
				}
			}

		case err := <-am.fsnotify.Errors:
			core.LogError("%s", err)

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// watchRecursive indexes every file under path and adds each directory to
// the watch list when watching is enabled.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.WalkDir(path, func(walkPath string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if am.fsnotify == nil {
				return nil
			}
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file. Returns false for files
// that are not assets.
func (am *AssetManager) handleFileEvent(fullPath string) bool {
	assetType := determineAssetType(fullPath)
	if assetType == resources.ResourceTypeNone {
		return false
	}

	path := am.relPath(fullPath)
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[path] = AssetInfo{
		Path: path,
		Type: assetType,
	}
	core.LogDebug("indexed %s asset %s", assetType, path)
	return true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(fullPath string) bool {
	path := am.relPath(fullPath)
	am.mutex.Lock()
	defer am.mutex.Unlock()

	if _, ok := am.assets[path]; !ok {
		return false
	}
	delete(am.assets, path)
	return true
}

func (am *AssetManager) relPath(fullPath string) string {
	rel, err := filepath.Rel(am.root, fullPath)
	if err != nil {
		return filepath.ToSlash(fullPath)
	}
	return filepath.ToSlash(rel)
}

func determineAssetType(path string) resources.ResourceType {
	switch filepath.Ext(path) {
	case ".obj":
		return resources.ResourceTypeMesh
	case ".mtl":
		return resources.ResourceTypeMaterial
	default:
		return resources.ResourceTypeNone
	}
}
