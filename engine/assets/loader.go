package assets

import (
	"context"

	"github.com/spaghettifunk/objview/engine/resources"
)

type Loader interface {
	Load(ctx context.Context, path string, params interface{}) (*resources.Resource, error) // `interface{}` here allows loaders to take per-type parameters
	Unload(*resources.Resource) error
}
