package core

import (
	"errors"
)

var (
	// ErrTransport marks a failure to obtain the source text of an asset.
	ErrTransport = errors.New("asset source could not be fetched")
	// ErrNoCurrentMaterial is returned when an MTL property appears before any newmtl.
	ErrNoCurrentMaterial = errors.New("material property declared before newmtl")
	// ErrIndexOutOfRange is returned by mesh validation.
	ErrIndexOutOfRange     = errors.New("index out of range")
	ErrUnknownResourceType = errors.New("unknown resource type")
	ErrLoaderNotFound      = errors.New("no loader registered for resource type")
	ErrAssetNotFound       = errors.New("asset not found")
)
