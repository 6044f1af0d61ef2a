package resources

const (
	InvalidID uint32 = 4294967295
)

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Unrecognised file, never loaded. */
	ResourceTypeNone ResourceType = iota
	/** @brief Material library resource type (.mtl). */
	ResourceTypeMaterial
	/** @brief Mesh resource type (.obj). */
	ResourceTypeMesh
)

func (rt ResourceType) String() string {
	switch rt {
	case ResourceTypeMaterial:
		return "material"
	case ResourceTypeMesh:
		return "mesh"
	default:
		return "none"
	}
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The identifier of the load request which produced this resource. */
	ID string
	/** @brief The type of the loader which handles this resource. */
	Type ResourceType
	/** @brief The name of the resource. */
	Name string
	/** @brief The full path or URL of the resource. */
	FullPath string
	/** @brief The number of bytes of source text the resource was parsed from. */
	DataSize uint64
	/** @brief The resource data. */
	Data interface{}
}
