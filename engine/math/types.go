package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

/**
 * @brief Represents the extents of a 3d object.
 */
type Extents3D struct {
	/** @brief The minimum extents of the object. */
	Min Vec3
	/** @brief The maximum extents of the object. */
	Max Vec3
}

// Center returns the midpoint of the extents.
func (e Extents3D) Center() Vec3 {
	return e.Min.Add(e.Max).Scale(0.5)
}

// Size returns the edge lengths of the box.
func (e Extents3D) Size() Vec3 {
	return e.Max.Sub(e.Min)
}

/**
 * @brief Represents a single vertex in 3D space.
 */
type Vertex3D struct {
	/** @brief The position of the vertex */
	Position Vec3
	/** @brief The normal of the vertex. */
	Normal Vec3
	/** @brief The texture coordinate of the vertex. */
	Texcoord Vec2
}
