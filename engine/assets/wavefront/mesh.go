package wavefront

import (
	"fmt"

	"github.com/spaghettifunk/objview/engine/core"
	"github.com/spaghettifunk/objview/engine/math"
)

func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Extents returns the bounding box of the positions. ok is false for a mesh
// without positions.
func (m *Mesh) Extents() (ext math.Extents3D, ok bool) {
	return math.GeometryExtents(m.Positions)
}

// Validate checks every index against the number of positions. Parsing does
// not do this, so renderers should call it before uploading buffers.
func (m *Mesh) Validate() error {
	count := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= count {
			return fmt.Errorf("index %d (slot %d) exceeds %d positions: %w", idx, i, count, core.ErrIndexOutOfRange)
		}
	}
	return nil
}

// GenerateNormals fills Normals with flat face normals when the source file
// had none. It reports whether normals were generated.
func (m *Mesh) GenerateNormals() bool {
	if len(m.Normals) != 0 {
		return false
	}
	m.Normals = math.GeometryGenerateNormals(m.Positions, m.Indices)
	return true
}

// Vertices interleaves the attribute arrays by position index. Normals and
// texture coordinates are attached only when their array has an entry at the
// same index.
func (m *Mesh) Vertices() []math.Vertex3D {
	out := make([]math.Vertex3D, m.VertexCount())
	for i := range out {
		out[i].Position = math.Vec3{X: m.Positions[i*3], Y: m.Positions[i*3+1], Z: m.Positions[i*3+2]}
		if i*3+2 < len(m.Normals) {
			out[i].Normal = math.Vec3{X: m.Normals[i*3], Y: m.Normals[i*3+1], Z: m.Normals[i*3+2]}
		}
		if i*2+1 < len(m.TexCoords) {
			out[i].Texcoord = math.Vec2{X: m.TexCoords[i*2], Y: m.TexCoords[i*2+1]}
		}
	}
	return out
}
