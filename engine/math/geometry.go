package math

// GeometryGenerateNormals computes flat face normals for an indexed triangle
// list stored as flat position triples. The returned array has the same
// stride and length as positions. Vertices shared by several faces keep the
// normal of the last face that references them. Triangles referencing
// positions out of range are skipped.
func GeometryGenerateNormals(positions []float32, indices []uint32) []float32 {
	normals := make([]float32, len(positions))
	vertexCount := uint32(len(positions) / 3)
	at := func(i uint32) Vec3 {
		return NewVec3(positions[i*3], positions[i*3+1], positions[i*3+2])
	}
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if i0 >= vertexCount || i1 >= vertexCount || i2 >= vertexCount {
			continue
		}
		edge1 := at(i1).Sub(at(i0))
		edge2 := at(i2).Sub(at(i0))

		// NOTE: This just generates a face normal. Smoothing out should be done in a separate pass if desired.
		normal := edge1.Cross(edge2).Normalized()
		for _, idx := range [3]uint32{i0, i1, i2} {
			normals[idx*3] = normal.X
			normals[idx*3+1] = normal.Y
			normals[idx*3+2] = normal.Z
		}
	}
	return normals
}

// GeometryExtents returns the bounding box of flat position triples. The
// second return value is false when there is no complete position.
func GeometryExtents(positions []float32) (Extents3D, bool) {
	if len(positions) < 3 {
		return Extents3D{}, false
	}
	first := NewVec3(positions[0], positions[1], positions[2])
	ext := Extents3D{Min: first, Max: first}
	for i := 3; i+2 < len(positions); i += 3 {
		p := NewVec3(positions[i], positions[i+1], positions[i+2])
		ext.Min = ext.Min.Min(p)
		ext.Max = ext.Max.Max(p)
	}
	return ext, true
}
