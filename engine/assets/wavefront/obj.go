package wavefront

import (
	"strconv"
	"strings"
)

// Mesh holds the flat attribute arrays produced from an OBJ file. Attribute
// arrays keep the order of the source records; nothing is deduplicated.
type Mesh struct {
	// Positions holds x, y, z triples from `v` records.
	Positions []float32
	// Normals holds x, y, z triples from `vn` records.
	Normals []float32
	// TexCoords holds u, v pairs from `vt` records.
	TexCoords []float32
	// Indices holds zero based position indices, three per triangle.
	Indices []uint32

	// MaterialLibs lists the files named by `mtllib` records.
	MaterialLibs []string
	// MaterialRanges maps spans of Indices to the material selected by `usemtl`.
	MaterialRanges []MaterialRange

	Diagnostics []Diagnostic
}

// MaterialRange is a run of Indices drawn with the named material.
type MaterialRange struct {
	Name  string
	Start int
	Count int
}

type objParser struct {
	opts  options
	mesh  *Mesh
	diags diagnostics
	line  int
	// index into mesh.MaterialRanges of the open usemtl range, -1 if none
	openRange int
}

// ParseOBJ parses OBJ text. It never fails: records it cannot use are
// skipped and reported in Mesh.Diagnostics.
func ParseOBJ(text string, opts ...Option) *Mesh {
	o := newOptions(opts)
	p := &objParser{
		opts: o,
		mesh: &Mesh{
			Positions: make([]float32, 0),
			Normals:   make([]float32, 0),
			TexCoords: make([]float32, 0),
			Indices:   make([]uint32, 0),
		},
		diags:     diagnostics{format: objType, source: o.source},
		openRange: -1,
	}
	for i, line := range strings.Split(text, "\n") {
		p.line = i + 1
		p.parseLine(strings.Fields(line))
	}
	p.closeRange()
	p.mesh.Diagnostics = p.diags.list
	return p.mesh
}

func (p *objParser) parseLine(fields []string) {
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case "v":
		if len(fields) >= 4 {
			p.mesh.Positions = p.appendFloats(p.mesh.Positions, fields[0], fields[1:4])
		}
	case "vn":
		if len(fields) >= 4 {
			p.mesh.Normals = p.appendFloats(p.mesh.Normals, fields[0], fields[1:4])
		}
	case "vt":
		if len(fields) >= 3 {
			p.mesh.TexCoords = p.appendFloats(p.mesh.TexCoords, fields[0], fields[1:3])
		}
	case "f":
		p.parseFace(fields[1:])
	case "mtllib":
		p.mesh.MaterialLibs = append(p.mesh.MaterialLibs, fields[1:]...)
	case "usemtl":
		p.parseUsemtl(fields[1:])
	}
}

func (p *objParser) appendFloats(dst []float32, keyword string, fields []string) []float32 {
	values, bad, ok := parseFloats(fields)
	if !ok {
		p.diags.add(DiagnosticInvalidNumber, p.line, keyword, "'%s' has non-numeric component %q", keyword, bad)
		if p.opts.strictNumbers {
			return dst
		}
	}
	return append(dst, values...)
}

func (p *objParser) parseFace(refs []string) {
	if len(refs) != 3 && len(refs) != 4 {
		p.diags.add(DiagnosticUnsupportedFace, p.line, "f", "face with unsupported number of vertices: %d", len(refs))
		return
	}

	var face [4]uint32
	for i, ref := range refs {
		// only the position field of v/vt/vn is used for indexing
		vertex, _, _ := strings.Cut(ref, "/")
		n, err := strconv.ParseInt(vertex, 10, 64)
		if err != nil {
			p.diags.add(DiagnosticInvalidNumber, p.line, "f", "face reference %q has no vertex index", ref)
			return
		}
		face[i] = uint32(n - 1)
	}

	if len(refs) == 3 {
		p.mesh.Indices = append(p.mesh.Indices, face[0], face[1], face[2])
		return
	}
	// quad: fan split around the first vertex
	p.mesh.Indices = append(p.mesh.Indices,
		face[0], face[1], face[2],
		face[0], face[2], face[3],
	)
}

func (p *objParser) parseUsemtl(fields []string) {
	p.closeRange()
	p.mesh.MaterialRanges = append(p.mesh.MaterialRanges, MaterialRange{
		Name:  strings.Join(fields, " "),
		Start: len(p.mesh.Indices),
	})
	p.openRange = len(p.mesh.MaterialRanges) - 1
}

func (p *objParser) closeRange() {
	if p.openRange < 0 {
		return
	}
	r := &p.mesh.MaterialRanges[p.openRange]
	r.Count = len(p.mesh.Indices) - r.Start
	p.openRange = -1
}
