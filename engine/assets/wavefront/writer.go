package wavefront

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// WriteOBJ serializes m as OBJ text. Faces are written as triangles with
// 1-based position references; material libraries and usemtl ranges are
// written back where they start.
func WriteOBJ(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)

	if len(m.MaterialLibs) > 0 {
		writeRecord(bw, "mtllib", m.MaterialLibs...)
	}
	writeFloats(bw, "v", m.Positions, 3)
	writeFloats(bw, "vt", m.TexCoords, 2)
	writeFloats(bw, "vn", m.Normals, 3)

	next := 0
	for i := 0; i+2 < len(m.Indices); i += 3 {
		for next < len(m.MaterialRanges) && m.MaterialRanges[next].Start <= i {
			writeRecord(bw, "usemtl", m.MaterialRanges[next].Name)
			next++
		}
		writeRecord(bw, "f",
			formatIndex(m.Indices[i]),
			formatIndex(m.Indices[i+1]),
			formatIndex(m.Indices[i+2]),
		)
	}
	// ranges opened after the last face
	for ; next < len(m.MaterialRanges); next++ {
		writeRecord(bw, "usemtl", m.MaterialRanges[next].Name)
	}
	return bw.Flush()
}

func writeFloats(bw *bufio.Writer, keyword string, values []float32, stride int) {
	fields := make([]string, stride)
	for i := 0; i+stride <= len(values); i += stride {
		for j := 0; j < stride; j++ {
			fields[j] = strconv.FormatFloat(float64(values[i+j]), 'g', -1, 32)
		}
		writeRecord(bw, keyword, fields...)
	}
}

func writeRecord(bw *bufio.Writer, keyword string, fields ...string) {
	bw.WriteString(keyword)
	if len(fields) > 0 {
		bw.WriteByte(' ')
		bw.WriteString(strings.Join(fields, " "))
	}
	bw.WriteByte('\n')
}

func formatIndex(idx uint32) string {
	return strconv.FormatUint(uint64(idx)+1, 10)
}
