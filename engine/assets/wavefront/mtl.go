package wavefront

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/spaghettifunk/objview/engine/core"
	"github.com/spaghettifunk/objview/engine/math"
)

// Material is a sparse record: a nil field was not present in the source.
type Material struct {
	Name           string
	Shininess      *float32
	Ambient        []float32
	Diffuse        []float32
	Specular       []float32
	Emissive       []float32
	OpticalDensity *float32
	Opacity        *float32
	Illum          *int
}

// MaterialTable maps material names to their records. A name declared twice
// keeps the last declaration.
type MaterialTable struct {
	Materials   map[string]*Material
	Diagnostics []Diagnostic
}

// Names returns the material names in sorted order.
func (t *MaterialTable) Names() []string {
	return slices.Sorted(maps.Keys(t.Materials))
}

// Lookup returns the named material, if declared.
func (t *MaterialTable) Lookup(name string) (*Material, bool) {
	m, ok := t.Materials[name]
	return m, ok
}

func (m *Material) AmbientColour() math.Vec4  { return colour(m.Ambient) }
func (m *Material) DiffuseColour() math.Vec4  { return colour(m.Diffuse) }
func (m *Material) SpecularColour() math.Vec4 { return colour(m.Specular) }
func (m *Material) EmissiveColour() math.Vec4 { return colour(m.Emissive) }

// colour widens a 3 or 4 component colour into an RGBA value clamped to
// [0, 1]. Missing components are 0, a missing alpha is 1. NaN components
// are treated as 0.
func colour(c []float32) math.Vec4 {
	var rgba [4]float32
	rgba[3] = 1
	for i := 0; i < len(c) && i < 4; i++ {
		if !isNaN(c[i]) {
			rgba[i] = c[i]
		}
	}
	return math.Vec4{X: rgba[0], Y: rgba[1], Z: rgba[2], W: rgba[3]}.Saturate()
}

// mtlLine is one tokenized statement.
type mtlLine struct {
	keyword string
	// raw trailing text after the keyword, used by newmtl
	raw  string
	args []string
}

// mtlState is threaded through every handler: the table built so far and
// the name of the material that receives property keywords.
type mtlState struct {
	opts       options
	table      *MaterialTable
	diags      diagnostics
	line       int
	current    string
	hasCurrent bool
}

type mtlHandler func(st *mtlState, l mtlLine) error

var mtlKeywords = map[string]mtlHandler{
	"newmtl": parseNewmtl,
	"Ns":     scalarHandler(func(m *Material, v float32) { m.Shininess = &v }),
	"Ka":     colourHandler(func(m *Material, c []float32) { m.Ambient = c }),
	"Kd":     colourHandler(func(m *Material, c []float32) { m.Diffuse = c }),
	"Ks":     colourHandler(func(m *Material, c []float32) { m.Specular = c }),
	"Ke":     colourHandler(func(m *Material, c []float32) { m.Emissive = c }),
	"Ni":     scalarHandler(func(m *Material, v float32) { m.OpticalDensity = &v }),
	"d":      scalarHandler(func(m *Material, v float32) { m.Opacity = &v }),
	"illum":  parseIllum,
}

// ParseMTL parses MTL text into a material table. Unknown keywords are
// reported as diagnostics. A property keyword that appears before any
// newmtl stops the parse with a *ParseError wrapping
// core.ErrNoCurrentMaterial.
func ParseMTL(text string, opts ...Option) (*MaterialTable, error) {
	o := newOptions(opts)
	st := &mtlState{
		opts:  o,
		table: &MaterialTable{Materials: make(map[string]*Material)},
		diags: diagnostics{format: mtlType, source: o.source},
	}

	for i, raw := range strings.Split(text, "\n") {
		st.line = i + 1
		line := strings.TrimSpace(raw)
		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		l := mtlLine{
			keyword: fields[0],
			raw:     strings.TrimSpace(line[len(fields[0]):]),
			args:    fields[1:],
		}
		handler, ok := mtlKeywords[l.keyword]
		if !ok {
			st.diags.add(DiagnosticUnknownKeyword, st.line, l.keyword, "unhandled keyword: %s", l.keyword)
			continue
		}
		if err := handler(st, l); err != nil {
			core.LogError("%s %s(%d): %s", o.source, mtlType, st.line, err)
			return nil, err
		}
	}

	st.table.Diagnostics = st.diags.list
	return st.table, nil
}

// target returns the material receiving property keywords.
func (st *mtlState) target(keyword string) (*Material, error) {
	if !st.hasCurrent {
		return nil, &ParseError{
			Format:  mtlType,
			Line:    st.line,
			Keyword: keyword,
			Err:     core.ErrNoCurrentMaterial,
		}
	}
	return st.table.Materials[st.current], nil
}

func parseNewmtl(st *mtlState, l mtlLine) error {
	st.table.Materials[l.raw] = &Material{Name: l.raw}
	st.current = l.raw
	st.hasCurrent = true
	return nil
}

func scalarHandler(set func(*Material, float32)) mtlHandler {
	return func(st *mtlState, l mtlLine) error {
		m, err := st.target(l.keyword)
		if err != nil {
			return err
		}
		token := ""
		if len(l.args) > 0 {
			token = l.args[0]
		}
		v, perr := parseFloat32(token)
		if perr != nil {
			st.diags.add(DiagnosticInvalidNumber, st.line, l.keyword, "'%s' expects a number, got %q", l.keyword, token)
			if st.opts.strictNumbers {
				return nil
			}
		}
		set(m, v)
		return nil
	}
}

func colourHandler(set func(*Material, []float32)) mtlHandler {
	return func(st *mtlState, l mtlLine) error {
		m, err := st.target(l.keyword)
		if err != nil {
			return err
		}
		values, bad, ok := parseFloats(l.args)
		if !ok {
			st.diags.add(DiagnosticInvalidNumber, st.line, l.keyword, "'%s' has non-numeric component %q", l.keyword, bad)
			if st.opts.strictNumbers {
				return nil
			}
		}
		set(m, values)
		return nil
	}
}

// parseIllum stores the illumination model. An integer field cannot carry
// NaN, so a bad token leaves Illum unset in both numeric modes.
func parseIllum(st *mtlState, l mtlLine) error {
	m, err := st.target(l.keyword)
	if err != nil {
		return err
	}
	token := ""
	if len(l.args) > 0 {
		token = l.args[0]
	}
	v, perr := strconv.Atoi(token)
	if perr != nil {
		st.diags.add(DiagnosticInvalidNumber, st.line, l.keyword, "'illum' expects an integer, got %q", token)
		return nil
	}
	m.Illum = &v
	return nil
}
