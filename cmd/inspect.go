package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/spaghettifunk/objview/engine/assets/loaders"
	"github.com/spaghettifunk/objview/engine/assets/wavefront"
	"github.com/spaghettifunk/objview/engine/core"
)

// Inspect loads an OBJ file (and optionally its MTL library) and prints a
// summary of the parsed geometry and materials.
func Inspect(ctx *cli.Context) error {
	cfg, err := setupConfig(ctx)
	if err != nil {
		return err
	}
	if ctx.NArg() != 1 {
		return errors.New("missing obj file or URL")
	}

	source := loaders.NewSource(cfg)
	ml := loaders.NewModelLoader(source, cfg)

	var model *loaders.Model
	objPath, mtlPath := ctx.Args().First(), ctx.String("mtl")
	if mtlPath == "" {
		model, err = ml.LoadOBJ(context.Background(), objPath)
	} else {
		model, err = ml.LoadOBJWithMTL(context.Background(), objPath, mtlPath)
	}
	if err != nil {
		return err
	}

	if ctx.Bool("normals") && model.Mesh.GenerateNormals() {
		core.LogInfo("generated flat normals for %d vertices", model.Mesh.VertexCount())
	}

	out := ctx.App.Writer
	if ctx.Bool("dump") {
		return wavefront.WriteOBJ(out, model.Mesh)
	}

	fmt.Fprintf(out, "model %s (%s)\n%s", model.Name, model.ID, meshStats(model.Mesh))
	if model.Materials != nil {
		fmt.Fprint(out, materialStats(model.Materials))
	}
	if diags := collectDiagnostics(model); len(diags) != 0 {
		fmt.Fprint(out, diagnosticStats(diags))
	}
	if err := model.Mesh.Validate(); err != nil {
		fmt.Fprintf(out, "warning: %v\n", err)
	}
	return nil
}

func meshStats(m *wavefront.Mesh) string {
	var buf bytes.Buffer
	table := newTable(&buf, "Attribute", "Count")
	table.Append([]string{"positions", fmt.Sprint(m.VertexCount())})
	table.Append([]string{"normals", fmt.Sprint(len(m.Normals) / 3)})
	table.Append([]string{"texcoords", fmt.Sprint(len(m.TexCoords) / 2)})
	table.Append([]string{"triangles", fmt.Sprint(m.TriangleCount())})
	table.Append([]string{"material ranges", fmt.Sprint(len(m.MaterialRanges))})
	if ext, ok := m.Extents(); ok {
		table.Append([]string{"extents min", fmt.Sprintf("%v", ext.Min)})
		table.Append([]string{"extents max", fmt.Sprintf("%v", ext.Max)})
	}
	table.Render()
	return buf.String()
}

func materialStats(t *wavefront.MaterialTable) string {
	var buf bytes.Buffer
	table := newTable(&buf, "Material", "Diffuse", "Specular", "Shininess", "Opacity", "Illum")
	for _, name := range t.Names() {
		m := t.Materials[name]
		table.Append([]string{
			name,
			formatColour(m.Diffuse),
			formatColour(m.Specular),
			formatScalar(m.Shininess),
			formatScalar(m.Opacity),
			formatInt(m.Illum),
		})
	}
	table.Render()
	return buf.String()
}

func diagnosticStats(diags []wavefront.Diagnostic) string {
	var buf bytes.Buffer
	table := newTable(&buf, "Line", "Kind", "Message")
	for _, d := range diags {
		table.Append([]string{fmt.Sprint(d.Line), d.Kind.String(), d.Message})
	}
	table.Render()
	return buf.String()
}

func collectDiagnostics(model *loaders.Model) []wavefront.Diagnostic {
	diags := append([]wavefront.Diagnostic{}, model.Mesh.Diagnostics...)
	if model.Materials != nil {
		diags = append(diags, model.Materials.Diagnostics...)
	}
	return diags
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(header)
	return table
}

func formatColour(c []float32) string {
	if c == nil {
		return "-"
	}
	return fmt.Sprint(c)
}

func formatScalar(v *float32) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}

func formatInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}
