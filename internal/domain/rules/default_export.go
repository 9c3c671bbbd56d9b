package rules

import (
	"strings"

	m "classdoc.dev/pkg/classdoc/internal/model"
)

// RenameDefaultExport replaces the export-slot name of a default-exported declaration with
// the declared identifier, or with a sentinel when the declaration is anonymous.
func RenameDefaultExport(d m.Doclet) m.Doclet {
	if d.Name != m.ModuleExports {
		return d
	}

	decl, ok := m.DefaultExportDeclaration(d.Meta)
	if !ok {
		return d
	}

	name := defaultExportName(decl)
	if name == "" {
		return d
	}

	d.Name = name
	d.SetLongname(replaceExportSlot(d.Longname, name))

	return d
}

func defaultExportName(decl m.Node) string {
	switch v := decl.(type) {
	case *m.ClassDeclaration:
		return v.Name
	case *m.FunctionDeclaration:
		if v.Name != "" {
			return v.Name
		}

		return m.AnonymousFunction
	case *m.ObjectExpression:
		return m.PendingDefault
	}

	return ""
}

func replaceExportSlot(longname, name string) string {
	if longname == "" || longname == m.ModuleExports {
		return name
	}

	if prefix, ok := strings.CutSuffix(longname, m.ModuleExports); ok {
		return prefix + name
	}

	return longname
}
