package rules

import m "classdoc.dev/pkg/classdoc/internal/model"

// MarkStaticProperty forces static scope on a static class field and switches the
// owner path to static separators.
func MarkStaticProperty(d m.Doclet) m.Doclet {
	prop, ok := d.Meta.(*m.PropertyDefinition)
	if !ok || !prop.IsStatic {
		return d
	}

	d.Scope = m.ScopeStatic
	d.Memberof = m.ToStaticSeparators(d.Memberof)

	return d
}
