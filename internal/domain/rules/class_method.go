package rules

import m "classdoc.dev/pkg/classdoc/internal/model"

// RelinkClassMethod attaches a method written directly in a class body to the class's
// declared name. The extractor otherwise files methods of default-exported classes under
// the export wrapper. An owner that already names the class, such as module:ui~Widget for
// Widget, is kept so every member of the class shares one owner.
func RelinkClassMethod(d m.Doclet) m.Doclet {
	if d.Kind == m.KindClass {
		return d
	}

	method, ok := d.Meta.(*m.MethodDefinition)
	if !ok || method.Class == nil || !m.IsRealName(method.Class.Name) {
		return d
	}

	if !m.OwnerNames(d.Memberof, method.Class.Name) {
		d.Memberof = method.Class.Name
	}

	d.Scope = m.ScopeInstance
	if method.IsStatic {
		d.Scope = m.ScopeStatic
	}

	if d.Name != "" {
		d.SetLongname(m.JoinLongname(d.Memberof, d.Scope, d.Name))
	}

	return d
}
