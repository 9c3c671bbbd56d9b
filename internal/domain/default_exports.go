package domain

import (
	"regexp"
	"strings"

	m "classdoc.dev/pkg/classdoc/internal/model"
)

// typeTagPattern matches a @type {Name} tag in documentation text.
var typeTagPattern = regexp.MustCompile(`@type\s*\{\s*([^{}\s]+)\s*\}`)

// ResolveDefaultExports rehomes records still filed under a default-export wrapper onto the
// real declarations they describe. It must run after every other rename so the targets it
// searches for carry their final names.
//
// When a module declares several candidates the first one in discovery order wins.
func ResolveDefaultExports(records []m.Doclet) []m.Doclet {
	function, hasFunction := firstTopLevelFunction(records)
	class, hasClass := firstNamed(records, m.KindClass)

	out := m.CloneAll(records)
	for i := range out {
		switch {
		case isWrapperFunction(out[i]):
			if hasFunction && function.index != i {
				out[i] = rehomeWrapper(out[i], function.doclet)
			}
		case isDefaultObject(out[i]):
			out[i] = nameDefaultObject(out[i])
		case isMisattributedMethod(out[i]):
			if hasClass {
				out[i] = relinkToClass(out[i], class.doclet)
			}
		}
	}

	return out
}

type indexed struct {
	index  int
	doclet m.Doclet
}

func firstTopLevelFunction(records []m.Doclet) (indexed, bool) {
	for i, d := range records {
		if d.Kind != m.KindFunction || !m.IsRealName(d.Name) || isWrapperFunction(d) {
			continue
		}

		if d.Memberof == "" || m.IsModuleNamespace(d.Memberof) {
			return indexed{index: i, doclet: d}, true
		}
	}

	return indexed{}, false
}

func firstNamed(records []m.Doclet, kind m.Kind) (indexed, bool) {
	for i, d := range records {
		if d.Kind == kind && m.IsRealName(d.Name) {
			return indexed{index: i, doclet: d}, true
		}
	}

	return indexed{}, false
}

func isWrapperFunction(d m.Doclet) bool {
	return d.Kind == m.KindFunction && (d.Name == m.ModuleExports || d.Longname == m.ModuleExports)
}

func rehomeWrapper(d, target m.Doclet) m.Doclet {
	longname := target.Longname
	if longname == "" {
		longname = target.Name
	}

	d.Name = target.Name
	d.Memberof = ""
	d.SetLongname(longname)

	return d
}

func isDefaultObject(d m.Doclet) bool {
	if d.Kind != m.KindMember {
		return false
	}

	decl, ok := m.DefaultExportDeclaration(d.Meta)
	if !ok {
		return false
	}

	_, ok = decl.(*m.ObjectExpression)

	return ok
}

// nameDefaultObject names a default-exported object literal from its @type tag, then from
// its first property key, then falls back to DefaultExportName.
func nameDefaultObject(d m.Doclet) m.Doclet {
	decl, _ := m.DefaultExportDeclaration(d.Meta)
	object, _ := decl.(*m.ObjectExpression)

	name := declaredType(d.Comment)
	if name == "" && object != nil && len(object.Keys) > 0 && object.Keys[0] != "" {
		name = object.Keys[0] + m.ExportsSuffix
	}

	if name == "" {
		name = m.DefaultExportName
	}

	d.Name = name
	d.Memberof = ""
	d.Scope = m.ScopeGlobal
	d.SetLongname(name)

	return d
}

func declaredType(comment string) string {
	match := typeTagPattern.FindStringSubmatch(comment)
	if len(match) < 2 {
		return ""
	}

	return strings.TrimSpace(match[1])
}

func isMisattributedMethod(d m.Doclet) bool {
	if d.Kind != m.KindFunction || d.Scope != m.ScopeGlobal {
		return false
	}

	_, ok := d.Meta.(*m.MethodDefinition)

	return ok
}

func relinkToClass(d, class m.Doclet) m.Doclet {
	owner := class.Longname
	if owner == "" {
		owner = class.Name
	}

	d.Scope = m.ScopeInstance
	d.Memberof = owner
	d.Longname = m.JoinLongname(owner, m.ScopeInstance, d.Name)
	d.ID = d.Longname

	return d
}
