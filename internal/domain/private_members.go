package domain

import m "classdoc.dev/pkg/classdoc/internal/model"

// maxParentDepth bounds walks up descriptor parent chains.
const maxParentDepth = 64

// FinalizePrivateMembers promotes the visible shadows of private field placeholders,
// reclassifies arrow-function fields as functions and enforces the private member contract.
// The placeholder name set is derived from the input snapshot before any record is rewritten.
func FinalizePrivateMembers(records []m.Doclet) []m.Doclet {
	fields := privateFieldNames(records)

	out := m.CloneAll(records)
	for i := range out {
		out[i] = promoteShadow(out[i], fields)
		out[i] = bindArrowField(out[i])
		out[i] = applyPrivateContract(out[i])
	}

	return out
}

// privateFieldNames collects the sigil-free names of undocumented private field placeholders.
func privateFieldNames(records []m.Doclet) map[string]struct{} {
	names := make(map[string]struct{})

	for _, d := range records {
		if !d.IsPlaceholder() {
			continue
		}

		prop, ok := d.Meta.(*m.PropertyDefinition)
		if !ok || !prop.Key.Private {
			continue
		}

		name := prop.Key.Name
		if name == "" {
			name = d.Name
		}

		if name = m.StripSigil(name); name != "" {
			names[name] = struct{}{}
		}
	}

	return names
}

// promoteShadow turns the visible inner-scoped record that carries a placeholder's value
// into the private instance member. Placeholders themselves are never promoted.
func promoteShadow(d m.Doclet, fields map[string]struct{}) m.Doclet {
	if d.IsPlaceholder() || d.Kind != m.KindMember || d.Scope != m.ScopeInner {
		return d
	}

	if _, ok := fields[m.StripSigil(d.Name)]; !ok {
		return d
	}

	d.Name = m.WithSigil(d.Name)
	d.Scope = m.ScopeInstance
	d.Access = m.AccessPrivate

	if d.Memberof != "" {
		d.SetLongname(m.JoinLongname(d.Memberof, m.ScopeInstance, d.Name))
	}

	return d
}

// bindArrowField documents arrow functions held by class fields as bound methods.
func bindArrowField(d m.Doclet) m.Doclet {
	if d.Kind != m.KindMember || !isFieldArrow(d.Meta) {
		return d
	}

	d.Kind = m.KindFunction

	return d
}

func isFieldArrow(n m.Node) bool {
	switch v := n.(type) {
	case *m.PropertyDefinition:
		_, ok := v.Value.(*m.ArrowFunction)
		return ok
	case *m.ArrowFunction:
		return insideField(v)
	}

	return false
}

// insideField reports whether an arrow function is a field initializer or nested in one.
func insideField(arrow *m.ArrowFunction) bool {
	parent := arrow.Parent

	for depth := 0; parent != nil && depth < maxParentDepth; depth++ {
		switch v := parent.(type) {
		case *m.PropertyDefinition:
			return true
		case *m.ArrowFunction:
			parent = v.Parent
		default:
			return false
		}
	}

	return false
}

// applyPrivateContract gives private methods and fields a single-sigil name, an owner-based
// longname and private access.
func applyPrivateContract(d m.Doclet) m.Doclet {
	key, ok := privateKey(d.Meta)
	if !ok {
		return d
	}

	name := d.Name
	if name == "" || name == m.MalformedPrivateName {
		name = key.Name
	}

	if name == "" {
		return d
	}

	d.Name = m.WithSigil(name)
	d.Access = m.AccessPrivate

	if _, assigned := d.Meta.(*m.Assignment); assigned && d.Scope != m.ScopeStatic {
		d.Scope = m.ScopeInstance
	}

	if d.Memberof == "" {
		return d
	}

	scope := m.ScopeInstance
	if d.Scope == m.ScopeStatic {
		scope = m.ScopeStatic
	}

	if want := m.JoinLongname(d.Memberof, scope, d.Name); d.Longname != want {
		d.SetLongname(want)
	}

	return d
}

// privateKey recognises private methods, private fields and this.#name assignments.
func privateKey(n m.Node) (m.Key, bool) {
	if key, ok := m.PrivateKey(n); ok {
		return key, true
	}

	if assign, ok := n.(*m.Assignment); ok && assign.Left.Property.Private {
		return assign.Left.Property, true
	}

	return m.Key{}, false
}
