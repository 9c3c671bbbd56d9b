package domain

import m "classdoc.dev/pkg/classdoc/internal/model"

// NormalizeStaticScope stamps static scope on records declared static and then on every
// record sharing a name with a static declaration.
func NormalizeStaticScope(records []m.Doclet) []m.Doclet {
	out := m.CloneAll(records)
	for i := range out {
		if m.IsStatic(out[i].Meta) && ownedByEntity(out[i].Memberof) {
			out[i] = makeStatic(out[i])
		}
	}

	return PropagateStaticByName(out)
}

// PropagateStaticByName re-stamps static scope on copies that lost their static flag.
// Name is the only identity that survives augmentation, so distinct declarations that share
// a name within one run are treated as the same declaration.
func PropagateStaticByName(records []m.Doclet) []m.Doclet {
	names := staticNames(records)

	out := m.CloneAll(records)
	for i := range out {
		if _, ok := names[out[i].Name]; !ok || !ownedByEntity(out[i].Memberof) {
			continue
		}

		out[i] = makeStatic(out[i])
	}

	return out
}

func staticNames(records []m.Doclet) map[string]struct{} {
	names := make(map[string]struct{})

	for _, d := range records {
		if m.IsStatic(d.Meta) && d.Name != "" {
			names[d.Name] = struct{}{}
		}
	}

	return names
}

// ownedByEntity reports whether memberof names a class or other entity rather than a
// module namespace or nothing at all.
func ownedByEntity(memberof string) bool {
	return memberof != "" && !m.IsModuleNamespace(memberof)
}

func makeStatic(d m.Doclet) m.Doclet {
	wasInner := d.Scope == m.ScopeInner

	d.Scope = m.ScopeStatic
	d.Memberof = m.ToStaticSeparators(d.Memberof)
	d.SetLongname(m.ToStaticSeparators(d.Longname))

	// Inner members are joined with ~, which ToStaticSeparators leaves alone.
	if wasInner && d.Name != "" {
		d.SetLongname(m.JoinLongname(d.Memberof, m.ScopeStatic, d.Name))
	}

	return d
}
