package adapter

import m "classdoc.dev/pkg/classdoc/internal/model"

// Augmenter is the host step that runs after parse-complete and may add inherited or mixed-in
// records. It must keep existing records in place and only append.
type Augmenter interface {
	Augment(records []m.Doclet) []m.Doclet
}

// MixinAugmenter copies the members of every mixin a class lists into the class.
// Copies are instance members of the class and lose the static flag of their descriptor,
// the same way the host's inheritance step produces them. A copy's descriptor no longer
// names an enclosing class, so normalizing the output again leaves the copy on its owner.
type MixinAugmenter struct{}

// NewMixinAugmenter creates a MixinAugmenter.
func NewMixinAugmenter() *MixinAugmenter {
	return &MixinAugmenter{}
}

// Augment returns records followed by the mixed-in copies that did not exist yet.
func (a *MixinAugmenter) Augment(records []m.Doclet) []m.Doclet {
	out := m.CloneAll(records)

	known := make(map[memberKey]struct{}, len(records))
	for _, d := range records {
		known[keyOf(d.Memberof, d.Name)] = struct{}{}
	}

	for _, class := range records {
		if class.Kind != m.KindClass || len(class.Mixes) == 0 {
			continue
		}

		owner := class.Longname
		if owner == "" {
			owner = class.Name
		}

		for _, mixin := range class.Mixes {
			for _, member := range membersOf(records, mixin) {
				key := keyOf(owner, member.Name)
				if _, dup := known[key]; dup {
					continue
				}

				known[key] = struct{}{}
				out = append(out, mixedInCopy(member, owner))
			}
		}
	}

	return out
}

// memberKey identifies a member by owner and name. Longnames are not stable for this: a copy
// starts as owner#name and becomes owner.name once static scope is restored.
type memberKey struct {
	owner string
	name  string
}

func keyOf(owner, name string) memberKey {
	return memberKey{owner: m.ToStaticSeparators(owner), name: name}
}

func membersOf(records []m.Doclet, owner string) []m.Doclet {
	var members []m.Doclet

	for _, d := range records {
		if d.Memberof == owner && d.Kind != m.KindClass && d.Name != "" {
			members = append(members, d)
		}
	}

	return members
}

func mixedInCopy(member m.Doclet, owner string) m.Doclet {
	copied := member.Clone()
	copied.Memberof = owner
	copied.Scope = m.ScopeInstance
	copied.Longname = m.JoinLongname(owner, m.ScopeInstance, member.Name)
	copied.ID = copied.Longname
	copied.Meta = detach(member.Meta)

	return copied
}

// detach drops the static flag and the enclosing class of a copied class element.
func detach(n m.Node) m.Node {
	switch v := n.(type) {
	case *m.MethodDefinition:
		c := *v
		c.IsStatic = false
		c.Class = nil

		return &c
	case *m.PropertyDefinition:
		c := *v
		c.IsStatic = false
		c.Class = nil

		return &c
	}

	return n
}
