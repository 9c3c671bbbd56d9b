// Package model defines the doclet records and node descriptors the normalization pipeline works on.
package model

// Kind is the documented entity category of a doclet.
type Kind string

const (
	// KindClass marks a class declaration.
	KindClass Kind = "class"
	// KindFunction marks a function, method or bound arrow field.
	KindFunction Kind = "function"
	// KindMember marks a plain value member (field, property, variable).
	KindMember Kind = "member"
)

// Scope describes how a doclet hangs off its owner.
type Scope string

const (
	// ScopeInstance is a member reachable from instances (owner#name).
	ScopeInstance Scope = "instance"
	// ScopeStatic is a member reachable from the owner itself (owner.name).
	ScopeStatic Scope = "static"
	// ScopeInner is a member local to its owner (owner~name).
	ScopeInner Scope = "inner"
	// ScopeGlobal is a top-level entity.
	ScopeGlobal Scope = "global"
)

// Access is the declared visibility of a doclet. The zero value means unset.
type Access string

const (
	// AccessPublic marks a public member.
	AccessPublic Access = "public"
	// AccessPrivate marks a private member.
	AccessPrivate Access = "private"
)

// Doclet is one extracted metadata record describing a documented symbol.
type Doclet struct {
	ID           string
	Name         string
	Longname     string
	Memberof     string
	Kind         Kind
	Scope        Scope
	Access       Access
	Undocumented bool
	Comment      string
	Mixes        []string

	// Meta describes the syntax node the doclet was extracted from. It may be nil.
	Meta Node
}

// IsPlaceholder reports whether the doclet is a structural record never meant to render.
func (d Doclet) IsPlaceholder() bool {
	return d.Undocumented
}

// Clone returns a copy that shares the immutable descriptor but owns its slices.
func (d Doclet) Clone() Doclet {
	if d.Mixes != nil {
		d.Mixes = append([]string(nil), d.Mixes...)
	}

	return d
}

// Equal reports whether two doclets carry the same field values.
// Descriptors are compared by identity.
func (d Doclet) Equal(other Doclet) bool {
	if d.ID != other.ID || d.Name != other.Name || d.Longname != other.Longname ||
		d.Memberof != other.Memberof || d.Kind != other.Kind || d.Scope != other.Scope ||
		d.Access != other.Access || d.Undocumented != other.Undocumented ||
		d.Comment != other.Comment || d.Meta != other.Meta {
		return false
	}

	if len(d.Mixes) != len(other.Mixes) {
		return false
	}

	for i := range d.Mixes {
		if d.Mixes[i] != other.Mixes[i] {
			return false
		}
	}

	return true
}

// SetLongname replaces the longname. The ID follows along when it was tracking the old longname.
func (d *Doclet) SetLongname(longname string) {
	if d.ID == d.Longname {
		d.ID = longname
	}

	d.Longname = longname
}

// CloneAll copies a record set, preserving discovery order.
func CloneAll(records []Doclet) []Doclet {
	out := make([]Doclet, len(records))
	for i, d := range records {
		out[i] = d.Clone()
	}

	return out
}
