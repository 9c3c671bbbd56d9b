package model

import "strings"

const (
	// PrivateSigil prefixes private class member names.
	PrivateSigil = "#"

	// InstanceSeparator joins an owner to an instance member.
	InstanceSeparator = "#"
	// StaticSeparator joins an owner to a static member.
	StaticSeparator = "."
	// InnerSeparator joins an owner to an inner member.
	InnerSeparator = "~"

	// ModuleExports is the module export slot the extractor names default exports after.
	ModuleExports = "module.exports"
	// ModulePrefix starts the longname of a module namespace.
	ModulePrefix = "module:"

	// MalformedPrivateName is what the extractor yields for this.#name on the left of an assignment.
	MalformedPrivateName = "undefined"

	// AnonymousFunction names an anonymous default-exported function.
	AnonymousFunction = "<anonymous>"
	// PendingDefault names a default-exported object literal until it is resolved.
	PendingDefault = "<pending default>"
	// DefaultExportName is the last-resort name of a default-exported object literal.
	DefaultExportName = "default"
	// ExportsSuffix is appended to the first property key to name a default-exported object literal.
	ExportsSuffix = "Exports"
)

// WithSigil returns name carrying the private sigil exactly once.
func WithSigil(name string) string {
	return PrivateSigil + StripSigil(name)
}

// StripSigil removes every leading private sigil from name.
func StripSigil(name string) string {
	return strings.TrimLeft(name, PrivateSigil)
}

// HasSigil reports whether name starts with the private sigil.
func HasSigil(name string) bool {
	return strings.HasPrefix(name, PrivateSigil)
}

// SeparatorFor returns the separator joining an owner to a member of the given scope.
func SeparatorFor(scope Scope) string {
	switch scope {
	case ScopeStatic:
		return StaticSeparator
	case ScopeInner:
		return InnerSeparator
	default:
		return InstanceSeparator
	}
}

// JoinLongname builds owner+separator+name, or name alone for top-level entities.
func JoinLongname(owner string, scope Scope, name string) string {
	if owner == "" {
		return name
	}

	return owner + SeparatorFor(scope) + name
}

// IsModuleNamespace reports whether memberof names a module itself rather than
// an entity declared inside one.
func IsModuleNamespace(memberof string) bool {
	if memberof == ModuleExports {
		return true
	}

	rest, ok := strings.CutPrefix(memberof, ModulePrefix)
	if !ok {
		return false
	}

	return !strings.ContainsAny(rest, InstanceSeparator+StaticSeparator+InnerSeparator)
}

// IsSentinel reports whether name is one of the placeholder names produced for default exports.
func IsSentinel(name string) bool {
	switch name {
	case ModuleExports, AnonymousFunction, PendingDefault, DefaultExportName:
		return true
	}

	return false
}

// IsRealName reports whether name identifies an actual declaration.
func IsRealName(name string) bool {
	if name == "" || IsSentinel(name) || name == MalformedPrivateName {
		return false
	}

	return !strings.HasPrefix(name, ModuleExports)
}

// ToStaticSeparators rewrites instance separators in a name path to static separators.
// A '#' that directly follows another separator (or starts the path) is a private sigil and is kept.
func ToStaticSeparators(path string) string {
	if !strings.Contains(path, InstanceSeparator) {
		return path
	}

	var b strings.Builder

	b.Grow(len(path))

	for i := 0; i < len(path); i++ {
		c := path[i]
		if c == '#' && i > 0 && !isSeparator(path[i-1]) {
			b.WriteString(StaticSeparator)
			continue
		}

		b.WriteByte(c)
	}

	return b.String()
}

// OwnerNames reports whether memberof refers to the entity called name, either directly or
// as the last segment of a qualified path. Module namespaces never qualify.
func OwnerNames(memberof, name string) bool {
	if memberof == "" || name == "" || IsModuleNamespace(memberof) {
		return false
	}

	if memberof == name {
		return true
	}

	prefix, ok := strings.CutSuffix(memberof, name)

	return ok && prefix != "" && isSeparator(prefix[len(prefix)-1])
}

func isSeparator(c byte) bool {
	return c == '#' || c == '.' || c == '~' || c == ':'
}
