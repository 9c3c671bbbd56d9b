package rules

import m "classdoc.dev/pkg/classdoc/internal/model"

// RecoverPrivateMethod restores the name of a method whose key is a private name.
// The extractor drops the identifier of #method() keys.
func RecoverPrivateMethod(d m.Doclet) m.Doclet {
	method, ok := d.Meta.(*m.MethodDefinition)
	if !ok || !method.Key.Private || method.Key.Name == "" {
		return d
	}

	d.Name = method.Key.PrivateName()

	return d
}

// RecoverPrivateAssignment renames the doclet of this.#field = value, which the extractor
// emits under MalformedPrivateName.
func RecoverPrivateAssignment(d m.Doclet) m.Doclet {
	if d.Name != m.MalformedPrivateName {
		return d
	}

	assign, ok := d.Meta.(*m.Assignment)
	if !ok || !assign.Left.Property.Private || assign.Left.Property.Name == "" {
		return d
	}

	d.Name = assign.Left.Property.PrivateName()

	return d
}
