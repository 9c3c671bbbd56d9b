// Package rules holds the per-symbol corrections applied to a doclet as soon as it is discovered.
//
// Every rule is guarded by shape checks on the doclet and its descriptor. A rule whose
// preconditions do not hold returns the doclet unchanged.
package rules

import m "classdoc.dev/pkg/classdoc/internal/model"

// Rule is a single discovery-time correction.
type Rule struct {
	Name  string
	Apply func(m.Doclet) m.Doclet
}

// Ordered lists the discovery rules in application order. Name recovery runs first so
// relinking rebuilds longnames from corrected names.
var Ordered = []Rule{
	{Name: "private-method", Apply: RecoverPrivateMethod},
	{Name: "private-assignment", Apply: RecoverPrivateAssignment},
	{Name: "static-property", Apply: MarkStaticProperty},
	{Name: "class-method", Apply: RelinkClassMethod},
	{Name: "default-export", Apply: RenameDefaultExport},
}

// Classify applies every rule in Ordered to d and returns the corrected copy.
func Classify(d m.Doclet) m.Doclet {
	out := d.Clone()
	for _, rule := range Ordered {
		out = rule.Apply(out)
	}

	return out
}
