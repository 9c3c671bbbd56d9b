package domain

import m "classdoc.dev/pkg/classdoc/internal/model"

// FinalizeAfterAugmentation repeats the name-based static propagation over the augmented
// set and backfills private access on sigil-named records that still have none.
func FinalizeAfterAugmentation(records []m.Doclet) []m.Doclet {
	out := PropagateStaticByName(records)

	for i := range out {
		if m.HasSigil(out[i].Name) && out[i].Access == "" {
			out[i].Access = m.AccessPrivate
		}
	}

	return out
}
