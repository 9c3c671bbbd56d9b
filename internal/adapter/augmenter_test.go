package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "classdoc.dev/pkg/classdoc/internal/model"
)

func TestMixinAugmenter_Augment(t *testing.T) {
	emitter := &m.MethodDefinition{Key: m.Key{Name: "create"}, IsStatic: true}
	records := []m.Doclet{
		{Name: "Events", Longname: "Events", Kind: m.KindClass, Scope: m.ScopeGlobal},
		{Name: "create", Longname: "Events.create", Memberof: "Events", Kind: m.KindFunction, Scope: m.ScopeStatic, Meta: emitter},
		{Name: "on", Longname: "Events#on", Memberof: "Events", Kind: m.KindFunction, Scope: m.ScopeInstance},
		{Name: "Widget", Longname: "Widget", Kind: m.KindClass, Scope: m.ScopeGlobal, Mixes: []string{"Events"}},
		{Name: "on", Longname: "Widget#on", Memberof: "Widget", Kind: m.KindFunction, Scope: m.ScopeInstance},
	}

	out := NewMixinAugmenter().Augment(records)

	require.Len(t, out, 6, "only the missing member is copied")

	for i := range records {
		assert.True(t, records[i].Equal(out[i]), "existing record %d kept in place", i)
	}

	copied := out[5]
	assert.Equal(t, "create", copied.Name)
	assert.Equal(t, "Widget", copied.Memberof)
	assert.Equal(t, "Widget#create", copied.Longname)
	assert.Equal(t, "Widget#create", copied.ID)
	assert.Equal(t, m.ScopeInstance, copied.Scope)
	assert.False(t, m.IsStatic(copied.Meta))
	assert.True(t, emitter.IsStatic, "the source descriptor is not modified")
}

func TestMixinAugmenter_NoMixes(t *testing.T) {
	records := []m.Doclet{{Name: "Foo", Longname: "Foo", Kind: m.KindClass}}

	out := NewMixinAugmenter().Augment(records)

	assert.Len(t, out, 1)
}

func TestMixinAugmenter_CopyDropsEnclosingClass(t *testing.T) {
	events := &m.ClassDeclaration{Name: "Events"}
	records := []m.Doclet{
		{Name: "Events", Longname: "Events", Kind: m.KindClass, Scope: m.ScopeGlobal},
		{Name: "on", Longname: "Events#on", Memberof: "Events", Kind: m.KindFunction, Scope: m.ScopeInstance,
			Meta: &m.MethodDefinition{Key: m.Key{Name: "on"}, Class: events}},
		{Name: "size", Longname: "Events#size", Memberof: "Events", Kind: m.KindMember, Scope: m.ScopeInstance,
			Meta: &m.PropertyDefinition{Key: m.Key{Name: "size"}, Class: events}},
		{Name: "Widget", Longname: "module:ui~Widget", Kind: m.KindClass, Scope: m.ScopeGlobal, Mixes: []string{"Events"}},
	}

	out := NewMixinAugmenter().Augment(records)
	require.Len(t, out, 6)

	method, ok := out[4].Meta.(*m.MethodDefinition)
	require.True(t, ok)
	assert.Nil(t, method.Class)
	assert.Equal(t, "module:ui~Widget", out[4].Memberof)
	assert.Equal(t, "module:ui~Widget#on", out[4].Longname)

	field, ok := out[5].Meta.(*m.PropertyDefinition)
	require.True(t, ok)
	assert.Nil(t, field.Class)

	source, ok := records[1].Meta.(*m.MethodDefinition)
	require.True(t, ok)
	assert.Same(t, events, source.Class, "the source descriptor is not modified")
}

func TestMixinAugmenter_SkipsCopiesAlreadyMadeStatic(t *testing.T) {
	records := []m.Doclet{
		{Name: "Events", Longname: "Events", Kind: m.KindClass, Scope: m.ScopeGlobal},
		{Name: "create", Longname: "Events.create", Memberof: "Events", Kind: m.KindFunction, Scope: m.ScopeStatic,
			Meta: &m.MethodDefinition{Key: m.Key{Name: "create"}, IsStatic: true}},
		{Name: "Widget", Longname: "Widget", Kind: m.KindClass, Scope: m.ScopeGlobal, Mixes: []string{"Events"}},
		{Name: "create", Longname: "Widget.create", Memberof: "Widget", Kind: m.KindFunction, Scope: m.ScopeStatic,
			Meta: &m.MethodDefinition{Key: m.Key{Name: "create"}}},
	}

	out := NewMixinAugmenter().Augment(records)

	assert.Len(t, out, len(records))
}
