package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classdoc.dev/pkg/classdoc/internal/adapter"
	"classdoc.dev/pkg/classdoc/internal/domain"
	m "classdoc.dev/pkg/classdoc/internal/model"
)

func byLongname(t *testing.T, records []m.Doclet, longname string) m.Doclet {
	t.Helper()

	for _, d := range records {
		if d.Longname == longname {
			return d
		}
	}

	require.Failf(t, "doclet not found", "no doclet with longname %q in %+v", longname, records)

	return m.Doclet{}
}

func TestPipeline_PrivateMethods(t *testing.T) {
	foo := &m.ClassDeclaration{Name: "Foo"}
	records := []m.Doclet{
		{Name: "Foo", Longname: "Foo", Kind: m.KindClass, Scope: m.ScopeGlobal, Meta: foo},
		{Name: "", Longname: "Foo#", Memberof: "Foo", Kind: m.KindFunction, Scope: m.ScopeInstance,
			Meta: &m.MethodDefinition{Key: m.Key{Name: "check", Private: true}, Class: foo}},
		{Name: "", Longname: "Foo#", Memberof: "Foo", Kind: m.KindFunction, Scope: m.ScopeInstance,
			Meta: &m.MethodDefinition{Key: m.Key{Name: "make", Private: true}, IsStatic: true, Class: foo}},
	}

	out, _ := domain.DefaultPipeline().Run(records)
	require.Len(t, out, len(records))

	check := out[1]
	assert.Equal(t, "#check", check.Name)
	assert.Equal(t, "Foo##check", check.Longname)
	assert.Equal(t, m.AccessPrivate, check.Access)
	assert.Equal(t, m.ScopeInstance, check.Scope)

	factory := out[2]
	assert.Equal(t, "#make", factory.Name)
	assert.Equal(t, "Foo.#make", factory.Longname)
	assert.Equal(t, m.ScopeStatic, factory.Scope)
	assert.Equal(t, m.AccessPrivate, factory.Access)
}

func TestPipeline_StaticProperties(t *testing.T) {
	widget := &m.ClassDeclaration{Name: "Widget"}
	records := []m.Doclet{
		{Name: "count", Longname: "module:ui~Widget#count", Memberof: "module:ui~Widget", Kind: m.KindMember, Scope: m.ScopeInstance,
			Meta: &m.PropertyDefinition{Key: m.Key{Name: "count"}, IsStatic: true, Class: widget}},
		{Name: "label", Longname: "module:ui~Widget#label", Memberof: "module:ui~Widget", Kind: m.KindMember, Scope: m.ScopeInstance,
			Meta: &m.PropertyDefinition{Key: m.Key{Name: "label"}, Class: widget}},
	}

	out, _ := domain.DefaultPipeline().Run(records)

	assert.Equal(t, m.ScopeStatic, out[0].Scope)
	assert.Equal(t, "module:ui~Widget.count", out[0].Longname)
	assert.Equal(t, "module:ui~Widget", out[0].Memberof)
	assert.NotContains(t, out[0].Longname, "#")

	assert.Equal(t, m.ScopeInstance, out[1].Scope)
	assert.Equal(t, "module:ui~Widget#label", out[1].Longname)
}

func TestPipeline_StaticSurvivesAugmentation(t *testing.T) {
	base := &m.ClassDeclaration{Name: "Registry"}
	records := []m.Doclet{
		{Name: "Registry", Longname: "Registry", Kind: m.KindClass, Scope: m.ScopeGlobal, Meta: base},
		{Name: "entries", Longname: "Registry#entries", Memberof: "Registry", Kind: m.KindMember, Scope: m.ScopeInstance,
			Meta: &m.PropertyDefinition{Key: m.Key{Name: "entries"}, IsStatic: true, Class: base}},
		{Name: "Store", Longname: "Store", Kind: m.KindClass, Scope: m.ScopeGlobal, Mixes: []string{"Registry"}},
	}

	mixin := func(in []m.Doclet) []m.Doclet {
		return append(in, m.Doclet{
			Name: "entries", Longname: "Store#entries", Memberof: "Store", Kind: m.KindMember, Scope: m.ScopeInstance,
			Meta: &m.PropertyDefinition{Key: m.Key{Name: "entries"}},
		})
	}

	out, report := domain.DefaultPipeline().Run(records, domain.WithAugmenter(mixin))
	require.Len(t, out, 4)
	assert.Equal(t, 4, report.Records)

	original := byLongname(t, out, "Registry.entries")
	copied := byLongname(t, out, "Store.entries")

	assert.Equal(t, m.ScopeStatic, original.Scope)
	assert.Equal(t, m.ScopeStatic, copied.Scope)
}

func TestPipeline_DefaultExportedClass(t *testing.T) {
	foo := &m.ClassDeclaration{Name: "Foo", DefaultExport: true}
	records := []m.Doclet{
		{Name: m.ModuleExports, Longname: m.ModuleExports, Kind: m.KindClass, Scope: m.ScopeGlobal,
			Meta: &m.ExportDefault{Declaration: foo}},
		{Name: "render", Longname: "module.exports#render", Memberof: m.ModuleExports, Kind: m.KindFunction, Scope: m.ScopeStatic,
			Meta: &m.MethodDefinition{Key: m.Key{Name: "render"}, Class: foo}},
	}

	out, _ := domain.DefaultPipeline().Run(records)

	assert.Equal(t, m.KindClass, out[0].Kind)
	assert.Equal(t, "Foo", out[0].Name)
	assert.Equal(t, "Foo", out[0].Longname)

	assert.Equal(t, "Foo", out[1].Memberof)
	assert.Equal(t, m.ScopeInstance, out[1].Scope)
	assert.Equal(t, "Foo#render", out[1].Longname)
}

func TestPipeline_ArrowFieldBecomesBoundMethod(t *testing.T) {
	view := &m.ClassDeclaration{Name: "View"}
	records := []m.Doclet{
		{Name: "#handler", Longname: "View#handler", Memberof: "View", Kind: m.KindMember, Scope: m.ScopeInstance,
			Meta: &m.PropertyDefinition{Key: m.Key{Name: "handler", Private: true}, Class: view, Value: &m.ArrowFunction{}}},
	}

	out, _ := domain.DefaultPipeline().Run(records)

	handler := out[0]
	assert.Equal(t, m.KindFunction, handler.Kind)
	assert.Equal(t, m.AccessPrivate, handler.Access)
	assert.Equal(t, m.ScopeInstance, handler.Scope)
	assert.Equal(t, "#handler", handler.Name)
	assert.Equal(t, "View##handler", handler.Longname)
}

func TestPipeline_PrivateFieldAssignedInConstructor(t *testing.T) {
	counter := &m.ClassDeclaration{Name: "Counter"}
	records := []m.Doclet{
		{Name: "#local", Longname: "Counter##local", Memberof: "Counter", Kind: m.KindMember, Scope: m.ScopeInstance, Undocumented: true,
			Meta: &m.PropertyDefinition{Key: m.Key{Name: "local", Private: true}, Class: counter}},
		{Name: m.MalformedPrivateName, Longname: "Counter~undefined", Memberof: "Counter", Kind: m.KindMember, Scope: m.ScopeInner,
			Comment: "/** @type {number} */",
			Meta:    &m.Assignment{Left: m.MemberAccess{Object: "this", Property: m.Key{Name: "local", Private: true}}}},
	}

	out, _ := domain.DefaultPipeline().Run(records)

	placeholder := out[0]
	assert.True(t, placeholder.Undocumented, "placeholder must stay hidden")

	shadow := out[1]
	assert.Equal(t, "#local", shadow.Name)
	assert.Equal(t, "Counter##local", shadow.Longname)
	assert.Equal(t, m.ScopeInstance, shadow.Scope)
	assert.Equal(t, m.AccessPrivate, shadow.Access)
	assert.False(t, shadow.Undocumented)
}

func TestPipeline_IsIdempotent(t *testing.T) {
	foo := &m.ClassDeclaration{Name: "Foo", DefaultExport: true}
	records := []m.Doclet{
		{Name: m.ModuleExports, Longname: m.ModuleExports, Kind: m.KindClass, Meta: &m.ExportDefault{Declaration: foo}},
		{Name: "", Memberof: m.ModuleExports, Kind: m.KindFunction, Meta: &m.MethodDefinition{Key: m.Key{Name: "p", Private: true}, Class: foo}},
		{Name: "size", Longname: "Foo#size", Memberof: "Foo", Kind: m.KindMember, Scope: m.ScopeInstance,
			Meta: &m.PropertyDefinition{Key: m.Key{Name: "size"}, IsStatic: true, Class: foo}},
		{Name: "#f", Longname: "Foo##f", Memberof: "Foo", Kind: m.KindMember, Scope: m.ScopeInstance, Undocumented: true,
			Meta: &m.PropertyDefinition{Key: m.Key{Name: "f", Private: true}, Class: foo}},
		{Name: m.MalformedPrivateName, Memberof: "Foo", Kind: m.KindMember, Scope: m.ScopeInner,
			Meta: &m.Assignment{Left: m.MemberAccess{Object: "this", Property: m.Key{Name: "f", Private: true}}}},
		{Name: "onClick", Longname: "Foo#onClick", Memberof: "Foo", Kind: m.KindMember, Scope: m.ScopeInstance,
			Meta: &m.ArrowFunction{Parent: &m.PropertyDefinition{Key: m.Key{Name: "onClick"}}}},
		{Name: m.ModuleExports, Longname: m.ModuleExports, Memberof: "module:cfg", Kind: m.KindMember,
			Meta: &m.ObjectExpression{Keys: []string{"debug"}, DefaultExport: true}},
		{Name: "save", Kind: m.KindFunction, Scope: m.ScopeGlobal, Meta: &m.MethodDefinition{Key: m.Key{Name: "save"}}},
	}

	pipeline := domain.DefaultPipeline()

	once, _ := pipeline.Run(records)
	twice, report := pipeline.Run(once)

	require.Len(t, twice, len(once))

	for i := range once {
		assert.True(t, once[i].Equal(twice[i]), "record %d changed: %+v -> %+v", i, once[i], twice[i])
	}

	assert.Equal(t, 0, report.Changed())
}

func TestPipeline_IsIdempotentWithMixins(t *testing.T) {
	events := &m.ClassDeclaration{Name: "Events"}
	records := []m.Doclet{
		{Name: "Events", Longname: "Events", Kind: m.KindClass, Scope: m.ScopeGlobal, Meta: events},
		{Name: "on", Longname: "Events#on", Memberof: "Events", Kind: m.KindFunction, Scope: m.ScopeInstance,
			Meta: &m.MethodDefinition{Key: m.Key{Name: "on"}, Class: events}},
		{Name: "create", Longname: "Events#create", Memberof: "Events", Kind: m.KindFunction, Scope: m.ScopeInstance,
			Meta: &m.MethodDefinition{Key: m.Key{Name: "create"}, IsStatic: true, Class: events}},
		{Name: "Widget", Longname: "module:ui~Widget", Kind: m.KindClass, Scope: m.ScopeGlobal, Mixes: []string{"Events"}},
	}

	pipeline := domain.DefaultPipeline()
	augment := domain.WithAugmenter(adapter.NewMixinAugmenter().Augment)

	once, _ := pipeline.Run(records, augment)
	require.Len(t, once, 6)
	assert.Equal(t, "module:ui~Widget#on", once[4].Longname)
	assert.Equal(t, "module:ui~Widget.create", once[5].Longname)

	tests := []struct {
		name string
		opts []domain.RunOption
	}{
		{"without augmentation", nil},
		{"augmenting again", []domain.RunOption{augment}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			twice, report := pipeline.Run(once, tt.opts...)

			require.Len(t, twice, len(once))

			for i := range once {
				assert.True(t, once[i].Equal(twice[i]), "record %d changed: %+v -> %+v", i, once[i], twice[i])
			}

			assert.Equal(t, 0, report.Changed())
		})
	}
}

func TestNormalizeStaticScope_InnerMemberGetsStaticSeparator(t *testing.T) {
	records := []m.Doclet{
		{Name: "x", Longname: "Bar.x", Memberof: "Bar", Kind: m.KindMember, Scope: m.ScopeStatic,
			Meta: &m.PropertyDefinition{Key: m.Key{Name: "x"}, IsStatic: true}},
		{Name: "x", Longname: "Foo~x", Memberof: "Foo", Kind: m.KindMember, Scope: m.ScopeInner},
	}

	out := domain.NormalizeStaticScope(records)

	assert.Equal(t, m.ScopeStatic, out[1].Scope)
	assert.Equal(t, "Foo.x", out[1].Longname)
	assert.NotContains(t, out[1].Longname, m.InnerSeparator)

	again := domain.NormalizeStaticScope(out)
	assert.Equal(t, out, again)
}

func TestPipeline_DoesNotMutateInput(t *testing.T) {
	records := []m.Doclet{
		{Name: "count", Longname: "Foo#count", Memberof: "Foo", Kind: m.KindMember, Scope: m.ScopeInstance,
			Meta: &m.PropertyDefinition{Key: m.Key{Name: "count"}, IsStatic: true}},
	}
	snapshot := m.CloneAll(records)

	_, _ = domain.DefaultPipeline().Run(records)

	assert.True(t, snapshot[0].Equal(records[0]))
}

func TestPipeline_ReportCountsChanges(t *testing.T) {
	records := []m.Doclet{
		{Name: "count", Longname: "Foo#count", Memberof: "Foo", Kind: m.KindMember, Scope: m.ScopeInstance,
			Meta: &m.PropertyDefinition{Key: m.Key{Name: "count"}, IsStatic: true}},
		{Name: "plain", Longname: "plain", Kind: m.KindFunction, Scope: m.ScopeGlobal},
	}

	_, report := domain.DefaultPipeline().Run(records)

	counts := map[string]int{}
	for _, s := range report.Stages {
		counts[s.Name] = s.Changed
	}

	assert.Equal(t, 1, counts[domain.StageClassify])
	assert.Equal(t, 1, counts[domain.StageStaticScope])
	assert.Equal(t, 0, counts[domain.StageDefaultExports])
	assert.Equal(t, 2, report.Records)
}

func TestNewPipeline_Validation(t *testing.T) {
	identity := func(in []m.Doclet) []m.Doclet { return in }
	each := func(d m.Doclet) m.Doclet { return d }

	tests := []struct {
		name   string
		stages []domain.Stage
	}{
		{"unnamed", []domain.Stage{{Event: domain.EventParseComplete, Run: identity}}},
		{"duplicate", []domain.Stage{
			{Name: "a", Event: domain.EventParseComplete, Run: identity},
			{Name: "a", Event: domain.EventParseComplete, Run: identity},
		}},
		{"unknown event", []domain.Stage{{Name: "a", Event: "later", Run: identity}}},
		{"event out of order", []domain.Stage{
			{Name: "a", Event: domain.EventProcessingComplete, Run: identity},
			{Name: "b", Event: domain.EventParseComplete, Run: identity},
		}},
		{"dependency declared later", []domain.Stage{
			{Name: "a", Event: domain.EventParseComplete, After: []string{"b"}, Run: identity},
			{Name: "b", Event: domain.EventParseComplete, Run: identity},
		}},
		{"discovery without per-doclet func", []domain.Stage{{Name: "a", Event: domain.EventNewDoclet, Run: identity}}},
		{"pass without body", []domain.Stage{{Name: "a", Event: domain.EventParseComplete, Each: each}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewPipeline(tt.stages...)
			require.ErrorIs(t, err, domain.ErrInvalidPipeline)
		})
	}
}

func TestPipeline_DiscardsStageThatChangesCardinality(t *testing.T) {
	drop := func(in []m.Doclet) []m.Doclet { return in[:0] }

	p, err := domain.NewPipeline(domain.Stage{Name: "drop", Event: domain.EventParseComplete, Run: drop})
	require.NoError(t, err)

	records := []m.Doclet{{Name: "a"}, {Name: "b"}}
	out := p.Fire(domain.EventParseComplete, records)

	assert.Len(t, out, 2)
}

func TestPipeline_DiscoverMatchesRunDiscovery(t *testing.T) {
	d := m.Doclet{Name: m.MalformedPrivateName, Meta: &m.Assignment{Left: m.MemberAccess{Property: m.Key{Name: "x", Private: true}}}}

	p := domain.DefaultPipeline()
	assert.Equal(t, "#x", p.Discover(d).Name)
	assert.Equal(t, m.MalformedPrivateName, d.Name)

	names := make([]string, 0)
	for _, s := range p.Stages() {
		names = append(names, s.Name)
	}

	assert.Equal(t, []string{
		domain.StageClassify,
		domain.StagePrivateMembers,
		domain.StageStaticScope,
		domain.StageDefaultExports,
		domain.StagePostAugment,
	}, names)
}
