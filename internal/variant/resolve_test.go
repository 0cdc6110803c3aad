package variant

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCatalog []FrameworkInfo

func (c testCatalog) Frameworks() []FrameworkInfo { return c }

var catalog = testCatalog{
	{
		ID: Next, Label: "Next.js", JSX: JSXImplicit, DefaultUtility: UtilityV4,
		Utilities: []StylingMode{UtilityV3, UtilityV4},
		Libraries: []LibraryInfo{
			{ID: "shadcn", Label: "shadcn/ui", Requires: UtilityV4},
			{ID: "daisyui", Label: "daisyUI", Requires: UtilityV3},
			{ID: "chakra", Label: "Chakra UI"},
			{ID: "none", Label: "None"},
		},
	},
	{
		ID: Angular, Label: "Angular", TypedOnly: true, DefaultUtility: UtilityV4,
		Libraries: []LibraryInfo{
			{ID: "daisyui", Label: "daisyUI", Requires: UtilityV4},
			{ID: "none", Label: "None"},
		},
	},
	{
		ID: Vue, Label: "Vue", Libraries: []LibraryInfo{{ID: "none", Label: "None"}},
	},
}

// scriptedPrompter answers prompts from queues and records what it was asked.
type scriptedPrompter struct {
	confirms []bool
	selects  []string
	err      error

	asked   []string
	offered [][]Option
}

func (p *scriptedPrompter) Confirm(message string, _ bool) (bool, error) {
	p.asked = append(p.asked, message)
	if p.err != nil {
		return false, p.err
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}

func (p *scriptedPrompter) Select(message string, options []Option) (string, error) {
	p.asked = append(p.asked, message)
	p.offered = append(p.offered, options)
	if p.err != nil {
		return "", p.err
	}
	answer := p.selects[0]
	p.selects = p.selects[1:]
	return answer, nil
}

func TestResolve_NoViolation(t *testing.T) {
	p := &scriptedPrompter{}
	r := NewResolver(catalog, p)

	res, err := r.Resolve(Choices{Framework: Next, Language: Typed, Styling: Utility, Library: "shadcn"})
	require.NoError(t, err)

	assert.Equal(t, "next/typed/utility-v4/shadcn", res.Variant.String())
	assert.Equal(t, "tsx", res.Variant.Extension())
	assert.Equal(t, []State{StateSelecting, StateResolved}, res.History)
	assert.Empty(t, p.asked)
}

func TestResolve_PinsUtilityVersion(t *testing.T) {
	r := NewResolver(catalog, &scriptedPrompter{})

	res, err := r.Resolve(Choices{Framework: Next, Language: Untyped, Styling: Utility, Library: "daisyui"})
	require.NoError(t, err)

	assert.Equal(t, UtilityV3, res.Variant.Styling())
	require.Len(t, res.Notes, 1)
	assert.Contains(t, res.Notes[0], "pinned")
}

func TestResolve_UpgradeAccepted(t *testing.T) {
	p := &scriptedPrompter{confirms: []bool{true}}
	r := NewResolver(catalog, p)

	res, err := r.Resolve(Choices{Framework: Next, Language: Typed, Styling: Plain, Library: "daisyui"})
	require.NoError(t, err)

	assert.Equal(t, UtilityV3, res.Variant.Styling())
	assert.Equal(t, "daisyui", res.Variant.Library())
	assert.Equal(t, []State{StateSelecting, StateConstraintViolated, StateUpgraded, StateResolved}, res.History)
	assert.Equal(t, []string{"daisyUI requires Tailwind CSS v3. Enable it?"}, p.asked)
}

func TestResolve_UpgradeDeclined(t *testing.T) {
	p := &scriptedPrompter{confirms: []bool{false}, selects: []string{"chakra"}}
	r := NewResolver(catalog, p)

	res, err := r.Resolve(Choices{Framework: Next, Language: Typed, Styling: Plain, Library: "daisyui"})
	require.NoError(t, err)

	assert.Equal(t, Plain, res.Variant.Styling())
	assert.Equal(t, "chakra", res.Variant.Library())
	assert.Equal(t, []State{StateSelecting, StateConstraintViolated, StateReselected, StateResolved}, res.History)

	// Only the constraint-free subset is offered.
	require.Len(t, p.offered, 1)
	var offered []string
	for _, o := range p.offered[0] {
		offered = append(offered, o.Value)
	}
	assert.Equal(t, []string{"chakra", "none"}, offered)
}

func TestResolve_ReselectOutsideSubset(t *testing.T) {
	p := &scriptedPrompter{confirms: []bool{false}, selects: []string{"shadcn"}}
	r := NewResolver(catalog, p)

	_, err := r.Resolve(Choices{Framework: Next, Language: Typed, Styling: Plain, Library: "daisyui"})
	assert.ErrorIs(t, err, ErrIncompatibleSelection)
}

func TestResolve_UnknownSelections(t *testing.T) {
	tests := []struct {
		name    string
		choices Choices
	}{
		{"framework", Choices{Framework: "svelte"}},
		{"library", Choices{Framework: Next, Language: Typed, Styling: Plain, Library: "mui"}},
		{"language", Choices{Framework: Next, Language: "coffee", Styling: Plain, Library: "none"}},
		{"utility on plain-only framework", Choices{Framework: Vue, Language: Typed, Styling: Utility, Library: "none"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResolver(catalog, &scriptedPrompter{}).Resolve(tt.choices)
			assert.ErrorIs(t, err, ErrUnknownSelection)
		})
	}
}

func TestResolve_PromptsForMissingChoices(t *testing.T) {
	p := &scriptedPrompter{selects: []string{"next", "untyped", "utility", "none"}}

	res, err := NewResolver(catalog, p).Resolve(Choices{})
	require.NoError(t, err)

	assert.Equal(t, "next/untyped/utility-v4/none", res.Variant.String())
	assert.Len(t, p.asked, 4)
	assert.Contains(t, p.offered[3][1].Label, "requires Tailwind CSS")
}

func TestResolve_TypedOnlyFramework(t *testing.T) {
	res, err := NewResolver(catalog, &scriptedPrompter{}).
		Resolve(Choices{Framework: Angular, Language: Untyped, Styling: Utility, Library: "daisyui"})
	require.NoError(t, err)

	assert.Equal(t, Typed, res.Variant.Language())
	assert.Equal(t, "ts", res.Variant.Extension())
	require.Len(t, res.Notes, 1)
	assert.Contains(t, res.Notes[0], "TypeScript only")
}

func TestResolve_PlainOnlyFrameworkSkipsStylingPrompt(t *testing.T) {
	p := &scriptedPrompter{selects: []string{"none"}}

	res, err := NewResolver(catalog, p).Resolve(Choices{Framework: Vue, Language: Typed})
	require.NoError(t, err)

	assert.Equal(t, Plain, res.Variant.Styling())
	assert.Equal(t, []string{"Choose a UI library:"}, p.asked)
}

func TestResolve_PrompterError(t *testing.T) {
	boom := errors.New("interrupted")
	_, err := NewResolver(catalog, &scriptedPrompter{err: boom}).Resolve(Choices{})
	assert.ErrorIs(t, err, boom)
}

func TestResolve_Defaults(t *testing.T) {
	res, err := NewResolver(catalog, Defaults{}).Resolve(Choices{Styling: Plain, Library: "daisyui"})
	require.NoError(t, err)

	// Defaults accept the upgrade.
	assert.Equal(t, Next, res.Variant.Framework())
	assert.Equal(t, UtilityV3, res.Variant.Styling())
}

func TestAllowedTransition(t *testing.T) {
	assert.True(t, allowedTransition(StateSelecting, StateResolved))
	assert.False(t, allowedTransition(StateSelecting, StateUpgraded))
	assert.False(t, allowedTransition(StateResolved, StateSelecting))

	m := newMachine()
	require.NoError(t, m.to(StateConstraintViolated))
	assert.Error(t, m.to(StateResolved))
}

func TestResolve_ExplicitUtilityVersion(t *testing.T) {
	r := NewResolver(catalog, &scriptedPrompter{})

	res, err := r.Resolve(Choices{Framework: Next, Language: Typed, Styling: UtilityV3, Library: "none"})
	require.NoError(t, err)
	assert.Equal(t, UtilityV3, res.Variant.Styling())

	_, err = r.Resolve(Choices{Framework: Angular, Language: Typed, Styling: UtilityV3, Library: "none"})
	assert.ErrorIs(t, err, ErrUnknownSelection)

	res, err = r.Resolve(Choices{Framework: Angular, Language: Typed, Styling: UtilityV4, Library: "none"})
	require.NoError(t, err)
	assert.Equal(t, UtilityV4, res.Variant.Styling())
}

func TestFrameworkInfo_Offers(t *testing.T) {
	next, _ := Lookup(catalog, Next)
	angular, _ := Lookup(catalog, Angular)
	vue, _ := Lookup(catalog, Vue)

	assert.True(t, next.Offers(UtilityV3))
	assert.True(t, next.Offers(UtilityV4))
	assert.False(t, angular.Offers(UtilityV3), "empty Utilities means the default only")
	assert.True(t, angular.Offers(UtilityV4))
	assert.False(t, vue.Offers(UtilityV4))
	assert.False(t, next.Offers(Plain))
}
