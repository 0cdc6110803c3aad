package variant

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrUnknownSelection is returned for a framework, language, styling or
	// library the catalog does not know.
	ErrUnknownSelection = errors.New("unknown selection")

	// ErrIncompatibleSelection is returned when no compatible library could be
	// chosen after the upgrade prompt was declined.
	ErrIncompatibleSelection = errors.New("incompatible selection")
)

// State is a step of the resolution state machine.
type State string

const (
	StateSelecting          State = "selecting"
	StateConstraintViolated State = "constraint-violated"
	StateUpgraded           State = "upgraded"
	StateReselected         State = "reselected"
	StateResolved           State = "resolved"
)

func allowedTransition(from, to State) bool {
	switch from {
	case StateSelecting:
		return to == StateConstraintViolated || to == StateResolved
	case StateConstraintViolated:
		return to == StateUpgraded || to == StateReselected
	case StateUpgraded, StateReselected:
		return to == StateResolved
	default:
		return false
	}
}

type machine struct {
	state   State
	history []State
}

func newMachine() *machine {
	return &machine{state: StateSelecting, history: []State{StateSelecting}}
}

func (m *machine) to(next State) error {
	if !allowedTransition(m.state, next) {
		return fmt.Errorf("disallowed resolver transition %s -> %s", m.state, next)
	}
	m.state = next
	m.history = append(m.history, next)
	return nil
}

// Option is one entry of a selection prompt.
type Option struct {
	Value string
	Label string
}

// Prompter asks the user questions. The resolver's only side effects go
// through it.
type Prompter interface {
	Confirm(message string, defaultYes bool) (bool, error)
	Select(message string, options []Option) (string, error)
}

// Defaults answers every prompt with its default: confirmations with the
// suggested answer and selections with the first option.
type Defaults struct{}

func (Defaults) Confirm(_ string, defaultYes bool) (bool, error) {
	return defaultYes, nil
}

func (Defaults) Select(message string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options for %q", message)
	}
	return options[0].Value, nil
}

// Choices are the user's raw answers. Empty fields are prompted for.
type Choices struct {
	Framework Framework
	Language  LanguageMode
	Styling   StylingMode
	Library   string
	Options   Options
}

// Resolution is a variant that satisfies its library's constraint, together
// with how the resolver got there.
type Resolution struct {
	Variant ProjectVariant
	Notes   []string
	History []State
}

// Resolver turns Choices into a Resolution.
type Resolver struct {
	catalog  Catalog
	prompter Prompter
}

func NewResolver(catalog Catalog, prompter Prompter) *Resolver {
	if prompter == nil {
		prompter = Defaults{}
	}
	return &Resolver{catalog: catalog, prompter: prompter}
}

// Resolve walks Selecting -> ConstraintViolated -> {Upgraded | Reselected} -> Resolved.
// At most one re-selection prompt is issued.
func (r *Resolver) Resolve(choices Choices) (Resolution, error) {
	m := newMachine()
	var notes []string

	fw, err := r.selectFramework(choices.Framework)
	if err != nil {
		return Resolution{}, err
	}

	lang, note, err := r.selectLanguage(fw, choices.Language)
	if err != nil {
		return Resolution{}, err
	}
	if note != "" {
		notes = append(notes, note)
	}

	styling, err := r.selectStyling(fw, choices.Styling)
	if err != nil {
		return Resolution{}, err
	}

	lib, err := r.selectLibrary(fw, choices.Library)
	if err != nil {
		return Resolution{}, err
	}

	if !lib.Constraint().SatisfiedBy(styling) {
		if err := m.to(StateConstraintViolated); err != nil {
			return Resolution{}, err
		}

		upgrade, err := r.prompter.Confirm(
			fmt.Sprintf("%s requires %s. Enable it?", lib.Label, lib.Requires.Label()), true)
		if err != nil {
			return Resolution{}, fmt.Errorf("confirming styling upgrade: %w", err)
		}

		if upgrade {
			if err := m.to(StateUpgraded); err != nil {
				return Resolution{}, err
			}
			notes = append(notes, fmt.Sprintf("enabled %s for %s", lib.Requires.Label(), lib.Label))
			styling = lib.Requires
		} else {
			if err := m.to(StateReselected); err != nil {
				return Resolution{}, err
			}
			lib, err = r.reselect(fw, styling, lib)
			if err != nil {
				return Resolution{}, err
			}
			notes = append(notes, fmt.Sprintf("switched to %s to keep %s", lib.Label, styling.Label()))
		}
	}

	if lib.Requires.IsUtility() && styling.IsUtility() && styling != lib.Requires {
		notes = append(notes, fmt.Sprintf("%s needs %s; pinned from %s", lib.Label, lib.Requires.Label(), styling.Label()))
		styling = lib.Requires
	}

	if !lib.Constraint().SatisfiedBy(styling) {
		return Resolution{}, fmt.Errorf("%w: %s with %s", ErrIncompatibleSelection, lib.ID, styling)
	}

	if err := m.to(StateResolved); err != nil {
		return Resolution{}, err
	}

	return Resolution{
		Variant: New(fw.ID, fw.JSX, lang, styling, lib.ID, choices.Options),
		Notes:   notes,
		History: m.history,
	}, nil
}

func (r *Resolver) selectFramework(id Framework) (FrameworkInfo, error) {
	if id == "" {
		frameworks := r.catalog.Frameworks()
		options := make([]Option, 0, len(frameworks))
		for _, f := range frameworks {
			options = append(options, Option{Value: string(f.ID), Label: f.Label})
		}
		answer, err := r.prompter.Select("Which framework would you like to use?", options)
		if err != nil {
			return FrameworkInfo{}, fmt.Errorf("selecting framework: %w", err)
		}
		id = Framework(answer)
	}

	fw, ok := Lookup(r.catalog, id)
	if !ok {
		return FrameworkInfo{}, fmt.Errorf("%w: framework %q", ErrUnknownSelection, id)
	}
	return fw, nil
}

func (r *Resolver) selectLanguage(fw FrameworkInfo, lang LanguageMode) (LanguageMode, string, error) {
	if fw.TypedOnly {
		if lang == Untyped {
			return Typed, fmt.Sprintf("%s is TypeScript only; using TypeScript", fw.Label), nil
		}
		return Typed, "", nil
	}

	if lang == "" {
		answer, err := r.prompter.Select("Do you want to use JavaScript or TypeScript?", []Option{
			{Value: string(Typed), Label: Typed.Label()},
			{Value: string(Untyped), Label: Untyped.Label()},
		})
		if err != nil {
			return "", "", fmt.Errorf("selecting language: %w", err)
		}
		lang = LanguageMode(answer)
	}

	if lang != Typed && lang != Untyped {
		return "", "", fmt.Errorf("%w: language %q", ErrUnknownSelection, lang)
	}
	return lang, "", nil
}

func (r *Resolver) selectStyling(fw FrameworkInfo, styling StylingMode) (StylingMode, error) {
	if styling == "" {
		if !fw.SupportsUtility() {
			return Plain, nil
		}
		answer, err := r.prompter.Select("Choose your styling approach:", []Option{
			{Value: string(Utility), Label: "Tailwind CSS (recommended for most UI libraries)"},
			{Value: string(Plain), Label: "Plain CSS (no Tailwind)"},
		})
		if err != nil {
			return "", fmt.Errorf("selecting styling: %w", err)
		}
		styling = StylingMode(answer)
	}

	switch {
	case styling == Plain:
		return Plain, nil
	case styling.IsUtility() && !fw.SupportsUtility():
		return "", fmt.Errorf("%w: %s does not offer utility styling", ErrUnknownSelection, fw.Label)
	case styling == Utility:
		return fw.DefaultUtility, nil
	case styling.IsUtility() && !fw.Offers(styling):
		return "", fmt.Errorf("%w: %s does not support %s", ErrUnknownSelection, fw.Label, styling.Label())
	case styling.IsUtility():
		return styling, nil
	default:
		return "", fmt.Errorf("%w: styling %q", ErrUnknownSelection, styling)
	}
}

func (r *Resolver) selectLibrary(fw FrameworkInfo, id string) (LibraryInfo, error) {
	if id == "" {
		options := make([]Option, 0, len(fw.Libraries))
		for _, l := range fw.Libraries {
			options = append(options, Option{Value: l.ID, Label: libraryLabel(l)})
		}
		answer, err := r.prompter.Select("Choose a UI library:", options)
		if err != nil {
			return LibraryInfo{}, fmt.Errorf("selecting UI library: %w", err)
		}
		id = answer
	}

	lib, ok := fw.Library(id)
	if !ok {
		return LibraryInfo{}, fmt.Errorf("%w: UI library %q for %s", ErrUnknownSelection, id, fw.Label)
	}
	return lib, nil
}

func (r *Resolver) reselect(fw FrameworkInfo, styling StylingMode, rejected LibraryInfo) (LibraryInfo, error) {
	subset := fw.Compatible(styling)
	if len(subset) == 0 {
		return LibraryInfo{}, fmt.Errorf("%w: no %s library works with %s", ErrIncompatibleSelection, fw.Label, styling.Label())
	}

	options := make([]Option, 0, len(subset))
	for _, l := range subset {
		options = append(options, Option{Value: l.ID, Label: l.Label})
	}

	answer, err := r.prompter.Select(
		fmt.Sprintf("Choose a UI library compatible with %s:", strings.ToLower(styling.Label())), options)
	if err != nil {
		return LibraryInfo{}, fmt.Errorf("reselecting UI library: %w", err)
	}

	idx := slices.IndexFunc(subset, func(l LibraryInfo) bool { return l.ID == answer })
	if idx < 0 {
		return LibraryInfo{}, fmt.Errorf("%w: %q instead of %s is not compatible with %s",
			ErrIncompatibleSelection, answer, rejected.ID, styling.Label())
	}
	return subset[idx], nil
}

func libraryLabel(l LibraryInfo) string {
	if l.Requires.IsUtility() {
		return l.Label + " (requires Tailwind CSS)"
	}
	return l.Label
}
