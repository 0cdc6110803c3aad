// Package variant resolves user choices into an immutable ProjectVariant.
//
// A ProjectVariant fixes the framework, language mode, styling mode and UI
// library of a scaffold. Every later stage (generator arguments, installs,
// config templates, anchor edits, pages) is a function of it.
package variant

import (
	"fmt"
	"strings"
)

// Framework identifies a front-end framework generator.
type Framework string

const (
	Next      Framework = "next"
	ViteReact Framework = "vite-react"
	Vue       Framework = "vue"
	Angular   Framework = "angular"
	Astro     Framework = "astro"
)

// LanguageMode is typed (TypeScript) or untyped (JavaScript).
type LanguageMode string

const (
	Typed   LanguageMode = "typed"
	Untyped LanguageMode = "untyped"
)

// ParseLanguage accepts the user-facing spellings of a language mode.
func ParseLanguage(s string) (LanguageMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "ts", "typescript", "typed":
		return Typed, nil
	case "js", "javascript", "untyped":
		return Untyped, nil
	default:
		return "", fmt.Errorf("%w: language %q (want ts or js)", ErrUnknownSelection, s)
	}
}

func (l LanguageMode) Label() string {
	if l == Typed {
		return "TypeScript"
	}
	return "JavaScript"
}

// StylingMode is the styling system of a project.
type StylingMode string

const (
	// Utility asks for the framework's default utility-CSS version. The
	// resolver never leaves it in a resolved variant.
	Utility   StylingMode = "utility"
	UtilityV3 StylingMode = "utility-v3"
	UtilityV4 StylingMode = "utility-v4"
	Plain     StylingMode = "plain"
)

// ParseStyling accepts the user-facing spellings of a styling mode.
func ParseStyling(s string) (StylingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "tailwind", "utility":
		return Utility, nil
	case "tailwind3", "tailwind-v3", "utility-v3":
		return UtilityV3, nil
	case "tailwind4", "tailwind-v4", "utility-v4":
		return UtilityV4, nil
	case "plain", "css", "none":
		return Plain, nil
	default:
		return "", fmt.Errorf("%w: styling %q (want tailwind or plain)", ErrUnknownSelection, s)
	}
}

// IsUtility reports whether s is any utility-CSS mode.
func (s StylingMode) IsUtility() bool {
	return s == Utility || s == UtilityV3 || s == UtilityV4
}

// Major returns the utility-CSS major version, or 0 for non-utility modes.
func (s StylingMode) Major() int {
	switch s {
	case UtilityV3:
		return 3
	case UtilityV4:
		return 4
	default:
		return 0
	}
}

func (s StylingMode) Label() string {
	switch s {
	case UtilityV3:
		return "Tailwind CSS v3"
	case UtilityV4:
		return "Tailwind CSS v4"
	case Utility:
		return "Tailwind CSS"
	case Plain:
		return "Plain CSS"
	default:
		return "unconstrained"
	}
}

// JSXStyle describes how a framework names files that contain JSX.
type JSXStyle int

const (
	// JSXNone means the framework has no JSX entry files (js/ts).
	JSXNone JSXStyle = iota
	// JSXImplicit means untyped JSX files keep the .js extension (js/tsx).
	JSXImplicit
	// JSXExplicit means JSX files always carry an x (jsx/tsx).
	JSXExplicit
)

// Extension derives the file extension of the framework's entry files.
// Untyped yields js or jsx, typed yields ts or tsx.
func Extension(lang LanguageMode, jsx JSXStyle) string {
	if lang == Typed {
		if jsx == JSXNone {
			return "ts"
		}
		return "tsx"
	}
	if jsx == JSXExplicit {
		return "jsx"
	}
	return "js"
}

// Options are generator feature flags. Only the Vue generator reads them.
type Options struct {
	Router   bool
	Pinia    bool
	ESLint   bool
	Prettier bool
}

// ProjectVariant is the resolved, immutable description of a scaffold.
type ProjectVariant struct {
	framework Framework
	language  LanguageMode
	styling   StylingMode
	library   string
	jsx       JSXStyle
	ext       string
	options   Options
}

// New builds a variant. The file extension is derived, never passed in.
func New(fw Framework, jsx JSXStyle, lang LanguageMode, styling StylingMode, library string, opts Options) ProjectVariant {
	return ProjectVariant{
		framework: fw,
		language:  lang,
		styling:   styling,
		library:   library,
		jsx:       jsx,
		ext:       Extension(lang, jsx),
		options:   opts,
	}
}

func (v ProjectVariant) Framework() Framework   { return v.framework }
func (v ProjectVariant) Language() LanguageMode { return v.language }
func (v ProjectVariant) Styling() StylingMode   { return v.styling }
func (v ProjectVariant) Library() string        { return v.library }
func (v ProjectVariant) JSX() JSXStyle          { return v.jsx }
func (v ProjectVariant) Extension() string      { return v.ext }
func (v ProjectVariant) Options() Options       { return v.options }
func (v ProjectVariant) Typed() bool            { return v.language == Typed }
func (v ProjectVariant) UsesUtilityCSS() bool   { return v.styling.IsUtility() }

// ComponentExtension is the extension of a standalone component file, which
// always carries an x when it contains JSX.
func (v ProjectVariant) ComponentExtension() string {
	return Extension(v.language, JSXExplicit)
}

// Expand replaces {ext} and {jsx} placeholders in a relative path.
func (v ProjectVariant) Expand(path string) string {
	return strings.NewReplacer("{ext}", v.ext, "{jsx}", v.ComponentExtension()).Replace(path)
}

func (v ProjectVariant) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", v.framework, v.language, v.styling, v.library)
}
