package variant

// Constraint is a library's styling requirement. An empty Requires means the
// library works with any styling mode.
type Constraint struct {
	Library  string
	Requires StylingMode
}

// SatisfiedBy reports whether styling meets the constraint. Any utility mode
// satisfies a utility requirement; the resolver pins the exact major version
// afterwards.
func (c Constraint) SatisfiedBy(styling StylingMode) bool {
	switch {
	case c.Requires == "":
		return true
	case c.Requires.IsUtility():
		return styling.IsUtility()
	default:
		return styling == c.Requires
	}
}

// LibraryInfo is the resolver's view of a UI library.
type LibraryInfo struct {
	ID       string
	Label    string
	Requires StylingMode
}

func (l LibraryInfo) Constraint() Constraint {
	return Constraint{Library: l.ID, Requires: l.Requires}
}

// FrameworkInfo is the resolver's view of a framework and its libraries.
type FrameworkInfo struct {
	ID        Framework
	Label     string
	JSX       JSXStyle
	TypedOnly bool

	// DefaultUtility is the utility-CSS version the framework's own tooling
	// installs. Empty when the framework offers no utility styling.
	DefaultUtility StylingMode

	// Utilities lists the utility-CSS versions the framework can be set up
	// with. Empty means DefaultUtility only.
	Utilities []StylingMode

	Libraries []LibraryInfo
}

// SupportsUtility reports whether the framework offers utility styling.
func (f FrameworkInfo) SupportsUtility() bool {
	return f.DefaultUtility != ""
}

// Offers reports whether the framework can be set up with the concrete
// utility version s.
func (f FrameworkInfo) Offers(s StylingMode) bool {
	if !f.SupportsUtility() {
		return false
	}
	if len(f.Utilities) == 0 {
		return s == f.DefaultUtility
	}
	for _, u := range f.Utilities {
		if u == s {
			return true
		}
	}
	return false
}

// Library looks up a library by ID.
func (f FrameworkInfo) Library(id string) (LibraryInfo, bool) {
	for _, l := range f.Libraries {
		if l.ID == id {
			return l, true
		}
	}
	return LibraryInfo{}, false
}

// Compatible returns the libraries whose constraint styling satisfies, in
// catalog order.
func (f FrameworkInfo) Compatible(styling StylingMode) []LibraryInfo {
	var out []LibraryInfo
	for _, l := range f.Libraries {
		if l.Constraint().SatisfiedBy(styling) {
			out = append(out, l)
		}
	}
	return out
}

// Catalog lists the frameworks and libraries hackpack knows about.
type Catalog interface {
	Frameworks() []FrameworkInfo
}

// Lookup finds a framework in a catalog.
func Lookup(c Catalog, id Framework) (FrameworkInfo, bool) {
	for _, f := range c.Frameworks() {
		if f.ID == id {
			return f, true
		}
	}
	return FrameworkInfo{}, false
}
