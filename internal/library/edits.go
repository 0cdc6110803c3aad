package library

import (
	"github.com/AlgoFoe/hackpack/internal/generator"
	"github.com/AlgoFoe/hackpack/internal/page"
	"github.com/AlgoFoe/hackpack/internal/patch"
)

// importAnchor matches a whole ES import statement; the last one wins.
var importAnchor = patch.Regexp(`(?m)^import .+?;`)

var (
	bodyOpen  = patch.Regexp(`<body[^>]*>`)
	bodyClose = patch.Regexp(`(?m)^[ \t]*</body>`)
	htmlTag   = patch.Literal(`<html lang="en">`)

	childrenLine   = patch.Regexp(`(?m)^[ \t]*\{children\}`)
	nestedChildren = patch.Regexp(`(?m)^ {10}\{children\}`)
)

// addImport places line after the last import, or at the top of a file that
// has none.
func addImport(target patch.Target, name, line string) patch.Edit {
	return patch.Edit{
		Name:         name,
		Target:       target,
		Detect:       importAnchor,
		Insertion:    "\n" + line,
		Strategy:     patch.AfterAnchor,
		Fallback:     patch.FallbackPrepend,
		FallbackText: line + "\n",
	}
}

// mountToaster imports the toaster and renders it after {children}, or just
// before </body> when the layout has no {children}.
func mountToaster(target patch.Target) []patch.Edit {
	mounted := patch.Literal("<Toaster />")
	return []patch.Edit{
		addImport(target, "import toaster", `import { Toaster } from "@/components/ui/toaster";`),
		{
			Name:           "mount toaster",
			Target:         target,
			Detect:         patch.Literal("{children}"),
			AlreadyApplied: mounted,
			Insertion:      "\n        <Toaster />",
			Strategy:       patch.AfterAnchor,
		},
		{
			Name:           "mount toaster before </body>",
			Target:         target,
			Detect:         bodyClose,
			AlreadyApplied: mounted,
			Insertion:      "        <Toaster />\n",
			Strategy:       patch.BeforeAnchor,
		},
	}
}

// wrapBody surrounds the body content with <tag>...</tag> and indents
// {children} one level inside it.
func wrapBody(target patch.Target, tag string) []patch.Edit {
	return []patch.Edit{
		{
			Name:           "open <" + tag + ">",
			Target:         target,
			Detect:         bodyOpen,
			AlreadyApplied: patch.Literal("<" + tag + ">"),
			Insertion:      "\n        <" + tag + ">",
			Strategy:       patch.AfterAnchor,
		},
		{
			Name:           "close <" + tag + ">",
			Target:         target,
			Detect:         bodyClose,
			AlreadyApplied: patch.Literal("</" + tag + ">"),
			Insertion:      "        </" + tag + ">\n",
			Strategy:       patch.BeforeAnchor,
		},
		{
			Name:           "indent {children}",
			Target:         target,
			Detect:         childrenLine,
			AlreadyApplied: nestedChildren,
			Insertion:      "          {children}",
			Strategy:       patch.ReplaceAnchor,
		},
	}
}

// htmlAttr adds attr to the root <html lang="en"> element.
func htmlAttr(target patch.Target, name, attr string) patch.Edit {
	return patch.Edit{
		Name:      name,
		Target:    target,
		Detect:    htmlTag,
		Insertion: `<html lang="en" ` + attr + `>`,
		Strategy:  patch.ReplaceAnchor,
	}
}

// metadata replaces create-next-app's default title and description.
func metadata(target patch.Target, brand page.Brand) []patch.Edit {
	return []patch.Edit{
		{
			Name:   "title",
			Target: target,
			Detect: patch.FirstOf(
				patch.Literal(`title: "Create Next App"`),
				patch.Literal(`title: 'Create Next App'`),
			),
			Insertion: "title: " + generator.JSString(brand.Title),
			Strategy:  patch.ReplaceAnchor,
		},
		{
			Name:   "description",
			Target: target,
			Detect: patch.FirstOf(
				patch.Literal(`description: "Generated by create next app"`),
				patch.Literal(`description: 'Generated by create next app'`),
			),
			Insertion: "description: " + generator.JSString(brand.Description),
			Strategy:  patch.ReplaceAnchor,
		},
	}
}

// contentPaths are the tailwind v3 content globs for a src-dir Next app.
var contentPaths = []string{
	"./src/pages/**/*.{js,ts,jsx,tsx,mdx}",
	"./src/components/**/*.{js,ts,jsx,tsx,mdx}",
	"./src/app/**/*.{js,ts,jsx,tsx,mdx}",
}

// tailwindConfigMarkers are the anchors fallback edits of a v3
// tailwind.config.js need.
var tailwindConfigMarkers = []patch.Pattern{
	patch.Literal("content: ["),
	patch.Literal("plugins: ["),
}

func addContentPaths(paths []string, guard string) patch.Edit {
	insertion := ""
	for _, p := range paths {
		insertion += "\n    " + generator.JSString(p) + ","
	}
	return patch.Edit{
		Name:           "content paths",
		Target:         "tailwind-config",
		Detect:         patch.Literal("content: ["),
		AlreadyApplied: patch.Literal(guard),
		Insertion:      insertion,
		Strategy:       patch.AfterAnchor,
	}
}

func addPlugin(call string) patch.Edit {
	return patch.Edit{
		Name:           "plugin " + call,
		Target:         "tailwind-config",
		Detect:         patch.Literal("plugins: ["),
		AlreadyApplied: patch.Literal(call),
		Insertion:      "plugins: [" + call + ", ",
		Strategy:       patch.ReplaceAnchor,
	}
}

func dedupe(items ...string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range items {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
