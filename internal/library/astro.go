package library

import (
	"github.com/AlgoFoe/hackpack/internal/configwriter"
	"github.com/AlgoFoe/hackpack/internal/install"
	"github.com/AlgoFoe/hackpack/internal/page"
	"github.com/AlgoFoe/hackpack/internal/patch"
	"github.com/AlgoFoe/hackpack/internal/variant"
)

var tsconfigExtends = patch.Regexp(`"extends":\s*"[^"]*",`)

func astro() Framework {
	return Framework{
		ID:             variant.Astro,
		Label:          "Astro",
		JSX:            variant.JSXNone,
		DefaultUtility: variant.UtilityV4,
		Files: map[patch.Target]string{
			Page:       "src/pages/index.astro",
			Layout:     "src/layouts/Layout.astro",
			Stylesheet: "src/styles/global.css",
		},
		Utility: astroUtility,
		Libraries: []Descriptor{
			{ID: "shadcn", Label: "shadcn/ui (React islands)", Requires: variant.UtilityV4, Build: astroShadcn},
			{ID: "none", Label: "None"},
		},
	}
}

// astroUtility lets the Astro CLI install the Vite plugin and create
// src/styles/global.css, then loads the stylesheet from the layout.
func astroUtility(Env) Plan {
	return Plan{
		Steps: []install.Step{{
			Feature: "tailwind",
			Exec:    []string{"astro", "add", "tailwind", "--yes"},
			Message: "Adding Tailwind CSS",
		}},
		Edits: []patch.Edit{{
			Name:           "import global.css",
			Target:         Layout,
			Detect:         patch.Literal("---\n"),
			AlreadyApplied: patch.Literal("../styles/global.css"),
			Insertion:      "import \"../styles/global.css\";\n",
			Strategy:       patch.BeforeAnchor,
			Fallback:       patch.FallbackPrepend,
			FallbackText:   "---\nimport \"../styles/global.css\";\n---\n\n",
		}},
	}
}

func astroShadcn(Env) Plan {
	return Plan{
		Steps: []install.Step{
			{Feature: "react", Exec: []string{"astro", "add", "react", "--yes"}, Message: "Adding React islands"},
			{Feature: "shadcn", Exec: []string{"shadcn@latest", "init", "-d"}, Message: "Initialising shadcn/ui", AfterConfig: true},
			{Feature: "shadcn-button", Exec: []string{"shadcn@latest", "add", "button", "-y"}, Message: "Adding the shadcn/ui button", AfterConfig: true},
			sonner,
		},
		Configs: []configwriter.Spec{{
			Kind:    configwriter.TSConfigPaths,
			Path:    "tsconfig.json",
			BaseURL: ".",
			Paths:   map[string][]string{"@/*": {"./src/*"}},
			Markers: []patch.Pattern{tsconfigExtends},
			Fallback: []patch.Edit{{
				Name:           "path alias",
				Target:         "tsconfig",
				Detect:         tsconfigExtends,
				AlreadyApplied: patch.Literal(`"@/*"`),
				Insertion:      "\n  \"compilerOptions\": {\n    \"baseUrl\": \".\",\n    \"paths\": { \"@/*\": [\"./src/*\"] }\n  },",
				Strategy:       patch.AfterAnchor,
			}},
		}},
		Page: page.Spec{
			Page: page.File{Path: "src/pages/index.astro", Template: "astro/shadcn-index.astro.tmpl"},
			Companions: []page.File{
				{Path: "src/components/ToastDemo.{jsx}", Template: "astro/toast-demo.tmpl"},
				{Path: "src/components/Welcome.astro", Remove: true},
			},
		},
	}
}
