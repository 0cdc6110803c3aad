package library

import (
	"github.com/AlgoFoe/hackpack/internal/configwriter"
	"github.com/AlgoFoe/hackpack/internal/install"
	"github.com/AlgoFoe/hackpack/internal/page"
	"github.com/AlgoFoe/hackpack/internal/patch"
	"github.com/AlgoFoe/hackpack/internal/variant"
)

const tailwindImport = `@import "tailwindcss";`

func angular() Framework {
	return Framework{
		ID:             variant.Angular,
		Label:          "Angular",
		JSX:            variant.JSXNone,
		TypedOnly:      true,
		DefaultUtility: variant.UtilityV4,
		Files: map[patch.Target]string{
			AppComponent: "src/app/app.ts",
			AppTemplate:  "src/app/app.html",
			Stylesheet:   "src/styles.css",
			IndexHTML:    "src/index.html",
		},
		Utility: angularUtility,
		Libraries: []Descriptor{
			{ID: "daisyui", Label: "daisyUI (Tailwind plugin)", Requires: variant.UtilityV4, Build: angularDaisyUI},
			{ID: "tailwind-only", Label: "Tailwind CSS only (no component library)", Requires: variant.UtilityV4},
			{ID: "none", Label: "None (plain CSS)"},
		},
	}
}

// angularUtility wires Tailwind v4 through PostCSS; the Angular CLI does not
// set it up on its own.
func angularUtility(Env) Plan {
	return Plan{
		Steps: []install.Step{{
			Feature:  "tailwind",
			Packages: []string{"tailwindcss@latest", "@tailwindcss/postcss@latest", "postcss@latest"},
			Flags:    []string{"--force"},
			Message:  "Installing Tailwind CSS",
		}},
		Configs: []configwriter.Spec{{
			Kind:     configwriter.PostCSSRC,
			Path:     ".postcssrc.json",
			Template: "postcssrc.json.tmpl",
		}},
		Edits: []patch.Edit{{
			Name:      "tailwind import",
			Target:    Stylesheet,
			Detect:    patch.StartOfFile(),
			Insertion: tailwindImport + "\n",
			Strategy:  patch.BeforeAnchor,
		}},
	}
}

func angularDaisyUI(env Env) Plan {
	return Plan{
		Steps: []install.Step{
			{Feature: "daisyui", Packages: []string{"daisyui@latest"}, Flags: []string{"--force"}, Message: "Installing daisyUI"},
			{Feature: "ngx-sonner", Packages: []string{"ngx-sonner"}, Flags: []string{"--force"}, Message: "Installing ngx-sonner"},
		},
		Edits: []patch.Edit{
			{
				Name:      "daisyui plugin",
				Target:    Stylesheet,
				Detect:    patch.Literal(tailwindImport),
				Insertion: "\n@plugin \"daisyui\";",
				Strategy:  patch.AfterAnchor,
				Fallback:  patch.FallbackAppend,
			},
			htmlAttr(IndexHTML, "daisyUI theme", `data-theme="`+env.Brand.Theme+`"`),
		},
		Page: page.Spec{
			Page:       page.File{Path: "src/app/app.html", Template: "angular/daisyui-app.html.tmpl"},
			Companions: []page.File{{Path: "src/app/app.ts", Template: "angular/daisyui-app.ts.tmpl"}},
		},
	}
}
