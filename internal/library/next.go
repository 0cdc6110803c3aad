package library

import (
	"github.com/AlgoFoe/hackpack/internal/configwriter"
	"github.com/AlgoFoe/hackpack/internal/generator"
	"github.com/AlgoFoe/hackpack/internal/install"
	"github.com/AlgoFoe/hackpack/internal/page"
	"github.com/AlgoFoe/hackpack/internal/patch"
	"github.com/AlgoFoe/hackpack/internal/variant"
)

const (
	nextPage    = "src/app/page.{ext}"
	nextToaster = "src/components/ui/toaster.{ext}"
)

var sonner = install.Step{Feature: "sonner", Packages: []string{"sonner"}, Message: "Installing sonner"}

func next() Framework {
	return Framework{
		ID:             variant.Next,
		Label:          "Next.js",
		JSX:            variant.JSXImplicit,
		DefaultUtility: variant.UtilityV4,
		Utilities:      []variant.StylingMode{variant.UtilityV3, variant.UtilityV4},
		Files: map[patch.Target]string{
			Layout:     "src/app/layout.{ext}",
			Page:       nextPage,
			Stylesheet: "src/app/globals.css",
		},
		Utility: nextUtility,
		Libraries: []Descriptor{
			{ID: "shadcn", Label: "shadcn/ui (Radix + Tailwind)", Requires: variant.UtilityV4, Build: nextShadcn},
			{ID: "daisyui", Label: "daisyUI (Tailwind plugin)", Requires: variant.UtilityV3, Build: nextDaisyUI},
			{ID: "heroui", Label: "HeroUI", Requires: variant.UtilityV3, Build: nextHeroUI},
			{ID: "tailwind-only", Label: "Tailwind CSS only (no component library)", Requires: variant.UtilityV4, Build: nextTailwindOnly},
			{ID: "chakra", Label: "Chakra UI", Build: nextChakra},
			{ID: "none", Label: "None (plain CSS)"},
		},
	}
}

// nextUtility moves create-next-app's Tailwind v4 setup back to v3. v4 needs
// nothing: the generator already set it up. Libraries that ship their own
// tailwind.config.js replace the plain one written here.
func nextUtility(env Env) Plan {
	if env.Variant.Styling() != variant.UtilityV3 {
		return Plan{}
	}
	return Plan{
		Steps: []install.Step{{
			Feature:     "tailwind-v3",
			DevPackages: []string{"tailwindcss@3", "postcss", "autoprefixer"},
			Message:     "Installing Tailwind CSS v3",
		}},
		Configs: []configwriter.Spec{
			{
				Kind:     configwriter.TailwindConfig,
				Path:     "tailwind.config.js",
				Template: "tailwind-v3.js.tmpl",
				Data:     map[string]any{"Content": contentPaths},
				Markers:  []patch.Pattern{patch.Literal("content: ["), patch.Literal("module.exports = {")},
				Fallback: []patch.Edit{addContentPaths(contentPaths, "./src/app/**/*.{js")},
			},
			{
				Kind:     configwriter.PostCSSConfig,
				Path:     "postcss.config.mjs",
				Template: "postcss-v3.mjs.tmpl",
				Markers:  []patch.Pattern{patch.Literal(`plugins: ["@tailwindcss/postcss"]`)},
				Fallback: []patch.Edit{{
					Name:      "v3 postcss plugins",
					Target:    "postcss-config",
					Detect:    patch.Literal(`plugins: ["@tailwindcss/postcss"]`),
					Insertion: "plugins: {\n    tailwindcss: {},\n    autoprefixer: {},\n  }",
					Strategy:  patch.ReplaceAnchor,
				}},
			},
		},
		Edits: []patch.Edit{
			{
				Name:     "drop v4 import",
				Target:   Stylesheet,
				Detect:   patch.Literal("@import \"tailwindcss\";\n"),
				Strategy: patch.ReplaceAnchor,
			},
			{
				Name:           "v3 directives",
				Target:         Stylesheet,
				Detect:         patch.StartOfFile(),
				AlreadyApplied: patch.Literal("@tailwind base;"),
				Insertion:      "@tailwind base;\n@tailwind components;\n@tailwind utilities;\n",
				Strategy:       patch.BeforeAnchor,
			},
		},
	}
}

func nextDaisyUI(env Env) Plan {
	themes := dedupe("light", "dark", env.Brand.Theme)

	edits := mountToaster(Layout)
	edits = append(edits, metadata(Layout, env.Brand)...)
	edits = append(edits, htmlAttr(Layout, "daisyUI theme", `data-theme="`+env.Brand.Theme+`"`))

	return Plan{
		Steps: []install.Step{
			// daisyUI 5 only supports Tailwind v4.
			{Feature: "daisyui", DevPackages: []string{"daisyui@4"}, Message: "Installing daisyUI"},
			sonner,
		},
		Configs: []configwriter.Spec{{
			Kind:     configwriter.TailwindConfig,
			Path:     "tailwind.config.js",
			Template: "tailwind-daisyui.js.tmpl",
			Data:     map[string]any{"Content": contentPaths, "Themes": themes},
			Markers:  []patch.Pattern{patch.Literal("content: ["), patch.Literal("plugins: ["), patch.Literal("module.exports = {")},
			Fallback: []patch.Edit{
				addContentPaths(contentPaths, "./src/app/**/*.{js"),
				addPlugin(`require("daisyui")`),
				{
					Name:           "daisyui themes",
					Target:         "tailwind-config",
					Detect:         patch.Literal("module.exports = {"),
					AlreadyApplied: patch.Literal("daisyui: {"),
					Insertion:      "\n  daisyui: {\n    themes: " + generator.JSArray(themes) + ",\n  },",
					Strategy:       patch.AfterAnchor,
				},
			},
		}},
		Edits: edits,
		Page: page.Spec{
			Page:       page.File{Path: nextPage, Template: "next/daisyui-page.tmpl"},
			Companions: []page.File{{Path: nextToaster, Template: "next/toaster.tmpl"}},
		},
	}
}

func nextHeroUI(env Env) Plan {
	content := append(append([]string{}, contentPaths...), "./node_modules/@heroui/theme/dist/**/*.{js,ts,jsx,tsx}")

	edits := []patch.Edit{addImport(Layout, "import providers", `import { Providers } from "./providers";`)}
	edits = append(edits, metadata(Layout, env.Brand)...)
	edits = append(edits, htmlAttr(Layout, "light class", `className="light"`))
	edits = append(edits, wrapBody(Layout, "Providers")...)

	return Plan{
		Steps: []install.Step{
			{Feature: "heroui", Packages: []string{"@heroui/react", "framer-motion"}, Message: "Installing HeroUI"},
			sonner,
		},
		Configs: []configwriter.Spec{{
			Kind:     configwriter.TailwindConfig,
			Path:     "tailwind.config.js",
			Template: "tailwind-heroui.js.tmpl",
			Data:     map[string]any{"Content": content},
			Markers:  tailwindConfigMarkers,
			Fallback: []patch.Edit{
				addContentPaths(content[len(content)-1:], "@heroui/theme/dist"),
				addPlugin("heroui()"),
				{
					Name:           "require heroui",
					Target:         "tailwind-config",
					Detect:         patch.StartOfFile(),
					AlreadyApplied: patch.Literal(`require("@heroui/react")`),
					Insertion:      "const { heroui } = require(\"@heroui/react\");\n\n",
					Strategy:       patch.BeforeAnchor,
				},
			},
		}},
		Edits: edits,
		Page: page.Spec{
			Page: page.File{Path: nextPage, Template: "next/heroui-page.tmpl"},
			Companions: []page.File{
				{Path: "src/app/providers.{ext}", Template: "next/heroui-providers.tmpl"},
				{Path: nextToaster, Template: "next/toaster.tmpl"},
			},
		},
	}
}

func nextShadcn(env Env) Plan {
	edits := mountToaster(Layout)
	edits = append(edits, metadata(Layout, env.Brand)...)

	return Plan{
		Steps: []install.Step{
			{Feature: "shadcn", Exec: []string{"shadcn@latest", "init", "-d"}, Message: "Initialising shadcn/ui"},
			{Feature: "shadcn-button", Exec: []string{"shadcn@latest", "add", "button", "-y"}, Message: "Adding the shadcn/ui button"},
			sonner,
		},
		Edits: edits,
		Page: page.Spec{
			Page:       page.File{Path: nextPage, Template: "next/shadcn-page.tmpl"},
			Companions: []page.File{{Path: nextToaster, Template: "next/toaster.tmpl"}},
		},
	}
}

func nextTailwindOnly(env Env) Plan {
	return Plan{
		Edits: metadata(Layout, env.Brand),
		Page:  page.Spec{Page: page.File{Path: nextPage, Template: "next/tailwind-page.tmpl"}},
	}
}

func nextChakra(env Env) Plan {
	edits := []patch.Edit{addImport(Layout, "import provider", `import { Provider } from "@/components/ui/provider";`)}
	edits = append(edits, metadata(Layout, env.Brand)...)
	edits = append(edits, htmlAttr(Layout, "hydration warning", "suppressHydrationWarning"))
	edits = append(edits, wrapBody(Layout, "Provider")...)

	return Plan{
		Steps: []install.Step{
			{Feature: "chakra", Packages: []string{"@chakra-ui/react", "@emotion/react"}, Message: "Installing Chakra UI"},
		},
		Edits: edits,
		Page: page.Spec{
			Page:       page.File{Path: nextPage, Template: "next/chakra-page.tmpl"},
			Companions: []page.File{{Path: "src/components/ui/provider.{ext}", Template: "next/chakra-provider.tmpl"}},
		},
	}
}
