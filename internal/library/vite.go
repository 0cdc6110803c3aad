package library

import (
	"github.com/AlgoFoe/hackpack/internal/install"
	"github.com/AlgoFoe/hackpack/internal/patch"
	"github.com/AlgoFoe/hackpack/internal/variant"
)

// The Vite-based generators are offered with plain CSS only. Neither
// installs dependencies on its own.

var dependencies = install.Step{Feature: "dependencies", Sync: true, Message: "Installing dependencies"}

func viteReact() Framework {
	return Framework{
		ID:    variant.ViteReact,
		Label: "React (Vite)",
		JSX:   variant.JSXExplicit,
		Files: map[patch.Target]string{
			Main:         "src/main.{jsx}",
			AppComponent: "src/App.{jsx}",
			Stylesheet:   "src/index.css",
		},
		Setup:     []install.Step{dependencies},
		Libraries: []Descriptor{{ID: "none", Label: "None (plain CSS)"}},
	}
}

func vue() Framework {
	return Framework{
		ID:    variant.Vue,
		Label: "Vue",
		JSX:   variant.JSXNone,
		Files: map[patch.Target]string{
			Main:         "src/main.{ext}",
			AppComponent: "src/App.vue",
			Stylesheet:   "src/assets/main.css",
		},
		Setup:     []install.Step{dependencies},
		Libraries: []Descriptor{{ID: "none", Label: "None (plain CSS)"}},
	}
}
