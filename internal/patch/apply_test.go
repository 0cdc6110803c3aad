package patch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// typedLayout is src/app/layout.tsx as written by create-next-app 15.
const typedLayout = `import type { Metadata } from "next";
import { Geist, Geist_Mono } from "next/font/google";
import "./globals.css";

const geistSans = Geist({
  variable: "--font-geist-sans",
  subsets: ["latin"],
});

const geistMono = Geist_Mono({
  variable: "--font-geist-mono",
  subsets: ["latin"],
});

export const metadata: Metadata = {
  title: "Create Next App",
  description: "Generated by create next app",
};

export default function RootLayout({
  children,
}: Readonly<{
  children: React.ReactNode;
}>) {
  return (
    <html lang="en">
      <body
        className={` + "`${geistSans.variable} ${geistMono.variable} antialiased`" + `}
      >
        {children}
      </body>
    </html>
  );
}
`

// untypedLayout is src/app/layout.js as written by create-next-app 15 with --js.
const untypedLayout = `import { Geist, Geist_Mono } from "next/font/google";
import "./globals.css";

const geistSans = Geist({
  variable: "--font-geist-sans",
  subsets: ["latin"],
});

const geistMono = Geist_Mono({
  variable: "--font-geist-mono",
  subsets: ["latin"],
});

export const metadata = {
  title: "Create Next App",
  description: "Generated by create next app",
};

export default function RootLayout({ children }) {
  return (
    <html lang="en">
      <body
        className={` + "`${geistSans.variable} ${geistMono.variable} antialiased`" + `}
      >
        {children}
      </body>
    </html>
  );
}
`

var importAnchor = Regexp(`(?m)^import .+?;`)

func layoutEdits() []Edit {
	toaster := Literal("<Toaster />")
	return []Edit{
		{
			Name:      "import toaster",
			Target:    "layout",
			Detect:    importAnchor,
			Insertion: "\nimport { Toaster } from \"@/components/ui/toaster\";",
			Strategy:  AfterAnchor,
			Fallback:  FallbackPrepend,
		},
		{
			Name:           "mount toaster after children",
			Target:         "layout",
			Detect:         Literal("{children}"),
			AlreadyApplied: toaster,
			Insertion:      "\n        <Toaster />",
			Strategy:       AfterAnchor,
		},
		{
			Name:           "mount toaster before body close",
			Target:         "layout",
			Detect:         Regexp(`(?m)^[ \t]*</body>`),
			AlreadyApplied: toaster,
			Insertion:      "        <Toaster />\n",
			Strategy:       BeforeAnchor,
		},
		{
			Name:      "title",
			Target:    "layout",
			Detect:    Literal(`title: "Create Next App"`),
			Insertion: `title: "Hackpack App"`,
			Strategy:  ReplaceAnchor,
		},
		{
			Name:      "html theme",
			Target:    "layout",
			Detect:    Literal(`<html lang="en">`),
			Insertion: `<html lang="en" data-theme="corporate">`,
			Strategy:  ReplaceAnchor,
		},
	}
}

func TestApply_ImportTieBreak(t *testing.T) {
	text := "import a from \"a\";\nimport b from \"b\";\nimport c from \"c\";\n\nconst x = 1;\n"
	edit := Edit{
		Name:      "import d",
		Target:    "layout",
		Detect:    importAnchor,
		Insertion: "\nimport d from \"d\";",
		Strategy:  AfterAnchor,
	}

	got, outcomes := Apply(text, []Edit{edit})

	require.Len(t, outcomes, 1)
	assert.Equal(t, StatusApplied, outcomes[0].Status)
	assert.Equal(t, "import a from \"a\";\nimport b from \"b\";\nimport c from \"c\";\nimport d from \"d\";\n\nconst x = 1;\n", got)
}

func TestApply_Layouts(t *testing.T) {
	tests := []struct {
		name   string
		layout string
	}{
		{"typed", typedLayout},
		{"untyped", untypedLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, outcomes := Apply(tt.layout, layoutEdits())

			require.Len(t, outcomes, 5)
			assert.Equal(t, StatusApplied, outcomes[0].Status)
			assert.Equal(t, StatusApplied, outcomes[1].Status)
			// The second toaster edit shares the guard and is skipped.
			assert.Equal(t, StatusSkipped, outcomes[2].Status)
			assert.Equal(t, StatusApplied, outcomes[3].Status)
			assert.Equal(t, StatusApplied, outcomes[4].Status)

			assert.Contains(t, got, "import \"./globals.css\";\nimport { Toaster } from \"@/components/ui/toaster\";\n")
			assert.Contains(t, got, "{children}\n        <Toaster />\n      </body>")
			assert.Contains(t, got, `title: "Hackpack App"`)
			assert.NotContains(t, got, "Create Next App")
			assert.Equal(t, 1, strings.Count(got, "<Toaster />"))
		})
	}
}

func TestApply_Idempotent(t *testing.T) {
	for _, layout := range []string{typedLayout, untypedLayout} {
		once, _ := Apply(layout, layoutEdits())
		twice, outcomes := Apply(once, layoutEdits())

		assert.Equal(t, once, twice)
		for _, o := range outcomes {
			assert.False(t, o.Status.Changed(), "edit %q changed already patched text", o.Edit)
		}

		// Each edit on its own is idempotent too.
		for _, e := range layoutEdits() {
			single, _ := Apply(layout, []Edit{e})
			again, _ := Apply(single, []Edit{e})
			assert.Equal(t, single, again, "edit %q", e.Name)
		}
	}
}

func TestApply_GuardIsPerEdit(t *testing.T) {
	text := "import a from \"a\";\nimport { Toaster } from \"@/components/ui/toaster\";\n<body>\n{children}\n</body>\n"

	got, outcomes := Apply(text, layoutEdits()[:2])

	assert.Equal(t, StatusSkipped, outcomes[0].Status)
	assert.Equal(t, StatusApplied, outcomes[1].Status)
	assert.Contains(t, got, "{children}\n        <Toaster />")
}

func TestApply_BodyFallbackWhenChildrenMissing(t *testing.T) {
	text := "<html>\n  <body>\n    <main />\n  </body>\n</html>\n"

	got, outcomes := Apply(text, layoutEdits()[1:3])

	assert.Equal(t, StatusMissing, outcomes[0].Status)
	assert.Equal(t, StatusApplied, outcomes[1].Status)
	assert.Equal(t, "<html>\n  <body>\n    <main />\n        <Toaster />\n  </body>\n</html>\n", got)
}

func TestApply_MissingAnchorContinues(t *testing.T) {
	edits := []Edit{
		{Name: "absent", Target: "css", Detect: Literal("@layer nothing"), Insertion: "x", Strategy: AfterAnchor},
		{Name: "present", Target: "css", Detect: Literal("body {"), Insertion: "\n  margin: 0;", Strategy: AfterAnchor},
	}

	got, outcomes := Apply("body {\n}\n", edits)

	assert.Equal(t, StatusMissing, outcomes[0].Status)
	assert.Contains(t, outcomes[0].Detail, "not found")
	assert.Equal(t, StatusApplied, outcomes[1].Status)
	assert.Equal(t, "body {\n  margin: 0;\n}\n", got)
}

func TestApply_Fallbacks(t *testing.T) {
	tests := []struct {
		name   string
		edit   Edit
		text   string
		want   string
		status Status
	}{
		{
			name:   "prepend import when file has none",
			edit:   Edit{Name: "import", Target: "page", Detect: importAnchor, Insertion: "\nimport x from \"x\";", Fallback: FallbackPrepend, FallbackText: "import x from \"x\";"},
			text:   "export default 1;\n",
			want:   "import x from \"x\";\nexport default 1;\n",
			status: StatusFallback,
		},
		{
			name:   "append defaults to insertion",
			edit:   Edit{Name: "tail", Target: "css", Detect: Literal("@theme"), Insertion: "@plugin \"daisyui\";", Fallback: FallbackAppend},
			text:   "body {}",
			want:   "body {}\n@plugin \"daisyui\";\n",
			status: StatusFallback,
		},
		{
			name:   "append if missing without anchor",
			edit:   Edit{Name: "plugin", Target: "css", Insertion: "@plugin \"daisyui\";\n", Strategy: AppendIfMissing},
			text:   "@import \"tailwindcss\";\n",
			want:   "@import \"tailwindcss\";\n@plugin \"daisyui\";\n",
			status: StatusFallback,
		},
		{
			name:   "append if missing with anchor inserts after it",
			edit:   Edit{Name: "plugin", Target: "css", Detect: Literal("@import \"tailwindcss\";\n"), Insertion: "@plugin \"daisyui\";\n", Strategy: AppendIfMissing},
			text:   "@import \"tailwindcss\";\nbody {}\n",
			want:   "@import \"tailwindcss\";\n@plugin \"daisyui\";\nbody {}\n",
			status: StatusApplied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, outcomes := Apply(tt.text, []Edit{tt.edit})
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.status, outcomes[0].Status)

			again, _ := Apply(got, []Edit{tt.edit})
			assert.Equal(t, got, again)
		})
	}
}

func TestApply_Removal(t *testing.T) {
	css := "@import \"tailwindcss\";\n\n:root {\n  --background: #ffffff;\n}\n"
	edits := []Edit{
		{
			Name:     "drop v4 import",
			Target:   "stylesheet",
			Detect:   Literal("@import \"tailwindcss\";\n"),
			Strategy: ReplaceAnchor,
		},
		{
			Name:           "v3 directives",
			Target:         "stylesheet",
			Detect:         StartOfFile(),
			AlreadyApplied: Literal("@tailwind base;"),
			Insertion:      "@tailwind base;\n@tailwind components;\n@tailwind utilities;\n",
			Strategy:       BeforeAnchor,
		},
	}

	got, outcomes := Apply(css, edits)

	assert.Equal(t, StatusApplied, outcomes[0].Status)
	assert.Equal(t, StatusApplied, outcomes[1].Status)
	assert.Equal(t, "@tailwind base;\n@tailwind components;\n@tailwind utilities;\n\n:root {\n  --background: #ffffff;\n}\n", got)

	again, outcomes := Apply(got, edits)
	assert.Equal(t, got, again)
	assert.Equal(t, StatusSkipped, outcomes[0].Status)
	assert.Equal(t, StatusSkipped, outcomes[1].Status)
}

func TestApply_RejectsEditThatCannotSatisfyGuard(t *testing.T) {
	edit := Edit{
		Name:           "broken",
		Target:         "page",
		Detect:         Literal("a"),
		AlreadyApplied: Literal("zzz"),
		Insertion:      "b",
		Strategy:       AfterAnchor,
	}

	got, outcomes := Apply("a", []Edit{edit})

	assert.Equal(t, "a", got)
	assert.Equal(t, StatusRejected, outcomes[0].Status)
	assert.Contains(t, outcomes[0].String(), "rejected")
}

func TestEdit_Validate(t *testing.T) {
	tests := []struct {
		name    string
		edit    Edit
		wantErr string
	}{
		{"valid", Edit{Name: "n", Target: "t", Detect: Literal("x"), Insertion: "y"}, ""},
		{"missing name", Edit{Target: "t", Detect: Literal("x"), Insertion: "y"}, "name is required"},
		{"missing target", Edit{Name: "n", Detect: Literal("x"), Insertion: "y"}, "target is required"},
		{"missing detect", Edit{Name: "n", Target: "t", Insertion: "y"}, "detect pattern is required"},
		{"append needs no detect", Edit{Name: "n", Target: "t", Insertion: "y", Strategy: AppendIfMissing}, ""},
		{"no guard", Edit{Name: "n", Target: "t", Strategy: AppendIfMissing}, "guard"},
		{"removal with fallback", Edit{Name: "n", Target: "t", Detect: Literal("x"), Strategy: ReplaceAnchor, Fallback: FallbackAppend}, "removal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.edit.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
