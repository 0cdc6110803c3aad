package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	prevOut, prevErr := stdout, stderr
	SetOutput(&out, &errOut)
	t.Cleanup(func() {
		SetOutput(prevOut, prevErr)
		SetVerbose(false)
	})
	return &out, &errOut
}

func TestStyledMessages(t *testing.T) {
	tests := []struct {
		name   string
		print  func(string)
		emoji  string
		stderr bool
	}{
		{"success", Success, "🔥", false},
		{"error", Error, "❌", true},
		{"warn", Warn, "⚠️", true},
		{"info", Info, "ℹ️", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut := capture(t)
			tt.print("daisyUI installed")

			target := out
			if tt.stderr {
				target = errOut
			}
			assert.Contains(t, target.String(), tt.emoji)
			assert.Contains(t, target.String(), "daisyUI installed")
		})
	}
}

func TestStep(t *testing.T) {
	out, _ := capture(t)
	Step("cd myapp")
	assert.Contains(t, out.String(), "   cd myapp")
}

func TestVerbose(t *testing.T) {
	out, _ := capture(t)

	Verbose("hidden")
	assert.Empty(t, out.String())

	SetVerbose(true)
	assert.True(t, IsVerbose())
	Verbose("shown")
	assert.Contains(t, out.String(), "🔍 shown")
}
