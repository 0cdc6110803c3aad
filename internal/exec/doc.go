// Package exec runs the external tools hackpack drives: framework generators,
// package managers and setup CLIs.
//
// Stages depend on the Runner interface and receive an explicit working
// directory in every Command:
//
//	runner := exec.NewExecutor(&exec.Options{Spinner: true})
//	err := runner.RunCommand(ctx, exec.Command{
//	    Name:    "npm",
//	    Args:    []string{"install", "-D", "tailwindcss@3"},
//	    Dir:     projectDir,
//	    Message: "Installing Tailwind CSS",
//	})
//
// Commands with a Message run behind a bubbletea spinner and their output is
// attached to the returned error on failure. In verbose mode output is streamed
// with a prefix instead.
//
// Recorder is a Runner for tests that records commands without running them.
package exec
