// Package hackpack holds build metadata for the hackpack CLI.
package hackpack

// Version is set at build time with
// -ldflags "-X github.com/AlgoFoe/hackpack.Version=v1.2.3".
var Version = "dev"
