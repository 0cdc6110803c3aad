package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlgoFoe/hackpack/internal/commands"
	"github.com/AlgoFoe/hackpack/internal/output"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.NewCmd())
	rootCmd.AddCommand(commands.PatchCmd())
	rootCmd.AddCommand(commands.ListCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}
