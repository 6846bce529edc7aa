package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/preconfig/internal/cli"
)

// main is the entrypoint for the preconfig binary.
func main() {
	// Use a minimal logger until the configured one takes over.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

// run encapsulates the main application logic for easier testing and error
// handling.
func run(inR io.Reader, outW, errW io.Writer, args []string) error {
	cmd := cli.NewCommand(inR, outW, errW)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}
