package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	if err := execute(context.Background(), &app{}, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "notesctl: %v\n", err)
		os.Exit(1)
	}
}

// execute runs one command and always releases the Mongo connection
// afterwards. A command error takes precedence over a disconnect error.
func execute(ctx context.Context, a *app, args []string, stdout, stderr io.Writer) error {
	rootCmd := NewRootCmd(version, a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if closeErr := a.close(closeCtx); closeErr != nil && err == nil {
		err = fmt.Errorf("disconnect: %w", closeErr)
	}
	return err
}
