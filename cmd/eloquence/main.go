// ==============================================================================================
// FILE: cmd/eloquence/main.go
// ==============================================================================================
// PACKAGE: main
// PURPOSE: A thin Cobra-based smoke-test harness for running a single
//          .eloq source file through interp.Run from a shell. Not a
//          product surface — see SPEC_FULL.md §1's Non-goal on REPL/CLI
//          wrappers; this exists the way a library ships a cmd/ smoke
//          test binary.
// ==============================================================================================

package main

import (
	"fmt"
	"os"
	gocontext "context"

	"github.com/fatih/color"
	juju "github.com/juju/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"eloq/interp"
)

var verbose bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "eloquence [file]",
		Short: "Run a .eloq script and print its result",
		Long:  "eloquence is a smoke-test harness for the interpreter: it lexes, parses, and evaluates a single source file and prints the result or diagnostic.",
		Args:  cobra.ExactArgs(1),
		RunE:  runFile,
	}
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log lex/parse/eval phase timings")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

func runFile(cmd *cobra.Command, args []string) error {
	filename := args[0]

	data, err := os.ReadFile(filename)
	if err != nil {
		return juju.Annotatef(err, "reading %s", filename)
	}

	logger, err := buildLogger()
	if err != nil {
		return juju.Annotate(err, "building logger")
	}
	defer logger.Sync()

	runner := interp.NewRunner(logger.Sugar())
	result, diagErr := runner.Run(gocontext.Background(), filename, string(data))
	if diagErr != nil {
		fmt.Fprintln(os.Stderr, color.RedString(diagErr.ShowError()))
		os.Exit(1)
		return nil
	}

	if result != nil {
		fmt.Println(color.GreenString(result.String()))
	}
	return nil
}

func buildLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
