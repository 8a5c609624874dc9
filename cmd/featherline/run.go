package main

import (
	"fmt"
	"os"

	"github.com/go-feather/feather"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var maxDepth int
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Evaluate a script file and print its result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			ip := feather.New(feather.WithMaxNestingDepth(maxDepth))
			res, err := ip.Eval(string(src))
			if err != nil {
				return reportEvalError(cmd, args[0], err)
			}
			if res.String() != "" {
				fmt.Fprintln(cmd.OutOrStdout(), res.String())
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxDepth, "max-depth", 1000, "maximum nested evaluation depth")
	return cmd
}

func reportEvalError(cmd *cobra.Command, filename string, err error) error {
	switch e := err.(type) {
	case *feather.EvalError:
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", filename, e.Message)
		for _, frame := range e.Trace {
			fmt.Fprintf(cmd.ErrOrStderr(), "    while executing %q\n", frame.Command)
		}
	default:
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", filename, err)
	}
	return err
}
