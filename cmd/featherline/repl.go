package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-feather/feather"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive read-eval-print loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			ip := feather.New()
			return runREPL(ip, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runREPL reads one script per line (brace-continuation aware) and prints
// its result, using raw terminal mode only when stdin is an interactive
// terminal; otherwise it falls back to plain line buffering so piped
// input and redirected files still work.
func runREPL(ip *feather.Interp, in io.Reader, out io.Writer) error {
	f, isFile := in.(*os.File)
	if isFile && term.IsTerminal(int(f.Fd())) {
		return runRawREPL(ip, f, out)
	}
	return runPlainREPL(ip, in, out)
}

func runPlainREPL(ip *feather.Interp, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	var pending strings.Builder
	for scanner.Scan() {
		pending.WriteString(scanner.Text())
		pending.WriteByte('\n')
		if !bracesBalanced(pending.String()) {
			continue
		}
		src := pending.String()
		pending.Reset()
		evalAndPrint(ip, src, out)
	}
	return scanner.Err()
}

// runRawREPL enters raw mode and restores the previous terminal state
// straight away, then reads input a line at a time through runPlainREPL.
// It does no line editing, history or completion.
func runRawREPL(ip *feather.Interp, f *os.File, out io.Writer) error {
	oldState, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		return runPlainREPL(ip, f, out)
	}
	term.Restore(int(f.Fd()), oldState)
	return runPlainREPL(ip, f, out)
}

func evalAndPrint(ip *feather.Interp, src string, out io.Writer) {
	res, err := ip.Eval(src)
	if err != nil {
		fmt.Fprintln(out, "error:", err)
		return
	}
	if s := res.String(); s != "" {
		fmt.Fprintln(out, s)
	}
}

// bracesBalanced reports whether src has no unterminated {, [, or " spans,
// used to decide whether the REPL needs another physical line before
// evaluating.
func bracesBalanced(src string) bool {
	depth := 0
	inQuote := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\\' && i+1 < len(src):
			i++
		case c == '"':
			inQuote = !inQuote
		case !inQuote && (c == '{' || c == '['):
			depth++
		case !inQuote && (c == '}' || c == ']'):
			depth--
		}
	}
	return depth <= 0 && !inQuote
}
