package main

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"ucp/internal/session"
)

var loopFlags struct {
	iterations int
}

var loopCmd = &cobra.Command{
	Use:   "loop",
	Short: "Run bounded autonomous problem-solving cycles",
	Long: `Runs autonomous cycles over the pattern store: each cycle scans for
domain gaps, re-prioritizes accumulated problems, generates solutions for
the top ones, and feeds them back into the store. Stops at the iteration
cap or when a cycle detects nothing.`,
	RunE: runLoop,
}

func init() {
	loopCmd.Flags().IntVar(&loopFlags.iterations, "iterations", 3, "Maximum cycles to run")
}

func runLoop(cmd *cobra.Command, _ []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}
	sys := session.NewSystem(lib)

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Suffix = fmt.Sprintf(" running up to %d cycles...", loopFlags.iterations)
	s.Start()
	report, err := sys.Loop(cmd.Context(), loopFlags.iterations)
	s.Stop()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Cycles run:             %d\n", len(report.Iterations))
	fmt.Fprintf(out, "Problems solved:        %d\n", report.ProblemsSolved)
	fmt.Fprintf(out, "Solutions generated:    %d\n", report.SolutionsGenerated)
	fmt.Fprintf(out, "Connection enhancement: %d\n", report.TotalConnectionEnhancement)
	for _, it := range report.Iterations {
		fmt.Fprintf(out, "  cycle %d: detected=%d solved=%d enhancement=%d\n",
			it.Iteration, it.ProblemsDetected, it.SolutionsGenerated, it.ConnectionEnhancement)
	}
	return nil
}
