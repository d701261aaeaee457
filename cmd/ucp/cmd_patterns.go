package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Inspect or seed the pattern store",
}

var patternsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored solution patterns",
	RunE:  runPatternsList,
}

var patternsBootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Seed the store with the canonical starter patterns",
	RunE:  runPatternsBootstrap,
}

func init() {
	patternsCmd.AddCommand(patternsListCmd)
	patternsCmd.AddCommand(patternsBootstrapCmd)
}

func runPatternsList(cmd *cobra.Command, _ []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	patterns := lib.Patterns()
	if len(patterns) == 0 {
		fmt.Fprintf(out, "No patterns in %s\n", storePath())
		fmt.Fprintln(out, "Run 'ucp patterns bootstrap' to seed the store.")
		return nil
	}

	for _, p := range patterns {
		fmt.Fprintf(out, "%s  %s/%s  confidence=%.2f  source=%s\n",
			p.ID, p.ProblemDomain, p.SolutionApproach, p.ConfidenceScore, p.Source)
		if len(p.ImplementationSteps) > 0 {
			fmt.Fprintf(out, "    steps: %s\n", strings.Join(p.ImplementationSteps, "; "))
		}
	}
	fmt.Fprintf(out, "%d patterns\n", len(patterns))
	return nil
}

func runPatternsBootstrap(cmd *cobra.Command, _ []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}

	seeded, err := lib.Bootstrap()
	if err != nil {
		return fmt.Errorf("bootstrap store: %w", err)
	}
	out := cmd.OutOrStdout()
	for _, p := range seeded {
		fmt.Fprintf(out, "seeded %s (%s/%s)\n", p.ID, p.ProblemDomain, p.SolutionApproach)
	}
	fmt.Fprintf(out, "store now holds %d patterns\n", lib.Len())
	return nil
}
