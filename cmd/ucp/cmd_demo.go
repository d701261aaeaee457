package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ucp/internal/pattern"
	"ucp/internal/session"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the canned pipeline demonstration",
	Long: `Runs the built-in demonstration against an in-memory pattern store:
bias-pattern stripping on loaded prose, problem detection with solution
generation on a process-complaint paragraph, and the status report.`,
	RunE: runDemo,
}

const biasedInput = `Obviously, this is an incredibly amazing breakthrough that will revolutionize
everything! As you can see, experts say this technology is game-changing and
will definitely transform the world. Don't you think this makes perfect sense?
We should obviously implement this solution to improve collaboration.`

const problemInput = `Our development team manually reviews every code change which creates
bottlenecks. Different teams use incompatible tools and there's no
coordination between projects. The deployment process frequently fails
and we have no automated testing.`

func runDemo(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	heading := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgGreen)

	sys := session.NewSystem(pattern.NewMemLibrary())

	heading.Fprintln(out, "Test 1: Bias stripping and compression")
	res1, err := sys.Process(biasedInput, false)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s %d\n", label.Sprint("Original length:"), len(biasedInput))
	fmt.Fprintf(out, "%s %.3f\n", label.Sprint("Compression ratio:"), res1.Processing.CompressionRatio)
	fmt.Fprintf(out, "%s %.3f\n", label.Sprint("Enhancement score:"), res1.Processing.EnhancementScore)
	fmt.Fprintf(out, "%s %s\n\n", label.Sprint("Compressed response:"), res1.CompressedResponse)

	heading.Fprintln(out, "Test 2: Problem detection and solution generation")
	res2, err := sys.Process(problemInput, true)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s %d\n", label.Sprint("Problems detected:"), res2.Analysis.ProblemsDetected)
	fmt.Fprintf(out, "%s %d\n", label.Sprint("Solutions generated:"), res2.Analysis.SolutionsGenerated)
	fmt.Fprintf(out, "%s %d\n", label.Sprint("Connection enhancement:"), res2.Analysis.TotalConnectionEnhancement)
	fmt.Fprintf(out, "%s %s\n", label.Sprint("Compressed response:"), res2.CompressedResponse)

	if len(res2.Solutions) > 0 {
		sol := res2.Solutions[0]
		desc := sol.ProblemDescription
		if len(desc) > 60 {
			desc = desc[:60] + "..."
		}
		fmt.Fprintln(out, "\nSample solution:")
		fmt.Fprintf(out, "  Problem:    %s\n", desc)
		fmt.Fprintf(out, "  Approach:   %s\n", sol.SolutionApproach)
		fmt.Fprintf(out, "  Confidence: %.2f\n", sol.Confidence)
	}
	fmt.Fprintln(out)

	heading.Fprintln(out, "Test 3: Status")
	fmt.Fprint(out, sys.Status().Describe())
	return nil
}
