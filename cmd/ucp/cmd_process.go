package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"ucp/internal/session"
)

var processFlags struct {
	output     string
	autonomous bool
}

var processCmd = &cobra.Command{
	Use:   "process [file...]",
	Short: "Run text through the full scoring pipeline",
	Long: `Process text through bias scoring, compression, problem detection, and
solution generation. Reads stdin when no files are given (or "-" is).

Detected problems get solutions generated from the pattern store; the
solutions are fed back into the store as new patterns unless
--autonomous=false.`,
	RunE: runProcess,
}

func init() {
	f := processCmd.Flags()
	f.StringVarP(&processFlags.output, "output", "o", "", "Write JSON results to this file instead of stdout")
	f.BoolVar(&processFlags.autonomous, "autonomous", true, "Generate solutions and learn from them")
}

// fileResult pairs one input with its pipeline result.
type fileResult struct {
	File   string          `json:"file"`
	Result *session.Result `json:"result"`
}

func runProcess(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}
	sys := session.NewSystem(lib)

	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		text, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		res, err := sys.Process(string(text), processFlags.autonomous)
		if err != nil {
			return err
		}
		return writeJSON(cmd, res)
	}

	// Files are read concurrently; the pipeline itself runs one input at a
	// time because the system state (detector history, pattern store) is
	// shared across all of them.
	results := make([]fileResult, len(args))
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(cmd.Context())
	for i, path := range args {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			mu.Lock()
			defer mu.Unlock()
			res, err := sys.Process(string(data), processFlags.autonomous)
			if err != nil {
				return fmt.Errorf("process %s: %w", path, err)
			}
			results[i] = fileResult{File: path, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return writeJSON(cmd, results)
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	data = append(data, '\n')

	if processFlags.output != "" {
		if err := os.WriteFile(processFlags.output, data, 0600); err != nil {
			return fmt.Errorf("write %s: %w", processFlags.output, err)
		}
		return nil
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
