package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ucp/internal/session"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pattern store and system status",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}
	sys := session.NewSystem(lib)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Store: %s\n", storePath())
	fmt.Fprint(out, sys.Status().Describe())
	return nil
}
