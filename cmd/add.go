package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new entry interactively",
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	e, saved, err := s.editor.Create(cmd.Context())
	if errors.Is(err, io.EOF) {
		return errors.New("input ended before the entry was saved; nothing was written")
	}
	if err != nil {
		return err
	}

	if saved {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved entry %q for %s.\n", e.Title, e.Username)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Entry discarded.")
	}
	return nil
}
