package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/domain"
)

func init() {
	rootCmd.AddCommand(unprotectCmd)
}

var unprotectCmd = &cobra.Command{
	Use:   "unprotect WORLD DIMENSION X Y Z",
	Short: "Remove the protection at a position",
	Long:  "Removes the protection at a position regardless of owner. Run it only while the server is stopped.",
	Args:  cobra.ExactArgs(5),
	RunE:  runUnprotect,
}

func runUnprotect(cmd *cobra.Command, args []string) error {
	location, err := parseLocationArgs(args)
	if err != nil {
		return err
	}

	registry, err := openRegistry(dataFile)
	if err != nil {
		return err
	}

	removed, err := registry.Unprotect(location)
	if err != nil {
		if errors.Is(err, domain.ErrNotProtected) {
			return fmt.Errorf("%s is not locked", location)
		}
		return err
	}

	if err := registry.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed lock of %s at %s.\n", removed.OwnerName(), location)
	return nil
}
