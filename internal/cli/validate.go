package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/domain"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/infrastructure"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the protection snapshot against its schema",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(dataFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dataFile, err)
	}

	if err := infrastructure.ValidateSnapshot(data); err != nil {
		return fmt.Errorf("%s does not match the snapshot schema: %w", dataFile, err)
	}

	protections, err := infrastructure.DecodeSnapshot(data)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", dataFile, err)
	}

	out := cmd.OutOrStdout()

	seen := make(map[domain.LocationKey]int, len(protections))
	for _, p := range protections {
		seen[p.Key()]++
	}
	duplicates := 0
	for key, n := range seen {
		if n > 1 {
			duplicates++
			fmt.Fprintf(out, "WARN: %s appears %d times; the last record wins on load\n", key, n)
		}
	}

	fmt.Fprintf(out, "OK: %d protections in %s", len(seen), dataFile)
	if duplicates > 0 {
		fmt.Fprintf(out, " (%d duplicated locations)", duplicates)
	}
	fmt.Fprintln(out)
	return nil
}
