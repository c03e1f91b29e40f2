package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/domain"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/infrastructure"
)

var (
	listOwner string
	listJSON  bool
)

func init() {
	listCmd.Flags().StringVar(&listOwner, "owner", "", "only show blocks locked by this player UUID")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print records in the snapshot format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List locked blocks",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	registry, err := openRegistry(dataFile)
	if err != nil {
		return err
	}

	protections := registry.All()
	if listOwner != "" {
		owner, err := domain.ParsePlayerID(listOwner)
		if err != nil {
			return fmt.Errorf("invalid owner %q: %w", listOwner, err)
		}
		protections = registry.ListOwnedBy(owner)
	}

	out := cmd.OutOrStdout()

	if listJSON {
		data, err := infrastructure.EncodeSnapshot(protections)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(protections) == 0 {
		fmt.Fprintln(out, "No locked blocks.")
		return nil
	}

	fmt.Fprintf(out, "%-40s %-16s %-8s %s\n", "LOCATION", "OWNER", "TRUSTED", "CREATED")
	for _, p := range protections {
		fmt.Fprintf(out, "%-40s %-16s %-8d %s\n",
			truncate(string(p.Key()), 40),
			truncate(p.OwnerName(), 16),
			p.TrustedCount(),
			p.CreatedAt().UTC().Format("2006-01-02 15:04:05"),
		)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
