package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info WORLD DIMENSION X Y Z",
	Short: "Show the protection at a position",
	Args:  cobra.ExactArgs(5),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	location, err := parseLocationArgs(args)
	if err != nil {
		return err
	}

	registry, err := openRegistry(dataFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	p, ok := registry.Get(location)
	if !ok {
		fmt.Fprintf(out, "%s is not locked.\n", location)
		return nil
	}

	flags := p.Flags()
	fmt.Fprintf(out, "Location:  %s (dimension %d)\n", location, location.Dimension)
	fmt.Fprintf(out, "Owner:     %s (%s)\n", p.OwnerName(), p.Owner())
	fmt.Fprintf(out, "Created:   %s\n", p.CreatedAt().UTC().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Redstone:  %t\n", flags.AllowRedstone)
	fmt.Fprintf(out, "Hoppers:   %t\n", flags.AllowHoppers)
	fmt.Fprintf(out, "Trusted:   %d\n", p.TrustedCount())
	for _, id := range p.Trusted() {
		fmt.Fprintf(out, "  - %s\n", id)
	}
	return nil
}
