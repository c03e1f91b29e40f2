package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/application/usecases"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/domain"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/infrastructure"
)

// cliEnv holds the settings shared with the server process.
type cliEnv struct {
	DataFile string `env:"BLOCKLOCKER_DATA_FILE" envDefault:"data/protected_blocks.json"`
}

var dataFile string

var rootCmd = &cobra.Command{
	Use:   "blocklockerctl",
	Short: "Inspect and edit the BlockLocker protection file",
	Long: "Reads and edits the protection snapshot written by the blocklocker server. " +
		"Only edit the file while the server is stopped; a running server overwrites it on the next change.",
	SilenceUsage: true,
}

func init() {
	defaults, err := env.ParseAs[cliEnv]()
	if err != nil {
		defaults.DataFile = infrastructure.DefaultDataFile
	}
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", defaults.DataFile,
		"path to the protection snapshot (env BLOCKLOCKER_DATA_FILE)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openRegistry loads the snapshot at path into a registry that writes back to it.
// Unlike the server it never moves a broken file aside.
func openRegistry(path string) (*usecases.Registry, error) {
	protections, err := readSnapshot(path)
	if err != nil {
		return nil, err
	}

	repo := infrastructure.NewMemoryRepository()
	repo.Replace(protections)
	return usecases.NewRegistry(repo, infrastructure.NewFileStore(path)), nil
}

func readSnapshot(path string) ([]*domain.Protection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	protections, err := infrastructure.DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return protections, nil
}

// parseLocationArgs parses WORLD DIMENSION X Y Z.
func parseLocationArgs(args []string) (domain.Location, error) {
	nums := make([]int, 4)
	names := []string{"dimension", "x", "y", "z"}
	for i, raw := range args[1:5] {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Location{}, fmt.Errorf("invalid %s %q", names[i], raw)
		}
		nums[i] = n
	}
	return domain.NewLocation(args[0], nums[0], nums[1], nums[2], nums[3]), nil
}
