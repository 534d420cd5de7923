// filepath: internal/cli/import_catalog.go
package cli

import (
	"fmt"

	"mediatheque/internal/logging"
	"mediatheque/internal/repository"
	"mediatheque/internal/services"

	"github.com/spf13/cobra"
)

// importCatalogCmd syncs the client-facing catalog from the staff catalog.
// It is meant to be run from cron or by hand after bulk catalog changes.
var importCatalogCmd = &cobra.Command{
	Use:   "import-catalog",
	Short: "Sync the client catalog from the staff catalog",
	Long: `Copies every item of the staff catalog into the client-facing catalog,
creating missing rows and refreshing existing ones. Board games are synced
with borrowing disabled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := repository.NewRepository(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer repo.Close()

		if err := repo.EnsureSchemaBootstrapped(); err != nil {
			return fmt.Errorf("failed to bootstrap database: %w", err)
		}

		catalogService := services.NewCatalogService(repo)

		created, updated, err := catalogService.ImportStaffCatalog()
		if err != nil {
			return fmt.Errorf("catalog import failed: %w", err)
		}

		logging.Log.Infof("Catalog import finished: %d created, %d updated.", created, updated)
		fmt.Printf("Catalog import finished: %d created, %d updated.\n", created, updated)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(importCatalogCmd)
}
