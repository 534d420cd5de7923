// filepath: internal/cli/update_board_games.go
package cli

import (
	"fmt"

	"mediatheque/internal/logging"
	"mediatheque/internal/repository"
	"mediatheque/internal/services"

	"github.com/spf13/cobra"
)

// updateBoardGamesCmd disables borrowing on every board game. Board games
// are consulted on site only; this repairs rows imported or edited before
// that rule existed.
var updateBoardGamesCmd = &cobra.Command{
	Use:   "update-board-games",
	Short: "Disable borrowing on all board games",
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

		updated, err := catalogService.DisableBoardGames()
		if err != nil {
			return fmt.Errorf("board game update failed: %w", err)
		}

		logging.Log.Infof("Board game update finished: %d rows changed.", updated)
		fmt.Printf("Board game update finished: %d rows changed.\n", updated)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(updateBoardGamesCmd)
}
