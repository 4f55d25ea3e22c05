package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// refreshCmd represents the refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh [portfolio_id]",
	Short: "대시보드 재계산",
	Long: `포트폴리오 대시보드를 다시 계산하여 저장하고 캐시를 갱신합니다.

Example:
  go run ./cmd/ezana refresh 6f1c2a4e-0b7d-4d7e-9f57-3c2e8a1b9d10
  go run ./cmd/ezana refresh --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRefresh,
}

var (
	refreshAll bool
)

func init() {
	rootCmd.AddCommand(refreshCmd)

	refreshCmd.Flags().BoolVar(&refreshAll, "all", false, "모든 포트폴리오 재계산")
}

func runRefresh(cmd *cobra.Command, args []string) error {
	if refreshAll == (len(args) == 1) {
		return errors.New("specify either a portfolio id or --all")
	}

	d, err := newDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.Close()

	ctx := cmd.Context()

	if refreshAll {
		result, err := d.service.RefreshAll(ctx)
		if result != nil {
			fmt.Printf("📊 Refreshed %d/%d portfolios in %s (run %s)\n",
				result.Refreshed, result.Total, result.Duration, result.RunID)
		}
		if err != nil {
			return fmt.Errorf("refresh all: %w", err)
		}
		fmt.Println("✅ Done")
		return nil
	}

	summary, err := d.service.Refresh(ctx, args[0])
	if err != nil {
		return fmt.Errorf("refresh %s: %w", args[0], err)
	}

	printSummary(summary)
	return nil
}
