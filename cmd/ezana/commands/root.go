package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	scoringFile string
	verbose     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ezana",
	Short: "Ezana - portfolio dashboard scoring service",
	Long: `Ezana Dashboard CLI

포트폴리오 대시보드 카드(가치, 손익, 배당, 리스크, 자산배분)와
포트폴리오 건강 점수를 계산하고 제공합니다.

Usage:
  go run ./cmd/ezana [command]

Examples:
  go run ./cmd/ezana api
  go run ./cmd/ezana scheduler start
  go run ./cmd/ezana refresh --all
  go run ./cmd/ezana score health --file cards.json
  go run ./cmd/ezana test-db`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&scoringFile, "scoring", "", "scoring profile YAML (default: SCORING_CONFIG or built-in)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
