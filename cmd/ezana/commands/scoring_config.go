package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CRONANANI/ezana/backend/internal/scoringconfig"
)

// scoringConfigCmd represents the scoring-config command
var scoringConfigCmd = &cobra.Command{
	Use:   "scoring-config",
	Short: "스코어링 프로필 관리",
}

var scoringConfigValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "스코어링 프로필 YAML 검증",
	Long: `스코어링 프로필을 검증하고 해시와 경고를 출력합니다.
파일을 생략하면 내장 기본 프로필을 검증합니다.

Example:
  go run ./cmd/ezana scoring-config validate config/scoring.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScoringConfigValidate,
}

func init() {
	rootCmd.AddCommand(scoringConfigCmd)
	scoringConfigCmd.AddCommand(scoringConfigValidateCmd)
}

func runScoringConfigValidate(cmd *cobra.Command, args []string) error {
	path := scoringFile
	if len(args) == 1 {
		path = args[0]
	}

	cfg, err := scoringconfig.LoadOrDefault(path)
	if err != nil {
		return fmt.Errorf("❌ %w", err)
	}

	hash, err := scoringconfig.Hash(cfg)
	if err != nil {
		return fmt.Errorf("hash scoring config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✅ Profile %s v%s is valid\n", cfg.Meta.ProfileID, cfg.Meta.Version)
	fmt.Fprintf(out, "   Hash: %s\n", hash)

	for _, w := range scoringconfig.Warn(cfg) {
		fmt.Fprintf(out, "   ⚠️  %s: %s\n", w.Code, w.Message)
	}

	return nil
}
