package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/CRONANANI/ezana/backend/internal/contracts"
	"github.com/CRONANANI/ezana/backend/internal/scoring"
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "점수 계산 (DB 불필요)",
	Long: `대시보드 카드 JSON으로 건강 점수를 계산하거나 점수를 리스크 레벨로 변환합니다.

Subcommands:
  health  - 카드 JSON → 포트폴리오 건강 점수
  level   - 점수 → 리스크 레벨

Example:
  go run ./cmd/ezana score health --file cards.json
  cat cards.json | go run ./cmd/ezana score health
  go run ./cmd/ezana score level 6.4
  go run ./cmd/ezana score level --scale diversification 72`,
}

var (
	scoreHealthCmd = &cobra.Command{
		Use:   "health",
		Short: "건강 점수 계산",
		RunE:  runScoreHealth,
	}

	scoreLevelCmd = &cobra.Command{
		Use:   "level [score]",
		Short: "점수 → 리스크 레벨",
		Args:  cobra.ExactArgs(1),
		RunE:  runScoreLevel,
	}

	scoreFile  string
	scoreScale string
)

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.AddCommand(scoreHealthCmd)
	scoreCmd.AddCommand(scoreLevelCmd)

	scoreHealthCmd.Flags().StringVarP(&scoreFile, "file", "f", "", "카드 JSON 파일 (default: stdin)")
	scoreLevelCmd.Flags().StringVar(&scoreScale, "scale", string(scoring.ScaleRisk), "risk | diversification")
}

func runScoreHealth(cmd *cobra.Command, args []string) error {
	var r io.Reader = cmd.InOrStdin()
	if scoreFile != "" {
		f, err := os.Open(scoreFile)
		if err != nil {
			return fmt.Errorf("open cards: %w", err)
		}
		defer f.Close()
		r = f
	}

	var summary contracts.DashboardCardsSummary
	if err := json.NewDecoder(r).Decode(&summary); err != nil {
		return fmt.Errorf("decode cards: %w", err)
	}

	in := scoring.InputsFromSummary(&summary)
	if err := scoring.ValidateInputs(in); err != nil {
		return err
	}

	result := scoring.CalculateHealth(in)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Health Score: %.1f (%s)\n", result.Score, result.Status)

	names := make([]string, 0, len(result.Contributions))
	for name := range result.Contributions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "   %-16s %.1f\n", name, result.Contributions[name])
	}

	if summary.RiskScore != nil {
		fmt.Fprintf(out, "Risk Level: %s\n", scoring.RiskLevelFromScore(summary.RiskScore.Score))
	}
	if summary.AssetAllocation != nil {
		fmt.Fprintf(out, "Diversification Level: %s\n", scoring.DiversificationLevel(summary.AssetAllocation.DiversificationScore))
	}

	return nil
}

func runScoreLevel(cmd *cobra.Command, args []string) error {
	scale := scoring.Scale(scoreScale)
	if scale != scoring.ScaleRisk && scale != scoring.ScaleDiversification {
		return fmt.Errorf("unknown scale %q", scoreScale)
	}

	score, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("parse score: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", scoring.Level(scale, score))
	return nil
}

// printSummary prints a computed dashboard
func printSummary(s *contracts.DashboardCardsSummary) {
	fmt.Printf("\n📊 Portfolio %s (%s)\n", s.PortfolioID, s.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("   Health: %.1f (%s)\n", s.PortfolioHealthScore, s.HealthStatus)

	if v := s.PortfolioValue; v != nil {
		fmt.Printf("   Value: %.2f (cash %.2f, %d holdings, day %+.2f%%)\n",
			v.TotalValue, v.Cash, v.HoldingsCount, v.DayChangePercentage)
	}
	if p := s.TodaysPnl; p != nil {
		fmt.Printf("   Today's P&L: %+.2f (%+.2f%%)\n", p.TodayPnl, p.TodayPnlPercentage)
	}
	if d := s.MonthlyDividends; d != nil {
		fmt.Printf("   Dividends: %.2f this month, %.2f last month (%+.1f%%)\n",
			d.ThisMonth, d.LastMonth, d.ChangePercentage)
	}
	if r := s.RiskScore; r != nil {
		fmt.Printf("   Risk: %.1f (%s)\n", r.Score, r.Level)
	}
	if a := s.AssetAllocation; a != nil {
		fmt.Printf("   Diversification: %.1f (%s), %d rebalance recommendations\n",
			a.DiversificationScore, a.DiversificationLevel, len(a.Recommendations))
	}

	for _, alert := range s.Alerts {
		fmt.Printf("   ⚠️  [%s] %s\n", alert.Severity, alert.Message)
	}
	for _, insight := range s.Insights {
		fmt.Printf("   💡 %s: %s\n", insight.Title, insight.Message)
	}
}
