package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/CRONANANI/ezana/backend/internal/api"
	"github.com/CRONANANI/ezana/backend/internal/api/handlers"
	"github.com/CRONANANI/ezana/backend/internal/scheduler"
	"github.com/CRONANANI/ezana/backend/internal/scheduler/jobs"
	"github.com/CRONANANI/ezana/backend/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `대시보드 REST API 서버를 시작합니다.

Endpoints:
  GET  /health                                - Health check
  GET  /api/portfolios/{id}/dashboard         - 대시보드 요약 (캐시 우선)
  POST /api/portfolios/{id}/dashboard/refresh - 대시보드 재계산 및 저장
  POST /api/score/health                      - 카드 JSON으로 건강 점수 계산
  GET  /api/score/level?scale=&score=         - 점수 → 리스크 레벨

Example:
  go run ./cmd/ezana api
  go run ./cmd/ezana api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (default: PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Ezana Dashboard API Server ===")

	d, err := newDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.Close()

	if apiPort != "" {
		d.cfg.Port = apiPort
	}

	// Rate limiting
	limiter := api.NewRateLimiter(d.cfg.RateLimit, redis.NewRateLimiter(d.redis), d.log)

	// Local buckets are pruned in-process
	sched := scheduler.New(d.log)
	if err := sched.AddJob(jobs.NewRateLimitCleanupJob(limiter, d.log)); err != nil {
		return fmt.Errorf("schedule rate limit cleanup: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	// Handlers & router
	dashboardHandler := handlers.NewDashboardHandler(d.service, d.log)
	scoreHandler := handlers.NewScoreHandler()
	router := api.NewRouter(dashboardHandler, scoreHandler, limiter, d.log)

	server := api.New(d.cfg, d.log, router)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", d.cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  GET  /api/portfolios/{id}/dashboard")
	fmt.Println("  POST /api/portfolios/{id}/dashboard/refresh")
	fmt.Println("  POST /api/score/health")
	fmt.Println("  GET  /api/score/level")
	fmt.Println("\nPress Ctrl+C to stop")

	// Ctrl+C drains in-flight requests before returning
	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("api server: %w", err)
	}

	d.log.Info("Server stopped")
	return nil
}
