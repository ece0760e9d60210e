package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/probatequiz/internal/advisor"
	"github.com/abhisek/probatequiz/internal/config"
	"github.com/abhisek/probatequiz/internal/llm"
	"github.com/abhisek/probatequiz/internal/quiz"
	"github.com/abhisek/probatequiz/internal/scoring"
	"github.com/abhisek/probatequiz/internal/server"
	"github.com/abhisek/probatequiz/internal/store"
)

// sweepInterval is how often the in-memory registry drops expired sessions.
const sweepInterval = time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assessment over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		if cfg.Logging.Level != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		var provider llm.Provider
		if settings := cfg.LLMSettings(); settings.Enabled() {
			provider, err = llm.NewProvider(ctx, settings, st.EventRepo())
			if err != nil {
				return fmt.Errorf("llm provider: %w", err)
			}
		}

		g, ctx := errgroup.WithContext(ctx)

		var registry server.Registry
		switch cfg.Server.Registry {
		case config.RegistryRedis:
			client := redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer client.Close()
			if err := client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
			}
			registry = server.NewRedisRegistry(client, cfg.Server.SessionTTL)
		default:
			mem := server.NewMemoryRegistry(cfg.Server.SessionTTL)
			g.Go(func() error { return sweep(ctx, mem) })
			registry = mem
		}

		catalog := quiz.Default()
		srv := server.New(server.Options{
			Catalog:        catalog,
			Engine:         scoring.New(catalog),
			Advisor:        advisor.New(catalog, provider),
			Registry:       registry,
			Recorder:       store.NewRecorder(st.AssessmentRepo()),
			HandoffTimeout: cfg.Server.HandoffTimeout,
			CORSOrigins:    cfg.Server.CORSOrigins,
		})

		log.Info().
			Str("registry", cfg.Server.Registry).
			Bool("llm", provider != nil).
			Msg("starting assessment API")
		g.Go(func() error { return srv.Run(ctx, cfg.Server.Addr) })
		return g.Wait()
	},
}

// sweep periodically drops expired sessions until ctx is done.
func sweep(ctx context.Context, r *server.MemoryRegistry) error {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			log.Debug().Int("live", r.Len()).Msg("session sweep")
		}
	}
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
