package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/dnzbykshn/career-responder/internal/ai/gemini"
	"github.com/dnzbykshn/career-responder/internal/api"
	"github.com/dnzbykshn/career-responder/internal/auditlog"
	"github.com/dnzbykshn/career-responder/internal/conversation"
	"github.com/dnzbykshn/career-responder/internal/delivery"
	"github.com/dnzbykshn/career-responder/internal/drafting"
	"github.com/dnzbykshn/career-responder/internal/evaluation"
	"github.com/dnzbykshn/career-responder/internal/logger"
	"github.com/dnzbykshn/career-responder/internal/pipeline"
	"github.com/dnzbykshn/career-responder/internal/profile"
	"github.com/dnzbykshn/career-responder/internal/screening"
	"github.com/dnzbykshn/career-responder/internal/secrets"
	"github.com/dnzbykshn/career-responder/internal/storage"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultDBPath = "data/career-responder.db"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server that processes employer messages",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 0, "port to listen on (default 8000)")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}

func serve() {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	zlog.Info("starting the career-responder", zap.String("version", version))

	pipe, conversations, logs, err := buildPipeline(ctx, config, zlog)
	if err != nil {
		zlog.Fatal("building the pipeline", zap.Error(err))
	}

	handler := api.NewHandler(pipe, conversations, logs, zlog)
	router := api.NewRouter(handler)

	port := 8000
	if config != nil && config.Server != nil && config.Server.Port > 0 {
		port = config.Server.Port
	}

	zlog.Info("listening", zap.Int("port", port))

	if err := router.Run(fmt.Sprintf(":%d", port)); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

// buildPipeline wires the full processing pipeline from configuration:
// the Gemini generator shared by all three agents, the delivery clients,
// and the configured storage backend.
func buildPipeline(ctx context.Context, config *Config, zlog *zap.Logger) (*pipeline.Pipeline, conversation.Store, auditlog.Store, error) {
	if config == nil {
		config = &Config{}
	}
	if config.Gemini == nil {
		config.Gemini = &GeminiConfig{}
	}
	if config.Resend == nil {
		config.Resend = &ResendConfig{}
	}
	if config.Ntfy == nil {
		config.Ntfy = &NtfyConfig{}
	}
	if config.Evaluator == nil {
		config.Evaluator = &EvaluatorConfig{Threshold: 7, MaxRevisions: 3}
	}

	geminiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: config.Gemini.APIKey,
		File:  config.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w (set gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	resendKey, err := secrets.Load(secrets.Source{
		Name:  "resend api key",
		Value: config.Resend.APIKey,
		File:  config.Resend.APIKeyFile,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w (set resend.api-key-file or RESEND_API_KEY_FILE)", err)
	}

	genLogger := logger.WithCommonFields(zlog, "gemini", config.Gemini.Model)
	generator, err := gemini.NewGenerator(ctx, geminiKey, config.Gemini.Model, config.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("building gemini generator: %w", err)
	}

	maxLogLen := config.Gemini.MaxLogLength

	conversations, logs, err := buildStores(config.Storage)
	if err != nil {
		return nil, nil, nil, err
	}

	pipe := pipeline.New(pipeline.Deps{
		Screener:      screening.NewScreener(generator, zlog, maxLogLen),
		Drafter:       drafting.NewDrafter(generator, profile.Default(), zlog, maxLogLen),
		Evaluator:     evaluation.NewEvaluator(generator, config.Evaluator.Threshold, zlog, maxLogLen),
		Email:         delivery.NewEmailSender(resendKey, config.Resend.From, config.Resend.NotifyEmail, zlog),
		Notifier:      delivery.NewNotifier(config.Ntfy.Topic, zlog),
		Conversations: conversations,
		Logs:          logs,
		Logger:        zlog,
	}, config.Evaluator.MaxRevisions)

	return pipe, conversations, logs, nil
}

func buildStores(cfg *StorageConfig) (conversation.Store, auditlog.Store, error) {
	driver := "memory"
	path := defaultDBPath
	if cfg != nil {
		if cfg.Driver != "" {
			driver = strings.ToLower(strings.TrimSpace(cfg.Driver))
		}
		if cfg.Path != "" {
			path = cfg.Path
		}
	}

	switch driver {
	case "memory":
		return conversation.NewMemoryStore(), auditlog.NewMemoryStore(), nil
	case "sqlite":
		db, err := storage.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite storage: %w", err)
		}
		conversations, err := conversation.NewSQLiteStore(db)
		if err != nil {
			return nil, nil, fmt.Errorf("preparing conversation storage: %w", err)
		}
		logs, err := auditlog.NewSQLiteStore(db)
		if err != nil {
			return nil, nil, fmt.Errorf("preparing audit log storage: %w", err)
		}
		return conversations, logs, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver: %s", driver)
	}
}
