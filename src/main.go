package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BielosX/wombat/pokedex/src/config"
	"github.com/BielosX/wombat/pokedex/src/export"
	"github.com/BielosX/wombat/pokedex/src/handler"
	"github.com/BielosX/wombat/pokedex/src/logging"
	"github.com/BielosX/wombat/pokedex/src/pokeapi"
	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"github.com/BielosX/wombat/pokedex/src/s3"
	"github.com/BielosX/wombat/pokedex/src/session"
	"github.com/BielosX/wombat/pokedex/src/tui"
	"github.com/BielosX/wombat/pokedex/src/web"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var sugar *zap.SugaredLogger

func syncLogger() {
	_ = sugar.Sync()
}

func main() {
	var configPath string
	var logFile string
	flag.StringVar(&configPath, "config", "", "optional YAML config file")
	flag.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	// The terminal owns stdout/stderr in TUI mode.
	if cfg.Mode == config.ModeTUI && logFile == "" {
		logFile = os.DevNull
	}
	sugar, err = logging.New(cfg.LogLevel, cfg.LogDevelopment, logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer syncLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := pokeapi.NewClient(sugar,
		pokeapi.WithBaseUrl(cfg.APIBaseURL),
		pokeapi.WithTimeout(cfg.FetchTimeout))

	switch cfg.Mode {
	case config.ModeFetch:
		lambda.StartWithOptions(handler.NewFetch(client, sugar).Handle, lambda.WithContext(ctx))
	case config.ModeTUI:
		err = tui.Run(ctx, pokedex.New(client, cfg.PokedexVariant(), sugar), sugar)
	default:
		err = runWeb(ctx, cfg, client)
	}
	if err != nil {
		sugar.Errorf("Pokédex stopped: %s", err)
		syncLogger()
		os.Exit(1)
	}
}

func runWeb(ctx context.Context, cfg config.Config, client *pokeapi.Client) error {
	variant := cfg.PokedexVariant()
	store := session.NewStore(func() *pokedex.Pokedex {
		return pokedex.New(client, variant, sugar)
	}, cfg.SessionTTL, sugar)

	publisher, err := newPublisher(ctx, cfg)
	if err != nil {
		return err
	}
	server, err := web.NewServer(web.Options{
		Addr:      cfg.Addr,
		BasePath:  cfg.BasePath,
		Store:     store,
		Publisher: publisher,
		Sugar:     sugar,
	})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx)
	})
	if cfg.SessionTTL > 0 {
		g.Go(func() error {
			return store.Run(ctx, cfg.SessionSweepInterval)
		})
	}
	return g.Wait()
}

// newPublisher returns nil when no bucket is configured; the web UI then
// answers S3 exports with 503.
func newPublisher(ctx context.Context, cfg config.Config) (*export.Publisher, error) {
	if cfg.BucketName == "" {
		return nil, nil
	}
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.AWSRegion != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.AWSRegion))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	sugar.Infof("Publishing exports to bucket %s", cfg.BucketName)
	return export.NewPublisher(s3.NewClient(awsCfg), cfg.BucketName, sugar), nil
}
