package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/weiawesome/momentroom/internal/api"
	"github.com/weiawesome/momentroom/internal/config"
	"github.com/weiawesome/momentroom/internal/media"
	"github.com/weiawesome/momentroom/internal/repository"
	"github.com/weiawesome/momentroom/internal/resource"
	"github.com/weiawesome/momentroom/internal/service"
	pkglog "github.com/weiawesome/momentroom/pkg/log"
)

const usage = `Usage: momentroom <command> [flags]

Commands:
  search   [--q text] [--condition room|host] [--order date_desc|date_asc]
  browse   [--metrics-addr host:port]   live search, one "field=value" or query per line
  room     <roomId>
  join     <roomId>
  moment create --room <roomId> --content <text> [--image ref]...
  moment get    <momentId>
  signup   --email <email> --password <pw> --confirm <pw> --nickname <name>
`

// app wires the services a command needs.
type app struct {
	rooms    service.RoomService
	accounts service.AccountService
	moments  service.MomentService
	store    resource.Store
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:   cfg.Log.Level,
		Pretty:  cfg.Log.Pretty,
		AppName: "momentroom",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = pkglog.WithLogger(ctx, pkglog.L())

	a, err := newApp(ctx, cfg)
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to initialize")
	}
	defer a.close()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		a.close()
		os.Exit(1)
	}
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	logger := pkglog.L()
	a := &app{}

	// Optional shared search cache
	if cfg.Cache.Redis.Enabled {
		store, err := resource.NewRedisStore(cfg.Cache.Redis, resource.StorePrefix(cfg.Cache.Prefix, cfg.API.BaseURL))
		if err != nil {
			return nil, err
		}
		a.store = store
		logger.Debug().Str("addr", cfg.Cache.Redis.Address).Msg("redis connected")
	}

	// Media sources
	local, err := media.NewLocalSource(cfg.Media.Local)
	if err != nil {
		return nil, err
	}
	var s3Source media.Source
	if cfg.Media.S3.Bucket != "" || cfg.Media.S3.Endpoint != "" {
		src, err := media.NewS3Source(ctx, cfg.Media.S3)
		if err != nil {
			return nil, err
		}
		s3Source = src
	}

	// Platform client and repositories
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, api.StaticToken(cfg.API.AccessToken))

	a.rooms = service.NewRoomService(repository.NewHTTPRoomRepository(client), a.store, cfg.Cache.TTL)
	a.accounts = service.NewAccountService(repository.NewHTTPUserRepository(client))
	a.moments = service.NewMomentService(repository.NewHTTPMomentRepository(client), media.NewResolver(local, s3Source))

	logger.Debug().Str("base_url", client.BaseURL()).Msg("client ready")
	return a, nil
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "search":
		return a.search(ctx, args)
	case "browse":
		return a.browse(ctx, args)
	case "room":
		return a.room(ctx, args)
	case "join":
		return a.join(ctx, args)
	case "moment":
		if len(args) == 0 {
			return fmt.Errorf("moment: missing subcommand\n\n%s", usage)
		}
		switch args[0] {
		case "create":
			return a.createMoment(ctx, args[1:])
		case "get":
			return a.getMoment(ctx, args[1:])
		}
		return fmt.Errorf("moment: unknown subcommand %q", args[0])
	case "signup":
		return a.signup(ctx, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
	}
}

func (a *app) close() {
	if a.store == nil {
		return
	}
	// Let pending cache writes land before disconnecting.
	a.rooms.SearchResource().Wait()
	a.store.Close()
	a.store = nil
}
