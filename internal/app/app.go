package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/Tleuberdina/bot-project/internal/config"
	"github.com/Tleuberdina/bot-project/internal/export"
	"github.com/Tleuberdina/bot-project/internal/locales"
	"github.com/Tleuberdina/bot-project/internal/seed"
	"github.com/Tleuberdina/bot-project/internal/store"
	"github.com/Tleuberdina/bot-project/internal/telegram"
)

// updatesPerSecond caps how fast updates are dispatched to handlers.
const updatesPerSecond = 20

type App struct {
	cfg     config.Config
	log     *zap.Logger
	bot     *tgbotapi.BotAPI
	httpSrv *http.Server
	limiter ratelimit.Limiter
	repo    store.Repo
	router  *telegram.Router
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	if cfg.BotToken == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN is required")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{
		cfg:     cfg,
		log:     log,
		bot:     bot,
		httpSrv: srv,
		limiter: ratelimit.New(updatesPerSecond),
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting process-bot",
		zap.String("bot", a.bot.Self.UserName),
		zap.String("db", a.cfg.DBDriver),
		zap.String("http", a.cfg.HTTPAddr),
	)

	repo, err := store.Open(ctx, a.cfg)
	if err != nil {
		a.log.Error("open store failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("store ready", zap.String("driver", a.cfg.DBDriver))

	if a.cfg.SeedSampleData {
		if err := a.seedSample(ctx, repo); err != nil {
			_ = repo.Close()
			return err
		}
	}

	texts, err := locales.New()
	if err != nil {
		_ = repo.Close()
		return fmt.Errorf("load messages: %w", err)
	}

	exporter := export.New(repo, export.GoogleClientFactory(a.cfg.GoogleCredentialsFile), export.Options{
		SpreadsheetID: a.cfg.SpreadsheetID,
		SheetName:     a.cfg.SheetName,
		ShareWith:     a.cfg.ShareWith,
		Timeout:       a.cfg.ExportTimeout,
	}, a.log)

	a.router = telegram.NewRouter(a.bot, a.log, repo, exporter, texts)

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")
			a.bot.StopReceivingUpdates()

			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := a.httpSrv.Shutdown(shCtx)
			cancel()

			if err != nil {
				a.log.Warn("http server shutdown error", zap.Error(err))
			}
			if a.repo != nil {
				_ = a.repo.Close()
			}
			return nil

		case upd := <-updCh:
			a.dispatch(ctx, upd)
		}
	}
}

func (a *App) seedSample(ctx context.Context, repo store.Repo) error {
	ps, err := seed.Sample()
	if err != nil {
		return fmt.Errorf("load sample processes: %w", err)
	}
	n, err := seed.Apply(ctx, repo, ps)
	if err != nil {
		a.log.Error("seed sample processes failed", zap.Error(err))
		return err
	}
	a.log.Info("sample processes loaded", zap.Int("count", n))
	return nil
}

// dispatch handles one update. A panic in a handler is reported and only
// drops that update.
func (a *App) dispatch(ctx context.Context, upd tgbotapi.Update) {
	a.limiter.Take()

	defer func() {
		if r := recover(); r != nil {
			a.log.Error("panic in update handler",
				zap.Any("panic", r),
				zap.Int("updateID", upd.UpdateID),
				zap.ByteString("stack", debug.Stack()),
			)
			sentry.CurrentHub().Recover(r)
			sentry.Flush(2 * time.Second)
		}
	}()

	a.router.HandleUpdate(ctx, upd)
}
