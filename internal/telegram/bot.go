package telegram

import (
	"context"
	"fmt"
	"sync"

	"bfv-tracker/internal/config"
	"bfv-tracker/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const pollTimeoutSeconds = 60

type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
	logger  zerolog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewBot connects to the Telegram API. It returns a nil Bot when no token is
// configured.
func NewBot(cfg *config.Config, svc *service.SearchService, logger zerolog.Logger) (*Bot, error) {
	if cfg.TelegramToken == "" {
		logger.Info().Msg("TELEGRAM_TOKEN not set, chat bot disabled")
		return nil, nil
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}

	logger = logger.With().Str("component", "telegram").Logger()
	logger.Info().Str("bot", botAPI.Self.UserName).Msg("telegram bot authorized")

	return &Bot{
		api:     botAPI,
		handler: NewHandler(botAPI, svc, logger),
		logger:  logger,
	}, nil
}

// Start polls for updates until Stop is called. Each message is handled on
// its own goroutine.
func (b *Bot) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel

	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeoutSeconds
	updates := b.api.GetUpdatesChan(u)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.logger.Info().Msg("bot started")
		for update := range updates {
			if update.Message == nil {
				continue
			}
			msg := update.Message
			b.wg.Add(1)
			go func() {
				defer b.wg.Done()
				b.handler.HandleMessage(ctx, msg)
			}()
		}
	}()
}

// Stop ends polling and waits for in-flight messages. A pending long poll is
// abandoned once ctx expires.
func (b *Bot) Stop(ctx context.Context) error {
	b.api.StopReceivingUpdates()
	if b.cancel != nil {
		b.cancel()
	}

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info().Msg("bot stopped")
		return nil
	case <-ctx.Done():
		b.logger.Warn().Msg("bot stop timed out")
		return ctx.Err()
	}
}

// Register ties the bot to the application lifecycle when it is enabled.
func Register(lc fx.Lifecycle, bot *Bot) {
	if bot == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			bot.Start()
			return nil
		},
		OnStop: bot.Stop,
	})
}

var Module = fx.Options(
	fx.Provide(NewBot),
	fx.Invoke(Register),
)
