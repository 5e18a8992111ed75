package telegram

import (
	"context"
	"strings"

	"bfv-tracker/internal/constants"
	"bfv-tracker/internal/report"
	"bfv-tracker/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

const maxMessageLength = 4096

const helpText = `Battlefield V player lookup

cx=<name>      player report (cx=0 uses your display name)
ban=<name>     ban history
server=<name>  server search

The same commands work as /cx, /ban and /server.`

// MessageSender is the subset of the bot API the handler needs.
type MessageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Searcher answers the three lookups.
type Searcher interface {
	PlayerReport(ctx context.Context, name string) (*report.Report, error)
	BanHistory(ctx context.Context, name string) (*report.Report, error)
	ServerSearch(ctx context.Context, name string) (*report.Report, error)
}

type Handler struct {
	Bot     MessageSender
	Service Searcher
	logger  zerolog.Logger
}

func NewHandler(bot MessageSender, svc Searcher, logger zerolog.Logger) *Handler {
	return &Handler{Bot: bot, Service: svc, logger: logger}
}

// HandleMessage answers a single chat message. Messages that are not
// commands are ignored.
func (h *Handler) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg == nil || msg.Chat == nil {
		return
	}

	cmd, arg := parseCommand(msg.Text)

	var query func(context.Context, string) (*report.Report, error)
	switch cmd {
	case cmdNone:
		return
	case cmdHelp:
		h.reply(msg, helpText)
		return
	case cmdPlayer:
		query = h.Service.PlayerReport
		if arg == constants.SelfMarker {
			arg = stripNameSuffix(displayName(msg.From))
		}
	case cmdBans:
		query = h.Service.BanHistory
		if arg == constants.SelfMarker {
			arg = stripNameSuffix(displayName(msg.From))
		}
	case cmdServers:
		query = h.Service.ServerSearch
	}

	logger := h.logger.With().Int64("chat_id", msg.Chat.ID).Str("arg", arg).Logger()
	logger.Info().Msg("handling command")

	r, err := query(ctx, arg)
	if err != nil {
		logger.Warn().Err(err).Msg("command failed")
		h.reply(msg, service.UserMessage(err))
		return
	}

	if h.reply(msg, report.PlainText(r)) {
		h.attach(msg, r)
	}
}

// reply sends text as plain messages, split to fit Telegram's limit. It
// reports whether every chunk was delivered.
func (h *Handler) reply(to *tgbotapi.Message, text string) bool {
	for _, chunk := range splitMessage(text, maxMessageLength) {
		m := tgbotapi.NewMessage(to.Chat.ID, chunk)
		m.ReplyToMessageID = to.MessageID
		if _, err := h.Bot.Send(m); err != nil {
			h.logger.Error().Err(err).Int64("chat_id", to.Chat.ID).Msg("failed to send message")
			return false
		}
	}
	return true
}

// attach sends the Markdown rendering as a file named after the report id,
// for clients that render Markdown tables.
func (h *Handler) attach(to *tgbotapi.Message, r *report.Report) {
	doc := tgbotapi.NewDocument(to.Chat.ID, tgbotapi.FileBytes{
		Name:  attachmentName(r),
		Bytes: []byte(report.Markdown(r)),
	})
	doc.ReplyToMessageID = to.MessageID
	if _, err := h.Bot.Send(doc); err != nil {
		h.logger.Error().Err(err).Int64("chat_id", to.Chat.ID).Str("report_id", r.ID).Msg("failed to send report file")
	}
}

func attachmentName(r *report.Report) string {
	if r.ID == "" {
		return "report.md"
	}
	return r.ID + ".md"
}

func displayName(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		name = u.UserName
	}
	return name
}
