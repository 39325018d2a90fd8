package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Tleuberdina/bot-project/internal/locales"
	"github.com/Tleuberdina/bot-project/internal/store"
)

// Commands understood by the bot.
const (
	cmdStart  = "start"
	cmdMy     = "my"
	cmdCheck  = "check"
	cmdExport = "export"
	cmdHelp   = "help"
	cmdCancel = "cancel"
)

// Sender is the part of the Telegram API the router uses.
// *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Exporter uploads all processes and returns the destination URL.
type Exporter interface {
	ExportAll(ctx context.Context) (string, error)
}

// Router wires Telegram updates to handlers and holds the registration
// dialogue state.
type Router struct {
	bot      Sender
	log      *zap.Logger
	repo     store.Repo
	exporter Exporter
	texts    *locales.Catalog
	sessions *sessions
}

// NewRouter creates a new Telegram router.
func NewRouter(bot Sender, log *zap.Logger, repo store.Repo, exporter Exporter, texts *locales.Catalog) *Router {
	return &Router{
		bot:      bot,
		log:      log,
		repo:     repo,
		exporter: exporter,
		texts:    texts,
		sessions: newSessions(),
	}
}

// command is a parsed "/name arg1 arg2" message.
type command struct {
	name string
	args []string
}

// parseCommand splits a slash command into name and whitespace-separated
// arguments. A "@botname" suffix on the name is dropped.
func parseCommand(text string) (command, bool) {
	if !strings.HasPrefix(text, "/") {
		return command{}, false
	}
	fields := strings.Fields(text)
	name := strings.TrimPrefix(fields[0], "/")
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	return command{name: strings.ToLower(name), args: fields[1:]}, true
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil || msg.From == nil {
		return
	}
	in := incoming{
		chatID:   msg.Chat.ID,
		userID:   msg.From.ID,
		username: msg.From.UserName,
		text:     strings.TrimSpace(msg.Text),
	}

	cmd, isCmd := parseCommand(in.text)
	if !isCmd {
		if r.sessions.get(in.userID) == StateAwaitingName {
			r.handleName(ctx, in)
		}
		// Free text outside the registration dialogue is ignored.
		return
	}

	switch cmd.name {
	case cmdStart:
		r.handleStart(ctx, in)
	case cmdCancel:
		r.handleCancel(in)
	case cmdMy:
		r.handleMy(ctx, in)
	case cmdCheck:
		r.handleCheck(ctx, in, cmd.args)
	case cmdExport:
		r.handleExport(ctx, in)
	case cmdHelp:
		r.handleHelp(in)
	default:
		r.log.Debug("unknown command", zap.String("command", cmd.name), zap.Int64("userID", in.userID))
	}
}

// SendMessage sends a plain text message to the given chat.
func (r *Router) SendMessage(chatID int64, text string) error {
	_, err := r.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
