package telegram

import (
	"context"
	"errors"

	"github.com/getsentry/sentry-go"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Tleuberdina/bot-project/internal/domain"
	"github.com/Tleuberdina/bot-project/internal/locales"
	"github.com/Tleuberdina/bot-project/internal/store"
)

// incoming is the part of a message the handlers need.
type incoming struct {
	chatID   int64
	userID   int64
	username string
	text     string
}

// --- Generic helpers ---

func (r *Router) sendText(chatID int64, text string) {
	if err := r.SendMessage(chatID, text); err != nil {
		r.log.Warn("send failed", zap.Error(err), zap.Int64("chatID", chatID))
	}
}

func (r *Router) sendWithMenu(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = mainMenuKeyboard()
	if _, err := r.bot.Send(msg); err != nil {
		r.log.Warn("send failed", zap.Error(err), zap.Int64("chatID", chatID))
	}
}

// requireUser loads the sender's registration. On a miss it answers with the
// register-first hint; on a storage error with the generic error text.
func (r *Router) requireUser(ctx context.Context, in incoming) (*domain.User, bool) {
	u, err := r.repo.GetUser(ctx, in.userID)
	if err == nil {
		return u, true
	}
	if errors.Is(err, store.ErrNotFound) {
		r.sendText(in.chatID, r.texts.Text(locales.MsgRegisterFirst))
		return nil, false
	}
	r.log.Error("GetUser failed", zap.Error(err), zap.Int64("userID", in.userID))
	r.sendText(in.chatID, r.texts.Text(locales.MsgErrorGeneral))
	return nil, false
}

// --- Registration dialogue ---

func (r *Router) handleStart(ctx context.Context, in incoming) {
	u, err := r.repo.GetUser(ctx, in.userID)
	switch {
	case err == nil:
		r.sessions.finish(in.userID)
		r.sendWithMenu(in.chatID, r.texts.Format(locales.MsgWelcomeBack, map[string]interface{}{"Name": u.Name}))
	case errors.Is(err, store.ErrNotFound):
		r.sessions.awaitName(in.userID)
		r.sendText(in.chatID, r.texts.Text(locales.MsgAskName))
	default:
		r.log.Error("GetUser failed", zap.Error(err), zap.Int64("userID", in.userID))
		r.sendText(in.chatID, r.texts.Text(locales.MsgErrorGeneral))
	}
}

func (r *Router) handleName(ctx context.Context, in incoming) {
	if in.text == "" {
		r.sendText(in.chatID, r.texts.Text(locales.MsgNameEmpty))
		return
	}
	u := &domain.User{TelegramID: in.userID, Name: in.text, Username: in.username}
	if err := r.repo.UpsertUser(ctx, u); err != nil {
		// Stay in the dialogue so the next message retries.
		r.log.Error("register user failed", zap.Error(err), zap.Int64("userID", in.userID))
		r.sendText(in.chatID, r.texts.Text(locales.MsgErrorGeneral))
		return
	}
	r.sessions.finish(in.userID)
	r.log.Info("user registered", zap.Int64("userID", in.userID), zap.String("name", u.Name))
	r.sendWithMenu(in.chatID, r.texts.Format(locales.MsgRegistered, map[string]interface{}{"Name": u.Name}))
}

func (r *Router) handleCancel(in incoming) {
	if !r.sessions.finish(in.userID) {
		return
	}
	r.sendWithMenu(in.chatID, r.texts.Text(locales.MsgRegistrationCancelled))
}

// --- Queries ---

func (r *Router) handleMy(ctx context.Context, in incoming) {
	u, ok := r.requireUser(ctx, in)
	if !ok {
		return
	}
	processes, err := r.repo.ListProcessesByResponsible(ctx, u.Name)
	if err != nil {
		r.log.Error("ListProcessesByResponsible failed", zap.Error(err), zap.String("responsible", u.Name))
		r.sendText(in.chatID, r.texts.Text(locales.MsgErrorGeneral))
		return
	}
	if len(processes) == 0 {
		r.sendText(in.chatID, r.texts.Text(locales.MsgNoProcesses))
		return
	}
	r.sendText(in.chatID, renderProcesses(r.texts, processes))
}

func (r *Router) handleCheck(ctx context.Context, in incoming, args []string) {
	u, ok := r.requireUser(ctx, in)
	if !ok {
		return
	}
	at, err := domain.ParseCheckInstant(args)
	if err != nil {
		if errors.Is(err, domain.ErrUsage) {
			r.sendText(in.chatID, r.texts.Text(locales.MsgCheckUsage))
		} else {
			r.sendText(in.chatID, r.texts.Text(locales.MsgCheckBadFormat))
		}
		return
	}

	processes, err := r.repo.ListProcessesByResponsible(ctx, u.Name)
	if err != nil {
		r.log.Error("ListProcessesByResponsible failed", zap.Error(err), zap.String("responsible", u.Name))
		r.sendText(in.chatID, r.texts.Text(locales.MsgErrorGeneral))
		return
	}
	if len(processes) == 0 {
		r.sendText(in.chatID, r.texts.Text(locales.MsgNoProcesses))
		return
	}

	rep := domain.Evaluate(at, processes)
	for _, f := range rep.Failed {
		r.log.Warn("malformed process row",
			zap.Error(f.Err),
			zap.Int64("processID", f.Process.ID),
			zap.String("process", f.Process.Name),
		)
	}
	r.sendText(in.chatID, renderReport(r.texts, rep))
}

func (r *Router) handleExport(ctx context.Context, in incoming) {
	if _, ok := r.requireUser(ctx, in); !ok {
		return
	}
	url, err := r.exporter.ExportAll(ctx)
	if err != nil {
		r.log.Error("export failed", zap.Error(err), zap.Int64("userID", in.userID))
		sentry.CaptureException(err)
		r.sendText(in.chatID, r.texts.Text(locales.MsgExportFailed))
		return
	}
	r.sendText(in.chatID, r.texts.Format(locales.MsgExportDone, map[string]interface{}{"URL": url}))
}

func (r *Router) handleHelp(in incoming) {
	r.sendText(in.chatID, r.texts.Text(locales.MsgHelp))
}
