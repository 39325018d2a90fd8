package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Tleuberdina/bot-project/internal/domain"
	"github.com/Tleuberdina/bot-project/internal/locales"
)

const (
	reportTimeLayout   = "02.01.2006 15:04"
	deadlineTimeLayout = "15:04"
)

// mainMenuKeyboard is the reply keyboard shown after registration.
func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/my"),
			tgbotapi.NewKeyboardButton("/check"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/export"),
			tgbotapi.NewKeyboardButton("/help"),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func renderProcesses(texts *locales.Catalog, ps []domain.Process) string {
	items := make([]string, 0, len(ps))
	for _, p := range ps {
		items = append(items, texts.Format(locales.MsgProcessItem, map[string]interface{}{
			"Name":      p.Name,
			"Frequency": p.Frequency,
			"Deadline":  p.DeadlineTime,
			"Reminder1": p.Reminder1,
			"Reminder2": p.Reminder2,
		}))
	}
	return texts.Text(locales.MsgProcessesHeader) + "\n\n" + strings.Join(items, "\n\n")
}

func renderReport(texts *locales.Catalog, rep domain.Report) string {
	var b strings.Builder
	b.WriteString(texts.Format(locales.MsgRemindersHeader, map[string]interface{}{
		"At": rep.At.Format(reportTimeLayout),
	}))
	b.WriteString("\n\n")

	for _, f := range rep.Firing {
		b.WriteString("🔔 " + f.Process.Name + ":\n")
		for _, rem := range f.Reminders {
			id := locales.MsgReminderFirst
			if rem.Ordinal == 2 {
				id = locales.MsgReminderSecond
			}
			b.WriteString("  • " + texts.Format(id, map[string]interface{}{"Hours": rem.Hours}) + "\n")
		}
		b.WriteString("  " + texts.Format(locales.MsgReminderDeadline, map[string]interface{}{
			"Deadline": f.Deadline.Format(deadlineTimeLayout),
		}) + "\n\n")
	}
	if rep.Empty() {
		b.WriteString(texts.Text(locales.MsgNoActiveReminders) + "\n\n")
	}
	for _, e := range rep.Failed {
		b.WriteString(texts.Format(locales.MsgReminderRowBroken, map[string]interface{}{"Name": e.Process.Name}) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
