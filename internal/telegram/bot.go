package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/Vovarama1992/medivoice/internal/catalog"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	btnMedicines = "💊 Medicines"
	btnReminders = "⏰ My reminders"
	btnHelp      = "❓ Help"
)

const helpText = `Send me a voice message or text, for example:
• "dosage of paracetamol"
• "side effects of ibuprofen"
• "can I take aspirin with ibuprofen"
• "remind me to take metformin every day at 9 am"`

func (app *BotApp) dispatchUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}

	switch {
	case msg.Voice != nil:
		app.handleVoice(ctx, msg)
	case msg.Audio != nil:
		app.handleAudio(ctx, msg)
	case strings.TrimSpace(msg.Text) != "":
		app.handleMessage(ctx, msg)
	}
}

func (app *BotApp) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	// =====================================================
	// КОМАНДЫ И КНОПКИ
	// =====================================================
	switch {
	case msg.IsCommand() && msg.Command() == "start":
		m := tgbotapi.NewMessage(chatID, "Hi! I'm MediVoice.\n\n"+helpText)
		m.ReplyMarkup = mainKeyboard()
		app.send(m)
		return

	case msg.IsCommand() && msg.Command() == "help", msg.Text == btnHelp:
		app.send(tgbotapi.NewMessage(chatID, helpText))
		return

	case msg.Text == btnMedicines:
		app.send(tgbotapi.NewMessage(chatID, medicineList(app.Catalog.List())))
		return

	case msg.Text == btnReminders:
		app.handleText(ctx, chatID, "what are my reminders")
		return
	}

	app.handleText(ctx, chatID, msg.Text)
}

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnMedicines),
			tgbotapi.NewKeyboardButton(btnReminders),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnHelp),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func medicineList(items []catalog.Medicine) string {
	if len(items) == 0 {
		return "The medicine catalog is empty."
	}
	var b strings.Builder
	b.WriteString("I know about:\n")
	for _, m := range items {
		fmt.Fprintf(&b, "• %s\n", m.Name)
	}
	return strings.TrimRight(b.String(), "\n")
}
