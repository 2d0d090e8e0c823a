package report

import (
	"fmt"

	"go-posthunt-automation/internal/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Reporter posts run results to Telegram. A nil *Reporter is a no-op, so the
// pipeline runs fine without a configured bot.
type Reporter struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// New returns nil (and no error) when the bot is not configured.
func New(token string, chatID int64) (*Reporter, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Reporter{api: api, chatID: chatID}, nil
}

func (r *Reporter) SendRecord(rec store.Record) error {
	if r == nil {
		return nil
	}

	role := rec.RoleTitle
	if role == "" {
		role = "N/A"
	}
	loc := rec.Location
	if loc == "" {
		loc = "N/A"
	}

	text := fmt.Sprintf(
		"🎯 <b>%s</b>\n"+
			"👤 %s\n"+
			"📍 %s\n"+
			"🛠 %s\n"+
			"✉️ %s\n"+
			"🔗 <a href=\"%s\">View Post</a>",
		role,
		rec.PosterName,
		loc,
		rec.Skills,
		rec.Contact,
		rec.PostURL,
	)
	return r.send(text)
}

func (r *Reporter) SendStatus(message string) error {
	if r == nil {
		return nil
	}
	return r.send("ℹ️ " + message)
}

func (r *Reporter) send(text string) error {
	msg := tgbotapi.NewMessage(r.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/links
	_, err := r.api.Send(msg)
	return err
}
