package services

import (
	"fmt"
	"html"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"maintdesk/internal/models"
)

// TelegramService delivers optional pings to users who linked a chat id.
// A nil service is valid and skips everything, so dependents never need to
// branch on configuration.
type TelegramService struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramService(botToken string) (*TelegramService, error) {
	if botToken == "" {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	log.Printf("[tg] bot authorized as @%s", bot.Self.UserName)
	return &TelegramService{bot: bot}, nil
}

func (t *TelegramService) SendMessage(chatID int64, text string) error {
	if t == nil || t.bot == nil || chatID == 0 {
		return nil
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("[tg][send][err] chatID=%d: %v", chatID, err)
		return err
	}
	return nil
}

// NotifyTaskAssigned pings the assignee about a new or reassigned task.
func (t *TelegramService) NotifyTaskAssigned(chatID *int64, task *models.Task) {
	if t == nil || chatID == nil || task == nil {
		return
	}
	due := "—"
	if task.DueDate != nil {
		due = *task.DueDate
	}
	text := "📌 New task\n" +
		"• <b>" + html.EscapeString(task.Title) + "</b>\n" +
		"• Priority: <code>" + string(task.Priority) + "</code>\n" +
		"• Due: <code>" + due + "</code>"
	_ = t.SendMessage(*chatID, text)
}

// NotifyTaskDue pings the assignee alongside the reminder email.
func (t *TelegramService) NotifyTaskDue(chatID *int64, task *models.Task) {
	if t == nil || chatID == nil || task == nil {
		return
	}
	due := "—"
	if task.DueDate != nil {
		due = *task.DueDate
	}
	text := "⏰ Task due tomorrow\n" +
		"• <b>" + html.EscapeString(task.Title) + "</b>\n" +
		"• Due: <code>" + due + "</code>"
	_ = t.SendMessage(*chatID, text)
}
