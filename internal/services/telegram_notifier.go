package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier шлёт админам уведомления о новых вопросах экспертам.
// Без токена или chat_id уведомления молча выключены.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(botToken string, chatID int64) *TelegramNotifier {
	if botToken == "" || chatID == 0 {
		log.Printf("[tg] токен или chat_id не заданы, уведомления выключены")
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Printf("[tg] инициализация бота не удалась: %v", err)
		return nil
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}
}

// NotifyNewQuestion — уведомление не критично: сбой логируется и не
// мешает сохранению вопроса.
func (t *TelegramNotifier) NotifyNewQuestion(userName, text string) {
	if t == nil {
		return
	}
	msg := tgbotapi.NewMessage(t.chatID,
		fmt.Sprintf("Новый вопрос эксперту\nОт: %s\n\n%s", userName, text))
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("[tg][send] err=%v", err)
	}
}
