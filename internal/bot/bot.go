package bot

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bitcoinrandomizer-ship-it/weight-tracker-bot/internal/charts"
	"github.com/bitcoinrandomizer-ship-it/weight-tracker-bot/internal/service"
)

// Bot routes Telegram commands to the tracker and formats the replies. It
// also implements service.MessageSender for the daily reminder dispatch.
type Bot struct {
	api     *tgbotapi.BotAPI
	tracker *service.WeightTracker
}

var _ service.MessageSender = (*Bot)(nil)

func NewBot(token string, tracker *service.WeightTracker) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:     api,
		tracker: tracker,
	}, nil
}

// Start runs the bot in long-polling mode.
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if err := b.handleUpdate(update); err != nil {
			log.Printf("error handling update: %v", err)
		}
	}

	return nil
}

// HandleWebhook processes a single incoming webhook update.
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return err
	}

	return b.handleUpdate(update)
}

// Send delivers a plain message to a user; used by the reminder dispatch.
func (b *Bot) Send(userID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(userID, text))
	return err
}

func (b *Bot) handleUpdate(update tgbotapi.Update) error {
	if update.Message == nil {
		return nil
	}

	if update.Message.IsCommand() {
		return b.handleCommand(update.Message)
	}

	b.reply(update.Message.Chat.ID, "Usa /peso per registrare il tuo peso, oppure /help per l'elenco dei comandi.")
	return nil
}

func (b *Bot) handleCommand(message *tgbotapi.Message) error {
	switch message.Command() {
	case "start", "help":
		b.handleStart(message)
	case "peso":
		b.handlePeso(message)
	case "media":
		b.handleMedia(message)
	case "storico":
		b.handleStorico(message)
	case "notifica":
		b.handleNotifica(message)
	}

	return nil
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	b.replyMarkdown(message.Chat.ID, formatWelcome(message.From.FirstName))
}

func (b *Bot) handlePeso(message *tgbotapi.Message) {
	args := strings.Fields(message.CommandArguments())
	if len(args) == 0 {
		b.replyMarkdown(message.Chat.ID, "❌ Per favore specifica il tuo peso.\nEsempio: `/peso 75.5`")
		return
	}

	res, err := b.tracker.RecordWeight(context.Background(), message.From.ID, displayName(message.From), args[0], time.Now())
	switch {
	case errors.Is(err, service.ErrInvalidFormat):
		b.replyMarkdown(message.Chat.ID, "❌ Formato peso non valido. Usa un numero.\nEsempio: `/peso 75.5`")
		return
	case errors.Is(err, service.ErrOutOfRange):
		b.reply(message.Chat.ID, "❌ Il peso deve essere compreso tra 20 e 300 kg.")
		return
	case err != nil:
		log.Printf("failed to record weight for user %d: %v", message.From.ID, err)
		b.reply(message.Chat.ID, "❌ Si è verificato un errore nel salvare il peso. Riprova più tardi.")
		return
	}

	b.replyMarkdown(message.Chat.ID, formatRecordReply(res))
}

func (b *Bot) handleMedia(message *tgbotapi.Message) {
	report, err := b.tracker.WeeklyAverage(context.Background(), message.From.ID, time.Now())
	if err != nil {
		log.Printf("failed to compute weekly average for user %d: %v", message.From.ID, err)
		b.reply(message.Chat.ID, "❌ Si è verificato un errore nel calcolare la media. Riprova più tardi.")
		return
	}

	b.replyMarkdown(message.Chat.ID, formatWeeklyReport(report))
}

func (b *Bot) handleStorico(message *tgbotapi.Message) {
	report, err := b.tracker.RecentHistory(context.Background(), message.From.ID)
	if err != nil {
		log.Printf("failed to get history for user %d: %v", message.From.ID, err)
		b.reply(message.Chat.ID, "❌ Si è verificato un errore nel recuperare lo storico. Riprova più tardi.")
		return
	}

	b.replyMarkdown(message.Chat.ID, formatHistoryReport(report))

	// The trend chart is best effort: a rendering failure never blocks the
	// textual reply.
	png, err := charts.GenerateWeightChart(report.Entries)
	if err != nil {
		log.Printf("failed to render chart for user %d: %v", message.From.ID, err)
		return
	}
	if png != nil {
		photo := tgbotapi.NewPhoto(message.Chat.ID, tgbotapi.FileBytes{Name: "storico.png", Bytes: png})
		if _, err := b.api.Send(photo); err != nil {
			log.Printf("failed to send chart to user %d: %v", message.From.ID, err)
		}
	}
}

func (b *Bot) handleNotifica(message *tgbotapi.Message) {
	args := strings.Fields(message.CommandArguments())
	arg := ""
	if len(args) > 0 {
		arg = strings.ToLower(args[0])
	}
	if arg != "on" && arg != "off" {
		b.replyMarkdown(message.Chat.ID, "❌ Usa: `/notifica on` oppure `/notifica off`")
		return
	}

	res, err := b.tracker.SetSubscription(context.Background(), message.From.ID, displayName(message.From), arg == "on")
	if err != nil {
		log.Printf("failed to toggle subscription for user %d: %v", message.From.ID, err)
		b.reply(message.Chat.ID, "❌ Si è verificato un errore. Riprova più tardi.")
		return
	}

	if res.Active {
		b.reply(message.Chat.ID, "🔔 Notifiche attivate!")
	} else {
		b.reply(message.Chat.ID, "🔕 Notifiche disattivate!")
	}
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("failed to send reply: %v", err)
	}
}

func (b *Bot) replyMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("failed to send reply: %v", err)
	}
}

func displayName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return u.UserName
	}
	return u.FirstName
}
