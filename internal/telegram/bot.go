// Package telegram delivers finished report digests to subscribed chats.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"newsagent/internal/models"
)

const maxDigestArticles = 5

type Bot struct {
	api  *tgbotapi.BotAPI
	mu   sync.RWMutex
	subs map[int64]struct{}
}

func NewBot(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Bot{
		api:  api,
		subs: make(map[int64]struct{}),
	}, nil
}

// Start long-polls for commands until the context is cancelled.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	slog.Info("telegram bot started", "username", b.api.Self.UserName)

	for update := range updates {
		if update.Message == nil || !update.Message.IsCommand() {
			continue
		}

		chatID := update.Message.Chat.ID
		switch update.Message.Command() {
		case "start":
			b.subscribe(chatID)
			b.sendMessage(chatID, "Subscribed. You'll receive a digest whenever a news report is generated.\n\nCommands:\n/stop - unsubscribe\n/help - show this help")
		case "stop":
			b.unsubscribe(chatID)
			b.sendMessage(chatID, "Unsubscribed. Send /start to receive digests again.")
		case "help":
			b.sendMessage(chatID, "News agent delivery bot.\n\n/start - subscribe to report digests\n/stop - unsubscribe\n/help - this message")
		default:
			b.sendMessage(chatID, "Unknown command. Use /help for available commands.")
		}
	}
}

// BroadcastReport pushes a digest of the report to every subscribed chat.
func (b *Bot) BroadcastReport(r models.Report, insights models.Insights) {
	b.mu.RLock()
	chatIDs := make([]int64, 0, len(b.subs))
	for chatID := range b.subs {
		chatIDs = append(chatIDs, chatID)
	}
	b.mu.RUnlock()

	if len(chatIDs) == 0 {
		return
	}

	digest := formatDigest(r, insights)
	for _, chatID := range chatIDs {
		b.sendMessage(chatID, digest)
	}
}

func (b *Bot) subscribe(chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[chatID] = struct{}{}
}

func (b *Bot) unsubscribe(chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, chatID)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true

	if _, err := b.api.Send(msg); err != nil {
		slog.Warn("failed to send telegram message", "chat_id", chatID, "error", err)
	}
}

func formatDigest(r models.Report, insights models.Insights) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "News Report - %s\n", r.GeneratedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&sb, "Articles: %d", r.TotalCount)
	if r.Skipped > 0 {
		fmt.Fprintf(&sb, " (%d skipped)", r.Skipped)
	}
	sb.WriteString("\n\n")

	if insights.Overview != "" {
		sb.WriteString(insights.Overview + "\n\n")
	}

	for i, article := range r.Articles {
		if i >= maxDigestArticles {
			fmt.Fprintf(&sb, "...and %d more articles in the full report.\n", len(r.Articles)-maxDigestArticles)
			break
		}
		fmt.Fprintf(&sb, "%d. %s [%s]\n%s\n%s\n\n", i+1, article.Title, article.Analysis.Sentiment, article.Analysis.Summary, article.URL)
	}

	return sb.String()
}
