// Package notify mirrors accepted contact requests to a chat.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"
)

// Contact is the data forwarded for one accepted request.
type Contact struct {
	Name    string
	Email   string
	Phone   string
	Message string
	Lang    string
}

// Notifier receives a copy of every delivered contact request.
type Notifier interface {
	NotifyContact(ctx context.Context, c Contact) error
}

const defaultTelegramAPI = "https://api.telegram.org"

// TelegramNotifier posts to the Telegram Bot API
type TelegramNotifier struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
}

// NewTelegramNotifier creates a notifier. It returns nil when the token or
// chat id is missing, which callers treat as "disabled".
func NewTelegramNotifier(botToken, chatID string) *TelegramNotifier {
	if botToken == "" || chatID == "" {
		return nil
	}
	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  defaultTelegramAPI,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithBaseURL points the notifier at another API host. Used by tests.
func (s *TelegramNotifier) WithBaseURL(baseURL string) *TelegramNotifier {
	s.baseURL = strings.TrimRight(baseURL, "/")
	return s
}

// telegramMessage represents a Telegram API message
type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// FormatContact renders the HTML message body sent to the chat.
func FormatContact(c Contact) string {
	return fmt.Sprintf(
		"🚗 <b>Новая заявка APEX DRIVE</b>\n\n"+
			"<b>Имя:</b> %s\n"+
			"<b>Email:</b> %s\n"+
			"<b>Телефон:</b> %s\n"+
			"<b>Язык:</b> %s\n"+
			"<b>Сообщение:</b>\n%s",
		html.EscapeString(c.Name),
		html.EscapeString(c.Email),
		html.EscapeString(c.Phone),
		html.EscapeString(c.Lang),
		html.EscapeString(c.Message),
	)
}

// NotifyContact sends c to the configured chat
func (s *TelegramNotifier) NotifyContact(ctx context.Context, c Contact) error {
	payload := telegramMessage{
		ChatID:    s.chatID,
		Text:      FormatContact(c),
		ParseMode: "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal telegram message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}

	return nil
}
