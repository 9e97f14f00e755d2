package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/L1nMay/vulnassess/internal/config"
	"github.com/L1nMay/vulnassess/internal/model"
)

type TelegramNotifier struct {
	cfg    config.TelegramConfig
	client *http.Client
}

func NewTelegramNotifier(cfg config.TelegramConfig) *TelegramNotifier {
	return &TelegramNotifier{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// New returns a Telegram notifier when enabled and a no-op otherwise.
func New(cfg config.TelegramConfig) Notifier {
	if !cfg.Enabled {
		return Nop{}
	}
	return NewTelegramNotifier(cfg)
}

type telegramMessage struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

func formatAssessment(rec *model.AssessmentRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📡 New %s assessment: %s\n", rec.Mode, rec.Label)
	fmt.Fprintf(&b, "Targets: %d\n", rec.TotalTargets)
	if len(rec.Preview) > 0 {
		fmt.Fprintf(&b, "Sample: %s\n", strings.Join(rec.Preview, ", "))
	}
	if !rec.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "At: %s\n", rec.CreatedAt.Format(time.RFC3339))
	}
	return b.String()
}

func (t *TelegramNotifier) NotifyAssessment(ctx context.Context, rec *model.AssessmentRecord) error {
	if !t.cfg.Enabled || rec == nil || rec.TotalTargets < int64(t.cfg.MinTargets) {
		return nil
	}

	body, err := json.Marshal(telegramMessage{
		ChatID: t.cfg.ChatID,
		Text:   formatAssessment(rec),
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(t.cfg.APIBase, "/"), t.cfg.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("telegram http %d", resp.StatusCode)
	}
	return nil
}
