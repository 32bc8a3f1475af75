package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"log"
	"net/http"
	"sync"
	"time"

	"visionnaires-go/internal/model"
)

const (
	defaultAPIBase = "https://api.telegram.org"
	messageLimit   = 4096
)

// Sender posts lead alerts to a Telegram chat from a single worker so the
// bot stays under the API's per-chat rate limit.
type Sender struct {
	token    string
	chat     string
	threadID *int
	apiBase  string

	client       *http.Client
	queue        chan string
	minInterval  time.Duration
	lastSentTime time.Time
	done         chan struct{}
	closeOnce    sync.Once
}

func NewSender(token, chat string, threadID *int) *Sender {
	s := &Sender{
		token:       token,
		chat:        chat,
		threadID:    threadID,
		apiBase:     defaultAPIBase,
		client:      &http.Client{Timeout: 15 * time.Second},
		queue:       make(chan string, 100),
		minInterval: 1200 * time.Millisecond,
		done:        make(chan struct{}),
	}

	go s.worker()
	return s
}

// SendLead queues an alert. It drops the alert instead of blocking the
// request when the queue is full.
func (s *Sender) SendLead(lead model.Lead) {
	for _, part := range splitMessage(formatMessage(lead), messageLimit) {
		select {
		case s.queue <- part:
		default:
			log.Printf("[telegram] queue full, dropping lead alert for %s", lead.ProjectID)
			return
		}
	}
}

// Close stops accepting alerts and waits for queued ones to be sent.
func (s *Sender) Close() {
	s.closeOnce.Do(func() {
		close(s.queue)
	})
	<-s.done
}

func (s *Sender) worker() {
	defer close(s.done)
	for msg := range s.queue {
		s.sendWithRateLimit(msg)
	}
}

func (s *Sender) sendWithRateLimit(text string) {
	wait := time.Until(s.lastSentTime.Add(s.minInterval))
	if wait > 0 {
		time.Sleep(wait)
	}

	retryAfter, err := s.postMessage(text)
	if err != nil {
		if retryAfter > 0 {
			log.Printf("[telegram] rate limit hit, retrying after %s", retryAfter)
			time.Sleep(retryAfter)
			if _, retryErr := s.postMessage(text); retryErr != nil {
				log.Printf("[telegram] retry failed: %v", retryErr)
				return
			}
			s.lastSentTime = time.Now()
			return
		}

		log.Printf("[telegram] send error: %v", err)
		return
	}

	s.lastSentTime = time.Now()
}

func (s *Sender) postMessage(text string) (time.Duration, error) {
	payload := map[string]any{
		"chat_id":    s.chat,
		"text":       text,
		"parse_mode": "HTML",
	}
	if s.threadID != nil {
		payload["message_thread_id"] = *s.threadID
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.token), bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var parsed telegramResponse
	_ = json.NewDecoder(resp.Body).Decode(&parsed)

	if resp.StatusCode == http.StatusTooManyRequests && parsed.Parameters.RetryAfter > 0 {
		return time.Duration(parsed.Parameters.RetryAfter) * time.Second, fmt.Errorf("rate limited")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("telegram error: %d %s", resp.StatusCode, parsed.Description)
	}

	return 0, nil
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
	Parameters  struct {
		RetryAfter int `json:"retry_after"`
	} `json:"parameters"`
}

func formatMessage(lead model.Lead) string {
	project := lead.ProjectName
	if project == "" {
		project = lead.ProjectID
	}

	message := fmt.Sprintf("📥 <b>Teaser request</b>\n🏷 Project: %s\n✉️ Email: %s\n",
		html.EscapeString(project), html.EscapeString(lead.Email))
	if lead.ProjectName != "" {
		message += fmt.Sprintf("🔑 ID: %s\n", html.EscapeString(lead.ProjectID))
	}
	if !lead.CreatedAt.IsZero() {
		message += fmt.Sprintf("🕒 %s UTC", lead.CreatedAt.UTC().Format("2006-01-02 15:04"))
	}
	return message
}

func splitMessage(message string, limit int) []string {
	runes := []rune(message)
	if len(runes) <= limit {
		return []string{message}
	}

	parts := []string{}
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		parts = append(parts, string(runes[start:end]))
	}
	return parts
}
