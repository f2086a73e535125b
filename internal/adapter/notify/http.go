package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/framer/internal/domain"
	"github.com/bnema/framer/internal/port"
)

const notificationTTL = 24 * time.Hour

type createNotificationRequest struct {
	Type    string     `json:"type"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
	Data    domain.Job `json:"data"`
	TTL     int        `json:"ttl,omitempty"`
}

// HTTPNotifier posts completion events to the notification service.
type HTTPNotifier struct {
	endpoint string
	client   *http.Client
}

func NewHTTPNotifier(baseURL string, client *http.Client) *HTTPNotifier {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPNotifier{
		endpoint: strings.TrimRight(baseURL, "/") + "/notifications",
		client:   client,
	}
}

func (n *HTTPNotifier) NotifyCompleted(ctx context.Context, job domain.Job) error {
	body, err := json.Marshal(createNotificationRequest{
		Type:    "success",
		Title:   "Frames ready",
		Message: fmt.Sprintf("Extracted %d frames into %s", job.FrameCount, job.OutputRef),
		Data:    job,
		TTL:     int(notificationTTL.Seconds()),
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification service returned %d", resp.StatusCode)
	}
	return nil
}

var _ port.Notifier = (*HTTPNotifier)(nil)
