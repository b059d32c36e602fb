// Package admin implements the operator surface: user-submitted requests,
// usage statistics and best-effort operator alerts.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bezzego/healthy-bot-AI/internal/domain"
)

var ErrEmptyMessage = errors.New("request message must not be empty")

// Alerter pushes a short note to the operator chat. Failures are logged and
// swallowed so user flows never break on operator delivery.
type Alerter interface {
	Alert(ctx context.Context, text string)
}

// Service manages admin requests and stats.
type Service struct {
	requests domain.AdminRequestRepository
	alerter  Alerter
}

func NewService(requests domain.AdminRequestRepository, alerter Alerter) *Service {
	return &Service{requests: requests, alerter: alerter}
}

var requestTitles = map[domain.AdminRequestType]string{
	domain.RequestComplaint: "Complaint",
	domain.RequestContact:   "Contact request",
	domain.RequestRecipe:    "Recipe submission",
	domain.RequestResults:   "Results submission",
}

// Submit stores a user request and alerts the operator chat.
func (s *Service) Submit(ctx context.Context, request *domain.AdminRequest) error {
	if strings.TrimSpace(request.Message) == "" && request.Type != domain.RequestRecipe && request.Type != domain.RequestResults {
		return ErrEmptyMessage
	}
	if request.Title == "" {
		request.Title = requestTitles[request.Type]
	}
	request.Status = domain.RequestPending

	if err := s.requests.Create(ctx, request); err != nil {
		return fmt.Errorf("save admin request: %w", err)
	}
	if s.alerter != nil {
		s.alerter.Alert(ctx, fmt.Sprintf("New %s from user %d: %s", strings.ToLower(request.Title), request.UserID, summarize(request)))
	}
	return nil
}

// Pending lists unresolved requests for the operator view.
func (s *Service) Pending(ctx context.Context) ([]domain.AdminRequest, error) {
	requests, err := s.requests.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	return requests, nil
}

// Resolve moves a request to the given status with an optional response.
func (s *Service) Resolve(ctx context.Context, requestID int64, status domain.AdminRequestStatus, response string) error {
	if err := s.requests.UpdateStatus(ctx, requestID, status, response); err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	return nil
}

// Stats returns the anonymized usage aggregate for the trailing window.
func (s *Service) Stats(ctx context.Context, window time.Duration) (*domain.UsageStats, error) {
	stats, err := s.requests.Stats(ctx, time.Now().UTC().Add(-window))
	if err != nil {
		return nil, fmt.Errorf("load usage stats: %w", err)
	}
	return stats, nil
}

func summarize(request *domain.AdminRequest) string {
	msg := strings.TrimSpace(request.Message)
	if msg == "" {
		switch request.Type {
		case domain.RequestRecipe:
			msg = request.RecipeDescription
		case domain.RequestResults:
			msg = request.ResultsComment
		}
	}
	if len(msg) > 120 {
		msg = msg[:120] + "..."
	}
	if msg == "" {
		msg = "(no text)"
	}
	return msg
}

// FormatStats renders the operator stats message.
func FormatStats(stats *domain.UsageStats) string {
	var b strings.Builder
	b.WriteString("Usage statistics\n\n")
	fmt.Fprintf(&b, "Users: %d\n", stats.TotalUsers)
	fmt.Fprintf(&b, "Daily records: %d\n", stats.TotalRecords)
	fmt.Fprintf(&b, "Average morning energy: %.1f\n", stats.AvgMorningEnergy)
	fmt.Fprintf(&b, "Average calories logged: %.0f\n", stats.AvgCalories)
	fmt.Fprintf(&b, "Average protein logged: %.1f g\n", stats.AvgProtein)
	fmt.Fprintf(&b, "Average steps: %.0f", stats.AvgSteps)
	return b.String()
}

// ChatAlerter sends alerts through any text messenger to a fixed chat.
type ChatAlerter struct {
	chatID int64
	send   func(ctx context.Context, chatID int64, text string) error
}

func NewChatAlerter(chatID int64, send func(ctx context.Context, chatID int64, text string) error) *ChatAlerter {
	return &ChatAlerter{chatID: chatID, send: send}
}

// Alert delivers best-effort; a zero chat ID disables alerting.
func (a *ChatAlerter) Alert(ctx context.Context, text string) {
	if a.chatID == 0 {
		return
	}
	if err := a.send(ctx, a.chatID, text); err != nil {
		log.Printf("admin: alert delivery failed: %v", err)
	}
}
