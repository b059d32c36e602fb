// Package telegram wires the chat transport: update routing, dialog state,
// keyboards and delivery for scheduled notifications.
package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bezzego/healthy-bot-AI/internal/admin"
	"github.com/bezzego/healthy-bot-AI/internal/checkin"
	"github.com/bezzego/healthy-bot-AI/internal/domain"
	"github.com/bezzego/healthy-bot-AI/internal/nutrition"
	"github.com/bezzego/healthy-bot-AI/internal/observability"
	"github.com/bezzego/healthy-bot-AI/internal/recognition"
	"github.com/bezzego/healthy-bot-AI/internal/report"
)

// Recognizer is the slice of the recognition client the transport needs.
type Recognizer interface {
	RecognizeText(ctx context.Context, description string) (*recognition.Meal, error)
	RecognizePhoto(ctx context.Context, jpegData []byte) (*recognition.Meal, error)
	RecognizeVoice(ctx context.Context, audio []byte, filename string) (*recognition.Meal, string, error)
}

// Bot routes incoming updates to the feature services.
type Bot struct {
	api         *tgbotapi.BotAPI
	users       domain.UserRepository
	results     domain.QuestionnaireRepository
	checkins    *checkin.Service
	meals       *nutrition.Service
	reports     *report.Service
	admins      *admin.Service
	recognizer  Recognizer
	alerter     admin.Alerter
	adminChatID int64

	files    *fileFetcher
	sessions *sessionStore
	locks    *userLock
}

func NewBot(api *tgbotapi.BotAPI, users domain.UserRepository, results domain.QuestionnaireRepository,
	checkins *checkin.Service, meals *nutrition.Service, reports *report.Service,
	admins *admin.Service, recognizer Recognizer, alerter admin.Alerter, adminChatID int64) *Bot {
	return &Bot{
		api:         api,
		users:       users,
		results:     results,
		checkins:    checkins,
		meals:       meals,
		reports:     reports,
		admins:      admins,
		recognizer:  recognizer,
		alerter:     alerter,
		adminChatID: adminChatID,
		files:       newFileFetcher(api),
		sessions:    newSessionStore(),
		locks:       newUserLock(),
	}
}

// Run consumes the long-polling update stream until the context ends.
func (b *Bot) Run(ctx context.Context) {
	updates := b.api.GetUpdatesChan(tgbotapi.UpdateConfig{Timeout: 30})
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go b.dispatch(ctx, update)
		}
	}
}

// dispatch serializes handling per chat and converts failures into a polite
// user message plus an operator alert.
func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	chatID := updateChatID(update)
	if chatID == 0 {
		return
	}
	unlock := b.locks.Lock(chatID)
	defer unlock()

	defer func() {
		if r := recover(); r != nil {
			observability.UpdatesHandled.WithLabelValues("panic").Inc()
			log.Printf("telegram: panic handling update for chat %d: %v", chatID, r)
			b.reportFailure(ctx, chatID, fmt.Errorf("panic: %v", r))
		}
	}()

	handleCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if err := b.handle(handleCtx, update); err != nil {
		observability.UpdatesHandled.WithLabelValues("error").Inc()
		log.Printf("telegram: chat %d: %v", chatID, err)
		b.reportFailure(handleCtx, chatID, err)
		return
	}
	observability.UpdatesHandled.WithLabelValues("ok").Inc()
}

func (b *Bot) handle(ctx context.Context, update tgbotapi.Update) error {
	switch {
	case update.CallbackQuery != nil:
		return b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		return b.handleMessage(ctx, update.Message)
	}
	return nil
}

func (b *Bot) reportFailure(ctx context.Context, chatID int64, err error) {
	b.sendText(chatID, "Something went wrong on our side. Please try again in a minute.")
	if b.alerter != nil {
		b.alerter.Alert(ctx, fmt.Sprintf("Handler failure for chat %d: %v", chatID, err))
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("telegram: send to chat %d failed: %v", chatID, err)
	}
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard any) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("telegram: send to chat %d failed: %v", chatID, err)
	}
}

func (b *Bot) isAdmin(chatID int64) bool {
	return b.adminChatID != 0 && chatID == b.adminChatID
}

func updateChatID(update tgbotapi.Update) int64 {
	if update.Message != nil {
		return update.Message.Chat.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
		return update.CallbackQuery.Message.Chat.ID
	}
	return 0
}

// parseCallback splits "prefix:rest" callback data; the rest may itself
// contain colons.
func parseCallback(data string) (prefix, rest string) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 {
		return data, ""
	}
	return parts[0], parts[1]
}
