package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bezzego/healthy-bot-AI/internal/admin"
	"github.com/bezzego/healthy-bot-AI/internal/checkin"
	"github.com/bezzego/healthy-bot-AI/internal/domain"
	"github.com/bezzego/healthy-bot-AI/internal/nutrition"
	"github.com/bezzego/healthy-bot-AI/internal/questionnaire"
	"github.com/bezzego/healthy-bot-AI/internal/recognition"
)

const helpText = `What I can do:

/morning - morning check-in (sleep and energy)
/evening - evening check-in (mood, steps, activity)
/water - log a water portion
/food - today's food log
/report - weekly summary
/month - monthly summary
/measure - record monthly body measurements
/retest - repeat the questionnaire to track progress
/contact - message the team
/complaint - report a problem
/recipe - share a recipe with the community
/results - share your progress

Send a meal description, photo or voice note any time to log food.`

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.users.GetOrCreate(ctx, msg.Chat.ID, msg.From.UserName, msg.From.FirstName, msg.From.LastName)
	if err != nil {
		return fmt.Errorf("resolve user: %w", err)
	}

	if msg.IsCommand() {
		return b.handleCommand(ctx, user, msg)
	}
	if len(msg.Photo) > 0 {
		return b.handlePhoto(ctx, user, msg)
	}
	if msg.Voice != nil {
		return b.handleVoice(ctx, user, msg)
	}
	if msg.Text != "" {
		return b.handleText(ctx, user, msg.Text)
	}
	return nil
}

func (b *Bot) handleCommand(ctx context.Context, user *domain.User, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.handleStart(ctx, user)
	case "help":
		b.sendText(user.ChatID, helpText)
		return nil
	case "morning":
		return b.requireOnboarded(user, func() error {
			sess := b.sessions.get(user.ChatID)
			sess.step = stepMorningSleep
			b.sendWithKeyboard(user.ChatID, "How did you sleep?", sleepKeyboard())
			return nil
		})
	case "evening":
		return b.requireOnboarded(user, func() error {
			sess := b.sessions.get(user.ChatID)
			sess.step = stepEveningMood
			sess.evening = checkin.EveningInput{}
			b.sendWithKeyboard(user.ChatID, "How is your mood this evening?", moodKeyboard())
			return nil
		})
	case "water":
		return b.requireOnboarded(user, func() error {
			b.sessions.get(user.ChatID).step = stepWaterAmount
			b.sendWithKeyboard(user.ChatID, "How much water? Pick a portion or type the amount in ml.", waterKeyboard())
			return nil
		})
	case "food":
		return b.requireOnboarded(user, func() error {
			return b.showFoodLog(ctx, user)
		})
	case "report":
		return b.requireOnboarded(user, func() error {
			text, err := b.reports.Weekly(ctx, user.ID, b.localNow(user))
			if err != nil {
				return err
			}
			b.sendText(user.ChatID, text)
			return nil
		})
	case "month":
		return b.requireOnboarded(user, func() error {
			text, err := b.reports.Monthly(ctx, user.ID, b.localNow(user))
			if err != nil {
				return err
			}
			b.sendText(user.ChatID, text)
			return nil
		})
	case "measure":
		return b.requireOnboarded(user, func() error {
			sess := b.sessions.get(user.ChatID)
			sess.step = stepMeasureWeight
			sess.measure = checkin.MeasurementInput{}
			b.sendText(user.ChatID, "Monthly measurements. Your weight in kg? Type skip to omit.")
			return nil
		})
	case "retest":
		return b.requireOnboarded(user, func() error {
			return b.handleRetest(ctx, user)
		})
	case "contact":
		return b.startRequest(user, domain.RequestContact, "What would you like to tell the team?")
	case "complaint":
		return b.startRequest(user, domain.RequestComplaint, "Describe the problem and we will look into it.")
	case "recipe":
		return b.startRequest(user, domain.RequestRecipe, "Share your recipe: ingredients and how you make it.")
	case "results":
		return b.startRequest(user, domain.RequestResults, "Tell us about your progress: starting weight, current weight and anything you want to add.")
	case "stats":
		if !b.isAdmin(user.ChatID) {
			return nil
		}
		stats, err := b.admins.Stats(ctx, 30*24*time.Hour)
		if err != nil {
			return err
		}
		b.sendText(user.ChatID, admin.FormatStats(stats))
		return nil
	case "pending":
		if !b.isAdmin(user.ChatID) {
			return nil
		}
		return b.showPending(ctx, user.ChatID)
	case "resolve":
		if !b.isAdmin(user.ChatID) {
			return nil
		}
		return b.resolveRequest(ctx, user.ChatID, msg.CommandArguments())
	default:
		b.sendText(user.ChatID, "Unknown command. Try /help.")
		return nil
	}
}

func (b *Bot) handleStart(ctx context.Context, user *domain.User) error {
	// A fresh /start drops any half-finished dialog.
	b.sessions.reset(user.ChatID)
	if user.OnboardingCompleted {
		b.sendText(user.ChatID, "Welcome back! "+helpText)
		return nil
	}
	b.sendText(user.ChatID, "Hi! I am your health assistant. Let's start with a short questionnaire so I can tailor recommendations to you.")
	return b.startQuestionnaire(user, domain.QuestionnairePrimary)
}

func (b *Bot) requireOnboarded(user *domain.User, fn func() error) error {
	if !user.OnboardingCompleted {
		b.sendText(user.ChatID, "Please finish the intake questionnaire first: send /start.")
		return nil
	}
	return fn()
}

func (b *Bot) startRequest(user *domain.User, typ domain.AdminRequestType, prompt string) error {
	sess := b.sessions.get(user.ChatID)
	sess.step = stepRequestMessage
	sess.requestType = typ
	b.sendText(user.ChatID, prompt)
	return nil
}

// ---- questionnaire flow ----

func (b *Bot) startQuestionnaire(user *domain.User, typ domain.QuestionnaireType) error {
	sess := b.sessions.get(user.ChatID)
	sess.flow = questionnaire.NewSession(typ)
	q := sess.flow.Start()
	b.askQuestion(user.ChatID, q)
	return nil
}

func (b *Bot) askQuestion(chatID int64, q questionnaire.Question) {
	if kb := questionKeyboard(q); kb != nil {
		b.sendWithKeyboard(chatID, q.Prompt, *kb)
		return
	}
	b.sendText(chatID, q.Prompt)
}

func (b *Bot) applyAnswer(ctx context.Context, user *domain.User, key questionnaire.Key, raw string, skip bool) error {
	sess := b.sessions.get(user.ChatID)
	if sess.flow == nil {
		return nil
	}

	next, more, err := sess.flow.Answer(key, raw, skip)
	var verr *questionnaire.ValidationError
	switch {
	case errors.As(err, &verr):
		current, _ := sess.flow.Current()
		b.sendText(user.ChatID, verr.Msg)
		b.askQuestion(user.ChatID, current)
		return nil
	case errors.Is(err, questionnaire.ErrStaleAnswer):
		// Duplicate button press; nothing to do.
		return nil
	case err != nil:
		return err
	}

	if more {
		b.askQuestion(user.ChatID, next)
		return nil
	}
	return b.finishQuestionnaire(ctx, user, sess)
}

func (b *Bot) finishQuestionnaire(ctx context.Context, user *domain.User, sess *session) error {
	result, err := sess.flow.Result()
	if err != nil {
		return err
	}
	result.UserID = user.ID

	// Retests always compare against the most recent primary questionnaire,
	// not against an earlier retest.
	var previous *domain.QuestionnaireResult
	if result.Type == domain.QuestionnaireRetest {
		previous, _ = b.comparisonBaseline(ctx, user.ID)
	}

	if err := b.results.Create(ctx, result); err != nil {
		return fmt.Errorf("save questionnaire: %w", err)
	}
	sess.flow = nil

	b.sendText(user.ChatID, questionnaire.FormatSummary(result))

	if previous != nil {
		b.sendText(user.ChatID, questionnaire.FormatComparison(questionnaire.Compare(previous, result)))
	}

	if !user.OnboardingCompleted {
		sess.step = stepTimezone
		b.sendText(user.ChatID, "Almost done. What is your timezone? Send an IANA name like Europe/Berlin.")
	}
	return nil
}

// comparisonBaseline returns the latest primary questionnaire result.
func (b *Bot) comparisonBaseline(ctx context.Context, userID int64) (*domain.QuestionnaireResult, error) {
	return b.results.Latest(ctx, userID, domain.QuestionnairePrimary)
}

// latestResult returns the newest completed questionnaire of either type.
func (b *Bot) latestResult(ctx context.Context, userID int64) (*domain.QuestionnaireResult, error) {
	var newest *domain.QuestionnaireResult
	for _, typ := range []domain.QuestionnaireType{domain.QuestionnairePrimary, domain.QuestionnaireRetest} {
		r, err := b.results.Latest(ctx, userID, typ)
		if err != nil {
			continue
		}
		if newest == nil || r.CreatedAt.After(newest.CreatedAt) {
			newest = r
		}
	}
	if newest == nil {
		return nil, domain.ErrRecordNotFound
	}
	return newest, nil
}

func (b *Bot) handleRetest(ctx context.Context, user *domain.User) error {
	primary, err := b.results.Latest(ctx, user.ID, domain.QuestionnairePrimary)
	if errors.Is(err, domain.ErrRecordNotFound) {
		b.sendText(user.ChatID, "Complete the intake questionnaire first: send /start.")
		return nil
	}
	if err != nil {
		return err
	}

	var lastRetestAt *time.Time
	if retest, err := b.results.Latest(ctx, user.ID, domain.QuestionnaireRetest); err == nil {
		lastRetestAt = &retest.CreatedAt
	}

	allowed, daysLeft := questionnaire.CanRetest(time.Now().UTC(), primary.CreatedAt, lastRetestAt)
	if !allowed {
		b.sendText(user.ChatID, fmt.Sprintf("The retest opens 30 days after your last questionnaire. %d day(s) left.", daysLeft))
		return nil
	}
	return b.startQuestionnaire(user, domain.QuestionnaireRetest)
}

// ---- text routing ----

func (b *Bot) handleText(ctx context.Context, user *domain.User, text string) error {
	sess := b.sessions.get(user.ChatID)

	if sess.flow != nil && sess.flow.State() == questionnaire.StateInProgress {
		current, ok := sess.flow.Current()
		if ok {
			return b.applyAnswer(ctx, user, current.Key, text, false)
		}
	}

	switch sess.step {
	case stepTimezone:
		return b.handleTimezone(ctx, user, sess, text)
	case stepMorningTime:
		return b.handlePreferredTime(ctx, user, sess, text, true)
	case stepEveningTime:
		return b.handlePreferredTime(ctx, user, sess, text, false)
	case stepMorningHours:
		return b.handleMorningHours(user, sess, text)
	case stepMorningEnergy:
		return b.handleMorningEnergy(ctx, user, sess, text)
	case stepEveningSteps:
		return b.handleEveningSteps(user, sess, text)
	case stepEveningActivityType:
		sess.evening.ActivityType = strings.TrimSpace(text)
		sess.step = stepEveningDuration
		b.sendText(user.ChatID, "For how many minutes?")
		return nil
	case stepEveningDuration:
		return b.handleEveningDuration(user, sess, text)
	case stepWaterAmount:
		return b.handleWaterAmount(ctx, user, sess, text)
	case stepRequestMessage:
		return b.handleRequestMessage(ctx, user, sess, text)
	case stepMeasureWeight, stepMeasureWaist, stepMeasureHips, stepMeasureChest:
		return b.handleMeasureStep(ctx, user, sess, text)
	}

	if !user.OnboardingCompleted {
		b.sendText(user.ChatID, "Send /start to begin.")
		return nil
	}
	// Free text defaults to food logging.
	return b.logFoodText(ctx, user, text)
}

func (b *Bot) handleTimezone(ctx context.Context, user *domain.User, sess *session, text string) error {
	tz := strings.TrimSpace(text)
	if _, err := time.LoadLocation(tz); err != nil {
		b.sendText(user.ChatID, "I don't know that timezone. Send an IANA name like Europe/Berlin or Asia/Tokyo.")
		return nil
	}
	sess.timezone = tz
	sess.step = stepMorningTime
	b.sendText(user.ChatID, "When should the morning check-in arrive? Send a time like 08:00.")
	return nil
}

func (b *Bot) handlePreferredTime(ctx context.Context, user *domain.User, sess *session, text string, morning bool) error {
	value := strings.TrimSpace(text)
	if !validHHMM(value) {
		b.sendText(user.ChatID, "Please send a time as HH:MM, for example 08:30.")
		return nil
	}
	if morning {
		sess.morningTime = value
		sess.step = stepEveningTime
		b.sendText(user.ChatID, "And the evening check-in? Send a time like 21:00.")
		return nil
	}

	now := time.Now().UTC()
	user.Timezone = sess.timezone
	user.MorningTime = sess.morningTime
	user.EveningTime = value
	user.OnboardingCompleted = true
	user.OnboardingCompletedAt = &now
	if err := b.users.Update(ctx, user); err != nil {
		return fmt.Errorf("save onboarding: %w", err)
	}
	sess.step = stepNone
	b.sendText(user.ChatID, "All set! I will check in with you every day. "+helpText)
	return nil
}

func (b *Bot) handleMorningHours(user *domain.User, sess *session, text string) error {
	hours, err := parseNumber(text)
	if err != nil || hours < 0 || hours > 24 {
		b.sendText(user.ChatID, "How many hours did you sleep? Send a number between 0 and 24.")
		return nil
	}
	sess.morningHours = hours
	sess.step = stepMorningEnergy
	b.sendText(user.ChatID, "Rate your energy right now, 1 to 5.")
	return nil
}

func (b *Bot) handleMorningEnergy(ctx context.Context, user *domain.User, sess *session, text string) error {
	energy, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || energy < 1 || energy > 5 {
		b.sendText(user.ChatID, "Please send a whole number from 1 to 5.")
		return nil
	}
	_, err = b.checkins.Morning(ctx, user.ID, b.today(user), sess.morningSleep, sess.morningHours, energy)
	if err != nil {
		return err
	}
	sess.step = stepNone
	b.sendText(user.ChatID, "Morning check-in saved. Have a great day!")
	return nil
}

func (b *Bot) handleEveningSteps(user *domain.User, sess *session, text string) error {
	steps, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || steps < 0 || steps > 100000 {
		b.sendText(user.ChatID, "How many steps today? Send a number between 0 and 100000.")
		return nil
	}
	sess.evening.Steps = steps
	sess.step = stepEveningActivity
	b.sendWithKeyboard(user.ChatID, "Did you work out today?", activityKeyboard())
	return nil
}

func (b *Bot) handleEveningDuration(user *domain.User, sess *session, text string) error {
	minutes, err := parseNumber(text)
	if err != nil || minutes <= 0 || minutes > 1440 {
		b.sendText(user.ChatID, "For how many minutes? Send a number up to 1440.")
		return nil
	}
	sess.evening.DurationMinutes = minutes
	sess.step = stepEveningStool
	b.sendWithKeyboard(user.ChatID, "How was your stool today?", stoolKeyboard())
	return nil
}

func (b *Bot) finishEvening(ctx context.Context, user *domain.User, sess *session) error {
	record, err := b.checkins.Evening(ctx, user.ID, b.today(user), sess.evening)
	if err != nil {
		return err
	}
	sess.step = stepNone

	text := "Evening check-in saved."
	if record.ActiveCalories != nil {
		text = fmt.Sprintf("Evening check-in saved. Estimated %d kcal burned in training.", int(*record.ActiveCalories))
	}
	b.sendText(user.ChatID, text)
	return nil
}

func (b *Bot) handleWaterAmount(ctx context.Context, user *domain.User, sess *session, text string) error {
	amount, err := parseNumber(text)
	if err != nil {
		b.sendText(user.ChatID, "Send the amount in ml, for example 250.")
		return nil
	}
	return b.addWater(ctx, user, sess, amount)
}

func (b *Bot) addWater(ctx context.Context, user *domain.User, sess *session, amount float64) error {
	total, err := b.checkins.AddWater(ctx, user.ID, b.today(user), amount)
	if errors.Is(err, checkin.ErrInvalidWater) {
		b.sendText(user.ChatID, "That does not look like a drinkable amount. Send a value between 1 and 5000 ml.")
		return nil
	}
	if err != nil {
		return err
	}
	sess.step = stepNone
	b.sendText(user.ChatID, fmt.Sprintf("Logged. Today's water total: %.1f l.", total/1000))
	return nil
}

func (b *Bot) handleRequestMessage(ctx context.Context, user *domain.User, sess *session, text string) error {
	err := b.admins.Submit(ctx, &domain.AdminRequest{
		UserID:  user.ID,
		Type:    sess.requestType,
		Message: text,
	})
	if err != nil {
		return err
	}
	sess.step = stepNone
	b.sendText(user.ChatID, "Thank you! The team will get back to you.")
	return nil
}

func (b *Bot) handleMeasureStep(ctx context.Context, user *domain.User, sess *session, text string) error {
	var value *float64
	if !strings.EqualFold(strings.TrimSpace(text), "skip") {
		parsed, err := parseNumber(text)
		if err != nil || parsed <= 0 || parsed > 400 {
			b.sendText(user.ChatID, "Send a number in the expected range, or skip.")
			return nil
		}
		value = &parsed
	}

	switch sess.step {
	case stepMeasureWeight:
		sess.measure.Weight = value
		sess.step = stepMeasureWaist
		b.sendText(user.ChatID, "Waist circumference in cm? Type skip to omit.")
	case stepMeasureWaist:
		sess.measure.Waist = value
		sess.step = stepMeasureHips
		b.sendText(user.ChatID, "Hip circumference in cm? Type skip to omit.")
	case stepMeasureHips:
		sess.measure.Hips = value
		sess.step = stepMeasureChest
		b.sendText(user.ChatID, "Chest circumference in cm? Type skip to omit.")
	case stepMeasureChest:
		sess.measure.Chest = value
		if err := b.checkins.RecordMeasurement(ctx, user.ID, b.today(user), sess.measure); err != nil {
			return err
		}
		sess.step = stepNone
		b.sendText(user.ChatID, "Measurements saved. They will appear in your monthly summary.")
	}
	return nil
}

// ---- food logging ----

func (b *Bot) logFoodText(ctx context.Context, user *domain.User, text string) error {
	input, err := b.recognizeText(ctx, text)
	if errors.Is(err, recognition.ErrUnrecognized) {
		b.sendText(user.ChatID, "I could not recognize food in that. Try describing the meal, e.g. \"200 g buckwheat with chicken\".")
		return nil
	}
	if err != nil {
		return err
	}
	return b.saveMeal(ctx, user, *input)
}

// recognizeText prefers the reference catalog for exact staple names and
// falls back to the model for everything else.
func (b *Bot) recognizeText(ctx context.Context, text string) (*nutrition.EntryInput, error) {
	if info, ok := nutrition.LookupFood(text); ok {
		input := nutrition.EstimatePortion(info, 100)
		return &input, nil
	}
	meal, err := b.recognizer.RecognizeText(ctx, text)
	if err != nil {
		return nil, err
	}
	input := mealToEntry(meal)
	return &input, nil
}

func (b *Bot) handlePhoto(ctx context.Context, user *domain.User, msg *tgbotapi.Message) error {
	if !user.OnboardingCompleted {
		b.sendText(user.ChatID, "Send /start to begin.")
		return nil
	}

	// The last photo size is the largest.
	fileID := msg.Photo[len(msg.Photo)-1].FileID
	data, err := b.files.Download(fileID)
	if err != nil {
		return err
	}

	meal, err := b.recognizer.RecognizePhoto(ctx, data)
	if errors.Is(err, recognition.ErrUnrecognized) {
		b.sendText(user.ChatID, "I could not find food on this photo. Try another angle or describe the meal in text.")
		return nil
	}
	if err != nil {
		return err
	}

	input := mealToEntry(meal)
	input.PhotoFileID = fileID
	return b.saveMeal(ctx, user, input)
}

func (b *Bot) handleVoice(ctx context.Context, user *domain.User, msg *tgbotapi.Message) error {
	if !user.OnboardingCompleted {
		b.sendText(user.ChatID, "Send /start to begin.")
		return nil
	}

	data, err := b.files.Download(msg.Voice.FileID)
	if err != nil {
		return err
	}

	meal, transcript, err := b.recognizer.RecognizeVoice(ctx, data, "voice.ogg")
	if errors.Is(err, recognition.ErrUnrecognized) {
		b.sendText(user.ChatID, fmt.Sprintf("I heard: \"%s\" but could not recognize food in it.", transcript))
		return nil
	}
	if err != nil {
		return err
	}

	input := mealToEntry(meal)
	input.VoiceFileID = msg.Voice.FileID
	return b.saveMeal(ctx, user, input)
}

func (b *Bot) saveMeal(ctx context.Context, user *domain.User, input nutrition.EntryInput) error {
	entry, err := b.meals.Add(ctx, user.ID, b.today(user), input)
	if err != nil {
		return err
	}
	b.sendText(user.ChatID, fmt.Sprintf(
		"Logged: %s\n%.0f kcal, protein %.1f g, fats %.1f g, carbs %.1f g\nRemove with /food if it looks wrong.",
		entry.FoodName, entry.Calories, entry.Protein, entry.Fats, entry.Carbs))
	return nil
}

func (b *Bot) showFoodLog(ctx context.Context, user *domain.User) error {
	record, entries, err := b.meals.ListDay(ctx, user.ID, b.today(user))
	if err != nil {
		return err
	}

	goal := 0
	if latest, err := b.latestResult(ctx, user.ID); err == nil {
		goal = latest.RecommendedCalories
	}
	text := nutrition.FormatDay(record, entries, goal)

	if len(entries) == 0 {
		b.sendText(user.ChatID, text)
		return nil
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, e := range entries {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("Delete %d. %s", i+1, e.FoodName),
				fmt.Sprintf("%s:%d", cbDelFood, e.ID)),
		))
	}
	b.sendWithKeyboard(user.ChatID, text, tgbotapi.NewInlineKeyboardMarkup(rows...))
	return nil
}

// ---- callbacks ----

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	// Acknowledge immediately so the button stops spinning.
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		return fmt.Errorf("ack callback: %w", err)
	}

	chatID := cb.Message.Chat.ID
	user, err := b.users.GetOrCreate(ctx, chatID, cb.From.UserName, cb.From.FirstName, cb.From.LastName)
	if err != nil {
		return fmt.Errorf("resolve user: %w", err)
	}
	sess := b.sessions.get(chatID)

	prefix, rest := parseCallback(cb.Data)
	switch prefix {
	case cbQuestion:
		key, value := parseCallback(rest)
		if value == "skip" {
			return b.applyAnswer(ctx, user, questionnaire.Key(key), "", true)
		}
		return b.applyAnswer(ctx, user, questionnaire.Key(key), value, false)

	case cbSleep:
		if sess.step != stepMorningSleep {
			return nil
		}
		sess.morningSleep = domain.SleepRating(rest)
		sess.step = stepMorningHours
		b.sendText(chatID, "How many hours did you sleep?")
		return nil

	case cbMood:
		if sess.step != stepEveningMood {
			return nil
		}
		sess.evening.Mood = domain.Mood(rest)
		sess.step = stepEveningSteps
		b.sendText(chatID, "How many steps did you walk today?")
		return nil

	case cbActivity:
		if sess.step != stepEveningActivity {
			return nil
		}
		if rest == "yes" {
			sess.evening.Activity = true
			sess.step = stepEveningActivityType
			b.sendText(chatID, "What kind of activity? (e.g. running, gym, yoga)")
			return nil
		}
		sess.evening.Activity = false
		sess.step = stepEveningStool
		b.sendWithKeyboard(chatID, "How was your stool today?", stoolKeyboard())
		return nil

	case cbStool:
		if sess.step != stepEveningStool {
			return nil
		}
		sess.evening.Stool = domain.EveningStool(rest)
		return b.finishEvening(ctx, user, sess)

	case cbWater:
		amount, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return nil
		}
		return b.addWater(ctx, user, sess, amount)

	case cbDelFood:
		entryID, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return nil
		}
		if err := b.meals.Delete(ctx, entryID, user.ID); err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				b.sendText(chatID, "That entry is already gone.")
				return nil
			}
			return err
		}
		b.sendText(chatID, "Removed. Send /food to see the updated log.")
		return nil
	}
	return nil
}

func (b *Bot) showPending(ctx context.Context, chatID int64) error {
	requests, err := b.admins.Pending(ctx)
	if err != nil {
		return err
	}
	if len(requests) == 0 {
		b.sendText(chatID, "No pending requests.")
		return nil
	}
	var sb strings.Builder
	sb.WriteString("Pending requests:\n\n")
	for _, req := range requests {
		fmt.Fprintf(&sb, "#%d %s from user %d\n%s\n\n", req.ID, req.Title, req.UserID, req.Message)
	}
	sb.WriteString("Close one with /resolve <id> [response].")
	b.sendText(chatID, sb.String())
	return nil
}

func (b *Bot) resolveRequest(ctx context.Context, chatID int64, args string) error {
	id, response, err := parseResolveArgs(args)
	if err != nil {
		b.sendText(chatID, "Usage: /resolve <request id> [response]")
		return nil
	}
	if err := b.admins.Resolve(ctx, id, domain.RequestResolved, response); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			b.sendText(chatID, fmt.Sprintf("Request #%d not found.", id))
			return nil
		}
		return err
	}
	b.sendText(chatID, fmt.Sprintf("Request #%d resolved.", id))
	return nil
}

func parseResolveArgs(args string) (int64, string, error) {
	fields := strings.SplitN(strings.TrimSpace(args), " ", 2)
	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, "", fmt.Errorf("invalid request id %q", fields[0])
	}
	var response string
	if len(fields) == 2 {
		response = strings.TrimSpace(fields[1])
	}
	return id, response, nil
}

// ---- helpers ----

// today resolves the user's current calendar date as a midnight-UTC key.
func (b *Bot) today(user *domain.User) time.Time {
	local := b.localNow(user)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

func (b *Bot) localNow(user *domain.User) time.Time {
	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		return time.Now().UTC()
	}
	return time.Now().In(loc)
}

func mealToEntry(meal *recognition.Meal) nutrition.EntryInput {
	return nutrition.EntryInput{
		FoodName: meal.FoodName,
		Calories: meal.Calories,
		Protein:  meal.Protein,
		Fats:     meal.Fats,
		Carbs:    meal.Carbs,
		Fiber:    meal.Fiber,
	}
}

func parseNumber(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	return strconv.ParseFloat(cleaned, 64)
}

func validHHMM(v string) bool {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return false
	}
	return true
}
