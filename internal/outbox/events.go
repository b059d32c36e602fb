package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Event types published by the bot.
const (
	EventQuestionnaireCompleted = "questionnaire.completed"
	EventNutritionLogged        = "nutrition.logged"
	EventCheckinRecorded        = "checkin.recorded"
)

// eventTopics routes event types to Kafka topics.
var eventTopics = map[string]string{
	EventQuestionnaireCompleted: "health.questionnaires",
	EventNutritionLogged:        "health.nutrition",
	EventCheckinRecorded:        "health.checkins",
}

// QuestionnaireCompletedPayload is the wire body for questionnaire events.
type QuestionnaireCompletedPayload struct {
	UserID              int64   `json:"user_id"`
	Type                string  `json:"type"`
	BMI                 float64 `json:"bmi"`
	HealthScore         float64 `json:"health_score"`
	GeneralScore        float64 `json:"general_score"`
	RecommendedCalories int     `json:"recommended_calories"`
	CompletedAt         string  `json:"completed_at"`
}

// NutritionLoggedPayload is the wire body for nutrition events.
type NutritionLoggedPayload struct {
	UserID   int64   `json:"user_id"`
	FoodName string  `json:"food_name"`
	Calories float64 `json:"calories"`
	Source   string  `json:"source"` // text, photo or voice
	LoggedAt string  `json:"logged_at"`
}

// CheckinRecordedPayload is the wire body for check-in events.
type CheckinRecordedPayload struct {
	UserID     int64  `json:"user_id"`
	Kind       string `json:"kind"` // morning or evening
	Date       string `json:"date"`
	RecordedAt string `json:"recorded_at"`
}

// Enqueue writes an event into the outbox inside the caller's transaction so
// the event and the state change commit atomically.
func Enqueue(ctx context.Context, tx pgx.Tx, eventType string, userID int64, payload any) error {
	topic, ok := eventTopics[eventType]
	if !ok {
		return fmt.Errorf("unknown event type %q", eventType)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO outbox (event_uuid, aggregate_type, aggregate_id, event_type, topic, partition_key, payload, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.NewString(), "user", strconv.FormatInt(userID, 10), eventType, topic, strconv.FormatInt(userID, 10), body, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("enqueue outbox event: %w", err)
	}
	return nil
}
