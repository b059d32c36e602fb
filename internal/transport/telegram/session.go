package telegram

import (
	"sync"

	"github.com/bezzego/healthy-bot-AI/internal/checkin"
	"github.com/bezzego/healthy-bot-AI/internal/domain"
	"github.com/bezzego/healthy-bot-AI/internal/questionnaire"
)

// dialogStep tracks which answer the active multi-step dialog expects next.
type dialogStep int

const (
	stepNone dialogStep = iota

	stepTimezone
	stepMorningTime
	stepEveningTime

	stepMorningSleep
	stepMorningHours
	stepMorningEnergy

	stepEveningMood
	stepEveningSteps
	stepEveningActivity
	stepEveningActivityType
	stepEveningDuration
	stepEveningStool

	stepWaterAmount

	stepRequestMessage

	stepMeasureWeight
	stepMeasureWaist
	stepMeasureHips
	stepMeasureChest
)

// session holds per-chat dialog state. Access is serialized by the per-chat
// lock, so no inner mutex is needed.
type session struct {
	flow *questionnaire.Session
	step dialogStep

	// Onboarding answers, applied to the user record in one update.
	timezone    string
	morningTime string

	morningSleep domain.SleepRating
	morningHours float64

	evening checkin.EveningInput

	measure checkin.MeasurementInput

	requestType domain.AdminRequestType
}

type sessionStore struct {
	mu     sync.Mutex
	byChat map[int64]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{byChat: make(map[int64]*session)}
}

func (s *sessionStore) get(chatID int64) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byChat[chatID]
	if !ok {
		sess = &session{}
		s.byChat[chatID] = sess
	}
	return sess
}

func (s *sessionStore) reset(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byChat, chatID)
}
