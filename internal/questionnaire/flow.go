package questionnaire

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bezzego/healthy-bot-AI/internal/domain"
	"github.com/bezzego/healthy-bot-AI/internal/health"
)

// State is the lifecycle of one flow session.
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateCompleted
)

var (
	// ErrNotInProgress is returned when an answer arrives outside an active flow.
	ErrNotInProgress = errors.New("questionnaire is not in progress")
	// ErrStaleAnswer is returned when an answer references a question that is
	// no longer the active one (a duplicate or out-of-date button press).
	ErrStaleAnswer = errors.New("answer does not match the active question")
	// ErrSkipNotAllowed is returned when a required question is skipped.
	ErrSkipNotAllowed = errors.New("this question cannot be skipped")
)

// ValidationError reports a malformed answer. The flow state is unchanged and
// the same question should be asked again.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Session is the per-user answer accumulator for one in-progress flow. It is
// owned by a single chat interaction at a time (the transport serializes
// same-user events) and discarded on completion or cancellation.
type Session struct {
	Type    domain.QuestionnaireType
	state   State
	index   int
	answers map[Key]Answer
}

// NewSession creates a session for the given flow type.
func NewSession(typ domain.QuestionnaireType) *Session {
	return &Session{Type: typ, answers: make(map[Key]Answer)}
}

// Start resets the accumulator and returns the first question.
func (s *Session) Start() Question {
	s.state = StateInProgress
	s.index = 0
	s.answers = make(map[Key]Answer)
	q, _ := Lookup(Flow[0])
	return q
}

// State returns the session lifecycle state.
func (s *Session) State() State { return s.state }

// Current returns the active question, or false when the flow is not in
// progress or already past the last question.
func (s *Session) Current() (Question, bool) {
	if s.state != StateInProgress || s.index >= len(Flow) {
		return Question{}, false
	}
	return Lookup(Flow[s.index])
}

// gender resolves the accumulated gender answer, empty until answered.
func (s *Session) gender() domain.Gender {
	a, ok := s.answers[KeyGender]
	if !ok || a.Skipped {
		return ""
	}
	return domain.Gender(a.Choice)
}

// Answer validates and records a raw answer for the question identified by
// key, then advances the cursor, auto-skipping female-only questions for male
// users. It returns the next question, or ok=false once the flow completed.
// Validation failures leave the state untouched so the caller re-prompts.
func (s *Session) Answer(key Key, raw string, skip bool) (next Question, ok bool, err error) {
	if s.state != StateInProgress {
		return Question{}, false, ErrNotInProgress
	}
	current, active := s.Current()
	if !active || current.Key != key {
		return Question{}, false, ErrStaleAnswer
	}

	if skip {
		if !current.Optional {
			return Question{}, false, ErrSkipNotAllowed
		}
		s.answers[key] = Answer{Kind: current.Kind, Skipped: true}
	} else {
		answer, err := parseAnswer(current, raw)
		if err != nil {
			return Question{}, false, err
		}
		s.answers[key] = answer
	}

	s.advance()
	if s.index >= len(Flow) {
		s.state = StateCompleted
		return Question{}, false, nil
	}
	q, _ := Lookup(Flow[s.index])
	return q, true, nil
}

// advance moves the cursor forward, recording nulls for questions the
// resolved gender excludes.
func (s *Session) advance() {
	s.index++
	for s.index < len(Flow) {
		key := Flow[s.index]
		q, _ := Lookup(key)
		if q.FemaleOnly && s.gender() == domain.GenderMale {
			s.answers[key] = Answer{Kind: q.Kind, Skipped: true}
			s.index++
			continue
		}
		break
	}
}

// parseAnswer validates raw input against the question's declared kind.
func parseAnswer(q Question, raw string) (Answer, error) {
	switch q.Kind {
	case KindNumber:
		value, err := parseNumber(raw)
		if err != nil {
			return Answer{}, err
		}
		if value < q.Min || value > q.Max {
			return Answer{}, &ValidationError{Msg: fmt.Sprintf("value must be between %g and %g", q.Min, q.Max)}
		}
		return Answer{Kind: KindNumber, Number: value}, nil

	case KindScale:
		value, err := parseNumber(raw)
		if err != nil {
			return Answer{}, err
		}
		n := int(value)
		if float64(n) != value || n < int(q.Min) || n > int(q.Max) {
			return Answer{}, &ValidationError{Msg: fmt.Sprintf("please pick a whole number from %d to %d", int(q.Min), int(q.Max))}
		}
		return Answer{Kind: KindScale, Number: value}, nil

	case KindYesNo:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "yes", "y", "true", "1":
			return Answer{Kind: KindYesNo, Yes: true}, nil
		case "no", "n", "false", "0":
			return Answer{Kind: KindYesNo, Yes: false}, nil
		}
		return Answer{}, &ValidationError{Msg: "please answer yes or no"}

	case KindChoice:
		value := strings.TrimSpace(raw)
		for _, opt := range q.Options {
			if opt.Value == value {
				return Answer{Kind: KindChoice, Choice: value}, nil
			}
		}
		return Answer{}, &ValidationError{Msg: "please pick one of the offered options"}
	}
	return Answer{}, &ValidationError{Msg: "unsupported question kind"}
}

// parseNumber accepts decimal comma and stray spaces the way users type them.
func parseNumber(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."), " ", "")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, &ValidationError{Msg: "could not read a number, please enter a numeric value"}
	}
	return value, nil
}

// Result flattens the accumulator into a QuestionnaireResult and computes the
// derived metrics. Only valid on a completed session.
func (s *Session) Result() (*domain.QuestionnaireResult, error) {
	if s.state != StateCompleted {
		return nil, ErrNotInProgress
	}

	r := &domain.QuestionnaireResult{Type: s.Type}
	r.Gender = s.gender()
	r.Height = s.number(KeyHeight)
	r.Weight = s.number(KeyWeight)
	r.ChestCircumference = s.optionalNumber(KeyChestCircumference)
	r.WaistCircumference = s.optionalNumber(KeyWaistCircumference)
	r.HipsCircumference = s.optionalNumber(KeyHipsCircumference)

	r.StoolFrequency = domain.StoolFrequency(s.choice(KeyStoolFrequency))
	r.StoolCharacter = domain.StoolCharacter(s.choice(KeyStoolCharacter))
	r.MenstrualCycle = domain.MenstrualCycle(s.choice(KeyMenstrualCycle))

	r.EnergyLevel = int(s.number(KeyEnergyLevel))
	r.StressLevel = int(s.number(KeyStressLevel))
	r.SleepQuality = int(s.number(KeySleepQuality))

	r.Concentration = s.yes(KeyConcentration)
	r.Irritability = s.yes(KeyIrritability)
	r.Sleepiness = s.yes(KeySleepiness)
	r.Headaches = s.yes(KeyHeadaches)
	r.ShortnessOfBreath = s.yes(KeyShortnessOfBreath)
	r.ColdHandsFeet = s.yes(KeyColdHandsFeet)
	r.SkinItch = s.yes(KeySkinItch)
	r.BlueSclera = s.yes(KeyBlueSclera)
	r.OilySkin = s.yes(KeyOilySkin)
	r.DrySkin = s.yes(KeyDrySkin)
	r.LowLibido = s.yes(KeyLowLibido)
	r.VaginalItch = s.yes(KeyVaginalItch)
	r.JointPain = s.yes(KeyJointPain)
	r.AbdominalCramps = s.yes(KeyAbdominalCramps)
	r.Gas = s.yes(KeyGas)
	r.HairLoss = s.yes(KeyHairLoss)
	r.DryMouth = s.yes(KeyDryMouth)

	r.Appetite = domain.Appetite(s.choice(KeyAppetite))
	r.SugarCraving = s.yes(KeySugarCraving)
	r.FatCraving = s.yes(KeyFatCraving)

	if steps := s.optionalNumber(KeyAverageSteps); steps != nil {
		n := int(*steps)
		r.AverageSteps = &n
	}
	r.ActivityFrequency = domain.ActivityFrequency(s.choice(KeyActivityFrequency))

	computeMetrics(r)
	return r, nil
}

// computeMetrics fills the derived fields from the raw answers. Recomputing
// with the same answers always yields identical values.
func computeMetrics(r *domain.QuestionnaireResult) {
	r.BMI = health.BMI(r.Height, r.Weight)
	r.HealthScore = health.HealthScore(r)
	r.GeneralScore = health.GeneralScore(r)

	r.RecommendedCalories = health.RecommendedCalories(health.CalorieInput{
		BMI:          r.BMI,
		WeightKG:     r.Weight,
		HeightCM:     r.Height,
		Gender:       r.Gender,
		AverageSteps: r.AverageSteps,
		Frequency:    r.ActivityFrequency,
	})
	macros := health.MacroSplit(r.RecommendedCalories, health.GoalForBMI(r.BMI))
	r.RecommendedProtein = macros.ProteinG
	r.RecommendedFats = macros.FatsG
	r.RecommendedCarbs = macros.CarbsG
	r.RecommendedWater = health.WaterNormML(r.Weight) / 1000 // liters
}

func (s *Session) number(key Key) float64 {
	a, ok := s.answers[key]
	if !ok || a.Skipped {
		return 0
	}
	return a.Number
}

func (s *Session) optionalNumber(key Key) *float64 {
	a, ok := s.answers[key]
	if !ok || a.Skipped {
		return nil
	}
	v := a.Number
	return &v
}

func (s *Session) choice(key Key) string {
	a, ok := s.answers[key]
	if !ok || a.Skipped {
		return ""
	}
	return a.Choice
}

func (s *Session) yes(key Key) bool {
	a, ok := s.answers[key]
	return ok && !a.Skipped && a.Yes
}
