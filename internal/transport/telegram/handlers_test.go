package telegram

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bezzego/healthy-bot-AI/internal/domain"
	"github.com/bezzego/healthy-bot-AI/internal/questionnaire"
)

type stubResults struct {
	byType map[domain.QuestionnaireType]*domain.QuestionnaireResult
}

func (s *stubResults) Create(ctx context.Context, result *domain.QuestionnaireResult) error {
	return nil
}

func (s *stubResults) Latest(ctx context.Context, userID int64, typ domain.QuestionnaireType) (*domain.QuestionnaireResult, error) {
	if r, ok := s.byType[typ]; ok {
		return r, nil
	}
	return nil, domain.ErrRecordNotFound
}

// A user's second retest must still be compared against their primary
// questionnaire, even though an earlier retest is more recent.
func TestComparisonBaselineIsLatestPrimary(t *testing.T) {
	primary := &domain.QuestionnaireResult{
		Type:         domain.QuestionnairePrimary,
		GeneralScore: 40,
		CreatedAt:    time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	retest := &domain.QuestionnaireResult{
		Type:         domain.QuestionnaireRetest,
		GeneralScore: 28,
		CreatedAt:    time.Date(2025, 2, 5, 10, 0, 0, 0, time.UTC),
	}
	b := &Bot{results: &stubResults{byType: map[domain.QuestionnaireType]*domain.QuestionnaireResult{
		domain.QuestionnairePrimary: primary,
		domain.QuestionnaireRetest:  retest,
	}}}

	baseline, err := b.comparisonBaseline(context.Background(), 1)
	require.NoError(t, err)
	require.Same(t, primary, baseline)

	// The calorie goal lookup keeps using the newest result of either type.
	newest, err := b.latestResult(context.Background(), 1)
	require.NoError(t, err)
	require.Same(t, retest, newest)
}

func TestParseCallback(t *testing.T) {
	tests := []struct {
		data   string
		prefix string
		rest   string
	}{
		{"sleep:slept_well", "sleep", "slept_well"},
		{"q:gender:female", "q", "gender:female"},
		{"q:height:skip", "q", "height:skip"},
		{"water:250", "water", "250"},
		{"noseparator", "noseparator", ""},
	}
	for _, tt := range tests {
		prefix, rest := parseCallback(tt.data)
		require.Equal(t, tt.prefix, prefix, tt.data)
		require.Equal(t, tt.rest, rest, tt.data)
	}
}

func TestValidHHMM(t *testing.T) {
	valid := []string{"00:00", "08:30", "23:59", "9:05"}
	for _, v := range valid {
		require.True(t, validHHMM(v), v)
	}
	invalid := []string{"24:00", "08:60", "830", "8.30", "ab:cd", ""}
	for _, v := range invalid {
		require.False(t, validHHMM(v), v)
	}
}

func TestParseNumberAcceptsComma(t *testing.T) {
	v, err := parseNumber(" 7,5 ")
	require.NoError(t, err)
	require.Equal(t, 7.5, v)

	_, err = parseNumber("lots")
	require.Error(t, err)
}

func TestParseResolveArgs(t *testing.T) {
	id, response, err := parseResolveArgs("42 thanks, handled")
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
	require.Equal(t, "thanks, handled", response)

	id, response, err = parseResolveArgs("  7  ")
	require.NoError(t, err)
	require.Equal(t, int64(7), id)
	require.Empty(t, response)

	for _, bad := range []string{"", "abc", "0", "-3 nope"} {
		_, _, err := parseResolveArgs(bad)
		require.Error(t, err, bad)
	}
}

func TestQuestionKeyboardChoice(t *testing.T) {
	q, ok := questionnaire.Lookup(questionnaire.KeyStoolFrequency)
	require.True(t, ok)

	kb := questionKeyboard(q)
	require.NotNil(t, kb)
	require.Len(t, kb.InlineKeyboard, len(q.Options))

	first := kb.InlineKeyboard[0][0]
	require.Equal(t, q.Options[0].Label, first.Text)
	require.Equal(t, "q:"+string(q.Key)+":"+q.Options[0].Value, *first.CallbackData)
}

func TestQuestionKeyboardScaleRow(t *testing.T) {
	q, ok := questionnaire.Lookup(questionnaire.KeyEnergyLevel)
	require.True(t, ok)

	kb := questionKeyboard(q)
	require.NotNil(t, kb)
	require.Len(t, kb.InlineKeyboard, 1)
	require.Len(t, kb.InlineKeyboard[0], 5)
	require.Equal(t, "1", kb.InlineKeyboard[0][0].Text)
	require.Equal(t, "5", kb.InlineKeyboard[0][4].Text)
}

func TestQuestionKeyboardOptionalGetsSkip(t *testing.T) {
	q, ok := questionnaire.Lookup(questionnaire.KeyChestCircumference)
	require.True(t, ok)
	require.True(t, q.Optional)

	kb := questionKeyboard(q)
	require.NotNil(t, kb)

	last := kb.InlineKeyboard[len(kb.InlineKeyboard)-1]
	require.Equal(t, "Skip", last[0].Text)
	require.Equal(t, "q:"+string(q.Key)+":skip", *last[0].CallbackData)
}

func TestQuestionKeyboardRequiredNumberHasNone(t *testing.T) {
	q, ok := questionnaire.Lookup(questionnaire.KeyHeight)
	require.True(t, ok)
	require.Nil(t, questionKeyboard(q))
}
