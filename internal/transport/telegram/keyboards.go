package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bezzego/healthy-bot-AI/internal/questionnaire"
)

// Callback data prefixes. The payload after the prefix is the canonical value.
const (
	cbQuestion = "q"       // q:<key>:<value> or q:<key>:skip
	cbSleep    = "sleep"   // sleep:<rating>
	cbMood     = "mood"    // mood:<mood>
	cbActivity = "act"     // act:yes | act:no
	cbStool    = "stool"   // stool:<kind>
	cbWater    = "water"   // water:<ml>
	cbDelFood  = "delfood" // delfood:<entry id>
)

func questionKeyboard(q questionnaire.Question) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	switch q.Kind {
	case questionnaire.KindChoice:
		for _, opt := range q.Options {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(opt.Label, fmt.Sprintf("%s:%s:%s", cbQuestion, q.Key, opt.Value)),
			))
		}
	case questionnaire.KindYesNo:
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Yes", fmt.Sprintf("%s:%s:yes", cbQuestion, q.Key)),
			tgbotapi.NewInlineKeyboardButtonData("No", fmt.Sprintf("%s:%s:no", cbQuestion, q.Key)),
		))
	case questionnaire.KindScale:
		var row []tgbotapi.InlineKeyboardButton
		for v := int(q.Min); v <= int(q.Max); v++ {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%d", v), fmt.Sprintf("%s:%s:%d", cbQuestion, q.Key, v)))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
	case questionnaire.KindNumber:
		// Numbers are typed; only optional ones get a button.
	}

	if q.Optional {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Skip", fmt.Sprintf("%s:%s:skip", cbQuestion, q.Key)),
		))
	}
	if len(rows) == 0 {
		return nil
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

func sleepKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Could not sleep", cbSleep+":insomnia"),
			tgbotapi.NewInlineKeyboardButtonData("Woke up 2+ times", cbSleep+":woke_twice_plus"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Woke up once", cbSleep+":woke_once"),
			tgbotapi.NewInlineKeyboardButtonData("Slept well", cbSleep+":slept_well"),
		),
	)
}

func moodKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Irritated", cbMood+":irritated"),
			tgbotapi.NewInlineKeyboardButtonData("Tired", cbMood+":tired"),
			tgbotapi.NewInlineKeyboardButtonData("Calm", cbMood+":calm"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Good", cbMood+":good"),
			tgbotapi.NewInlineKeyboardButtonData("Great", cbMood+":great"),
		),
	)
}

func activityKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Yes", cbActivity+":yes"),
			tgbotapi.NewInlineKeyboardButtonData("No", cbActivity+":no"),
		),
	)
}

func stoolKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Normal", cbStool+":normal"),
			tgbotapi.NewInlineKeyboardButtonData("Hard", cbStool+":hard"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Loose", cbStool+":loose"),
			tgbotapi.NewInlineKeyboardButtonData("Loose, repeated", cbStool+":loose_repeated"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("None today", cbStool+":none"),
		),
	)
}

func waterKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("200 ml", cbWater+":200"),
			tgbotapi.NewInlineKeyboardButtonData("300 ml", cbWater+":300"),
			tgbotapi.NewInlineKeyboardButtonData("500 ml", cbWater+":500"),
		),
	)
}
