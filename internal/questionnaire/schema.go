// Package questionnaire implements the intake flow: a fixed ordered question
// sequence with gender-conditional skip logic, typed answers, completion
// scoring and the retest cooldown gate.
package questionnaire

import (
	"github.com/bezzego/healthy-bot-AI/internal/domain"
)

// Key identifies one question in the fixed sequence.
type Key string

const (
	KeyGender Key = "gender"

	KeyHeight             Key = "height"
	KeyWeight             Key = "weight"
	KeyChestCircumference Key = "chest_circumference"
	KeyWaistCircumference Key = "waist_circumference"
	KeyHipsCircumference  Key = "hips_circumference"

	KeyStoolFrequency Key = "stool_frequency"
	KeyStoolCharacter Key = "stool_character"

	KeyMenstrualCycle Key = "menstrual_cycle"

	KeyEnergyLevel   Key = "energy_level"
	KeyStressLevel   Key = "stress_level"
	KeySleepQuality  Key = "sleep_quality"
	KeyConcentration Key = "concentration"
	KeyIrritability  Key = "irritability"
	KeySleepiness    Key = "sleepiness"

	KeyAppetite     Key = "appetite"
	KeySugarCraving Key = "sugar_craving"
	KeyFatCraving   Key = "fat_craving"

	KeyShortnessOfBreath Key = "shortness_of_breath"
	KeyColdHandsFeet     Key = "cold_hands_feet"
	KeySkinItch          Key = "skin_itch"
	KeyBlueSclera        Key = "blue_sclera"
	KeyHeadaches         Key = "headaches"
	KeyOilySkin          Key = "oily_skin"
	KeyDrySkin           Key = "dry_skin"
	KeyLowLibido         Key = "low_libido"
	KeyVaginalItch       Key = "vaginal_itch"
	KeyJointPain         Key = "joint_pain"
	KeyAbdominalCramps   Key = "abdominal_cramps"
	KeyGas               Key = "gas"
	KeyHairLoss          Key = "hair_loss"
	KeyDryMouth          Key = "dry_mouth"

	KeyAverageSteps      Key = "average_steps"
	KeyActivityFrequency Key = "additional_activity_frequency"
)

// Flow is the fixed question order. Gender comes first so that the skip logic
// has the context it needs for every later question.
var Flow = []Key{
	KeyGender,

	KeyHeight,
	KeyWeight,
	KeyChestCircumference,
	KeyWaistCircumference,
	KeyHipsCircumference,

	KeyStoolFrequency,
	KeyStoolCharacter,

	KeyMenstrualCycle,

	KeyEnergyLevel,
	KeyStressLevel,
	KeySleepQuality,
	KeyConcentration,
	KeyIrritability,
	KeySleepiness,

	KeyAppetite,
	KeySugarCraving,
	KeyFatCraving,

	KeyShortnessOfBreath,
	KeyColdHandsFeet,
	KeySkinItch,
	KeyBlueSclera,
	KeyHeadaches,
	KeyOilySkin,
	KeyDrySkin,
	KeyLowLibido,
	KeyVaginalItch,
	KeyJointPain,
	KeyAbdominalCramps,
	KeyGas,
	KeyHairLoss,
	KeyDryMouth,

	KeyAverageSteps,
	KeyActivityFrequency,
}

// Kind declares which Answer variant a question expects.
type Kind int

const (
	KindNumber Kind = iota
	KindScale       // integer 1-5
	KindYesNo
	KindChoice
)

// Option is one selectable answer for a choice question. Value is the
// canonical stored form, Label the text shown on the keyboard.
type Option struct {
	Value string
	Label string
}

// Question is the schema entry for one key.
type Question struct {
	Key        Key
	Kind       Kind
	Prompt     string
	Options    []Option
	Optional   bool // may be skipped explicitly by the user
	FemaleOnly bool // auto-skipped (recorded null) when gender resolves male
	Min, Max   float64
}

var questions = map[Key]Question{
	KeyGender: {
		Key: KeyGender, Kind: KindChoice,
		Prompt: "What is your gender?",
		Options: []Option{
			{Value: string(domain.GenderMale), Label: "Male"},
			{Value: string(domain.GenderFemale), Label: "Female"},
		},
	},

	KeyHeight: {Key: KeyHeight, Kind: KindNumber, Prompt: "What is your height, cm?", Min: 100, Max: 250},
	KeyWeight: {Key: KeyWeight, Kind: KindNumber, Prompt: "What is your weight, kg?", Min: 20, Max: 300},
	KeyChestCircumference: {
		Key: KeyChestCircumference, Kind: KindNumber, Optional: true,
		Prompt: "Chest circumference, cm (optional)", Min: 30, Max: 250,
	},
	KeyWaistCircumference: {
		Key: KeyWaistCircumference, Kind: KindNumber, Optional: true,
		Prompt: "Waist circumference, cm (optional)", Min: 30, Max: 250,
	},
	KeyHipsCircumference: {
		Key: KeyHipsCircumference, Kind: KindNumber, Optional: true,
		Prompt: "Hip circumference, cm (optional)", Min: 30, Max: 250,
	},

	KeyStoolFrequency: {
		Key: KeyStoolFrequency, Kind: KindChoice,
		Prompt: "How often do you have a bowel movement?",
		Options: []Option{
			{Value: string(domain.StoolTwoThreePerDay), Label: "2-3 times a day"},
			{Value: string(domain.StoolDaily), Label: "Once a day"},
			{Value: string(domain.StoolEveryOneTwo), Label: "Once every 1-2 days"},
			{Value: string(domain.StoolEveryTwoThree), Label: "Once every 2-3 days"},
			{Value: string(domain.StoolEveryThreeFive), Label: "Once every 3-5 days"},
		},
	},
	KeyStoolCharacter: {
		Key: KeyStoolCharacter, Kind: KindChoice,
		Prompt: "What is the usual stool consistency?",
		Options: []Option{
			{Value: string(domain.StoolCharNormal), Label: "Formed, normal"},
			{Value: string(domain.StoolCharHard), Label: "Hard"},
			{Value: string(domain.StoolCharLoose), Label: "Loose"},
			{Value: string(domain.StoolCharMixed), Label: "Sometimes hard, sometimes loose"},
			{Value: string(domain.StoolCharAlternating), Label: "Alternating"},
		},
	},

	KeyMenstrualCycle: {
		Key: KeyMenstrualCycle, Kind: KindChoice, FemaleOnly: true,
		Prompt: "How would you describe your menstrual cycle?",
		Options: []Option{
			{Value: string(domain.CycleNone), Label: "I have no cycle"},
			{Value: string(domain.CycleRegular), Label: "Regular"},
			{Value: string(domain.CycleIrregular), Label: "Irregular"},
		},
	},

	KeyEnergyLevel:  {Key: KeyEnergyLevel, Kind: KindScale, Prompt: "Rate your energy level (1-5)", Min: 1, Max: 5},
	KeyStressLevel:  {Key: KeyStressLevel, Kind: KindScale, Prompt: "Rate your stress level: 1 = constant stress, 5 = calm", Min: 1, Max: 5},
	KeySleepQuality: {Key: KeySleepQuality, Kind: KindScale, Prompt: "Rate your sleep quality (1-5)", Min: 1, Max: 5},

	KeyConcentration: {Key: KeyConcentration, Kind: KindYesNo, Prompt: "Do you notice reduced concentration?"},
	KeyIrritability:  {Key: KeyIrritability, Kind: KindYesNo, Prompt: "Do you feel irritable during the day?"},
	KeySleepiness:    {Key: KeySleepiness, Kind: KindYesNo, Prompt: "Do you feel sleepy during the day?"},

	KeyAppetite: {
		Key: KeyAppetite, Kind: KindChoice,
		Prompt: "How is your appetite?",
		Options: []Option{
			{Value: string(domain.AppetiteNormal), Label: "Normal"},
			{Value: string(domain.AppetiteIncreased), Label: "Increased"},
			{Value: string(domain.AppetiteDecreased), Label: "Decreased"},
		},
	},
	KeySugarCraving: {Key: KeySugarCraving, Kind: KindYesNo, Prompt: "Do you crave sweets?"},
	KeyFatCraving:   {Key: KeyFatCraving, Kind: KindYesNo, Prompt: "Do you crave fatty food?"},

	KeyShortnessOfBreath: {Key: KeyShortnessOfBreath, Kind: KindYesNo, Prompt: "Do you experience shortness of breath or palpitations?"},
	KeyColdHandsFeet:     {Key: KeyColdHandsFeet, Kind: KindYesNo, Prompt: "Do you often have cold hands and feet?"},
	KeySkinItch:          {Key: KeySkinItch, Kind: KindYesNo, Prompt: "Do you experience skin itching?"},
	KeyBlueSclera:        {Key: KeyBlueSclera, Kind: KindYesNo, Prompt: "Do your scleras have a bluish tint?"},
	KeyHeadaches:         {Key: KeyHeadaches, Kind: KindYesNo, Prompt: "Do you suffer from headaches?"},
	KeyOilySkin:          {Key: KeyOilySkin, Kind: KindYesNo, Prompt: "Is your facial skin oily?"},
	KeyDrySkin:           {Key: KeyDrySkin, Kind: KindYesNo, Prompt: "Is your facial skin dry?"},
	KeyLowLibido:         {Key: KeyLowLibido, Kind: KindYesNo, Prompt: "Have you noticed reduced libido?"},
	KeyVaginalItch:       {Key: KeyVaginalItch, Kind: KindYesNo, FemaleOnly: true, Prompt: "Do you experience vaginal itching?"},
	KeyJointPain:         {Key: KeyJointPain, Kind: KindYesNo, Prompt: "Do you have joint pain?"},
	KeyAbdominalCramps:   {Key: KeyAbdominalCramps, Kind: KindYesNo, Prompt: "Do you have abdominal pain or cramps?"},
	KeyGas:               {Key: KeyGas, Kind: KindYesNo, Prompt: "Do you experience excessive gas?"},
	KeyHairLoss:          {Key: KeyHairLoss, Kind: KindYesNo, Prompt: "Have you noticed hair loss?"},
	KeyDryMouth:          {Key: KeyDryMouth, Kind: KindYesNo, Prompt: "Do you experience dry mouth?"},

	KeyAverageSteps: {Key: KeyAverageSteps, Kind: KindNumber, Prompt: "How many steps do you average per day?", Min: 0, Max: 100000},
	KeyActivityFrequency: {
		Key: KeyActivityFrequency, Kind: KindChoice,
		Prompt: "How often do you train in addition to walking?",
		Options: []Option{
			{Value: string(domain.ActivityNone), Label: "I don't"},
			{Value: string(domain.ActivityOneTwo), Label: "1-2 times a week"},
			{Value: string(domain.ActivityThreePlus), Label: "3 or more times a week"},
		},
	},
}

// Lookup returns the schema entry for a key.
func Lookup(key Key) (Question, bool) {
	q, ok := questions[key]
	return q, ok
}

// Answer is the tagged union stored in the accumulator. Exactly one variant
// is meaningful, declared by Kind; Skipped marks an explicit or automatic
// null answer.
type Answer struct {
	Kind    Kind
	Number  float64
	Yes     bool
	Choice  string
	Skipped bool
}
