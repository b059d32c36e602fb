package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bezzego/healthy-bot-AI/internal/domain"
	"github.com/bezzego/healthy-bot-AI/internal/outbox"
)

// QuestionnaireRepository is the Postgres implementation of
// domain.QuestionnaireRepository. Creation also enqueues the completion event
// in the same transaction.
type QuestionnaireRepository struct {
	pool *pgxpool.Pool
}

func NewQuestionnaireRepository(pool *pgxpool.Pool) *QuestionnaireRepository {
	return &QuestionnaireRepository{pool: pool}
}

const questionnaireColumns = `id, user_id, type, gender, height, weight,
    chest_circumference, waist_circumference, hips_circumference,
    stool_frequency, stool_character, menstrual_cycle,
    energy_level, stress_level, sleep_quality,
    concentration, irritability, sleepiness, headaches, shortness_of_breath,
    cold_hands_feet, skin_itch, blue_sclera, oily_skin, dry_skin, low_libido,
    vaginal_itch, joint_pain, abdominal_cramps, gas, hair_loss, dry_mouth,
    appetite, sugar_craving, fat_craving, average_steps, activity_frequency,
    bmi, health_score, general_score,
    recommended_calories, recommended_protein, recommended_fats, recommended_carbs, recommended_water,
    created_at`

func (r *QuestionnaireRepository) Create(ctx context.Context, result *domain.QuestionnaireResult) error {
	touchTimestamps(&result.CreatedAt)

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const query = `
        INSERT INTO questionnaire_results (user_id, type, gender, height, weight,
            chest_circumference, waist_circumference, hips_circumference,
            stool_frequency, stool_character, menstrual_cycle,
            energy_level, stress_level, sleep_quality,
            concentration, irritability, sleepiness, headaches, shortness_of_breath,
            cold_hands_feet, skin_itch, blue_sclera, oily_skin, dry_skin, low_libido,
            vaginal_itch, joint_pain, abdominal_cramps, gas, hair_loss, dry_mouth,
            appetite, sugar_craving, fat_craving, average_steps, activity_frequency,
            bmi, health_score, general_score,
            recommended_calories, recommended_protein, recommended_fats, recommended_carbs, recommended_water,
            created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,
            $21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34,$35,$36,$37,$38,$39,
            $40,$41,$42,$43,$44,$45)
        RETURNING id`

	err = tx.QueryRow(ctx, query,
		result.UserID, result.Type, result.Gender, result.Height, result.Weight,
		result.ChestCircumference, result.WaistCircumference, result.HipsCircumference,
		nullIfEmpty(string(result.StoolFrequency)), nullIfEmpty(string(result.StoolCharacter)), nullIfEmpty(string(result.MenstrualCycle)),
		result.EnergyLevel, result.StressLevel, result.SleepQuality,
		result.Concentration, result.Irritability, result.Sleepiness, result.Headaches, result.ShortnessOfBreath,
		result.ColdHandsFeet, result.SkinItch, result.BlueSclera, result.OilySkin, result.DrySkin, result.LowLibido,
		result.VaginalItch, result.JointPain, result.AbdominalCramps, result.Gas, result.HairLoss, result.DryMouth,
		nullIfEmpty(string(result.Appetite)), result.SugarCraving, result.FatCraving, result.AverageSteps, nullIfEmpty(string(result.ActivityFrequency)),
		result.BMI, result.HealthScore, result.GeneralScore,
		result.RecommendedCalories, result.RecommendedProtein, result.RecommendedFats, result.RecommendedCarbs, result.RecommendedWater,
		result.CreatedAt,
	).Scan(&result.ID)
	if err != nil {
		return fmt.Errorf("insert questionnaire result: %w", err)
	}

	err = outbox.Enqueue(ctx, tx, outbox.EventQuestionnaireCompleted, result.UserID, outbox.QuestionnaireCompletedPayload{
		UserID:              result.UserID,
		Type:                string(result.Type),
		BMI:                 result.BMI,
		HealthScore:         result.HealthScore,
		GeneralScore:        result.GeneralScore,
		RecommendedCalories: result.RecommendedCalories,
		CompletedAt:         result.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *QuestionnaireRepository) Latest(ctx context.Context, userID int64, typ domain.QuestionnaireType) (*domain.QuestionnaireResult, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT `+questionnaireColumns+`
        FROM questionnaire_results
        WHERE user_id = $1 AND type = $2
        ORDER BY created_at DESC
        LIMIT 1`, userID, typ)

	var q domain.QuestionnaireResult
	var stoolFrequency, stoolCharacter, menstrualCycle, appetite, activityFrequency *string
	err := row.Scan(&q.ID, &q.UserID, &q.Type, &q.Gender, &q.Height, &q.Weight,
		&q.ChestCircumference, &q.WaistCircumference, &q.HipsCircumference,
		&stoolFrequency, &stoolCharacter, &menstrualCycle,
		&q.EnergyLevel, &q.StressLevel, &q.SleepQuality,
		&q.Concentration, &q.Irritability, &q.Sleepiness, &q.Headaches, &q.ShortnessOfBreath,
		&q.ColdHandsFeet, &q.SkinItch, &q.BlueSclera, &q.OilySkin, &q.DrySkin, &q.LowLibido,
		&q.VaginalItch, &q.JointPain, &q.AbdominalCramps, &q.Gas, &q.HairLoss, &q.DryMouth,
		&appetite, &q.SugarCraving, &q.FatCraving, &q.AverageSteps, &activityFrequency,
		&q.BMI, &q.HealthScore, &q.GeneralScore,
		&q.RecommendedCalories, &q.RecommendedProtein, &q.RecommendedFats, &q.RecommendedCarbs, &q.RecommendedWater,
		&q.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load latest questionnaire: %w", err)
	}

	q.StoolFrequency = domain.StoolFrequency(orEmpty(stoolFrequency))
	q.StoolCharacter = domain.StoolCharacter(orEmpty(stoolCharacter))
	q.MenstrualCycle = domain.MenstrualCycle(orEmpty(menstrualCycle))
	q.Appetite = domain.Appetite(orEmpty(appetite))
	q.ActivityFrequency = domain.ActivityFrequency(orEmpty(activityFrequency))
	return &q, nil
}

func nullIfEmpty(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func orEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
