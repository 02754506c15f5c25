// Package meals keeps the per-day meal log. The whole log lives under a
// single key so it survives restarts of the device.
package meals

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"gym-buddy-bot/internal/apperrors"
	"gym-buddy-bot/internal/db"
	"gym-buddy-bot/internal/models"
)

// StorageKey is where the log is persisted.
const StorageKey = "meals"

// DateLayout is the format of log dates.
const DateLayout = "2006-01-02"

var MealTypes = []string{"Breakfast", "Lunch", "Dinner", "Snack"}

var (
	ErrMissingFields   = apperrors.NewValidationError("meal", "Fill in the food, calories and protein.")
	ErrInvalidMealType = apperrors.NewValidationError("meal_type", "Meal type must be Breakfast, Lunch, Dinner or Snack.")
	ErrInvalidCalories = apperrors.NewValidationError("calories", "Calories must be a whole number.")
	ErrInvalidProtein  = apperrors.NewValidationError("protein", "Protein must be a whole number.")
	ErrInvalidDate     = apperrors.NewValidationError("date", "Dates look like 2025-03-14.")
)

type mealInput struct {
	Date     string `validate:"required,datetime=2006-01-02"`
	MealType string `validate:"required,oneof=Breakfast Lunch Dinner Snack"`
	Food     string `validate:"required"`
	Calories string `validate:"required,number"`
	Protein  string `validate:"required,number"`
}

type Log struct {
	store    db.Store
	validate *validator.Validate
	newID    func() string
}

func NewLog(store db.Store) *Log {
	return &Log{
		store:    store,
		validate: validator.New(),
		newID:    uuid.NewString,
	}
}

// AddMeal appends an entry to date and persists the whole log.
func (l *Log) AddMeal(ctx context.Context, date, mealType, food, calories, protein string) (models.MealEntry, error) {
	in := mealInput{
		Date:     strings.TrimSpace(date),
		MealType: normalizeMealType(mealType),
		Food:     strings.TrimSpace(food),
		Calories: strings.TrimSpace(calories),
		Protein:  strings.TrimSpace(protein),
	}
	if err := l.check(in); err != nil {
		return models.MealEntry{}, err
	}

	cal, err := strconv.Atoi(in.Calories)
	if err != nil {
		return models.MealEntry{}, ErrInvalidCalories
	}
	prot, err := strconv.Atoi(in.Protein)
	if err != nil {
		return models.MealEntry{}, ErrInvalidProtein
	}

	log, err := l.load(ctx)
	if err != nil {
		return models.MealEntry{}, err
	}

	entry := models.MealEntry{
		ID:       l.newID(),
		MealType: in.MealType,
		Food:     in.Food,
		Calories: cal,
		Protein:  prot,
	}
	log[in.Date] = append(log[in.Date], entry)

	if err := db.SetJSON(ctx, l.store, StorageKey, log); err != nil {
		return models.MealEntry{}, fmt.Errorf("failed to save meals: %w", err)
	}
	return entry, nil
}

// Meals lists the entries logged for date.
func (l *Log) Meals(ctx context.Context, date string) ([]models.MealEntry, error) {
	log, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	return log[strings.TrimSpace(date)], nil
}

// DailyTotals sums calories and protein over the day's entries.
func (l *Log) DailyTotals(ctx context.Context, date string) (models.MealTotals, error) {
	entries, err := l.Meals(ctx, date)
	if err != nil {
		return models.MealTotals{}, err
	}
	var totals models.MealTotals
	for _, e := range entries {
		totals.Calories += e.Calories
		totals.Protein += e.Protein
	}
	return totals, nil
}

// Dates lists the days with at least one entry, sorted.
func (l *Log) Dates(ctx context.Context) ([]string, error) {
	log, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(log))
	for d, entries := range log {
		if len(entries) > 0 {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

func (l *Log) load(ctx context.Context) (map[string][]models.MealEntry, error) {
	log := make(map[string][]models.MealEntry)
	err := db.GetJSON(ctx, l.store, StorageKey, &log)
	if errors.Is(err, db.ErrNotFound) {
		return log, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load meals: %w", err)
	}
	if log == nil {
		log = make(map[string][]models.MealEntry)
	}
	return log, nil
}

func (l *Log) check(in mealInput) error {
	err := l.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	if fe.Tag() == "required" {
		return ErrMissingFields
	}
	switch fe.Field() {
	case "Date":
		return ErrInvalidDate
	case "MealType":
		return ErrInvalidMealType
	case "Calories":
		return ErrInvalidCalories
	case "Protein":
		return ErrInvalidProtein
	}
	return ErrMissingFields
}

func normalizeMealType(s string) string {
	s = strings.TrimSpace(s)
	for _, t := range MealTypes {
		if strings.EqualFold(s, t) {
			return t
		}
	}
	return s
}
