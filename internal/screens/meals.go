package screens

import (
	"context"
	"fmt"
	"strings"

	"gym-buddy-bot/internal/meals"
)

func (d *Device) selectedMealDate(r *Router) string {
	if d.mealDate == "" {
		return r.now().Format(meals.DateLayout)
	}
	return d.mealDate
}

func (r *Router) mealTrack(ctx context.Context, d *Device, args string) (Reply, error) {
	if args != "" {
		date, err := parseDate(args)
		if err != nil {
			return Reply{}, err
		}
		d.mealDate = date
	}
	date := d.selectedMealDate(r)

	entries, err := d.Meals.Meals(ctx, date)
	if err != nil {
		return Reply{}, err
	}
	totals, err := d.Meals.DailyTotals(ctx, date)
	if err != nil {
		return Reply{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🍽 Meals for %s", date)
	if len(entries) == 0 {
		b.WriteString("\nNo meals logged.")
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "\n• %s: %s (🔥 %d kcal | 💪 %dg protein)", e.MealType, e.Food, e.Calories, e.Protein)
	}
	fmt.Fprintf(&b, "\n\n🔥 Total Calories: %d kcal\n💪 Total Protein: %d g", totals.Calories, totals.Protein)
	b.WriteString("\n\nAdd one with /addmeal <type> | <food> | <calories> | <protein>")
	return Reply{Text: b.String()}, nil
}

func (r *Router) addMeal(ctx context.Context, d *Device, args string) (Reply, error) {
	f := splitArgs(args, 4)
	date := d.selectedMealDate(r)
	entry, err := d.Meals.AddMeal(ctx, date, f[0], f[1], f[2], f[3])
	if err != nil {
		return Reply{}, err
	}
	totals, err := d.Meals.DailyTotals(ctx, date)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf("Logged %s for %s. Today so far: %d kcal, %d g protein.",
		entry.Food, entry.MealType, totals.Calories, totals.Protein)}, nil
}
