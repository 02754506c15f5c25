package models

type MealEntry struct {
	ID       string `json:"id"`
	MealType string `json:"mealType"`
	Food     string `json:"food"`
	Calories int    `json:"calories"`
	Protein  int    `json:"protein"`
}

// MealTotals is derived on every read and never stored.
type MealTotals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
}
