package model

// MealDBResponse is the TheMealDB filter-by-area payload. Meals is null when
// the area is unknown to the provider.
type MealDBResponse struct {
	Meals []struct {
		Name string `json:"strMeal"`
		ID   string `json:"idMeal"`
	} `json:"meals"`
}
