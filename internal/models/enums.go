// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

// Package models defines the domain entities, closed enumerations, and
// request/response types shared across the API, database, and engine layers.
//
// Enumerations are declared once here and reused by both the persisted-entity
// validators and the recommendation filter builder so the two cannot drift.
package models

// SpiceLevel is the heat rating of a recipe. The levels form a total order
// (mild < medium < hot < extra_hot) used for preference ceilings.
type SpiceLevel string

// Spice levels in ascending heat order.
const (
	SpiceMild     SpiceLevel = "mild"
	SpiceMedium   SpiceLevel = "medium"
	SpiceHot      SpiceLevel = "hot"
	SpiceExtraHot SpiceLevel = "extra_hot"
)

// SpiceLevels lists all spice levels in ascending heat order.
var SpiceLevels = []SpiceLevel{SpiceMild, SpiceMedium, SpiceHot, SpiceExtraHot}

// SpiceLevelsOneOf is the validator tag parameter for spice level fields.
const SpiceLevelsOneOf = "mild medium hot extra_hot"

// Rank returns the position of the level in the total order, or -1 if the
// level is not recognized.
func (s SpiceLevel) Rank() int {
	for i, level := range SpiceLevels {
		if level == s {
			return i
		}
	}
	return -1
}

// Valid reports whether the level is a member of the closed set.
func (s SpiceLevel) Valid() bool {
	return s.Rank() >= 0
}

// SpiceLevelsUpTo returns the prefix of the spice order up to and including
// the given ceiling. An unrecognized ceiling admits every level.
func SpiceLevelsUpTo(ceiling SpiceLevel) []SpiceLevel {
	rank := ceiling.Rank()
	if rank < 0 {
		return SpiceLevels
	}
	return SpiceLevels[:rank+1]
}

// Difficulty is the preparation difficulty of a recipe.
type Difficulty string

// Recipe difficulties.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists all recipe difficulties.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// DifficultiesOneOf is the validator tag parameter for difficulty fields.
const DifficultiesOneOf = "easy medium hard"

// Valid reports whether the difficulty is a member of the closed set.
func (d Difficulty) Valid() bool {
	for _, difficulty := range Difficulties {
		if difficulty == d {
			return true
		}
	}
	return false
}

// ExperienceLevel is a user's self-reported cooking experience.
type ExperienceLevel string

// Cooking experience levels.
const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
	ExperienceProfessional ExperienceLevel = "professional"
)

// ExperienceLevels lists all cooking experience levels.
var ExperienceLevels = []ExperienceLevel{
	ExperienceBeginner,
	ExperienceIntermediate,
	ExperienceAdvanced,
	ExperienceProfessional,
}

// ExperienceLevelsOneOf is the validator tag parameter for experience fields.
const ExperienceLevelsOneOf = "beginner intermediate advanced professional"

// Valid reports whether the level is a member of the closed set.
func (e ExperienceLevel) Valid() bool {
	for _, level := range ExperienceLevels {
		if level == e {
			return true
		}
	}
	return false
}

// AllowedDifficulties maps an experience level to the recipe difficulties a
// user at that level should be recommended. Unknown levels default to easy
// recipes only.
func (e ExperienceLevel) AllowedDifficulties() []Difficulty {
	switch e {
	case ExperienceBeginner:
		return []Difficulty{DifficultyEasy}
	case ExperienceIntermediate:
		return []Difficulty{DifficultyEasy, DifficultyMedium}
	case ExperienceAdvanced, ExperienceProfessional:
		return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
	default:
		return []Difficulty{DifficultyEasy}
	}
}

// Cuisine is a recipe's cuisine classification.
type Cuisine string

// Supported cuisines.
const (
	CuisineItalian       Cuisine = "italian"
	CuisineMexican       Cuisine = "mexican"
	CuisineIndian        Cuisine = "indian"
	CuisineChinese       Cuisine = "chinese"
	CuisineJapanese      Cuisine = "japanese"
	CuisineThai          Cuisine = "thai"
	CuisineFrench        Cuisine = "french"
	CuisineMediterranean Cuisine = "mediterranean"
	CuisineAmerican      Cuisine = "american"
	CuisineMiddleEastern Cuisine = "middle_eastern"
	CuisineKorean        Cuisine = "korean"
	CuisineOther         Cuisine = "other"
)

// Cuisines lists all supported cuisines.
var Cuisines = []Cuisine{
	CuisineItalian, CuisineMexican, CuisineIndian, CuisineChinese,
	CuisineJapanese, CuisineThai, CuisineFrench, CuisineMediterranean,
	CuisineAmerican, CuisineMiddleEastern, CuisineKorean, CuisineOther,
}

// CuisinesOneOf is the validator tag parameter for cuisine fields.
const CuisinesOneOf = "italian mexican indian chinese japanese thai french mediterranean american middle_eastern korean other"

// Valid reports whether the cuisine is a member of the closed set.
func (c Cuisine) Valid() bool {
	for _, cuisine := range Cuisines {
		if cuisine == c {
			return true
		}
	}
	return false
}

// Category is a recipe's meal category.
type Category string

// Recipe categories.
const (
	CategoryBreakfast Category = "breakfast"
	CategoryLunch     Category = "lunch"
	CategoryDinner    Category = "dinner"
	CategoryDessert   Category = "dessert"
	CategorySnack     Category = "snack"
	CategoryAppetizer Category = "appetizer"
	CategoryBeverage  Category = "beverage"
)

// Categories lists all recipe categories.
var Categories = []Category{
	CategoryBreakfast, CategoryLunch, CategoryDinner,
	CategoryDessert, CategorySnack, CategoryAppetizer, CategoryBeverage,
}

// CategoriesOneOf is the validator tag parameter for category fields.
const CategoriesOneOf = "breakfast lunch dinner dessert snack appetizer beverage"

// Valid reports whether the category is a member of the closed set.
func (c Category) Valid() bool {
	for _, category := range Categories {
		if category == c {
			return true
		}
	}
	return false
}

// DietaryTag is a dietary preference tag on a user profile. Each recognized
// tag maps to a boolean flag on the recipe.
type DietaryTag string

// Dietary preference tags.
const (
	DietVegetarian DietaryTag = "vegetarian"
	DietVegan      DietaryTag = "vegan"
	DietGlutenFree DietaryTag = "gluten_free"
)

// DietaryTags lists all recognized dietary tags.
var DietaryTags = []DietaryTag{DietVegetarian, DietVegan, DietGlutenFree}

// DietaryTagsOneOf is the validator tag parameter for dietary tag fields.
const DietaryTagsOneOf = "vegetarian vegan gluten_free"

// WaitlistStatus is the lifecycle state of a waitlist entry.
//
// Legal transitions: waiting → invited → registered, or waiting → declined.
// MarkRegistered is deliberately looser and accepts any prior state.
type WaitlistStatus string

// Waitlist lifecycle states.
const (
	WaitlistWaiting    WaitlistStatus = "waiting"
	WaitlistInvited    WaitlistStatus = "invited"
	WaitlistRegistered WaitlistStatus = "registered"
	WaitlistDeclined   WaitlistStatus = "declined"
)

// WaitlistStatuses lists all waitlist lifecycle states.
var WaitlistStatuses = []WaitlistStatus{
	WaitlistWaiting, WaitlistInvited, WaitlistRegistered, WaitlistDeclined,
}

// WaitlistStatusesOneOf is the validator tag parameter for status fields.
const WaitlistStatusesOneOf = "waiting invited registered declined"

// Valid reports whether the status is a member of the closed set.
func (s WaitlistStatus) Valid() bool {
	for _, status := range WaitlistStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// Role names for authorization checks.
const (
	RoleUser  = "user"
	RoleChef  = "chef"
	RoleAdmin = "admin"
)
