package entities

import (
	"errors"
)

// Common errors
var (
	ErrRecipeNotFound = errors.New("recipe not found")
)

// Recipe represents a single recipe record in the collection
type Recipe struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
}

// Normalize makes sure a recipe serializes with an empty ingredient list instead of null
func (r Recipe) Normalize() Recipe {
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	return r
}

// NextRecipeID returns the id a newly created recipe receives: max existing id plus one
func NextRecipeID(recipes []Recipe) int {
	maxID := 0
	for _, r := range recipes {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	return maxID + 1
}

// FindRecipeIndex returns the position of the first recipe with the given id, or -1
func FindRecipeIndex(recipes []Recipe, id int) int {
	for i, r := range recipes {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// DuplicateRecipeIDs returns every id that occurs more than once, in order of first repeat
func DuplicateRecipeIDs(recipes []Recipe) []int {
	seen := make(map[int]int, len(recipes))
	var dups []int
	for _, r := range recipes {
		seen[r.ID]++
		if seen[r.ID] == 2 {
			dups = append(dups, r.ID)
		}
	}
	return dups
}
