package models

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/epiceriemtl/epicerie_backend/config"
	"github.com/epiceriemtl/epicerie_backend/utils"
)

// Recipe is a user-owned recipe. Ingredients are stored as a JSON array of
// free-form strings so the shopping list can be fed directly from them.
type Recipe struct {
	ID          int             `gorm:"primary_key" json:"id"`
	UserId      int             `gorm:"not null;index" json:"user_id"`
	Nom         string          `gorm:"size:255;not null" json:"nom" binding:"required"`
	Description string          `gorm:"size:1000" json:"description"`
	Ingredients json.RawMessage `gorm:"type:json" json:"ingredients"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewRecipe struct {
	Nom         string   `json:"nom" binding:"required"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
}

func GetRecipes(ctx context.Context, userId int) ([]*Recipe, error) {
	db := config.GetDB()
	var results []*Recipe
	err := db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("nom").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func CreateRecipe(ctx context.Context, userId int, input *NewRecipe) (*Recipe, error) {
	ingredients, err := marshalIngredients(input.Ingredients)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	recipe := Recipe{
		UserId:      userId,
		Nom:         strings.TrimSpace(input.Nom),
		Description: input.Description,
		Ingredients: ingredients,
	}
	if err := db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func UpdateRecipe(ctx context.Context, userId int, id int, input *NewRecipe) (*Recipe, error) {
	ingredients, err := marshalIngredients(input.Ingredients)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	recipe, err := utils.FetchOwnedModel[Recipe](ctx, userId, id)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(recipe).Updates(map[string]interface{}{
		"nom":         strings.TrimSpace(input.Nom),
		"description": input.Description,
		"ingredients": ingredients,
	}).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

func DeleteRecipe(ctx context.Context, userId int, id int) error {
	db := config.GetDB()
	recipe, err := utils.FetchOwnedModel[Recipe](ctx, userId, id)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(recipe).Error
}

// Ingredients returns the decoded ingredient lines.
func (r *Recipe) IngredientLines() ([]string, error) {
	if len(r.Ingredients) == 0 {
		return []string{}, nil
	}
	var lines []string
	if err := json.Unmarshal(r.Ingredients, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// AddRecipeToShoppingList copies every non-blank ingredient line of one of
// the user's recipes onto their shopping list.
func AddRecipeToShoppingList(ctx context.Context, userId int, recipeId int) (int, error) {
	recipe, err := utils.FetchOwnedModel[Recipe](ctx, userId, recipeId)
	if err != nil {
		return 0, err
	}
	lines, err := recipe.IngredientLines()
	if err != nil {
		return 0, err
	}
	added := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if _, err := AddShoppingListItem(ctx, userId, &NewShoppingListItem{Nom: line}); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

func marshalIngredients(lines []string) (json.RawMessage, error) {
	if lines == nil {
		lines = []string{}
	}
	encoded, err := json.Marshal(lines)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(encoded), nil
}
