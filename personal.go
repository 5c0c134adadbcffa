package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/epiceriemtl/epicerie_backend/middlewares"
	"github.com/epiceriemtl/epicerie_backend/models"
	"github.com/gin-gonic/gin"
)

// registerPersonalRoutes mounts everything scoped to the session user:
// pantry inventory, shopping list, recipes, profile and dashboard layouts.
func registerPersonalRoutes(api *gin.RouterGroup) {
	personal := api.Group("", middlewares.RequireSession())

	personal.GET("/inventory/categories/", inventoryCategoriesHandler())
	personal.POST("/inventory/categories/", createInventoryCategoryHandler())
	personal.POST("/inventory/categories/reorder/", reorderInventoryCategoriesHandler())
	personal.DELETE("/inventory/categories/:id/", deleteInventoryCategoryHandler())
	personal.GET("/inventory/", inventoryItemsHandler())
	personal.POST("/inventory/", createInventoryItemHandler())
	personal.PUT("/inventory/:id/", updateInventoryItemHandler())
	personal.DELETE("/inventory/:id/", deleteInventoryItemHandler())
	personal.POST("/inventory/import/", importInventoryHandler())

	personal.GET("/shopping-list/", shoppingListHandler())
	personal.POST("/shopping-list/", addShoppingListItemHandler())
	personal.PUT("/shopping-list/:id/", toggleShoppingListItemHandler())
	personal.DELETE("/shopping-list/:id/", deleteShoppingListItemHandler())
	personal.POST("/shopping-list/clear-checked/", clearCheckedHandler())

	personal.GET("/recipes/", recipesHandler())
	personal.POST("/recipes/", createRecipeHandler())
	personal.PUT("/recipes/:id/", updateRecipeHandler())
	personal.DELETE("/recipes/:id/", deleteRecipeHandler())
	personal.POST("/recipes/:id/add-to-list/", addRecipeToListHandler())

	personal.GET("/user/profile/", profileHandler())
	personal.GET("/user/layout", getLayoutHandler())
	personal.POST("/user/layout", saveLayoutHandler())
}

func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func inventoryCategoriesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		categories, err := models.GetInventoryCategories(c.Request.Context(), userId)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

func createInventoryCategoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		var input models.NewInventoryCategory
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		category, err := models.CreateInventoryCategory(c.Request.Context(), userId, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

type reorderRequest struct {
	OrderedIds []int `json:"ordered_ids" binding:"required"`
}

func reorderInventoryCategoriesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		var req reorderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		if err := models.ReorderInventoryCategories(c.Request.Context(), userId, req.OrderedIds); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "reordered"})
	}
}

func deleteInventoryCategoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		id, ok := pathId(c)
		if !ok {
			return
		}
		if err := models.DeleteInventoryCategory(c.Request.Context(), userId, id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func inventoryItemsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		items, err := models.GetInventoryItems(c.Request.Context(), userId)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func createInventoryItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		var input models.NewInventoryItem
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		item, err := models.CreateInventoryItem(c.Request.Context(), userId, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func updateInventoryItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		id, ok := pathId(c)
		if !ok {
			return
		}
		var input models.NewInventoryItem
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		item, err := models.UpdateInventoryItem(c.Request.Context(), userId, id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func deleteInventoryItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		id, ok := pathId(c)
		if !ok {
			return
		}
		if err := models.DeleteInventoryItem(c.Request.Context(), userId, id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func importInventoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		var payload models.InventoryImport
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		imported, err := models.ImportInventory(c.Request.Context(), userId, &payload)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"imported_count": imported})
	}
}

func shoppingListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		items, err := models.GetShoppingList(c.Request.Context(), userId)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func addShoppingListItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		var input models.NewShoppingListItem
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		item, err := models.AddShoppingListItem(c.Request.Context(), userId, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

type toggleRequest struct {
	Checked *bool `json:"checked" binding:"required"`
}

func toggleShoppingListItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		id, ok := pathId(c)
		if !ok {
			return
		}
		var req toggleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		item, err := models.ToggleShoppingListItem(c.Request.Context(), userId, id, *req.Checked)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func deleteShoppingListItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		id, ok := pathId(c)
		if !ok {
			return
		}
		if err := models.DeleteShoppingListItem(c.Request.Context(), userId, id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func clearCheckedHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		removed, err := models.ClearCheckedShoppingListItems(c.Request.Context(), userId)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed_count": removed})
	}
}

func recipesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		recipes, err := models.GetRecipes(c.Request.Context(), userId)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, recipes)
	}
}

func createRecipeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		var input models.NewRecipe
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		recipe, err := models.CreateRecipe(c.Request.Context(), userId, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, recipe)
	}
}

func updateRecipeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		id, ok := pathId(c)
		if !ok {
			return
		}
		var input models.NewRecipe
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		recipe, err := models.UpdateRecipe(c.Request.Context(), userId, id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, recipe)
	}
}

func deleteRecipeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		id, ok := pathId(c)
		if !ok {
			return
		}
		if err := models.DeleteRecipe(c.Request.Context(), userId, id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func addRecipeToListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		id, ok := pathId(c)
		if !ok {
			return
		}
		added, err := models.AddRecipeToShoppingList(c.Request.Context(), userId, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"added_count": added})
	}
}

func profileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		profile, err := models.GetProfile(c.Request.Context(), userId)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

func getLayoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		page := c.Query("page")
		layout, err := models.GetLayout(c.Request.Context(), userId, page)
		if err != nil {
			respondError(c, err)
			return
		}
		if layout == nil {
			c.JSON(http.StatusOK, gin.H{"page": page, "layout": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"page": page, "layout": layout})
	}
}

type saveLayoutRequest struct {
	Page   string          `json:"page" binding:"required"`
	Layout json.RawMessage `json:"layout" binding:"required"`
}

func saveLayoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		var req saveLayoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		if err := models.SaveLayout(c.Request.Context(), userId, req.Page, req.Layout); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "saved"})
	}
}
