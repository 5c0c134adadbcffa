package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/epiceriemtl/epicerie_backend/models"
	"github.com/epiceriemtl/epicerie_backend/workflow"
	"github.com/gin-gonic/gin"
)

func submitPriceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		var input models.NewPrix
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		prix, err := models.SubmitCommunityPrice(c.Request.Context(), userId, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, prix)
	}
}

func submitDealHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		var input models.NewDeal
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		prix, err := models.SubmitDeal(c.Request.Context(), userId, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, prix)
	}
}

func confirmPriceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		prixId, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price id"})
			return
		}
		result, err := workflow.ConfirmPrice(c.Request.Context(), userId, prixId)
		if err != nil {
			respondError(c, err)
			return
		}
		// first-time and repeat confirmations both answer 200; the body's
		// created flag is what tells them apart, so client retries stay safe
		c.JSON(http.StatusOK, result)
	}
}

func reportPriceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := sessionUserId(c)
		prixId, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price id"})
			return
		}
		var input models.NewReport
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		report, created, err := models.ReportPrice(c.Request.Context(), userId, prixId, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, reportResponse(report, created))
	}
}

// reportResponse keeps the wire body to a status/message pair. The raw row
// embeds the reporter's user record, which must not leave the server.
func reportResponse(report *models.Report, created bool) gin.H {
	if created {
		return gin.H{
			"status":    "success",
			"message":   "Signalement enregistré.",
			"report_id": report.ID,
		}
	}
	return gin.H{
		"status":    "info",
		"message":   "Vous avez déjà signalé ce prix.",
		"report_id": report.ID,
	}
}

func optimizeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request workflow.OptimizeRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		results, err := workflow.OptimizeShoppingList(c.Request.Context(), &request, time.Now())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, results)
	}
}
