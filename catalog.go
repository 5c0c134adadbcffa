package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/epiceriemtl/epicerie_backend/models"
	"github.com/epiceriemtl/epicerie_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func commercesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		commerces, err := models.GetCommerces(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, commerces)
	}
}

func activeCirculairesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		flyers, err := models.GetActiveCirculaires(c.Request.Context(), time.Now())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, flyers)
	}
}

func activeFlyerPricesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		views, err := models.ActiveFlyerPrices(c.Request.Context(), time.Now())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

func activeCommunityPricesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		views, err := models.ActiveCommunityPrices(c.Request.Context(), time.Now())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

func productsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// the bare list is the empty-query search over everything
		products, err := models.SearchProduits(c.Request.Context(), c.Query("q"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func productSearchHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := models.SearchProduits(c.Request.Context(), c.Query("q"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func createProductHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewProduit
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		produit, err := models.CreateProduit(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, produit)
	}
}

func importFlyerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload models.FlyerImport
		if err := c.ShouldBindJSON(&payload); err != nil {
			var bindErrors validator.ValidationErrors
			if errors.As(err, &bindErrors) {
				c.JSON(http.StatusBadRequest, gin.H{"status": "erreur", "fields": utils.ProcessValidationErrors(err)})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		result, err := models.ImportFlyer(c.Request.Context(), &payload)
		if err != nil {
			// import faults are always answered as client errors with a
			// descriptive message, never as opaque 500s
			c.JSON(http.StatusBadRequest, gin.H{"status": "erreur", "message": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}
