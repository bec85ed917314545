package handlers

import (
	"net/http"
	"strconv"

	"festa/models"
	"festa/services/search"

	"github.com/gin-gonic/gin"
)

// SearchHandler exposes catalog search.
type SearchHandler struct {
	Svc search.SearchService
}

func NewSearchHandler(svc search.SearchService) *SearchHandler {
	return &SearchHandler{Svc: svc}
}

// SearchProvidersHandler handles GET /api/providers with optional query
// parameters: q, location, category, date, minPrice, maxPrice, minRating.
func (h *SearchHandler) SearchProvidersHandler(c *gin.Context) {
	filters := models.SearchFilters{
		Query:    c.Query("q"),
		Location: c.Query("location"),
		Category: models.Category(c.Query("category")),
		Date:     c.Query("date"),
	}

	if filters.Category != "" && !filters.Category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}

	minPriceStr, maxPriceStr := c.Query("minPrice"), c.Query("maxPrice")
	if minPriceStr != "" || maxPriceStr != "" {
		pr := models.PriceRange{Min: 0, Max: int(^uint(0) >> 1)}
		if minPriceStr != "" {
			v, err := strconv.Atoi(minPriceStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "minPrice must be an integer"})
				return
			}
			pr.Min = v
		}
		if maxPriceStr != "" {
			v, err := strconv.Atoi(maxPriceStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "maxPrice must be an integer"})
				return
			}
			pr.Max = v
		}
		filters.Price = &pr
	}

	if ratingStr := c.Query("minRating"); ratingStr != "" {
		v, err := strconv.ParseFloat(ratingStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minRating must be a number"})
			return
		}
		filters.MinRating = v
	}

	providers, err := h.Svc.Search(filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers, "count": len(providers)})
}
