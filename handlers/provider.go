package handlers

import (
	"net/http"

	"festa/services/availability"
	"festa/services/catalog"
	"festa/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProviderHandler exposes catalog management and the provider calendar.
type ProviderHandler struct {
	Svc    catalog.CatalogService
	Ledger availability.Ledger
}

func NewProviderHandler(svc catalog.CatalogService, ledger availability.Ledger) *ProviderHandler {
	return &ProviderHandler{Svc: svc, Ledger: ledger}
}

// CreateProviderHandler handles POST /api/providers.
func (h *ProviderHandler) CreateProviderHandler(c *gin.Context) {
	sess, ok := providerSession(c)
	if !ok {
		return
	}

	var input catalog.CreateProviderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.GetLogger().Warn("Invalid create provider request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	provider, err := h.Svc.CreateProvider(sess, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, provider)
}

// UpdateProviderHandler handles PATCH /api/providers/:id.
func (h *ProviderHandler) UpdateProviderHandler(c *gin.Context) {
	sess, ok := providerSession(c)
	if !ok {
		return
	}

	var patch catalog.UpdateProviderInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	provider, err := h.Svc.UpdateProvider(sess, c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, provider)
}

// GetProviderHandler handles GET /api/providers/:id.
func (h *ProviderHandler) GetProviderHandler(c *gin.Context) {
	provider, err := h.Svc.GetProvider(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, provider)
}

// GetOwnProviderHandler handles GET /api/providers/me.
func (h *ProviderHandler) GetOwnProviderHandler(c *gin.Context) {
	sess, ok := providerSession(c)
	if !ok {
		return
	}
	provider, err := h.Svc.GetProviderByOwner(sess.UserID())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, provider)
}

// AddPackageHandler handles POST /api/providers/:id/packages.
func (h *ProviderHandler) AddPackageHandler(c *gin.Context) {
	sess, ok := providerSession(c)
	if !ok {
		return
	}

	var input catalog.PackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pkg, err := h.Svc.AddPackage(sess, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pkg)
}

// UpdatePackageHandler handles PUT /api/providers/:id/packages/:pkgID.
func (h *ProviderHandler) UpdatePackageHandler(c *gin.Context) {
	sess, ok := providerSession(c)
	if !ok {
		return
	}

	var input catalog.PackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pkg, err := h.Svc.UpdatePackage(sess, c.Param("id"), c.Param("pkgID"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkg)
}

// CalendarHandler handles GET /api/providers/:id/calendar?from=&to=.
func (h *ProviderHandler) CalendarHandler(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to query parameters are required"})
		return
	}

	slots, err := h.Ledger.Calendar(c.Param("id"), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
