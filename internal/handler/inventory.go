package handler

import (
	"net/http"

	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/apierror"
	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/dto"
	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	svc service.LedgerService
	// defaultThreshold applies when the low-stock query omits the threshold.
	defaultThreshold int
}

func NewInventoryHandler(svc service.LedgerService, defaultThreshold int) *InventoryHandler {
	return &InventoryHandler{svc: svc, defaultThreshold: defaultThreshold}
}

// Set godoc
// @Summary  Set the absolute stock quantity of a product
// @Tags     inventory
// @Accept   json
// @Produce  json
// @Param    product_id path string true "product id"
// @Param    request body dto.SetInventoryRequest true "new quantity"
// @Success  200 {object} dto.StockChangeResponse
// @Failure  400 {object} apierror.APIError
// @Failure  404 {object} apierror.APIError
// @Router   /v1/inventory/{product_id} [put]
func (h *InventoryHandler) Set(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("product_id is not a valid UUID"))
		return
	}
	var req dto.SetInventoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetQuantity(c.Request.Context(), productID, *req.NewQuantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Levels lists every product with its current quantity, lowest stock first.
func (h *InventoryHandler) Levels(c *gin.Context) {
	resp, err := h.svc.Levels(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LowStock lists products at or below the threshold (default from config).
func (h *InventoryHandler) LowStock(c *gin.Context) {
	var filter dto.LowStockFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	threshold := h.defaultThreshold
	if filter.Threshold != nil {
		threshold = *filter.Threshold
	}
	resp, err := h.svc.LowStock(c.Request.Context(), threshold)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// History godoc
// @Summary  Inventory change ledger of a product, newest first
// @Tags     inventory
// @Produce  json
// @Param    product_id path string true "product id"
// @Success  200 {array} dto.InventoryHistoryResponse
// @Failure  404 {object} apierror.APIError
// @Router   /v1/inventory/{product_id}/history [get]
func (h *InventoryHandler) History(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("product_id is not a valid UUID"))
		return
	}
	resp, err := h.svc.History(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
