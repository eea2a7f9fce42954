package handlers

import (
	"net/http"

	"toy_store_backend/internal/models"
	"toy_store_backend/internal/repositories"
	"toy_store_backend/internal/services"
	"toy_store_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	saleService services.SaleService
	pager       Pagination
}

func NewSaleHandler(ss services.SaleService, pager Pagination) *SaleHandler {
	return &SaleHandler{saleService: ss, pager: pager}
}

// saleFilterFromQuery parses ?client= and ?saleDate=. Malformed values are
// reported per field.
func saleFilterFromQuery(c *gin.Context) (repositories.SaleFilter, map[string]string) {
	var filter repositories.SaleFilter
	fields := map[string]string{}

	if raw := c.Query("client"); raw != "" {
		id, err := utils.StrToInt64(raw)
		if err != nil {
			fields["client"] = "Select a valid choice. That choice is not one of the available choices."
		} else {
			filter.ClientID = &id
		}
	}
	if raw := c.Query("saleDate"); raw != "" {
		d, err := models.ParseDate(raw)
		if err != nil {
			fields["saleDate"] = "Enter a valid date."
		} else {
			filter.SaleDate = &d
		}
	}

	if len(fields) > 0 {
		return filter, fields
	}
	return filter, nil
}

// GetSales handles GET /sales/.
func (h *SaleHandler) GetSales(c *gin.Context) {
	filter, fieldErrs := saleFilterFromQuery(c)
	if fieldErrs != nil {
		utils.RespondValidationFailed(c, "Invalid filter parameters.", fieldErrs)
		return
	}

	page, ok := h.pager.PageFromRequest(c)
	if !ok {
		return
	}

	sales, totalCount, err := h.saleService.GetSales(c.Request.Context(), filter, page)
	if err != nil {
		respondServiceError(c, err, "GetSales")
		return
	}
	if sales == nil {
		sales = []models.Sale{}
	}
	h.pager.Respond(c, page, totalCount, sales)
}

// CreateSale handles POST /sales/. saleDate is always today.
func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req services.CreateSaleRequest
	if !bindJSON(c, &req, "CreateSale") {
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreateSale")
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (h *SaleHandler) GetSaleByID(c *gin.Context) {
	saleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	sale, err := h.saleService.GetSaleByID(c.Request.Context(), saleID)
	if err != nil {
		respondServiceError(c, err, "GetSaleByID")
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *SaleHandler) ReplaceSale(c *gin.Context) {
	saleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.CreateSaleRequest
	if !bindJSON(c, &req, "ReplaceSale") {
		return
	}

	sale, err := h.saleService.ReplaceSale(c.Request.Context(), saleID, req)
	if err != nil {
		respondServiceError(c, err, "ReplaceSale")
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *SaleHandler) UpdateSale(c *gin.Context) {
	saleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateSaleRequest
	if !bindJSON(c, &req, "UpdateSale") {
		return
	}

	sale, err := h.saleService.UpdateSale(c.Request.Context(), saleID, req)
	if err != nil {
		respondServiceError(c, err, "UpdateSale")
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *SaleHandler) DeleteSale(c *gin.Context) {
	saleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), saleID); err != nil {
		respondServiceError(c, err, "DeleteSale")
		return
	}
	c.Status(http.StatusNoContent)
}
