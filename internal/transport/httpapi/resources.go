package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goliatone/go-catalog/entity"
	"github.com/goliatone/go-catalog/query"
)

type currencyQuery struct {
	Code           *string `form:"code"`
	CodeContains   *string `form:"code_contains"`
	Name           *string `form:"name"`
	NameContains   *string `form:"name_contains"`
	Symbol         *string `form:"symbol"`
	SymbolContains *string `form:"symbol_contains"`
}

func (q currencyQuery) filter() query.CurrencyFilter {
	return query.CurrencyFilter{
		Code:   query.StringFilter{Exact: q.Code, IContains: q.CodeContains},
		Name:   query.StringFilter{Exact: q.Name, IContains: q.NameContains},
		Symbol: query.StringFilter{Exact: q.Symbol, IContains: q.SymbolContains},
	}
}

func (h *handler) listCurrencies(c *gin.Context) {
	var q currencyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "query", err)
		return
	}
	page, ok := pageFrom(c)
	if !ok {
		return
	}
	conn, err := h.svc.ListCurrencies(c.Request.Context(), q.filter(), page)
	listed(c, conn, err)
}

func (h *handler) getCurrency(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rec, err := h.svc.GetCurrency(c.Request.Context(), id)
	found(c, "Currency", rec, err)
}

func (h *handler) createCurrency(c *gin.Context) {
	var in entity.CurrencyInput
	if !bind(c, &in) {
		return
	}
	mutated(c, http.StatusCreated, h.svc.CreateCurrency(c.Request.Context(), in))
}

func (h *handler) updateCurrency(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch entity.CurrencyPatch
	if !bind(c, &patch) {
		return
	}
	mutated(c, http.StatusOK, h.svc.UpdateCurrency(c.Request.Context(), id, patch))
}

func (h *handler) deleteCurrency(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted(c, h.svc.DeleteCurrency(c.Request.Context(), id))
}

type qrCodeQuery struct {
	ProductID    *string `form:"product_id"`
	Data         *string `form:"qr_code_data"`
	DataContains *string `form:"qr_code_data_contains"`
	ExpiryDate   *string `form:"expiry_date"`
	ExpiryBefore *string `form:"expiry_date_lt"`
	ExpiryAfter  *string `form:"expiry_date_gt"`
	Dynamic      *bool   `form:"dynamic"`
}

func (q qrCodeQuery) filter() (query.QRCodeFilter, error) {
	f := query.QRCodeFilter{
		Data:    query.StringFilter{Exact: q.Data, IContains: q.DataContains},
		Dynamic: q.Dynamic,
	}

	var err error
	if f.ProductID, err = parseUUID("product_id", q.ProductID); err != nil {
		return f, err
	}
	if f.ExpiryDate.Exact, err = parseTime("expiry_date", q.ExpiryDate); err != nil {
		return f, err
	}
	if f.ExpiryDate.Lt, err = parseTime("expiry_date_lt", q.ExpiryBefore); err != nil {
		return f, err
	}
	if f.ExpiryDate.Gt, err = parseTime("expiry_date_gt", q.ExpiryAfter); err != nil {
		return f, err
	}
	return f, nil
}

func (h *handler) listQRCodes(c *gin.Context) {
	var q qrCodeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "query", err)
		return
	}
	filter, err := q.filter()
	if err != nil {
		writeError(c, err)
		return
	}
	page, ok := pageFrom(c)
	if !ok {
		return
	}
	conn, err := h.svc.ListQRCodes(c.Request.Context(), filter, page)
	listed(c, conn, err)
}

func (h *handler) getQRCode(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rec, err := h.svc.GetQRCode(c.Request.Context(), id)
	found(c, "QR Code", rec, err)
}

func (h *handler) createQRCode(c *gin.Context) {
	var in entity.QRCodeInput
	if !bind(c, &in) {
		return
	}
	mutated(c, http.StatusCreated, h.svc.CreateQRCode(c.Request.Context(), in))
}

func (h *handler) updateQRCode(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch entity.QRCodePatch
	if !bind(c, &patch) {
		return
	}
	mutated(c, http.StatusOK, h.svc.UpdateQRCode(c.Request.Context(), id, patch))
}

func (h *handler) deleteQRCode(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted(c, h.svc.DeleteQRCode(c.Request.Context(), id))
}

type productQuery struct {
	Name                *string `form:"name"`
	NameContains        *string `form:"name_contains"`
	Description         *string `form:"description"`
	DescriptionContains *string `form:"description_contains"`
	Price               *string `form:"price"`
	PriceBelow          *string `form:"price_lt"`
	PriceAbove          *string `form:"price_gt"`
	CurrencyID          *string `form:"currency_id"`
	Category            *string `form:"category"`
	CategoryContains    *string `form:"category_contains"`
	EcoFriendly         *bool   `form:"eco_friendly"`
}

func (q productQuery) filter() (query.ProductFilter, error) {
	f := query.ProductFilter{
		Name:        query.StringFilter{Exact: q.Name, IContains: q.NameContains},
		Description: query.StringFilter{Exact: q.Description, IContains: q.DescriptionContains},
		Category:    query.StringFilter{Exact: q.Category, IContains: q.CategoryContains},
		EcoFriendly: q.EcoFriendly,
	}

	var err error
	if f.CurrencyID, err = parseUUID("currency_id", q.CurrencyID); err != nil {
		return f, err
	}
	if f.Price.Exact, err = parseDecimal("price", q.Price); err != nil {
		return f, err
	}
	if f.Price.Lt, err = parseDecimal("price_lt", q.PriceBelow); err != nil {
		return f, err
	}
	if f.Price.Gt, err = parseDecimal("price_gt", q.PriceAbove); err != nil {
		return f, err
	}
	return f, nil
}

func (h *handler) listProducts(c *gin.Context) {
	var q productQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "query", err)
		return
	}
	filter, err := q.filter()
	if err != nil {
		writeError(c, err)
		return
	}
	page, ok := pageFrom(c)
	if !ok {
		return
	}
	conn, err := h.svc.ListProducts(c.Request.Context(), filter, page)
	listed(c, conn, err)
}

func (h *handler) getProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rec, err := h.svc.GetProduct(c.Request.Context(), id)
	found(c, "Product", rec, err)
}

func (h *handler) createProduct(c *gin.Context) {
	var in entity.ProductInput
	if !bind(c, &in) {
		return
	}
	mutated(c, http.StatusCreated, h.svc.CreateProduct(c.Request.Context(), in))
}

func (h *handler) updateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch entity.ProductPatch
	if !bind(c, &patch) {
		return
	}
	mutated(c, http.StatusOK, h.svc.UpdateProduct(c.Request.Context(), id, patch))
}

func (h *handler) deleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted(c, h.svc.DeleteProduct(c.Request.Context(), id))
}
