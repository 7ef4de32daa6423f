package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/finbook/bookkeeper/internal/auth"
	"github.com/finbook/bookkeeper/internal/model"
	xhttp "github.com/finbook/bookkeeper/pkg/http"
)

type LedgerService interface {
	List(ctx context.Context, userID int64, f model.EntryFilter) ([]*model.LedgerEntry, error)
	ListForCustomer(ctx context.Context, customerID, userID int64, f model.EntryFilter) ([]*model.LedgerEntry, error)
	Create(ctx context.Context, userID int64, p model.EntryCreateRequest) (*model.LedgerEntry, error)
	Get(ctx context.Context, id, userID int64) (*model.LedgerEntry, error)
	Update(ctx context.Context, id, userID int64, p model.EntryUpdateRequest) (*model.LedgerEntry, error)
	Delete(ctx context.Context, id, userID int64) error
	Summarize(ctx context.Context, customerID, userID int64) (model.Summary, error)
}

type EntryHandler struct {
	svc LedgerService
}

func NewEntryHandler(ledgerService LedgerService) *EntryHandler {
	return &EntryHandler{
		svc: ledgerService,
	}
}

func RegisterEntryRoutes(e *router.Group, h *EntryHandler) {
	e.GET("/entries", h.ListEntries)
	e.POST("/entries", h.CreateEntry)
	e.GET("/entries/{id}", h.GetEntry)
	e.PUT("/entries/{id}", h.UpdateEntry)
	e.PATCH("/entries/{id}", h.UpdateEntry)
	e.DELETE("/entries/{id}", h.DeleteEntry)
	e.GET("/customers/{id}/entries", h.ListCustomerEntries)
	e.GET("/customers/{id}/summary", h.GetCustomerSummary)
}

type createEntryRequest struct {
	CustomerID int64      `json:"customer_id"`
	EntryType  string     `json:"entry_type"`
	Amount     flexString `json:"amount"`
	Note       string     `json:"note"`
	Date       string     `json:"date"`
}

type updateEntryRequest struct {
	// customer_id is decoded so clients may send it, but an entry never
	// moves between customers: the value is dropped on the floor.
	CustomerID *int64      `json:"customer_id"`
	EntryType  *string     `json:"entry_type"`
	Amount     *flexString `json:"amount"`
	Note       *string     `json:"note"`
	Date       *string     `json:"date"`
}

/* --------------------------------- Routes ----------------------------------- */

func parseFilter(ctx *xhttp.RequestCtx) (model.EntryFilter, error) {
	return model.ParseEntryFilter(
		query(ctx, "type"),
		query(ctx, "start_date"),
		query(ctx, "end_date"),
	)
}

func (h *EntryHandler) ListEntries(ctx *xhttp.RequestCtx) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		writeError(ctx, 401, "Authentication required.")
		return
	}

	f, err := parseFilter(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}

	entries, err := h.svc.List(ctx, userID, f)
	if err != nil {
		handleError(ctx, err)
		return
	}
	if entries == nil {
		entries = []*model.LedgerEntry{}
	}
	writeJSON(ctx, 200, entries)
}

func (h *EntryHandler) ListCustomerEntries(ctx *xhttp.RequestCtx) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		writeError(ctx, 401, "Authentication required.")
		return
	}
	customerID, ok := pathID(ctx, "id")
	if !ok {
		writeError(ctx, 404, "Customer not found.")
		return
	}

	f, err := parseFilter(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}

	entries, err := h.svc.ListForCustomer(ctx, customerID, userID, f)
	if err != nil {
		handleError(ctx, err)
		return
	}
	if entries == nil {
		entries = []*model.LedgerEntry{}
	}
	writeJSON(ctx, 200, entries)
}

func (h *EntryHandler) CreateEntry(ctx *xhttp.RequestCtx) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		writeError(ctx, 401, "Authentication required.")
		return
	}

	var req createEntryRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	entry, err := h.svc.Create(ctx, userID, model.EntryCreateRequest{
		CustomerID: req.CustomerID,
		EntryType:  req.EntryType,
		Amount:     string(req.Amount),
		Note:       req.Note,
		Date:       req.Date,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	writeJSON(ctx, 201, entry)
}

func (h *EntryHandler) GetEntry(ctx *xhttp.RequestCtx) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		writeError(ctx, 401, "Authentication required.")
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		writeError(ctx, 404, "Not found.")
		return
	}

	entry, err := h.svc.Get(ctx, id, userID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	writeJSON(ctx, 200, entry)
}

func (h *EntryHandler) UpdateEntry(ctx *xhttp.RequestCtx) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		writeError(ctx, 401, "Authentication required.")
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		writeError(ctx, 404, "Not found.")
		return
	}

	var req updateEntryRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	p := model.EntryUpdateRequest{
		EntryType: req.EntryType,
		Note:      req.Note,
		Date:      req.Date,
	}
	if req.Amount != nil {
		amount := string(*req.Amount)
		p.Amount = &amount
	}

	entry, err := h.svc.Update(ctx, id, userID, p)
	if err != nil {
		handleError(ctx, err)
		return
	}
	writeJSON(ctx, 200, entry)
}

func (h *EntryHandler) DeleteEntry(ctx *xhttp.RequestCtx) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		writeError(ctx, 401, "Authentication required.")
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		writeError(ctx, 404, "Not found.")
		return
	}

	if err := h.svc.Delete(ctx, id, userID); err != nil {
		handleError(ctx, err)
		return
	}
	ctx.Response.SetStatusCode(204)
}

func (h *EntryHandler) GetCustomerSummary(ctx *xhttp.RequestCtx) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		writeError(ctx, 401, "Authentication required.")
		return
	}
	customerID, ok := pathID(ctx, "id")
	if !ok {
		writeError(ctx, 404, "Customer not found.")
		return
	}

	summary, err := h.svc.Summarize(ctx, customerID, userID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	writeJSON(ctx, 200, summary)
}
