package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/finbook/bookkeeper/internal/auth"
	"github.com/finbook/bookkeeper/internal/model"
	xhttp "github.com/finbook/bookkeeper/pkg/http"
)

type CustomerService interface {
	List(ctx context.Context, userID int64) ([]*model.Customer, error)
	Create(ctx context.Context, userID int64, p model.CustomerCreateRequest) (*model.Customer, error)
	Get(ctx context.Context, id, userID int64) (*model.Customer, error)
	Update(ctx context.Context, id, userID int64, p model.CustomerUpdateRequest) (*model.Customer, error)
	Delete(ctx context.Context, id, userID int64) error
}

type CustomerHandler struct {
	svc CustomerService
}

func NewCustomerHandler(customerService CustomerService) *CustomerHandler {
	return &CustomerHandler{
		svc: customerService,
	}
}

func RegisterCustomerRoutes(e *router.Group, h *CustomerHandler) {
	e.GET("/customers", h.ListCustomers)
	e.POST("/customers", h.CreateCustomer)
	e.GET("/customers/{id}", h.GetCustomer)
	e.PUT("/customers/{id}", h.UpdateCustomer)
	e.PATCH("/customers/{id}", h.UpdateCustomer)
	e.DELETE("/customers/{id}", h.DeleteCustomer)
}

type createCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type updateCustomerRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *CustomerHandler) ListCustomers(ctx *xhttp.RequestCtx) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		writeError(ctx, 401, "Authentication required.")
		return
	}

	customers, err := h.svc.List(ctx, userID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	if customers == nil {
		customers = []*model.Customer{}
	}
	writeJSON(ctx, 200, customers)
}

func (h *CustomerHandler) CreateCustomer(ctx *xhttp.RequestCtx) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		writeError(ctx, 401, "Authentication required.")
		return
	}

	var req createCustomerRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	customer, err := h.svc.Create(ctx, userID, model.CustomerCreateRequest{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	writeJSON(ctx, 201, customer)
}

func (h *CustomerHandler) GetCustomer(ctx *xhttp.RequestCtx) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		writeError(ctx, 401, "Authentication required.")
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		writeError(ctx, 404, "Customer not found.")
		return
	}

	customer, err := h.svc.Get(ctx, id, userID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	writeJSON(ctx, 200, customer)
}

func (h *CustomerHandler) UpdateCustomer(ctx *xhttp.RequestCtx) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		writeError(ctx, 401, "Authentication required.")
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		writeError(ctx, 404, "Customer not found.")
		return
	}

	var req updateCustomerRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	customer, err := h.svc.Update(ctx, id, userID, model.CustomerUpdateRequest{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	writeJSON(ctx, 200, customer)
}

func (h *CustomerHandler) DeleteCustomer(ctx *xhttp.RequestCtx) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		writeError(ctx, 401, "Authentication required.")
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		writeError(ctx, 404, "Customer not found.")
		return
	}

	if err := h.svc.Delete(ctx, id, userID); err != nil {
		handleError(ctx, err)
		return
	}
	ctx.Response.SetStatusCode(204)
}
