package handlers

import (
	"net/http"

	"ecommerce-api/authz"
	"ecommerce-api/middleware"
	"ecommerce-api/resterr"
	"ecommerce-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type CreateOrderRequest struct {
	LocationID uuid.UUID `json:"location_id" binding:"required"`
	Products   []struct {
		ProductID uuid.UUID `json:"product_id" binding:"required"`
		Quantity  int       `json:"quantity" binding:"required,min=1"`
	} `json:"products" binding:"required,min=1,dive"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,max=50"`
}

// List returns orders the caller is allowed to see: everything for
// orders:view.any, otherwise own or assigned orders only.
func (h *OrderHandler) List(c *gin.Context) {
	user, _ := middleware.Current(c)

	filters := services.OrderFilters{
		Status:     c.Query("status"),
		LocationID: c.Query("location_id"),
		UserID:     c.Query("user_id"),
	}
	switch {
	case user.Can(authz.PermOrdersViewAny):
		// unrestricted
	case user.Can(authz.PermOrdersViewAssigned):
		filters.UserID = ""
		filters.DeliveryManID = user.User.ID.String()
	case user.Can(authz.PermOrdersViewOwn):
		filters.UserID = user.User.ID.String()
	default:
		respondError(c, resterr.NewForbiddenError("Forbidden"))
		return
	}

	result, rerr := h.orders.List(filters, listParams(c))
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Orders retrieved successfully", result.Data())
}

// Get returns a single order, subject to the view policy.
func (h *OrderHandler) Get(c *gin.Context) {
	user, _ := middleware.Current(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, rerr := h.orders.GetByID(id)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	if !authz.CanViewOrder(user, *order) {
		respondError(c, resterr.NewForbiddenError("Forbidden"))
		return
	}
	respond(c, http.StatusOK, "Order retrieved successfully", order)
}

// Create places an order for the authenticated user.
func (h *OrderHandler) Create(c *gin.Context) {
	user, _ := middleware.Current(c)
	if !authz.CanCreateOrder(user) {
		respondError(c, resterr.NewForbiddenError("Forbidden"))
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	items := make([]services.OrderItemInput, len(req.Products))
	for i, p := range req.Products {
		items[i] = services.OrderItemInput{ProductID: p.ProductID, Quantity: p.Quantity}
	}

	order, rerr := h.orders.Create(services.CreateOrderInput{
		UserID:     user.User.ID,
		LocationID: req.LocationID,
		Items:      items,
	})
	if rerr != nil {
		respondError(c, rerr)
		return
	}

	c.Header("Location", "/api/orders/"+order.ID.String())
	respond(c, http.StatusCreated, "Order created successfully", order)
}

// UpdateStatus sets the order status; values parse case-insensitively.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	user, _ := middleware.Current(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	order, rerr := h.orders.GetByID(id)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	if !authz.CanUpdateOrderStatus(user, *order) {
		respondError(c, resterr.NewForbiddenError("Forbidden"))
		return
	}

	order, rerr = h.orders.UpdateStatus(id, req.Status)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Order status updated successfully", order)
}

// AssignDeliveryMan assigns a delivery user to the order.
func (h *OrderHandler) AssignDeliveryMan(c *gin.Context) {
	user, _ := middleware.Current(c)
	if !user.Can(authz.PermOrdersUpdateAny) {
		respondError(c, resterr.NewForbiddenError("Forbidden"))
		return
	}

	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}
	deliveryManID, ok := parseID(c, "delivery_man_id")
	if !ok {
		return
	}

	order, rerr := h.orders.AssignDeliveryMan(orderID, deliveryManID)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Delivery man assigned to order successfully", order)
}

// ListForUser returns another user's orders (admin view).
func (h *OrderHandler) ListForUser(c *gin.Context) {
	user, _ := middleware.Current(c)
	userID, ok := parseID(c, "user_id")
	if !ok {
		return
	}
	if userID == user.User.ID {
		if !authz.CanViewAnyOrder(user) {
			respondError(c, resterr.NewForbiddenError("Forbidden"))
			return
		}
	} else if !user.Can(authz.PermOrdersViewAny) {
		respondError(c, resterr.NewForbiddenError("Forbidden"))
		return
	}

	result, rerr := h.orders.ListForUser(userID, services.OrderFilters{
		Status:     c.Query("status"),
		LocationID: c.Query("location_id"),
	}, listParams(c))
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Orders retrieved successfully", result.Data())
}

// ListMine returns the authenticated user's own orders.
func (h *OrderHandler) ListMine(c *gin.Context) {
	user, _ := middleware.Current(c)
	if !authz.CanViewAnyOrder(user) {
		respondError(c, resterr.NewForbiddenError("Forbidden"))
		return
	}

	result, rerr := h.orders.ListForUser(user.User.ID, services.OrderFilters{
		Status:     c.Query("status"),
		LocationID: c.Query("location_id"),
	}, listParams(c))
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	respond(c, http.StatusOK, "Orders retrieved successfully", result.Data())
}

// Delete soft-deletes an order, subject to the delete policy.
func (h *OrderHandler) Delete(c *gin.Context) {
	user, _ := middleware.Current(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, rerr := h.orders.GetByID(id)
	if rerr != nil {
		respondError(c, rerr)
		return
	}
	if !authz.CanDeleteOrder(user, *order) {
		respondError(c, resterr.NewForbiddenError("Forbidden"))
		return
	}

	if rerr := h.orders.Delete(id); rerr != nil {
		respondError(c, rerr)
		return
	}
	c.Status(http.StatusNoContent)
}
