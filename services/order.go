package services

import (
	"errors"
	"fmt"
	"time"

	"ecommerce-api/models"
	"ecommerce-api/pagination"
	"ecommerce-api/resterr"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService owns the order workflow: transactional creation, status
// transitions, delivery assignment, and filtered listings.
type OrderService struct {
	db        *gorm.DB
	users     *UserService
	locations *LocationService
}

func NewOrderService(db *gorm.DB, users *UserService, locations *LocationService) *OrderService {
	return &OrderService{db: db, users: users, locations: locations}
}

type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

type CreateOrderInput struct {
	UserID     uuid.UUID
	LocationID uuid.UUID
	Items      []OrderItemInput
}

// OrderFilters are optional equality predicates on listings. Status is the
// raw query value and is parsed case-insensitively.
type OrderFilters struct {
	Status        string
	LocationID    string
	UserID        string
	DeliveryManID string
}

// Create inserts an order and its line items in a single transaction. Each
// line snapshots the product's current price as unit_price; the order total
// is the sum over lines. Any failure rolls the whole order back.
func (s *OrderService) Create(in CreateOrderInput) (*models.Order, *resterr.RestErr) {
	if len(in.Items) == 0 {
		return nil, resterr.NewBadRequestError("An order needs at least one product")
	}

	location, rerr := s.locations.GetByID(in.LocationID)
	if rerr != nil {
		return nil, rerr
	}

	var orderID uuid.UUID
	err := s.db.Transaction(func(tx *gorm.DB) error {
		order := models.Order{
			UserID:     in.UserID,
			LocationID: location.ID,
			Status:     models.StatusPending,
			TotalPrice: decimal.Zero,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		total := decimal.Zero
		for _, item := range in.Items {
			if item.Quantity < 1 {
				return resterr.NewBadRequestError("Product quantity must be at least 1")
			}
			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return resterr.NewNotFoundError(fmt.Sprintf("Product with ID %s not found", item.ProductID))
				}
				return err
			}

			line := models.OrderProduct{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("total_price", total).Error; err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		var rerr *resterr.RestErr
		if errors.As(err, &rerr) {
			return nil, rerr
		}
		log.Error().Err(err).Msg("order creation failed")
		return nil, resterr.NewInternalServerError("Internal server error")
	}

	return s.GetByID(orderID)
}

// GetByID loads an order with its line items.
func (s *OrderService) GetByID(id uuid.UUID) (*models.Order, *resterr.RestErr) {
	var order models.Order
	err := s.db.Preload("Products.Product").First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, resterr.NewNotFoundError(fmt.Sprintf("Order with ID %s not found", id))
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to load order")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return &order, nil
}

// List returns all matching orders, cursor-paginated when params ask for it.
func (s *OrderService) List(f OrderFilters, params ListParams) (*ListResult[models.Order], *resterr.RestErr) {
	q, rerr := s.filtered(f)
	if rerr != nil {
		return nil, rerr
	}
	return listOrders(q, params)
}

// ListForUser returns the given user's orders; the user must exist.
func (s *OrderService) ListForUser(userID uuid.UUID, f OrderFilters, params ListParams) (*ListResult[models.Order], *resterr.RestErr) {
	user, rerr := s.users.GetByID(userID)
	if rerr != nil {
		return nil, rerr
	}
	f.UserID = user.ID.String()
	return s.List(f, params)
}

func (s *OrderService) filtered(f OrderFilters) (*gorm.DB, *resterr.RestErr) {
	q := s.db.Model(&models.Order{}).Preload("Products.Product")
	if f.Status != "" {
		status, ok := models.ParseOrderStatus(f.Status)
		if !ok {
			return nil, resterr.NewBadRequestError(
				fmt.Sprintf("Invalid order status: %s. Valid statuses are: %s", f.Status, models.ValidOrderStatusList()))
		}
		q = q.Where("status = ?", status)
	}
	if f.LocationID != "" {
		q = q.Where("location_id = ?", f.LocationID)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.DeliveryManID != "" {
		q = q.Where("delivery_man_id = ?", f.DeliveryManID)
	}
	return q, nil
}

func listOrders(q *gorm.DB, params ListParams) (*ListResult[models.Order], *resterr.RestErr) {
	if params.paginated() {
		page, err := pagination.Paginate(q, params.Path, params.Size, params.Cursor,
			func(o models.Order) (time.Time, string) { return o.CreatedAt, o.ID.String() })
		if err != nil {
			return nil, resterr.NewBadRequestError(err.Error())
		}
		return &ListResult[models.Order]{Page: page}, nil
	}
	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		log.Error().Err(err).Msg("failed to list orders")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return &ListResult[models.Order]{All: orders}, nil
}

// UpdateStatus parses the new status case-insensitively and stores the
// canonical lowercase value. Unknown statuses leave the order untouched.
func (s *OrderService) UpdateStatus(id uuid.UUID, status string) (*models.Order, *resterr.RestErr) {
	order, rerr := s.GetByID(id)
	if rerr != nil {
		return nil, rerr
	}

	parsed, ok := models.ParseOrderStatus(status)
	if !ok {
		return nil, resterr.NewBadRequestError(
			fmt.Sprintf("Cannot update order status to: %s. Valid statuses are: %s", status, models.ValidOrderStatusList()))
	}

	if err := s.db.Model(order).Update("status", parsed).Error; err != nil {
		log.Error().Err(err).Msg("failed to update order status")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	return order, nil
}

// AssignDeliveryMan sets the order's delivery man. The target user must hold
// the delivery role. Re-assigning the same user is a no-op success.
func (s *OrderService) AssignDeliveryMan(orderID, deliveryManID uuid.UUID) (*models.Order, *resterr.RestErr) {
	order, rerr := s.GetByID(orderID)
	if rerr != nil {
		return nil, rerr
	}

	deliveryMan, rerr := s.users.GetByID(deliveryManID)
	if rerr != nil {
		return nil, rerr
	}
	if !deliveryMan.HasRole(models.RoleDelivery) {
		return nil, resterr.NewBadRequestError(
			fmt.Sprintf("User with id %s is not a delivery man", deliveryManID))
	}

	if err := s.db.Model(order).Update("delivery_man_id", deliveryMan.ID).Error; err != nil {
		log.Error().Err(err).Msg("failed to assign delivery man")
		return nil, resterr.NewInternalServerError("Internal server error")
	}
	order.DeliveryMan = deliveryMan
	return order, nil
}

// Delete soft-deletes an order; it stays addressable for restore.
func (s *OrderService) Delete(id uuid.UUID) *resterr.RestErr {
	order, rerr := s.GetByID(id)
	if rerr != nil {
		return rerr
	}
	if err := s.db.Delete(order).Error; err != nil {
		log.Error().Err(err).Msg("failed to delete order")
		return resterr.NewInternalServerError("Internal server error")
	}
	return nil
}
