package services

import (
	"net/http"
	"testing"

	"ecommerce-api/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderComputesTotalFromSnapshots(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	user := createTestUser(t, db, nextPhone(), "password", models.RoleUser)
	location := createTestLocation(t, db, user.ID)
	burger := createTestProduct(t, db, "Burger", "10.00")
	fries := createTestProduct(t, db, "Fries", "5.50")

	order, rerr := svc.Create(CreateOrderInput{
		UserID:     user.ID,
		LocationID: location.ID,
		Items: []OrderItemInput{
			{ProductID: burger.ID, Quantity: 2},
			{ProductID: fries.ID, Quantity: 1},
		},
	})
	require.Nil(t, rerr)

	assert.Equal(t, models.StatusPending, order.Status)
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("25.50")),
		"total %s", order.TotalPrice)
	require.Len(t, order.Products, 2)

	// a later price change must not touch the stored lines or total
	require.NoError(t, db.Model(&burger).Update("price", decimal.RequireFromString("99.99")).Error)
	reloaded, rerr := svc.GetByID(order.ID)
	require.Nil(t, rerr)
	assert.True(t, reloaded.TotalPrice.Equal(decimal.RequireFromString("25.50")))
	for _, line := range reloaded.Products {
		if line.ProductID == burger.ID {
			assert.True(t, line.UnitPrice.Equal(decimal.RequireFromString("10.00")))
		}
	}
}

func TestCreateOrderRollsBackOnUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	user := createTestUser(t, db, nextPhone(), "password", models.RoleUser)
	location := createTestLocation(t, db, user.ID)
	burger := createTestProduct(t, db, "Burger", "10.00")
	missing := uuid.New()

	_, rerr := svc.Create(CreateOrderInput{
		UserID:     user.ID,
		LocationID: location.ID,
		Items: []OrderItemInput{
			{ProductID: burger.ID, Quantity: 1},
			{ProductID: missing, Quantity: 1},
		},
	})
	require.NotNil(t, rerr)
	assert.Equal(t, http.StatusNotFound, rerr.Code)
	assert.Contains(t, rerr.Message, missing.String())

	var orders, lines int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.OrderProduct{}).Count(&lines).Error)
	assert.Zero(t, orders)
	assert.Zero(t, lines)
}

func TestCreateOrderRequiresItems(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	user := createTestUser(t, db, nextPhone(), "password", models.RoleUser)
	location := createTestLocation(t, db, user.ID)

	_, rerr := svc.Create(CreateOrderInput{UserID: user.ID, LocationID: location.ID})
	require.NotNil(t, rerr)
	assert.Equal(t, http.StatusUnprocessableEntity, rerr.Code)
}

func TestCreateOrderRejectsUnknownLocation(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	user := createTestUser(t, db, nextPhone(), "password", models.RoleUser)
	burger := createTestProduct(t, db, "Burger", "10.00")

	_, rerr := svc.Create(CreateOrderInput{
		UserID:     user.ID,
		LocationID: uuid.New(),
		Items:      []OrderItemInput{{ProductID: burger.ID, Quantity: 1}},
	})
	require.NotNil(t, rerr)
	assert.Equal(t, http.StatusNotFound, rerr.Code)
}

func TestUpdateStatusIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	user := createTestUser(t, db, nextPhone(), "password", models.RoleUser)
	location := createTestLocation(t, db, user.ID)
	burger := createTestProduct(t, db, "Burger", "10.00")
	order, rerr := svc.Create(CreateOrderInput{
		UserID:     user.ID,
		LocationID: location.ID,
		Items:      []OrderItemInput{{ProductID: burger.ID, Quantity: 1}},
	})
	require.Nil(t, rerr)

	_, rerr = svc.UpdateStatus(order.ID, "COMPLETED")
	require.Nil(t, rerr)
	reloaded, rerr := svc.GetByID(order.ID)
	require.Nil(t, rerr)
	assert.Equal(t, models.StatusCompleted, reloaded.Status)

	_, rerr = svc.UpdateStatus(order.ID, "shipped")
	require.NotNil(t, rerr)
	assert.Equal(t, http.StatusUnprocessableEntity, rerr.Code)
	assert.Contains(t, rerr.Message, "pending, completed or cancelled")

	reloaded, rerr = svc.GetByID(order.ID)
	require.Nil(t, rerr)
	assert.Equal(t, models.StatusCompleted, reloaded.Status)
}

func TestAssignDeliveryMan(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	user := createTestUser(t, db, nextPhone(), "password", models.RoleUser)
	location := createTestLocation(t, db, user.ID)
	burger := createTestProduct(t, db, "Burger", "10.00")
	order, rerr := svc.Create(CreateOrderInput{
		UserID:     user.ID,
		LocationID: location.ID,
		Items:      []OrderItemInput{{ProductID: burger.ID, Quantity: 1}},
	})
	require.Nil(t, rerr)

	shopper := createTestUser(t, db, nextPhone(), "password", models.RoleUser)
	_, rerr = svc.AssignDeliveryMan(order.ID, shopper.ID)
	require.NotNil(t, rerr)
	assert.Equal(t, http.StatusUnprocessableEntity, rerr.Code)
	assert.Contains(t, rerr.Message, "is not a delivery man")

	courier := createTestUser(t, db, nextPhone(), "password", models.RoleDelivery)
	assigned, rerr := svc.AssignDeliveryMan(order.ID, courier.ID)
	require.Nil(t, rerr)
	require.NotNil(t, assigned.DeliveryMan)
	assert.Equal(t, courier.ID, assigned.DeliveryMan.ID)

	// re-assigning the same courier stays a success
	_, rerr = svc.AssignDeliveryMan(order.ID, courier.ID)
	require.Nil(t, rerr)
}

func TestListOrdersRejectsUnknownStatusFilter(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	_, rerr := svc.List(OrderFilters{Status: "shipped"}, ListParams{})
	require.NotNil(t, rerr)
	assert.Equal(t, http.StatusUnprocessableEntity, rerr.Code)
	assert.Contains(t, rerr.Message, "shipped")
}

func TestListForUserRequiresExistingUser(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	_, rerr := svc.ListForUser(uuid.New(), OrderFilters{}, ListParams{})
	require.NotNil(t, rerr)
	assert.Equal(t, http.StatusNotFound, rerr.Code)
}

func TestDeleteOrderIsSoft(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	user := createTestUser(t, db, nextPhone(), "password", models.RoleUser)
	location := createTestLocation(t, db, user.ID)
	burger := createTestProduct(t, db, "Burger", "10.00")
	order, rerr := svc.Create(CreateOrderInput{
		UserID:     user.ID,
		LocationID: location.ID,
		Items:      []OrderItemInput{{ProductID: burger.ID, Quantity: 1}},
	})
	require.Nil(t, rerr)

	require.Nil(t, svc.Delete(order.ID))

	_, rerr = svc.GetByID(order.ID)
	require.NotNil(t, rerr)
	assert.Equal(t, http.StatusNotFound, rerr.Code)

	var count int64
	require.NoError(t, db.Unscoped().Model(&models.Order{}).Where("id = ?", order.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
