package authz

import "ecommerce-api/models"

// Policy checks are pure functions of (acting user, target resource) and never
// error; callers turn false into a 403.

func CanViewAnyOrder(u UserContext) bool {
	return u.Can(PermOrdersViewAny) || u.Can(PermOrdersViewOwn) || u.Can(PermOrdersViewAssigned)
}

func CanViewOrder(u UserContext, order models.Order) bool {
	if u.Can(PermOrdersViewAssigned) && order.DeliveryManID != nil && u.User.ID == *order.DeliveryManID {
		return true
	}
	return u.Can(PermOrdersViewAny) ||
		(u.Can(PermOrdersViewOwn) && u.User.ID == order.UserID)
}

func CanCreateOrder(u UserContext) bool {
	return u.Can(PermOrdersCreate)
}

func CanUpdateOrder(u UserContext, order models.Order) bool {
	return u.Can(PermOrdersUpdateAny) ||
		(u.Can(PermOrdersUpdateOwn) && u.User.ID == order.UserID)
}

func CanUpdateOrderStatus(u UserContext, order models.Order) bool {
	return u.Can(PermOrdersUpdateAny)
}

func CanDeleteOrder(u UserContext, order models.Order) bool {
	return u.Can(PermOrdersDeleteAny) ||
		(u.Can(PermOrdersDeleteOwn) && u.User.ID == order.UserID)
}

func CanRestoreOrder(u UserContext) bool {
	return u.Can(PermOrdersRestore)
}

func CanViewAnyUser(u UserContext) bool {
	return u.Can(PermUsersViewAny) || u.Can(PermUsersViewOwn)
}

func CanViewUser(u UserContext, target models.User) bool {
	return u.Can(PermUsersViewAny) ||
		(u.Can(PermUsersViewOwn) && u.User.ID == target.ID)
}

func CanCreateUser(u UserContext) bool {
	return u.Can(PermUsersCreate)
}

func CanUpdateUser(u UserContext, target models.User) bool {
	return u.Can(PermUsersUpdateAny) ||
		(u.Can(PermUsersUpdateOwn) && u.User.ID == target.ID)
}

func CanDeleteUser(u UserContext, target models.User) bool {
	return u.Can(PermUsersDeleteAny) ||
		(u.Can(PermUsersDeleteOwn) && u.User.ID == target.ID)
}

func CanViewLocation(u UserContext, loc models.UserLocation) bool {
	return u.Can(PermUsersViewAny) ||
		(u.Can(PermUsersViewOwn) && u.User.ID == loc.UserID)
}

func CanUpdateLocation(u UserContext, loc models.UserLocation) bool {
	return u.Can(PermUsersUpdateAny) ||
		(u.Can(PermUsersUpdateOwn) && u.User.ID == loc.UserID)
}

func CanDeleteLocation(u UserContext, loc models.UserLocation) bool {
	return u.Can(PermUsersUpdateAny) ||
		(u.Can(PermUsersUpdateOwn) && u.User.ID == loc.UserID)
}
