package routes

import (
	"ecommerce-api/authz"
	"ecommerce-api/handlers"
	"ecommerce-api/middleware"
	"ecommerce-api/services"

	"github.com/gin-gonic/gin"
)

// Handlers groups everything SetupRoutes wires up.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Users       *handlers.UserHandler
	Products    *handlers.ProductHandler
	Categories  *handlers.CategoryHandler
	Types       *handlers.ProductTypeHandler
	Roles       *handlers.RoleHandler
	Orders      *handlers.OrderHandler
	Locations   *handlers.LocationHandler
	TokenService *services.TokenService
}

func SetupRoutes(r *gin.Engine, h Handlers) {
	api := r.Group("/api")

	// ── Auth ───────────────────────────────────────────────────────
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh-token", h.Auth.RefreshToken)
		auth.POST("/logout", middleware.Authenticate(h.TokenService), h.Auth.Logout)
	}

	// everything below requires a valid access token
	authed := api.Group("")
	authed.Use(middleware.Authenticate(h.TokenService))

	// ── Users ──────────────────────────────────────────────────────
	users := authed.Group("/users")
	{
		users.GET("", h.Users.List)
		users.POST("", h.Users.Create)
		users.GET("/me", h.Users.Me)
		users.GET("/:id", h.Users.Get)
		users.PUT("/:id", h.Users.Update)
		users.DELETE("/:id", h.Users.Delete)
	}

	// ── Products & wishlist ────────────────────────────────────────
	products := authed.Group("/products")
	{
		products.GET("", middleware.RequirePermission(authz.PermProductsViewAny), h.Products.List)
		products.POST("", middleware.RequirePermission(authz.PermProductsCreate), h.Products.Create)
		products.GET("/me/wishlist", h.Products.Wishlist)
		products.POST("/add-to-wishlist/:id", h.Products.AddToWishlist)
		products.DELETE("/remove-from-wishlist/:id", h.Products.RemoveFromWishlist)
		products.GET("/:id", middleware.RequirePermission(authz.PermProductsViewAny), h.Products.Get)
		products.PUT("/:id", middleware.RequirePermission(authz.PermProductsUpdate), h.Products.Update)
		products.DELETE("/:id", middleware.RequirePermission(authz.PermProductsDelete), h.Products.Delete)
		products.POST("/:id/image", middleware.RequirePermission(authz.PermProductsUpdate), h.Products.UpdateImage)
		products.POST("/:id/gallery", middleware.RequirePermission(authz.PermProductsUpdate), h.Products.UpdateGallery)
	}

	// ── Roles ──────────────────────────────────────────────────────
	roles := authed.Group("/roles")
	{
		roles.GET("", middleware.RequirePermission(authz.PermRolesView), h.Roles.List)
		roles.POST("", middleware.RequirePermission(authz.PermRolesCreate), h.Roles.Create)
		roles.GET("/:id", middleware.RequirePermission(authz.PermRolesView), h.Roles.Get)
		roles.PUT("/:id", middleware.RequirePermission(authz.PermRolesUpdate), h.Roles.Update)
		roles.DELETE("/:id", middleware.RequirePermission(authz.PermRolesDelete), h.Roles.Delete)
	}

	// ── Product types ──────────────────────────────────────────────
	types := authed.Group("/product-types")
	{
		types.GET("", middleware.RequirePermission(authz.PermCategoriesViewAny), h.Types.List)
		types.POST("", middleware.RequirePermission(authz.PermCategoriesCreate), h.Types.Create)
		types.GET("/:id", middleware.RequirePermission(authz.PermCategoriesViewAny), h.Types.Get)
		types.PUT("/:id", middleware.RequirePermission(authz.PermCategoriesUpdate), h.Types.Update)
		types.POST("/:id/image", middleware.RequirePermission(authz.PermCategoriesUpdate), h.Types.UpdateImage)
		types.DELETE("/:id", middleware.RequirePermission(authz.PermCategoriesDelete), h.Types.Delete)
	}

	// ── Product categories (with trash lifecycle) ──────────────────
	categories := authed.Group("/product-categories")
	{
		categories.GET("", middleware.RequirePermission(authz.PermCategoriesViewAny), h.Categories.List)
		categories.POST("", middleware.RequirePermission(authz.PermCategoriesCreate), h.Categories.Create)
		categories.GET("/trash", middleware.RequirePermission(authz.PermCategoriesRestore), h.Categories.Trash)
		categories.GET("/:id", middleware.RequirePermission(authz.PermCategoriesViewAny), h.Categories.Get)
		categories.PUT("/:id", middleware.RequirePermission(authz.PermCategoriesUpdate), h.Categories.Update)
		categories.DELETE("/:id", middleware.RequirePermission(authz.PermCategoriesDelete), h.Categories.Delete)
		categories.POST("/:id/image", middleware.RequirePermission(authz.PermCategoriesUpdate), h.Categories.UpdateImage)
		categories.DELETE("/delete/multiple", middleware.RequirePermission(authz.PermCategoriesDelete), h.Categories.DeleteMany)
		categories.POST("/restore/:id", middleware.RequirePermission(authz.PermCategoriesRestore), h.Categories.Restore)
		categories.DELETE("/force-delete/:id", middleware.RequirePermission(authz.PermCategoriesDelete), h.Categories.ForceDelete)
	}

	// ── Orders ─────────────────────────────────────────────────────
	orders := authed.Group("/orders")
	{
		orders.GET("", h.Orders.List)
		orders.POST("", h.Orders.Create)
		orders.GET("/user/me", h.Orders.ListMine)
		orders.GET("/user/:user_id", h.Orders.ListForUser)
		orders.GET("/:id", h.Orders.Get)
		orders.PUT("/:id/status", h.Orders.UpdateStatus)
		orders.DELETE("/:id", h.Orders.Delete)
		orders.POST("/:id/assign/:delivery_man_id", h.Orders.AssignDeliveryMan)
	}

	// ── User locations ─────────────────────────────────────────────
	locations := authed.Group("/user-locations")
	{
		locations.GET("", h.Locations.List)
		locations.POST("", h.Locations.Create)
		locations.GET("/:id", h.Locations.Get)
		locations.PUT("/:id", h.Locations.Update)
		locations.DELETE("/:id", h.Locations.Delete)
	}
}
