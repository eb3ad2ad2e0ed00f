package router

import (
	"github.com/labstack/echo/v4"

	"recomart/internal/rest"
)

func SetupCustomerRoutes(api *echo.Group, handler *rest.CustomerHandler, recoHandler *rest.RecommendationHandler) {
	customers := api.Group("/customers")

	customers.POST("", handler.CreateCustomer)
	customers.GET("", handler.GetAllCustomers)
	customers.GET("/:id", handler.GetCustomerByID)
	customers.GET("/:id/history", handler.GetCustomerHistory)
	customers.DELETE("/:id", handler.DeleteCustomer)

	customers.POST("/:id/recommendations", recoHandler.Recommend)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/:id", handler.GetProductByID)
	products.POST("", handler.CreateProduct)
	products.PUT("/:id", handler.UpdateProduct)
	products.DELETE("/:id", handler.DeleteProduct)
}

func SetOrdersRoutes(api *echo.Group, ordersHandler *rest.OrdersHandler) {
	orders := api.Group("/orders")

	orders.POST("", ordersHandler.CreateOrder)
	orders.GET("/:id", ordersHandler.GetOrderByID)
	orders.DELETE("/:id", ordersHandler.DeleteOrder)
}
