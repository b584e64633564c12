// routes/routes.go
package routes

import (
	"github.com/JasonLinn/bnb-breakfast/controllers"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, menuController *controllers.MenuController, orderController *controllers.OrderController) {
	api := router.PathPrefix("/api").Subrouter()

	// Catalog
	api.HandleFunc("/menu", menuController.GetMenu).Methods("GET")
	api.HandleFunc("/menu/{id:[0-9]+}", menuController.GetMenuEntryByID).Methods("GET")

	// Notification endpoint
	api.HandleFunc("/send-email", orderController.SendOrderEmail).Methods("POST", "OPTIONS")
	api.HandleFunc("/send-email", orderController.CheckMailRelay).Methods("GET")
}
