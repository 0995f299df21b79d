package routes

import (
	"log"
	"net/http"

	"github.com/ckendallart/storefront/app/configs"
	"github.com/ckendallart/storefront/app/handlers"
	"github.com/ckendallart/storefront/app/repositories"
	"github.com/ckendallart/storefront/app/services"
	"github.com/ckendallart/storefront/app/utils/renderer"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB) http.Handler {
	env := configs.LoadENV

	catalogRepo := repositories.NewCatalogRepository(db)
	checkoutSvc := services.NewStorefrontService(env.STOREFRONT_API_URL, env.STOREFRONT_TOKEN)
	middlewareSvc := services.NewMiddlewareService(env.MIDDLEWARE_BASE_URL)
	cartSvc := services.NewCartService(checkoutSvc, middlewareSvc)

	render := renderer.New()

	cartHandler := handlers.NewCartHandler(catalogRepo, cartSvc, checkoutSvc, render)
	productHandler := handlers.NewProductHandler(catalogRepo, cartSvc, checkoutSvc, render)
	subscribeHandler := handlers.NewSubscribeHandler(middlewareSvc, render)

	router := mux.NewRouter()

	router.HandleFunc("/products", productHandler.ListProducts).Methods("GET")
	router.HandleFunc("/products/{handle}", productHandler.GetProduct).Methods("GET")
	router.HandleFunc("/inventory/{variantId}", productHandler.GetInventory).Methods("GET")

	router.HandleFunc("/cart", cartHandler.GetCart).Methods("GET")
	router.HandleFunc("/cart/items", cartHandler.AddItemCart).Methods("POST")
	router.HandleFunc("/cart/items/increment", cartHandler.IncrementCartItem).Methods("POST")
	router.HandleFunc("/cart/items/decrement", cartHandler.DecrementCartItem).Methods("POST")
	router.HandleFunc("/cart/items/remove", cartHandler.RemoveCartItem).Methods("POST")
	router.HandleFunc("/cart/checkout", cartHandler.CheckoutHandoff).Methods("GET")

	router.HandleFunc("/subscribe", subscribeHandler.Subscribe).Methods("POST")
	router.HandleFunc("/commission", subscribeHandler.RequestCommission).Methods("POST")

	csrfKey := []byte(env.AppAuthKey)
	if keys, err := configs.LoadSessionKeysFromEnv(); err == nil {
		csrfKey = keys.AuthKey
	} else {
		log.Printf("Routes: falling back to raw APP_AUTH_KEY for CSRF: %v", err)
	}

	csrfMiddleware := csrf.Protect(
		csrfKey,
		csrf.Secure(env.APP_ENV == "production"),
		csrf.Path("/"),
	)

	return csrfMiddleware(router)
}
