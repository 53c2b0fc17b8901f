package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ffoods/quickbill/cart"
	"github.com/ffoods/quickbill/checkout"
	"github.com/ffoods/quickbill/database/dbhelper"
	"github.com/ffoods/quickbill/handlers"
	"github.com/ffoods/quickbill/menu"
	"github.com/ffoods/quickbill/middlewares"
	"github.com/ffoods/quickbill/models"
)

type Server struct {
	Router *mux.Router
	server *http.Server
}

const (
	readTimeout       = 5 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 5 * time.Minute
	catalogTTL        = 5 * time.Minute
)

func SetupRoutes(billSink checkout.Exporter) *Server {
	catalog := menu.NewCatalog(dbhelper.ListMenuItems, catalogTTL)
	carts := cart.NewStore()

	menuHandler := &handlers.MenuHandler{Catalog: catalog}
	cartHandler := &handlers.CartHandler{Catalog: catalog, Carts: carts}
	checkoutHandler := &handlers.CheckoutHandler{
		Manager: checkout.NewManager(carts, billSink),
	}

	router := mux.NewRouter()
	router.Use(middlewares.RequestLogger)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"alive": true}`)
	}).Methods("GET")

	// public surface
	router.HandleFunc("/", handlers.Home).Methods("GET")
	router.HandleFunc("/api/info", handlers.Home).Methods("GET")
	router.Handle("/api/nav", middlewares.OptionalAuth(http.HandlerFunc(handlers.Nav))).Methods("GET")
	router.HandleFunc("/api/menu", menuHandler.List).Methods("GET")
	router.HandleFunc("/register", handlers.Register).Methods("POST")
	router.HandleFunc("/refresh", handlers.RefreshToken).Methods("POST")
	router.HandleFunc("/login", handlers.Login).Methods("POST")

	authRoutes := router.PathPrefix("/api").Subrouter()
	authRoutes.Use(middlewares.AuthMiddleware)
	authRoutes.HandleFunc("/logout", handlers.Logout).Methods("POST")

	// session cart
	authRoutes.HandleFunc("/cart", cartHandler.Get).Methods("GET")
	authRoutes.HandleFunc("/cart/items", cartHandler.Add).Methods("POST")
	authRoutes.HandleFunc("/cart/items/{id}", cartHandler.UpdateQuantity).Methods("PATCH")
	authRoutes.HandleFunc("/cart/items/{id}", cartHandler.Remove).Methods("DELETE")
	authRoutes.HandleFunc("/cart", cartHandler.Clear).Methods("DELETE")

	// checkout and bill generation
	authRoutes.HandleFunc("/checkout", checkoutHandler.Begin).Methods("POST")
	authRoutes.HandleFunc("/checkout/customer", checkoutHandler.Customer).Methods("PUT")
	authRoutes.HandleFunc("/checkout/bill", checkoutHandler.Bill).Methods("GET")
	authRoutes.HandleFunc("/checkout/cancel", checkoutHandler.Cancel).Methods("POST")

	// admin only; /auth does its own role check so it can answer 403
	// with the message the admin UI expects
	admin := authRoutes.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/auth", handlers.AdminAuthCheck).Methods("GET")

	adminGated := authRoutes.PathPrefix("/admin").Subrouter()
	adminGated.Use(middlewares.RoleBasedMiddleware(models.RoleAdmin))
	adminGated.HandleFunc("/menu/refresh", menuHandler.Refresh).Methods("POST")

	return &Server{
		Router: router,
	}
}

func (svr *Server) Run(port string) error {
	svr.server = &http.Server{
		Addr:              port,
		Handler:           svr.Router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return svr.server.ListenAndServe()
}

func (svr *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return svr.server.Shutdown(ctx)
}
