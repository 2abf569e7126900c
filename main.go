package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"groceryStore/handlers"
	"groceryStore/repository"
	"groceryStore/services"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/redis/go-redis/v9"
)

func main() {
	kv := initStorage()

	cartR, err := repository.NewCartRepository(kv)
	wishR, err2 := repository.NewWishlistRepository(kv)
	userR, _ := repository.NewUserRepository(kv)
	prefR, _ := repository.NewPreferenceRepository(kv)
	if err != nil {
		panic(err)
	}
	if err2 != nil {
		panic(err2)
	}

	catalogUrl := getEnv("CATALOG_URL", "http://localhost:3001")
	remoteR, err := repository.NewRemoteCatalogRepository(catalogUrl)
	if err != nil {
		panic(err)
	}
	staticR := repository.NewStaticCatalogRepository()
	log.Printf("catalog source: %s (offline fallback ready)", catalogUrl)

	hp := handlers.HandlerParams{
		UsrService: services.NewUserService(userR, 1*time.Second),
		PrdService: services.NewProductService(remoteR, staticR),
		CrtService: services.NewCartService(cartR),
		WshService: services.NewWishlistService(wishR),
		OrdService: services.NewOrderService(cartR, userR, 1500*time.Millisecond),
		PrfService: services.NewPreferenceService(prefR),
	}
	ha := handlers.NewHandler(hp)
	router := mux.NewRouter()
	router.Use(ha.ErrorHandleMiddleware)
	subAuth := router.NewRoute().Subrouter()
	subAuth.Use(ha.AuthMiddleware)
	subAdmin := router.NewRoute().Subrouter()
	subAdmin.Use(ha.AdminAuthMiddleware)

	router.HandleFunc("/", ha.Welcome)
	router.HandleFunc("/users/login", ha.Login).Methods("POST")
	router.HandleFunc("/users/register", ha.Register).Methods("POST")
	subAuth.HandleFunc("/users/logout", ha.Logout).Methods("POST")
	subAuth.HandleFunc("/users/profile", ha.GetProfile).Methods("GET")
	subAuth.HandleFunc("/users/profile/update", ha.UpdateProfile).Methods("POST")

	router.HandleFunc("/products", ha.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id:[0-9]+}", ha.GetProduct).Methods("GET")
	subAdmin.HandleFunc("/products/create", ha.CreateProduct).Methods("POST")
	subAdmin.HandleFunc("/products/{id:[0-9]+}/update", ha.UpdateProduct).Methods("POST")
	subAdmin.HandleFunc("/products/{id:[0-9]+}/delete", ha.DeleteProduct).Methods("DELETE")

	router.HandleFunc("/cart", ha.GetCart).Methods("GET")
	router.HandleFunc("/cart", ha.AddToCart).Methods("POST")
	router.HandleFunc("/cart", ha.DeleteFromCart).Methods("DELETE")
	router.HandleFunc("/cart/quantity", ha.UpdateCartQuantity).Methods("POST")
	router.HandleFunc("/cart/increase", ha.IncreaseCartQuantity).Methods("POST")
	router.HandleFunc("/cart/decrease", ha.DecreaseCartQuantity).Methods("POST")
	router.HandleFunc("/cart/clear", ha.ClearCart).Methods("DELETE")
	router.HandleFunc("/cart/checkout", ha.Checkout).Methods("POST")
	subAuth.HandleFunc("/orders", ha.GetCurrentUserOrders).Methods("GET")

	router.HandleFunc("/wishlist", ha.GetWishlist).Methods("GET")
	router.HandleFunc("/wishlist", ha.AddToWishlist).Methods("POST")
	router.HandleFunc("/wishlist", ha.RemoveFromWishlist).Methods("DELETE")
	router.HandleFunc("/wishlist/toggle", ha.ToggleWishlist).Methods("POST")
	router.HandleFunc("/wishlist/clear", ha.ClearWishlist).Methods("DELETE")

	router.HandleFunc("/theme", ha.GetTheme).Methods("GET")
	router.HandleFunc("/theme", ha.SetTheme).Methods("POST")
	router.HandleFunc("/theme/toggle", ha.ToggleTheme).Methods("POST")
	router.HandleFunc("/recent", ha.GetRecentlyViewed).Methods("GET")
	router.HandleFunc("/recent/clear", ha.ClearRecentlyViewed).Methods("DELETE")

	addr := getEnv("LISTEN_ADDR", ":8080")
	log.Printf("starting server on %s...", addr)
	http.ListenAndServe(addr, router)
}

// initStorage picks the key-value backend from STORAGE_BACKEND:
// redis, postgres, sqlite (default, file-backed) or memory.
func initStorage() repository.KVRepository {
	backend := getEnv("STORAGE_BACKEND", "sqlite")
	switch backend {
	case "redis":
		redis_host := os.Getenv("REDIS_HOST")
		redis_port := os.Getenv("REDIS_PORT")
		rdb := redis.NewClient(&redis.Options{
			Addr:     redis_host + ":" + redis_port,
			Password: "",
			DB:       0,
		})
		ctx, cncl := context.WithTimeout(context.Background(), 5*time.Second)
		defer cncl()
		if status := rdb.Ping(ctx); status.Err() != nil {
			panic("redis is not working: " + status.Err().Error())
		}
		kv, err := repository.NewRedisKVRepository(rdb, context.Background())
		if err != nil {
			panic(err)
		}
		log.Printf("redis connected")
		return kv
	case "postgres":
		host := os.Getenv("DATABASE_HOST")
		port := os.Getenv("DATABASE_PORT")
		user := os.Getenv("DATABASE_USER")
		pass := os.Getenv("DATABASE_PASSWORD")
		dbname := os.Getenv("DATABASE_NAME")
		connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, port, dbname)
		db, err := sql.Open("postgres", connStr)
		if err != nil {
			panic(err)
		}
		kv, err := repository.NewSQLKVRepository(db)
		if err != nil {
			panic(err)
		}
		log.Printf("db connected")
		return kv
	case "sqlite":
		file := getEnv("STORAGE_FILE", "grocery.db")
		db, err := sql.Open("sqlite3", file)
		if err != nil {
			panic(err)
		}
		kv, err := repository.NewSQLKVRepository(db)
		if err != nil {
			panic(err)
		}
		log.Printf("storage file: %s", file)
		return kv
	case "memory":
		return repository.NewMemoryKVRepository()
	default:
		panic("unknown STORAGE_BACKEND: " + backend)
	}
}

func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
