package main

import (
	"log"
	"net/http"

	"driver_dispatch/internal/cache"
	"driver_dispatch/internal/config"
	"driver_dispatch/internal/logger"
	"driver_dispatch/internal/middleware"
	"driver_dispatch/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the backing stores
	config.InitDB()
	cache.InitRedis()

	// Setup Gin router and wrap with CORS
	r := routes.SetupRouter()
	handler := middleware.EnableCORS(r)

	addr := "0.0.0.0:" + config.Env("PORT", "8080")
	log.Printf("🚀 Dispatch service running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
