package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Dias221467/LinguaConnect/internal/config"
	"github.com/Dias221467/LinguaConnect/internal/database"
	"github.com/Dias221467/LinguaConnect/internal/handlers"
	"github.com/Dias221467/LinguaConnect/internal/repository"
	"github.com/Dias221467/LinguaConnect/internal/services"
	"github.com/Dias221467/LinguaConnect/pkg/chat"
	"github.com/Dias221467/LinguaConnect/pkg/logger"
	"github.com/Dias221467/LinguaConnect/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// Messaging provider client, injected into the services that need it.
	// Chat and video are hosted entirely by the provider.
	streamProvider, err := chat.NewStreamProvider(cfg.StreamAPIKey, cfg.StreamAPISecret)
	if err != nil {
		log.Fatalf("Messaging provider init error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo, streamProvider)
	friendService := services.NewFriendService(friendRepo, userRepo)
	chatService := services.NewChatService(streamProvider)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(userService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	friendHandler := handlers.NewFriendHandler(friendService)
	chatHandler := handlers.NewChatHandler(chatService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public auth routes
	router.HandleFunc("/auth/signup", authHandler.SignupHandler).Methods("POST")
	router.HandleFunc("/auth/login", authHandler.LoginHandler).Methods("POST")
	router.HandleFunc("/auth/logout", authHandler.LogoutHandler).Methods("POST")

	// Protected auth routes
	protectedAuthRoutes := router.PathPrefix("/auth").Subrouter()
	protectedAuthRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedAuthRoutes.HandleFunc("/me", authHandler.MeHandler).Methods("GET")

	// User routes
	protectedUserRoutes := router.PathPrefix("/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.HandleFunc("/onboarding", userHandler.OnboardingHandler).Methods("POST")
	protectedUserRoutes.HandleFunc("/recommended", userHandler.RecommendedUsersHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/friends", userHandler.FriendsHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/friend-request/{id}", friendHandler.SendFriendRequestHandler).Methods("POST")

	// Friend request routes
	protectedFriendRoutes := router.PathPrefix("/friend-requests").Subrouter()
	protectedFriendRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedFriendRoutes.HandleFunc("", friendHandler.GetFriendRequestsHandler).Methods("GET")
	protectedFriendRoutes.HandleFunc("/outgoing", friendHandler.GetOutgoingRequestsHandler).Methods("GET")
	protectedFriendRoutes.HandleFunc("/{id}/accept", friendHandler.AcceptFriendRequestHandler).Methods("PUT")

	// Chat routes
	protectedChatRoutes := router.PathPrefix("/chat").Subrouter()
	protectedChatRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedChatRoutes.HandleFunc("/token", chatHandler.GetTokenHandler).Methods("GET")

	// Prometheus scrape endpoint
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
