package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/lifeos/lifeos-sync/internal/config"
	"github.com/lifeos/lifeos-sync/internal/database"
	"github.com/lifeos/lifeos-sync/internal/handlers"
	"github.com/lifeos/lifeos-sync/internal/jobs"
	"github.com/lifeos/lifeos-sync/internal/localstore"
	"github.com/lifeos/lifeos-sync/internal/models"
	"github.com/lifeos/lifeos-sync/internal/repository"
	cronjobs "github.com/lifeos/lifeos-sync/internal/scheduler"
	"github.com/lifeos/lifeos-sync/internal/session"
	"github.com/lifeos/lifeos-sync/internal/store"
	"github.com/lifeos/lifeos-sync/pkg/logger"
	"github.com/lifeos/lifeos-sync/pkg/middleware"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Device-local snapshots back the anonymous path.
	local, err := localstore.New(cfg.DataDir)
	if err != nil {
		log.Fatalf("Local store error: %v", err)
	}

	// The remote backing store is optional: without MONGO_URI the process
	// runs local-only and every session behaves as a guest.
	var remote store.Remote
	if cfg.MongoURI != "" {
		db, err := database.ConnectDB(cfg)
		if err != nil {
			log.Fatalf("Database connection error: %v", err)
		}
		repo := repository.NewSyncRepository(db)
		collections := []string{
			models.CollectionEvents, models.CollectionGoals, models.CollectionProjects,
			models.CollectionSkills, models.CollectionExpenses, models.CollectionSubscriptions,
		}
		if err := repo.EnsureIndexes(context.Background(), collections); err != nil {
			log.Fatalf("Index creation error: %v", err)
		}
		remote = repo
	}

	gate := session.NewGate()

	dataStore := store.New(store.Config{
		Remote: remote,
		Local:  local,
		Gate:   gate,
		Logger: logger.Log,
	})
	dataStore.Start(context.Background())
	defer dataStore.Close()

	// --- Handlers ---
	eventHandler := handlers.NewEventHandler(dataStore)
	goalHandler := handlers.NewGoalHandler(dataStore)
	projectHandler := handlers.NewProjectHandler(dataStore)
	skillHandler := handlers.NewSkillHandler(dataStore)
	expenseHandler := handlers.NewExpenseHandler(dataStore)
	subscriptionHandler := handlers.NewSubscriptionHandler(dataStore)
	sessionHandler := handlers.NewSessionHandler(gate, cfg.JWTSecret)
	feedHandler := handlers.NewFeedHandler(dataStore, cfg.JWTSecret)

	// Daily scan placing upcoming subscription renewals on the calendar.
	cronjobs.StartRenewalCronJobs(jobs.NewRenewalNotifier(dataStore))

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Session routes
	router.HandleFunc("/session/login", sessionHandler.LoginHandler).Methods("POST")
	router.HandleFunc("/session/logout", sessionHandler.LogoutHandler).Methods("POST")
	router.HandleFunc("/session", sessionHandler.StatusHandler).Methods("GET")

	// Change notification feed
	router.HandleFunc("/ws/changes", feedHandler.ChangesWebSocketHandler)

	// Collection routes accept guests; a presented token must still be valid.
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.OptionalAuthMiddleware(cfg.JWTSecret))

	api.HandleFunc("/events", eventHandler.ListEventsHandler).Methods("GET")
	api.HandleFunc("/events", eventHandler.CreateEventHandler).Methods("POST")
	api.HandleFunc("/events/{id}", eventHandler.UpdateEventHandler).Methods("PATCH")
	api.HandleFunc("/events/{id}", eventHandler.DeleteEventHandler).Methods("DELETE")

	api.HandleFunc("/goals", goalHandler.ListGoalsHandler).Methods("GET")
	api.HandleFunc("/goals", goalHandler.CreateGoalHandler).Methods("POST")
	api.HandleFunc("/goals/{id}", goalHandler.UpdateGoalHandler).Methods("PATCH")
	api.HandleFunc("/goals/{id}", goalHandler.DeleteGoalHandler).Methods("DELETE")

	api.HandleFunc("/projects", projectHandler.ListProjectsHandler).Methods("GET")
	api.HandleFunc("/projects", projectHandler.CreateProjectHandler).Methods("POST")
	api.HandleFunc("/projects/{id}", projectHandler.UpdateProjectHandler).Methods("PATCH")
	api.HandleFunc("/projects/{id}", projectHandler.DeleteProjectHandler).Methods("DELETE")
	api.HandleFunc("/projects/{id}/tasks", projectHandler.AddTaskHandler).Methods("POST")
	api.HandleFunc("/projects/{id}/tasks/{taskId}/toggle", projectHandler.ToggleTaskHandler).Methods("PATCH")
	api.HandleFunc("/projects/{id}/tasks/{taskId}", projectHandler.DeleteTaskHandler).Methods("DELETE")

	api.HandleFunc("/skills", skillHandler.ListSkillsHandler).Methods("GET")
	api.HandleFunc("/skills", skillHandler.CreateSkillHandler).Methods("POST")
	api.HandleFunc("/skills/{id}", skillHandler.UpdateSkillHandler).Methods("PATCH")
	api.HandleFunc("/skills/{id}", skillHandler.DeleteSkillHandler).Methods("DELETE")

	api.HandleFunc("/expenses/categories", expenseHandler.ListCategoriesHandler).Methods("GET")
	api.HandleFunc("/expenses", expenseHandler.ListExpensesHandler).Methods("GET")
	api.HandleFunc("/expenses", expenseHandler.CreateExpenseHandler).Methods("POST")
	api.HandleFunc("/expenses/{id}", expenseHandler.UpdateExpenseHandler).Methods("PATCH")
	api.HandleFunc("/expenses/{id}", expenseHandler.DeleteExpenseHandler).Methods("DELETE")

	api.HandleFunc("/subscriptions/monthly-spend", subscriptionHandler.MonthlySpendHandler).Methods("GET")
	api.HandleFunc("/subscriptions", subscriptionHandler.ListSubscriptionsHandler).Methods("GET")
	api.HandleFunc("/subscriptions", subscriptionHandler.CreateSubscriptionHandler).Methods("POST")
	api.HandleFunc("/subscriptions/{id}", subscriptionHandler.UpdateSubscriptionHandler).Methods("PATCH")
	api.HandleFunc("/subscriptions/{id}", subscriptionHandler.DeleteSubscriptionHandler).Methods("DELETE")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
