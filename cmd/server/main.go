package main

import (
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/spaysidokito/math-racers-1/internal/admin"
	"github.com/spaysidokito/math-racers-1/internal/auth"
	"github.com/spaysidokito/math-racers-1/internal/database"
	"github.com/spaysidokito/math-racers-1/internal/generator"
	"github.com/spaysidokito/math-racers-1/internal/middleware"
	"github.com/spaysidokito/math-racers-1/internal/models"
	"github.com/spaysidokito/math-racers-1/internal/progress"
	"github.com/spaysidokito/math-racers-1/internal/questions"
	"github.com/spaysidokito/math-racers-1/internal/quiz"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize stores and services
	questionStore := questions.NewStore(db)
	questionService := questions.NewService(questionStore)
	choiceGen := questions.NewChoiceGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))

	quizStore := quiz.NewStore(db)
	progressStore := progress.NewStore(db)
	progressService := progress.NewService(progressStore, quizStore)
	quizService := quiz.NewService(quizStore, questionStore, choiceGen, progressService)

	generatorService := generator.NewService(generator.NewGenerator(), questionStore)

	adminService := admin.NewService(admin.NewStore(db))

	// Initialize handlers
	authHandler := auth.NewHandler(db)
	questionHandler := questions.NewHandler(questionService)
	quizHandler := quiz.NewHandler(quizService)
	progressHandler := progress.NewHandler(progressService)
	generatorHandler := generator.NewHandler(generatorService)
	adminHandler := admin.NewHandler(adminService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/auth/grade", authHandler.SelectGrade).Methods("PUT")
	protected.HandleFunc("/topics", questionHandler.GetTopics).Methods("GET")
	protected.HandleFunc("/difficulties", questionHandler.GetDifficulties).Methods("GET")
	protected.HandleFunc("/badges", progressHandler.GetBadgeCatalog).Methods("GET")

	// Student routes
	student := protected.PathPrefix("").Subrouter()
	student.Use(middleware.RequireRole(models.RoleStudent))
	student.HandleFunc("/quizzes", quizHandler.StartQuiz).Methods("POST")
	student.HandleFunc("/quizzes/recent", quizHandler.RecentSessions).Methods("GET")
	student.HandleFunc("/quizzes/{id:[0-9]+}", quizHandler.GetQuiz).Methods("GET")
	student.HandleFunc("/quizzes/{id:[0-9]+}/answers", quizHandler.SubmitAnswer).Methods("POST")
	student.HandleFunc("/quizzes/{id:[0-9]+}/complete", quizHandler.CompleteQuiz).Methods("POST")
	student.HandleFunc("/progress", progressHandler.GetProgress).Methods("GET")
	student.HandleFunc("/leaderboard", progressHandler.GetLeaderboard).Methods("GET")

	// Teacher routes (admins included)
	teacher := protected.PathPrefix("").Subrouter()
	teacher.Use(middleware.RequireRole(models.RoleTeacher, models.RoleAdmin))
	teacher.HandleFunc("/questions", questionHandler.CreateQuestion).Methods("POST")
	teacher.HandleFunc("/questions", questionHandler.ListQuestions).Methods("GET")
	teacher.HandleFunc("/questions/generate", generatorHandler.GenerateQuestions).Methods("POST")
	teacher.HandleFunc("/questions/{id:[0-9]+}", questionHandler.GetQuestion).Methods("GET")
	teacher.HandleFunc("/questions/{id:[0-9]+}", questionHandler.UpdateQuestion).Methods("PUT")
	teacher.HandleFunc("/questions/{id:[0-9]+}", questionHandler.DeleteQuestion).Methods("DELETE")
	teacher.HandleFunc("/reports/students", progressHandler.ListStudentPerformance).Methods("GET")
	teacher.HandleFunc("/reports/students/{id:[0-9]+}", progressHandler.GetStudentDetail).Methods("GET")
	teacher.HandleFunc("/reports/class", progressHandler.GetClassPerformance).Methods("GET")
	teacher.HandleFunc("/assignments", progressHandler.GetTopicAssignments).Methods("GET")
	teacher.HandleFunc("/assignments", progressHandler.AssignTopics).Methods("POST")

	// Admin routes
	adminRoutes := protected.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.RequireRole(models.RoleAdmin))
	adminRoutes.HandleFunc("/users", adminHandler.ListUsers).Methods("GET")
	adminRoutes.HandleFunc("/users/{id:[0-9]+}/role", adminHandler.UpdateUserRole).Methods("PUT")
	adminRoutes.HandleFunc("/users/{id:[0-9]+}/status", adminHandler.UpdateUserStatus).Methods("PUT")
	adminRoutes.HandleFunc("/users/{id:[0-9]+}", adminHandler.DeleteUser).Methods("DELETE")
	adminRoutes.HandleFunc("/stats", adminHandler.GetPlatformStats).Methods("GET")
	adminRoutes.HandleFunc("/logs", adminHandler.GetSystemLogs).Methods("GET")
	adminRoutes.HandleFunc("/questions/stats", adminHandler.GetQuestionBankStats).Methods("GET")
	adminRoutes.HandleFunc("/questions/bulk-delete", adminHandler.BulkDeleteQuestions).Methods("POST")
	adminRoutes.HandleFunc("/questions/export", adminHandler.ExportQuestions).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
