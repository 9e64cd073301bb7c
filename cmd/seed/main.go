package main

import (
	"context"
	"errors"
	"log"

	"github.com/labstack/echo/v4"

	"tasktracker/internal/auth"
	"tasktracker/internal/cache"
	"tasktracker/internal/config"
	"tasktracker/internal/db"
	"tasktracker/internal/model"
	"tasktracker/internal/repository"
	"tasktracker/internal/service"
)

type seedUser struct {
	Username string
	Password string
	Tasks    []seedTask
}

type seedTask struct {
	Title       string
	Description string
	Status      model.TaskStatus
}

var demoUsers = []seedUser{
	{
		Username: "alice",
		Password: "StrongPassword123",
		Tasks: []seedTask{
			{Title: "Write project proposal", Description: "Draft the Q3 proposal document", Status: model.TaskStatusInProgress},
			{Title: "Review pull requests", Description: "Go through the open backend PRs", Status: model.TaskStatusOpen},
			{Title: "Book flights", Description: "Conference travel for October", Status: model.TaskStatusDone},
		},
	},
	{
		Username: "bob",
		Password: "AnotherPass123",
		Tasks: []seedTask{
			{Title: "Fix login page styling", Description: "", Status: model.TaskStatusOpen},
			{Title: "Update dependencies", Description: "Bump patch versions across services", Status: model.TaskStatusDone},
		},
	},
}

// Seeds demo users and tasks through the service layer so the same
// validation and hashing rules apply as for API traffic.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	taskService := service.NewTaskService(taskRepo, echo.New().Logger)

	ctx := context.Background()
	created, skipped := 0, 0

	for _, su := range demoUsers {
		if err := authService.Register(ctx, su.Username, su.Password); err != nil {
			if errors.Is(err, service.ErrUsernameTaken) {
				log.Printf("User %q already exists, skipping registration", su.Username)
				skipped++
			} else {
				log.Fatalf("Failed to register user %q: %v", su.Username, err)
			}
		} else {
			created++
		}

		user, err := userRepo.FindByUsername(ctx, su.Username)
		if err != nil {
			log.Fatalf("Failed to look up user %q: %v", su.Username, err)
		}

		for _, st := range su.Tasks {
			task, err := taskService.CreateTask(ctx, st.Title, st.Description, user.ID)
			if err != nil {
				log.Fatalf("Failed to create task %q for %q: %v", st.Title, su.Username, err)
			}
			if st.Status != model.TaskStatusOpen {
				if _, err := taskService.UpdateTaskStatus(ctx, task.ID, st.Status, user.ID); err != nil {
					log.Fatalf("Failed to set status of task %q: %v", st.Title, err)
				}
			}
		}
		log.Printf("Seeded %d tasks for %q", len(su.Tasks), su.Username)
	}

	log.Printf("Seed completed: %d users created, %d already present", created, skipped)
}
