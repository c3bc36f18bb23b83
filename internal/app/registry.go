package app

import (
	"database/sql"
	"os"
	"path/filepath"

	"leavedesk/internal/identity"
	"leavedesk/internal/leaverequest"
	"leavedesk/internal/leavetype"
	"leavedesk/internal/messaging/kafka"
	"leavedesk/internal/middleware"
	"leavedesk/internal/notification"
	"leavedesk/internal/rbac"
	"leavedesk/internal/stats"
	"leavedesk/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	sqlDB *sql.DB,
	gormDB *gorm.DB,
	redisClient *redis.Client,
) error {
	rbacService, err := rbac.NewService(
		filepath.Join("internal", "rbac", "model.conf"),
		filepath.Join("internal", "rbac", "policy.csv"),
	)
	if err != nil {
		return err
	}

	userRepo := user.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	leaveRequestRepo := leaverequest.NewRepository(gormDB)
	statsRepo := stats.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	notifier := notification.NewOutboxNotifier(outboxRepo)

	userService := user.NewService(userRepo)
	leaveTypeService := leavetype.NewService(leaveTypeRepo)
	leaveRequestService := leaverequest.NewService(sqlDB, leaveRequestRepo, userRepo, leaveTypeRepo, notifier)
	statsService := stats.NewService(statsRepo, leaveRequestRepo, leaveTypeRepo)

	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	leaveRequestHandler := leaverequest.NewHandler(leaveRequestService)
	statsHandler := stats.NewHandler(statsService)

	resolver := identity.NewResolver(os.Getenv("JWT_SECRET"), redisClient)

	api := router.Group("/api/v1")
	api.Use(middleware.Authenticate(resolver))
	api.Use(middleware.RateLimitByUser(rate.Limit(10), 20))
	api.Use(middleware.RequireProfile(userService))

	leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
	leaverequest.RegisterRoutes(api, leaveRequestHandler, rbacService)
	stats.RegisterRoutes(api, statsHandler, rbacService)

	return nil
}
