package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"hotel-rooms/config"
	"hotel-rooms/controllers"
	"hotel-rooms/logger"
	"hotel-rooms/routes"
	"hotel-rooms/services"
	"hotel-rooms/stores"
)

type storeSet struct {
	rooms     stores.RoomStore
	bookings  stores.BookingStore
	roomTypes stores.RoomTypeStore
	hotels    stores.HotelStore
	admins    stores.AdminStore
	sessions  stores.SessionStore
}

func main() {
	// Load .env (optional)
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat, "hotel-rooms")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	if envErr != nil {
		zl.Debug(".env not loaded; using process environment", zap.Error(envErr))
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	st, cleanup, err := openStores(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("store setup failed", zap.Error(err))
	}
	defer cleanup()

	roomService := services.NewRoomService(st.rooms, st.bookings, st.roomTypes, cfg.MaxPageLimit)
	roomTypeService := services.NewRoomTypeService(st.roomTypes, st.rooms)
	hotelService := services.NewHotelService(st.hotels)
	authService := services.NewAuthService(st.admins, st.sessions, cfg.SessionTTL)

	router := routes.SetupRouter(routes.Handlers{
		Rooms:     controllers.NewRoomController(roomService, zl),
		RoomTypes: controllers.NewRoomTypeController(roomTypeService, zl),
		Hotels:    controllers.NewHotelController(hotelService, zl),
		Auth:      controllers.NewAuthController(authService, zl),
	}, authService, cfg.CORSOrigins, zl)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		zl.Info("server starting", zap.String("addr", addr), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	zl.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
		return
	}
	zl.Info("server stopped gracefully")
}

// openStores builds the stores for cfg.StoreDriver. Sessions go to Redis when
// REDIS_ADDR is set and stay in process otherwise.
func openStores(ctx context.Context, cfg config.Config, zl *zap.Logger) (storeSet, func(), error) {
	var st storeSet
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var mem *stores.MemoryDB
	switch cfg.StoreDriver {
	case config.DriverMemory:
		mem = stores.NewMemoryDB()
		if err := config.SeedMemory(ctx, mem, cfg, zl); err != nil {
			return st, cleanup, err
		}
		st.rooms, st.bookings = mem.Rooms(), mem.Bookings()
		st.roomTypes, st.hotels, st.admins = mem.RoomTypes(), mem.Hotels(), mem.Admins()
	default:
		db, err := config.ConnectDatabase(cfg, zl)
		if err != nil {
			return st, cleanup, err
		}
		if sqlDB, err := db.DB(); err == nil {
			closers = append(closers, func() { _ = sqlDB.Close() })
		}
		zl.Info("database connected", zap.String("db", cfg.DBName))
		if cfg.SeedData {
			if err := config.SeedDatabase(db, cfg, zl); err != nil {
				return st, cleanup, err
			}
		}
		st.rooms, st.bookings = stores.NewGormRoomStore(db), stores.NewGormBookingStore(db)
		st.roomTypes, st.hotels, st.admins = stores.NewGormRoomTypeStore(db), stores.NewGormHotelStore(db), stores.NewGormAdminStore(db)
	}

	if cfg.RedisAddr != "" {
		rdb, err := config.ConnectRedis(ctx, cfg)
		if err != nil {
			return st, cleanup, err
		}
		closers = append(closers, func() { _ = rdb.Close() })
		st.sessions = stores.NewRedisSessionStore(rdb)
		zl.Info("redis connected", zap.String("addr", cfg.RedisAddr))
	} else {
		if mem == nil {
			mem = stores.NewMemoryDB()
		}
		st.sessions = mem.Sessions()
	}
	return st, cleanup, nil
}
