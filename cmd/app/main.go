package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"handoff/cmd"
	httpin "handoff/internal/adapters/in/http"
	"handoff/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := openDatabase(configs)
	redisClient := openRedis(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := app.CreateJobManager(stallThreshold(configs), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:              goDotEnvVariable("HTTP_PORT"),
		DBHost:                goDotEnvVariable("DB_HOST"),
		DBPort:                goDotEnvVariable("DB_PORT"),
		DBUser:                goDotEnvVariable("DB_USER"),
		DBPassword:            goDotEnvVariable("DB_PASSWORD"),
		DBName:                goDotEnvVariable("DB_NAME"),
		DBSslMode:             goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:             goDotEnvVariable("REDIS_ADDR"),
		RedisPassword:         goDotEnvVariable("REDIS_PASSWORD"),
		RedisDB:               goDotEnvVariable("REDIS_DB"),
		StalledOrderThreshold: goDotEnvVariable("STALLED_ORDER_THRESHOLD"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		configs.DBHost, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBPort, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.LegDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func openRedis(configs cmd.Config) *redis.Client {
	db := 0
	if configs.RedisDB != "" {
		parsed, err := strconv.Atoi(configs.RedisDB)
		if err != nil {
			log.Fatalf("Invalid REDIS_DB: %v", err)
		}
		db = parsed
	}

	return redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
		DB:       db,
	})
}

func stallThreshold(configs cmd.Config) time.Duration {
	if configs.StalledOrderThreshold == "" {
		return 10 * time.Minute
	}

	threshold, err := time.ParseDuration(configs.StalledOrderThreshold)
	if err != nil {
		log.Fatalf("Invalid STALLED_ORDER_THRESHOLD: %v", err)
	}
	return threshold
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateStartLegCommandHandler(),
		app.CreateFinishLegCommandHandler(),
		app.CreateGetOrderQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
