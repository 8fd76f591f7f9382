package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-mazegen/api"
	api_i "github.com/beka-birhanu/vinom-mazegen/api/i"
	"github.com/beka-birhanu/vinom-mazegen/api/identity"
	mazeapi "github.com/beka-birhanu/vinom-mazegen/api/maze"
	"github.com/beka-birhanu/vinom-mazegen/config"
	"github.com/beka-birhanu/vinom-mazegen/infrastruture/cache"
	logger "github.com/beka-birhanu/vinom-mazegen/infrastruture/log"
	"github.com/beka-birhanu/vinom-mazegen/infrastruture/token"
	"github.com/beka-birhanu/vinom-mazegen/service"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Global variables for dependencies
var (
	redisClient    *redis.Client
	mazeCache      i.MazeCache
	mazeGenerator  i.MazeGenerator
	mazeController api_i.Controller
	jwtTokenizer   i.Tokenizer
	router         *api.Router
	appLogger      *logger.Logger
)

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initMazeCache() {
	var err error
	mazeCache, err = cache.NewRedisMazeCache(redisClient, config.Envs.CacheTTLSeconds)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze cache: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze cache initialized")
}

func initMazeGenerator() {
	generatorLogger, err := logger.New("MAZE-GEN", logger.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze generator logger: %v", err))
		os.Exit(1)
	}

	mazeGenerator, err = service.NewMazeGenerator(mazeCache, generatorLogger, &service.Options{
		Prefix:       config.Envs.CachePrefix,
		MaxAttempts:  config.Envs.MaxGenerationAttempts,
		MaxDimension: config.Envs.MaxMazeDimension,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze generator: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze generator initialized")
}

func initMazeController() {
	var err error
	mazeController, err = mazeapi.NewMazeController(mazeGenerator)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{mazeController},
		AuthorizationMiddleware: identity.Authorize(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	appLogger, err = logger.New("APP", logger.ColorGreen, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating app logger: %v\n", err)
		os.Exit(1)
	}

	initRedis(ctx)
	defer func() {
		_ = redisClient.Close()
	}()

	initMazeCache()
	initMazeGenerator()
	initMazeController()
	initJWTTokenizer()
	initRouter(jwtTokenizer)

	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
