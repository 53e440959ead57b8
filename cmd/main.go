package main

import (
	"log"

	"github.com/vidyatarun06/FreshFarmerBackend/cmd/server"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/auth"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/cache"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/config"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/storage"
)

var (
	srvAddr                 = config.Env.ServerAddr
	postgresConnStr         = config.Env.PostgresConnStr
	redisAddr               = config.Env.RedisAddr
	accessTokenSecret       = config.Env.AccessTokenSecret
	accessTokenExpiryInSecs = config.Env.AccessTokenExpiryInSecs
	adminKey                = config.Env.AdminKey
	deleteOnZeroStock       = config.Env.DeleteOnZeroStock
)

func main() {
	log.SetFlags(log.Ldate | log.Llongfile)

	db, err := storage.NewPostgresDB(postgresConnStr)
	if err != nil {
		log.Fatal(err)
	}

	redisClient, err := cache.NewRedisClient(redisAddr)
	if err != nil {
		log.Printf("listing cache disabled: %v", err)
		redisClient = nil
	}

	srv := server.NewServer(&server.ServerConfig{
		Addr:  srvAddr,
		DB:    db,
		Redis: redisClient,
		TokenManager: auth.NewTokenService(
			accessTokenSecret,
			accessTokenExpiryInSecs,
		),
		AdminKey:          adminKey,
		DeleteOnZeroStock: deleteOnZeroStock,
	},
	)
	srv.Run()
}
