package main

import (
	"tonsor/config"
	"tonsor/di"
	"tonsor/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	server := di.InitializeServer()
	server.Serve()
}
