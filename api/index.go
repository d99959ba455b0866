package handler

import (
	"net/http"

	"tonsor/config"
	"tonsor/di"
	"tonsor/shared/logger"
)

// Handler adapts the stub backend to a serverless function entrypoint.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	server := di.InitializeServer()
	server.Adaptor()(w, r)
}
