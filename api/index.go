package handler

import (
	"net/http"
	"rental/config"
	"rental/di"
	"rental/shared/logger"
	"sync"
)

var (
	app  http.Handler
	once sync.Once
)

func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		app = di.InitializeService().Handler()
	})

	r.RequestURI = r.URL.String()

	app.ServeHTTP(w, r)
}
