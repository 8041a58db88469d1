package server

import (
	"net/http"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"illustrator/internal/metrics"
	"illustrator/internal/server/handler"
)

func NewMux(illustrations *handler.Illustration, log *zap.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", handler.HandleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/v1.0").Subrouter()
	api.HandleFunc("/capabilities", illustrations.HandleCapabilities).Methods(http.MethodGet)
	api.HandleFunc("/{family}/generate", illustrations.HandleGenerate).Methods(http.MethodPost, http.MethodOptions)

	r.Use(observe(log))

	recovery := gorillahandlers.RecoveryHandler(
		gorillahandlers.RecoveryLogger(zap.NewStdLog(log)),
		gorillahandlers.PrintRecoveryStack(false),
	)
	return cors(recovery(r))
}
