package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	ml "github.com/CreditScope/CreditScope-Go/pipelines/ML"
	storage "github.com/CreditScope/CreditScope-Go/pipelines/Storage"
	"github.com/CreditScope/CreditScope-Go/utils"
)

// Server is the scoring service: a router plus the model bundle loaded once
// at startup. The bundle is read-only for the life of the process; swapping
// models means restarting.
type Server struct {
	router *mux.Router
	config *utils.Config
	bundle *storage.ModelBundle
	model  ml.Classifier
}

// NewServer creates a scoring server around an already-loaded model bundle.
func NewServer(config *utils.Config, bundle *storage.ModelBundle) (*Server, error) {
	model, err := bundle.Classifier()
	if err != nil {
		return nil, fmt.Errorf("bundle is not servable: %w", err)
	}

	s := &Server{
		router: mux.NewRouter(),
		config: config,
		bundle: bundle,
		model:  model,
	}
	s.setupRoutes()
	return s, nil
}

// Router exposes the handler tree, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server; it blocks until the listener fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	utils.GetLogger().Info("scoring server listening",
		utils.Component("server"),
		utils.String("addr", addr),
		utils.String("model_id", s.bundle.ID),
		utils.String("algorithm", s.bundle.Algorithm))
	return http.ListenAndServe(addr, s.router)
}
