package main

// setupRoutes wires the HTTP routes
func (s *Server) setupRoutes() {
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.errorRecoveryMiddleware)

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/predict", s.handlePredict).Methods("POST")
	s.router.HandleFunc("/model", s.handleModelInfo).Methods("GET")
}
