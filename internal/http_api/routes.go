package http_api

// routes sets up the routes for the HTTP server.
func (s *HTTPServer) routes() {
	s.router.GET("/api/v1/health", s.health)
	s.router.GET("/api/v1/jobs", s.jobStatus)
	s.router.POST("/api/v1/channels/:id/sync", s.syncChannel)
}
