package http

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestServerShutdownStopsRun(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := &Server{Engine: gin.New()}
	done := make(chan error, 1)
	go func() { done <- s.Run("127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("run did not return after shutdown")
	}
}

func TestServerRunAfterShutdownReturns(t *testing.T) {
	s := &Server{Engine: gin.New()}
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := s.Run("127.0.0.1:0"); err != nil {
		t.Fatalf("run after shutdown: %v", err)
	}
}
