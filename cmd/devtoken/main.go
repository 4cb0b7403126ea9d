package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/payona-backend/internal/app"
	"github.com/yungbote/payona-backend/internal/services"
)

// devtoken prints a bearer token for a local user, signed with the same
// JWT_* settings the server verifies against.
func main() {
	var userID string
	var ttl time.Duration
	flag.StringVar(&userID, "user", "", "user id to put in the token subject")
	flag.DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	flag.Parse()

	id, err := uuid.Parse(strings.TrimSpace(userID))
	if err != nil || id == uuid.Nil {
		fmt.Println("a valid -user id is required")
		os.Exit(2)
	}

	cfg := app.LoadConfig(nil)
	tok, err := services.SignToken(cfg.Tokens, id, ttl)
	if err != nil {
		fmt.Printf("sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
