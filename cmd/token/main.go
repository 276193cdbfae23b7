// Command token mints an access token signed with JWT_SECRET.
//
//	token -sub alice@example.com -role admin -ttl 12h
package main

import (
	"flag"
	"fmt"
	"os"

	"mini-admin/internal/auth"
	"mini-admin/internal/config"
	"mini-admin/internal/model"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	subject := flag.String("sub", "", "token subject, usually the user's email")
	role := flag.String("role", model.RoleAdmin, "role claim: admin or user")
	ttl := flag.Duration("ttl", auth.DefaultTTL, "token lifetime")
	flag.Parse()

	if *subject == "" {
		return fmt.Errorf("-sub is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	token, err := auth.NewTokens(cfg.Auth.JWTSecret).Issue(*subject, *role, *ttl)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
