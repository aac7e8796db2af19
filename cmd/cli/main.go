// Command cli is the portal command-line client. It persists the session in
// a local SQLite file so login survives across invocations.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/conectaedu/portal/internal/client"
	"github.com/conectaedu/portal/internal/client/cli"
	"github.com/conectaedu/portal/internal/client/session"
)

func main() {
	baseURL := os.Getenv("PORTAL_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	store, err := session.Open(sessionPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "erro: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	app := cli.NewApp(client.New(baseURL, store), os.Stdout)
	if err := app.Run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "erro: %v\n", err)
		os.Exit(1)
	}
}

// sessionPath returns the session database location, overridable via
// PORTAL_SESSION_DB for tests and scripting.
func sessionPath() string {
	if p := os.Getenv("PORTAL_SESSION_DB"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "portal-session.db"
	}
	return filepath.Join(home, ".portal-session.db")
}
