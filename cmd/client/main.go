package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"fintrack/internal/client/api"
	"fintrack/internal/client/cli"
	"fintrack/internal/client/config"
	"fintrack/internal/client/identity"
	"fintrack/internal/client/records"
	"fintrack/internal/client/tui"
	"fintrack/internal/flagx"
	"fintrack/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	// The TUI owns the terminal, so logs go to a file next to the binary.
	logFile, err := os.OpenFile("fintrack-client.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer logFile.Close()
	logger := logging.NewText(logFile)

	client := api.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout)
	defer client.Close()

	ident := identity.NewManager(client, logger)

	if registerRequested() {
		if err := registerAccount(ctx, ident); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	store := records.NewStore(client, logger)

	app := tui.New(ctx, client, ident, store, logger)
	if err := app.Run(); err != nil {
		log.Fatalf("%v", err)
	}
}

func registerRequested() bool {
	args := flagx.FilterArgs(os.Args[1:], []string{"-register"})

	var register bool
	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.BoolVar(&register, "register", false, "create an account and exit")
	_ = fs.Parse(args)

	return register
}

// registerAccount creates an account without starting the TUI, prompting for
// credentials on the terminal. The password is read without echo.
func registerAccount(ctx context.Context, ident *identity.Manager) error {
	reader := bufio.NewReader(os.Stdin)

	username, err := cli.GetSimpleText(reader, "Username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := cli.GetPassword(os.Stdout, "Enter password: ")
	if err != nil {
		return err
	}
	defer func() {
		for i := range password {
			password[i] = 0
		}
	}()

	if err := ident.Register(ctx, username, string(password)); err != nil {
		return err
	}
	fmt.Printf("account %s created\n", username)
	return nil
}
