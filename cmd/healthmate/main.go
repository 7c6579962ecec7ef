package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/gmsas95/healthmate/internal/api"
	"github.com/gmsas95/healthmate/internal/auth"
	"github.com/gmsas95/healthmate/internal/channels/telegram"
	"github.com/gmsas95/healthmate/internal/config"
	"github.com/gmsas95/healthmate/internal/meds"
	"github.com/gmsas95/healthmate/internal/metrics"
	"github.com/gmsas95/healthmate/internal/reminders"
	"github.com/gmsas95/healthmate/internal/schedule"
	"github.com/gmsas95/healthmate/internal/store"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "Path to config file")
	dataDir    = flag.String("data", "", "Path to data directory")
	version    = "dev"
)

func main() {
	// Handle subcommands before flag parsing
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "register":
			handleRegisterCommand(os.Args[2:])
			return
		case "login":
			handleLoginCommand(os.Args[2:])
			return
		case "help", "--help", "-h":
			printHelp()
			return
		case "version", "--version", "-v":
			fmt.Printf("Healthmate version %s\n", version)
			return
		}
	}

	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting Healthmate", zap.String("version", version))

	if err := config.LoadEnvFiles(); err != nil {
		logger.Warn("Failed to load .env files", zap.Error(err))
	}

	cfg, err := config.Load(*configPath, *dataDir)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	st, err := store.New(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize store", zap.Error(err))
	}
	defer st.Close()

	server, err := api.New(cfg, st, schedule.SystemClock(), logger)
	if err != nil {
		logger.Fatal("Failed to initialize server", zap.Error(err))
	}

	var runner *reminders.Runner
	if cfg.Reminders.Enabled {
		notifier, err := telegram.NewNotifier(telegram.Config{
			Token:   cfg.Channels.Telegram.BotToken,
			ChatID:  cfg.Channels.Telegram.ChatID,
			Enabled: cfg.Channels.Telegram.Enabled,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to initialize telegram channel", zap.Error(err))
		}

		medsStore, err := meds.NewStore(st.DB())
		if err != nil {
			logger.Fatal("Failed to initialize medication store", zap.Error(err))
		}

		runner = reminders.NewRunner(medsStore, notifier, schedule.SystemClock(),
			cfg.Reminders.LeadMinutes, logger, metrics.Default())
		if err := runner.Start(); err != nil {
			logger.Fatal("Failed to start reminder runner", zap.Error(err))
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("Server listening",
		zap.String("address", cfg.Server.Address),
		zap.Int("port", cfg.Server.Port),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error("Server stopped unexpectedly", zap.Error(err))
		}
	}

	if runner != nil {
		runner.Stop()
	}
	if err := server.Shutdown(); err != nil {
		logger.Error("Shutdown failed", zap.Error(err))
	}
}

func handleRegisterCommand(args []string) {
	username, password := promptCredentials(args, true)

	svc, st := authService()
	defer st.Close()

	user, err := svc.Register(auth.Credentials{Username: username, Password: password})
	if err != nil {
		fmt.Printf("Registration failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Registered %s\n", user.Username)
}

func handleLoginCommand(args []string) {
	username, password := promptCredentials(args, false)

	svc, st := authService()
	defer st.Close()

	token, err := svc.Login(auth.Credentials{Username: username, Password: password})
	if err != nil {
		fmt.Printf("Login failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token.Value)
	fmt.Fprintf(os.Stderr, "Token expires %s\n", token.ExpiresAt.Format(time.RFC3339))
}

func authService() (*auth.Service, *store.Store) {
	_ = config.LoadEnvFiles()

	cfg, err := config.Load(*configPath, *dataDir)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	st, err := store.New(cfg)
	if err != nil {
		fmt.Printf("Failed to open datastore: %v\n", err)
		os.Exit(1)
	}

	authStore, err := auth.NewStore(st.DB())
	if err != nil {
		fmt.Printf("Failed to init accounts: %v\n", err)
		os.Exit(1)
	}

	logger := zap.NewNop()
	return auth.NewService(authStore, cfg.Security.JWTSecret,
		time.Duration(cfg.Security.TokenTTLHours)*time.Hour, schedule.SystemClock(), logger), st
}

func promptCredentials(args []string, confirm bool) (string, string) {
	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		fmt.Print("Username: ")
		reader := bufio.NewReader(os.Stdin)
		line, _ := reader.ReadString('\n')
		username = strings.TrimSpace(line)
	}

	password := readPassword("Password: ")
	if confirm {
		again := readPassword("Confirm password: ")
		if password != again {
			fmt.Println("Passwords do not match")
			os.Exit(1)
		}
	}

	return username, password
}

func readPassword(prompt string) string {
	fmt.Print(prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		data, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			fmt.Printf("Failed to read password: %v\n", err)
			os.Exit(1)
		}
		return string(data)
	}

	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func printHelp() {
	fmt.Println(`Healthmate - personal medication and appointment companion

Usage:
  healthmate [flags]              Start the server
  healthmate register [username]  Create a local account
  healthmate login [username]     Log in and print a token
  healthmate version              Print version

Flags:
  -config string   Path to config file
  -data string     Path to data directory

Environment:
  HEALTHMATE_SERVER_PORT            Override listen port
  HEALTHMATE_SECURITY_JWT_SECRET    Token signing secret`)
}
