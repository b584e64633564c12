package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/JasonLinn/bnb-breakfast/cart"
	"github.com/JasonLinn/bnb-breakfast/storage"
	"github.com/JasonLinn/bnb-breakfast/submission"
	"github.com/JasonLinn/bnb-breakfast/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	endpoint := flag.String("endpoint", envOr("ORDER_ENDPOINT", "http://localhost:8000/api/send-email"), "notification endpoint URL")
	backend := flag.String("store", envOr("ORDER_STORE", "sqlite"), "persistence backend: sqlite, mongo or memory")
	dbPath := flag.String("db", envOr("ORDER_DB", "orderform.db"), "sqlite database file")
	mongoURI := flag.String("mongo-uri", os.Getenv("MONGODB_URI"), "mongodb connection string")
	scope := flag.String("scope", envOr("ORDER_SCOPE", "local"), "storage scope, one per guest device")
	roomRequired := flag.Bool("room-required", true, "require a room number before submitting")
	timeout := flag.Duration("timeout", 30*time.Second, "submission timeout")
	logLevel := flag.String("log-level", envOr("LOG_LEVEL", "warn"), "log level")
	flag.Parse()

	logger := utils.NewLogger(*logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, closeStore, err := openStore(ctx, *backend, *dbPath, *mongoURI, *scope)
	if err != nil {
		log.Fatalf("orderform: %v", err)
	}
	defer closeStore()

	engine := cart.New(store, logger)
	notifier := &consoleNotifier{out: os.Stdout}
	submitter := submission.NewSubmitter(*endpoint,
		submission.WithRoomRequired(*roomRequired),
		submission.WithNotifier(notifier),
		submission.WithLogger(logger),
	)

	sh := newShell(engine, submitter, os.Stdin, os.Stdout, *timeout)
	if err := sh.Run(ctx); err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
		log.Fatalf("orderform: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func openStore(ctx context.Context, backend, dbPath, mongoURI, scope string) (storage.Store, func(), error) {
	switch backend {
	case "memory":
		return storage.NewMemoryStore(), func() {}, nil
	case "sqlite":
		s, err := storage.OpenSQLite(dbPath, scope)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "mongo":
		if mongoURI == "" {
			return nil, nil, fmt.Errorf("-mongo-uri is required for the mongo store")
		}
		client, err := storage.ConnectMongo(ctx, mongoURI)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewMongoStore(client, scope), func() { _ = client.Disconnect(context.Background()) }, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q", backend)
}
