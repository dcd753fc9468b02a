package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/flashquiz/internal/bot"
	"github.com/example/flashquiz/internal/cli"
	"github.com/example/flashquiz/internal/config"
	"github.com/example/flashquiz/internal/database"
	"github.com/example/flashquiz/internal/excel"
	"github.com/example/flashquiz/internal/quiz"
	"github.com/example/flashquiz/internal/scheduler"
	"github.com/example/flashquiz/internal/transfer"
	"github.com/spf13/pflag"
)

func main() {
	var (
		dbPath        = pflag.String("db", "", "path to the SQLite database file (or DSN for postgres)")
		driver        = pflag.String("driver", "", "database driver: sqlite3 or postgres")
		category      = pflag.String("category", "", "category to quiz on (random if omitted)")
		questionCount = pflag.IntP("question-count", "q", 20, "number of questions per session")
		choicesCount  = pflag.IntP("choices-count", "c", 4, "number of options per question")
		jsonFile      = pflag.String("json", "", "JSON archive for import/export")
		excelFile     = pflag.String("excel", "", "XLSX or CSV file for import")
		sheet         = pflag.String("sheet", "Sheet1", "sheet name for XLSX import")
		logLevel      = pflag.String("log-level", "", "log level: debug, info, warn or error")
	)
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.DatabaseDSN = *dbPath
	}
	if *driver != "" {
		cfg.DatabaseDriver = *driver
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	setupLogging(cfg.LogLevel)

	store, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Debug("database connection successful", "driver", cfg.DatabaseDriver, "dsn", cfg.DatabaseDSN)

	command := "quiz"
	if pflag.NArg() > 0 {
		command = pflag.Arg(0)
	}

	switch command {
	case "quiz":
		err = runQuiz(store, *category, *questionCount, *choicesCount)
	case "import":
		err = runImport(store, *jsonFile, *excelFile, *sheet)
	case "export":
		err = runExport(store, *jsonFile)
	case "bot":
		err = runBot(store, cfg)
	default:
		err = fmt.Errorf("unknown command %q (expected quiz, import, export or bot)", command)
	}
	if err != nil {
		slog.Error("command failed", "command", command, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	default:
		lvl = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func runQuiz(store *database.Store, category string, questionCount, choicesCount int) error {
	engine := quiz.NewEngine(store)
	session, err := engine.NewSession(category, questionCount, choicesCount)
	if errors.Is(err, quiz.ErrNoCategories) {
		fmt.Println("No categories found. Come back when you have added some cards to the database!")
		return nil
	}
	if errors.Is(err, quiz.ErrNoPools) {
		fmt.Println("The chosen category has no pools of cards. Import some cards into it first!")
		return nil
	}
	if err != nil {
		return err
	}

	runner := cli.NewRunner(engine, os.Stdin, os.Stdout)
	return runner.Run(session)
}

func runImport(store *database.Store, jsonFile, excelFile, sheet string) error {
	switch {
	case jsonFile != "":
		result, err := transfer.NewImporter(store).ImportFile(jsonFile)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d categories, %d pools, %d cards (%d skipped).\n",
			result.CategoriesCreated, result.PoolsCreated, result.CardsCreated, result.CardsSkipped)
		return nil
	case excelFile != "":
		importConfig := excel.DefaultImportConfig()
		importConfig.FilePath = excelFile
		importConfig.SheetName = sheet
		result, err := excel.NewImporter(store).ImportCards(importConfig)
		if err != nil {
			return err
		}
		fmt.Printf("Processed %d rows: %d cards created, %d skipped, %d errors.\n",
			result.TotalProcessed, result.Created, result.Skipped, len(result.Errors))
		for _, msg := range result.Errors {
			fmt.Println("- " + msg)
		}
		return nil
	default:
		return errors.New("import needs --json or --excel")
	}
}

func runExport(store *database.Store, jsonFile string) error {
	if jsonFile == "" {
		return errors.New("export needs --json")
	}
	return transfer.NewImporter(store).ExportFile(jsonFile)
}

func runBot(store *database.Store, cfg *config.Config) error {
	b, err := bot.New(cfg.TelegramToken, store, nil)
	if err != nil {
		return err
	}

	reminders := scheduler.New(store, b, b, cfg.ReminderHour, cfg.ReminderThreshold)
	reminders.Start()
	defer reminders.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		slog.Info("received signal, shutting down", "signal", sig)
		b.Stop()
	}()

	slog.Info("bot starting, press Ctrl+C to stop")
	return b.Start()
}
