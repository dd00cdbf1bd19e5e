package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eugendimant/vivalingo/internal/config"
	"github.com/eugendimant/vivalingo/internal/content"
	"github.com/eugendimant/vivalingo/internal/database"
	"github.com/eugendimant/vivalingo/internal/excel"
	"github.com/eugendimant/vivalingo/internal/missions"
	"github.com/eugendimant/vivalingo/internal/notify"
	"github.com/eugendimant/vivalingo/internal/progress"
	"github.com/eugendimant/vivalingo/internal/review"
	"github.com/eugendimant/vivalingo/internal/roleplay"
	"github.com/eugendimant/vivalingo/internal/scheduler"
	"github.com/eugendimant/vivalingo/internal/server"
	"github.com/eugendimant/vivalingo/internal/writing"
	"github.com/eugendimant/vivalingo/pkg/models"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DataDir, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	profiles := database.NewProfileRepository(db)
	vocab := database.NewVocabRepository(db)
	grammar := database.NewGrammarRepository(db)
	mistakeBank := database.NewMistakeRepository(db)
	verbs := database.NewVerbRepository(db)
	conversations := database.NewConversationRepository(db)
	metrics := database.NewProgressRepository(db)
	exposure := database.NewExposureRepository(db)
	missionStore := database.NewMissionRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := seedContent(ctx, vocab, grammar, verbs); err != nil {
		logger.Fatal("failed to seed content", zap.Error(err))
	}

	builder := review.NewBuilder(vocab, grammar, mistakeBank, verbs)
	progressSvc := progress.NewService(metrics, exposure, vocab, grammar, mistakeBank)

	srv, err := server.New(server.Deps{
		Profiles:      profiles,
		Vocab:         vocab,
		Grammar:       grammar,
		Mistakes:      mistakeBank,
		Conversations: conversations,
		Metrics:       metrics,
		Reviews:       review.NewRunner(builder, metrics, exposure),
		Writing:       writing.NewAnalyzer(),
		Roleplay:      roleplay.NewEngine(conversations, mistakeBank),
		Missions:      missions.NewService(missionStore, metrics),
		Progress:      progressSvc,
		Importer:      excel.NewImporter(vocab),
		DataDir:       cfg.DataDir,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal("failed to build server", zap.Error(err))
	}

	var notifier scheduler.Notifier
	if cfg.Telegram.Enabled() {
		tg, err := notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			logger.Fatal("failed to connect telegram", zap.Error(err))
		}
		notifier = tg
	}

	reminders := scheduler.New(profiles, progressSvc, notifier, logger)
	if err := reminders.Start(cfg.ReminderHour); err != nil {
		logger.Fatal("failed to start reminder scheduler", zap.Error(err))
	}
	defer reminders.Stop()

	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.Start(cfg.Addr); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", zap.Error(err))
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("received signal", zap.String("signal", sig.String()))
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
	logger.Info("stopped")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// seedContent loads the built-in vocabulary, grammar drills and conjugation
// bank into the default profile. Upserts only touch the payload columns, so
// reseeding on every boot never resets review state.
func seedContent(ctx context.Context, vocab *database.VocabRepository, grammar *database.GrammarRepository, verbs *database.VerbRepository) error {
	for _, unit := range content.VocabSeed {
		collocations, err := json.Marshal(unit.Collocations)
		if err != nil {
			return err
		}
		item := &models.VocabItem{
			ProfileID:    1,
			Term:         unit.Term,
			Meaning:      unit.Meaning,
			Example:      unit.Example,
			Domain:       unit.Domain,
			Register:     unit.Register,
			PartOfSpeech: unit.PartOfSpeech,
			Collocations: string(collocations),
		}
		if err := vocab.Upsert(ctx, item); err != nil {
			return err
		}
	}

	for _, drill := range content.GrammarMicrodrills {
		options, err := json.Marshal(drill.Options)
		if err != nil {
			return err
		}
		examples, err := json.Marshal(drill.Examples)
		if err != nil {
			return err
		}
		pattern := &models.GrammarPattern{
			ProfileID:   1,
			PatternName: drill.Focus,
			Category:    drill.Category,
			Prompt:      drill.Prompt,
			Options:     string(options),
			Answer:      drill.Answer,
			Explanation: drill.Explanation,
			Examples:    string(examples),
		}
		if err := grammar.Upsert(ctx, pattern); err != nil {
			return err
		}
	}

	for _, form := range content.VerbSeed {
		conj := &models.VerbConjugation{
			ProfileID:  1,
			Infinitive: form.Infinitive,
			Meaning:    form.Meaning,
			Tense:      form.Tense,
			Person:     form.Person,
			Form:       form.Form,
			Irregular:  form.Irregular,
		}
		if err := verbs.Upsert(ctx, conj); err != nil {
			return err
		}
	}
	return nil
}
