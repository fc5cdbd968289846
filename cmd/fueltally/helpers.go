package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/calebward/fueltally/internal/llm"
	"github.com/calebward/fueltally/internal/model"
	"github.com/calebward/fueltally/internal/storage"
)

// openStore opens the configured database.
func openStore() (*storage.Store, error) {
	store, err := storage.Open(viper.GetString("database.path"))
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return store, nil
}

// newLLMClient builds the configured LLM client.
func newLLMClient() (llm.Client, error) {
	cfg := llm.Config{
		Provider:    viper.GetString("llm.provider"),
		APIKey:      viper.GetString("llm.api_key"),
		Model:       viper.GetString("llm.model"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
	}
	client, err := llm.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// addLog appends to the persistent activity log, mirroring it to slog.
func addLog(ctx context.Context, store *storage.Store, level model.LogLevel, message string) {
	entry := model.LogEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
	}
	if err := store.AppendLog(ctx, entry); err != nil {
		slog.Warn("failed to persist activity log entry", "error", err)
	}
	switch level {
	case model.LogError:
		slog.Error(message)
	default:
		slog.Info(message, "level", level)
	}
}

// parsePeriod parses the --from/--to date flags.
func parsePeriod(from, to string) (model.Period, error) {
	if from == "" || to == "" {
		return model.Period{}, fmt.Errorf("both --from and --to are required (format: 2006-01-02)")
	}
	f, err := time.Parse("2006-01-02", from)
	if err != nil {
		return model.Period{}, fmt.Errorf("invalid --from date %q: %w", from, err)
	}
	t, err := time.Parse("2006-01-02", to)
	if err != nil {
		return model.Period{}, fmt.Errorf("invalid --to date %q: %w", to, err)
	}
	p := model.Period{From: f, To: t}
	if !p.Valid() {
		return model.Period{}, fmt.Errorf("period end %s is before start %s", to, from)
	}
	return p, nil
}
