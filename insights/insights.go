// Package insights builds weekly care summaries for a tracked child,
// enriched best-effort by an AI provider. The deterministic summary is
// always produced; when AI generation fails after exhausting retries the
// result carries an explicit failure flag and a human-readable reason
// instead of failing the whole request.
package insights

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	ai "github.com/keyurgolani/babynest-ai"
	"github.com/keyurgolani/babynest-ai/retry"
	"github.com/keyurgolani/babynest-ai/store"
)

// WeeklyStats aggregates one week of tracked care data for a child.
type WeeklyStats struct {
	ChildID            uuid.UUID
	ChildName          string
	WeekStart          time.Time
	Feedings           int
	AvgFeedingGapHours float64
	SleepHours         float64
	LongestSleepHours  float64
	WetDiapers         int
	DirtyDiapers       int
}

// Summary is the weekly summary produced for a child.
type Summary struct {
	ID          uuid.UUID
	ChildID     uuid.UUID
	WeekStart   time.Time
	Text        string
	AIText      string
	AIFailed    bool
	AIError     string
	TokensUsed  int
	GeneratedAt time.Time
}

// Config wires a Generator to its collaborators.
type Config struct {
	// Provider issues the AI completions. Nil disables enrichment.
	Provider ai.CompletionProvider
	// ProviderID and Model label bookkeeping records.
	ProviderID ai.Provider
	Model      string
	// Store persists summaries and generation bookkeeping. Optional.
	Store *store.Store
	// Retry overrides the retry policy for AI calls.
	// Nil uses defaults.
	Retry *retry.Options
	// Logger receives retry and degradation events. Optional.
	Logger *slog.Logger
}

// Generator produces weekly summaries.
type Generator struct {
	provider   ai.CompletionProvider
	providerID ai.Provider
	model      string
	store      *store.Store
	retryOpts  retry.Options
	log        *slog.Logger
}

// New creates a Generator from the given configuration.
func New(cfg Config) *Generator {
	opts := retry.DefaultOptions()
	if cfg.Retry != nil {
		opts = *cfg.Retry
	}
	opts.OperationName = "insights.weekly_summary"
	opts.Logger = cfg.Logger
	return &Generator{
		provider:   cfg.Provider,
		providerID: cfg.ProviderID,
		model:      cfg.Model,
		store:      cfg.Store,
		retryOpts:  opts,
		log:        cfg.Logger,
	}
}

// WeeklySummary builds the summary for one child-week. The deterministic
// text never fails; AI enrichment failures degrade into the AIFailed flag.
// A configured store receives the summary (failures there do propagate)
// and a fire-and-forget generation record.
func (g *Generator) WeeklySummary(ctx context.Context, stats WeeklyStats) (*Summary, error) {
	summary := &Summary{
		ID:          uuid.New(),
		ChildID:     stats.ChildID,
		WeekStart:   stats.WeekStart,
		Text:        baseSummary(stats),
		GeneratedAt: time.Now().UTC(),
	}

	if g.provider != nil {
		resp, err := retry.Do(ctx, g.retryOpts, func() (*ai.Response, error) {
			return g.provider.Complete(ctx, enrichmentPrompt(stats), ai.WithMaxTokens(512))
		})
		if err != nil {
			summary.AIFailed = true
			summary.AIError = err.Error()
			if g.log != nil {
				g.log.Warn("AI enrichment failed, returning base summary",
					"child_id", stats.ChildID, "error", err)
			}
		} else {
			summary.AIText = resp.Text
			summary.TokensUsed = resp.Usage.Total()
		}
		g.recordGeneration(stats, summary)
	}

	if g.store != nil {
		err := g.store.SaveInsight(ctx, store.Insight{
			ID:          summary.ID,
			ChildID:     summary.ChildID,
			WeekStart:   summary.WeekStart,
			Summary:     summary.bestText(),
			AIGenerated: summary.AIText != "",
			Model:       g.model,
			CreatedAt:   summary.GeneratedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("saving weekly insight: %w", err)
		}
	}

	return summary, nil
}

func (s *Summary) bestText() string {
	if s.AIText != "" {
		return s.AIText
	}
	return s.Text
}

func (g *Generator) recordGeneration(stats WeeklyStats, summary *Summary) {
	if g.store == nil {
		return
	}
	g.store.RecordGenerationAsync(store.GenerationRecord{
		ID:         uuid.New(),
		ChildID:    stats.ChildID,
		Provider:   g.providerID.String(),
		Model:      g.model,
		TokensUsed: summary.TokensUsed,
		Succeeded:  !summary.AIFailed,
		Error:      summary.AIError,
		CreatedAt:  time.Now().UTC(),
	})
}

func baseSummary(stats WeeklyStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Week of %s for %s: ", stats.WeekStart.Format("Jan 2"), stats.ChildName)
	fmt.Fprintf(&b, "%d feedings (about %.1fh apart), ", stats.Feedings, stats.AvgFeedingGapHours)
	fmt.Fprintf(&b, "%.1fh of sleep (longest stretch %.1fh), ", stats.SleepHours, stats.LongestSleepHours)
	fmt.Fprintf(&b, "%d wet and %d dirty diapers.", stats.WetDiapers, stats.DirtyDiapers)
	return b.String()
}

func enrichmentPrompt(stats WeeklyStats) []ai.Message {
	return []ai.Message{
		{
			Role: ai.RoleSystem,
			Content: "You are a warm, knowledgeable assistant for parents tracking their baby's care. " +
				"Write a short, encouraging weekly summary from the data provided. " +
				"Mention notable patterns. Do not give medical advice.",
		},
		{
			Role: ai.RoleUser,
			Content: fmt.Sprintf(
				"Child: %s\nWeek starting: %s\nFeedings: %d (average gap %.1f hours)\n"+
					"Total sleep: %.1f hours (longest stretch %.1f hours)\n"+
					"Diapers: %d wet, %d dirty\n",
				stats.ChildName, stats.WeekStart.Format("2006-01-02"),
				stats.Feedings, stats.AvgFeedingGapHours,
				stats.SleepHours, stats.LongestSleepHours,
				stats.WetDiapers, stats.DirtyDiapers),
		},
	}
}
