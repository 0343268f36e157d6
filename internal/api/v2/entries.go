// internal/api/v2/entries.go
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/surimlab/challenge500/internal/arcana"
	"github.com/surimlab/challenge500/internal/datastore"
	"github.com/surimlab/challenge500/internal/errors"
	"github.com/surimlab/challenge500/internal/textscore"
	"golang.org/x/text/unicode/norm"
)

// maxListLimit caps the owner listing page size.
const maxListLimit = 500

// initEntryRoutes registers entry-related API endpoints
func (c *Controller) initEntryRoutes() {
	c.Group.POST("/entries", c.CreateEntry)
	c.Group.GET("/entries", c.ListEntries)
	c.Group.GET("/entries/:id", c.GetEntry)
}

// CreateEntryRequest is the submission payload.
type CreateEntryRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// EvaluationResponse is the scoring section of an entry response.
type EvaluationResponse struct {
	Score        int      `json:"score"`
	DisplayScore int      `json:"displayScore"`
	IsLoser      bool     `json:"isLoser"`
	ByteCount    int      `json:"byteCount"`
	Tags         []string `json:"tags"`
	Reasons      []string `json:"reasons"`

	Detail textscore.Evaluation `json:"detail"`
}

// ArcanaResponse is the symbolic-card section of an entry response, present
// only once a card has been attached.
type ArcanaResponse struct {
	ID    int    `json:"id"`
	Code  string `json:"code"`
	Label string `json:"label"`
	Image string `json:"image"`
}

// EntryResponse is the full API representation of an entry.
type EntryResponse struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	Body       string             `json:"body"`
	SubmitYmd  string             `json:"submitYmd"`
	State      string             `json:"state"`
	Evaluation EvaluationResponse `json:"evaluation"`
	OgImage    string             `json:"ogImage"`
	OgCreature string             `json:"ogCreature"`
	OgColor    string             `json:"ogColor"`
	Arcana     *ArcanaResponse    `json:"arcana,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// entryToResponse converts a stored entry into its API representation.
func entryToResponse(e *datastore.Entry) EntryResponse {
	eval := textscore.Evaluation{
		FirstSentence:  e.FirstSentence,
		Freeze:         e.Freeze,
		Space:          e.Space,
		Linger:         e.Linger,
		Bleak:          e.Bleak,
		Detour:         e.Detour,
		MicroRecovery:  e.MicroRecovery,
		Rhythm:         e.Rhythm,
		MicroParticles: e.MicroParticles,

		NarrativeCompression: e.NarrativeCompression,
		NarrativeTurn:        e.NarrativeTurn,
		NarrativeClutter:     e.NarrativeClutter,
		NarrativeRhythm:      e.NarrativeRhythm,
		NarrativeScore:       e.NarrativeScore,

		Layer:           e.LayerScore,
		World:           e.WorldScore,
		Theme:           e.ThemeScore,
		CreativityScore: e.CreativityScore,

		TotalScore: e.TotalScore,
		ByteCount:  e.ByteCount,
		Tags:       e.Tags,
		Reasons:    e.Reasons,
	}

	resp := EntryResponse{
		ID:        e.ID,
		Title:     e.Title,
		Body:      e.Body,
		SubmitYmd: e.SubmitYmd,
		State:     string(e.State()),
		Evaluation: EvaluationResponse{
			Score:        e.TotalScore,
			DisplayScore: textscore.DisplayScore(e.TotalScore),
			IsLoser:      textscore.IsLoserScore(e.TotalScore),
			ByteCount:    e.ByteCount,
			Tags:         e.Tags,
			Reasons:      e.Reasons,
			Detail:       eval,
		},
		OgImage:    e.OgImage,
		OgCreature: e.OgCreature,
		OgColor:    e.OgColor,
		CreatedAt:  e.CreatedAt,
	}

	if e.ArcanaID != nil {
		resp.Arcana = &ArcanaResponse{
			ID:    *e.ArcanaID,
			Code:  e.ArcanaCode,
			Label: e.ArcanaLabel,
			Image: arcana.ImagePath(*e.ArcanaID),
		}
	}

	return resp
}

// CreateEntry handles POST /api/v2/entries
func (c *Controller) CreateEntry(ctx echo.Context) error {
	var req CreateEntryRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}

	title := strings.TrimSpace(norm.NFC.String(req.Title))
	body := norm.NFC.String(req.Body)

	if title == "" {
		return c.HandleError(ctx, errors.Newf("empty title").
			Category(errors.CategoryValidation).
			Component("api").
			Build(), "제목을 입력해 주세요", http.StatusBadRequest)
	}

	byteCount := len(body)
	if strings.TrimSpace(body) == "" || byteCount < c.Settings.Challenge.MinBytes {
		return c.HandleError(ctx, errors.Newf("body too short: %d bytes", byteCount).
			Category(errors.CategoryValidation).
			Component("api").
			Build(), "본문이 너무 짧습니다", http.StatusBadRequest)
	}
	if byteCount > c.Settings.Challenge.MaxBytes {
		return c.HandleError(ctx, errors.Newf("body too long: %d bytes, limit %d", byteCount, c.Settings.Challenge.MaxBytes).
			Category(errors.CategoryValidation).
			Component("api").
			Build(), "본문이 제한 길이를 넘었습니다", http.StatusBadRequest)
	}

	owner := requestOwner(ctx)
	if owner.IsZero() {
		return c.HandleError(ctx, errors.Newf("no submitter identity on request").
			Category(errors.CategoryValidation).
			Component("api").
			Build(), "Missing submitter identity", http.StatusBadRequest)
	}

	now := time.Now().In(c.location)
	ymd := now.Format("2006-01-02")

	dailyLimit := c.Settings.Challenge.DailyLimit
	if dailyLimit {
		count, err := c.DS.CountForOwnerDay(owner, ymd)
		if err != nil {
			return c.HandleError(ctx, err, "Failed to check daily limit", http.StatusInternalServerError)
		}
		if count > 0 {
			return c.HandleError(ctx, errors.Newf("daily limit reached for %s", ymd).
				Category(errors.CategoryLimit).
				Component("api").
				Build(), "오늘은 이미 제출했습니다", http.StatusTooManyRequests)
		}
	}

	eval := c.evaluate(ctx.Request().Context(), title, body)
	share := arcana.Classify(eval)

	id := uuid.NewString()
	entry := &datastore.Entry{
		ID:        id,
		OwnerKey:  owner.Key(),
		Title:     title,
		Body:      body,
		ByteCount: byteCount,
		SubmitYmd: ymd,
		DayKey:    datastore.DayKeyFor(owner, ymd, id, dailyLimit),

		FirstSentence:  eval.FirstSentence,
		Freeze:         eval.Freeze,
		Space:          eval.Space,
		Linger:         eval.Linger,
		Bleak:          eval.Bleak,
		Detour:         eval.Detour,
		MicroRecovery:  eval.MicroRecovery,
		Rhythm:         eval.Rhythm,
		MicroParticles: eval.MicroParticles,

		NarrativeCompression: eval.NarrativeCompression,
		NarrativeTurn:        eval.NarrativeTurn,
		NarrativeClutter:     eval.NarrativeClutter,
		NarrativeRhythm:      eval.NarrativeRhythm,
		NarrativeScore:       eval.NarrativeScore,

		LayerScore:      eval.Layer,
		WorldScore:      eval.World,
		ThemeScore:      eval.Theme,
		CreativityScore: eval.CreativityScore,

		TotalScore: eval.TotalScore,
		Tags:       eval.Tags,
		Reasons:    eval.Reasons,

		OgImage:    share.Path,
		OgCreature: string(share.Creature),
		OgColor:    string(share.Color),
	}
	if owner.AnonID != "" {
		entry.AnonID = &owner.AnonID
	}
	if owner.UserID != "" {
		entry.UserID = &owner.UserID
	}

	if err := c.DS.SaveEntry(entry); err != nil {
		// A concurrent submission can slip past the pre-check; the unique
		// index on the day key is authoritative.
		if errors.HasCategory(err, errors.CategoryConflict) {
			return c.HandleError(ctx, err, "오늘은 이미 제출했습니다", http.StatusTooManyRequests)
		}
		return c.HandleError(ctx, err, "Failed to save entry", http.StatusInternalServerError)
	}

	c.logAPIRequest(ctx, slog.LevelInfo, "Entry created",
		"entry_id", entry.ID,
		"byte_count", byteCount,
		"total_score", eval.TotalScore,
	)

	return ctx.JSON(http.StatusCreated, entryToResponse(entry))
}

// evaluate scores the submission, consulting the oracle when configured and
// falling back to the local heuristic on any oracle failure.
func (c *Controller) evaluate(ctx context.Context, title, body string) textscore.Evaluation {
	if c.Oracle == nil || !c.Settings.Oracle.Enabled {
		return c.Scorer.Score(title, body)
	}

	scores, err := c.Oracle.Evaluate(ctx, title, body)
	if err != nil {
		c.logger.Printf("Oracle evaluation failed, using heuristic: %v", err)
		if c.apiLogger != nil {
			c.apiLogger.Warn("Oracle evaluation failed, using heuristic", "error", err.Error())
		}
		return c.Scorer.Score(title, body)
	}
	return c.Scorer.Merge(title, body, scores)
}

// GetEntry handles GET /api/v2/entries/:id
func (c *Controller) GetEntry(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		return c.HandleError(ctx, errors.Newf("empty entry id").
			Category(errors.CategoryValidation).
			Component("api").
			Build(), "Missing entry ID", http.StatusBadRequest)
	}

	if cached, found := c.entryCache.Get(id); found {
		if entry, ok := cached.(datastore.Entry); ok {
			return ctx.JSON(http.StatusOK, entryToResponse(&entry))
		}
	}

	entry, err := c.DS.GetEntry(id)
	if err != nil {
		if errors.HasCategory(err, errors.CategoryNotFound) {
			return c.HandleError(ctx, err, "Entry not found", http.StatusNotFound)
		}
		return c.HandleError(ctx, err, "Failed to get entry", http.StatusInternalServerError)
	}

	c.entryCache.SetDefault(id, entry)

	return ctx.JSON(http.StatusOK, entryToResponse(&entry))
}

// ListEntries handles GET /api/v2/entries, returning the requesting owner's
// entries newest first.
func (c *Controller) ListEntries(ctx echo.Context) error {
	owner := requestOwner(ctx)
	if owner.IsZero() {
		return c.HandleError(ctx, errors.Newf("no submitter identity on request").
			Category(errors.CategoryValidation).
			Component("api").
			Build(), "Missing submitter identity", http.StatusBadRequest)
	}

	limit := 100
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.HandleError(ctx, err, "Invalid limit parameter", http.StatusBadRequest)
		}
		limit = parsed
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	entries, err := c.DS.GetEntriesByOwner(owner, limit)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to list entries", http.StatusInternalServerError)
	}

	responses := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, entryToResponse(&entries[i]))
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"entries": responses,
		"count":   len(responses),
	})
}
