// internal/api/v2/arcana.go
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/surimlab/challenge500/internal/arcana"
	"github.com/surimlab/challenge500/internal/datastore"
	"github.com/surimlab/challenge500/internal/errors"
)

// initArcanaRoutes registers the symbolic-card endpoints
func (c *Controller) initArcanaRoutes() {
	c.Group.GET("/entries/:id/arcana/candidates", c.GetArcanaCandidates)
	c.Group.POST("/entries/:id/arcana", c.AttachArcana)
}

// CardResponse is the API representation of a symbolic card.
type CardResponse struct {
	ID       int      `json:"id"`
	Code     string   `json:"code"`
	Title    string   `json:"title"`
	Keywords []string `json:"keywords"`
	Summary  string   `json:"summary"`
	Image    string   `json:"image"`
}

func cardToResponse(card arcana.Card) CardResponse {
	return CardResponse{
		ID:       card.ID,
		Code:     card.Code,
		Title:    card.Title,
		Keywords: card.Keywords,
		Summary:  card.Summary,
		Image:    arcana.ImagePath(card.ID),
	}
}

// GetArcanaCandidates handles GET /api/v2/entries/:id/arcana/candidates.
// The candidate set is anchored on the entry's opening sentence: when a seed
// sentence matches, its card is always among the candidates.
func (c *Controller) GetArcanaCandidates(ctx echo.Context) error {
	id := ctx.Param("id")

	entry, err := c.DS.GetEntry(id)
	if err != nil {
		if errors.HasCategory(err, errors.CategoryNotFound) {
			return c.HandleError(ctx, err, "Entry not found", http.StatusNotFound)
		}
		return c.HandleError(ctx, err, "Failed to get entry", http.StatusInternalServerError)
	}

	if entry.Classified() {
		return c.HandleError(ctx, errors.Newf("entry %s already classified as %s", id, entry.ArcanaCode).
			Category(errors.CategoryConflict).
			Component("api").
			Build(), "이미 카드가 붙은 작품입니다", http.StatusConflict)
	}

	var anchor *int
	if anchorID, ok := arcana.DetectAnchor(arcana.FirstSentence(entry.Body)); ok {
		anchor = &anchorID
	}

	cards := arcana.Candidates(entry.Tags, anchor, c.Settings.Challenge.CandidateCount)

	responses := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		responses = append(responses, cardToResponse(card))
	}

	resp := map[string]any{
		"entryId":    entry.ID,
		"candidates": responses,
	}
	if anchor != nil {
		resp["anchorId"] = *anchor
	}

	return ctx.JSON(http.StatusOK, resp)
}

// AttachArcanaRequest is the card selection payload.
type AttachArcanaRequest struct {
	ArcanaID int `json:"arcanaId"`
}

// AttachArcana handles POST /api/v2/entries/:id/arcana. A card can be
// attached exactly once; any later attempt is a conflict.
func (c *Controller) AttachArcana(ctx echo.Context) error {
	id := ctx.Param("id")

	var req AttachArcanaRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}

	if !arcana.ValidID(req.ArcanaID) {
		return c.HandleError(ctx, errors.Newf("invalid arcana id %d", req.ArcanaID).
			Category(errors.CategoryValidation).
			Component("api").
			Build(), "유효하지 않은 카드입니다", http.StatusBadRequest)
	}
	card := arcana.ByID(req.ArcanaID)

	owner := requestOwner(ctx)

	entry, err := c.DS.GetEntry(id)
	if err != nil {
		if errors.HasCategory(err, errors.CategoryNotFound) {
			return c.HandleError(ctx, err, "Entry not found", http.StatusNotFound)
		}
		return c.HandleError(ctx, err, "Failed to get entry", http.StatusInternalServerError)
	}

	if entry.OwnerKey != owner.Key() {
		return c.HandleError(ctx, errors.Newf("entry %s does not belong to requester", id).
			Category(errors.CategoryNotFound).
			Component("api").
			Build(), "Entry not found", http.StatusNotFound)
	}

	updated, err := c.DS.AttachArcana(id, datastore.ArcanaAttachment{
		ArcanaID:    card.ID,
		ArcanaCode:  card.Code,
		ArcanaLabel: card.Title,
		OgImage:     arcana.ImagePath(card.ID),
	})
	if err != nil {
		if errors.HasCategory(err, errors.CategoryConflict) {
			return c.HandleError(ctx, err, "이미 카드가 붙은 작품입니다", http.StatusConflict)
		}
		if errors.HasCategory(err, errors.CategoryNotFound) {
			return c.HandleError(ctx, err, "Entry not found", http.StatusNotFound)
		}
		return c.HandleError(ctx, err, "Failed to attach card", http.StatusInternalServerError)
	}

	// The cached copy predates the attachment.
	c.entryCache.Delete(id)

	c.Debug("Attached card %s to entry %s", card.Code, id)

	return ctx.JSON(http.StatusOK, entryToResponse(&updated))
}
