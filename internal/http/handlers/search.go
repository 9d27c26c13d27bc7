package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/giftlinkhq/giftlink/internal/config"
	"github.com/giftlinkhq/giftlink/internal/domain/gift"
	"github.com/gin-gonic/gin"
)

type GiftSearcher interface {
	Search(ctx context.Context, filter gift.SearchFilter) ([]gift.Gift, error)
}

type SearchHandler struct {
	repo GiftSearcher
	log  *slog.Logger
}

func NewSearchHandler(repo GiftSearcher, log *slog.Logger) *SearchHandler {
	return &SearchHandler{
		repo: repo,
		log:  log,
	}
}

// SearchGifts filters by name substring, category, condition and a
// maximum age_years, all via query params. Unset params are ignored;
// an unparseable age_years is ignored rather than rejected.
func (h *SearchHandler) SearchGifts(ctx *gin.Context) {
	filter := gift.SearchFilter{
		Name:      ctx.Query("name"),
		Category:  ctx.Query("category"),
		Condition: ctx.Query("condition"),
	}

	if raw := ctx.Query("age_years"); raw != "" {
		years, err := strconv.ParseFloat(raw, 64)

		if err == nil {
			filter.MaxAgeYears = years
		}
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	gifts, err := h.repo.Search(cctx, filter)

	if err != nil {
		h.log.Error("gift search failed", "err", err)
		RespondInternal(ctx, "Could not search gifts")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": gifts,
		"count": len(gifts),
	})
}
