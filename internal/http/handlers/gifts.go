package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/giftlinkhq/giftlink/internal/cache"
	"github.com/giftlinkhq/giftlink/internal/config"
	"github.com/giftlinkhq/giftlink/internal/domain/gift"
	"github.com/giftlinkhq/giftlink/internal/observability"
	"github.com/giftlinkhq/giftlink/internal/repo/mongodb"
	"github.com/gin-gonic/gin"
)

const giftListCacheKey = "gifts:list"

type GiftReader interface {
	List(ctx context.Context) ([]gift.Gift, error)
	GetByID(ctx context.Context, id string) (gift.Gift, error)
}

type GiftsHandler struct {
	repo  GiftReader
	cache cache.Cache
	prom  *observability.Prom
	log   *slog.Logger
}

func NewGiftsHandler(repo GiftReader, c cache.Cache, prom *observability.Prom, log *slog.Logger) *GiftsHandler {
	return &GiftsHandler{
		repo:  repo,
		cache: c,
		prom:  prom,
		log:   log,
	}
}

func (h *GiftsHandler) ListGifts(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if h.cache != nil {
		if raw, ok := h.cache.Get(cctx, giftListCacheKey); ok {
			if h.prom != nil {
				h.prom.CacheHits.WithLabelValues(giftListCacheKey).Inc()
			}
			ctx.Data(http.StatusOK, "application/json; charset=utf-8", raw)
			return
		}

		if h.prom != nil {
			h.prom.CacheMisses.WithLabelValues(giftListCacheKey).Inc()
		}
	}

	gifts, err := h.repo.List(cctx)

	if err != nil {
		h.log.Error("gift listing failed", "err", err)
		RespondInternal(ctx, "Could not list gifts")
		return
	}

	body := gin.H{
		"items": gifts,
		"count": len(gifts),
	}

	if h.cache != nil {
		if raw, err := json.Marshal(body); err == nil {
			h.cache.Set(cctx, giftListCacheKey, raw)
		}
	}

	ctx.JSON(http.StatusOK, body)
}

func (h *GiftsHandler) GetGiftByID(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	g, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, mongodb.ErrGiftNotFound) {
			RespondNotFound(ctx, "not_found", "Gift not found")
			return
		}

		h.log.Error("gift fetch failed", "err", err, "id", id)
		RespondInternal(ctx, "Could not fetch gift")
		return
	}

	ctx.JSON(http.StatusOK, g)
}
