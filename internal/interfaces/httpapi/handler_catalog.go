package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-dashboard/internal/domain/competition"
	"github.com/riskibarqy/football-dashboard/internal/domain/highlight"
)

type areasResponse struct {
	Areas []competition.Area `json:"areas"`
	Count int                `json:"count"`
}

type highlightsResponse struct {
	Highlights []highlight.Video `json:"highlights"`
	Count      int               `json:"count"`
}

func (h *Handler) ListAreas(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAreas")
	defer span.End()

	items, err := h.areas.ListAreas(ctx)
	if err != nil {
		h.fail(ctx, w, "list areas failed", err)
		return
	}

	writeCached(ctx, w, areasCache, areasResponse{Areas: items, Count: len(items)})
}

func (h *Handler) ListHighlights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListHighlights")
	defer span.End()

	items, err := h.highlights.ListHighlights(ctx)
	if err != nil {
		h.fail(ctx, w, "list highlights failed", err)
		return
	}

	items = nonNil(items)
	writeCached(ctx, w, defaultCache, highlightsResponse{Highlights: items, Count: len(items)})
}
