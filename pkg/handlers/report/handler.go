package report

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"

	"github.com/de-tools/carbon-atlas/pkg/adapters"
	"github.com/de-tools/carbon-atlas/pkg/gateways"
	"github.com/de-tools/carbon-atlas/pkg/models/api"
	"github.com/de-tools/carbon-atlas/pkg/services/enrichment"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	enricher  enrichment.Service
	inventory gateways.Inventory
	regions   []string
}

func NewHandler(enricher enrichment.Service, inventory gateways.Inventory, regions []string) *Handler {
	return &Handler{
		enricher:  enricher,
		inventory: inventory,
		regions:   regions,
	}
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	region, ok := h.resolveRegion(w, r)
	if !ok {
		return
	}

	report, err := h.enricher.EnrichRegion(ctx, region)
	if err != nil {
		logger.Error().Err(err).Str("region", region).Msg("enrichment pass failed")
		http.Error(w, "failed to build report", http.StatusBadGateway)
		return
	}

	h.writeJSON(ctx, w, adapters.MapEnrichmentReportDomainToApi(report))
}

func (h *Handler) ListResources(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	region, ok := h.resolveRegion(w, r)
	if !ok {
		return
	}

	resources, err := h.inventory.ListResources(ctx, region)
	if err != nil {
		logger.Error().Err(err).Str("region", region).Msg("failed to list resources")
		http.Error(w, "failed to list resources", http.StatusBadGateway)
		return
	}

	response := []api.Resource{}
	for _, res := range resources {
		response = append(response, adapters.MapResourceDomainToApi(res))
	}
	h.writeJSON(ctx, w, response)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(r.Context(), w, map[string]string{"status": "ok"})
}

func (h *Handler) resolveRegion(w http.ResponseWriter, r *http.Request) (string, bool) {
	region := chi.URLParam(r, "region")
	if !slices.Contains(h.regions, region) {
		http.Error(w, "unknown region", http.StatusNotFound)
		return "", false
	}
	return region, true
}

func (h *Handler) writeJSON(ctx context.Context, w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}
