package transitjourneys

import (
	"encoding/json"
	"net/http"

	"github.com/theoremus-urban-solutions/transit-journeys/journey"
	"github.com/theoremus-urban-solutions/transit-journeys/ranking"
)

type journeyOptionsRequest struct {
	Query    journey.TripQuery `json:"query"`
	Journeys []journey.Journey `json:"journeys"`
	Strategy string            `json:"strategy,omitempty"`
}

type journeyOptionsResponse struct {
	Strategy string                  `json:"strategy"`
	Journeys []ranking.RankedJourney `json:"journeys"`
	Best     *ranking.RankedJourney  `json:"best,omitempty"`
}

// handleJourneyOptions enriches canonical journeys with fares and returns
// them ranked under the requested strategy. Enrichment is best-effort:
// journeys come back without fares when the fare source degrades.
func (a *App) handleJourneyOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var req journeyOptionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Journeys) == 0 {
		writeError(w, http.StatusBadRequest, "journeys required")
		return
	}
	strategy := req.Strategy
	if strategy == "" {
		strategy = a.Config.Ranking.DefaultStrategy
	}

	enriched := a.Enricher.Enrich(r.Context(), req.Query, req.Journeys)
	ranked, err := ranking.Rank(enriched, strategy)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, journeyOptionsResponse{
		Strategy: strategy,
		Journeys: ranked,
		Best:     ranking.Best(ranked),
	})
}
