package transitjourneys

import (
	"encoding/json"
	"net/http"

	"github.com/theoremus-urban-solutions/transit-journeys/cache"
	"github.com/theoremus-urban-solutions/transit-journeys/feeds"
)

type snapshotResponse struct {
	Meta  *cache.FeedMeta   `json:"meta"`
	Items []json.RawMessage `json:"items"`
}

var knownFamilies = map[string]bool{
	string(feeds.FamilyAlerts):           true,
	string(feeds.FamilyTripUpdates):      true,
	string(feeds.FamilyVehiclePositions): true,
}

// handleSnapshot serves the last good cached snapshot for one feed.
func (a *App) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	family := r.URL.Query().Get("family")
	id := r.URL.Query().Get("id")
	if !knownFamilies[family] || id == "" {
		writeError(w, http.StatusBadRequest, "family and id query parameters required")
		return
	}
	meta, err := a.Store.GetFeedMeta(r.Context(), family, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	items, err := a.Store.GetSnapshot(r.Context(), family, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if meta == nil && items == nil {
		writeError(w, http.StatusNotFound, "no snapshot cached for "+family+"/"+id)
		return
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	writeJSON(w, http.StatusOK, snapshotResponse{Meta: meta, Items: items})
}
