package transitjourneys

import (
	"net/http"

	"github.com/theoremus-urban-solutions/transit-journeys/feeds"
	"github.com/theoremus-urban-solutions/transit-journeys/utils"
)

type statusResponse struct {
	Timestamp    string                   `json:"timestamp"`
	Orchestrator feeds.OrchestratorStatus `json:"orchestrator"`
}

func (a *App) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Timestamp:    utils.Iso8601Now(),
		Orchestrator: a.Orchestrator.Status(),
	})
}

// handleTrigger fires one manual cycle per poller, for operational
// diagnostics. Timer-driven cycles are unaffected.
func (a *App) handleTrigger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	a.Orchestrator.TriggerAll(r.Context())
	a.handleStatus(w, r)
}
