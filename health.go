package transitjourneys

import (
	"net/http"

	"github.com/theoremus-urban-solutions/transit-journeys/utils"
)

type healthResponse struct {
	Status        string `json:"status"`
	Running       bool   `json:"running"`
	LatestSuccess string `json:"latest_success,omitempty"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := a.Orchestrator.Status()
	resp := healthResponse{Status: "ok", Running: status.Running}
	var latest int64
	for _, p := range status.Pollers {
		if !p.LastSuccess.IsZero() && p.LastSuccess.Unix() > latest {
			latest = p.LastSuccess.Unix()
		}
	}
	if latest > 0 {
		resp.LatestSuccess = utils.Iso8601FromUnixSeconds(latest)
	}
	writeJSON(w, http.StatusOK, resp)
}
