// Package parts exposes part recommendation backed by InvenTree stock
// and pricing data.
package parts

import (
	"encoding/json"
	"net/http"

	"github.com/inventree-tools/crewplan/infra/inventree"
)

// Recommendation is the response of GET /api/recommend-part.
type Recommendation struct {
	Part  inventree.Part        `json:"part"`
	Stock []inventree.StockItem `json:"stock"`
	Note  string                `json:"note,omitempty"`
}

// NewRecommendHandler picks the cheapest in-stock part matching the
// predicted name, optionally restricted to a stock location.
func NewRecommendHandler(client *inventree.Client) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		predicted := r.URL.Query().Get("predicted")
		if predicted == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "predicted query parameter is required"})
			return
		}
		location := r.URL.Query().Get("location")

		matches, err := client.SearchParts(r.Context(), predicted)
		if err != nil {
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
			return
		}
		if len(matches) == 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no matching part found"})
			return
		}
		if len(matches) == 1 {
			stock, err := client.StockForPart(r.Context(), matches[0].PK)
			if err != nil {
				writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
				return
			}
			writeJSON(w, http.StatusOK, Recommendation{Part: matches[0], Stock: stock, Note: "only one part found"})
			return
		}

		cands, err := client.PickCandidates(r.Context(), matches, location)
		if err != nil {
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
			return
		}
		if len(cands) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no stock found in preferred location"})
			return
		}
		best := inventree.Cheapest(cands)
		writeJSON(w, http.StatusOK, Recommendation{Part: best.Part, Stock: best.Stock})
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
