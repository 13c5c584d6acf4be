package analytics

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/schema"

	analyticsmodel "github.com/crackersmart/storefront/internal/service/models/analytics"
)

// service is an interface for the service layer.
type service interface {
	Dashboard(ctx context.Context, filter analyticsmodel.ReportFilter) (*analyticsmodel.Dashboard, error)
}

type dashboardRequest struct {
	From string `schema:"from,omitempty"`
	To   string `schema:"to,omitempty"`
}

func (q *dashboardRequest) toModel() (analyticsmodel.ReportFilter, error) {
	var filter analyticsmodel.ReportFilter

	if q.From != "" {
		from, err := time.Parse(time.RFC3339, q.From)
		if err != nil {
			return filter, err
		}
		filter.From = from
	}
	if q.To != "" {
		to, err := time.Parse(time.RFC3339, q.To)
		if err != nil {
			return filter, err
		}
		filter.To = to
	}

	return filter, nil
}

// Dashboard handles the admin dashboard request.
func Dashboard(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &dashboardRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding dashboard query", "error", err)

		return
	}

	filter, err := query.toModel()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	dashboard, err := service.Dashboard(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error building dashboard", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(dashboard); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}
