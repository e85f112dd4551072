// internal/app/features/dashboard/dashboard.go
package dashboard

import (
	"context"
	"net/http"

	uierrors "github.com/lexhub/lexhub/internal/app/features/errors"
	"github.com/lexhub/lexhub/internal/app/system/scope"
	"github.com/lexhub/lexhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the scoped dashboard summary. Every count runs through the
// same narrowing as the list views, so the numbers a caller sees here always
// match what the lists would show.
type Handler struct {
	DB     *mongo.Database
	Engine *scope.Engine
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, engine *scope.Engine, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Engine: engine, ErrLog: errLog, Log: logger}
}

type summary struct {
	OpenCases      int64 `json:"open_cases"`
	Clients        int64 `json:"clients"`
	UnpaidInvoices int64 `json:"unpaid_invoices"`
	Documents      int64 `json:"documents"`
	PendingTasks   int64 `json:"pending_tasks"`
}

// ServeSummary handles GET /dashboard.
func (h *Handler) ServeSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var s summary
	counts := []struct {
		dst    *int64
		q      scope.Query
		module string
	}{
		{&s.OpenCases, scope.ForCollection(scope.ColCases).Where(bson.M{"status": "open"}), "cases"},
		{&s.Clients, scope.ForCollection(scope.ColClients), "clients"},
		{&s.UnpaidInvoices, scope.ForCollection(scope.ColInvoices).Where(bson.M{"status": "sent"}), "invoices"},
		{&s.Documents, scope.ForCollection(scope.ColDocuments), "documents"},
		{&s.PendingTasks, scope.ForCollection(scope.ColTasks).Where(bson.M{"status": bson.M{"$ne": "done"}}), "tasks"},
	}
	for _, c := range counts {
		n, err := h.count(ctx, r, c.q, c.module)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "dashboard counts failed", err, "Unable to load dashboard.")
			return
		}
		*c.dst = n
	}

	uierrors.RenderJSON(w, http.StatusOK, s)
}

func (h *Handler) count(ctx context.Context, r *http.Request, q scope.Query, module string) (int64, error) {
	narrowed, err := h.Engine.ApplyRequest(r, q, module)
	if err != nil {
		return 0, err
	}
	return h.DB.Collection(narrowed.Collection).CountDocuments(ctx, narrowed.Filter)
}
