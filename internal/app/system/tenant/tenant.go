// Package tenant resolves and exposes the active firm (tenant) for a
// request. The middleware establishes firm context once, before any handler
// runs; everything downstream — the scope layer above all — only reads it.
//
// Superadmin traffic arrives on the apex domain and deliberately carries no
// firm context, which is what lets superadmin queries bypass tenant
// narrowing.
package tenant

import (
	"context"
	"net/http"
	"strings"

	"github.com/lexhub/lexhub/internal/app/system/timeouts"
	"github.com/lexhub/lexhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ctxKey string

const firmKey ctxKey = "firm"

// Info holds firm context for the current request.
type Info struct {
	ID        primitive.ObjectID
	Subdomain string
	Name      string
	Status    string // active, suspended, archived
	IsApex    bool   // request hit the apex domain; no firm bound
}

// FirmStore is the lookup interface the middleware needs.
type FirmStore interface {
	GetBySubdomain(ctx context.Context, subdomain string) (models.Firm, error)
	GetFirst(ctx context.Context) (models.Firm, error)
}

// FromRequest returns the firm info established by the middleware, if any.
func FromRequest(r *http.Request) (*Info, bool) {
	info, ok := r.Context().Value(firmKey).(*Info)
	return info, ok
}

// CurrentFirmID returns the active firm's ID, or nil when the request is
// apex (superadmin) traffic or no firm was resolved. Read-only: only the
// middleware ever sets firm context.
func CurrentFirmID(r *http.Request) *primitive.ObjectID {
	info, ok := FromRequest(r)
	if !ok || info.IsApex || info.ID.IsZero() {
		return nil
	}
	id := info.ID
	return &id
}

func withFirm(r *http.Request, info *Info) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), firmKey, info))
}

// WithTestFirm binds firm context to a request for handler tests.
func WithTestFirm(r *http.Request, info *Info) *http.Request {
	return withFirm(r, info)
}

// Middleware resolves the firm from the request host.
//
// Multi-firm mode: apex requests get IsApex=true, subdomain requests look
// up the firm (404 unknown, 403 suspended/archived). Single-firm mode uses
// the first firm for every request.
func Middleware(primaryDomain string, store FirmStore, multiFirm bool, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
			defer cancel()

			if !multiFirm {
				firm, err := store.GetFirst(ctx)
				if err != nil {
					// No firm yet (setup flow); proceed without context.
					logger.Debug("no firm found in single-firm mode")
					next.ServeHTTP(w, r)
					return
				}
				next.ServeHTTP(w, withFirm(r, infoFor(firm)))
				return
			}

			host := r.Host
			if idx := strings.Index(host, ":"); idx != -1 {
				host = host[:idx]
			}

			if host == primaryDomain {
				next.ServeHTTP(w, withFirm(r, &Info{IsApex: true}))
				return
			}

			suffix := "." + primaryDomain
			if !strings.HasSuffix(host, suffix) {
				if strings.HasPrefix(host, "localhost") || strings.HasPrefix(host, "127.0.0.1") {
					// Development: fall back to the first firm.
					if firm, err := store.GetFirst(ctx); err == nil {
						next.ServeHTTP(w, withFirm(r, infoFor(firm)))
						return
					}
					next.ServeHTTP(w, r)
					return
				}
				logger.Warn("request to unknown domain",
					zap.String("host", host),
					zap.String("primary_domain", primaryDomain))
				http.Error(w, "invalid domain", http.StatusBadRequest)
				return
			}

			subdomain := strings.TrimSuffix(host, suffix)
			if subdomain == "" {
				next.ServeHTTP(w, withFirm(r, &Info{IsApex: true}))
				return
			}

			firm, err := store.GetBySubdomain(ctx, subdomain)
			if err != nil {
				logger.Debug("firm not found", zap.String("subdomain", subdomain))
				http.Error(w, "firm not found", http.StatusNotFound)
				return
			}
			if firm.Status != "active" {
				http.Error(w, "firm unavailable", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, withFirm(r, infoFor(firm)))
		})
	}
}

func infoFor(f models.Firm) *Info {
	return &Info{
		ID:        f.ID,
		Subdomain: f.Subdomain,
		Name:      f.Name,
		Status:    f.Status,
	}
}
