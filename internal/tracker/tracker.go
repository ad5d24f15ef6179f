package tracker

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"apptrack.local/internal/api"
	"apptrack.local/internal/domain"
	"apptrack.local/internal/store"
)

const mutationFallback = "Something went wrong."

// Controller keeps the in-memory application list consistent with the
// backend. Consistency policy: create and update re-fetch the whole list so
// server-assigned fields come back authoritative; delete and status-change
// patch the local list by id without a re-fetch.
type Controller struct {
	client *api.Client
	cache  *store.Store
	log    zerolog.Logger

	apps []domain.Application
}

func New(client *api.Client, cache *store.Store, log zerolog.Logger) *Controller {
	return &Controller{client: client, cache: cache, log: log}
}

// Applications returns the current in-memory list in backend order.
func (c *Controller) Applications() []domain.Application { return c.apps }

// Get finds one application by id in the in-memory list.
func (c *Controller) Get(id string) (domain.Application, bool) {
	for _, app := range c.apps {
		if app.ID == id {
			return app, true
		}
	}
	return domain.Application{}, false
}

// Refresh replaces the in-memory list with a full fetch and rewrites the
// offline mirror. The list is left untouched when the fetch fails.
func (c *Controller) Refresh(ctx context.Context) error {
	apps, err := c.client.ListApplications(ctx)
	if err != nil {
		return err
	}
	c.apps = apps
	if err := c.cache.ReplaceApplications(ctx, apps); err != nil {
		// The mirror is best effort; the fetched list is already live.
		c.log.Warn().Err(err).Msg("update offline cache")
	}
	return nil
}

// LoadCached fills the in-memory list from the offline mirror, for use when
// the backend is unreachable.
func (c *Controller) LoadCached(ctx context.Context) error {
	apps, err := c.cache.ListApplications(ctx)
	if err != nil {
		return err
	}
	c.apps = apps
	return nil
}

// Create submits a new application and re-fetches the entire list.
func (c *Controller) Create(ctx context.Context, input domain.ApplicationInput) error {
	if _, err := c.client.CreateApplication(ctx, input); err != nil {
		return displayError(err)
	}
	return c.Refresh(ctx)
}

// Update patches an existing application and re-fetches the entire list.
func (c *Controller) Update(ctx context.Context, id string, patch domain.ApplicationPatch) error {
	if _, err := c.client.UpdateApplication(ctx, id, patch); err != nil {
		return displayError(err)
	}
	return c.Refresh(ctx)
}

// Delete removes an application. On success the matching record is dropped
// from the local list by id; no re-fetch. Confirmation is the caller's job.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.client.DeleteApplication(ctx, id); err != nil {
		return displayError(err)
	}
	kept := c.apps[:0]
	for _, app := range c.apps {
		if app.ID != id {
			kept = append(kept, app)
		}
	}
	c.apps = kept
	if err := c.cache.DeleteApplication(ctx, id); err != nil {
		c.log.Warn().Err(err).Str("id", id).Msg("update offline cache")
	}
	return nil
}

// SetStatus patches only the status field. On success the single matching
// in-memory record is updated in place; no re-fetch.
func (c *Controller) SetStatus(ctx context.Context, id string, status domain.Status) error {
	patch := domain.ApplicationPatch{Status: &status}
	if _, err := c.client.UpdateApplication(ctx, id, patch); err != nil {
		return displayError(err)
	}
	for i := range c.apps {
		if c.apps[i].ID == id {
			c.apps[i].Status = status
		}
	}
	if err := c.cache.SetApplicationStatus(ctx, id, status); err != nil {
		c.log.Warn().Err(err).Str("id", id).Msg("update offline cache")
	}
	return nil
}

// Filter is a pure derived view: exact status match (zero value means no
// status filter) combined with a case-insensitive substring match against
// company name or role. Never mutates the stored list.
func (c *Controller) Filter(status domain.Status, query string) []domain.Application {
	query = strings.ToLower(strings.TrimSpace(query))

	var out []domain.Application
	for _, app := range c.apps {
		if status != "" && app.Status != status {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(app.CompanyName), query) &&
			!strings.Contains(strings.ToLower(app.Role), query) {
			continue
		}
		out = append(out, app)
	}
	return out
}

// Counts aggregates over the full unfiltered list, independent of any
// active filter.
func (c *Controller) Counts() (map[domain.Status]int, int) {
	counts := make(map[domain.Status]int, len(domain.Statuses))
	for _, s := range domain.Statuses {
		counts[s] = 0
	}
	for _, app := range c.apps {
		counts[app.Status]++
	}
	return counts, len(c.apps)
}

func displayError(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr
	}
	return errors.New(mutationFallback)
}
