package notion

import (
	"context"
	"fmt"

	gnt "github.com/dstotijn/go-notion"

	"apptrack.local/internal/domain"
)

// Exporter pushes tracked applications into a Notion database, one page per
// application.
type Exporter struct {
	api        *gnt.Client
	databaseID string
}

func New(token, databaseID string) *Exporter {
	return &Exporter{
		api:        gnt.NewClient(token),
		databaseID: databaseID,
	}
}

// Ping tries a tiny QueryDatabase to see if the DB is reachable.
func (e *Exporter) Ping(ctx context.Context) error {
	_, err := e.api.QueryDatabase(ctx, e.databaseID, &gnt.DatabaseQuery{
		PageSize: 1,
	})
	return err
}

// helper: build a valid Notion rich_text slice from a plain string.
func richText(s string) []gnt.RichText {
	if s == "" {
		return nil
	}
	return []gnt.RichText{
		{
			Text: &gnt.Text{
				Content: s,
			},
		},
	}
}

func buildApplicationProperties(app domain.Application) gnt.DatabasePageProperties {
	props := gnt.DatabasePageProperties{}

	// Company — Title (required title property)
	if app.CompanyName != "" {
		props["Company"] = gnt.DatabasePageProperty{
			Title: richText(app.CompanyName),
		}
	}

	// Role — Text (rich_text)
	if app.Role != "" {
		props["Role"] = gnt.DatabasePageProperty{
			RichText: richText(app.Role),
		}
	}

	// Status — Select
	if app.Status != "" {
		props["Status"] = gnt.DatabasePageProperty{
			Select: &gnt.SelectOptions{
				Name: string(app.Status),
			},
		}
	}

	// CTC — Text (rich_text)
	if app.CTC != "" {
		props["CTC"] = gnt.DatabasePageProperty{
			RichText: richText(app.CTC),
		}
	}

	// Applied — Date
	if !app.CreatedAt.IsZero() {
		dt := gnt.NewDateTime(app.CreatedAt, false)
		props["Applied"] = gnt.DatabasePageProperty{
			Date: &gnt.Date{
				Start: dt,
			},
		}
	}

	return props
}

// ExportApplication creates one row in the configured database and returns
// the new page id.
func (e *Exporter) ExportApplication(ctx context.Context, app domain.Application) (string, error) {
	props := buildApplicationProperties(app)

	params := gnt.CreatePageParams{
		ParentType:             gnt.ParentTypeDatabase,
		ParentID:               e.databaseID,
		DatabasePageProperties: &props,
	}

	page, err := e.api.CreatePage(ctx, params)
	if err != nil {
		return "", err
	}
	return page.ID, nil
}

// ExportAll pushes every application, stopping at the first failure so a bad
// token or schema mismatch doesn't spam half-written rows.
func (e *Exporter) ExportAll(ctx context.Context, apps []domain.Application) (int, error) {
	for i, app := range apps {
		if _, err := e.ExportApplication(ctx, app); err != nil {
			return i, fmt.Errorf("export %s: %w", app.CompanyName, err)
		}
	}
	return len(apps), nil
}
