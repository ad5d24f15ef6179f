package store

import (
	"context"

	"apptrack.local/internal/domain"
)

// ReplaceApplications rewrites the offline mirror with a fresh list fetch.
// Position records backend order so cached reads come back in the same order.
func (s *Store) ReplaceApplications(ctx context.Context, apps []domain.Application) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM applications`); err != nil {
		return err
	}

	for i, app := range apps {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO applications (id, company_name, role, status, ctc, created_at, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			app.ID,
			app.CompanyName,
			app.Role,
			string(app.Status),
			app.CTC,
			app.CreatedAt,
			i,
		)
		if err != nil {
			return err
		}
	}

	committed = true
	return tx.Commit()
}

// ListApplications returns the mirrored list in backend order.
func (s *Store) ListApplications(ctx context.Context) ([]domain.Application, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, company_name, role, status, ctc, created_at
		FROM applications ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		var app domain.Application
		var status string
		if err := rows.Scan(&app.ID, &app.CompanyName, &app.Role, &status, &app.CTC, &app.CreatedAt); err != nil {
			return nil, err
		}
		app.Status = domain.Status(status)
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// DeleteApplication drops one mirrored row by id.
func (s *Store) DeleteApplication(ctx context.Context, id string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM applications WHERE id = ?`, id)
	return err
}

// SetApplicationStatus patches the status of one mirrored row.
func (s *Store) SetApplicationStatus(ctx context.Context, id string, status domain.Status) error {
	_, err := s.DB.ExecContext(ctx,
		`UPDATE applications SET status = ? WHERE id = ?`,
		string(status), id,
	)
	return err
}
