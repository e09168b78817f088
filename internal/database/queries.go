package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pagebrief/internal/models"
)

func (d *Database) SaveSummary(
	ctx context.Context,
	record models.SummaryRecord,
) (int64, error) {
	record.URL = strings.TrimSpace(record.URL)
	if record.URL == "" {
		return 0, errors.New("summary URL is empty")
	}

	record.Summary = strings.TrimSpace(record.Summary)
	if record.Summary == "" {
		return 0, errors.New("summary text is empty")
	}

	record.Title = strings.TrimSpace(record.Title)
	if record.Title == "" {
		record.Title = record.URL
	}

	query := `insert into summaries (url, title, provider, model, summary)
	values (?, ?, ?, ?, ?)`

	result, err := d.db.ExecContext(
		ctx,
		query,
		record.URL,
		record.Title,
		strings.TrimSpace(record.Provider),
		strings.TrimSpace(record.Model),
		record.Summary,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to fetch last insert ID: %w", err)
	}

	return id, nil
}

func (d *Database) RecentSummaries(
	ctx context.Context,
	limit int,
) ([]models.SummaryRecord, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := `select id, url, title, provider, model, summary, created_at
	from summaries
	order by created_at desc, id desc
	limit ?`

	rows, err := d.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() {
		if err = rows.Close(); err != nil {
			d.log.ErrorContext(ctx, "Failed to close rows",
				"error", err,
				"limit", limit,
				"operation", "RecentSummaries")
		}
	}()

	var records []models.SummaryRecord
	for rows.Next() {
		var r models.SummaryRecord
		if err = rows.Scan(
			&r.ID,
			&r.URL,
			&r.Title,
			&r.Provider,
			&r.Model,
			&r.Summary,
			&r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		r.URL = strings.TrimSpace(r.URL)
		r.Title = strings.TrimSpace(r.Title)

		records = append(records, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return records, nil
}

func (d *Database) PruneOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	query := "delete from summaries where created_at < ?"

	result, err := d.db.ExecContext(ctx, query, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}

	pruned, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to fetch affected rows: %w", err)
	}

	return pruned, nil
}
