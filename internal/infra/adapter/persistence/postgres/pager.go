package postgres

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/observability/tracing"
)

// pageQuery is one keyset page statement. SQL must end with its ORDER BY;
// the pager appends LIMIT limit+1 as the last placeholder.
type pageQuery[T any] struct {
	Entity string
	SQL    string
	Args   []any
	Limit  int
	Scan   func(row rowScanner) (T, error)
	Key    pagination.KeyFunc[T]
}

// rowScanner is satisfied by *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// runPage executes q and trims the result into a page.
func runPage[T any](ctx context.Context, db Querier, q pageQuery[T]) (pagination.Page[T], error) {
	ctx, span := tracing.GetTracer().Start(ctx, "keyset.page")
	defer span.End()
	span.SetAttributes(
		attribute.String("pagination.entity", q.Entity),
		attribute.Int("pagination.limit", q.Limit),
	)

	fetch := pagination.FetchLimit(q.Limit)
	args := append(append(make([]any, 0, len(q.Args)+1), q.Args...), fetch)
	query := fmt.Sprintf("%s\nLIMIT $%d", q.SQL, len(args))

	start := time.Now()
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return pagination.Page[T]{}, err
	}
	defer func() { _ = rows.Close() }()

	items := make([]T, 0, fetch)
	for rows.Next() {
		item, err := q.Scan(rows)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "scan failed")
			return pagination.Page[T]{}, fmt.Errorf("Scan: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rows failed")
		return pagination.Page[T]{}, fmt.Errorf("rows.Err: %w", err)
	}
	pagination.RecordQueryDuration(q.Entity, time.Since(start))

	page := pagination.Trim(items, q.Limit, q.Key)
	pagination.RecordPage(q.Entity, len(page.Items), page.HasNext)
	span.SetAttributes(
		attribute.Int("pagination.items", len(page.Items)),
		attribute.Bool("pagination.has_next", page.HasNext),
	)
	return page, nil
}
