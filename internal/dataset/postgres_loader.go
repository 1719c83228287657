package dataset

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-analytics/internal/domain"
	"github.com/spec-kit/ticket-analytics/pkg/util"
)

// PostgresLoader reads the dataset from a Postgres table holding the same
// columns as the CSV export, snake_cased. The table is read-only input; the
// service never writes back.
type PostgresLoader struct {
	pool   *pgxpool.Pool
	table  string
	logger *zap.Logger
}

// NewPostgresLoader constructs a loader over an existing pool.
func NewPostgresLoader(pool *pgxpool.Pool, table string, logger *zap.Logger) *PostgresLoader {
	return &PostgresLoader{pool: pool, table: table, logger: logger}
}

// Source identifies the loader for logs and events.
func (l *PostgresLoader) Source() string {
	return fmt.Sprintf("postgres:%s", l.table)
}

// Load reads every row as text; type coercion is the cleaner's job, same as
// for the CSV source.
func (l *PostgresLoader) Load(ctx context.Context) ([]domain.RawTicket, error) {
	if l.pool == nil {
		return nil, util.NewDataSourceError("postgres dataset source not configured", nil)
	}

	query := fmt.Sprintf(`
        SELECT ticket_id::text, customer_name, product_purchased, ticket_type,
               ticket_priority, ticket_status, ticket_channel,
               date_of_purchase::text, first_response_time::text,
               time_to_resolution::text, customer_satisfaction_rating::text
        FROM %s
        ORDER BY ticket_id`, l.table)

	pgRows, err := l.pool.Query(ctx, query)
	if err != nil {
		return nil, util.NewDataSourceError(fmt.Sprintf("dataset table %s unavailable", l.table), err)
	}
	defer pgRows.Close()

	var rows []domain.RawTicket
	for pgRows.Next() {
		var id, customerName, product, ticketType, priority, status, channel *string
		var purchaseDate, firstResponse, resolution, satisfaction *string
		if err := pgRows.Scan(
			&id, &customerName, &product, &ticketType, &priority, &status, &channel,
			&purchaseDate, &firstResponse, &resolution, &satisfaction,
		); err != nil {
			return nil, util.NewDataSourceError(fmt.Sprintf("dataset table %s is corrupt", l.table), err)
		}
		rows = append(rows, domain.RawTicket{
			ID:              deref(id),
			CustomerName:    deref(customerName),
			Product:         deref(product),
			Type:            deref(ticketType),
			Priority:        deref(priority),
			Status:          deref(status),
			Channel:         deref(channel),
			PurchaseDate:    deref(purchaseDate),
			FirstResponseAt: deref(firstResponse),
			Resolution:      deref(resolution),
			Satisfaction:    deref(satisfaction),
		})
	}
	if err := pgRows.Err(); err != nil {
		return nil, util.NewDataSourceError(fmt.Sprintf("dataset table %s read failed", l.table), err)
	}

	l.logger.Info("dataset loaded",
		zap.String("source", l.Source()),
		zap.Int("rows", len(rows)),
	)
	return rows, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
