package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-analytics/internal/domain"
	"github.com/spec-kit/ticket-analytics/pkg/util"
)

// Loader reads the raw ticket table from a dataset source.
type Loader interface {
	Load(ctx context.Context) ([]domain.RawTicket, error)
	Source() string
}

// CSVLoader reads the dataset from a CSV file with the documented header row.
type CSVLoader struct {
	path   string
	logger *zap.Logger
}

// NewCSVLoader constructs a loader for the given file path.
func NewCSVLoader(path string, logger *zap.Logger) *CSVLoader {
	return &CSVLoader{path: path, logger: logger}
}

// Source identifies the loader for logs and events.
func (l *CSVLoader) Source() string {
	return fmt.Sprintf("csv:%s", l.path)
}

// Load reads every row. A missing file or malformed CSV is a DataSourceError;
// individual cell values are passed through raw for the cleaner to coerce.
func (l *CSVLoader) Load(ctx context.Context) ([]domain.RawTicket, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, util.NewDataSourceError(fmt.Sprintf("dataset file not found at %s", l.path), err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, util.NewDataSourceError("dataset file is empty or unreadable", err)
	}
	cols := columnIndex(header)

	var rows []domain.RawTicket
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, util.NewDataSourceError("dataset file is corrupt", err)
		}
		rows = append(rows, domain.RawTicket{
			ID:              field(record, cols[domain.ColTicketID]),
			CustomerName:    field(record, cols[domain.ColCustomerName]),
			Product:         field(record, cols[domain.ColProduct]),
			Type:            field(record, cols[domain.ColType]),
			Priority:        field(record, cols[domain.ColPriority]),
			Status:          field(record, cols[domain.ColStatus]),
			Channel:         field(record, cols[domain.ColChannel]),
			PurchaseDate:    field(record, cols[domain.ColPurchaseDate]),
			FirstResponseAt: field(record, cols[domain.ColFirstResponse]),
			Resolution:      field(record, cols[domain.ColResolution]),
			Satisfaction:    field(record, cols[domain.ColSatisfaction]),
		})
	}

	l.logger.Info("dataset loaded",
		zap.String("source", l.Source()),
		zap.Int("rows", len(rows)),
	)
	return rows, nil
}

// columnIndex maps known headers to their positions. Missing columns map to
// -1 so their values degrade to empty strings instead of failing the load.
func columnIndex(header []string) map[string]int {
	cols := map[string]int{
		domain.ColTicketID:      -1,
		domain.ColCustomerName:  -1,
		domain.ColProduct:       -1,
		domain.ColType:          -1,
		domain.ColPriority:      -1,
		domain.ColStatus:        -1,
		domain.ColChannel:       -1,
		domain.ColPurchaseDate:  -1,
		domain.ColFirstResponse: -1,
		domain.ColResolution:    -1,
		domain.ColSatisfaction:  -1,
	}
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, ok := cols[name]; ok {
			cols[name] = i
		}
	}
	return cols
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
