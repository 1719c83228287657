package dataset_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-analytics/internal/dataset"
	"github.com/spec-kit/ticket-analytics/pkg/util"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tickets.csv")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const fullHeader = "Ticket ID,Customer Name,Product Purchased,Ticket Type,Ticket Priority,Ticket Status,Ticket Channel,Date of Purchase,First Response Time,Time to Resolution,Customer Satisfaction Rating"

func TestCSVLoaderReadsRows(t *testing.T) {
	path := writeCSV(t, fullHeader+"\n"+
		"1,Ada Park,GoPro Hero,Technical issue,High,Closed,Email,2021-03-22,2023-06-01 10:00:00,2023-06-01 12:30:00,4\n"+
		"2,Luis Webb,SoundWave 300,Billing inquiry,Low,Open,Chat,2020-07-14,,,\n")

	loader := dataset.NewCSVLoader(path, zap.NewNop())
	rows, err := loader.Load(context.Background())
	gt.NoError(t, err)
	gt.Equal(t, len(rows), 2)

	gt.Equal(t, rows[0].ID, "1")
	gt.Equal(t, rows[0].CustomerName, "Ada Park")
	gt.Equal(t, rows[0].Priority, "High")
	gt.Equal(t, rows[0].Resolution, "2023-06-01 12:30:00")
	gt.Equal(t, rows[0].Satisfaction, "4")

	gt.Equal(t, rows[1].Status, "Open")
	gt.Equal(t, rows[1].FirstResponseAt, "")
	gt.Equal(t, rows[1].Satisfaction, "")
}

func TestCSVLoaderMissingFile(t *testing.T) {
	loader := dataset.NewCSVLoader(filepath.Join(t.TempDir(), "absent.csv"), zap.NewNop())
	_, err := loader.Load(context.Background())
	gt.Error(t, err)
	gt.True(t, util.IsDataSourceError(err))
}

func TestCSVLoaderEmptyFile(t *testing.T) {
	loader := dataset.NewCSVLoader(writeCSV(t, ""), zap.NewNop())
	_, err := loader.Load(context.Background())
	gt.Error(t, err)
	gt.True(t, util.IsDataSourceError(err))
}

func TestCSVLoaderCorruptRow(t *testing.T) {
	loader := dataset.NewCSVLoader(writeCSV(t, fullHeader+"\n\"unterminated\n"), zap.NewNop())
	_, err := loader.Load(context.Background())
	gt.Error(t, err)
	gt.True(t, util.IsDataSourceError(err))
}

func TestCSVLoaderToleratesMissingColumns(t *testing.T) {
	path := writeCSV(t, "Ticket ID,Ticket Status\n7,Open\n")
	loader := dataset.NewCSVLoader(path, zap.NewNop())

	rows, err := loader.Load(context.Background())
	gt.NoError(t, err)
	gt.Equal(t, len(rows), 1)
	gt.Equal(t, rows[0].ID, "7")
	gt.Equal(t, rows[0].Status, "Open")
	gt.Equal(t, rows[0].Priority, "")
	gt.Equal(t, rows[0].Resolution, "")
}

func TestCSVLoaderHeaderOnly(t *testing.T) {
	loader := dataset.NewCSVLoader(writeCSV(t, fullHeader+"\n"), zap.NewNop())
	rows, err := loader.Load(context.Background())
	gt.NoError(t, err)
	gt.Equal(t, len(rows), 0)
}
