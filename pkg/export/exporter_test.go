package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Booking UID", "Name", "Status"},
		Rows: []map[string]string{
			{"Booking UID": "uid-1", "Name": "Asha", "Status": "CONFIRMED"},
			{"Booking UID": "uid-2", "Name": "Ravi", "Status": "CANCELED"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	payload, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(payload, []byte("Booking UID,Name,Status\n")))
	assert.Contains(t, string(payload), "uid-1,Asha,CONFIRMED")
	assert.Contains(t, string(payload), "uid-2,Ravi,CANCELED")
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	payload, err := NewPDFExporter().Render(sampleDataset(), "upcoming bookings")
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(payload, []byte("%PDF")))
	assert.NotEmpty(t, payload)
}
