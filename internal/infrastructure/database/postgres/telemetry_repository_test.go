package postgres

import (
	"context"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-device-tracker/internal/domain/telemetry"
)

func TestTelemetryRepositoryListByIMEI(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTelemetryRepository(db)

	reportedAt := time.Now()
	lat := 10.762622
	lon := 106.660172

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "telemetry_samples"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "telemetry_samples" WHERE imei = $1 ORDER BY reported_at ASC, id ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "packet_type", "imei", "main_power", "latitude", "longitude", "speed", "raw", "reported_at"}).
			AddRow(1, "TRK", "359632107245618", true, lat, lon, nil, "TRK|359632107245618|...|1|...|10.762622|106.660172", reportedAt).
			AddRow(2, "TRK", "359632107245618", false, nil, nil, nil, "TRK|359632107245618|...|0|...|x|y", reportedAt))

	samples, total, err := repo.ListByIMEI(context.Background(), "359632107245618", &telemetry.Filter{Limit: 50})
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
	require.Len(t, samples, 2)

	assert.True(t, samples[0].HasFix())
	assert.Equal(t, lat, samples[0].Latitude)
	assert.True(t, samples[0].MainPower)

	// NULL coordinates come back as NaN, not zero.
	assert.False(t, samples[1].HasFix())
	assert.True(t, math.IsNaN(samples[1].Latitude))
	assert.True(t, math.IsNaN(samples[1].Longitude))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTelemetryRepositoryBatchInsertEmpty(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTelemetryRepository(db)

	// No SQL may run for an empty batch.
	err := repo.BatchInsert(context.Background(), nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSampleModelRoundTrip(t *testing.T) {
	t.Run("fix survives the column mapping", func(t *testing.T) {
		reportedAt := time.Now()
		in := telemetry.Sample{
			PacketType: "TRK",
			IMEI:       "359632107245618",
			MainPower:  true,
			Latitude:   10.762622,
			Longitude:  106.660172,
			ReportedAt: &reportedAt,
			Raw:        "TRK|359632107245618",
		}

		m := toSampleModel(in)
		require.NotNil(t, m.Latitude)
		require.NotNil(t, m.Longitude)

		out := toSampleEntity(&m)
		assert.Equal(t, in.Latitude, out.Latitude)
		assert.Equal(t, in.Longitude, out.Longitude)
		assert.True(t, out.MainPower)
	})

	t.Run("missing fix is stored as NULL and restored as NaN", func(t *testing.T) {
		in := telemetry.Sample{
			PacketType: "TRK",
			IMEI:       "359632107245618",
			Latitude:   math.NaN(),
			Longitude:  math.NaN(),
			Raw:        "TRK|359632107245618|short",
		}

		m := toSampleModel(in)
		assert.Nil(t, m.Latitude)
		assert.Nil(t, m.Longitude)

		out := toSampleEntity(&m)
		assert.True(t, math.IsNaN(out.Latitude))
		assert.True(t, math.IsNaN(out.Longitude))
	})
}
