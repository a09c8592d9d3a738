package source

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/godrift/internal/config"
)

func TestQueryDataset(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{"age", "income", "city"}).
		AddRow(int64(34), 55000.5, "ankara").
		AddRow(int64(41), 61250.0, "izmir").
		AddRow(nil, 48000.0, "istanbul")
	mock.ExpectQuery("SELECT \\* FROM customers").WillReturnRows(rows)

	ds, err := queryDataset(context.Background(), db, "SELECT * FROM customers", "current")
	require.NoError(t, err)

	assert.Equal(t, "current", ds.Name())
	assert.Equal(t, []string{"age", "income", "city"}, ds.ColumnNames())
	assert.Equal(t, 3, ds.Rows())

	age := ds.Column("age")
	require.NotNil(t, age)
	assert.Equal(t, int64(34), age.Values[0])
	assert.Nil(t, age.Values[2])

	city := ds.Column("city")
	require.NotNil(t, city)
	assert.Equal(t, "istanbul", city.Values[2])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryDatasetCoercesTextProtocol(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	// Text-protocol drivers hand numeric columns back as raw bytes.
	rows := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("age").OfType("BIGINT", int64(0)),
		sqlmock.NewColumn("score").OfType("DECIMAL", float64(0)),
		sqlmock.NewColumn("city").OfType("VARCHAR", ""),
	).
		AddRow([]byte("34"), []byte("91.25"), []byte("ankara")).
		AddRow([]byte("41"), []byte("87.5"), []byte("izmir"))
	mock.ExpectQuery("SELECT .+ FROM scores").WillReturnRows(rows)

	ds, err := queryDataset(context.Background(), db, "SELECT age, score, city FROM scores", "current")
	require.NoError(t, err)

	assert.Equal(t, []interface{}{int64(34), int64(41)}, ds.Column("age").Values)
	assert.Equal(t, []interface{}{91.25, 87.5}, ds.Column("score").Values)
	assert.Equal(t, []interface{}{"ankara", "izmir"}, ds.Column("city").Values)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryDatasetEmptyResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{"a", "b"})
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	ds, err := queryDataset(context.Background(), db, "SELECT a, b FROM empty", "current")
	require.NoError(t, err)

	assert.Equal(t, 0, ds.Rows())
	assert.Equal(t, []string{"a", "b"}, ds.ColumnNames())
}

func TestQueryDatasetQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)

	_, err = queryDataset(context.Background(), db, "SELECT * FROM broken", "current")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "query failed")
}

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.DatasetConfig
		expected string
	}{
		{
			name: "mysql",
			cfg: config.DatasetConfig{
				Driver: "mysql", Host: "localhost", Port: 3306,
				User: "drift", Password: "secret", Database: "analytics",
			},
			expected: "drift:secret@tcp(localhost:3306)/analytics?parseTime=true",
		},
		{
			name: "mysql with tls",
			cfg: config.DatasetConfig{
				Driver: "mysql", Host: "db.internal", Port: 3307,
				User: "drift", Password: "secret", Database: "analytics", UseSSL: true,
			},
			expected: "drift:secret@tcp(db.internal:3307)/analytics?parseTime=true&tls=true",
		},
		{
			name: "postgres",
			cfg: config.DatasetConfig{
				Driver: "postgres", Host: "localhost", Port: 5432,
				User: "drift", Password: "secret", Database: "analytics",
			},
			expected: "host=localhost port=5432 user=drift password=secret dbname=analytics sslmode=disable",
		},
		{
			name: "postgres with ssl",
			cfg: config.DatasetConfig{
				Driver: "postgres", Host: "db.internal", Port: 5432,
				User: "drift", Password: "secret", Database: "analytics", UseSSL: true,
			},
			expected: "host=db.internal port=5432 user=drift password=secret dbname=analytics sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildDSN(&tt.cfg))
		})
	}
}
