//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"healthanchor/internal/anchor"
	"healthanchor/internal/anchor/store/postgres"
	"healthanchor/pkg/platform/sentinel"
	"healthanchor/pkg/testutil/containers"
)

type PostgresAnchorStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *postgres.Store
}

func TestPostgresAnchorStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresAnchorStoreSuite))
}

func (s *PostgresAnchorStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = postgres.New(s.pg.DB)
	s.Require().NoError(s.store.Migrate(context.Background()))
}

func (s *PostgresAnchorStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(context.Background(), "anchors"))
}

func (s *PostgresAnchorStoreSuite) record(txID string) anchor.Record {
	return anchor.Record{
		TransactionID:     txID,
		PatientID:         "P1",
		RecordFingerprint: "f2ca1bb6c7e907d06dafe4687e579fce76b37e4e93b7605022da52e6ccc26fd2",
		IssuerID:          "doctor-1",
		IssuedAt:          time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC).UnixMilli(),
		WalletAddress:     "addr_placeholder",
	}
}

func (s *PostgresAnchorStoreSuite) TestPutGetRoundTrip() {
	ctx := context.Background()
	record := s.record("tx_pg_1")

	s.Require().NoError(s.store.Put(ctx, record))

	found, err := s.store.Get(ctx, "tx_pg_1")
	s.Require().NoError(err)
	s.Equal(record, found)
}

func (s *PostgresAnchorStoreSuite) TestGetUnknownID() {
	_, err := s.store.Get(context.Background(), "tx_missing")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresAnchorStoreSuite) TestWriteOnceUnderConcurrency() {
	ctx := context.Background()
	const writers = 10

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			rec := s.record("tx_pg_race")
			rec.PatientID = "P" + string(rune('0'+idx))
			errs <- s.store.Put(ctx, rec)
		}(i)
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			s.Require().ErrorIs(err, sentinel.ErrConflict)
		}
	}
	s.Equal(1, succeeded)
}
