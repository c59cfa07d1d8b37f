package report

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/backend-acara/internal/ledger"
)

type stubAggregator struct {
	calls    int
	revision uint64
	report   ledger.Report
}

func (s *stubAggregator) Aggregate() ledger.Report {
	s.calls++
	return s.report
}

func (s *stubAggregator) Revision() uint64 { return s.revision }

func newTestService(t *testing.T, agg *stubAggregator) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return &Service{A: agg, R: client, TTL: time.Minute}
}

func TestSummaryCachesByRevision(t *testing.T) {
	agg := &stubAggregator{report: ledger.Report{TotalEvents: 2, TotalRevenue: 150_000}}
	svc := newTestService(t, agg)
	ctx := context.Background()

	first, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	second, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if agg.calls != 1 {
		t.Fatalf("expected a single aggregation, got %d", agg.calls)
	}
	if first.TotalRevenue != second.TotalRevenue {
		t.Fatal("cached summary differs from the aggregated one")
	}
}

func TestSummaryRecomputesAfterRevisionBump(t *testing.T) {
	agg := &stubAggregator{report: ledger.Report{TotalEvents: 1}}
	svc := newTestService(t, agg)
	ctx := context.Background()

	if _, err := svc.Summary(ctx); err != nil {
		t.Fatal(err)
	}
	agg.revision++
	agg.report.TotalEvents = 2
	rep, err := svc.Summary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if agg.calls != 2 {
		t.Fatalf("expected re-aggregation after revision bump, got %d calls", agg.calls)
	}
	if rep.TotalEvents != 2 {
		t.Fatalf("expected fresh report, got %d events", rep.TotalEvents)
	}
}

func TestSummaryWorksWithoutRedis(t *testing.T) {
	agg := &stubAggregator{report: ledger.Report{TotalEvents: 1}}
	svc := &Service{A: agg}
	if _, err := svc.Summary(context.Background()); err != nil {
		t.Fatalf("summary without cache: %v", err)
	}
	if _, err := svc.Summary(context.Background()); err != nil {
		t.Fatal(err)
	}
	if agg.calls != 2 {
		t.Fatalf("expected aggregation per call without cache, got %d", agg.calls)
	}
}
