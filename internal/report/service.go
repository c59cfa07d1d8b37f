package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/backend-acara/internal/ledger"
)

// Aggregator is the ledger access required by the report service.
type Aggregator interface {
	Aggregate() ledger.Report
	Revision() uint64
}

// Service provides cached access to ledger summaries. The cache key carries
// the ledger revision, so a summary cached before an append can never be
// served after it.
type Service struct {
	A   Aggregator
	R   *redis.Client
	TTL time.Duration
}

func cacheKey(parts ...any) string {
	formatted := make([]string, 0, len(parts))
	for _, part := range parts {
		formatted = append(formatted, fmt.Sprint(part))
	}
	return strings.Join(formatted, ":")
}

// Summary returns the aggregate booking report.
func (s *Service) Summary(ctx context.Context) (ledger.Report, error) {
	if s == nil || s.A == nil {
		return ledger.Report{}, fmt.Errorf("report service not configured")
	}
	key := cacheKey("rp", "summary", s.A.Revision())
	if rep, ok := s.fromCache(ctx, key); ok {
		return rep, nil
	}
	rep := s.A.Aggregate()
	s.store(ctx, key, rep)
	return rep, nil
}

func (s *Service) fromCache(ctx context.Context, key string) (ledger.Report, bool) {
	if s.R == nil || s.TTL <= 0 {
		return ledger.Report{}, false
	}
	data, err := s.R.Get(ctx, key).Bytes()
	if err != nil {
		return ledger.Report{}, false
	}
	var rep ledger.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return ledger.Report{}, false
	}
	return rep, true
}

func (s *Service) store(ctx context.Context, key string, rep ledger.Report) {
	if s.R == nil || s.TTL <= 0 {
		return
	}
	data, err := json.Marshal(rep)
	if err != nil {
		return
	}
	_ = s.R.Set(ctx, key, data, s.TTL).Err()
}
