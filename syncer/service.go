package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/mmdatafocus/pos_sync_backend/config"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Entity pairs one synchronizable record type with its sanitizer and its
// persistence binding. The set is closed and registered once at startup;
// nothing is resolved by name at request time.
type Entity struct {
	Name     string
	Sanitize func(raw json.RawMessage, now time.Time) Record
	Store    RecordStore
}

// Service is the sync orchestrator. Stateless per call: the only state is
// the client's timestamp parameter and the store behind the entity bindings.
type Service struct {
	log      *logrus.Logger
	entities []Entity
}

// NewService wires the entity registry over the injected DB handle. Order
// of registration fixes push processing order: orders before products.
func NewService(db *gorm.DB, log *logrus.Logger) *Service {
	var products RecordStore = &productStore{db: db}
	if config.ProductRawWrites() {
		products = &productSQLStore{db: db}
	}
	return &Service{
		log: log,
		entities: []Entity{
			{Name: "orders", Sanitize: sanitizeOrder, Store: &orderStore{db: db}},
			{Name: "products", Sanitize: sanitizeProduct, Store: products},
		},
	}
}

// parseSince resolves last_pulled_at as epoch milliseconds, falling back to
// the epoch origin so a first-time client pulls everything.
func parseSince(lastPulledAt string) time.Time {
	ms, err := strconv.ParseInt(lastPulledAt, 10, 64)
	if err != nil {
		return time.UnixMilli(0)
	}
	return time.UnixMilli(ms)
}

// Pull returns every row changed strictly after lastPulledAt, per entity
// type. Entity queries run concurrently; a failing entity (a not-yet-
// migrated table, typically) degrades to an empty bucket instead of failing
// the pull.
func (s *Service) Pull(ctx context.Context, lastPulledAt string) *PullResponse {
	since := parseSince(lastPulledAt)

	buckets := make([][]any, len(s.entities))
	var wg sync.WaitGroup
	for i := range s.entities {
		wg.Add(1)
		go func(i int, ent Entity) {
			defer wg.Done()
			rows, err := ent.Store.FindChangedSince(ctx, since)
			if err != nil {
				config.LogError(s.log, "syncer", "Pull", "FindChangedSince", logrus.Fields{
					"entity": ent.Name,
					"since":  since.UnixMilli(),
				}, err)
				rows = nil
			}
			buckets[i] = rows
		}(i, s.entities[i])
	}
	wg.Wait()

	changes := make(map[string]PullBucket, len(s.entities))
	for i, ent := range s.entities {
		created := buckets[i]
		if created == nil {
			created = []any{}
		}
		changes[ent.Name] = PullBucket{
			Created: created,
			Updated: []any{},
			Deleted: []string{},
		}
	}

	return &PullResponse{
		Changes:   changes,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Push applies the client's change-sets sequentially in registry order, so
// log and error ordering stays deterministic. lastPulledAt is accepted for
// wire compatibility but does not gate the push; writes are last-write-wins.
// The first unrecovered applier error fails the whole push.
func (s *Service) Push(ctx context.Context, req PushRequest, lastPulledAt string) error {
	_ = lastPulledAt

	var unknown []string
	for name := range req {
		if !s.supports(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: %s", ErrEntityNotSupported, unknown[0])
	}

	for _, ent := range s.entities {
		cs, ok := req[ent.Name]
		if !ok {
			continue
		}
		if err := s.applyChangeSet(ctx, ent, cs); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) supports(name string) bool {
	for _, ent := range s.entities {
		if ent.Name == name {
			return true
		}
	}
	return false
}
