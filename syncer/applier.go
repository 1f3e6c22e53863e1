package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/mmdatafocus/pos_sync_backend/config"
	"github.com/sirupsen/logrus"
)

// applyChangeSet applies one entity's created/updated/deleted lists, one
// statement per item, in submission order. There is no batching and no
// rollback across items: a failure partway through leaves the earlier
// writes committed and the client retries the remainder.
func (s *Service) applyChangeSet(ctx context.Context, ent Entity, cs ChangeSet) error {
	now := time.Now()

	for i, raw := range cs.Created {
		rec := ent.Sanitize(raw, now)
		if err := ent.Store.Upsert(ctx, rec); err != nil {
			return fmt.Errorf("%s created[%d] id=%q: %w", ent.Name, i, rec.GetId(), err)
		}
	}

	for i, raw := range cs.Updated {
		rec := ent.Sanitize(raw, now)
		if err := ent.Store.UpdateById(ctx, rec); err != nil {
			return fmt.Errorf("%s updated[%d] id=%q: %w", ent.Name, i, rec.GetId(), err)
		}
	}

	for _, id := range cs.Deleted {
		// Deletion is idempotent for the caller; an already-absent row (or
		// any other delete failure) is logged and skipped.
		if err := ent.Store.DeleteById(ctx, id); err != nil {
			config.LogError(s.log, "syncer", "applyChangeSet", "DeleteById", logrus.Fields{
				"entity": ent.Name,
				"id":     id,
			}, err)
		}
	}

	return nil
}
