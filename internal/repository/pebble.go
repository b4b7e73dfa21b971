package repository

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/pebble"
	"github.com/google/uuid"

	"github.com/salesdesk/order-intake/internal/common"
	"github.com/salesdesk/order-intake/internal/entity"
)

// PebbleStore implements OrderStore on PebbleDB. Records are JSON values
// keyed by order id; listing re-sorts in memory, which is fine at batch
// scale (dozens of emails per run).
type PebbleStore struct {
	db *pebble.DB
}

func NewPebbleStore(dir string) (*PebbleStore, error) {
	d, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &PebbleStore{db: d}, nil
}

func (p *PebbleStore) Close() error { return p.db.Close() }

func (p *PebbleStore) Get(id uuid.UUID) (*entity.Order, error) {
	v, closer, err := p.db.Get([]byte(id.String()))
	if err == pebble.ErrNotFound {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pebble get: %w", err)
	}
	defer closer.Close()

	var o entity.Order
	if err := json.Unmarshal(v, &o); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", id, err)
	}
	return &o, nil
}

func (p *PebbleStore) List() ([]*entity.Order, error) {
	it, err := p.db.NewIter(nil)
	if err != nil {
		return nil, fmt.Errorf("pebble iter: %w", err)
	}
	defer it.Close()

	var out []*entity.Order
	for it.First(); it.Valid(); it.Next() {
		v := append([]byte(nil), it.Value()...)
		var o entity.Order
		if err := json.Unmarshal(v, &o); err != nil {
			return nil, fmt.Errorf("decode order %s: %w", it.Key(), err)
		}
		out = append(out, &o)
	}
	sortByProcessedAtDesc(out)
	return out, nil
}

func (p *PebbleStore) Upsert(order *entity.Order) error {
	v, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order %s: %w", order.OrderID, err)
	}
	if err := p.db.Set([]byte(order.OrderID.String()), v, pebble.Sync); err != nil {
		return fmt.Errorf("pebble set: %w", err)
	}
	return nil
}

func (p *PebbleStore) Clear() error {
	it, err := p.db.NewIter(nil)
	if err != nil {
		return fmt.Errorf("pebble iter: %w", err)
	}
	var keys [][]byte
	for it.First(); it.Valid(); it.Next() {
		keys = append(keys, append([]byte(nil), it.Key()...))
	}
	if err := it.Close(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	wb := p.db.NewBatch()
	defer wb.Close()
	for _, k := range keys {
		if err := wb.Delete(k, nil); err != nil {
			return fmt.Errorf("pebble delete: %w", err)
		}
	}
	return wb.Commit(pebble.Sync)
}
