package services

import (
	"time"

	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/core/ports/driven"
)

// Normaliser converts raw transactions into canonical events.
type Normaliser struct {
	now     func() time.Time
	metrics driven.Metrics
}

// NewNormaliser creates a normaliser. now supplies the timestamp for
// records without a creation time; nil uses time.Now.
func NewNormaliser(now func() time.Time) *Normaliser {
	if now == nil {
		now = time.Now
	}
	return &Normaliser{now: now, metrics: driven.NopMetrics{}}
}

// SetMetrics sets the metrics recorder. Nil restores the no-op recorder.
func (n *Normaliser) SetMetrics(m driven.Metrics) {
	if m == nil {
		m = driven.NopMetrics{}
	}
	n.metrics = m
}

// Normalise returns one event per supported transaction, in input order.
// Unsupported types and signings with no moves are dropped.
func (n *Normaliser) Normalise(bundle *domain.Bundle) []domain.Event {
	resolver := NewResolver(bundle.Users, bundle.Rosters, bundle.Players)

	events := make([]domain.Event, 0, len(bundle.Transactions))
	for i := range bundle.Transactions {
		txn := &bundle.Transactions[i]

		var ev domain.Event
		switch txn.Type {
		case domain.TransactionTrade:
			ev = n.trade(resolver, txn)
		case domain.TransactionFreeAgent, domain.TransactionWaiver:
			if s := n.signing(resolver, txn); s != nil {
				ev = s
			}
		}
		if ev == nil {
			continue
		}

		n.metrics.EventNormalised(ev.Kind())
		events = append(events, ev)
	}
	return events
}

func (n *Normaliser) trade(r *Resolver, txn *domain.RawTransaction) *domain.Trade {
	// Unknown rosters are filtered here rather than defaulted.
	actors := make([]domain.Identity, 0, len(txn.RosterIDs))
	for _, id := range txn.DistinctRosters() {
		if owner, ok := r.LookupOwner(id); ok {
			actors = append(actors, owner)
		}
	}

	assets := make([]domain.AssetMove, 0, len(txn.Adds)+len(txn.Drops))
	for _, m := range txn.Adds {
		assets = append(assets, domain.AssetMove{RosterID: m.RosterID, In: r.ResolvePlayer(m.PlayerID).Name})
	}
	for _, m := range txn.Drops {
		assets = append(assets, domain.AssetMove{RosterID: m.RosterID, Out: r.ResolvePlayer(m.PlayerID).Name})
	}

	return &domain.Trade{
		ID:        txn.ID,
		Timestamp: n.timestamp(txn),
		Actors:    actors,
		Assets:    assets,
	}
}

func (n *Normaliser) signing(r *Resolver, txn *domain.RawTransaction) *domain.Signing {
	adds := r.PlayerNames(txn.Adds)
	drops := r.PlayerNames(txn.Drops)
	if len(adds) == 0 && len(drops) == 0 {
		return nil
	}

	actors := []domain.Identity{}
	if id, ok := txn.FirstRoster(); ok {
		actors = append(actors, r.ResolveOwner(id))
	}

	return &domain.Signing{
		ID:        txn.ID,
		Timestamp: n.timestamp(txn),
		Actors:    actors,
		Adds:      adds,
		Drops:     drops,
	}
}

// timestamp falls back to the wall clock, so reruns over records without a
// creation time are not reproducible.
func (n *Normaliser) timestamp(txn *domain.RawTransaction) time.Time {
	if ts, ok := txn.CreatedAt(); ok {
		return ts
	}
	return n.now().UTC()
}
