package firestore

import (
	"fmt"

	"cloud.google.com/go/firestore"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// unitOfWork is the state of one transaction attempt. Firestore rejects reads
// issued after a write, so documents are read through the cache and every write
// is buffered until flush.
type unitOfWork struct {
	client *firestore.Client
	tx     *firestore.Transaction

	rides   map[string]*domain.RideRequest
	matches map[string]*domain.Match

	// pending holds buffered writes in the order they were made.
	pending []write
	dirty   map[string]bool
}

type write struct {
	ref    *firestore.DocumentRef
	create bool
}

func newUnitOfWork(client *firestore.Client, tx *firestore.Transaction) *unitOfWork {
	return &unitOfWork{
		client:  client,
		tx:      tx,
		rides:   make(map[string]*domain.RideRequest),
		matches: make(map[string]*domain.Match),
		dirty:   make(map[string]bool),
	}
}

func (u *unitOfWork) ride(id string) (*domain.RideRequest, error) {
	if r, ok := u.rides[id]; ok {
		return r, nil
	}
	snap, err := u.tx.Get(u.client.Collection(ridesCollection).Doc(id))
	if err != nil {
		return nil, translate(err)
	}
	var doc rideDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}
	r := doc.toDomain(snap.Ref.ID)
	u.rides[id] = r
	return r, nil
}

func (u *unitOfWork) match(id string) (*domain.Match, error) {
	if m, ok := u.matches[id]; ok {
		return m, nil
	}
	snap, err := u.tx.Get(u.client.Collection(matchesCollection).Doc(id))
	if err != nil {
		return nil, translate(err)
	}
	var doc matchDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}
	m := doc.toDomain(snap.Ref.ID)
	u.matches[id] = m
	return m, nil
}

func (u *unitOfWork) putRide(r *domain.RideRequest, create bool) {
	u.rides[r.ID] = r
	u.markDirty(ridesCollection+"/"+r.ID, u.client.Collection(ridesCollection).Doc(r.ID), create)
}

func (u *unitOfWork) putMatch(m *domain.Match, create bool) {
	u.matches[m.ID] = m
	u.markDirty(matchesCollection+"/"+m.ID, u.client.Collection(matchesCollection).Doc(m.ID), create)
}

func (u *unitOfWork) markDirty(key string, ref *firestore.DocumentRef, create bool) {
	if u.dirty[key] {
		return
	}
	u.dirty[key] = true
	u.pending = append(u.pending, write{ref: ref, create: create})
}

// flush hands every buffered write to the transaction.
func (u *unitOfWork) flush() error {
	for _, w := range u.pending {
		data, err := u.data(w)
		if err != nil {
			return err
		}
		if w.create {
			err = u.tx.Create(w.ref, data)
		} else {
			err = u.tx.Set(w.ref, data)
		}
		if err != nil {
			return translate(err)
		}
	}
	return nil
}

func (u *unitOfWork) data(w write) (any, error) {
	switch w.ref.Parent.ID {
	case ridesCollection:
		return toRideDoc(u.rides[w.ref.ID]), nil
	case matchesCollection:
		return toMatchDoc(u.matches[w.ref.ID]), nil
	}
	return nil, fmt.Errorf("firestore: unexpected collection %q", w.ref.Parent.ID)
}

type txRepos struct {
	s   *Store
	uow *unitOfWork
}

func (t *txRepos) Rides() repository.RideRepository    { return &rideRepo{s: t.s, uow: t.uow} }
func (t *txRepos) Matches() repository.MatchRepository { return &matchRepo{s: t.s, uow: t.uow} }
