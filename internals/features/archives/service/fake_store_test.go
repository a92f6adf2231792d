package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"cra_backend/internals/features/appointments/appointments/model"
)

// fakeStore keeps the three tiers in memory and records every call so tests
// can check that deletes only ever follow a successful copy.
type fakeStore struct {
	mu      sync.Mutex
	active  map[uuid.UUID]model.AppointmentModel
	history map[uuid.UUID]model.AppointmentModel
	cold    map[uuid.UUID]model.AppointmentModel
	trace   []string

	failOn map[string]error
	// block, when set, is waited on inside the first select call.
	block chan struct{}
	// beforeDelete runs inside DeleteActive with the lock held.
	beforeDelete func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		active:  map[uuid.UUID]model.AppointmentModel{},
		history: map[uuid.UUID]model.AppointmentModel{},
		cold:    map[uuid.UUID]model.AppointmentModel{},
		failOn:  map[string]error{},
	}
}

var errBoom = errors.New("boom")

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func row(name string, date time.Time, created time.Time) model.AppointmentModel {
	unit := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	return model.AppointmentModel{
		AppointmentID:          uuid.New(),
		AppointmentStudentName: name,
		AppointmentDate:        datatypes.Date(date),
		AppointmentStatus:      model.StatusScheduled,
		AppointmentOrigin:      model.OriginWalkIn,
		AppointmentUnitID:      &unit,
		AppointmentCreatedAt:   created,
		AppointmentUpdatedAt:   created,
	}
}

func (f *fakeStore) record(call string) error {
	f.trace = append(f.trace, call)
	return f.failOn[call]
}

func (f *fakeStore) waitBlock() {
	if f.block != nil {
		b := f.block
		f.block = nil
		f.mu.Unlock()
		<-b
		f.mu.Lock()
	}
}

func sameDay(a datatypes.Date, b time.Time) bool {
	t := time.Time(a)
	return t.Year() == b.Year() && t.Month() == b.Month() && t.Day() == b.Day()
}

func (f *fakeStore) FindActiveByDate(_ context.Context, date time.Time, unit *uuid.UUID) ([]model.AppointmentModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("select_active"); err != nil {
		return nil, err
	}
	f.waitBlock()
	var out []model.AppointmentModel
	for _, r := range f.active {
		if !sameDay(r.AppointmentDate, date) {
			continue
		}
		if unit != nil && (r.AppointmentUnitID == nil || *r.AppointmentUnitID != *unit) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeStore) FindActiveByIDs(_ context.Context, ids []uuid.UUID, unit *uuid.UUID) ([]model.AppointmentModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("select_active"); err != nil {
		return nil, err
	}
	f.waitBlock()
	var out []model.AppointmentModel
	for _, id := range ids {
		r, ok := f.active[id]
		if !ok {
			continue
		}
		if unit != nil && (r.AppointmentUnitID == nil || *r.AppointmentUnitID != *unit) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeStore) FindActiveDatesBefore(_ context.Context, d time.Time) ([]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("select_dates"); err != nil {
		return nil, err
	}
	seen := map[time.Time]struct{}{}
	var out []time.Time
	for _, r := range f.active {
		t := time.Time(r.AppointmentDate)
		if t.Before(d) {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				out = append(out, t)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

func (f *fakeStore) InsertHistory(_ context.Context, rows []model.AppointmentModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("insert_history"); err != nil {
		return err
	}
	for _, r := range rows {
		if _, exists := f.history[r.AppointmentID]; !exists {
			f.history[r.AppointmentID] = r
		}
	}
	return nil
}

func (f *fakeStore) DeleteActive(_ context.Context, ids []uuid.UUID, date *time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("delete_active"); err != nil {
		return 0, err
	}
	if f.beforeDelete != nil {
		f.beforeDelete()
	}
	var n int64
	for _, id := range ids {
		r, ok := f.active[id]
		if !ok {
			continue
		}
		if date != nil && !sameDay(r.AppointmentDate, *date) {
			continue
		}
		delete(f.active, id)
		n++
	}
	return n, nil
}

func (f *fakeStore) FindHistoryIDsBefore(_ context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("select_history_ids"); err != nil {
		return nil, err
	}
	var out []uuid.UUID
	for id, r := range f.history {
		if r.AppointmentCreatedAt.Before(cutoff) {
			out = append(out, id)
		}
	}
	return out, nil
}

// MoveHistoryToCold mirrors the database function: all or nothing.
func (f *fakeStore) MoveHistoryToCold(_ context.Context, ids []uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("move_cold"); err != nil {
		return 0, err
	}
	var n int64
	for _, id := range ids {
		if r, ok := f.history[id]; ok {
			if _, exists := f.cold[id]; !exists {
				f.cold[id] = r
			}
			delete(f.history, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) FindAllHistory(_ context.Context) ([]model.AppointmentModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("select_history"); err != nil {
		return nil, err
	}
	f.waitBlock()
	out := make([]model.AppointmentModel, 0, len(f.history))
	for _, r := range f.history {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppointmentStudentName < out[j].AppointmentStudentName })
	return out, nil
}

func (f *fakeStore) DeleteHistory(_ context.Context, ids []uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("delete_history"); err != nil {
		return 0, err
	}
	var n int64
	for _, id := range ids {
		if _, ok := f.history[id]; ok {
			delete(f.history, id)
			n++
		}
	}
	return n, nil
}

type fakeUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
	store   *fakeStore
}

func (u *fakeUploader) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.store != nil {
		u.store.mu.Lock()
		u.store.trace = append(u.store.trace, "upload")
		u.store.mu.Unlock()
	}
	if u.err != nil {
		return "", u.err
	}
	full := "history-backups/" + key
	if _, exists := u.objects[full]; exists {
		return "", errors.New("object already exists")
	}
	if u.objects == nil {
		u.objects = map[string][]byte{}
	}
	u.objects[full] = data
	return full, nil
}
