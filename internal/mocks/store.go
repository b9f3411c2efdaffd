// Package mocks provides in-memory implementations of the repository
// contracts, the transactor and the token store. The repositories share one
// Store so cascades, uniqueness and foreign keys behave like the database.
package mocks

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/repository"
	"hospital-management-api/pkg/apperror"

	"gorm.io/gorm"
)

var errFK = apperror.Conflict("referenced resource does not exist or is still in use")

type tables struct {
	users          map[uint]entity.User
	departments    map[uint]entity.Department
	doctors        map[uint]entity.Doctor
	patients       map[uint]entity.Patient
	appointments   map[uint]entity.Appointment
	medicalRecords map[uint]entity.MedicalRecord
	auditLogs      map[uint]entity.AuditLog
	nextID         uint
}

func newTables() tables {
	return tables{
		users:          map[uint]entity.User{},
		departments:    map[uint]entity.Department{},
		doctors:        map[uint]entity.Doctor{},
		patients:       map[uint]entity.Patient{},
		appointments:   map[uint]entity.Appointment{},
		medicalRecords: map[uint]entity.MedicalRecord{},
		auditLogs:      map[uint]entity.AuditLog{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (t tables) clone() tables {
	return tables{
		users:          cloneMap(t.users),
		departments:    cloneMap(t.departments),
		doctors:        cloneMap(t.doctors),
		patients:       cloneMap(t.patients),
		appointments:   cloneMap(t.appointments),
		medicalRecords: cloneMap(t.medicalRecords),
		auditLogs:      cloneMap(t.auditLogs),
		nextID:         t.nextID,
	}
}

// Store is a goroutine-safe in-memory database.
type Store struct {
	mu   sync.Mutex
	data tables

	// FailWith, when set, is returned by every repository call.
	FailWith error
}

func NewStore() *Store {
	return &Store{data: newTables()}
}

func (s *Store) id() uint {
	s.data.nextID++
	return s.data.nextID
}

func (s *Store) fail() error {
	return s.FailWith
}

func sortedKeys[V any](m map[uint]V) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func eqPtr(a, b *uint) bool {
	return a != nil && b != nil && *a == *b
}

// Transactor runs fn against the store and restores the previous state when fn fails.
type Transactor struct {
	store *Store
	// Commits counts successful transactions.
	Commits int
	// Rollbacks counts failed transactions.
	Rollbacks int
}

func (s *Store) Transactor() *Transactor {
	return &Transactor{store: s}
}

func (t *Transactor) Conn(ctx context.Context) *gorm.DB {
	return nil
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	t.store.mu.Lock()
	snapshot := t.store.data.clone()
	t.store.mu.Unlock()

	if err := fn(nil); err != nil {
		t.store.mu.Lock()
		t.store.data = snapshot
		t.store.mu.Unlock()
		t.Rollbacks++
		return err
	}
	t.Commits++
	return nil
}

var _ repository.Transactor = (*Transactor)(nil)

// AuditLogs returns every audit entry in insertion order.
func (s *Store) AuditLogs() []entity.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.AuditLog, 0, len(s.data.auditLogs))
	for _, id := range sortedKeys(s.data.auditLogs) {
		out = append(out, s.data.auditLogs[id])
	}
	return out
}

// Counts reports the number of rows per table, for asserting cascades.
func (s *Store) Counts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]int{
		"users":           len(s.data.users),
		"departments":     len(s.data.departments),
		"doctors":         len(s.data.doctors),
		"patients":        len(s.data.patients),
		"appointments":    len(s.data.appointments),
		"medical_records": len(s.data.medicalRecords),
		"audit_logs":      len(s.data.auditLogs),
	}
}

func stamp(created, updated *time.Time) {
	now := time.Now().UTC()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

var errNotStored = errors.New("mocks: entity has no id")
