package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ur-campus-api/internal/models"
)

// AssignmentStore answers which facilities a staff member is responsible for.
type AssignmentStore interface {
	FacilityIDsForStaff(ctx context.Context, staffID string) ([]string, error)
	Assign(ctx context.Context, assignment models.FacilityAssignment) error
	Unassign(ctx context.Context, staffID, facilityID string) error
	List(ctx context.Context) ([]models.FacilityAssignment, error)
}

// MemoryAssignmentStore keeps staff assignments in process memory.
type MemoryAssignmentStore struct {
	mu   sync.RWMutex
	rows []models.FacilityAssignment
}

// NewMemoryAssignmentStore seeds the store.
func NewMemoryAssignmentStore(seed []models.FacilityAssignment) *MemoryAssignmentStore {
	return &MemoryAssignmentStore{rows: append([]models.FacilityAssignment(nil), seed...)}
}

func (s *MemoryAssignmentStore) FacilityIDsForStaff(ctx context.Context, staffID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0)
	for _, row := range s.rows {
		if row.StaffID == staffID {
			ids = append(ids, row.FacilityID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryAssignmentStore) Assign(ctx context.Context, assignment models.FacilityAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.StaffID == assignment.StaffID && row.FacilityID == assignment.FacilityID {
			return nil
		}
	}
	s.rows = append(s.rows, assignment)
	return nil
}

func (s *MemoryAssignmentStore) Unassign(ctx context.Context, staffID, facilityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, row := range s.rows {
		if row.StaffID == staffID && row.FacilityID == facilityID {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryAssignmentStore) List(ctx context.Context) ([]models.FacilityAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.FacilityAssignment(nil), s.rows...), nil
}

const assignmentSchema = `CREATE TABLE IF NOT EXISTS facility_assignments (
	staff_id TEXT NOT NULL,
	facility_id TEXT NOT NULL,
	assigned_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (staff_id, facility_id)
)`

// PostgresAssignmentStore reads assignments from the facility_assignments table.
type PostgresAssignmentStore struct {
	db *sqlx.DB
}

// NewPostgresAssignmentStore wraps an open database handle.
func NewPostgresAssignmentStore(db *sqlx.DB) *PostgresAssignmentStore {
	return &PostgresAssignmentStore{db: db}
}

// EnsureSchema creates the facility_assignments table when it is missing.
func (s *PostgresAssignmentStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, assignmentSchema); err != nil {
		return fmt.Errorf("create facility_assignments: %w", err)
	}
	return nil
}

func (s *PostgresAssignmentStore) FacilityIDsForStaff(ctx context.Context, staffID string) ([]string, error) {
	ids := make([]string, 0)
	if err := s.db.SelectContext(ctx, &ids, `SELECT facility_id FROM facility_assignments WHERE staff_id = $1 ORDER BY facility_id`, staffID); err != nil {
		return nil, fmt.Errorf("select assignments: %w", err)
	}
	return ids, nil
}

func (s *PostgresAssignmentStore) Assign(ctx context.Context, assignment models.FacilityAssignment) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO facility_assignments (staff_id, facility_id, assigned_at)
		VALUES (:staff_id, :facility_id, :assigned_at)
		ON CONFLICT (staff_id, facility_id) DO NOTHING`, assignment)
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

func (s *PostgresAssignmentStore) Unassign(ctx context.Context, staffID, facilityID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM facility_assignments WHERE staff_id = $1 AND facility_id = $2`, staffID, facilityID)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresAssignmentStore) List(ctx context.Context) ([]models.FacilityAssignment, error) {
	rows := make([]models.FacilityAssignment, 0)
	if err := s.db.SelectContext(ctx, &rows, `SELECT staff_id, facility_id, assigned_at FROM facility_assignments ORDER BY staff_id, facility_id`); err != nil {
		return nil, fmt.Errorf("select assignments: %w", err)
	}
	return rows, nil
}
