package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/academe/internal/domain/student"
	"github.com/rpggio/academe/internal/repository"
)

// StudentRepository implements student.Repository for SQLite
type StudentRepository struct {
	db *DB
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create adds a student to the pool
func (r *StudentRepository) Create(ctx context.Context, s *student.Student) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO students (id, name, email, avatar) VALUES (?, ?, ?, ?)`,
		s.ID, s.Name, s.Email, s.Avatar,
	)
	if err != nil {
		return insertErr(err, "student")
	}
	return nil
}

// Get retrieves a student by ID
func (r *StudentRepository) Get(ctx context.Context, id string) (*student.Student, error) {
	var s student.Student
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, avatar FROM students WHERE id = ?`, id,
	).Scan(&s.ID, &s.Name, &s.Email, &s.Avatar)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return &s, nil
}

// List returns every student in insertion order
func (r *StudentRepository) List(ctx context.Context) ([]student.Student, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email, avatar FROM students ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	students := []student.Student{}
	for rows.Next() {
		var s student.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Avatar); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, nil
}
