package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tuition-admin/app/models"
)

// GetStudents loads every student with their assigned fees, ordered by name.
func GetStudents(db *sql.DB) ([]models.Student, error) {
	rows, err := db.Query(`
		SELECT id, student_code, first_name, last_name, grade, status,
		       contact_email, enrollment_date, created_at, updated_at
		FROM students
		ORDER BY first_name, last_name`)
	if err != nil {
		return nil, fmt.Errorf("querying students: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	order := make(map[string]int)
	for rows.Next() {
		var s models.Student
		err := rows.Scan(
			&s.ID, &s.StudentCode, &s.FirstName, &s.LastName, &s.Grade,
			&s.Status, &s.ContactEmail, &s.EnrollmentDate, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning student: %w", err)
		}
		order[s.ID] = len(students)
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := attachFees(db, students, order); err != nil {
		return nil, err
	}
	return students, nil
}

// GetStudentByID loads one student with their assigned fees.
func GetStudentByID(db *sql.DB, id string) (*models.Student, error) {
	var s models.Student
	err := db.QueryRow(`
		SELECT id, student_code, first_name, last_name, grade, status,
		       contact_email, enrollment_date, created_at, updated_at
		FROM students WHERE id = $1`, id).Scan(
		&s.ID, &s.StudentCode, &s.FirstName, &s.LastName, &s.Grade,
		&s.Status, &s.ContactEmail, &s.EnrollmentDate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	students := []models.Student{s}
	if err := attachFees(db, students, map[string]int{s.ID: 0}); err != nil {
		return nil, err
	}
	return &students[0], nil
}

func attachFees(db *sql.DB, students []models.Student, order map[string]int) error {
	if len(students) == 0 {
		return nil
	}

	rows, err := db.Query(`
		SELECT student_id, category, amount, due_date
		FROM assigned_fees
		ORDER BY student_id, position`)
	if err != nil {
		return fmt.Errorf("querying assigned fees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var studentID string
		var fee models.AssignedFee
		var dueDate sql.NullTime
		if err := rows.Scan(&studentID, &fee.Category, &fee.Amount, &dueDate); err != nil {
			return fmt.Errorf("scanning assigned fee: %w", err)
		}
		if dueDate.Valid {
			d := dueDate.Time
			fee.DueDate = &d
		}
		if i, ok := order[studentID]; ok {
			students[i].AssignedFees = append(students[i].AssignedFees, fee)
		}
	}
	return rows.Err()
}

// CreateStudent inserts a student and their assigned fees in one transaction.
func CreateStudent(db *sql.DB, s *models.Student) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = models.StudentActive
	}
	if s.EnrollmentDate.IsZero() {
		s.EnrollmentDate = time.Now()
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO students (id, student_code, first_name, last_name, grade,
			status, contact_email, enrollment_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		s.ID, s.StudentCode, s.FirstName, s.LastName, string(s.Grade),
		s.Status, s.ContactEmail, s.EnrollmentDate,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting student: %w", err)
	}

	if err := insertFees(tx, s.ID, s.AssignedFees); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateStudent replaces a student's record and fee assignments.
func UpdateStudent(db *sql.DB, s *models.Student) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE students
		SET student_code = $1, first_name = $2, last_name = $3, grade = $4,
		    status = $5, contact_email = $6, enrollment_date = $7, updated_at = NOW()
		WHERE id = $8`,
		s.StudentCode, s.FirstName, s.LastName, string(s.Grade),
		s.Status, s.ContactEmail, s.EnrollmentDate, s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating student: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil || n == 0 {
		return sql.ErrNoRows
	}

	if _, err := tx.Exec(`DELETE FROM assigned_fees WHERE student_id = $1`, s.ID); err != nil {
		return fmt.Errorf("clearing assigned fees: %w", err)
	}
	if err := insertFees(tx, s.ID, s.AssignedFees); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteStudent removes a student and their fee assignments. Payments are
// kept on purpose; they become orphans surfaced by the report layer.
func DeleteStudent(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting student: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil || n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AssignFees appends fee lines to a student's existing assignments.
func AssignFees(db *sql.DB, studentID string, fees []models.AssignedFee) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var position int
	if err := tx.QueryRow(`
		SELECT COALESCE(MAX(position) + 1, 0) FROM assigned_fees WHERE student_id = $1`,
		studentID).Scan(&position); err != nil {
		return fmt.Errorf("reading fee position: %w", err)
	}

	for i, fee := range fees {
		_, err := tx.Exec(`
			INSERT INTO assigned_fees (id, student_id, category, amount, due_date, position)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.NewString(), studentID, fee.Category, fee.Amount, fee.DueDate, position+i,
		)
		if err != nil {
			return fmt.Errorf("inserting assigned fee: %w", err)
		}
	}
	return tx.Commit()
}

func insertFees(tx *sql.Tx, studentID string, fees []models.AssignedFee) error {
	for i, fee := range fees {
		_, err := tx.Exec(`
			INSERT INTO assigned_fees (id, student_id, category, amount, due_date, position)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.NewString(), studentID, fee.Category, fee.Amount, fee.DueDate, i,
		)
		if err != nil {
			return fmt.Errorf("inserting assigned fee: %w", err)
		}
	}
	return nil
}
