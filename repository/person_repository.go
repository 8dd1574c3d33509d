package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"personDirectory/models"
)

const personColumns = `username, email, firstname, lastname, biography, occupation`

// ErrTableExists is returned by CreateTable when the person table is
// already present.
var ErrTableExists = errors.New("person table already exists")

type PersonRepository struct {
	db *sql.DB
}

func NewPersonRepository(db *sql.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// CreateTable creates the `person` table with its six text columns.
// It fails if the table already exists; callers that need a fresh table
// call DropTable first.
func (r *PersonRepository) CreateTable(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `CREATE TABLE person (
        username TEXT,
        email TEXT,
        firstname TEXT,
        lastname TEXT,
        biography TEXT,
        occupation TEXT
    )`)
	if err != nil {
		// The statement is hardcoded, so a generic SQL error here means the
		// table is already present.
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrError {
			return ErrTableExists
		}
		return err
	}
	return nil
}

// DropTable removes the `person` table if present. Dropping a table that
// does not exist is not an error.
func (r *PersonRepository) DropTable(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `DROP TABLE IF EXISTS person`)
	return err
}

// InsertOne appends a single person row.
func (r *PersonRepository) InsertOne(ctx context.Context, p models.Person) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `INSERT INTO person (`+personColumns+`) VALUES (?,?,?,?,?,?)`,
		p.Username, p.Email, p.FirstName, p.LastName, p.Biography, p.Occupation)
	return err
}

// InsertMany appends all given rows in a single transaction. The batch is
// all-or-nothing: a failing row rolls back every row inserted before it.
func (r *PersonRepository) InsertMany(ctx context.Context, people []models.Person) error {
	if len(people) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO person (`+personColumns+`) VALUES (?,?,?,?,?,?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range people {
		if _, err := stmt.ExecContext(ctx, p.Username, p.Email, p.FirstName, p.LastName, p.Biography, p.Occupation); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// FetchAll returns every row ordered ascending by lastname. SQLite's default
// BINARY collation applies, so ordering is case-sensitive codepoint order.
func (r *PersonRepository) FetchAll(ctx context.Context) ([]models.Person, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+personColumns+` FROM person ORDER BY lastname`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Person{}
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.Username, &p.Email, &p.FirstName, &p.LastName, &p.Biography, &p.Occupation); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByLastNameExact returns the first row whose lastname equals the given
// value. The comparison is case-sensitive. Returns (nil, nil) when no row
// matches.
func (r *PersonRepository) FindByLastNameExact(ctx context.Context, lastname string) (*models.Person, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p models.Person
	err := r.db.QueryRowContext(ctx, `SELECT `+personColumns+` FROM person WHERE lastname = ? LIMIT 1`, lastname).
		Scan(&p.Username, &p.Email, &p.FirstName, &p.LastName, &p.Biography, &p.Occupation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// FindByBiographyContains returns the first row whose biography contains the
// given substring. LIKE makes the match case-insensitive for ASCII. Returns
// (nil, nil) when no row matches.
func (r *PersonRepository) FindByBiographyContains(ctx context.Context, substr string) (*models.Person, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p models.Person
	err := r.db.QueryRowContext(ctx, `SELECT `+personColumns+` FROM person WHERE biography LIKE ? LIMIT 1`, "%"+substr+"%").
		Scan(&p.Username, &p.Email, &p.FirstName, &p.LastName, &p.Biography, &p.Occupation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// FindByLastNameContains returns (firstname, lastname) for every row whose
// lastname contains the given substring, ordered ascending by firstname.
func (r *PersonRepository) FindByLastNameContains(ctx context.Context, substr string) ([]models.PersonName, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT firstname, lastname FROM person WHERE lastname LIKE ? ORDER BY firstname`, "%"+substr+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.PersonName{}
	for rows.Next() {
		var n models.PersonName
		if err := rows.Scan(&n.FirstName, &n.LastName); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
