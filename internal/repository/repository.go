package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"gitlab.com/dirk.krummacker/contact-directory/internal/model"
)

// ErrNotFound is returned when no contact matches the lookup.
var ErrNotFound = errors.New("contact not found")

// ErrConflict is returned when a write would give two contacts the same email address.
var ErrConflict = errors.New("email already exists")

// Session is the database handle a single request works with. In production this is a
// *sqlx.Conn taken from the pool for the duration of the request; *sqlx.DB satisfies it as well.
type Session interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// Contacts executes the queries on the contacts table.
type Contacts struct {
	dialect Dialect
	columns string
}

// NewContacts returns a repository that writes SQL for the given dialect.
func NewContacts(dialect Dialect) *Contacts {
	return &Contacts{
		dialect: dialect,
		columns: strings.Join(ContactsTable.ColumnNames(), ", "),
	}
}

// Dialect returns the SQL dialect of the repository.
func (r *Contacts) Dialect() Dialect {
	return r.dialect
}

// Create inserts a new contact and returns it with the id assigned by the database.
func (r *Contacts) Create(ctx context.Context, s Session, p model.ContactPayload) (model.Contact, error) {
	query := `
		INSERT INTO contacts (first_name, last_name, email, phone, birthday, other)
		VALUES (?, ?, ?, ?, ?, ?)`
	args := []any{p.FirstName, p.LastName, p.Email, p.Phone, p.Birthday, p.Other}

	var id int64
	if r.dialect.returnsInsertID() {
		result, err := s.ExecContext(ctx, r.dialect.Rebind(query), args...)
		if err != nil {
			return model.Contact{}, r.writeError(err, "insert contact")
		}
		id, err = result.LastInsertId()
		if err != nil {
			return model.Contact{}, errors.Wrap(err, "read id of inserted contact")
		}
	} else {
		err := s.QueryRowxContext(ctx, r.dialect.Rebind(query+" RETURNING id"), args...).Scan(&id)
		if err != nil {
			return model.Contact{}, r.writeError(err, "insert contact")
		}
	}
	return p.ToContact(id), nil
}

// FindByID returns the contact with the given id.
func (r *Contacts) FindByID(ctx context.Context, s Session, id int64) (model.Contact, error) {
	return r.getOne(ctx, s, "id", id, "")
}

// FindByEmail returns the contact with the given email address.
func (r *Contacts) FindByEmail(ctx context.Context, s Session, email string) (model.Contact, error) {
	return r.getOne(ctx, s, "email", email, "")
}

// FindByFirstName returns all contacts with exactly this first name, ordered by id.
func (r *Contacts) FindByFirstName(ctx context.Context, s Session, name string) ([]model.Contact, error) {
	return r.selectWhere(ctx, s, "first_name", name)
}

// FindByLastName returns all contacts with exactly this last name, ordered by id.
func (r *Contacts) FindByLastName(ctx context.Context, s Session, name string) ([]model.Contact, error) {
	return r.selectWhere(ctx, s, "last_name", name)
}

// List returns one page of contacts ordered by id.
func (r *Contacts) List(ctx context.Context, s Session, limit, offset int) ([]model.Contact, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM contacts
		ORDER BY id
		LIMIT ?
		OFFSET ?`, r.columns)
	contacts := []model.Contact{}
	if err := sqlx.SelectContext(ctx, s, &contacts, r.dialect.Rebind(query), limit, offset); err != nil {
		return nil, errors.Wrap(err, "select contacts")
	}
	return contacts, nil
}

// FindUpcomingBirthdays returns one page of the contacts whose birthday, regardless of the year,
// is today or within the given number of days after today. The result is ordered by id.
func (r *Contacts) FindUpcomingBirthdays(ctx context.Context, s Session, today time.Time, days, limit, offset int) ([]model.Contact, error) {
	query, args, err := sqlx.In(fmt.Sprintf(`
		SELECT %s
		FROM contacts
		WHERE EXTRACT(MONTH FROM birthday) * 100 + EXTRACT(DAY FROM birthday) IN (?)
		ORDER BY id
		LIMIT ?
		OFFSET ?`, r.columns), UpcomingMonthDays(today, days), limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "expand birthday window")
	}
	contacts := []model.Contact{}
	if err := sqlx.SelectContext(ctx, s, &contacts, r.dialect.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "select contacts by upcoming birthday")
	}
	return contacts, nil
}

// Update replaces all fields of the contact with the given id and returns the new version.
func (r *Contacts) Update(ctx context.Context, s Session, id int64, p model.ContactPayload) (model.Contact, error) {
	var updated model.Contact
	err := r.inTx(ctx, s, func(tx *sqlx.Tx) error {
		if _, err := r.getOne(ctx, tx, "id", id, "FOR UPDATE"); err != nil {
			return err
		}
		query := `
			UPDATE contacts
			SET first_name = ?, last_name = ?, email = ?, phone = ?, birthday = ?, other = ?
			WHERE id = ?`
		_, err := tx.ExecContext(ctx, r.dialect.Rebind(query),
			p.FirstName, p.LastName, p.Email, p.Phone, p.Birthday, p.Other, id)
		if err != nil {
			return r.writeError(err, "update contact")
		}
		updated = p.ToContact(id)
		return nil
	})
	return updated, err
}

// Delete removes the contact with the given id and returns its last state.
func (r *Contacts) Delete(ctx context.Context, s Session, id int64) (model.Contact, error) {
	var deleted model.Contact
	err := r.inTx(ctx, s, func(tx *sqlx.Tx) error {
		contact, err := r.getOne(ctx, tx, "id", id, "FOR UPDATE")
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM contacts WHERE id = ?`), id); err != nil {
			return errors.Wrap(err, "delete contact")
		}
		deleted = contact
		return nil
	})
	return deleted, err
}

// getOne selects a single contact by an indexed column. The column name is never user input.
func (r *Contacts) getOne(ctx context.Context, q sqlx.QueryerContext, column string, value any, lock string) (model.Contact, error) {
	query := fmt.Sprintf(`SELECT %s FROM contacts WHERE %s = ? %s`, r.columns, column, lock)
	var contact model.Contact
	if err := sqlx.GetContext(ctx, q, &contact, r.dialect.Rebind(strings.TrimSpace(query)), value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Contact{}, ErrNotFound
		}
		return model.Contact{}, errors.Wrapf(err, "select contact by %s", column)
	}
	return contact, nil
}

func (r *Contacts) selectWhere(ctx context.Context, q sqlx.QueryerContext, column string, value any) ([]model.Contact, error) {
	query := fmt.Sprintf(`SELECT %s FROM contacts WHERE %s = ? ORDER BY id`, r.columns, column)
	contacts := []model.Contact{}
	if err := sqlx.SelectContext(ctx, q, &contacts, r.dialect.Rebind(query), value); err != nil {
		return nil, errors.Wrapf(err, "select contacts by %s", column)
	}
	return contacts, nil
}

// inTx runs fn in a transaction that is committed if fn succeeds and rolled back otherwise.
func (r *Contacts) inTx(ctx context.Context, s Session, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback() //nolint:errcheck
	if err := fn(tx); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "commit transaction")
}

func (r *Contacts) writeError(err error, action string) error {
	if r.dialect.IsUniqueViolation(err) {
		return ErrConflict
	}
	return errors.Wrap(err, action)
}
