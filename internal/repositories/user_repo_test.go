package repositories

import (
	"context"
	"testing"

	"blogapi/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestFindByUUIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM users WHERE uuid").WithArgs("u-missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := UserRepository{DB: db}
	_, err = repo.FindByUUID(context.Background(), "u-missing")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	repo := UserRepository{DB: db}
	_, err = repo.Create(context.Background(), userFixture(), "hash")
	if !domain.IsAlreadyExists(err) {
		t.Fatalf("expected AlreadyExistsError, got %v", err)
	}
}

func TestDeactivateMissingUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE users SET is_active = 0").WithArgs("u-missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := UserRepository{DB: db}
	err = repo.DeactivateByUUID(context.Background(), "u-missing")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDeleteReportsAffectedRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM users").WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := UserRepository{DB: db}
	if err := repo.Delete(context.Background(), 5); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}
}
