package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/avaolo/gatekeeper/internal/models"
)

func setupFieldMock(t *testing.T) (*PostgresFieldRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresFieldRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestListByFarmer(t *testing.T) {
	repo, mock, cleanup := setupFieldMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "farmer", "name", "area_ha", "crop"}).
		AddRow("f1", "Peter", "North block", 2.5, "Semillon").
		AddRow("f2", "Peter", "South block", 1.2, "")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, farmer, name, area_ha, crop FROM fields WHERE farmer = $1 ORDER BY name`)).
		WithArgs("Peter").
		WillReturnRows(rows)

	fields, err := repo.ListByFarmer(context.Background(), "Peter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Name != "North block" || fields[0].AreaHa != 2.5 {
		t.Errorf("unexpected first field: %+v", fields[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListByFarmer_Empty(t *testing.T) {
	repo, mock, cleanup := setupFieldMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, farmer, name, area_ha, crop FROM fields WHERE farmer = $1 ORDER BY name`)).
		WithArgs("Tine").
		WillReturnRows(sqlmock.NewRows([]string{"id", "farmer", "name", "area_ha", "crop"}))

	fields, err := repo.ListByFarmer(context.Background(), "Tine")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(fields) != 0 {
		t.Errorf("expected 0 fields, got %d", len(fields))
	}
}

func TestListByFarmer_QueryError(t *testing.T) {
	repo, mock, cleanup := setupFieldMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, farmer, name, area_ha, crop FROM fields WHERE farmer = $1 ORDER BY name`)).
		WithArgs("Peter").
		WillReturnError(errors.New("query failed"))

	if _, err := repo.ListByFarmer(context.Background(), "Peter"); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, cleanup := setupFieldMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, farmer, name, area_ha, crop FROM fields WHERE id = $1 AND farmer = $2`)).
		WithArgs("f1", "Peter").
		WillReturnRows(sqlmock.NewRows([]string{"id", "farmer", "name", "area_ha", "crop"}).
			AddRow("f1", "Peter", "North block", 2.5, "Semillon"))

	field, err := repo.GetByID(context.Background(), "Peter", "f1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if field.ID != "f1" || field.Crop != "Semillon" {
		t.Errorf("unexpected field: %+v", field)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupFieldMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, farmer, name, area_ha, crop FROM fields WHERE id = $1 AND farmer = $2`)).
		WithArgs("missing", "Peter").
		WillReturnRows(sqlmock.NewRows([]string{"id", "farmer", "name", "area_ha", "crop"}))

	_, err := repo.GetByID(context.Background(), "Peter", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetByID_OtherFarmersField(t *testing.T) {
	repo, mock, cleanup := setupFieldMock(t)
	defer cleanup()

	// The ownership filter means another farmer's field id scans no rows.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, farmer, name, area_ha, crop FROM fields WHERE id = $1 AND farmer = $2`)).
		WithArgs("f1", "Tine").
		WillReturnRows(sqlmock.NewRows([]string{"id", "farmer", "name", "area_ha", "crop"}))

	_, err := repo.GetByID(context.Background(), "Tine", "f1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreate(t *testing.T) {
	repo, mock, cleanup := setupFieldMock(t)
	defer cleanup()

	field := models.Field{ID: "f3", Farmer: "Tine", Name: "Terrace", AreaHa: 0.8, Crop: "Vitovska"}
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO fields (id, farmer, name, area_ha, crop) VALUES ($1, $2, $3, $4, $5)`)).
		WithArgs(field.ID, field.Farmer, field.Name, field.AreaHa, field.Crop).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), field); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCreate_Error(t *testing.T) {
	repo, mock, cleanup := setupFieldMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO fields (id, farmer, name, area_ha, crop) VALUES ($1, $2, $3, $4, $5)`)).
		WillReturnError(errors.New("insert failed"))

	err := repo.Create(context.Background(), models.Field{ID: "f4", Farmer: "Peter", Name: "x", AreaHa: 1})
	if err == nil {
		t.Error("expected error, got nil")
	}
}
