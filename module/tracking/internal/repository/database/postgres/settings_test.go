package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Patrice250/MyCabinet/module/tracking/domain"
)

func TestSettingsGet_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{"safe_zone_radius", "gps_drift_threshold"}).
		AddRow(0.02, 0.005)
	mock.ExpectQuery(`SELECT safe_zone_radius, gps_drift_threshold FROM safe_zone_settings WHERE id = 1`).
		WillReturnRows(rows)

	repo := NewSettingsRepo(db)
	policy, err := repo.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if policy.RadiusDegrees != 0.02 {
		t.Errorf("expected 0.02, got %f", policy.RadiusDegrees)
	}
	if policy.DriftDegrees != 0.005 {
		t.Errorf("expected 0.005, got %f", policy.DriftDegrees)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSettingsGet_Unset(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{"safe_zone_radius", "gps_drift_threshold"})
	mock.ExpectQuery(`SELECT safe_zone_radius, gps_drift_threshold FROM safe_zone_settings`).
		WillReturnRows(rows)

	repo := NewSettingsRepo(db)
	_, err = repo.Get(context.Background())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSettingsUpsert_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`INSERT INTO safe_zone_settings`).
		WithArgs(0.02, 0.005).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewSettingsRepo(db)
	if err := repo.Upsert(context.Background(), 0.02, 0.005); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSettingsUpsert_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`INSERT INTO safe_zone_settings`).
		WithArgs(0.02, 0.005).
		WillReturnError(sqlmock.ErrCancelled)

	repo := NewSettingsRepo(db)
	if err := repo.Upsert(context.Background(), 0.02, 0.005); err == nil {
		t.Fatal("expected error")
	}
}
