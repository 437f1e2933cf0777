package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/c14220110/klinik-apotek-backend/internal/screening/models"
	"github.com/c14220110/klinik-apotek-backend/internal/sequence"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

type AntrianService struct {
	DB  *sql.DB
	Log zerolog.Logger
}

func NewAntrianService(db *sql.DB, log zerolog.Logger) *AntrianService {
	return &AntrianService{DB: db, Log: log}
}

// transisi linear antrian rawat jalan; completed diset oleh pemeriksaan dokter.
var antrianTransisi = map[string]string{
	models.StatusWaiting: models.StatusCalled,
	models.StatusCalled:  models.StatusInProgress,
}

// GetAntrianHariIni mengembalikan antrian rawat jalan hari ini yang belum
// selesai, urut nomor.
func (s *AntrianService) GetAntrianHariIni(ctx context.Context) ([]models.AntrianEntry, error) {
	awal, akhir := rentangHariIni()

	rows, err := s.DB.QueryContext(ctx, `
		SELECT a.id_antrian, a.id_screening, a.id_pasien, p.nama, a.nomor_antrian, a.status
		FROM Antrian a
		JOIN Pasien p ON a.id_pasien = p.id_pasien
		WHERE a.created_at >= ? AND a.created_at < ? AND a.status <> ?
		ORDER BY a.nomor_antrian`,
		awal, akhir, models.StatusCompleted)
	if err != nil {
		return nil, apperr.Persistence("gagal membaca antrian hari ini", err)
	}
	defer rows.Close()

	var list []models.AntrianEntry
	for rows.Next() {
		var e models.AntrianEntry
		if err := rows.Scan(&e.IDAntrian, &e.IDScreening, &e.IDPasien, &e.NamaPasien, &e.NomorAntrian, &e.Status); err != nil {
			return nil, apperr.Persistence("gagal scan antrian", err)
		}
		e.NomorTampil = sequence.Format(e.NomorAntrian)
		list = append(list, e)
	}
	return list, rows.Err()
}

// PanggilPasien memajukan antrian waiting -> called.
func (s *AntrianService) PanggilPasien(ctx context.Context, idAntrian int64) (*models.AntrianEntry, error) {
	return s.majukan(ctx, idAntrian, models.StatusWaiting)
}

// MulaiPemeriksaan memajukan antrian called -> in-progress.
func (s *AntrianService) MulaiPemeriksaan(ctx context.Context, idAntrian int64) (*models.AntrianEntry, error) {
	return s.majukan(ctx, idAntrian, models.StatusCalled)
}

func (s *AntrianService) majukan(ctx context.Context, idAntrian int64, dari string) (*models.AntrianEntry, error) {
	tujuan := antrianTransisi[dari]

	var e models.AntrianEntry
	err := s.DB.QueryRowContext(ctx, `
		SELECT a.id_antrian, a.id_screening, a.id_pasien, p.nama, a.nomor_antrian, a.status
		FROM Antrian a
		JOIN Pasien p ON a.id_pasien = p.id_pasien
		WHERE a.id_antrian = ?`, idAntrian,
	).Scan(&e.IDAntrian, &e.IDScreening, &e.IDPasien, &e.NamaPasien, &e.NomorAntrian, &e.Status)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("antrian dengan id %d tidak ditemukan", idAntrian)
	}
	if err != nil {
		return nil, apperr.Persistence("gagal membaca antrian", err)
	}
	if e.Status != dari {
		return nil, apperr.Conflictf("status antrian saat ini %s, tidak bisa dimajukan ke %s", e.Status, tujuan)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperr.Persistence("gagal memulai transaksi", err)
	}

	// Update kondisional: kalau request lain sudah memajukan antrian ini,
	// affected = 0 dan transisi dianggap konflik.
	res, err := tx.ExecContext(ctx,
		"UPDATE Antrian SET status = ? WHERE id_antrian = ? AND status = ?",
		tujuan, idAntrian, dari,
	)
	if err != nil {
		tx.Rollback()
		return nil, apperr.Persistence("gagal memperbarui antrian", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return nil, apperr.Persistence("gagal memeriksa update antrian", err)
	}
	if affected == 0 {
		tx.Rollback()
		return nil, apperr.Conflictf("antrian sudah berubah status, transisi ke %s dibatalkan", tujuan)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE Screening SET status = ? WHERE id_screening = ?",
		tujuan, e.IDScreening,
	); err != nil {
		tx.Rollback()
		return nil, apperr.Persistence("gagal menyelaraskan status screening", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.Persistence("gagal commit transisi antrian", err)
	}

	e.Status = tujuan
	e.NomorTampil = sequence.Format(e.NomorAntrian)
	return &e, nil
}

func rentangHariIni() (time.Time, time.Time) {
	now := time.Now()
	awal := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return awal, awal.Add(24 * time.Hour)
}
