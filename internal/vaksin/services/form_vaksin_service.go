package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/c14220110/klinik-apotek-backend/internal/sequence"
	"github.com/c14220110/klinik-apotek-backend/internal/vaksin/models"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

type FormVaksinService struct {
	DB  *sql.DB
	Log zerolog.Logger
}

func NewFormVaksinService(db *sql.DB, log zerolog.Logger) *FormVaksinService {
	return &FormVaksinService{DB: db, Log: log}
}

// CreateForm membuat pengajuan formulir vaksin dengan nomor urut harian.
func (s *FormVaksinService) CreateForm(ctx context.Context, req models.CreateFormVaksinRequest) (*models.FormVaksin, error) {
	if req.IDPasien == 0 {
		return nil, apperr.Validationf("id_pasien wajib diisi")
	}
	if strings.TrimSpace(req.JenisVaksin) == "" {
		return nil, apperr.Validationf("jenis_vaksin wajib diisi")
	}

	var cek int
	err := s.DB.QueryRowContext(ctx, "SELECT 1 FROM Pasien WHERE id_pasien = ?", req.IDPasien).Scan(&cek)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("pasien dengan id %d tidak ditemukan", req.IDPasien)
	}
	if err != nil {
		return nil, apperr.Persistence("gagal memeriksa pasien", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperr.Persistence("gagal memulai transaksi", err)
	}

	now := time.Now()
	nomor, err := sequence.Next(ctx, tx, sequence.ScopeFormVaksin, now)
	if err != nil {
		tx.Rollback()
		return nil, apperr.Persistence("gagal alokasi nomor urut form vaksin", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO Form_Vaksin (id_pasien, jenis_vaksin, nomor_urut, status, tanggal, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		req.IDPasien, req.JenisVaksin, nomor, models.StatusDibuat, now, now,
	)
	if err != nil {
		tx.Rollback()
		return nil, apperr.Persistence("gagal menyimpan form vaksin", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, apperr.Persistence("gagal membaca id form vaksin", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.Persistence("gagal commit form vaksin", err)
	}

	return &models.FormVaksin{
		ID: id, IDPasien: req.IDPasien, JenisVaksin: req.JenisVaksin,
		NomorUrut: nomor, Status: models.StatusDibuat, Tanggal: now,
	}, nil
}

// SetDokumen mencatat id dokumen hasil layanan pembuatan dokumen eksternal.
func (s *FormVaksinService) SetDokumen(ctx context.Context, idForm int64, idDokumen string) error {
	if strings.TrimSpace(idDokumen) == "" {
		return apperr.Validationf("id_dokumen wajib diisi")
	}
	res, err := s.DB.ExecContext(ctx,
		"UPDATE Form_Vaksin SET id_dokumen = ?, status = ? WHERE id_form = ?",
		idDokumen, models.StatusDokumenTerbit, idForm,
	)
	if err != nil {
		return apperr.Persistence("gagal mencatat dokumen form vaksin", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.Persistence("gagal memeriksa update form vaksin", err)
	}
	if affected == 0 {
		return apperr.NotFoundf("form vaksin dengan id %d tidak ditemukan", idForm)
	}
	return nil
}

// ListFormHariIni mengembalikan pengajuan form vaksin hari ini, urut nomor.
func (s *FormVaksinService) ListFormHariIni(ctx context.Context) ([]models.FormVaksin, error) {
	now := time.Now()
	awal := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	akhir := awal.Add(24 * time.Hour)

	rows, err := s.DB.QueryContext(ctx, `
		SELECT id_form, id_pasien, jenis_vaksin, nomor_urut, status, id_dokumen, tanggal
		FROM Form_Vaksin WHERE tanggal >= ? AND tanggal < ? ORDER BY nomor_urut`,
		awal, akhir)
	if err != nil {
		return nil, apperr.Persistence("gagal membaca form vaksin hari ini", err)
	}
	defer rows.Close()

	var list []models.FormVaksin
	for rows.Next() {
		var f models.FormVaksin
		if err := rows.Scan(&f.ID, &f.IDPasien, &f.JenisVaksin, &f.NomorUrut, &f.Status, &f.IDDokumen, &f.Tanggal); err != nil {
			return nil, apperr.Persistence("gagal scan form vaksin", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}
