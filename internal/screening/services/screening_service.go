package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rs/zerolog"

	pservices "github.com/c14220110/klinik-apotek-backend/internal/pendaftaran/services"
	"github.com/c14220110/klinik-apotek-backend/internal/screening/models"
	"github.com/c14220110/klinik-apotek-backend/internal/sequence"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

type ScreeningService struct {
	DB  *sql.DB
	Log zerolog.Logger
}

func NewScreeningService(db *sql.DB, log zerolog.Logger) *ScreeningService {
	return &ScreeningService{DB: db, Log: log}
}

// CreateScreening menyimpan screening baru beserta nomor antrian rawat jalan.
// Alokasi nomor, pembaruan BPJS pasien, baris Screening, baris Antrian dan
// upsert alergi berjalan dalam satu transaksi: gagal di tengah berarti
// semuanya batal, tidak ada screening yatim tanpa antrian.
func (s *ScreeningService) CreateScreening(ctx context.Context, req models.CreateScreeningRequest) (*models.Screening, error) {
	if req.IDPasien == 0 {
		return nil, apperr.Validationf("id_pasien wajib diisi")
	}
	if strings.TrimSpace(req.Keluhan) == "" {
		return nil, apperr.Validationf("keluhan wajib diisi")
	}

	var cek int
	err := s.DB.QueryRowContext(ctx, "SELECT 1 FROM Pasien WHERE id_pasien = ?", req.IDPasien).Scan(&cek)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("pasien dengan id %d tidak ditemukan", req.IDPasien)
	}
	if err != nil {
		return nil, apperr.Persistence("gagal memeriksa pasien", err)
	}

	perbaruiBPJS := req.IsBPJSAktif && req.NoBPJS != nil && *req.NoBPJS != "" && req.PerbaruiBPJS

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperr.Persistence("gagal memulai transaksi", err)
	}

	now := time.Now()

	if perbaruiBPJS {
		// Nomor BPJS harus unik antar pasien (pasien sendiri dikecualikan).
		// Pemeriksaan berjalan di dalam transaksi; balapan yang tetap lolos
		// ditangkap indeks unik no_bpjs dan dipetakan ke konflik di bawah.
		var lain int64
		err := tx.QueryRowContext(ctx,
			"SELECT id_pasien FROM Pasien WHERE no_bpjs = ? AND id_pasien <> ?",
			*req.NoBPJS, req.IDPasien,
		).Scan(&lain)
		if err == nil {
			tx.Rollback()
			return nil, apperr.Conflictf("nomor BPJS %s sudah terdaftar pada pasien lain", *req.NoBPJS)
		}
		if err != sql.ErrNoRows {
			tx.Rollback()
			return nil, apperr.Persistence("gagal memeriksa nomor BPJS", err)
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE Pasien SET is_bpjs = 1, no_bpjs = ?, updated_at = ? WHERE id_pasien = ?",
			*req.NoBPJS, now, req.IDPasien,
		); err != nil {
			tx.Rollback()
			if apperr.IsDuplicateKey(err) {
				return nil, apperr.Conflictf("nomor BPJS %s sudah terdaftar pada pasien lain", *req.NoBPJS)
			}
			return nil, apperr.Persistence("gagal memperbarui BPJS pasien", err)
		}
	}

	nomor, err := sequence.Next(ctx, tx, sequence.ScopeRawatJalan, now)
	if err != nil {
		tx.Rollback()
		return nil, apperr.Persistence("gagal alokasi nomor antrian", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO Screening
			(id_pasien, keluhan, suhu_tubuh, tensi, detak_nadi, laju_respirasi, berat_badan, tinggi_badan, lingkar_perut, saturasi_oksigen, is_bpjs_aktif, status, nomor_antrian, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.IDPasien, req.Keluhan, req.SuhuTubuh, req.Tensi, req.DetakNadi, req.LajuRespirasi,
		req.BeratBadan, req.TinggiBadan, req.LingkarPerut, req.SaturasiOksigen,
		req.IsBPJSAktif, models.StatusWaiting, nomor, now,
	)
	if err != nil {
		tx.Rollback()
		return nil, apperr.Persistence("gagal menyimpan screening", err)
	}
	idScreening, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, apperr.Persistence("gagal membaca id screening", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO Antrian (id_screening, id_pasien, nomor_antrian, status, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		idScreening, req.IDPasien, nomor, models.StatusWaiting, now,
	); err != nil {
		tx.Rollback()
		return nil, apperr.Persistence("gagal menyimpan antrian", err)
	}

	if err := pservices.UpsertAlergiTx(ctx, tx, req.IDPasien, req.Alergi); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.Persistence("gagal commit screening", err)
	}

	s.Log.Info().
		Int64("id_screening", idScreening).
		Int64("id_pasien", req.IDPasien).
		Int("nomor_antrian", nomor).
		Msg("screening dibuat")

	return &models.Screening{
		ID:              idScreening,
		IDPasien:        req.IDPasien,
		Keluhan:         req.Keluhan,
		SuhuTubuh:       req.SuhuTubuh,
		Tensi:           req.Tensi,
		DetakNadi:       req.DetakNadi,
		LajuRespirasi:   req.LajuRespirasi,
		BeratBadan:      req.BeratBadan,
		TinggiBadan:     req.TinggiBadan,
		LingkarPerut:    req.LingkarPerut,
		SaturasiOksigen: req.SaturasiOksigen,
		IsBPJSAktif:     req.IsBPJSAktif,
		Status:          models.StatusWaiting,
		NomorAntrian:    nomor,
		CreatedAt:       now,
	}, nil
}

// GetScreening mengembalikan satu screening berdasarkan id.
func (s *ScreeningService) GetScreening(ctx context.Context, id int64) (*models.Screening, error) {
	var sc models.Screening
	err := s.DB.QueryRowContext(ctx, `
		SELECT id_screening, id_pasien, keluhan, suhu_tubuh, tensi, detak_nadi, laju_respirasi, berat_badan, tinggi_badan, lingkar_perut, saturasi_oksigen, is_bpjs_aktif, status, nomor_antrian, created_at
		FROM Screening WHERE id_screening = ?`, id,
	).Scan(&sc.ID, &sc.IDPasien, &sc.Keluhan, &sc.SuhuTubuh, &sc.Tensi, &sc.DetakNadi, &sc.LajuRespirasi,
		&sc.BeratBadan, &sc.TinggiBadan, &sc.LingkarPerut, &sc.SaturasiOksigen, &sc.IsBPJSAktif,
		&sc.Status, &sc.NomorAntrian, &sc.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("screening dengan id %d tidak ditemukan", id)
	}
	if err != nil {
		return nil, apperr.Persistence("gagal membaca screening", err)
	}
	return &sc, nil
}

// ListScreeningByPasien mengembalikan riwayat screening pasien, terbaru dulu.
func (s *ScreeningService) ListScreeningByPasien(ctx context.Context, idPasien int64) ([]models.Screening, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id_screening, id_pasien, keluhan, suhu_tubuh, tensi, detak_nadi, laju_respirasi, berat_badan, tinggi_badan, lingkar_perut, saturasi_oksigen, is_bpjs_aktif, status, nomor_antrian, created_at
		FROM Screening WHERE id_pasien = ? ORDER BY id_screening DESC`, idPasien)
	if err != nil {
		return nil, apperr.Persistence("gagal membaca riwayat screening", err)
	}
	defer rows.Close()

	var list []models.Screening
	for rows.Next() {
		var sc models.Screening
		if err := rows.Scan(&sc.ID, &sc.IDPasien, &sc.Keluhan, &sc.SuhuTubuh, &sc.Tensi, &sc.DetakNadi, &sc.LajuRespirasi,
			&sc.BeratBadan, &sc.TinggiBadan, &sc.LingkarPerut, &sc.SaturasiOksigen, &sc.IsBPJSAktif,
			&sc.Status, &sc.NomorAntrian, &sc.CreatedAt); err != nil {
			return nil, apperr.Persistence("gagal scan screening", err)
		}
		list = append(list, sc)
	}
	return list, rows.Err()
}
