package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rs/zerolog"

	dmodels "github.com/c14220110/klinik-apotek-backend/internal/dokter/models"
	"github.com/c14220110/klinik-apotek-backend/internal/sequence"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

type AntrianFarmasiService struct {
	DB  *sql.DB
	Log zerolog.Logger
}

func NewAntrianFarmasiService(db *sql.DB, log zerolog.Logger) *AntrianFarmasiService {
	return &AntrianFarmasiService{DB: db, Log: log}
}

// EntryFarmasi adalah satu baris layar antrian farmasi.
type EntryFarmasi struct {
	ID           int64   `json:"id_antrian_farmasi"`
	IDRM         int64   `json:"id_rm"`
	IDPasien     int64   `json:"id_pasien"`
	NamaPasien   string  `json:"nama_pasien"`
	NomorAntrian int     `json:"nomor_antrian"`
	NomorTampil  string  `json:"nomor_tampil"`
	Status       string  `json:"status"`
	NamaApoteker *string `json:"nama_apoteker,omitempty"`
}

// GetAntrianHariIni mengembalikan antrian farmasi hari ini, urut nomor.
func (s *AntrianFarmasiService) GetAntrianHariIni(ctx context.Context) ([]EntryFarmasi, error) {
	now := time.Now()
	awal := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	akhir := awal.Add(24 * time.Hour)

	rows, err := s.DB.QueryContext(ctx, `
		SELECT af.id_antrian_farmasi, af.id_rm, rm.id_pasien, p.nama, af.nomor_antrian, af.status, af.nama_apoteker
		FROM Antrian_Farmasi af
		JOIN Rekam_Medis rm ON af.id_rm = rm.id_rm
		JOIN Pasien p ON rm.id_pasien = p.id_pasien
		WHERE af.created_at >= ? AND af.created_at < ?
		ORDER BY af.nomor_antrian`,
		awal, akhir)
	if err != nil {
		return nil, apperr.Persistence("gagal membaca antrian farmasi", err)
	}
	defer rows.Close()

	var list []EntryFarmasi
	for rows.Next() {
		var e EntryFarmasi
		if err := rows.Scan(&e.ID, &e.IDRM, &e.IDPasien, &e.NamaPasien, &e.NomorAntrian, &e.Status, &e.NamaApoteker); err != nil {
			return nil, apperr.Persistence("gagal scan antrian farmasi", err)
		}
		e.NomorTampil = sequence.Format(e.NomorAntrian)
		list = append(list, e)
	}
	return list, rows.Err()
}

// Siapkan memajukan antrian waiting -> preparing dan mencatat apoteker
// yang menyiapkan obat.
func (s *AntrianFarmasiService) Siapkan(ctx context.Context, id int64, namaApoteker string) (*EntryFarmasi, error) {
	if strings.TrimSpace(namaApoteker) == "" {
		return nil, apperr.Validationf("nama_apoteker wajib diisi")
	}
	return s.transisi(ctx, id, dmodels.FarmasiWaiting, dmodels.FarmasiPreparing, &namaApoteker)
}

// TandaiSiap memajukan antrian preparing -> ready.
func (s *AntrianFarmasiService) TandaiSiap(ctx context.Context, id int64) (*EntryFarmasi, error) {
	return s.transisi(ctx, id, dmodels.FarmasiPreparing, dmodels.FarmasiReady, nil)
}

// Serahkan memajukan antrian ready -> dispensed; status terminal.
func (s *AntrianFarmasiService) Serahkan(ctx context.Context, id int64) (*EntryFarmasi, error) {
	return s.transisi(ctx, id, dmodels.FarmasiReady, dmodels.FarmasiDispensed, nil)
}

// transisi menjalankan satu langkah mesin status linear
// waiting -> preparing -> ready -> dispensed. Transisi dari status yang salah
// gagal dengan konflik dan tidak mengubah apa pun; tidak ada transisi mundur.
func (s *AntrianFarmasiService) transisi(ctx context.Context, id int64, dari, tujuan string, namaApoteker *string) (*EntryFarmasi, error) {
	var e EntryFarmasi
	err := s.DB.QueryRowContext(ctx, `
		SELECT af.id_antrian_farmasi, af.id_rm, rm.id_pasien, p.nama, af.nomor_antrian, af.status, af.nama_apoteker
		FROM Antrian_Farmasi af
		JOIN Rekam_Medis rm ON af.id_rm = rm.id_rm
		JOIN Pasien p ON rm.id_pasien = p.id_pasien
		WHERE af.id_antrian_farmasi = ?`, id,
	).Scan(&e.ID, &e.IDRM, &e.IDPasien, &e.NamaPasien, &e.NomorAntrian, &e.Status, &e.NamaApoteker)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("antrian farmasi dengan id %d tidak ditemukan", id)
	}
	if err != nil {
		return nil, apperr.Persistence("gagal membaca antrian farmasi", err)
	}
	if e.Status != dari {
		return nil, apperr.Conflictf("status antrian farmasi saat ini %s, transisi ke %s tidak diizinkan", e.Status, tujuan)
	}

	var res sql.Result
	if namaApoteker != nil {
		res, err = s.DB.ExecContext(ctx,
			"UPDATE Antrian_Farmasi SET status = ?, nama_apoteker = ?, updated_at = ? WHERE id_antrian_farmasi = ? AND status = ?",
			tujuan, *namaApoteker, time.Now(), id, dari,
		)
	} else {
		res, err = s.DB.ExecContext(ctx,
			"UPDATE Antrian_Farmasi SET status = ?, updated_at = ? WHERE id_antrian_farmasi = ? AND status = ?",
			tujuan, time.Now(), id, dari,
		)
	}
	if err != nil {
		return nil, apperr.Persistence("gagal memperbarui antrian farmasi", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, apperr.Persistence("gagal memeriksa update antrian farmasi", err)
	}
	if affected == 0 {
		return nil, apperr.Conflictf("antrian farmasi sudah berubah status, transisi ke %s dibatalkan", tujuan)
	}

	e.Status = tujuan
	if namaApoteker != nil {
		e.NamaApoteker = namaApoteker
	}
	e.NomorTampil = sequence.Format(e.NomorAntrian)

	s.Log.Info().
		Int64("id_antrian_farmasi", id).
		Str("status", tujuan).
		Msg("antrian farmasi dimajukan")

	return &e, nil
}
