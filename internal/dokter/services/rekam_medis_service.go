package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rs/zerolog"

	dmodels "github.com/c14220110/klinik-apotek-backend/internal/dokter/models"
	pservices "github.com/c14220110/klinik-apotek-backend/internal/pendaftaran/services"
	smodels "github.com/c14220110/klinik-apotek-backend/internal/screening/models"
	"github.com/c14220110/klinik-apotek-backend/internal/sequence"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

type RekamMedisService struct {
	DB  *sql.DB
	Log zerolog.Logger
}

func NewRekamMedisService(db *sql.DB, log zerolog.Logger) *RekamMedisService {
	return &RekamMedisService{DB: db, Log: log}
}

// CreateRekamMedis menyimpan hasil pemeriksaan dokter:
//   - insert rekam medis (diagnosis dinormalkan lebih dulu),
//   - insert resep + item resep (aturan dosis Racikan vs Utama),
//   - upsert alergi,
//   - kalau ada resep, alokasikan nomor antrian farmasi dan buat antriannya,
//   - tandai screening & antrian rawat jalan selesai.
//
// Semuanya dalam satu transaksi.
func (s *RekamMedisService) CreateRekamMedis(ctx context.Context, req dmodels.CreateRekamMedisRequest) (*dmodels.CreateRekamMedisResult, error) {
	if req.IDPasien == 0 || req.IDScreening == 0 {
		return nil, apperr.Validationf("id_pasien dan id_screening wajib diisi")
	}
	if strings.TrimSpace(req.Diagnosis) == "" {
		return nil, apperr.Validationf("diagnosis wajib diisi")
	}
	if strings.TrimSpace(req.NamaDokter) == "" {
		return nil, apperr.Validationf("nama_dokter wajib diisi")
	}
	if err := validasiResep(req.Resep); err != nil {
		return nil, err
	}

	stored, primerICD, _, err := dmodels.ParseDiagnosis(req.Diagnosis, req.KodeICD)
	if err != nil {
		return nil, apperr.Validationf("diagnosis berbentuk array tetapi bukan JSON yang valid")
	}

	// Screening harus ada, milik pasien yang sama, dan belum punya rekam medis.
	var idPasienScreening int64
	err = s.DB.QueryRowContext(ctx,
		"SELECT id_pasien FROM Screening WHERE id_screening = ?", req.IDScreening,
	).Scan(&idPasienScreening)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("screening dengan id %d tidak ditemukan", req.IDScreening)
	}
	if err != nil {
		return nil, apperr.Persistence("gagal memeriksa screening", err)
	}
	if idPasienScreening != req.IDPasien {
		return nil, apperr.Validationf("screening %d bukan milik pasien %d", req.IDScreening, req.IDPasien)
	}

	var sudahAda int
	err = s.DB.QueryRowContext(ctx,
		"SELECT 1 FROM Rekam_Medis WHERE id_screening = ?", req.IDScreening,
	).Scan(&sudahAda)
	if err == nil {
		return nil, apperr.Conflictf("screening %d sudah memiliki rekam medis", req.IDScreening)
	}
	if err != sql.ErrNoRows {
		return nil, apperr.Persistence("gagal memeriksa rekam medis", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperr.Persistence("gagal memulai transaksi", err)
	}

	now := time.Now()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO Rekam_Medis (id_pasien, id_screening, diagnosis, kode_icd, catatan_klinis, nama_dokter, jenis_kunjungan, tanggal_kunjungan, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.IDPasien, req.IDScreening, stored, primerICD, req.CatatanKlinis, req.NamaDokter,
		"rawat_jalan", now, now,
	)
	if err != nil {
		tx.Rollback()
		return nil, apperr.Persistence("gagal menyimpan rekam medis", err)
	}
	idRM, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, apperr.Persistence("gagal membaca id rekam medis", err)
	}

	adaResep, err := insertResepTx(ctx, tx, idRM, req.Resep, now)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := pservices.UpsertAlergiTx(ctx, tx, req.IDPasien, req.Alergi); err != nil {
		tx.Rollback()
		return nil, err
	}

	result := &dmodels.CreateRekamMedisResult{IDRM: idRM}
	if adaResep {
		nomor, err := sequence.Next(ctx, tx, sequence.ScopeFarmasi, now)
		if err != nil {
			tx.Rollback()
			return nil, apperr.Persistence("gagal alokasi nomor antrian farmasi", err)
		}
		resAF, err := tx.ExecContext(ctx, `
			INSERT INTO Antrian_Farmasi (id_rm, nomor_antrian, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)`,
			idRM, nomor, dmodels.FarmasiWaiting, now, now,
		)
		if err != nil {
			tx.Rollback()
			return nil, apperr.Persistence("gagal menyimpan antrian farmasi", err)
		}
		idAF, err := resAF.LastInsertId()
		if err != nil {
			tx.Rollback()
			return nil, apperr.Persistence("gagal membaca id antrian farmasi", err)
		}
		result.AntrianFarmasiDibuat = true
		result.IDAntrianFarmasi = &idAF
		result.NomorAntrianFarmasi = &nomor
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE Screening SET status = ? WHERE id_screening = ?",
		smodels.StatusCompleted, req.IDScreening,
	); err != nil {
		tx.Rollback()
		return nil, apperr.Persistence("gagal menutup screening", err)
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE Antrian SET status = ? WHERE id_screening = ?",
		smodels.StatusCompleted, req.IDScreening,
	); err != nil {
		tx.Rollback()
		return nil, apperr.Persistence("gagal menutup antrian rawat jalan", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.Persistence("gagal commit rekam medis", err)
	}

	s.Log.Info().
		Int64("id_rm", idRM).
		Int64("id_screening", req.IDScreening).
		Bool("antrian_farmasi", result.AntrianFarmasiDibuat).
		Msg("rekam medis dibuat")

	return result, nil
}

// UpdateRekamMedis memperbarui rekam medis. Resep tidak pernah di-patch
// sebagian: semua resep lama dihapus lalu dibuat ulang dari payload, di dalam
// satu transaksi.
func (s *RekamMedisService) UpdateRekamMedis(ctx context.Context, idRM int64, req dmodels.UpdateRekamMedisRequest) error {
	if strings.TrimSpace(req.Diagnosis) == "" {
		return apperr.Validationf("diagnosis wajib diisi")
	}
	if strings.TrimSpace(req.NamaDokter) == "" {
		return apperr.Validationf("nama_dokter wajib diisi")
	}
	if err := validasiResep(req.Resep); err != nil {
		return err
	}

	stored, primerICD, _, err := dmodels.ParseDiagnosis(req.Diagnosis, req.KodeICD)
	if err != nil {
		return apperr.Validationf("diagnosis berbentuk array tetapi bukan JSON yang valid")
	}

	var cek int
	err = s.DB.QueryRowContext(ctx, "SELECT 1 FROM Rekam_Medis WHERE id_rm = ?", idRM).Scan(&cek)
	if err == sql.ErrNoRows {
		return apperr.NotFoundf("rekam medis dengan id %d tidak ditemukan", idRM)
	}
	if err != nil {
		return apperr.Persistence("gagal memeriksa rekam medis", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Persistence("gagal memulai transaksi", err)
	}

	now := time.Now()
	if _, err := tx.ExecContext(ctx, `
		UPDATE Rekam_Medis SET diagnosis = ?, kode_icd = ?, catatan_klinis = ?, nama_dokter = ?
		WHERE id_rm = ?`,
		stored, primerICD, req.CatatanKlinis, req.NamaDokter, idRM,
	); err != nil {
		tx.Rollback()
		return apperr.Persistence("gagal memperbarui rekam medis", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM Resep_Item WHERE id_resep IN (SELECT id_resep FROM Resep WHERE id_rm = ?)", idRM,
	); err != nil {
		tx.Rollback()
		return apperr.Persistence("gagal menghapus item resep lama", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM Resep WHERE id_rm = ?", idRM); err != nil {
		tx.Rollback()
		return apperr.Persistence("gagal menghapus resep lama", err)
	}

	adaResep, err := insertResepTx(ctx, tx, idRM, req.Resep, now)
	if err != nil {
		tx.Rollback()
		return err
	}

	// Rekam medis yang tadinya tanpa resep bisa mendapat resep saat edit;
	// antrian farmasi dibuat kalau belum ada. Antrian yang sudah berjalan
	// tidak pernah dihapus dari sini.
	if adaResep {
		var adaAntrian int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM Antrian_Farmasi WHERE id_rm = ?", idRM).Scan(&adaAntrian)
		if err == sql.ErrNoRows {
			nomor, err := sequence.Next(ctx, tx, sequence.ScopeFarmasi, now)
			if err != nil {
				tx.Rollback()
				return apperr.Persistence("gagal alokasi nomor antrian farmasi", err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO Antrian_Farmasi (id_rm, nomor_antrian, status, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?)`,
				idRM, nomor, dmodels.FarmasiWaiting, now, now,
			); err != nil {
				tx.Rollback()
				return apperr.Persistence("gagal menyimpan antrian farmasi", err)
			}
		} else if err != nil {
			tx.Rollback()
			return apperr.Persistence("gagal memeriksa antrian farmasi", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperr.Persistence("gagal commit update rekam medis", err)
	}
	return nil
}

// GetRekamMedis mengembalikan rekam medis lengkap dengan resep dan
// diagnoses_array turunan.
func (s *RekamMedisService) GetRekamMedis(ctx context.Context, idRM int64) (*dmodels.RekamMedis, error) {
	var rm dmodels.RekamMedis
	err := s.DB.QueryRowContext(ctx, `
		SELECT id_rm, id_pasien, id_screening, diagnosis, kode_icd, catatan_klinis, nama_dokter, jenis_kunjungan, tanggal_kunjungan
		FROM Rekam_Medis WHERE id_rm = ?`, idRM,
	).Scan(&rm.ID, &rm.IDPasien, &rm.IDScreening, &rm.Diagnosis, &rm.KodeICD, &rm.CatatanKlinis, &rm.NamaDokter, &rm.JenisKunjungan, &rm.TanggalKunjungan)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("rekam medis dengan id %d tidak ditemukan", idRM)
	}
	if err != nil {
		return nil, apperr.Persistence("gagal membaca rekam medis", err)
	}
	rm.DiagnosesArray = dmodels.DiagnosesArray(rm.Diagnosis, rm.KodeICD)

	rows, err := s.DB.QueryContext(ctx, `
		SELECT id_resep, id_rm, jenis, catatan, dosis_racikan FROM Resep WHERE id_rm = ? ORDER BY id_resep`, idRM)
	if err != nil {
		return nil, apperr.Persistence("gagal membaca resep", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r dmodels.Resep
		if err := rows.Scan(&r.ID, &r.IDRM, &r.Jenis, &r.Catatan, &r.DosisRacikan); err != nil {
			return nil, apperr.Persistence("gagal scan resep", err)
		}
		rm.Resep = append(rm.Resep, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("gagal membaca resep", err)
	}

	for i := range rm.Resep {
		itemRows, err := s.DB.QueryContext(ctx, `
			SELECT id_item, id_resep, nama_obat, dosis, jumlah FROM Resep_Item WHERE id_resep = ? ORDER BY id_item`,
			rm.Resep[i].ID)
		if err != nil {
			return nil, apperr.Persistence("gagal membaca item resep", err)
		}
		for itemRows.Next() {
			var it dmodels.ResepItem
			if err := itemRows.Scan(&it.ID, &it.IDResep, &it.NamaObat, &it.Dosis, &it.Jumlah); err != nil {
				itemRows.Close()
				return nil, apperr.Persistence("gagal scan item resep", err)
			}
			rm.Resep[i].Items = append(rm.Resep[i].Items, it)
		}
		if err := itemRows.Err(); err != nil {
			itemRows.Close()
			return nil, apperr.Persistence("gagal membaca item resep", err)
		}
		itemRows.Close()
	}

	return &rm, nil
}

// ListRekamMedisByPasien mengembalikan riwayat kunjungan pasien, terbaru dulu.
func (s *RekamMedisService) ListRekamMedisByPasien(ctx context.Context, idPasien int64) ([]dmodels.RekamMedis, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id_rm, id_pasien, id_screening, diagnosis, kode_icd, catatan_klinis, nama_dokter, jenis_kunjungan, tanggal_kunjungan
		FROM Rekam_Medis WHERE id_pasien = ? ORDER BY id_rm DESC`, idPasien)
	if err != nil {
		return nil, apperr.Persistence("gagal membaca riwayat rekam medis", err)
	}
	defer rows.Close()

	var list []dmodels.RekamMedis
	for rows.Next() {
		var rm dmodels.RekamMedis
		if err := rows.Scan(&rm.ID, &rm.IDPasien, &rm.IDScreening, &rm.Diagnosis, &rm.KodeICD, &rm.CatatanKlinis, &rm.NamaDokter, &rm.JenisKunjungan, &rm.TanggalKunjungan); err != nil {
			return nil, apperr.Persistence("gagal scan rekam medis", err)
		}
		rm.DiagnosesArray = dmodels.DiagnosesArray(rm.Diagnosis, rm.KodeICD)
		list = append(list, rm)
	}
	return list, rows.Err()
}

func validasiResep(resep []dmodels.ResepInput) error {
	for _, r := range resep {
		for _, it := range r.Items {
			if strings.TrimSpace(it.NamaObat) == "" {
				return apperr.Validationf("nama_obat wajib diisi pada setiap item resep")
			}
			if it.Jumlah <= 0 {
				return apperr.Validationf("jumlah item resep harus lebih dari 0")
			}
		}
	}
	return nil
}

// insertResepTx menulis resep + item; resep tanpa item dilewati.
// Mengembalikan true bila minimal satu resep dibuat.
func insertResepTx(ctx context.Context, tx *sql.Tx, idRM int64, resep []dmodels.ResepInput, now time.Time) (bool, error) {
	dibuat := false
	for _, r := range resep {
		if len(r.Items) == 0 {
			continue
		}
		jenis := r.Jenis
		if jenis == "" {
			jenis = dmodels.JenisResepUtama
		}

		var dosisRacikan interface{}
		if jenis == dmodels.JenisResepRacikan && r.Dosis != "" {
			dosisRacikan = r.Dosis
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO Resep (id_rm, jenis, catatan, dosis_racikan, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			idRM, jenis, r.Catatan, dosisRacikan, now,
		)
		if err != nil {
			return false, apperr.Persistence("gagal menyimpan resep", err)
		}
		idResep, err := res.LastInsertId()
		if err != nil {
			return false, apperr.Persistence("gagal membaca id resep", err)
		}

		for _, it := range r.Items {
			var dosis interface{}
			if jenis != dmodels.JenisResepRacikan && it.Dosis != "" {
				dosis = it.Dosis
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO Resep_Item (id_resep, nama_obat, dosis, jumlah)
				VALUES (?, ?, ?, ?)`,
				idResep, it.NamaObat, dosis, it.Jumlah,
			); err != nil {
				return false, apperr.Persistence("gagal menyimpan item resep", err)
			}
		}
		dibuat = true
	}
	return dibuat, nil
}
