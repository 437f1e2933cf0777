package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/c14220110/klinik-apotek-backend/internal/pendaftaran/models"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

type PasienService struct {
	DB  *sql.DB
	Log zerolog.Logger
}

func NewPasienService(db *sql.DB, log zerolog.Logger) *PasienService {
	return &PasienService{DB: db, Log: log}
}

// RegisterPasien mendaftarkan pasien baru dengan no_rm berurutan.
// NIK harus unik; pendaftaran ulang dengan NIK yang sama ditolak.
func (s *PasienService) RegisterPasien(ctx context.Context, req models.RegisterPasienRequest) (*models.Pasien, error) {
	if strings.TrimSpace(req.Nama) == "" {
		return nil, apperr.Validationf("nama pasien wajib diisi")
	}
	if strings.TrimSpace(req.NIK) == "" {
		return nil, apperr.Validationf("NIK wajib diisi")
	}
	if req.TanggalLahir != "" {
		if _, err := time.Parse("2006-01-02", req.TanggalLahir); err != nil {
			return nil, apperr.Validationf("tanggal_lahir harus berformat YYYY-MM-DD")
		}
	}

	// Cek apakah NIK sudah ada di database
	var existingID int64
	err := s.DB.QueryRowContext(ctx, "SELECT id_pasien FROM Pasien WHERE nik = ?", req.NIK).Scan(&existingID)
	if err == nil {
		return nil, apperr.Conflictf("NIK sudah terdaftar")
	} else if err != sql.ErrNoRows {
		return nil, apperr.Persistence("gagal memeriksa NIK", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperr.Persistence("gagal memulai transaksi", err)
	}

	// no_rm berurutan mulai 1001; dihitung di dalam transaksi.
	var maxNoRM sql.NullInt64
	if err := tx.QueryRowContext(ctx, "SELECT MAX(no_rm) FROM Pasien").Scan(&maxNoRM); err != nil {
		tx.Rollback()
		return nil, apperr.Persistence("gagal menghitung no_rm", err)
	}
	noRM := int64(1001)
	if maxNoRM.Valid {
		noRM = maxNoRM.Int64 + 1
	}

	now := time.Now()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO Pasien (no_rm, nama, jenis_kelamin, tanggal_lahir, alamat, nik, no_telp, is_bpjs, no_bpjs, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		noRM, req.Nama, req.JenisKelamin, req.TanggalLahir, req.Alamat, req.NIK, req.NoTelp,
		req.IsBPJS, req.NoBPJS, now, now,
	)
	if err != nil {
		tx.Rollback()
		return nil, apperr.Persistence("gagal menyimpan pasien", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, apperr.Persistence("gagal membaca id pasien", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.Persistence("gagal commit pendaftaran pasien", err)
	}

	return &models.Pasien{
		ID:           id,
		NoRM:         noRM,
		Nama:         req.Nama,
		JenisKelamin: req.JenisKelamin,
		TanggalLahir: req.TanggalLahir,
		Alamat:       req.Alamat,
		NIK:          req.NIK,
		NoTelp:       req.NoTelp,
		IsBPJS:       req.IsBPJS,
		NoBPJS:       req.NoBPJS,
		CreatedAt:    now,
	}, nil
}

func (s *PasienService) GetPasien(ctx context.Context, id int64) (*models.Pasien, error) {
	var p models.Pasien
	var noBPJS sql.NullString
	err := s.DB.QueryRowContext(ctx, `
		SELECT id_pasien, no_rm, nama, jenis_kelamin, tanggal_lahir, alamat, nik, no_telp, is_bpjs, no_bpjs, created_at
		FROM Pasien WHERE id_pasien = ?`, id,
	).Scan(&p.ID, &p.NoRM, &p.Nama, &p.JenisKelamin, &p.TanggalLahir, &p.Alamat, &p.NIK, &p.NoTelp, &p.IsBPJS, &noBPJS, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("pasien dengan id %d tidak ditemukan", id)
	}
	if err != nil {
		return nil, apperr.Persistence("gagal membaca pasien", err)
	}
	if noBPJS.Valid {
		p.NoBPJS = &noBPJS.String
	}
	return &p, nil
}

func (s *PasienService) UpdatePasien(ctx context.Context, id int64, req models.UpdatePasienRequest) error {
	if strings.TrimSpace(req.Nama) == "" {
		return apperr.Validationf("nama pasien wajib diisi")
	}

	res, err := s.DB.ExecContext(ctx, `
		UPDATE Pasien
		SET nama = ?, jenis_kelamin = ?, tanggal_lahir = ?, alamat = ?, no_telp = ?, is_bpjs = ?, no_bpjs = ?, updated_at = ?
		WHERE id_pasien = ?`,
		req.Nama, req.JenisKelamin, req.TanggalLahir, req.Alamat, req.NoTelp, req.IsBPJS, req.NoBPJS, time.Now(), id,
	)
	if err != nil {
		return apperr.Persistence("gagal memperbarui pasien", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.Persistence("gagal memeriksa update pasien", err)
	}
	if affected == 0 {
		return apperr.NotFoundf("pasien dengan id %d tidak ditemukan", id)
	}
	return nil
}

// ListPasien menampilkan daftar pasien dengan pencarian nama/NIK/no_rm + pagination.
func (s *PasienService) ListPasien(ctx context.Context, q string, limit, page int) ([]models.Pasien, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	conds := []string{}
	params := []interface{}{}
	if q != "" {
		conds = append(conds, "(LOWER(nama) LIKE ? OR nik LIKE ? OR CAST(no_rm AS CHAR) LIKE ?)")
		like := "%" + strings.ToLower(q) + "%"
		params = append(params, like, like, like)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM Pasien"+where, params...).Scan(&total); err != nil {
		return nil, 0, apperr.Persistence("gagal menghitung pasien", err)
	}

	query := `SELECT id_pasien, no_rm, nama, jenis_kelamin, tanggal_lahir, alamat, nik, no_telp, is_bpjs, no_bpjs, created_at FROM Pasien` +
		where + " ORDER BY no_rm" + fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := s.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, 0, apperr.Persistence("gagal membaca daftar pasien", err)
	}
	defer rows.Close()

	var list []models.Pasien
	for rows.Next() {
		var p models.Pasien
		var noBPJS sql.NullString
		if err := rows.Scan(&p.ID, &p.NoRM, &p.Nama, &p.JenisKelamin, &p.TanggalLahir, &p.Alamat, &p.NIK, &p.NoTelp, &p.IsBPJS, &noBPJS, &p.CreatedAt); err != nil {
			return nil, 0, apperr.Persistence("gagal scan pasien", err)
		}
		if noBPJS.Valid {
			p.NoBPJS = &noBPJS.String
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperr.Persistence("gagal membaca daftar pasien", err)
	}
	return list, total, nil
}

// DeletePasien menghapus pasien yang belum punya riwayat medis.
// Pasien dengan screening atau rekam medis tidak boleh dihapus.
func (s *PasienService) DeletePasien(ctx context.Context, id int64) error {
	var terkait int
	err := s.DB.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM Screening WHERE id_pasien = ?)
		     + (SELECT COUNT(*) FROM Rekam_Medis WHERE id_pasien = ?)`,
		id, id,
	).Scan(&terkait)
	if err != nil {
		return apperr.Persistence("gagal memeriksa riwayat pasien", err)
	}
	if terkait > 0 {
		return apperr.Conflictf("pasien masih memiliki riwayat medis dan tidak dapat dihapus")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Persistence("gagal memulai transaksi", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM Alergi_Pasien WHERE id_pasien = ?", id); err != nil {
		tx.Rollback()
		return apperr.Persistence("gagal menghapus alergi pasien", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM Pasien WHERE id_pasien = ?", id)
	if err != nil {
		tx.Rollback()
		return apperr.Persistence("gagal menghapus pasien", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return apperr.Persistence("gagal memeriksa hapus pasien", err)
	}
	if affected == 0 {
		tx.Rollback()
		return apperr.NotFoundf("pasien dengan id %d tidak ditemukan", id)
	}
	if err := tx.Commit(); err != nil {
		return apperr.Persistence("gagal commit hapus pasien", err)
	}
	return nil
}

// ListAlergi mengembalikan semua alergi aktif milik pasien.
func (s *PasienService) ListAlergi(ctx context.Context, idPasien int64) ([]models.AlergiPasien, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id_alergi, id_pasien, nama_alergi, jenis, tingkat_keparahan, reaksi, catatan, status, dilaporkan_pada
		FROM Alergi_Pasien WHERE id_pasien = ? ORDER BY id_alergi`, idPasien)
	if err != nil {
		return nil, apperr.Persistence("gagal membaca alergi pasien", err)
	}
	defer rows.Close()

	var list []models.AlergiPasien
	for rows.Next() {
		var a models.AlergiPasien
		if err := rows.Scan(&a.ID, &a.IDPasien, &a.NamaAlergi, &a.Jenis, &a.TingkatKeparahan, &a.Reaksi, &a.Catatan, &a.Status, &a.DilaporkanPada); err != nil {
			return nil, apperr.Persistence("gagal scan alergi", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
