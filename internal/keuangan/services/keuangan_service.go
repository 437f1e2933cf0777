package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/c14220110/klinik-apotek-backend/internal/keuangan/models"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

type KeuanganService struct {
	DB  *sql.DB
	Log zerolog.Logger
}

func NewKeuanganService(db *sql.DB, log zerolog.Logger) *KeuanganService {
	return &KeuanganService{DB: db, Log: log}
}

func validasiJenisKategori(jenis, kategori string) error {
	daftar, ok := models.KategoriPerJenis[jenis]
	if !ok {
		return apperr.Validationf("jenis catatan harus INCOME atau EXPENSE")
	}
	for _, k := range daftar {
		if k == kategori {
			return nil
		}
	}
	return apperr.Validationf("kategori %q tidak berlaku untuk jenis %s", kategori, jenis)
}

// Catat menulis entri buku kas manual.
func (s *KeuanganService) Catat(ctx context.Context, req models.CatatKeuanganRequest) (*models.CatatanKeuangan, error) {
	if err := validasiJenisKategori(req.Jenis, req.Kategori); err != nil {
		return nil, err
	}
	if req.Jumlah <= 0 {
		return nil, apperr.Validationf("jumlah harus lebih dari 0")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperr.Persistence("gagal memulai transaksi", err)
	}
	c, err := CatatTx(ctx, tx, req.Jenis, req.Kategori, req.Jumlah, req.Deskripsi, time.Now())
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, apperr.Persistence("gagal commit catatan keuangan", err)
	}
	return c, nil
}

// CatatTx menulis entri buku kas di dalam transaksi pemanggil.
// Dipakai kasir untuk mencatat pemasukan penjualan satu transaksi dengan
// penyesuaian stok.
func CatatTx(ctx context.Context, tx *sql.Tx, jenis, kategori string, jumlah float64, deskripsi string, tanggal time.Time) (*models.CatatanKeuangan, error) {
	if err := validasiJenisKategori(jenis, kategori); err != nil {
		return nil, err
	}

	now := time.Now()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO Catatan_Keuangan (jenis, kategori, jumlah, deskripsi, tanggal, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		jenis, kategori, jumlah, deskripsi, tanggal, now,
	)
	if err != nil {
		return nil, apperr.Persistence("gagal menulis catatan keuangan", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, apperr.Persistence("gagal membaca id catatan keuangan", err)
	}

	return &models.CatatanKeuangan{
		ID: id, Jenis: jenis, Kategori: kategori, Jumlah: jumlah,
		Deskripsi: deskripsi, Tanggal: tanggal, CreatedAt: now,
	}, nil
}

// List menampilkan entri buku kas, filter jenis opsional, terbaru dulu.
func (s *KeuanganService) List(ctx context.Context, jenis string, limit, page int) ([]models.CatatanKeuangan, error) {
	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := "SELECT id_catatan, jenis, kategori, jumlah, deskripsi, tanggal, created_at FROM Catatan_Keuangan"
	params := []interface{}{}
	if jenis != "" {
		jenis = strings.ToUpper(jenis)
		if jenis != models.JenisPemasukan && jenis != models.JenisPengeluaran {
			return nil, apperr.Validationf("jenis filter harus INCOME atau EXPENSE")
		}
		query += " WHERE jenis = ?"
		params = append(params, jenis)
	}
	query += " ORDER BY id_catatan DESC"
	params = append(params, limit, offset)
	query += " LIMIT ? OFFSET ?"

	rows, err := s.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, apperr.Persistence("gagal membaca catatan keuangan", err)
	}
	defer rows.Close()

	var list []models.CatatanKeuangan
	for rows.Next() {
		var c models.CatatanKeuangan
		if err := rows.Scan(&c.ID, &c.Jenis, &c.Kategori, &c.Jumlah, &c.Deskripsi, &c.Tanggal, &c.CreatedAt); err != nil {
			return nil, apperr.Persistence("gagal scan catatan keuangan", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Ringkasan menghitung total pemasukan/pengeluaran pada rentang tanggal.
func (s *KeuanganService) Ringkasan(ctx context.Context, dari, sampai time.Time) (*models.Ringkasan, error) {
	var r models.Ringkasan
	err := s.DB.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN jenis = ? THEN jumlah ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN jenis = ? THEN jumlah ELSE 0 END), 0)
		FROM Catatan_Keuangan
		WHERE tanggal >= ? AND tanggal < ?`,
		models.JenisPemasukan, models.JenisPengeluaran, dari, sampai,
	).Scan(&r.TotalPemasukan, &r.TotalPengeluaran)
	if err != nil {
		return nil, apperr.Persistence("gagal menghitung ringkasan keuangan", err)
	}
	r.Saldo = r.TotalPemasukan - r.TotalPengeluaran
	return &r, nil
}
