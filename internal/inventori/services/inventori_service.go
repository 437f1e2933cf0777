package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/c14220110/klinik-apotek-backend/internal/inventori/models"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

var alasanValid = map[string]bool{
	models.AlasanPurchase:      true,
	models.AlasanReturn:        true,
	models.AlasanAdjustment:    true,
	models.AlasanSale:          true,
	models.AlasanExpired:       true,
	models.AlasanDamaged:       true,
	models.AlasanInitial:       true,
	models.AlasanCancelledSale: true,
}

type InventoriService struct {
	DB  *sql.DB
	Log zerolog.Logger
}

func NewInventoriService(db *sql.DB, log zerolog.Logger) *InventoriService {
	return &InventoriService{DB: db, Log: log}
}

// CreateProduk menyimpan produk baru. Stok awal > 0 menyemai ledger dengan
// satu pergerakan IN/INITIAL agar saldo selalu bisa ditelusuri dari ledger.
func (s *InventoriService) CreateProduk(ctx context.Context, req models.CreateProdukRequest) (*models.ProdukApotek, error) {
	if strings.TrimSpace(req.Nama) == "" {
		return nil, apperr.Validationf("nama produk wajib diisi")
	}
	if req.StokAwal < 0 {
		return nil, apperr.Validationf("stok_awal tidak boleh negatif")
	}
	if req.HargaBeli < 0 || req.HargaJual < 0 {
		return nil, apperr.Validationf("harga tidak boleh negatif")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperr.Persistence("gagal memulai transaksi", err)
	}

	now := time.Now()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO Produk_Apotek (nama, kategori, produsen, id_supplier, harga_beli, harga_jual, stok, satuan, tanggal_kedaluwarsa, nomor_batch, kandungan, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.Nama, req.Kategori, req.Produsen, req.IDSupplier, req.HargaBeli, req.HargaJual,
		req.StokAwal, req.Satuan, req.TanggalKedaluwarsa, req.NomorBatch, req.Kandungan, now, now,
	)
	if err != nil {
		tx.Rollback()
		return nil, apperr.Persistence("gagal menyimpan produk", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, apperr.Persistence("gagal membaca id produk", err)
	}

	if req.StokAwal > 0 {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO Pergerakan_Stok (id_produk, jenis, jumlah, alasan, catatan, tanggal, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, models.PergerakanMasuk, req.StokAwal, models.AlasanInitial, "stok awal produk", now, now,
		); err != nil {
			tx.Rollback()
			return nil, apperr.Persistence("gagal menyemai ledger stok", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.Persistence("gagal commit produk", err)
	}

	return &models.ProdukApotek{
		ID: id, Nama: req.Nama, Kategori: req.Kategori, Produsen: req.Produsen,
		IDSupplier: req.IDSupplier, HargaBeli: req.HargaBeli, HargaJual: req.HargaJual,
		Stok: req.StokAwal, Satuan: req.Satuan, TanggalKedaluwarsa: req.TanggalKedaluwarsa,
		NomorBatch: req.NomorBatch, Kandungan: req.Kandungan, CreatedAt: now,
	}, nil
}

func (s *InventoriService) GetProduk(ctx context.Context, id int64) (*models.ProdukApotek, error) {
	var p models.ProdukApotek
	var idSupplier sql.NullInt64
	err := s.DB.QueryRowContext(ctx, `
		SELECT id_produk, nama, kategori, produsen, id_supplier, harga_beli, harga_jual, stok, satuan, tanggal_kedaluwarsa, nomor_batch, kandungan, created_at
		FROM Produk_Apotek WHERE id_produk = ?`, id,
	).Scan(&p.ID, &p.Nama, &p.Kategori, &p.Produsen, &idSupplier, &p.HargaBeli, &p.HargaJual, &p.Stok, &p.Satuan, &p.TanggalKedaluwarsa, &p.NomorBatch, &p.Kandungan, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("produk dengan id %d tidak ditemukan", id)
	}
	if err != nil {
		return nil, apperr.Persistence("gagal membaca produk", err)
	}
	if idSupplier.Valid {
		p.IDSupplier = &idSupplier.Int64
	}
	return &p, nil
}

// ListProduk menampilkan daftar produk dengan pencarian nama + pagination.
func (s *InventoriService) ListProduk(ctx context.Context, q string, limit, page int) ([]models.ProdukApotek, int, error) {
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

	where := ""
	params := []interface{}{}
	if q != "" {
		where = " WHERE LOWER(nama) LIKE ?"
		params = append(params, "%"+strings.ToLower(q)+"%")
	}

	var total int
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM Produk_Apotek"+where, params...).Scan(&total); err != nil {
		return nil, 0, apperr.Persistence("gagal menghitung produk", err)
	}

	query := `SELECT id_produk, nama, kategori, produsen, id_supplier, harga_beli, harga_jual, stok, satuan, tanggal_kedaluwarsa, nomor_batch, kandungan, created_at FROM Produk_Apotek` +
		where + " ORDER BY nama" + fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := s.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, 0, apperr.Persistence("gagal membaca produk", err)
	}
	defer rows.Close()

	var list []models.ProdukApotek
	for rows.Next() {
		var p models.ProdukApotek
		var idSupplier sql.NullInt64
		if err := rows.Scan(&p.ID, &p.Nama, &p.Kategori, &p.Produsen, &idSupplier, &p.HargaBeli, &p.HargaJual, &p.Stok, &p.Satuan, &p.TanggalKedaluwarsa, &p.NomorBatch, &p.Kandungan, &p.CreatedAt); err != nil {
			return nil, 0, apperr.Persistence("gagal scan produk", err)
		}
		if idSupplier.Valid {
			p.IDSupplier = &idSupplier.Int64
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// ListStokMenipis mengembalikan produk dengan stok di bawah ambang.
func (s *InventoriService) ListStokMenipis(ctx context.Context, ambang int) ([]models.ProdukApotek, error) {
	if ambang <= 0 {
		ambang = 10
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id_produk, nama, kategori, produsen, id_supplier, harga_beli, harga_jual, stok, satuan, tanggal_kedaluwarsa, nomor_batch, kandungan, created_at
		FROM Produk_Apotek WHERE stok < ? ORDER BY stok, nama`, ambang)
	if err != nil {
		return nil, apperr.Persistence("gagal membaca stok menipis", err)
	}
	defer rows.Close()

	var list []models.ProdukApotek
	for rows.Next() {
		var p models.ProdukApotek
		var idSupplier sql.NullInt64
		if err := rows.Scan(&p.ID, &p.Nama, &p.Kategori, &p.Produsen, &idSupplier, &p.HargaBeli, &p.HargaJual, &p.Stok, &p.Satuan, &p.TanggalKedaluwarsa, &p.NomorBatch, &p.Kandungan, &p.CreatedAt); err != nil {
			return nil, apperr.Persistence("gagal scan produk", err)
		}
		if idSupplier.Valid {
			p.IDSupplier = &idSupplier.Int64
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CatatPergerakan mencatat pergerakan stok manual dalam transaksinya sendiri.
func (s *InventoriService) CatatPergerakan(ctx context.Context, req models.CatatPergerakanRequest) (*models.PergerakanStok, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperr.Persistence("gagal memulai transaksi", err)
	}
	mv, err := CatatPergerakanTx(ctx, tx, req.IDProduk, req.Jenis, req.Jumlah, req.Alasan, req.Catatan)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, apperr.Persistence("gagal commit pergerakan stok", err)
	}
	return mv, nil
}

// CatatPergerakanTx menambahkan satu baris ledger dan menyesuaikan stok produk
// secara atomik di dalam transaksi pemanggil. Pergerakan keluar memakai update
// kondisional `stok >= jumlah`; kalau tidak ada baris yang berubah berarti
// stok tidak mencukupi (atau produk hilang) dan stok tidak tersentuh.
// Dipakai juga oleh kasir untuk SALE dan CANCELLED_SALE.
func CatatPergerakanTx(ctx context.Context, tx *sql.Tx, idProduk int64, jenis string, jumlah int, alasan, catatan string) (*models.PergerakanStok, error) {
	if jumlah <= 0 {
		return nil, apperr.Validationf("jumlah pergerakan harus lebih dari 0")
	}
	if jenis != models.PergerakanMasuk && jenis != models.PergerakanKeluar {
		return nil, apperr.Validationf("jenis pergerakan harus IN atau OUT")
	}
	if !alasanValid[alasan] {
		return nil, apperr.Validationf("alasan pergerakan %q tidak dikenal", alasan)
	}

	var res sql.Result
	var err error
	if jenis == models.PergerakanMasuk {
		res, err = tx.ExecContext(ctx,
			"UPDATE Produk_Apotek SET stok = stok + ?, updated_at = ? WHERE id_produk = ?",
			jumlah, time.Now(), idProduk,
		)
	} else {
		res, err = tx.ExecContext(ctx,
			"UPDATE Produk_Apotek SET stok = stok - ?, updated_at = ? WHERE id_produk = ? AND stok >= ?",
			jumlah, time.Now(), idProduk, jumlah,
		)
	}
	if err != nil {
		return nil, apperr.Persistence("gagal menyesuaikan stok", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, apperr.Persistence("gagal memeriksa penyesuaian stok", err)
	}
	if affected == 0 {
		var nama string
		var stok int
		err := tx.QueryRowContext(ctx,
			"SELECT nama, stok FROM Produk_Apotek WHERE id_produk = ?", idProduk,
		).Scan(&nama, &stok)
		if err == sql.ErrNoRows {
			return nil, apperr.NotFoundf("produk dengan id %d tidak ditemukan", idProduk)
		}
		if err != nil {
			return nil, apperr.Persistence("gagal membaca produk", err)
		}
		return nil, apperr.InsufficientStock(nama, stok, jumlah)
	}

	now := time.Now()
	ins, err := tx.ExecContext(ctx, `
		INSERT INTO Pergerakan_Stok (id_produk, jenis, jumlah, alasan, catatan, tanggal, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		idProduk, jenis, jumlah, alasan, catatan, now, now,
	)
	if err != nil {
		return nil, apperr.Persistence("gagal menulis ledger stok", err)
	}
	id, err := ins.LastInsertId()
	if err != nil {
		return nil, apperr.Persistence("gagal membaca id pergerakan", err)
	}

	return &models.PergerakanStok{
		ID: id, IDProduk: idProduk, Jenis: jenis, Jumlah: jumlah,
		Alasan: alasan, Catatan: catatan, Tanggal: now, CreatedAt: now,
	}, nil
}

// ListPergerakan mengembalikan ledger sebuah produk, terbaru dulu.
func (s *InventoriService) ListPergerakan(ctx context.Context, idProduk int64, limit, page int) ([]models.PergerakanStok, error) {
	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id_pergerakan, id_produk, jenis, jumlah, alasan, catatan, tanggal, created_at
		 FROM Pergerakan_Stok WHERE id_produk = ? ORDER BY id_pergerakan DESC`+
			fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset),
		idProduk)
	if err != nil {
		return nil, apperr.Persistence("gagal membaca ledger stok", err)
	}
	defer rows.Close()

	var list []models.PergerakanStok
	for rows.Next() {
		var m models.PergerakanStok
		if err := rows.Scan(&m.ID, &m.IDProduk, &m.Jenis, &m.Jumlah, &m.Alasan, &m.Catatan, &m.Tanggal, &m.CreatedAt); err != nil {
			return nil, apperr.Persistence("gagal scan pergerakan", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// DeleteProduk menghapus produk beserta ledger-nya (cascade manual).
func (s *InventoriService) DeleteProduk(ctx context.Context, id int64) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Persistence("gagal memulai transaksi", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM Pergerakan_Stok WHERE id_produk = ?", id); err != nil {
		tx.Rollback()
		return apperr.Persistence("gagal menghapus ledger produk", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM Produk_Apotek WHERE id_produk = ?", id)
	if err != nil {
		tx.Rollback()
		return apperr.Persistence("gagal menghapus produk", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return apperr.Persistence("gagal memeriksa hapus produk", err)
	}
	if affected == 0 {
		tx.Rollback()
		return apperr.NotFoundf("produk dengan id %d tidak ditemukan", id)
	}
	if err := tx.Commit(); err != nil {
		return apperr.Persistence("gagal commit hapus produk", err)
	}
	return nil
}
