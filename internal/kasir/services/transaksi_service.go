package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	imodels "github.com/c14220110/klinik-apotek-backend/internal/inventori/models"
	iservices "github.com/c14220110/klinik-apotek-backend/internal/inventori/services"
	"github.com/c14220110/klinik-apotek-backend/internal/kasir/models"
	kmodels "github.com/c14220110/klinik-apotek-backend/internal/keuangan/models"
	kservices "github.com/c14220110/klinik-apotek-backend/internal/keuangan/services"
	"github.com/c14220110/klinik-apotek-backend/internal/sequence"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

type TransaksiService struct {
	DB  *sql.DB
	Log zerolog.Logger
}

func NewTransaksiService(db *sql.DB, log zerolog.Logger) *TransaksiService {
	return &TransaksiService{DB: db, Log: log}
}

// CreateTransaksi memproses checkout kasir. Validasi (produk ada, stok cukup
// per item, pembayaran cukup) dilakukan sebelum mutasi apa pun; setelah itu
// baris transaksi, detail, pergerakan SALE per item, pengurangan stok dan
// pemasukan kas ditulis dalam satu transaksi database. Pengurangan stok di
// dalam transaksi tetap kondisional, jadi dua checkout bersamaan tidak bisa
// sama-sama lolos dengan stok yang sama.
func (s *TransaksiService) CreateTransaksi(ctx context.Context, req models.CreateTransaksiRequest) (*models.Transaksi, error) {
	if len(req.Items) == 0 {
		return nil, apperr.Validationf("transaksi harus memiliki minimal satu item")
	}
	for _, it := range req.Items {
		if it.Jumlah <= 0 {
			return nil, apperr.Validationf("jumlah item harus lebih dari 0")
		}
		if it.Harga < 0 {
			return nil, apperr.Validationf("harga item tidak boleh negatif")
		}
	}

	// Pre-check per item sebelum ada mutasi.
	var total float64
	for _, it := range req.Items {
		var nama string
		var stok int
		err := s.DB.QueryRowContext(ctx,
			"SELECT nama, stok FROM Produk_Apotek WHERE id_produk = ?", it.IDProduk,
		).Scan(&nama, &stok)
		if err == sql.ErrNoRows {
			return nil, apperr.NotFoundf("produk dengan id %d tidak ditemukan", it.IDProduk)
		}
		if err != nil {
			return nil, apperr.Persistence("gagal memeriksa produk", err)
		}
		if it.Jumlah > stok {
			return nil, apperr.InsufficientStock(nama, stok, it.Jumlah)
		}
		total += float64(it.Jumlah) * it.Harga
	}
	if req.Dibayar < total {
		return nil, apperr.InvalidPayment(total, req.Dibayar)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperr.Persistence("gagal memulai transaksi", err)
	}

	now := time.Now()
	kode, err := s.buatKodeTransaksi(ctx, tx, now)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	kembalian := req.Dibayar - total
	res, err := tx.ExecContext(ctx, `
		INSERT INTO Transaksi (kode_transaksi, tanggal, total, dibayar, kembalian, status, catatan, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		kode, now, total, req.Dibayar, kembalian, models.StatusCompleted, req.Catatan, now,
	)
	if err != nil {
		tx.Rollback()
		return nil, apperr.Persistence("gagal menyimpan transaksi", err)
	}
	idTransaksi, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, apperr.Persistence("gagal membaca id transaksi", err)
	}

	trx := &models.Transaksi{
		ID: idTransaksi, KodeTransaksi: kode, Tanggal: now,
		Total: total, Dibayar: req.Dibayar, Kembalian: kembalian,
		Status: models.StatusCompleted, Catatan: req.Catatan,
	}

	for _, it := range req.Items {
		dres, err := tx.ExecContext(ctx, `
			INSERT INTO Transaksi_Detail (id_transaksi, id_produk, jumlah, harga)
			VALUES (?, ?, ?, ?)`,
			idTransaksi, it.IDProduk, it.Jumlah, it.Harga,
		)
		if err != nil {
			tx.Rollback()
			return nil, apperr.Persistence("gagal menyimpan detail transaksi", err)
		}
		idDetail, err := dres.LastInsertId()
		if err != nil {
			tx.Rollback()
			return nil, apperr.Persistence("gagal membaca id detail", err)
		}

		if _, err := iservices.CatatPergerakanTx(ctx, tx, it.IDProduk, imodels.PergerakanKeluar,
			it.Jumlah, imodels.AlasanSale, "penjualan "+kode); err != nil {
			tx.Rollback()
			return nil, err
		}

		trx.Items = append(trx.Items, models.TransaksiDetail{
			ID: idDetail, IDTransaksi: idTransaksi, IDProduk: it.IDProduk,
			Jumlah: it.Jumlah, Harga: it.Harga,
		})
	}

	if _, err := kservices.CatatTx(ctx, tx, kmodels.JenisPemasukan, "SALES", total,
		"Penjualan "+kode, now); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.Persistence("gagal commit transaksi", err)
	}

	s.Log.Info().
		Str("kode_transaksi", kode).
		Float64("total", total).
		Int("jumlah_item", len(req.Items)).
		Msg("transaksi kasir selesai")

	return trx, nil
}

// CancelTransaksi membatalkan transaksi COMPLETED: stok tiap item dikembalikan
// lewat pergerakan IN/CANCELLED_SALE lalu status diset CANCELLED, dalam satu
// transaksi database. Catatan pemasukan TIDAK dibalik; rekonsiliasi kas
// ditangani terpisah, pembatalan hanya dicatat di log.
func (s *TransaksiService) CancelTransaksi(ctx context.Context, id int64) (*models.Transaksi, error) {
	trx, err := s.GetTransaksi(ctx, id)
	if err != nil {
		return nil, err
	}
	if trx.Status == models.StatusCancelled {
		return nil, apperr.Conflictf("transaksi %s sudah dibatalkan", trx.KodeTransaksi)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperr.Persistence("gagal memulai transaksi", err)
	}

	for _, it := range trx.Items {
		if _, err := iservices.CatatPergerakanTx(ctx, tx, it.IDProduk, imodels.PergerakanMasuk,
			it.Jumlah, imodels.AlasanCancelledSale, "pembatalan "+trx.KodeTransaksi); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE Transaksi SET status = ? WHERE id_transaksi = ? AND status = ?",
		models.StatusCancelled, id, models.StatusCompleted,
	)
	if err != nil {
		tx.Rollback()
		return nil, apperr.Persistence("gagal membatalkan transaksi", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return nil, apperr.Persistence("gagal memeriksa pembatalan", err)
	}
	if affected == 0 {
		// Request lain sudah membatalkan lebih dulu; stok tidak boleh
		// dikembalikan dua kali.
		tx.Rollback()
		return nil, apperr.Conflictf("transaksi %s sudah dibatalkan", trx.KodeTransaksi)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.Persistence("gagal commit pembatalan", err)
	}

	s.Log.Warn().
		Str("kode_transaksi", trx.KodeTransaksi).
		Float64("total", trx.Total).
		Msg("transaksi dibatalkan; catatan pemasukan tidak dibalik")

	trx.Status = models.StatusCancelled
	return trx, nil
}

func (s *TransaksiService) GetTransaksi(ctx context.Context, id int64) (*models.Transaksi, error) {
	var t models.Transaksi
	err := s.DB.QueryRowContext(ctx, `
		SELECT id_transaksi, kode_transaksi, tanggal, total, dibayar, kembalian, status, catatan
		FROM Transaksi WHERE id_transaksi = ?`, id,
	).Scan(&t.ID, &t.KodeTransaksi, &t.Tanggal, &t.Total, &t.Dibayar, &t.Kembalian, &t.Status, &t.Catatan)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("transaksi dengan id %d tidak ditemukan", id)
	}
	if err != nil {
		return nil, apperr.Persistence("gagal membaca transaksi", err)
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT id_detail, id_transaksi, id_produk, jumlah, harga
		FROM Transaksi_Detail WHERE id_transaksi = ? ORDER BY id_detail`, id)
	if err != nil {
		return nil, apperr.Persistence("gagal membaca detail transaksi", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d models.TransaksiDetail
		if err := rows.Scan(&d.ID, &d.IDTransaksi, &d.IDProduk, &d.Jumlah, &d.Harga); err != nil {
			return nil, apperr.Persistence("gagal scan detail transaksi", err)
		}
		t.Items = append(t.Items, d)
	}
	return &t, rows.Err()
}

// ListTransaksi menampilkan transaksi, terbaru dulu.
func (s *TransaksiService) ListTransaksi(ctx context.Context, limit, page int) ([]models.Transaksi, error) {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	rows, err := s.DB.QueryContext(ctx, `
		SELECT id_transaksi, kode_transaksi, tanggal, total, dibayar, kembalian, status, catatan
		FROM Transaksi ORDER BY id_transaksi DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, apperr.Persistence("gagal membaca daftar transaksi", err)
	}
	defer rows.Close()

	var list []models.Transaksi
	for rows.Next() {
		var t models.Transaksi
		if err := rows.Scan(&t.ID, &t.KodeTransaksi, &t.Tanggal, &t.Total, &t.Dibayar, &t.Kembalian, &t.Status, &t.Catatan); err != nil {
			return nil, apperr.Persistence("gagal scan transaksi", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// buatKodeTransaksi membentuk kode TRX-YYYYMMDD-NNNN dari deret harian kasir.
func (s *TransaksiService) buatKodeTransaksi(ctx context.Context, tx *sql.Tx, now time.Time) (string, error) {
	nomor, err := sequence.Next(ctx, tx, sequence.ScopeKasir, now)
	if err != nil {
		return "", apperr.Persistence("gagal alokasi kode transaksi", err)
	}
	return fmt.Sprintf("TRX-%s-%04d", now.Format("20060102"), nomor), nil
}
