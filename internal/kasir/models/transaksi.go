package models

import "time"

const (
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// Transaksi adalah satu penjualan di kasir.
type Transaksi struct {
	ID            int64             `json:"id_transaksi" db:"id_transaksi"`
	KodeTransaksi string            `json:"kode_transaksi" db:"kode_transaksi"`
	Tanggal       time.Time         `json:"tanggal" db:"tanggal"`
	Total         float64           `json:"total" db:"total"`
	Dibayar       float64           `json:"dibayar" db:"dibayar"`
	Kembalian     float64           `json:"kembalian" db:"kembalian"`
	Status        string            `json:"status" db:"status"`
	Catatan       string            `json:"catatan,omitempty" db:"catatan"`
	Items         []TransaksiDetail `json:"items"`
}

// TransaksiDetail adalah satu baris item; harga di-snapshot saat penjualan.
type TransaksiDetail struct {
	ID          int64   `json:"id_detail" db:"id_detail"`
	IDTransaksi int64   `json:"id_transaksi" db:"id_transaksi"`
	IDProduk    int64   `json:"id_produk" db:"id_produk"`
	Jumlah      int     `json:"jumlah" db:"jumlah"`
	Harga       float64 `json:"harga" db:"harga"`
}

// CreateTransaksiRequest adalah payload checkout kasir.
type CreateTransaksiRequest struct {
	Items   []ItemInput `json:"items"`
	Dibayar float64     `json:"dibayar"`
	Catatan string      `json:"catatan"`
}

type ItemInput struct {
	IDProduk int64   `json:"id_produk"`
	Jumlah   int     `json:"jumlah"`
	Harga    float64 `json:"harga"`
}
