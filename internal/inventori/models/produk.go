package models

import "time"

// Jenis pergerakan stok.
const (
	PergerakanMasuk  = "IN"
	PergerakanKeluar = "OUT"
)

// Alasan pergerakan stok.
const (
	AlasanPurchase      = "PURCHASE"
	AlasanReturn        = "RETURN"
	AlasanAdjustment    = "ADJUSTMENT"
	AlasanSale          = "SALE"
	AlasanExpired       = "EXPIRED"
	AlasanDamaged       = "DAMAGED"
	AlasanInitial       = "INITIAL"
	AlasanCancelledSale = "CANCELLED_SALE"
)

// ProdukApotek adalah produk yang dijual apotek. Stok adalah saldo berjalan
// dari ledger pergerakan.
type ProdukApotek struct {
	ID                 int64     `json:"id_produk" db:"id_produk"`
	Nama               string    `json:"nama" db:"nama"`
	Kategori           string    `json:"kategori" db:"kategori"`
	Produsen           string    `json:"produsen" db:"produsen"`
	IDSupplier         *int64    `json:"id_supplier,omitempty" db:"id_supplier"`
	HargaBeli          float64   `json:"harga_beli" db:"harga_beli"`
	HargaJual          float64   `json:"harga_jual" db:"harga_jual"`
	Stok               int       `json:"stok" db:"stok"`
	Satuan             string    `json:"satuan" db:"satuan"`
	TanggalKedaluwarsa string    `json:"tanggal_kedaluwarsa,omitempty" db:"tanggal_kedaluwarsa"` // YYYY-MM-DD
	NomorBatch         string    `json:"nomor_batch,omitempty" db:"nomor_batch"`
	Kandungan          string    `json:"kandungan,omitempty" db:"kandungan"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
}

// CreateProdukRequest membuat produk baru; StokAwal menyemai ledger dengan
// satu pergerakan INITIAL.
type CreateProdukRequest struct {
	Nama               string  `json:"nama"`
	Kategori           string  `json:"kategori"`
	Produsen           string  `json:"produsen"`
	IDSupplier         *int64  `json:"id_supplier"`
	HargaBeli          float64 `json:"harga_beli"`
	HargaJual          float64 `json:"harga_jual"`
	StokAwal           int     `json:"stok_awal"`
	Satuan             string  `json:"satuan"`
	TanggalKedaluwarsa string  `json:"tanggal_kedaluwarsa"`
	NomorBatch         string  `json:"nomor_batch"`
	Kandungan          string  `json:"kandungan"`
}

// PergerakanStok adalah satu baris ledger; append-only.
type PergerakanStok struct {
	ID        int64     `json:"id_pergerakan" db:"id_pergerakan"`
	IDProduk  int64     `json:"id_produk" db:"id_produk"`
	Jenis     string    `json:"jenis" db:"jenis"`
	Jumlah    int       `json:"jumlah" db:"jumlah"`
	Alasan    string    `json:"alasan" db:"alasan"`
	Catatan   string    `json:"catatan,omitempty" db:"catatan"`
	Tanggal   time.Time `json:"tanggal" db:"tanggal"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CatatPergerakanRequest adalah payload pencatatan pergerakan manual
// (pembelian, penyesuaian, barang rusak, dsb).
type CatatPergerakanRequest struct {
	IDProduk int64  `json:"id_produk"`
	Jenis    string `json:"jenis"`
	Jumlah   int    `json:"jumlah"`
	Alasan   string `json:"alasan"`
	Catatan  string `json:"catatan"`
}
