package models

import "time"

const (
	JenisPemasukan   = "INCOME"
	JenisPengeluaran = "EXPENSE"
)

// Kategori per jenis catatan keuangan.
var KategoriPerJenis = map[string][]string{
	JenisPemasukan:   {"SALES", "CONSULTATION", "OTHER_INCOME"},
	JenisPengeluaran: {"PURCHASE", "SALARY", "OPERATIONAL", "OTHER_EXPENSE"},
}

// CatatanKeuangan adalah satu entri buku kas; append-only.
type CatatanKeuangan struct {
	ID        int64     `json:"id_catatan" db:"id_catatan"`
	Jenis     string    `json:"jenis" db:"jenis"`
	Kategori  string    `json:"kategori" db:"kategori"`
	Jumlah    float64   `json:"jumlah" db:"jumlah"`
	Deskripsi string    `json:"deskripsi,omitempty" db:"deskripsi"`
	Tanggal   time.Time `json:"tanggal" db:"tanggal"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CatatKeuanganRequest adalah payload entri manual (gaji, operasional, dsb).
type CatatKeuanganRequest struct {
	Jenis     string  `json:"jenis"`
	Kategori  string  `json:"kategori"`
	Jumlah    float64 `json:"jumlah"`
	Deskripsi string  `json:"deskripsi"`
}

// Ringkasan adalah agregat kas pada satu rentang tanggal.
type Ringkasan struct {
	TotalPemasukan   float64 `json:"total_pemasukan"`
	TotalPengeluaran float64 `json:"total_pengeluaran"`
	Saldo            float64 `json:"saldo"`
}
