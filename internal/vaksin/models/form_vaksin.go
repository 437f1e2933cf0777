package models

import "time"

const (
	StatusDibuat        = "created"
	StatusDokumenTerbit = "document_issued"
)

// FormVaksin adalah pengajuan formulir vaksin. Nomor urutnya memakai deret
// harian sendiri, terpisah dari antrian rawat jalan dan farmasi. Pembuatan
// dokumennya dilakukan layanan eksternal; di sini hanya id dokumen yang
// disimpan.
type FormVaksin struct {
	ID          int64     `json:"id_form" db:"id_form"`
	IDPasien    int64     `json:"id_pasien" db:"id_pasien"`
	JenisVaksin string    `json:"jenis_vaksin" db:"jenis_vaksin"`
	NomorUrut   int       `json:"nomor_urut" db:"nomor_urut"`
	Status      string    `json:"status" db:"status"`
	IDDokumen   *string   `json:"id_dokumen,omitempty" db:"id_dokumen"`
	Tanggal     time.Time `json:"tanggal" db:"tanggal"`
}

type CreateFormVaksinRequest struct {
	IDPasien    int64  `json:"id_pasien"`
	JenisVaksin string `json:"jenis_vaksin"`
}
