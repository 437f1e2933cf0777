package models

import "time"

// Pasien mewakili data induk pasien.
type Pasien struct {
	ID           int64     `json:"id_pasien" db:"id_pasien"`
	NoRM         int64     `json:"no_rm" db:"no_rm"`
	Nama         string    `json:"nama" db:"nama"`
	JenisKelamin string    `json:"jenis_kelamin" db:"jenis_kelamin"`
	TanggalLahir string    `json:"tanggal_lahir" db:"tanggal_lahir"` // YYYY-MM-DD
	Alamat       string    `json:"alamat,omitempty" db:"alamat"`
	NIK          string    `json:"nik" db:"nik"`
	NoTelp       string    `json:"no_telp,omitempty" db:"no_telp"`
	IsBPJS       bool      `json:"is_bpjs" db:"is_bpjs"`
	NoBPJS       *string   `json:"no_bpjs,omitempty" db:"no_bpjs"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// RegisterPasienRequest adalah payload pendaftaran pasien baru.
type RegisterPasienRequest struct {
	Nama         string  `json:"nama"`
	JenisKelamin string  `json:"jenis_kelamin"`
	TanggalLahir string  `json:"tanggal_lahir"`
	Alamat       string  `json:"alamat"`
	NIK          string  `json:"nik"`
	NoTelp       string  `json:"no_telp"`
	IsBPJS       bool    `json:"is_bpjs"`
	NoBPJS       *string `json:"no_bpjs"`
}

// UpdatePasienRequest memperbarui biodata pasien.
type UpdatePasienRequest struct {
	Nama         string  `json:"nama"`
	JenisKelamin string  `json:"jenis_kelamin"`
	TanggalLahir string  `json:"tanggal_lahir"`
	Alamat       string  `json:"alamat"`
	NoTelp       string  `json:"no_telp"`
	IsBPJS       bool    `json:"is_bpjs"`
	NoBPJS       *string `json:"no_bpjs"`
}

// AlergiPasien adalah riwayat alergi milik pasien.
type AlergiPasien struct {
	ID               int64     `json:"id_alergi" db:"id_alergi"`
	IDPasien         int64     `json:"id_pasien" db:"id_pasien"`
	NamaAlergi       string    `json:"nama_alergi" db:"nama_alergi"`
	Jenis            string    `json:"jenis" db:"jenis"`
	TingkatKeparahan string    `json:"tingkat_keparahan" db:"tingkat_keparahan"`
	Reaksi           string    `json:"reaksi" db:"reaksi"`
	Catatan          string    `json:"catatan" db:"catatan"`
	Status           string    `json:"status" db:"status"`
	DilaporkanPada   time.Time `json:"dilaporkan_pada" db:"dilaporkan_pada"`
}

// AlergiInput adalah entri alergi yang dikirim bersama screening atau
// pemeriksaan dokter. IDAlergi terisi jika merujuk baris yang sudah ada.
type AlergiInput struct {
	IDAlergi         int64  `json:"id_alergi,omitempty"`
	NamaAlergi       string `json:"nama_alergi"`
	Jenis            string `json:"jenis"`
	TingkatKeparahan string `json:"tingkat_keparahan"`
	Reaksi           string `json:"reaksi"`
	Catatan          string `json:"catatan"`
	Status           string `json:"status"`
}
