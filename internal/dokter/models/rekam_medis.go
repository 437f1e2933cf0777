package models

import (
	"encoding/json"
	"strings"
	"time"

	pmodels "github.com/c14220110/klinik-apotek-backend/internal/pendaftaran/models"
)

// Jenis resep. Selain Racikan, dosis dicatat per item obat; pada Racikan dosis
// dicatat sekali di level resep.
const (
	JenisResepUtama   = "Utama"
	JenisResepRacikan = "Racikan"
)

// Status antrian farmasi, linear tanpa transisi mundur.
const (
	FarmasiWaiting   = "waiting"
	FarmasiPreparing = "preparing"
	FarmasiReady     = "ready"
	FarmasiDispensed = "dispensed"
)

// DiagnosisEntry adalah satu diagnosis dalam kunjungan multi-diagnosis.
// Tag JSON mengikuti format data lama yang tersimpan di kolom diagnosis.
type DiagnosisEntry struct {
	KodeICD   string `json:"icdCode"`
	Deskripsi string `json:"description"`
}

// ParseDiagnosis menerjemahkan field diagnosis dari klien ke bentuk simpan.
// Kolom diagnosis lama polimorfik: teks biasa, atau JSON array
// [{icdCode, description}] untuk multi-diagnosis. Di sini bentuk itu
// dinormalkan sekali di tepi persistence: string JSON array divalidasi dan
// kode ICD utama diambil dari entri pertama.
func ParseDiagnosis(raw, kodeICD string) (stored, primerICD string, entries []DiagnosisEntry, err error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "[") {
		return raw, kodeICD, []DiagnosisEntry{{KodeICD: kodeICD, Deskripsi: raw}}, nil
	}

	if err := json.Unmarshal([]byte(trimmed), &entries); err != nil {
		return "", "", nil, err
	}
	if len(entries) > 0 {
		primerICD = entries[0].KodeICD
	}
	return trimmed, primerICD, entries, nil
}

// DiagnosesArray menurunkan bentuk array dari kolom diagnosis tersimpan.
// Record lama satu-diagnosis selalu menghasilkan array satu elemen.
func DiagnosesArray(stored, kodeICD string) []DiagnosisEntry {
	trimmed := strings.TrimSpace(stored)
	if strings.HasPrefix(trimmed, "[") {
		var entries []DiagnosisEntry
		if err := json.Unmarshal([]byte(trimmed), &entries); err == nil {
			return entries
		}
	}
	return []DiagnosisEntry{{KodeICD: kodeICD, Deskripsi: stored}}
}

// RekamMedis adalah hasil pemeriksaan dokter untuk satu screening.
type RekamMedis struct {
	ID               int64            `json:"id_rm" db:"id_rm"`
	IDPasien         int64            `json:"id_pasien" db:"id_pasien"`
	IDScreening      int64            `json:"id_screening" db:"id_screening"`
	Diagnosis        string           `json:"diagnosis" db:"diagnosis"`
	DiagnosesArray   []DiagnosisEntry `json:"diagnoses_array"`
	KodeICD          string           `json:"kode_icd" db:"kode_icd"`
	CatatanKlinis    string           `json:"catatan_klinis,omitempty" db:"catatan_klinis"`
	NamaDokter       string           `json:"nama_dokter" db:"nama_dokter"`
	JenisKunjungan   string           `json:"jenis_kunjungan" db:"jenis_kunjungan"`
	TanggalKunjungan time.Time        `json:"tanggal_kunjungan" db:"tanggal_kunjungan"`
	Resep            []Resep          `json:"resep,omitempty"`
}

type Resep struct {
	ID           int64       `json:"id_resep" db:"id_resep"`
	IDRM         int64       `json:"id_rm" db:"id_rm"`
	Jenis        string      `json:"jenis" db:"jenis"`
	Catatan      string      `json:"catatan,omitempty" db:"catatan"`
	DosisRacikan *string     `json:"dosis_racikan,omitempty" db:"dosis_racikan"`
	Items        []ResepItem `json:"items"`
}

type ResepItem struct {
	ID       int64   `json:"id_item" db:"id_item"`
	IDResep  int64   `json:"id_resep" db:"id_resep"`
	NamaObat string  `json:"nama_obat" db:"nama_obat"`
	Dosis    *string `json:"dosis,omitempty" db:"dosis"`
	Jumlah   int     `json:"jumlah" db:"jumlah"`
}

// ResepInput adalah satu resep pada payload pemeriksaan.
type ResepInput struct {
	Jenis   string           `json:"jenis"`
	Catatan string           `json:"catatan"`
	Dosis   string           `json:"dosis"` // hanya dipakai untuk Racikan
	Items   []ResepItemInput `json:"items"`
}

type ResepItemInput struct {
	NamaObat string `json:"nama_obat"`
	Dosis    string `json:"dosis"` // hanya dipakai untuk non-Racikan
	Jumlah   int    `json:"jumlah"`
}

// CreateRekamMedisRequest adalah payload pemeriksaan dokter.
type CreateRekamMedisRequest struct {
	IDPasien      int64                 `json:"id_pasien"`
	IDScreening   int64                 `json:"id_screening"`
	Diagnosis     string                `json:"diagnosis"`
	KodeICD       string                `json:"kode_icd"`
	CatatanKlinis string                `json:"catatan_klinis"`
	NamaDokter    string                `json:"nama_dokter"`
	Resep         []ResepInput          `json:"resep"`
	Alergi        []pmodels.AlergiInput `json:"alergi"`
}

// UpdateRekamMedisRequest memperbarui rekam medis; resep diganti seluruhnya.
type UpdateRekamMedisRequest struct {
	Diagnosis     string       `json:"diagnosis"`
	KodeICD       string       `json:"kode_icd"`
	CatatanKlinis string       `json:"catatan_klinis"`
	NamaDokter    string       `json:"nama_dokter"`
	Resep         []ResepInput `json:"resep"`
}

// CreateRekamMedisResult adalah hasil pemeriksaan: id rekam medis dan, bila
// ada resep, nomor antrian farmasi yang dialokasikan.
type CreateRekamMedisResult struct {
	IDRM                 int64  `json:"id_rm"`
	AntrianFarmasiDibuat bool   `json:"antrian_farmasi_dibuat"`
	IDAntrianFarmasi     *int64 `json:"id_antrian_farmasi,omitempty"`
	NomorAntrianFarmasi  *int   `json:"nomor_antrian_farmasi,omitempty"`
}

// AntrianFarmasi adalah antrian pengambilan obat di apotek.
type AntrianFarmasi struct {
	ID           int64     `json:"id_antrian_farmasi" db:"id_antrian_farmasi"`
	IDRM         int64     `json:"id_rm" db:"id_rm"`
	NomorAntrian int       `json:"nomor_antrian" db:"nomor_antrian"`
	Status       string    `json:"status" db:"status"`
	NamaApoteker *string   `json:"nama_apoteker,omitempty" db:"nama_apoteker"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
