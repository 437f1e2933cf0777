package models

import (
	"time"

	pmodels "github.com/c14220110/klinik-apotek-backend/internal/pendaftaran/models"
)

// Status antrian rawat jalan. Progresinya linear sampai completed.
const (
	StatusWaiting    = "waiting"
	StatusCalled     = "called"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Screening adalah hasil pemeriksaan awal suster sebelum pasien masuk dokter.
type Screening struct {
	ID              int64     `json:"id_screening" db:"id_screening"`
	IDPasien        int64     `json:"id_pasien" db:"id_pasien"`
	Keluhan         string    `json:"keluhan" db:"keluhan"`
	SuhuTubuh       *float64  `json:"suhu_tubuh,omitempty" db:"suhu_tubuh"`
	Tensi           *string   `json:"tensi,omitempty" db:"tensi"`
	DetakNadi       *int      `json:"detak_nadi,omitempty" db:"detak_nadi"`
	LajuRespirasi   *int      `json:"laju_respirasi,omitempty" db:"laju_respirasi"`
	BeratBadan      *float64  `json:"berat_badan,omitempty" db:"berat_badan"`
	TinggiBadan     *float64  `json:"tinggi_badan,omitempty" db:"tinggi_badan"`
	LingkarPerut    *float64  `json:"lingkar_perut,omitempty" db:"lingkar_perut"`
	SaturasiOksigen *float64  `json:"saturasi_oksigen,omitempty" db:"saturasi_oksigen"`
	IsBPJSAktif     bool      `json:"is_bpjs_aktif" db:"is_bpjs_aktif"`
	Status          string    `json:"status" db:"status"`
	NomorAntrian    int       `json:"nomor_antrian" db:"nomor_antrian"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// CreateScreeningRequest adalah payload input screening dari suster.
type CreateScreeningRequest struct {
	IDPasien        int64                 `json:"id_pasien"`
	Keluhan         string                `json:"keluhan"`
	SuhuTubuh       *float64              `json:"suhu_tubuh"`
	Tensi           *string               `json:"tensi"`
	DetakNadi       *int                  `json:"detak_nadi"`
	LajuRespirasi   *int                  `json:"laju_respirasi"`
	BeratBadan      *float64              `json:"berat_badan"`
	TinggiBadan     *float64              `json:"tinggi_badan"`
	LingkarPerut    *float64              `json:"lingkar_perut"`
	SaturasiOksigen *float64              `json:"saturasi_oksigen"`
	IsBPJSAktif     bool                  `json:"is_bpjs_aktif"`
	NoBPJS          *string               `json:"no_bpjs"`
	PerbaruiBPJS    bool                  `json:"perbarui_bpjs"`
	Alergi          []pmodels.AlergiInput `json:"alergi"`
}

// AntrianEntry adalah satu baris layar antrian rawat jalan.
type AntrianEntry struct {
	IDAntrian    int64  `json:"id_antrian" db:"id_antrian"`
	IDScreening  int64  `json:"id_screening" db:"id_screening"`
	IDPasien     int64  `json:"id_pasien" db:"id_pasien"`
	NamaPasien   string `json:"nama_pasien" db:"nama"`
	NomorAntrian int    `json:"nomor_antrian" db:"nomor_antrian"`
	NomorTampil  string `json:"nomor_tampil"`
	Status       string `json:"status" db:"status"`
}
