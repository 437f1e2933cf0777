// Package testutil menyediakan database sqlite in-memory untuk test service.
// SQL service ditulis dengan placeholder `?` yang portabel, sehingga query yang
// sama berjalan di MariaDB (produksi) dan sqlite (test).
package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

var schema = []string{
	`CREATE TABLE Nomor_Urut (
		scope          TEXT NOT NULL,
		tanggal        TEXT NOT NULL,
		nomor_terakhir INTEGER NOT NULL,
		UNIQUE (scope, tanggal)
	)`,
	`CREATE TABLE Pasien (
		id_pasien     INTEGER PRIMARY KEY AUTOINCREMENT,
		no_rm         INTEGER NOT NULL UNIQUE,
		nama          TEXT NOT NULL,
		jenis_kelamin TEXT NOT NULL,
		tanggal_lahir TEXT NOT NULL,
		alamat        TEXT,
		nik           TEXT NOT NULL UNIQUE,
		no_telp       TEXT,
		is_bpjs       INTEGER NOT NULL DEFAULT 0,
		no_bpjs       TEXT UNIQUE,
		created_at    DATETIME NOT NULL,
		updated_at    DATETIME NOT NULL
	)`,
	`CREATE TABLE Alergi_Pasien (
		id_alergi         INTEGER PRIMARY KEY AUTOINCREMENT,
		id_pasien         INTEGER NOT NULL REFERENCES Pasien (id_pasien),
		nama_alergi       TEXT NOT NULL,
		jenis             TEXT,
		tingkat_keparahan TEXT,
		reaksi            TEXT,
		catatan           TEXT,
		status            TEXT NOT NULL,
		dilaporkan_pada   DATETIME NOT NULL
	)`,
	`CREATE TABLE Screening (
		id_screening     INTEGER PRIMARY KEY AUTOINCREMENT,
		id_pasien        INTEGER NOT NULL REFERENCES Pasien (id_pasien),
		keluhan          TEXT NOT NULL,
		suhu_tubuh       REAL,
		tensi            TEXT,
		detak_nadi       INTEGER,
		laju_respirasi   INTEGER,
		berat_badan      REAL,
		tinggi_badan     REAL,
		lingkar_perut    REAL,
		saturasi_oksigen REAL,
		is_bpjs_aktif    INTEGER NOT NULL DEFAULT 0,
		status           TEXT NOT NULL,
		nomor_antrian    INTEGER NOT NULL,
		created_at       DATETIME NOT NULL
	)`,
	`CREATE TABLE Antrian (
		id_antrian    INTEGER PRIMARY KEY AUTOINCREMENT,
		id_screening  INTEGER NOT NULL UNIQUE REFERENCES Screening (id_screening),
		id_pasien     INTEGER NOT NULL,
		nomor_antrian INTEGER NOT NULL,
		status        TEXT NOT NULL,
		created_at    DATETIME NOT NULL
	)`,
	`CREATE TABLE Rekam_Medis (
		id_rm             INTEGER PRIMARY KEY AUTOINCREMENT,
		id_pasien         INTEGER NOT NULL REFERENCES Pasien (id_pasien),
		id_screening      INTEGER NOT NULL UNIQUE REFERENCES Screening (id_screening),
		diagnosis         TEXT NOT NULL,
		kode_icd          TEXT,
		catatan_klinis    TEXT,
		nama_dokter       TEXT NOT NULL,
		jenis_kunjungan   TEXT NOT NULL,
		tanggal_kunjungan DATETIME NOT NULL,
		created_at        DATETIME NOT NULL
	)`,
	`CREATE TABLE Resep (
		id_resep      INTEGER PRIMARY KEY AUTOINCREMENT,
		id_rm         INTEGER NOT NULL REFERENCES Rekam_Medis (id_rm),
		jenis         TEXT NOT NULL,
		catatan       TEXT,
		dosis_racikan TEXT,
		created_at    DATETIME NOT NULL
	)`,
	`CREATE TABLE Resep_Item (
		id_item   INTEGER PRIMARY KEY AUTOINCREMENT,
		id_resep  INTEGER NOT NULL REFERENCES Resep (id_resep),
		nama_obat TEXT NOT NULL,
		dosis     TEXT,
		jumlah    INTEGER NOT NULL
	)`,
	`CREATE TABLE Antrian_Farmasi (
		id_antrian_farmasi INTEGER PRIMARY KEY AUTOINCREMENT,
		id_rm              INTEGER NOT NULL UNIQUE REFERENCES Rekam_Medis (id_rm),
		nomor_antrian      INTEGER NOT NULL,
		status             TEXT NOT NULL,
		nama_apoteker      TEXT,
		created_at         DATETIME NOT NULL,
		updated_at         DATETIME NOT NULL
	)`,
	`CREATE TABLE Produk_Apotek (
		id_produk           INTEGER PRIMARY KEY AUTOINCREMENT,
		nama                TEXT NOT NULL,
		kategori            TEXT,
		produsen            TEXT,
		id_supplier         INTEGER,
		harga_beli          REAL NOT NULL DEFAULT 0,
		harga_jual          REAL NOT NULL DEFAULT 0,
		stok                INTEGER NOT NULL DEFAULT 0,
		satuan              TEXT,
		tanggal_kedaluwarsa TEXT,
		nomor_batch         TEXT,
		kandungan           TEXT,
		created_at          DATETIME NOT NULL,
		updated_at          DATETIME NOT NULL
	)`,
	`CREATE TABLE Pergerakan_Stok (
		id_pergerakan INTEGER PRIMARY KEY AUTOINCREMENT,
		id_produk     INTEGER NOT NULL REFERENCES Produk_Apotek (id_produk),
		jenis         TEXT NOT NULL,
		jumlah        INTEGER NOT NULL,
		alasan        TEXT NOT NULL,
		catatan       TEXT,
		tanggal       DATETIME NOT NULL,
		created_at    DATETIME NOT NULL
	)`,
	`CREATE TABLE Transaksi (
		id_transaksi   INTEGER PRIMARY KEY AUTOINCREMENT,
		kode_transaksi TEXT NOT NULL UNIQUE,
		tanggal        DATETIME NOT NULL,
		total          REAL NOT NULL,
		dibayar        REAL NOT NULL,
		kembalian      REAL NOT NULL,
		status         TEXT NOT NULL,
		catatan        TEXT,
		created_at     DATETIME NOT NULL
	)`,
	`CREATE TABLE Transaksi_Detail (
		id_detail    INTEGER PRIMARY KEY AUTOINCREMENT,
		id_transaksi INTEGER NOT NULL REFERENCES Transaksi (id_transaksi),
		id_produk    INTEGER NOT NULL,
		jumlah       INTEGER NOT NULL,
		harga        REAL NOT NULL
	)`,
	`CREATE TABLE Catatan_Keuangan (
		id_catatan INTEGER PRIMARY KEY AUTOINCREMENT,
		jenis      TEXT NOT NULL,
		kategori   TEXT NOT NULL,
		jumlah     REAL NOT NULL,
		deskripsi  TEXT,
		tanggal    DATETIME NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE Form_Vaksin (
		id_form      INTEGER PRIMARY KEY AUTOINCREMENT,
		id_pasien    INTEGER NOT NULL REFERENCES Pasien (id_pasien),
		jenis_vaksin TEXT NOT NULL,
		nomor_urut   INTEGER NOT NULL,
		status       TEXT NOT NULL,
		id_dokumen   TEXT,
		tanggal      DATETIME NOT NULL,
		created_at   DATETIME NOT NULL
	)`,
	`CREATE TABLE Karyawan (
		id_karyawan   INTEGER PRIMARY KEY AUTOINCREMENT,
		nama          TEXT NOT NULL,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL,
		created_at    DATETIME NOT NULL
	)`,
}

// OpenDB membuka database in-memory baru dengan skema lengkap.
func OpenDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("gagal membuka sqlite in-memory: %v", err)
	}
	// Satu koneksi saja; tiap koneksi :memory: adalah database terpisah.
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("gagal membuat skema: %v\n%s", err, stmt)
		}
	}

	t.Cleanup(func() { db.Close() })
	return db
}
