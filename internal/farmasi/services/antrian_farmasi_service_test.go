package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	dmodels "github.com/c14220110/klinik-apotek-backend/internal/dokter/models"
	dservices "github.com/c14220110/klinik-apotek-backend/internal/dokter/services"
	pmodels "github.com/c14220110/klinik-apotek-backend/internal/pendaftaran/models"
	pservices "github.com/c14220110/klinik-apotek-backend/internal/pendaftaran/services"
	smodels "github.com/c14220110/klinik-apotek-backend/internal/screening/models"
	sservices "github.com/c14220110/klinik-apotek-backend/internal/screening/services"
	"github.com/c14220110/klinik-apotek-backend/internal/testutil"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

// buatAntrianFarmasi menjalankan alur pendaftaran -> screening -> pemeriksaan
// dengan resep, sehingga ada satu antrian farmasi berstatus waiting.
func buatAntrianFarmasi(t *testing.T, db *sql.DB) int64 {
	t.Helper()
	ctx := context.Background()

	ps := pservices.NewPasienService(db, zerolog.Nop())
	p, err := ps.RegisterPasien(ctx, pmodels.RegisterPasienRequest{Nama: "Budi", NIK: "111"})
	require.NoError(t, err)

	ss := sservices.NewScreeningService(db, zerolog.Nop())
	sc, err := ss.CreateScreening(ctx, smodels.CreateScreeningRequest{IDPasien: p.ID, Keluhan: "demam"})
	require.NoError(t, err)

	ds := dservices.NewRekamMedisService(db, zerolog.Nop())
	result, err := ds.CreateRekamMedis(ctx, dmodels.CreateRekamMedisRequest{
		IDPasien: p.ID, IDScreening: sc.ID,
		Diagnosis: "ISPA", NamaDokter: "dr. Ratna",
		Resep: []dmodels.ResepInput{
			{Items: []dmodels.ResepItemInput{{NamaObat: "Paracetamol 500mg", Jumlah: 10}}},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result.IDAntrianFarmasi)
	return *result.IDAntrianFarmasi
}

func TestAntrianFarmasi_TransisiLengkap(t *testing.T) {
	db := testutil.OpenDB(t)
	s := NewAntrianFarmasiService(db, zerolog.Nop())
	ctx := context.Background()

	id := buatAntrianFarmasi(t, db)

	list, err := s.GetAntrianHariIni(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, dmodels.FarmasiWaiting, list[0].Status)
	require.Equal(t, "001", list[0].NomorTampil)

	e, err := s.Siapkan(ctx, id, "Apt. Dewi")
	require.NoError(t, err)
	require.Equal(t, dmodels.FarmasiPreparing, e.Status)
	require.NotNil(t, e.NamaApoteker)
	require.Equal(t, "Apt. Dewi", *e.NamaApoteker)

	e, err = s.TandaiSiap(ctx, id)
	require.NoError(t, err)
	require.Equal(t, dmodels.FarmasiReady, e.Status)

	e, err = s.Serahkan(ctx, id)
	require.NoError(t, err)
	require.Equal(t, dmodels.FarmasiDispensed, e.Status)
}

func TestAntrianFarmasi_TransisiSalahTidakMengubahStatus(t *testing.T) {
	db := testutil.OpenDB(t)
	s := NewAntrianFarmasiService(db, zerolog.Nop())
	ctx := context.Background()

	id := buatAntrianFarmasi(t, db)

	// Lompat langsung ke serahkan dari waiting: konflik.
	_, err := s.Serahkan(ctx, id)
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	var status string
	require.NoError(t, db.QueryRow("SELECT status FROM Antrian_Farmasi WHERE id_antrian_farmasi = ?", id).Scan(&status))
	require.Equal(t, dmodels.FarmasiWaiting, status)

	// Tidak ada transisi mundur dari dispensed.
	_, err = s.Siapkan(ctx, id, "Apt. Dewi")
	require.NoError(t, err)
	_, err = s.TandaiSiap(ctx, id)
	require.NoError(t, err)
	_, err = s.Serahkan(ctx, id)
	require.NoError(t, err)

	_, err = s.TandaiSiap(ctx, id)
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestAntrianFarmasi_SiapkanTanpaApoteker(t *testing.T) {
	db := testutil.OpenDB(t)
	s := NewAntrianFarmasiService(db, zerolog.Nop())

	id := buatAntrianFarmasi(t, db)

	_, err := s.Siapkan(context.Background(), id, "  ")
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAntrianFarmasi_TidakDitemukan(t *testing.T) {
	db := testutil.OpenDB(t)
	s := NewAntrianFarmasiService(db, zerolog.Nop())

	_, err := s.TandaiSiap(context.Background(), 999)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
