package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/c14220110/klinik-apotek-backend/internal/screening/models"
	"github.com/c14220110/klinik-apotek-backend/internal/testutil"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

func TestAntrian_TransisiLinear(t *testing.T) {
	db := testutil.OpenDB(t)
	ss := NewScreeningService(db, zerolog.Nop())
	as := NewAntrianService(db, zerolog.Nop())
	ctx := context.Background()

	idBudi := buatPasien(t, db, "Budi", "111")
	_, err := ss.CreateScreening(ctx, models.CreateScreeningRequest{IDPasien: idBudi, Keluhan: "demam"})
	require.NoError(t, err)

	list, err := as.GetAntrianHariIni(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, models.StatusWaiting, list[0].Status)
	require.Equal(t, "001", list[0].NomorTampil)
	idAntrian := list[0].IDAntrian

	e, err := as.PanggilPasien(ctx, idAntrian)
	require.NoError(t, err)
	require.Equal(t, models.StatusCalled, e.Status)

	e, err = as.MulaiPemeriksaan(ctx, idAntrian)
	require.NoError(t, err)
	require.Equal(t, models.StatusInProgress, e.Status)

	// Status screening mengikuti antrian.
	var status string
	require.NoError(t, db.QueryRow("SELECT status FROM Screening WHERE id_screening = ?", e.IDScreening).Scan(&status))
	require.Equal(t, models.StatusInProgress, status)
}

func TestAntrian_TransisiTidakValid(t *testing.T) {
	db := testutil.OpenDB(t)
	ss := NewScreeningService(db, zerolog.Nop())
	as := NewAntrianService(db, zerolog.Nop())
	ctx := context.Background()

	idBudi := buatPasien(t, db, "Budi", "111")
	_, err := ss.CreateScreening(ctx, models.CreateScreeningRequest{IDPasien: idBudi, Keluhan: "demam"})
	require.NoError(t, err)

	list, err := as.GetAntrianHariIni(ctx)
	require.NoError(t, err)
	idAntrian := list[0].IDAntrian

	// Belum dipanggil, langsung mulai pemeriksaan: konflik, status tidak berubah.
	_, err = as.MulaiPemeriksaan(ctx, idAntrian)
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	var status string
	require.NoError(t, db.QueryRow("SELECT status FROM Antrian WHERE id_antrian = ?", idAntrian).Scan(&status))
	require.Equal(t, models.StatusWaiting, status)

	// Panggil dua kali: yang kedua konflik.
	_, err = as.PanggilPasien(ctx, idAntrian)
	require.NoError(t, err)
	_, err = as.PanggilPasien(ctx, idAntrian)
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestAntrian_TidakDitemukan(t *testing.T) {
	db := testutil.OpenDB(t)
	as := NewAntrianService(db, zerolog.Nop())

	_, err := as.PanggilPasien(context.Background(), 999)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
