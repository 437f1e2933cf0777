package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/c14220110/klinik-apotek-backend/internal/pendaftaran/models"
	"github.com/c14220110/klinik-apotek-backend/internal/testutil"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

func newPasienService(t *testing.T) *PasienService {
	t.Helper()
	return NewPasienService(testutil.OpenDB(t), zerolog.Nop())
}

func TestRegisterPasien_NoRMBerurutan(t *testing.T) {
	s := newPasienService(t)
	ctx := context.Background()

	p1, err := s.RegisterPasien(ctx, models.RegisterPasienRequest{
		Nama: "Budi Santoso", NIK: "3578010101900001", JenisKelamin: "L", TanggalLahir: "1990-01-01",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1001), p1.NoRM)

	p2, err := s.RegisterPasien(ctx, models.RegisterPasienRequest{
		Nama: "Siti Aminah", NIK: "3578010101900002", JenisKelamin: "P",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1002), p2.NoRM)
}

func TestRegisterPasien_NIKGanda(t *testing.T) {
	s := newPasienService(t)
	ctx := context.Background()

	_, err := s.RegisterPasien(ctx, models.RegisterPasienRequest{Nama: "Budi", NIK: "111"})
	require.NoError(t, err)

	_, err = s.RegisterPasien(ctx, models.RegisterPasienRequest{Nama: "Budi Lain", NIK: "111"})
	require.Error(t, err)
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestRegisterPasien_Validasi(t *testing.T) {
	s := newPasienService(t)
	ctx := context.Background()

	_, err := s.RegisterPasien(ctx, models.RegisterPasienRequest{NIK: "111"})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = s.RegisterPasien(ctx, models.RegisterPasienRequest{Nama: "Budi"})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = s.RegisterPasien(ctx, models.RegisterPasienRequest{Nama: "Budi", NIK: "222", TanggalLahir: "01-01-1990"})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestUpdatePasien(t *testing.T) {
	s := newPasienService(t)
	ctx := context.Background()

	p, err := s.RegisterPasien(ctx, models.RegisterPasienRequest{Nama: "Budi", NIK: "111"})
	require.NoError(t, err)

	err = s.UpdatePasien(ctx, p.ID, models.UpdatePasienRequest{Nama: "Budi Santoso", Alamat: "Jl. Melati 3"})
	require.NoError(t, err)

	ulang, err := s.GetPasien(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Budi Santoso", ulang.Nama)
	require.Equal(t, "Jl. Melati 3", ulang.Alamat)

	err = s.UpdatePasien(ctx, 9999, models.UpdatePasienRequest{Nama: "Siapa"})
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListPasien_CariDanPagination(t *testing.T) {
	s := newPasienService(t)
	ctx := context.Background()

	for _, p := range []models.RegisterPasienRequest{
		{Nama: "Budi Santoso", NIK: "111"},
		{Nama: "Siti Aminah", NIK: "222"},
		{Nama: "Budiman", NIK: "333"},
	} {
		_, err := s.RegisterPasien(ctx, p)
		require.NoError(t, err)
	}

	list, total, err := s.ListPasien(ctx, "budi", 10, 1)
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, list, 2)

	list, total, err = s.ListPasien(ctx, "", 2, 2)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, list, 1)
}

func TestDeletePasien_DitolakJikaPunyaRiwayat(t *testing.T) {
	s := newPasienService(t)
	ctx := context.Background()

	p, err := s.RegisterPasien(ctx, models.RegisterPasienRequest{Nama: "Budi", NIK: "111"})
	require.NoError(t, err)

	_, err = s.DB.Exec(`
		INSERT INTO Screening (id_pasien, keluhan, is_bpjs_aktif, status, nomor_antrian, created_at)
		VALUES (?, 'demam', 0, 'completed', 1, ?)`, p.ID, time.Now())
	require.NoError(t, err)

	err = s.DeletePasien(ctx, p.ID)
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// Masih ada.
	_, err = s.GetPasien(ctx, p.ID)
	require.NoError(t, err)
}

func TestDeletePasien_TanpaRiwayat(t *testing.T) {
	s := newPasienService(t)
	ctx := context.Background()

	p, err := s.RegisterPasien(ctx, models.RegisterPasienRequest{Nama: "Budi", NIK: "111"})
	require.NoError(t, err)

	require.NoError(t, s.DeletePasien(ctx, p.ID))

	_, err = s.GetPasien(ctx, p.ID)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
