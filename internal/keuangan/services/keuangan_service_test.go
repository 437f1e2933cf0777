package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/c14220110/klinik-apotek-backend/internal/keuangan/models"
	"github.com/c14220110/klinik-apotek-backend/internal/testutil"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

func newKeuanganService(t *testing.T) *KeuanganService {
	t.Helper()
	return NewKeuanganService(testutil.OpenDB(t), zerolog.Nop())
}

func TestCatat_Manual(t *testing.T) {
	s := newKeuanganService(t)
	ctx := context.Background()

	c, err := s.Catat(ctx, models.CatatKeuanganRequest{
		Jenis: models.JenisPengeluaran, Kategori: "SALARY", Jumlah: 5000000, Deskripsi: "gaji apoteker Agustus",
	})
	require.NoError(t, err)
	require.NotZero(t, c.ID)

	list, err := s.List(ctx, models.JenisPengeluaran, 10, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "SALARY", list[0].Kategori)
}

func TestCatat_KategoriSalahJenis(t *testing.T) {
	s := newKeuanganService(t)
	ctx := context.Background()

	// SALARY adalah kategori pengeluaran, bukan pemasukan.
	_, err := s.Catat(ctx, models.CatatKeuanganRequest{
		Jenis: models.JenisPemasukan, Kategori: "SALARY", Jumlah: 1000,
	})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = s.Catat(ctx, models.CatatKeuanganRequest{
		Jenis: "TRANSFER", Kategori: "SALES", Jumlah: 1000,
	})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = s.Catat(ctx, models.CatatKeuanganRequest{
		Jenis: models.JenisPemasukan, Kategori: "SALES", Jumlah: 0,
	})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestList_FilterJenis(t *testing.T) {
	s := newKeuanganService(t)
	ctx := context.Background()

	_, err := s.Catat(ctx, models.CatatKeuanganRequest{Jenis: models.JenisPemasukan, Kategori: "SALES", Jumlah: 3000})
	require.NoError(t, err)
	_, err = s.Catat(ctx, models.CatatKeuanganRequest{Jenis: models.JenisPengeluaran, Kategori: "OPERATIONAL", Jumlah: 1000})
	require.NoError(t, err)

	list, err := s.List(ctx, "", 10, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)

	list, err = s.List(ctx, models.JenisPemasukan, 10, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, models.JenisPemasukan, list[0].Jenis)

	_, err = s.List(ctx, "TRANSFER", 10, 1)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestRingkasan(t *testing.T) {
	s := newKeuanganService(t)
	ctx := context.Background()

	_, err := s.Catat(ctx, models.CatatKeuanganRequest{Jenis: models.JenisPemasukan, Kategori: "SALES", Jumlah: 7500})
	require.NoError(t, err)
	_, err = s.Catat(ctx, models.CatatKeuanganRequest{Jenis: models.JenisPemasukan, Kategori: "CONSULTATION", Jumlah: 2500})
	require.NoError(t, err)
	_, err = s.Catat(ctx, models.CatatKeuanganRequest{Jenis: models.JenisPengeluaran, Kategori: "OPERATIONAL", Jumlah: 4000})
	require.NoError(t, err)

	now := time.Now()
	r, err := s.Ringkasan(ctx, now.AddDate(0, 0, -1), now.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Equal(t, float64(10000), r.TotalPemasukan)
	require.Equal(t, float64(4000), r.TotalPengeluaran)
	require.Equal(t, float64(6000), r.Saldo)

	// Rentang yang tidak memuat entri: semuanya nol.
	kosong, err := s.Ringkasan(ctx, now.AddDate(0, 0, -10), now.AddDate(0, 0, -5))
	require.NoError(t, err)
	require.Zero(t, kosong.TotalPemasukan)
	require.Zero(t, kosong.Saldo)
}
