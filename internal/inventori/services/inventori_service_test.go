package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/c14220110/klinik-apotek-backend/internal/inventori/models"
	"github.com/c14220110/klinik-apotek-backend/internal/testutil"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

func newInventoriService(t *testing.T) *InventoriService {
	t.Helper()
	return NewInventoriService(testutil.OpenDB(t), zerolog.Nop())
}

func TestCreateProduk_StokAwalMenyemaiLedger(t *testing.T) {
	s := newInventoriService(t)
	ctx := context.Background()

	p, err := s.CreateProduk(ctx, models.CreateProdukRequest{
		Nama: "Paracetamol 500mg", Kategori: "analgesik", HargaBeli: 500, HargaJual: 1000, StokAwal: 50, Satuan: "tablet",
	})
	require.NoError(t, err)
	require.Equal(t, 50, p.Stok)

	ledger, err := s.ListPergerakan(ctx, p.ID, 10, 1)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	require.Equal(t, models.PergerakanMasuk, ledger[0].Jenis)
	require.Equal(t, models.AlasanInitial, ledger[0].Alasan)
	require.Equal(t, 50, ledger[0].Jumlah)
}

func TestCreateProduk_TanpaStokAwal(t *testing.T) {
	s := newInventoriService(t)
	ctx := context.Background()

	p, err := s.CreateProduk(ctx, models.CreateProdukRequest{Nama: "Amoxicillin 500mg"})
	require.NoError(t, err)

	ledger, err := s.ListPergerakan(ctx, p.ID, 10, 1)
	require.NoError(t, err)
	require.Empty(t, ledger)
}

func TestCatatPergerakan_MasukDanKeluar(t *testing.T) {
	s := newInventoriService(t)
	ctx := context.Background()

	p, err := s.CreateProduk(ctx, models.CreateProdukRequest{Nama: "Paracetamol 500mg", StokAwal: 10})
	require.NoError(t, err)

	_, err = s.CatatPergerakan(ctx, models.CatatPergerakanRequest{
		IDProduk: p.ID, Jenis: models.PergerakanMasuk, Jumlah: 5, Alasan: models.AlasanPurchase,
	})
	require.NoError(t, err)

	_, err = s.CatatPergerakan(ctx, models.CatatPergerakanRequest{
		IDProduk: p.ID, Jenis: models.PergerakanKeluar, Jumlah: 3, Alasan: models.AlasanDamaged, Catatan: "kemasan rusak",
	})
	require.NoError(t, err)

	ulang, err := s.GetProduk(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 12, ulang.Stok)

	ledger, err := s.ListPergerakan(ctx, p.ID, 10, 1)
	require.NoError(t, err)
	require.Len(t, ledger, 3)
	// Terbaru dulu.
	require.Equal(t, models.AlasanDamaged, ledger[0].Alasan)
}

func TestCatatPergerakan_StokTidakCukup(t *testing.T) {
	s := newInventoriService(t)
	ctx := context.Background()

	p, err := s.CreateProduk(ctx, models.CreateProdukRequest{Nama: "Paracetamol 500mg", StokAwal: 5})
	require.NoError(t, err)

	_, err = s.CatatPergerakan(ctx, models.CatatPergerakanRequest{
		IDProduk: p.ID, Jenis: models.PergerakanKeluar, Jumlah: 8, Alasan: models.AlasanAdjustment,
	})
	require.Equal(t, apperr.KindInsufficientStock, apperr.KindOf(err))
	// Pesan menyebut stok tersedia.
	require.Contains(t, apperr.Message(err), "tersedia 5")

	// Stok dan ledger tidak tersentuh.
	ulang, err := s.GetProduk(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 5, ulang.Stok)

	ledger, err := s.ListPergerakan(ctx, p.ID, 10, 1)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
}

func TestCatatPergerakan_Validasi(t *testing.T) {
	s := newInventoriService(t)
	ctx := context.Background()

	p, err := s.CreateProduk(ctx, models.CreateProdukRequest{Nama: "Paracetamol 500mg", StokAwal: 5})
	require.NoError(t, err)

	_, err = s.CatatPergerakan(ctx, models.CatatPergerakanRequest{IDProduk: p.ID, Jenis: models.PergerakanMasuk, Jumlah: 0, Alasan: models.AlasanPurchase})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = s.CatatPergerakan(ctx, models.CatatPergerakanRequest{IDProduk: p.ID, Jenis: "TRANSFER", Jumlah: 1, Alasan: models.AlasanPurchase})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = s.CatatPergerakan(ctx, models.CatatPergerakanRequest{IDProduk: p.ID, Jenis: models.PergerakanMasuk, Jumlah: 1, Alasan: "HIBAH"})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = s.CatatPergerakan(ctx, models.CatatPergerakanRequest{IDProduk: 999, Jenis: models.PergerakanKeluar, Jumlah: 1, Alasan: models.AlasanSale})
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListStokMenipis(t *testing.T) {
	s := newInventoriService(t)
	ctx := context.Background()

	_, err := s.CreateProduk(ctx, models.CreateProdukRequest{Nama: "Paracetamol 500mg", StokAwal: 3})
	require.NoError(t, err)
	_, err = s.CreateProduk(ctx, models.CreateProdukRequest{Nama: "Amoxicillin 500mg", StokAwal: 100})
	require.NoError(t, err)

	list, err := s.ListStokMenipis(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Paracetamol 500mg", list[0].Nama)
}

func TestDeleteProduk_IkutMenghapusLedger(t *testing.T) {
	s := newInventoriService(t)
	ctx := context.Background()

	p, err := s.CreateProduk(ctx, models.CreateProdukRequest{Nama: "Paracetamol 500mg", StokAwal: 10})
	require.NoError(t, err)

	require.NoError(t, s.DeleteProduk(ctx, p.ID))

	_, err = s.GetProduk(ctx, p.ID)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	var n int
	require.NoError(t, s.DB.QueryRow("SELECT COUNT(*) FROM Pergerakan_Stok WHERE id_produk = ?", p.ID).Scan(&n))
	require.Equal(t, 0, n)
}
