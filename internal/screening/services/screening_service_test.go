package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	pmodels "github.com/c14220110/klinik-apotek-backend/internal/pendaftaran/models"
	pservices "github.com/c14220110/klinik-apotek-backend/internal/pendaftaran/services"
	"github.com/c14220110/klinik-apotek-backend/internal/screening/models"
	"github.com/c14220110/klinik-apotek-backend/internal/testutil"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

func buatPasien(t *testing.T, db *sql.DB, nama, nik string) int64 {
	t.Helper()
	ps := pservices.NewPasienService(db, zerolog.Nop())
	p, err := ps.RegisterPasien(context.Background(), pmodels.RegisterPasienRequest{Nama: nama, NIK: nik})
	require.NoError(t, err)
	return p.ID
}

func TestCreateScreening_NomorAntrianBerurutan(t *testing.T) {
	db := testutil.OpenDB(t)
	s := NewScreeningService(db, zerolog.Nop())
	ctx := context.Background()

	idBudi := buatPasien(t, db, "Budi", "111")
	idSiti := buatPasien(t, db, "Siti", "222")

	sc1, err := s.CreateScreening(ctx, models.CreateScreeningRequest{IDPasien: idBudi, Keluhan: "demam"})
	require.NoError(t, err)
	require.Equal(t, 1, sc1.NomorAntrian)
	require.Equal(t, models.StatusWaiting, sc1.Status)

	sc2, err := s.CreateScreening(ctx, models.CreateScreeningRequest{IDPasien: idSiti, Keluhan: "batuk"})
	require.NoError(t, err)
	require.Equal(t, 2, sc2.NomorAntrian)

	// Baris antrian ikut dibuat dalam transaksi yang sama.
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM Antrian").Scan(&n))
	require.Equal(t, 2, n)
}

func TestCreateScreening_PasienTidakAda(t *testing.T) {
	db := testutil.OpenDB(t)
	s := NewScreeningService(db, zerolog.Nop())

	_, err := s.CreateScreening(context.Background(), models.CreateScreeningRequest{IDPasien: 999, Keluhan: "demam"})
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCreateScreening_PerbaruiBPJS(t *testing.T) {
	db := testutil.OpenDB(t)
	s := NewScreeningService(db, zerolog.Nop())
	ctx := context.Background()

	idBudi := buatPasien(t, db, "Budi", "111")
	noBPJS := "0001234567890"

	_, err := s.CreateScreening(ctx, models.CreateScreeningRequest{
		IDPasien: idBudi, Keluhan: "demam", IsBPJSAktif: true, NoBPJS: &noBPJS, PerbaruiBPJS: true,
	})
	require.NoError(t, err)

	var tersimpan string
	require.NoError(t, db.QueryRow("SELECT no_bpjs FROM Pasien WHERE id_pasien = ?", idBudi).Scan(&tersimpan))
	require.Equal(t, noBPJS, tersimpan)
}

func TestCreateScreening_BPJSMilikPasienLain(t *testing.T) {
	db := testutil.OpenDB(t)
	s := NewScreeningService(db, zerolog.Nop())
	ctx := context.Background()

	idBudi := buatPasien(t, db, "Budi", "111")
	idSiti := buatPasien(t, db, "Siti", "222")
	noBPJS := "0001234567890"

	_, err := s.CreateScreening(ctx, models.CreateScreeningRequest{
		IDPasien: idBudi, Keluhan: "demam", IsBPJSAktif: true, NoBPJS: &noBPJS, PerbaruiBPJS: true,
	})
	require.NoError(t, err)

	_, err = s.CreateScreening(ctx, models.CreateScreeningRequest{
		IDPasien: idSiti, Keluhan: "batuk", IsBPJSAktif: true, NoBPJS: &noBPJS, PerbaruiBPJS: true,
	})
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// Transaksi batal: tidak ada screening maupun antrian untuk Siti.
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM Screening WHERE id_pasien = ?", idSiti).Scan(&n))
	require.Equal(t, 0, n)
}

func TestCreateScreening_AlergiIkutTersimpan(t *testing.T) {
	db := testutil.OpenDB(t)
	s := NewScreeningService(db, zerolog.Nop())
	ctx := context.Background()

	idBudi := buatPasien(t, db, "Budi", "111")

	_, err := s.CreateScreening(ctx, models.CreateScreeningRequest{
		IDPasien: idBudi, Keluhan: "gatal",
		Alergi: []pmodels.AlergiInput{
			{NamaAlergi: "Penisilin", Jenis: "obat", TingkatKeparahan: "berat"},
			{NamaAlergi: ""}, // entri kosong dibuang
		},
	})
	require.NoError(t, err)

	ps := pservices.NewPasienService(db, zerolog.Nop())
	alergi, err := ps.ListAlergi(ctx, idBudi)
	require.NoError(t, err)
	require.Len(t, alergi, 1)
	require.Equal(t, "Penisilin", alergi[0].NamaAlergi)
	require.Equal(t, "aktif", alergi[0].Status)
}

func TestCreateScreening_AlergiTidakDigandakan(t *testing.T) {
	db := testutil.OpenDB(t)
	s := NewScreeningService(db, zerolog.Nop())
	ctx := context.Background()

	idBudi := buatPasien(t, db, "Budi", "111")

	_, err := s.CreateScreening(ctx, models.CreateScreeningRequest{
		IDPasien: idBudi, Keluhan: "gatal",
		Alergi: []pmodels.AlergiInput{{NamaAlergi: "Penisilin", Jenis: "obat"}},
	})
	require.NoError(t, err)

	ps := pservices.NewPasienService(db, zerolog.Nop())
	alergi, err := ps.ListAlergi(ctx, idBudi)
	require.NoError(t, err)
	require.Len(t, alergi, 1)

	// Kunjungan berikutnya merujuk id yang sama: tetap satu baris.
	_, err = s.CreateScreening(ctx, models.CreateScreeningRequest{
		IDPasien: idBudi, Keluhan: "gatal lagi",
		Alergi: []pmodels.AlergiInput{{IDAlergi: alergi[0].ID, NamaAlergi: "Penisilin", Jenis: "obat"}},
	})
	require.NoError(t, err)

	alergi, err = ps.ListAlergi(ctx, idBudi)
	require.NoError(t, err)
	require.Len(t, alergi, 1)
}

func TestCreateScreening_AlergiLaporUlang(t *testing.T) {
	db := testutil.OpenDB(t)
	s := NewScreeningService(db, zerolog.Nop())
	ps := pservices.NewPasienService(db, zerolog.Nop())
	ctx := context.Background()

	idBudi := buatPasien(t, db, "Budi", "111")

	_, err := s.CreateScreening(ctx, models.CreateScreeningRequest{
		IDPasien: idBudi, Keluhan: "gatal",
		Alergi: []pmodels.AlergiInput{{NamaAlergi: "Penisilin", Jenis: "obat", TingkatKeparahan: "ringan", Reaksi: "ruam"}},
	})
	require.NoError(t, err)

	alergi, err := ps.ListAlergi(ctx, idBudi)
	require.NoError(t, err)
	require.Len(t, alergi, 1)
	idAlergi := alergi[0].ID

	kemarin := time.Now().Add(-24 * time.Hour)
	mundurkanLaporan := func() {
		_, err := db.ExecContext(ctx,
			"UPDATE Alergi_Pasien SET dilaporkan_pada = ? WHERE id_alergi = ?", kemarin, idAlergi)
		require.NoError(t, err)
	}

	// Payload identik dengan baris tersimpan: hanya dilaporkan_pada yang maju.
	mundurkanLaporan()
	_, err = s.CreateScreening(ctx, models.CreateScreeningRequest{
		IDPasien: idBudi, Keluhan: "gatal lagi",
		Alergi: []pmodels.AlergiInput{{IDAlergi: idAlergi, NamaAlergi: "Penisilin", Jenis: "obat", TingkatKeparahan: "ringan", Reaksi: "ruam"}},
	})
	require.NoError(t, err)

	alergi, err = ps.ListAlergi(ctx, idBudi)
	require.NoError(t, err)
	require.Len(t, alergi, 1)
	require.Equal(t, "ringan", alergi[0].TingkatKeparahan)
	require.Equal(t, "ruam", alergi[0].Reaksi)
	require.True(t, alergi[0].DilaporkanPada.After(kemarin))

	// Ada field yang berubah: seluruh field diperbarui bersama waktu lapor.
	mundurkanLaporan()
	_, err = s.CreateScreening(ctx, models.CreateScreeningRequest{
		IDPasien: idBudi, Keluhan: "sesak",
		Alergi: []pmodels.AlergiInput{{IDAlergi: idAlergi, NamaAlergi: "Penisilin", Jenis: "obat", TingkatKeparahan: "berat", Reaksi: "sesak napas", Catatan: "rujuk alergolog"}},
	})
	require.NoError(t, err)

	alergi, err = ps.ListAlergi(ctx, idBudi)
	require.NoError(t, err)
	require.Len(t, alergi, 1)
	require.Equal(t, "berat", alergi[0].TingkatKeparahan)
	require.Equal(t, "sesak napas", alergi[0].Reaksi)
	require.Equal(t, "rujuk alergolog", alergi[0].Catatan)
	require.True(t, alergi[0].DilaporkanPada.After(kemarin))
}

func TestListScreeningByPasien_TerbaruDulu(t *testing.T) {
	db := testutil.OpenDB(t)
	s := NewScreeningService(db, zerolog.Nop())
	ctx := context.Background()

	idBudi := buatPasien(t, db, "Budi", "111")

	_, err := s.CreateScreening(ctx, models.CreateScreeningRequest{IDPasien: idBudi, Keluhan: "demam"})
	require.NoError(t, err)
	_, err = s.CreateScreening(ctx, models.CreateScreeningRequest{IDPasien: idBudi, Keluhan: "batuk"})
	require.NoError(t, err)

	list, err := s.ListScreeningByPasien(ctx, idBudi)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "batuk", list[0].Keluhan)
}
