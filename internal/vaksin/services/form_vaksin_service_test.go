package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	pmodels "github.com/c14220110/klinik-apotek-backend/internal/pendaftaran/models"
	pservices "github.com/c14220110/klinik-apotek-backend/internal/pendaftaran/services"
	"github.com/c14220110/klinik-apotek-backend/internal/testutil"
	"github.com/c14220110/klinik-apotek-backend/internal/vaksin/models"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

func TestCreateForm_NomorUrutSendiri(t *testing.T) {
	db := testutil.OpenDB(t)
	s := NewFormVaksinService(db, zerolog.Nop())
	ctx := context.Background()

	ps := pservices.NewPasienService(db, zerolog.Nop())
	p, err := ps.RegisterPasien(ctx, pmodels.RegisterPasienRequest{Nama: "Budi", NIK: "111"})
	require.NoError(t, err)

	f1, err := s.CreateForm(ctx, models.CreateFormVaksinRequest{IDPasien: p.ID, JenisVaksin: "influenza"})
	require.NoError(t, err)
	require.Equal(t, 1, f1.NomorUrut)
	require.Equal(t, models.StatusDibuat, f1.Status)

	f2, err := s.CreateForm(ctx, models.CreateFormVaksinRequest{IDPasien: p.ID, JenisVaksin: "hepatitis B"})
	require.NoError(t, err)
	require.Equal(t, 2, f2.NomorUrut)

	list, err := s.ListFormHariIni(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "influenza", list[0].JenisVaksin)
}

func TestCreateForm_PasienTidakAda(t *testing.T) {
	db := testutil.OpenDB(t)
	s := NewFormVaksinService(db, zerolog.Nop())

	_, err := s.CreateForm(context.Background(), models.CreateFormVaksinRequest{IDPasien: 999, JenisVaksin: "influenza"})
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSetDokumen(t *testing.T) {
	db := testutil.OpenDB(t)
	s := NewFormVaksinService(db, zerolog.Nop())
	ctx := context.Background()

	ps := pservices.NewPasienService(db, zerolog.Nop())
	p, err := ps.RegisterPasien(ctx, pmodels.RegisterPasienRequest{Nama: "Budi", NIK: "111"})
	require.NoError(t, err)

	f, err := s.CreateForm(ctx, models.CreateFormVaksinRequest{IDPasien: p.ID, JenisVaksin: "influenza"})
	require.NoError(t, err)

	require.NoError(t, s.SetDokumen(ctx, f.ID, "doc-2026-0001"))

	list, err := s.ListFormHariIni(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, models.StatusDokumenTerbit, list[0].Status)
	require.NotNil(t, list[0].IDDokumen)
	require.Equal(t, "doc-2026-0001", *list[0].IDDokumen)

	err = s.SetDokumen(ctx, 999, "doc-x")
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	err = s.SetDokumen(ctx, f.ID, " ")
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
