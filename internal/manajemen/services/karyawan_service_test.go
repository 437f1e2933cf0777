package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/c14220110/klinik-apotek-backend/internal/manajemen/models"
	"github.com/c14220110/klinik-apotek-backend/internal/testutil"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "rahasia-test")

	s := NewKaryawanService(testutil.OpenDB(t), zerolog.Nop())
	ctx := context.Background()

	_, err := s.RegisterKaryawan(ctx, "Dewi Lestari", "dewi", "rahasia123", "apoteker")
	require.NoError(t, err)

	resp, err := s.Login(ctx, models.LoginRequest{Username: "dewi", Password: "rahasia123"})
	require.NoError(t, err)
	require.Equal(t, "Dewi Lestari", resp.Nama)
	require.Equal(t, "apoteker", resp.Role)
	require.NotEmpty(t, resp.Token)
}

func TestLogin_KredensialSalah(t *testing.T) {
	t.Setenv("JWT_SECRET", "rahasia-test")

	s := NewKaryawanService(testutil.OpenDB(t), zerolog.Nop())
	ctx := context.Background()

	_, err := s.RegisterKaryawan(ctx, "Dewi Lestari", "dewi", "rahasia123", "apoteker")
	require.NoError(t, err)

	_, err = s.Login(ctx, models.LoginRequest{Username: "dewi", Password: "salah"})
	require.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	_, err = s.Login(ctx, models.LoginRequest{Username: "tidak-ada", Password: "rahasia123"})
	require.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	_, err = s.Login(ctx, models.LoginRequest{Username: "", Password: ""})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestRegisterKaryawan_UsernameGanda(t *testing.T) {
	s := NewKaryawanService(testutil.OpenDB(t), zerolog.Nop())
	ctx := context.Background()

	_, err := s.RegisterKaryawan(ctx, "Dewi", "dewi", "rahasia123", "apoteker")
	require.NoError(t, err)

	_, err = s.RegisterKaryawan(ctx, "Dewi Lain", "dewi", "rahasia456", "kasir")
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = s.RegisterKaryawan(ctx, "Dewi", "dewi2", "123", "kasir")
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
