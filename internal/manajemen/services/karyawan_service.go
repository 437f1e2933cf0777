package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/c14220110/klinik-apotek-backend/internal/manajemen/models"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
	"github.com/c14220110/klinik-apotek-backend/pkg/utils"
)

type KaryawanService struct {
	DB  *sql.DB
	Log zerolog.Logger
}

func NewKaryawanService(db *sql.DB, log zerolog.Logger) *KaryawanService {
	return &KaryawanService{DB: db, Log: log}
}

// Login memverifikasi kredensial karyawan dan menerbitkan token JWT.
func (s *KaryawanService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, apperr.Validationf("username dan password wajib diisi")
	}

	var k models.Karyawan
	err := s.DB.QueryRowContext(ctx, `
		SELECT id_karyawan, nama, username, password_hash, role
		FROM Karyawan WHERE username = ?`, req.Username,
	).Scan(&k.IDKaryawan, &k.Nama, &k.Username, &k.PasswordHash, &k.Role)
	if err == sql.ErrNoRows {
		return nil, apperr.Unauthorizedf("username atau password salah")
	}
	if err != nil {
		return nil, apperr.Persistence("gagal membaca data karyawan", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(k.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthorizedf("username atau password salah")
	}

	token, err := utils.GenerateJWTToken(k.IDKaryawan, k.Nama, k.Role, k.Username, time.Now().Add(12*time.Hour))
	if err != nil {
		return nil, apperr.Persistence("gagal membuat token", err)
	}

	s.Log.Info().Int64("id_karyawan", k.IDKaryawan).Str("role", k.Role).Msg("karyawan login")
	return &models.LoginResponse{
		IDKaryawan: k.IDKaryawan,
		Nama:       k.Nama,
		Role:       k.Role,
		Token:      token,
	}, nil
}

// RegisterKaryawan menambah akun karyawan baru (dipanggil oleh admin).
func (s *KaryawanService) RegisterKaryawan(ctx context.Context, nama, username, password, role string) (*models.Karyawan, error) {
	if strings.TrimSpace(nama) == "" || strings.TrimSpace(username) == "" {
		return nil, apperr.Validationf("nama dan username wajib diisi")
	}
	if len(password) < 6 {
		return nil, apperr.Validationf("password minimal 6 karakter")
	}

	var cek int
	err := s.DB.QueryRowContext(ctx, "SELECT 1 FROM Karyawan WHERE username = ?", username).Scan(&cek)
	if err == nil {
		return nil, apperr.Conflictf("username %s sudah terpakai", username)
	}
	if err != sql.ErrNoRows {
		return nil, apperr.Persistence("gagal memeriksa username", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Persistence("gagal hash password", err)
	}

	now := time.Now()
	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO Karyawan (nama, username, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		nama, username, string(hash), role, now)
	if err != nil {
		return nil, apperr.Persistence("gagal menyimpan karyawan", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, apperr.Persistence("gagal membaca id karyawan", err)
	}

	return &models.Karyawan{IDKaryawan: id, Nama: nama, Username: username, Role: role, CreatedAt: now}, nil
}
