package models

import "time"

type Karyawan struct {
	IDKaryawan   int64     `json:"id_karyawan"`
	Nama         string    `json:"nama"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	IDKaryawan int64  `json:"id_karyawan"`
	Nama       string `json:"nama"`
	Role       string `json:"role"`
	Token      string `json:"token"`
}
