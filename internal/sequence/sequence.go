package sequence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

// Scope nomor urut. Tiap scope punya deret harian sendiri.
const (
	ScopeRawatJalan = "rawat_jalan"
	ScopeFarmasi    = "farmasi"
	ScopeFormVaksin = "form_vaksin"
	ScopeKasir      = "kasir"
)

// Next mengalokasikan nomor urut berikutnya untuk scope pada tanggal yang
// diberikan. Counter disimpan per (scope, tanggal) di tabel Nomor_Urut dan
// di-update di dalam transaksi pemanggil, sehingga:
//   - dua request bersamaan tidak pernah mendapat nomor yang sama
//     (UPDATE menahan row lock sampai commit),
//   - nomor ikut rollback kalau operasi induk gagal, jadi tidak ada
//     nomor yang hilang diam-diam.
//
// Hari baru mulai dari 1.
func Next(ctx context.Context, tx *sql.Tx, scope string, t time.Time) (int, error) {
	tanggal := t.Format("2006-01-02")

	res, err := tx.ExecContext(ctx,
		`UPDATE Nomor_Urut SET nomor_terakhir = nomor_terakhir + 1 WHERE scope = ? AND tanggal = ?`,
		scope, tanggal,
	)
	if err != nil {
		return 0, fmt.Errorf("gagal increment nomor urut %s: %w", scope, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		// Baris counter hari ini belum ada. Kalau dua transaksi bersaing
		// INSERT, unique(scope, tanggal) membuat yang kalah gagal; yang
		// kalah mengulang UPDATE dan menunggu row lock pemenang dilepas,
		// jadi hari baru tidak pernah menggagalkan request.
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO Nomor_Urut (scope, tanggal, nomor_terakhir) VALUES (?, ?, 1)`,
			scope, tanggal,
		); err != nil {
			if !apperr.IsDuplicateKey(err) {
				return 0, fmt.Errorf("gagal inisialisasi nomor urut %s: %w", scope, err)
			}
			if _, err := tx.ExecContext(ctx,
				`UPDATE Nomor_Urut SET nomor_terakhir = nomor_terakhir + 1 WHERE scope = ? AND tanggal = ?`,
				scope, tanggal,
			); err != nil {
				return 0, fmt.Errorf("gagal increment nomor urut %s: %w", scope, err)
			}
		}
	}

	var nomor int
	err = tx.QueryRowContext(ctx,
		`SELECT nomor_terakhir FROM Nomor_Urut WHERE scope = ? AND tanggal = ?`,
		scope, tanggal,
	).Scan(&nomor)
	if err != nil {
		return 0, fmt.Errorf("gagal membaca nomor urut %s: %w", scope, err)
	}
	return nomor, nil
}

// Format memformat nomor untuk tampilan layar antrian, misal 7 -> "007".
func Format(nomor int) string {
	return fmt.Sprintf("%03d", nomor)
}
