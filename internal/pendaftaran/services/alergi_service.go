package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/c14220110/klinik-apotek-backend/internal/pendaftaran/models"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

// UpsertAlergiTx memproses entri alergi yang dikirim bersama screening atau
// pemeriksaan dokter, di dalam transaksi induk:
//   - entri tanpa nama_alergi dibuang,
//   - entri dengan id_alergi membandingkan seluruh field terhadap baris
//     tersimpan; jika tidak ada yang berubah hanya dilaporkan_pada yang
//     diperbarui, jika ada yang berubah semua field ikut diperbarui,
//   - entri tanpa id_alergi membuat baris baru milik pasien.
func UpsertAlergiTx(ctx context.Context, tx *sql.Tx, idPasien int64, entries []models.AlergiInput) error {
	now := time.Now()

	for _, e := range entries {
		if e.NamaAlergi == "" {
			continue
		}
		if e.Status == "" {
			e.Status = "aktif"
		}

		if e.IDAlergi == 0 {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO Alergi_Pasien (id_pasien, nama_alergi, jenis, tingkat_keparahan, reaksi, catatan, status, dilaporkan_pada)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				idPasien, e.NamaAlergi, e.Jenis, e.TingkatKeparahan, e.Reaksi, e.Catatan, e.Status, now,
			); err != nil {
				return apperr.Persistence("gagal menyimpan alergi baru", err)
			}
			continue
		}

		var cur models.AlergiPasien
		err := tx.QueryRowContext(ctx, `
			SELECT nama_alergi, jenis, tingkat_keparahan, reaksi, catatan, status
			FROM Alergi_Pasien WHERE id_alergi = ? AND id_pasien = ?`,
			e.IDAlergi, idPasien,
		).Scan(&cur.NamaAlergi, &cur.Jenis, &cur.TingkatKeparahan, &cur.Reaksi, &cur.Catatan, &cur.Status)
		if err == sql.ErrNoRows {
			return apperr.NotFoundf("alergi dengan id %d tidak ditemukan untuk pasien %d", e.IDAlergi, idPasien)
		}
		if err != nil {
			return apperr.Persistence("gagal membaca alergi", err)
		}

		sama := cur.NamaAlergi == e.NamaAlergi &&
			cur.Jenis == e.Jenis &&
			cur.TingkatKeparahan == e.TingkatKeparahan &&
			cur.Reaksi == e.Reaksi &&
			cur.Catatan == e.Catatan &&
			cur.Status == e.Status

		if sama {
			if _, err := tx.ExecContext(ctx,
				"UPDATE Alergi_Pasien SET dilaporkan_pada = ? WHERE id_alergi = ?", now, e.IDAlergi,
			); err != nil {
				return apperr.Persistence("gagal memperbarui waktu lapor alergi", err)
			}
			continue
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE Alergi_Pasien
			SET nama_alergi = ?, jenis = ?, tingkat_keparahan = ?, reaksi = ?, catatan = ?, status = ?, dilaporkan_pada = ?
			WHERE id_alergi = ?`,
			e.NamaAlergi, e.Jenis, e.TingkatKeparahan, e.Reaksi, e.Catatan, e.Status, now, e.IDAlergi,
		); err != nil {
			return apperr.Persistence("gagal memperbarui alergi", err)
		}
	}
	return nil
}
