package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind mengelompokkan error bisnis supaya controller bisa memetakan
// ke status HTTP tanpa membandingkan teks error.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindInsufficientStock
	KindInvalidPayment
	KindUnauthorized
	KindPersistence
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validationf(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...interface{}) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// InsufficientStock menyertakan stok tersedia di pesan sesuai kontrak API.
func InsufficientStock(namaProduk string, tersedia, diminta int) error {
	return &Error{
		Kind: KindInsufficientStock,
		Msg:  fmt.Sprintf("stok %s tidak mencukupi: tersedia %d, diminta %d", namaProduk, tersedia, diminta),
	}
}

func InvalidPayment(total, dibayar float64) error {
	return &Error{
		Kind: KindInvalidPayment,
		Msg:  fmt.Sprintf("pembayaran kurang: total %.0f, dibayar %.0f", total, dibayar),
	}
}

func Unauthorizedf(format string, args ...interface{}) error {
	return &Error{Kind: KindUnauthorized, Msg: fmt.Sprintf(format, args...)}
}

// Persistence membungkus error dari driver database. Teks asli driver tidak
// pernah dikirim ke klien, hanya dicatat di log.
func Persistence(msg string, err error) error {
	return &Error{Kind: KindPersistence, Msg: msg, Err: err}
}

// IsDuplicateKey mengenali pelanggaran indeks unik dari pesan driver,
// MySQL ("Duplicate entry") maupun SQLite ("UNIQUE constraint failed").
// Balapan yang lolos pemeriksaan aplikasi dan ditangkap indeks bisa
// dipetakan ke KindConflict, bukan error server.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// StatusCode memetakan kind ke status HTTP.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindValidation, KindInsufficientStock, KindInvalidPayment:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Message mengembalikan pesan yang aman untuk klien.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindPersistence && e.Kind != KindUnknown {
		return e.Msg
	}
	return "terjadi kesalahan pada server"
}
