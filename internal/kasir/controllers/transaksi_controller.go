package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/klinik-apotek-backend/internal/kasir/models"
	"github.com/c14220110/klinik-apotek-backend/internal/kasir/services"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

type TransaksiController struct {
	Service *services.TransaksiService
}

func NewTransaksiController(service *services.TransaksiService) *TransaksiController {
	return &TransaksiController{Service: service}
}

func errJSON(c echo.Context, err error) error {
	return c.JSON(apperr.StatusCode(err), echo.Map{
		"status":  apperr.StatusCode(err),
		"message": apperr.Message(err),
		"data":    nil,
	})
}

// CreateTransaksi memproses penjualan di kasir: memotong stok, mencatat
// pemasukan, dan menghitung kembalian.
func (tc *TransaksiController) CreateTransaksi(c echo.Context) error {
	var req models.CreateTransaksiRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	trx, err := tc.Service.CreateTransaksi(c.Request().Context(), req)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status":  http.StatusCreated,
		"message": "Transaksi berhasil diproses",
		"data":    trx,
	})
}

// CancelTransaksi membatalkan transaksi dan mengembalikan stok.
func (tc *TransaksiController) CancelTransaksi(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, apperr.Validationf("id transaksi tidak valid"))
	}

	trx, err := tc.Service.CancelTransaksi(c.Request().Context(), id)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Transaksi berhasil dibatalkan, stok dikembalikan",
		"data":    trx,
	})
}

func (tc *TransaksiController) GetTransaksi(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, apperr.Validationf("id transaksi tidak valid"))
	}

	trx, err := tc.Service.GetTransaksi(c.Request().Context(), id)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Detail transaksi berhasil diambil",
		"data":    trx,
	})
}

func (tc *TransaksiController) ListTransaksi(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	page, _ := strconv.Atoi(c.QueryParam("page"))

	list, err := tc.Service.ListTransaksi(c.Request().Context(), limit, page)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Daftar transaksi berhasil diambil",
		"data":    list,
	})
}
