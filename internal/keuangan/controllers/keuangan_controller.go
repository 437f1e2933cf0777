package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/klinik-apotek-backend/internal/keuangan/models"
	"github.com/c14220110/klinik-apotek-backend/internal/keuangan/services"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

type KeuanganController struct {
	Service *services.KeuanganService
}

func NewKeuanganController(service *services.KeuanganService) *KeuanganController {
	return &KeuanganController{Service: service}
}

func errJSON(c echo.Context, err error) error {
	return c.JSON(apperr.StatusCode(err), echo.Map{
		"status":  apperr.StatusCode(err),
		"message": apperr.Message(err),
		"data":    nil,
	})
}

// Catat mencatat pemasukan atau pengeluaran manual (di luar penjualan kasir).
func (kc *KeuanganController) Catat(c echo.Context) error {
	var req models.CatatKeuanganRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	catatan, err := kc.Service.Catat(c.Request().Context(), req)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status":  http.StatusCreated,
		"message": "Catatan keuangan berhasil disimpan",
		"data":    catatan,
	})
}

func (kc *KeuanganController) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	page, _ := strconv.Atoi(c.QueryParam("page"))

	list, err := kc.Service.List(c.Request().Context(), c.QueryParam("jenis"), limit, page)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Catatan keuangan berhasil diambil",
		"data":    list,
	})
}

// Ringkasan menjumlahkan pemasukan dan pengeluaran pada rentang tanggal
// (query dari & sampai, format YYYY-MM-DD, default 30 hari terakhir).
func (kc *KeuanganController) Ringkasan(c echo.Context) error {
	now := time.Now()
	dari := now.AddDate(0, 0, -30)
	sampai := now

	if v := c.QueryParam("dari"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, now.Location())
		if err != nil {
			return errJSON(c, apperr.Validationf("parameter dari harus berformat YYYY-MM-DD"))
		}
		dari = t
	}
	if v := c.QueryParam("sampai"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, now.Location())
		if err != nil {
			return errJSON(c, apperr.Validationf("parameter sampai harus berformat YYYY-MM-DD"))
		}
		sampai = t.Add(24 * time.Hour)
	}

	ringkasan, err := kc.Service.Ringkasan(c.Request().Context(), dari, sampai)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Ringkasan keuangan berhasil diambil",
		"data":    ringkasan,
	})
}
