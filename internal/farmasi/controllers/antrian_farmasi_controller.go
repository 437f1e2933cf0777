package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/klinik-apotek-backend/internal/farmasi/services"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
	"github.com/c14220110/klinik-apotek-backend/ws"
)

type AntrianFarmasiController struct {
	Service *services.AntrianFarmasiService
}

func NewAntrianFarmasiController(service *services.AntrianFarmasiService) *AntrianFarmasiController {
	return &AntrianFarmasiController{Service: service}
}

func errJSON(c echo.Context, err error) error {
	return c.JSON(apperr.StatusCode(err), echo.Map{
		"status":  apperr.StatusCode(err),
		"message": apperr.Message(err),
		"data":    nil,
	})
}

func (fc *AntrianFarmasiController) GetAntrianHariIni(c echo.Context) error {
	list, err := fc.Service.GetAntrianHariIni(c.Request().Context())
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Antrian farmasi hari ini berhasil diambil",
		"data":    list,
	})
}

type siapkanRequest struct {
	NamaApoteker string `json:"nama_apoteker"`
}

// Siapkan memulai penyiapan obat oleh apoteker (waiting -> preparing).
func (fc *AntrianFarmasiController) Siapkan(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, apperr.Validationf("id antrian farmasi tidak valid"))
	}

	var req siapkanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	entry, err := fc.Service.Siapkan(c.Request().Context(), id, req.NamaApoteker)
	if err != nil {
		return errJSON(c, err)
	}

	ws.BroadcastQueueUpdate("antrian_farmasi", entry.ID, entry.NomorAntrian, entry.Status)

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Penyiapan obat dimulai",
		"data":    entry,
	})
}

// TandaiSiap menandai obat selesai disiapkan (preparing -> ready).
func (fc *AntrianFarmasiController) TandaiSiap(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, apperr.Validationf("id antrian farmasi tidak valid"))
	}

	entry, err := fc.Service.TandaiSiap(c.Request().Context(), id)
	if err != nil {
		return errJSON(c, err)
	}

	ws.BroadcastQueueUpdate("antrian_farmasi", entry.ID, entry.NomorAntrian, entry.Status)

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Obat siap diambil",
		"data":    entry,
	})
}

// Serahkan mencatat obat diserahkan ke pasien (ready -> dispensed).
func (fc *AntrianFarmasiController) Serahkan(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, apperr.Validationf("id antrian farmasi tidak valid"))
	}

	entry, err := fc.Service.Serahkan(c.Request().Context(), id)
	if err != nil {
		return errJSON(c, err)
	}

	ws.BroadcastQueueUpdate("antrian_farmasi", entry.ID, entry.NomorAntrian, entry.Status)

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Obat berhasil diserahkan ke pasien",
		"data":    entry,
	})
}
