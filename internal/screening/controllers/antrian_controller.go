package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/klinik-apotek-backend/internal/screening/services"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
	"github.com/c14220110/klinik-apotek-backend/ws"
)

type AntrianController struct {
	Service *services.AntrianService
}

func NewAntrianController(service *services.AntrianService) *AntrianController {
	return &AntrianController{Service: service}
}

func (ac *AntrianController) GetAntrianHariIni(c echo.Context) error {
	list, err := ac.Service.GetAntrianHariIni(c.Request().Context())
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Antrian rawat jalan hari ini berhasil diambil",
		"data":    list,
	})
}

func (ac *AntrianController) PanggilPasien(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, apperr.Validationf("id antrian tidak valid"))
	}

	entry, err := ac.Service.PanggilPasien(c.Request().Context(), id)
	if err != nil {
		return errJSON(c, err)
	}

	ws.BroadcastQueueUpdate("antrian_rawat_jalan", entry.IDAntrian, entry.NomorAntrian, entry.Status)

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Pasien berhasil dipanggil",
		"data":    entry,
	})
}

func (ac *AntrianController) MulaiPemeriksaan(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, apperr.Validationf("id antrian tidak valid"))
	}

	entry, err := ac.Service.MulaiPemeriksaan(c.Request().Context(), id)
	if err != nil {
		return errJSON(c, err)
	}

	ws.BroadcastQueueUpdate("antrian_rawat_jalan", entry.IDAntrian, entry.NomorAntrian, entry.Status)

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Pemeriksaan pasien dimulai",
		"data":    entry,
	})
}
