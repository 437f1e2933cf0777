package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/klinik-apotek-backend/internal/dokter/models"
	"github.com/c14220110/klinik-apotek-backend/internal/dokter/services"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
	"github.com/c14220110/klinik-apotek-backend/ws"
)

type RekamMedisController struct {
	Service *services.RekamMedisService
}

func NewRekamMedisController(service *services.RekamMedisService) *RekamMedisController {
	return &RekamMedisController{Service: service}
}

func errJSON(c echo.Context, err error) error {
	return c.JSON(apperr.StatusCode(err), echo.Map{
		"status":  apperr.StatusCode(err),
		"message": apperr.Message(err),
		"data":    nil,
	})
}

// CreateRekamMedis menyimpan hasil pemeriksaan dokter beserta resepnya.
// Bila ada resep, pasien otomatis masuk antrian farmasi.
func (rc *RekamMedisController) CreateRekamMedis(c echo.Context) error {
	var req models.CreateRekamMedisRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	result, err := rc.Service.CreateRekamMedis(c.Request().Context(), req)
	if err != nil {
		return errJSON(c, err)
	}

	if result.AntrianFarmasiDibuat && result.IDAntrianFarmasi != nil && result.NomorAntrianFarmasi != nil {
		ws.BroadcastQueueUpdate("antrian_farmasi", *result.IDAntrianFarmasi, *result.NomorAntrianFarmasi, models.FarmasiWaiting)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status":  http.StatusCreated,
		"message": "Rekam medis berhasil disimpan",
		"data":    result,
	})
}

func (rc *RekamMedisController) UpdateRekamMedis(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, apperr.Validationf("id rekam medis tidak valid"))
	}

	var req models.UpdateRekamMedisRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	if err := rc.Service.UpdateRekamMedis(c.Request().Context(), id, req); err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Rekam medis berhasil diperbarui",
		"data":    nil,
	})
}

func (rc *RekamMedisController) GetRekamMedis(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, apperr.Validationf("id rekam medis tidak valid"))
	}

	rm, err := rc.Service.GetRekamMedis(c.Request().Context(), id)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Detail rekam medis berhasil diambil",
		"data":    rm,
	})
}

func (rc *RekamMedisController) ListRekamMedisByPasien(c echo.Context) error {
	idPasien, err := strconv.ParseInt(c.QueryParam("id_pasien"), 10, 64)
	if err != nil || idPasien <= 0 {
		return errJSON(c, apperr.Validationf("id_pasien query parameter wajib diisi"))
	}

	list, err := rc.Service.ListRekamMedisByPasien(c.Request().Context(), idPasien)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Riwayat rekam medis pasien berhasil diambil",
		"data":    list,
	})
}
