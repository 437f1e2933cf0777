package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/klinik-apotek-backend/internal/screening/models"
	"github.com/c14220110/klinik-apotek-backend/internal/screening/services"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
	"github.com/c14220110/klinik-apotek-backend/ws"
)

type ScreeningController struct {
	Service *services.ScreeningService
}

func NewScreeningController(service *services.ScreeningService) *ScreeningController {
	return &ScreeningController{Service: service}
}

func errJSON(c echo.Context, err error) error {
	return c.JSON(apperr.StatusCode(err), echo.Map{
		"status":  apperr.StatusCode(err),
		"message": apperr.Message(err),
		"data":    nil,
	})
}

// CreateScreening menerima hasil screening suster dan memasukkan pasien
// ke antrian rawat jalan hari ini.
func (sc *ScreeningController) CreateScreening(c echo.Context) error {
	var req models.CreateScreeningRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	screening, err := sc.Service.CreateScreening(c.Request().Context(), req)
	if err != nil {
		return errJSON(c, err)
	}

	ws.BroadcastQueueUpdate("antrian_rawat_jalan", screening.ID, screening.NomorAntrian, screening.Status)

	return c.JSON(http.StatusCreated, echo.Map{
		"status":  http.StatusCreated,
		"message": "Screening berhasil disimpan, pasien masuk antrian",
		"data":    screening,
	})
}

func (sc *ScreeningController) GetScreening(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, apperr.Validationf("id screening tidak valid"))
	}

	screening, err := sc.Service.GetScreening(c.Request().Context(), id)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Detail screening berhasil diambil",
		"data":    screening,
	})
}

func (sc *ScreeningController) ListScreeningByPasien(c echo.Context) error {
	idPasien, err := strconv.ParseInt(c.QueryParam("id_pasien"), 10, 64)
	if err != nil || idPasien <= 0 {
		return errJSON(c, apperr.Validationf("id_pasien query parameter wajib diisi"))
	}

	list, err := sc.Service.ListScreeningByPasien(c.Request().Context(), idPasien)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Riwayat screening pasien berhasil diambil",
		"data":    list,
	})
}
