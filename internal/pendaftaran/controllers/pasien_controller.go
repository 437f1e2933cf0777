package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/klinik-apotek-backend/internal/pendaftaran/models"
	"github.com/c14220110/klinik-apotek-backend/internal/pendaftaran/services"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

type PasienController struct {
	Service *services.PasienService
}

func NewPasienController(service *services.PasienService) *PasienController {
	return &PasienController{Service: service}
}

func errJSON(c echo.Context, err error) error {
	return c.JSON(apperr.StatusCode(err), echo.Map{
		"status":  apperr.StatusCode(err),
		"message": apperr.Message(err),
		"data":    nil,
	})
}

func (pc *PasienController) RegisterPasien(c echo.Context) error {
	var req models.RegisterPasienRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	pasien, err := pc.Service.RegisterPasien(c.Request().Context(), req)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status":  http.StatusCreated,
		"message": "Pasien berhasil didaftarkan",
		"data":    pasien,
	})
}

func (pc *PasienController) GetPasien(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, apperr.Validationf("id pasien tidak valid"))
	}

	pasien, err := pc.Service.GetPasien(c.Request().Context(), id)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Detail pasien berhasil diambil",
		"data":    pasien,
	})
}

func (pc *PasienController) UpdatePasien(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, apperr.Validationf("id pasien tidak valid"))
	}

	var req models.UpdatePasienRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	if err := pc.Service.UpdatePasien(c.Request().Context(), id, req); err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Data pasien berhasil diperbarui",
		"data":    nil,
	})
}

func (pc *PasienController) ListPasien(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	page, _ := strconv.Atoi(c.QueryParam("page"))

	list, total, err := pc.Service.ListPasien(c.Request().Context(), c.QueryParam("q"), limit, page)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Daftar pasien berhasil diambil",
		"data": echo.Map{
			"pasien": list,
			"total":  total,
		},
	})
}

func (pc *PasienController) DeletePasien(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, apperr.Validationf("id pasien tidak valid"))
	}

	if err := pc.Service.DeletePasien(c.Request().Context(), id); err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Pasien berhasil dihapus",
		"data":    nil,
	})
}

func (pc *PasienController) ListAlergi(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, apperr.Validationf("id pasien tidak valid"))
	}

	list, err := pc.Service.ListAlergi(c.Request().Context(), id)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Daftar alergi pasien berhasil diambil",
		"data":    list,
	})
}
