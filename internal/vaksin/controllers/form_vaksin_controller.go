package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/klinik-apotek-backend/internal/vaksin/models"
	"github.com/c14220110/klinik-apotek-backend/internal/vaksin/services"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

type FormVaksinController struct {
	Service *services.FormVaksinService
}

func NewFormVaksinController(service *services.FormVaksinService) *FormVaksinController {
	return &FormVaksinController{Service: service}
}

func errJSON(c echo.Context, err error) error {
	return c.JSON(apperr.StatusCode(err), echo.Map{
		"status":  apperr.StatusCode(err),
		"message": apperr.Message(err),
		"data":    nil,
	})
}

func (vc *FormVaksinController) CreateForm(c echo.Context) error {
	var req models.CreateFormVaksinRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	form, err := vc.Service.CreateForm(c.Request().Context(), req)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status":  http.StatusCreated,
		"message": "Form vaksin berhasil dibuat",
		"data":    form,
	})
}

type setDokumenRequest struct {
	IDDokumen string `json:"id_dokumen"`
}

func (vc *FormVaksinController) SetDokumen(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, apperr.Validationf("id form vaksin tidak valid"))
	}

	var req setDokumenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	if err := vc.Service.SetDokumen(c.Request().Context(), id, req.IDDokumen); err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Dokumen form vaksin berhasil dicatat",
		"data":    nil,
	})
}

func (vc *FormVaksinController) ListFormHariIni(c echo.Context) error {
	list, err := vc.Service.ListFormHariIni(c.Request().Context())
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Form vaksin hari ini berhasil diambil",
		"data":    list,
	})
}
