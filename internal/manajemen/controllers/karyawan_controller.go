package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/klinik-apotek-backend/internal/manajemen/models"
	"github.com/c14220110/klinik-apotek-backend/internal/manajemen/services"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

type KaryawanController struct {
	Service *services.KaryawanService
}

func NewKaryawanController(service *services.KaryawanService) *KaryawanController {
	return &KaryawanController{Service: service}
}

func errJSON(c echo.Context, err error) error {
	return c.JSON(apperr.StatusCode(err), echo.Map{
		"status":  apperr.StatusCode(err),
		"message": apperr.Message(err),
		"data":    nil,
	})
}

func (kc *KaryawanController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	resp, err := kc.Service.Login(c.Request().Context(), req)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Login berhasil",
		"data":    resp,
	})
}

type registerKaryawanRequest struct {
	Nama     string `json:"nama"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (kc *KaryawanController) RegisterKaryawan(c echo.Context) error {
	var req registerKaryawanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	karyawan, err := kc.Service.RegisterKaryawan(c.Request().Context(), req.Nama, req.Username, req.Password, req.Role)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status":  http.StatusCreated,
		"message": "Karyawan berhasil didaftarkan",
		"data":    karyawan,
	})
}
