package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/klinik-apotek-backend/internal/inventori/models"
	"github.com/c14220110/klinik-apotek-backend/internal/inventori/services"
	"github.com/c14220110/klinik-apotek-backend/pkg/apperr"
)

type InventoriController struct {
	Service *services.InventoriService
}

func NewInventoriController(service *services.InventoriService) *InventoriController {
	return &InventoriController{Service: service}
}

func errJSON(c echo.Context, err error) error {
	return c.JSON(apperr.StatusCode(err), echo.Map{
		"status":  apperr.StatusCode(err),
		"message": apperr.Message(err),
		"data":    nil,
	})
}

func (ic *InventoriController) CreateProduk(c echo.Context) error {
	var req models.CreateProdukRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	produk, err := ic.Service.CreateProduk(c.Request().Context(), req)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status":  http.StatusCreated,
		"message": "Produk berhasil ditambahkan",
		"data":    produk,
	})
}

func (ic *InventoriController) GetProduk(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, apperr.Validationf("id produk tidak valid"))
	}

	produk, err := ic.Service.GetProduk(c.Request().Context(), id)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Detail produk berhasil diambil",
		"data":    produk,
	})
}

func (ic *InventoriController) ListProduk(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	page, _ := strconv.Atoi(c.QueryParam("page"))

	list, total, err := ic.Service.ListProduk(c.Request().Context(), c.QueryParam("q"), limit, page)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Daftar produk berhasil diambil",
		"data": echo.Map{
			"produk": list,
			"total":  total,
		},
	})
}

func (ic *InventoriController) ListStokMenipis(c echo.Context) error {
	ambang, _ := strconv.Atoi(c.QueryParam("ambang"))

	list, err := ic.Service.ListStokMenipis(c.Request().Context(), ambang)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Daftar produk stok menipis berhasil diambil",
		"data":    list,
	})
}

func (ic *InventoriController) CatatPergerakan(c echo.Context) error {
	var req models.CatatPergerakanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	pergerakan, err := ic.Service.CatatPergerakan(c.Request().Context(), req)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status":  http.StatusCreated,
		"message": "Pergerakan stok berhasil dicatat",
		"data":    pergerakan,
	})
}

func (ic *InventoriController) ListPergerakan(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, apperr.Validationf("id produk tidak valid"))
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	page, _ := strconv.Atoi(c.QueryParam("page"))

	list, err := ic.Service.ListPergerakan(c.Request().Context(), id, limit, page)
	if err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Riwayat pergerakan stok berhasil diambil",
		"data":    list,
	})
}

func (ic *InventoriController) DeleteProduk(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, apperr.Validationf("id produk tidak valid"))
	}

	if err := ic.Service.DeleteProduk(c.Request().Context(), id); err != nil {
		return errJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Produk berhasil dihapus",
		"data":    nil,
	})
}
