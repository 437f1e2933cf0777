package routes

import (
	"database/sql"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/c14220110/klinik-apotek-backend/internal/common/middlewares"
	dokterControllers "github.com/c14220110/klinik-apotek-backend/internal/dokter/controllers"
	dokterServices "github.com/c14220110/klinik-apotek-backend/internal/dokter/services"
	farmasiControllers "github.com/c14220110/klinik-apotek-backend/internal/farmasi/controllers"
	farmasiServices "github.com/c14220110/klinik-apotek-backend/internal/farmasi/services"
	inventoriControllers "github.com/c14220110/klinik-apotek-backend/internal/inventori/controllers"
	inventoriServices "github.com/c14220110/klinik-apotek-backend/internal/inventori/services"
	kasirControllers "github.com/c14220110/klinik-apotek-backend/internal/kasir/controllers"
	kasirServices "github.com/c14220110/klinik-apotek-backend/internal/kasir/services"
	keuanganControllers "github.com/c14220110/klinik-apotek-backend/internal/keuangan/controllers"
	keuanganServices "github.com/c14220110/klinik-apotek-backend/internal/keuangan/services"
	manajemenControllers "github.com/c14220110/klinik-apotek-backend/internal/manajemen/controllers"
	manajemenServices "github.com/c14220110/klinik-apotek-backend/internal/manajemen/services"
	pendaftaranControllers "github.com/c14220110/klinik-apotek-backend/internal/pendaftaran/controllers"
	pendaftaranServices "github.com/c14220110/klinik-apotek-backend/internal/pendaftaran/services"
	screeningControllers "github.com/c14220110/klinik-apotek-backend/internal/screening/controllers"
	screeningServices "github.com/c14220110/klinik-apotek-backend/internal/screening/services"
	vaksinControllers "github.com/c14220110/klinik-apotek-backend/internal/vaksin/controllers"
	vaksinServices "github.com/c14220110/klinik-apotek-backend/internal/vaksin/services"
	"github.com/c14220110/klinik-apotek-backend/ws"
)

// Init menginisialisasi semua routes menggunakan Echo framework.
func Init(e *echo.Echo, db *sql.DB, log zerolog.Logger) {
	// Inisialisasi service
	pasienService := pendaftaranServices.NewPasienService(db, log)
	screeningService := screeningServices.NewScreeningService(db, log)
	antrianService := screeningServices.NewAntrianService(db, log)
	rekamMedisService := dokterServices.NewRekamMedisService(db, log)
	antrianFarmasiService := farmasiServices.NewAntrianFarmasiService(db, log)
	inventoriService := inventoriServices.NewInventoriService(db, log)
	transaksiService := kasirServices.NewTransaksiService(db, log)
	keuanganService := keuanganServices.NewKeuanganService(db, log)
	formVaksinService := vaksinServices.NewFormVaksinService(db, log)
	karyawanService := manajemenServices.NewKaryawanService(db, log)

	// Inisialisasi controller dengan service yang sesuai
	pasienController := pendaftaranControllers.NewPasienController(pasienService)
	screeningController := screeningControllers.NewScreeningController(screeningService)
	antrianController := screeningControllers.NewAntrianController(antrianService)
	rekamMedisController := dokterControllers.NewRekamMedisController(rekamMedisService)
	antrianFarmasiController := farmasiControllers.NewAntrianFarmasiController(antrianFarmasiService)
	inventoriController := inventoriControllers.NewInventoriController(inventoriService)
	transaksiController := kasirControllers.NewTransaksiController(transaksiService)
	keuanganController := keuanganControllers.NewKeuanganController(keuanganService)
	formVaksinController := vaksinControllers.NewFormVaksinController(formVaksinService)
	karyawanController := manajemenControllers.NewKaryawanController(karyawanService)

	// Grup API utama
	api := e.Group("/api")

	// **Grup Auth**
	auth := api.Group("/auth")
	auth.POST("/login", karyawanController.Login) // Tidak pakai JWT
	auth.POST("/register", karyawanController.RegisterKaryawan, middlewares.JWTMiddleware())

	// **Grup Pendaftaran**
	pendaftaran := api.Group("/pasien", middlewares.JWTMiddleware())
	pendaftaran.POST("", pasienController.RegisterPasien)
	pendaftaran.GET("", pasienController.ListPasien)
	pendaftaran.GET("/:id", pasienController.GetPasien)
	pendaftaran.PUT("/:id", pasienController.UpdatePasien)
	pendaftaran.DELETE("/:id", pasienController.DeletePasien)
	pendaftaran.GET("/:id/alergi", pasienController.ListAlergi)

	// **Grup Screening & antrian rawat jalan**
	screening := api.Group("/screening", middlewares.JWTMiddleware())
	screening.POST("", screeningController.CreateScreening)
	screening.GET("/:id", screeningController.GetScreening)
	screening.GET("", screeningController.ListScreeningByPasien)

	antrian := api.Group("/antrian", middlewares.JWTMiddleware())
	antrian.GET("/today", antrianController.GetAntrianHariIni)
	antrian.PUT("/:id/panggil", antrianController.PanggilPasien)
	antrian.PUT("/:id/mulai", antrianController.MulaiPemeriksaan)

	// **Grup Dokter**
	dokter := api.Group("/rekam-medis", middlewares.JWTMiddleware())
	dokter.POST("", rekamMedisController.CreateRekamMedis)
	dokter.PUT("/:id", rekamMedisController.UpdateRekamMedis)
	dokter.GET("/:id", rekamMedisController.GetRekamMedis)
	dokter.GET("", rekamMedisController.ListRekamMedisByPasien)

	// **Grup Farmasi**
	farmasi := api.Group("/farmasi/antrian", middlewares.JWTMiddleware())
	farmasi.GET("/today", antrianFarmasiController.GetAntrianHariIni)
	farmasi.PUT("/:id/siapkan", antrianFarmasiController.Siapkan)
	farmasi.PUT("/:id/siap", antrianFarmasiController.TandaiSiap)
	farmasi.PUT("/:id/serahkan", antrianFarmasiController.Serahkan)

	// **Grup Inventori**
	inventori := api.Group("/produk", middlewares.JWTMiddleware())
	inventori.POST("", inventoriController.CreateProduk)
	inventori.GET("", inventoriController.ListProduk)
	inventori.GET("/stok-menipis", inventoriController.ListStokMenipis)
	inventori.GET("/:id", inventoriController.GetProduk)
	inventori.DELETE("/:id", inventoriController.DeleteProduk)
	inventori.POST("/pergerakan", inventoriController.CatatPergerakan)
	inventori.GET("/:id/pergerakan", inventoriController.ListPergerakan)

	// **Grup Kasir**
	kasir := api.Group("/transaksi", middlewares.JWTMiddleware())
	kasir.POST("", transaksiController.CreateTransaksi)
	kasir.GET("", transaksiController.ListTransaksi)
	kasir.GET("/:id", transaksiController.GetTransaksi)
	kasir.PUT("/:id/batal", transaksiController.CancelTransaksi)

	// **Grup Keuangan**
	keuangan := api.Group("/keuangan", middlewares.JWTMiddleware())
	keuangan.POST("", keuanganController.Catat)
	keuangan.GET("", keuanganController.List)
	keuangan.GET("/ringkasan", keuanganController.Ringkasan)

	// **Grup Form Vaksin**
	vaksin := api.Group("/form-vaksin", middlewares.JWTMiddleware())
	vaksin.POST("", formVaksinController.CreateForm)
	vaksin.GET("/today", formVaksinController.ListFormHariIni)
	vaksin.PUT("/:id/dokumen", formVaksinController.SetDokumen)

	// WebSocket layar antrian (tanpa JWT, dikonsumsi layar display)
	e.GET("/ws/antrian", ws.ServeWS(ws.HubInstance))
}
