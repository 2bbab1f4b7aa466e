package router

import (
	"github.com/GabrielArdy/sigap-backend/foundation/web"
	"github.com/GabrielArdy/sigap-backend/internal/auth"
	"github.com/GabrielArdy/sigap-backend/internal/middleware"
	"github.com/GabrielArdy/sigap-backend/internal/pkg/config"
	"github.com/GabrielArdy/sigap-backend/internal/pkg/repository/postgresql"
	"github.com/GabrielArdy/sigap-backend/internal/service/checkin"
	"github.com/GabrielArdy/sigap-backend/internal/service/qrcode"
	"github.com/GabrielArdy/sigap-backend/internal/service/qrsign"

	"github.com/gin-contrib/cors"
	"github.com/redis/go-redis/v9"

	attendance_repo "github.com/GabrielArdy/sigap-backend/internal/repository/postgres/attendance"
	leave_repo "github.com/GabrielArdy/sigap-backend/internal/repository/postgres/leave"
	qr_repo "github.com/GabrielArdy/sigap-backend/internal/repository/postgres/qr"
	station_repo "github.com/GabrielArdy/sigap-backend/internal/repository/postgres/station"
	user_repo "github.com/GabrielArdy/sigap-backend/internal/repository/postgres/user"

	attendance_controller "github.com/GabrielArdy/sigap-backend/internal/controller/http/v1/attendance"
	auth_controller "github.com/GabrielArdy/sigap-backend/internal/controller/http/v1/auth"
	leave_controller "github.com/GabrielArdy/sigap-backend/internal/controller/http/v1/leave"
	qr_controller "github.com/GabrielArdy/sigap-backend/internal/controller/http/v1/qr"
	station_controller "github.com/GabrielArdy/sigap-backend/internal/controller/http/v1/station"
	user_controller "github.com/GabrielArdy/sigap-backend/internal/controller/http/v1/user"
)

type Router struct {
	*web.App
	postgresDB *postgresql.Database
	redisDB    *redis.Client
	cfg        *config.Config
	auth       *auth.Auth
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	redisDB *redis.Client,
	cfg *config.Config,
	auth *auth.Auth,
) *Router {
	return &Router{
		app,
		postgresDB,
		redisDB,
		cfg,
		auth,
	}
}

func (r Router) Init() error {
	r.HandleMethodNotAllowed = true
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{r.cfg.BaseUrl, "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
	}))

	// - postgresql
	userPostgres := user_repo.NewRepository(r.postgresDB)
	stationPostgres := station_repo.NewRepository(r.postgresDB)
	attendancePostgres := attendance_repo.NewRepository(r.postgresDB)
	qrPostgres := qr_repo.NewRepository(r.postgresDB)
	leavePostgres := leave_repo.NewRepository(r.postgresDB)

	// - services
	signer := qrsign.New(r.cfg.QRSecretKey)
	issuer := qrcode.NewIssuer(r.cfg, signer, qrPostgres, r.redisDB)
	scan := checkin.New(stationPostgres, attendancePostgres, signer)

	// - controllers
	authController := auth_controller.NewController(userPostgres, r.auth)
	userController := user_controller.NewController(userPostgres)
	stationController := station_controller.NewController(stationPostgres)
	qrController := qr_controller.NewController(issuer, qrPostgres, stationPostgres)
	attendanceController := attendance_controller.NewController(scan, attendancePostgres)
	leaveController := leave_controller.NewController(leavePostgres, scan.Manager())

	// #auth
	r.Post("/api/v1/sign-in", authController.SignIn)
	r.Post("/api/v1/refresh-token", authController.RefreshToken)

	// #user
	r.Get("/api/v1/user/list", userController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/user/create", userController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/user", userController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/user/:id", userController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #station
	r.Get("/api/v1/station/list", stationController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/station/:station_id", stationController.GetDetail, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleStation))
	r.Post("/api/v1/station/create", stationController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/station", stationController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/station/:id", stationController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #qr
	r.Post("/api/v1/qr/generate", qrController.Generate, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleStation))
	r.Get("/api/v1/qr/latest/:station_id", qrController.LatestActive, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleStation))
	r.Get("/api/v1/qr/poster/:station_id", qrController.Poster, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/qr/audit", qrController.GetAuditList, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #attendance
	r.Post("/api/v1/attendance/checkin", attendanceController.CheckIn, middleware.Authenticate(r.auth, auth.RoleEmployee, auth.RoleAdmin))
	r.Post("/api/v1/attendance/checkout", attendanceController.CheckOut, middleware.Authenticate(r.auth, auth.RoleEmployee, auth.RoleAdmin))
	r.Get("/api/v1/attendance/list", attendanceController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/attendance/history", attendanceController.GetHistory, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/dashboard", attendanceController.GetDashboard, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/attendance/export", attendanceController.ExportMonthly, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/attendance/:id", attendanceController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #leave
	r.Get("/api/v1/leave/list", leaveController.GetList, middleware.Authenticate(r.auth))
	r.Post("/api/v1/leave/create", leaveController.Create, middleware.Authenticate(r.auth))
	r.Post("/api/v1/leave/approve", leaveController.Approve, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/leave/:id", leaveController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	return r.Run(r.cfg.Port)
}
