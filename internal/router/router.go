package router

import (
	"time"

	"github.com/embunadw/E-Procurement/internal/config"
	"github.com/embunadw/E-Procurement/internal/handler"
	"github.com/embunadw/E-Procurement/internal/infra"
	"github.com/embunadw/E-Procurement/internal/middleware"
	"github.com/embunadw/E-Procurement/internal/model"
	"github.com/embunadw/E-Procurement/internal/repository"
	"github.com/embunadw/E-Procurement/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Deps are the long-lived collaborators the HTTP layer needs beyond the DB.
type Deps struct {
	Redis    *redis.Client
	Mailer   *infra.Mailer
	Notifier service.Notifier
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, deps Deps) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	if cfg.MetricsEnabled {
		r.Use(middleware.Metrics())
	}
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))
	r.MaxMultipartMemory = cfg.MaxUploadBytes()

	clock := service.LocalClock(cfg.Location())
	maxUpload := cfg.MaxUploadBytes()

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	plantRepo := repository.NewPlantRepository(db)
	groupRepo := repository.NewMaterialGroupRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	subconRepo := repository.NewSubcontractorRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	kbliRepo := repository.NewKbliRepository(db)
	rfqRepo := repository.NewRfqRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, vendorRepo, kbliRepo, cfg, clock)
	userSvc := service.NewUserService(userRepo, clock)
	plantSvc := service.NewPlantService(plantRepo)
	groupSvc := service.NewMaterialGroupService(groupRepo)
	materialSvc := service.NewMaterialService(materialRepo, groupRepo, plantRepo)
	subconSvc := service.NewSubcontractorService(subconRepo)
	vendorSvc := service.NewVendorService(vendorRepo, clock)
	kbliSvc := service.NewKbliService(kbliRepo, clock)
	rfqSvc := service.NewRfqService(rfqRepo, deps.Notifier, clock)
	rfqChildSvc := service.NewRfqChildService(rfqRepo, vendorRepo, clock)
	quotationSvc := service.NewQuotationService(quotationRepo, rfqRepo, clock)
	reportSvc := service.NewReportService(vendorRepo, rfqRepo, quotationRepo, clock)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(userSvc)
	plantsH := handler.NewPlantsHandler(plantSvc)
	groupsH := handler.NewMaterialGroupsHandler(groupSvc)
	materialsH := handler.NewMaterialsHandler(materialSvc)
	subconH := handler.NewSubcontractorsHandler(subconSvc)
	vendorsH := handler.NewVendorsHandler(vendorSvc)
	kblisH := handler.NewKblisHandler(kbliSvc)
	rfqH := handler.NewRfqHandler(rfqSvc, maxUpload)
	childH := handler.NewRfqChildrenHandler(rfqChildSvc, maxUpload)
	quotationH := handler.NewQuotationHandler(quotationSvc, maxUpload)
	reportH := handler.NewReportHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, deps.Redis, deps.Mailer))
	if cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	auth := r.Group("/auth", middleware.LoginRateLimiter())
	{
		auth.POST("/login", authH.Login)
		auth.POST("/login-vendor", authH.LoginVendor)
		auth.POST("/register", authH.RegisterVendor)
	}
	r.POST("/api/register-vendors", middleware.LoginRateLimiter(), authH.RegisterVendor)

	staff := middleware.RequireRole(model.StaffRoles...)
	approvers := middleware.RequireRole(model.RoleManager, model.RolePatria)
	vendorOnly := middleware.RequireRole(model.RoleVendor)
	anyone := middleware.RequireRole(append([]string{model.RoleVendor}, model.StaffRoles...)...)

	api := r.Group("/api", middleware.JWTAuth(cfg.JWTSecret))

	// ── Master data (staff) ──────────────────────────────────────────────────
	master := api.Group("", staff)
	{
		master.GET("/users", usersH.List)
		master.GET("/users/:id", usersH.Get)
		master.POST("/users", usersH.Create)
		master.PUT("/users/:id", usersH.Update)
		master.DELETE("/users/:id", usersH.Delete)

		master.GET("/plants", plantsH.List)
		master.GET("/plants/:id", plantsH.Get)
		master.POST("/plants", plantsH.Create)
		master.PUT("/plants/:id", plantsH.Update)
		master.DELETE("/plants/:id", plantsH.Delete)

		master.GET("/material-groups", groupsH.List)
		master.GET("/material-groups/:id", groupsH.Get)
		master.POST("/material-groups", groupsH.Create)
		master.PUT("/material-groups/:id", groupsH.Update)
		master.DELETE("/material-groups/:id", groupsH.Delete)

		master.GET("/materials", materialsH.List)
		master.GET("/materials/:id", materialsH.Get)
		master.POST("/materials", materialsH.Create)
		master.PUT("/materials/:id", materialsH.Update)
		master.DELETE("/materials/:id", materialsH.Delete)

		master.GET("/vendors", vendorsH.List)
		master.GET("/vendors/:id", vendorsH.Get)
		master.POST("/vendors", vendorsH.Create)
		master.PUT("/vendors/:id", vendorsH.Update)
		master.DELETE("/vendors/:id", vendorsH.Delete)

		master.POST("/kblis", kblisH.Create)
		master.PUT("/kblis/:id", kblisH.Update)
		master.DELETE("/kblis/:id", kblisH.Delete)

		master.GET("/subcontractor", subconH.List)
	}
	// The registration form needs the KBLI catalogue, so vendors can read it.
	api.GET("/kblis", anyone, kblisH.List)
	api.GET("/kblis/:id", anyone, kblisH.Get)

	// ── RFQ ──────────────────────────────────────────────────────────────────
	api.GET("/rfq", anyone, rfqH.List)
	api.GET("/rfq/:id", anyone, rfqH.Get)
	api.GET("/rfq/details/:id", anyone, rfqH.LineView)
	api.GET("/rfq/:id/details", anyone, childH.ListDetails)
	api.GET("/rfq/:id/pictures", anyone, childH.ListPictures)
	api.GET("/rfq/:id/files", anyone, childH.ListFiles)
	api.GET("/rfq/:id/pdf", anyone, rfqH.PDF)
	api.GET("/rfq-picture/:id", anyone, rfqH.DownloadPicture)
	api.GET("/rfq-attachment/:id", anyone, rfqH.DownloadFile)

	rfq := api.Group("", staff)
	{
		rfq.POST("/rfq", rfqH.Create)
		rfq.PUT("/rfq/:id", rfqH.UpdateDueDate)
		rfq.DELETE("/rfq/:id", rfqH.Archive)

		rfq.POST("/rfq/:id/details", childH.AddDetails)
		rfq.PUT("/rfq/details/:id", childH.UpdateDetail)
		rfq.DELETE("/rfq/details/:id", childH.DeleteDetail)

		rfq.POST("/rfq/:id/pictures", childH.AddPicture)
		rfq.DELETE("/rfq/pictures/:id", childH.DeletePicture)

		rfq.POST("/rfq/:id/files", childH.AddFile)
		rfq.DELETE("/rfq/files/:id", childH.DeleteFile)

		rfq.GET("/rfq/:id/vendors", childH.ListVendors)
		rfq.POST("/rfq/:id/vendors", childH.AddVendor)
		rfq.PUT("/rfq/vendors/:id", childH.UpdateVendor)
		rfq.DELETE("/rfq/vendors/:id", childH.DeleteVendor)
	}
	api.PUT("/rfq/:id/approve", approvers, rfqH.Approve)
	api.PUT("/rfq/:id/reject", approvers, rfqH.Reject)

	// ── Vendor quotation ─────────────────────────────────────────────────────
	api.POST("/vendor-quotation", vendorOnly, quotationH.Submit)
	api.PUT("/vendor-quotation", vendorOnly, quotationH.Update)
	api.GET("/vendor-quotation", anyone, quotationH.Worklist)
	api.GET("/vendor-detail", anyone, quotationH.Detail)
	api.GET("/vendor-quotation/:quotation_id/download", staff, quotationH.Download)

	// ── Dashboard & reports ──────────────────────────────────────────────────
	api.GET("/dashboard", staff, reportH.Dashboard)
	api.GET("/dashboard-vendor", anyone, reportH.VendorDashboard)
	api.GET("/report", staff, reportH.Report)
	api.GET("/report/vendor", anyone, reportH.VendorReport)
	api.GET("/report/export", staff, reportH.Export)

	// Swagger UI is only served outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
