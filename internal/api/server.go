package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	v1 "github.com/voterbowl/backend/internal/api/handler/v1"
	"github.com/voterbowl/backend/internal/api/middleware"
	"github.com/voterbowl/backend/internal/config"
	"github.com/voterbowl/backend/internal/repository"
	"github.com/voterbowl/backend/internal/repository/dao"
	"github.com/voterbowl/backend/internal/service"
	"github.com/voterbowl/backend/pkg/mailer"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB, vendor service.GiftCardVendor, m mailer.Mailer) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	schoolRepo := repository.NewSchoolRepository(dao.NewSchoolDAO(db))
	contestRepo := repository.NewContestRepository(dao.NewContestDAO(db))
	studentRepo := repository.NewStudentRepository(dao.NewStudentDAO(db))
	entryRepo := repository.NewContestEntryRepository(dao.NewContestEntryDAO(db))
	linkRepo := repository.NewValidationLinkRepository(dao.NewValidationLinkDAO(db))

	contestSvc := service.NewContestService(contestRepo)
	studentSvc := service.NewStudentService(studentRepo)
	prizeSvc := service.NewPrizeService(entryRepo, studentRepo, vendor, m, zap.L())
	validationSvc := service.NewValidationService(linkRepo, studentRepo, schoolRepo, prizeSvc, m, zap.L(), conf.API.BaseURL)
	checkSvc := service.NewCheckService(schoolRepo, studentSvc, contestSvc, prizeSvc, validationSvc)

	schoolHandler := v1.NewSchoolHandler(checkSvc, contestSvc)
	checkHandler := v1.NewCheckHandler(checkSvc, contestSvc)
	validationHandler := v1.NewValidationHandler(validationSvc)
	s.MountHandlers(schoolHandler, checkHandler, validationHandler)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(schoolHandler *v1.SchoolHandler, checkHandler *v1.CheckHandler, validationHandler *v1.ValidationHandler) {
	const basePath = "/api/v1"

	schools := s.Router.Group(basePath)
	{
		schools.GET("/schools/:schoolSlug", schoolHandler.HandleGetSchool)
		schools.GET("/schools/:schoolSlug/check", checkHandler.HandleGetCheckPage)
		schools.POST("/schools/:schoolSlug/check/finish", checkHandler.HandleFinishCheck)
		schools.GET("/schools/:schoolSlug/v/:token", validationHandler.HandleValidateEmail)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
}
