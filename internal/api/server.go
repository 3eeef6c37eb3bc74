package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/clavedesales/clave-api/docs"
	v1 "github.com/clavedesales/clave-api/internal/api/handler/v1"
	"github.com/clavedesales/clave-api/internal/api/middleware"
	"github.com/clavedesales/clave-api/internal/config"
	"github.com/clavedesales/clave-api/internal/repository"
	"github.com/clavedesales/clave-api/internal/repository/dao"
	"github.com/clavedesales/clave-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	careerSvc *service.CareerService
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	careerSvc := s.initCareerService(db)
	s.careerSvc = careerSvc

	userSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	studySvc := service.NewStudyTrackService(repository.NewStudyTrackRepository(dao.NewStudyTrackDAO(db)), careerSvc)

	authHandler := s.initAuthHandler(db)
	userHandler := v1.NewUserHandler(userSvc)
	careerHandler := v1.NewCareerHandler(careerSvc, conf.Season.Current)
	studyHandler := v1.NewStudyTrackHandler(studySvc)
	studioHandler := s.initStudioHandler(db, studySvc, careerSvc, userSvc)
	pressHandler := s.initPressHandler(db, careerSvc)

	s.MountHandlers(authHandler, userHandler, careerHandler, studyHandler, studioHandler, pressHandler)

	return s
}

// CareerService exposes the progression façade for background jobs.
func (s *Server) CareerService() *service.CareerService {
	return s.careerSvc
}

func (s *Server) initCareerService(db *gorm.DB) *service.CareerService {
	careerRepo := repository.NewCareerRepository(dao.NewCareerDAO(db))
	achievementRepo := repository.NewAchievementRepository(dao.NewAchievementDAO(db))
	tourRepo := repository.NewTourRepository(dao.NewTourDAO(db))
	leaderboard := repository.NewLeaderboardCache(s.Config.Redis)

	return service.NewCareerService(careerRepo, achievementRepo, tourRepo, leaderboard, s.Config.Season.Current)
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initStudioHandler(db *gorm.DB, studySvc *service.StudyTrackService, careerSvc *service.CareerService, userSvc *service.UserService) *v1.StudioHandler {
	repo := repository.NewStudioRepository(dao.NewSubmissionDAO(db))
	svc := service.NewStudioService(repo, studySvc, careerSvc)
	handler := v1.NewStudioHandler(svc, userSvc)

	return handler
}

func (s *Server) initPressHandler(db *gorm.DB, careerSvc *service.CareerService) *v1.PressHandler {
	repo := repository.NewPressRepository(dao.NewPressDAO(db))
	svc := service.NewPressService(repo, careerSvc)
	handler := v1.NewPressHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	careerHandler *v1.CareerHandler,
	studyHandler *v1.StudyTrackHandler,
	studioHandler *v1.StudioHandler,
	pressHandler *v1.PressHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	protected := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		protected.GET("/users/:userID", userHandler.HandleGetUser)

		protected.GET("/career", careerHandler.HandleGetCareer)
		protected.GET("/career/history", careerHandler.HandleGetFanHistory)
		protected.GET("/career/leaderboard", careerHandler.HandleGetLeaderboard)
		protected.POST("/routines/complete", careerHandler.HandleCompleteRoutine)
		protected.GET("/achievements", careerHandler.HandleGetAchievements)
		protected.POST("/tours/:tourID/shows/:showID/checkin", careerHandler.HandleCheckInTourShow)
		protected.POST("/projects/:projectID/complete", careerHandler.HandleCompleteProject)

		protected.POST("/study-tracks/:studyTrackID/toggle", studyHandler.HandleToggle)
		protected.GET("/track-scenes/:trackSceneID/progress", studyHandler.HandleGetProgress)
		protected.GET("/track-scenes/:trackSceneID/unlocked", studyHandler.HandleGetUnlocked)

		protected.POST("/track-scenes/:trackSceneID/submissions", studioHandler.HandleCreateSubmission)
		protected.GET("/submissions", studioHandler.HandleListSubmissions)
		protected.POST("/submissions/:submissionID/review", studioHandler.HandlePostReview)

		protected.POST("/press-quizzes/:quizID/attempts", pressHandler.HandleSubmitAttempt)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Clave de Sales API"
	docs.SwaggerInfo.Description = "Progression backend for the Clave de Sales learning platform."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
