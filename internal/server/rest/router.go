package rest

import (
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with every route.
//
//	POST   /auth/token          issue an access token
//	GET    /auth/me             the caller's account
//	POST   /users               register
//	PUT    /users/:userId       update own account
//	DELETE /users/:userId       delete own account
//	POST   /quizzes             create
//	GET    /quizzes             list own, paginated
//	GET    /quizzes/:quizId     get
//	PUT    /quizzes/:quizId     update
//	DELETE /quizzes/:quizId     delete
//	GET    /healthz             database health
func NewRouter(h *Handler) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(requestID(), h.accessLog(), h.recovery())
	r.NoRoute(h.notFound)
	r.NoMethod(h.methodNotAllowed)

	r.GET("/healthz", h.Health)

	authGroup := r.Group("/auth")
	authGroup.POST("/token", h.IssueToken)
	authGroup.GET("/me", h.authenticate(), h.withIdentity(h.Me))

	users := r.Group("/users")
	users.POST("", h.RegisterUser)
	users.PUT("/:userId", h.authenticate(), h.withIdentity(h.UpdateUser))
	users.DELETE("/:userId", h.authenticate(), h.withIdentity(h.DeleteUser))

	quizzes := r.Group("/quizzes", h.authenticate())
	quizzes.POST("", h.withIdentity(h.CreateQuiz))
	quizzes.GET("", h.withIdentity(h.FindQuizzes))
	quizzes.GET("/:quizId", h.withIdentity(h.GetQuiz))
	quizzes.PUT("/:quizId", h.withIdentity(h.UpdateQuiz))
	quizzes.DELETE("/:quizId", h.withIdentity(h.DeleteQuiz))

	return r, nil
}
