// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"numdash-server/commons"
	"numdash-server/handlers"
	"numdash-server/middlewares"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	e.GET("/static/*", handlers.ServeAssetHandler)

	commons.Logger.Debug("Registering v1 routes")
	apiV1 := e.Group("/v1")
	apiV1.POST("/auth/signup", handlers.SignupHandler)
	apiV1.POST("/auth/login", handlers.LoginHandler)
	apiV1.POST("/auth/mfa", handlers.MFALoginHandler)
	apiV1.POST("/auth/logout", handlers.LogoutHandler, middlewares.VerifySessionMiddleware)

	users := apiV1.Group("/users", middlewares.VerifySessionMiddleware)
	users.GET("/", handlers.GetUserHandler)
	users.DELETE("/", handlers.DeleteAccountHandler)
	users.PUT("/change-password", handlers.ChangePasswordHandler)
	users.POST("/mfa/enroll", handlers.EnrollMFAHandler)
	users.POST("/mfa/activate", handlers.ActivateMFAHandler)
	users.DELETE("/mfa", handlers.DisableMFAHandler)

	apiV1.GET("/sessions", handlers.GetSessionsHandler, middlewares.VerifySessionMiddleware)
	apiV1.DELETE("/sessions/:session_id", handlers.DeleteSessionHandler, middlewares.VerifySessionMiddleware)

	apiV1.POST("/numbers/validate", handlers.ValidateNumbersHandler, middlewares.VerifySessionMiddleware)
	apiV1.POST("/sms/quote", handlers.QuoteHandler, middlewares.VerifySessionMiddleware)
	apiV1.POST("/sms/send", handlers.SendSMSHandler, middlewares.VerifySessionMiddleware)

	apiV1.GET("/catalog/:variant", handlers.GetCatalogHandler, middlewares.VerifySessionMiddleware)
	apiV1.POST("/catalog/:variant/purchase", handlers.PurchaseHandler, middlewares.VerifySessionMiddleware)

	apiV1.GET("/transactions", handlers.GetTransactionsHandler, middlewares.VerifySessionMiddleware)
	apiV1.GET("/transactions/summary", handlers.GetTransactionSummaryHandler, middlewares.VerifySessionMiddleware)
	commons.Logger.Info("v1 routes registered successfully")
}
