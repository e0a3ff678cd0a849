package routes

import (
	"os"
	"strings"

	"freelanceflow-backend/config"
	"freelanceflow-backend/controllers"
	"freelanceflow-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000", "http://localhost:5173"}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		allowedOrigins = append(allowedOrigins, strings.Split(extra, ",")...)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
		auth.POST("/logout", controllers.Logout)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
			clients.POST("/:id/communications", controllers.AddCommunication)
		}

		// Project routes; milestones are created through their project
		projects := api.Group("/projects")
		{
			projects.POST("", controllers.CreateProject)
			projects.GET("", controllers.GetProjects)
			projects.GET("/:id", controllers.GetProject)
			projects.PUT("/:id", controllers.UpdateProject)
			projects.DELETE("/:id", controllers.DeleteProject)
			projects.POST("/:id/milestones", controllers.CreateMilestone)
		}

		milestones := api.Group("/milestones")
		{
			milestones.PUT("/:id", controllers.UpdateMilestone)
			milestones.PUT("/:id/status", controllers.UpdateMilestoneStatus)
			milestones.DELETE("/:id", controllers.DeleteMilestone)
		}

		// Time tracking routes
		timeEntries := api.Group("/time-entries")
		{
			timeEntries.POST("", controllers.CreateTimeEntry)
			timeEntries.GET("", controllers.GetTimeEntries)
			timeEntries.GET("/:id", controllers.GetTimeEntry)
			timeEntries.PUT("/:id", controllers.UpdateTimeEntry)
			timeEntries.DELETE("/:id", controllers.DeleteTimeEntry)
		}

		// Expense routes
		expenses := api.Group("/expenses")
		{
			expenses.POST("", controllers.CreateExpense)
			expenses.GET("", controllers.GetExpenses)
			expenses.GET("/export", controllers.ExportExpensesCSV)
			expenses.GET("/:id", controllers.GetExpense)
			expenses.PUT("/:id", controllers.UpdateExpense)
			expenses.DELETE("/:id", controllers.DeleteExpense)
		}

		// Invoice routes
		invoices := api.Group("/invoices")
		{
			invoices.POST("", controllers.CreateInvoice)
			invoices.GET("", controllers.GetInvoices)
			invoices.GET("/:id", controllers.GetInvoice)
			invoices.PUT("/:id", controllers.UpdateInvoice)
			invoices.POST("/:id/send", controllers.SendInvoice)
			invoices.POST("/:id/pay", controllers.PayInvoice)
			invoices.GET("/:id/pdf", controllers.DownloadInvoicePDF)
			invoices.DELETE("/:id", controllers.DeleteInvoice)
		}

		// Document routes
		documents := api.Group("/documents")
		{
			documents.POST("", controllers.CreateDocument)
			documents.GET("", controllers.GetDocuments)
			documents.GET("/:id", controllers.GetDocument)
			documents.PUT("/:id", controllers.UpdateDocument)
			documents.POST("/:id/versions", controllers.AddDocumentVersion)
			documents.DELETE("/:id", controllers.DeleteDocument)
		}

		folders := api.Group("/folders")
		{
			folders.POST("", controllers.CreateFolder)
			folders.GET("", controllers.GetFolders)
			folders.PUT("/:id", controllers.UpdateFolder)
			folders.DELETE("/:id", controllers.DeleteFolder)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Reports routes
		api.GET("/reports", controllers.GetReportAnalytics)

		// Settings routes
		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateProfile)
			profile.PUT("/invoice-settings", controllers.UpdateInvoiceSettings)
		}
	}

	return r
}
