package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/noorjahan04/City-Backend/internal/auth"
	"github.com/noorjahan04/City-Backend/internal/config"
	"github.com/noorjahan04/City-Backend/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	categoryHandler *handler.CategoryHandler,
	complaintHandler *handler.ComplaintHandler,
	employeeHandler *handler.EmployeeHandler,
	adminHandler *handler.AdminHandler,
	ticketHandler *handler.TicketHandler,
	reviewHandler *handler.ReviewHandler,
	chatHandler *handler.ChatHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Registration and OTP verification are throttled per client IP.
	authLimiter := middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(10))

	// Public routes
	api.POST("/auth/register", authHandler.Register, authLimiter)
	api.POST("/auth/verify-otp", authHandler.VerifyOTP, authLimiter)
	api.POST("/auth/login", authHandler.Login, authLimiter)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.GET("/reviews", reviewHandler.ListAll)
	api.GET("/categories", categoryHandler.ListCategories)
	api.GET("/subcategories/category/:categoryId", categoryHandler.ListSubCategories)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.POST("/auth/logout", authHandler.Logout)

	// Profile routes
	secured.GET("/profile", profileHandler.Get)
	secured.PUT("/profile/picture", profileHandler.UpdateProfilePic)
	secured.POST("/profile/phone/send-otp", profileHandler.SendPhoneOTP, authLimiter)
	secured.POST("/profile/phone/verify-otp", profileHandler.VerifyPhoneOTP, authLimiter)

	// Complaint routes
	secured.POST("/complaints", complaintHandler.Create)
	secured.GET("/complaints", complaintHandler.ListMine)
	secured.GET("/complaints/assigned", complaintHandler.ListForEmployee)
	secured.PUT("/complaints/assign", complaintHandler.Assign)
	secured.PATCH("/complaints/:id/resolve", complaintHandler.Resolve)

	// Category administration
	secured.POST("/categories", categoryHandler.CreateCategory)
	secured.PUT("/categories/:id", categoryHandler.UpdateCategory)
	secured.DELETE("/categories/:id", categoryHandler.DeleteCategory)

	// Sub-category routes
	secured.POST("/subcategories", categoryHandler.CreateSubCategory)
	secured.PUT("/subcategories/:id", categoryHandler.UpdateSubCategory)
	secured.DELETE("/subcategories/:id", categoryHandler.DeleteSubCategory)
	secured.GET("/subcategories/mine", categoryHandler.ListMySubCategories)

	// Employee workspace routes
	secured.PUT("/employees/category", employeeHandler.ChooseCategory)
	secured.GET("/employees/dashboard", employeeHandler.GetDashboard)
	secured.GET("/employees/subemployees", employeeHandler.ListSubEmployees)
	secured.PUT("/employees/subemployees/approve/:id", employeeHandler.ApproveSubEmployee)
	secured.PUT("/employees/subemployees/disapprove/:id", employeeHandler.DisapproveSubEmployee)
	secured.DELETE("/employees/subemployees/reject/:id", employeeHandler.RejectSubEmployee)

	// Admin routes
	secured.GET("/admin/users", adminHandler.ListUsers)
	secured.DELETE("/admin/users/:id", adminHandler.DeleteUser)
	secured.PUT("/admin/users/:id/role", adminHandler.SetUserRole)
	secured.GET("/admin/employees", adminHandler.ListEmployees)
	secured.PUT("/admin/employees/approve/:id", adminHandler.ApproveEmployee)
	secured.PUT("/admin/employees/toggle/:id", adminHandler.ToggleEmployeeApproval)
	secured.DELETE("/admin/employees/reject/:id", adminHandler.RejectEmployee)
	secured.GET("/admin/tickets", adminHandler.ListAllTickets)

	// Support ticket routes
	secured.POST("/tickets", ticketHandler.Create)
	secured.GET("/tickets", ticketHandler.ListMine)
	secured.PUT("/tickets/:id/reply", ticketHandler.Reply)
	secured.DELETE("/tickets/:id", ticketHandler.Delete)

	// Review submission
	secured.POST("/reviews", reviewHandler.Create)

	// Assistant
	secured.POST("/chatbot", chatHandler.Chat)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
