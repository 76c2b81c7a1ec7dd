package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Eurie-R/IMS-CristinaVilla/controllers"
	"github.com/Eurie-R/IMS-CristinaVilla/middleware"
	"github.com/Eurie-R/IMS-CristinaVilla/services"
	"github.com/Eurie-R/IMS-CristinaVilla/web"
)

// Controllers bundles every API controller the router needs.
type Controllers struct {
	Auth      *controllers.AuthController
	Users     *controllers.UserController
	Inventory *controllers.InventoryController
	Tasks     *controllers.TaskController
	Rooms     *controllers.RoomController
	Bookings  *controllers.BookingController
	Finance   *controllers.FinanceController
	Calendar  *controllers.CalendarController
	Dashboard *controllers.DashboardController
}

// App is the fully wired service layer.
type App struct {
	Auth      *services.AuthService
	Users     *services.UserService
	Inventory *services.InventoryService
	Tasks     *services.TaskService
	Rooms     *services.RoomService
	Bookings  *services.BookingService
	Finance   *services.FinanceService
	Calendar  *services.CalendarService
	Dashboard *services.DashboardService
}

func (a *App) controllers() Controllers {
	return Controllers{
		Auth:      controllers.NewAuthController(a.Auth),
		Users:     controllers.NewUserController(a.Users),
		Inventory: controllers.NewInventoryController(a.Inventory),
		Tasks:     controllers.NewTaskController(a.Tasks),
		Rooms:     controllers.NewRoomController(a.Rooms),
		Bookings:  controllers.NewBookingController(a.Bookings),
		Finance:   controllers.NewFinanceController(a.Finance),
		Calendar:  controllers.NewCalendarController(a.Calendar),
		Dashboard: controllers.NewDashboardController(a.Dashboard),
	}
}

func corsConfig(origins []string) cors.Config {
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

// crud registers the usual list/create/get/update/delete routes on g.
func crud(g *gin.RouterGroup, list, create, get, update, del gin.HandlerFunc) {
	g.GET("", list)
	g.POST("", create)
	g.GET("/:id", get)
	g.PUT("/:id", update)
	g.PATCH("/:id", update)
	g.DELETE("/:id", del)
}

// SetupRouter builds the gin engine with the API and the HTML pages.
func SetupRouter(app *App, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())
	r.Use(cors.New(corsConfig(corsOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ctl := app.controllers()

	api := r.Group("/api")
	{
		token := api.Group("/token")
		{
			token.POST("", ctl.Auth.Token)
			token.POST("/", ctl.Auth.Token)
			token.POST("/refresh", ctl.Auth.Refresh)
			token.POST("/refresh/", ctl.Auth.Refresh)
		}

		authed := api.Group("", middleware.RequireAuth(app.Auth))

		users := authed.Group("/users")
		{
			users.GET("/me", ctl.Users.Me)
			admin := users.Group("", middleware.RequirePermission(middleware.ManageUsers))
			crud(admin, ctl.Users.List, ctl.Users.Create, ctl.Users.Get, ctl.Users.Update, ctl.Users.Delete)
		}

		invCategories := authed.Group("/inventory-categories", middleware.RequirePermission(middleware.ManageInventory))
		crud(invCategories, ctl.Inventory.ListCategories, ctl.Inventory.CreateCategory, ctl.Inventory.GetCategory,
			ctl.Inventory.UpdateCategory, ctl.Inventory.DeleteCategory)

		items := authed.Group("/inventory-items", middleware.RequirePermission(middleware.ManageInventory))
		{
			items.GET("/low_stock", ctl.Inventory.LowStock)
			items.POST("/:id/restock", ctl.Inventory.Restock)
			crud(items, ctl.Inventory.ListItems, ctl.Inventory.CreateItem, ctl.Inventory.GetItem,
				ctl.Inventory.UpdateItem, ctl.Inventory.DeleteItem)
		}

		tasks := authed.Group("/tasks")
		{
			tasks.POST("/:id/complete", ctl.Tasks.Complete)
			crud(tasks, ctl.Tasks.List, ctl.Tasks.Create, ctl.Tasks.Get, ctl.Tasks.Update, ctl.Tasks.Delete)
		}

		rooms := authed.Group("/rooms", middleware.RequirePermission(middleware.ManageRooms))
		{
			rooms.GET("/availability", ctl.Rooms.Availability)
			crud(rooms, ctl.Rooms.List, ctl.Rooms.Create, ctl.Rooms.Get, ctl.Rooms.Update, ctl.Rooms.Delete)
		}

		bookings := authed.Group("/bookings", middleware.RequirePermission(middleware.ManageBookings))
		{
			bookings.GET("/calendar_view", ctl.Bookings.CalendarView)
			bookings.POST("/:id/confirm", ctl.Bookings.Confirm())
			bookings.POST("/:id/check_in", ctl.Bookings.CheckIn())
			bookings.POST("/:id/check_out", ctl.Bookings.CheckOut())
			bookings.POST("/:id/cancel", ctl.Bookings.Cancel())
			crud(bookings, ctl.Bookings.List, ctl.Bookings.Create, ctl.Bookings.Get, ctl.Bookings.Update, ctl.Bookings.Delete)
		}

		finCategories := authed.Group("/financial-categories", middleware.RequirePermission(middleware.ManageFinance))
		crud(finCategories, ctl.Finance.ListCategories, ctl.Finance.CreateCategory, ctl.Finance.GetCategory,
			ctl.Finance.UpdateCategory, ctl.Finance.DeleteCategory)

		transactions := authed.Group("/transactions", middleware.RequirePermission(middleware.ManageFinance))
		{
			transactions.GET("/summary", ctl.Finance.Summary)
			transactions.GET("/monthly_breakdown", ctl.Finance.MonthlyBreakdown)
			crud(transactions, ctl.Finance.ListTransactions, ctl.Finance.CreateTransaction, ctl.Finance.GetTransaction,
				ctl.Finance.UpdateTransaction, ctl.Finance.DeleteTransaction)
		}

		events := authed.Group("/calendar-events")
		crud(events, ctl.Calendar.List, ctl.Calendar.Create, ctl.Calendar.Get, ctl.Calendar.Update, ctl.Calendar.Delete)

		authed.GET("/dashboard", ctl.Dashboard.Get)
		authed.GET("/dashboard/", ctl.Dashboard.Get)
	}

	pages := &web.Pages{
		Auth:      app.Auth,
		Dashboard: app.Dashboard,
		Inventory: app.Inventory,
		Tasks:     app.Tasks,
		Bookings:  app.Bookings,
		Rooms:     app.Rooms,
		Finance:   app.Finance,
	}
	pages.Register(r)

	return r
}
