// Package web serves the server-rendered back-office pages. Every page
// goes through the same services as the REST API.
package web

import (
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Eurie-R/IMS-CristinaVilla/middleware"
	"github.com/Eurie-R/IMS-CristinaVilla/models"
	"github.com/Eurie-R/IMS-CristinaVilla/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templatesFS embed.FS

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"datetime": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Local().Format("2006-01-02 15:04")
	},
}

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html"))
}

type Pages struct {
	Auth      *services.AuthService
	Dashboard *services.DashboardService
	Inventory *services.InventoryService
	Tasks     *services.TaskService
	Bookings  *services.BookingService
	Rooms     *services.RoomService
	Finance   *services.FinanceService
	Now       func() time.Time
}

// Register installs the templates and page routes on r.
func (p *Pages) Register(r *gin.Engine) {
	if p.Now == nil {
		p.Now = time.Now
	}
	r.SetHTMLTemplate(Templates())

	r.GET("/login", p.loginForm)
	r.POST("/login", p.login)
	r.GET("/logout", p.logout)

	pages := r.Group("/", middleware.RequirePageAuth(p.Auth))
	{
		pages.GET("/", p.dashboard)
		pages.GET("/todo", p.todoList)
		pages.POST("/todo/add", p.todoAdd)
		pages.Any("/todo/toggle/:id", p.todoToggle)
		pages.Any("/todo/delete/:id", p.todoDelete)

		inventory := pages.Group("/inventory", middleware.RequirePermission(middleware.ManageInventory))
		{
			inventory.GET("", p.inventoryList)
			inventory.POST("/add", p.inventoryAdd)
			inventory.POST("/update/:id", p.inventoryUpdate)
		}

		bookings := pages.Group("/bookings", middleware.RequirePermission(middleware.ManageBookings))
		{
			bookings.GET("", p.bookingList)
			bookings.POST("/add", p.bookingAdd)
		}

		financials := pages.Group("/financials", middleware.RequirePermission(middleware.ManageFinance))
		{
			financials.GET("", p.financialSummary)
			financials.POST("/add", p.financialAdd)
			financials.Any("/delete/:id", p.financialDelete)
		}
	}
}

// ----------------------------------------------------
// helpers
// ----------------------------------------------------

func (p *Pages) render(c *gin.Context, name string, data gin.H) {
	data["Msg"] = c.Query("msg")
	data["Level"] = c.DefaultQuery("level", "success")
	if claims, ok := middleware.CurrentClaims(c); ok {
		data["Role"] = claims.Role
	}
	c.HTML(http.StatusOK, name, data)
}

// redirect sends the browser back to path with a flash message.
func redirect(c *gin.Context, path, msg string) {
	q := url.Values{}
	q.Set("msg", msg)
	c.Redirect(http.StatusFound, path+"?"+q.Encode())
}

// redirectErr flashes err; validation messages are shown as-is.
func redirectErr(c *gin.Context, path string, err error) {
	msg := "Something went wrong."
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		msg = ve.Message
	} else {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	q := url.Values{}
	q.Set("msg", msg)
	q.Set("level", "error")
	c.Redirect(http.StatusFound, path+"?"+q.Encode())
}

func formInt(c *gin.Context, key string) (*int, error) {
	raw := strings.TrimSpace(c.PostForm(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &services.ValidationError{Message: key + " must be a whole number"}
	}
	return &v, nil
}

func formUint(c *gin.Context, key string) (*uint, error) {
	v, err := formInt(c, key)
	if err != nil || v == nil {
		return nil, err
	}
	if *v < 0 {
		return nil, &services.ValidationError{Message: key + " is invalid"}
	}
	u := uint(*v)
	return &u, nil
}

func formDecimal(c *gin.Context, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(c.PostForm(key))
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, &services.ValidationError{Message: key + " must be a number"}
	}
	return &d, nil
}

func formDate(c *gin.Context, key string) (*models.Date, error) {
	raw := strings.TrimSpace(c.PostForm(key))
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, &services.ValidationError{Message: key + ": " + err.Error()}
	}
	return &d, nil
}

func formString(c *gin.Context, key string) *string {
	v := c.PostForm(key)
	return &v
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.String(http.StatusNotFound, "not found")
		return 0, false
	}
	return uint(id), true
}

// ----------------------------------------------------
// login / logout
// ----------------------------------------------------

func (p *Pages) loginForm(c *gin.Context) {
	p.render(c, "login.html", gin.H{"Title": "Sign in"})
}

func (p *Pages) login(c *gin.Context) {
	pair, err := p.Auth.Login(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		redirectErr(c, "/login", &services.ValidationError{Message: "Invalid username or password."})
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessCookie, pair.Access, int(p.Auth.AccessTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (p *Pages) logout(c *gin.Context) {
	c.SetCookie(middleware.AccessCookie, "", -1, "/", "", false, true)
	redirect(c, "/login", "You have been signed out.")
}

// ----------------------------------------------------
// dashboard
// ----------------------------------------------------

func (p *Pages) dashboard(c *gin.Context) {
	d, err := p.Dashboard.Build(c.Request.Context(), true)
	if err != nil {
		log.Printf("❌ dashboard: %v", err)
		c.String(http.StatusInternalServerError, "failed to load dashboard")
		return
	}
	p.render(c, "dashboard.html", gin.H{"Title": "Dashboard", "D": d})
}
