package main

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tsukino/go-hanbai/auth"
	"github.com/tsukino/go-hanbai/gate"
	"github.com/tsukino/go-hanbai/i18n"
	"github.com/tsukino/go-hanbai/internal/models"
	"github.com/tsukino/go-hanbai/internal/policy"
	"github.com/tsukino/go-hanbai/view"
)

// App is the main application handler holding the route table.
type App struct {
	mux       *http.ServeMux
	db        *gorm.DB
	routerCfg *policy.RouterConfig
}

// NewApp creates the application with all routes configured and wires the
// view-layer permission resolvers.
func NewApp(db *gorm.DB, routerCfg *policy.RouterConfig) *App {
	app := &App{
		mux:       http.NewServeMux(),
		db:        db,
		routerCfg: routerCfg,
	}
	view.SetCanResolver(func(r *http.Request, resource, action string) bool {
		return routerCfg.AuthGate.Can(r.Context(), gate.Action(action), resource)
	})
	view.SetIsAdminResolver(func(r *http.Request) bool {
		return routerCfg.AuthGate.IsAdmin(r.Context())
	})
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler := auth.Middleware(withPreferences(a.mux))
	handler.ServeHTTP(w, r)
}

// resource registers the standard route set for one CRUD screen.
func (a *App) resource(path, resourceType string, h interface {
	List(http.ResponseWriter, *http.Request)
	New(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	Edit(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}) {
	a.mux.Handle("GET "+path,
		a.protect(resourceType, gate.ActionList, h.List))
	a.mux.Handle("GET "+path+"/new",
		a.protect(resourceType, gate.ActionCreate, h.New))
	a.mux.Handle("POST "+path,
		a.protect(resourceType, gate.ActionCreate, h.Create))
	a.mux.Handle("GET "+path+"/{id}/edit",
		a.protect(resourceType, gate.ActionUpdate, h.Edit))
	a.mux.Handle("POST "+path+"/{id}",
		a.protect(resourceType, gate.ActionUpdate, h.Update))
	a.mux.Handle("POST "+path+"/{id}/delete",
		a.protect(resourceType, gate.ActionDelete, h.Delete))
}

// protect is the single authentication + authorization checkpoint for
// business routes.
func (a *App) protect(resourceType string, action gate.Action, h http.HandlerFunc) http.Handler {
	return auth.RequireAuth(
		a.routerCfg.AuthGate.RequirePermission(resourceType, action)(h))
}

func (a *App) setupRoutes() {
	ah := a.routerCfg.AuthHandler

	// Public routes
	a.mux.HandleFunc("GET /{$}", a.landingPage)
	a.mux.HandleFunc("GET /login", ah.ShowLogin)
	a.mux.HandleFunc("POST /login", ah.Login)
	a.mux.HandleFunc("GET /signup", ah.ShowSignup)
	a.mux.HandleFunc("POST /signup", ah.Signup)
	a.mux.HandleFunc("POST /logout", ah.Logout)

	// Authenticated, not permission-gated
	a.mux.Handle("GET /dashboard", auth.RequireAuth(http.HandlerFunc(a.dashboard)))

	// Business resources
	a.resource("/customers", "customer", a.routerCfg.CustomerHandler)
	a.resource("/suppliers", "supplier", a.routerCfg.SupplierHandler)
	a.resource("/projects", "project", a.routerCfg.ProjectHandler)
	a.resource("/quotes", "quote", a.routerCfg.QuoteHandler)
	a.resource("/sales-orders", "sales_order", a.routerCfg.SalesOrderHandler)
	a.resource("/invoices", "invoice", a.routerCfg.InvoiceHandler)
	a.resource("/delivery-notes", "delivery_note", a.routerCfg.DeliveryNoteHandler)

	// Line items on quotes, invoices and delivery notes
	qh := a.routerCfg.QuoteHandler
	a.mux.Handle("POST /quotes/{id}/items",
		a.protect("quote", gate.ActionUpdate, qh.AddItem))
	a.mux.Handle("POST /quotes/{id}/items/{item_id}/delete",
		a.protect("quote", gate.ActionUpdate, qh.RemoveItem))

	ih := a.routerCfg.InvoiceHandler
	a.mux.Handle("POST /invoices/{id}/items",
		a.protect("invoice", gate.ActionUpdate, ih.AddItem))
	a.mux.Handle("POST /invoices/{id}/items/{item_id}/delete",
		a.protect("invoice", gate.ActionUpdate, ih.RemoveItem))
	a.mux.Handle("POST /invoices/{id}/logs",
		a.protect("delivery_log", gate.ActionCreate, ih.AddLog))

	dh := a.routerCfg.DeliveryNoteHandler
	a.mux.Handle("POST /delivery-notes/{id}/items",
		a.protect("delivery_note", gate.ActionUpdate, dh.AddItem))
	a.mux.Handle("POST /delivery-notes/{id}/items/{item_id}/delete",
		a.protect("delivery_note", gate.ActionUpdate, dh.RemoveItem))

	// Delivery log history (append-only: list, create, delete)
	lh := a.routerCfg.DeliveryLogHandler
	a.mux.Handle("GET /delivery-logs",
		a.protect("delivery_log", gate.ActionList, lh.List))
	a.mux.Handle("GET /delivery-logs/new",
		a.protect("delivery_log", gate.ActionCreate, lh.New))
	a.mux.Handle("POST /delivery-logs",
		a.protect("delivery_log", gate.ActionCreate, lh.Create))
	a.mux.Handle("POST /delivery-logs/{id}/delete",
		a.protect("delivery_log", gate.ActionDelete, lh.Delete))

	// Admin
	adm := a.routerCfg.AdminHandler
	a.mux.Handle("GET /admin/users",
		auth.RequireAuth(a.routerCfg.AuthGate.RequireAdmin()(http.HandlerFunc(adm.Users))))
	a.mux.Handle("POST /admin/users/{id}/profile",
		auth.RequireAuth(a.routerCfg.AuthGate.RequireAdmin()(http.HandlerFunc(adm.AssignProfile))))

	// Static files
	a.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
}

// withPreferences resolves the UI language: an explicit ?lang= wins and is
// persisted in a cookie, then the cookie, then Accept-Language. Japanese is
// the default.
func withPreferences(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := ""
		if c, err := r.Cookie("lang"); err == nil && c.Value != "" {
			lang = c.Value
		}
		if q := r.URL.Query().Get("lang"); q != "" {
			lang = q
			http.SetCookie(w, &http.Cookie{
				Name:     "lang",
				Value:    lang,
				Path:     "/",
				MaxAge:   86400 * 365,
				HttpOnly: true,
			})
		}
		if lang == "" {
			lang = i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		}
		ctx := i18n.WithLang(r.Context(), lang)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *App) landingPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserIDFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	if err := view.Render(w, r, "index.html", nil); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func (a *App) dashboard(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var user models.User
	a.db.Preload("Profile").First(&user, "id = ?", uid)

	var customerCount, projectCount, quoteCount, orderCount, invoiceCount int64
	a.db.Model(&models.Customer{}).Count(&customerCount)
	a.db.Model(&models.Project{}).Count(&projectCount)
	a.db.Model(&models.Quote{}).Count(&quoteCount)
	a.db.Model(&models.SalesOrder{}).Count(&orderCount)
	a.db.Model(&models.Invoice{}).Count(&invoiceCount)

	var recentQuotes []models.Quote
	a.db.Preload("Customer").Order("created_at DESC").Limit(5).Find(&recentQuotes)
	var recentInvoices []models.Invoice
	a.db.Preload("Customer").Order("created_at DESC").Limit(5).Find(&recentInvoices)

	if err := view.Render(w, r, "dashboard.html", map[string]any{
		"User": user,
		"Stats": map[string]any{
			"Customers": customerCount,
			"Projects":  projectCount,
			"Quotes":    quoteCount,
			"Orders":    orderCount,
			"Invoices":  invoiceCount,
		},
		"RecentQuotes":   recentQuotes,
		"RecentInvoices": recentInvoices,
	}); err != nil {
		log.Error().Err(err).Msg("dashboard render failed")
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}
