package views

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
)

//go:embed templates
var viewsFS embed.FS

var dashboardTmpl *template.Template

// loadTemplatesFromFS loads dashboard templates from the given fs and dir.
// Used by LoadTemplates and by tests to simulate failure scenarios.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	tmpl, err := template.ParseFS(sub, "*.html", "partials/*.html")
	if err != nil {
		return err
	}
	dashboardTmpl = tmpl
	return nil
}

// LoadTemplates loads embedded dashboard templates. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// DashboardPage is the view model of the dashboard page
type DashboardPage struct {
	Title         string
	Header        string
	DataSourceURL string
	MapTypes      []string
}

func RenderDashboard(w io.Writer, data *DashboardPage) error {
	if dashboardTmpl == nil {
		return errors.New("dashboard template not loaded: call views.LoadTemplates during startup")
	}
	return dashboardTmpl.ExecuteTemplate(w, "dashboard.html", data)
}
