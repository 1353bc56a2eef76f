package http

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

func loadTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

// view arma los datos comunes de todas las paginas.
func view(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	if sess, ok := GetSession(c); ok {
		data["Username"] = sess.Username
	}
	return data
}
