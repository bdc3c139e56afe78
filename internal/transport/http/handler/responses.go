package handler

import (
	"html/template"
	"net/http"
)

// successPage is shown in the browser tab the OAuth redirect lands in.
var successPage = template.Must(template.New("success").Parse(`<!DOCTYPE html>
<html>
  <head><title>{{.Institution}} Email Verification</title></head>
  <body>
    <h1>Verification Successful!</h1>
    <p>You can close this window and return to Discord.</p>
  </body>
</html>
`))

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

func writeSuccessPage(w http.ResponseWriter, institution string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = successPage.Execute(w, struct{ Institution string }{institution})
}
