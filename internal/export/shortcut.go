package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

var shortcutTemplate = template.Must(template.New("shortcut").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta http-equiv="refresh" content="0; url={{.URL}}">
  <title>TeamFlow Pro</title>
  <script>window.location.href = {{.URL}};</script>
</head>
<body>
  <p>Opening TeamFlow Pro&hellip; If nothing happens, <a href="{{.URL}}">click here</a>.</p>
</body>
</html>
`))

// ShortcutHTML produces a small redirect page pointing at the app. Saving it
// to a desktop gives a double-clickable launcher.
func ShortcutHTML(appURL string) (*Result, error) {
	var buf bytes.Buffer
	if err := shortcutTemplate.Execute(&buf, struct{ URL string }{URL: appURL}); err != nil {
		return nil, fmt.Errorf("render shortcut: %w", err)
	}
	return &Result{
		Data:     buf.Bytes(),
		Filename: fmt.Sprintf("teamflow-%s.html", time.Now().Format("2006-01-02")),
		MimeType: "text/html; charset=utf-8",
	}, nil
}
