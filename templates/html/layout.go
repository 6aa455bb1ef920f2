package templates

import (
	"fmt"
	"html"
	"strings"
)

const (
	colorApproved  = "#16a34a"
	colorRejected  = "#6b7280"
	colorCompleted = "#2563eb"
	colorGeneric   = "#f97316"
)

// escape HTML-escapes text and keeps its line breaks
func escape(text string) string {
	return strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")
}

// layout wraps body, which must already be safe HTML, in the branded shell.
// baseURL is the front-end address used for the footer and button links.
func layout(title, color, body, baseURL string) string {
	safeTitle := html.EscapeString(title)
	safeURL := html.EscapeString(strings.TrimRight(baseURL, "/"))

	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>%s</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f4f4f5; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background: %s; padding: 36px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 24px; font-weight: 700; }
    .content { padding: 36px 30px; color: #27272a; line-height: 1.6; font-size: 15px; }
    .box { background: #f4f4f5; border-radius: 8px; padding: 16px; margin: 20px 0; }
    .box h4 { margin: 0 0 8px 0; }
    .cta-button { display: inline-block; background: %s; color: #fff; padding: 12px 24px; border-radius: 8px; text-decoration: none; font-weight: 700; margin-top: 16px; }
    .footer { padding: 24px; text-align: center; color: #71717a; font-size: 12px; border-top: 1px solid #e4e4e7; }
    .footer a { color: #71717a; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>%s</h1>
    </div>
    <div class="content">
      %s
      <a href="%s/minhas-candidaturas" class="cta-button">Ver minhas candidaturas</a>
    </div>
    <div class="footer">
      <p>Conecta ONG | <a href="%s">%s</a></p>
      <p>Você recebeu este e-mail porque se candidatou a uma ação voluntária.</p>
    </div>
  </div>
</body>
</html>`, safeTitle, color, color, safeTitle, body, safeURL, safeURL, safeURL)
}

// RenderGenericEmail renders a plain notification: the message is escaped
// and its newlines kept.
func RenderGenericEmail(subject, message, baseURL string) string {
	return layout(subject, colorGeneric, "<p>"+escape(message)+"</p>", baseURL)
}
