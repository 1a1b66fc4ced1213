package artifact

import (
	"regexp"
	"strings"
)

// Artifact is a self-contained HTML document assembled from the code blocks
// of an assistant reply. The host's front end owns the actual rendering; the
// sidecar only produces the document.
type Artifact struct {
	Title string `json:"title"`
	HTML  string `json:"html"`
}

var fenceRe = regexp.MustCompile("(?s)```(html|css|js|javascript)[ \t]*\n(.*?)```")

// Extract scans an assistant reply for html/css/javascript code blocks and
// assembles them into one document. Returns false when the reply carries no
// renderable blocks.
func Extract(reply string) (*Artifact, bool) {
	matches := fenceRe.FindAllStringSubmatch(reply, -1)
	if len(matches) == 0 {
		return nil, false
	}

	var htmlParts, cssParts, jsParts []string
	for _, m := range matches {
		body := strings.TrimSpace(m[2])
		if body == "" {
			continue
		}
		switch m[1] {
		case "html":
			htmlParts = append(htmlParts, body)
		case "css":
			cssParts = append(cssParts, body)
		default:
			jsParts = append(jsParts, body)
		}
	}
	if len(htmlParts) == 0 && len(cssParts) == 0 && len(jsParts) == 0 {
		return nil, false
	}

	html := strings.Join(htmlParts, "\n")
	css := strings.Join(cssParts, "\n")
	js := strings.Join(jsParts, "\n")

	return &Artifact{
		Title: "Artifact",
		HTML:  assemble(html, css, js),
	}, true
}

// assemble inlines CSS and JS into the HTML. A reply that already ships a
// full document gets the extras injected; a fragment gets wrapped in
// boilerplate.
func assemble(html, css, js string) string {
	if strings.Contains(strings.ToLower(html), "<html") {
		return inject(html, css, js)
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	if css != "" {
		sb.WriteString("<style>\n")
		sb.WriteString(css)
		sb.WriteString("\n</style>\n")
	}
	sb.WriteString("</head>\n<body>\n")
	sb.WriteString(html)
	if js != "" {
		sb.WriteString("\n<script>\n")
		sb.WriteString(js)
		sb.WriteString("\n</script>")
	}
	sb.WriteString("\n</body>\n</html>")
	return sb.String()
}

func inject(doc, css, js string) string {
	if css != "" {
		style := "<style>\n" + css + "\n</style>"
		if i := strings.Index(strings.ToLower(doc), "</head>"); i >= 0 {
			doc = doc[:i] + style + "\n" + doc[i:]
		} else {
			doc = style + "\n" + doc
		}
	}
	if js != "" {
		script := "<script>\n" + js + "\n</script>"
		if i := strings.Index(strings.ToLower(doc), "</body>"); i >= 0 {
			doc = doc[:i] + script + "\n" + doc[i:]
		} else {
			doc = doc + "\n" + script
		}
	}
	return doc
}
