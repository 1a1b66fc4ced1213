package artifact

import (
	"strings"
	"testing"
)

func TestExtractNoBlocks(t *testing.T) {
	if _, ok := Extract("Just a plain answer with no code."); ok {
		t.Error("plain replies must not produce artifacts")
	}
	if _, ok := Extract("```python\nprint('hi')\n```"); ok {
		t.Error("non-renderable languages must not produce artifacts")
	}
	if _, ok := Extract("```html\n\n```"); ok {
		t.Error("empty blocks must not produce artifacts")
	}
}

func TestExtractFragment(t *testing.T) {
	reply := "Here you go:\n```html\n<h1>Hello</h1>\n```\n```css\nh1 { color: red; }\n```\n```js\nconsole.log('hi');\n```"

	art, ok := Extract(reply)
	if !ok {
		t.Fatal("expected an artifact")
	}

	html := art.HTML
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<h1>Hello</h1>",
		"<style>",
		"h1 { color: red; }",
		"<script>",
		"console.log('hi');",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("assembled document missing %q", want)
		}
	}

	if strings.Index(html, "<style>") > strings.Index(html, "<body>") {
		t.Error("styles should land in the head")
	}
	if strings.Index(html, "<script>") < strings.Index(html, "<h1>Hello</h1>") {
		t.Error("scripts should follow the body content")
	}
}

func TestExtractJavascriptAlias(t *testing.T) {
	reply := "```html\n<p>x</p>\n```\n```javascript\nalert(1);\n```"

	art, ok := Extract(reply)
	if !ok {
		t.Fatal("expected an artifact")
	}
	if !strings.Contains(art.HTML, "alert(1);") {
		t.Error("javascript blocks should be treated as js")
	}
}

func TestExtractFullDocumentInjection(t *testing.T) {
	reply := "```html\n<html>\n<head><title>T</title></head>\n<body><p>x</p></body>\n</html>\n```\n```css\np { margin: 0; }\n```\n```js\nalert(1);\n```"

	art, ok := Extract(reply)
	if !ok {
		t.Fatal("expected an artifact")
	}
	html := art.HTML

	if strings.Contains(html, "<!DOCTYPE html>\n<html>\n<head>\n<meta") {
		t.Error("full documents must not be re-wrapped in boilerplate")
	}
	if strings.Index(html, "p { margin: 0; }") > strings.Index(html, "</head>") {
		t.Error("css should be injected before </head>")
	}
	if strings.Index(html, "alert(1);") > strings.Index(html, "</body>") {
		t.Error("js should be injected before </body>")
	}
}

func TestExtractConcatenatesMultipleBlocks(t *testing.T) {
	reply := "```html\n<p>one</p>\n```\nand then\n```html\n<p>two</p>\n```"

	art, ok := Extract(reply)
	if !ok {
		t.Fatal("expected an artifact")
	}
	if !strings.Contains(art.HTML, "<p>one</p>\n<p>two</p>") {
		t.Error("html blocks should be joined in order")
	}
}
