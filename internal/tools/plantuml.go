package tools

import (
	"bytes"
	"compress/flate"
	"fmt"
	"strings"
)

// PlantUML's URL text encoding: raw DEFLATE, then base64 with PlantUML's own
// alphabet (not the standard one).
const plantumlAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_"

// PlantUML builds diagram image URLs against a PlantUML server. The server
// renders the image; no network call happens here.
type PlantUML struct {
	server string
}

func NewPlantUML(server string) *PlantUML {
	if server == "" {
		server = "http://www.plantuml.com/plantuml/img/"
	}
	if !strings.HasSuffix(server, "/") {
		server += "/"
	}
	return &PlantUML{server: server}
}

// DiagramURL encodes PlantUML source into an image URL. Missing
// @startuml/@enduml delimiters are added.
func (p *PlantUML) DiagramURL(source string) (string, error) {
	source = ensureDelimiters(source)

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("init deflate: %w", err)
	}
	if _, err := w.Write([]byte(source)); err != nil {
		return "", fmt.Errorf("deflate source: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("flush deflate: %w", err)
	}

	return p.server + encode(buf.Bytes()), nil
}

// Markdown returns a markdown image link for an encoded diagram URL, ready
// to inline in an assistant reply.
func (p *PlantUML) Markdown(url string) string {
	return fmt.Sprintf("![Generated Diagram](%s)", url)
}

func ensureDelimiters(source string) string {
	s := strings.TrimSpace(source)
	if !strings.HasPrefix(s, "@startuml") {
		s = "@startuml\n" + s
	}
	if !strings.HasSuffix(s, "@enduml") {
		s = s + "\n@enduml"
	}
	return s
}

// encode maps each 3-byte group to 4 alphabet characters, zero-padding the
// tail; PlantUML uses no padding characters.
func encode(data []byte) string {
	var sb strings.Builder
	for i := 0; i < len(data); i += 3 {
		var b [3]byte
		copy(b[:], data[i:])
		sb.WriteByte(plantumlAlphabet[b[0]>>2])
		sb.WriteByte(plantumlAlphabet[((b[0]&0x03)<<4)|(b[1]>>4)])
		sb.WriteByte(plantumlAlphabet[((b[1]&0x0F)<<2)|(b[2]>>6)])
		sb.WriteByte(plantumlAlphabet[b[2]&0x3F])
	}
	return sb.String()
}
