// Package ingestion turns uploaded documents into clean plain text.
package ingestion

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Supported content types
const (
	ContentTypePDF   = "application/pdf"
	ContentTypeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypePlain = "text/plain"
)

var extensionTypes = map[string]string{
	".pdf":  ContentTypePDF,
	".docx": ContentTypeDOCX,
	".txt":  ContentTypePlain,
	".md":   ContentTypePlain,
}

// ContentTypeForExtension maps a file name to a supported content type, or "" if unsupported.
func ContentTypeForExtension(filename string) string {
	return extensionTypes[strings.ToLower(filepath.Ext(filename))]
}

// ExtractText converts document bytes to cleaned plain text. An empty contentType is sniffed.
func ExtractText(data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", &DocumentError{ContentType: contentType, Message: "document is empty"}
	}

	ct := normalizeContentType(contentType)
	if ct == "" {
		ct = sniff(data)
	}

	var (
		text string
		err  error
	)
	switch ct {
	case ContentTypePDF:
		text, err = extractPDFText(data)
	case ContentTypeDOCX:
		text, err = extractDocxText(data)
	case ContentTypePlain:
		text = string(data)
	default:
		return "", &DocumentError{ContentType: ct, Message: "unsupported file type"}
	}
	if err != nil {
		return "", &DocumentError{ContentType: ct, Message: "unreadable document", Cause: err}
	}

	text = CleanText(text)
	if text == "" {
		return "", &DocumentError{ContentType: ct, Message: "no extractable text"}
	}
	return text, nil
}

// ExtractFile reads path and extracts its text, choosing the parser by extension.
func ExtractFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return ExtractText(data, ContentTypeForExtension(path))
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	// Generic binary uploads carry no information; sniff them instead.
	if mediaType == "application/octet-stream" {
		return ""
	}
	return mediaType
}

func sniff(data []byte) string {
	detected, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	switch detected {
	case "application/zip":
		return ContentTypeDOCX
	case "text/plain":
		return ContentTypePlain
	default:
		return detected
	}
}

func extractPDFText(data []byte) (text string, err error) {
	// The PDF parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return wordXMLText(doc.Editable().GetContent())
}

// wordXMLText flattens WordprocessingML into text: one line per paragraph,
// tabs and breaks kept.
func wordXMLText(content string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(content))
	var (
		b      strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteString("\t")
			case "br", "cr":
				b.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
