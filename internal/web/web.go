// Package web holds the HTML templates the handlers render.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	bookservice "library-catalog/internal/domains/book/service"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses every page with the helper functions bound to mediaURL.
func Templates(mediaURL string) (*template.Template, error) {
	t, err := template.New("").Funcs(Funcs(mediaURL)).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

func Funcs(mediaURL string) template.FuncMap {
	if mediaURL != "" && !strings.HasSuffix(mediaURL, "/") {
		mediaURL += "/"
	}
	return template.FuncMap{
		"media": func(key string) string {
			if key == "" {
				return ""
			}
			return mediaURL + key
		},
		"thumb": func(key string) string {
			if key == "" {
				return ""
			}
			return mediaURL + bookservice.VariantKey(key, "thumbnail")
		},
		"fieldError": fieldError,
		"id": func(id int64) string {
			return strconv.FormatInt(id, 10)
		},
		"dict": dict,
		"memberPrefix": func(prefix string, index int) string {
			return prefix + "-" + strconv.Itoa(index) + "-"
		},
	}
}

// fieldError returns the message for field, "" if there is none.
func fieldError(errs interface{}, field string) string {
	var err error
	switch e := errs.(type) {
	case validation.Errors:
		err = e[field]
	case map[string]error:
		err = e[field]
	}
	if err == nil {
		return ""
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return verrs.Error()
	}
	return err.Error()
}

func dict(pairs ...interface{}) (map[string]interface{}, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]interface{}, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		k, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[k] = pairs[i+1]
	}
	return m, nil
}
