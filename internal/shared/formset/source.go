package formset

import (
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

const maxMultipartMemory = 32 << 20

// Source is where a form reads its submitted fields from.
type Source interface {
	Value(name string) string
	File(name string) *multipart.FileHeader
}

// Values is a Source over a parsed POST body.
type Values struct {
	form  url.Values
	files map[string][]*multipart.FileHeader
}

func NewValues(form url.Values, files map[string][]*multipart.FileHeader) *Values {
	if form == nil {
		form = url.Values{}
	}
	return &Values{form: form, files: files}
}

// FromRequest parses urlencoded or multipart bodies.
func FromRequest(r *http.Request) (*Values, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, err
		}
		return NewValues(r.PostForm, r.MultipartForm.File), nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return NewValues(r.PostForm, nil), nil
}

func (v *Values) Value(name string) string {
	return strings.TrimSpace(v.form.Get(name))
}

func (v *Values) File(name string) *multipart.FileHeader {
	if fhs := v.files[name]; len(fhs) > 0 {
		return fhs[0]
	}
	return nil
}

// Prefixed scopes a Source to one member: Value("title") reads "<prefix>-title".
func Prefixed(src Source, prefix string) Source {
	return prefixed{src: src, prefix: prefix}
}

type prefixed struct {
	src    Source
	prefix string
}

func (p prefixed) Value(name string) string {
	return p.src.Value(p.prefix + "-" + name)
}

func (p prefixed) File(name string) *multipart.FileHeader {
	return p.src.File(p.prefix + "-" + name)
}
