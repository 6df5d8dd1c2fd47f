package formset

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nameForm struct {
	Name  string
	Count string
}

var nameFields = []Field{{Name: "name"}, {Name: "count", Initial: "1"}}

func bindName(src Source) nameForm {
	return nameForm{Name: src.Value("name"), Count: src.Value("count")}
}

func validateName(f *nameForm) error {
	return validation.Errors{
		"name": validation.Validate(f.Name, validation.Required),
	}.Filter()
}

func management(prefix string, total int) url.Values {
	v := url.Values{}
	v.Set(prefix+"-TOTAL_FORMS", strconv.Itoa(total))
	v.Set(prefix+"-INITIAL_FORMS", "0")
	v.Set(prefix+"-MIN_NUM_FORMS", "0")
	v.Set(prefix+"-MAX_NUM_FORMS", "1000")
	return v
}

func TestBind_ReadsMembers(t *testing.T) {
	v := management("authors", 2)
	v.Set("authors-0-name", "Ann")
	v.Set("authors-1-name", "Bob")

	s := Bind("authors", NewValues(v, nil), nameFields, bindName)

	require.NoError(t, s.Error)
	require.Len(t, s.Members, 2)
	assert.Equal(t, "Ann", s.Members[0].Form.Name)
	assert.Equal(t, "Bob", s.Members[1].Form.Name)
	assert.True(t, s.Validate(validateName))
	assert.Len(t, s.Forms(), 2)
}

func TestBind_MissingManagementForm(t *testing.T) {
	v := url.Values{}
	v.Set("authors-0-name", "Ann")

	s := Bind("authors", NewValues(v, nil), nameFields, bindName)

	assert.ErrorIs(t, s.Error, ErrManagementForm)
	assert.Empty(t, s.Members)
	assert.False(t, s.Validate(validateName))
	assert.False(t, s.Valid())
}

func TestBind_TamperedTotal(t *testing.T) {
	v := management("authors", 1)
	v.Set("authors-TOTAL_FORMS", "lots")

	s := Bind("authors", NewValues(v, nil), nameFields, bindName)
	assert.ErrorIs(t, s.Error, ErrManagementForm)
}

func TestBind_CapsTotalForms(t *testing.T) {
	v := management("authors", 0)
	v.Set("authors-TOTAL_FORMS", "5000")

	s := Bind("authors", NewValues(v, nil), nameFields, bindName)

	assert.ErrorIs(t, s.Error, ErrTooManyForms)
	assert.Len(t, s.Members, MaxNumForms)
	assert.False(t, s.Validate(validateName))
}

func TestBind_SkipsBlankMembers(t *testing.T) {
	v := management("authors", 3)
	v.Set("authors-0-name", "Ann")
	v.Set("authors-1-count", "1") // only the initial value
	// member 2 entirely absent

	s := Bind("authors", NewValues(v, nil), nameFields, bindName)

	require.Len(t, s.Members, 3)
	assert.False(t, s.Members[0].Skipped)
	assert.True(t, s.Members[1].Skipped)
	assert.True(t, s.Members[2].Skipped)
	assert.True(t, s.Validate(validateName))
	assert.Equal(t, []nameForm{{Name: "Ann"}}, s.Forms())
}

func TestValidate_OneBadMemberFailsTheSet(t *testing.T) {
	v := management("authors", 3)
	v.Set("authors-0-name", "Ann")
	v.Set("authors-1-count", "7") // changed, but name missing
	v.Set("authors-2-name", "Cid")

	s := Bind("authors", NewValues(v, nil), nameFields, bindName)

	assert.False(t, s.Validate(validateName))
	assert.True(t, s.Members[0].Valid())
	require.Contains(t, s.Members[1].Errors, "name")
	assert.True(t, s.Members[2].Valid())
}

func TestValidate_NonValidationErrorIsNonField(t *testing.T) {
	v := management("authors", 1)
	v.Set("authors-0-name", "Ann")

	s := Bind("authors", NewValues(v, nil), nameFields, bindName)
	ok := s.Validate(func(*nameForm) error { return errors.New("boom") })

	assert.False(t, ok)
	assert.EqualError(t, s.Members[0].Errors[NonFieldKey], "boom")
}

func TestAddError(t *testing.T) {
	v := management("authors", 1)
	v.Set("authors-0-name", "Ann")
	s := Bind("authors", NewValues(v, nil), nameFields, bindName)
	require.True(t, s.Validate(validateName))

	s.AddError(0, "name", errors.New("taken"))
	assert.False(t, s.Valid())
}

func TestBlank(t *testing.T) {
	s := Blank("books", 2, func() nameForm { return nameForm{Count: "1"} })

	require.Len(t, s.Members, 2)
	assert.Equal(t, 2, s.TotalForms())
	assert.Equal(t, "books-1-title", s.Name(1, "title"))
	assert.Equal(t, "books-TOTAL_FORMS", s.ManagementName(TotalFormsKey))
	assert.Equal(t, "1", s.Members[0].Form.Count)
}

func TestFromRequest_Multipart(t *testing.T) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("books-0-title", "Dune"))
	fw, err := w.CreateFormFile("books-0-cover", "dune.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	src, err := FromRequest(req)
	require.NoError(t, err)

	member := Prefixed(src, "books-0")
	assert.Equal(t, "Dune", member.Value("title"))
	require.NotNil(t, member.File("cover"))
	assert.Equal(t, "dune.png", member.File("cover").Filename)
	assert.Nil(t, member.File("missing"))
}
