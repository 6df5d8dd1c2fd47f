// Package formset binds and validates repeated forms submitted in one POST.
//
// Wire format: management keys <prefix>-TOTAL_FORMS, <prefix>-INITIAL_FORMS,
// <prefix>-MIN_NUM_FORMS, <prefix>-MAX_NUM_FORMS and member fields
// <prefix>-<index>-<field>. Members whose fields all equal their initial
// value are skipped. A set is valid only if every remaining member is.
package formset

import (
	"errors"
	"fmt"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	TotalFormsKey   = "TOTAL_FORMS"
	InitialFormsKey = "INITIAL_FORMS"
	MinNumFormsKey  = "MIN_NUM_FORMS"
	MaxNumFormsKey  = "MAX_NUM_FORMS"

	// MaxNumForms caps TOTAL_FORMS.
	MaxNumForms = 1000

	// NonFieldKey holds member errors not tied to a single field.
	NonFieldKey = "__all__"
)

var (
	ErrManagementForm = errors.New("ManagementForm data is missing or has been tampered with")
	ErrTooManyForms   = fmt.Errorf("Please submit at most %d forms.", MaxNumForms)
)

// Field names a member field and the value a blank member renders with.
type Field struct {
	Name    string
	Initial string
}

// Binder builds one form from a member-scoped Source.
type Binder[F any] func(src Source) F

type Member[F any] struct {
	Index   int
	Form    F
	Errors  validation.Errors
	Skipped bool
}

// Valid reports whether the member passed validation (skipped members count as valid).
func (m *Member[F]) Valid() bool {
	return len(m.Errors) == 0
}

type Set[F any] struct {
	Prefix  string
	Members []*Member[F]
	// Error is a set-level problem: bad management data or too many forms.
	Error error
}

// Blank returns a set with extra empty members for a GET render.
func Blank[F any](prefix string, extra int, blank func() F) *Set[F] {
	s := &Set[F]{Prefix: prefix}
	for i := 0; i < extra; i++ {
		s.Members = append(s.Members, &Member[F]{Index: i, Form: blank()})
	}
	return s
}

// Bind reads the management form then each member. Management errors leave
// the set without members.
func Bind[F any](prefix string, src Source, fields []Field, bind Binder[F]) *Set[F] {
	s := &Set[F]{Prefix: prefix}

	total, err := strconv.Atoi(src.Value(prefix + "-" + TotalFormsKey))
	if err != nil || total < 0 {
		s.Error = ErrManagementForm
		return s
	}
	if _, err := strconv.Atoi(src.Value(prefix + "-" + InitialFormsKey)); err != nil {
		s.Error = ErrManagementForm
		return s
	}
	if total > MaxNumForms {
		s.Error = ErrTooManyForms
		total = MaxNumForms
	}

	for i := 0; i < total; i++ {
		member := Prefixed(src, fmt.Sprintf("%s-%d", prefix, i))
		s.Members = append(s.Members, &Member[F]{
			Index:   i,
			Form:    bind(member),
			Skipped: !changed(member, fields),
		})
	}
	return s
}

func changed(src Source, fields []Field) bool {
	for _, f := range fields {
		if src.File(f.Name) != nil {
			return true
		}
		if v := src.Value(f.Name); v != "" && v != f.Initial {
			return true
		}
	}
	return false
}

// Validate runs fn on every non-skipped member and records its errors.
// It returns true only when the whole set is acceptable.
// fn may update the form it is given.
func (s *Set[F]) Validate(fn func(*F) error) bool {
	ok := s.Error == nil
	for _, m := range s.Members {
		m.Errors = nil
		if m.Skipped {
			continue
		}
		if err := fn(&m.Form); err != nil {
			m.Errors = asErrors(err)
			ok = false
		}
	}
	return ok
}

// AddError attaches an error to one member after validation, e.g. when a
// check needs data only the service has.
func (s *Set[F]) AddError(index int, field string, err error) {
	for _, m := range s.Members {
		if m.Index == index {
			if m.Errors == nil {
				m.Errors = validation.Errors{}
			}
			m.Errors[field] = err
			return
		}
	}
}

// Valid reports whether Validate found nothing wrong.
func (s *Set[F]) Valid() bool {
	if s.Error != nil {
		return false
	}
	for _, m := range s.Members {
		if !m.Valid() {
			return false
		}
	}
	return true
}

// Forms returns the non-skipped forms in submission order.
func (s *Set[F]) Forms() []F {
	var out []F
	for _, m := range s.Members {
		if !m.Skipped {
			out = append(out, m.Form)
		}
	}
	return out
}

// Active returns the non-skipped members, with their indexes.
func (s *Set[F]) Active() []*Member[F] {
	var out []*Member[F]
	for _, m := range s.Members {
		if !m.Skipped {
			out = append(out, m)
		}
	}
	return out
}

// Name is the input name of field in member i.
func (s *Set[F]) Name(i int, field string) string {
	return fmt.Sprintf("%s-%d-%s", s.Prefix, i, field)
}

// ManagementName is the input name of a management key.
func (s *Set[F]) ManagementName(key string) string {
	return s.Prefix + "-" + key
}

// TotalForms is what the rendered management form reports.
func (s *Set[F]) TotalForms() int {
	return len(s.Members)
}

func (s *Set[F]) MaxNumForms() int {
	return MaxNumForms
}

func asErrors(err error) validation.Errors {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return verrs
	}
	return validation.Errors{NonFieldKey: err}
}
