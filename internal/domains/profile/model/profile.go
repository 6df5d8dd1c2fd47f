package model

import (
	"errors"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-catalog/internal/shared/formset"
	"library-catalog/internal/shared/validators"
)

const (
	MinAge = 0
	MaxAge = 120
)

const (
	GenderUnspecified int16 = iota
	GenderMale
	GenderFemale
)

var ErrProfileNotFound = errors.New("profile not found")

// Genders are the select options, in display order.
var Genders = []struct {
	Value int16
	Label string
}{
	{GenderUnspecified, "Not specified"},
	{GenderMale, "Male"},
	{GenderFemale, "Female"},
}

type UserProfile struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"user_id" db:"user_id"`
	Age    int   `json:"age" db:"age"`
	Gender int16 `json:"gender" db:"gender"`
}

// ProfileForm - POST /userprofile/
type ProfileForm struct {
	Age    string `json:"age"`
	Gender string `json:"gender"`
}

func BindForm(src formset.Source) ProfileForm {
	return ProfileForm{Age: src.Value("age"), Gender: src.Value("gender")}
}

func FormFromProfile(p *UserProfile) ProfileForm {
	return ProfileForm{Age: strconv.Itoa(p.Age), Gender: strconv.Itoa(int(p.Gender))}
}

func (f *ProfileForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Age, validation.Required.Error("This field is required."), validators.IntRange(MinAge, MaxAge)),
		validation.Field(&f.Gender, validation.Required, validation.In("0", "1", "2").Error(validators.ErrChoice.Message())),
	)
}

// Apply copies a validated form onto p.
func (f *ProfileForm) Apply(p *UserProfile) {
	age, _ := strconv.Atoi(f.Age)
	gender, _ := strconv.ParseInt(f.Gender, 10, 16)
	p.Age = age
	p.Gender = int16(gender)
}
