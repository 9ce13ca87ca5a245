package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/numerology/pkg/calendar"
	"github.com/aretw0/numerology/pkg/domain"
	"github.com/go-playground/validator/v10"
)

// Field names reported in ValidationError.Field.
const (
	FieldDate = "date"
	FieldName = "name"
)

// Messages shown to the user, one per rule.
const (
	MsgDateIncomplete = "Please select your full date of birth (year, month and day)."
	MsgDateInvalid    = "That date does not exist. Please check the day of the month."
	MsgNameRequired   = "Please enter your name."
	MsgNameTooShort   = "Your name must be at least 2 characters long."
	MsgNameTooLong    = "Your name must be at most 50 characters long."
	MsgNameAlphabet   = "Your name may contain only the letters A-Z and spaces."
	MsgNameSpaceRun   = "Spaces cannot be used consecutively."
	MsgNameTrimmed    = "Your name cannot start or end with a space."
	MsgDateFuture     = "The date of birth cannot be in the future."
	MsgDateTooOld     = "Please check your date of birth."
)

// Name length bounds, in characters.
const (
	MinNameLength = 2
	MaxNameLength = 50
)

// DefaultMaxAge is the largest accepted difference between the current year
// and the birth year.
const DefaultMaxAge = 150

var alphaSpace = regexp.MustCompile(`^[A-Za-z ]+$`)

type rule struct {
	tag string
	msg string
}

var nameRules = []rule{
	{tag: "min=" + strconv.Itoa(MinNameLength), msg: MsgNameTooShort},
	{tag: "max=" + strconv.Itoa(MaxNameLength), msg: MsgNameTooLong},
	{tag: "alphaspace", msg: MsgNameAlphabet},
	{tag: "nospacerun", msg: MsgNameSpaceRun},
	{tag: "trimmed", msg: MsgNameTrimmed},
}

// Input is the untouched content of the form: three date selections (empty
// when nothing was picked) and the name exactly as typed.
type Input struct {
	Year  string `mapstructure:"year" json:"year"`
	Month string `mapstructure:"month" json:"month"`
	Day   string `mapstructure:"day" json:"day"`
	Name  string `mapstructure:"name" json:"name"`
}

// Valid is input that passed every rule.
type Valid struct {
	Date domain.BirthDate
	Name string
}

// Validator runs the rule sequence.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
	maxAge   int
}

// Option configures the Validator.
type Option func(*Validator)

// WithClock sets the source of "today". Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

// WithMaxAge overrides DefaultMaxAge.
func WithMaxAge(years int) Option {
	return func(v *Validator) {
		v.maxAge = years
	}
}

// New creates a Validator with the custom name tags registered.
func New(opts ...Option) *Validator {
	v := &Validator{
		validate: validator.New(),
		now:      time.Now,
		maxAge:   DefaultMaxAge,
	}
	for _, opt := range opts {
		opt(v)
	}

	// Registration only fails for empty tags or nil funcs.
	_ = v.validate.RegisterValidation("alphaspace", func(fl validator.FieldLevel) bool {
		return alphaSpace.MatchString(fl.Field().String())
	})
	_ = v.validate.RegisterValidation("nospacerun", func(fl validator.FieldLevel) bool {
		return !strings.Contains(fl.Field().String(), "  ")
	})
	_ = v.validate.RegisterValidation("trimmed", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return strings.Trim(s, " ") == s
	})
	return v
}

// Validate returns the parsed date and the name, or the first broken rule as
// a *domain.ValidationError.
func (v *Validator) Validate(in Input) (Valid, error) {
	date, err := v.checkDate(in)
	if err != nil {
		return Valid{}, err
	}

	if err := v.checkName(in.Name); err != nil {
		return Valid{}, err
	}

	if err := v.checkRange(date); err != nil {
		return Valid{}, err
	}

	return Valid{Date: date, Name: in.Name}, nil
}

func (v *Validator) checkDate(in Input) (domain.BirthDate, error) {
	parts := [3]string{in.Year, in.Month, in.Day}
	var nums [3]int
	for i, raw := range parts {
		raw = strings.TrimSpace(raw)
		if err := v.validate.Var(raw, "required,number"); err != nil {
			return domain.BirthDate{}, fail(FieldDate, MsgDateIncomplete)
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return domain.BirthDate{}, fail(FieldDate, MsgDateIncomplete)
		}
		nums[i] = n
	}

	date := domain.BirthDate{Year: nums[0], Month: nums[1], Day: nums[2]}
	if !calendar.IsValidDate(date.Year, date.Month, date.Day) {
		return domain.BirthDate{}, fail(FieldDate, MsgDateInvalid)
	}
	return date, nil
}

func (v *Validator) checkName(name string) error {
	// A name of only spaces counts as no name at all.
	if err := v.validate.Var(strings.TrimSpace(name), "required"); err != nil {
		return fail(FieldName, MsgNameRequired)
	}
	for _, r := range nameRules {
		if err := v.validate.Var(name, r.tag); err != nil {
			return fail(FieldName, r.msg)
		}
	}
	return nil
}

func (v *Validator) checkRange(date domain.BirthDate) error {
	now := v.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// Compared as integers: time.Date overflows for very large years.
	if afterDay(date, today) {
		return fail(FieldDate, MsgDateFuture)
	}
	if today.Year()-date.Year > v.maxAge {
		return fail(FieldDate, MsgDateTooOld)
	}
	return nil
}

func afterDay(date domain.BirthDate, today time.Time) bool {
	if date.Year != today.Year() {
		return date.Year > today.Year()
	}
	if date.Month != int(today.Month()) {
		return date.Month > int(today.Month())
	}
	return date.Day > today.Day()
}

func fail(field, msg string) *domain.ValidationError {
	return &domain.ValidationError{Field: field, Message: msg}
}
