package curriculum

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError names a field of the input document that failed a rule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationErrors collects every rule violation of one document.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "invalid curriculum: " + strings.Join(msgs, "; ")
}

// Warning is a data-quality issue that does not stop rendering.
type Warning struct {
	Field   string
	Message string
}

func (w Warning) String() string {
	return w.Field + ": " + w.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks required fields and value formats. The returned error is a
// ValidationErrors when the document breaks one or more rules.
func (c *Curriculum) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate curriculum: %w", err)
	}
	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:  fieldPath(fe.Namespace()),
			Reason: reason(fe),
		})
	}
	return out
}

// fieldPath drops the root type name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return fmt.Sprintf("%q is not a valid email address", fe.Value())
	case "len":
		return fmt.Sprintf("must have exactly %s elements", fe.Param())
	}
	return fmt.Sprintf("failed %q rule", fe.Tag())
}

// Warnings reports entries whose dates cannot yield a meaningful duration.
func (c *Curriculum) Warnings() []Warning {
	var out []Warning
	for i := range c.Education {
		out = c.Education[i].warnings(fmt.Sprintf("education[%d]", i), out)
	}
	for i := range c.Experiences {
		out = c.Experiences[i].warnings(fmt.Sprintf("experiences[%d]", i), out)
	}
	return out
}

func (e *Entry) warnings(path string, out []Warning) []Warning {
	switch {
	case e.End != nil && e.Beginning == nil:
		out = append(out, Warning{Field: path, Message: "end date without beginning, entry has no duration"})
	case e.End != nil && e.End.Before(e.Beginning.Time):
		out = append(out, Warning{
			Field:   path,
			Message: fmt.Sprintf("end %s is before beginning %s, duration counted as zero", e.End, e.Beginning),
		})
	}
	if e.Title != "" && e.Degree != "" {
		out = append(out, Warning{Field: path, Message: "both title and degree are set, degree is ignored"})
	}
	for i := range e.Children {
		out = e.Children[i].warnings(fmt.Sprintf("%s.children[%d]", path, i), out)
	}
	return out
}
