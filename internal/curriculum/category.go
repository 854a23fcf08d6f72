package curriculum

import "fmt"

// Category is one of the six fixed skill categories.
type Category int

const (
	Programming Category = iota
	VersionControl
	Database
	Cloud
	CICD
	Other
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{Programming, VersionControl, Database, Cloud, CICD, Other}
}

// Label is the human-readable name shown in documents and reports.
func (c Category) Label() string {
	switch c {
	case Programming:
		return "programming languages"
	case VersionControl:
		return "version control"
	case Database:
		return "database"
	case Cloud:
		return "cloud computing"
	case CICD:
		return "CI/CD"
	case Other:
		return "other"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Key is the field name the category uses inside an entry description.
func (c Category) Key() string {
	switch c {
	case Programming:
		return "programming"
	case VersionControl:
		return "version"
	case Database:
		return "database"
	case Cloud:
		return "cloud"
	case CICD:
		return "ci"
	case Other:
		return "other"
	}
	return ""
}

func (c Category) String() string {
	return c.Label()
}

// ParseCategory resolves a description key or a label to its Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if s == c.Key() || s == c.Label() {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown skill category %q", s)
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.Label()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
