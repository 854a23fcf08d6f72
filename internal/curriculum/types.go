package curriculum

// Curriculum is a complete résumé document.
type Curriculum struct {
	PersonalData PersonalData `yaml:"personal data" json:"personal data"`
	Education    []Entry      `yaml:"education,omitempty" json:"education" validate:"dive"`
	Experiences  []Entry      `yaml:"experiences,omitempty" json:"experiences" validate:"dive"`
	Languages    []Language   `yaml:"languages,omitempty" json:"languages" validate:"dive"`
	// SkillReport is a derived report stored by "cvtex skills --write". It is
	// never read back into aggregation.
	SkillReport []CategorySkills `yaml:"skills,omitempty" json:"skills,omitempty"`
}

// PersonalData holds the contact block printed in the document header.
type PersonalData struct {
	Name     string   `yaml:"name" json:"name" validate:"required"`
	Title    string   `yaml:"title,omitempty" json:"title,omitempty"`
	Mobile   []string `yaml:"mobile,omitempty" json:"mobile,omitempty" validate:"dive,required"`
	Email    []string `yaml:"email,omitempty" json:"email,omitempty" validate:"dive,email"`
	Github   string   `yaml:"github,omitempty" json:"github,omitempty"`
	Gitlab   string   `yaml:"gitlab,omitempty" json:"gitlab,omitempty"`
	Twitter  string   `yaml:"twitter,omitempty" json:"twitter,omitempty"`
	Linkedin string   `yaml:"linkedin,omitempty" json:"linkedin,omitempty"`
	// Webpage is a list of [name, url] pairs.
	Webpage [][]string `yaml:"webpage,omitempty" json:"webpage,omitempty" validate:"dive,len=2"`
}

// Entry is one timeline record: a degree, a job, or a role nested inside one.
type Entry struct {
	Beginning   *Month       `yaml:"beginning,omitempty" json:"beginning,omitempty"`
	End         *Month       `yaml:"end,omitempty" json:"end,omitempty"`
	Title       string       `yaml:"title,omitempty" json:"title,omitempty"`
	Degree      string       `yaml:"degree,omitempty" json:"degree,omitempty"`
	Institution string       `yaml:"institution,omitempty" json:"institution,omitempty"`
	City        *string      `yaml:"city,omitempty" json:"city,omitempty"`
	Grade       *string      `yaml:"grade,omitempty" json:"grade,omitempty"`
	Description *Description `yaml:"description,omitempty" json:"description,omitempty"`
	Children    []Entry      `yaml:"children,omitempty" json:"children,omitempty" validate:"dive"`
}

// Heading returns the entry title, falling back to the legacy degree field.
func (e *Entry) Heading() string {
	if e.Title != "" {
		return e.Title
	}
	return e.Degree
}

// Description is the free text of an entry with its categorized skill tags.
type Description struct {
	Context     string   `yaml:"context,omitempty" json:"context,omitempty"`
	Programming []string `yaml:"programming,omitempty" json:"programming,omitempty" validate:"dive,required"`
	Version     []string `yaml:"version,omitempty" json:"version,omitempty" validate:"dive,required"`
	Database    []string `yaml:"database,omitempty" json:"database,omitempty" validate:"dive,required"`
	Cloud       []string `yaml:"cloud,omitempty" json:"cloud,omitempty" validate:"dive,required"`
	CI          []string `yaml:"ci,omitempty" json:"ci,omitempty" validate:"dive,required"`
	Other       []string `yaml:"other,omitempty" json:"other,omitempty" validate:"dive,required"`
}

// List returns the skill tags filed under c.
func (d *Description) List(c Category) []string {
	switch c {
	case Programming:
		return d.Programming
	case VersionControl:
		return d.Version
	case Database:
		return d.Database
	case Cloud:
		return d.Cloud
	case CICD:
		return d.CI
	case Other:
		return d.Other
	}
	return nil
}

// Language is a spoken language with a proficiency level.
type Language struct {
	Language string `yaml:"language" json:"language" validate:"required"`
	Level    string `yaml:"level,omitempty" json:"level,omitempty"`
	Comment  string `yaml:"comment,omitempty" json:"comment,omitempty"`
}
