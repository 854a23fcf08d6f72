package curriculum

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCurriculum() *Curriculum {
	return &Curriculum{
		PersonalData: PersonalData{
			Name:    "Jessica Meyer",
			Email:   []string{"nom@example.com"},
			Webpage: [][]string{{"example", "www.example.com"}},
		},
		Experiences: []Entry{{
			Institution: "Acme",
			Beginning:   month(2020, time.January),
			Children:    []Entry{{Title: "Developer"}},
		}},
		Languages: []Language{{Language: "French", Level: "native"}},
	}
}

func TestValidateAcceptsCompleteDocument(t *testing.T) {
	require.NoError(t, validCurriculum().Validate())
}

func TestValidateNamesFieldPaths(t *testing.T) {
	c := validCurriculum()
	c.PersonalData.Name = ""
	c.PersonalData.Email = []string{"not-an-address"}
	c.PersonalData.Webpage = [][]string{{"only name"}}
	c.Languages = append(c.Languages, Language{Level: "B2"})
	c.Experiences[0].Children[0].Description = &Description{CI: []string{""}}

	err := c.Validate()
	require.Error(t, err)
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))

	fields := make([]string, len(verrs))
	for i, v := range verrs {
		fields[i] = v.Field
	}
	assert.ElementsMatch(t, []string{
		"personal data.name",
		"personal data.email[0]",
		"personal data.webpage[0]",
		"languages[1].language",
		"experiences[0].children[0].description.ci[0]",
	}, fields)
	assert.Contains(t, err.Error(), "personal data.name: is required")
}

func TestWarnings(t *testing.T) {
	c := validCurriculum()
	c.Experiences[0].End = month(2019, time.March)
	c.Experiences[0].Children[0].End = month(2021, time.May)
	c.Education = []Entry{{Title: "MSc", Degree: "Master"}}

	warnings := c.Warnings()
	require.Len(t, warnings, 3)
	assert.Equal(t, "education[0]", warnings[0].Field)
	assert.Equal(t, "experiences[0]", warnings[1].Field)
	assert.Contains(t, warnings[1].Message, "before beginning")
	assert.Equal(t, "experiences[0].children[0]", warnings[2].Field)
	assert.Contains(t, warnings[2].Message, "without beginning")

	d, ok := c.Experiences[0].Duration(now)
	require.True(t, ok)
	assert.True(t, d.IsZero())
}
