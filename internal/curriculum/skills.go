package curriculum

import (
	"sort"
	"time"
)

// SkillSet maps each category to the accumulated exposure per skill.
// A skill missing from the set was never seen; a zero Duration means it was
// seen on entries without a measurable span.
type SkillSet map[Category]map[string]Duration

// Add records d against skill under c, summing with any existing value.
func (s SkillSet) Add(c Category, skill string, d Duration) {
	skills, ok := s[c]
	if !ok {
		skills = make(map[string]Duration)
		s[c] = skills
	}
	skills[skill] = skills[skill].Add(d)
}

// Merge adds every duration of other into s.
func (s SkillSet) Merge(other SkillSet) {
	for c, skills := range other {
		for name, d := range skills {
			s.Add(c, name, d)
		}
	}
}

// Clone returns a deep copy of the set.
func (s SkillSet) Clone() SkillSet {
	out := make(SkillSet, len(s))
	out.Merge(s)
	return out
}

// Rounded returns a copy with every duration passed through Round.
func (s SkillSet) Rounded() SkillSet {
	out := make(SkillSet, len(s))
	for c, skills := range s {
		rounded := make(map[string]Duration, len(skills))
		for name, d := range skills {
			rounded[name] = d.Round()
		}
		out[c] = rounded
	}
	return out
}

// Get returns the duration of skill under c and whether it was seen.
func (s SkillSet) Get(c Category, skill string) (Duration, bool) {
	d, ok := s[c][skill]
	return d, ok
}

// Sorted lists the skills of c with the longest exposure first, then by name.
func (s SkillSet) Sorted(c Category) []string {
	skills := s[c]
	names := make([]string, 0, len(skills))
	for name := range skills {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		di, dj := skills[names[i]], skills[names[j]]
		mi, mj := di.Years*monthsInYear+di.Months, dj.Years*monthsInYear+dj.Months
		if mi != mj {
			return mi > mj
		}
		return names[i] < names[j]
	})
	return names
}

// Duration returns how long the entry lasted, measuring ongoing entries up to
// now. It reports false when the entry has no beginning.
func (e *Entry) Duration(now time.Time) (Duration, bool) {
	if e.Beginning == nil {
		return Duration{}, false
	}
	end := now
	if e.End != nil {
		end = e.End.Time
	}
	return Elapsed(e.Beginning.Time, end), true
}

// ExtractSkills returns the non-empty skill lists of the entry description.
func (e *Entry) ExtractSkills() map[Category][]string {
	skills := make(map[Category][]string)
	if e.Description == nil {
		return skills
	}
	for _, c := range Categories() {
		if list := e.Description.List(c); len(list) > 0 {
			skills[c] = list
		}
	}
	return skills
}

// SkillDurations pairs every skill of this entry alone with the entry's own
// duration. Children are not visited.
func (e *Entry) SkillDurations(now time.Time) SkillSet {
	d, _ := e.Duration(now)
	set := make(SkillSet)
	for c, skills := range e.ExtractSkills() {
		for _, skill := range skills {
			set.Add(c, skill, d)
		}
	}
	return set
}

// AggregateSkills merges the entry's own skills with those of its whole subtree.
func (e *Entry) AggregateSkills(now time.Time) SkillSet {
	set := e.SkillDurations(now)
	for i := range e.Children {
		set.Merge(e.Children[i].AggregateSkills(now))
	}
	return set
}

// Skills aggregates the skills of every entry tree in entries.
func Skills(entries []Entry, now time.Time) SkillSet {
	set := make(SkillSet)
	for i := range entries {
		set.Merge(entries[i].AggregateSkills(now))
	}
	return set
}

// Skills aggregates the professional experience of the curriculum.
func (c *Curriculum) Skills(now time.Time) SkillSet {
	return Skills(c.Experiences, now)
}

// CategorySkills is one category of a skill report.
type CategorySkills struct {
	Category Category     `yaml:"category" json:"category"`
	Skills   []SkillTotal `yaml:"skills" json:"skills"`
}

// SkillTotal is a skill with its accumulated exposure.
type SkillTotal struct {
	Name     string   `yaml:"name" json:"name"`
	Duration Duration `yaml:"duration" json:"duration"`
}

// Report flattens the set into categories listed in order, omitting empty
// ones. Skills within a category are ordered as by Sorted.
func (s SkillSet) Report(order []Category) []CategorySkills {
	var out []CategorySkills
	for _, c := range order {
		names := s.Sorted(c)
		if len(names) == 0 {
			continue
		}
		cs := CategorySkills{Category: c, Skills: make([]SkillTotal, len(names))}
		for i, name := range names {
			cs.Skills[i] = SkillTotal{Name: name, Duration: s[c][name]}
		}
		out = append(out, cs)
	}
	return out
}
