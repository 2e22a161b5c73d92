package models

// Role determines what an authenticated account may do.
type Role string

const (
	RoleSeeker  Role = "user"
	RoleAdmin   Role = "admin"
	RoleCompany Role = "company"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSeeker, RoleAdmin, RoleCompany:
		return true
	}
	return false
}

// JobStatus is the moderation state of a listing.
type JobStatus string

const (
	StatusPending  JobStatus = "pending"
	StatusApproved JobStatus = "approved"
	StatusRejected JobStatus = "rejected"
)

func (s JobStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// The listing attributes below are closed sets: a job may only carry one of
// the enumerated values. The values are the Georgian strings the frontend
// submits and renders verbatim.

type Location string

var locations = map[Location]bool{
	"თბილისი": true,
	"ბათუმი":  true,
	"ქუთაისი": true,
	"რუსთავი": true,
	"გორი":    true,
	"ზუგდიდი": true,
	"ფოთი":    true,
	"თელავი":  true,
	"სოხუმი":  true,
	"ხაშური":  true,
}

func (l Location) Valid() bool { return locations[l] }

type WorkType string

var workTypes = map[WorkType]bool{
	"ოფისი":              true,
	"დისტანციური":        true,
	"ჰიბრიდი":            true,
	"თავისუფალი გრაფიკი": true,
}

func (w WorkType) Valid() bool { return workTypes[w] }

type Experience string

var experiences = map[Experience]bool{
	"0-2 წლამდე": true,
	"2-5 წლამდე": true,
	"5+ წელი":    true,
	"გამოუცდელი": true,
}

func (e Experience) Valid() bool { return experiences[e] }

type Language string

var languages = map[Language]bool{
	"ქართული":   true,
	"ინგლისური": true,
	"რუსული":    true,
	"ესპანური":  true,
	"იტალიური":  true,
	"თურქული":   true,
	"გერმანული": true,
	"ფრანგული":  true,
	"კორეული":   true,
	"ჩინური":    true,
	"იაპონური":  true,
}

func (l Language) Valid() bool { return languages[l] }

type JobCategory string

var jobCategories = map[JobCategory]bool{
	"საბანკო სფერო":        true,
	"IT დეველოპმენტი":      true,
	"გაყიდვები/ვაჭრობა":    true,
	"საოფისე":              true,
	"მომსახურე პერსონალი":  true,
	"მედიცინა/ფარმაცევტი":  true,
}

func (c JobCategory) Valid() bool { return jobCategories[c] }

// ValidLanguages reports whether every entry of a submitted language list is
// a member of the closed set. An empty list is allowed.
func ValidLanguages(list []string) bool {
	for _, l := range list {
		if !Language(l).Valid() {
			return false
		}
	}
	return true
}
