package youtrack

import "time"

// Issue is a normalized YouTrack issue.
type Issue struct {
	ID           string          `json:"id"`
	Key          string          `json:"idReadable"`
	Summary      string          `json:"summary"`
	Description  string          `json:"description,omitempty"`
	Created      time.Time       `json:"created"`
	Updated      time.Time       `json:"updated"`
	Resolved     *time.Time      `json:"resolved,omitempty"`
	Reporter     User            `json:"reporter"`
	Assignee     *User           `json:"assignee,omitempty"`
	Project      Project         `json:"project"`
	Priority     *Classification `json:"priority,omitempty"`
	State        *Classification `json:"state,omitempty"`
	Type         *Classification `json:"type,omitempty"`
	CustomFields []CustomField   `json:"customFields,omitempty"`

	// Sprint is derived from CustomFields by EnrichBatch, never fetched.
	Sprint *SprintRef `json:"sprint,omitempty"`
}

// User is a tracker account reference.
type User struct {
	ID       string `json:"id"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
}

// DisplayName returns the full name, then the name, then the login.
// It returns "" for a nil user or one without any of them.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	switch {
	case u.FullName != "":
		return u.FullName
	case u.Name != "":
		return u.Name
	default:
		return u.Login
	}
}

// Project is a tracker project reference.
type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

// Classification is a priority, state or type value. Names are free text.
type Classification struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FieldDefinition is the project-level definition a custom field entry points at.
type FieldDefinition struct {
	Name string `json:"name"`
	Type string `json:"fieldType,omitempty"`
}

// CustomField is one custom field entry on an issue. Value is already classified
// into a FieldValue variant at decode time.
type CustomField struct {
	Name       string          `json:"name"`
	Value      FieldValue      `json:"value"`
	Definition FieldDefinition `json:"definition"`
}

// SprintRef is the sprint an issue belongs to. Value is the key used for filtering.
type SprintRef struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProjectCustomField is a field configured on a project, with its bundle values.
type ProjectCustomField struct {
	Name         string        `json:"name"`
	BundleValues []BundleValue `json:"bundleValues,omitempty"`
}

// BundleValue is one selectable value of an enum-like field such as Sprints.
type BundleValue struct {
	Name     string `json:"name"`
	Archived bool   `json:"archived"`
}
