package youtrack

import (
	"bytes"
	"encoding/json"
)

// IssueDTO is a single issue as returned by GET /api/issues.
type IssueDTO struct {
	ID           string             `json:"id"`
	IDReadable   string             `json:"idReadable"`
	Summary      string             `json:"summary"`
	Description  string             `json:"description,omitempty"`
	Created      int64              `json:"created"`
	Updated      int64              `json:"updated"`
	Resolved     *int64             `json:"resolved,omitempty"`
	Reporter     *UserDTO           `json:"reporter,omitempty"`
	Assignee     *UserDTO           `json:"assignee,omitempty"`
	Project      ProjectDTO         `json:"project"`
	Priority     *ClassificationDTO `json:"priority,omitempty"`
	State        *ClassificationDTO `json:"state,omitempty"`
	Type         *ClassificationDTO `json:"type,omitempty"`
	CustomFields []CustomFieldDTO   `json:"customFields,omitempty"`
}

// UserDTO is a user reference.
type UserDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Login    string `json:"login"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
}

// ProjectDTO is a project reference.
type ProjectDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

// ClassificationDTO is a priority/state/type reference.
type ClassificationDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CustomFieldDTO is an issue custom field entry. Value is kept raw because its
// shape depends on the field type.
type CustomFieldDTO struct {
	Name               string                 `json:"name"`
	Value              json.RawMessage        `json:"value,omitempty"`
	ProjectCustomField *ProjectCustomFieldRef `json:"projectCustomField,omitempty"`
}

// ProjectCustomFieldRef links an issue field entry to its project definition.
type ProjectCustomFieldRef struct {
	Field *FieldDTO `json:"field,omitempty"`
}

// FieldDTO is a custom field definition.
type FieldDTO struct {
	Name      string       `json:"name"`
	FieldType FieldTypeDTO `json:"fieldType,omitempty"`
}

// FieldTypeDTO accepts both `"enum[1]"` and `{"id": "enum[1]"}`.
type FieldTypeDTO string

func (f *FieldTypeDTO) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FieldTypeDTO(s)
		return nil
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		*f = ""
		return nil
	}
	*f = FieldTypeDTO(obj.ID)
	return nil
}

// ProjectCustomFieldDTO is an entry of GET /api/admin/projects/{id}/customFields.
type ProjectCustomFieldDTO struct {
	Field  FieldDTO   `json:"field"`
	Bundle *BundleDTO `json:"bundle,omitempty"`
}

// BundleDTO holds the selectable values of an enum-like field.
type BundleDTO struct {
	Values []BundleValueDTO `json:"values"`
}

// BundleValueDTO is one bundle element.
type BundleValueDTO struct {
	Name     string `json:"name"`
	Archived bool   `json:"archived"`
}

const (
	issueFields = "id,idReadable,summary,description,created,updated,resolved," +
		"reporter(id,name,login,fullName),assignee(id,name,login,fullName)," +
		"project(id,name,shortName),priority(id,name),state(id,name),type(id,name)," +
		"customFields(name,value(name),projectCustomField(field(name,fieldType(id))))"
	projectFields     = "id,name,shortName"
	userFields        = "id,name,login,fullName,email"
	customFieldFields = "field(name),bundle(values(name,archived))"
)
