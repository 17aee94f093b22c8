package youtrack

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// MapIssue transforms a YouTrack DTO into a domain Issue. Sprint is left nil; see EnrichBatch.
func MapIssue(item IssueDTO) Issue {
	issue := Issue{
		ID:          item.ID,
		Key:         item.IDReadable,
		Summary:     item.Summary,
		Description: item.Description,
		Created:     FromMillis(item.Created),
		Updated:     FromMillis(item.Updated),
		Project:     Project(item.Project),
		Priority:    mapClassification(item.Priority),
		State:       mapClassification(item.State),
		Type:        mapClassification(item.Type),
	}

	if item.Reporter != nil {
		issue.Reporter = mapUser(*item.Reporter)
	}
	if item.Assignee != nil {
		u := mapUser(*item.Assignee)
		issue.Assignee = &u
	}
	if item.Resolved != nil && *item.Resolved > 0 {
		t := FromMillis(*item.Resolved)
		issue.Resolved = &t
	}

	for _, cf := range item.CustomFields {
		field := CustomField{
			Name:  cf.Name,
			Value: ParseFieldValue(cf.Value),
		}
		if cf.ProjectCustomField != nil && cf.ProjectCustomField.Field != nil {
			field.Definition = FieldDefinition{
				Name: cf.ProjectCustomField.Field.Name,
				Type: string(cf.ProjectCustomField.Field.FieldType),
			}
		}
		issue.CustomFields = append(issue.CustomFields, field)
	}

	// Most installations expose State/Priority/Type only as custom fields.
	if issue.State == nil {
		issue.State = classificationFromField(issue.CustomFields, "state")
	}
	if issue.Priority == nil {
		issue.Priority = classificationFromField(issue.CustomFields, "priority")
	}
	if issue.Type == nil {
		issue.Type = classificationFromField(issue.CustomFields, "type")
	}

	normalizeTimestamps(&issue)
	return issue
}

// MapIssues maps a batch of DTOs.
func MapIssues(items []IssueDTO) []Issue {
	issues := make([]Issue, 0, len(items))
	for _, item := range items {
		issues = append(issues, MapIssue(item))
	}
	return issues
}

// FromMillis converts a YouTrack epoch-millisecond timestamp. Zero stays the zero time.
func FromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

// ToMillis converts a time to the tracker's epoch-millisecond form.
func ToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// normalizeTimestamps enforces created <= updated and created <= resolved.
func normalizeTimestamps(issue *Issue) {
	if issue.Created.IsZero() {
		return
	}
	if issue.Updated.Before(issue.Created) {
		log.Debug().Str("issue", issue.Key).Msg("Updated precedes created, clamping")
		issue.Updated = issue.Created
	}
	if issue.Resolved != nil && issue.Resolved.Before(issue.Created) {
		log.Debug().Str("issue", issue.Key).Msg("Resolved precedes created, clamping")
		t := issue.Created
		issue.Resolved = &t
	}
}

func mapUser(u UserDTO) User {
	return User{
		ID:       u.ID,
		Login:    u.Login,
		Name:     u.Name,
		FullName: u.FullName,
		Email:    u.Email,
	}
}

func mapClassification(c *ClassificationDTO) *Classification {
	if c == nil || (c.ID == "" && c.Name == "") {
		return nil
	}
	return &Classification{ID: c.ID, Name: c.Name}
}

func classificationFromField(fields []CustomField, name string) *Classification {
	for _, f := range fields {
		if !strings.EqualFold(f.Name, name) && !strings.EqualFold(f.Definition.Name, name) {
			continue
		}
		if v, ok := f.Value.Name(); ok {
			return &Classification{Name: v}
		}
		return nil
	}
	return nil
}

func mapProjectCustomField(dto ProjectCustomFieldDTO) ProjectCustomField {
	field := ProjectCustomField{Name: dto.Field.Name}
	if dto.Bundle != nil {
		for _, v := range dto.Bundle.Values {
			field.BundleValues = append(field.BundleValues, BundleValue(v))
		}
	}
	return field
}
