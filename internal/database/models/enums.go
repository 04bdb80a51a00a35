package models

// GroupStatus defines the lifecycle state of a directory entry
type GroupStatus string

const (
	GroupStatusApproved GroupStatus = "approved"
	GroupStatusBroken   GroupStatus = "broken"
)

// SuggestionStatus defines the state of a user-submitted suggestion.
// Suggestions are deleted on resolution, so pending is the only stored value.
type SuggestionStatus string

const (
	SuggestionStatusPending SuggestionStatus = "pending"
)

// ContactType defines how a group's moderator can be reached
type ContactType string

const (
	ContactTypeEmail    ContactType = "email"
	ContactTypePhone    ContactType = "phone"
	ContactTypeWhatsApp ContactType = "whatsapp"
	ContactTypeTelegram ContactType = "telegram"
	ContactTypeOther    ContactType = "other"
)

// IsValid checks if the GroupStatus is valid
func (s GroupStatus) IsValid() bool {
	switch s {
	case GroupStatusApproved, GroupStatusBroken:
		return true
	}
	return false
}

// IsValid checks if the ContactType is valid
func (c ContactType) IsValid() bool {
	switch c {
	case ContactTypeEmail, ContactTypePhone, ContactTypeWhatsApp, ContactTypeTelegram, ContactTypeOther:
		return true
	}
	return false
}
