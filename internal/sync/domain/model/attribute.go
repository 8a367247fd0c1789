package model

// AttributeType is the closed set of attribute types the engine understands.
// Remote types outside this set map to AttributeUnknown so that new remote types
// fail closed instead of matching an unintended branch.
type AttributeType int

const (
	AttributeUnknown AttributeType = iota
	AttributeText
	AttributeTitle
	AttributeNumber
	AttributeBoolean
	AttributeSingleChoice
	AttributeMultiChoice
	AttributeDate
	AttributeRelation
)

// ParseAttributeType maps a remote type tag to the engine's closed enum.
func ParseAttributeType(remote string) AttributeType {
	switch remote {
	case "title":
		return AttributeTitle
	case "text", "rich_text", "url", "email", "phone_number":
		return AttributeText
	case "number":
		return AttributeNumber
	case "checkbox":
		return AttributeBoolean
	case "select", "status":
		return AttributeSingleChoice
	case "multi_select":
		return AttributeMultiChoice
	case "date":
		return AttributeDate
	case "relation":
		return AttributeRelation
	default:
		return AttributeUnknown
	}
}

// String returns the engine-side name of the attribute type.
func (t AttributeType) String() string {
	switch t {
	case AttributeText:
		return "text"
	case AttributeTitle:
		return "title"
	case AttributeNumber:
		return "number"
	case AttributeBoolean:
		return "boolean"
	case AttributeSingleChoice:
		return "single_choice"
	case AttributeMultiChoice:
		return "multi_choice"
	case AttributeDate:
		return "date"
	case AttributeRelation:
		return "relation"
	default:
		return "unknown"
	}
}
