package model

// FilterCondition is one backend query condition. Beyond construction it is
// opaque: the payload already carries the backend operator/operand shape and is
// passed verbatim to the query executor. Multiple conditions are always
// combined with logical AND downstream; there is no OR support.
type FilterCondition struct {
	Attribute string
	Type      AttributeType
	Payload   map[string]any
}
