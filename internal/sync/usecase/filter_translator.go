package usecase

import (
	"strconv"
	"strings"

	"opsbridge/internal/sync/domain/model"
)

// BuildConditions translates a generic attribute to value map into type-correct
// query conditions using the collection schema. Pairs naming attributes absent
// from the schema are dropped with a log line, never an error, so callers must
// not assume a 1:1 correspondence between input pairs and output conditions.
func (e *Engine) BuildConditions(schema *model.CollectionSchema, values map[string]string) []model.FilterCondition {
	if len(values) == 0 {
		return nil
	}

	conditions := make([]model.FilterCondition, 0, len(values))
	for name, value := range values {
		if !schema.Has(name) {
			e.logger.WithFields(map[string]interface{}{
				"attribute":    name,
				"collectionID": schema.CollectionID,
			}).Warn("filter attribute not declared by collection, dropping")
			continue
		}
		if cond, ok := e.buildCondition(name, schema.TypeOf(name), value); ok {
			conditions = append(conditions, cond)
		}
	}
	return conditions
}

// buildCondition dispatches on the attribute type. Relation, date and unknown
// attributes are unsupported for generic filtering; reference lookups have a
// dedicated path in the entity resolver.
func (e *Engine) buildCondition(name string, attrType model.AttributeType, value string) (model.FilterCondition, bool) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		e.logger.WithFields(map[string]interface{}{"attribute": name}).
			Warn("empty filter value, dropping")
		return model.FilterCondition{}, false
	}

	var payload map[string]any
	switch attrType {
	case model.AttributeSingleChoice:
		payload = map[string]any{"select": map[string]any{"equals": cleaned}}
	case model.AttributeNumber:
		number, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			e.logger.WithFields(map[string]interface{}{
				"attribute": name,
				"value":     cleaned,
			}).Warn("value is not a valid number for equality filter, dropping")
			return model.FilterCondition{}, false
		}
		payload = map[string]any{"number": map[string]any{"equals": number}}
	case model.AttributeBoolean:
		payload = map[string]any{"checkbox": map[string]any{"equals": model.CoerceBool(cleaned)}}
	case model.AttributeText, model.AttributeTitle:
		// Substring match: free-text fields trade precision for usability.
		// The remote filter grammar uses rich_text for title attributes too.
		payload = map[string]any{"rich_text": map[string]any{"contains": cleaned}}
	case model.AttributeMultiChoice:
		payload = map[string]any{"multi_select": map[string]any{"contains": cleaned}}
	case model.AttributeRelation, model.AttributeDate, model.AttributeUnknown:
		e.logger.WithFields(map[string]interface{}{
			"attribute": name,
			"type":      attrType.String(),
		}).Warn("attribute type unsupported for generic filtering, dropping")
		return model.FilterCondition{}, false
	default:
		return model.FilterCondition{}, false
	}

	return model.FilterCondition{Attribute: name, Type: attrType, Payload: payload}, true
}
