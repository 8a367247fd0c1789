package usecase

import (
	"context"

	"opsbridge/internal/sync/domain/model"
)

// FindIDByAttribute resolves a record identifier by attribute-value lookup in
// another collection. Zero matches return an empty identifier with a warning,
// not an error: callers decide whether an unresolved reference is fatal. More
// than one match logs an ambiguity warning and deterministically selects the
// first record in response order; there is no further tie-break rule.
func (e *Engine) FindIDByAttribute(ctx context.Context, registry *SchemaRegistry, collectionID, attributeName, value string) (string, error) {
	schema, err := registry.GetSchema(ctx, collectionID)
	if err != nil {
		return "", err
	}

	conditions := e.BuildConditions(schema, map[string]string{attributeName: value})
	if len(conditions) == 0 {
		e.logger.WithFields(map[string]interface{}{
			"collectionID": collectionID,
			"attribute":    attributeName,
		}).Warn("could not build a lookup condition, reference unresolved")
		return "", nil
	}

	records, _ := e.QueryAll(ctx, collectionID, conditions, lookupPageSize)
	switch {
	case len(records) == 0:
		e.logger.WithFields(map[string]interface{}{
			"collectionID": collectionID,
			"attribute":    attributeName,
			"value":        value,
		}).Warn("no record matched the reference lookup")
		return "", nil
	case len(records) > 1:
		e.logger.WithFields(map[string]interface{}{
			"collectionID": collectionID,
			"attribute":    attributeName,
			"value":        value,
			"matches":      len(records),
		}).Warn("ambiguous reference lookup, selecting first match in response order")
	}
	return records[0].ID, nil
}

// resolveReferences runs the resolver pipeline and returns a relation payload
// per relation attribute. An unresolved reference yields the empty-link shape
// so that every created record carries the attribute consistently.
func (e *Engine) resolveReferences(ctx context.Context, registry *SchemaRegistry, specs []ResolverSpec, references map[string]string) map[string]map[string]any {
	links := make(map[string]map[string]any, len(specs))
	for _, spec := range specs {
		links[spec.RelationAttribute] = model.RelationLink(
			e.resolveReference(ctx, registry, spec, references[spec.SourceField]))
	}
	return links
}

func (e *Engine) resolveReference(ctx context.Context, registry *SchemaRegistry, spec ResolverSpec, raw string) string {
	if raw == "" || spec.LookupCollectionID == "" {
		return ""
	}
	lookup := raw
	if spec.PrefixLength > 0 {
		if len(raw) < spec.PrefixLength {
			e.logger.WithFields(map[string]interface{}{
				"relation": spec.RelationAttribute,
				"value":    raw,
				"prefix":   spec.PrefixLength,
			}).Warn("lookup value shorter than derivation prefix, reference unresolved")
			return ""
		}
		lookup = raw[:spec.PrefixLength]
	}

	id, err := e.FindIDByAttribute(ctx, registry, spec.LookupCollectionID, spec.LookupAttribute, lookup)
	if err != nil {
		// Non-fatal: the relation stays empty rather than aborting the batch.
		e.logger.WithFields(map[string]interface{}{
			"relation": spec.RelationAttribute,
			"value":    lookup,
			"error":    err,
		}).Warn("reference lookup failed, relation left empty")
		return ""
	}
	return id
}
