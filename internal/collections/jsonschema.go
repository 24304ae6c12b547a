package collections

// JSONSchema describes the collection as a draft 2020-12 JSON Schema so
// editors can check front matter while authoring. Date fields are described
// loosely because coercion happens at build time.
func (s Schema) JSONSchema() map[string]any {
	properties := make(map[string]any, len(s.Fields))
	required := make([]any, 0, len(s.Fields))
	for _, field := range s.Fields {
		fragment := field.Coerce.JSONSchema()
		if field.Default != nil {
			fragment["default"] = field.Default
		}
		properties[field.Name] = fragment
		if field.Required {
			required = append(required, field.Name)
		}
	}

	out := map[string]any{
		"$schema":    "https://json-schema.org/draft/2020-12/schema",
		"title":      s.Name,
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

// JSONSchemas exports every collection keyed by name.
func (r *Registry) JSONSchemas() map[string]map[string]any {
	out := make(map[string]map[string]any, len(r.order))
	for _, name := range r.order {
		out[name] = r.schemas[name].JSONSchema()
	}
	return out
}
