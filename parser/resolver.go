package parser

import (
	"strconv"
	"strings"

	"github.com/x3t/openapi-diff/internal/maputil"
	"github.com/x3t/openapi-diff/oaserrors"
)

// resolveChain follows local $ref pointers of one component kind until it
// reaches an inline definition. Only references under prefix are accepted;
// external and cross-kind references are reported as errors.
func resolveChain[T any](v *T, refOf func(*T) string, pool map[string]*T, prefix, where string) (*T, error) {
	seen := make(map[string]bool)
	for depth := 0; ; depth++ {
		ref := refOf(v)
		if ref == "" {
			return v, nil
		}
		if depth >= defaultMaxRefDepth || seen[ref] {
			return nil, &oaserrors.ReferenceError{Ref: ref, Path: where, Message: "circular reference"}
		}
		seen[ref] = true
		if !strings.HasPrefix(ref, prefix) {
			return nil, unsupportedRef(ref, where)
		}
		next, ok := pool[decodeRefToken(strings.TrimPrefix(ref, prefix))]
		if !ok || next == nil {
			return nil, &oaserrors.ReferenceError{Ref: ref, Path: where, Message: "target not found"}
		}
		v = next
	}
}

func unsupportedRef(ref, where string) error {
	msg := "only local component references are supported"
	if !strings.HasPrefix(ref, "#/") {
		msg = "external references are not supported"
	}
	return &oaserrors.ReferenceError{Ref: ref, Path: where, Message: msg}
}

// decodeRefToken unescapes a JSON pointer token (RFC 6901).
func decodeRefToken(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
}

// checkSchemaRefs verifies that every schema $ref points at a defined schema.
func checkSchemaRefs(doc *Document) error {
	var walkErr error
	visit := func(s *Schema, where string) {
		if walkErr != nil || s == nil || s.Ref == "" {
			return
		}
		if !strings.HasPrefix(s.Ref, refPrefixSchemas3) && !strings.HasPrefix(s.Ref, refPrefixDefinitions2) {
			walkErr = unsupportedRef(s.Ref, where)
			return
		}
		if _, ok := doc.Schemas[decodeRefToken(RefName(s.Ref))]; !ok {
			walkErr = &oaserrors.ReferenceError{Ref: s.Ref, Path: where, Message: "target not found"}
		}
	}
	walkDocumentSchemas(doc, visit)
	return walkErr
}

// walkDocumentSchemas calls visit on every schema reachable from the
// document, including nested ones, in a deterministic order.
func walkDocumentSchemas(doc *Document, visit func(*Schema, string)) {
	var walk func(s *Schema, where string, depth int)
	walk = func(s *Schema, where string, depth int) {
		if s == nil || depth > 64 {
			return
		}
		visit(s, where)
		for _, name := range maputil.SortedKeys(s.Properties) {
			walk(s.Properties[name], where+".properties."+name, depth+1)
		}
		walk(s.Items, where+".items", depth+1)
		walk(s.Not, where+".not", depth+1)
		for i, sub := range s.AllOf {
			walk(sub, where+".allOf["+strconv.Itoa(i)+"]", depth+1)
		}
		for i, sub := range s.AnyOf {
			walk(sub, where+".anyOf["+strconv.Itoa(i)+"]", depth+1)
		}
		for i, sub := range s.OneOf {
			walk(sub, where+".oneOf["+strconv.Itoa(i)+"]", depth+1)
		}
		if ap, ok := s.AdditionalProperties.(*Schema); ok {
			walk(ap, where+".additionalProperties", depth+1)
		}
	}

	for _, name := range maputil.SortedKeys(doc.Schemas) {
		walk(doc.Schemas[name], "schemas."+name, 0)
	}
	for _, path := range maputil.SortedKeys(doc.Paths) {
		for _, mo := range doc.Paths[path].Operations() {
			where := "paths." + path + "." + mo.Method
			for _, p := range mo.Operation.Parameters {
				walk(p.Schema, where+".parameters."+p.Name, 0)
				for _, mt := range maputil.SortedKeys(p.Content) {
					walk(p.Content[mt].schema(), where+".parameters."+p.Name+"."+mt, 0)
				}
			}
			if rb := mo.Operation.RequestBody; rb != nil {
				for _, mt := range maputil.SortedKeys(rb.Content) {
					walk(rb.Content[mt].schema(), where+".requestBody."+mt, 0)
				}
			}
			for _, code := range maputil.SortedKeys(mo.Operation.Responses) {
				resp := mo.Operation.Responses[code]
				if resp == nil {
					continue
				}
				for _, mt := range maputil.SortedKeys(resp.Content) {
					walk(resp.Content[mt].schema(), where+".responses."+code+"."+mt, 0)
				}
				for _, h := range maputil.SortedKeys(resp.Headers) {
					walk(resp.Headers[h].Schema, where+".responses."+code+".headers."+h, 0)
				}
			}
		}
	}
}

func (m *MediaType) schema() *Schema {
	if m == nil {
		return nil
	}
	return m.Schema
}
