package differ

import (
	"fmt"
	"strconv"

	"github.com/x3t/openapi-diff/internal/equalutil"
	"github.com/x3t/openapi-diff/internal/maputil"
	"github.com/x3t/openapi-diff/parser"
)

// maxSchemaDepth bounds recursion through nested and inlined schemas.
const maxSchemaDepth = 32

func (s *diffState) componentSchemas() {
	src, tgt := s.source.Schemas, s.target.Schemas
	for _, name := range maputil.UnionKeys(src, tgt) {
		path := "components.schemas." + name
		a, b := src[name], tgt[name]
		switch {
		case b == nil && a == nil:
			continue
		case b == nil:
			s.add(path, ChangeTypeRemoved, CategorySchema, SubTypeNone, SeverityError, name, nil, "schema "+name+" removed")
		case a == nil:
			s.add(path, ChangeTypeAdded, CategorySchema, SubTypeNone, SeverityInfo, nil, name, "schema "+name+" added")
		default:
			s.schema(path, CategorySchema, a, b, 0)
		}
	}
}

// schemaPair compares an optional schema slot, such as a media type schema.
func (s *diffState) schemaPair(path string, cat ChangeCategory, a, b *parser.Schema) {
	switch {
	case a == nil && b == nil:
		return
	case b == nil:
		s.add(path, ChangeTypeRemoved, cat, SubTypeNone, SeverityWarning, schemaLabel(a), nil, "schema removed")
	case a == nil:
		s.add(path, ChangeTypeAdded, cat, SubTypeNone, SeverityInfo, nil, schemaLabel(b), "schema added")
	default:
		s.schema(path, cat, a, b, 0)
	}
}

func schemaLabel(sc *parser.Schema) string {
	if sc.Ref != "" {
		return parser.RefName(sc.Ref)
	}
	if t := sc.TypeString(); t != "" {
		return t
	}
	return "schema"
}

func (s *diffState) schema(path string, cat ChangeCategory, a, b *parser.Schema, depth int) {
	if depth > maxSchemaDepth || a == nil || b == nil {
		return
	}

	if a.Ref != "" || b.Ref != "" {
		if a.Ref != "" && b.Ref != "" {
			oldName, newName := parser.RefName(a.Ref), parser.RefName(b.Ref)
			if oldName != newName {
				s.add(path, ChangeTypeModified, cat, SubTypeRef, SeverityError, oldName, newName,
					fmt.Sprintf("schema changed from %s to %s", oldName, newName))
			}
			// Same component: compared once under components.schemas.
			return
		}
		guard := a.Ref + "|" + b.Ref
		if s.comparing[guard] {
			return
		}
		if s.comparing == nil {
			s.comparing = make(map[string]bool)
		}
		s.comparing[guard] = true
		defer delete(s.comparing, guard)

		if a.Ref != "" {
			a = s.source.Schemas[parser.RefName(a.Ref)]
		}
		if b.Ref != "" {
			b = s.target.Schemas[parser.RefName(b.Ref)]
		}
		if a == nil || b == nil {
			return
		}
	}

	s.schemaType(path, cat, a, b)
	s.modified(path+".format", cat, SubTypeFormat, SeverityWarning, a.Format, b.Format, "format")
	s.modified(path+".title", cat, SubTypeTitle, SeverityInfo, a.Title, b.Title, "title")
	s.modified(path+".description", cat, SubTypeDescription, SeverityInfo, a.Description, b.Description, "description")

	switch oldNull, newNull := a.IsNullable(), b.IsNullable(); {
	case oldNull && !newNull:
		s.add(path+".nullable", ChangeTypeModified, cat, SubTypeNullable, SeverityError, true, false, "null is no longer allowed")
	case !oldNull && newNull:
		s.add(path+".nullable", ChangeTypeModified, cat, SubTypeNullable, SeverityInfo, false, true, "null is now allowed")
	}
	if a.ReadOnly != b.ReadOnly {
		s.add(path+".readOnly", ChangeTypeModified, cat, SubTypeAccess, SeverityWarning, a.ReadOnly, b.ReadOnly, "readOnly changed")
	}
	if a.WriteOnly != b.WriteOnly {
		s.add(path+".writeOnly", ChangeTypeModified, cat, SubTypeAccess, SeverityWarning, a.WriteOnly, b.WriteOnly, "writeOnly changed")
	}
	if !a.Deprecated && b.Deprecated {
		s.add(path+".deprecated", ChangeTypeModified, cat, SubTypeDeprecated, SeverityWarning, false, true, "schema deprecated")
	}
	if !valuesEqual(a.Default, b.Default) {
		s.add(path+".default", ChangeTypeModified, cat, SubTypeDefault, SeverityWarning, a.Default, b.Default,
			fmt.Sprintf("default changed from %s to %s", anyToString(a.Default), anyToString(b.Default)))
	}

	s.enum(path+".enum", cat, a.Enum, b.Enum)
	s.constraints(path, cat, a, b)
	s.properties(path, cat, a, b, depth)
	s.additionalProperties(path+".additionalProperties", cat, a.AdditionalProperties, b.AdditionalProperties, depth)

	switch {
	case a.Items != nil && b.Items != nil:
		s.schema(path+".items", cat, a.Items, b.Items, depth+1)
	case a.Items == nil && b.Items != nil:
		s.add(path+".items", ChangeTypeAdded, cat, SubTypeType, SeverityWarning, nil, schemaLabel(b.Items), "items schema added")
	case a.Items != nil && b.Items == nil:
		s.add(path+".items", ChangeTypeRemoved, cat, SubTypeType, SeverityWarning, schemaLabel(a.Items), nil, "items schema removed")
	}

	s.composition(path+".allOf", cat, a.AllOf, b.AllOf, SeverityWarning, SeverityError, depth)
	s.composition(path+".anyOf", cat, a.AnyOf, b.AnyOf, SeverityError, SeverityWarning, depth)
	s.composition(path+".oneOf", cat, a.OneOf, b.OneOf, SeverityError, SeverityWarning, depth)
	if (a.Not == nil) != (b.Not == nil) {
		s.add(path+".not", ChangeTypeModified, cat, SubTypeComposition, SeverityWarning, a.Not != nil, b.Not != nil, "not constraint changed")
	}
	s.discriminator(path+".discriminator", cat, a.Discriminator, b.Discriminator)
	s.extensions(path, CategoryExtension, a.Extensions(), b.Extensions())
}

func (s *diffState) schemaType(path string, cat ChangeCategory, a, b *parser.Schema) {
	oldTypes, _ := a.Types()
	newTypes, _ := b.Types()
	oldStr, newStr := a.TypeString(), b.TypeString()
	if oldStr == newStr {
		return
	}
	sev := SeverityError
	msg := fmt.Sprintf("type changed from %s to %s", displayType(oldStr), displayType(newStr))
	switch {
	case len(newTypes) == 0:
		sev = SeverityWarning
		msg = "type constraint " + oldStr + " removed"
	case len(oldTypes) > 0 && typesWidened(oldTypes, newTypes):
		sev = SeverityWarning
	}
	s.add(path+".type", ChangeTypeModified, cat, SubTypeType, sev, oldStr, newStr, msg)
}

func displayType(t string) string {
	if t == "" {
		return "any"
	}
	return t
}

// typesWidened reports whether every old type is still accepted by the new
// type set. An integer is accepted by number.
func typesWidened(oldTypes, newTypes []string) bool {
	accepted := make(map[string]bool, len(newTypes))
	for _, t := range newTypes {
		accepted[t] = true
	}
	for _, t := range oldTypes {
		if accepted[t] || (t == "integer" && accepted["number"]) {
			continue
		}
		return false
	}
	return true
}

func (s *diffState) enum(path string, cat ChangeCategory, a, b []any) {
	switch {
	case len(a) == 0 && len(b) == 0:
		return
	case len(a) == 0:
		s.add(path, ChangeTypeAdded, cat, SubTypeEnum, SeverityError, nil, b, "enum constraint added")
		return
	case len(b) == 0:
		s.add(path, ChangeTypeRemoved, cat, SubTypeEnum, SeverityWarning, a, nil, "enum constraint removed")
		return
	}
	index := func(values []any) map[string]any {
		m := make(map[string]any, len(values))
		for _, v := range values {
			m[anyToString(v)] = v
		}
		return m
	}
	oldValues, newValues := index(a), index(b)
	for _, key := range maputil.UnionKeys(oldValues, newValues) {
		oldV, inOld := oldValues[key]
		newV, inNew := newValues[key]
		switch {
		case !inNew:
			s.add(path, ChangeTypeRemoved, cat, SubTypeEnum, SeverityError, oldV, nil, fmt.Sprintf("enum value %s removed", key))
		case !inOld:
			s.add(path, ChangeTypeAdded, cat, SubTypeEnum, SeverityInfo, nil, newV, fmt.Sprintf("enum value %s added", key))
		}
	}
}

func (s *diffState) constraints(path string, cat ChangeCategory, a, b *parser.Schema) {
	bound(s, path+".minimum", cat, "minimum", a.Minimum, b.Minimum, false)
	bound(s, path+".maximum", cat, "maximum", a.Maximum, b.Maximum, true)
	bound(s, path+".minLength", cat, "minLength", a.MinLength, b.MinLength, false)
	bound(s, path+".maxLength", cat, "maxLength", a.MaxLength, b.MaxLength, true)
	bound(s, path+".minItems", cat, "minItems", a.MinItems, b.MinItems, false)
	bound(s, path+".maxItems", cat, "maxItems", a.MaxItems, b.MaxItems, true)
	bound(s, path+".minProperties", cat, "minProperties", a.MinProperties, b.MinProperties, false)
	bound(s, path+".maxProperties", cat, "maxProperties", a.MaxProperties, b.MaxProperties, true)

	if !equalutil.EqualPtr(a.MultipleOf, b.MultipleOf) {
		sev := SeverityError
		if b.MultipleOf == nil {
			sev = SeverityWarning
		}
		s.add(path+".multipleOf", ChangeTypeModified, cat, SubTypeConstraint, sev, ptrString(a.MultipleOf), ptrString(b.MultipleOf),
			fmt.Sprintf("multipleOf changed from %s to %s", ptrString(a.MultipleOf), ptrString(b.MultipleOf)))
	}

	switch {
	case a.Pattern == b.Pattern:
	case a.Pattern == "":
		s.add(path+".pattern", ChangeTypeAdded, cat, SubTypeConstraint, SeverityError, nil, b.Pattern, "pattern "+b.Pattern+" added")
	case b.Pattern == "":
		s.add(path+".pattern", ChangeTypeRemoved, cat, SubTypeConstraint, SeverityWarning, a.Pattern, nil, "pattern "+a.Pattern+" removed")
	default:
		s.add(path+".pattern", ChangeTypeModified, cat, SubTypeConstraint, SeverityWarning, a.Pattern, b.Pattern,
			fmt.Sprintf("pattern changed from %s to %s", a.Pattern, b.Pattern))
	}

	switch {
	case !a.UniqueItems && b.UniqueItems:
		s.add(path+".uniqueItems", ChangeTypeModified, cat, SubTypeConstraint, SeverityError, false, true, "items must now be unique")
	case a.UniqueItems && !b.UniqueItems:
		s.add(path+".uniqueItems", ChangeTypeModified, cat, SubTypeConstraint, SeverityWarning, true, false, "items no longer need to be unique")
	}

	if !valuesEqual(a.ExclusiveMinimum, b.ExclusiveMinimum) {
		s.add(path+".exclusiveMinimum", ChangeTypeModified, cat, SubTypeConstraint, SeverityWarning,
			a.ExclusiveMinimum, b.ExclusiveMinimum, "exclusiveMinimum changed")
	}
	if !valuesEqual(a.ExclusiveMaximum, b.ExclusiveMaximum) {
		s.add(path+".exclusiveMaximum", ChangeTypeModified, cat, SubTypeConstraint, SeverityWarning,
			a.ExclusiveMaximum, b.ExclusiveMaximum, "exclusiveMaximum changed")
	}
}

// bound compares a numeric limit. Introducing or tightening a limit is an
// error; removing or relaxing it is a warning. upper selects whether a
// smaller value is tighter (maximum) or looser (minimum).
func bound[T int | float64](s *diffState, path string, cat ChangeCategory, name string, old, cur *T, upper bool) {
	if equalutil.EqualPtr(old, cur) {
		return
	}
	oldStr, curStr := ptrString(old), ptrString(cur)
	switch {
	case old == nil:
		s.add(path, ChangeTypeAdded, cat, SubTypeConstraint, SeverityError, nil, curStr, fmt.Sprintf("%s %s added", name, curStr))
	case cur == nil:
		s.add(path, ChangeTypeRemoved, cat, SubTypeConstraint, SeverityWarning, oldStr, nil, fmt.Sprintf("%s %s removed", name, oldStr))
	default:
		tightened := *cur > *old
		if upper {
			tightened = *cur < *old
		}
		sev := SeverityWarning
		if tightened {
			sev = SeverityError
		}
		s.add(path, ChangeTypeModified, cat, SubTypeConstraint, sev, oldStr, curStr,
			fmt.Sprintf("%s changed from %s to %s", name, oldStr, curStr))
	}
}

func ptrString[T int | float64](p *T) string {
	if p == nil {
		return ""
	}
	switch v := any(*p).(type) {
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func (s *diffState) properties(path string, cat ChangeCategory, a, b *parser.Schema, depth int) {
	for _, name := range maputil.UnionKeys(a.Properties, b.Properties) {
		pa, pb := a.Properties[name], b.Properties[name]
		propPath := path + ".properties." + name
		switch {
		case pa == nil && pb == nil:
			continue
		case pb == nil:
			sev := SeverityWarning
			if a.IsRequired(name) {
				sev = SeverityError
			}
			s.add(propPath, ChangeTypeRemoved, cat, SubTypeProperty, sev, name, nil, "property "+name+" removed")
		case pa == nil:
			sev := SeverityInfo
			if b.IsRequired(name) {
				sev = SeverityError
			}
			s.add(propPath, ChangeTypeAdded, cat, SubTypeProperty, sev, nil, name, "property "+name+" added")
		default:
			s.schema(propPath, cat, pa, pb, depth+1)
		}
	}

	oldReq := make(map[string]bool, len(a.Required))
	for _, r := range a.Required {
		oldReq[r] = true
	}
	newReq := make(map[string]bool, len(b.Required))
	for _, r := range b.Required {
		newReq[r] = true
	}
	for _, name := range maputil.UnionKeys(oldReq, newReq) {
		_, existedBefore := a.Properties[name]
		_, existsNow := b.Properties[name]
		switch {
		case newReq[name] && !oldReq[name]:
			if existsNow && !existedBefore {
				continue
			}
			s.add(path+".required", ChangeTypeAdded, cat, SubTypeRequired, SeverityError, nil, name,
				"property "+name+" is now required")
		case oldReq[name] && !newReq[name]:
			if existedBefore && !existsNow {
				continue
			}
			s.add(path+".required", ChangeTypeRemoved, cat, SubTypeRequired, SeverityInfo, name, nil,
				"property "+name+" is no longer required")
		}
	}
}

type apKind int

const (
	apOpen apKind = iota
	apClosed
	apSchema
)

func classifyAdditional(v any) (apKind, *parser.Schema) {
	switch t := v.(type) {
	case bool:
		if !t {
			return apClosed, nil
		}
	case *parser.Schema:
		if t != nil {
			return apSchema, t
		}
	}
	return apOpen, nil
}

func (k apKind) String() string {
	switch k {
	case apClosed:
		return "false"
	case apSchema:
		return "schema"
	default:
		return "true"
	}
}

func (s *diffState) additionalProperties(path string, cat ChangeCategory, a, b any, depth int) {
	oldKind, oldSchema := classifyAdditional(a)
	newKind, newSchema := classifyAdditional(b)
	if oldKind == apSchema && newKind == apSchema {
		s.schema(path, cat, oldSchema, newSchema, depth+1)
		return
	}
	if oldKind == newKind {
		return
	}
	sev := SeverityError
	switch {
	case oldKind == apClosed:
		sev = SeverityInfo
	case oldKind == apSchema && newKind == apOpen:
		sev = SeverityWarning
	}
	s.add(path, ChangeTypeModified, cat, SubTypeConstraint, sev, oldKind.String(), newKind.String(),
		fmt.Sprintf("additionalProperties changed from %s to %s", oldKind, newKind))
}

func (s *diffState) composition(path string, cat ChangeCategory, a, b []*parser.Schema, removedSev, addedSev Severity, depth int) {
	common := min(len(a), len(b))
	for i := 0; i < common; i++ {
		s.schema(path+"["+strconv.Itoa(i)+"]", cat, a[i], b[i], depth+1)
	}
	for i := common; i < len(a); i++ {
		s.add(path+"["+strconv.Itoa(i)+"]", ChangeTypeRemoved, cat, SubTypeComposition, removedSev,
			schemaLabel(a[i]), nil, "composition member "+schemaLabel(a[i])+" removed")
	}
	for i := common; i < len(b); i++ {
		s.add(path+"["+strconv.Itoa(i)+"]", ChangeTypeAdded, cat, SubTypeComposition, addedSev,
			nil, schemaLabel(b[i]), "composition member "+schemaLabel(b[i])+" added")
	}
}

func (s *diffState) discriminator(path string, cat ChangeCategory, a, b *parser.Discriminator) {
	if a == nil && b == nil {
		return
	}
	if a == nil || b == nil {
		s.add(path, ChangeTypeModified, cat, SubTypeComposition, SeverityWarning, a != nil, b != nil, "discriminator changed")
		return
	}
	s.modified(path+".propertyName", cat, SubTypeComposition, SeverityError, a.PropertyName, b.PropertyName, "discriminator property")
	for _, key := range maputil.UnionKeys(a.Mapping, b.Mapping) {
		oldRef, inOld := a.Mapping[key]
		newRef, inNew := b.Mapping[key]
		switch {
		case !inNew:
			s.add(path+".mapping."+key, ChangeTypeRemoved, cat, SubTypeComposition, SeverityError, oldRef, nil, "discriminator mapping "+key+" removed")
		case !inOld:
			s.add(path+".mapping."+key, ChangeTypeAdded, cat, SubTypeComposition, SeverityInfo, nil, newRef, "discriminator mapping "+key+" added")
		case parser.RefName(oldRef) != parser.RefName(newRef):
			s.add(path+".mapping."+key, ChangeTypeModified, cat, SubTypeComposition, SeverityError, oldRef, newRef, "discriminator mapping "+key+" changed")
		}
	}
}
