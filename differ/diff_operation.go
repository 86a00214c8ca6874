package differ

import (
	"fmt"
	"strings"

	"github.com/x3t/openapi-diff/internal/httputil"
	"github.com/x3t/openapi-diff/internal/maputil"
	"github.com/x3t/openapi-diff/parser"
)

func (s *diffState) operation(path string, src, tgt *parser.Operation) {
	s.modified(path+".operationId", CategoryOperation, SubTypeOperationID, SeverityWarning,
		src.OperationID, tgt.OperationID, "operationId")
	s.modified(path+".summary", CategoryOperation, SubTypeSummary, SeverityInfo,
		src.Summary, tgt.Summary, "summary")
	s.modified(path+".description", CategoryOperation, SubTypeDescription, SeverityInfo,
		src.Description, tgt.Description, "description")

	switch {
	case !src.Deprecated && tgt.Deprecated:
		s.add(path+".deprecated", ChangeTypeModified, CategoryOperation, SubTypeDeprecated, SeverityWarning,
			false, true, "operation deprecated")
	case src.Deprecated && !tgt.Deprecated:
		s.add(path+".deprecated", ChangeTypeModified, CategoryOperation, SubTypeDeprecated, SeverityInfo,
			true, false, "operation no longer deprecated")
	}

	s.stringSet(path+".tags", CategoryOperation, SubTypeTags, src.Tags, tgt.Tags, "tag", SeverityInfo, SeverityInfo)
	s.parameters(path+".parameters", src.Parameters, tgt.Parameters)
	s.requestBody(path+".requestBody", src.RequestBody, tgt.RequestBody)
	s.responses(path+".responses", src.Responses, tgt.Responses)
	if src.Security != nil || tgt.Security != nil {
		s.securityRequirements(path+".security", src.Security, tgt.Security)
	}
	s.extensions(path, CategoryExtension, src.Extensions(), tgt.Extensions())
}

// indexParameters keys parameters by location and name. Path parameters
// listed in renamed are keyed by their new name.
func indexParameters(params []*parser.Parameter, renamed map[string]string) map[string]*parser.Parameter {
	m := make(map[string]*parser.Parameter, len(params))
	for _, p := range params {
		if p == nil {
			continue
		}
		key := p.Key()
		if to, ok := renamed[p.Name]; ok && p.In == parser.ParamInPath {
			key = parser.ParamInPath + ":" + to
		}
		m[key] = p
	}
	return m
}

func (s *diffState) parameters(path string, src, tgt []*parser.Parameter) {
	a, b := indexParameters(src, s.renamed), indexParameters(tgt, nil)
	for _, key := range maputil.UnionKeys(a, b) {
		old, cur := a[key], b[key]
		switch {
		case cur == nil:
			sev := SeverityWarning
			if old.Required {
				sev = SeverityError
			}
			s.add(path+"."+key, ChangeTypeRemoved, CategoryParameter, SubTypeNone, sev, old.Name, nil,
				fmt.Sprintf("%s parameter %q removed", old.In, old.Name))
		case old == nil:
			sev := SeverityInfo
			if cur.Required {
				sev = SeverityError
			}
			s.add(path+"."+key, ChangeTypeAdded, CategoryParameter, SubTypeNone, sev, nil, cur.Name,
				fmt.Sprintf("%s parameter %q added", cur.In, cur.Name))
		default:
			s.parameter(path+"."+key, old, cur)
		}
	}
}

func (s *diffState) parameter(path string, src, tgt *parser.Parameter) {
	switch {
	case !src.Required && tgt.Required:
		s.add(path+".required", ChangeTypeModified, CategoryParameter, SubTypeRequired, SeverityError, false, true,
			fmt.Sprintf("parameter %q is now required", tgt.Name))
	case src.Required && !tgt.Required:
		s.add(path+".required", ChangeTypeModified, CategoryParameter, SubTypeRequired, SeverityInfo, true, false,
			fmt.Sprintf("parameter %q is now optional", tgt.Name))
	}
	if !src.Deprecated && tgt.Deprecated {
		s.add(path+".deprecated", ChangeTypeModified, CategoryParameter, SubTypeDeprecated, SeverityWarning, false, true,
			fmt.Sprintf("parameter %q deprecated", tgt.Name))
	}
	s.modified(path+".style", CategoryParameter, SubTypeStyle, SeverityWarning, src.Style, tgt.Style, "style")
	s.modified(path+".explode", CategoryParameter, SubTypeStyle, SeverityWarning, boolPtrString(src.Explode), boolPtrString(tgt.Explode), "explode")
	s.modified(path+".description", CategoryParameter, SubTypeDescription, SeverityInfo, src.Description, tgt.Description, "description")
	if src.AllowEmptyValue && !tgt.AllowEmptyValue {
		s.add(path+".allowEmptyValue", ChangeTypeModified, CategoryParameter, SubTypeConstraint, SeverityError, true, false,
			fmt.Sprintf("parameter %q no longer allows empty values", tgt.Name))
	}
	s.schemaPair(path+".schema", CategoryParameter, src.Schema, tgt.Schema)
	s.content(path+".content", CategoryParameter, src.Content, tgt.Content, SeverityError)
}

func (s *diffState) requestBody(path string, src, tgt *parser.RequestBody) {
	switch {
	case src == nil && tgt == nil:
		return
	case tgt == nil:
		sev := SeverityWarning
		if src.Required {
			sev = SeverityError
		}
		s.add(path, ChangeTypeRemoved, CategoryRequestBody, SubTypeNone, sev, "request body", nil, "request body removed")
		return
	case src == nil:
		sev := SeverityInfo
		if tgt.Required {
			sev = SeverityError
		}
		s.add(path, ChangeTypeAdded, CategoryRequestBody, SubTypeNone, sev, nil, "request body", "request body added")
		return
	}
	switch {
	case !src.Required && tgt.Required:
		s.add(path+".required", ChangeTypeModified, CategoryRequestBody, SubTypeRequired, SeverityError, false, true,
			"request body is now required")
	case src.Required && !tgt.Required:
		s.add(path+".required", ChangeTypeModified, CategoryRequestBody, SubTypeRequired, SeverityInfo, true, false,
			"request body is now optional")
	}
	s.modified(path+".description", CategoryRequestBody, SubTypeDescription, SeverityInfo, src.Description, tgt.Description, "description")
	s.content(path+".content", CategoryRequestBody, src.Content, tgt.Content, SeverityError)
}

// content compares media type maps. Removing a media type uses removedSev;
// adding one is informational.
func (s *diffState) content(path string, cat ChangeCategory, src, tgt map[string]*parser.MediaType, removedSev Severity) {
	for _, mt := range maputil.UnionKeys(src, tgt) {
		a, inSrc := src[mt]
		b, inTgt := tgt[mt]
		mtPath := path + "." + mt
		switch {
		case !inTgt:
			s.add(mtPath, ChangeTypeRemoved, cat, SubTypeMediaType, removedSev, mt, nil, "media type "+mt+" removed")
		case !inSrc:
			s.add(mtPath, ChangeTypeAdded, cat, SubTypeMediaType, SeverityInfo, nil, mt, "media type "+mt+" added")
		default:
			s.schemaPair(mtPath+".schema", cat, mediaSchema(a), mediaSchema(b))
		}
	}
}

func mediaSchema(m *parser.MediaType) *parser.Schema {
	if m == nil {
		return nil
	}
	return m.Schema
}

func (s *diffState) responses(path string, src, tgt map[string]*parser.Response) {
	for _, code := range maputil.UnionKeys(src, tgt) {
		a, b := src[code], tgt[code]
		codePath := path + "." + code
		switch {
		case b == nil && a == nil:
			continue
		case b == nil:
			sev := SeverityWarning
			if httputil.IsSuccessCode(code) {
				sev = SeverityError
			}
			s.add(codePath, ChangeTypeRemoved, CategoryResponse, SubTypeNone, sev, code, nil, "response "+code+" removed")
		case a == nil:
			s.add(codePath, ChangeTypeAdded, CategoryResponse, SubTypeNone, SeverityInfo, nil, code, "response "+code+" added")
		default:
			s.response(codePath, a, b)
		}
	}
}

func (s *diffState) response(path string, src, tgt *parser.Response) {
	s.modified(path+".description", CategoryResponse, SubTypeDescription, SeverityInfo, src.Description, tgt.Description, "description")
	s.content(path+".content", CategoryResponse, src.Content, tgt.Content, SeverityError)

	for _, name := range maputil.UnionKeys(src.Headers, tgt.Headers) {
		a, b := src.Headers[name], tgt.Headers[name]
		hPath := path + ".headers." + name
		switch {
		case b == nil && a == nil:
			continue
		case b == nil:
			s.add(hPath, ChangeTypeRemoved, CategoryResponse, SubTypeHeader, SeverityWarning, name, nil, "header "+name+" removed")
		case a == nil:
			s.add(hPath, ChangeTypeAdded, CategoryResponse, SubTypeHeader, SeverityInfo, nil, name, "header "+name+" added")
		default:
			if a.Required && !b.Required {
				s.add(hPath+".required", ChangeTypeModified, CategoryResponse, SubTypeHeader, SeverityWarning, true, false,
					"header "+name+" is no longer always sent")
			}
			s.schemaPair(hPath+".schema", CategoryResponse, a.Schema, b.Schema)
		}
	}
}

func boolPtrString(b *bool) string {
	if b == nil {
		return ""
	}
	return strings.ToLower(fmt.Sprint(*b))
}
