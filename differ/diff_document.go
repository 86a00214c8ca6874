package differ

import (
	"fmt"
	"slices"
	"strings"

	"github.com/x3t/openapi-diff/internal/httputil"
	"github.com/x3t/openapi-diff/internal/maputil"
	"github.com/x3t/openapi-diff/internal/pathutil"
	"github.com/x3t/openapi-diff/parser"
)

// diffState carries one comparison. Traversal is sequential, so the current
// endpoint and method are tracked on the state and stamped on every change.
type diffState struct {
	differ *Differ
	result *DiffResult
	source *parser.Document
	target *parser.Document

	endpoint string
	method   string
	// renamed maps source path parameter names to target names for the
	// current endpoint when its template was renamed
	renamed map[string]string
	// comparing guards recursion through referenced component schemas
	comparing map[string]bool
}

// add records a change after applying any configured rule.
func (s *diffState) add(path string, ct ChangeType, cat ChangeCategory, sub string, def Severity, oldValue, newValue any, msg string) {
	sev, ignore := s.differ.Rules.apply(RuleKey{Category: cat, ChangeType: ct, SubType: sub}, def)
	if ignore {
		return
	}
	s.result.Changes = append(s.result.Changes, Change{
		Path:     path,
		Type:     ct,
		Category: cat,
		Severity: sev,
		Endpoint: s.endpoint,
		Method:   s.method,
		OldValue: oldValue,
		NewValue: newValue,
		Message:  msg,
	})
}

// modified records a modification with one severity when the values differ.
func (s *diffState) modified(path string, cat ChangeCategory, sub string, sev Severity, oldValue, newValue string, what string) {
	if oldValue == newValue {
		return
	}
	s.add(path, ChangeTypeModified, cat, sub, sev, oldValue, newValue,
		fmt.Sprintf("%s changed from %q to %q", what, oldValue, newValue))
}

func (s *diffState) document() {
	s.info()
	s.servers()
	s.tags()
	s.securityRequirements("security", s.source.Security, s.target.Security)
	s.endpoints()
	s.componentSchemas()
	s.securitySchemes()
	s.extensions("", CategoryExtension, s.source.Extensions, s.target.Extensions)
}

func (s *diffState) info() {
	src, tgt := s.source.Info, s.target.Info
	if src == nil {
		src = &parser.Info{}
	}
	if tgt == nil {
		tgt = &parser.Info{}
	}
	s.modified("info.title", CategoryInfo, SubTypeTitle, SeverityInfo, src.Title, tgt.Title, "API title")
	s.modified("info.version", CategoryInfo, SubTypeVersion, SeverityInfo, src.Version, tgt.Version, "API version")
	s.modified("info.description", CategoryInfo, SubTypeDescription, SeverityInfo, src.Description, tgt.Description, "API description")
	s.modified("info.termsOfService", CategoryInfo, SubTypeNone, SeverityInfo, src.TermsOfService, tgt.TermsOfService, "terms of service")
}

func (s *diffState) servers() {
	urls := func(servers []*parser.Server) map[string]*parser.Server {
		m := make(map[string]*parser.Server, len(servers))
		for _, srv := range servers {
			if srv != nil {
				m[srv.URL] = srv
			}
		}
		return m
	}
	src, tgt := urls(s.source.Servers), urls(s.target.Servers)
	for _, url := range maputil.UnionKeys(src, tgt) {
		path := "servers." + url
		switch {
		case tgt[url] == nil:
			s.add(path, ChangeTypeRemoved, CategoryServer, SubTypeNone, SeverityWarning, url, nil, "server "+url+" removed")
		case src[url] == nil:
			s.add(path, ChangeTypeAdded, CategoryServer, SubTypeNone, SeverityInfo, nil, url, "server "+url+" added")
		default:
			s.modified(path+".description", CategoryServer, SubTypeDescription, SeverityInfo,
				src[url].Description, tgt[url].Description, "server description")
		}
	}
}

func (s *diffState) tags() {
	names := func(tags []*parser.Tag) map[string]*parser.Tag {
		m := make(map[string]*parser.Tag, len(tags))
		for _, t := range tags {
			if t != nil {
				m[t.Name] = t
			}
		}
		return m
	}
	src, tgt := names(s.source.Tags), names(s.target.Tags)
	for _, name := range maputil.UnionKeys(src, tgt) {
		path := "tags." + name
		switch {
		case tgt[name] == nil:
			s.add(path, ChangeTypeRemoved, CategoryInfo, SubTypeTags, SeverityInfo, name, nil, "tag "+name+" removed")
		case src[name] == nil:
			s.add(path, ChangeTypeAdded, CategoryInfo, SubTypeTags, SeverityInfo, nil, name, "tag "+name+" added")
		default:
			s.modified(path+".description", CategoryInfo, SubTypeDescription, SeverityInfo,
				src[name].Description, tgt[name].Description, "tag description")
		}
	}
}

// endpoints matches paths by normalized template, so renaming a path
// parameter is reported as a modification rather than a removal.
func (s *diffState) endpoints() {
	index := func(paths map[string]*parser.PathItem) map[string]string {
		m := make(map[string]string, len(paths))
		for _, p := range maputil.SortedKeys(paths) {
			norm := pathutil.NormalizeTemplate(p)
			if _, dup := m[norm]; !dup {
				m[norm] = p
			}
		}
		return m
	}
	src, tgt := index(s.source.Paths), index(s.target.Paths)

	for _, norm := range maputil.UnionKeys(src, tgt) {
		srcPath, inSrc := src[norm]
		tgtPath, inTgt := tgt[norm]
		switch {
		case !inTgt:
			s.endpointPresence(srcPath, s.source.Paths[srcPath], ChangeTypeRemoved)
		case !inSrc:
			s.endpointPresence(tgtPath, s.target.Paths[tgtPath], ChangeTypeAdded)
		default:
			s.endpoint = tgtPath
			s.method = ""
			s.renamed = renamedParams(srcPath, tgtPath)
			if srcPath != tgtPath {
				s.add("paths."+tgtPath, ChangeTypeModified, CategoryEndpoint, SubTypeNone, SeverityInfo, srcPath, tgtPath,
					fmt.Sprintf("path parameters renamed from %s to %s", srcPath, tgtPath))
			}
			s.pathItem(tgtPath, s.source.Paths[srcPath], s.target.Paths[tgtPath])
		}
	}
	s.endpoint, s.method, s.renamed = "", "", nil
}

// renamedParams pairs path parameters by position between two templates that
// normalize to the same endpoint.
func renamedParams(srcPath, tgtPath string) map[string]string {
	if srcPath == tgtPath {
		return nil
	}
	oldNames, newNames := pathutil.TemplateParams(srcPath), pathutil.TemplateParams(tgtPath)
	m := make(map[string]string, len(oldNames))
	for i, name := range oldNames {
		if i < len(newNames) && newNames[i] != name {
			m[name] = newNames[i]
		}
	}
	return m
}

// endpointPresence reports a whole path appearing or disappearing, one
// change per operation so each method shows up in the report.
func (s *diffState) endpointPresence(path string, item *parser.PathItem, ct ChangeType) {
	s.endpoint = path
	sev, verb := SeverityInfo, "added"
	if ct == ChangeTypeRemoved {
		sev, verb = SeverityCritical, "removed"
	}
	ops := item.Operations()
	if len(ops) == 0 {
		s.method = ""
		s.add("paths."+path, ct, CategoryEndpoint, SubTypeNone, sev, removedValue(ct, path), addedValue(ct, path),
			"endpoint "+path+" "+verb)
		return
	}
	for _, mo := range ops {
		s.method = mo.Method
		label := strings.ToUpper(mo.Method) + " " + path
		s.add("paths."+path+"."+mo.Method, ct, CategoryEndpoint, SubTypeNone, sev,
			removedValue(ct, label), addedValue(ct, label), "endpoint "+label+" "+verb)
	}
}

func removedValue(ct ChangeType, v any) any {
	if ct == ChangeTypeRemoved {
		return v
	}
	return nil
}

func addedValue(ct ChangeType, v any) any {
	if ct == ChangeTypeAdded {
		return v
	}
	return nil
}

func (s *diffState) pathItem(path string, src, tgt *parser.PathItem) {
	srcOps := make(map[string]*parser.Operation)
	for _, mo := range src.Operations() {
		srcOps[mo.Method] = mo.Operation
	}
	tgtOps := make(map[string]*parser.Operation)
	for _, mo := range tgt.Operations() {
		tgtOps[mo.Method] = mo.Operation
	}
	for _, method := range methodOrder(maputil.UnionKeys(srcOps, tgtOps)) {
		s.method = method
		opPath := "paths." + path + "." + method
		label := strings.ToUpper(method) + " " + path
		switch {
		case tgtOps[method] == nil:
			s.add(opPath, ChangeTypeRemoved, CategoryOperation, SubTypeNone, SeverityCritical, label, nil,
				"operation "+label+" removed")
		case srcOps[method] == nil:
			s.add(opPath, ChangeTypeAdded, CategoryOperation, SubTypeNone, SeverityInfo, nil, label,
				"operation "+label+" added")
		default:
			s.operation(opPath, srcOps[method], tgtOps[method])
		}
	}
	s.method = ""
}

// methodOrder sorts methods in the canonical get, put, post, ... order.
func methodOrder(methods []string) []string {
	slices.SortStableFunc(methods, func(a, b string) int {
		return httputil.MethodRank(a) - httputil.MethodRank(b)
	})
	return methods
}

func (s *diffState) securityRequirements(path string, src, tgt []parser.SecurityRequirement) {
	key := func(req parser.SecurityRequirement) string {
		return strings.Join(maputil.SortedKeys(req), "+")
	}
	toSet := func(reqs []parser.SecurityRequirement) map[string]parser.SecurityRequirement {
		m := make(map[string]parser.SecurityRequirement, len(reqs))
		for _, r := range reqs {
			m[key(r)] = r
		}
		return m
	}
	srcSet, tgtSet := toSet(src), toSet(tgt)
	for _, k := range maputil.UnionKeys(srcSet, tgtSet) {
		label := k
		if label == "" {
			label = "anonymous"
		}
		_, inSrc := srcSet[k]
		_, inTgt := tgtSet[k]
		switch {
		case !inTgt:
			s.add(path+"."+label, ChangeTypeRemoved, CategorySecurity, SubTypeRequirement, SeverityInfo, label, nil,
				"security requirement "+label+" removed")
		case !inSrc:
			s.add(path+"."+label, ChangeTypeAdded, CategorySecurity, SubTypeRequirement, SeverityError, nil, label,
				"security requirement "+label+" added")
		default:
			for _, scheme := range maputil.SortedKeys(srcSet[k]) {
				s.stringSet(path+"."+label+"."+scheme, CategorySecurity, SubTypeScopes,
					srcSet[k][scheme], tgtSet[k][scheme], "scope", SeverityInfo, SeverityError)
			}
		}
	}
}

func (s *diffState) securitySchemes() {
	src, tgt := s.source.SecuritySchemes, s.target.SecuritySchemes
	for _, name := range maputil.UnionKeys(src, tgt) {
		path := "components.securitySchemes." + name
		a, b := src[name], tgt[name]
		switch {
		case b == nil:
			s.add(path, ChangeTypeRemoved, CategorySecurity, SubTypeNone, SeverityError, name, nil,
				"security scheme "+name+" removed")
		case a == nil:
			s.add(path, ChangeTypeAdded, CategorySecurity, SubTypeNone, SeverityInfo, nil, name,
				"security scheme "+name+" added")
		default:
			s.modified(path+".type", CategorySecurity, SubTypeType, SeverityError, a.Type, b.Type, "security scheme type")
			s.modified(path+".scheme", CategorySecurity, SubTypeType, SeverityError, a.Scheme, b.Scheme, "HTTP auth scheme")
			s.modified(path+".in", CategorySecurity, SubTypeNone, SeverityError, a.In, b.In, "API key location")
			s.modified(path+".name", CategorySecurity, SubTypeNone, SeverityError, a.Name, b.Name, "API key name")
			s.modified(path+".description", CategorySecurity, SubTypeDescription, SeverityInfo, a.Description, b.Description, "description")
			s.oauthFlows(path+".flows", a.Flows, b.Flows)
		}
	}
}

func (s *diffState) oauthFlows(path string, src, tgt map[string]*parser.OAuthFlow) {
	for _, name := range maputil.UnionKeys(src, tgt) {
		a, b := src[name], tgt[name]
		flowPath := path + "." + name
		switch {
		case b == nil:
			s.add(flowPath, ChangeTypeRemoved, CategorySecurity, SubTypeFlow, SeverityError, name, nil, "OAuth flow "+name+" removed")
		case a == nil:
			s.add(flowPath, ChangeTypeAdded, CategorySecurity, SubTypeFlow, SeverityInfo, nil, name, "OAuth flow "+name+" added")
		default:
			s.modified(flowPath+".authorizationUrl", CategorySecurity, SubTypeFlow, SeverityWarning, a.AuthorizationURL, b.AuthorizationURL, "authorization URL")
			s.modified(flowPath+".tokenUrl", CategorySecurity, SubTypeFlow, SeverityWarning, a.TokenURL, b.TokenURL, "token URL")
			s.stringSet(flowPath+".scopes", CategorySecurity, SubTypeScopes,
				maputil.SortedKeys(a.Scopes), maputil.SortedKeys(b.Scopes), "scope", SeverityWarning, SeverityInfo)
		}
	}
}

// stringSet reports elements removed from or added to an unordered list.
func (s *diffState) stringSet(path string, cat ChangeCategory, sub string, src, tgt []string, noun string, removedSev, addedSev Severity) {
	toSet := func(xs []string) map[string]bool {
		m := make(map[string]bool, len(xs))
		for _, x := range xs {
			m[x] = true
		}
		return m
	}
	a, b := toSet(src), toSet(tgt)
	for _, v := range maputil.UnionKeys(a, b) {
		switch {
		case !b[v]:
			s.add(path, ChangeTypeRemoved, cat, sub, removedSev, v, nil, fmt.Sprintf("%s %q removed", noun, v))
		case !a[v]:
			s.add(path, ChangeTypeAdded, cat, sub, addedSev, nil, v, fmt.Sprintf("%s %q added", noun, v))
		}
	}
}

func (s *diffState) extensions(prefix string, cat ChangeCategory, src, tgt map[string]any) {
	for _, key := range maputil.UnionKeys(src, tgt) {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		a, inSrc := src[key]
		b, inTgt := tgt[key]
		switch {
		case !inTgt:
			s.add(path, ChangeTypeRemoved, cat, SubTypeNone, SeverityInfo, a, nil, "extension "+key+" removed")
		case !inSrc:
			s.add(path, ChangeTypeAdded, cat, SubTypeNone, SeverityInfo, nil, b, "extension "+key+" added")
		case !valuesEqual(a, b):
			s.add(path, ChangeTypeModified, cat, SubTypeNone, SeverityInfo, a, b, "extension "+key+" modified")
		}
	}
}
