package parser

// Parameter location constants (used in Parameter.In field)
const (
	// ParamInQuery indicates the parameter is passed in the query string
	ParamInQuery = "query"
	// ParamInHeader indicates the parameter is passed in a request header
	ParamInHeader = "header"
	// ParamInPath indicates the parameter is part of the URL path
	ParamInPath = "path"
	// ParamInCookie indicates the parameter is passed as a cookie (OAS 3.0+)
	ParamInCookie = "cookie"
	// ParamInFormData indicates the parameter is passed as form data (OAS 2.0 only)
	ParamInFormData = "formData"
	// ParamInBody indicates the parameter is in the request body (OAS 2.0 only)
	ParamInBody = "body"
)

// Local reference prefixes understood by the resolver.
const (
	refPrefixSchemas3         = "#/components/schemas/"
	refPrefixParameters3      = "#/components/parameters/"
	refPrefixResponses3       = "#/components/responses/"
	refPrefixRequestBodies3   = "#/components/requestBodies/"
	refPrefixHeaders3         = "#/components/headers/"
	refPrefixSecuritySchemes3 = "#/components/securitySchemes/"
	refPrefixDefinitions2     = "#/definitions/"
	refPrefixParameters2      = "#/parameters/"
	refPrefixResponses2       = "#/responses/"
)

// Default media types used when an OAS 2.0 document declares no consumes/produces.
const (
	defaultMediaType     = "application/json"
	formURLEncodedType   = "application/x-www-form-urlencoded"
	multipartFormType    = "multipart/form-data"
	defaultMaxFileSize   = 10 * 1024 * 1024
	defaultMaxRefDepth   = 32
	defaultFetchTimeoutS = 30
)
