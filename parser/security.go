package parser

// SecurityRequirement lists the schemes (and scopes) required to call an operation.
type SecurityRequirement map[string][]string

// SecurityScheme defines a security scheme usable by operations.
type SecurityScheme struct {
	Ref              string                `yaml:"$ref,omitempty"`
	Type             string                `yaml:"type"`
	Description      string                `yaml:"description,omitempty"`
	Name             string                `yaml:"name,omitempty"`
	In               string                `yaml:"in,omitempty"`
	Scheme           string                `yaml:"scheme,omitempty"`
	BearerFormat     string                `yaml:"bearerFormat,omitempty"`
	OpenIDConnectURL string                `yaml:"openIdConnectUrl,omitempty"`
	Flows            map[string]*OAuthFlow `yaml:"flows,omitempty"`
}

// OAuthFlow holds the configuration of one OAuth2 flow.
type OAuthFlow struct {
	AuthorizationURL string            `yaml:"authorizationUrl,omitempty"`
	TokenURL         string            `yaml:"tokenUrl,omitempty"`
	RefreshURL       string            `yaml:"refreshUrl,omitempty"`
	Scopes           map[string]string `yaml:"scopes"`
}
