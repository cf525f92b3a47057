// Package docs builds the OpenAPI schema served at /openapi. Every
// route registers a Doc; schemas are generated from the Go types.
package docs

import (
	"reflect"
	"strings"

	"vanitycheck/types"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type Server struct {
	URL         string         `json:"url"`
	Description string         `json:"description"`
	Variables   map[string]any `json:"variables"`
}

type Contact struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Email string `json:"email"`
}

type License struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Info struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	TermsOfService string  `json:"termsOfService"`
	Version        string  `json:"version"`
	Contact        Contact `json:"contact"`
	License        License `json:"license"`
}

type Content struct {
	Schema any `json:"schema"`
}

type Component struct {
	Schemas map[string]any `json:"schemas"`
}

type Ref struct {
	Ref string `json:"$ref"`
}

type SchemaResp struct {
	Schema Ref `json:"schema"`
}

type Response struct {
	Description string                `json:"description"`
	Content     map[string]SchemaResp `json:"content"`
}

// Parameter defines an openAPI parameter
type Parameter struct {
	Name        string `json:"name"`
	In          string `json:"in"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Schema      any    `json:"schema"`
}

type Operation struct {
	Summary     string              `json:"summary"`
	Tags        []string            `json:"tags,omitempty"`
	Description string              `json:"description"`
	ID          string              `json:"operationId"`
	Parameters  []Parameter         `json:"parameters"`
	Responses   map[string]Response `json:"responses"`
}

type Path struct {
	Get    *Operation `json:"get,omitempty"`
	Post   *Operation `json:"post,omitempty"`
	Put    *Operation `json:"put,omitempty"`
	Patch  *Operation `json:"patch,omitempty"`
	Delete *Operation `json:"delete,omitempty"`
}

type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Openapi struct {
	OpenAPI    string                          `json:"openapi"`
	Info       Info                            `json:"info"`
	Servers    []Server                        `json:"servers"`
	Components Component                       `json:"components"`
	Paths      *orderedmap.OrderedMap[string, Path] `json:"paths"`
	Tags       []Tag                           `json:"tags,omitempty"`
}

// Doc describes one route for the schema. The added flag is private on
// purpose so handlers must register through Route.
type Doc struct {
	Method      string
	Path        string
	OpId        string
	Summary     string
	Description string
	Params      []Parameter
	Tags        []string
	Resp        any

	added bool
}

func (d *Doc) Added() bool {
	return d.added
}

var api = Openapi{
	OpenAPI: "3.0.3",
	Info: Info{
		Title: "Vanity Check API",
		Description: `
Welcome to the Vanity Check API documentation!

This API proxies Discord's invite and user lookup endpoints so the
browser can check vanity code availability and look up public profiles
without holding a bot credential.

All endpoints are rate limited per client. 429 responses carry a
` + "`retryAfter`" + ` field (seconds) and a ` + "`Retry-After`" + ` header.
`,
		Version: "1.0",
		Contact: Contact{
			Name: "Vanity Check",
			URL:  "https://vanitycheck.app",
		},
		License: License{
			Name: "MIT",
			URL:  "https://opensource.org/licenses/MIT",
		},
	},
	Components: Component{
		Schemas: make(map[string]any),
	},
	Paths: orderedmap.New[string, Path](),
}

var IdSchema *openapi3.SchemaRef

func init() {
	var err error

	IdSchema, err = openapi3gen.NewSchemaRefForValue("1234567890", nil)

	if err != nil {
		panic(err)
	}

	apiErrorSchema, err := openapi3gen.NewSchemaRefForValue(types.ApiError{}, nil)

	if err != nil {
		panic(err)
	}

	api.Components.Schemas["ApiError"] = apiErrorSchema
}

// AddServer sets the public URL this schema is served under.
func AddServer(url, description string) {
	api.Servers = append(api.Servers, Server{
		URL:         url,
		Description: description,
		Variables:   map[string]any{},
	})
}

func AddTag(name, description string) {
	api.Tags = append(api.Tags, Tag{
		Name:        name,
		Description: description,
	})
}

// Route registers a Doc into the schema.
func Route(doc *Doc) {
	schemaName := schemaNameFor(doc.Resp)

	if _, ok := api.Components.Schemas[schemaName]; !ok {
		schemaRef, err := openapi3gen.NewSchemaRefForValue(doc.Resp, nil)

		if err != nil {
			panic(err)
		}

		api.Components.Schemas[schemaName] = schemaRef
	}

	operationData := &Operation{
		Tags:        doc.Tags,
		Summary:     doc.Summary,
		Description: doc.Description,
		ID:          doc.OpId,
		Parameters:  doc.Params,
		Responses: map[string]Response{
			"200": {
				Description: "Success",
				Content: map[string]SchemaResp{
					"application/json": {
						Schema: Ref{Ref: "#/components/schemas/" + schemaName},
					},
				},
			},
			"400": {
				Description: "Bad Request",
				Content: map[string]SchemaResp{
					"application/json": {
						Schema: Ref{Ref: "#/components/schemas/ApiError"},
					},
				},
			},
		},
	}

	op, _ := api.Paths.Get(doc.Path)

	switch strings.ToLower(doc.Method) {
	case "get":
		op.Get = operationData
	case "post":
		op.Post = operationData
	case "put":
		op.Put = operationData
	case "patch":
		op.Patch = operationData
	case "delete":
		op.Delete = operationData
	default:
		panic("unsupported method in docs: " + doc.Method)
	}

	api.Paths.Set(doc.Path, op)

	doc.added = true
}

func schemaNameFor(resp any) string {
	schemaName := strings.ReplaceAll(reflect.TypeOf(resp).String(), "[", "-")

	schemaName = strings.ReplaceAll(schemaName, "]", "-")
	schemaName = strings.ReplaceAll(schemaName, " ", "")
	schemaName = strings.ReplaceAll(schemaName, "{", "")
	schemaName = strings.ReplaceAll(schemaName, "}", "")
	schemaName = strings.TrimSuffix(schemaName, "-")

	return strings.ReplaceAll(schemaName, "types.", "")
}

func GetSchema() any {
	return api
}
