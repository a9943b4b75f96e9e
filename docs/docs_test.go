package docs

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type document struct {
	Paths       map[string]map[string]json.RawMessage `json:"paths"`
	Definitions map[string]json.RawMessage            `json:"definitions"`
}

func readDoc(t *testing.T) (string, document) {
	t.Helper()
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return raw, doc
}

func TestDoc_RefsResolve(t *testing.T) {
	raw, doc := readDoc(t)

	refs := regexp.MustCompile(`"#/definitions/([^"]+)"`).FindAllStringSubmatch(raw, -1)
	require.NotEmpty(t, refs)
	for _, m := range refs {
		require.Contains(t, doc.Definitions, m[1], "dangling $ref")
	}
}

func TestDoc_DescribesPayloads(t *testing.T) {
	_, doc := readDoc(t)

	for _, name := range []string{
		"handler.registerRequest",
		"handler.customerRequest",
		"handler.leadRequest",
		"handler.taskRequest",
		"handler.interactionRequest",
		"handler.customerListResponse",
		"handler.stageChangeResponse",
		"domain.Dashboard",
		"domain.ConversionReport",
	} {
		require.Contains(t, doc.Definitions, name)
	}

	for _, path := range []string{"/api/customers", "/api/leads/{id}/stage", "/api/tasks/{id}/status", "/api/reports/conversion", "/health"} {
		require.Contains(t, doc.Paths, path)
	}
}

func TestDoc_RequestBounds(t *testing.T) {
	_, doc := readDoc(t)

	var customer struct {
		Required   []string `json:"required"`
		Properties map[string]struct {
			MaxLength int `json:"maxLength"`
		} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(doc.Definitions["handler.customerRequest"], &customer))
	require.Equal(t, []string{"name"}, customer.Required)
	require.Equal(t, 100, customer.Properties["name"].MaxLength)
	require.Equal(t, 30, customer.Properties["phone"].MaxLength)
}
