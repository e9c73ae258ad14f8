package provision

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/shipkit/shipkit-cli/pkg/logger"
)

var selectionLog = logger.New("provision:selection")

//go:embed build_request.schema.json
var buildRequestSchema []byte

const buildRequestSchemaURL = "https://shipkit.app/schemas/build-request.json"

// Selection is the configuration sent to the build service. The JSON field
// names are part of the wire contract.
type Selection struct {
	BaseFramework string `json:"baseFramework"`
	Framework     string `json:"framework"`
	ORM           string `json:"orm"`
	Database      string `json:"database"`
	Auth          string `json:"auth"`
	Output        string `json:"output"`
	Manager       string `json:"manager"`
}

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(buildRequestSchema))
	if err != nil {
		return nil, fmt.Errorf("parse build request schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(buildRequestSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("load build request schema: %w", err)
	}
	return c.Compile(buildRequestSchemaURL)
})

// Validate checks the selection against the build request schema, including
// the rules tying the database to the ORM and the auth provider to the
// framework.
func (s Selection) Validate() error {
	sch, err := compileSchema()
	if err != nil {
		return err
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode selection: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		selectionLog.Printf("Selection rejected by schema: %v", err)
		return fmt.Errorf("invalid selection: %w", err)
	}
	return nil
}

// MarshalIndentedJSON renders the selection the way dry runs print it.
func (s Selection) MarshalIndentedJSON() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
