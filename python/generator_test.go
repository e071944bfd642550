package python

import (
	"context"
	"strings"
	"testing"

	"github.com/apistub/apistub/ir"
	"github.com/apistub/apistub/sink"
)

func testSchema() *ir.Schema {
	return &ir.Schema{
		Endpoints: []ir.APIDescriptor{
			{
				Name: "search",
				Parts: []ir.ParameterInfo{
					{Name: "index", Type: "str", Required: true},
				},
				Body:        &ir.BodyInfo{Required: false},
				QueryParams: []string{"size"},
			},
			{
				Name:  "indices.create",
				Parts: []ir.ParameterInfo{{Name: "index", Type: "str", Required: true}},
				Body:  &ir.BodyInfo{Required: false},
			},
		},
		GlobalParams: []ir.GlobalParam{
			{Name: "pretty", Type: "Optional[bool]"},
		},
	}
}

func TestPythonGenerator_Name(t *testing.T) {
	gen := &PythonGenerator{}
	if got := gen.Name(); got != "python" {
		t.Errorf("Name() = %q, want %q", got, "python")
	}
}

func TestPythonGenerator_Generate_PerService(t *testing.T) {
	memSink := sink.NewMemorySink()
	gen := &PythonGenerator{}

	result, err := gen.Generate(context.Background(), testSchema(), GenerateOptions{
		Sink:   memSink,
		Config: GeneratorConfig{TrailingNewline: true},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.StubsGenerated != 2 {
		t.Errorf("StubsGenerated = %d, want 2", result.StubsGenerated)
	}
	if len(result.Files) != 2 {
		t.Fatalf("generated %d files, want 2: %v", len(result.Files), result.Files)
	}

	root := string(memSink.Get("__init__.pyi"))
	t.Logf("__init__.pyi:\n%s", root)
	if !strings.Contains(root, "class Client:") {
		t.Errorf("__init__.pyi missing Client class:\n%s", root)
	}
	if !strings.Contains(root, "def search(self, index: str, *, body: Optional[Any]=..., size: Optional[Any]=..., pretty: Optional[bool]=..., params: Optional[MutableMapping[str, Any]]=..., headers: Optional[MutableMapping[str, str]]=...) -> Any: ...") {
		t.Errorf("__init__.pyi missing search stub:\n%s", root)
	}

	indices := string(memSink.Get("indices.pyi"))
	if !strings.Contains(indices, "class IndicesClient:") {
		t.Errorf("indices.pyi missing class:\n%s", indices)
	}
	if !strings.Contains(indices, "def create(self, index: str, *, ") {
		t.Errorf("indices.pyi missing create stub:\n%s", indices)
	}
}

func TestPythonGenerator_Generate_SingleFile(t *testing.T) {
	memSink := sink.NewMemorySink()
	gen := &PythonGenerator{}

	result, err := gen.Generate(context.Background(), testSchema(), GenerateOptions{
		Sink:   memSink,
		Config: GeneratorConfig{SingleFile: true},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(result.Files) != 1 || result.Files[0].Path != "__init__.pyi" {
		t.Fatalf("Files = %v, want single __init__.pyi", result.Files)
	}

	content := string(memSink.Get("__init__.pyi"))
	for _, w := range []string{"class Client:", "class IndicesClient:"} {
		if !strings.Contains(content, w) {
			t.Errorf("single file missing %q:\n%s", w, content)
		}
	}
}

func TestPythonGenerator_Generate_AsyncFlavor(t *testing.T) {
	memSink := sink.NewMemorySink()
	gen := &PythonGenerator{}

	_, err := gen.Generate(context.Background(), testSchema(), GenerateOptions{
		Sink: memSink,
		Config: GeneratorConfig{
			SingleFile: true,
			Python:     PythonConfig{Flavor: "async"},
		},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	content := string(memSink.Get("__init__.pyi"))
	if !strings.Contains(content, "async def search(self, ") {
		t.Errorf("async flavor not applied:\n%s", content)
	}
}

func TestPythonGenerator_Generate_InvalidIdentifierWarnings(t *testing.T) {
	schema := &ir.Schema{
		Endpoints: []ir.APIDescriptor{
			{
				Name:        "search",
				Parts:       []ir.ParameterInfo{{Name: "2fa", Type: "str", Required: true}},
				QueryParams: []string{"wait-for", "size", "from"},
			},
		},
	}

	gen := &PythonGenerator{}
	result, err := gen.Generate(context.Background(), schema, GenerateOptions{
		Sink: sink.NewMemorySink(),
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// "2fa" and "wait-for" are flagged; "size" is valid and "from" escapes
	// cleanly to "from_".
	if len(result.Warnings) != 2 {
		t.Fatalf("Warnings = %v, want 2 entries", result.Warnings)
	}
	for _, w := range result.Warnings {
		if w.Code != "invalid_identifier" {
			t.Errorf("warning code = %q, want invalid_identifier", w.Code)
		}
		if !strings.Contains(w.Message, "search") {
			t.Errorf("warning message missing operation name: %q", w.Message)
		}
	}
	if !strings.Contains(result.Warnings[1].Message, "wait-for") {
		t.Errorf("query parameter not flagged: %v", result.Warnings)
	}
}

func TestPythonGenerator_Generate_UnknownFlavor(t *testing.T) {
	gen := &PythonGenerator{}
	_, err := gen.Generate(context.Background(), testSchema(), GenerateOptions{
		Sink:   sink.NewMemorySink(),
		Config: GeneratorConfig{Python: PythonConfig{Flavor: "typed"}},
	})
	if err == nil || !strings.Contains(err.Error(), "unknown flavor") {
		t.Errorf("Generate() error = %v, want unknown flavor", err)
	}
}

func TestPythonGenerator_Generate_NilSink(t *testing.T) {
	gen := &PythonGenerator{}
	if _, err := gen.Generate(context.Background(), testSchema(), GenerateOptions{}); err == nil {
		t.Error("Generate() with nil sink did not fail")
	}
}

func TestPythonGenerator_Generate_CRLF(t *testing.T) {
	memSink := sink.NewMemorySink()
	gen := &PythonGenerator{}

	_, err := gen.Generate(context.Background(), testSchema(), GenerateOptions{
		Sink:   memSink,
		Config: GeneratorConfig{SingleFile: true, LineEnding: "crlf"},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	content := string(memSink.Get("__init__.pyi"))
	if !strings.Contains(content, "\r\n") {
		t.Error("crlf line ending not applied")
	}
	if strings.Contains(strings.ReplaceAll(content, "\r\n", ""), "\n") {
		t.Error("bare lf remains in crlf output")
	}
}
