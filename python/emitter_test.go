package python

import (
	"bytes"
	"strings"
	"testing"

	"github.com/apistub/apistub/ir"
)

func TestEmitter_EmitFunction(t *testing.T) {
	tests := []struct {
		name    string
		api     *ir.APIDescriptor
		config  GeneratorConfig
		want    []string
		notWant []string
	}{
		{
			name: "sync method",
			api: &ir.APIDescriptor{
				Name:  "indices.create",
				Parts: []ir.ParameterInfo{{Name: "index", Type: "str", Required: true}},
			},
			config: GeneratorConfig{},
			want:   []string{"    def create(self, index: str, *, "},
		},
		{
			name: "async flavor",
			api:  &ir.APIDescriptor{Name: "ping"},
			config: GeneratorConfig{
				Python: PythonConfig{Flavor: "async"},
			},
			want: []string{"    async def ping(self, *, "},
		},
		{
			name: "configured return type",
			api:  &ir.APIDescriptor{Name: "exists"},
			config: GeneratorConfig{
				Python: PythonConfig{ReturnType: "bool"},
			},
			want: []string{") -> bool: ..."},
		},
		{
			name: "documentation comment",
			api: &ir.APIDescriptor{
				Name: "search",
				Documentation: ir.Documentation{
					Body: "Returns results matching a query.",
					URL:  "https://example.com/search.html",
				},
			},
			config: GeneratorConfig{EmitComments: true},
			want: []string{
				"    # Returns results matching a query.",
				"    # https://example.com/search.html",
			},
		},
		{
			name: "documentation suppressed by default",
			api: &ir.APIDescriptor{
				Name:          "search",
				Documentation: ir.Documentation{Body: "Returns results."},
			},
			config:  GeneratorConfig{},
			notWant: []string{"#"},
		},
		{
			name:   "reserved word method name escaped",
			api:    &ir.APIDescriptor{Name: "snapshot.import"},
			config: GeneratorConfig{},
			want:   []string{"def import_(self, "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			emitter := NewEmitter(tt.config, nil)
			emitter.EmitFunction(&buf, tt.api, 1)

			got := buf.String()
			t.Logf("Emitted:\n%s", got)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("output missing %q", w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got, nw) {
					t.Errorf("output contains unwanted %q", nw)
				}
			}
		})
	}
}

func TestEmitter_EmitClass(t *testing.T) {
	svc := ir.Service{
		Name: "indices",
		Endpoints: []ir.APIDescriptor{
			{Name: "indices.create", Parts: []ir.ParameterInfo{{Name: "index", Type: "str", Required: true}}},
			{Name: "indices.delete", Parts: []ir.ParameterInfo{{Name: "index", Type: "str", Required: true}}},
		},
	}

	var buf bytes.Buffer
	emitter := NewEmitter(GeneratorConfig{}, nil)
	emitter.EmitClass(&buf, svc)

	got := buf.String()
	want := []string{
		"class IndicesClient:",
		"    def create(self, index: str, *, ",
		"    def delete(self, index: str, *, ",
	}
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("output missing %q in:\n%s", w, got)
		}
	}
}

func TestEmitter_EmitClass_BaseClass(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewEmitter(GeneratorConfig{
		Python: PythonConfig{BaseClass: "NamespacedClient"},
	}, nil)
	emitter.EmitClass(&buf, ir.Service{Name: "cluster"})

	if !strings.Contains(buf.String(), "class ClusterClient(NamespacedClient):") {
		t.Errorf("base class not emitted:\n%s", buf.String())
	}
}

func TestEmitter_EmitModule(t *testing.T) {
	services := []ir.Service{
		{Name: "", Endpoints: []ir.APIDescriptor{{Name: "ping"}}},
		{Name: "indices", Endpoints: []ir.APIDescriptor{{Name: "indices.create"}}},
	}

	var buf bytes.Buffer
	emitter := NewEmitter(GeneratorConfig{Frontmatter: "# generated stubs"}, nil)
	emitter.EmitModule(&buf, services)

	got := buf.String()
	if !strings.HasPrefix(got, typingHeader+"\n") {
		t.Errorf("module does not start with typing header:\n%s", got)
	}
	for _, w := range []string{"# generated stubs", "class Client:", "class IndicesClient:"} {
		if !strings.Contains(got, w) {
			t.Errorf("output missing %q in:\n%s", w, got)
		}
	}
}

func TestEmitter_ClassName(t *testing.T) {
	tests := []struct {
		service string
		config  PythonConfig
		want    string
	}{
		{"", PythonConfig{}, "Client"},
		{"", PythonConfig{ClientClass: "Elasticsearch"}, "Elasticsearch"},
		{"indices", PythonConfig{}, "IndicesClient"},
		{"snapshot_lifecycle", PythonConfig{}, "SnapshotLifecycleClient"},
		{"cat", PythonConfig{ClassSuffix: "Namespace"}, "CatNamespace"},
	}

	for _, tt := range tests {
		emitter := NewEmitter(GeneratorConfig{Python: tt.config}, nil)
		if got := emitter.ClassName(tt.service); got != tt.want {
			t.Errorf("ClassName(%q) = %q, want %q", tt.service, got, tt.want)
		}
	}
}

func TestEmitter_IndentStyles(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewEmitter(GeneratorConfig{IndentStyle: "tab"}, nil)
	emitter.EmitFunction(&buf, &ir.APIDescriptor{Name: "ping"}, 1)
	if !strings.HasPrefix(buf.String(), "\tdef ping") {
		t.Errorf("tab indent not applied: %q", buf.String())
	}

	buf.Reset()
	emitter = NewEmitter(GeneratorConfig{IndentSize: 2}, nil)
	emitter.EmitFunction(&buf, &ir.APIDescriptor{Name: "ping"}, 1)
	if !strings.HasPrefix(buf.String(), "  def ping") {
		t.Errorf("two-space indent not applied: %q", buf.String())
	}
}
