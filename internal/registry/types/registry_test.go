package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sandboxeval/sandboxeval/internal/value"
)

func fileItem(id string) value.Value {
	return value.NewObject().
		ObjectSet("file_id", value.String(id)).
		ObjectSet("workspace_id", value.String("ws1")).
		ObjectSet("key", value.String("k")).
		ObjectSet("name", value.String("n"))
}

func TestDetectType_RequiredAndPropertyKinds(t *testing.T) {
	r := NewRegistry()
	r.Register(TypeEntry{
		Name: "FileItem",
		Schema: Schema{
			Required: []string{"file_id", "workspace_id", "key", "name"},
			Properties: map[string]PropertyKind{
				"file_id": KindString,
			},
		},
		Strategy: StrategyJSON,
	})

	require.Equal(t, "FileItem", r.DetectType(fileItem("f1")))
}

func TestDetectType_MostRecentlyRegisteredWins(t *testing.T) {
	r := NewRegistry()
	r.Register(TypeEntry{Name: "A", Schema: Schema{Required: []string{"x"}}})
	r.Register(TypeEntry{Name: "B", Schema: Schema{Required: []string{"x"}}})

	v := value.NewObject().ObjectSet("x", value.Number(1))
	require.Equal(t, "B", r.DetectType(v))

	// Re-registering A moves it back to the front.
	r.Register(TypeEntry{Name: "A", Schema: Schema{Required: []string{"x"}}})
	require.Equal(t, "A", r.DetectType(v))
}

func TestDetectType_NonObjectReturnsEmpty(t *testing.T) {
	r := NewRegistry()
	r.Register(TypeEntry{Name: "A", Schema: Schema{}})

	require.Equal(t, "", r.DetectType(value.NewArray(nil)))
	require.Equal(t, "", r.DetectType(value.Null))
	require.Equal(t, "", r.DetectType(value.Number(1)))
}

func TestSerialize_FallsBackToDisplayStringWhenUnregistered(t *testing.T) {
	r := NewRegistry()
	out := r.Serialize(value.String("hi"), "Missing", func(value.Value) string { return "SHOULD_NOT_BE_CALLED" })
	require.Equal(t, "hi", out)
}

func TestSerialize_JSONStrategyUsesProvidedEncoder(t *testing.T) {
	r := NewRegistry()
	r.Register(TypeEntry{Name: "T", Strategy: StrategyJSON})

	out := r.Serialize(fileItem("f1"), "T", func(v value.Value) string { return `{"ok":true}` })
	require.Equal(t, `{"ok":true}`, out)
}
