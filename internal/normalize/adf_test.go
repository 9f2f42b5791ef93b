package normalize

import "testing"

func TestDocText_FlattensParagraphText(t *testing.T) {
	doc := map[string]any{
		"type": "doc",
		"content": []any{
			map[string]any{"type": "paragraph", "content": []any{
				map[string]any{"type": "text", "text": "first"},
				map[string]any{"type": "text", "text": "second"},
			}},
			map[string]any{"type": "heading", "content": []any{
				map[string]any{"type": "text", "text": "skipped"},
			}},
			map[string]any{"type": "paragraph", "content": []any{
				map[string]any{"type": "mention", "attrs": map[string]any{"text": "@who"}},
				map[string]any{"type": "text", "text": "third"},
			}},
		},
	}
	if got := DocText(doc); got != "first second third" {
		t.Fatalf("expected %q, got %q", "first second third", got)
	}
}

func TestDocText_PlainStringPassesThrough(t *testing.T) {
	if got := DocText("a legacy comment"); got != "a legacy comment" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestDocText_EmptyShapes(t *testing.T) {
	if got := DocText(nil); got != "" { t.Fatalf("nil: got %q", got) }
	if got := DocText(map[string]any{"type": "doc"}); got != "" {
		t.Fatalf("doc without content: got %q", got)
	}
	if got := DocText(map[string]any{"content": []any{}}); got != "" {
		t.Fatalf("empty content: got %q", got)
	}
}
