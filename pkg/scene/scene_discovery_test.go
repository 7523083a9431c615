package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"mirror-room", "Mirror Room"},
		{"chrome_balls", "Chrome Balls"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

const minimalSceneJSON = `{
  "name": "Chrome Balls",
  "description": "Two mirror spheres",
  "group": "Examples",
  "bounceLimit": 2,
  "spheres": [
    {"center": [0, 0, 0], "radius": 1, "inline": {"diffuse": [0, 0, 0], "specular": [0.9, 0.9, 0.9], "shininess": 500}},
    {"center": [2.5, 0, 0], "radius": 1, "inline": {"diffuse": "#3366cc"}}
  ],
  "lights": [{"position": [0, 10, 10], "intensity": [1, 1, 1]}]
}`

func writeSceneFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestParseJSONMetadata(t *testing.T) {
	dir := t.TempDir()

	t.Run("with metadata", func(t *testing.T) {
		path := writeSceneFile(t, dir, "chrome.json", minimalSceneJSON)
		info, err := ParseJSONMetadata(path)
		if err != nil {
			t.Fatalf("ParseJSONMetadata failed: %v", err)
		}
		expected := SceneInfo{
			ID:          "json:chrome",
			Name:        "Chrome Balls",
			DisplayName: "Chrome Balls",
			Description: "Two mirror spheres",
			Group:       "Examples",
			Type:        "json",
			FilePath:    path,
		}
		if info != expected {
			t.Errorf("Expected %+v, got %+v", expected, info)
		}
	})

	t.Run("fallback to filename", func(t *testing.T) {
		path := writeSceneFile(t, dir, "no-metadata.json", `{"spheres": []}`)
		info, err := ParseJSONMetadata(path)
		if err != nil {
			t.Fatalf("ParseJSONMetadata failed: %v", err)
		}
		if info.Name != "No Metadata" || info.Group != "JSON Scenes" {
			t.Errorf("Unexpected fallback metadata %+v", info)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		path := writeSceneFile(t, dir, "broken.json", `{"name": `)
		if _, err := ParseJSONMetadata(path); err == nil {
			t.Error("Expected error for malformed JSON")
		}
	})
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "chrome.json", minimalSceneJSON)
	writeSceneFile(t, dir, "broken.json", `{`)
	writeSceneFile(t, dir, "notes.txt", "ignored")

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes failed: %v", err)
	}

	if len(response.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d: %+v", len(response.Groups), response.Groups)
	}
	if response.Groups[0].Name != "Built-in Scenes" {
		t.Errorf("Expected built-in group first, got %q", response.Groups[0].Name)
	}
	if len(response.Groups[0].Scenes) != len(BuiltInScenes()) {
		t.Errorf("Expected %d built-in scenes, got %d", len(BuiltInScenes()), len(response.Groups[0].Scenes))
	}
	if response.Groups[1].Name != "Examples" || len(response.Groups[1].Scenes) != 1 {
		t.Errorf("Expected one scene in Examples group, got %+v", response.Groups[1])
	}
}

func TestListJSONScenes_MissingDir(t *testing.T) {
	scenes, err := ListJSONScenes(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("Expected no error for missing dir, got %v", err)
	}
	if len(scenes) != 0 {
		t.Errorf("Expected no scenes, got %d", len(scenes))
	}
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()
	path := writeSceneFile(t, dir, "chrome.json", minimalSceneJSON)

	t.Run("json prefix", func(t *testing.T) {
		s, err := Create("json:chrome", dir)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if s.Name != "Chrome Balls" || s.BounceLimit != 2 || len(s.Spheres) != 2 {
			t.Errorf("Unexpected scene %q with %d spheres, bounce limit %d", s.Name, len(s.Spheres), s.BounceLimit)
		}
		if s.CameraConfig.Width != defaultJSONCamera.Width {
			t.Errorf("Expected default camera width, got %d", s.CameraConfig.Width)
		}
	})

	t.Run("file path", func(t *testing.T) {
		if _, err := Create(path, ""); err != nil {
			t.Fatalf("Create by path failed: %v", err)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Create("no-such-scene", dir)
		if !errors.Is(err, ErrUnknownScene) {
			t.Errorf("Expected ErrUnknownScene, got %v", err)
		}
	})

	t.Run("invalid scene file", func(t *testing.T) {
		writeSceneFile(t, dir, "bad.json", `{"bounceLimit": -1, "spheres": [{"center": [0,0,0], "radius": 1, "inline": {}}]}`)
		if _, err := Create("json:bad", dir); err == nil {
			t.Error("Expected validation error for negative bounce limit")
		}
	})
}

func TestShippedJSONScenesLoad(t *testing.T) {
	const dir = "../../scenes"
	infos, err := ListJSONScenes(dir)
	if err != nil {
		t.Fatalf("ListJSONScenes failed: %v", err)
	}
	if len(infos) == 0 {
		t.Fatal("Expected shipped JSON scenes")
	}

	for _, info := range infos {
		t.Run(info.ID, func(t *testing.T) {
			s, err := Create(info.ID, dir)
			if err != nil {
				t.Fatalf("Create(%q) failed: %v", info.ID, err)
			}
			if len(s.Spheres) == 0 || len(s.Lights) == 0 {
				t.Errorf("Expected spheres and lights in %s", info.ID)
			}
		})
	}
}
